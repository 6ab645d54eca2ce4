package uce

import (
	"fmt"
	"log/slog"
)

// ResponseStatus is a SIP response status code as reported by the transport
// layer for a capability request.
type ResponseStatus uint16

// SIP status codes the capability exchange cares about.
const (
	StatusOK       ResponseStatus = 200
	StatusAccepted ResponseStatus = 202 // [RFC3265]

	StatusBadRequest             ResponseStatus = 400
	StatusForbidden              ResponseStatus = 403
	StatusNotFound               ResponseStatus = 404
	StatusRequestTimeout         ResponseStatus = 408
	StatusIntervalTooBrief       ResponseStatus = 423
	StatusTemporarilyUnavailable ResponseStatus = 480
	StatusBusyHere               ResponseStatus = 486
	StatusServerInternalError    ResponseStatus = 500
	StatusServiceUnavailable     ResponseStatus = 503
	StatusServerTimeout          ResponseStatus = 504
	StatusBusyEverywhere         ResponseStatus = 600
	StatusDecline                ResponseStatus = 603
	StatusDoesNotExistAnywhere   ResponseStatus = 604
)

// Well-known reason phrases carried by capability responses.
// The 403 phrases select the application error, see [ErrorCodeFromResponse].
const (
	ReasonPhraseOK                       = "OK"
	ReasonPhraseAccepted                 = "Accepted"
	ReasonPhraseNotRegistered            = "User not registered"
	ReasonPhraseNotAuthorizedForPresence = "not authorized for presence"
)

// IsSuccessful reports whether the status is a 2xx code.
func (s ResponseStatus) IsSuccessful() bool { return s >= 200 && s < 300 }

func (s ResponseStatus) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusAccepted:
		return "Accepted"
	case StatusBadRequest:
		return "Bad Request"
	case StatusForbidden:
		return "Forbidden"
	case StatusNotFound:
		return "Not Found"
	case StatusRequestTimeout:
		return "Request Timeout"
	case StatusIntervalTooBrief:
		return "Interval Too Brief"
	case StatusTemporarilyUnavailable:
		return "Temporarily Unavailable"
	case StatusBusyHere:
		return "Busy Here"
	case StatusServerInternalError:
		return "Server Internal Error"
	case StatusServiceUnavailable:
		return "Service Unavailable"
	case StatusServerTimeout:
		return "Server Time-out"
	case StatusBusyEverywhere:
		return "Busy Everywhere"
	case StatusDecline:
		return "Decline"
	case StatusDoesNotExistAnywhere:
		return "Does Not Exist Anywhere"
	default:
		return fmt.Sprintf("Status %d", uint16(s))
	}
}

// LogValue implements [slog.LogValuer].
func (s ResponseStatus) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("code", int(s)),
		slog.String("reason", s.String()),
	)
}
