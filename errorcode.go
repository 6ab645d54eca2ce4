package uce

import (
	"strings"
)

// ErrorCode is the stable application-level error reported to the caller of
// a capability request. Every failure path resolves to exactly one code.
type ErrorCode int

const (
	// ErrorGenericFailure is the catch-all for unclassified failures.
	ErrorGenericFailure ErrorCode = iota + 1
	// ErrorNotFound indicates the requested contacts do not exist.
	ErrorNotFound
	// ErrorRequestTimeout indicates the network did not answer in time.
	ErrorRequestTimeout
	// ErrorInsufficientMemory indicates the service ran out of memory.
	ErrorInsufficientMemory
	// ErrorLostNetwork indicates the network connection was lost.
	ErrorLostNetwork
	// ErrorServerUnavailable indicates the server is temporarily unavailable or busy.
	ErrorServerUnavailable
	// ErrorForbidden indicates the network rejected the request.
	ErrorForbidden
	// ErrorNotRegistered indicates the device is not registered with IMS.
	ErrorNotRegistered
	// ErrorNotAuthorized indicates the device is not provisioned for presence.
	ErrorNotAuthorized
)

// DefaultErrorCode is used whenever a failure carries no explicit code.
const DefaultErrorCode = ErrorGenericFailure

func (c ErrorCode) String() string {
	switch c {
	case ErrorGenericFailure:
		return "generic_failure"
	case ErrorNotFound:
		return "not_found"
	case ErrorRequestTimeout:
		return "request_timeout"
	case ErrorInsufficientMemory:
		return "insufficient_memory"
	case ErrorLostNetwork:
		return "lost_network"
	case ErrorServerUnavailable:
		return "server_unavailable"
	case ErrorForbidden:
		return "forbidden"
	case ErrorNotRegistered:
		return "not_registered"
	case ErrorNotAuthorized:
		return "not_authorized"
	default:
		return "unknown"
	}
}

// CommandCode is a command-level failure reported by the capability exchange
// service before any network response is available.
type CommandCode int

const (
	CommandServiceUnknown CommandCode = iota + 1
	CommandGenericFailure
	CommandInvalidParam
	CommandFetchError
	CommandRequestTimeout
	CommandInsufficientMemory
	CommandLostNetworkConnection
	CommandNotSupported
	CommandNotFound
	CommandServiceUnavailable
	CommandNoChange
)

func (c CommandCode) String() string {
	switch c {
	case CommandServiceUnknown:
		return "service_unknown"
	case CommandGenericFailure:
		return "generic_failure"
	case CommandInvalidParam:
		return "invalid_param"
	case CommandFetchError:
		return "fetch_error"
	case CommandRequestTimeout:
		return "request_timeout"
	case CommandInsufficientMemory:
		return "insufficient_memory"
	case CommandLostNetworkConnection:
		return "lost_network_connection"
	case CommandNotSupported:
		return "not_supported"
	case CommandNotFound:
		return "not_found"
	case CommandServiceUnavailable:
		return "service_unavailable"
	case CommandNoChange:
		return "no_change"
	default:
		return "unknown"
	}
}

// ErrorCodeFromCommand maps a command-level failure to an [ErrorCode].
func ErrorCodeFromCommand(cmd CommandCode) ErrorCode {
	switch cmd {
	case CommandNotFound:
		return ErrorNotFound
	case CommandRequestTimeout:
		return ErrorRequestTimeout
	case CommandInsufficientMemory:
		return ErrorInsufficientMemory
	case CommandLostNetworkConnection:
		return ErrorLostNetwork
	case CommandServiceUnavailable:
		return ErrorServerUnavailable
	case CommandServiceUnknown, CommandGenericFailure, CommandInvalidParam,
		CommandFetchError, CommandNotSupported, CommandNoChange:
		return ErrorGenericFailure
	default:
		return ErrorGenericFailure
	}
}

// ErrorCodeFromResponse maps the SIP outcome recorded on the response to an
// [ErrorCode]. The Reason header cause and text take precedence over the raw
// status code and reason phrase when the header is present.
func ErrorCodeFromResponse(resp *RequestResponse) ErrorCode {
	var (
		status ResponseStatus
		reason string
	)
	if cause, ok := resp.ReasonHeaderCause(); ok {
		status = cause
		reason, _ = resp.ReasonHeaderText()
	} else {
		status, _ = resp.NetworkStatus()
		reason, _ = resp.ReasonPhrase()
	}

	switch status {
	case StatusForbidden:
		switch {
		case strings.EqualFold(reason, ReasonPhraseNotRegistered):
			// Not registered with IMS. The device shall register first.
			return ErrorNotRegistered
		case strings.EqualFold(reason, ReasonPhraseNotAuthorizedForPresence):
			// Not provisioned for presence. The device shall not retry.
			return ErrorNotAuthorized
		default:
			return ErrorForbidden
		}
	case StatusNotFound:
		return ErrorNotFound
	case StatusRequestTimeout:
		return ErrorRequestTimeout
	case StatusIntervalTooBrief:
		// The requested expiry interval was too short.
		return ErrorGenericFailure
	case StatusServerInternalError, StatusServiceUnavailable:
		return ErrorServerUnavailable
	default:
		return ErrorGenericFailure
	}
}
