package uce

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"
)

// Reason is the parsed value of a SIP Reason header (RFC 3326), e.g.
//
//	Reason: SIP;cause=200;text="call completed elsewhere"
//
// A Reason carried on a capability response overrides the interpretation of
// the raw status code, see [RequestResponse].
type Reason struct {
	// Protocol is the reason protocol, usually "SIP".
	Protocol string
	// Cause is the protocol cause code.
	Cause ResponseStatus
	// Text is the optional human-readable reason text.
	Text string
}

// ParseReason parses a single SIP Reason header value.
func ParseReason(value string) (Reason, error) {
	var r Reason

	parts := strings.Split(value, ";")
	proto := strings.TrimSpace(parts[0])
	if proto == "" {
		return r, errtrace.Wrap(NewInvalidArgumentError("reason: missing protocol in %q", value))
	}
	r.Protocol = proto

	for _, part := range parts[1:] {
		key, val, found := strings.Cut(part, "=")
		if !found {
			return r, errtrace.Wrap(NewInvalidArgumentError("reason: malformed parameter %q", part))
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		switch strings.ToLower(key) {
		case "cause":
			cause, err := strconv.ParseUint(val, 10, 16)
			if err != nil {
				return r, errtrace.Wrap(NewInvalidArgumentError("reason: invalid cause %q", val))
			}
			r.Cause = ResponseStatus(cause)
		case "text":
			r.Text = strings.Trim(val, `"`)
		default:
			// Unknown parameters are allowed and skipped.
		}
	}
	return r, nil
}

func (r Reason) String() string {
	s := r.Protocol
	if r.Cause != 0 {
		s += fmt.Sprintf(";cause=%d", uint16(r.Cause))
	}
	if r.Text != "" {
		s += fmt.Sprintf(";text=%q", r.Text)
	}
	return s
}

// LogValue implements [slog.LogValuer].
func (r Reason) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("protocol", r.Protocol),
		slog.Int("cause", int(r.Cause)),
		slog.String("text", r.Text),
	)
}
