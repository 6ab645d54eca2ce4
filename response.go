package uce

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/ghettovoice/gouce/internal/types"
)

// RequestResponse accumulates everything the transport layer reported for one
// sub-request: the command error, the SIP response, the Reason header, the
// termination info and the capability batches pending delivery to the caller.
//
// It is mutated from the transport callback goroutine and read from the
// coordinator, so every accessor takes the response's own lock. Capability
// batches follow consumed-once semantics: a batch is removed from the
// response right after it has been delivered.
type RequestResponse struct {
	mu sync.Mutex

	internalErr types.Optional[ErrorCode]
	commandErr  types.Optional[CommandCode]

	status       types.Optional[ResponseStatus]
	reasonPhrase types.Optional[string]

	reasonCause types.Optional[ResponseStatus]
	reasonText  types.Optional[string]

	terminatedReason types.Optional[string]
	retryAfter       types.Optional[time.Duration]

	cached     []*Capability
	updated    []*Capability
	terminated []*Capability

	remoteTags map[string]struct{}
}

// NewRequestResponse creates an empty response accumulator.
// The retry-after value starts present at zero, matching the behavior of a
// request that was never asked to back off.
func NewRequestResponse() *RequestResponse {
	return &RequestResponse{
		retryAfter: types.Some(time.Duration(0)),
	}
}

// SetInternalError records a local failure of the sub-request.
func (r *RequestResponse) SetInternalError(code ErrorCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.internalErr = types.Some(code)
}

// InternalError returns the recorded local failure, if any.
func (r *RequestResponse) InternalError() (ErrorCode, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.internalErr.Get()
}

// SetCommandError records a command-level failure reported by the service.
func (r *RequestResponse) SetCommandError(code CommandCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commandErr = types.Some(code)
}

// CommandError returns the recorded command failure, if any.
func (r *RequestResponse) CommandError() (CommandCode, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commandErr.Get()
}

// SetNetworkResponse records the raw SIP response.
func (r *RequestResponse) SetNetworkResponse(status ResponseStatus, reasonPhrase string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = types.Some(status)
	r.reasonPhrase = types.Some(reasonPhrase)
}

// SetNetworkResponseReason records the raw SIP response together with the
// Reason header carried by it. The Reason cause overrides the raw status for
// classification, see [RequestResponse.IsNetworkResponseOK] and friends.
func (r *RequestResponse) SetNetworkResponseReason(status ResponseStatus, reasonPhrase string, reason Reason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = types.Some(status)
	r.reasonPhrase = types.Some(reasonPhrase)
	r.reasonCause = types.Some(reason.Cause)
	r.reasonText = types.Some(reason.Text)
}

// NetworkStatus returns the raw SIP status, if a response arrived.
func (r *RequestResponse) NetworkStatus() (ResponseStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status.Get()
}

// ReasonPhrase returns the raw SIP reason phrase, if a response arrived.
func (r *RequestResponse) ReasonPhrase() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reasonPhrase.Get()
}

// ReasonHeaderCause returns the Reason header cause, if the header was present.
func (r *RequestResponse) ReasonHeaderCause() (ResponseStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reasonCause.Get()
}

// ReasonHeaderText returns the Reason header text, if the header was present.
func (r *RequestResponse) ReasonHeaderText() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reasonText.Get()
}

// SetTerminated records why the subscription dialog was terminated and how
// long the caller should wait before retrying.
func (r *RequestResponse) SetTerminated(reason string, retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminatedReason = types.Some(reason)
	r.retryAfter = types.Some(retryAfter)
}

// TerminatedReason returns the recorded termination reason, if any.
func (r *RequestResponse) TerminatedReason() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.terminatedReason.Get()
}

// RetryAfter returns the retry-after value, zero when not present.
func (r *RequestResponse) RetryAfter() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAfter.GetOr(0)
}

// AddCachedCapabilities appends capabilities served from the cache.
func (r *RequestResponse) AddCachedCapabilities(caps []*Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = append(r.cached, caps...)
}

// RemoveCachedCapabilities drops the cached capabilities after they have been
// delivered to the caller.
func (r *RequestResponse) RemoveCachedCapabilities() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = nil
}

// CachedCapabilities returns a copy of the cached capabilities pending delivery.
func (r *RequestResponse) CachedCapabilities() []*Capability {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.cached)
}

// AddUpdatedCapabilities appends capabilities discovered from the network.
func (r *RequestResponse) AddUpdatedCapabilities(caps []*Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, caps...)
}

// RemoveUpdatedCapabilities removes exactly the given delivered batch.
// Removal is a set difference, so removing the same batch twice is a no-op.
func (r *RequestResponse) RemoveUpdatedCapabilities(caps []*Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = lo.Without(r.updated, caps...)
}

// UpdatedCapabilities returns a copy of the updated capabilities pending delivery.
func (r *RequestResponse) UpdatedCapabilities() []*Capability {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.updated)
}

// AddTerminatedResources converts the termination reports to capability
// records and appends them to the terminated-resource list.
func (r *RequestResponse) AddTerminatedResources(resources []TerminatedResource) {
	caps := make([]*Capability, 0, len(resources))
	for _, res := range resources {
		caps = append(caps, NewTerminatedCapability(res.Contact, res.Reason))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminated = append(r.terminated, caps...)
}

// RemoveTerminatedResources removes exactly the given delivered batch.
// Removal is a set difference, so removing the same batch twice is a no-op.
func (r *RequestResponse) RemoveTerminatedResources(caps []*Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminated = lo.Without(r.terminated, caps...)
}

// TerminatedResources returns a copy of the terminated-resource capabilities
// pending delivery.
func (r *RequestResponse) TerminatedResources() []*Capability {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.terminated)
}

// AddRemoteFeatureTags merges the remote contact's feature tags.
func (r *RequestResponse) AddRemoteFeatureTags(tags []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.remoteTags == nil {
		r.remoteTags = make(map[string]struct{}, len(tags))
	}
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		r.remoteTags[tag] = struct{}{}
	}
}

// RemoteFeatureTags returns the remote contact's feature tags in sorted order.
func (r *RequestResponse) RemoteFeatureTags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	tags := make([]string, 0, len(r.remoteTags))
	for tag := range r.remoteTags {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// IsNetworkResponseOK reports whether the SIP response indicates success:
// the status is 200 or 202 and the Reason header cause, when present, is 200.
func (r *RequestResponse) IsNetworkResponseOK() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	status, ok := r.status.Get()
	if !ok || (status != StatusOK && status != StatusAccepted) {
		return false
	}
	if cause, ok := r.reasonCause.Get(); ok && cause != StatusOK {
		return false
	}
	return true
}

// IsForbidden reports whether the request was forbidden by the network.
// The Reason header cause, when present, overrides the raw status.
func (r *RequestResponse) IsForbidden() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cause, ok := r.reasonCause.Get(); ok {
		return cause == StatusForbidden
	}
	status, ok := r.status.Get()
	return ok && status == StatusForbidden
}

// IsNotFound reports whether the requested contacts were confirmed not found:
// either the Reason header cause or the raw status is 404 or 604.
func (r *RequestResponse) IsNotFound() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cause, ok := r.reasonCause.Get(); ok && isNotFoundStatus(cause) {
		return true
	}
	status, ok := r.status.Get()
	return ok && isNotFoundStatus(status)
}

func isNotFoundStatus(s ResponseStatus) bool {
	return s == StatusNotFound || s == StatusDoesNotExistAnywhere
}

// LogValue implements [slog.LogValuer].
func (r *RequestResponse) LogValue() slog.Value {
	if r == nil {
		return slog.Value{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return slog.GroupValue(
		slog.Int("internal_error", int(r.internalErr.GetOr(0))),
		slog.Int("command_error", int(r.commandErr.GetOr(0))),
		slog.Int("status", int(r.status.GetOr(0))),
		slog.String("reason_phrase", r.reasonPhrase.GetOr("")),
		slog.Int("reason_cause", int(r.reasonCause.GetOr(0))),
		slog.String("reason_text", r.reasonText.GetOr("")),
		slog.String("terminated_reason", r.terminatedReason.GetOr("")),
		slog.Duration("retry_after", r.retryAfter.GetOr(0)),
		slog.Int("cached", len(r.cached)),
		slog.Int("updated", len(r.updated)),
		slog.Int("terminated", len(r.terminated)),
		slog.Int("remote_tags", len(r.remoteTags)),
	)
}
