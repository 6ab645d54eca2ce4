package uce

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouce/internal/errorutil"
	"github.com/ghettovoice/gouce/internal/log"
	"github.com/ghettovoice/gouce/internal/syncutil"
)

// CapabilityCache is the persistence collaborator holding previously
// discovered capabilities.
type CapabilityCache interface {
	// Get returns cached records for the given contacts. Misses are simply
	// absent from the result.
	Get(contacts []ContactURI) []*Capability
	// Save persists the given records.
	Save(caps []*Capability)
}

// DefaultMaxContactsPerRequest caps the number of contacts carried by a
// single SUBSCRIBE request (the request-contained-list limit).
const DefaultMaxContactsPerRequest = 100

// RequestManagerOptions contains options for a request manager.
type RequestManagerOptions struct {
	// MaxContactsPerRequest caps the contacts per SUBSCRIBE leg; larger
	// queries are split into multiple sub-requests.
	// If zero, [DefaultMaxContactsPerRequest] is used.
	MaxContactsPerRequest int
	// SkipCache disables serving requests from the capability cache.
	SkipCache bool
	// TaskIDs generates task ids. If nil, a fresh [Sequence] is used.
	TaskIDs IDGenerator
	// CoordinatorIDs generates coordinator ids. If nil, a fresh [Sequence] is used.
	CoordinatorIDs IDGenerator
	// Stats is the recorder for manager statistics. Optional.
	Stats *StatsRecorder
	// Log is the logger that will be used with the manager.
	// If nil, the package default logger will be used.
	Log *slog.Logger
}

func (o *RequestManagerOptions) maxContacts() int {
	if o == nil || o.MaxContactsPerRequest <= 0 {
		return DefaultMaxContactsPerRequest
	}
	return o.MaxContactsPerRequest
}

func (o *RequestManagerOptions) skipCache() bool {
	if o == nil {
		return false
	}
	return o.SkipCache
}

func (o *RequestManagerOptions) taskIDs() IDGenerator {
	if o == nil || o.TaskIDs == nil {
		return NewSequence(0)
	}
	return o.TaskIDs
}

func (o *RequestManagerOptions) coordinatorIDs() IDGenerator {
	if o == nil || o.CoordinatorIDs == nil {
		return NewSequence(0)
	}
	return o.CoordinatorIDs
}

func (o *RequestManagerOptions) stats() *StatsRecorder {
	if o == nil {
		return nil
	}
	return o.Stats
}

func (o *RequestManagerOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// forbiddenState tracks the network-forbidden window. While the window is
// open, new capability requests fail fast without touching the network.
type forbiddenState struct {
	mu       sync.Mutex
	active   bool
	code     ErrorCode
	deadline time.Time // zero means no expiry
}

func (s *forbiddenState) set(code ErrorCode, retryAfter time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.code = code
	if retryAfter > 0 {
		s.deadline = time.Now().Add(retryAfter)
	} else {
		s.deadline = time.Time{}
	}
}

func (s *forbiddenState) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.code = 0
	s.deadline = time.Time{}
}

func (s *forbiddenState) get() (bool, ErrorCode, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return false, 0, 0
	}
	if s.deadline.IsZero() {
		return true, s.code, 0
	}
	remaining := time.Until(s.deadline)
	if remaining <= 0 {
		s.active = false
		s.code = 0
		s.deadline = time.Time{}
		return false, 0, 0
	}
	return true, s.code, remaining
}

// RequestManager owns request coordinators for one IMS subscription: it
// splits caller queries into sub-requests, assigns ids, routes sub-request
// events to coordinators, bridges capability persistence to the cache and
// tracks the network-forbidden state.
type RequestManager struct {
	subID      int
	subscriber CapabilitySubscriber
	cache      CapabilityCache

	coords   syncutil.RWMap[int64, *RequestCoordinator]
	taskIDs  IDGenerator
	coordIDs IDGenerator

	maxContacts int
	skipCache   bool
	forbidden   forbiddenState
	closed      atomic.Bool

	stats *StatsRecorder
	log   *slog.Logger
}

var _ RequestManagerCallback = (*RequestManager)(nil)

// NewRequestManager creates a manager sending capability requests through
// the given subscriber. The cache is optional; with a nil cache every request
// goes to the network.
func NewRequestManager(
	subscriptionID int,
	subscriber CapabilitySubscriber,
	cache CapabilityCache,
	opts *RequestManagerOptions,
) (*RequestManager, error) {
	if subscriber == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid subscriber"))
	}

	return &RequestManager{
		subID:       subscriptionID,
		subscriber:  subscriber,
		cache:       cache,
		taskIDs:     opts.taskIDs(),
		coordIDs:    opts.coordinatorIDs(),
		maxContacts: opts.maxContacts(),
		skipCache:   opts.skipCache() || cache == nil,
		stats:       opts.stats(),
		log:         opts.log(),
	}, nil
}

// SubscriptionID returns the IMS subscription the manager runs on.
func (m *RequestManager) SubscriptionID() int { return m.subID }

// Stats returns the manager's statistics recorder, which may be nil.
func (m *RequestManager) Stats() *StatsRecorder { return m.stats }

// IsRequestForbidden reports whether the network currently forbids capability
// requests, together with the stored error code and the remaining window.
func (m *RequestManager) IsRequestForbidden() (bool, ErrorCode, time.Duration) {
	return m.forbidden.get()
}

// SendCapabilityRequest starts a capability query for the given contacts and
// returns the id of the coordinator overseeing it. Results are reported
// through the callback: zero or more capability batches, then exactly one of
// OnComplete/OnError.
//
// While the network-forbidden window is open the query fails fast with
// [ErrRequestForbidden].
func (m *RequestManager) SendCapabilityRequest(
	ctx context.Context,
	contacts []ContactURI,
	callback CapabilitiesCallback,
) (int64, error) {
	if m.closed.Load() {
		return 0, errtrace.Wrap(ErrManagerClosed)
	}
	if len(contacts) == 0 {
		return 0, errtrace.Wrap(NewInvalidArgumentError("no contacts"))
	}
	if callback == nil {
		return 0, errtrace.Wrap(NewInvalidArgumentError("invalid callback"))
	}

	if forbidden, code, remaining := m.forbidden.get(); forbidden {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrRequestForbidden,
			"%s, retry after %s", code, remaining))
	}

	coordID := m.coordIDs.Next()

	reqs := make([]Request, 0, (len(contacts)+m.maxContacts-1)/m.maxContacts)
	subReqs := make([]*SubscribeRequest, 0, cap(reqs))
	for chunk := range chunkContacts(contacts, m.maxContacts) {
		req, err := NewSubscribeRequest(m.taskIDs.Next(), chunk, m.subscriber, m, &SubscribeRequestOptions{
			SkipCache: m.skipCache,
			Log:       m.log,
		})
		if err != nil {
			return 0, errtrace.Wrap(err)
		}
		req.AssignCoordinator(coordID)
		reqs = append(reqs, req)
		subReqs = append(subReqs, req)
	}

	coord, err := NewRequestCoordinator(coordID, m.subID, reqs, m, &RequestCoordinatorOptions{
		Callback: callback,
		Stats:    m.stats,
		Log:      m.log,
	})
	if err != nil {
		return 0, errtrace.Wrap(err)
	}

	m.coords.Set(coordID, coord)
	m.stats.RecordCoordinatorStarted()

	m.log.LogAttrs(ctx, slog.LevelDebug, "capability request sent",
		slog.Any("coordinator", coord), slog.Int("contacts", len(contacts)))

	for _, req := range subReqs {
		if err := req.Execute(ctx); err != nil {
			// The request already reported an internal error to its
			// coordinator; the query outcome carries it.
			m.log.LogAttrs(ctx, slog.LevelError, "execute request",
				slog.Any("request", req), slog.Any("error", err))
		}
	}
	return coordID, nil
}

// chunkContacts yields the contact list in chunks of at most size items.
func chunkContacts(contacts []ContactURI, size int) func(yield func([]ContactURI) bool) {
	return func(yield func([]ContactURI) bool) {
		for start := 0; start < len(contacts); start += size {
			end := min(start+size, len(contacts))
			if !yield(contacts[start:end]) {
				return
			}
		}
	}
}

// Coordinator returns the coordinator with the given id, if it is still active.
func (m *RequestManager) Coordinator(coordinatorID int64) (*RequestCoordinator, bool) {
	return m.coords.Get(coordinatorID)
}

// Close tears down every active coordinator. Requests already in flight
// deliver no further callbacks. Close is idempotent.
func (m *RequestManager) Close() {
	if !m.closed.CompareAndSwap(false, true) {
		return
	}
	for _, coord := range m.coords.Drain() {
		coord.OnFinish()
		m.stats.RecordCoordinatorFinished()
	}
	m.log.LogAttrs(context.Background(), slog.LevelDebug, "manager closed",
		slog.Int("subscription_id", m.subID))
}

// SaveCapabilities implements [RequestManagerCallback].
func (m *RequestManager) SaveCapabilities(caps []*Capability) {
	if m.cache == nil || len(caps) == 0 {
		return
	}
	m.cache.Save(caps)
	m.stats.RecordCapabilitiesSaved(len(caps))
}

// GetCapabilitiesFromCache implements [RequestManagerCallback].
func (m *RequestManager) GetCapabilitiesFromCache(contacts []ContactURI) []*Capability {
	if m.cache == nil {
		return nil
	}
	return m.cache.Get(contacts)
}

// OnRequestForbidden implements [RequestManagerCallback].
func (m *RequestManager) OnRequestForbidden(forbidden bool, code ErrorCode, retryAfter time.Duration) {
	if !forbidden {
		m.forbidden.clear()
		return
	}
	m.forbidden.set(code, retryAfter)
	m.stats.RecordForbidden()
	m.log.LogAttrs(context.Background(), slog.LevelWarn, "capability requests forbidden",
		slog.String("error_code", code.String()), slog.Duration("retry_after", retryAfter))
}

// NotifyRequestUpdated implements [RequestManagerCallback].
func (m *RequestManager) NotifyRequestUpdated(coordinatorID, taskID int64, event RequestEvent) {
	coord, ok := m.coords.Get(coordinatorID)
	if !ok {
		m.log.LogAttrs(context.Background(), slog.LevelWarn, "no coordinator for event",
			slog.Int64("coordinator_id", coordinatorID),
			slog.Int64("task_id", taskID),
			slog.String("event", event.String()))
		return
	}
	coord.OnRequestUpdated(taskID, event)
}

// NotifyRequestCoordinatorFinished implements [RequestManagerCallback].
func (m *RequestManager) NotifyRequestCoordinatorFinished(coordinatorID int64) {
	coord, ok := m.coords.GetAndDel(coordinatorID)
	if !ok {
		return
	}
	coord.OnFinish()
	m.stats.RecordCoordinatorFinished()
	m.log.LogAttrs(context.Background(), slog.LevelDebug, "coordinator discarded",
		slog.Int64("coordinator_id", coordinatorID))
}
