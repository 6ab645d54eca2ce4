package uce

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouce/internal/log"
)

// CapabilitiesCallback receives the results of a capability query.
//
// OnCapabilitiesReceived is invoked zero or more times, once per delivered
// batch. Exactly one of OnComplete and OnError is invoked per query:
// OnComplete when every sub-request succeeded, OnError with the failure that
// carries the largest retry-after value otherwise.
//
// Implementations backed by a remote endpoint report delivery failures via
// the returned error; such errors are logged by the coordinator and never
// abort the query bookkeeping.
type CapabilitiesCallback interface {
	OnCapabilitiesReceived(caps []*Capability) error
	OnComplete() error
	OnError(code ErrorCode, retryAfter time.Duration) error
}

// RequestManagerCallback is implemented by the owner of request coordinators.
// The coordinator and its sub-requests report through it.
type RequestManagerCallback interface {
	// SaveCapabilities persists discovered capabilities to the cache.
	SaveCapabilities(caps []*Capability)
	// GetCapabilitiesFromCache returns the cached capabilities of the given
	// contacts. Misses are simply absent from the result.
	GetCapabilitiesFromCache(contacts []ContactURI) []*Capability
	// OnRequestForbidden reports that the network forbids capability requests.
	OnRequestForbidden(forbidden bool, code ErrorCode, retryAfter time.Duration)
	// NotifyRequestUpdated routes a sub-request event to its coordinator.
	NotifyRequestUpdated(coordinatorID, taskID int64, event RequestEvent)
	// NotifyRequestCoordinatorFinished tells the owner to discard the coordinator.
	NotifyRequestCoordinatorFinished(coordinatorID int64)
}

// RequestCoordinatorOptions contains options for a request coordinator.
type RequestCoordinatorOptions struct {
	// Callback receives capability batches and the terminal result.
	Callback CapabilitiesCallback
	// Stats is the recorder for coordinator statistics. Optional.
	Stats *StatsRecorder
	// Log is the logger that will be used with the coordinator.
	// If nil, the package default logger will be used.
	Log *slog.Logger
}

func (o *RequestCoordinatorOptions) callback() CapabilitiesCallback {
	if o == nil {
		return nil
	}
	return o.Callback
}

func (o *RequestCoordinatorOptions) stats() *StatsRecorder {
	if o == nil {
		return nil
	}
	return o.Stats
}

func (o *RequestCoordinatorOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

type callbackSlot struct {
	cb CapabilitiesCallback
}

// RequestCoordinator oversees all sub-requests of one logical capability
// query. Every sub-request starts active and moves exactly once to the
// finished set with its terminal [RequestResult]; when the last one finishes
// the coordinator aggregates all results into a single terminal callback and
// notifies its owner to discard it.
type RequestCoordinator struct {
	id    int64
	subID int

	// evMu serializes event dispatch: the lookup in the activated map and
	// the handler it selects run as one unit, so concurrent terminal events
	// for the same task id cannot both pass the lookup.
	evMu sync.Mutex

	mu        sync.Mutex
	activated map[int64]Request
	finished  map[int64]*RequestResult
	// completed guards the exactly-once terminal dispatch.
	completed bool

	// done makes events arriving after teardown no-ops.
	done atomic.Bool
	cb   atomic.Pointer[callbackSlot]

	mgr   RequestManagerCallback
	stats *StatsRecorder
	log   *slog.Logger
}

// NewRequestCoordinator creates a coordinator owning the given sub-requests.
// All sub-requests start active. A coordinator created with no sub-requests
// completes immediately with success.
func NewRequestCoordinator(
	coordinatorID int64,
	subscriptionID int,
	requests []Request,
	mgr RequestManagerCallback,
	opts *RequestCoordinatorOptions,
) (*RequestCoordinator, error) {
	if mgr == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid manager callback"))
	}

	c := &RequestCoordinator{
		id:        coordinatorID,
		subID:     subscriptionID,
		activated: make(map[int64]Request, len(requests)),
		finished:  make(map[int64]*RequestResult, len(requests)),
		mgr:       mgr,
		stats:     opts.stats(),
		log:       opts.log(),
	}
	for _, req := range requests {
		if req == nil {
			return nil, errtrace.Wrap(NewInvalidArgumentError("nil request"))
		}
		if _, ok := c.activated[req.TaskID()]; ok {
			return nil, errtrace.Wrap(NewInvalidArgumentError("duplicate task id %d", req.TaskID()))
		}
		c.activated[req.TaskID()] = req
	}
	c.cb.Store(&callbackSlot{cb: opts.callback()})

	c.log.LogAttrs(context.Background(), slog.LevelDebug, "coordinator created",
		slog.Any("coordinator", c))

	// A query without sub-requests has nothing to wait for.
	c.checkAndFinishCoordinator()
	return c, nil
}

// ID returns the coordinator id assigned by the owner.
func (c *RequestCoordinator) ID() int64 { return c.id }

// SubscriptionID returns the IMS subscription the query runs on.
func (c *RequestCoordinator) SubscriptionID() int { return c.subID }

// IsFinished reports whether the coordinator was torn down.
func (c *RequestCoordinator) IsFinished() bool { return c.done.Load() }

// ActivatedRequests returns the sub-requests still waiting for a terminal event.
func (c *RequestCoordinator) ActivatedRequests() []Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	reqs := make([]Request, 0, len(c.activated))
	for _, req := range c.activated {
		reqs = append(reqs, req)
	}
	return reqs
}

// FinishedResults returns the terminal results recorded so far.
func (c *RequestCoordinator) FinishedResults() []*RequestResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	results := make([]*RequestResult, 0, len(c.finished))
	for _, res := range c.finished {
		results = append(results, res)
	}
	return results
}

// OnRequestUpdated is the single entry point of the coordinator state
// machine. Events for unknown task ids and unknown event codes are logged and
// ignored: late and duplicate transport callbacks are an expected operating
// condition, not a bug.
func (c *RequestCoordinator) OnRequestUpdated(taskID int64, event RequestEvent) {
	ctx := context.Background()
	if c.done.Load() {
		c.log.LogAttrs(ctx, slog.LevelDebug, "event on finished coordinator",
			slog.Any("coordinator", c), slog.Int64("task_id", taskID), slog.String("event", event.String()))
		return
	}

	c.evMu.Lock()
	defer c.evMu.Unlock()

	c.mu.Lock()
	req, ok := c.activated[taskID]
	c.mu.Unlock()
	if !ok {
		c.log.LogAttrs(ctx, slog.LevelWarn, "no active request for task",
			slog.Any("coordinator", c), slog.Int64("task_id", taskID), slog.String("event", event.String()))
		return
	}

	c.log.LogAttrs(ctx, slog.LevelDebug, "request updated",
		slog.Any("coordinator", c), slog.Int64("task_id", taskID), slog.String("event", event.String()))

	switch event {
	case RequestEventError:
		c.handleRequestError(req)
	case RequestEventCommandError:
		c.handleCommandError(req)
	case RequestEventNetworkResponse:
		c.handleNetworkResponse(req)
	case RequestEventCapabilityUpdate:
		c.handleCapabilitiesUpdated(req)
	case RequestEventResourceTerminated:
		c.handleResourceTerminated(req)
	case RequestEventCachedCapabilityUpdate:
		c.handleCachedCapabilityUpdated(req)
	case RequestEventTerminated:
		c.handleTerminated(req)
	case RequestEventNoNeedRequestFromNetwork:
		c.handleNoNeedRequestFromNetwork(req)
	default:
		c.log.LogAttrs(ctx, slog.LevelWarn, "unknown request event",
			slog.Any("coordinator", c), slog.Int64("task_id", taskID), slog.Int("event", int(event)))
	}

	c.checkAndFinishCoordinator()
}

// handleRequestError finishes a sub-request that hit a local error.
func (c *RequestCoordinator) handleRequestError(req Request) {
	req.Finish()
	c.moveToFinished(req.TaskID(), resultOnRequestError(req.TaskID(), req.Response()))
}

// handleCommandError finishes a sub-request the service rejected.
func (c *RequestCoordinator) handleCommandError(req Request) {
	req.Finish()
	c.moveToFinished(req.TaskID(), resultOnCommandError(req.TaskID(), req.Response()))
}

// handleNetworkResponse inspects the SIP response. A success keeps the
// sub-request active and waits for subsequent callbacks. A failure is final:
// there is no subsequent callback, so the forbidden and not-found states are
// resolved here and the sub-request finishes.
func (c *RequestCoordinator) handleNetworkResponse(req Request) {
	resp := req.Response()
	if resp.IsNetworkResponseOK() {
		return
	}

	taskID := req.TaskID()
	result := resultOnNetworkResponse(taskID, resp)

	if resp.IsForbidden() {
		code, ok := result.ErrorCode()
		if !ok {
			code = DefaultErrorCode
		}
		retryAfter, _ := result.RetryAfter()
		c.mgr.OnRequestForbidden(true, code, retryAfter)
	}

	if resp.IsNotFound() {
		// The caller still receives an explicit not-found record for every
		// requested contact rather than silence.
		notFound := make([]*Capability, 0, len(req.Contacts()))
		for _, contact := range req.Contacts() {
			notFound = append(notFound, NewNotFoundCapability(contact))
		}
		resp.AddUpdatedCapabilities(notFound)
	}

	if updated := resp.UpdatedCapabilities(); len(updated) > 0 {
		c.mgr.SaveCapabilities(updated)
		c.deliverCapabilities(updated)
		resp.RemoveUpdatedCapabilities(updated)
	}

	req.Finish()
	c.moveToFinished(taskID, result)
}

// handleCapabilitiesUpdated persists and delivers freshly discovered
// capabilities. The sub-request stays active.
func (c *RequestCoordinator) handleCapabilitiesUpdated(req Request) {
	resp := req.Response()
	updated := resp.UpdatedCapabilities()
	if len(updated) == 0 {
		return
	}

	c.mgr.SaveCapabilities(updated)
	c.deliverCapabilities(updated)
	resp.RemoveUpdatedCapabilities(updated)
}

// handleResourceTerminated persists and delivers terminated-resource
// capabilities. The sub-request stays active.
func (c *RequestCoordinator) handleResourceTerminated(req Request) {
	resp := req.Response()
	terminated := resp.TerminatedResources()
	if len(terminated) == 0 {
		return
	}

	c.mgr.SaveCapabilities(terminated)
	c.deliverCapabilities(terminated)
	resp.RemoveTerminatedResources(terminated)
}

// handleCachedCapabilityUpdated delivers capabilities served from the cache.
// No persistence: they are already cached. The sub-request stays active.
func (c *RequestCoordinator) handleCachedCapabilityUpdated(req Request) {
	resp := req.Response()
	cached := resp.CachedCapabilities()
	if len(cached) == 0 {
		return
	}

	c.deliverCapabilities(cached)
	resp.RemoveCachedCapabilities()
}

// handleTerminated finishes a sub-request whose subscription dialog ended.
func (c *RequestCoordinator) handleTerminated(req Request) {
	req.Finish()
	c.moveToFinished(req.TaskID(), resultOnTerminated(req.TaskID(), req.Response()))
}

// handleNoNeedRequestFromNetwork finishes a sub-request served entirely from
// the cache.
func (c *RequestCoordinator) handleNoNeedRequestFromNetwork(req Request) {
	req.Finish()
	c.moveToFinished(req.TaskID(), resultOnNoNetworkNeeded(req.TaskID(), req.Response()))
}

func (c *RequestCoordinator) moveToFinished(taskID int64, result *RequestResult) {
	c.mu.Lock()
	delete(c.activated, taskID)
	c.finished[taskID] = result
	c.mu.Unlock()

	c.stats.RecordRequestFinished(result.IsSuccess())
	c.log.LogAttrs(context.Background(), slog.LevelDebug, "request moved to finished",
		slog.Any("coordinator", c), slog.Any("result", result))
}

// checkAndFinishCoordinator dispatches the terminal callback once the last
// sub-request has finished. Among the failed results the one with the maximum
// retry-after wins (an absent retry-after sorts below zero); with no failures
// the query completed successfully. The owner is always notified afterwards.
func (c *RequestCoordinator) checkAndFinishCoordinator() {
	c.mu.Lock()
	if len(c.activated) > 0 || c.completed {
		c.mu.Unlock()
		return
	}
	c.completed = true

	var worst *RequestResult
	for _, res := range c.finished {
		if res.IsSuccess() {
			continue
		}
		if worst == nil || res.retryAfterOrBelowZero() > worst.retryAfterOrBelowZero() {
			worst = res
		}
	}
	c.mu.Unlock()

	if worst != nil {
		code, ok := worst.ErrorCode()
		if !ok {
			code = DefaultErrorCode
		}
		retryAfter, _ := worst.RetryAfter()
		c.notifyError(code, retryAfter)
	} else {
		c.notifyComplete()
	}

	c.mgr.NotifyRequestCoordinatorFinished(c.id)

	c.log.LogAttrs(context.Background(), slog.LevelDebug, "coordinator completed",
		slog.Any("coordinator", c))
}

// OnFinish tears the coordinator down: the caller callback is dropped and any
// further events become no-ops. It defends against late transport callbacks
// racing with teardown.
func (c *RequestCoordinator) OnFinish() {
	c.done.Store(true)
	c.cb.Store(&callbackSlot{})
	c.log.LogAttrs(context.Background(), slog.LevelDebug, "coordinator finished",
		slog.Any("coordinator", c))
}

func (c *RequestCoordinator) deliverCapabilities(caps []*Capability) {
	ctx := context.Background()
	slot := c.cb.Load()
	if slot == nil || slot.cb == nil {
		c.log.LogAttrs(ctx, slog.LevelDebug, "no capabilities callback, delivery skipped",
			slog.Any("coordinator", c), slog.Int("size", len(caps)))
		return
	}
	if err := slot.cb.OnCapabilitiesReceived(caps); err != nil {
		c.log.LogAttrs(ctx, slog.LevelWarn, "deliver capabilities",
			slog.Any("coordinator", c), slog.Any("error", err))
		return
	}
	c.stats.RecordCapabilitiesDelivered(len(caps))
}

func (c *RequestCoordinator) notifyComplete() {
	slot := c.cb.Load()
	if slot == nil || slot.cb == nil {
		return
	}
	if err := slot.cb.OnComplete(); err != nil {
		c.log.LogAttrs(context.Background(), slog.LevelWarn, "notify complete",
			slog.Any("coordinator", c), slog.Any("error", err))
	}
}

func (c *RequestCoordinator) notifyError(code ErrorCode, retryAfter time.Duration) {
	slot := c.cb.Load()
	if slot == nil || slot.cb == nil {
		return
	}
	if err := slot.cb.OnError(code, retryAfter); err != nil {
		c.log.LogAttrs(context.Background(), slog.LevelWarn, "notify error",
			slog.Any("coordinator", c), slog.Any("error", err))
	}
}

// LogValue implements [slog.LogValuer].
func (c *RequestCoordinator) LogValue() slog.Value {
	if c == nil {
		return slog.Value{}
	}
	c.mu.Lock()
	active, finished := len(c.activated), len(c.finished)
	c.mu.Unlock()
	return slog.GroupValue(
		slog.Int64("id", c.id),
		slog.Int("subscription_id", c.subID),
		slog.Int("active", active),
		slog.Int("finished", finished),
	)
}
