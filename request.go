package uce

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"braces.dev/errtrace"
	"github.com/google/uuid"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/gouce/internal/log"
)

// Request is one leg of a multi-contact capability query, tracked by the
// coordinator under its task id.
type Request interface {
	// TaskID returns the unique task id of the sub-request.
	TaskID() int64
	// Contacts returns the contacts this sub-request queries.
	Contacts() []ContactURI
	// Response returns the sub-request's result accumulator.
	Response() *RequestResponse
	// Finish marks the sub-request finished. Finishing twice is a no-op.
	Finish()
	// IsFinished reports whether the sub-request finished.
	IsFinished() bool
}

// CapabilitySubscriber is the transport collaborator that runs SUBSCRIBE
// dialogs. Subscribe initiates the dialog for the request's contacts and
// returns once the request is handed to the network; all outcomes are
// reported asynchronously through the request's Handle methods.
type CapabilitySubscriber interface {
	Subscribe(ctx context.Context, req *SubscribeRequest) error
}

// RequestState is a lifecycle state of a [SubscribeRequest].
type RequestState string

const (
	// RequestStateIdle is the state before the request is executed.
	RequestStateIdle RequestState = "idle"
	// RequestStateSubscribing is the state while network callbacks are expected.
	RequestStateSubscribing RequestState = "subscribing"
	// RequestStateFinished is the terminal state.
	RequestStateFinished RequestState = "finished"
)

const (
	reqTrigExecute = "execute"
	reqTrigFinish  = "finish"
)

// SubscribeRequestOptions contains options for a subscribe request.
type SubscribeRequestOptions struct {
	// SkipCache disables serving the request from the capability cache.
	SkipCache bool
	// Log is the logger that will be used with the request.
	// If nil, the package default logger will be used.
	Log *slog.Logger
}

func (o *SubscribeRequestOptions) skipCache() bool {
	if o == nil {
		return false
	}
	return o.SkipCache
}

func (o *SubscribeRequestOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// SubscribeRequest is one SUBSCRIBE leg of a capability query. The transport
// layer reports its progress through the Handle methods; each report mutates
// the response accumulator and is then routed to the owning coordinator via
// the manager callback.
type SubscribeRequest struct {
	taskID   int64
	coordID  atomic.Int64
	dialogID string
	contacts []ContactURI
	resp     *RequestResponse

	subscriber CapabilitySubscriber
	mgr        RequestManagerCallback
	skipCache  bool

	fsm *stateless.StateMachine
	log *slog.Logger
}

// NewSubscribeRequest creates an idle subscribe request for the given contacts.
func NewSubscribeRequest(
	taskID int64,
	contacts []ContactURI,
	subscriber CapabilitySubscriber,
	mgr RequestManagerCallback,
	opts *SubscribeRequestOptions,
) (*SubscribeRequest, error) {
	if len(contacts) == 0 {
		return nil, errtrace.Wrap(NewInvalidArgumentError("no contacts"))
	}
	if subscriber == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid subscriber"))
	}
	if mgr == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid manager callback"))
	}

	r := &SubscribeRequest{
		taskID:     taskID,
		dialogID:   uuid.NewString(),
		contacts:   contacts,
		resp:       NewRequestResponse(),
		subscriber: subscriber,
		mgr:        mgr,
		skipCache:  opts.skipCache(),
		log:        opts.log(),
	}
	r.initFSM()
	return r, nil
}

func (r *SubscribeRequest) initFSM() {
	fsm := stateless.NewStateMachine(RequestStateIdle)
	fsm.Configure(RequestStateIdle).
		Permit(reqTrigExecute, RequestStateSubscribing).
		Permit(reqTrigFinish, RequestStateFinished)
	fsm.Configure(RequestStateSubscribing).
		OnEntry(r.actSubscribing).
		Permit(reqTrigFinish, RequestStateFinished)
	fsm.Configure(RequestStateFinished).
		OnEntry(r.actFinished).
		Ignore(reqTrigFinish)
	r.fsm = fsm
}

func (r *SubscribeRequest) actSubscribing(ctx context.Context, _ ...any) error {
	r.log.LogAttrs(ctx, slog.LevelDebug, "request subscribing", slog.Any("request", r))
	return nil
}

func (r *SubscribeRequest) actFinished(ctx context.Context, _ ...any) error {
	r.log.LogAttrs(ctx, slog.LevelDebug, "request finished", slog.Any("request", r))
	return nil
}

// TaskID returns the unique task id of the sub-request.
func (r *SubscribeRequest) TaskID() int64 { return r.taskID }

// DialogID returns the SUBSCRIBE dialog identifier used with the transport.
func (r *SubscribeRequest) DialogID() string { return r.dialogID }

// Contacts returns the contacts this sub-request queries.
func (r *SubscribeRequest) Contacts() []ContactURI { return r.contacts }

// Response returns the sub-request's result accumulator.
func (r *SubscribeRequest) Response() *RequestResponse { return r.resp }

// AssignCoordinator binds the request to its owning coordinator.
// It must be called before Execute.
func (r *SubscribeRequest) AssignCoordinator(coordinatorID int64) {
	r.coordID.Store(coordinatorID)
}

// State returns the current lifecycle state.
func (r *SubscribeRequest) State() RequestState {
	return r.fsm.MustState().(RequestState) //nolint:forcetypeassert
}

// IsFinished reports whether the sub-request finished.
func (r *SubscribeRequest) IsFinished() bool {
	return r.State() == RequestStateFinished
}

// Finish marks the sub-request finished. Finishing twice is a no-op.
func (r *SubscribeRequest) Finish() {
	if err := r.fsm.Fire(reqTrigFinish); err != nil {
		r.log.LogAttrs(context.Background(), slog.LevelWarn, "finish request",
			slog.Any("request", r), slog.Any("error", err))
	}
}

// Execute runs the sub-request: when the cache fully covers the requested
// contacts the request completes without a network round trip, otherwise the
// SUBSCRIBE dialog is handed to the transport.
func (r *SubscribeRequest) Execute(ctx context.Context) error {
	if err := r.fsm.FireCtx(ctx, reqTrigExecute); err != nil {
		return errtrace.Wrap(err)
	}

	if !r.skipCache {
		if cached := r.mgr.GetCapabilitiesFromCache(r.contacts); len(cached) > 0 {
			r.resp.AddCachedCapabilities(cached)
			r.notify(RequestEventCachedCapabilityUpdate)
			if coversAllContacts(cached, r.contacts) {
				r.notify(RequestEventNoNeedRequestFromNetwork)
				return nil
			}
		}
	}

	if err := r.subscriber.Subscribe(ctx, r); err != nil {
		r.log.LogAttrs(ctx, slog.LevelError, "subscribe",
			slog.Any("request", r), slog.Any("error", err))
		r.resp.SetInternalError(ErrorGenericFailure)
		r.notify(RequestEventError)
		return errtrace.Wrap(err)
	}
	return nil
}

func coversAllContacts(caps []*Capability, contacts []ContactURI) bool {
	seen := make(map[ContactURI]struct{}, len(caps))
	for _, c := range caps {
		seen[c.Contact] = struct{}{}
	}
	for _, contact := range contacts {
		if _, ok := seen[contact]; !ok {
			return false
		}
	}
	return true
}

// HandleCommandError is called by the transport when the service rejects the
// request before any network response.
func (r *SubscribeRequest) HandleCommandError(code CommandCode) {
	r.resp.SetCommandError(code)
	r.notify(RequestEventCommandError)
}

// HandleNetworkResponse is called by the transport with the SIP response.
func (r *SubscribeRequest) HandleNetworkResponse(status ResponseStatus, reasonPhrase string) {
	r.resp.SetNetworkResponse(status, reasonPhrase)
	r.notify(RequestEventNetworkResponse)
}

// HandleNetworkResponseReason is called by the transport with the SIP
// response when it carries a Reason header.
func (r *SubscribeRequest) HandleNetworkResponseReason(status ResponseStatus, reasonPhrase string, reason Reason) {
	r.resp.SetNetworkResponseReason(status, reasonPhrase, reason)
	r.notify(RequestEventNetworkResponse)
}

// HandleCapabilitiesUpdate is called by the transport with freshly parsed
// capability records.
func (r *SubscribeRequest) HandleCapabilitiesUpdate(caps []*Capability) {
	r.resp.AddUpdatedCapabilities(caps)
	r.notify(RequestEventCapabilityUpdate)
}

// HandleResourceTerminated is called by the transport when the network
// terminates resources of the subscription.
func (r *SubscribeRequest) HandleResourceTerminated(resources []TerminatedResource) {
	r.resp.AddTerminatedResources(resources)
	r.notify(RequestEventResourceTerminated)
}

// HandleRemoteFeatureTags records the remote contact's feature tags.
func (r *SubscribeRequest) HandleRemoteFeatureTags(tags []string) {
	r.resp.AddRemoteFeatureTags(tags)
}

// HandleTerminated is called by the transport when the subscription dialog
// terminates.
func (r *SubscribeRequest) HandleTerminated(reason string, retryAfter time.Duration) {
	r.resp.SetTerminated(reason, retryAfter)
	r.notify(RequestEventTerminated)
}

func (r *SubscribeRequest) notify(event RequestEvent) {
	r.mgr.NotifyRequestUpdated(r.coordID.Load(), r.taskID, event)
}

// LogValue implements [slog.LogValuer].
func (r *SubscribeRequest) LogValue() slog.Value {
	if r == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.Int64("task_id", r.taskID),
		slog.Int64("coordinator_id", r.coordID.Load()),
		slog.String("dialog_id", r.dialogID),
		slog.Int("contacts", len(r.contacts)),
		slog.String("state", string(r.State())),
	)
}
