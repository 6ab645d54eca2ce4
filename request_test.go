package uce_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/mock/gomock"

	uce "github.com/ghettovoice/gouce"
	"github.com/ghettovoice/gouce/internal/mocks"
)

// noopSubscriber accepts every SUBSCRIBE and reports nothing back.
type noopSubscriber struct{}

func (noopSubscriber) Subscribe(context.Context, *uce.SubscribeRequest) error { return nil }

func TestNewSubscribeRequest(t *testing.T) {
	t.Parallel()

	contacts := []uce.ContactURI{"sip:alice@example.com"}

	cases := []struct {
		name       string
		contacts   []uce.ContactURI
		subscriber uce.CapabilitySubscriber
		mgr        uce.RequestManagerCallback
		wantErr    error
	}{
		{"no contacts", nil, noopSubscriber{}, &managerRecorder{}, uce.ErrInvalidArgument},
		{"nil subscriber", contacts, nil, &managerRecorder{}, uce.ErrInvalidArgument},
		{"nil manager callback", contacts, noopSubscriber{}, nil, uce.ErrInvalidArgument},
		{"success", contacts, noopSubscriber{}, &managerRecorder{}, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			req, got := uce.NewSubscribeRequest(1, c.contacts, c.subscriber, c.mgr, nil)
			if diff := cmp.Diff(got, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("uce.NewSubscribeRequest(1, contacts, sub, mgr, nil) error = %v, want %v\ndiff (-got +want):\n%v",
					got, c.wantErr, diff,
				)
			}
			if c.wantErr != nil {
				return
			}
			if got := req.State(); got != uce.RequestStateIdle {
				t.Errorf("req.State() = %q, want %q", got, uce.RequestStateIdle)
			}
			if req.DialogID() == "" {
				t.Error("req.DialogID() is empty, want generated")
			}
		})
	}
}

func TestSubscribeRequest_Lifecycle(t *testing.T) {
	t.Parallel()

	req, err := uce.NewSubscribeRequest(1, []uce.ContactURI{"sip:alice@example.com"},
		noopSubscriber{}, &managerRecorder{}, &uce.SubscribeRequestOptions{SkipCache: true, Log: testLog})
	if err != nil {
		t.Fatalf("uce.NewSubscribeRequest(1, contacts, sub, mgr, opts) error = %v, want nil", err)
	}
	req.AssignCoordinator(5)

	if err := req.Execute(context.Background()); err != nil {
		t.Fatalf("req.Execute(ctx) error = %v, want nil", err)
	}
	if got := req.State(); got != uce.RequestStateSubscribing {
		t.Fatalf("req.State() = %q, want %q", got, uce.RequestStateSubscribing)
	}

	req.Finish()
	if got := req.State(); got != uce.RequestStateFinished {
		t.Fatalf("req.State() = %q, want %q", got, uce.RequestStateFinished)
	}
	if !req.IsFinished() {
		t.Error("req.IsFinished() = false, want true")
	}

	req.Finish()
	if got := req.State(); got != uce.RequestStateFinished {
		t.Errorf("req.State() after duplicate finish = %q, want %q", got, uce.RequestStateFinished)
	}
}

func TestSubscribeRequest_Execute(t *testing.T) {
	t.Parallel()

	contacts := []uce.ContactURI{"sip:alice@example.com", "sip:bob@example.com"}

	t.Run("cache covers all contacts", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		sub := mocks.NewMockCapabilitySubscriber(ctrl)

		mgr := &managerRecorder{cached: []*uce.Capability{
			{Contact: "sip:alice@example.com", Source: uce.SourceCached, Result: uce.ResultFound},
			{Contact: "sip:bob@example.com", Source: uce.SourceCached, Result: uce.ResultFound},
		}}

		req, err := uce.NewSubscribeRequest(1, contacts, sub, mgr, &uce.SubscribeRequestOptions{Log: testLog})
		if err != nil {
			t.Fatalf("uce.NewSubscribeRequest(1, contacts, sub, mgr, opts) error = %v, want nil", err)
		}
		req.AssignCoordinator(5)

		if err := req.Execute(context.Background()); err != nil {
			t.Fatalf("req.Execute(ctx) error = %v, want nil", err)
		}

		want := []updateCall{
			{coordinatorID: 5, taskID: 1, event: uce.RequestEventCachedCapabilityUpdate},
			{coordinatorID: 5, taskID: 1, event: uce.RequestEventNoNeedRequestFromNetwork},
		}
		if diff := cmp.Diff(mgr.routedUpdates(), want, cmp.AllowUnexported(updateCall{})); diff != "" {
			t.Errorf("mgr.routedUpdates()\ndiff (-got +want):\n%v", diff)
		}
		if got := len(req.Response().CachedCapabilities()); got != 2 {
			t.Errorf("len(resp.CachedCapabilities()) = %d, want 2", got)
		}
	})

	t.Run("cache covers some contacts", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		sub := mocks.NewMockCapabilitySubscriber(ctrl)
		sub.EXPECT().
			Subscribe(gomock.Any(), gomock.Any()).
			Return(nil).
			Times(1)

		mgr := &managerRecorder{cached: []*uce.Capability{
			{Contact: "sip:alice@example.com", Source: uce.SourceCached, Result: uce.ResultFound},
		}}

		req, err := uce.NewSubscribeRequest(1, contacts, sub, mgr, &uce.SubscribeRequestOptions{Log: testLog})
		if err != nil {
			t.Fatalf("uce.NewSubscribeRequest(1, contacts, sub, mgr, opts) error = %v, want nil", err)
		}
		req.AssignCoordinator(5)

		if err := req.Execute(context.Background()); err != nil {
			t.Fatalf("req.Execute(ctx) error = %v, want nil", err)
		}

		want := []updateCall{
			{coordinatorID: 5, taskID: 1, event: uce.RequestEventCachedCapabilityUpdate},
		}
		if diff := cmp.Diff(mgr.routedUpdates(), want, cmp.AllowUnexported(updateCall{})); diff != "" {
			t.Errorf("mgr.routedUpdates()\ndiff (-got +want):\n%v", diff)
		}
	})

	t.Run("skip cache", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		sub := mocks.NewMockCapabilitySubscriber(ctrl)
		sub.EXPECT().
			Subscribe(gomock.Any(), gomock.Any()).
			Return(nil).
			Times(1)

		// The recorder holds cached records, but they must not be consulted.
		mgr := &managerRecorder{cached: []*uce.Capability{
			{Contact: "sip:alice@example.com", Source: uce.SourceCached, Result: uce.ResultFound},
			{Contact: "sip:bob@example.com", Source: uce.SourceCached, Result: uce.ResultFound},
		}}

		req, err := uce.NewSubscribeRequest(1, contacts, sub, mgr,
			&uce.SubscribeRequestOptions{SkipCache: true, Log: testLog})
		if err != nil {
			t.Fatalf("uce.NewSubscribeRequest(1, contacts, sub, mgr, opts) error = %v, want nil", err)
		}
		req.AssignCoordinator(5)

		if err := req.Execute(context.Background()); err != nil {
			t.Fatalf("req.Execute(ctx) error = %v, want nil", err)
		}
		if got := len(mgr.routedUpdates()); got != 0 {
			t.Errorf("len(mgr.routedUpdates()) = %d, want 0", got)
		}
		if got := len(req.Response().CachedCapabilities()); got != 0 {
			t.Errorf("len(resp.CachedCapabilities()) = %d, want 0", got)
		}
	})

	t.Run("subscribe error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("transport down")

		ctrl := gomock.NewController(t)
		sub := mocks.NewMockCapabilitySubscriber(ctrl)
		sub.EXPECT().
			Subscribe(gomock.Any(), gomock.Any()).
			Return(wantErr).
			Times(1)

		mgr := &managerRecorder{}
		req, err := uce.NewSubscribeRequest(1, contacts, sub, mgr,
			&uce.SubscribeRequestOptions{SkipCache: true, Log: testLog})
		if err != nil {
			t.Fatalf("uce.NewSubscribeRequest(1, contacts, sub, mgr, opts) error = %v, want nil", err)
		}
		req.AssignCoordinator(5)

		got := req.Execute(context.Background())
		if diff := cmp.Diff(got, wantErr, cmpopts.EquateErrors()); diff != "" {
			t.Fatalf("req.Execute(ctx) error = %v, want %v\ndiff (-got +want):\n%v", got, wantErr, diff)
		}

		if code, ok := req.Response().InternalError(); !ok || code != uce.ErrorGenericFailure {
			t.Errorf("resp.InternalError() = %v, %v, want %v, true", code, ok, uce.ErrorGenericFailure)
		}
		want := []updateCall{
			{coordinatorID: 5, taskID: 1, event: uce.RequestEventError},
		}
		if diff := cmp.Diff(mgr.routedUpdates(), want, cmp.AllowUnexported(updateCall{})); diff != "" {
			t.Errorf("mgr.routedUpdates()\ndiff (-got +want):\n%v", diff)
		}
	})
}

func TestSubscribeRequest_HandleMethods(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		handle    func(req *uce.SubscribeRequest)
		wantEvent uce.RequestEvent
		check     func(t *testing.T, resp *uce.RequestResponse)
	}{
		{
			"command error",
			func(req *uce.SubscribeRequest) { req.HandleCommandError(uce.CommandNotFound) },
			uce.RequestEventCommandError,
			func(t *testing.T, resp *uce.RequestResponse) {
				if got, ok := resp.CommandError(); !ok || got != uce.CommandNotFound {
					t.Errorf("resp.CommandError() = %v, %v, want %v, true", got, ok, uce.CommandNotFound)
				}
			},
		},
		{
			"network response",
			func(req *uce.SubscribeRequest) {
				req.HandleNetworkResponse(uce.StatusOK, uce.ReasonPhraseOK)
			},
			uce.RequestEventNetworkResponse,
			func(t *testing.T, resp *uce.RequestResponse) {
				if got, ok := resp.NetworkStatus(); !ok || got != uce.StatusOK {
					t.Errorf("resp.NetworkStatus() = %v, %v, want %v, true", got, ok, uce.StatusOK)
				}
			},
		},
		{
			"network response with reason",
			func(req *uce.SubscribeRequest) {
				req.HandleNetworkResponseReason(uce.StatusOK, uce.ReasonPhraseOK, uce.Reason{
					Protocol: "SIP",
					Cause:    uce.StatusForbidden,
					Text:     uce.ReasonPhraseNotRegistered,
				})
			},
			uce.RequestEventNetworkResponse,
			func(t *testing.T, resp *uce.RequestResponse) {
				if got, ok := resp.ReasonHeaderCause(); !ok || got != uce.StatusForbidden {
					t.Errorf("resp.ReasonHeaderCause() = %v, %v, want %v, true", got, ok, uce.StatusForbidden)
				}
			},
		},
		{
			"capabilities update",
			func(req *uce.SubscribeRequest) {
				req.HandleCapabilitiesUpdate([]*uce.Capability{
					{Contact: "sip:alice@example.com", Result: uce.ResultFound},
				})
			},
			uce.RequestEventCapabilityUpdate,
			func(t *testing.T, resp *uce.RequestResponse) {
				if got := len(resp.UpdatedCapabilities()); got != 1 {
					t.Errorf("len(resp.UpdatedCapabilities()) = %d, want 1", got)
				}
			},
		},
		{
			"resource terminated",
			func(req *uce.SubscribeRequest) {
				req.HandleResourceTerminated([]uce.TerminatedResource{
					{Contact: "sip:alice@example.com", Reason: "noresource"},
				})
			},
			uce.RequestEventResourceTerminated,
			func(t *testing.T, resp *uce.RequestResponse) {
				if got := len(resp.TerminatedResources()); got != 1 {
					t.Errorf("len(resp.TerminatedResources()) = %d, want 1", got)
				}
			},
		},
		{
			"terminated",
			func(req *uce.SubscribeRequest) { req.HandleTerminated("timeout", 15*time.Second) },
			uce.RequestEventTerminated,
			func(t *testing.T, resp *uce.RequestResponse) {
				if got := resp.RetryAfter(); got != 15*time.Second {
					t.Errorf("resp.RetryAfter() = %v, want 15s", got)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			mgr := &managerRecorder{}
			req, err := uce.NewSubscribeRequest(1, []uce.ContactURI{"sip:alice@example.com"},
				noopSubscriber{}, mgr, &uce.SubscribeRequestOptions{Log: testLog})
			if err != nil {
				t.Fatalf("uce.NewSubscribeRequest(1, contacts, sub, mgr, opts) error = %v, want nil", err)
			}
			req.AssignCoordinator(5)

			c.handle(req)

			want := []updateCall{{coordinatorID: 5, taskID: 1, event: c.wantEvent}}
			if diff := cmp.Diff(mgr.routedUpdates(), want, cmp.AllowUnexported(updateCall{})); diff != "" {
				t.Errorf("mgr.routedUpdates()\ndiff (-got +want):\n%v", diff)
			}
			c.check(t, req.Response())
		})
	}
}
