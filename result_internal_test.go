package uce

import (
	"testing"
	"time"
)

func TestResultOnRequestError(t *testing.T) {
	t.Parallel()

	t.Run("no recorded error", func(t *testing.T) {
		t.Parallel()

		res := resultOnRequestError(1, NewRequestResponse())
		if res.IsSuccess() {
			t.Fatal("res.IsSuccess() = true, want false")
		}
		if got, _ := res.ErrorCode(); got != DefaultErrorCode {
			t.Errorf("res.ErrorCode() = %v, want %v", got, DefaultErrorCode)
		}
	})

	t.Run("recorded internal error", func(t *testing.T) {
		t.Parallel()

		resp := NewRequestResponse()
		resp.SetInternalError(ErrorLostNetwork)
		res := resultOnRequestError(1, resp)
		if got, _ := res.ErrorCode(); got != ErrorLostNetwork {
			t.Errorf("res.ErrorCode() = %v, want %v", got, ErrorLostNetwork)
		}
	})
}

func TestResultOnCommandError(t *testing.T) {
	t.Parallel()

	t.Run("no recorded command", func(t *testing.T) {
		t.Parallel()

		res := resultOnCommandError(1, NewRequestResponse())
		if res.IsSuccess() {
			t.Fatal("res.IsSuccess() = true, want false")
		}
		if got, _ := res.ErrorCode(); got != ErrorGenericFailure {
			t.Errorf("res.ErrorCode() = %v, want %v", got, ErrorGenericFailure)
		}
	})

	t.Run("recorded command", func(t *testing.T) {
		t.Parallel()

		resp := NewRequestResponse()
		resp.SetCommandError(CommandRequestTimeout)
		res := resultOnCommandError(1, resp)
		if got, _ := res.ErrorCode(); got != ErrorRequestTimeout {
			t.Errorf("res.ErrorCode() = %v, want %v", got, ErrorRequestTimeout)
		}
	})
}

func TestResultOnNetworkResponse(t *testing.T) {
	t.Parallel()

	resp := NewRequestResponse()
	resp.SetNetworkResponse(StatusForbidden, ReasonPhraseNotRegistered)
	resp.SetTerminated("", 40*time.Second)

	res := resultOnNetworkResponse(7, resp)
	if res.IsSuccess() {
		t.Fatal("res.IsSuccess() = true, want false")
	}
	if got := res.TaskID(); got != 7 {
		t.Errorf("res.TaskID() = %d, want 7", got)
	}
	if got, _ := res.ErrorCode(); got != ErrorNotRegistered {
		t.Errorf("res.ErrorCode() = %v, want %v", got, ErrorNotRegistered)
	}
	if got, _ := res.RetryAfter(); got != 40*time.Second {
		t.Errorf("res.RetryAfter() = %v, want 40s", got)
	}
}

func TestResultOnTerminated(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		resp        func() *RequestResponse
		wantSuccess bool
	}{
		{
			"ok response without backoff",
			func() *RequestResponse {
				resp := NewRequestResponse()
				resp.SetNetworkResponse(StatusOK, ReasonPhraseOK)
				resp.SetTerminated("", 0)
				return resp
			},
			true,
		},
		{
			"ok response with backoff",
			func() *RequestResponse {
				resp := NewRequestResponse()
				resp.SetNetworkResponse(StatusOK, ReasonPhraseOK)
				resp.SetTerminated("deactivated", 10*time.Second)
				return resp
			},
			false,
		},
		{
			"failed response",
			func() *RequestResponse {
				resp := NewRequestResponse()
				resp.SetNetworkResponse(StatusServiceUnavailable, "Service Unavailable")
				resp.SetTerminated("", 0)
				return resp
			},
			false,
		},
		{
			"no response at all",
			func() *RequestResponse { return NewRequestResponse() },
			false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			res := resultOnTerminated(1, c.resp())
			if got := res.IsSuccess(); got != c.wantSuccess {
				t.Errorf("res.IsSuccess() = %v, want %v", got, c.wantSuccess)
			}
		})
	}
}

func TestResultOnNoNetworkNeeded(t *testing.T) {
	t.Parallel()

	res := resultOnNoNetworkNeeded(3, NewRequestResponse())
	if !res.IsSuccess() {
		t.Fatal("res.IsSuccess() = false, want true")
	}
	if _, ok := res.ErrorCode(); ok {
		t.Error("res.ErrorCode() present, want absent")
	}
	if _, ok := res.RetryAfter(); ok {
		t.Error("res.RetryAfter() present, want absent")
	}
}

func TestRequestResult_RetryAfterOrBelowZero(t *testing.T) {
	t.Parallel()

	success := newSuccessResult(1)
	if got := success.retryAfterOrBelowZero(); got >= 0 {
		t.Errorf("success.retryAfterOrBelowZero() = %v, want below zero", got)
	}

	failed := newFailedResult(2, ErrorGenericFailure, 0)
	if got := failed.retryAfterOrBelowZero(); got != 0 {
		t.Errorf("failed.retryAfterOrBelowZero() = %v, want 0", got)
	}
}
