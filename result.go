package uce

import (
	"log/slog"
	"time"

	"github.com/ghettovoice/gouce/internal/types"
)

// RequestResult is the immutable terminal outcome of one sub-request.
// It is created exactly once, when the sub-request finishes.
type RequestResult struct {
	taskID     int64
	success    bool
	errorCode  types.Optional[ErrorCode]
	retryAfter types.Optional[time.Duration]
}

func newSuccessResult(taskID int64) *RequestResult {
	return &RequestResult{taskID: taskID, success: true}
}

func newFailedResult(taskID int64, code ErrorCode, retryAfter time.Duration) *RequestResult {
	return &RequestResult{
		taskID:     taskID,
		errorCode:  types.Some(code),
		retryAfter: types.Some(retryAfter),
	}
}

// TaskID returns the sub-request's task id.
func (r *RequestResult) TaskID() int64 { return r.taskID }

// IsSuccess reports whether the sub-request succeeded.
func (r *RequestResult) IsSuccess() bool { return r.success }

// ErrorCode returns the failure code, if the sub-request failed.
func (r *RequestResult) ErrorCode() (ErrorCode, bool) { return r.errorCode.Get() }

// RetryAfter returns the retry-after value, if the sub-request failed.
func (r *RequestResult) RetryAfter() (time.Duration, bool) { return r.retryAfter.Get() }

// retryAfterOrBelowZero is the aggregation sort key: an absent retry-after
// sorts below any real value, including zero.
func (r *RequestResult) retryAfterOrBelowZero() time.Duration {
	return r.retryAfter.GetOr(-1)
}

// LogValue implements [slog.LogValuer].
func (r *RequestResult) LogValue() slog.Value {
	if r == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.Int64("task_id", r.taskID),
		slog.Bool("success", r.success),
		slog.String("error_code", r.errorCode.GetOr(0).String()),
		slog.Duration("retry_after", r.retryAfter.GetOr(0)),
	)
}

// The functions below are the only construction rules for request results.
// Each one turns the response snapshot of a finishing sub-request into its
// terminal RequestResult.

// resultOnRequestError finishes a sub-request that failed locally.
func resultOnRequestError(taskID int64, resp *RequestResponse) *RequestResult {
	code := DefaultErrorCode
	if c, ok := resp.InternalError(); ok {
		code = c
	}
	return newFailedResult(taskID, code, resp.RetryAfter())
}

// resultOnCommandError finishes a sub-request the service rejected with a
// command error.
func resultOnCommandError(taskID int64, resp *RequestResponse) *RequestResult {
	cmd := CommandGenericFailure
	if c, ok := resp.CommandError(); ok {
		cmd = c
	}
	return newFailedResult(taskID, ErrorCodeFromCommand(cmd), resp.RetryAfter())
}

// resultOnNetworkResponse finishes a sub-request whose SIP response indicated
// a failure.
func resultOnNetworkResponse(taskID int64, resp *RequestResponse) *RequestResult {
	return newFailedResult(taskID, ErrorCodeFromResponse(resp), resp.RetryAfter())
}

// resultOnTerminated finishes a sub-request whose subscription dialog
// terminated. The request failed when the network response was not OK or the
// network asked to back off.
func resultOnTerminated(taskID int64, resp *RequestResponse) *RequestResult {
	retryAfter := resp.RetryAfter()
	if !resp.IsNetworkResponseOK() || retryAfter > 0 {
		return newFailedResult(taskID, ErrorCodeFromResponse(resp), retryAfter)
	}
	return newSuccessResult(taskID)
}

// resultOnNoNetworkNeeded finishes a sub-request served entirely from the
// cache. Always a success.
func resultOnNoNetworkNeeded(taskID int64, _ *RequestResponse) *RequestResult {
	return newSuccessResult(taskID)
}
