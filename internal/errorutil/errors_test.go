package errorutil_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/gouce/internal/errorutil"
)

const errSentinel errorutil.Error = "sentinel"

func TestNewWrapperError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		args     []any
		wantMsg  string
		wantSame bool
	}{
		{"no args returns sentinel", nil, "sentinel", true},
		{"string arg", []any{"context"}, "sentinel: context", false},
		{"format string", []any{"id %d", 7}, "sentinel: id 7", false},
		{"error arg", []any{errors.New("cause")}, "sentinel: cause", false},
		{"unsupported arg returns sentinel", []any{42}, "sentinel", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := errorutil.NewWrapperError(errSentinel, c.args...)
			if !errors.Is(got, errSentinel) {
				t.Fatalf("errors.Is(got, errSentinel) = false, want true; got = %v", got)
			}
			if got.Error() != c.wantMsg {
				t.Errorf("got.Error() = %q, want %q", got.Error(), c.wantMsg)
			}
			if same := got == error(errSentinel); same != c.wantSame {
				t.Errorf("got == errSentinel is %v, want %v", same, c.wantSame)
			}
		})
	}

	t.Run("already wrapped error passes through", func(t *testing.T) {
		t.Parallel()

		inner := errorutil.NewWrapperError(errSentinel, "context")
		got := errorutil.NewWrapperError(errSentinel, inner)
		if got != inner {
			t.Errorf("errorutil.NewWrapperError(errSentinel, inner) = %v, want inner unchanged", got)
		}
	})
}

func TestNewInvalidArgumentError(t *testing.T) {
	t.Parallel()

	got := errorutil.NewInvalidArgumentError("bad value %q", "x")
	if !errors.Is(got, errorutil.ErrInvalidArgument) {
		t.Fatalf("errors.Is(got, ErrInvalidArgument) = false, want true; got = %v", got)
	}
	if want := `invalid argument: bad value "x"`; got.Error() != want {
		t.Errorf("got.Error() = %q, want %q", got.Error(), want)
	}
}

func TestErrorf(t *testing.T) {
	t.Parallel()

	got := errorutil.Errorf("code %d", 5)
	if got.Error() != "code 5" {
		t.Errorf("got.Error() = %q, want \"code 5\"", got.Error())
	}
}
