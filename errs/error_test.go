package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"moviebuffs/errs"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *errs.Error
		expected string
	}{
		{
			name:     "not found error",
			err:      &errs.Error{Code: errs.ENOTFOUND, Message: "movie not found"},
			expected: "application error: code=not_found message=movie not found",
		},
		{
			name:     "invalid error",
			err:      &errs.Error{Code: errs.EINVALID, Message: "unsupported sort property"},
			expected: "application error: code=invalid message=unsupported sort property",
		},
		{
			name:     "empty message",
			err:      &errs.Error{Code: errs.EINTERNAL},
			expected: "application error: code=internal message=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "application error", err: errs.Errorf(errs.ENOTFOUND, "movie not found"), expected: errs.ENOTFOUND},
		{name: "wrapped with fmt", err: fmt.Errorf("find movie: %w", errs.Errorf(errs.EINVALID, "bad id")), expected: errs.EINVALID},
		{name: "joined", err: errors.Join(errs.Errorf(errs.ECONFLICT, "duplicate slug")), expected: errs.ECONFLICT},
		{name: "plain error", err: errors.New("connection refused"), expected: errs.EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errs.ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "application error", err: errs.Errorf(errs.ENOTFOUND, "movie %d not found", 42), expected: "movie 42 not found"},
		{name: "wrapped application error", err: fmt.Errorf("lookup: %w", errs.Errorf(errs.EINVALID, "bad slug")), expected: "bad slug"},
		{name: "plain error is hidden", err: errors.New("pq: relation \"movies\" does not exist"), expected: "Internal error."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errs.ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorf(t *testing.T) {
	err := errs.Errorf(errs.ENOTIMPLEMENTED, "driver %q is not supported", "mysql")

	if err.Code != errs.ENOTIMPLEMENTED {
		t.Errorf("Errorf().Code = %q, want %q", err.Code, errs.ENOTIMPLEMENTED)
	}
	if err.Message != `driver "mysql" is not supported` {
		t.Errorf("Errorf().Message = %q", err.Message)
	}
}

func TestErrorCodes(t *testing.T) {
	expected := map[string]string{
		errs.ECONFLICT:       "conflict",
		errs.EINTERNAL:       "internal",
		errs.EINVALID:        "invalid",
		errs.ENOTFOUND:       "not_found",
		errs.ENOTIMPLEMENTED: "not_implemented",
		errs.EUNAUTHORIZED:   "unauthorized",
	}

	for code, want := range expected {
		if code != want {
			t.Errorf("code = %q, want %q", code, want)
		}
	}
}
