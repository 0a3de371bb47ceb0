package errs

import (
	"errors"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *HTTPError
		status int
		code   string
	}{
		{NewBadRequestError("Invalid UserId.", true, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{NewUnauthorizedError("Authentication failed.", true), http.StatusUnauthorized, "UNAUTHORIZED"},
		{NewNotFoundError("Task not found.", true, nil), http.StatusNotFound, "NOT_FOUND"},
		{NewConflictError("UserName or Email already exists.", true, nil), http.StatusConflict, "CONFLICT"},
		{NewTooManyRequestsError(), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		if tt.err.Status != tt.status || tt.err.Code != tt.code {
			t.Errorf("got %d %s, want %d %s", tt.err.Status, tt.err.Code, tt.status, tt.code)
		}
	}
}

func TestBackendErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(NewBackendError("authenticate user", cause))

	if !errors.Is(err, cause) {
		t.Fatal("BackendError must unwrap to its cause")
	}
	if got := err.Error(); got != "authenticate user: backend failure: connection refused" {
		t.Fatalf("Error() = %q", got)
	}
}
