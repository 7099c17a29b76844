package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("name_required", "name", "Name is required"), http.StatusBadRequest},
		{Unauthorized("login required"), http.StatusUnauthorized},
		{Conflict("slug exists"), http.StatusConflict},
		{NotFound("no product"), http.StatusNotFound},
		{Internal(errors.New("db down")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.Status(); got != tc.want {
			t.Errorf("%s: want %d, got %d", tc.err.Code, tc.want, got)
		}
	}
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create product: %w", Conflict("slug exists"))
	e, ok := As(wrapped)
	if !ok || e.Code != CodeConflict {
		t.Fatalf("expected conflict, got %v", wrapped)
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Fatal("plain errors are not domain errors")
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1: secret")
	e := Internal(cause)
	if e.Message == "" || e.Message == cause.Error() {
		t.Fatalf("internal message must be generic, got %q", e.Message)
	}
	if !errors.Is(e, cause) {
		t.Fatal("cause must stay reachable for logging")
	}
}

func TestPartialWriteUnwrap(t *testing.T) {
	cause := errors.New("write conflict")
	err := &PartialWriteError{Op: "insert", Slug: "okra", Written: 1, Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected unwrap to cause")
	}
}
