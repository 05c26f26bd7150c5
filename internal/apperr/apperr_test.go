package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{BadRequest("Name cannot be empty"), http.StatusBadRequest},
		{Unauthorized("Invalid username or password"), http.StatusUnauthorized},
		{NotFound("Category not found: %d", 7), http.StatusNotFound},
		{Conflict("Category already exists: %s", "Frutas"), http.StatusConflict},
		{errors.New("disk full"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusOf(tc.err); got != tc.status {
			t.Errorf("StatusOf(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestStatusOfWrapped(t *testing.T) {
	err := fmt.Errorf("creating category: %w", Conflict("Category already exists: %s", "Frutas"))
	if got := StatusOf(err); got != http.StatusConflict {
		t.Fatalf("StatusOf(wrapped) = %d, want 409", got)
	}
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("Product not found: %d", 42)
	if got, want := err.Error(), "Product not found: 42"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
