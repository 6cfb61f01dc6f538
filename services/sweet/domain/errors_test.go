package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrSweetNotFound, "sweet not found"},
		{ErrSweetAlreadyExists, "sweet already exists"},
		{ErrInvalidSweetName, "invalid sweet name"},
		{ErrInvalidSweet, "invalid sweet"},
		{ErrInvalidQuantity, "quantity must be positive"},
		{ErrInsufficientStock, "insufficient stock"},
	}
	for _, c := range cases {
		if c.err == nil {
			t.Fatalf("sentinel for %q must not be nil", c.want)
		}
		if c.err.Error() != c.want {
			t.Fatalf("unexpected message: %q, want %q", c.err.Error(), c.want)
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrSweetNotFound)
	if !errors.Is(wrapped, ErrSweetNotFound) {
		t.Fatal("errors.Is must match wrapped ErrSweetNotFound")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrInvalidSweetName, errors.New("too long"))
	if !errors.Is(wrapped2, ErrInvalidSweetName) {
		t.Fatal("errors.Is must match double-wrapped ErrInvalidSweetName")
	}

	if errors.Is(ErrInsufficientStock, ErrInvalidQuantity) {
		t.Fatal("distinct sentinels must not match each other")
	}
}
