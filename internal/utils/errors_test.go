package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	t.Parallel()

	err := NewDomainErrorf(ErrOverReceipt, "line item %d over-received", 7)
	if CodeOf(err) != ErrOverReceipt {
		t.Errorf("CodeOf = %s, want %s", CodeOf(err), ErrOverReceipt)
	}

	wrapped := fmt.Errorf("receiving failed: %w", err)
	if CodeOf(wrapped) != ErrOverReceipt {
		t.Errorf("CodeOf(wrapped) = %s, want %s", CodeOf(wrapped), ErrOverReceipt)
	}

	if CodeOf(errors.New("plain")) != "" {
		t.Error("plain errors should have no code")
	}
	if CodeOf(nil) != "" {
		t.Error("nil should have no code")
	}
}

func TestDomainErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewDomainError(ErrValidation, "vendor is required")
	if err.Error() != "VALIDATION: vendor is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}
