package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_MatchesInvalidInput(t *testing.T) {
	for _, err := range []error{ErrMissingQueryInput, ErrMissingContent, NewValidationError("bad %s", "body")} {
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%v should match ErrInvalidInput", err)
		}
		wrapped := fmt.Errorf("query: %w", err)
		var ve *ValidationError
		if !errors.As(wrapped, &ve) || ve.Message != err.Error() {
			t.Errorf("errors.As through wrapping failed for %v", err)
		}
	}
}

func TestValidationError_Messages(t *testing.T) {
	if ErrMissingQueryInput.Error() != "Missing content or question" {
		t.Errorf("unexpected message %q", ErrMissingQueryInput.Error())
	}
	if ErrMissingContent.Error() != "Missing document content" {
		t.Errorf("unexpected message %q", ErrMissingContent.Error())
	}
}
