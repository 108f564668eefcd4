package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	internalErr := fmt.Errorf("connection reset")
	err := NewServer(CodeInternal, internalErr)

	expected := "[INTERNAL] Server Error: connection reset"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, internalErr) {
		t.Error("server error should unwrap to its internal cause")
	}

	err2 := NewConflict(CodeSubmissionDuplicate, "Team has already submitted a project")
	expected2 := "[SUBMISSION_DUPLICATE] Team has already submitted a project"
	if err2.Error() != expected2 {
		t.Errorf("Error() = %q, want %q", err2.Error(), expected2)
	}
}

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, 400},
		{KindDeadlinePassed, 400},
		{KindAlreadyGraded, 400},
		{KindInvalidScore, 400},
		{KindUnauthorized, 401},
		{KindForbidden, 403},
		{KindNotFound, 404},
		{KindConflict, 409},
		{KindUnavailable, 503},
		{KindServer, 500},
	}
	for _, tt := range tests {
		if got := tt.kind.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	base := NewDeadlinePassed("Submission deadline has passed")
	wrapped := fmt.Errorf("create submission: %w", base)

	if KindOf(wrapped) != KindDeadlinePassed {
		t.Errorf("KindOf(wrapped) = %s, want %s", KindOf(wrapped), KindDeadlinePassed)
	}
	if !Is(wrapped, KindDeadlinePassed) {
		t.Error("Is should see through wrapping")
	}
	if KindOf(errors.New("plain")) != KindServer {
		t.Error("plain errors should classify as server errors")
	}
	if Is(nil, KindServer) {
		t.Error("nil error should not match any kind")
	}
}
