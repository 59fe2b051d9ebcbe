package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestWrappedWriteFailuresKeepSentinelAndCause(t *testing.T) {
	cause := stdErrors.New("connection reset")
	cases := []struct {
		name     string
		sentinel error
	}{
		{"order header", ErrOrderHeaderWriteFailed},
		{"order items", ErrOrderItemsWriteFailed},
		{"reservation", ErrReservationWriteFailed},
		{"inquiry", ErrInquiryWriteFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := fmt.Errorf("%w: %w", tc.sentinel, cause)
			if !stdErrors.Is(err, tc.sentinel) {
				t.Fatalf("expected %v in chain of %v", tc.sentinel, err)
			}
			if !stdErrors.Is(err, cause) {
				t.Fatalf("expected cause in chain of %v", err)
			}
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrAlreadyExists, ErrUserNotVerified, ErrProductNotFound,
		ErrOrderHeaderWriteFailed, ErrOrderItemsWriteFailed, ErrReservationWriteFailed,
		ErrInquiryWriteFailed, ErrNotificationFailed, ErrInvalidStatus, ErrInvalidOrder,
		ErrInvalidReservation, ErrInvalidInquiry,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && stdErrors.Is(a, b) {
				t.Fatalf("%v unexpectedly matches %v", a, b)
			}
		}
	}
}
