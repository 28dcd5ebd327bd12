package errs

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindUnknown},
		{errors.New("plain"), KindUnknown},
		{NotFound("item", "I001"), KindNotFound},
		{fmt.Errorf("load: %w", DuplicateKey("user", "alice")), KindDuplicateKey},
		{InvalidState("purchase order", "PO-2024-001", "RECEIVED", "receive"), KindInvalidState},
		{&InsufficientStockError{ItemCode: "I001", Current: 2, Delta: -3}, KindInsufficientStock},
		{&CorruptRecordError{Path: "items.txt", Line: 4, Err: errors.New("bad")}, KindCorruptRecord},
		{IO("open", "items.txt", os.ErrPermission), KindIOFailure},
		{Invalid("quantity %d", -1), KindInvalidInput},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	err := IO("open", "items.txt", os.ErrPermission)
	if !errors.Is(err, os.ErrPermission) {
		t.Error("IOError should unwrap to its cause")
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "open" {
		t.Errorf("errors.As IOError = %v", ioErr)
	}

	cause := Invalid("price")
	cerr := &CorruptRecordError{Path: "items.txt", Line: 2, Err: cause}
	if !errors.Is(cerr, ErrInvalidInput) || !errors.Is(cerr, ErrCorruptRecord) {
		t.Error("CorruptRecordError should match both its sentinel and its cause")
	}
	if KindOf(cerr) != KindCorruptRecord {
		t.Errorf("KindOf corrupt = %s", KindOf(cerr))
	}
}

func TestMessages(t *testing.T) {
	if got := NotFound("item", "I009").Error(); got == "" {
		t.Error("empty message")
	}
	err := &InsufficientStockError{ItemCode: "I001", Current: 2, Delta: -3}
	if want := "item I001: insufficient stock (current 2, change -3)"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if KindInvalidState.String() != "invalid_state" || Kind(99).String() != "unknown" {
		t.Error("Kind.String mismatch")
	}
}
