package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"not found", notFoundID("warehouse", 3), "not_found"},
		{"wrapped not found", fmt.Errorf("lookup: %w", notFoundPair(1, 2)), "not_found"},
		{"invalid quantity", &InvalidQuantityError{Quantity: -1, Reason: "x"}, "invalid_quantity"},
		{"invalid transfer", &InvalidTransferError{Amount: 9, Available: 2}, "invalid_transfer"},
		{"duplicate", &DuplicateRecordError{Entity: "product", Key: `"Widget"`}, "duplicate_record"},
		{"invalid reference", &InvalidReferenceError{Reference: RefProduct, ID: 7}, "invalid_reference"},
		{"conflict", &ConflictError{Reason: "busy"}, "conflict"},
		{"unauthorized", ErrUnauthorized, "unauthorized"},
		{"validation", invalidField("name", "required"), "validation"},
		{"other", errors.New("connection reset"), "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.want {
				t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{notFoundPair(1, 2), "stock record warehouse=1 product=2 not found"},
		{&InvalidReferenceError{Reference: RefWarehouse, ID: 4}, "invalid warehouse ID 4"},
		{&InvalidTransferError{Amount: 5, Reason: "only 4 available in source"}, "invalid transfer amount 5: only 4 available in source"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestTypedErrorsMatchOnlyTheirSentinel(t *testing.T) {
	err := &InvalidQuantityError{Quantity: 1}
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Error("expected InvalidQuantityError to match ErrInvalidQuantity")
	}
	if errors.Is(err, ErrInvalidTransfer) {
		t.Error("InvalidQuantityError must not match ErrInvalidTransfer")
	}
}

func TestStockRecordBelowMinimum(t *testing.T) {
	if (StockRecord{Quantity: 5, MinimumStock: 5}).BelowMinimum() {
		t.Error("quantity equal to minimum is not below minimum")
	}
	if !(StockRecord{Quantity: 4, MinimumStock: 5}).BelowMinimum() {
		t.Error("expected 4 < 5 to be below minimum")
	}
}
