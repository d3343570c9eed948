package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"serialization failure", &pgconn.PgError{Code: CodeSerializationFailure}, true},
		{"deadlock", &pgconn.PgError{Code: CodeDeadlockDetected}, true},
		{"wrapped deadlock", fmt.Errorf("failed to debit: %w", &pgconn.PgError{Code: CodeDeadlockDetected}), true},
		{"unique violation", &pgconn.PgError{Code: CodeUniqueViolation}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestConstraintName(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:           CodeUniqueViolation,
		ConstraintName: "stock_records_warehouse_product_key",
	})
	if got := ConstraintName(err); got != "stock_records_warehouse_product_key" {
		t.Errorf("unexpected constraint %q", got)
	}
	if got := ErrorCode(err); got != CodeUniqueViolation {
		t.Errorf("unexpected code %q", got)
	}
	if got := ConstraintName(errors.New("other")); got != "" {
		t.Errorf("expected empty constraint, got %q", got)
	}
}
