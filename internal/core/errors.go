package core

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every typed error below matches exactly one of these
// through errors.Is, so adapters can branch on the kind without knowing the
// concrete type.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidTransfer  = errors.New("invalid transfer")
	ErrDuplicateRecord  = errors.New("duplicate record")
	ErrInvalidReference = errors.New("invalid reference")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrValidation       = errors.New("validation failed")
)

// NotFoundError reports a missing stock record, warehouse, product, supplier or user.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFoundID(entity string, id int64) error {
	return &NotFoundError{Entity: entity, Key: fmt.Sprintf("id=%d", id)}
}

func notFoundPair(warehouseID, productID int64) error {
	return &NotFoundError{
		Entity: "stock record",
		Key:    fmt.Sprintf("warehouse=%d product=%d", warehouseID, productID),
	}
}

// InvalidQuantityError reports an amount that is not allowed, most often an
// adjustment that would drive stock below zero.
type InvalidQuantityError struct {
	Quantity int
	Reason   string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d: %s", e.Quantity, e.Reason)
}

func (e *InvalidQuantityError) Is(target error) bool { return target == ErrInvalidQuantity }

// InvalidTransferError reports a transfer amount that is non-positive or
// exceeds what the source record holds.
type InvalidTransferError struct {
	Amount    int
	Available int
	Reason    string
}

func (e *InvalidTransferError) Error() string {
	return fmt.Sprintf("invalid transfer amount %d: %s", e.Amount, e.Reason)
}

func (e *InvalidTransferError) Is(target error) bool { return target == ErrInvalidTransfer }

// DuplicateRecordError reports a uniqueness violation: a second stock record
// for a (warehouse, product) pair, a reused product name or user email.
type DuplicateRecordError struct {
	Entity string
	Key    string
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Entity, e.Key)
}

func (e *DuplicateRecordError) Is(target error) bool { return target == ErrDuplicateRecord }

// Reference names used by InvalidReferenceError.
const (
	RefWarehouse = "warehouse"
	RefProduct   = "product"
	RefSupplier  = "supplier"
)

// InvalidReferenceError reports a request that points at a warehouse or
// product (or supplier) that does not exist. Reference says which one.
type InvalidReferenceError struct {
	Reference string
	ID        int64
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s ID %d", e.Reference, e.ID)
}

func (e *InvalidReferenceError) Is(target error) bool { return target == ErrInvalidReference }

// ConflictError reports an operation refused because of dependent data,
// e.g. deleting a warehouse that still holds stock records.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// ValidationError reports a malformed request field such as a blank name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ErrorKind returns a short stable label for err, used for metrics and API
// error codes. Unknown errors are "internal"; nil is "ok".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrInvalidTransfer):
		return "invalid_transfer"
	case errors.Is(err, ErrDuplicateRecord):
		return "duplicate_record"
	case errors.Is(err, ErrInvalidReference):
		return "invalid_reference"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
