package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "not authorized"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

// ConflictError marks a state-machine transition that is not valid from the
// record's current state (already cancelled, already returned, already
// completed, duplicate open loan).
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// CapacityError reports an inventory reservation that would violate the
// capacity invariant (not enough seats or copies).
type CapacityError struct {
	Resource  string
	Available int
	Requested int
}

func (e CapacityError) Error() string {
	if e.Resource == "" {
		return "insufficient capacity"
	}
	return fmt.Sprintf("only %d %s available, requested %d", e.Available, e.Resource, e.Requested)
}

// BelowMinimumError rejects a hosted-checkout attempt whose amount is under
// the gateway's processing floor. The payment itself stays valid; it must be
// settled through a non-gateway method.
type BelowMinimumError struct {
	Minimum int64
	Amount  int64
}

func (e BelowMinimumError) Error() string {
	return fmt.Sprintf("amount %d is below the gateway minimum of %d", e.Amount, e.Minimum)
}

// GatewayError covers payment-gateway failures, including rejected webhook
// signatures.
type GatewayError struct {
	Msg string
	Err error
}

func (e GatewayError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "payment gateway error"
}

func (e GatewayError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsCapacity(err error) bool {
	var target CapacityError
	return errors.As(err, &target)
}

func IsBelowMinimum(err error) bool {
	var target BelowMinimumError
	return errors.As(err, &target)
}

func IsGateway(err error) bool {
	var target GatewayError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
