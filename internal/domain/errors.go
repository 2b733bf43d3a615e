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

// InvalidAmountError marks a monetary input the receipt calculator refuses
// to work with (zero, negative, or not finite).
type InvalidAmountError struct {
	Amount float64
	Msg    string
}

func (e InvalidAmountError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("invalid amount %v: %s", e.Amount, e.Msg)
	}
	return fmt.Sprintf("invalid amount %v", e.Amount)
}

// NetworkError is produced by the API client when a request cannot reach
// the server or comes back non-2xx.
type NetworkError struct {
	StatusCode int
	Msg        string
	Err        error
}

func (e NetworkError) Error() string {
	switch {
	case e.Msg != "" && e.StatusCode > 0:
		return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.StatusCode > 0:
		return fmt.Sprintf("request failed (%d)", e.StatusCode)
	default:
		return "network error"
	}
}

func (e NetworkError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsInvalidAmount(err error) bool {
	var target InvalidAmountError
	return errors.As(err, &target)
}

func IsNetwork(err error) bool {
	var target NetworkError
	return errors.As(err, &target)
}

// NetworkStatus extracts the HTTP status from a NetworkError chain, 0 when absent.
func NetworkStatus(err error) int {
	var target NetworkError
	if errors.As(err, &target) {
		return target.StatusCode
	}
	return 0
}
