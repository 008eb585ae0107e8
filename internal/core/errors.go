package core

import "errors"

var (
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrDuplicateStaff    = errors.New("employee id already exists")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("sender and receiver accounts cannot be the same")
	ErrEmptyQueue        = errors.New("no pending service requests")
	ErrWriteFailed       = errors.New("could not write data file")
	ErrInvalidInput      = errors.New("invalid input")
)
