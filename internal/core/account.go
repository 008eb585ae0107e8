package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product type of an account.
type AccountType string

const (
	Saving  AccountType = "Saving"
	Current AccountType = "Current"
)

// Account is a customer account record. AccountNumber and CreatedAt are
// immutable after creation; every other field may change through the
// modification or transaction operations.
type Account struct {
	AccountNumber   string
	Name            string
	DOB             string
	Age             string
	Address         string
	Phone           string
	Balance         decimal.Decimal
	Type            AccountType
	CreatedAt       time.Time
	LastTransaction time.Time
}
