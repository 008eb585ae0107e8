package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the direction of a completed money movement.
type TransactionKind string

const (
	Deposit     TransactionKind = "deposit"
	Withdrawal  TransactionKind = "withdrawal"
	TransferOut TransactionKind = "transfer_out"
	TransferIn  TransactionKind = "transfer_in"
)

// Transaction describes one committed money movement. Records are immutable
// once appended to the ledger; ordering in the ledger is their timeline.
type Transaction struct {
	Reference string
	Kind      TransactionKind
	Amount    decimal.Decimal
	From      string
	To        string
	Timestamp time.Time
}

// Describe renders the one-line ledger entry shown to users.
func (t Transaction) Describe() string {
	amt := t.Amount.StringFixed(2)
	switch t.Kind {
	case Deposit:
		return fmt.Sprintf("Deposit: +%s to %s", amt, t.To)
	case Withdrawal:
		return fmt.Sprintf("Withdrawal: -%s from %s", amt, t.From)
	case TransferOut:
		return fmt.Sprintf("Transfer Out: -%s to %s (from %s)", amt, t.To, t.From)
	case TransferIn:
		return fmt.Sprintf("Transfer In: +%s from %s (to %s)", amt, t.From, t.To)
	}
	return fmt.Sprintf("%s: %s", t.Kind, amt)
}
