package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds is returned when a withdrawal would take a balance
// below zero. It is a business outcome, not a system fault.
var ErrInsufficientFunds = errors.New("insufficient funds")

// GenerateUUIDWithSuffix generates a UUID with a given module name as a prefix.
// This is useful for creating unique identifiers with context-specific prefixes.
func GenerateUUIDWithSuffix(module string) string {
	id := uuid.New()
	uuidStr := id.String()
	idWithSuffix := fmt.Sprintf("%s_%s", module, uuidStr)
	return idWithSuffix
}

// NewTransactionRecord builds an unsaved record for a money movement.
// The record only becomes real once a datasource commits it alongside
// the balance mutation it documents.
func NewTransactionRecord(accountNumber int64, kind TransactionType, amount int64) *TransactionRecord {
	return &TransactionRecord{
		RecordID:      GenerateUUIDWithSuffix("txn"),
		AccountNumber: accountNumber,
		Type:          kind,
		Amount:        amount,
		CreatedAt:     time.Now(),
	}
}

// Delta is the signed effect of the record on a balance, in minor units.
func (record *TransactionRecord) Delta() int64 {
	if record.Type == TypeWithdrawal {
		return -record.Amount
	}
	return record.Amount
}

func (record *TransactionRecord) validate() error {
	if record.Amount <= 0 {
		return errors.New("transaction amount must be positive")
	}
	if record.Type != TypeDeposit && record.Type != TypeWithdrawal {
		return fmt.Errorf("unknown transaction type %q", record.Type)
	}
	return nil
}

// Apply mutates the account balance by the record's delta. The balance is
// never allowed below zero; on any error the account is left unchanged.
func (account *Account) Apply(record *TransactionRecord) error {
	if err := record.validate(); err != nil {
		return err
	}
	if record.AccountNumber != account.AccountNumber {
		return fmt.Errorf("record targets account %d, not %d", record.AccountNumber, account.AccountNumber)
	}
	next := account.Balance + record.Delta()
	if next < 0 {
		return ErrInsufficientFunds
	}
	account.Balance = next
	return nil
}

// ParseAmount converts a decimal money string ("150.00") into minor units
// (15000). Balances are kept in int64 minor units everywhere so that no
// floating point value ever touches the ledger.
func ParseAmount(value string) (int64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", value)
	}
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", value)
	}
	// IntPart wraps silently outside int64; reject instead.
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %q is out of range", value)
	}
	return cents.IntPart(), nil
}

// FormatAmount renders minor units as a two-decimal string for boundary
// layers. The core never consumes the formatted form.
func FormatAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
