package model

import "time"

// TransactionType is the kind of money movement a record documents.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
)

type Account struct {
	ID            int64     `json:"-"`
	AccountNumber int64     `json:"account_number"`
	Name          string    `json:"name"`
	Balance       int64     `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionRecord is an immutable log entry for a committed balance
// mutation. A record exists if and only if the mutation it documents
// was committed.
type TransactionRecord struct {
	ID            int64           `json:"-"`
	RecordID      string          `json:"record_id"`
	AccountNumber int64           `json:"account_number"`
	Type          TransactionType `json:"type"`
	Amount        int64           `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

type User struct {
	ID           int64     `json:"-"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
