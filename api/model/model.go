/*
Copyright 2025 Tally Ledger Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tallyhq/tally/model"
)

// CreateAccount is the request body for opening an account. The initial
// balance is a decimal string such as "150.00" and may be omitted for an
// empty account.
type CreateAccount struct {
	Name           string `json:"name"`
	InitialBalance string `json:"initial_balance"`
}

func (a *CreateAccount) ValidateCreateAccount() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Name, validation.Required, validation.Length(1, 120)),
	)
}

// InitialAmount parses the optional opening balance into minor units.
func (a *CreateAccount) InitialAmount() (int64, error) {
	if a.InitialBalance == "" {
		return 0, nil
	}
	return model.ParseAmount(a.InitialBalance)
}

// Movement is the request body shared by deposits and withdrawals.
type Movement struct {
	Amount string `json:"amount"`
}

func (m *Movement) ValidateMovement() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Amount, validation.Required),
	)
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Credentials) ValidateCredentials() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// AccountResponse mirrors a ledger account with the balance rendered as a
// decimal string alongside the raw minor units.
type AccountResponse struct {
	AccountNumber int64     `json:"account_number"`
	Name          string    `json:"name"`
	Balance       int64     `json:"balance"`
	BalanceAmount string    `json:"balance_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToAccountResponse(account *model.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		Balance:       account.Balance,
		BalanceAmount: model.FormatAmount(account.Balance),
		CreatedAt:     account.CreatedAt,
	}
}

type TransactionResponse struct {
	RecordID      string    `json:"record_id"`
	AccountNumber int64     `json:"account_number"`
	Type          string    `json:"type"`
	Amount        int64     `json:"amount"`
	AmountString  string    `json:"amount_string"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToTransactionResponse(record model.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		RecordID:      record.RecordID,
		AccountNumber: record.AccountNumber,
		Type:          string(record.Type),
		Amount:        record.Amount,
		AmountString:  model.FormatAmount(record.Amount),
		CreatedAt:     record.CreatedAt,
	}
}

type BalanceResponse struct {
	Total       int64  `json:"total"`
	TotalAmount string `json:"total_amount"`
}

type ExpenditureResponse struct {
	AccountNumber int64  `json:"account_number"`
	Total         int64  `json:"total"`
	TotalAmount   string `json:"total_amount"`
}
