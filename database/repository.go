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

package database

import (
	"context"

	"github.com/tallyhq/tally/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	account     // Interface for account-related operations
	transaction // Interface for transaction-record operations
	auth        // Interface for credential operations
}

// account defines methods for handling accounts.
type account interface {
	CreateAccount(ctx context.Context, account model.Account) (model.Account, error) // Persists a new account, allocating the next account number
	GetAccount(ctx context.Context, number int64) (*model.Account, error)            // Retrieves an account, served from cache when possible
	GetAccountLite(ctx context.Context, number int64) (*model.Account, error)        // Retrieves an account straight from the store, bypassing cache
	GetAllAccounts(ctx context.Context, limit, offset int) ([]model.Account, error)  // Retrieves all accounts
	SumBalances(ctx context.Context) (int64, error)                                  // Sums every account balance at a consistent snapshot
}

// transaction defines methods for the append-only transaction log.
type transaction interface {
	ApplyTransaction(ctx context.Context, account *model.Account, record *model.TransactionRecord) error          // Writes the new balance and appends the record as one atomic unit
	GetTransactions(ctx context.Context, number int64, limit, offset int) ([]model.TransactionRecord, error)      // Retrieves records for an account in commit order
	SumTransactionsByType(ctx context.Context, number int64, kind model.TransactionType) (int64, error)           // Sums committed record amounts of one kind for an account
}

// auth defines methods for credential verification. Credentials never
// interact with ledger state.
type auth interface {
	CreateUser(ctx context.Context, username, passwordHash string) error
	CheckCredentials(ctx context.Context, username, passwordHash string) (bool, error)
}
