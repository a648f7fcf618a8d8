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
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tallyhq/tally/internal/apierror"
	"github.com/tallyhq/tally/model"
)

const accountCacheTTL = 5 * time.Minute

func accountCacheKey(number int64) string {
	return fmt.Sprintf("account:%d", number)
}

// CreateAccount persists a new account and allocates its account number
// from the store's sequence. The single INSERT is the whole atomic unit:
// either the account exists afterwards or it does not.
//
// No transaction record is written for the opening balance.
func (d Datasource) CreateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	row := d.Conn.QueryRowContext(ctx, `
		INSERT INTO accounts (name, balance)
		VALUES ($1, $2)
		RETURNING account_number, created_at
	`, account.Name, account.Balance)

	err := row.Scan(&account.AccountNumber, &account.CreatedAt)
	if err != nil {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create account", err)
	}

	return account, nil
}

// GetAccount retrieves an account, serving from cache when possible.
// Mutation paths must use GetAccountLite instead; the cache is only
// invalidated after a commit, so a read here is never ahead of the store.
func (d Datasource) GetAccount(ctx context.Context, number int64) (*model.Account, error) {
	if d.Cache != nil {
		var cached model.Account
		if err := d.Cache.Get(ctx, accountCacheKey(number), &cached); err != nil {
			logrus.Warnf("account cache read failed: %v", err)
		} else if cached.AccountNumber != 0 {
			return &cached, nil
		}
	}

	account, err := d.GetAccountLite(ctx, number)
	if err != nil {
		return nil, err
	}

	if d.Cache != nil {
		if err := d.Cache.Set(ctx, accountCacheKey(number), *account, accountCacheTTL); err != nil {
			logrus.Warnf("account cache write failed: %v", err)
		}
	}

	return account, nil
}

// GetAccountLite reads the account straight from the store.
func (d Datasource) GetAccountLite(ctx context.Context, number int64) (*model.Account, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT account_number, name, balance, created_at
		FROM accounts
		WHERE account_number = $1
	`, number)

	account := &model.Account{}
	err := row.Scan(&account.AccountNumber, &account.Name, &account.Balance, &account.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Account %d not found", number), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve account", err)
	}

	return account, nil
}

func (d Datasource) GetAllAccounts(ctx context.Context, limit, offset int) ([]model.Account, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT account_number, name, balance, created_at
		FROM accounts
		ORDER BY account_number ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve accounts", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		account := model.Account{}
		if err := rows.Scan(&account.AccountNumber, &account.Name, &account.Balance, &account.CreatedAt); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan account", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve accounts", err)
	}

	return accounts, nil
}

// SumBalances sums every account balance in a single aggregate query, so
// the result is a consistent snapshot: it can never observe half of a
// committed mutation.
func (d Datasource) SumBalances(ctx context.Context) (int64, error) {
	var total int64
	err := d.Conn.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(balance), 0) FROM accounts
	`).Scan(&total)
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to sum balances", err)
	}

	return total, nil
}

func (d Datasource) invalidateAccount(ctx context.Context, number int64) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Delete(ctx, accountCacheKey(number)); err != nil {
		logrus.Warnf("account cache invalidation failed: %v", err)
	}
}
