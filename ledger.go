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

package tally

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tallyhq/tally/internal/apierror"
	keylock "github.com/tallyhq/tally/internal/lock"
	"github.com/tallyhq/tally/model"
)

var tracer = otel.Tracer("Ledger operations")

const defaultQueryLimit = 50

func logAndRecordError(span trace.Span, msg string, err error) error {
	span.RecordError(err)
	logrus.Error(msg, err)
	return err
}

// acquireLock takes the account's exclusivity domain, waiting up to the
// configured bound. Exhaustion surfaces as a CONFLICT the caller may retry.
func (l *Tally) acquireLock(ctx context.Context, number int64) (*keylock.Locker, error) {
	locker := l.locks.NewLocker(number, model.GenerateUUIDWithSuffix("loc"))
	if err := locker.WaitLock(ctx, l.lockWait); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Account %d is busy, try again", number), err)
	}
	return locker, nil
}

func (l *Tally) releaseLock(ctx context.Context, locker *keylock.Locker) {
	if err := locker.Unlock(ctx); err != nil {
		logrus.Error("lock error", err)
	}
}

// CreateAccount opens a new account with the given opening balance. The
// opening balance is not logged as a transaction record; only deposits and
// withdrawals appear in the log.
func (l *Tally) CreateAccount(ctx context.Context, name string, initialAmount int64) (model.Account, error) {
	ctx, span := tracer.Start(ctx, "Creating account")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInvalidInput, "Account name is required", nil)
	}
	if initialAmount < 0 {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInvalidInput, "Opening balance cannot be negative", nil)
	}

	account, err := l.datasource.CreateAccount(ctx, model.Account{Name: name, Balance: initialAmount})
	if err != nil {
		return model.Account{}, logAndRecordError(span, "create account error: ", err)
	}
	return account, nil
}

// Deposit atomically increases the account balance and appends the deposit
// record. Both effects commit together or not at all.
func (l *Tally) Deposit(ctx context.Context, number int64, amount int64) (*model.Account, error) {
	ctx, span := tracer.Start(ctx, "Depositing money")
	defer span.End()

	return l.applyMovement(ctx, span, number, model.TypeDeposit, amount)
}

// Withdraw atomically checks sufficiency, decreases the balance and appends
// the withdrawal record. An insufficient balance leaves both the balance
// and the log untouched.
func (l *Tally) Withdraw(ctx context.Context, number int64, amount int64) (*model.Account, error) {
	ctx, span := tracer.Start(ctx, "Withdrawing money")
	defer span.End()

	return l.applyMovement(ctx, span, number, model.TypeWithdrawal, amount)
}

// applyMovement is the single mutation path. Once the account lock is held
// the read, the invariant check, the balance write and the record append
// run to completion without releasing it, so no other operation can observe
// an intermediate balance.
func (l *Tally) applyMovement(ctx context.Context, span trace.Span, number int64, kind model.TransactionType, amount int64) (*model.Account, error) {
	if amount <= 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Amount must be positive", nil)
	}

	locker, err := l.acquireLock(ctx, number)
	if err != nil {
		return nil, logAndRecordError(span, "lock acquisition error: ", err)
	}
	defer l.releaseLock(ctx, locker)

	account, err := l.datasource.GetAccountLite(ctx, number)
	if err != nil {
		return nil, logAndRecordError(span, "account fetch error: ", err)
	}

	record := model.NewTransactionRecord(number, kind, amount)
	if err := account.Apply(record); err != nil {
		if errors.Is(err, model.ErrInsufficientFunds) {
			return nil, apierror.NewAPIError(apierror.ErrInsufficientFunds, fmt.Sprintf("Insufficient funds in account %d", number), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), err)
	}

	if err := l.datasource.ApplyTransaction(ctx, account, record); err != nil {
		return nil, logAndRecordError(span, "commit error: ", err)
	}

	return account, nil
}

// TotalBalance sums every account balance at a consistent snapshot.
func (l *Tally) TotalBalance(ctx context.Context) (int64, error) {
	return l.datasource.SumBalances(ctx)
}

// Expenditure sums the committed withdrawals for an account. An account
// with no withdrawals reports zero; only committed records count, never
// rolled-back attempts.
func (l *Tally) Expenditure(ctx context.Context, number int64) (int64, error) {
	if _, err := l.datasource.GetAccount(ctx, number); err != nil {
		return 0, err
	}
	return l.datasource.SumTransactionsByType(ctx, number, model.TypeWithdrawal)
}

func (l *Tally) GetAccount(ctx context.Context, number int64) (*model.Account, error) {
	return l.datasource.GetAccount(ctx, number)
}

func (l *Tally) GetAllAccounts(ctx context.Context, limit, offset int) ([]model.Account, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return l.datasource.GetAllAccounts(ctx, limit, offset)
}

func (l *Tally) GetTransactions(ctx context.Context, number int64, limit, offset int) ([]model.TransactionRecord, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if offset < 0 {
		offset = 0
	}
	if _, err := l.datasource.GetAccount(ctx, number); err != nil {
		return nil, err
	}
	return l.datasource.GetTransactions(ctx, number, limit, offset)
}
