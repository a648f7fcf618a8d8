package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"github.com/tallyhq/tally/internal/apierror"
	"github.com/tallyhq/tally/model"
)

// ApplyTransaction writes the account's new balance and appends the record
// that documents it inside one database transaction. Both effects become
// visible together or not at all; every failure path rolls back before
// returning, so the balance and the log can never drift apart.
func (d Datasource) ApplyTransaction(ctx context.Context, account *model.Account, record *model.TransactionRecord) error {
	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to begin transaction", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE accounts SET balance = $1 WHERE account_number = $2
	`, account.Balance, account.AccountNumber)
	if err != nil {
		_ = tx.Rollback()
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update balance", errors.Wrap(err, "updating balance"))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update balance", err)
	}
	if affected == 0 {
		_ = tx.Rollback()
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Account %d not found", account.AccountNumber), sql.ErrNoRows)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (record_id, account_number, type, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, record.RecordID, record.AccountNumber, string(record.Type), record.Amount, record.CreatedAt)
	if err != nil {
		_ = tx.Rollback()
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to append transaction record", errors.Wrap(err, "appending record"))
	}

	if err := tx.Commit(); err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to commit transaction", err)
	}

	d.invalidateAccount(ctx, account.AccountNumber)

	return nil
}

// GetTransactions returns an account's records in commit order.
func (d Datasource) GetTransactions(ctx context.Context, number int64, limit, offset int) ([]model.TransactionRecord, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT record_id, account_number, type, amount, created_at
		FROM transactions
		WHERE account_number = $1
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`, number, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve transactions", err)
	}
	defer rows.Close()

	var records []model.TransactionRecord
	for rows.Next() {
		record := model.TransactionRecord{}
		if err := rows.Scan(&record.RecordID, &record.AccountNumber, &record.Type, &record.Amount, &record.CreatedAt); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan transaction", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve transactions", err)
	}

	return records, nil
}

// SumTransactionsByType sums committed record amounts of one kind for an
// account. Accounts with no matching records sum to zero.
func (d Datasource) SumTransactionsByType(ctx context.Context, number int64, kind model.TransactionType) (int64, error) {
	var total int64
	err := d.Conn.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_number = $1 AND type = $2
	`, number, string(kind)).Scan(&total)
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to sum transactions", err)
	}

	return total, nil
}
