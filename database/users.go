package database

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/tallyhq/tally/internal/apierror"
)

// CreateUser stores a username with an already-hashed password. Hashing is
// the caller's concern; the store never sees a plaintext password.
func (d Datasource) CreateUser(ctx context.Context, username, passwordHash string) error {
	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES ($1, $2)
	`, username, passwordHash)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("User %q already exists", username), err)
		}
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create user", err)
	}
	return nil
}

// CheckCredentials is a stateless existence check. It takes no part in the
// ledger's locking or atomicity.
func (d Datasource) CheckCredentials(ctx context.Context, username, passwordHash string) (bool, error) {
	var exists bool
	err := d.Conn.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND password_hash = $2)
	`, username, passwordHash).Scan(&exists)
	if err != nil {
		return false, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to check credentials", err)
	}
	return exists, nil
}
