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
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/tallyhq/tally/internal/apierror"
)

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CreateUser registers a login. Passwords are hashed before they reach the
// store.
func (l *Tally) CreateUser(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return apierror.NewAPIError(apierror.ErrInvalidInput, "Username and password are required", nil)
	}
	return l.datasource.CreateUser(ctx, username, hashPassword(password))
}

// VerifyCredentials is a stateless check against the store. It never
// touches ledger state and takes no part in its locking or atomicity.
func (l *Tally) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	return l.datasource.CheckCredentials(ctx, username, hashPassword(password))
}
