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
	"embed"
	"time"

	"github.com/tallyhq/tally/config"
	"github.com/tallyhq/tally/database"
	keylock "github.com/tallyhq/tally/internal/lock"
)

// SQLFiles embeds the schema migrations applied by the migrate command.
//
//go:embed sql/*.sql
var SQLFiles embed.FS

// Tally is the ledger engine. It owns the balance invariants: every
// mutation happens under the account's lock and commits together with the
// record that documents it.
type Tally struct {
	datasource database.IDataSource
	locks      *keylock.Registry
	lockWait   time.Duration
}

// NewTally initializes the ledger on top of the provided datasource. The
// lock wait bound comes from configuration; operations that cannot acquire
// an account within it fail with a busy error instead of queueing forever.
func NewTally(db database.IDataSource) (*Tally, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	newTally := &Tally{
		datasource: db,
		locks:      keylock.NewRegistry(),
		lockWait:   time.Duration(configuration.Ledger.LockWaitTimeoutSec) * time.Second,
	}
	return newTally, nil
}
