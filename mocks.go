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

	"github.com/stretchr/testify/mock"

	"github.com/tallyhq/tally/database"
	"github.com/tallyhq/tally/model"
)

var _ database.IDataSource = (*MockDataSource)(nil)

// MockDataSource is a testify mock of database.IDataSource for
// failure-injection tests.
type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) CreateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *MockDataSource) GetAccount(ctx context.Context, number int64) (*model.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockDataSource) GetAccountLite(ctx context.Context, number int64) (*model.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockDataSource) GetAllAccounts(ctx context.Context, limit, offset int) ([]model.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockDataSource) SumBalances(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataSource) ApplyTransaction(ctx context.Context, account *model.Account, record *model.TransactionRecord) error {
	args := m.Called(ctx, account, record)
	return args.Error(0)
}

func (m *MockDataSource) GetTransactions(ctx context.Context, number int64, limit, offset int) ([]model.TransactionRecord, error) {
	args := m.Called(ctx, number, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TransactionRecord), args.Error(1)
}

func (m *MockDataSource) SumTransactionsByType(ctx context.Context, number int64, kind model.TransactionType) (int64, error) {
	args := m.Called(ctx, number, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataSource) CreateUser(ctx context.Context, username, passwordHash string) error {
	args := m.Called(ctx, username, passwordHash)
	return args.Error(0)
}

func (m *MockDataSource) CheckCredentials(ctx context.Context, username, passwordHash string) (bool, error) {
	args := m.Called(ctx, username, passwordHash)
	return args.Bool(0), args.Error(1)
}
