package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tallyhq/tally/internal/apierror"
	"github.com/tallyhq/tally/model"
)

// MemoryDatasource is an in-memory implementation of IDataSource. It backs
// the dev server's --memory mode and the ledger tests; the mutex gives it
// the same all-or-nothing commit semantics as the SQL store.
type MemoryDatasource struct {
	mu         sync.Mutex
	nextNumber int64
	accounts   map[int64]*model.Account
	records    []model.TransactionRecord
	users      map[string]string
}

func NewMemoryDatasource() *MemoryDatasource {
	return &MemoryDatasource{
		nextNumber: 1009,
		accounts:   make(map[int64]*model.Account),
		users:      make(map[string]string),
	}
}

func (m *MemoryDatasource) CreateAccount(_ context.Context, account model.Account) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account.AccountNumber = m.nextNumber
	m.nextNumber++
	account.CreatedAt = time.Now()

	stored := account
	m.accounts[account.AccountNumber] = &stored
	return account, nil
}

func (m *MemoryDatasource) GetAccount(ctx context.Context, number int64) (*model.Account, error) {
	return m.GetAccountLite(ctx, number)
}

func (m *MemoryDatasource) GetAccountLite(_ context.Context, number int64) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.accounts[number]
	if !ok {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Account %d not found", number), nil)
	}
	copied := *stored
	return &copied, nil
}

func (m *MemoryDatasource) GetAllAccounts(_ context.Context, limit, offset int) ([]model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var accounts []model.Account
	for number := int64(1009); number < m.nextNumber; number++ {
		if stored, ok := m.accounts[number]; ok {
			accounts = append(accounts, *stored)
		}
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(accounts) {
		return nil, nil
	}
	accounts = accounts[offset:]
	if limit < len(accounts) {
		accounts = accounts[:limit]
	}
	return accounts, nil
}

func (m *MemoryDatasource) SumBalances(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total int64
	for _, account := range m.accounts {
		total += account.Balance
	}
	return total, nil
}

// ApplyTransaction mirrors the SQL store's scoped unit: under one critical
// section the balance is replaced and the record appended, or neither
// happens.
func (m *MemoryDatasource) ApplyTransaction(_ context.Context, account *model.Account, record *model.TransactionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.accounts[account.AccountNumber]
	if !ok {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Account %d not found", account.AccountNumber), nil)
	}

	stored.Balance = account.Balance
	m.records = append(m.records, *record)
	return nil
}

func (m *MemoryDatasource) GetTransactions(_ context.Context, number int64, limit, offset int) ([]model.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []model.TransactionRecord
	for _, record := range m.records {
		if record.AccountNumber == number {
			records = append(records, record)
		}
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return nil, nil
	}
	records = records[offset:]
	if limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func (m *MemoryDatasource) SumTransactionsByType(_ context.Context, number int64, kind model.TransactionType) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total int64
	for _, record := range m.records {
		if record.AccountNumber == number && record.Type == kind {
			total += record.Amount
		}
	}
	return total, nil
}

func (m *MemoryDatasource) CreateUser(_ context.Context, username, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[username]; exists {
		return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("User %q already exists", username), nil)
	}
	m.users[username] = passwordHash
	return nil
}

func (m *MemoryDatasource) CheckCredentials(_ context.Context, username, passwordHash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[username]
	return ok && stored == passwordHash, nil
}

// Compile-time check: ensure MemoryDatasource implements IDataSource.
var _ IDataSource = (*MemoryDatasource)(nil)
