package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func getAccountMock(number, balance int64) Account {
	return Account{AccountNumber: number, Balance: balance}
}

func TestApplyDeposit(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		amount  int64
		want    int64
	}{
		{name: "Deposit 1k into empty account", balance: 0, amount: 1000, want: 1000},
		{name: "Deposit 2k with starting balance of 500", balance: 500, amount: 2000, want: 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := getAccountMock(1009, tt.balance)
			record := NewTransactionRecord(1009, TypeDeposit, tt.amount)

			err := account.Apply(record)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, account.Balance)
		})
	}
}

func TestApplyWithdrawal(t *testing.T) {
	account := getAccountMock(1009, 10000)
	record := NewTransactionRecord(1009, TypeWithdrawal, 8000)

	err := account.Apply(record)
	assert.NoError(t, err)
	assert.Equal(t, int64(2000), account.Balance)
}

func TestApplyWithdrawalInsufficientFunds(t *testing.T) {
	account := getAccountMock(1009, 5000)
	record := NewTransactionRecord(1009, TypeWithdrawal, 8000)

	err := account.Apply(record)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.Equal(t, int64(5000), account.Balance, "failed withdrawal must not change the balance")
}

func TestApplyRejectsNonPositiveAmount(t *testing.T) {
	account := getAccountMock(1009, 5000)
	record := &TransactionRecord{RecordID: "txn_x", AccountNumber: 1009, Type: TypeDeposit, Amount: 0}

	err := account.Apply(record)
	assert.Error(t, err)
	assert.Equal(t, int64(5000), account.Balance)
}

func TestApplyRejectsMismatchedAccount(t *testing.T) {
	account := getAccountMock(1009, 5000)
	record := NewTransactionRecord(1010, TypeDeposit, 100)

	err := account.Apply(record)
	assert.Error(t, err)
	assert.Equal(t, int64(5000), account.Balance)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "150.00", want: 15000},
		{in: "0.01", want: 1},
		{in: "100", want: 10000},
		{in: "19.9", want: 1990},
		{in: "10.005", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "92233720368547758.07", want: 9223372036854775807},
		{in: "92233720368547758.08", wantErr: true},
		{in: "184467440737095517.16", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150.00", FormatAmount(15000))
	assert.Equal(t, "0.01", FormatAmount(1))
	assert.Equal(t, "0.00", FormatAmount(0))
}

func TestGenerateUUIDWithSuffix(t *testing.T) {
	id := GenerateUUIDWithSuffix("txn")
	assert.Contains(t, id, "txn_")
}
