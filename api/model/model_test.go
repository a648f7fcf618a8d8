package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/model"
)

func TestValidateCreateAccount(t *testing.T) {
	valid := CreateAccount{Name: "Alice", InitialBalance: "100.00"}
	assert.NoError(t, valid.ValidateCreateAccount())

	missingName := CreateAccount{InitialBalance: "100.00"}
	assert.Error(t, missingName.ValidateCreateAccount())
}

func TestInitialAmount(t *testing.T) {
	withBalance := CreateAccount{Name: "Alice", InitialBalance: "100.50"}
	amount, err := withBalance.InitialAmount()
	require.NoError(t, err)
	assert.Equal(t, int64(10050), amount)

	withoutBalance := CreateAccount{Name: "Alice"}
	amount, err = withoutBalance.InitialAmount()
	require.NoError(t, err)
	assert.Zero(t, amount)

	malformed := CreateAccount{Name: "Alice", InitialBalance: "1,000"}
	_, err = malformed.InitialAmount()
	assert.Error(t, err)
}

func TestValidateMovement(t *testing.T) {
	assert.NoError(t, (&Movement{Amount: "5.00"}).ValidateMovement())
	assert.Error(t, (&Movement{}).ValidateMovement())
}

func TestToAccountResponse(t *testing.T) {
	account := model.Account{AccountNumber: 1009, Name: "Alice", Balance: 15000}
	resp := ToAccountResponse(&account)
	assert.Equal(t, int64(1009), resp.AccountNumber)
	assert.Equal(t, "150.00", resp.BalanceAmount)
}
