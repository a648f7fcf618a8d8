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

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	model2 "github.com/tallyhq/tally/api/model"
	"github.com/tallyhq/tally/model"
)

func (a Api) CreateAccount(c *gin.Context) {
	var newAccount model2.CreateAccount
	if err := c.ShouldBindJSON(&newAccount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := newAccount.ValidateCreateAccount(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	initial, err := newAccount.InitialAmount()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := a.ledger.CreateAccount(c.Request.Context(), newAccount.Name, initial)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model2.ToAccountResponse(&account))
}

func (a Api) GetAccount(c *gin.Context) {
	number, ok := accountNumberParam(c)
	if !ok {
		return
	}

	account, err := a.ledger.GetAccount(c.Request.Context(), number)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.ToAccountResponse(account))
}

func (a Api) GetAllAccounts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := a.ledger.GetAllAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]model2.AccountResponse, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, model2.ToAccountResponse(&accounts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (a Api) Deposit(c *gin.Context) {
	a.applyMovement(c, model.TypeDeposit)
}

func (a Api) Withdraw(c *gin.Context) {
	a.applyMovement(c, model.TypeWithdrawal)
}

func (a Api) applyMovement(c *gin.Context, kind model.TransactionType) {
	number, ok := accountNumberParam(c)
	if !ok {
		return
	}

	var movement model2.Movement
	if err := c.ShouldBindJSON(&movement); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := movement.ValidateMovement(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	amount, err := model.ParseAmount(movement.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var account *model.Account
	if kind == model.TypeDeposit {
		account, err = a.ledger.Deposit(c.Request.Context(), number, amount)
	} else {
		account, err = a.ledger.Withdraw(c.Request.Context(), number, amount)
	}
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.ToAccountResponse(account))
}

func (a Api) GetExpenditure(c *gin.Context) {
	number, ok := accountNumberParam(c)
	if !ok {
		return
	}

	total, err := a.ledger.Expenditure(c.Request.Context(), number)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.ExpenditureResponse{
		AccountNumber: number,
		Total:         total,
		TotalAmount:   model.FormatAmount(total),
	})
}

func (a Api) GetTransactions(c *gin.Context) {
	number, ok := accountNumberParam(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := a.ledger.GetTransactions(c.Request.Context(), number, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]model2.TransactionResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, model2.ToTransactionResponse(record))
	}
	c.JSON(http.StatusOK, resp)
}
