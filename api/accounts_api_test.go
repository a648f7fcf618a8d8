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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally"
	model2 "github.com/tallyhq/tally/api/model"
	"github.com/tallyhq/tally/config"
	"github.com/tallyhq/tally/database"
	"github.com/tallyhq/tally/internal/request"
)

type TestRequest struct {
	Payload  io.Reader
	Router   *gin.Engine
	Response interface{}
	Method   string
	Route    string
	Header   map[string]string
}

func SetUpTestRequest(s TestRequest) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(s.Method, s.Route, s.Payload)
	for key, value := range s.Header {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	s.Router.ServeHTTP(resp, req)

	err := json.NewDecoder(resp.Body).Decode(&s.Response)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *tally.Tally) {
	t.Helper()
	config.MockConfig(&config.Configuration{})
	ledger, err := tally.NewTally(database.NewMemoryDatasource())
	require.NoError(t, err)
	return NewAPI(ledger).Router(), ledger
}

func TestCreateAccountAPI(t *testing.T) {
	router, ledger := setupRouter(t)

	tests := []struct {
		name         string
		payload      model2.CreateAccount
		expectedCode int
	}{
		{
			name: "valid account with opening balance",
			payload: model2.CreateAccount{
				Name:           gofakeit.Name(),
				InitialBalance: "100.00",
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "valid account without opening balance",
			payload: model2.CreateAccount{
				Name: gofakeit.Name(),
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "empty name",
			payload:      model2.CreateAccount{InitialBalance: "10.00"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "malformed amount",
			payload: model2.CreateAccount{
				Name:           gofakeit.Name(),
				InitialBalance: "ten dollars",
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payloadBytes, _ := request.ToJsonReq(&tt.payload)
			var response model2.AccountResponse
			resp, err := SetUpTestRequest(TestRequest{
				Payload:  payloadBytes,
				Response: &response,
				Method:   "POST",
				Route:    "/accounts",
				Router:   router,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.Code)

			if tt.expectedCode == http.StatusCreated {
				fromLedger, err := ledger.GetAccount(context.Background(), response.AccountNumber)
				require.NoError(t, err)
				assert.Equal(t, tt.payload.Name, fromLedger.Name)
				assert.Equal(t, response.Balance, fromLedger.Balance)
			}
		})
	}
}

func TestDepositAndWithdrawAPI(t *testing.T) {
	router, ledger := setupRouter(t)

	account, err := ledger.CreateAccount(context.Background(), gofakeit.Name(), 10000)
	require.NoError(t, err)

	deposit, _ := request.ToJsonReq(&model2.Movement{Amount: "50.00"})
	var afterDeposit model2.AccountResponse
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  deposit,
		Response: &afterDeposit,
		Method:   "POST",
		Route:    fmt.Sprintf("/accounts/%d/deposit", account.AccountNumber),
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(15000), afterDeposit.Balance)
	assert.Equal(t, "150.00", afterDeposit.BalanceAmount)

	withdraw, _ := request.ToJsonReq(&model2.Movement{Amount: "150.00"})
	var afterWithdraw model2.AccountResponse
	resp, err = SetUpTestRequest(TestRequest{
		Payload:  withdraw,
		Response: &afterWithdraw,
		Method:   "POST",
		Route:    fmt.Sprintf("/accounts/%d/withdraw", account.AccountNumber),
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(0), afterWithdraw.Balance)
}

func TestWithdrawOverdraftAPI(t *testing.T) {
	router, ledger := setupRouter(t)

	account, err := ledger.CreateAccount(context.Background(), gofakeit.Name(), 5000)
	require.NoError(t, err)

	withdraw, _ := request.ToJsonReq(&model2.Movement{Amount: "80.00"})
	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  withdraw,
		Response: &response,
		Method:   "POST",
		Route:    fmt.Sprintf("/accounts/%d/withdraw", account.AccountNumber),
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	fromLedger, err := ledger.GetAccount(context.Background(), account.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), fromLedger.Balance)
}

func TestGetAccountAPI(t *testing.T) {
	router, ledger := setupRouter(t)

	account, err := ledger.CreateAccount(context.Background(), gofakeit.Name(), 2500)
	require.NoError(t, err)

	var response model2.AccountResponse
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   "GET",
		Route:    fmt.Sprintf("/accounts/%d", account.AccountNumber),
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, account.AccountNumber, response.AccountNumber)
	assert.Equal(t, "25.00", response.BalanceAmount)
}

func TestGetAccountNotFoundAPI(t *testing.T) {
	router, _ := setupRouter(t)

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   "GET",
		Route:    "/accounts/4040",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestExpenditureAndTransactionsAPI(t *testing.T) {
	router, ledger := setupRouter(t)
	ctx := context.Background()

	account, err := ledger.CreateAccount(ctx, gofakeit.Name(), 20000)
	require.NoError(t, err)
	_, err = ledger.Withdraw(ctx, account.AccountNumber, 1500)
	require.NoError(t, err)
	_, err = ledger.Withdraw(ctx, account.AccountNumber, 2500)
	require.NoError(t, err)
	_, err = ledger.Deposit(ctx, account.AccountNumber, 1000)
	require.NoError(t, err)

	var spent model2.ExpenditureResponse
	resp, err := SetUpTestRequest(TestRequest{
		Response: &spent,
		Method:   "GET",
		Route:    fmt.Sprintf("/accounts/%d/expenditure", account.AccountNumber),
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(4000), spent.Total)
	assert.Equal(t, "40.00", spent.TotalAmount)

	var records []model2.TransactionResponse
	resp, err = SetUpTestRequest(TestRequest{
		Response: &records,
		Method:   "GET",
		Route:    fmt.Sprintf("/accounts/%d/transactions", account.AccountNumber),
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, records, 3)
}

func TestGetTotalBalanceAPI(t *testing.T) {
	router, ledger := setupRouter(t)
	ctx := context.Background()

	_, err := ledger.CreateAccount(ctx, gofakeit.Name(), 10000)
	require.NoError(t, err)
	_, err = ledger.CreateAccount(ctx, gofakeit.Name(), 5000)
	require.NoError(t, err)

	var response model2.BalanceResponse
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   "GET",
		Route:    "/balance",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(15000), response.Total)
	assert.Equal(t, "150.00", response.TotalAmount)
}
