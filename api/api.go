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

	"github.com/tallyhq/tally"
	"github.com/tallyhq/tally/internal/apierror"
)

type Api struct {
	ledger *tally.Tally
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/accounts", a.CreateAccount)
	router.GET("/accounts", a.GetAllAccounts)
	router.GET("/accounts/:number", a.GetAccount)
	router.POST("/accounts/:number/deposit", a.Deposit)
	router.POST("/accounts/:number/withdraw", a.Withdraw)
	router.GET("/accounts/:number/expenditure", a.GetExpenditure)
	router.GET("/accounts/:number/transactions", a.GetTransactions)

	router.GET("/balance", a.GetTotalBalance)

	router.POST("/users", a.CreateUser)
	router.POST("/login", a.Login)
	return a.router
}

func NewAPI(ledger *tally.Tally) *Api {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{ledger: ledger, router: r}
}

// handleError writes the status carried by an APIError, or 500 for anything
// that escaped the typed error path.
func handleError(c *gin.Context, err error) {
	if apiErr, ok := err.(apierror.APIError); ok {
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// accountNumberParam parses the :number route segment.
func accountNumberParam(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account number must be an integer"})
		return 0, false
	}
	return number, true
}
