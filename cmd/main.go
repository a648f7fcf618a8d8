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

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tallyhq/tally"
	"github.com/tallyhq/tally/config"
	"github.com/tallyhq/tally/database"
)

// CLI wraps the root Cobra command.
type CLI struct {
	cmd *cobra.Command
}

// appInstance holds the ledger engine and its configuration for the
// lifetime of a command.
type appInstance struct {
	ledger *tally.Tally
	cnf    *config.Configuration
}

func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads configuration and initializes the ledger before any
// subcommand executes. With --memory the ledger runs on the in-memory
// datasource and needs no database.
func preRun(app *appInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		useMemory, _ := cmd.Flags().GetBool("memory")
		if useMemory {
			config.MockConfig(&config.Configuration{})
		} else {
			err := config.InitConfig("tally.json")
			if err != nil {
				log.Fatal("error loading config", err)
			}
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		ledger, err := setupLedger(cnf, useMemory)
		if err != nil {
			log.Fatal(err)
		}

		app.ledger = ledger
		app.cnf = cnf

		return nil
	}
}

func setupLedger(cfg *config.Configuration, useMemory bool) (*tally.Tally, error) {
	var db database.IDataSource
	var err error
	if useMemory {
		db = database.NewMemoryDatasource()
	} else {
		db, err = database.NewDataSource(cfg)
		if err != nil {
			return nil, fmt.Errorf("error getting datasource: %v", err)
		}
	}

	ledger, err := tally.NewTally(db)
	if err != nil {
		return nil, fmt.Errorf("error creating ledger: %v", err)
	}
	return ledger, nil
}

func NewCLI() *CLI {
	var configFile string
	app := &appInstance{}

	var rootCmd = &cobra.Command{
		Use:   "tally",
		Short: "Account ledger",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./tally.json", "Configuration file for the ledger")
	rootCmd.PersistentFlags().Bool("memory", false, "Run on the in-memory datasource (no database required)")

	rootCmd.PersistentPreRunE = preRun(app)

	rootCmd.AddCommand(serverCommands(app))
	rootCmd.AddCommand(migrateCommands(app))

	return &CLI{cmd: rootCmd}
}

func (w CLI) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
