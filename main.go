package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/ledger/cmd/balances"
	"fjacquet/ledger/cmd/budget"
	"fjacquet/ledger/cmd/fee"
	"fjacquet/ledger/cmd/importer"
	"fjacquet/ledger/cmd/loans"
	"fjacquet/ledger/cmd/period"
	"fjacquet/ledger/cmd/report"
	"fjacquet/ledger/cmd/root"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load .env before anything reads LEDGER_* variables
	loadEnvSilently()

	// Loggers created before the configuration is read follow LEDGER_LOG_LEVEL
	configureLogLevelDirectly()

	root.Init()

	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(loans.Cmd)
	root.Cmd.AddCommand(balances.Cmd)
	root.Cmd.AddCommand(fee.Cmd)
	root.Cmd.AddCommand(period.Cmd)
	root.Cmd.AddCommand(importer.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func configureLogLevelDirectly() {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LEDGER_LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
