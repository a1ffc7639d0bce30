package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/lease-audit/cmd/audit"
	"fjacquet/lease-audit/cmd/categorize"
	"fjacquet/lease-audit/cmd/invoice"
	"fjacquet/lease-audit/cmd/lease"
	"fjacquet/lease-audit/cmd/review"
	"fjacquet/lease-audit/cmd/root"
	"fjacquet/lease-audit/internal/config"
	"fjacquet/lease-audit/internal/logging"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	_, _ = config.LoadEnv()

	// 2. Configure the default logger before anything logs; configuration may refine it
	logging.SetLogger(logging.NewLogrusAdapter(logLevelFromEnv(), "text"))

	// 3. Initialize root command and add all subcommands
	root.Init()
	root.Cmd.AddCommand(lease.Cmd)
	root.Cmd.AddCommand(invoice.Cmd)
	root.Cmd.AddCommand(audit.Cmd)
	root.Cmd.AddCommand(review.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

// logLevelFromEnv returns LOG_LEVEL, or info when unset.
func logLevelFromEnv() string {
	level := strings.ToLower(config.GetEnv("LOG_LEVEL", "info"))
	if level == "" {
		return "info"
	}
	return level
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
