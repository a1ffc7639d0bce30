// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/lease-audit/internal/config"
	"fjacquet/lease-audit/internal/container"
	"fjacquet/lease-audit/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Format string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppContainer is built before any subcommand runs
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "lease-audit",
		Short: "A CLI tool to audit commercial lease invoices against the lease.",
		Long: `lease-audit extracts the terms of a commercial lease and the line items of a
matching invoice, then flags charges that conflict with the lease or with common
leasing-fairness rules, citing the lease clause behind each flag when one is known.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			c, err := container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			AppContainer = c
			Log = c.GetLogger()
			logging.SetLogger(Log)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to release resources")
			}
		},
	}

	// SharedFlags holds the flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (stdout when empty)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Output format (defaults from the output extension or configuration)")
}

// GetContainer returns the container built for the current command.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return AppContainer, nil
}
