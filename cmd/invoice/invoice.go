// Package invoice handles invoice line item extraction commands
package invoice

import (
	"context"
	"fmt"
	"io"

	"fjacquet/lease-audit/cmd/common"
	"fjacquet/lease-audit/cmd/root"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the invoice command
var Cmd = &cobra.Command{
	Use:   "invoice",
	Short: "Extract invoice line items",
	Long: `Extract numbered, categorized line items from an invoice. Items are printed, or
saved with --output (.csv, .json, .yaml) for later audits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c, root.SharedFlags, cmd.OutOrStdout())
	},
}

// Run extracts the invoice at flags.Input and saves or prints its items. Printed items
// default to CSV.
func Run(ctx context.Context, src common.Sources, flags root.CommonFlags, w io.Writer) error {
	items, err := common.LoadLineItems(ctx, src, flags.Input)
	if err != nil {
		return err
	}

	if flags.Output != "" {
		if err := src.GetStore().SaveLineItems(flags.Output, items); err != nil {
			return err
		}
		src.GetLogger().Info("Line items saved",
			logging.F(logging.FieldOutputFile, flags.Output),
			logging.F(logging.FieldCount, len(items)))
		return nil
	}

	format := flags.Format
	if format == "" {
		format = store.FormatCSV
	}
	data, err := store.MarshalLineItems(items, format)
	if err != nil {
		return fmt.Errorf("failed to print line items: %w", err)
	}
	return common.WriteOutput(w, "", data, 0)
}
