// Package lease handles lease term extraction commands
package lease

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

// Cmd represents the lease command
var Cmd = &cobra.Command{
	Use:   "lease",
	Short: "Extract lease terms",
	Long: `Extract CAM rules, taxes, utilities, escalation caps and allowed or disallowed fees
from a lease document. Terms are printed, or saved with --output for later audits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c, root.SharedFlags, cmd.OutOrStdout())
	},
}

// Run extracts the lease at flags.Input. With an output path the terms are saved
// there; otherwise they are written to w as YAML, or JSON with --format json.
func Run(ctx context.Context, src common.Sources, flags root.CommonFlags, w io.Writer) error {
	lease, err := common.LoadLease(ctx, src, flags.Input)
	if err != nil {
		return err
	}

	if flags.Output != "" {
		if err := src.GetStore().SaveLease(flags.Output, lease); err != nil {
			return err
		}
		src.GetLogger().Info("Lease terms saved", logging.F(logging.FieldOutputFile, flags.Output))
		return nil
	}

	format := flags.Format
	if format == "" {
		format = store.FormatYAML
	}
	data, err := store.MarshalLease(lease, format)
	if err != nil {
		return fmt.Errorf("failed to print lease terms: %w", err)
	}
	return common.WriteOutput(w, "", data, 0)
}
