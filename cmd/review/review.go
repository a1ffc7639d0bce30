// Package review handles the interactive review command
package review

import (
	"context"
	"io"
	"os"

	"fjacquet/lease-audit/cmd/common"
	"fjacquet/lease-audit/cmd/root"
	"fjacquet/lease-audit/internal/container"
	"fjacquet/lease-audit/internal/review"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// leaseFile is the lease document or saved terms file
	leaseFile string
	// invoiceFile is the invoice document or saved items file
	invoiceFile string
	// noColor disables colour even on a terminal
	noColor bool
)

// Cmd represents the review command
var Cmd = &cobra.Command{
	Use:   "review",
	Short: "Walk through an invoice line by line against its lease",
	Long: `Show every invoice line with its status, the reason it was flagged, the lease clause
behind the flag and the suggested action. Colour is used only on a terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		colorize := !noColor && term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 -- file descriptors fit in int
		return Run(cmd.Context(), c, leaseFile, invoiceFile, cmd.OutOrStdout(), colorize)
	},
}

func init() {
	Cmd.Flags().StringVarP(&leaseFile, "lease", "l", "", "Lease document or saved terms file")
	Cmd.Flags().StringVarP(&invoiceFile, "invoice", "n", "", "Invoice document or saved items file")
	Cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colour output")
	_ = Cmd.MarkFlagRequired("lease")
	_ = Cmd.MarkFlagRequired("invoice")
}

// Run audits the invoice and renders the review view to w.
func Run(ctx context.Context, c *container.Container, leasePath, invoicePath string, w io.Writer, colorize bool) error {
	result, err := common.Audit(ctx, c, leasePath, invoicePath)
	if err != nil {
		return err
	}
	view := review.Build(result.Lease, result.Items, result.Report)
	view.Currency = c.GetConfig().Report.Currency
	return review.Render(w, view, colorize)
}
