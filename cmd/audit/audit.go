// Package audit handles the lease versus invoice comparison command
package audit

import (
	"context"
	"fmt"
	"io"

	"fjacquet/lease-audit/cmd/common"
	"fjacquet/lease-audit/cmd/root"
	"fjacquet/lease-audit/internal/container"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/report"

	"github.com/spf13/cobra"
)

var (
	// leaseFile is the lease document or saved terms file
	leaseFile string
	// invoiceFile is the invoice document or saved items file
	invoiceFile string
)

// Cmd represents the audit command
var Cmd = &cobra.Command{
	Use:   "audit",
	Short: "Compare an invoice with its lease and report violations",
	Long: `Compare every invoice line item with the lease terms and general leasing-fairness
rules, then write a report (text, json, yaml, xml, csv or xlsx) of the flagged charges.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c, Options{
			Lease:   leaseFile,
			Invoice: invoiceFile,
			Output:  root.SharedFlags.Output,
			Format:  root.SharedFlags.Format,
		}, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&leaseFile, "lease", "l", "", "Lease document or saved terms file")
	Cmd.Flags().StringVarP(&invoiceFile, "invoice", "n", "", "Invoice document or saved items file")
	_ = Cmd.MarkFlagRequired("lease")
	_ = Cmd.MarkFlagRequired("invoice")
}

// Options are the inputs of one audit run.
type Options struct {
	Lease   string
	Invoice string
	Output  string
	Format  string
}

// ResolveFormat picks the report format: the explicit flag, then the output extension,
// then the configured default.
func ResolveFormat(flag, output, configured string) string {
	switch {
	case flag != "":
		return flag
	case output != "":
		return report.FormatForPath(output)
	case configured != "":
		return configured
	default:
		return report.FormatText
	}
}

// Run audits opts.Invoice against opts.Lease and writes the report to opts.Output, or
// to w when no output is given.
func Run(ctx context.Context, c *container.Container, opts Options, w io.Writer) error {
	format := ResolveFormat(opts.Format, opts.Output, c.GetConfig().Report.Format)
	if !report.IsSupportedFormat(format) {
		return fmt.Errorf("unsupported report format: %s", format)
	}

	result, err := common.Audit(ctx, c, opts.Lease, opts.Invoice)
	if err != nil {
		return err
	}

	data, err := c.GetReportGenerator().Generate(result.Lease, result.Items, result.Report, format)
	if err != nil {
		return err
	}
	if err := common.WriteOutput(w, opts.Output, data, models.PermissionReportFile); err != nil {
		return err
	}
	if opts.Output != "" {
		c.GetLogger().Info("Report written",
			logging.F(logging.FieldOutputFile, opts.Output),
			logging.F(logging.FieldFormat, format))
	}
	return nil
}
