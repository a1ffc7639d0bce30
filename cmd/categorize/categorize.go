// Package categorize handles charge categorization commands
package categorize

import (
	"fmt"
	"io"

	"fjacquet/lease-audit/cmd/root"
	"fjacquet/lease-audit/internal/categorizer"
	"fjacquet/lease-audit/internal/logging"

	"github.com/spf13/cobra"
)

// description holds the charge description to categorize
var description string

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a charge description",
	Long:  `Categorize a charge description as CAM, Tax, Utilities, Rent, Insurance or Other.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(c.GetCategorizer(), description, cmd.OutOrStdout(), c.GetLogger())
	},
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Charge description to categorize")
	_ = Cmd.MarkFlagRequired("description")
}

// Run prints the category of desc.
func Run(cat *categorizer.Categorizer, desc string, w io.Writer, logger logging.Logger) error {
	category := cat.Categorize(desc)
	logging.OrDefault(logger).Debug("Charge categorized",
		logging.F(logging.FieldDescription, desc),
		logging.F(logging.FieldCategory, category.String()))
	_, err := fmt.Fprintf(w, "Category: %s\n", category)
	return err
}
