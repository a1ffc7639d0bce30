package review

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"fjacquet/lease-audit/internal/config"
	"fjacquet/lease-audit/internal/container"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	c, err := container.NewContainer(config.Default(), container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	dir := t.TempDir()

	leasePath := filepath.Join(dir, "terms.json")
	require.NoError(t, c.GetStore().SaveLease(leasePath, models.EmptyLeaseTerms("")))
	itemsPath := filepath.Join(dir, "items.json")
	require.NoError(t, c.GetStore().SaveLineItems(itemsPath, []models.LineItem{
		{LineNumber: 1, Description: "Base Rent", Amount: decimal.NewFromInt(1000), Category: models.CategoryRent},
		{LineNumber: 2, Description: "Property Management Fee", Amount: decimal.NewFromInt(60), Category: models.CategoryOther},
	}))

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), c, leasePath, itemsPath, &out, false))

	text := out.String()
	assert.Contains(t, text, "LEASE REVIEW")
	assert.Contains(t, text, "Management Fee Over 5%")
	assert.Contains(t, text, "Clause: (See lease document)")
	assert.NotContains(t, text, "\x1b[")
}

func TestCommandFlags(t *testing.T) {
	for _, name := range []string{"lease", "invoice", "no-color"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
}
