package invoice

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"fjacquet/lease-audit/cmd/root"
	"fjacquet/lease-audit/internal/config"
	"fjacquet/lease-audit/internal/container"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/textextract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoiceText = "Base Rent $1,000.00\nProperty Tax 120.00\nTotal $1,120.00\n"

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.NewContainer(config.Default(),
		container.WithLogger(logging.NewMockLogger()),
		container.WithTextExtractor(textextract.NewMockExtractor(invoiceText, nil)))
	require.NoError(t, err)
	return c
}

func TestRun_PrintsCSV(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), newContainer(t), root.CommonFlags{Input: "invoice.pdf"}, &out))

	assert.Contains(t, out.String(), "line_number,description,amount,category")
	assert.Contains(t, out.String(), "1,Base Rent,1000.00,Rent")
	assert.Contains(t, out.String(), "2,Property Tax,120.00,Tax")
	assert.NotContains(t, out.String(), "Total")
}

func TestRun_SavesItems(t *testing.T) {
	c := newContainer(t)
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, Run(context.Background(), c, root.CommonFlags{Input: "invoice.pdf", Output: path}, &bytes.Buffer{}))

	items, err := c.GetStore().LoadLineItems(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.CategoryTax, items[1].Category)
}

func TestRun_UnknownPrintFormat(t *testing.T) {
	err := Run(context.Background(), newContainer(t), root.CommonFlags{Input: "invoice.pdf", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
