package store

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/lease-audit/internal/auditerror"
	"fjacquet/lease-audit/internal/logging"
	"fjacquet/lease-audit/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func sampleLease() *models.LeaseTerms {
	lease := models.EmptyLeaseTerms("Section 4.2 Disallowed fees: administrative fee")
	lease.CAMRules = []models.ClauseItem{models.NewClauseItem("CAM billed pro rata", "Article 7")}
	lease.TaxesDetails = []models.ClauseItem{models.NewTypedClauseItem("property tax", "12%", "")}
	lease.DisallowedFees = []models.ClauseItem{models.NewClauseItem("administrative fee", "Section 4.2")}
	return lease
}

func sampleItems() []models.LineItem {
	return []models.LineItem{
		{Description: "Base Rent", Amount: decimal.NewFromInt(1000), Category: models.CategoryRent, LineNumber: 1},
		{Description: "Water, sewer", Amount: decimal.RequireFromString("60.25"), Category: models.CategoryUtilities, LineNumber: 2},
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		"terms.json":  FormatJSON,
		"terms.YAML":  FormatYAML,
		"terms.yml":   FormatYAML,
		"items.csv":   FormatCSV,
		"lease.pdf":   "",
		"invoice.txt": "",
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatFor(path), path)
	}
	assert.True(t, IsLeaseFile("a.yaml"))
	assert.False(t, IsLeaseFile("a.csv"))
	assert.True(t, IsItemsFile("a.csv"))
}

func TestLeaseRoundTrip(t *testing.T) {
	s := NewDocumentStore(logging.NewMockLogger())
	for _, name := range []string{"terms.json", "terms.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", name)
			require.NoError(t, s.SaveLease(path, sampleLease()))

			loaded, err := s.LoadLease(path)
			require.NoError(t, err)
			assert.Equal(t, sampleLease(), loaded)
			assert.Equal(t, map[string]string{"property tax": "12%"}, loaded.Taxes())
			assert.False(t, loaded.TaxesDetails[0].HasReference())
		})
	}
}

func TestLoadLease_DropsBlankWording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	writeFile(t, path, `disallowed_fees:
  - exact_wording: ""
    clause_reference: Section 4.2
  - exact_wording: administrative fee
    clause_reference: Section 4.2
`)

	lease, err := NewDocumentStore(logging.NewMockLogger()).LoadLease(path)
	require.NoError(t, err)
	require.Len(t, lease.DisallowedFees, 1)
	assert.Equal(t, "administrative fee", lease.DisallowedFees[0].ExactWording())
	assert.NotNil(t, lease.CAMRules)
}

func TestLineItemsRoundTrip(t *testing.T) {
	s := NewDocumentStore(logging.NewMockLogger())
	for _, name := range []string{"items.json", "items.yml", "items.csv"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, s.SaveLineItems(path, sampleItems()))

			loaded, err := s.LoadLineItems(path)
			require.NoError(t, err)
			require.Len(t, loaded, 2)
			for i, want := range sampleItems() {
				assert.Equal(t, want.Description, loaded[i].Description)
				assert.True(t, want.Amount.Equal(loaded[i].Amount), loaded[i].Amount.String())
				assert.Equal(t, want.Category, loaded[i].Category)
				assert.Equal(t, want.LineNumber, loaded[i].LineNumber)
			}
		})
	}
}

func TestLoadLineItems_HandWrittenCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	writeFile(t, path, "line_number,description,amount,category\n1,Base Rent,\"$1,000.00\",rent\n2,Roof Repair,250,Other\n")

	items, err := NewDocumentStore(logging.NewMockLogger()).LoadLineItems(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, decimal.NewFromInt(1000).Equal(items[0].Amount))
	assert.Equal(t, models.CategoryRent, items[0].Category)
}

func TestLoadLineItems_Invalid(t *testing.T) {
	dir := t.TempDir()
	s := NewDocumentStore(logging.NewMockLogger())

	negative := filepath.Join(dir, "negative.json")
	writeFile(t, negative, `[{"description":"Credit","amount":"-5","category":"Other","line_number":1}]`)
	_, err := s.LoadLineItems(negative)
	assert.True(t, auditerror.IsInvalidInput(err))

	badCategory := filepath.Join(dir, "bad.csv")
	writeFile(t, badCategory, "line_number,description,amount,category\n1,Parking,5,Parking\n")
	_, err = s.LoadLineItems(badCategory)
	var formatErr *auditerror.InvalidFormatError
	assert.ErrorAs(t, err, &formatErr)

	_, err = s.LoadLineItems(filepath.Join(dir, "items.pdf"))
	assert.Error(t, err)

	_, err = s.LoadLease(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadLineItems_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	writeFile(t, path, "[]")
	items, err := NewDocumentStore(logging.NewMockLogger()).LoadLineItems(path)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMarshal_UnsupportedFormat(t *testing.T) {
	_, err := MarshalLease(sampleLease(), "xml")
	assert.Error(t, err)
	_, err = MarshalLineItems(sampleItems(), "")
	assert.Error(t, err)
}
