package textutils_test

import (
	"testing"

	"fjacquet/lease-audit/internal/textutils"

	"github.com/stretchr/testify/assert"
)

func TestExtractClauseReference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"section with decimals", "Section 4.2 Disallowed Fees.", "Section 4.2"},
		{"lower-case section", "as set out in section 12", "section 12"},
		{"article roman", "ARTICLE VII - Operating Expenses", "ARTICLE VII"},
		{"section sign", "§ 3.1 Taxes", "§ 3.1"},
		{"paragraph with letter", "Paragraph 12(b) CAM reconciliation", "Paragraph 12(b)"},
		{"clause", "Clause 9: Utilities", "Clause 9"},
		{"earliest marker wins", "Clause 2 amends Section 5", "Clause 2"},
		{"no marker", "Tenant pays its share of taxes", ""},
		{"article word without number", "the articles of incorporation", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.ExtractClauseReference(tt.input))
		})
	}
	assert.True(t, textutils.HasClauseReference("see Section 1"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, textutils.ContainsAny("Utility ADMIN Fee - March", "utility admin", "markup"))
	assert.False(t, textutils.ContainsAny("Base Rent", "tax", "water"))
	assert.False(t, textutils.ContainsAny("anything"))
	assert.True(t, textutils.ContainsFold("Administrative Fee", "administrative FEE"))
}

func TestSignificantWords(t *testing.T) {
	assert.Equal(t, []string{"administrative", "fees"}, textutils.SignificantWords("No administrative fees at all", 3))
	assert.Empty(t, textutils.SignificantWords("a an the", 3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", textutils.Truncate("abcdef", 3))
	assert.Equal(t, "abc", textutils.Truncate("abc", 10))
	assert.Equal(t, "", textutils.Truncate("abc", 0))
	assert.Equal(t, "héll", textutils.Truncate("héllo", 4))

	assert.Equal(t, "abc\n[cut]", textutils.TruncateWithMarker("abcdef", 3, "\n[cut]"))
	assert.Equal(t, "abc", textutils.TruncateWithMarker("abc", 3, "\n[cut]"))

	assert.Equal(t, "abcd...", textutils.TruncateEllipsis("abcdefghij", 7))
	assert.Equal(t, "short", textutils.TruncateEllipsis("short", 7))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t,
		[]string{"administrative fees", "late fees", "repairs and maintenance markups"},
		textutils.SplitList(" administrative fees, late fees; repairs and maintenance markups."))
	assert.Empty(t, textutils.SplitList(" , ; "))
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "a b c", textutils.NormalizeSpace("  a\n b\t\tc "))
}
