package categorize

import (
	"bytes"
	"testing"

	"fjacquet/lease-audit/internal/categorizer"
	"fjacquet/lease-audit/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"Common Area Maintenance - Q1", "Category: CAM\n"},
		{"Real estate tax installment", "Category: Tax\n"},
		{"Base Rent", "Category: Rent\n"},
		{"", "Category: Other\n"},
	}

	logger := logging.NewMockLogger()
	cat := categorizer.NewCategorizer(logger)
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, Run(cat, tt.description, &out, logger))
			assert.Equal(t, tt.want, out.String())
		})
	}
	assert.True(t, logger.HasEntry("DEBUG", "Charge categorized"))
}

func TestCommandFlags(t *testing.T) {
	flag := Cmd.Flags().Lookup("description")
	require.NotNil(t, flag)
	assert.Equal(t, "d", flag.Shorthand)
}
