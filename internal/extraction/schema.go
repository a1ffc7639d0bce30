package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/lease-audit/internal/auditerror"
	"fjacquet/lease-audit/internal/models"
	"fjacquet/lease-audit/internal/textutils"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema names, used as resource URLs and in errors.
const (
	LeaseSchemaName   = "lease_extraction"
	InvoiceSchemaName = "invoice_extraction"
)

func clauseListSchema(description string, typed bool) map[string]any {
	props := map[string]any{
		"exact_wording":    map[string]any{"type": "string"},
		"clause_reference": map[string]any{"type": "string"},
	}
	required := []any{"exact_wording", "clause_reference"}
	if typed {
		props["type"] = map[string]any{"type": "string"}
		required = append(required, "type")
	}
	return map[string]any{
		"type":        "array",
		"description": description,
		"items": map[string]any{
			"type":                 "object",
			"properties":           props,
			"required":             required,
			"additionalProperties": false,
		},
	}
}

// LeaseSchema returns the JSON schema model output for a lease must satisfy.
func LeaseSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cam_rules":       clauseListSchema("CAM (Common Area Maintenance) rules, charges and provisions", false),
			"taxes":           clauseListSchema("Tax provisions; type is a short label such as 'property tax'", true),
			"utilities":       clauseListSchema("Utility provisions; type is the utility, e.g. 'water'", true),
			"escalation_caps": clauseListSchema("Escalation caps; type is a short label such as 'annual'", true),
			"allowed_fees":    clauseListSchema("Fees and charges explicitly allowed or permitted", false),
			"disallowed_fees": clauseListSchema("Fees and charges explicitly disallowed or prohibited", false),
		},
		"required": []any{
			"cam_rules", "taxes", "utilities", "escalation_caps", "allowed_fees", "disallowed_fees",
		},
		"additionalProperties": false,
	}
}

// InvoiceSchema returns the JSON schema model output for an invoice must satisfy.
func InvoiceSchema() map[string]any {
	categories := make([]any, 0, len(models.AllCategories))
	for _, name := range models.CategoryNames() {
		categories = append(categories, name)
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"line_items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"description": map[string]any{"type": "string", "minLength": 1, "pattern": `\S`},
						"amount":      map[string]any{"type": "number", "minimum": 0},
						"category":    map[string]any{"type": "string", "enum": categories},
					},
					"required":             []any{"description", "amount", "category"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"line_items"},
		"additionalProperties": false,
	}
}

// ValidateAgainstSchema validates data against schemaMap. Failures are returned as
// *auditerror.SchemaError.
func ValidateAgainstSchema(name string, schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return &auditerror.SchemaError{Schema: name, Snippet: snippet(data), Err: err}
	}
	if err := schema.Validate(v); err != nil {
		return &auditerror.SchemaError{Schema: name, Snippet: snippet(data), Err: err}
	}
	return nil
}

// StripCodeFence removes a surrounding markdown code fence (```json ... ```) that
// models commonly wrap JSON in.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func snippet(data []byte) string {
	return textutils.TruncateWithMarker(string(data), 80, "...")
}
