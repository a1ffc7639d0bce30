package models

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// NoCitation is the display value written in place of a missing clause reference.
// It is never stored inside a ClauseItem.
const NoCitation = "See lease document"

// ClauseItem is one quoted lease provision with the locator of the clause it came from.
// It is immutable once created; use NewClauseItem or NewTypedClauseItem.
type ClauseItem struct {
	exactWording    string
	clauseReference string
	itemType        string
}

// clauseItemWire is the serialized shape of a ClauseItem.
type clauseItemWire struct {
	ExactWording    string `json:"exact_wording" yaml:"exact_wording"`
	ClauseReference string `json:"clause_reference" yaml:"clause_reference"`
	Type            string `json:"type,omitempty" yaml:"type,omitempty"`
}

// NewClauseItem creates a clause item. The wording is whitespace-normalized and a blank
// reference, or one equal to NoCitation, is stored as absent.
func NewClauseItem(exactWording, clauseReference string) ClauseItem {
	return ClauseItem{
		exactWording:    NormalizeWhitespace(exactWording),
		clauseReference: normalizeReference(clauseReference),
	}
}

// NewTypedClauseItem creates a clause item carrying a type label, as used for
// taxes, utilities and escalation caps.
func NewTypedClauseItem(itemType, exactWording, clauseReference string) ClauseItem {
	item := NewClauseItem(exactWording, clauseReference)
	item.itemType = strings.TrimSpace(itemType)
	return item
}

// ExactWording returns the quoted lease text.
func (c ClauseItem) ExactWording() string { return c.exactWording }

// Type returns the type label, empty for untyped items.
func (c ClauseItem) Type() string { return c.itemType }

// Reference returns the clause locator, or "" when the extraction found none.
func (c ClauseItem) Reference() string { return c.clauseReference }

// HasReference reports whether a real clause locator is available.
func (c ClauseItem) HasReference() bool { return c.clauseReference != "" }

// Citation returns the clause locator for display, or NoCitation when absent.
func (c ClauseItem) Citation() string {
	if c.clauseReference == "" {
		return NoCitation
	}
	return c.clauseReference
}

func (c ClauseItem) wire() clauseItemWire {
	return clauseItemWire{
		ExactWording:    c.exactWording,
		ClauseReference: c.Citation(),
		Type:            c.itemType,
	}
}

// MarshalJSON writes the display sentinel for a missing reference.
func (c ClauseItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.wire())
}

// UnmarshalJSON reads a clause item, turning the sentinel back into an absent reference.
func (c *ClauseItem) UnmarshalJSON(data []byte) error {
	var w clauseItemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = NewTypedClauseItem(w.Type, w.ExactWording, w.ClauseReference)
	return nil
}

// MarshalYAML writes the display sentinel for a missing reference.
func (c ClauseItem) MarshalYAML() (interface{}, error) {
	return c.wire(), nil
}

// UnmarshalYAML reads a clause item, turning the sentinel back into an absent reference.
func (c *ClauseItem) UnmarshalYAML(value *yaml.Node) error {
	var w clauseItemWire
	if err := value.Decode(&w); err != nil {
		return err
	}
	*c = NewTypedClauseItem(w.Type, w.ExactWording, w.ClauseReference)
	return nil
}

func normalizeReference(ref string) string {
	ref = NormalizeWhitespace(ref)
	if strings.EqualFold(ref, NoCitation) {
		return ""
	}
	return ref
}

// NormalizeWhitespace collapses runs of whitespace into single spaces and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
