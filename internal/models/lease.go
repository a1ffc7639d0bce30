package models

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// LeaseTerms is the normalized set of provisions extracted from one lease document.
//
// Taxes, utilities and escalation caps are held once, as typed clause lists. The
// type-to-text lookups returned by Taxes, Utilities and EscalationCaps are derived from
// those lists on every call and cannot drift from them.
type LeaseTerms struct {
	CAMRules              []ClauseItem
	TaxesDetails          []ClauseItem
	UtilitiesDetails      []ClauseItem
	EscalationCapsDetails []ClauseItem
	AllowedFees           []ClauseItem
	DisallowedFees        []ClauseItem

	// RawText is the document text the terms were extracted from.
	RawText string
}

// EmptyLeaseTerms returns a structurally valid lease with no extracted provisions.
func EmptyLeaseTerms(rawText string) *LeaseTerms {
	return &LeaseTerms{
		CAMRules:              []ClauseItem{},
		TaxesDetails:          []ClauseItem{},
		UtilitiesDetails:      []ClauseItem{},
		EscalationCapsDetails: []ClauseItem{},
		AllowedFees:           []ClauseItem{},
		DisallowedFees:        []ClauseItem{},
		RawText:               rawText,
	}
}

// Normalize replaces nil clause lists with empty ones so that serialized terms never
// carry null fields, and drops entries without wording. An empty wording would match
// every invoice line as a disallowed fee.
func (l *LeaseTerms) Normalize() *LeaseTerms {
	if l == nil {
		return EmptyLeaseTerms("")
	}
	for _, list := range []*[]ClauseItem{
		&l.CAMRules, &l.TaxesDetails, &l.UtilitiesDetails,
		&l.EscalationCapsDetails, &l.AllowedFees, &l.DisallowedFees,
	} {
		*list = withoutBlank(*list)
	}
	return l
}

// withoutBlank returns items unchanged when every entry has wording, otherwise a new
// slice without the blank ones. The input's backing array is never modified.
func withoutBlank(items []ClauseItem) []ClauseItem {
	if items == nil {
		return []ClauseItem{}
	}
	blank := 0
	for _, item := range items {
		if item.exactWording == "" {
			blank++
		}
	}
	if blank == 0 {
		return items
	}
	kept := make([]ClauseItem, 0, len(items)-blank)
	for _, item := range items {
		if item.exactWording != "" {
			kept = append(kept, item)
		}
	}
	return kept
}

// Taxes returns the tax type to quoted text lookup.
func (l *LeaseTerms) Taxes() map[string]string { return typeLookup(l.TaxesDetails) }

// Utilities returns the utility type to quoted text lookup.
func (l *LeaseTerms) Utilities() map[string]string { return typeLookup(l.UtilitiesDetails) }

// EscalationCaps returns the escalation cap type to quoted text lookup.
func (l *LeaseTerms) EscalationCaps() map[string]string {
	return typeLookup(l.EscalationCapsDetails)
}

// IsEmpty reports whether no provisions at all were extracted.
func (l *LeaseTerms) IsEmpty() bool {
	if l == nil {
		return true
	}
	return len(l.CAMRules) == 0 && len(l.TaxesDetails) == 0 && len(l.UtilitiesDetails) == 0 &&
		len(l.EscalationCapsDetails) == 0 && len(l.AllowedFees) == 0 && len(l.DisallowedFees) == 0
}

// ClauseCount returns the number of clause items across all sections.
func (l *LeaseTerms) ClauseCount() int {
	if l == nil {
		return 0
	}
	return len(l.CAMRules) + len(l.TaxesDetails) + len(l.UtilitiesDetails) +
		len(l.EscalationCapsDetails) + len(l.AllowedFees) + len(l.DisallowedFees)
}

func typeLookup(items []ClauseItem) map[string]string {
	lookup := make(map[string]string, len(items))
	for _, item := range items {
		lookup[item.Type()] = item.ExactWording()
	}
	return lookup
}

// leaseTermsWire is the serialized shape, carrying both the lookups and the detail lists.
type leaseTermsWire struct {
	CAMRules              []ClauseItem      `json:"cam_rules" yaml:"cam_rules"`
	Taxes                 map[string]string `json:"taxes" yaml:"taxes"`
	TaxesDetails          []ClauseItem      `json:"taxes_details" yaml:"taxes_details"`
	Utilities             map[string]string `json:"utilities" yaml:"utilities"`
	UtilitiesDetails      []ClauseItem      `json:"utilities_details" yaml:"utilities_details"`
	EscalationCaps        map[string]string `json:"escalation_caps" yaml:"escalation_caps"`
	EscalationCapsDetails []ClauseItem      `json:"escalation_caps_details" yaml:"escalation_caps_details"`
	AllowedFees           []ClauseItem      `json:"allowed_fees" yaml:"allowed_fees"`
	DisallowedFees        []ClauseItem      `json:"disallowed_fees" yaml:"disallowed_fees"`
	RawText               string            `json:"raw_text" yaml:"raw_text"`
}

func (l LeaseTerms) wire() leaseTermsWire {
	n := (&l).Normalize()
	return leaseTermsWire{
		CAMRules:              n.CAMRules,
		Taxes:                 n.Taxes(),
		TaxesDetails:          n.TaxesDetails,
		Utilities:             n.Utilities(),
		UtilitiesDetails:      n.UtilitiesDetails,
		EscalationCaps:        n.EscalationCaps(),
		EscalationCapsDetails: n.EscalationCapsDetails,
		AllowedFees:           n.AllowedFees,
		DisallowedFees:        n.DisallowedFees,
		RawText:               n.RawText,
	}
}

func (l *LeaseTerms) fromWire(w leaseTermsWire) {
	*l = LeaseTerms{
		CAMRules:              w.CAMRules,
		TaxesDetails:          detailsOrLookup(w.TaxesDetails, w.Taxes),
		UtilitiesDetails:      detailsOrLookup(w.UtilitiesDetails, w.Utilities),
		EscalationCapsDetails: detailsOrLookup(w.EscalationCapsDetails, w.EscalationCaps),
		AllowedFees:           w.AllowedFees,
		DisallowedFees:        w.DisallowedFees,
		RawText:               w.RawText,
	}
	l.Normalize()
}

// detailsOrLookup keeps the detail list when present; files that only carry the lookup
// get uncited detail items built from it, in key order.
func detailsOrLookup(details []ClauseItem, lookup map[string]string) []ClauseItem {
	if len(details) > 0 || len(lookup) == 0 {
		return details
	}
	keys := make([]string, 0, len(lookup))
	for k := range lookup {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]ClauseItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, NewTypedClauseItem(k, lookup[k], ""))
	}
	return items
}

// MarshalJSON implements json.Marshaler.
func (l LeaseTerms) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LeaseTerms) UnmarshalJSON(data []byte) error {
	var w leaseTermsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	l.fromWire(w)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l LeaseTerms) MarshalYAML() (interface{}, error) {
	return l.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *LeaseTerms) UnmarshalYAML(value *yaml.Node) error {
	var w leaseTermsWire
	if err := value.Decode(&w); err != nil {
		return err
	}
	l.fromWire(w)
	return nil
}
