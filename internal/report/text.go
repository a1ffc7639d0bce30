package report

import (
	"fmt"
	"strings"

	"fjacquet/lease-audit/internal/currencyutils"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// Palette holds the colours used for terminal output.
type Palette struct {
	Title   *color.Color
	Header  *color.Color
	Good    *color.Color
	Bad     *color.Color
	Warning *color.Color
	Muted   *color.Color
}

// NewPalette returns the terminal palette. With colorize false every colour prints
// plain text, regardless of the terminal.
func NewPalette(colorize bool) Palette {
	p := Palette{
		Title:   color.New(color.FgWhite, color.Bold),
		Header:  color.New(color.FgCyan, color.Bold),
		Good:    color.New(color.FgGreen),
		Bad:     color.New(color.FgRed, color.Bold),
		Warning: color.New(color.FgYellow),
		Muted:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.Title, p.Header, p.Good, p.Bad, p.Warning, p.Muted} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (g *Generator) amount(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return currencyutils.FormatAmount(d, g.opts.Currency)
}

func (g *Generator) renderText(doc *Document) []byte {
	p := NewPalette(!g.opts.NoColor)
	var b strings.Builder

	p.Title.Fprintln(&b, "LEASE AUDIT REPORT")
	fmt.Fprintf(&b, "Generated: %s  Run: %s\n\n",
		doc.Metadata.GeneratedAt.Format("2006-01-02 15:04 MST"), doc.Metadata.RunID)

	s := doc.Summary
	p.Header.Fprintln(&b, "SUMMARY")
	fmt.Fprintf(&b, "  %-24s %s\n", "Total invoice amount:", g.amount(s.TotalInvoiceAmount))
	overcharge := p.Good
	if s.NumberOfMismatches > 0 {
		overcharge = p.Bad
	}
	fmt.Fprintf(&b, "  %-24s %s\n", "Total overcharge:", overcharge.Sprint(g.amount(s.TotalOvercharge)))
	fmt.Fprintf(&b, "  %-24s %s\n", "Total allowed:", g.amount(s.TotalAllowed))
	fmt.Fprintf(&b, "  %-24s %d\n", "Line items:", s.NumberOfItems)
	fmt.Fprintf(&b, "  %-24s %d (%d duplicate)\n", "Flagged items:", s.NumberOfMismatches, s.NumberOfDuplicates)
	fmt.Fprintf(&b, "  %-24s %s\n\n", "Overcharge percentage:", s.OverchargePercentage)

	p.Header.Fprintln(&b, "LEASE TERMS")
	if len(doc.Clauses) == 0 {
		p.Muted.Fprintln(&b, "  No lease terms extracted")
	}
	current := ""
	for _, c := range doc.Clauses {
		if c.Section != current {
			current = c.Section
			fmt.Fprintf(&b, "  %s\n", current)
		}
		label := ""
		if c.Type != "" {
			label = c.Type + ": "
		}
		citation := p.Muted.Sprintf("[%s]", c.Citation)
		if c.Cited {
			citation = fmt.Sprintf("[%s]", c.Citation)
		}
		fmt.Fprintf(&b, "    - %s%q %s\n", label, c.Wording, citation)
	}
	b.WriteString("\n")

	p.Header.Fprintln(&b, "INVOICE LINE ITEMS")
	width := g.opts.MaxDescription
	fmt.Fprintf(&b, "  %-4s %-*s %14s  %-10s %s\n", "#", width, "Description", "Amount", "Category", "Status")
	for _, item := range doc.Items {
		status := p.Good.Sprint(item.Status)
		switch item.Status {
		case StatusViolation:
			status = p.Bad.Sprint(item.Status)
		case StatusDuplicate:
			status = p.Warning.Sprint(item.Status)
		}
		fmt.Fprintf(&b, "  %-4d %-*s %14s  %-10s %s\n", item.LineNumber, width,
			ShortDescription(item.Description, width), g.amount(item.Amount), item.Category, status)
	}
	b.WriteString("\n")

	p.Header.Fprintln(&b, "VIOLATIONS")
	if len(doc.Violations) == 0 {
		p.Good.Fprintln(&b, "  No violations found")
	}
	for i, v := range doc.Violations {
		fmt.Fprintf(&b, "  %d. Line %d: %s (%s)\n", i+1, v.LineNumber, v.Description, g.amount(v.Amount))
		reason := p.Bad
		if v.Kind == "duplicate" {
			reason = p.Warning
		}
		fmt.Fprintf(&b, "     Reason: %s\n", reason.Sprint(v.Reason))
		fmt.Fprintf(&b, "     Explanation: %s\n", v.Explanation)
		if v.Cited {
			fmt.Fprintf(&b, "     Lease clause: %s\n", v.Citation)
		} else {
			fmt.Fprintf(&b, "     Lease clause: %s\n", p.Muted.Sprintf("none cited (%s)", v.Citation))
		}
		fmt.Fprintf(&b, "     Suggested action: %s\n", v.SuggestedAction)
	}
	return []byte(b.String())
}
