package review

import (
	"fmt"
	"io"

	"fjacquet/lease-audit/internal/currencyutils"
	"fjacquet/lease-audit/internal/report"
)

// Render writes the review screen. Colour is used only when colorize is true.
func Render(w io.Writer, view View, colorize bool) error {
	p := report.NewPalette(colorize)
	currency := view.Currency
	ew := &errWriter{w: w}

	p.Title.Fprintln(ew, "LEASE REVIEW")
	s := view.Summary
	ew.printf("%d items, %d flagged, overcharge %s of %s (%s)\n\n",
		s.NumberOfItems, s.NumberOfMismatches,
		currencyutils.FormatAmount(s.TotalOvercharge, currency),
		currencyutils.FormatAmount(s.TotalInvoiceAmount, currency),
		currencyutils.FormatPercent(s.OverchargePercentage, 1))

	p.Header.Fprintln(ew, "Lease terms")
	if len(view.Terms) == 0 {
		p.Muted.Fprintln(ew, "  (none extracted)")
	}
	for _, t := range view.Terms {
		label := t.Section
		if t.Type != "" {
			label += " / " + t.Type
		}
		ew.printf("  %-28s %s  %s\n", label, t.Wording, citationText(p, t.Citation))
	}
	ew.printf("\n")

	p.Header.Fprintln(ew, "Invoice lines")
	for _, e := range view.Entries {
		mark := p.Good.Sprint("OK  ")
		switch e.Status {
		case StatusViolation:
			mark = p.Bad.Sprint("FLAG")
		case StatusDuplicate:
			mark = p.Warning.Sprint("DUP ")
		}
		ew.printf("  [%s] %3d  %-*s %14s  %s\n", mark, e.LineNumber,
			report.DefaultMaxDescription, report.ShortDescription(e.Description, report.DefaultMaxDescription),
			currencyutils.FormatAmount(e.Amount, currency), e.Category)
		if !e.Flagged() {
			continue
		}
		ew.printf("         %s\n", e.Reason)
		ew.printf("         %s\n", e.Explanation)
		ew.printf("         Clause: %s\n", citationText(p, e.Citation))
		ew.printf("         Action: %s\n", e.SuggestedAction)
	}
	return ew.err
}

func citationText(p report.Palette, c Citation) string {
	if c.State == CitationNone {
		return p.Muted.Sprintf("(%s)", c.Text)
	}
	return "[" + c.Text + "]"
}

// errWriter keeps the first write error so rendering code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(b)
	ew.err = err
	return n, err
}

func (ew *errWriter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ew, format, args...)
}
