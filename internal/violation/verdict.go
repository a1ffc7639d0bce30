package violation

// Verdict is the outcome of checking one line item. The zero value is NotViolating.
type Verdict struct {
	Violating       bool
	Rule            string
	Reason          string
	Explanation     string
	ClauseReference string // "" when no clause could be cited
}

// NotViolating is the verdict for a charge that passed every rule.
var NotViolating = Verdict{}

// HasCitation reports whether the verdict cites a lease clause.
func (v Verdict) HasCitation() bool {
	return v.ClauseReference != ""
}

func violating(rule, reason, explanation, ref string) Verdict {
	if ref != "" {
		explanation += " (See " + ref + ")"
	}
	return Verdict{
		Violating:       true,
		Rule:            rule,
		Reason:          reason,
		Explanation:     explanation,
		ClauseReference: ref,
	}
}
