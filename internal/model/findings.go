package model

import (
	"cmp"
	"fmt"
	"slices"
)

// Advice thresholds. They are stricter than the scoring thresholds: a
// password can score "Strong" and still get advice.
const (
	AdviceMinLength  = 12
	AdviceMinEntropy = 60.0
	AdviceMinClasses = 3
)

// Finding is one piece of advice about an analyzed password.
type Finding struct {
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	SeverityText   string   `json:"severity_text"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Impact         string   `json:"impact,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// NewFinding builds a finding from the mapping for findingType.
func NewFinding(findingType, description string) Finding {
	info := GetFindingInfo(findingType)
	return Finding{
		Type:           findingType,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          info.Title,
		Description:    description,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
	}
}

// Assess derives findings from the measured fields of r, most severe
// first. When nothing is wrong it returns a single FindingLooksStrong.
func Assess(r *AnalysisResult) []Finding {
	var fs []Finding

	if r.Breach.Found() {
		fs = append(fs, NewFinding(FindingBreached,
			fmt.Sprintf("Found in breaches: %d times", r.Breach.Times())))
	}
	if r.Wordlist.Found() {
		fs = append(fs, NewFinding(FindingInWordlist, "Found in local wordlist"))
	}

	weak := false
	if r.Length < AdviceMinLength {
		weak = true
		fs = append(fs, NewFinding(FindingShortLength,
			fmt.Sprintf("%d characters", r.Length)))
	}
	if r.EntropyBits < AdviceMinEntropy {
		weak = true
		fs = append(fs, NewFinding(FindingLowEntropy,
			fmt.Sprintf("%.2f bits", r.EntropyBits)))
	}
	if n := r.Classes.Count(); n < AdviceMinClasses {
		weak = true
		fs = append(fs, NewFinding(FindingFewClasses,
			fmt.Sprintf("%d of 4 character classes", n)))
	}

	if r.Wordlist.Unavailable() {
		fs = append(fs, NewFinding(FindingWordlistUnavailable, r.Wordlist.Reason))
	}
	if r.Breach.Failed() {
		fs = append(fs, NewFinding(FindingBreachCheckFailed, r.Breach.Error))
	}

	if !weak && !r.Breach.Found() && !r.Wordlist.Found() {
		fs = append(fs, NewFinding(FindingLooksStrong, ""))
	}

	slices.SortStableFunc(fs, func(a, b Finding) int {
		return cmp.Compare(b.Severity, a.Severity)
	})
	return fs
}

// Advice returns the recommendations of the heuristic findings in the
// order they were derived. It is the short checklist shown to users.
func Advice(fs []Finding) []string {
	var out []string
	for _, f := range fs {
		switch f.Type {
		case FindingShortLength, FindingLowEntropy, FindingFewClasses, FindingLooksStrong:
			out = append(out, f.Recommendation)
		}
	}
	return out
}
