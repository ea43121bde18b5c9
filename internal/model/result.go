package model

import (
	"errors"
	"time"

	"github.com/nao1215/pwcheck/internal/strength"
)

// AnalysisResult is the outcome of analyzing one password.
// It never holds the password itself.
//
// Optional checks use nil to mean "not configured": a nil Wordlist means
// no wordlist was given, a nil Breach means the breach check was off.
// When a check was configured but failed, the verdict records the
// failure instead of a result.
type AnalysisResult struct {
	// Source names where the password came from ("prompt", "flag",
	// "stdin", "file.txt:12"), never the password.
	Source string `json:"source,omitempty"`

	// Length is the password length in code points.
	Length int `json:"password_length"`

	strength.Classes

	// EntropyBits is rounded to two decimals.
	EntropyBits float64 `json:"entropy_bits"`

	strength.Score

	Estimate   *strength.Estimate `json:"estimate,omitempty"`
	Wordlist   *WordlistVerdict   `json:"wordlist,omitempty"`
	Breach     *BreachVerdict     `json:"breach,omitempty"`
	Complexity *Complexity        `json:"complex,omitempty"`

	Findings []Finding `json:"findings"`

	// PerformedSteps lists the analysis steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	DateAnalyzed time.Time `json:"date_analyzed"`
}

// NewAnalysisResult returns an empty result for source.
func NewAnalysisResult(source string) *AnalysisResult {
	return &AnalysisResult{
		Source:       source,
		Findings:     []Finding{},
		DateAnalyzed: time.Now(),
	}
}

// AddStep records that a step ran.
func (r *AnalysisResult) AddStep(name string) {
	r.PerformedSteps = append(r.PerformedSteps, name)
}

// Complexity is the verbose-only detail block.
type Complexity struct {
	ClassesCount int `json:"classes_count"`
}

// WordlistStatus is the state of a wordlist check.
type WordlistStatus string

const (
	WordlistFound       WordlistStatus = "found"
	WordlistNotFound    WordlistStatus = "not_found"
	WordlistUnavailable WordlistStatus = "unavailable"
)

// WordlistVerdict is the outcome of a configured wordlist check.
type WordlistVerdict struct {
	Status WordlistStatus `json:"status"`
	Reason string         `json:"reason,omitempty"`
}

// WordlistMatch returns the verdict for a completed scan.
func WordlistMatch(found bool) *WordlistVerdict {
	if found {
		return &WordlistVerdict{Status: WordlistFound}
	}
	return &WordlistVerdict{Status: WordlistNotFound}
}

// WordlistError returns the verdict for a scan that could not run.
func WordlistError(reason string) *WordlistVerdict {
	return &WordlistVerdict{Status: WordlistUnavailable, Reason: reason}
}

// Found reports whether the password was in the wordlist.
func (v *WordlistVerdict) Found() bool {
	return v != nil && v.Status == WordlistFound
}

// Unavailable reports whether the check failed.
func (v *WordlistVerdict) Unavailable() bool {
	return v != nil && v.Status == WordlistUnavailable
}

// BreachVerdict is the outcome of a configured breach lookup. Exactly
// one of Count and Error is set.
type BreachVerdict struct {
	Count *int   `json:"count,omitempty"`
	Error string `json:"error,omitempty"`
}

// BreachCount returns the verdict for a successful lookup.
func BreachCount(n int) *BreachVerdict {
	return &BreachVerdict{Count: &n}
}

// BreachError returns the verdict for a failed lookup.
func BreachError(err error) *BreachVerdict {
	if err == nil {
		err = errors.New("unknown error")
	}
	return &BreachVerdict{Error: err.Error()}
}

// Found reports whether the password appeared in at least one breach.
func (v *BreachVerdict) Found() bool {
	return v != nil && v.Count != nil && *v.Count > 0
}

// Failed reports whether the lookup failed.
func (v *BreachVerdict) Failed() bool {
	return v != nil && v.Count == nil
}

// Times returns the breach count, or 0 when there is none.
func (v *BreachVerdict) Times() int {
	if v == nil || v.Count == nil {
		return 0
	}
	return *v.Count
}
