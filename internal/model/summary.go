package model

import "github.com/nao1215/pwcheck/internal/strength"

// BatchSummary aggregates the results of a batch run.
type BatchSummary struct {
	Total      int                    `json:"total"`
	ByLabel    map[strength.Label]int `json:"by_label"`
	Breached   int                    `json:"breached"`
	InWordlist int                    `json:"in_wordlist"`
	CheckFails int                    `json:"check_failures"`

	CriticalCount int `json:"critical_count"`
	HighCount     int `json:"high_count"`
	MediumCount   int `json:"medium_count"`
	LowCount      int `json:"low_count"`
	InfoCount     int `json:"info_count"`
}

// Summarize counts results by label, verdict and finding severity.
// Nil entries are skipped.
func Summarize(results []*AnalysisResult) *BatchSummary {
	s := &BatchSummary{ByLabel: make(map[strength.Label]int)}
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Total++
		s.ByLabel[r.Label]++
		if r.Breach.Found() {
			s.Breached++
		}
		if r.Wordlist.Found() {
			s.InWordlist++
		}
		if r.Breach.Failed() || r.Wordlist.Unavailable() {
			s.CheckFails++
		}
		for _, f := range r.Findings {
			switch f.Severity {
			case SeverityCritical:
				s.CriticalCount++
			case SeverityHigh:
				s.HighCount++
			case SeverityMedium:
				s.MediumCount++
			case SeverityLow:
				s.LowCount++
			case SeverityInfo:
				s.InfoCount++
			}
		}
	}
	return s
}
