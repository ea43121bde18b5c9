package model

// Severity ranks how urgently a finding should be acted on.
type Severity int

const (
	// SeverityInfo notes something about the run, not the password.
	// Example: the wordlist could not be read.
	SeverityInfo Severity = iota

	// SeverityLow marks a weakness that matters only in combination.
	// Example: too few character classes.
	SeverityLow

	// SeverityMedium marks a weakness that makes guessing noticeably cheaper.
	// Examples: short length, low entropy.
	SeverityMedium

	// SeverityHigh marks a password that is on a known attack list.
	SeverityHigh

	// SeverityCritical marks a password that attackers already have.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Finding types produced by Assess.
const (
	FindingBreached            = "breached"
	FindingInWordlist          = "found_in_wordlist"
	FindingShortLength         = "short_length"
	FindingLowEntropy          = "low_entropy"
	FindingFewClasses          = "few_classes"
	FindingWordlistUnavailable = "wordlist_unavailable"
	FindingBreachCheckFailed   = "breach_check_failed"
	FindingLooksStrong         = "looks_strong"
)

// FindingInfo holds the fixed metadata of a finding type.
type FindingInfo struct {
	Severity       Severity
	Title          string
	Impact         string
	Recommendation string
}

// findingInfoMapping is the single source of severities and advice text.
var findingInfoMapping = map[string]FindingInfo{
	FindingBreached: {
		Severity:       SeverityCritical,
		Title:          "Found in data breaches",
		Impact:         "The password is in public breach corpora and is among the first guesses of any credential-stuffing attack.",
		Recommendation: "stop using this password everywhere and pick a new, unique one",
	},
	FindingInWordlist: {
		Severity:       SeverityHigh,
		Title:          "Found in local wordlist",
		Impact:         "The password is on a list of known passwords and falls to a dictionary attack.",
		Recommendation: "avoid this password",
	},
	FindingShortLength: {
		Severity:       SeverityMedium,
		Title:          "Short password",
		Impact:         "Short passwords can be exhausted by brute force.",
		Recommendation: "use at least 12 characters",
	},
	FindingLowEntropy: {
		Severity:       SeverityMedium,
		Title:          "Low entropy",
		Impact:         "Repeated or few distinct characters make the password predictable.",
		Recommendation: "increase entropy (longer / more unpredictable)",
	},
	FindingFewClasses: {
		Severity:       SeverityLow,
		Title:          "Few character classes",
		Impact:         "A small alphabet shrinks the search space.",
		Recommendation: "mix uppercase, lowercase, digits, and special characters",
	},
	FindingWordlistUnavailable: {
		Severity:       SeverityInfo,
		Title:          "Wordlist check skipped",
		Impact:         "The password was not compared against the wordlist.",
		Recommendation: "check the wordlist path",
	},
	FindingBreachCheckFailed: {
		Severity:       SeverityInfo,
		Title:          "Breach check failed",
		Impact:         "It is unknown whether the password has been breached.",
		Recommendation: "retry later or check network and proxy settings",
	},
	FindingLooksStrong: {
		Severity:       SeverityInfo,
		Title:          "Looks strong",
		Impact:         "No heuristic weakness was found.",
		Recommendation: "Good job! Your password looks reasonably strong.",
	},
}

// GetSeverity returns the severity of a finding type, SeverityInfo when unknown.
func GetSeverity(findingType string) Severity {
	return GetFindingInfo(findingType).Severity
}

// GetFindingInfo returns the metadata of a finding type.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{
		Severity:       SeverityInfo,
		Title:          findingType,
		Impact:         "Unknown finding type.",
		Recommendation: "Review manually.",
	}
}
