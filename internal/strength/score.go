package strength

// Label is the human-readable name of a score.
type Label string

// Labels ordered from weakest to strongest. The index of a label is its score.
const (
	LabelVeryWeak   Label = "Very weak"
	LabelWeak       Label = "Weak"
	LabelModerate   Label = "Moderate"
	LabelStrong     Label = "Strong"
	LabelVeryStrong Label = "Very strong"
)

var labels = [...]Label{LabelVeryWeak, LabelWeak, LabelModerate, LabelStrong, LabelVeryStrong}

const (
	// MinScore and MaxScore bound every score Evaluate returns.
	MinScore = 0
	MaxScore = len(labels) - 1

	// Scoring thresholds.
	shortLength     = 8
	longLength      = 12
	minMixedClasses = 2
	minRichClasses  = 3
	minRichEntropy  = 40.0
)

// Score is the composite heuristic score of a password.
type Score struct {
	Value int   `json:"simple_score"`
	Label Label `json:"label"`
}

// Evaluate combines length, class diversity and entropy into a score.
// Each condition adds one point independently:
//
//	length >= 8
//	length >= 12
//	at least 2 classes
//	at least 3 classes and entropy >= 40 bits
//
// The sum is clamped to [MinScore, MaxScore].
func Evaluate(length int, classes Classes, entropyBits float64) Score {
	n := classes.Count()
	v := 0
	if length >= shortLength {
		v++
	}
	if length >= longLength {
		v++
	}
	if n >= minMixedClasses {
		v++
	}
	if n >= minRichClasses && entropyBits >= minRichEntropy {
		v++
	}
	v = clamp(v)
	return Score{Value: v, Label: LabelFor(v)}
}

// LabelFor maps a score to its label. Out-of-range scores are clamped
// first, so every int has a label.
func LabelFor(score int) Label {
	return labels[clamp(score)]
}

// Labels returns every label, weakest first.
func Labels() []Label {
	return append([]Label(nil), labels[:]...)
}

func clamp(v int) int {
	return min(max(v, MinScore), MaxScore)
}

// Assessment is the result of running the three pure checks on one password.
type Assessment struct {
	Length      int
	Classes     Classes
	EntropyBits float64
	Score       Score
}

// Assess classifies password, estimates its entropy and scores it.
func Assess(password string) Assessment {
	a := Assessment{
		Length:      Length(password),
		Classes:     Classify(password),
		EntropyBits: Entropy(password),
	}
	a.Score = Evaluate(a.Length, a.Classes, a.EntropyBits)
	return a
}
