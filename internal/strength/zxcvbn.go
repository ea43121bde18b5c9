package strength

import (
	"slices"

	"github.com/nbutton23/zxcvbn-go"
)

// Estimate is the output of a pattern-aware strength estimator.
type Estimate struct {
	Score     int     `json:"score"`
	Entropy   float64 `json:"entropy_bits"`
	CrackTime string  `json:"crack_time"`
}

// Estimator is an optional second opinion on top of the heuristic score.
// Implementations must be safe for concurrent use.
type Estimator interface {
	Estimate(password string) Estimate
}

// ZxcvbnEstimator estimates strength with zxcvbn's dictionary, keyboard
// and sequence matchers.
type ZxcvbnEstimator struct {
	userInputs []string
}

// NewZxcvbnEstimator returns a zxcvbn-backed Estimator. userInputs are
// extra words (user name, site name) that zxcvbn penalises when they
// appear in a password.
func NewZxcvbnEstimator(userInputs ...string) *ZxcvbnEstimator {
	return &ZxcvbnEstimator{userInputs: slices.Clone(userInputs)}
}

// Estimate implements Estimator.
func (z *ZxcvbnEstimator) Estimate(password string) Estimate {
	m := zxcvbn.PasswordStrength(password, z.userInputs)
	return Estimate{
		Score:     m.Score,
		Entropy:   m.Entropy,
		CrackTime: m.CrackTimeDisplay,
	}
}
