// Package strength implements the pure password checks: character-class
// detection, Shannon entropy and the composite heuristic score.
//
// Every function here is deterministic and free of I/O. The optional
// zxcvbn estimator is exposed through the Estimator interface so callers
// decide whether to pay for it.
//
//	a := strength.Assess("Tr0ub4dor&3")
//	fmt.Println(a.Score.Value, a.Score.Label)
package strength
