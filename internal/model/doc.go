// Package model defines the data produced by an analysis.
//
// This package contains the following main types:
//   - AnalysisResult: everything measured about one password
//   - WordlistVerdict and BreachVerdict: outcomes of the optional checks
//   - Finding: a piece of advice with a severity, derived by Assess
//   - BatchSummary: counts over many results
//
// Design decision: results and their verdicts live apart from the code
// that computes them so the pipeline, the report writers and the CLI can
// share them without import cycles. Every type marshals to JSON.
package model
