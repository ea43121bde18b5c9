// Package pipeline runs password analysis as a sequence of steps.
//
// A single analysis classifies characters, estimates entropy and derives
// the heuristic score, then runs whichever optional checks are configured
// (pattern-aware estimate, wordlist lookup, breach lookup) and finishes by
// turning the measurements into findings. Each stage is a Step that reads
// and fills the shared model.AnalysisResult.
//
// Design decision: optional checks never abort the run. Their failures end
// up in the result as "unavailable" or "error" verdicts so the user always
// gets the heuristic score.
//
// BatchProcessor fans analyses out over errgroup with a concurrency limit
// and returns results in input order.
package pipeline
