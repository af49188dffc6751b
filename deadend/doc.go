// Package deadend classifies step results as dead ends.
//
// A [Detector] evaluates five independent heuristics against a result and
// the caller's history of prior results:
//
//   - [ReasonRepeatedFailures]: the result already occurs at least
//     RepetitionThreshold times in history
//   - [ReasonCircularReasoning]: the result matches one of the last five
//     history entries (history of at least three)
//   - [ReasonLowConfidence]: the result's confidence is below
//     ConfidenceThreshold
//   - [ReasonStalledProgress]: the last StallThreshold entries contain at
//     most two distinct values
//   - [ReasonConstraintViolation]: the result reports constraint_violated
//
// A CustomPredicate short-circuits all heuristics when it fires.
//
//	detector := deadend.New(deadend.DefaultOptions())
//	res := detector.DetectWithReasons(result, history)
//	if res.IsDeadEnd {
//	    // explore an alternative
//	}
//
// Detection is a pure function of its inputs. Equality is structural
// (see backtrack.Hash).
package deadend
