package diagnosis

import (
	"cmp"
	"fmt"
	"slices"
)

// Scoring constants.
const (
	Threshold       = 0.3 // exclusive lower bound for inclusion
	MaxHypotheses   = 3
	HistoryBonus    = 0.2
	ConflictPenalty = 0.7
	ConflictLimit   = 2 // more non-trigger indicators than this apply the penalty

	frequencyStep = 0.1
	frequencyCap  = 1.5

	recurringAt     = 2
	persistentAfter = 3
)

// Detect classifies a wrong choice against the taxonomy. It returns at most
// MaxHypotheses entries with confidence above Threshold, highest first.
// An empty result is a classification miss.
func Detect(correct, chosen string, ctx Context, hist History) []Hypothesis {
	set := extract(correct, chosen, ctx, hist)

	var hyps []Hypothesis
	for _, e := range All() {
		conf := confidence(e, set, hist)
		if conf <= Threshold {
			continue
		}
		prior := hist.Errors[string(e.Type)]
		hyps = append(hyps, Hypothesis{
			Type:       e.Type,
			Confidence: conf,
			Evidence:   evidence(e, set),
			Frequency:  prior,
			Severity:   severity(e, conf, prior),
		})
	}

	slices.SortStableFunc(hyps, func(a, b Hypothesis) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	if len(hyps) > MaxHypotheses {
		hyps = hyps[:MaxHypotheses]
	}
	return hyps
}

// confidence is the fraction of the entry's triggers present, plus a bonus
// when any trigger is also a key of the error history, damped when too much
// other evidence points elsewhere.
func confidence(e *Entry, set indicatorSet, hist History) float64 {
	if len(e.Triggers) == 0 {
		return 0
	}
	fired := 0
	for _, t := range e.Triggers {
		if set.has(t) {
			fired++
		}
	}
	conf := float64(fired) / float64(len(e.Triggers))

	if slices.ContainsFunc(e.Triggers, func(t Indicator) bool { return hist.Errors[string(t)] > 0 }) {
		conf += HistoryBonus
	}

	conflicting := 0
	for ind := range set {
		if !e.triggers(ind) {
			conflicting++
		}
	}
	if conflicting > ConflictLimit {
		conf *= ConflictPenalty
	}
	return clamp(conf)
}

func severity(e *Entry, conf float64, prior int) float64 {
	mult := min(frequencyCap, 1+frequencyStep*float64(prior))
	return clamp(e.BaseSeverity * conf * mult)
}

// evidence lists each fired trigger followed by the matching symptom text.
func evidence(e *Entry, set indicatorSet) []string {
	var out []string
	for _, t := range e.Triggers {
		if set.has(t) {
			out = append(out, fmt.Sprintf("detected: %s", t))
		}
	}
	for i, t := range e.Triggers {
		if set.has(t) && i < len(e.Symptoms) {
			out = append(out, e.Symptoms[i])
		}
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
