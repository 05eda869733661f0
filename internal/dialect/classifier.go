package dialect

import "stepcheck/internal/source"

// Classification is the result of scoring evidence for a file.
type Classification struct {
	Kind            Kind
	Score           int
	TotalScore      int
	Confidence      float64
	RunnerUp        Kind
	RunnerUpScore   int
	ObservedSignals int
}

// Classifier scores evidence and chooses a dominant encoding.
type Classifier struct{}

func (Classifier) Classify(e *Evidence) Classification {
	if e == nil || len(e.hints) == 0 {
		return Classification{Kind: Unknown}
	}

	var scores [kindCount]int
	total := 0
	observed := 0
	for _, h := range e.hints {
		observed++
		if h.Score <= 0 {
			continue
		}
		if h.Kind <= Unknown || h.Kind >= kindCount {
			continue
		}
		scores[h.Kind] += h.Score
		total += h.Score
	}

	bestKind := Unknown
	bestScore := 0
	runnerKind := Unknown
	runnerScore := 0
	for k := XML; k < kindCount; k++ {
		score := scores[k]
		if score > bestScore {
			runnerKind, runnerScore = bestKind, bestScore
			bestKind, bestScore = k, score
			continue
		}
		if score > runnerScore {
			runnerKind, runnerScore = k, score
		}
	}

	conf := 0.0
	if total > 0 {
		conf = float64(bestScore) / float64(total)
	}

	return Classification{
		Kind:            bestKind,
		Score:           bestScore,
		TotalScore:      total,
		Confidence:      conf,
		RunnerUp:        runnerKind,
		RunnerUpScore:   runnerScore,
		ObservedSignals: observed,
	}
}

// minScore и minConfidence отсекают случайные совпадения вроде
// одиночного '{' в начале файла.
const (
	minScore      = 5
	minConfidence = 0.6
)

// Eligible reports whether the classification is strong enough to
// mention in a report.
func (c Classification) Eligible() bool {
	return c.Kind != Unknown && c.Score >= minScore && c.Confidence >= minConfidence
}

// Detect collects all evidence for f and classifies it.
func Detect(f *source.File) Classification {
	e := NewEvidence()
	ObservePrefix(e, f)
	ObserveMarkers(e, f)
	return (Classifier{}).Classify(e)
}
