package classify

import "github.com/kailas-cloud/dinewise/internal/domain/intent"

// Confidence thresholds for the combination ladder.
const (
	labelShortCircuit = 0.8
	oracleTrusted     = 0.7
	oracleAccept      = 0.5
	heuristicFloor    = 0.5
	heuristicBoost    = 0.7
	similarityAccept  = 0.6
)

// signals carries the cascade provider results through the rule table.
// The similarity signal is expensive (an extra index round-trip) so it is
// produced lazily and memoized; rules that never reach it never pay for it.
type signals struct {
	label     intent.Result
	oracle    intent.Result
	heuristic intent.Result

	simFn func() intent.Result
	sim   *intent.Result
}

func (s *signals) similarity() intent.Result {
	if s.sim == nil {
		r := s.simFn()
		s.sim = &r
	}
	return *s.sim
}

func (s *signals) heuristicSpecific() bool {
	return s.heuristic.Intent != intent.General && s.heuristic.Confidence >= heuristicFloor
}

// combineRule is one precedence step: pick returns the chosen result and
// true when the rule fires.
type combineRule struct {
	name string
	pick func(s *signals) (intent.Result, bool)
}

// combineRules is the precedence ladder, evaluated top to bottom. The two
// heuristic-override rules protect against a lazy oracle: a specific
// keyword match beats an oracle "general" verdict and beats a
// low-confidence oracle verdict, in both cases raised to at least
// heuristicBoost so a later stage does not flip it back.
var combineRules = []combineRule{
	{"label short-circuit", func(s *signals) (intent.Result, bool) {
		return s.label, s.label.Confidence >= labelShortCircuit
	}},
	{"heuristic over oracle general", func(s *signals) (intent.Result, bool) {
		return boosted(s.heuristic), s.oracle.Intent == intent.General && s.heuristicSpecific()
	}},
	{"heuristic over weak oracle", func(s *signals) (intent.Result, bool) {
		return boosted(s.heuristic), s.oracle.Confidence < oracleTrusted && s.heuristicSpecific()
	}},
	{"accepted oracle", func(s *signals) (intent.Result, bool) {
		return s.oracle, s.oracle.Confidence >= oracleAccept
	}},
	{"accepted heuristic", func(s *signals) (intent.Result, bool) {
		return s.heuristic, s.heuristic.Confidence >= heuristicFloor
	}},
	{"accepted similarity", func(s *signals) (intent.Result, bool) {
		return s.similarity(), s.similarity().Confidence >= similarityAccept
	}},
	{"weak label", func(s *signals) (intent.Result, bool) {
		return s.label, s.label.Confidence > 0
	}},
	{"weak oracle", func(s *signals) (intent.Result, bool) {
		return s.oracle, s.oracle.Confidence > 0
	}},
	{"weak similarity", func(s *signals) (intent.Result, bool) {
		return s.similarity(), s.similarity().Confidence > 0
	}},
}

// combine merges the cascade signals by walking the rule table in order.
// It always terminates with a result: when no rule fires the heuristic
// default (general at low confidence) is the answer.
func combine(label, oracle, heuristic intent.Result, similarity func() intent.Result) intent.Result {
	s := &signals{label: label, oracle: oracle, heuristic: heuristic, simFn: similarity}
	for _, rule := range combineRules {
		if res, ok := rule.pick(s); ok {
			return res
		}
	}
	return s.heuristic
}

func boosted(r intent.Result) intent.Result {
	if r.Confidence < heuristicBoost {
		r.Confidence = heuristicBoost
	}
	return r
}
