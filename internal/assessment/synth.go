package assessment

import (
	"math/rand/v2"
	"sync"
)

// Scoring constants of the local engine.
const (
	NeutralRatio = 0.5

	HighThreshold = 0.75 // ratio above this is BandHigh
	MidThreshold  = 0.5  // ratio at or above this is BandMid

	Jitter   = 7
	MinScore = 40
	MaxScore = 99
)

var baseScores = map[Band]int{
	BandHigh: 88,
	BandMid:  75,
	BandLow:  60,
}

// Synthesizer produces reports locally from a Catalog. It needs no network
// and never fails. Safe for concurrent use.
type Synthesizer struct {
	catalog *Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithRand makes the Synthesizer draw from r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) { s.rng = r }
}

// NewSynthesizer creates a Synthesizer. A nil catalog selects DefaultCatalog.
func NewSynthesizer(catalog *Catalog, opts ...Option) *Synthesizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	s := &Synthesizer{catalog: catalog}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Catalog returns the catalog the Synthesizer draws from.
func (s *Synthesizer) Catalog() *Catalog {
	return s.catalog
}

// Ratio normalizes the summed response scores to [0, 1]. An empty slice
// yields NeutralRatio.
func Ratio(responses []Response) float64 {
	if len(responses) == 0 {
		return NeutralRatio
	}
	total := 0
	for _, r := range responses {
		total += r.Score
	}
	return float64(total) / float64(len(responses)*MaxOptionScore)
}

// BandFor maps a ratio to its band.
func BandFor(ratio float64) Band {
	switch {
	case ratio > HighThreshold:
		return BandHigh
	case ratio >= MidThreshold:
		return BandMid
	default:
		return BandLow
	}
}

// BaseScore returns the dimension base score for a band.
func BaseScore(b Band) int {
	return baseScores[b]
}

// Synthesize builds a complete report for topic from responses.
func (s *Synthesizer) Synthesize(topic string, responses []Response) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	rng := s.source()
	band := BandFor(Ratio(responses))
	base := BaseScore(band)
	c := s.catalog

	profile := c.Resolve(topic)
	dims := make([]DimensionScore, len(profile.Dimensions))
	for i, name := range profile.Dimensions {
		dims[i] = DimensionScore{
			Name:        name,
			Score:       clamp(base+rng.IntN(2*Jitter+1)-Jitter, MinScore, MaxScore),
			Description: c.descriptions[rng.IntN(len(c.descriptions))],
		}
	}

	return Result{
		Summary:         c.summary(band, rng.IntN(len(c.summaries[band])), topic),
		Dimensions:      dims,
		Strengths:       Sample(rng, c.strengths, c.picks.Strengths),
		Weaknesses:      Sample(rng, c.weaknesses, c.picks.Weaknesses),
		Recommendations: Sample(rng, c.recommendations, c.picks.Recommendations),
	}
}

func (s *Synthesizer) source() intner {
	if s.rng != nil {
		return s.rng
	}
	return globalSource{}
}

// globalSource adapts the goroutine-safe top-level math/rand/v2 functions.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
