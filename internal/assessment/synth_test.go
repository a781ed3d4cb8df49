package assessment

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func uniformResponses(n, score int) []Response {
	out := make([]Response, n)
	for i := range out {
		out[i] = Response{
			QuestionID:         200 + i,
			QuestionText:       "q",
			SelectedOptionID:   "a",
			SelectedOptionText: "option",
			Score:              score,
		}
	}
	return out
}

func TestRatioAndBand(t *testing.T) {
	tests := []struct {
		name      string
		responses []Response
		wantRatio float64
		wantBand  Band
	}{
		{"empty is neutral", nil, 0.5, BandMid},
		{"all max", uniformResponses(5, 3), 1.0, BandHigh},
		{"all min", uniformResponses(4, 1), 1.0 / 3.0, BandLow},
		{"all middle", uniformResponses(3, 2), 2.0 / 3.0, BandMid},
		{"mixed", []Response{{Score: 3}, {Score: 3}, {Score: 3}, {Score: 2}}, 11.0 / 12.0, BandHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio := Ratio(tt.responses)
			assert.InDelta(t, tt.wantRatio, ratio, 1e-9)
			assert.Equal(t, tt.wantBand, BandFor(ratio))
		})
	}
}

func TestBandFor_Boundaries(t *testing.T) {
	assert.Equal(t, BandMid, BandFor(0.75))
	assert.Equal(t, BandHigh, BandFor(0.7501))
	assert.Equal(t, BandMid, BandFor(0.5))
	assert.Equal(t, BandLow, BandFor(0.4999))
	assert.Equal(t, 88, BaseScore(BandHigh))
	assert.Equal(t, 75, BaseScore(BandMid))
	assert.Equal(t, 60, BaseScore(BandLow))
}

func TestSynthesize_BigFiveAllMax(t *testing.T) {
	s := NewSynthesizer(nil, WithRand(seeded(1)))
	topic := "大五人格特质"

	for range 200 {
		res := s.Synthesize(topic, uniformResponses(5, 3))

		require.Len(t, res.Dimensions, 5)
		for i, d := range res.Dimensions {
			assert.Equal(t, DefaultCatalog().Resolve(topic).Dimensions[i], d.Name)
			assert.GreaterOrEqual(t, d.Score, 81)
			assert.LessOrEqual(t, d.Score, 95)
			assert.NotEmpty(t, d.Description)
		}
		assert.Contains(t, res.Summary, topic)
	}
}

func TestSynthesize_StressEmptyResponses(t *testing.T) {
	s := NewSynthesizer(nil, WithRand(seeded(2)))
	topic := "压力评估"

	for range 200 {
		res := s.Synthesize(topic, []Response{})

		require.Len(t, res.Dimensions, 5)
		assert.Equal(t, "焦虑指数", res.Dimensions[0].Name)
		for _, d := range res.Dimensions {
			assert.GreaterOrEqual(t, d.Score, 68)
			assert.LessOrEqual(t, d.Score, 82)
		}
		assert.Len(t, res.Strengths, 3)
		assert.Len(t, res.Weaknesses, 2)
		assert.Len(t, res.Recommendations, 3)
		assert.Contains(t, res.Summary, topic)
	}
}

func TestSynthesize_BoundsAndCardinality(t *testing.T) {
	rng := seeded(3)
	s := NewSynthesizer(nil, WithRand(seeded(4)))
	topics := []string{"职业性格倾向 (MBTI-Lite)", "大五人格特质", "综合压力水平", "情商 (EQ) 评估", "随便什么"}

	for range 500 {
		topic := topics[rng.IntN(len(topics))]
		responses := make([]Response, 1+rng.IntN(10))
		for i := range responses {
			responses[i].Score = MinOptionScore + rng.IntN(MaxOptionScore-MinOptionScore+1)
		}

		res := s.Synthesize(topic, responses)

		want := len(s.Catalog().Resolve(topic).Dimensions)
		require.Len(t, res.Dimensions, want)
		for _, d := range res.Dimensions {
			assert.GreaterOrEqual(t, d.Score, MinScore)
			assert.LessOrEqual(t, d.Score, MaxScore)
		}
		assert.True(t, res.Complete())
		assertDistinct(t, res.Strengths)
		assertDistinct(t, res.Weaknesses)
		assertDistinct(t, res.Recommendations)
	}
}

func TestSynthesize_VariesBetweenCalls(t *testing.T) {
	s := NewSynthesizer(nil, WithRand(seeded(5)))
	responses := uniformResponses(5, 2)

	seen := make(map[string]bool)
	for range 20 {
		res := s.Synthesize("大五人格特质", responses)
		var key strings.Builder
		for _, d := range res.Dimensions {
			key.WriteString(d.Description)
			key.WriteByte(byte(d.Score))
		}
		key.WriteString(strings.Join(res.Strengths, ","))
		seen[key.String()] = true
	}
	assert.Greater(t, len(seen), 1, "identical input should not always render the same report")
}

func TestSynthesize_DoesNotMutateResponses(t *testing.T) {
	s := NewSynthesizer(nil)
	responses := uniformResponses(3, 2)
	before := append([]Response(nil), responses...)

	_ = s.Synthesize("压力", responses)

	assert.Equal(t, before, responses)
}

func TestSynthesize_SmallPoolsReturnWholePool(t *testing.T) {
	c, err := NewCatalog(CatalogFile{
		Default: TopicProfile{ID: "default", Dimensions: []string{"only"}},
		Summaries: map[Band][]string{
			BandHigh: {"high {{.Topic}}"},
			BandMid:  {"mid {{.Topic}}"},
			BandLow:  {"low {{.Topic}}"},
		},
		Descriptions:    []string{"fixed"},
		Strengths:       []string{"s1"},
		Weaknesses:      []string{"w1", "w2"},
		Recommendations: []string{"r1", "r1"},
		Picks:           Picks{Strengths: 3, Weaknesses: 2, Recommendations: 3},
	})
	require.NoError(t, err)

	res := NewSynthesizer(c).Synthesize("t", nil)

	assert.Equal(t, "mid t", res.Summary)
	assert.Equal(t, []DimensionScore{{Name: "only", Score: res.Dimensions[0].Score, Description: "fixed"}}, res.Dimensions)
	assert.Equal(t, []string{"s1"}, res.Strengths)
	assert.ElementsMatch(t, []string{"w1", "w2"}, res.Weaknesses)
	assert.Equal(t, []string{"r1"}, res.Recommendations, "duplicate pool entries are collapsed")
}

func TestSynthesize_ConcurrentUse(t *testing.T) {
	s := NewSynthesizer(nil, WithRand(seeded(6)))
	done := make(chan Result)
	for range 8 {
		go func() {
			done <- s.Synthesize("情商", uniformResponses(5, 1))
		}()
	}
	for range 8 {
		res := <-done
		assert.True(t, res.Complete())
	}
}

func assertDistinct(t *testing.T, items []string) {
	t.Helper()
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		_, dup := seen[it]
		assert.False(t, dup, "duplicate entry %q", it)
		seen[it] = struct{}{}
	}
}
