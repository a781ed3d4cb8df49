package assessment

// Score bounds for a single answered option.
const (
	MinOptionScore = 1
	MaxOptionScore = 3
)

// Response is one answered question. Collected in presentation order and
// handed to the engine as a value; the engine never modifies it.
type Response struct {
	QuestionID         int    `json:"questionId"`
	QuestionText       string `json:"questionText"`
	SelectedOptionID   string `json:"selectedOptionId"`
	SelectedOptionText string `json:"selectedOptionText"`
	Score              int    `json:"score"`
}

// DimensionScore is one independently scored facet of a report.
type DimensionScore struct {
	Name        string `json:"name"`
	Score       int    `json:"score"` // 0-100
	Description string `json:"description"`
}

// Result is the assessment report. The same shape is used on the wire
// for remote analysis.
type Result struct {
	Summary         string           `json:"summary"`
	Dimensions      []DimensionScore `json:"dimensions"`
	Strengths       []string         `json:"strengths"`
	Weaknesses      []string         `json:"weaknesses"`
	Recommendations []string         `json:"recommendations"`
}

// Complete reports whether every list-valued field is non-empty.
func (r Result) Complete() bool {
	return len(r.Dimensions) > 0 &&
		len(r.Strengths) > 0 &&
		len(r.Weaknesses) > 0 &&
		len(r.Recommendations) > 0
}

// Band is the coarse level derived from the normalized response ratio.
type Band string

const (
	BandHigh Band = "high"
	BandMid  Band = "mid"
	BandLow  Band = "low"
)

// Bands lists every band, highest first.
var Bands = []Band{BandHigh, BandMid, BandLow}

// Valid reports whether b is a known band.
func (b Band) Valid() bool {
	switch b {
	case BandHigh, BandMid, BandLow:
		return true
	}
	return false
}
