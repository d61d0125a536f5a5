package assessment

import (
	"time"

	"github.com/google/uuid"
)

// Instrument identifiers.
const (
	DASS21 = "DASS-21"
	GAD7   = "GAD-7"
	PHQ9   = "PHQ-9"
	PCL5   = "PCL-5"
)

// UnknownSeverity is reported when no band of a severity table covers a score.
const UnknownSeverity = "Unknown"

// ScoreFunc converts a response vector into a scored result.
type ScoreFunc func(responses []int) (*ScoreResult, error)

// Instrument is one standardized questionnaire. Instruments are built once at
// start-up and are never mutated afterwards.
type Instrument struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Questions   []string      `json:"questions"`
	Options     []string      `json:"options"`
	Description string        `json:"description"`
	MinResponse int           `json:"min_response"`
	MaxResponse int           `json:"max_response"`
	Subscales   []Subscale    `json:"-"`
	Severity    SeverityTable `json:"-"`

	scorer ScoreFunc
}

// InstrumentMetadata is the renderable view of an instrument.
type InstrumentMetadata struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Questions   []string `json:"questions"`
	Options     []string `json:"options"`
	Description string   `json:"description"`
}

// Metadata returns the instrument without its scoring logic.
func (i *Instrument) Metadata() InstrumentMetadata {
	return InstrumentMetadata{
		ID:          i.ID,
		Name:        i.Name,
		Questions:   append([]string(nil), i.Questions...),
		Options:     append([]string(nil), i.Options...),
		Description: i.Description,
	}
}

// Score runs the instrument's scorer.
func (i *Instrument) Score(responses []int) (*ScoreResult, error) {
	return i.scorer(responses)
}

// MaxTotal is the highest raw total the instrument can produce.
func (i *Instrument) MaxTotal() int {
	return len(i.Questions) * i.MaxResponse
}

// Subscale is a named partial score over a fixed set of item indices.
// Multiplier scales the raw subtotal before banding; a nil Severity means the
// subscale is reported as a plain subtotal.
type Subscale struct {
	Key        string
	Name       string
	Items      []int
	Multiplier int
	Severity   SeverityTable
}

// SeverityBand is an inclusive score range mapped to a label.
type SeverityBand struct {
	Label string `json:"label"`
	Lower int    `json:"lower"`
	Upper int    `json:"upper"`
}

// SeverityTable is an ordered set of bands. The first matching band wins.
type SeverityTable []SeverityBand

// Lookup returns the label of the first band containing score, or
// UnknownSeverity.
func (t SeverityTable) Lookup(score int) string {
	for _, b := range t {
		if b.Lower <= score && score <= b.Upper {
			return b.Label
		}
	}
	return UnknownSeverity
}

// Rank returns the position of label in the table, or -1.
func (t SeverityTable) Rank(label string) int {
	for i, b := range t {
		if b.Label == label {
			return i
		}
	}
	return -1
}

// SubscaleScore is a banded subscale result.
type SubscaleScore struct {
	Score    int    `json:"score"`
	Severity string `json:"severity"`
}

// ScoreResult is the structured output of a scorer.
type ScoreResult struct {
	AssessmentID string         `json:"assessment_id"`
	TotalScore   int            `json:"total_score"`
	Severity     string         `json:"severity"`
	Depression   *SubscaleScore `json:"depression,omitempty"`
	Anxiety      *SubscaleScore `json:"anxiety,omitempty"`
	Stress       *SubscaleScore `json:"stress,omitempty"`
	SuicideRisk  *bool          `json:"suicide_risk,omitempty"`
	Subscales    map[string]int `json:"subscales,omitempty"`
}

// AssessmentResult maps to the assessment_result table.
type AssessmentResult struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	PatientID    uuid.UUID    `db:"patient_id" json:"patient_id"`
	SessionID    *string      `db:"session_id" json:"session_id,omitempty"`
	AssessmentID string       `db:"assessment_id" json:"assessment_id"`
	Responses    []int        `db:"responses" json:"responses"`
	Result       *ScoreResult `db:"result" json:"result"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}
