package assessment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ScoredRoutingKey is the routing key of ScoredEvent messages.
const ScoredRoutingKey = "assessment.scored"

// EventPublisher delivers domain events to downstream consumers such as the
// diagnosis-report generator.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// ScoredEvent announces a persisted assessment result.
type ScoredEvent struct {
	ResultID     uuid.UUID `json:"result_id"`
	PatientID    uuid.UUID `json:"patient_id"`
	SessionID    *string   `json:"session_id,omitempty"`
	AssessmentID string    `json:"assessment_id"`
	TotalScore   int       `json:"total_score"`
	Severity     string    `json:"severity"`
	SuicideRisk  bool      `json:"suicide_risk"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Submission is a patient's completed questionnaire.
type Submission struct {
	PatientID    uuid.UUID `json:"patient_id"`
	SessionID    *string   `json:"session_id,omitempty"`
	AssessmentID string    `json:"assessment_id"`
	Responses    []int     `json:"responses"`
}

// Service scores submissions and manages stored assessment results.
type Service struct {
	registry *Registry
	results  ResultRepository
	events   EventPublisher
	logger   zerolog.Logger
}

// NewService creates a Service. A nil events publisher disables scored events.
func NewService(registry *Registry, results ResultRepository, events EventPublisher, logger zerolog.Logger) *Service {
	return &Service{
		registry: registry,
		results:  results,
		events:   events,
		logger:   logger,
	}
}

// -- Catalog --

func (s *Service) ListInstruments() []InstrumentMetadata {
	return s.registry.List()
}

func (s *Service) GetInstrument(id string) (InstrumentMetadata, error) {
	inst, err := s.registry.Get(id)
	if err != nil {
		return InstrumentMetadata{}, err
	}
	return inst.Metadata(), nil
}

func (s *Service) Question(id string, index int) (RenderedQuestion, error) {
	inst, err := s.registry.Get(id)
	if err != nil {
		return RenderedQuestion{}, err
	}
	return RenderQuestion(inst, index), nil
}

func (s *Service) SuggestInstruments(diagnoses []string) []string {
	return SuggestInstruments(diagnoses)
}

// -- Scoring --

// Score computes a result without storing it.
func (s *Service) Score(id string, responses []int) (*ScoreResult, error) {
	return s.registry.Score(id, responses)
}

// Submit scores a submission, stores the result and announces it.
func (s *Service) Submit(ctx context.Context, sub *Submission) (*AssessmentResult, error) {
	if sub.PatientID == uuid.Nil {
		return nil, fmt.Errorf("%w: patient_id is required", ErrInvalidSubmission)
	}
	if sub.AssessmentID == "" {
		return nil, fmt.Errorf("%w: assessment_id is required", ErrInvalidSubmission)
	}

	res, err := s.registry.Score(sub.AssessmentID, sub.Responses)
	if err != nil {
		return nil, err
	}

	stored := &AssessmentResult{
		PatientID:    sub.PatientID,
		SessionID:    sub.SessionID,
		AssessmentID: sub.AssessmentID,
		Responses:    append([]int(nil), sub.Responses...),
		Result:       res,
	}
	if err := s.results.Create(ctx, stored); err != nil {
		return nil, fmt.Errorf("store assessment result: %w", err)
	}

	evt := s.logger.Info()
	if res.SuicideRisk != nil && *res.SuicideRisk {
		evt = s.logger.Warn().Bool("suicide_risk", true)
	}
	evt.
		Str("result_id", stored.ID.String()).
		Str("assessment_id", res.AssessmentID).
		Int("total_score", res.TotalScore).
		Str("severity", res.Severity).
		Msg("assessment scored")

	s.publishScored(ctx, stored)
	return stored, nil
}

func (s *Service) publishScored(ctx context.Context, r *AssessmentResult) {
	if s.events == nil {
		return
	}
	event := ScoredEvent{
		ResultID:     r.ID,
		PatientID:    r.PatientID,
		SessionID:    r.SessionID,
		AssessmentID: r.AssessmentID,
		TotalScore:   r.Result.TotalScore,
		Severity:     r.Result.Severity,
		SuicideRisk:  r.Result.SuicideRisk != nil && *r.Result.SuicideRisk,
		OccurredAt:   time.Now().UTC(),
	}
	// The result is already stored; delivery failures are reported, not returned.
	if err := s.events.Publish(ctx, ScoredRoutingKey, event); err != nil {
		s.logger.Error().Err(err).
			Str("result_id", r.ID.String()).
			Msg("failed to publish assessment.scored")
	}
}

// -- Stored results --

func (s *Service) GetResult(ctx context.Context, id uuid.UUID) (*AssessmentResult, error) {
	return s.results.GetByID(ctx, id)
}

func (s *Service) ListResultsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*AssessmentResult, int, error) {
	return s.results.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) SearchResults(ctx context.Context, params map[string]string, limit, offset int) ([]*AssessmentResult, int, error) {
	return s.results.Search(ctx, params, limit, offset)
}
