package assessment

import (
	"context"

	"github.com/google/uuid"
)

type ResultRepository interface {
	Create(ctx context.Context, r *AssessmentResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*AssessmentResult, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*AssessmentResult, int, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*AssessmentResult, int, error)
}
