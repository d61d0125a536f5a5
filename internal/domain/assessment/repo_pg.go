package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrResultNotFound is returned when no stored result matches the id.
var ErrResultNotFound = errors.New("assessment result not found")

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type resultRepoPG struct{ conn queryable }

// NewResultRepoPG returns a ResultRepository backed by the assessment_result table.
func NewResultRepoPG(pool *pgxpool.Pool) ResultRepository {
	return &resultRepoPG{conn: pool}
}

const resultCols = `id, patient_id, session_id, assessment_id, responses, result, created_at`

func (r *resultRepoPG) scanResult(row pgx.Row) (*AssessmentResult, error) {
	var (
		a         AssessmentResult
		responses []byte
		result    []byte
	)
	if err := row.Scan(&a.ID, &a.PatientID, &a.SessionID, &a.AssessmentID, &responses, &result, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(responses, &a.Responses); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	if err := json.Unmarshal(result, &a.Result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &a, nil
}

func (r *resultRepoPG) Create(ctx context.Context, a *AssessmentResult) error {
	responses, err := json.Marshal(a.Responses)
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}
	result, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	a.ID = uuid.New()
	return r.conn.QueryRow(ctx, `
		INSERT INTO assessment_result (id, patient_id, session_id, assessment_id, responses, result)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		a.ID, a.PatientID, a.SessionID, a.AssessmentID, responses, result).Scan(&a.CreatedAt)
}

func (r *resultRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*AssessmentResult, error) {
	return r.scanResult(r.conn.QueryRow(ctx, `SELECT `+resultCols+` FROM assessment_result WHERE id = $1`, id))
}

func (r *resultRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*AssessmentResult, int, error) {
	return r.Search(ctx, map[string]string{"patient": patientID.String()}, limit, offset)
}

func (r *resultRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*AssessmentResult, int, error) {
	query := `SELECT ` + resultCols + ` FROM assessment_result WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM assessment_result WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["patient"]; ok {
		pid, err := uuid.Parse(p)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid patient id %q: %w", p, err)
		}
		query += fmt.Sprintf(` AND patient_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, pid)
		idx++
	}
	if p, ok := params["assessment"]; ok {
		query += fmt.Sprintf(` AND assessment_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND assessment_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["session"]; ok {
		query += fmt.Sprintf(` AND session_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND session_id = $%d`, idx)
		args = append(args, p)
		idx++
	}

	var total int
	if err := r.conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*AssessmentResult
	for rows.Next() {
		a, err := r.scanResult(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
