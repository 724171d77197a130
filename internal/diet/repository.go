package diet

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/metrics"
	"github.com/vitavoice/platform/internal/shared/types"
)

// Repository stores diet plans as JSONB documents.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new diet plan repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create stores a plan
func (r *Repository) Create(ctx context.Context, p *Plan) error {
	defer observe("diet_plan_create", time.Now())

	doc, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "failed to encode diet plan")
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO diet_plans (id, patient_id, duration, plan, generated_at) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.PatientID, p.Duration, doc, p.GeneratedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create diet plan")
	}
	return nil
}

// FindByID retrieves one of a patient's plans.
func (r *Repository) FindByID(ctx context.Context, patientID, planID types.ID) (*Plan, error) {
	defer observe("diet_plan_find", time.Now())

	var doc []byte
	err := r.pool.QueryRow(ctx,
		`SELECT plan FROM diet_plans WHERE id = $1 AND patient_id = $2`,
		planID, patientID,
	).Scan(&doc)
	if err == pgx.ErrNoRows {
		return nil, errors.NotFound("diet plan", planID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get diet plan")
	}
	return decodePlan(doc)
}

// ListByPatient lists a patient's plans, newest first.
func (r *Repository) ListByPatient(ctx context.Context, patientID types.ID) ([]Plan, error) {
	defer observe("diet_plan_list", time.Now())

	rows, err := r.pool.Query(ctx,
		`SELECT plan FROM diet_plans WHERE patient_id = $1 ORDER BY generated_at DESC`,
		patientID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list diet plans")
	}
	defer rows.Close()

	plans := []Plan{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to scan diet plan")
		}
		p, err := decodePlan(doc)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list diet plans")
	}
	return plans, nil
}

func decodePlan(doc []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, errors.Wrap(err, "failed to decode diet plan")
	}
	return &p, nil
}

func observe(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}
