package vaccination

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/metrics"
	"github.com/vitavoice/platform/internal/shared/types"
)

const recordColumns = `id, patient_id, vaccine_id, vaccine_name, date_given, dose_number,
	COALESCE(batch_number, ''), COALESCE(location, ''), next_due_date, COALESCE(notes, ''),
	is_completed, created_at`

// Repository provides database operations for vaccination records
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new vaccination repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create stores a record
func (r *Repository) Create(ctx context.Context, rec *Record) error {
	defer observe("vaccination_create", time.Now())

	query := `
		INSERT INTO vaccination_records (
			id, patient_id, vaccine_id, vaccine_name, date_given, dose_number,
			batch_number, location, next_due_date, notes,
			is_completed, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12
		)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.PatientID, rec.VaccineID, rec.VaccineName, rec.DateGiven, rec.DoseNumber,
		nullable(rec.BatchNumber), nullable(rec.Location), rec.NextDueDate, nullable(rec.Notes),
		rec.IsCompleted, rec.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create vaccination record")
	}
	return nil
}

// ListByPatient lists a patient's records, most recently given first.
func (r *Repository) ListByPatient(ctx context.Context, patientID types.ID) ([]Record, error) {
	defer observe("vaccination_list", time.Now())

	query := `SELECT ` + recordColumns + `
		FROM vaccination_records
		WHERE patient_id = $1
		ORDER BY date_given DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vaccination records")
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan vaccination record")
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list vaccination records")
	}
	return records, nil
}

// Delete removes one of a patient's records.
func (r *Repository) Delete(ctx context.Context, patientID, recordID types.ID) error {
	defer observe("vaccination_delete", time.Now())

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM vaccination_records WHERE id = $1 AND patient_id = $2`,
		recordID, patientID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to delete vaccination record")
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("vaccination record", recordID.String())
	}
	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.PatientID, &rec.VaccineID, &rec.VaccineName, &rec.DateGiven, &rec.DoseNumber,
		&rec.BatchNumber, &rec.Location, &rec.NextDueDate, &rec.Notes,
		&rec.IsCompleted, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func observe(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}
