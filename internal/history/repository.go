package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/metrics"
	"github.com/vitavoice/platform/internal/shared/types"
)

const entryColumns = `id, patient_id, entry_type, summary, COALESCE(diagnosis, ''),
	category, confidence, is_emergency, COALESCE(protocol, ''), COALESCE(language, ''),
	result, created_at`

// Repository provides database operations for diagnostic history
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new history repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create stores an entry. Entries are immutable; storing an existing ID is a
// no-op.
func (r *Repository) Create(ctx context.Context, e *Entry) error {
	defer observe("history_create", time.Now())

	query := `
		INSERT INTO diagnostic_history (
			id, patient_id, entry_type, summary, diagnosis,
			category, confidence, is_emergency, protocol, language,
			result, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12
		)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.PatientID, e.Type, e.Summary, nullable(e.Diagnosis),
		e.Category, e.Confidence, e.IsEmergency, nullable(e.Protocol), nullable(string(e.Language)),
		e.Result, e.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create history entry")
	}
	return nil
}

// FindByID retrieves an entry by ID
func (r *Repository) FindByID(ctx context.Context, id types.ID) (*Entry, error) {
	defer observe("history_find", time.Now())

	query := `SELECT ` + entryColumns + ` FROM diagnostic_history WHERE id = $1`

	e, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, errors.NotFound("history entry", id.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get history entry")
	}
	return e, nil
}

// ListByPatient lists a patient's entries, newest first.
func (r *Repository) ListByPatient(ctx context.Context, patientID types.ID, limit, offset int) ([]Entry, int, error) {
	return r.List(ctx, ListFilter{PatientID: &patientID, Limit: limit, Offset: offset})
}

// List lists entries matching filter, newest first, with the total count.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Entry, int, error) {
	defer observe("history_list", time.Now())

	whereClause, args := buildWhere(filter)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM diagnostic_history %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count history entries")
	}

	argNum := len(args) + 1
	query := fmt.Sprintf(`
		SELECT %s
		FROM diagnostic_history
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, entryColumns, whereClause, argNum, argNum+1)

	args = append(args, pageLimit(filter.Limit), max(filter.Offset, 0))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list history entries")
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "failed to scan history entry")
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "failed to list history entries")
	}

	return entries, total, nil
}

func buildWhere(filter ListFilter) (string, []any) {
	var conditions []string
	var args []any
	argNum := 1

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("patient_id = $%d", argNum))
		args = append(args, *filter.PatientID)
		argNum++
	}

	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("entry_type = $%d", argNum))
		args = append(args, *filter.Type)
		argNum++
	}

	if filter.EmergencyOnly {
		conditions = append(conditions, "is_emergency")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// pageLimit defaults to 50 and caps at 100.
func pageLimit(limit int) int {
	if limit > 0 && limit <= 100 {
		return limit
	}
	return 50
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	var language string
	err := row.Scan(
		&e.ID, &e.PatientID, &e.Type, &e.Summary, &e.Diagnosis,
		&e.Category, &e.Confidence, &e.IsEmergency, &e.Protocol, &language,
		&e.Result, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Language = i18n.Code(language)
	return &e, nil
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
