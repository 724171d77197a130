// Package vaccination tracks immunizations against the national schedule:
// which vaccines a patient has received, which are due or overdue, and how
// complete their schedule is.
package vaccination

import (
	"strings"
	"time"

	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/types"
)

// Record is one administered vaccine dose.
type Record struct {
	ID          types.ID   `json:"id"`
	PatientID   types.ID   `json:"patient_id"`
	VaccineID   string     `json:"vaccine_id"`
	VaccineName string     `json:"vaccine_name"`
	DateGiven   time.Time  `json:"date_given"`
	DoseNumber  int        `json:"dose_number"`
	BatchNumber string     `json:"batch_number,omitempty"`
	Location    string     `json:"location,omitempty"`
	NextDueDate *time.Time `json:"next_due_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RecordInput is the body of a new record.
type RecordInput struct {
	VaccineID   string     `json:"vaccine_id"`
	DateGiven   time.Time  `json:"date_given"`
	DoseNumber  int        `json:"dose_number,omitempty"`
	BatchNumber string     `json:"batch_number,omitempty"`
	Location    string     `json:"location,omitempty"`
	NextDueDate *time.Time `json:"next_due_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	IsCompleted *bool      `json:"is_completed,omitempty"`
}

// NewRecord validates in and builds a record for patientID. The vaccine must
// be on the schedule and cannot be dated in the future. Dose defaults to 1
// and the record is complete unless stated otherwise.
func NewRecord(patientID types.ID, in RecordInput, now time.Time) (*Record, error) {
	details := make(map[string]string)

	vaccine, ok := Lookup(strings.TrimSpace(in.VaccineID))
	if !ok {
		details["vaccine_id"] = "is not on the schedule"
	}
	switch {
	case in.DateGiven.IsZero():
		details["date_given"] = "is required"
	case in.DateGiven.After(now):
		details["date_given"] = "cannot be in the future"
	}
	if in.DoseNumber < 0 {
		details["dose_number"] = "must be positive"
	}
	if in.NextDueDate != nil && !in.DateGiven.IsZero() && !in.NextDueDate.After(in.DateGiven) {
		details["next_due_date"] = "must be after date_given"
	}
	if len(details) > 0 {
		return nil, errors.Validation("invalid vaccination record", details)
	}

	r := &Record{
		ID:          types.NewID(),
		PatientID:   patientID,
		VaccineID:   vaccine.ID,
		VaccineName: vaccine.Name,
		DateGiven:   in.DateGiven.UTC(),
		DoseNumber:  max(in.DoseNumber, 1),
		BatchNumber: strings.TrimSpace(in.BatchNumber),
		Location:    strings.TrimSpace(in.Location),
		NextDueDate: in.NextDueDate,
		Notes:       strings.TrimSpace(in.Notes),
		IsCompleted: true,
		CreatedAt:   now,
	}
	if in.IsCompleted != nil {
		r.IsCompleted = *in.IsCompleted
	}
	return r, nil
}
