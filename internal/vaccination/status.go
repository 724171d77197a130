package vaccination

import (
	"math"
	"time"

	"github.com/vitavoice/platform/internal/shared/types"
)

const (
	// DueWindowMonths is how long after its scheduled age a vaccine counts
	// as due rather than overdue.
	DueWindowMonths = 2
	// UpcomingWindowMonths is how far ahead upcoming vaccines are listed.
	UpcomingWindowMonths = 3
)

// Profile is what the schedule needs to know about a patient.
type Profile struct {
	AgeMonths float64 `json:"age_months"`
	Pregnant  bool    `json:"pregnant,omitempty"`
}

// Statistics summarises a patient's progress through the schedule.
type Statistics struct {
	TotalGiven           int `json:"total_given"`
	DueNow               int `json:"due_now"`
	Overdue              int `json:"overdue"`
	Upcoming             int `json:"upcoming"`
	CompletionPercentage int `json:"completion_percentage"`
}

// Status lists what a patient should receive now, has missed, and will need
// soon.
type Status struct {
	Due        []Vaccine  `json:"due"`
	Overdue    []Vaccine  `json:"overdue"`
	Upcoming   []Vaccine  `json:"upcoming"`
	Statistics Statistics `json:"statistics"`
}

// Certificate is a printable summary of a patient's vaccinations.
type Certificate struct {
	PatientID            types.ID  `json:"patient_id"`
	Records              []Record  `json:"records"`
	CompletionPercentage int       `json:"completion_percentage"`
	GeneratedAt          time.Time `json:"generated_at"`
}

// Evaluate places every vaccine not yet given into the due, overdue or
// upcoming list. Age-keyed vaccines are due from their scheduled age for
// DueWindowMonths and overdue after that. Pregnancy vaccines are due only
// while the patient is pregnant and never become overdue.
func Evaluate(records []Record, p Profile) Status {
	given := givenIDs(records)
	status := Status{Due: []Vaccine{}, Overdue: []Vaccine{}, Upcoming: []Vaccine{}}

	for _, v := range schedule {
		if given[v.ID] {
			continue
		}
		if v.Category == CategoryPregnancy {
			if p.Pregnant {
				status.Due = append(status.Due, v)
			}
			continue
		}
		switch {
		case p.AgeMonths >= v.AgeMonths && p.AgeMonths <= v.AgeMonths+DueWindowMonths:
			status.Due = append(status.Due, v)
		case p.AgeMonths > v.AgeMonths+DueWindowMonths:
			status.Overdue = append(status.Overdue, v)
		case v.AgeMonths > p.AgeMonths && v.AgeMonths <= p.AgeMonths+UpcomingWindowMonths:
			status.Upcoming = append(status.Upcoming, v)
		}
	}

	status.Statistics = Statistics{
		TotalGiven:           len(records),
		DueNow:               len(status.Due),
		Overdue:              len(status.Overdue),
		Upcoming:             len(status.Upcoming),
		CompletionPercentage: Completion(records, p),
	}
	return status
}

// Completion is the rounded percentage of applicable vaccines already given.
// A vaccine is applicable once its scheduled age is reached; pregnancy
// vaccines only during pregnancy. Nothing applicable yields 0.
func Completion(records []Record, p Profile) int {
	given := givenIDs(records)
	var applicable, done int
	for _, v := range schedule {
		if v.Category == CategoryPregnancy && !p.Pregnant {
			continue
		}
		if v.Category != CategoryPregnancy && v.AgeMonths > p.AgeMonths {
			continue
		}
		applicable++
		if given[v.ID] {
			done++
		}
	}
	if applicable == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(applicable) * 100))
}

// NewCertificate builds a certificate from a patient's records.
func NewCertificate(patientID types.ID, records []Record, p Profile, now time.Time) Certificate {
	return Certificate{
		PatientID:            patientID,
		Records:              records,
		CompletionPercentage: Completion(records, p),
		GeneratedAt:          now,
	}
}

func givenIDs(records []Record) map[string]bool {
	given := make(map[string]bool, len(records))
	for _, r := range records {
		given[r.VaccineID] = true
	}
	return given
}
