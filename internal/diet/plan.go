package diet

import (
	"fmt"
	"time"

	"github.com/vitavoice/platform/internal/shared/errors"
	"github.com/vitavoice/platform/internal/shared/types"
)

// Duration is how long a plan covers.
type Duration string

const (
	DurationOneWeek  Duration = "1_week"
	DurationTwoWeeks Duration = "2_weeks"
	DurationOneMonth Duration = "1_month"
)

// DefaultDuration applies when a request names none.
const DefaultDuration = DurationOneWeek

// Days returns the number of days d covers, or 0 for an unknown duration.
func (d Duration) Days() int {
	switch d {
	case DurationOneWeek:
		return 7
	case DurationTwoWeeks:
		return 14
	case DurationOneMonth:
		return 30
	}
	return 0
}

var weekdays = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DailyMeals is the menu for one day.
type DailyMeals struct {
	Day       string `json:"day"`
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
	Snacks    []Meal `json:"snacks"`
}

// Calories totals the day.
func (d DailyMeals) Calories() int {
	total := d.Breakfast.Calories + d.Lunch.Calories + d.Dinner.Calories
	for _, s := range d.Snacks {
		total += s.Calories
	}
	return total
}

// Plan is a generated diet plan.
type Plan struct {
	ID              types.ID     `json:"id"`
	PatientID       types.ID     `json:"patient_id"`
	GeneratedAt     time.Time    `json:"generated_at"`
	Duration        Duration     `json:"duration"`
	Meals           []DailyMeals `json:"meals"`
	Goals           Goals        `json:"nutrition_goals"`
	Restrictions    []string     `json:"restrictions"`
	Recommendations []string     `json:"recommendations"`
}

// Generate builds a plan for patientID. An empty duration means one week.
// Each meal rotates through the options left after removing restricted
// ingredients, so the same profile always yields the same menu.
func Generate(patientID types.ID, p Profile, d Duration, now time.Time) (*Plan, error) {
	if d == "" {
		d = DefaultDuration
	}
	days := d.Days()
	if days == 0 {
		return nil, errors.Validation("invalid diet plan", map[string]string{
			"duration": "must be 1_week, 2_weeks or 1_month",
		})
	}
	if p.Age < 0 || p.Age > 130 {
		return nil, errors.Validation("invalid diet plan", map[string]string{
			"age": "must be between 0 and 130",
		})
	}

	restrictions := Restrictions(p)
	b := allowed(breakfasts, restrictions)
	l := allowed(lunches, restrictions)
	dn := allowed(dinners, restrictions)
	s := allowed(snacks, restrictions)

	meals := make([]DailyMeals, days)
	for i := range meals {
		meals[i] = DailyMeals{
			Day:       fmt.Sprintf("Day %d (%s)", i+1, weekdays[i%len(weekdays)]),
			Breakfast: pick(b, i),
			Lunch:     pick(l, i),
			Dinner:    pick(dn, i),
			Snacks:    []Meal{pick(s, i)},
		}
	}

	return &Plan{
		ID:              types.NewID(),
		PatientID:       patientID,
		GeneratedAt:     now,
		Duration:        d,
		Meals:           meals,
		Goals:           CalculateGoals(p),
		Restrictions:    restrictions,
		Recommendations: Recommendations(p),
	}, nil
}
