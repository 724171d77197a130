// Package diet generates personalised meal plans from a patient's age,
// gender, allergies and chronic conditions.
package diet

import (
	"math"
	"strings"

	"github.com/vitavoice/platform/internal/i18n"
)

// Profile is what plan generation needs to know about a patient.
type Profile struct {
	Age        int      `json:"age"`
	Gender     string   `json:"gender,omitempty"` // male, female, other
	Allergies  []string `json:"allergies,omitempty"`
	Conditions []string `json:"chronic_conditions,omitempty"`
}

// Goals are daily nutrition targets. Macronutrients are in grams.
type Goals struct {
	DailyCalories int `json:"daily_calories"`
	Protein       int `json:"protein"`
	Carbs         int `json:"carbs"`
	Fats          int `json:"fats"`
	Fiber         int `json:"fiber"`
}

type condition int

const (
	conditionDiabetes condition = iota
	conditionHypertension
	conditionHeart
	conditionKidney
)

// conditions reports which known conditions p mentions, matched by
// substring on the folded condition names.
func (p Profile) conditions() map[condition]bool {
	has := make(map[condition]bool)
	for _, c := range p.Conditions {
		c = i18n.Fold(c)
		if strings.Contains(c, "diabetes") {
			has[conditionDiabetes] = true
		}
		if strings.Contains(c, "hypertension") || strings.Contains(c, "blood pressure") {
			has[conditionHypertension] = true
		}
		if strings.Contains(c, "heart") || strings.Contains(c, "cardiac") {
			has[conditionHeart] = true
		}
		if strings.Contains(c, "kidney") {
			has[conditionKidney] = true
		}
	}
	return has
}

// Restrictions lists ingredients to avoid: the allergies as given, then the
// foods each chronic condition rules out.
func Restrictions(p Profile) []string {
	out := []string{}
	for _, a := range p.Allergies {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}

	has := p.conditions()
	if has[conditionDiabetes] {
		out = append(out, "high sugar", "refined carbs", "white rice")
	}
	if has[conditionHypertension] {
		out = append(out, "high salt", "pickles", "processed foods")
	}
	if has[conditionHeart] {
		out = append(out, "saturated fats", "fried foods", "red meat")
	}
	if has[conditionKidney] {
		out = append(out, "high protein", "high potassium")
	}
	return out
}

// CalculateGoals derives daily targets. Calories start at 2000 (2200 male,
// 1800 female), drop 200 over 60, rise 200 under 30 and drop 100 more with
// heart disease. Protein and carbs take 15% and 55% at 4 kcal/g, fats 30% at
// 9 kcal/g.
func CalculateGoals(p Profile) Goals {
	calories := 2000
	switch strings.ToLower(p.Gender) {
	case "male":
		calories = 2200
	case "female":
		calories = 1800
	}

	switch {
	case p.Age > 60:
		calories -= 200
	case p.Age < 30:
		calories += 200
	}

	if p.conditions()[conditionHeart] {
		calories -= 100
	}

	return Goals{
		DailyCalories: calories,
		Protein:       grams(calories, 0.15, 4),
		Carbs:         grams(calories, 0.55, 4),
		Fats:          grams(calories, 0.30, 9),
		Fiber:         30,
	}
}

func grams(calories int, share, kcalPerGram float64) int {
	return int(math.Round(float64(calories) * share / kcalPerGram))
}

// Recommendations returns general advice followed by advice for each known
// condition.
func Recommendations(p Profile) []string {
	out := []string{
		"Drink at least 8 glasses of water daily",
		"Eat meals at regular times",
		"Include seasonal fruits and vegetables",
	}

	has := p.conditions()
	if has[conditionDiabetes] {
		out = append(out,
			"Monitor blood sugar before and after meals",
			"Avoid skipping meals",
			"Choose whole grains over refined grains",
		)
	}
	if has[conditionHypertension] {
		out = append(out,
			"Limit salt intake to less than 5g per day",
			"Avoid processed and packaged foods",
		)
	}
	if has[conditionHeart] {
		out = append(out,
			"Include omega-3 rich foods (walnuts, flaxseeds)",
			"Limit saturated fats",
			"Exercise for 30 minutes daily",
		)
	}
	if has[conditionKidney] {
		out = append(out, "Ask your doctor how much protein and potassium you may eat")
	}
	return out
}
