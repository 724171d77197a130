package vaccination

import "slices"

// Category groups vaccines by who receives them.
type Category string

const (
	CategoryInfant    Category = "infant"
	CategoryChild     Category = "child"
	CategoryAdult     Category = "adult"
	CategoryPregnancy Category = "pregnancy"
)

func (c Category) valid() bool {
	switch c {
	case CategoryInfant, CategoryChild, CategoryAdult, CategoryPregnancy:
		return true
	}
	return false
}

// Vaccine is one entry of the immunization schedule. AgeMonths is the age at
// which it is given; pregnancy vaccines are not tied to an age.
type Vaccine struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	AgeMonths   float64  `json:"age_months"`
	Description string   `json:"description"`
	Doses       int      `json:"doses"`
	Category    Category `json:"category"`
}

// National Immunization Schedule, India.
var schedule = []Vaccine{
	// Birth
	{"bcg", "BCG", 0, "Tuberculosis vaccine", 1, CategoryInfant},
	{"opv_0", "OPV (Birth dose)", 0, "Polio vaccine", 1, CategoryInfant},
	{"hep_b_0", "Hepatitis B (Birth dose)", 0, "Hepatitis B vaccine", 1, CategoryInfant},

	// 6 weeks
	{"opv_1", "OPV 1", 1.5, "Polio vaccine - 1st dose", 1, CategoryInfant},
	{"pentavalent_1", "Pentavalent 1", 1.5, "DPT+HepB+Hib - 1st dose", 1, CategoryInfant},
	{"rotavirus_1", "Rotavirus 1", 1.5, "Rotavirus vaccine - 1st dose", 1, CategoryInfant},
	{"pcv_1", "PCV 1", 1.5, "Pneumococcal vaccine - 1st dose", 1, CategoryInfant},

	// 10 weeks
	{"opv_2", "OPV 2", 2.5, "Polio vaccine - 2nd dose", 1, CategoryInfant},
	{"pentavalent_2", "Pentavalent 2", 2.5, "DPT+HepB+Hib - 2nd dose", 1, CategoryInfant},
	{"rotavirus_2", "Rotavirus 2", 2.5, "Rotavirus vaccine - 2nd dose", 1, CategoryInfant},
	{"pcv_2", "PCV 2", 2.5, "Pneumococcal vaccine - 2nd dose", 1, CategoryInfant},

	// 14 weeks
	{"opv_3", "OPV 3", 3.5, "Polio vaccine - 3rd dose", 1, CategoryInfant},
	{"pentavalent_3", "Pentavalent 3", 3.5, "DPT+HepB+Hib - 3rd dose", 1, CategoryInfant},
	{"rotavirus_3", "Rotavirus 3", 3.5, "Rotavirus vaccine - 3rd dose", 1, CategoryInfant},
	{"pcv_3", "PCV 3", 3.5, "Pneumococcal vaccine - 3rd dose", 1, CategoryInfant},
	{"ipv_1", "IPV 1", 3.5, "Injectable Polio vaccine", 1, CategoryInfant},

	// 9 months
	{"measles_1", "Measles 1", 9, "Measles vaccine - 1st dose", 1, CategoryInfant},

	// 12 months
	{"pcv_booster", "PCV Booster", 12, "Pneumococcal booster", 1, CategoryChild},

	// 16-24 months
	{"dpt_booster_1", "DPT Booster 1", 18, "DPT booster - 1st", 1, CategoryChild},
	{"opv_booster", "OPV Booster", 18, "Polio booster", 1, CategoryChild},
	{"measles_2", "Measles 2 (MR)", 18, "Measles-Rubella - 2nd dose", 1, CategoryChild},

	// 5-6 years
	{"dpt_booster_2", "DPT Booster 2", 60, "DPT booster - 2nd", 1, CategoryChild},

	// 10 years
	{"tdap", "Tdap", 120, "Tetanus-Diphtheria-Pertussis", 1, CategoryChild},

	// Pregnancy
	{"td_1", "TD 1", 0, "Tetanus-Diphtheria - 1st dose (Pregnancy)", 1, CategoryPregnancy},
	{"td_2", "TD 2", 0, "Tetanus-Diphtheria - 2nd dose (Pregnancy)", 1, CategoryPregnancy},
}

// Schedule returns the vaccines in category, or the whole schedule when
// category is empty.
func Schedule(category Category) []Vaccine {
	if category == "" {
		return slices.Clone(schedule)
	}
	out := []Vaccine{}
	for _, v := range schedule {
		if v.Category == category {
			out = append(out, v)
		}
	}
	return out
}

// Lookup finds a vaccine by ID.
func Lookup(id string) (Vaccine, bool) {
	i := slices.IndexFunc(schedule, func(v Vaccine) bool { return v.ID == id })
	if i < 0 {
		return Vaccine{}, false
	}
	return schedule[i], true
}
