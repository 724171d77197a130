package diet

import (
	"slices"
	"strings"

	"github.com/vitavoice/platform/internal/i18n"
)

// Meal is one dish with its ingredients and nutrition per serving.
type Meal struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Calories    int      `json:"calories"`
	Protein     int      `json:"protein"`
	Carbs       int      `json:"carbs"`
	Fats        int      `json:"fats"`
}

var breakfasts = []Meal{
	{"Oats Porridge with Fruits", []string{"Oats (50g)", "Milk (200ml)", "Banana (1)", "Almonds (10)", "Honey (1 tsp)"}, 350, 12, 55, 8},
	{"Idli with Sambar", []string{"Idli (3 pieces)", "Sambar (1 bowl)", "Coconut chutney (2 tbsp)", "Curry leaves"}, 320, 10, 60, 4},
	{"Vegetable Poha", []string{"Poha (100g)", "Mixed vegetables (50g)", "Peanuts (20g)", "Curry leaves", "Mustard seeds"}, 340, 8, 58, 10},
	{"Moong Dal Cheela", []string{"Moong dal (100g)", "Onion (1)", "Tomato (1)", "Green chili (1)", "Coriander leaves"}, 300, 15, 45, 6},
}

var lunches = []Meal{
	{"Brown Rice with Dal and Vegetables", []string{"Brown rice (150g)", "Moong dal (100g)", "Mixed vegetables (100g)", "Salad", "Curd (100g)"}, 520, 18, 85, 10},
	{"Roti with Paneer Curry", []string{"Whole wheat roti (3)", "Paneer (100g)", "Tomato gravy", "Green salad", "Buttermilk"}, 550, 22, 70, 18},
	{"Quinoa Pulao with Raita", []string{"Quinoa (150g)", "Mixed vegetables (100g)", "Curd (150g)", "Cucumber", "Spices"}, 480, 16, 75, 12},
	{"Vegetable Khichdi", []string{"Rice (100g)", "Moong dal (50g)", "Mixed vegetables (100g)", "Ghee (1 tsp)", "Curd"}, 450, 14, 78, 8},
}

var dinners = []Meal{
	{"Vegetable Soup with Roti", []string{"Mixed vegetable soup (300ml)", "Whole wheat roti (2)", "Grilled vegetables", "Salad"}, 380, 12, 60, 8},
	{"Dal Tadka with Rice", []string{"Toor dal (100g)", "Brown rice (100g)", "Ghee (1 tsp)", "Salad", "Lemon"}, 420, 16, 68, 10},
	{"Palak Paneer with Roti", []string{"Spinach (200g)", "Paneer (80g)", "Whole wheat roti (2)", "Salad"}, 450, 20, 55, 16},
	{"Mixed Vegetable Curry with Millet", []string{"Millet (150g)", "Mixed vegetables (150g)", "Coconut (20g)", "Spices", "Curd"}, 400, 12, 70, 9},
}

var snacks = []Meal{
	{"Fruit Salad", []string{"Apple (1)", "Banana (1)", "Orange (1)", "Pomegranate (50g)"}, 150, 2, 38, 1},
	{"Roasted Chana", []string{"Roasted chickpeas (50g)", "Lemon juice", "Chaat masala"}, 180, 8, 30, 3},
	{"Vegetable Sandwich", []string{"Whole wheat bread (2 slices)", "Cucumber", "Tomato", "Lettuce", "Mint chutney"}, 200, 6, 35, 4},
}

// allowed drops options with an ingredient containing any restriction. When
// every option is restricted, all options are returned.
func allowed(options []Meal, restrictions []string) []Meal {
	folded := make([]string, 0, len(restrictions))
	for _, r := range restrictions {
		if r = i18n.Fold(r); r != "" {
			folded = append(folded, r)
		}
	}

	out := slices.DeleteFunc(slices.Clone(options), func(m Meal) bool {
		return slices.ContainsFunc(m.Ingredients, func(ingredient string) bool {
			ingredient = i18n.Fold(ingredient)
			return slices.ContainsFunc(folded, func(r string) bool {
				return strings.Contains(ingredient, r)
			})
		})
	})
	if len(out) == 0 {
		return options
	}
	return out
}

// pick rotates through options so that consecutive days differ whenever
// more than one option is allowed.
func pick(options []Meal, day int) Meal {
	return options[day%len(options)]
}
