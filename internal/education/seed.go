package education

var topics = []Topic{
	// Disease prevention
	{
		ID:       "malaria_prevention",
		Title:    "Malaria Prevention",
		Category: CategoryPrevention,
		Language: "en",
		Content:  "Malaria is a serious disease spread by mosquitoes. Prevention is key to staying healthy.",
		KeyPoints: []string{
			"Use mosquito nets while sleeping",
			"Wear long-sleeved clothes in the evening",
			"Use mosquito repellent creams",
			"Remove standing water around your home",
			"Keep doors and windows closed at dusk",
			"Seek immediate treatment if you have fever",
		},
		RelatedTopics: []string{"dengue_prevention", "safe_water"},
	},
	{
		ID:       "dengue_prevention",
		Title:    "Dengue Prevention",
		Category: CategoryPrevention,
		Language: "en",
		Content:  "Dengue is spread by Aedes mosquitoes that bite during the day. Prevention focuses on mosquito control.",
		KeyPoints: []string{
			"Empty water containers weekly",
			"Cover water storage containers",
			"Clean coolers and flower vases regularly",
			"Use mosquito repellent during the day",
			"Wear protective clothing",
			"Watch for warning signs: severe stomach pain, vomiting, bleeding",
		},
		RelatedTopics: []string{"malaria_prevention"},
	},
	{
		ID:       "tb_awareness",
		Title:    "Tuberculosis (TB) Awareness",
		Category: CategoryPrevention,
		Language: "en",
		Content:  "TB is a serious but curable disease. Early detection and complete treatment are essential.",
		KeyPoints: []string{
			"Cough lasting more than 2 weeks needs check-up",
			"Cover mouth when coughing",
			"Take ALL TB medicines for full 6 months",
			"Never stop treatment early",
			"TB treatment is FREE at government centers",
			"Good nutrition helps recovery",
		},
		RelatedTopics: []string{"handwashing", "anemia_prevention"},
	},

	// Hygiene
	{
		ID:       "handwashing",
		Title:    "Proper Handwashing",
		Category: CategoryHygiene,
		Language: "en",
		Content:  "Handwashing is the single most effective way to prevent diseases.",
		KeyPoints: []string{
			"Wash hands with soap for 20 seconds",
			"Wash before eating and cooking",
			"Wash after using toilet",
			"Wash after touching animals",
			"Use clean running water when possible",
			"Dry hands with clean cloth",
		},
		RelatedTopics: []string{"safe_water", "diarrhea_management"},
	},
	{
		ID:       "safe_water",
		Title:    "Safe Drinking Water",
		Category: CategoryHygiene,
		Language: "en",
		Content:  "Clean water prevents diarrhea and many waterborne diseases.",
		KeyPoints: []string{
			"Boil water for 10 minutes before drinking",
			"Store water in clean, covered containers",
			"Use water purification tablets if available",
			"Never drink from open wells",
			"Clean water storage containers weekly",
			"Protect water sources from contamination",
		},
		RelatedTopics: []string{"handwashing", "diarrhea_management"},
	},

	// Nutrition
	{
		ID:       "anemia_prevention",
		Title:    "Preventing Anemia",
		Category: CategoryNutrition,
		Language: "en",
		Content:  "Anemia (low blood) is common but preventable with proper nutrition.",
		KeyPoints: []string{
			"Eat iron-rich foods: green leafy vegetables, jaggery",
			"Take iron tablets during pregnancy",
			"Eat vitamin C foods with iron foods",
			"Avoid tea/coffee with meals",
			"Regular deworming for children",
			"Check for anemia during pregnancy",
		},
		RelatedTopics: []string{"antenatal_care", "child_nutrition"},
	},
	{
		ID:       "child_nutrition",
		Title:    "Child Nutrition (0-5 years)",
		Category: CategoryNutrition,
		Language: "en",
		Content:  "Proper nutrition in first 5 years builds lifelong health.",
		KeyPoints: []string{
			"Exclusive breastfeeding for 6 months",
			"Start complementary foods at 6 months",
			"Give mashed foods, not just liquids",
			"Include dal, vegetables, fruits daily",
			"Feed frequently - 5-6 times per day",
			"Continue breastfeeding up to 2 years",
		},
		RelatedTopics: []string{"anemia_prevention", "diarrhea_management"},
	},

	// First aid
	{
		ID:       "snake_bite",
		Title:    "Snake Bite First Aid",
		Category: CategoryFirstAid,
		Language: "en",
		Content:  "Quick action can save lives in snake bite cases.",
		KeyPoints: []string{
			"Keep person calm and still",
			"Remove jewelry and tight clothing",
			"DO NOT cut the bite or suck venom",
			"DO NOT apply ice or tourniquet",
			"Immobilize the bitten limb",
			"Rush to hospital immediately - call 108",
		},
		RelatedTopics: []string{"burns_first_aid"},
	},
	{
		ID:       "burns_first_aid",
		Title:    "Burns First Aid",
		Category: CategoryFirstAid,
		Language: "en",
		Content:  "Proper first aid for burns prevents infection and scarring.",
		KeyPoints: []string{
			"Cool burn with running water for 10 minutes",
			"DO NOT apply ice directly",
			"DO NOT apply oil, butter, or toothpaste",
			"Cover with clean cloth",
			"For severe burns, go to hospital",
			"Give plenty of water to drink",
		},
		RelatedTopics: []string{"snake_bite"},
	},

	// Maternal health
	{
		ID:       "pregnancy_danger_signs",
		Title:    "Pregnancy Danger Signs",
		Category: CategoryMaternal,
		Language: "en",
		Content:  "Recognize warning signs during pregnancy and seek immediate help.",
		KeyPoints: []string{
			"Severe headache or blurred vision",
			"Heavy bleeding",
			"Severe abdominal pain",
			"High fever",
			"Baby not moving for 12 hours",
			"Swelling of face and hands",
			"GO TO HOSPITAL IMMEDIATELY if any sign appears",
		},
		RelatedTopics: []string{"antenatal_care"},
	},
	{
		ID:       "antenatal_care",
		Title:    "Antenatal Care (ANC)",
		Category: CategoryMaternal,
		Language: "en",
		Content:  "Regular check-ups during pregnancy ensure healthy mother and baby.",
		KeyPoints: []string{
			"Register pregnancy within 12 weeks",
			"Attend at least 4 ANC check-ups",
			"Take iron and folic acid tablets daily",
			"Get 2 tetanus injections",
			"Eat nutritious food - extra meal daily",
			"Rest adequately and avoid heavy work",
		},
		RelatedTopics: []string{"pregnancy_danger_signs", "anemia_prevention"},
	},

	// Child health
	{
		ID:       "diarrhea_management",
		Title:    "Managing Child Diarrhea",
		Category: CategoryChild,
		Language: "en",
		Content:  "Diarrhea can be dangerous for children due to dehydration.",
		KeyPoints: []string{
			"Give ORS (Oral Rehydration Solution) frequently",
			"Continue breastfeeding",
			"Give zinc tablets for 14 days",
			"Continue feeding - do not stop food",
			"Watch for danger signs: no tears, dry mouth, sunken eyes",
			"Go to hospital if child is very weak or not drinking",
		},
		RelatedTopics: []string{"safe_water", "handwashing", "child_nutrition"},
	},

	// Chronic disease
	{
		ID:       "diabetes_management",
		Title:    "Living with Diabetes",
		Category: CategoryChronic,
		Language: "en",
		Content:  "Diabetes can be controlled with lifestyle changes and medication.",
		KeyPoints: []string{
			"Check blood sugar regularly",
			"Take medicines as prescribed",
			"Eat regular meals - avoid skipping",
			"Reduce sugar and refined flour",
			"Walk 30 minutes daily",
			"Check feet daily for cuts or sores",
			"Get eye check-up yearly",
		},
		RelatedTopics: []string{"hypertension_management"},
	},
	{
		ID:       "hypertension_management",
		Title:    "Managing High Blood Pressure",
		Category: CategoryChronic,
		Language: "en",
		Content:  "High BP can be controlled to prevent heart disease and stroke.",
		KeyPoints: []string{
			"Take BP medicines regularly - never skip",
			"Reduce salt in food",
			"Avoid smoking and alcohol",
			"Exercise daily - walking is best",
			"Manage stress through yoga or meditation",
			"Check BP monthly",
			"Maintain healthy weight",
		},
		RelatedTopics: []string{"diabetes_management"},
	},
}
