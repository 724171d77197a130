package triage

import "github.com/vitavoice/platform/internal/i18n"

// Protocol keys.
const (
	ProtocolChestPain           = "CHEST_PAIN"
	ProtocolBreathingDifficulty = "BREATHING_DIFFICULTY"
	ProtocolHighFever           = "HIGH_FEVER"
	ProtocolUnconscious         = "UNCONSCIOUS"
	ProtocolSevereBleeding      = "SEVERE_BLEEDING"
	ProtocolStroke              = "STROKE"
	ProtocolPregnancyEmergency  = "PREGNANCY_EMERGENCY"
	ProtocolPoisoning           = "POISONING"
	ProtocolSnakeBite           = "SNAKE_BITE"

	// ProtocolGeneral is used when the fallback is disabled. It is not part
	// of the published catalogue.
	ProtocolGeneral = "GENERAL_EMERGENCY"

	// FallbackNone disables protocol-specific fallback.
	FallbackNone = "NONE"
)

// DefaultProtocols returns the emergency catalogue in display order.
func DefaultProtocols() []Protocol {
	return []Protocol{
		{
			Key:       ProtocolChestPain,
			Condition: "Chest Pain / Possible Heart Attack",
			ImmediateActions: []string{
				"Sit down and rest immediately",
				"Loosen tight clothing",
				"If you have aspirin, chew one tablet (unless allergic)",
				"Stay calm and breathe slowly",
			},
			CallAmbulance:  true,
			WarningMessage: "This could be a heart attack. Call 108 immediately!",
		},
		{
			Key:       ProtocolBreathingDifficulty,
			Condition: "Severe Breathing Difficulty",
			ImmediateActions: []string{
				"Sit upright in a comfortable position",
				"Loosen tight clothing around neck and chest",
				"Open windows for fresh air",
				"Try to stay calm and breathe slowly",
				"If you have an inhaler, use it",
			},
			CallAmbulance:  true,
			WarningMessage: "Severe breathing difficulty requires immediate medical attention!",
		},
		{
			Key:       ProtocolHighFever,
			Condition: "Very High Fever (Above 103°F / 39.5°C)",
			ImmediateActions: []string{
				"Remove excess clothing",
				"Apply cool, damp cloth to forehead",
				"Drink plenty of water",
				"Take paracetamol if available",
				"Monitor temperature every 30 minutes",
			},
			CallAmbulance:  true,
			WarningMessage: "Very high fever can be dangerous. Seek medical help immediately!",
		},
		{
			Key:       ProtocolUnconscious,
			Condition: "Unconsciousness",
			ImmediateActions: []string{
				"Check if person is breathing",
				"Place in recovery position (on side)",
				"Do NOT give anything by mouth",
				"Keep airway clear",
				"Monitor breathing continuously",
			},
			CallAmbulance:  true,
			WarningMessage: "Person is unconscious. Call 108 immediately!",
		},
		{
			Key:       ProtocolSevereBleeding,
			Condition: "Severe Bleeding",
			ImmediateActions: []string{
				"Apply direct pressure with clean cloth",
				"Elevate the injured area above heart level",
				"Do NOT remove cloth if soaked - add more on top",
				"Keep person lying down",
				"Keep them warm",
			},
			CallAmbulance:  true,
			WarningMessage: "Severe bleeding is life-threatening. Call 108 now!",
		},
		{
			Key:       ProtocolStroke,
			Condition: "Possible Stroke",
			ImmediateActions: []string{
				"Note the time symptoms started",
				"Keep person lying down with head slightly elevated",
				"Do NOT give food or water",
				"Loosen tight clothing",
				"Stay with the person",
			},
			CallAmbulance:  true,
			WarningMessage: "FAST: Face drooping, Arm weakness, Speech difficulty - Time to call 108!",
		},
		{
			Key:       ProtocolPregnancyEmergency,
			Condition: "Pregnancy Emergency",
			ImmediateActions: []string{
				"Keep the pregnant woman lying on her left side",
				"Keep her calm and comfortable",
				"Do NOT give anything by mouth",
				"Note any bleeding or fluid discharge",
				"Monitor contractions if in labor",
			},
			CallAmbulance:  true,
			WarningMessage: "Pregnancy complications need immediate medical care. Call 108!",
		},
		{
			Key:       ProtocolPoisoning,
			Condition: "Poisoning / Toxic Ingestion",
			ImmediateActions: []string{
				"Identify what was consumed if possible",
				"Do NOT induce vomiting",
				"Keep the person sitting or lying on their side",
				"Save container/packaging of substance",
				"Keep person awake if possible",
			},
			CallAmbulance:  true,
			WarningMessage: "Poisoning is a medical emergency. Call 108 immediately!",
		},
		{
			Key:       ProtocolSnakeBite,
			Condition: "Snake Bite",
			ImmediateActions: []string{
				"Keep the person calm and still",
				"Remove jewelry and tight clothing from affected area",
				"Keep bitten area below heart level",
				"Do NOT apply ice or tourniquet",
				"Do NOT try to catch or kill the snake",
				"Note the snake's appearance if safe to do so",
			},
			CallAmbulance: true,
			FirstAidSteps: []string{
				"Wash the bite with soap and water",
				"Cover with clean, dry dressing",
				"Immobilize the affected limb",
			},
			WarningMessage: "Snake bite requires anti-venom. Get to hospital immediately!",
		},
	}
}

func generalProtocol() Protocol {
	return Protocol{
		Key:       ProtocolGeneral,
		Condition: "Medical Emergency",
		ImmediateActions: []string{
			"Call 108 for an ambulance",
			"Stay with the person and keep them calm",
			"Do NOT give food, water or medicine",
			"Note the time symptoms started",
		},
		CallAmbulance:  true,
		WarningMessage: "This may be a medical emergency. Call 108 immediately!",
	}
}

// Keyword is an emergency phrase and the protocol it implies. An empty
// Protocol leaves the choice to context phrases or the fallback.
type Keyword struct {
	Term     string `json:"term"`
	Protocol string `json:"protocol,omitempty"`
}

// DefaultKeywords returns the built-in emergency phrases per language.
func DefaultKeywords() map[i18n.Code][]Keyword {
	return map[i18n.Code][]Keyword{
		i18n.English: {
			{"chest pain", ProtocolChestPain},
			{"breathing difficulty", ProtocolBreathingDifficulty},
			{"unconscious", ProtocolUnconscious},
			{"severe bleeding", ProtocolSevereBleeding},
			{"stroke", ProtocolStroke},
			{"heart attack", ProtocolChestPain},
			{"poisoning", ProtocolPoisoning},
			{"snake bite", ProtocolSnakeBite},
		},
		i18n.Tamil: {
			{"மார்பு வலி", ProtocolChestPain},
			{"மூச்சுத் திணறல்", ProtocolBreathingDifficulty},
			{"மயக்கம்", ProtocolUnconscious},
			{"கடுமையான இரத்தப்போக்கு", ProtocolSevereBleeding},
			{"பக்கவாதம்", ProtocolStroke},
		},
		i18n.Telugu: {
			{"ఛాతీ నొప్పి", ProtocolChestPain},
			{"శ్వాస ఇబ్బంది", ProtocolBreathingDifficulty},
			{"అపస్మారక స్థితి", ProtocolUnconscious},
			{"తీవ్రమైన రక్తస్రావం", ProtocolSevereBleeding},
		},
		i18n.Hindi: {
			{"सीने में दर्द", ProtocolChestPain},
			{"सांस लेने में कठिनाई", ProtocolBreathingDifficulty},
			{"बेहोश", ProtocolUnconscious},
			{"गंभीर रक्तस्राव", ProtocolSevereBleeding},
			{"स्ट्रोक", ProtocolStroke},
		},
		i18n.Bengali: {
			{"বুকে ব্যথা", ProtocolChestPain},
			{"শ্বাসকষ্ট", ProtocolBreathingDifficulty},
			{"অজ্ঞান", ProtocolUnconscious},
			{"গুরুতর রক্তপাত", ProtocolSevereBleeding},
		},
		i18n.Kannada: {
			{"ಎದೆ ನೋವು", ProtocolChestPain},
			{"ಉಸಿರಾಟದ ತೊಂದರೆ", ProtocolBreathingDifficulty},
			{"ಪ್ರಜ್ಞಾಹೀನತೆ", ProtocolUnconscious},
			{"ತೀವ್ರ ರಕ್ತಸ್ರಾವ", ProtocolSevereBleeding},
		},
		i18n.Malayalam: {
			{"നെഞ്ചുവേദന", ProtocolChestPain},
			{"ശ്വാസതടസ്സം", ProtocolBreathingDifficulty},
			{"അബോധാവസ്ഥ", ProtocolUnconscious},
			{"കടുത്ത രക്തസ്രാവം", ProtocolSevereBleeding},
		},
	}
}

// keywordPriority is the order in which matched protocols compete.
var keywordPriority = []string{
	ProtocolChestPain,
	ProtocolBreathingDifficulty,
	ProtocolUnconscious,
	ProtocolSevereBleeding,
	ProtocolStroke,
	ProtocolPregnancyEmergency,
	ProtocolPoisoning,
	ProtocolSnakeBite,
}

// contextPhrases select a protocol from the surrounding text once any
// emergency keyword has matched.
var contextPhrases = map[string][]string{
	ProtocolPregnancyEmergency: {"pregnant", "pregnancy", "गर्भ"},
	ProtocolPoisoning:          {"poison", "toxic", "விஷம்"},
	ProtocolSnakeBite:          {"snake", "bite", "பாம்பு"},
}
