package knowledge

import "github.com/vitavoice/platform/internal/i18n"

const (
	SymFever              SymptomID = "sym_fever"
	SymHighFever          SymptomID = "sym_high_fever"
	SymMildFever          SymptomID = "sym_mild_fever"
	SymProlongedFever     SymptomID = "sym_prolonged_fever"
	SymBodyAche           SymptomID = "sym_body_ache"
	SymHeadache           SymptomID = "sym_headache"
	SymSevereHeadache     SymptomID = "sym_severe_headache"
	SymFatigue            SymptomID = "sym_fatigue"
	SymWeakness           SymptomID = "sym_weakness"
	SymPainBehindEyes     SymptomID = "sym_pain_behind_eyes"
	SymJointPain          SymptomID = "sym_joint_pain"
	SymRash               SymptomID = "sym_rash"
	SymChills             SymptomID = "sym_chills"
	SymSweating           SymptomID = "sym_sweating"
	SymNausea             SymptomID = "sym_nausea"
	SymVomiting           SymptomID = "sym_vomiting"
	SymStomachPain        SymptomID = "sym_stomach_pain"
	SymLossOfAppetite     SymptomID = "sym_loss_of_appetite"
	SymRunnyNose          SymptomID = "sym_runny_nose"
	SymCough              SymptomID = "sym_cough"
	SymSoreThroat         SymptomID = "sym_sore_throat"
	SymSneezing           SymptomID = "sym_sneezing"
	SymBreathingDifficult SymptomID = "sym_breathing_difficulty"
	SymChestPain          SymptomID = "sym_chest_pain"
	SymLooseStools        SymptomID = "sym_loose_stools"
	SymDehydration        SymptomID = "sym_dehydration"
	SymDryMouth           SymptomID = "sym_dry_mouth"
	SymDizziness          SymptomID = "sym_dizziness"
	SymDarkUrine          SymptomID = "sym_dark_urine"
	SymReducedUrination   SymptomID = "sym_reduced_urination"
	SymLossOfSmell        SymptomID = "sym_loss_of_smell"
	SymBleeding           SymptomID = "sym_bleeding"
)

const (
	DisViralFever  DiseaseID = "dis_viral_fever"
	DisDengue      DiseaseID = "dis_dengue"
	DisMalaria     DiseaseID = "dis_malaria"
	DisTyphoid     DiseaseID = "dis_typhoid"
	DisCommonCold  DiseaseID = "dis_common_cold"
	DisPneumonia   DiseaseID = "dis_pneumonia"
	DisDiarrhea    DiseaseID = "dis_diarrhea"
	DisDehydration DiseaseID = "dis_dehydration"
	DisCovid19     DiseaseID = "dis_covid19"
)

var curated = Provenance{Source: "VitaVoice clinical seed", Licence: "CC-BY-4.0", Confidence: 0.9}

func seedSymptoms() []Symptom {
	return []Symptom{
		{ID: SymFever, Name: "fever", SnomedID: "386661006",
			Aliases: []string{"high temperature", "pyrexia", "elevated temperature", "temperature", "feverish"},
			Languages: map[i18n.Code]string{
				i18n.Hindi: "बुखार", i18n.Tamil: "காய்ச்சல்", i18n.Telugu: "జ్వరం", i18n.Kannada: "ಜ್ವರ",
				i18n.Malayalam: "പനി", i18n.Bengali: "জ্বর", "mr": "ताप",
			},
			Provenance: Provenance{Source: "SNOMED CT", Licence: "SNOMED CT Affiliate", Confidence: 0.95}},
		{ID: SymHighFever, Name: "high fever", Parent: SymFever,
			Aliases: []string{"very high fever", "high grade fever"}},
		{ID: SymMildFever, Name: "mild fever", Parent: SymFever,
			Aliases: []string{"slight fever", "low grade fever"}},
		{ID: SymProlongedFever, Name: "prolonged fever", Parent: SymFever,
			Aliases: []string{"persistent fever", "continuous fever"}},
		{ID: SymBodyAche, Name: "body ache",
			Aliases: []string{"body pain", "body aches", "muscle pain", "myalgia"},
			Languages: map[i18n.Code]string{
				i18n.Tamil: "உடல் வலி", i18n.Telugu: "శరీర నొప్పి", i18n.Hindi: "शरीर दर्द",
				i18n.Bengali: "শরীর ব্যথা", i18n.Kannada: "ದೇಹ ನೋವು", i18n.Malayalam: "ശരീരവേദന",
			}},
		{ID: SymHeadache, Name: "headache", SnomedID: "25064002",
			Aliases: []string{"head pain", "cephalgia", "headaches", "head ache", "ತಲೆನೋವು"},
			Languages: map[i18n.Code]string{
				i18n.Hindi: "सिरदर्द", i18n.Tamil: "தலைவலி", i18n.Telugu: "తలనొప్పి", i18n.Kannada: "ತಲೆ ನೋವು",
				i18n.Malayalam: "തലവേദന", i18n.Bengali: "মাথাব্যথা", "mr": "डोकेदुखी",
			},
			Provenance: Provenance{Source: "SNOMED CT", Licence: "SNOMED CT Affiliate", Confidence: 0.92}},
		{ID: SymSevereHeadache, Name: "severe headache", Parent: SymHeadache,
			Aliases: []string{"intense headache", "bad headache", "terrible headache"}},
		{ID: SymFatigue, Name: "fatigue",
			Aliases: []string{"tiredness", "tired", "exhaustion", "exhausted"}},
		{ID: SymWeakness, Name: "weakness",
			Aliases: []string{"weak", "feeling weak"},
			Languages: map[i18n.Code]string{
				i18n.Tamil: "பலவீனம்", i18n.Telugu: "బలహీనత", i18n.Hindi: "कमजोरी",
				i18n.Bengali: "দুর্বলতা", i18n.Kannada: "ದೌರ್ಬಲ್ಯ", i18n.Malayalam: "ബലഹീനത",
			}},
		{ID: SymPainBehindEyes, Name: "pain behind eyes",
			Aliases: []string{"pain behind the eyes", "eye pain", "retro orbital pain"}},
		{ID: SymJointPain, Name: "joint pain",
			Aliases: []string{"joint pains", "aching joints", "arthralgia"}},
		{ID: SymRash, Name: "rash",
			Aliases: []string{"skin rash", "rashes"}},
		{ID: SymChills, Name: "chills",
			Aliases: []string{"chill", "shivering", "rigors"}},
		{ID: SymSweating, Name: "sweating",
			Aliases: []string{"sweats", "night sweats", "perspiration"}},
		{ID: SymNausea, Name: "nausea",
			Aliases: []string{"nauseous", "queasy", "feeling sick"}},
		{ID: SymVomiting, Name: "vomiting",
			Aliases: []string{"vomit", "vomits", "throwing up", "emesis"},
			Languages: map[i18n.Code]string{
				i18n.Tamil: "வாந்தி", i18n.Telugu: "వాంతులు", i18n.Hindi: "उल्टी",
				i18n.Bengali: "বমি", i18n.Kannada: "ವಾಂತಿ", i18n.Malayalam: "ഛർദ്ദി",
			}},
		{ID: SymStomachPain, Name: "stomach pain",
			Aliases: []string{"abdominal pain", "stomach ache", "stomachache", "belly pain", "tummy ache"},
			Languages: map[i18n.Code]string{
				i18n.Tamil: "வயிற்று வலி", i18n.Telugu: "కడుపు నొప్పి", i18n.Hindi: "पेट दर्द",
				i18n.Bengali: "পেট ব্যথা", i18n.Kannada: "ಹೊಟ್ಟೆ ನೋವು", i18n.Malayalam: "വയറുവേദന",
			}},
		{ID: SymLossOfAppetite, Name: "loss of appetite",
			Aliases: []string{"poor appetite", "no appetite", "not hungry"}},
		{ID: SymRunnyNose, Name: "runny nose",
			Aliases: []string{"cold", "common cold", "stuffy nose", "blocked nose", "nasal congestion"},
			Languages: map[i18n.Code]string{
				i18n.Tamil: "சளி", i18n.Telugu: "జలుబు", i18n.Hindi: "सर्दी",
				i18n.Bengali: "সর্দি", i18n.Kannada: "ಶೀತ", i18n.Malayalam: "ജലദോഷം",
			}},
		{ID: SymCough, Name: "cough", SnomedID: "49727002",
			Aliases: []string{"tussis", "dry cough", "wet cough", "coughing", "coughs", "ಕೆಮ್ಮು"},
			Languages: map[i18n.Code]string{
				i18n.Hindi: "खांसी", i18n.Tamil: "இருமல்", i18n.Telugu: "దగ్గు", i18n.Kannada: "ಕೆಮ್ಮೆ",
				i18n.Malayalam: "ചുമ", i18n.Bengali: "কাশি", "mr": "खोकला",
			},
			Provenance: Provenance{Source: "SNOMED CT", Licence: "SNOMED CT Affiliate", Confidence: 0.93}},
		{ID: SymSoreThroat, Name: "sore throat",
			Aliases: []string{"throat pain", "scratchy throat", "pharyngitis"}},
		{ID: SymSneezing, Name: "sneezing",
			Aliases: []string{"sneeze", "sneezes"}},
		{ID: SymBreathingDifficult, Name: "breathing difficulty",
			Aliases: []string{"shortness of breath", "difficulty breathing", "breathlessness", "breathless", "trouble breathing", "dyspnea"},
			Languages: map[i18n.Code]string{
				i18n.Hindi: "सांस लेने में कठिनाई", i18n.Tamil: "மூச்சுத் திணறல்", i18n.Telugu: "శ్వాస ఇబ్బంది",
				i18n.Bengali: "শ্বাসকষ্ট", i18n.Kannada: "ಉಸಿರಾಟದ ತೊಂದರೆ", i18n.Malayalam: "ശ്വാസതടസ്സം",
			}},
		{ID: SymChestPain, Name: "chest pain",
			Aliases: []string{"chest tightness", "chest discomfort"},
			Languages: map[i18n.Code]string{
				i18n.Hindi: "सीने में दर्द", i18n.Tamil: "மார்பு வலி", i18n.Telugu: "ఛాతీ నొప్పి",
				i18n.Bengali: "বুকে ব্যথা", i18n.Kannada: "ಎದೆ ನೋವು", i18n.Malayalam: "നെഞ്ചുവേദന",
			}},
		{ID: SymLooseStools, Name: "loose stools",
			Aliases: []string{"diarrhea", "diarrhoea", "loose motions", "watery stools"},
			Languages: map[i18n.Code]string{
				i18n.Tamil: "வயிற்றுப்போக்கு", i18n.Telugu: "విరేచనాలు", i18n.Hindi: "दस्त",
				i18n.Bengali: "ডায়রিয়া", i18n.Kannada: "ಅತಿಸಾರ", i18n.Malayalam: "വയറിളക്കം",
			}},
		{ID: SymDehydration, Name: "dehydration",
			Aliases: []string{"dehydrated"}},
		{ID: SymDryMouth, Name: "dry mouth",
			Aliases: []string{"dry lips", "parched mouth"}},
		{ID: SymDizziness, Name: "dizziness",
			Aliases: []string{"dizzy", "lightheaded", "giddiness", "vertigo", "चक्कर"},
			Languages: map[i18n.Code]string{
				i18n.Tamil: "தலைசுற்றல்", i18n.Telugu: "తల తిరగడం", i18n.Hindi: "चक्कर आना",
				i18n.Bengali: "মাথা ঘোরা", i18n.Kannada: "ತಲೆತಿರುಗುವಿಕೆ", i18n.Malayalam: "തലകറക്കം",
			}},
		{ID: SymDarkUrine, Name: "dark urine",
			Aliases: []string{"dark coloured urine", "dark colored urine"}},
		{ID: SymReducedUrination, Name: "reduced urination",
			Aliases: []string{"less urine", "decreased urination", "low urine output"}},
		{ID: SymLossOfSmell, Name: "loss of smell",
			Aliases: []string{"anosmia", "cannot smell"}},
		{ID: SymBleeding, Name: "bleeding",
			Aliases: []string{"blood loss", "haemorrhage", "hemorrhage"},
			Languages: map[i18n.Code]string{
				i18n.Hindi: "रक्तस्राव", i18n.Tamil: "இரத்தப்போக்கு", i18n.Telugu: "రక్తస్రావం",
				i18n.Bengali: "রক্তপাত", i18n.Kannada: "ರಕ್ತಸ್ರಾವ", i18n.Malayalam: "രക്തസ്രാവം",
			}},
	}
}

func edge(id SymptomID, probability float64) Edge {
	return Edge{SymptomID: id, Probability: probability, Confidence: 0.85}
}

// seedDiseases returns the disease table in matching order.
func seedDiseases() []Disease {
	return []Disease{
		{ID: DisViralFever, Name: "Viral Fever", Severity: SeverityLow, Duration: "3-7 days", Family: FamilyFever,
			Description: "Common viral infection causing fever and body ache",
			Edges: []Edge{
				edge(SymFever, 0.90), edge(SymBodyAche, 0.70), edge(SymHeadache, 0.60),
				edge(SymFatigue, 0.65), edge(SymWeakness, 0.60),
			}},
		{ID: DisDengue, Name: "Dengue (Suspected)", Severity: SeverityMedium, Duration: "2-7 days", Family: FamilyVectorBorne,
			Description: "Mosquito-borne viral infection", DiseaseOntologyID: "DOID:12205", SnomedID: "38362002",
			Edges: []Edge{
				edge(SymHighFever, 0.90), edge(SymSevereHeadache, 0.75), edge(SymPainBehindEyes, 0.65),
				edge(SymJointPain, 0.80), edge(SymRash, 0.50),
			}},
		{ID: DisMalaria, Name: "Malaria (Suspected)", Severity: SeverityMedium, Duration: "Recurring", Family: FamilyVectorBorne,
			Description: "Parasitic infection spread by mosquitoes", DiseaseOntologyID: "DOID:12365", SnomedID: "61462000",
			Edges: []Edge{
				edge(SymFever, 0.95), edge(SymChills, 0.85), edge(SymSweating, 0.75),
				edge(SymHeadache, 0.60), edge(SymNausea, 0.45), edge(SymVomiting, 0.40),
			}},
		{ID: DisTyphoid, Name: "Typhoid (Suspected)", Severity: SeverityMedium, Duration: "1-3 weeks", Family: FamilyOther,
			Description: "Bacterial infection from contaminated food or water", DiseaseOntologyID: "DOID:13258", SnomedID: "4834000",
			Edges: []Edge{
				edge(SymProlongedFever, 0.90), edge(SymWeakness, 0.70), edge(SymStomachPain, 0.60),
				edge(SymHeadache, 0.55), edge(SymLossOfAppetite, 0.65),
			}},
		{ID: DisCommonCold, Name: "Common Cold/Flu", Severity: SeverityLow, Duration: "5-7 days", Family: FamilyRespiratoryViral,
			Aliases:     []string{"common cold", "influenza", "flu", "seasonal flu"},
			Description: "Upper respiratory viral infection", DiseaseOntologyID: "DOID:0001816", SnomedID: "82272006",
			Edges: []Edge{
				edge(SymRunnyNose, 0.85), {SymptomID: SymCough, Probability: 0.75, Confidence: 0.90}, edge(SymSoreThroat, 0.70),
				edge(SymMildFever, 0.50), edge(SymSneezing, 0.80), edge(SymHeadache, 0.40),
			},
			Provenance: Provenance{Source: "Disease Ontology", Licence: "CC0", Confidence: 0.95}},
		{ID: DisPneumonia, Name: "Pneumonia (Suspected)", Severity: SeverityHigh, Duration: "1-3 weeks", Family: FamilyPneumonia,
			Description: "Lung infection that needs medical treatment", DiseaseOntologyID: "DOID:552", SnomedID: "233604007",
			Edges: []Edge{
				edge(SymCough, 0.85), edge(SymFever, 0.80), edge(SymBreathingDifficult, 0.75),
				edge(SymChestPain, 0.55), edge(SymFatigue, 0.60),
			}},
		{ID: DisDiarrhea, Name: "Diarrhea/Gastroenteritis", Severity: SeverityMedium, Duration: "1-3 days", Family: FamilyGastroIntestinal,
			Description: "Infection or irritation of the digestive tract", DiseaseOntologyID: "DOID:13250",
			Edges: []Edge{
				edge(SymLooseStools, 0.95), edge(SymStomachPain, 0.70), edge(SymNausea, 0.60),
				edge(SymVomiting, 0.55), edge(SymDehydration, 0.45),
			}},
		{ID: DisDehydration, Name: "Dehydration", Severity: SeverityMedium, Duration: "Immediate", Family: FamilyOther,
			Description: "Loss of body fluids faster than they are replaced",
			Edges: []Edge{
				edge(SymDryMouth, 0.85), edge(SymDizziness, 0.65), edge(SymDarkUrine, 0.75),
				edge(SymWeakness, 0.60), edge(SymReducedUrination, 0.80),
			}},
		{ID: DisCovid19, Name: "COVID-19", Severity: SeverityMedium, Duration: "1-2 weeks", Family: FamilyOther,
			Aliases:     []string{"coronavirus", "sars-cov-2"},
			Description: "Respiratory illness caused by SARS-CoV-2", SnomedID: "840539006", DiseaseOntologyID: "DOID:0080600",
			Emergency: true,
			Edges: []Edge{
				{SymptomID: SymFever, Probability: 0.88, Confidence: 0.95},
				{SymptomID: SymCough, Probability: 0.85, Confidence: 0.93},
				{SymptomID: SymHeadache, Probability: 0.67, Confidence: 0.85},
				edge(SymBreathingDifficult, 0.60), edge(SymLossOfSmell, 0.55),
				edge(SymFatigue, 0.70), edge(SymBodyAche, 0.50),
			},
			Provenance: Provenance{Source: "WHO / Disease Ontology", Licence: "CC-BY-4.0", Confidence: 0.99}},
	}
}

// Seed returns the built-in catalogue.
func Seed() Catalogue {
	return Catalogue{Symptoms: seedSymptoms(), Diseases: seedDiseases()}
}
