package i18n

// Translation keys used by the conversational flow.
const (
	KeyGreeting          = "greeting"
	KeyHowCanHelp        = "how_can_help"
	KeyMainProblem       = "main_problem"
	KeyWhenStarted       = "when_started"
	KeySeverityQuestion  = "severity_question"
	KeyAnyFever          = "any_fever"
	KeyAnyPain           = "any_pain"
	KeyBreathingOK       = "breathing_ok"
	KeyRestAdvice        = "rest_advice"
	KeyHydration         = "hydration"
	KeySeeDoctor         = "see_doctor"
	KeyEmergencyCall     = "emergency_call"
	KeyEmergencyDetected = "emergency_detected"
	KeyPossibleCondition = "possible_condition"
)

var translations = map[Code]map[string]string{
	English: {
		KeyGreeting:          "Hello! I am VitaVoice, your healthcare assistant.",
		KeyHowCanHelp:        "How can I help you today?",
		KeyMainProblem:       "What is the main problem?",
		KeyWhenStarted:       "When did it start?",
		KeySeverityQuestion:  "How severe is it on a scale of 1-10?",
		KeyAnyFever:          "Do you have fever?",
		KeyAnyPain:           "Are you experiencing pain?",
		KeyBreathingOK:       "Is breathing normal?",
		KeyRestAdvice:        "Please take adequate rest",
		KeyHydration:         "Drink plenty of water",
		KeySeeDoctor:         "Please consult a doctor",
		KeyEmergencyCall:     "This is an emergency. Call 108 immediately",
		KeyEmergencyDetected: "Emergency detected! Redirecting to emergency services...",
		KeyPossibleCondition: "Possible condition",
	},
	Tamil: {
		KeyGreeting:          "வணக்கம்! நான் விடாவாய்ஸ், உங்கள் சுகாதார உதவியாளர்.",
		KeyHowCanHelp:        "இன்று நான் உங்களுக்கு எப்படி உதவ முடியும்?",
		KeyMainProblem:       "முக்கிய பிரச்சனை என்ன?",
		KeyWhenStarted:       "இது எப்போது தொடங்கியது?",
		KeySeverityQuestion:  "1-10 அளவில் எவ்வளவு கடுமையானது?",
		KeyAnyFever:          "காய்ச்சல் உள்ளதா?",
		KeyAnyPain:           "வலி இருக்கிறதா?",
		KeyBreathingOK:       "சுவாசம் சாதாரணமாக உள்ளதா?",
		KeyRestAdvice:        "தயவுசெய்து போதுமான ஓய்வு எடுங்கள்",
		KeyHydration:         "நிறைய தண்ணீர் குடியுங்கள்",
		KeySeeDoctor:         "தயவுசெய்து மருத்துவரை அணுகவும்",
		KeyEmergencyCall:     "இது அவசரம். உடனடியாக 108 ஐ அழைக்கவும்",
		KeyEmergencyDetected: "அவசரம் கண்டறியப்பட்டது! அவசர சேவைகளுக்கு திருப்பிவிடப்படுகிறது...",
	},
	Telugu: {
		KeyGreeting:         "నమస్కారం! నేను విటావాయిస్, మీ ఆరోగ్య సహాయకుడిని.",
		KeyHowCanHelp:       "ఈరోజు నేను మీకు ఎలా సహాయం చేయగలను?",
		KeyMainProblem:      "ముఖ్య సమస్య ఏమిటి?",
		KeyWhenStarted:      "ఇది ఎప్పుడు ప్రారంభమైంది?",
		KeySeverityQuestion: "1-10 స్కేల్‌లో ఎంత తీవ్రంగా ఉంది?",
		KeyAnyFever:         "జ్వరం ఉందా?",
		KeyAnyPain:          "నొప్పి అనుభవిస్తున్నారా?",
		KeyBreathingOK:      "శ్వాస సాధారణంగా ఉందా?",
		KeyRestAdvice:       "దయచేసి తగినంత విశ్రాంతి తీసుకోండి",
		KeyHydration:        "చాలా నీరు త్రాగండి",
		KeySeeDoctor:        "దయచేసి వైద్యుడిని సంప్రదించండి",
		KeyEmergencyCall:    "ఇది అత్యవసరం. వెంటనే 108కి కాల్ చేయండి",
	},
	Hindi: {
		KeyGreeting:         "नमस्ते! मैं विटावॉइस हूं, आपका स्वास्थ्य सहायक।",
		KeyHowCanHelp:       "आज मैं आपकी कैसे मदद कर सकता हूं?",
		KeyMainProblem:      "मुख्य समस्या क्या है?",
		KeyWhenStarted:      "यह कब शुरू हुआ?",
		KeySeverityQuestion: "1-10 के पैमाने पर यह कितना गंभीर है?",
		KeyAnyFever:         "क्या बुखार है?",
		KeyAnyPain:          "क्या दर्द हो रहा है?",
		KeyBreathingOK:      "क्या सांस लेना सामान्य है?",
		KeyRestAdvice:       "कृपया पर्याप्त आराम करें",
		KeyHydration:        "खूब पानी पिएं",
		KeySeeDoctor:        "कृपया डॉक्टर से परामर्श करें",
		KeyEmergencyCall:    "यह आपातकाल है। तुरंत 108 पर कॉल करें",
	},
	Bengali: {
		KeyGreeting:         "নমস্কার! আমি ভিটাভয়েস, আপনার স্বাস্থ্য সহায়ক।",
		KeyHowCanHelp:       "আজ আমি আপনাকে কীভাবে সাহায্য করতে পারি?",
		KeyMainProblem:      "মূল সমস্যা কী?",
		KeyWhenStarted:      "এটি কখন শুরু হয়েছিল?",
		KeySeverityQuestion: "১-১০ স্কেলে এটি কতটা গুরুতর?",
		KeyAnyFever:         "জ্বর আছে কি?",
		KeyAnyPain:          "ব্যথা অনুভব করছেন?",
		KeyBreathingOK:      "শ্বাস-প্রশ্বাস কি স্বাভাবিক?",
		KeyRestAdvice:       "দয়া করে পর্যাপ্ত বিশ্রাম নিন",
		KeyHydration:        "প্রচুর পানি পান করুন",
		KeySeeDoctor:        "দয়া করে ডাক্তারের পরামর্শ নিন",
		KeyEmergencyCall:    "এটি জরুরি। অবিলম্বে ১০৮ এ কল করুন",
	},
	Kannada: {
		KeyGreeting:         "ನಮಸ್ಕಾರ! ನಾನು ವಿಟಾವಾಯ್ಸ್, ನಿಮ್ಮ ಆರೋಗ್ಯ ಸಹಾಯಕ.",
		KeyHowCanHelp:       "ಇಂದು ನಾನು ನಿಮಗೆ ಹೇಗೆ ಸಹಾಯ ಮಾಡಬಹುದು?",
		KeyMainProblem:      "ಮುಖ್ಯ ಸಮಸ್ಯೆ ಏನು?",
		KeyWhenStarted:      "ಇದು ಯಾವಾಗ ಪ್ರಾರಂಭವಾಯಿತು?",
		KeySeverityQuestion: "1-10 ಮಾಪಕದಲ್ಲಿ ಇದು ಎಷ್ಟು ತೀವ್ರವಾಗಿದೆ?",
		KeyAnyFever:         "ಜ್ವರ ಇದೆಯೇ?",
		KeyAnyPain:          "ನೋವು ಅನುಭವಿಸುತ್ತಿದ್ದೀರಾ?",
		KeyBreathingOK:      "ಉಸಿರಾಟ ಸಾಮಾನ್ಯವಾಗಿದೆಯೇ?",
		KeyRestAdvice:       "ದಯವಿಟ್ಟು ಸಾಕಷ್ಟು ವಿಶ್ರಾಂತಿ ತೆಗೆದುಕೊಳ್ಳಿ",
		KeyHydration:        "ಸಾಕಷ್ಟು ನೀರು ಕುಡಿಯಿರಿ",
		KeySeeDoctor:        "ದಯವಿಟ್ಟು ವೈದ್ಯರನ್ನು ಸಂಪರ್ಕಿಸಿ",
		KeyEmergencyCall:    "ಇದು ತುರ್ತು. ತಕ್ಷಣ 108 ಗೆ ಕರೆ ಮಾಡಿ",
	},
	Malayalam: {
		KeyGreeting:         "നമസ്കാരം! ഞാൻ വിറ്റാവോയ്സ്, നിങ്ങളുടെ ആരോഗ്യ സഹായി.",
		KeyHowCanHelp:       "ഇന്ന് ഞാൻ നിങ്ങളെ എങ്ങനെ സഹായിക്കും?",
		KeyMainProblem:      "പ്രധാന പ്രശ്നം എന്താണ്?",
		KeyWhenStarted:      "ഇത് എപ്പോൾ ആരംഭിച്ചു?",
		KeySeverityQuestion: "1-10 സ്കെയിലിൽ ഇത് എത്ര ഗുരുതരമാണ്?",
		KeyAnyFever:         "പനി ഉണ്ടോ?",
		KeyAnyPain:          "വേദന അനുഭവപ്പെടുന്നുണ്ടോ?",
		KeyBreathingOK:      "ശ്വാസോച്ഛ്വാസം സാധാരണമാണോ?",
		KeyRestAdvice:       "ദയവായി മതിയായ വിശ്രമം എടുക്കുക",
		KeyHydration:        "ധാരാളം വെള്ളം കുടിക്കുക",
		KeySeeDoctor:        "ദയവായി ഡോക്ടറെ സമീപിക്കുക",
		KeyEmergencyCall:    "ഇത് അടിയന്തരമാണ്. ഉടൻ 108 ലേക്ക് വിളിക്കുക",
	},
}
