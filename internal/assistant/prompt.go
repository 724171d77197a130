package assistant

import (
	"fmt"
	"strings"

	"github.com/vitavoice/platform/internal/i18n"
)

// systemPrompt instructs the generator for one conversation.
func systemPrompt(conv *Conversation) string {
	language := "English"
	if info, ok := i18n.Lookup(conv.Language); ok {
		language = info.Name
	}

	var b strings.Builder
	b.WriteString("You are VitaVoice, a caring health assistant for people in rural India.\n\n")
	b.WriteString("RULES:\n")
	fmt.Fprintf(&b, "1. Reply only in %s.\n", language)
	b.WriteString("2. Use short, simple sentences that anyone can follow.\n")
	b.WriteString("3. Ask one question at a time.\n")
	b.WriteString("4. Never give a diagnosis. You may mention possible causes.\n")
	b.WriteString("5. Recommend seeing a doctor whenever symptoms sound serious.\n")
	b.WriteString("6. Be warm and reassuring.\n")
	b.WriteString("7. If anything sounds like an emergency, say \"This is an emergency. Call 108 now!\" first.\n\n")

	b.WriteString("PATIENT:\n")
	if p := conv.Patient; p != nil {
		fmt.Fprintf(&b, "- %d years old, %s\n", p.Age, p.Gender)
		fmt.Fprintf(&b, "- Chronic conditions: %s\n", listOrNone(p.ChronicConditions))
		fmt.Fprintf(&b, "- Allergies: %s\n", listOrNone(p.Allergies))
		fmt.Fprintf(&b, "- Current medications: %s\n", listOrNone(p.CurrentMedications))
		if p.IsPregnant {
			b.WriteString("- PREGNANT: be extra careful with any advice about medicine\n")
		}
	} else {
		b.WriteString("- No details given\n")
	}

	if len(conv.CurrentSymptoms) > 0 {
		names := make([]string, len(conv.CurrentSymptoms))
		for i, s := range conv.CurrentSymptoms {
			names[i] = s.Name
		}
		fmt.Fprintf(&b, "- Symptoms mentioned so far: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, "\nCONVERSATION STAGE: %s\n\n", conv.Stage)
	b.WriteString("Find out the main problem, then ask about severity, duration and related symptoms. ")
	b.WriteString("Give simple first guidance and say whether home care, a visit to the Primary Health Center ")
	b.WriteString("or emergency care is right. Speak like a trusted community health worker.")

	return b.String()
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
