// Package assistant runs the multi-turn health conversation: it screens every
// message for emergencies, gathers symptoms through follow-up questions and
// closes with a triage assessment. A generative model can phrase the replies;
// the rule-based dialogue is always available as a fallback.
package assistant

import (
	"time"

	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/shared/types"
	"github.com/vitavoice/platform/internal/triage"
)

// Stage is the phase of a conversation.
type Stage string

const (
	StageInitial   Stage = "initial"
	StageGathering Stage = "gathering"
	StageAnalyzing Stage = "analyzing"
	StageComplete  Stage = "complete"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Source tells which path produced a reply.
type Source string

const (
	SourceRules     Source = "rules"
	SourceGenerator Source = "generator"
	SourceEmergency Source = "emergency"
)

// Turn is one message in the conversation history.
type Turn struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Conversation is the state kept between messages of one session.
type Conversation struct {
	ID        types.ID  `json:"id"`
	PatientID types.ID  `json:"patient_id,omitempty"`
	Language  i18n.Code `json:"language"`
	Stage     Stage     `json:"stage"`

	CurrentSymptoms []triage.Symptom `json:"current_symptoms"`

	// QuestionsAsked holds translation keys of follow-up questions, in order.
	QuestionsAsked []string          `json:"questions_asked"`
	Answers        map[string]string `json:"answers"`

	EmergencyDetected bool                     `json:"emergency_detected"`
	History           []Turn                   `json:"history"`
	Patient           *triage.PatientInfo      `json:"patient,omitempty"`
	Result            *triage.DiagnosticResult `json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// pendingQuestion returns the last follow-up question if it has not been
// answered yet.
func (c *Conversation) pendingQuestion() string {
	if len(c.QuestionsAsked) == 0 {
		return ""
	}
	key := c.QuestionsAsked[len(c.QuestionsAsked)-1]
	if _, answered := c.Answers[key]; answered {
		return ""
	}
	return key
}

// Reply is the assistant's answer to one message.
type Reply struct {
	ConversationID   types.ID                 `json:"conversation_id"`
	Text             string                   `json:"text"`
	Confidence       float64                  `json:"confidence"`
	Suggestions      []string                 `json:"suggestions,omitempty"`
	DetectedSymptoms []string                 `json:"detected_symptoms,omitempty"`
	Source           Source                   `json:"source"`
	Stage            Stage                    `json:"stage"`
	Emergency        *triage.Protocol         `json:"emergency,omitempty"`
	Result           *triage.DiagnosticResult `json:"result,omitempty"`
}
