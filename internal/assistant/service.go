package assistant

import (
	"context"
	"hash/fnv"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/knowledge"
	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/events"
	"github.com/vitavoice/platform/internal/shared/metrics"
	"github.com/vitavoice/platform/internal/shared/types"
	"github.com/vitavoice/platform/internal/triage"
	"go.uber.org/zap"
)

const (
	defaultSeverity  = 5
	defaultDuration  = "unknown"
	defaultComplaint = "general discomfort"
	defaultAge       = 30
	maxFollowUps     = 3
	maxAnswerLength  = 64
	lockStripes      = 64
)

// ConsultationRecorder stores the result that closes a conversation.
type ConsultationRecorder interface {
	RecordConsultation(ctx context.Context, patientID types.ID, result triage.DiagnosticResult) error
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithPublisher publishes conversation and triage events.
func WithPublisher(p events.Publisher) ServiceOption {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithRecorder stores closing results for known patients.
func WithRecorder(r ConsultationRecorder) ServiceOption {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// Service runs conversations. Messages for the same conversation are
// handled one at a time within a process.
type Service struct {
	engine     *triage.Engine
	detector   *triage.Detector
	kb         *knowledge.Base
	translator *i18n.Translator
	store      Store
	generator  Generator
	publisher  events.Publisher
	recorder   ConsultationRecorder
	logger     *zap.Logger
	now        func() time.Time

	locks [lockStripes]sync.Mutex
}

// NewService creates a conversation service. generator may be nil, in which
// case every reply comes from the rule-based dialogue.
func NewService(
	engine *triage.Engine,
	detector *triage.Detector,
	kb *knowledge.Base,
	translator *i18n.Translator,
	store Store,
	generator Generator,
	logger *zap.Logger,
	opts ...ServiceOption,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		engine:     engine,
		detector:   detector,
		kb:         kb,
		translator: translator,
		store:      store,
		generator:  generator,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a conversation in lang. patientID may be zero for anonymous
// use; patient may be nil.
func (s *Service) Start(ctx context.Context, patientID types.ID, lang i18n.Code, patient *triage.PatientInfo) (*Conversation, error) {
	if !lang.Supported() {
		lang = i18n.English
	}
	conv := s.newConversation(types.NewID(), patientID, lang, patient, s.now())
	if err := s.store.Save(ctx, conv); err != nil {
		return nil, err
	}
	s.logger.Info("conversation started", zap.Stringer("conversation_id", conv.ID), zap.String("language", string(lang)))
	return conv, nil
}

// Context returns the current state of a conversation.
func (s *Service) Context(ctx context.Context, id types.ID) (*Conversation, error) {
	return s.store.Get(ctx, id)
}

// Reset clears a conversation while keeping its ID, language and patient.
func (s *Service) Reset(ctx context.Context, id types.ID) (*Conversation, error) {
	unlock := s.lock(id)
	defer unlock()

	old, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	conv := s.newConversation(old.ID, old.PatientID, old.Language, old.Patient, s.now())
	conv.CreatedAt = old.CreatedAt
	if err := s.store.Save(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// End deletes a conversation.
func (s *Service) End(ctx context.Context, id types.ID) error {
	unlock := s.lock(id)
	defer unlock()
	return s.store.Delete(ctx, id)
}

// Chat handles one patient message. Emergencies are screened before
// anything else; generator failures fall back to the rule-based dialogue.
func (s *Service) Chat(ctx context.Context, id types.ID, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	unlock := s.lock(id)
	defer unlock()

	conv, err := s.store.Get(ctx, id)
	if err != nil {
		return Reply{}, err
	}

	now := s.now()
	conv.History = append(conv.History, Turn{Role: RoleUser, Text: message, At: now})
	detected := s.absorb(conv, message)

	var reply Reply
	check := s.detector.Detect(conv.CurrentSymptoms, message, conv.Language)
	switch {
	case check.IsEmergency:
		reply = s.emergencyReply(ctx, conv, message, check)
	case s.generator != nil:
		reply, err = s.generatedReply(ctx, conv)
		if err != nil {
			metrics.RecordGeneratorFailure(failureReason(err))
			s.logger.Warn("generator failed, using rule-based reply",
				zap.Stringer("conversation_id", conv.ID),
				zap.Error(err),
			)
			reply = s.ruleReply(ctx, conv)
		}
	default:
		reply = s.ruleReply(ctx, conv)
	}

	reply.ConversationID = conv.ID
	reply.Stage = conv.Stage
	if reply.DetectedSymptoms == nil {
		reply.DetectedSymptoms = detected
	}

	conv.History = append(conv.History, Turn{Role: RoleModel, Text: reply.Text, At: now})
	conv.UpdatedAt = now
	if err := s.store.Save(ctx, conv); err != nil {
		return Reply{}, err
	}

	metrics.RecordAssistantReply(string(reply.Source), string(conv.Language))
	return reply, nil
}

func (s *Service) newConversation(id, patientID types.ID, lang i18n.Code, patient *triage.PatientInfo, now time.Time) *Conversation {
	greeting := s.t(i18n.KeyGreeting, lang) + " " + s.t(i18n.KeyHowCanHelp, lang)
	return &Conversation{
		ID:              id,
		PatientID:       patientID,
		Language:        lang,
		Stage:           StageInitial,
		CurrentSymptoms: []triage.Symptom{},
		QuestionsAsked:  []string{},
		Answers:         make(map[string]string),
		History:         []Turn{{Role: RoleModel, Text: greeting, At: now}},
		Patient:         patient,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// absorb records the answer to a pending question and adds symptoms found
// in message. It returns the names of newly found symptoms.
func (s *Service) absorb(conv *Conversation, message string) []string {
	switch key := conv.pendingQuestion(); key {
	case "":
	case i18n.KeyWhenStarted:
		conv.Answers[key] = message
		duration := truncate(message, maxAnswerLength)
		for i := range conv.CurrentSymptoms {
			if conv.CurrentSymptoms[i].Duration == defaultDuration {
				conv.CurrentSymptoms[i].Duration = duration
			}
		}
	case i18n.KeySeverityQuestion:
		conv.Answers[key] = message
		if severity, ok := parseSeverity(message); ok {
			for i := range conv.CurrentSymptoms {
				conv.CurrentSymptoms[i].Severity = severity
			}
		}
	default:
		conv.Answers[key] = message
	}

	severity, duration := defaultSeverity, defaultDuration
	if n, ok := parseSeverity(conv.Answers[i18n.KeySeverityQuestion]); ok {
		severity = n
	}
	if answer, ok := conv.Answers[i18n.KeyWhenStarted]; ok {
		duration = truncate(answer, maxAnswerLength)
	}

	var found []string
	for _, id := range s.kb.Scan(message) {
		sym, ok := s.kb.Symptom(id)
		if !ok {
			continue
		}
		if slices.ContainsFunc(conv.CurrentSymptoms, func(c triage.Symptom) bool { return c.Name == sym.Name }) {
			continue
		}
		conv.CurrentSymptoms = append(conv.CurrentSymptoms, triage.Symptom{
			ID:       types.NewID(),
			Name:     sym.Name,
			Severity: severity,
			Duration: duration,
		})
		found = append(found, sym.Name)
	}
	return found
}

func (s *Service) emergencyReply(ctx context.Context, conv *Conversation, message string, check triage.EmergencyCheck) Reply {
	conv.EmergencyDetected = true
	result := s.engine.Analyze(s.assessment(conv, message))
	conv.Result = &result
	s.finish(ctx, conv, result)

	s.logger.Warn("emergency detected in conversation",
		zap.Stringer("conversation_id", conv.ID),
		zap.String("protocol", check.Protocol.Key),
		zap.Strings("keywords", check.MatchedKeywords),
	)

	return Reply{
		Text:        check.Protocol.WarningMessage,
		Confidence:  1.0,
		Suggestions: []string{s.t(i18n.KeyEmergencyCall, conv.Language)},
		Source:      SourceEmergency,
		Emergency:   check.Protocol,
		Result:      &result,
	}
}

func (s *Service) generatedReply(ctx context.Context, conv *Conversation) (Reply, error) {
	text, err := s.generator.Generate(ctx, GenerateRequest{
		SystemPrompt: systemPrompt(conv),
		History:      conv.History,
	})
	if err != nil {
		return Reply{}, err
	}
	if conv.Stage == StageInitial {
		conv.Stage = StageGathering
	}
	return Reply{Text: text, Confidence: 0.8, Source: SourceGenerator}, nil
}

func (s *Service) ruleReply(ctx context.Context, conv *Conversation) Reply {
	lang := conv.Language

	if conv.Stage == StageInitial {
		conv.Stage = StageGathering
		return Reply{
			Text:       s.t(i18n.KeyMainProblem, lang),
			Confidence: 0.6,
			Suggestions: []string{
				s.t(i18n.KeyWhenStarted, lang),
				s.t(i18n.KeySeverityQuestion, lang),
			},
			Source: SourceRules,
		}
	}

	if len(conv.QuestionsAsked) < maxFollowUps {
		key := s.nextQuestion(conv)
		conv.QuestionsAsked = append(conv.QuestionsAsked, key)
		conv.Stage = StageGathering
		return Reply{Text: s.t(key, lang), Confidence: 0.7, Source: SourceRules}
	}

	return s.conclude(ctx, conv)
}

func (s *Service) nextQuestion(conv *Conversation) string {
	switch {
	case !slices.Contains(conv.QuestionsAsked, i18n.KeyWhenStarted):
		return i18n.KeyWhenStarted
	case !slices.Contains(conv.QuestionsAsked, i18n.KeySeverityQuestion):
		return i18n.KeySeverityQuestion
	case s.hasFever(conv):
		return i18n.KeyAnyPain
	default:
		return i18n.KeyBreathingOK
	}
}

func (s *Service) hasFever(conv *Conversation) bool {
	var ids []knowledge.SymptomID
	for _, sym := range conv.CurrentSymptoms {
		ids = append(ids, s.kb.Resolve(sym.Name)...)
	}
	return s.kb.Expand(ids)[knowledge.SymFever]
}

// conclude analyses everything gathered so far and closes the conversation.
func (s *Service) conclude(ctx context.Context, conv *Conversation) Reply {
	lang := conv.Language
	conv.Stage = StageAnalyzing

	result := s.engine.Analyze(s.assessment(conv, ""))
	conv.Result = &result
	conv.Stage = StageComplete

	var b strings.Builder
	b.WriteString(s.t(i18n.KeySeeDoctor, lang))
	b.WriteString("\n\n")
	if len(result.PossibleConditions) > 0 {
		top := result.PossibleConditions[0]
		name := top.DiseaseName
		if localized, ok := s.kb.LocalizedName(string(top.DiseaseID), lang); ok && top.DiseaseID != "" {
			name = localized
		}
		b.WriteString(s.t(i18n.KeyPossibleCondition, lang) + ": " + name + "\n\n")
	}
	b.WriteString(strings.Join(result.Recommendation.Advice, "\n"))

	s.finish(ctx, conv, result)

	return Reply{
		Text:       b.String(),
		Confidence: 0.6,
		Source:     SourceRules,
		Result:     &result,
	}
}

func (s *Service) assessment(conv *Conversation, complaint string) triage.Assessment {
	patient := triage.PatientInfo{Age: defaultAge, Gender: triage.GenderOther}
	if conv.Patient != nil {
		patient = *conv.Patient
	}

	symptoms := slices.Clone(conv.CurrentSymptoms)
	if complaint == "" {
		complaint = defaultComplaint
		if len(symptoms) > 0 {
			complaint = symptoms[0].Name
		}
	}

	return triage.Assessment{
		Symptoms:      symptoms,
		PatientInfo:   patient,
		MainComplaint: complaint,
		Language:      conv.Language,
	}
}

// finish publishes events and stores the result for known patients. Failures
// are logged; the patient still gets their reply.
func (s *Service) finish(ctx context.Context, conv *Conversation, result triage.DiagnosticResult) {
	if s.publisher != nil {
		out := triage.ResultEvents(result)
		out = append(out, events.NewEvent(events.TypeConversationCompleted, "assistant", map[string]any{
			"conversation_id": conv.ID,
			"result_id":       result.ID,
			"stage":           conv.Stage,
			"emergency":       conv.EmergencyDetected,
			"turns":           len(conv.History),
			"language":        conv.Language,
		}))
		for _, event := range out {
			event = event.WithCorrelation(conv.ID.String())
			if !conv.PatientID.IsZero() {
				event = event.WithActor(conv.PatientID, auth.UserTypePatient)
			}
			if err := s.publisher.Publish(ctx, event); err != nil {
				s.logger.Warn("failed to publish event", zap.String("type", event.Type), zap.Error(err))
			}
		}
	}

	if s.recorder != nil && !conv.PatientID.IsZero() {
		if err := s.recorder.RecordConsultation(ctx, conv.PatientID, result); err != nil {
			s.logger.Error("failed to record consultation", zap.Stringer("conversation_id", conv.ID), zap.Error(err))
		}
	}
}

func (s *Service) t(key string, lang i18n.Code) string {
	return s.translator.Translate(key, lang)
}

func (s *Service) lock(id types.ID) func() {
	h := fnv.New32a()
	h.Write([]byte(id))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// parseSeverity reads the first number in text as a 1-10 score.
func parseSeverity(text string) (int, bool) {
	for _, field := range strings.FieldsFunc(text, func(r rune) bool { return r < '0' || r > '9' }) {
		n, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		if n >= 1 && n <= 10 {
			return n, true
		}
		return 0, false
	}
	return 0, false
}

func truncate(s string, limit int) string {
	runes := []rune(strings.TrimFunc(s, unicode.IsSpace))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit])
}
