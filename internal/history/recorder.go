package history

import (
	"context"

	"github.com/vitavoice/platform/internal/shared/metrics"
	"github.com/vitavoice/platform/internal/shared/types"
	"github.com/vitavoice/platform/internal/triage"
	"go.uber.org/zap"
)

// Writer stores history entries.
type Writer interface {
	Create(ctx context.Context, e *Entry) error
}

// Recorder turns diagnostic results into history entries. It satisfies
// triage.ResultRecorder.
type Recorder struct {
	store  Writer
	logger *zap.Logger
}

var _ triage.ResultRecorder = (*Recorder)(nil)

// NewRecorder creates a recorder writing to store
func NewRecorder(store Writer, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{store: store, logger: logger}
}

// Record stores a symptom check or emergency result.
func (r *Recorder) Record(ctx context.Context, patientID types.ID, result triage.DiagnosticResult) error {
	entry, err := NewEntry(patientID, result)
	if err != nil {
		metrics.RecordHistoryWrite(false)
		return err
	}
	return r.write(ctx, entry)
}

// RecordConsultation stores the result that closed an assistant conversation.
// Emergencies keep their emergency type.
func (r *Recorder) RecordConsultation(ctx context.Context, patientID types.ID, result triage.DiagnosticResult) error {
	entry, err := NewEntry(patientID, result)
	if err != nil {
		metrics.RecordHistoryWrite(false)
		return err
	}
	if !entry.IsEmergency {
		entry.Type = EntryConsultation
	}
	return r.write(ctx, entry)
}

func (r *Recorder) write(ctx context.Context, entry *Entry) error {
	if err := r.store.Create(ctx, entry); err != nil {
		metrics.RecordHistoryWrite(false)
		return err
	}
	metrics.RecordHistoryWrite(true)
	r.logger.Debug("history entry recorded",
		zap.Stringer("entry_id", entry.ID),
		zap.String("type", string(entry.Type)),
		zap.String("category", string(entry.Category)),
	)
	return nil
}
