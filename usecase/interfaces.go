package usecase

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/healthmate-org/healthmate-api/schema"
)

// Sentinel errors mapped by the api layer to stable outward signals
var (
	// ErrInvalidInput a required field is missing or malformed
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound the delete/update target does not match owner and id
	ErrNotFound = errors.New("record not found")
	// ErrUpstream the generative-text collaborator failed
	ErrUpstream = errors.New("upstream failure")
)

// Params narrows a per-user listing: records older than Start are skipped
// when Start is set, Limit caps the result
type Params struct {
	Start time.Time
	Limit int64
}

// HealthDataRepository is the storage collaborator for readings, medications
// and medication logs. Every filter is scoped by userID.
type HealthDataRepository interface {
	InsertBloodPressure(ctx context.Context, traceID string, reading *schema.BloodPressureReading) error
	InsertBloodSugar(ctx context.Context, traceID string, reading *schema.BloodSugarReading) error
	InsertWeight(ctx context.Context, traceID string, reading *schema.WeightReading) error
	InsertMedication(ctx context.Context, traceID string, medication *schema.Medication) error
	InsertMedicationLog(ctx context.Context, traceID string, log *schema.MedicationLog) error
	GetBloodPressure(ctx context.Context, traceID string, userID string, params Params) ([]schema.BloodPressureReading, error)
	GetBloodSugar(ctx context.Context, traceID string, userID string, params Params) ([]schema.BloodSugarReading, error)
	GetWeight(ctx context.Context, traceID string, userID string, params Params) ([]schema.WeightReading, error)
	GetMedications(ctx context.Context, traceID string, userID string) ([]schema.Medication, error)
	GetMedicationLogs(ctx context.Context, traceID string, userID string, params Params) ([]schema.MedicationLog, error)
	DeleteRecord(ctx context.Context, traceID string, recordType schema.RecordType, userID string, recordID string) (int64, error)
}

// ChatRepository is the storage collaborator for the chat log
type ChatRepository interface {
	InsertMessages(ctx context.Context, traceID string, messages []schema.ChatMessage) error
	GetMessages(ctx context.Context, traceID string, userID string, sessionID string, limit int64) ([]schema.ChatMessage, error)
	DeleteMessages(ctx context.Context, traceID string, userID string, sessionID string) (int64, error)
	GetSessionGroups(ctx context.Context, traceID string, userID string) ([]schema.SessionGroup, error)
}

// SymptomRepository is the storage collaborator for symptom analyses
type SymptomRepository interface {
	InsertAnalysis(ctx context.Context, traceID string, analysis *schema.SymptomAnalysis) error
	GetAnalyses(ctx context.Context, traceID string, userID string, limit int64) ([]schema.SymptomAnalysis, error)
}

// GenerativeService is the generative-text collaborator. Generate returns
// the user-visible completion for a prompt, it may fail with an opaque error.
type GenerativeService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DatabaseAdapter lifecycle view of the storage client, used by the status
// route and main
type DatabaseAdapter interface {
	Start(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Uploader pushes an export file to the blob store
type Uploader interface {
	Upload(ctx context.Context, filename string, buffer *bytes.Buffer) error
}
