package api

import (
	"context"
	"encoding/json"

	"github.com/healthmate-org/healthmate-api/schema"
	"github.com/healthmate-org/healthmate-api/usecase"
)

type HealthDataUseCase interface {
	CreateRecord(ctx context.Context, traceID string, userID string, recordType schema.RecordType, data json.RawMessage) (interface{}, error)
	GetRecords(ctx context.Context, traceID string, userID string, typeParam string, days int, limit int64) (map[string]interface{}, error)
	DeleteRecord(ctx context.Context, traceID string, userID string, recordType schema.RecordType, recordID string) error
	GetDashboard(ctx context.Context, traceID string, userID string) (*usecase.DashboardSummary, error)
}

type ChatUseCase interface {
	SendMessage(ctx context.Context, traceID string, userID string, message string, sessionID string) (*usecase.ChatReply, error)
	GetHistory(ctx context.Context, traceID string, userID string, sessionID string, limit int64) ([]schema.ChatMessage, error)
	DeleteHistory(ctx context.Context, traceID string, userID string, sessionID string) (int64, error)
	ListSessions(ctx context.Context, traceID string, userID string) ([]schema.ChatSession, error)
}

type SymptomUseCase interface {
	Analyze(ctx context.Context, traceID string, userID string, symptoms []string, additionalInfo string, severity schema.Severity) (*schema.SymptomAnalysis, error)
	History(ctx context.Context, traceID string, userID string, limit int64) ([]schema.SymptomAnalysis, error)
}

type ExporterUseCase interface {
	Export(userID string, traceID string)
}
