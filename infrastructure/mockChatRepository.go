package infrastructure

import (
	"context"

	"github.com/healthmate-org/healthmate-api/schema"
	"github.com/healthmate-org/healthmate-api/usecase"
)

// MockChatRepository use for unit tests
type MockChatRepository struct {
	Messages []schema.ChatMessage
	Groups   []schema.SessionGroup

	DeletedCount int64
	Err          error

	Inserted        []schema.ChatMessage
	LastDeleteScope string
}

func NewMockChatRepository() *MockChatRepository {
	return &MockChatRepository{}
}

func (m *MockChatRepository) InsertMessages(ctx context.Context, traceID string, messages []schema.ChatMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.Inserted = append(m.Inserted, messages...)
	return nil
}

func (m *MockChatRepository) GetMessages(ctx context.Context, traceID string, userID string, sessionID string, limit int64) ([]schema.ChatMessage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if sessionID == "" {
		return m.Messages, nil
	}
	scoped := []schema.ChatMessage{}
	for _, msg := range m.Messages {
		if msg.SessionID == sessionID {
			scoped = append(scoped, msg)
		}
	}
	return scoped, nil
}

func (m *MockChatRepository) DeleteMessages(ctx context.Context, traceID string, userID string, sessionID string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.LastDeleteScope = sessionID
	return m.DeletedCount, nil
}

// GetSessionGroups returns the canned groups when set, otherwise reduces
// Messages the way the aggregation pipeline does
func (m *MockChatRepository) GetSessionGroups(ctx context.Context, traceID string, userID string) ([]schema.SessionGroup, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Groups != nil {
		return m.Groups, nil
	}
	return usecase.GroupSessions(m.Messages), nil
}

// MockSymptomRepository use for unit tests
type MockSymptomRepository struct {
	Analyses []schema.SymptomAnalysis
	Err      error

	Inserted []*schema.SymptomAnalysis
}

func NewMockSymptomRepository() *MockSymptomRepository {
	return &MockSymptomRepository{}
}

func (m *MockSymptomRepository) InsertAnalysis(ctx context.Context, traceID string, analysis *schema.SymptomAnalysis) error {
	if m.Err != nil {
		return m.Err
	}
	m.Inserted = append(m.Inserted, analysis)
	return nil
}

func (m *MockSymptomRepository) GetAnalyses(ctx context.Context, traceID string, userID string, limit int64) ([]schema.SymptomAnalysis, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Analyses, nil
}
