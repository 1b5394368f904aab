package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/healthmate-org/healthmate-api/schema"
)

const defaultHistoryLimit = 50

type (
	// ChatUseCase orchestrates one chat turn: replay stored history into the
	// prompt, call the generative service and persist both sides of the
	// exchange.
	ChatUseCase struct {
		logger     *logrus.Logger
		repo       ChatRepository
		generative GenerativeService
	}

	// ChatReply returned to the caller after a chat turn
	ChatReply struct {
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
		SessionID string    `json:"sessionId"`
	}
)

func NewChatUseCase(logger *logrus.Logger, repo ChatRepository, generative GenerativeService) *ChatUseCase {
	return &ChatUseCase{
		logger:     logger,
		repo:       repo,
		generative: generative,
	}
}

// SendMessage runs one chat turn. A missing session id starts a new session.
//
// The user and assistant rows are only written once the completion succeeded,
// there is no compensating delete if the second insert fails.
func (uc *ChatUseCase) SendMessage(ctx context.Context, traceID string, userID string, message string, sessionID string) (*ChatReply, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if sessionID == "" {
		sessionID = schema.NewSessionID()
	}

	history, err := uc.repo.GetMessages(ctx, traceID, userID, sessionID, defaultHistoryLimit)
	if err != nil {
		return nil, err
	}

	prompt := BuildChatPrompt(history, message)
	reply, err := uc.generative.Generate(ctx, prompt)
	if err != nil {
		uc.logger.Printf("{%s} generative service failed: %v", traceID, err)
		return nil, fmt.Errorf("%w: %s", ErrUpstream, err)
	}

	now := time.Now().UTC()
	messages := []schema.ChatMessage{
		{
			UserID:    userID,
			SessionID: sessionID,
			Role:      schema.RoleUser,
			Content:   message,
			Timestamp: now,
			CreatedAt: now,
		},
		{
			UserID:    userID,
			SessionID: sessionID,
			Role:      schema.RoleAssistant,
			Content:   reply,
			Timestamp: now,
			CreatedAt: now,
		},
	}
	if err := uc.repo.InsertMessages(ctx, traceID, messages); err != nil {
		return nil, err
	}

	return &ChatReply{
		Message:   reply,
		Timestamp: now,
		SessionID: sessionID,
	}, nil
}

// GetHistory returns the chat log in chronological order, optionally scoped
// to one session
func (uc *ChatUseCase) GetHistory(ctx context.Context, traceID string, userID string, sessionID string, limit int64) ([]schema.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return uc.repo.GetMessages(ctx, traceID, userID, sessionID, limit)
}

// DeleteHistory removes one session, or the whole chat log when sessionID is
// empty. Returns the number of deleted rows.
func (uc *ChatUseCase) DeleteHistory(ctx context.Context, traceID string, userID string, sessionID string) (int64, error) {
	return uc.repo.DeleteMessages(ctx, traceID, userID, sessionID)
}

// ListSessions groups the chat log into conversation sessions, most recent
// first, capped to 50
func (uc *ChatUseCase) ListSessions(ctx context.Context, traceID string, userID string) ([]schema.ChatSession, error) {
	groups, err := uc.repo.GetSessionGroups(ctx, traceID, userID)
	if err != nil {
		return nil, err
	}
	return FormatSessions(groups), nil
}
