package usecase

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/healthmate-org/healthmate-api/schema"
)

func chatMsg(sessionID string, role schema.Role, content string, at time.Time) schema.ChatMessage {
	return schema.ChatMessage{
		UserID:    "user123",
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: at,
		CreatedAt: at,
	}
}

func TestGroupSessions(t *testing.T) {
	base := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)
	messages := []schema.ChatMessage{
		chatMsg("session_a", schema.RoleUser, "I have a headache", base),
		chatMsg("session_a", schema.RoleAssistant, "Sorry to hear that", base.Add(time.Minute)),
		chatMsg("session_b", schema.RoleUser, "What about fever?", base.Add(2*time.Minute)),
		chatMsg("session_a", schema.RoleUser, "It is getting worse", base.Add(3*time.Minute)),
	}

	groups := GroupSessions(messages)
	assert.Len(t, groups, 2)

	// session_a has the most recent message, it comes first
	assert.Equal(t, "session_a", groups[0].SessionID)
	assert.Equal(t, 3, groups[0].MessageCount)
	assert.Equal(t, base, groups[0].FirstMessage)
	assert.Equal(t, base.Add(3*time.Minute), groups[0].LastMessage)
	if assert.NotNil(t, groups[0].Preview) {
		assert.Equal(t, "I have a headache", *groups[0].Preview)
	}

	assert.Equal(t, "session_b", groups[1].SessionID)
	assert.Equal(t, 1, groups[1].MessageCount)
}

func TestGroupSessionsWithoutUserMessage(t *testing.T) {
	at := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)
	groups := GroupSessions([]schema.ChatMessage{
		chatMsg("session_a", schema.RoleAssistant, "Hello, how can I help?", at),
	})
	assert.Len(t, groups, 1)
	assert.Nil(t, groups[0].Preview)
}

func TestGroupSessionsCap(t *testing.T) {
	base := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)
	messages := make([]schema.ChatMessage, 0, 51)
	for i := 0; i < 51; i++ {
		id := fmt.Sprintf("session_%d", i)
		messages = append(messages, chatMsg(id, schema.RoleUser, "hi", base.Add(time.Duration(i)*time.Minute)))
	}

	groups := GroupSessions(messages)
	assert.Len(t, groups, 50)
	// the oldest session falls off
	assert.Equal(t, "session_50", groups[0].SessionID)
	assert.Equal(t, "session_1", groups[49].SessionID)
}

func TestFormatSessions(t *testing.T) {
	at := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)
	preview := "I have a headache"
	longPreview := strings.Repeat("a", 60)

	sessions := FormatSessions([]schema.SessionGroup{
		{SessionID: "session_a", FirstMessage: at, LastMessage: at, MessageCount: 2, Preview: &preview},
		{SessionID: "session_b", FirstMessage: at, LastMessage: at, MessageCount: 1},
		{SessionID: "session_c", FirstMessage: at, LastMessage: at, MessageCount: 4, Preview: &longPreview},
	})

	assert.Len(t, sessions, 3)
	assert.Equal(t, "I have a headache", sessions[0].Title)
	assert.Equal(t, "I have a headache", sessions[0].Preview)

	// assistant-only sessions get the placeholder texts
	assert.Equal(t, "New Chat", sessions[1].Title)
	assert.Equal(t, "AI Response", sessions[1].Preview)

	// titles over 50 characters get truncated, previews do not
	assert.Equal(t, strings.Repeat("a", 50)+"...", sessions[2].Title)
	assert.Equal(t, longPreview, sessions[2].Preview)
}

func TestFormatSessionsMultibyteTitles(t *testing.T) {
	at := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)
	// 40 characters but 120 bytes, must stay untruncated
	shortCJK := strings.Repeat("每", 40)
	longCJK := strings.Repeat("每", 60)
	emoji := "I have a headache 🤕 and a fever 🌡️ since yesterday evening, what should I do?"

	sessions := FormatSessions([]schema.SessionGroup{
		{SessionID: "session_a", FirstMessage: at, LastMessage: at, MessageCount: 1, Preview: &shortCJK},
		{SessionID: "session_b", FirstMessage: at, LastMessage: at, MessageCount: 1, Preview: &longCJK},
		{SessionID: "session_c", FirstMessage: at, LastMessage: at, MessageCount: 1, Preview: &emoji},
	})

	assert.Equal(t, shortCJK, sessions[0].Title)

	assert.Equal(t, strings.Repeat("每", 50)+"...", sessions[1].Title)
	assert.True(t, utf8.ValidString(sessions[1].Title))

	assert.Equal(t, string([]rune(emoji)[:50])+"...", sessions[2].Title)
	assert.True(t, utf8.ValidString(sessions[2].Title))
}
