package usecase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthmate-org/healthmate-api/schema"
)

func TestBuildChatPrompt(t *testing.T) {
	history := []schema.ChatMessage{
		{Role: schema.RoleUser, Content: "I have a headache"},
		{Role: schema.RoleAssistant, Content: "How long has it lasted?"},
	}
	prompt := BuildChatPrompt(history, "Two days now")

	assert.True(t, strings.HasPrefix(prompt, "You are a friendly, engaging AI medical assistant."))
	assert.Contains(t, prompt, "Previous conversation context:\nuser: I have a headache\nassistant: How long has it lasted?")
	assert.True(t, strings.HasSuffix(prompt, "\n\nUser: Two days now\nAssistant:"))
}

func TestBuildChatPromptTruncatesHistory(t *testing.T) {
	history := make([]schema.ChatMessage, 0, 12)
	for i := 0; i < 12; i++ {
		history = append(history, schema.ChatMessage{Role: schema.RoleUser, Content: fmt.Sprintf("message %d", i)})
	}
	prompt := BuildChatPrompt(history, "latest")

	// only the last ten prior messages are replayed
	assert.NotContains(t, prompt, "message 0")
	assert.NotContains(t, prompt, "message 1")
	assert.Contains(t, prompt, "message 2")
	assert.Contains(t, prompt, "message 11")
}

func TestBuildChatPromptEmptyHistory(t *testing.T) {
	prompt := BuildChatPrompt(nil, "hello")
	assert.Contains(t, prompt, "Previous conversation context:\n\n\nUser: hello\nAssistant:")
}

func TestBuildSymptomPrompt(t *testing.T) {
	prompt := BuildSymptomPrompt([]string{"headache", "fever", "nausea"})

	assert.Contains(t, prompt, "The user has reported the following symptoms: headache, fever, nausea.")
	assert.Contains(t, prompt, "Quick Assessment")
	assert.Contains(t, prompt, "When to Seek Help")
	assert.Contains(t, prompt, "this is not a diagnosis")
}
