package usecase

import (
	"sort"
	"unicode/utf8"

	"github.com/healthmate-org/healthmate-api/schema"
)

const (
	// maxSessions caps the session list to the most recent conversations
	maxSessions = 50
	// titleMaxLen is where the session title gets truncated
	titleMaxLen = 50

	emptySessionTitle   = "New Chat"
	emptyPreviewDisplay = "AI Response"
)

// GroupSessions reduces a flat chat log into per-session groups: boundary
// createdAt instants, row count and the content of the first user-authored
// row (nil when the session has none). Groups are ordered by last message
// descending and capped to the 50 most recent.
//
// This is the in-memory counterpart of the aggregation the chat repository
// runs, with identical semantics.
func GroupSessions(messages []schema.ChatMessage) []schema.SessionGroup {
	byID := make(map[string]*schema.SessionGroup)
	order := make([]string, 0)
	for i := range messages {
		msg := &messages[i]
		group, ok := byID[msg.SessionID]
		if !ok {
			group = &schema.SessionGroup{
				SessionID:    msg.SessionID,
				FirstMessage: msg.CreatedAt,
				LastMessage:  msg.CreatedAt,
			}
			byID[msg.SessionID] = group
			order = append(order, msg.SessionID)
		}
		group.MessageCount++
		if msg.CreatedAt.Before(group.FirstMessage) {
			group.FirstMessage = msg.CreatedAt
		}
		if msg.CreatedAt.After(group.LastMessage) {
			group.LastMessage = msg.CreatedAt
		}
		if group.Preview == nil && msg.Role == schema.RoleUser {
			content := msg.Content
			group.Preview = &content
		}
	}

	groups := make([]schema.SessionGroup, 0, len(byID))
	for _, id := range order {
		groups = append(groups, *byID[id])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].LastMessage.After(groups[j].LastMessage)
	})
	if len(groups) > maxSessions {
		groups = groups[:maxSessions]
	}
	return groups
}

// FormatSessions turns raw groups into their display form. Sessions without
// any user message are titled "New Chat" and previewed as "AI Response".
func FormatSessions(groups []schema.SessionGroup) []schema.ChatSession {
	sessions := make([]schema.ChatSession, len(groups))
	for i, group := range groups {
		preview := emptyPreviewDisplay
		title := emptySessionTitle
		if group.Preview != nil {
			preview = *group.Preview
			title = truncateTitle(*group.Preview)
		}
		sessions[i] = schema.ChatSession{
			SessionID:    group.SessionID,
			FirstMessage: group.FirstMessage,
			LastMessage:  group.LastMessage,
			MessageCount: group.MessageCount,
			Preview:      preview,
			Title:        title,
		}
	}
	return sessions
}

// truncateTitle cuts on characters, not bytes, previews carry emojis and CJK
func truncateTitle(preview string) string {
	if utf8.RuneCountInString(preview) > titleMaxLen {
		return string([]rune(preview)[:titleMaxLen]) + "..."
	}
	return preview
}
