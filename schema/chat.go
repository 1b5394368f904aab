package schema

import (
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role of a chat message author
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one row of the per-user chat log. Messages belonging to the
// same conversation share a SessionID.
type ChatMessage struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	SessionID string             `json:"sessionId" bson:"sessionId"`
	Role      Role               `json:"role" bson:"role"`
	Content   string             `json:"content" bson:"content"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SessionGroup is the raw per-session reduction of the chat log: boundary
// instants, row count and the first user-authored content (nil when the
// session has none).
type SessionGroup struct {
	SessionID    string    `json:"sessionId" bson:"_id"`
	FirstMessage time.Time `json:"firstMessage" bson:"firstMessage"`
	LastMessage  time.Time `json:"lastMessage" bson:"lastMessage"`
	MessageCount int       `json:"messageCount" bson:"messageCount"`
	Preview      *string   `json:"preview" bson:"preview"`
}

// ChatSession is the display form of a SessionGroup. It is derived on read,
// never stored.
type ChatSession struct {
	SessionID    string    `json:"sessionId"`
	FirstMessage time.Time `json:"firstMessage"`
	LastMessage  time.Time `json:"lastMessage"`
	MessageCount int       `json:"messageCount"`
	Preview      string    `json:"preview"`
	Title        string    `json:"title"`
}

const sessionIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewSessionID generates a session_<epoch-ms>_<random9> identifier.
// Uniqueness is probabilistic, collisions are not guarded against.
func NewSessionID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = sessionIDAlphabet[rand.Intn(len(sessionIDAlphabet))]
	}
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}
