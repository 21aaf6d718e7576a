// Package conversation holds the transcript of one chat session.
package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Role tags who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. Messages are values; the state never
// hands out pointers into its history.
type Message struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// NewMessage stamps a message with the current time.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content, Time: time.Now()}
}

// State is the append-only transcript of a session. It is owned by a single
// engine and is not safe for concurrent use.
type State struct {
	id      string
	history []Message
}

// NewState creates an empty transcript with a fresh session ID.
func NewState() *State {
	return &State{id: uuid.NewString()}
}

// ID returns the session identifier.
func (s *State) ID() string {
	return s.id
}

// Append adds a message to the end of the transcript.
func (s *State) Append(msg Message) {
	s.history = append(s.history, msg)
}

// Snapshot returns a copy of the transcript in arrival order.
func (s *State) Snapshot() []Message {
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Len returns the number of messages recorded.
func (s *State) Len() int {
	return len(s.history)
}

// Turns returns the number of completed user/assistant exchanges.
func (s *State) Turns() int {
	return len(s.history) / 2
}
