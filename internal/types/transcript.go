// Package types provides type definitions for structured data used throughout the onboarding engine.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Author identifies who produced a transcript entry.
type Author string

// Author constants for transcript entries
const (
	// AuthorAssistant marks messages produced by the dialogue engine
	AuthorAssistant Author = "assistant"
	// AuthorUser marks messages produced by the candidate
	AuthorUser Author = "user"
)

// Message is a single transcript entry. Entries are append-only: once
// recorded they are never reordered or deleted.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage creates a transcript entry with a generated ID.
func NewMessage(author Author, text string, at time.Time) Message {
	return Message{
		ID:        uuid.New(),
		Author:    author,
		Text:      text,
		CreatedAt: at,
	}
}

// Transcript is the ordered, append-only message log for a dialogue session.
type Transcript struct {
	entries []Message
}

// Append adds an entry to the end of the transcript.
func (t *Transcript) Append(m Message) {
	t.entries = append(t.entries, m)
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the transcript entries in append order.
// The copy keeps callers from mutating the log.
func (t *Transcript) Entries() []Message {
	out := make([]Message, len(t.entries))
	copy(out, t.entries)
	return out
}

// Last returns the most recent entry, or false if the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.entries) == 0 {
		return Message{}, false
	}
	return t.entries[len(t.entries)-1], true
}
