package domain

import "time"

// Message is a single companion-chat turn. Immutable once created and
// owned by the conversation that appended it; nothing is persisted.
type Message struct {
	Id         MessageId `json:"id"`
	Content    string    `json:"content"`
	IsFromUser bool      `json:"is_from_user"`
	Timestamp  time.Time `json:"timestamp"`
}
