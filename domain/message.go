// Package domain contains core concepts of the messaging session.
// This file defines Message and its lifecycle states.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageState tracks a message through the optimistic-send lifecycle.
type MessageState string

const (
	// StatePending is a local send not yet confirmed by the backend.
	StatePending MessageState = "pending"
	// StateSent has a server-assigned ID and authoritative timestamp.
	StateSent MessageState = "sent"
	// StateFailed stays visible so the caller can retry or discard.
	StateFailed MessageState = "failed"
	// StateDeleted keeps the slot so duplicate delete events stay no-ops.
	StateDeleted MessageState = "deleted"
)

// Attachment references a binary payload sent alongside a message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is one entry of a channel ledger.
//
// Before confirmation it is addressed only by LocalID; once ServerID is
// assigned it never changes. Edits replace Body/UpdatedAt on the same
// ServerID, they never create a new entry.
type Message struct {
	LocalID    string // correlation token, empty for purely remote entries
	ServerID   string // empty until confirmed
	ChannelURL string
	Sender     User
	Body       string
	Attachment *Attachment
	CreatedAt  time.Time
	UpdatedAt  time.Time
	State      MessageState
}

// NewLocalID mints a correlation token for an optimistic operation.
func NewLocalID() string {
	return uuid.NewString()
}

// Confirmed reports whether the entry carries a server identity.
func (m Message) Confirmed() bool {
	return m.ServerID != ""
}
