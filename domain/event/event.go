// Package event defines the remote events pushed by the backend for
// channels the session has joined. Events describe what already happened
// server-side; consumers merge them into local state, they never veto them.
package event

import (
	"chat-session/domain"
)

// RemoteEvent is anything delivered on a channel's event stream.
type RemoteEvent interface {
	ChannelURL() string
}

// MessageReceived carries a message posted by any participant,
// including the echo of this session's own sends.
type MessageReceived struct {
	Channel string
	Message domain.Message
}

func (e MessageReceived) ChannelURL() string { return e.Channel }

// MessageUpdated carries the new body of an already-confirmed message.
type MessageUpdated struct {
	Channel string
	Message domain.Message
}

func (e MessageUpdated) ChannelURL() string { return e.Channel }

// MessageDeleted identifies a confirmed message removed server-side.
type MessageDeleted struct {
	Channel  string
	ServerID string
}

func (e MessageDeleted) ChannelURL() string { return e.Channel }

// MembershipChanged carries a roster delta: joins, leaves, role moves,
// and ban-list changes.
type MembershipChanged struct {
	Channel string
	Delta   RosterDelta
}

func (e MembershipChanged) ChannelURL() string { return e.Channel }

// RosterDelta lists membership mutations in one push.
// A user may appear in at most one of the slices.
type RosterDelta struct {
	Joined    []domain.Member
	Left      []domain.User
	Banned    []domain.BanRecord
	Unbanned  []domain.User
	Operators []domain.Member // members whose role changed, new role included
}
