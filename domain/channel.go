package domain

import "time"

// Channel is a group conversation as listed by the directory.
// URL is the unique backend identifier.
type Channel struct {
	URL          string
	Name         string
	Members      []Member
	OperatorIDs  []string
	LastMessage  *Message
	LastActiveAt time.Time
}

// Role returns the cached role of userID in this channel,
// RoleRegular when the user is not a member at all.
func (c Channel) RoleOf(userID string) Role {
	for _, id := range c.OperatorIDs {
		if id == userID {
			return RoleOperator
		}
	}
	return RoleRegular
}

// BanRecord marks a user as banned from one channel.
// Expiry is not enforced locally; stale records are tolerated
// until the backend reports the unban.
type BanRecord struct {
	User       User
	ChannelURL string
	ExpiresAt  time.Time
}
