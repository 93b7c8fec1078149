// Package domain contains core concepts of the messaging session.
// This file defines users and channel membership.
// No runtime, network, or UI logic should be added here.
package domain

// User is a stable identity known to the backend.
// UserID never changes; the nickname may be updated by its owner.
type User struct {
	UserID    string
	Nickname  string
	AvatarRef string // optional URI, empty when unset
}

// Role is the per-channel privilege level of a member.
type Role string

const (
	RoleRegular  Role = "regular"
	RoleOperator Role = "operator"
)

// Member binds a User to one channel with a channel-scoped role.
type Member struct {
	User User
	Role Role
}

func (m Member) IsOperator() bool {
	return m.Role == RoleOperator
}
