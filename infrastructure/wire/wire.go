// Package wire holds the JSON shapes shared by the HTTP client and the
// websocket event feed, with converters to the domain types.
package wire

import (
	"time"

	"chat-session/domain"
)

type User struct {
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarRef string `json:"avatar_ref,omitempty"`
}

type Member struct {
	User User   `json:"user"`
	Role string `json:"role"`
}

type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data,omitempty"` // base64 on the wire
}

type Message struct {
	ServerID   string      `json:"message_id"`
	ChannelURL string      `json:"channel_url"`
	Sender     User        `json:"sender"`
	Body       string      `json:"body"`
	Attachment *Attachment `json:"attachment,omitempty"`
	CreatedAt  int64       `json:"created_at"` // unix milliseconds
	UpdatedAt  int64       `json:"updated_at,omitempty"`
}

type Channel struct {
	URL          string   `json:"channel_url"`
	Name         string   `json:"name"`
	Members      []Member `json:"members,omitempty"`
	OperatorIDs  []string `json:"operator_ids,omitempty"`
	LastMessage  *Message `json:"last_message,omitempty"`
	LastActiveAt int64    `json:"last_active_at"`
}

func (u User) ToDomain() domain.User {
	return domain.User{UserID: u.UserID, Nickname: u.Nickname, AvatarRef: u.AvatarRef}
}

func (m Member) ToDomain() domain.Member {
	role := domain.RoleRegular
	if m.Role == string(domain.RoleOperator) {
		role = domain.RoleOperator
	}
	return domain.Member{User: m.User.ToDomain(), Role: role}
}

func (a *Attachment) ToDomain() *domain.Attachment {
	if a == nil {
		return nil
	}
	return &domain.Attachment{Name: a.Name, ContentType: a.ContentType, Data: a.Data}
}

func (m Message) ToDomain() domain.Message {
	return domain.Message{
		ServerID:   m.ServerID,
		ChannelURL: m.ChannelURL,
		Sender:     m.Sender.ToDomain(),
		Body:       m.Body,
		Attachment: m.Attachment.ToDomain(),
		CreatedAt:  FromMillis(m.CreatedAt),
		UpdatedAt:  FromMillis(m.UpdatedAt),
		State:      domain.StateSent,
	}
}

func (c Channel) ToDomain() domain.Channel {
	channel := domain.Channel{
		URL:          c.URL,
		Name:         c.Name,
		OperatorIDs:  c.OperatorIDs,
		LastActiveAt: FromMillis(c.LastActiveAt),
	}
	for _, member := range c.Members {
		channel.Members = append(channel.Members, member.ToDomain())
	}
	if c.LastMessage != nil {
		last := c.LastMessage.ToDomain()
		channel.LastMessage = &last
	}
	return channel
}

func FromAttachment(a *domain.Attachment) *Attachment {
	if a == nil {
		return nil
	}
	return &Attachment{Name: a.Name, ContentType: a.ContentType, Data: a.Data}
}

// FromMillis converts a wire timestamp; an absent (zero) field maps to
// the zero time, never to the 1970 epoch.
func FromMillis(millis int64) time.Time {
	if millis == 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis).UTC()
}
