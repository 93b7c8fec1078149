package stream

import (
	"encoding/json"
	"fmt"

	"chat-session/domain"
	"chat-session/domain/event"
	"chat-session/infrastructure/wire"
)

// Frame types pushed by the backend.
const (
	frameMessageReceived   = "message_received"
	frameMessageUpdated    = "message_updated"
	frameMessageDeleted    = "message_deleted"
	frameMembershipChanged = "membership_changed"
)

type envelope struct {
	Type       string           `json:"type"`
	ChannelURL string           `json:"channel_url"`
	Message    *wire.Message    `json:"message,omitempty"`
	ServerID   string           `json:"message_id,omitempty"`
	Delta      *membershipDelta `json:"delta,omitempty"`
}

type membershipDelta struct {
	Joined    []wire.Member `json:"joined,omitempty"`
	Left      []wire.User   `json:"left,omitempty"`
	Banned    []banEntry    `json:"banned,omitempty"`
	Unbanned  []wire.User   `json:"unbanned,omitempty"`
	Operators []wire.Member `json:"operators,omitempty"`
}

type banEntry struct {
	User      wire.User `json:"user"`
	ExpiresAt int64     `json:"expires_at,omitempty"` // unix milliseconds
}

func decode(data []byte) (event.RemoteEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding event envelope: %w", err)
	}
	if env.ChannelURL == "" {
		return nil, fmt.Errorf("event frame without channel url")
	}

	switch env.Type {
	case frameMessageReceived, frameMessageUpdated:
		if env.Message == nil {
			return nil, fmt.Errorf("%s frame without message", env.Type)
		}
		msg := env.Message.ToDomain()
		if env.Type == frameMessageReceived {
			return event.MessageReceived{Channel: env.ChannelURL, Message: msg}, nil
		}
		return event.MessageUpdated{Channel: env.ChannelURL, Message: msg}, nil
	case frameMessageDeleted:
		if env.ServerID == "" {
			return nil, fmt.Errorf("message_deleted frame without message id")
		}
		return event.MessageDeleted{Channel: env.ChannelURL, ServerID: env.ServerID}, nil
	case frameMembershipChanged:
		if env.Delta == nil {
			return nil, fmt.Errorf("membership_changed frame without delta")
		}
		return event.MembershipChanged{
			Channel: env.ChannelURL,
			Delta:   env.Delta.toDomain(env.ChannelURL),
		}, nil
	default:
		return nil, fmt.Errorf("unknown event frame type %q", env.Type)
	}
}

func (d membershipDelta) toDomain(channelURL string) event.RosterDelta {
	var delta event.RosterDelta
	for _, member := range d.Joined {
		delta.Joined = append(delta.Joined, member.ToDomain())
	}
	for _, user := range d.Left {
		delta.Left = append(delta.Left, user.ToDomain())
	}
	for _, ban := range d.Banned {
		delta.Banned = append(delta.Banned, domain.BanRecord{
			User:       ban.User.ToDomain(),
			ChannelURL: channelURL,
			ExpiresAt:  wire.FromMillis(ban.ExpiresAt),
		})
	}
	for _, user := range d.Unbanned {
		delta.Unbanned = append(delta.Unbanned, user.ToDomain())
	}
	for _, member := range d.Operators {
		delta.Operators = append(delta.Operators, member.ToDomain())
	}
	return delta
}
