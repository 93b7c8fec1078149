//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"chat-session/domain"
	"chat-session/domain/event"
)

// ChannelPage is one page of the channel directory,
// most-recently-active first.
type ChannelPage struct {
	Channels   []domain.Channel
	NextCursor *string
	HasMore    bool
}

// HistoryPage is one page of channel history, oldest first.
type HistoryPage struct {
	Messages   []domain.Message
	NextCursor *string
	HasMore    bool
}

// RemoteChannelService is the capability contract of the messaging
// backend. The engine only consumes it; delivery, persistence and
// fan-out live behind it. Every call may fail with a transport error.
type RemoteChannelService interface {
	ListChannels(ctx context.Context, cursor *string, pageSize int) (ChannelPage, error)
	CreateChannel(ctx context.Context, name string, memberIDs, operatorIDs []string) (domain.Channel, error)
	DeleteChannel(ctx context.Context, url string) error

	JoinHistory(ctx context.Context, channelURL string, since time.Time, pageSize int) (HistoryPage, error)
	SendMessage(ctx context.Context, channelURL, body string, attachment *domain.Attachment) (domain.Message, error)
	EditMessage(ctx context.Context, channelURL, serverID, body string) (domain.Message, error)
	DeleteMessage(ctx context.Context, channelURL, serverID string) error

	InviteUsers(ctx context.Context, channelURL string, userIDs []string) error
	BanUser(ctx context.Context, channelURL, userID string, duration time.Duration, reason string) error
	UnbanUser(ctx context.Context, channelURL, userID string) error
	SetOperatorRole(ctx context.Context, channelURL, userID string, grant bool) error
	ListBannedUsers(ctx context.Context, channelURL string) ([]domain.User, error)
}

// EventStream delivers remote events for joined channels.
// The cancel func stops delivery immediately; no event is handed to the
// subscriber after it returns.
type EventStream interface {
	Subscribe(channelURL string) (<-chan event.RemoteEvent, func())
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// lifecycle events, avoiding manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
