package directory

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-session/contract"
	"chat-session/domain"
	"chat-session/errors"
	"chat-session/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var creator = domain.User{UserID: "alice", Nickname: "Alice"}

func newTestDirectory(t *testing.T) (*Directory, *mocks.MockRemoteChannelService, *mocks.MockIChannelRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteChannelService(ctrl)
	cache := mocks.NewMockIChannelRepository(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return NewDirectory(log, remote, cache, creator, 30), remote, cache
}

func TestDirectory_ListCachesPage(t *testing.T) {
	req := require.New(t)
	dir, remote, cache := newTestDirectory(t)
	channels := []domain.Channel{
		{URL: "chan_b", LastActiveAt: time.Now().UTC()},
		{URL: "chan_a", LastActiveAt: time.Now().UTC().Add(-time.Hour)},
	}
	next := "cursor-2"

	remote.EXPECT().ListChannels(gomock.Any(), nil, 30).
		Return(contract.ChannelPage{Channels: channels, NextCursor: &next, HasMore: true}, nil)
	cache.EXPECT().StoreChannels(channels).Return(nil)

	page, err := dir.List(context.Background(), nil)
	req.NoError(err)
	req.Len(page.Channels, 2)
	req.True(page.HasMore)
	req.Equal(&next, page.NextCursor)
}

func TestDirectory_ListSurvivesCacheFailure(t *testing.T) {
	req := require.New(t)
	dir, remote, cache := newTestDirectory(t)

	remote.EXPECT().ListChannels(gomock.Any(), nil, 30).
		Return(contract.ChannelPage{Channels: []domain.Channel{{URL: "chan_a"}}}, nil)
	cache.EXPECT().StoreChannels(gomock.Any()).Return(errors.New(errors.CodeUnknown, "disk full"))

	page, err := dir.List(context.Background(), nil)
	req.NoError(err)
	req.Len(page.Channels, 1)
}

func TestDirectory_CreateRejectsCreatorOnlyMemberList(t *testing.T) {
	req := require.New(t)
	dir, _, _ := newTestDirectory(t)

	// No remote expectation: validation fails before any round trip
	_, err := dir.Create(context.Background(), "lab", []string{"alice"})
	req.True(errors.HasCode(err, errors.CodeValidation))

	_, err = dir.Create(context.Background(), "", []string{"bob"})
	req.True(errors.HasCode(err, errors.CodeValidation))
}

func TestDirectory_CreateIncludesCreator(t *testing.T) {
	req := require.New(t)
	dir, remote, cache := newTestDirectory(t)
	created := domain.Channel{URL: "chan_new", Name: "lab"}

	remote.EXPECT().CreateChannel(gomock.Any(), "lab", []string{"bob", "alice"}, []string{"alice"}).
		Return(created, nil)
	cache.EXPECT().StoreChannels([]domain.Channel{created}).Return(nil)

	channel, err := dir.Create(context.Background(), "lab", []string{"bob"})
	req.NoError(err)
	req.Equal("chan_new", channel.URL)
}

func TestDirectory_DeleteIsIdempotent(t *testing.T) {
	req := require.New(t)
	dir, remote, cache := newTestDirectory(t)

	remote.EXPECT().DeleteChannel(gomock.Any(), "chan_gone").
		Return(errors.NotFound("no such channel"))
	cache.EXPECT().DeleteChannel("chan_gone").Return(nil)

	// Delete-of-deleted matches intent, so it is success
	req.NoError(dir.Delete(context.Background(), "chan_gone"))
}

func TestDirectory_DeleteSurfacesTransportFailure(t *testing.T) {
	req := require.New(t)
	dir, remote, _ := newTestDirectory(t)

	remote.EXPECT().DeleteChannel(gomock.Any(), "chan_a").
		Return(errors.Transport("connection reset", nil))

	err := dir.Delete(context.Background(), "chan_a")
	req.True(errors.HasCode(err, errors.CodeTransport))
}
