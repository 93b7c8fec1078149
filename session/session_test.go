package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-session/contract"
	"chat-session/domain"
	"chat-session/domain/event"
	"chat-session/errors"
	"chat-session/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testChannelURL = "sendbird_group_channel_42"

var (
	alice = domain.User{UserID: "alice", Nickname: "Alice"}
	bob   = domain.User{UserID: "bob", Nickname: "Bob"}
	clara = domain.User{UserID: "clara", Nickname: "Clara"}
)

func testChannel(operatorIDs ...string) domain.Channel {
	return domain.Channel{
		URL:  testChannelURL,
		Name: "lab",
		Members: []domain.Member{
			{User: alice, Role: roleFor("alice", operatorIDs)},
			{User: bob, Role: roleFor("bob", operatorIDs)},
		},
		OperatorIDs: operatorIDs,
	}
}

func roleFor(userID string, operatorIDs []string) domain.Role {
	for _, id := range operatorIDs {
		if id == userID {
			return domain.RoleOperator
		}
	}
	return domain.RoleRegular
}

func newTestSession(t *testing.T, current domain.User) (*ChannelSession, *mocks.MockRemoteChannelService, *mocks.MockEventStream) {
	t.Helper()
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteChannelService(ctrl)
	stream := mocks.NewMockEventStream(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	tracker := NewTracker(log, 100, time.Minute)
	return NewChannelSession(log, remote, stream, current, 20, tracker), remote, stream
}

func expectSubscribe(stream *mocks.MockEventStream) chan event.RemoteEvent {
	events := make(chan event.RemoteEvent)
	var feed <-chan event.RemoteEvent = events
	stream.EXPECT().Subscribe(testChannelURL).Return(feed, func() { close(events) })
	return events
}

func joinAs(t *testing.T, sess *ChannelSession, remote *mocks.MockRemoteChannelService,
	stream *mocks.MockEventStream, channel domain.Channel, history []domain.Message) {
	t.Helper()
	remote.EXPECT().JoinHistory(gomock.Any(), testChannelURL, gomock.Any(), 20).
		Return(contract.HistoryPage{Messages: history}, nil)
	expectSubscribe(stream)
	_, err := sess.Join(context.Background(), channel)
	require.NoError(t, err)
}

func TestSession_JoinLoadsHistoryAndRoster(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)
	at := time.Now().UTC()
	history := []domain.Message{
		{ServerID: "m1", Body: "first", CreatedAt: at},
		{ServerID: "m2", Body: "second", CreatedAt: at.Add(time.Second)},
	}

	remote.EXPECT().JoinHistory(gomock.Any(), testChannelURL, gomock.Any(), 20).
		Return(contract.HistoryPage{Messages: history}, nil)
	remote.EXPECT().ListBannedUsers(gomock.Any(), testChannelURL).
		Return([]domain.User{clara}, nil)
	expectSubscribe(stream)

	snapshot, err := sess.Join(context.Background(), testChannel("alice"))
	req.NoError(err)
	req.Len(snapshot, 2)
	req.Equal("m1", snapshot[0].ServerID)
	req.Equal(StateJoined, sess.State())
	req.Equal(domain.RoleOperator, sess.MyRole())
	req.Len(sess.Roster(), 2)

	banned := sess.BannedUsers()
	req.Len(banned, 1)
	req.Equal("clara", banned[0].User.UserID)
}

func TestSession_JoinFailureRevertsToUnjoined(t *testing.T) {
	req := require.New(t)
	sess, remote, _ := newTestSession(t, alice)

	remote.EXPECT().JoinHistory(gomock.Any(), testChannelURL, gomock.Any(), 20).
		Return(contract.HistoryPage{}, errors.Transport("boom", nil))

	// No Subscribe expectation: a failed join must leave nothing registered
	_, err := sess.Join(context.Background(), testChannel())
	req.Error(err)
	req.Equal(StateUnjoined, sess.State())
}

func TestSession_SendConfirmThenSelfEcho(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)
	joinAs(t, sess, remote, stream, testChannel(), nil)
	at := time.Now().UTC()

	remote.EXPECT().SendMessage(gomock.Any(), testChannelURL, "hi", nil).
		Return(domain.Message{ServerID: "m1", Body: "hi", CreatedAt: at}, nil)

	localID, err := sess.Send(context.Background(), "hi")
	req.NoError(err)

	// Optimistic entry is visible synchronously
	snapshot := sess.Snapshot()
	req.Len(snapshot, 1)
	req.Equal("hi", snapshot[0].Body)
	req.Equal(domain.StatePending, snapshot[0].State)

	req.Eventually(func() bool {
		rec, ok := sess.Operation(localID)
		return ok && rec.Status == OpSucceeded
	}, time.Second, 5*time.Millisecond)

	snapshot = sess.Snapshot()
	req.Len(snapshot, 1)
	req.Equal("m1", snapshot[0].ServerID)
	req.Equal(domain.StateSent, snapshot[0].State)

	// The self-echo arrives later and must not duplicate the entry
	sess.OnRemoteEvent(event.MessageReceived{
		Channel: testChannelURL,
		Message: domain.Message{ServerID: "m1", Sender: alice, Body: "hi", CreatedAt: at},
	})
	req.Len(sess.Snapshot(), 1)
}

func TestSession_SendFailureLeavesFailedEntry(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)
	joinAs(t, sess, remote, stream, testChannel(), nil)

	remote.EXPECT().SendMessage(gomock.Any(), testChannelURL, "doomed", nil).
		Return(domain.Message{}, errors.Transport("connection reset", nil))

	localID, err := sess.Send(context.Background(), "doomed")
	req.NoError(err)

	req.Eventually(func() bool {
		rec, ok := sess.Operation(localID)
		return ok && rec.Status == OpFailed
	}, time.Second, 5*time.Millisecond)

	snapshot := sess.Snapshot()
	req.Len(snapshot, 1)
	req.Equal(domain.StateFailed, snapshot[0].State)

	// The user can still discard it explicitly
	sess.DiscardFailed(localID)
	req.Empty(sess.Snapshot())
}

func TestSession_SendFileSniffsContentType(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)
	joinAs(t, sess, remote, stream, testChannel(), nil)

	var sent *domain.Attachment
	remote.EXPECT().SendMessage(gomock.Any(), testChannelURL, "notes.txt", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, body string, attachment *domain.Attachment) (domain.Message, error) {
			sent = attachment
			return domain.Message{ServerID: "m1", Body: body, CreatedAt: time.Now().UTC()}, nil
		})

	localID, err := sess.SendFile(context.Background(), "notes.txt", []byte("plain text payload"))
	req.NoError(err)

	req.Eventually(func() bool {
		rec, ok := sess.Operation(localID)
		return ok && rec.Status == OpSucceeded
	}, time.Second, 5*time.Millisecond)

	req.NotNil(sent)
	req.Contains(sent.ContentType, "text/plain")
}

func TestSession_EditUnknownMessage(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)
	joinAs(t, sess, remote, stream, testChannel(), nil)

	_, err := sess.Edit(context.Background(), "ghost", "new body")
	req.True(errors.HasCode(err, errors.CodeNotFound))
}

func TestSession_EditDeletedMessageConflicts(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)
	at := time.Now().UTC()
	joinAs(t, sess, remote, stream, testChannel(), []domain.Message{
		{ServerID: "m1", Body: "bye", CreatedAt: at},
	})

	sess.OnRemoteEvent(event.MessageDeleted{Channel: testChannelURL, ServerID: "m1"})

	_, err := sess.Edit(context.Background(), "m1", "too late")
	req.True(errors.HasCode(err, errors.CodeConflict))
}

func TestSession_BanRequiresOperator(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)
	// Alice is a regular member here
	joinAs(t, sess, remote, stream, testChannel("bob"), nil)

	// No BanUser expectation: the permission gate must spare the round trip
	_, err := sess.BanUser(context.Background(), bob, time.Hour, "spam")
	req.True(errors.HasCode(err, errors.CodePermission))
}

func TestSession_BanThenUnbanResolvesLastWriteWins(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)

	remote.EXPECT().JoinHistory(gomock.Any(), testChannelURL, gomock.Any(), 20).
		Return(contract.HistoryPage{}, nil)
	remote.EXPECT().ListBannedUsers(gomock.Any(), testChannelURL).Return(nil, nil)
	expectSubscribe(stream)
	_, err := sess.Join(context.Background(), testChannel("alice"))
	req.NoError(err)

	banReturn := make(chan struct{})
	remote.EXPECT().BanUser(gomock.Any(), testChannelURL, "bob", time.Hour, "spam").
		DoAndReturn(func(context.Context, string, string, time.Duration, string) error {
			<-banReturn
			return nil
		})
	remote.EXPECT().UnbanUser(gomock.Any(), testChannelURL, "bob").Return(nil)

	banID, err := sess.BanUser(context.Background(), bob, time.Hour, "spam")
	req.NoError(err)
	req.Len(sess.BannedUsers(), 1)

	unbanID, err := sess.UnbanUser(context.Background(), bob)
	req.NoError(err)
	// Unban of the (locally) banned user applied at once, never duplicated
	req.Empty(sess.BannedUsers())

	// The ban confirmation resolves after the unban already did
	close(banReturn)
	req.Eventually(func() bool {
		banRec, _ := sess.Operation(banID)
		unbanRec, _ := sess.Operation(unbanID)
		return banRec.Status == OpSucceeded && unbanRec.Status == OpSucceeded
	}, time.Second, 5*time.Millisecond)

	req.Empty(sess.BannedUsers())

	// Unban of a non-banned user must not crash anything
	remote.EXPECT().UnbanUser(gomock.Any(), testChannelURL, "clara").Return(nil)
	claraID, err := sess.UnbanUser(context.Background(), clara)
	req.NoError(err)
	req.Eventually(func() bool {
		rec, ok := sess.Operation(claraID)
		return ok && rec.Status == OpSucceeded
	}, time.Second, 5*time.Millisecond)
}

func TestSession_BanFailureRollsBack(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)

	remote.EXPECT().JoinHistory(gomock.Any(), testChannelURL, gomock.Any(), 20).
		Return(contract.HistoryPage{}, nil)
	remote.EXPECT().ListBannedUsers(gomock.Any(), testChannelURL).Return(nil, nil)
	expectSubscribe(stream)
	_, err := sess.Join(context.Background(), testChannel("alice"))
	req.NoError(err)

	// Stale operator cache: the server rejects, its failure must surface
	remote.EXPECT().BanUser(gomock.Any(), testChannelURL, "bob", time.Hour, "spam").
		Return(errors.Permission("not an operator anymore"))

	banID, err := sess.BanUser(context.Background(), bob, time.Hour, "spam")
	req.NoError(err)

	req.Eventually(func() bool {
		rec, ok := sess.Operation(banID)
		return ok && rec.Status == OpFailed
	}, time.Second, 5*time.Millisecond)

	// Prior committed state untouched: bob is a member again, not banned
	req.Empty(sess.BannedUsers())
	req.Len(sess.Roster(), 2)
}

func TestSession_MembershipEventUpdatesRosterAndRole(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)
	joinAs(t, sess, remote, stream, testChannel(), nil)
	req.Equal(domain.RoleRegular, sess.MyRole())

	sess.OnRemoteEvent(event.MembershipChanged{
		Channel: testChannelURL,
		Delta: event.RosterDelta{
			Joined:    []domain.Member{{User: clara, Role: domain.RoleRegular}},
			Operators: []domain.Member{{User: alice, Role: domain.RoleOperator}},
		},
	})

	req.Len(sess.Roster(), 3)
	req.Equal(domain.RoleOperator, sess.MyRole())

	sess.OnRemoteEvent(event.MembershipChanged{
		Channel: testChannelURL,
		Delta: event.RosterDelta{
			Banned: []domain.BanRecord{{User: clara, ChannelURL: testChannelURL}},
		},
	})
	req.Len(sess.Roster(), 2)
	req.Len(sess.BannedUsers(), 1)
}

func TestSession_LeaveDropsLateResolution(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)
	joinAs(t, sess, remote, stream, testChannel(), nil)

	sendReturn := make(chan struct{})
	remote.EXPECT().SendMessage(gomock.Any(), testChannelURL, "in flight", nil).
		DoAndReturn(func(context.Context, string, string, *domain.Attachment) (domain.Message, error) {
			<-sendReturn
			return domain.Message{ServerID: "m1", CreatedAt: time.Now().UTC()}, nil
		})

	localID, err := sess.Send(context.Background(), "in flight")
	req.NoError(err)

	req.NoError(sess.Leave(context.Background()))
	req.Equal(StateUnjoined, sess.State())
	req.Nil(sess.Snapshot())

	// The in-flight operation resolves after leave: a no-op, no panic
	close(sendReturn)
	time.Sleep(50 * time.Millisecond)
	rec, ok := sess.Operation(localID)
	req.True(ok)
	req.Equal(OpPending, rec.Status)

	// Events after leave are dropped too
	sess.OnRemoteEvent(event.MessageReceived{
		Channel: testChannelURL,
		Message: domain.Message{ServerID: "m2", CreatedAt: time.Now().UTC()},
	})
	req.Nil(sess.Snapshot())
}

func TestSession_SendRequiresJoin(t *testing.T) {
	sess, _, _ := newTestSession(t, alice)
	_, err := sess.Send(context.Background(), "hello?")
	require.True(t, errors.HasCode(err, errors.CodeNotJoined))
}

func TestSession_NotifyFiresOnVisibleChanges(t *testing.T) {
	req := require.New(t)
	sess, remote, stream := newTestSession(t, alice)

	changes := 0
	sess.Notify(func() { changes++ })

	joinAs(t, sess, remote, stream, testChannel(), nil)
	req.Positive(changes)

	before := changes
	sess.OnRemoteEvent(event.MessageReceived{
		Channel: testChannelURL,
		Message: domain.Message{ServerID: "m1", CreatedAt: time.Now().UTC()},
	})
	req.Greater(changes, before)
}