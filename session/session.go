package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"chat-session/contract"
	"chat-session/domain"
	"chat-session/domain/event"
	"chat-session/errors"
	"chat-session/projection"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

type State string

const (
	StateUnjoined State = "unjoined"
	StateJoining  State = "joining"
	StateJoined   State = "joined"
	StateLeaving  State = "leaving"
)

// ChannelSession owns everything local to one joined channel: its
// ledger, roster, ban list, operator-role cache, and the tracker for
// in-flight mutations.
//
// All mutations are serialized through one mutex: local calls and event
// ingestion go through the same single-writer discipline. Remote calls
// never hold the mutex; their completions re-acquire it and are dropped
// when the session left the channel in the meantime (generation check).
type ChannelSession struct {
	mu      sync.Mutex
	log     *slog.Logger
	remote  contract.RemoteChannelService
	stream  contract.EventStream
	current domain.User

	historyPageSize int

	state        State
	channel      domain.Channel
	ledger       *projection.Ledger
	tracker      *Tracker
	roster       map[string]domain.Member
	bans         map[string]domain.BanRecord
	myRole       domain.Role
	generation   uint64
	events       <-chan event.RemoteEvent
	cancelStream func()
	observers    []func()
}

func NewChannelSession(log *slog.Logger, remote contract.RemoteChannelService,
	stream contract.EventStream, current domain.User,
	historyPageSize int, tracker *Tracker) *ChannelSession {
	return &ChannelSession{
		log:             log,
		remote:          remote,
		stream:          stream,
		current:         current,
		historyPageSize: historyPageSize,
		state:           StateUnjoined,
		tracker:         tracker,
	}
}

// Join loads the first history page, builds the roster and role cache,
// and subscribes to the channel's event stream. On any failure the
// session reverts to Unjoined with no subscription left behind.
func (s *ChannelSession) Join(ctx context.Context, channel domain.Channel) ([]domain.Message, error) {
	s.mu.Lock()
	if s.state != StateUnjoined {
		s.mu.Unlock()
		return nil, errors.Conflict(fmt.Sprintf("cannot join %s from state %s", channel.URL, s.state))
	}
	s.state = StateJoining
	s.mu.Unlock()

	history, err := s.remote.JoinHistory(ctx, channel.URL, time.Time{}, s.historyPageSize)
	if err != nil {
		s.revertToUnjoined()
		return nil, errors.Transport("loading channel history failed", err)
	}

	ledger := projection.NewLedger(channel.URL, s.log)
	for _, msg := range history.Messages {
		// History pages go through the same merge path as live events.
		ledger.ApplyRemote(event.MessageReceived{Channel: channel.URL, Message: msg})
	}

	myRole := channel.RoleOf(s.current.UserID)

	bans := make(map[string]domain.BanRecord)
	if myRole == domain.RoleOperator {
		banned, err := s.remote.ListBannedUsers(ctx, channel.URL)
		if err != nil {
			// Moderation data is a convenience; join still succeeds.
			s.log.Warn("Fetching banned users failed", "channel", channel.URL, "error", err)
		}
		for _, user := range banned {
			bans[user.UserID] = domain.BanRecord{User: user, ChannelURL: channel.URL}
		}
	}

	events, cancel := s.stream.Subscribe(channel.URL)

	s.mu.Lock()
	s.state = StateJoined
	s.channel = channel
	s.ledger = ledger
	s.roster = lo.SliceToMap(channel.Members, func(m domain.Member) (string, domain.Member) {
		return m.User.UserID, m
	})
	s.bans = bans
	s.myRole = myRole
	s.events = events
	s.cancelStream = cancel
	snapshot := ledger.Snapshot()
	s.mu.Unlock()

	s.notify()
	return snapshot, nil
}

// Leave unsubscribes from events and discards the in-memory ledger.
// Resolutions of still-in-flight operations arriving afterwards are
// dropped by the generation check; the ledger is rebuilt on next join.
func (s *ChannelSession) Leave(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateJoined {
		s.mu.Unlock()
		return errors.NotJoined("no channel to leave")
	}
	s.state = StateLeaving
	cancel := s.cancelStream
	s.mu.Unlock()

	cancel()

	s.mu.Lock()
	s.state = StateUnjoined
	s.channel = domain.Channel{}
	s.ledger = nil
	s.roster = nil
	s.bans = nil
	s.myRole = domain.RoleRegular
	s.events = nil
	s.cancelStream = nil
	s.generation++
	s.mu.Unlock()

	s.notify()
	return nil
}

// Send posts a text message: pending entry visible synchronously, the
// remote call runs in the background and resolves the operation.
func (s *ChannelSession) Send(ctx context.Context, body string) (string, error) {
	return s.send(ctx, body, nil)
}

// SendFile posts a binary attachment. The content type is sniffed from
// the payload, matching how the backend classifies uploads.
func (s *ChannelSession) SendFile(ctx context.Context, name string, data []byte) (string, error) {
	attachment := &domain.Attachment{
		Name:        name,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}
	return s.send(ctx, name, attachment)
}

func (s *ChannelSession) send(ctx context.Context, body string, attachment *domain.Attachment) (string, error) {
	s.mu.Lock()
	if s.state != StateJoined {
		s.mu.Unlock()
		return "", errors.NotJoined("send requires a joined channel")
	}
	gen := s.generation
	channelURL := s.channel.URL
	localID := s.tracker.Begin(OpSend)
	s.ledger.InsertOptimistic(domain.Message{
		LocalID:    localID,
		ChannelURL: channelURL,
		Sender:     s.current,
		Body:       body,
		Attachment: attachment,
	})
	s.mu.Unlock()
	s.notify()

	go func() {
		sent, err := s.remote.SendMessage(ctx, channelURL, body, attachment)
		s.finish(gen, localID, err,
			func() {
				s.tracker.Resolve(localID, sent.ServerID, nil)
				s.ledger.Confirm(localID, sent.ServerID, sent.CreatedAt)
			},
			func() {
				s.tracker.Resolve(localID, "", err)
				s.ledger.MarkFailed(localID)
			})
	}()
	return localID, nil
}

// Edit replaces the body of a confirmed message, optimistically first.
func (s *ChannelSession) Edit(ctx context.Context, serverID, body string) (string, error) {
	s.mu.Lock()
	if s.state != StateJoined {
		s.mu.Unlock()
		return "", errors.NotJoined("edit requires a joined channel")
	}
	entry, found := lo.Find(s.ledger.Snapshot(), func(m domain.Message) bool {
		return m.ServerID == serverID
	})
	if !found {
		deleted := s.ledger.Contains(serverID)
		s.mu.Unlock()
		if deleted {
			return "", errors.Conflict(fmt.Sprintf("message %s is deleted", serverID))
		}
		return "", errors.NotFound(fmt.Sprintf("message %s not in ledger", serverID))
	}
	gen := s.generation
	channelURL := s.channel.URL
	previousBody := entry.Body
	localID := s.tracker.Begin(OpEdit)
	s.ledger.ApplyRemote(event.MessageUpdated{
		Channel: channelURL,
		Message: domain.Message{ServerID: serverID, Body: body, UpdatedAt: time.Now().UTC()},
	})
	s.mu.Unlock()
	s.notify()

	go func() {
		updated, err := s.remote.EditMessage(ctx, channelURL, serverID, body)
		s.finish(gen, localID, err,
			func() {
				s.tracker.Resolve(localID, serverID, nil)
				s.ledger.ApplyRemote(event.MessageUpdated{Channel: channelURL, Message: updated})
			},
			func() {
				s.tracker.Resolve(localID, "", err)
				s.ledger.ApplyRemote(event.MessageUpdated{
					Channel: channelURL,
					Message: domain.Message{ServerID: serverID, Body: previousBody, UpdatedAt: entry.UpdatedAt},
				})
			})
	}()
	return localID, nil
}

// Delete removes a confirmed message, optimistically first. The slot is
// restored when the backend rejects the deletion.
func (s *ChannelSession) Delete(ctx context.Context, serverID string) (string, error) {
	s.mu.Lock()
	if s.state != StateJoined {
		s.mu.Unlock()
		return "", errors.NotJoined("delete requires a joined channel")
	}
	if !s.ledger.Contains(serverID) {
		s.mu.Unlock()
		return "", errors.NotFound(fmt.Sprintf("message %s not in ledger", serverID))
	}
	gen := s.generation
	channelURL := s.channel.URL
	localID := s.tracker.Begin(OpDelete)
	s.ledger.ApplyRemote(event.MessageDeleted{Channel: channelURL, ServerID: serverID})
	s.mu.Unlock()
	s.notify()

	go func() {
		err := s.remote.DeleteMessage(ctx, channelURL, serverID)
		s.finish(gen, localID, err,
			func() {
				s.tracker.Resolve(localID, serverID, nil)
			},
			func() {
				s.tracker.Resolve(localID, "", err)
				s.ledger.Restore(serverID)
			})
	}()
	return localID, nil
}

// DiscardFailed drops a Failed entry the user chose not to retry.
func (s *ChannelSession) DiscardFailed(localID string) {
	s.mu.Lock()
	if s.state == StateJoined {
		s.ledger.Discard(localID)
	}
	s.mu.Unlock()
	s.notify()
}

// InviteUsers asks the backend to add members; the roster is updated by
// the resulting MembershipChanged event, not optimistically, because the
// backend owns the invited users' profiles.
func (s *ChannelSession) InviteUsers(ctx context.Context, userIDs []string) (string, error) {
	if len(userIDs) == 0 {
		return "", errors.Validation("no users to invite")
	}
	s.mu.Lock()
	if s.state != StateJoined {
		s.mu.Unlock()
		return "", errors.NotJoined("invite requires a joined channel")
	}
	gen := s.generation
	channelURL := s.channel.URL
	localID := s.tracker.Begin(OpInvite)
	s.mu.Unlock()

	go func() {
		err := s.remote.InviteUsers(ctx, channelURL, userIDs)
		s.finish(gen, localID, err,
			func() { s.tracker.Resolve(localID, "", nil) },
			func() { s.tracker.Resolve(localID, "", err) })
	}()
	return localID, nil
}

// BanUser ejects a member. The local Operator cache gates the call to
// spare a round trip the backend would reject anyway; the backend stays
// authoritative, a stale cache still surfaces the server's failure.
func (s *ChannelSession) BanUser(ctx context.Context, user domain.User, duration time.Duration, reason string) (string, error) {
	s.mu.Lock()
	if err := s.requireOperatorLocked("ban"); err != nil {
		s.mu.Unlock()
		return "", err
	}
	gen := s.generation
	channelURL := s.channel.URL
	localID := s.tracker.Begin(OpBan)

	previous, wasMember := s.roster[user.UserID]
	delete(s.roster, user.UserID)
	s.bans[user.UserID] = domain.BanRecord{
		User:       user,
		ChannelURL: channelURL,
		ExpiresAt:  time.Now().UTC().Add(duration),
	}
	s.mu.Unlock()
	s.notify()

	go func() {
		err := s.remote.BanUser(ctx, channelURL, user.UserID, duration, reason)
		s.finish(gen, localID, err,
			func() { s.tracker.Resolve(localID, "", nil) },
			func() {
				s.tracker.Resolve(localID, "", err)
				delete(s.bans, user.UserID)
				if wasMember {
					s.roster[user.UserID] = previous
				}
			})
	}()
	return localID, nil
}

// UnbanUser lifts a ban. Unban of a never-banned user is accepted
// locally; the backend decides.
func (s *ChannelSession) UnbanUser(ctx context.Context, user domain.User) (string, error) {
	s.mu.Lock()
	if err := s.requireOperatorLocked("unban"); err != nil {
		s.mu.Unlock()
		return "", err
	}
	gen := s.generation
	channelURL := s.channel.URL
	localID := s.tracker.Begin(OpUnban)

	previous, wasBanned := s.bans[user.UserID]
	delete(s.bans, user.UserID)
	s.mu.Unlock()
	s.notify()

	go func() {
		err := s.remote.UnbanUser(ctx, channelURL, user.UserID)
		s.finish(gen, localID, err,
			func() { s.tracker.Resolve(localID, "", nil) },
			func() {
				s.tracker.Resolve(localID, "", err)
				if wasBanned {
					s.bans[user.UserID] = previous
				}
			})
	}()
	return localID, nil
}

// GrantOperator promotes a member, optimistically.
func (s *ChannelSession) GrantOperator(ctx context.Context, user domain.User) (string, error) {
	return s.setOperator(ctx, user, true)
}

// RevokeOperator demotes a member, optimistically.
func (s *ChannelSession) RevokeOperator(ctx context.Context, user domain.User) (string, error) {
	return s.setOperator(ctx, user, false)
}

func (s *ChannelSession) setOperator(ctx context.Context, user domain.User, grant bool) (string, error) {
	kind, role := OpRevokeOperator, domain.RoleRegular
	if grant {
		kind, role = OpGrantOperator, domain.RoleOperator
	}

	s.mu.Lock()
	if err := s.requireOperatorLocked(string(kind)); err != nil {
		s.mu.Unlock()
		return "", err
	}
	gen := s.generation
	channelURL := s.channel.URL
	localID := s.tracker.Begin(kind)

	previous, wasMember := s.roster[user.UserID]
	s.roster[user.UserID] = domain.Member{User: user, Role: role}
	s.mu.Unlock()
	s.notify()

	go func() {
		err := s.remote.SetOperatorRole(ctx, channelURL, user.UserID, grant)
		s.finish(gen, localID, err,
			func() { s.tracker.Resolve(localID, "", nil) },
			func() {
				s.tracker.Resolve(localID, "", err)
				if wasMember {
					s.roster[user.UserID] = previous
				} else {
					delete(s.roster, user.UserID)
				}
			})
	}()
	return localID, nil
}

// OnRemoteEvent merges one pushed event into local state. Correlation
// against the tracker runs first so the session's own echoes confirm the
// pending entry instead of inserting a duplicate. Unknown events are
// logged and dropped; ingestion never fails the session.
func (s *ChannelSession) OnRemoteEvent(e event.RemoteEvent) {
	s.mu.Lock()
	if s.state != StateJoined || e.ChannelURL() != s.channel.URL {
		s.mu.Unlock()
		return
	}

	switch evt := e.(type) {
	case event.MessageReceived:
		if localID, ok := s.tracker.CorrelateRemoteEcho(evt.Message.ServerID); ok {
			// Own echo: whichever of response and event arrives first
			// performs the insert, the second one is a no-op.
			s.ledger.Confirm(localID, evt.Message.ServerID, evt.Message.CreatedAt)
		} else {
			s.ledger.ApplyRemote(evt)
		}
	case event.MessageUpdated, event.MessageDeleted:
		s.ledger.ApplyRemote(e)
	case event.MembershipChanged:
		s.applyRosterDeltaLocked(evt.Delta)
	default:
		s.log.Warn("Dropping unknown remote event", "channel", s.channel.URL)
	}
	s.mu.Unlock()
	s.notify()
}

func (s *ChannelSession) applyRosterDeltaLocked(delta event.RosterDelta) {
	for _, member := range delta.Joined {
		s.roster[member.User.UserID] = member
	}
	for _, user := range delta.Left {
		delete(s.roster, user.UserID)
	}
	for _, ban := range delta.Banned {
		s.bans[ban.User.UserID] = ban
		delete(s.roster, ban.User.UserID)
	}
	for _, user := range delta.Unbanned {
		delete(s.bans, user.UserID)
	}
	for _, member := range delta.Operators {
		s.roster[member.User.UserID] = member
		if member.User.UserID == s.current.UserID {
			s.myRole = member.Role
		}
	}
}

// EventFeed exposes the subscription channel for the ingestion worker.
// Nil when the session is not joined.
func (s *ChannelSession) EventFeed() <-chan event.RemoteEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

// Snapshot returns the visible messages of the joined channel. Pure read.
func (s *ChannelSession) Snapshot() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateJoined {
		return nil
	}
	return s.ledger.Snapshot()
}

// Roster returns the membership sorted by user ID for stable display.
func (s *ChannelSession) Roster() []domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := lo.Values(s.roster)
	sort.Slice(members, func(i, j int) bool {
		return members[i].User.UserID < members[j].User.UserID
	})
	return members
}

// BannedUsers returns the cached ban list, stale entries included.
func (s *ChannelSession) BannedUsers() []domain.BanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := lo.Values(s.bans)
	sort.Slice(records, func(i, j int) bool {
		return records[i].User.UserID < records[j].User.UserID
	})
	return records
}

func (s *ChannelSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ChannelSession) MyRole() domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.myRole
}

// Notify registers a hook fired after every visible-state change,
// typically to trigger a re-render.
func (s *ChannelSession) Notify(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Operation exposes the outcome of a tracked mutation.
func (s *ChannelSession) Operation(localID string) (OperationRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Record(localID)
}

func (s *ChannelSession) requireOperatorLocked(op string) error {
	if s.state != StateJoined {
		return errors.NotJoined(op + " requires a joined channel")
	}
	if s.myRole != domain.RoleOperator {
		return errors.Permission(op + " requires the operator role")
	}
	return nil
}

// finish applies an operation outcome under the session mutex, unless
// the session left the channel since submission.
func (s *ChannelSession) finish(gen uint64, localID string, opErr error, onSuccess, onFailure func()) {
	s.mu.Lock()
	if s.generation != gen || s.state != StateJoined {
		s.mu.Unlock()
		s.log.Debug("Dropping resolution after leave", "localID", localID)
		return
	}
	if opErr != nil {
		s.log.Warn("Operation failed", "localID", localID, "error", opErr)
		onFailure()
	} else {
		onSuccess()
	}
	s.mu.Unlock()
	s.notify()
}

func (s *ChannelSession) revertToUnjoined() {
	s.mu.Lock()
	s.state = StateUnjoined
	s.mu.Unlock()
}

func (s *ChannelSession) notify() {
	s.mu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}
