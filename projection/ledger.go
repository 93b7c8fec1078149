// Package projection builds local, ordered views from two update sources:
// optimistic local mutations and remote events. Handles ordering,
// deduplication, and reconciliation of the session's own echoes.
// Does not emit events or interact with UI directly.
package projection

import (
	"log/slog"
	"sort"
	"time"

	"chat-session/domain"
	"chat-session/domain/event"

	"github.com/samber/lo"
)

// Ledger is the per-channel message history.
//
// The slice is kept sorted on every mutation (merge-on-arrival), keyed by
// (CreatedAt, ServerID); unconfirmed entries sort after confirmed ones at
// equal timestamps and keep FIFO submission order among themselves.
// No two entries ever share a non-empty ServerID. Deleted entries keep
// their slot so a duplicate delete event stays a no-op.
//
// Ledger is not safe for concurrent use; the owning session serializes
// access to it.
type Ledger struct {
	ChannelURL string

	log      *slog.Logger
	entries  []domain.Message
	byServer map[string]struct{}
	seq      map[string]uint64 // localID -> submission order
	nextSeq  uint64
}

func NewLedger(channelURL string, log *slog.Logger) *Ledger {
	return &Ledger{
		ChannelURL: channelURL,
		log:        log,
		byServer:   make(map[string]struct{}),
		seq:        make(map[string]uint64),
	}
}

// InsertOptimistic records a local Pending entry, visible immediately.
// Returns the correlation token addressing the entry until confirmation.
func (l *Ledger) InsertOptimistic(msg domain.Message) string {
	if msg.LocalID == "" {
		msg.LocalID = domain.NewLocalID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	msg.State = domain.StatePending
	msg.ServerID = ""
	l.seq[msg.LocalID] = l.nextSeq
	l.nextSeq++
	l.insertSorted(msg)
	return msg.LocalID
}

// Confirm transitions the Pending entry to Sent, assigns the server
// identity and the authoritative timestamp, and re-sorts the entry.
//
// Unknown localID is a no-op: the record was already evicted and the
// echo event will insert the message as a fresh remote entry instead.
// A serverID already present means the echo won the race; the pending
// duplicate is absorbed.
func (l *Ledger) Confirm(localID, serverID string, createdAt time.Time) {
	idx := l.indexOfLocal(localID)
	if idx < 0 {
		return
	}
	if l.entries[idx].ServerID == serverID {
		// Duplicate confirmation, already applied.
		return
	}
	if _, dup := l.byServer[serverID]; dup {
		l.removeAt(idx)
		delete(l.seq, localID)
		return
	}

	msg := l.entries[idx]
	l.removeAt(idx)
	delete(l.seq, localID)

	msg.ServerID = serverID
	msg.CreatedAt = createdAt
	msg.State = domain.StateSent
	l.byServer[serverID] = struct{}{}
	l.insertSorted(msg)
}

// MarkFailed leaves the entry visible so the caller can retry or discard.
func (l *Ledger) MarkFailed(localID string) {
	if idx := l.indexOfLocal(localID); idx >= 0 {
		l.entries[idx].State = domain.StateFailed
	}
}

// Discard drops a Failed entry the user chose not to retry.
func (l *Ledger) Discard(localID string) {
	idx := l.indexOfLocal(localID)
	if idx < 0 || l.entries[idx].State != domain.StateFailed {
		return
	}
	l.removeAt(idx)
	delete(l.seq, localID)
}

// ApplyRemote merges one remote event into the ledger.
// Events for entities the ledger does not know are logged and dropped,
// never treated as errors: pushes can outrun or trail history pages.
func (l *Ledger) ApplyRemote(e event.RemoteEvent) {
	switch evt := e.(type) {
	case event.MessageReceived:
		l.applyReceived(evt.Message)
	case event.MessageUpdated:
		l.applyUpdated(evt.Message)
	case event.MessageDeleted:
		l.applyDeleted(evt.ServerID)
	default:
		l.log.Debug("Ignoring non-message event", "channel", l.ChannelURL)
	}
}

func (l *Ledger) applyReceived(msg domain.Message) {
	if msg.ServerID == "" {
		l.log.Warn("Dropping received message without server id", "channel", l.ChannelURL)
		return
	}
	if _, ok := l.byServer[msg.ServerID]; ok {
		// Self-echo or redelivery, already merged.
		return
	}
	msg.State = domain.StateSent
	msg.LocalID = ""
	l.byServer[msg.ServerID] = struct{}{}
	l.insertSorted(msg)
}

func (l *Ledger) applyUpdated(msg domain.Message) {
	idx := l.indexOfServer(msg.ServerID)
	if idx < 0 {
		l.log.Debug("Update for unknown message, out of order", "serverID", msg.ServerID)
		return
	}
	if l.entries[idx].State == domain.StateDeleted {
		return
	}
	l.entries[idx].Body = msg.Body
	l.entries[idx].UpdatedAt = msg.UpdatedAt
}

func (l *Ledger) applyDeleted(serverID string) {
	idx := l.indexOfServer(serverID)
	if idx < 0 {
		l.log.Debug("Delete for unknown message, out of order", "serverID", serverID)
		return
	}
	// Idempotent: the slot stays, rendering skips it.
	l.entries[idx].State = domain.StateDeleted
}

// Restore flips a Deleted slot back to Sent. Rollback path for an
// optimistic delete the backend rejected.
func (l *Ledger) Restore(serverID string) {
	idx := l.indexOfServer(serverID)
	if idx < 0 || l.entries[idx].State != domain.StateDeleted {
		return
	}
	l.entries[idx].State = domain.StateSent
}

// Snapshot returns the visible messages in ledger order. Pure read.
func (l *Ledger) Snapshot() []domain.Message {
	return lo.Filter(l.entries, func(m domain.Message, _ int) bool {
		return m.State != domain.StateDeleted
	})
}

// VisibleToOthers is the Snapshot filtered down to what other
// participants can already see: confirmed entries only.
func (l *Ledger) VisibleToOthers() []domain.Message {
	return lo.Filter(l.entries, func(m domain.Message, _ int) bool {
		return m.State == domain.StateSent
	})
}

// Contains reports whether a confirmed entry exists for serverID,
// including deleted slots.
func (l *Ledger) Contains(serverID string) bool {
	_, ok := l.byServer[serverID]
	return ok
}

// insertSorted places msg at its ordered position in O(log n) probes.
func (l *Ledger) insertSorted(msg domain.Message) {
	pos := sort.Search(len(l.entries), func(i int) bool {
		return l.less(msg, l.entries[i])
	})
	l.entries = append(l.entries, domain.Message{})
	copy(l.entries[pos+1:], l.entries[pos:])
	l.entries[pos] = msg
}

// less is the ledger ordering key.
func (l *Ledger) less(a, b domain.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	if a.Confirmed() != b.Confirmed() {
		// Confirmed entries come first at equal timestamps.
		return a.Confirmed()
	}
	if a.Confirmed() {
		return a.ServerID < b.ServerID
	}
	return l.seq[a.LocalID] < l.seq[b.LocalID]
}

func (l *Ledger) indexOfLocal(localID string) int {
	if localID == "" {
		return -1
	}
	for i, e := range l.entries {
		if e.LocalID == localID {
			return i
		}
	}
	return -1
}

func (l *Ledger) indexOfServer(serverID string) int {
	if serverID == "" {
		return -1
	}
	for i, e := range l.entries {
		if e.ServerID == serverID {
			return i
		}
	}
	return -1
}

func (l *Ledger) removeAt(idx int) {
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
}
