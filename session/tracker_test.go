package session

import (
	"log/slog"
	"testing"
	"time"

	"chat-session/errors"

	"github.com/stretchr/testify/require"
)

func newTestTracker() *Tracker {
	return NewTracker(slog.Default(), 100, time.Minute)
}

func TestTracker_BeginThenResolveSuccess(t *testing.T) {
	req := require.New(t)
	tracker := newTestTracker()

	localID := tracker.Begin(OpSend)
	rec, ok := tracker.Record(localID)
	req.True(ok)
	req.Equal(OpPending, rec.Status)

	tracker.Resolve(localID, "m1", nil)

	rec, ok = tracker.Record(localID)
	req.True(ok)
	req.Equal(OpSucceeded, rec.Status)
	req.Equal("m1", rec.ServerID)

	correlated, ok := tracker.CorrelateRemoteEcho("m1")
	req.True(ok)
	req.Equal(localID, correlated)
}

func TestTracker_ResolveIsExactlyOnce(t *testing.T) {
	req := require.New(t)
	tracker := newTestTracker()

	localID := tracker.Begin(OpSend)
	tracker.Resolve(localID, "m1", nil)
	// A duplicate confirmation must not flip the outcome
	tracker.Resolve(localID, "", errors.Transport("retry storm", nil))

	rec, _ := tracker.Record(localID)
	req.Equal(OpSucceeded, rec.Status)
	req.NoError(rec.Err)
}

func TestTracker_ResolveFailureKeepsReason(t *testing.T) {
	req := require.New(t)
	tracker := newTestTracker()

	localID := tracker.Begin(OpBan)
	tracker.Resolve(localID, "", errors.Transport("connection reset", nil))

	rec, _ := tracker.Record(localID)
	req.Equal(OpFailed, rec.Status)
	req.True(errors.HasCode(rec.Err, errors.CodeTransport))
}

func TestTracker_ResolveUnknownIsNoop(t *testing.T) {
	tracker := newTestTracker()
	tracker.Resolve("never-begun", "m1", nil)

	_, ok := tracker.CorrelateRemoteEcho("m1")
	require.False(t, ok)
}

func TestTracker_EvictionByCount(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker(slog.Default(), 2, time.Hour)

	first := tracker.Begin(OpSend)
	tracker.Resolve(first, "m1", nil)
	second := tracker.Begin(OpSend)
	tracker.Resolve(second, "m2", nil)
	tracker.Begin(OpSend)
	tracker.Begin(OpSend)

	// Oldest resolved records fall outside the window
	_, ok := tracker.Record(first)
	req.False(ok)
	_, ok = tracker.CorrelateRemoteEcho("m1")
	req.False(ok)
}

func TestTracker_EvictionByAge(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker(slog.Default(), 100, time.Minute)
	current := time.Now()
	tracker.now = func() time.Time { return current }

	localID := tracker.Begin(OpSend)
	tracker.Resolve(localID, "m1", nil)

	current = current.Add(2 * time.Minute)
	tracker.Begin(OpSend)

	_, ok := tracker.Record(localID)
	req.False(ok)
}

func TestTracker_PendingRecordsAreNeverEvicted(t *testing.T) {
	req := require.New(t)
	tracker := NewTracker(slog.Default(), 1, time.Nanosecond)
	inFlight := tracker.Begin(OpSend)

	time.Sleep(time.Millisecond)
	tracker.Begin(OpSend)

	_, ok := tracker.Record(inFlight)
	req.True(ok)
}
