// Package session owns the per-channel state machine: the joined
// channel's ledger, roster, ban list, and the lifecycle of every
// outstanding mutating operation.
package session

import (
	"log/slog"
	"time"

	"chat-session/domain"
)

type OperationKind string

const (
	OpSend           OperationKind = "send"
	OpEdit           OperationKind = "edit"
	OpDelete         OperationKind = "delete"
	OpInvite         OperationKind = "invite"
	OpBan            OperationKind = "ban"
	OpUnban          OperationKind = "unban"
	OpGrantOperator  OperationKind = "grant_operator"
	OpRevokeOperator OperationKind = "revoke_operator"
)

type OperationStatus string

const (
	OpPending   OperationStatus = "pending"
	OpSucceeded OperationStatus = "succeeded"
	OpFailed    OperationStatus = "failed"
)

// OperationRecord tracks one in-flight mutation from submission to its
// exactly-once resolution.
type OperationRecord struct {
	LocalID     string
	Kind        OperationKind
	SubmittedAt time.Time
	Status      OperationStatus
	ServerID    string // assigned on successful sends
	Err         error
}

// Tracker correlates locally-issued operations with their eventual
// confirmations and echoed events. Resolved records are retained for a
// bounded window so delayed echoes still correlate, then evicted; a miss
// after eviction degrades to a fresh remote insert, which the ledger's
// serverID dedup keeps harmless.
//
// Tracker is owned by one session and not safe for concurrent use.
type Tracker struct {
	log        *slog.Logger
	maxRecords int
	maxAge     time.Duration
	records    map[string]*OperationRecord
	order      []string // submission order, drives eviction
	byServer   map[string]string
	now        func() time.Time
}

func NewTracker(log *slog.Logger, maxRecords int, maxAge time.Duration) *Tracker {
	return &Tracker{
		log:        log,
		maxRecords: maxRecords,
		maxAge:     maxAge,
		records:    make(map[string]*OperationRecord),
		byServer:   make(map[string]string),
		now:        time.Now,
	}
}

// Begin registers a Pending record and returns its correlation token.
func (t *Tracker) Begin(kind OperationKind) string {
	t.evict()
	localID := domain.NewLocalID()
	t.records[localID] = &OperationRecord{
		LocalID:     localID,
		Kind:        kind,
		SubmittedAt: t.now(),
		Status:      OpPending,
	}
	t.order = append(t.order, localID)
	return localID
}

// Resolve transitions a record exactly once. A second call for the same
// localID is a no-op: backend retries and duplicate confirmations must
// not corrupt state. A successful send registers its serverID for echo
// correlation.
func (t *Tracker) Resolve(localID, serverID string, opErr error) {
	rec, ok := t.records[localID]
	if !ok {
		t.log.Debug("Resolution for unknown operation, already evicted", "localID", localID)
		return
	}
	if rec.Status != OpPending {
		return
	}
	if opErr != nil {
		rec.Status = OpFailed
		rec.Err = opErr
		return
	}
	rec.Status = OpSucceeded
	rec.ServerID = serverID
	if serverID != "" {
		t.byServer[serverID] = localID
	}
}

// CorrelateRemoteEcho maps an event's serverID back to the local
// operation that produced it, when that operation is still retained.
func (t *Tracker) CorrelateRemoteEcho(serverID string) (string, bool) {
	localID, ok := t.byServer[serverID]
	return localID, ok
}

// Record is a read-only lookup, mainly for callers inspecting outcomes.
func (t *Tracker) Record(localID string) (OperationRecord, bool) {
	rec, ok := t.records[localID]
	if !ok {
		return OperationRecord{}, false
	}
	return *rec, true
}

// evict drops resolved records outside the retention window.
// Pending records are never evicted; their resolution is still racing.
func (t *Tracker) evict() {
	cutoff := t.now().Add(-t.maxAge)
	var kept []string
	for i, localID := range t.order {
		rec := t.records[localID]
		overflow := len(t.order)-i > t.maxRecords
		if rec.Status != OpPending && (overflow || rec.SubmittedAt.Before(cutoff)) {
			delete(t.records, localID)
			if rec.ServerID != "" {
				delete(t.byServer, rec.ServerID)
			}
			continue
		}
		kept = append(kept, localID)
	}
	t.order = kept
}
