package workers

import (
	"context"
	"log/slog"

	"chat-session/domain/event"
)

// EventConsumer is the session-facing half of ingestion.
type EventConsumer interface {
	OnRemoteEvent(e event.RemoteEvent)
	EventFeed() <-chan event.RemoteEvent
}

// IngestWorker is the single consumer task of one joined channel's
// event subscription. It feeds pushed events into the session, which
// serializes them with local mutations; this worker never touches
// session state directly.
//
// Run returns nil when the subscription closes (the session left the
// channel), so the supervisor does not restart it.
type IngestWorker struct {
	log     *slog.Logger
	session EventConsumer
}

func NewIngestWorker(log *slog.Logger, session EventConsumer) *IngestWorker {
	return &IngestWorker{log: log, session: session}
}

func (w *IngestWorker) Run(ctx context.Context) error {
	feed := w.session.EventFeed()
	if feed == nil {
		w.log.Debug("No event feed, session not joined")
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping ingestion")
			return ctx.Err()
		case evt, ok := <-feed:
			if !ok {
				w.log.Debug("Event feed closed")
				return nil
			}
			w.session.OnRemoteEvent(evt)
		}
	}
}
