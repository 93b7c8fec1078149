// Package stream consumes the backend's websocket push feed and turns
// it into typed remote events, fanned out per subscribed channel.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"chat-session/domain/event"

	"github.com/gorilla/websocket"
)

const subscriberBuffer = 64

// WebsocketStream implements contract.EventStream over one websocket
// connection. Its Run loop is a supervised worker: it reads frames,
// decodes them, and dispatches to per-channel subscribers. Malformed
// frames are logged and dropped; they never stop the loop.
type WebsocketStream struct {
	log  *slog.Logger
	url  string
	conn *websocket.Conn

	mu     sync.Mutex
	subs   map[string]map[int]chan event.RemoteEvent
	nextID int
}

// Dial connects to the push feed.
func Dial(ctx context.Context, url string, log *slog.Logger) (*WebsocketStream, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing event stream %s: %w", url, err)
	}
	return &WebsocketStream{
		log:  log,
		url:  url,
		conn: conn,
		subs: make(map[string]map[int]chan event.RemoteEvent),
	}, nil
}

// Subscribe registers interest in one channel's events. The returned
// cancel func stops delivery immediately and closes the feed, which
// finishes the session's ingestion worker.
func (s *WebsocketStream) Subscribe(channelURL string) (<-chan event.RemoteEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[channelURL]; !ok {
		s.subs[channelURL] = make(map[int]chan event.RemoteEvent)
	}
	id := s.nextID
	s.nextID++
	feed := make(chan event.RemoteEvent, subscriberBuffer)
	s.subs[channelURL][id] = feed

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if channelSubs, ok := s.subs[channelURL]; ok {
				delete(channelSubs, id)
				if len(channelSubs) == 0 {
					delete(s.subs, channelURL)
				}
			}
			close(feed)
		})
	}
	return feed, cancel
}

// Run reads the socket until the context is canceled or the connection
// drops. A dropped connection is returned as an error so the supervisor
// restarts the worker; the restarted worker redials. s.conn is shared
// with Close and only touched under s.mu.
func (s *WebsocketStream) Run(ctx context.Context) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		redialed, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
		if err != nil {
			return fmt.Errorf("redialing event stream %s: %w", s.url, err)
		}
		conn = redialed
		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()
	}
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.mu.Lock()
			s.conn = nil
			s.mu.Unlock()
			return fmt.Errorf("event stream read: %w", err)
		}
		evt, err := decode(data)
		if err != nil {
			s.log.Warn("Dropping malformed event frame", "error", err)
			continue
		}
		s.dispatch(evt)
	}
}

func (s *WebsocketStream) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// dispatch hands the event to every subscriber of its channel.
// A full subscriber loses the event rather than stalling the feed of
// every other channel.
func (s *WebsocketStream) dispatch(evt event.RemoteEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, feed := range s.subs[evt.ChannelURL()] {
		select {
		case feed <- evt:
		default:
			s.log.Warn("Subscriber buffer full, dropping event", "channel", evt.ChannelURL())
		}
	}
}
