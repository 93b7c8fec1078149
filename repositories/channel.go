//go:generate go run go.uber.org/mock/mockgen -source=channel.go -destination=../mocks/mock_channel_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chat-session/domain"

	"github.com/dgraph-io/badger/v4"
)

type IChannelRepository interface {
	StoreChannels(channels []domain.Channel) error
	GetChannels(limit int) ([]domain.Channel, error)
	DeleteChannel(url string) error
}

// ChannelRepository mirrors the latest directory pages into BadgerDB so
// the channel list renders before the first remote round trip completes.
// It is a cache, never the source of truth.
type ChannelRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewChannelRepository(db *badger.DB, log *slog.Logger) ChannelRepository {
	return ChannelRepository{db: db, log: log}
}

// cachedChannel is the stored subset; the member roster is rebuilt on
// join and would only go stale here.
type cachedChannel struct {
	URL          string          `json:"url"`
	Name         string          `json:"name"`
	LastActiveAt int64           `json:"last_active_at"`
	LastMessage  *domain.Message `json:"last_message,omitempty"`
}

// StoreChannels upserts one directory page.
// The key is formatted as "chan:{timestamp_padded}:{url}" so that reverse
// iteration yields most-recently-active first, the directory's display
// order. 19-digit zero padding keeps the lexicographical order correct.
func (r ChannelRepository) StoreChannels(channels []domain.Channel) error {
	return r.db.Update(func(txn *badger.Txn) error {
		for _, channel := range channels {
			// A backend omitting last_active_at leaves a zero time; its
			// negative UnixNano must never leak into keys or values.
			nano := channel.LastActiveAt.UnixNano()
			if channel.LastActiveAt.IsZero() {
				nano = 0
			}
			key := channelKey(nano, channel.URL)
			bytes, err := json.Marshal(cachedChannel{
				URL:          channel.URL,
				Name:         channel.Name,
				LastActiveAt: nano,
				LastMessage:  channel.LastMessage,
			})
			if err != nil {
				return err
			}
			// Drop a stale entry of the same channel under an older timestamp
			if err := r.dropStale(txn, channel.URL, key); err != nil {
				return err
			}
			if err := txn.Set([]byte(key), bytes); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetChannels reads back up to limit channels, most recently active first.
func (r ChannelRepository) GetChannels(limit int) ([]domain.Channel, error) {
	var channels []domain.Channel
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte("chan:")
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := append(prefix, []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if len(channels) == limit {
				break
			}
			err := it.Item().Value(func(value []byte) error {
				var cached cachedChannel
				if err := json.Unmarshal(value, &cached); err != nil {
					return err
				}
				channels = append(channels, fromCached(cached))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// DeleteChannel forgets a deleted channel, whatever timestamp it was
// stored under.
func (r ChannelRepository) DeleteChannel(url string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return r.dropStale(txn, url, "")
	})
}

func (r ChannelRepository) dropStale(txn *badger.Txn, url, keepKey string) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	prefix := []byte("chan:")
	var doomed [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		key := it.Item().KeyCopy(nil)
		if string(key) != keepKey && channelURLOf(string(key)) == url {
			doomed = append(doomed, key)
		}
	}
	for _, key := range doomed {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// channelKey formats "chan:{timestamp}:{url}". Zero and pre-epoch
// timestamps would render negative and break the fixed 19-digit width,
// so they collapse to the oldest slot.
func channelKey(unixNano int64, url string) string {
	if unixNano < 0 {
		unixNano = 0
	}
	return fmt.Sprintf("chan:%019d:%s", unixNano, url)
}

// channelURLOf strips "chan:{timestamp}:" from a key.
func channelURLOf(key string) string {
	rest, ok := strings.CutPrefix(key, "chan:")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		return rest[i+1:]
	}
	return ""
}

func timeFromNano(unixNano int64) time.Time {
	if unixNano == 0 {
		return time.Time{}
	}
	return time.Unix(0, unixNano).UTC()
}

func fromCached(cached cachedChannel) domain.Channel {
	return domain.Channel{
		URL:          cached.URL,
		Name:         cached.Name,
		LastActiveAt: timeFromNano(cached.LastActiveAt),
		LastMessage:  cached.LastMessage,
	}
}
