// Package directory lists, creates and deletes the channels visible to
// the current user. It is independent of any joined session and may be
// used concurrently with all of them.
package directory

import (
	"context"
	"fmt"
	"log/slog"

	"chat-session/contract"
	"chat-session/domain"
	"chat-session/errors"
	"chat-session/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// createRequest gates channel creation before any round trip.
type createRequest struct {
	Name      string   `validate:"required"`
	MemberIDs []string `validate:"required,min=1"`
}

// Directory is the channel catalog. Remote pages are mirrored into the
// local cache so a cold start can render the list before the backend
// answers; the backend stays the source of truth.
type Directory struct {
	log      *slog.Logger
	remote   contract.RemoteChannelService
	cache    repositories.IChannelRepository
	current  domain.User
	pageSize int
}

func NewDirectory(log *slog.Logger, remote contract.RemoteChannelService,
	cache repositories.IChannelRepository, current domain.User, pageSize int) *Directory {
	return &Directory{
		log:      log,
		remote:   remote,
		cache:    cache,
		current:  current,
		pageSize: pageSize,
	}
}

// List returns one page of channels, most recently active first.
// Ordering is stable across calls with the same cursor.
func (d *Directory) List(ctx context.Context, cursor *string) (contract.ChannelPage, error) {
	page, err := d.remote.ListChannels(ctx, cursor, d.pageSize)
	if err != nil {
		return contract.ChannelPage{}, errors.Transport("listing channels failed", err)
	}
	if err := d.cache.StoreChannels(page.Channels); err != nil {
		// Cache trouble never fails the listing
		d.log.Warn("Caching channel page failed", "error", err)
	}
	return page, nil
}

// Cached returns the locally mirrored channel list for cold starts.
func (d *Directory) Cached() ([]domain.Channel, error) {
	return d.cache.GetChannels(d.pageSize)
}

// Create validates input locally, then asks the backend. The creator is
// always part of the member list and must not be its only entry.
func (d *Directory) Create(ctx context.Context, name string, memberIDs []string) (domain.Channel, error) {
	others := lo.Filter(memberIDs, func(id string, _ int) bool {
		return id != d.current.UserID && id != ""
	})
	request := createRequest{Name: name, MemberIDs: others}
	if err := validate.Struct(request); err != nil {
		return domain.Channel{}, errors.Wrap(errors.CodeValidation,
			"channel needs a name and at least one member beyond the creator", err)
	}

	// The creator joins as operator, like every group-channel backend does.
	members := lo.Uniq(append(others, d.current.UserID))
	channel, err := d.remote.CreateChannel(ctx, name, members, []string{d.current.UserID})
	if err != nil {
		return domain.Channel{}, errors.Transport("creating channel failed", err)
	}
	if err := d.cache.StoreChannels([]domain.Channel{channel}); err != nil {
		d.log.Warn("Caching created channel failed", "channel", channel.URL, "error", err)
	}
	return channel, nil
}

// Delete removes a channel. Deleting an already-deleted channel is
// success from the caller's perspective: the end state matches intent.
func (d *Directory) Delete(ctx context.Context, url string) error {
	err := d.remote.DeleteChannel(ctx, url)
	switch {
	case err == nil:
	case errors.HasCode(err, errors.CodeNotFound):
		d.log.Debug("Channel already deleted", "channel", url)
	default:
		return errors.Transport(fmt.Sprintf("deleting channel %s failed", url), err)
	}

	if err := d.cache.DeleteChannel(url); err != nil {
		d.log.Warn("Evicting deleted channel from cache failed", "channel", url, "error", err)
	}
	return nil
}
