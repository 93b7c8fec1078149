// Package remote is the HTTP JSON implementation of the messaging
// backend contract.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"chat-session/contract"
	"chat-session/domain"
	"chat-session/errors"
	"chat-session/infrastructure/wire"
)

const defaultRequestTimeout = 10 * time.Second

// transport injects the base URL and bearer token into every request.
type transport struct {
	baseURL string
	token   string
	inner   http.RoundTripper
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	target, err := url.Parse(t.baseURL + req.URL.String())
	if err != nil {
		return nil, err
	}
	req.URL = target
	req.Header.Set("Content-Type", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.inner.RoundTrip(req)
}

// Client talks to the channel backend over its REST surface.
type Client struct {
	http *http.Client
	log  *slog.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &transport{
				baseURL: baseURL,
				token:   token,
				inner:   http.DefaultTransport,
			},
		},
		log: log,
	}
}

var _ contract.RemoteChannelService = (*Client)(nil)

type channelPage struct {
	Channels   []wire.Channel `json:"channels"`
	NextCursor *string        `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
}

type historyPage struct {
	Messages   []wire.Message `json:"messages"`
	NextCursor *string        `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
}

type createChannelRequest struct {
	Name        string   `json:"name"`
	MemberIDs   []string `json:"member_ids"`
	OperatorIDs []string `json:"operator_ids,omitempty"`
}

type sendMessageRequest struct {
	Body       string           `json:"body"`
	Attachment *wire.Attachment `json:"attachment,omitempty"`
}

type editMessageRequest struct {
	Body string `json:"body"`
}

type inviteRequest struct {
	UserIDs []string `json:"user_ids"`
}

type banRequest struct {
	UserID          string `json:"user_id"`
	DurationSeconds int64  `json:"duration_seconds,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

type operatorRequest struct {
	UserID string `json:"user_id"`
	Grant  bool   `json:"grant"`
}

func (c *Client) ListChannels(ctx context.Context, cursor *string, pageSize int) (contract.ChannelPage, error) {
	query := url.Values{"limit": {strconv.Itoa(pageSize)}}
	if cursor != nil {
		query.Set("cursor", *cursor)
	}

	var page channelPage
	if err := c.do(ctx, http.MethodGet, "/channels?"+query.Encode(), nil, &page); err != nil {
		return contract.ChannelPage{}, err
	}

	result := contract.ChannelPage{NextCursor: page.NextCursor, HasMore: page.HasMore}
	for _, channel := range page.Channels {
		result.Channels = append(result.Channels, channel.ToDomain())
	}
	return result, nil
}

func (c *Client) CreateChannel(ctx context.Context, name string, memberIDs, operatorIDs []string) (domain.Channel, error) {
	var created wire.Channel
	payload := createChannelRequest{Name: name, MemberIDs: memberIDs, OperatorIDs: operatorIDs}
	if err := c.do(ctx, http.MethodPost, "/channels", payload, &created); err != nil {
		return domain.Channel{}, err
	}
	return created.ToDomain(), nil
}

func (c *Client) DeleteChannel(ctx context.Context, channelURL string) error {
	return c.do(ctx, http.MethodDelete, "/channels/"+url.PathEscape(channelURL), nil, nil)
}

func (c *Client) JoinHistory(ctx context.Context, channelURL string, since time.Time, pageSize int) (contract.HistoryPage, error) {
	query := url.Values{"limit": {strconv.Itoa(pageSize)}}
	if !since.IsZero() {
		query.Set("since", strconv.FormatInt(since.UnixMilli(), 10))
	}

	var page historyPage
	path := "/channels/" + url.PathEscape(channelURL) + "/messages?" + query.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return contract.HistoryPage{}, err
	}

	result := contract.HistoryPage{NextCursor: page.NextCursor, HasMore: page.HasMore}
	for _, message := range page.Messages {
		result.Messages = append(result.Messages, message.ToDomain())
	}
	return result, nil
}

func (c *Client) SendMessage(ctx context.Context, channelURL, body string, attachment *domain.Attachment) (domain.Message, error) {
	var sent wire.Message
	payload := sendMessageRequest{Body: body, Attachment: wire.FromAttachment(attachment)}
	path := "/channels/" + url.PathEscape(channelURL) + "/messages"
	if err := c.do(ctx, http.MethodPost, path, payload, &sent); err != nil {
		return domain.Message{}, err
	}
	return sent.ToDomain(), nil
}

func (c *Client) EditMessage(ctx context.Context, channelURL, serverID, body string) (domain.Message, error) {
	var edited wire.Message
	path := "/channels/" + url.PathEscape(channelURL) + "/messages/" + url.PathEscape(serverID)
	if err := c.do(ctx, http.MethodPut, path, editMessageRequest{Body: body}, &edited); err != nil {
		return domain.Message{}, err
	}
	return edited.ToDomain(), nil
}

func (c *Client) DeleteMessage(ctx context.Context, channelURL, serverID string) error {
	path := "/channels/" + url.PathEscape(channelURL) + "/messages/" + url.PathEscape(serverID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) InviteUsers(ctx context.Context, channelURL string, userIDs []string) error {
	path := "/channels/" + url.PathEscape(channelURL) + "/invitations"
	return c.do(ctx, http.MethodPost, path, inviteRequest{UserIDs: userIDs}, nil)
}

func (c *Client) BanUser(ctx context.Context, channelURL, userID string, duration time.Duration, reason string) error {
	payload := banRequest{
		UserID:          userID,
		DurationSeconds: int64(duration.Seconds()),
		Reason:          reason,
	}
	return c.do(ctx, http.MethodPost, "/channels/"+url.PathEscape(channelURL)+"/bans", payload, nil)
}

func (c *Client) UnbanUser(ctx context.Context, channelURL, userID string) error {
	path := "/channels/" + url.PathEscape(channelURL) + "/bans/" + url.PathEscape(userID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) SetOperatorRole(ctx context.Context, channelURL, userID string, grant bool) error {
	path := "/channels/" + url.PathEscape(channelURL) + "/operators"
	return c.do(ctx, http.MethodPost, path, operatorRequest{UserID: userID, Grant: grant}, nil)
}

func (c *Client) ListBannedUsers(ctx context.Context, channelURL string) ([]domain.User, error) {
	var banned []wire.User
	path := "/channels/" + url.PathEscape(channelURL) + "/bans"
	if err := c.do(ctx, http.MethodGet, path, nil, &banned); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(banned))
	for _, user := range banned {
		users = append(users, user.ToDomain())
	}
	return users, nil
}

// do runs one request against the backend and decodes the response into
// out when it is non-nil.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(errors.CodeUnknown, "encoding request body", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, body)
	if err != nil {
		return errors.Wrap(errors.CodeUnknown, "building request", err)
	}

	c.log.Debug("calling backend", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Transport(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Transport(fmt.Sprintf("decoding %s %s response", method, path), err)
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
}

func statusError(resp *http.Response) error {
	var body errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)
	message := body.Message
	if message == "" {
		message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return errors.Validation(message)
	case http.StatusForbidden:
		return errors.Permission(message)
	case http.StatusNotFound:
		return errors.NotFound(message)
	case http.StatusConflict:
		return errors.Conflict(message)
	default:
		return errors.Transport(message, nil)
	}
}
