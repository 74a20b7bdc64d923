// Package telegram provides the minimal Bot API surface the placeholder feed
// needs.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Telegram Bot API.
type Client struct {
	httpClient *http.Client
	token      string
}

func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
	}
}

type tgResponse[T any] struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	Result      T      `json:"result"`
}

type chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Username string `json:"username"`
}

// ChannelInfo is the public channel metadata shown above the feed.
type ChannelInfo struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Title      string `json:"title"`
	ChannelURL string `json:"channel_url"`
}

// GetChannelInfo fetches public channel metadata by @username.
func (c *Client) GetChannelInfo(ctx context.Context, username string) (*ChannelInfo, error) {
	if c.token == "" {
		return nil, fmt.Errorf("bot token is not configured")
	}

	username = strings.TrimPrefix(username, "@")
	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/getChat", c.token)
	params := url.Values{"chat_id": {"@" + username}}

	var result tgResponse[chat]
	if err := c.makeRequest(ctx, endpoint, params, &result); err != nil {
		return nil, fmt.Errorf("getChat: %w", err)
	}

	return &ChannelInfo{
		ID:         result.Result.ID,
		Username:   result.Result.Username,
		Title:      result.Result.Title,
		ChannelURL: "https://t.me/" + result.Result.Username,
	}, nil
}

func (c *Client) makeRequest(ctx context.Context, endpoint string, params url.Values, dest interface{ ok() (bool, string) }) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if ok, description := dest.ok(); !ok {
		return fmt.Errorf("telegram API error: %s", description)
	}
	return nil
}

func (r *tgResponse[T]) ok() (bool, string) {
	return r.Ok, r.Description
}
