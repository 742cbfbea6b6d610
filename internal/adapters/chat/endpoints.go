package chat

import (
	"context"
	json "encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Me fetches the bot's own user record
func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	if err := c.getJSON(ctx, "/api/v4/users/me", &out); err != nil {
		return User{}, err
	}
	return out, nil
}

// UserByUsername resolves a username to its user record
func (c *Client) UserByUsername(ctx context.Context, username string) (User, error) {
	var out User
	path := "/api/v4/users/username/" + url.PathEscape(username)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

// ChannelByID fetches a channel by id
func (c *Client) ChannelByID(ctx context.Context, id string) (Channel, error) {
	var out Channel
	path := "/api/v4/channels/" + url.PathEscape(id)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return Channel{}, err
	}
	return out, nil
}

// ChannelByName fetches a channel in a team by its url name
func (c *Client) ChannelByName(ctx context.Context, teamID, name string) (Channel, error) {
	var out Channel
	path := fmt.Sprintf("/api/v4/teams/%s/channels/name/%s",
		url.PathEscape(teamID), url.PathEscape(name))
	if err := c.getJSON(ctx, path, &out); err != nil {
		return Channel{}, err
	}
	return out, nil
}

// CreatePost posts a message into a channel, rootID threads the reply when set
func (c *Client) CreatePost(ctx context.Context, channelID, message, rootID string) (Post, error) {
	in := Post{ChannelID: channelID, Message: message, RootID: rootID}
	b, err := json.Marshal(in)
	if err != nil {
		return Post{}, err
	}
	var out Post
	if err := c.postJSON(ctx, "/api/v4/posts", b, &out); err != nil {
		return Post{}, err
	}
	return out, nil
}

// OpenDirect opens (or returns the existing) direct channel between two users
func (c *Client) OpenDirect(ctx context.Context, selfID, otherID string) (Channel, error) {
	b, err := json.Marshal([]string{selfID, otherID})
	if err != nil {
		return Channel{}, err
	}
	var out Channel
	if err := c.postJSON(ctx, "/api/v4/channels/direct", b, &out); err != nil {
		return Channel{}, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.decode(resp, path, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte, out any) error {
	resp, err := c.Do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.decode(resp, path, out)
}

func (c *Client) decode(resp *http.Response, path string, out any) error {
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("chat close body failed")
		}
	}()
	lim := io.LimitReader(resp.Body, 1<<20)
	b, err := io.ReadAll(lim)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
