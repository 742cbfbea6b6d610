package chat

import (
	"context"
	"sync"
)

// Notifier posts room answers and reviewer DMs through the gateway.
// Every room post carries the bot prefix so relayed answers are
// recognizable; DMs go out unprefixed
type Notifier struct {
	c      *Client
	prefix string

	mu     sync.Mutex
	selfID string
}

// NewNotifier wraps a client. prefix may be empty to disable tagging
func NewNotifier(c *Client, prefix string) *Notifier {
	return &Notifier{c: c, prefix: prefix}
}

// Deliver posts text to a room
func (n *Notifier) Deliver(ctx context.Context, roomID, text string) error {
	msg := text
	if n.prefix != "" {
		msg = n.prefix + " " + text
	}
	_, err := n.c.CreatePost(ctx, roomID, msg, "")
	return err
}

// NotifyUser opens a direct channel to userID and posts text
func (n *Notifier) NotifyUser(ctx context.Context, userID, text string) error {
	self, err := n.self(ctx)
	if err != nil {
		return err
	}
	ch, err := n.c.OpenDirect(ctx, self, userID)
	if err != nil {
		return err
	}
	_, err = n.c.CreatePost(ctx, ch.ID, text, "")
	return err
}

// self resolves and caches the bot's own user id for DM channels
func (n *Notifier) self(ctx context.Context) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.selfID != "" {
		return n.selfID, nil
	}
	me, err := n.c.Me(ctx)
	if err != nil {
		return "", err
	}
	n.selfID = me.ID
	return n.selfID, nil
}
