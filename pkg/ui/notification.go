package ui

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/a-h/templ"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Notification is a transient message shown to the user once.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Notifier accepts notifications for display.
type Notifier interface {
	Notify(kind Kind, message string)
}

// Center queues notifications until they are rendered.
type Center struct {
	mu    sync.Mutex
	items []Notification
}

func NewCenter() *Center { return &Center{} }

func (c *Center) Notify(kind Kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, Notification{Kind: kind, Message: message})
}

// Items returns a copy of the queued notifications.
func (c *Center) Items() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.items...)
}

// Drain returns the queued notifications and empties the queue.
func (c *Center) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	return out
}

var kindIcons = map[Kind]string{
	KindSuccess: "✅",
	KindError:   "❌",
	KindInfo:    "ℹ️",
	KindWarning: "⚠️",
}

// NotificationList renders the toast stack.
func NotificationList(items []Notification) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		for _, n := range items {
			_, err := fmt.Fprintf(w, `<div class="%s" role="status">%s %s</div>`,
				ClassAttr("notification", "notification-"+string(n.Kind)),
				kindIcons[n.Kind], templ.EscapeString(n.Message))
			if err != nil {
				return err
			}
		}
		return nil
	})
}
