// Package overview is the portal landing page: system health, the last day's
// student activity and the educator's inbox.
package overview

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/ui"
)

const (
	RegionContainer = "overview-content"
	ActionRefresh   = "overview-refresh"
)

type API interface {
	GetSystemHealth(ctx context.Context) (map[string]any, error)
	GetActivityTimeline(ctx context.Context) ([]map[string]any, error)
	GetMessages(ctx context.Context) ([]map[string]any, error)
}

type Module struct {
	api    API
	doc    *view.Document
	notify ui.Notifier
	logger *logrus.Logger

	health   map[string]any
	timeline []map[string]any
	messages []map[string]any
}

func New(api API, doc *view.Document, notify ui.Notifier, logger *logrus.Logger) *Module {
	return &Module{api: api, doc: doc, notify: notify, logger: logger}
}

// Initialize loads all three panels and renders them. A failing panel is shown
// empty; the failures are reported in one error notification.
func (m *Module) Initialize(ctx context.Context) error {
	err := m.Load(ctx)
	if err != nil {
		m.notify.Notify(ui.KindError, "Overview failed to load: "+err.Error())
		if m.logger != nil {
			m.logger.WithError(err).WithField("module", "overview").Warn("overview load failed")
		}
	}
	if rerr := m.Render(ctx); rerr != nil {
		return rerr
	}
	m.doc.On(ActionRefresh, func(ctx context.Context, _ view.Event) error {
		return m.Initialize(ctx)
	})
	return err
}

func (m *Module) Load(ctx context.Context) error {
	var errs []error
	health, err := m.api.GetSystemHealth(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("system health: %w", err))
	}
	timeline, err := m.api.GetActivityTimeline(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("activity timeline: %w", err))
	}
	messages, err := m.api.GetMessages(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("messages: %w", err))
	}
	m.health, m.timeline, m.messages = health, timeline, messages
	return errors.Join(errs...)
}

func (m *Module) Render(ctx context.Context) error {
	return m.doc.Render(ctx, RegionContainer, ui.With(ui.Wrap(`<div class="overview">`, `</div>`),
		toolbar(),
		healthPanel(m.health),
		timelinePanel(m.timeline),
		messagesPanel(m.messages),
	))
}

func toolbar() templ.Component {
	return ui.With(ui.Wrap(`<div class="overview-toolbar">`, `</div>`),
		ui.ActionButton(view.ActionPath(ActionRefresh), "btn btn-secondary", "🔄 Refresh"))
}

func panel(title string, body ...templ.Component) templ.Component {
	return ui.With(ui.Panel("overview-panel", title), body...)
}

func healthPanel(h map[string]any) templ.Component {
	if h == nil {
		return panel("🖥️ System Health", ui.EmptyLine("Health data unavailable"))
	}
	comps, _ := h["components"].([]any)
	return panel("🖥️ System Health", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<p class="overall">Overall: %s</p><ul>`, templ.EscapeString(view.Str(h["status"]))); err != nil {
			return err
		}
		for _, c := range comps {
			cm, ok := c.(map[string]any)
			if !ok {
				continue
			}
			status := view.Str(cm["status"])
			_, err := fmt.Fprintf(w, `<li class="%s">%s: %s · %s%% uptime · %sms</li>`,
				ui.ClassAttr("status-"+status), templ.EscapeString(view.Str(cm["component_name"])), templ.EscapeString(status),
				templ.EscapeString(view.Num(cm["uptime_percentage"])), templ.EscapeString(view.Num(cm["response_time_ms"])))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	}))
}

func timelinePanel(items []map[string]any) templ.Component {
	if len(items) == 0 {
		return panel("📈 Recent Activity", ui.EmptyLine("No activity in the last 24 hours"))
	}
	return panel("📈 Recent Activity", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul>`); err != nil {
			return err
		}
		for _, it := range items {
			_, err := fmt.Fprintf(w, `<li><strong>%s</strong> %s<time> %s</time></li>`,
				templ.EscapeString(view.Str(it["student_id"])), templ.EscapeString(view.Str(it["description"])),
				templ.EscapeString(view.When(it["created_at"])))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	}))
}

func messagesPanel(items []map[string]any) templ.Component {
	if len(items) == 0 {
		return panel("💬 Messages", ui.EmptyLine("No messages"))
	}
	return panel("💬 Messages", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul>`); err != nil {
			return err
		}
		for _, it := range items {
			_, err := fmt.Fprintf(w, `<li class="%s"><strong>%s</strong> from %s · %s</li>`,
				ui.ClassAttr("message", templ.KV("unread", view.Str(it["status"]) == "unread")),
				templ.EscapeString(view.Str(it["subject"])), templ.EscapeString(view.Str(it["from_student_id"])),
				templ.EscapeString(view.Str(it["priority"])))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	}))
}
