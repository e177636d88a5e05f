// Package communication lists the educator's forums and video sessions and
// composes messages to students.
package communication

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/ui"
	"github.com/agenticlearn/educator-portal/pkg/validation"
)

const (
	RegionContainer = "communication-content"
	RegionCompose   = "communication-compose"

	ActionRefresh = "communication-refresh"
	ActionSend    = "communication-send"
)

type API interface {
	GetForums(ctx context.Context) ([]map[string]any, error)
	GetVideoSessions(ctx context.Context) ([]map[string]any, error)
	SendMessage(ctx context.Context, msg map[string]any) (map[string]any, error)
}

// Compose is the message form.
type Compose struct {
	StudentID string `form:"student_id" validate:"required,educatorid"`
	Email     string `form:"email" validate:"omitempty,email"`
	Subject   string `form:"subject" validate:"required,max=200"`
	Message   string `form:"message" validate:"required,max=5000"`
	Priority  string `form:"priority" validate:"omitempty,priority"`
}

// ComposeFromValues reads the posted form, trimming every field.
func ComposeFromValues(v url.Values) Compose {
	get := func(k string) string { return strings.TrimSpace(v.Get(k)) }
	return Compose{
		StudentID: get("student_id"),
		Email:     get("email"),
		Subject:   get("subject"),
		Message:   get("message"),
		Priority:  get("priority"),
	}
}

func (c Compose) payload() map[string]any {
	out := map[string]any{
		"student_id": c.StudentID,
		"subject":    c.Subject,
		"message":    c.Message,
		"priority":   c.Priority,
	}
	if c.Email != "" {
		out["email"] = c.Email
	}
	if c.Priority == "" {
		out["priority"] = "normal"
	}
	return out
}

type Module struct {
	api    API
	doc    *view.Document
	notify ui.Notifier
	logger *logrus.Logger

	forums   []map[string]any
	sessions []map[string]any
	compose  Compose
}

func New(api API, doc *view.Document, notify ui.Notifier, logger *logrus.Logger) *Module {
	return &Module{api: api, doc: doc, notify: notify, logger: logger}
}

// Compose returns the form as it is currently shown.
func (m *Module) Compose() Compose { return m.compose }

// Initialize loads forums and video sessions, renders the page and binds the
// refresh and send actions.
func (m *Module) Initialize(ctx context.Context) error {
	err := m.Load(ctx)
	if err != nil {
		m.notify.Notify(ui.KindError, "Failed to load communication data: "+err.Error())
		m.log(err, "communication load failed")
	}
	if rerr := m.Render(ctx); rerr != nil {
		return rerr
	}
	m.doc.On(ActionRefresh, func(ctx context.Context, _ view.Event) error { return m.Initialize(ctx) })
	m.doc.On(ActionSend, func(ctx context.Context, ev view.Event) error {
		return m.Send(ctx, ComposeFromValues(ev.Values))
	})
	return err
}

func (m *Module) Load(ctx context.Context) error {
	var errs []error
	forums, err := m.api.GetForums(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("forums: %w", err))
	}
	sessions, err := m.api.GetVideoSessions(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("video sessions: %w", err))
	}
	m.forums, m.sessions = forums, sessions
	return errors.Join(errs...)
}

// Send validates c and posts it. An invalid form is kept and answered with a
// warning; a failed post keeps the form and returns the error.
func (m *Module) Send(ctx context.Context, c Compose) error {
	if err := validation.Validator().Struct(c); err != nil {
		m.compose = c
		m.notify.Notify(ui.KindWarning, "Please check the message: "+describe(validation.ToDetails(err)))
		return m.renderCompose(ctx)
	}

	out, err := m.api.SendMessage(ctx, c.payload())
	if err != nil {
		m.compose = c
		m.notify.Notify(ui.KindError, "Failed to send message: "+err.Error())
		m.log(err, "send message failed")
		return errors.Join(err, m.renderCompose(ctx))
	}

	m.compose = Compose{}
	note := "Message sent to " + c.StudentID
	if view.Str(out["status"]) == "queued" {
		note += " (email notification queued)"
	}
	m.notify.Notify(ui.KindSuccess, note)
	return m.renderCompose(ctx)
}

func (m *Module) Render(ctx context.Context) error {
	if err := m.doc.Render(ctx, RegionContainer, ui.With(ui.Wrap(`<div class="communication">`, `</div>`),
		ui.With(ui.Wrap(`<div class="communication-header"><h2>💬 Communication</h2>`, `</div>`),
			ui.ActionButton(view.ActionPath(ActionRefresh), "btn btn-secondary", "🔄 Refresh")),
		ui.With(ui.Panel("communication-compose", "✉️ Message a Student"), view.Slot(RegionCompose, "")),
		forumsPanel(m.forums),
		sessionsPanel(m.sessions),
	)); err != nil {
		return err
	}
	return m.renderCompose(ctx)
}

// renderCompose always redelivers the form so the browser drops what was typed
// in favour of the form state held here.
func (m *Module) renderCompose(ctx context.Context) error {
	if err := m.doc.Render(ctx, RegionCompose, composeForm(m.compose)); err != nil {
		return err
	}
	m.doc.Invalidate(RegionCompose)
	return nil
}

func (m *Module) log(err error, msg string) {
	if m.logger != nil {
		m.logger.WithError(err).WithField("module", "communication").Warn(msg)
	}
}

func describe(details map[string]string) string {
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+details[f])
	}
	return strings.Join(parts, "; ")
}

var priorities = []string{"normal", "high", "low"}

func composeForm(c Compose) templ.Component {
	fields := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="field"><label for="compose-student">Student ID:</label><input type="text" id="compose-student" name="student_id" value="%s"></div>`+
				`<div class="field"><label for="compose-email">Student Email:</label><input type="email" id="compose-email" name="email" value="%s"></div>`+
				`<div class="field"><label for="compose-subject">Subject:</label><input type="text" id="compose-subject" name="subject" value="%s"></div>`+
				`<div class="field"><label for="compose-message">Message:</label><textarea id="compose-message" name="message" rows="4">%s</textarea></div>`+
				`<div class="field"><label for="compose-priority">Priority:</label><select id="compose-priority" name="priority">`,
			templ.EscapeString(c.StudentID), templ.EscapeString(c.Email), templ.EscapeString(c.Subject), templ.EscapeString(c.Message))
		if err != nil {
			return err
		}
		for _, p := range priorities {
			selected := ""
			if p == c.Priority {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, p, selected, p); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `</select></div><div class="form-actions"><button type="submit" class="btn btn-primary">📤 Send Message</button></div>`)
		return err
	})
	return ui.With(ui.ActionForm(view.ActionPath(ActionSend), "compose-form", ""), fields)
}

func forumsPanel(items []map[string]any) templ.Component {
	if len(items) == 0 {
		return ui.With(ui.Panel("communication-forums", "🗣️ Discussion Forums"), ui.EmptyLine("No active forums"))
	}
	return ui.With(ui.Panel("communication-forums", "🗣️ Discussion Forums"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="forums">`); err != nil {
			return err
		}
		for _, f := range items {
			_, err := fmt.Fprintf(w, `<li><strong>%s</strong><p>%s</p><small>%s posts · %s participants · last activity %s</small></li>`,
				templ.EscapeString(view.Str(f["title"])), templ.EscapeString(view.Str(f["description"])),
				templ.EscapeString(view.Num(f["posts_count"])), templ.EscapeString(view.Num(f["participants_count"])),
				templ.EscapeString(view.When(f["last_activity"])))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	}))
}

func sessionsPanel(items []map[string]any) templ.Component {
	if len(items) == 0 {
		return ui.With(ui.Panel("communication-sessions", "🎥 Video Sessions"), ui.EmptyLine("No scheduled sessions"))
	}
	return ui.With(ui.Panel("communication-sessions", "🎥 Video Sessions"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="sessions">`); err != nil {
			return err
		}
		for _, s := range items {
			_, err := fmt.Fprintf(w, `<li class="%s"><strong>%s</strong> <time>%s</time><small> · %s min · %s/%s participants</small> <a href="%s" target="_blank" rel="noopener">Join</a></li>`,
				ui.ClassAttr("session", "session-"+view.Str(s["status"])),
				templ.EscapeString(view.Str(s["title"])), templ.EscapeString(view.When(s["scheduled_at"])),
				templ.EscapeString(view.Num(s["duration_minutes"])),
				templ.EscapeString(view.Num(s["participants_count"])), templ.EscapeString(view.Num(s["max_participants"])),
				ui.Href(view.Str(s["meeting_url"])))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	}))
}
