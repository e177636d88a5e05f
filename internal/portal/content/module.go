// Package content lists the educator's content library next to the AI
// insights about it.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/ui"
)

const (
	RegionContainer = "content-content"
	ActionRefresh   = "content-refresh"
)

type API interface {
	GetContentLibrary(ctx context.Context) ([]map[string]any, error)
	GetAIInsights(ctx context.Context) ([]map[string]any, error)
}

type Module struct {
	api    API
	doc    *view.Document
	notify ui.Notifier
	logger *logrus.Logger

	library  []map[string]any
	insights []map[string]any
}

func New(api API, doc *view.Document, notify ui.Notifier, logger *logrus.Logger) *Module {
	return &Module{api: api, doc: doc, notify: notify, logger: logger}
}

func (m *Module) Initialize(ctx context.Context) error {
	err := m.Load(ctx)
	if err != nil {
		m.notify.Notify(ui.KindError, "Failed to load content: "+err.Error())
		if m.logger != nil {
			m.logger.WithError(err).WithField("module", "content").Warn("content load failed")
		}
	}
	if rerr := m.Render(ctx); rerr != nil {
		return rerr
	}
	m.doc.On(ActionRefresh, func(ctx context.Context, _ view.Event) error { return m.Initialize(ctx) })
	return err
}

func (m *Module) Load(ctx context.Context) error {
	var errs []error
	library, err := m.api.GetContentLibrary(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("content library: %w", err))
	}
	insights, err := m.api.GetAIInsights(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("ai insights: %w", err))
	}
	m.library, m.insights = library, insights
	return errors.Join(errs...)
}

func (m *Module) Render(ctx context.Context) error {
	return m.doc.Render(ctx, RegionContainer, ui.With(ui.Wrap(`<div class="content-library">`, `</div>`),
		ui.With(ui.Wrap(`<div class="content-header"><h2>📚 Content Library</h2>`, `</div>`),
			ui.With(ui.Wrap(`<p class="content-count">`, `</p>`), ui.Text(fmt.Sprintf("%d items", len(m.library)))),
			ui.ActionButton(view.ActionPath(ActionRefresh), "btn btn-secondary", "🔄 Refresh")),
		libraryPanel(m.library),
		insightsPanel(m.insights),
	))
}

var typeIcons = map[string]string{
	"video":       "🎬",
	"document":    "📄",
	"interactive": "🧩",
	"audio":       "🎧",
}

func libraryPanel(items []map[string]any) templ.Component {
	if len(items) == 0 {
		return ui.With(ui.Panel("content-items", "🗂️ My Content"), ui.EmptyLine("No content uploaded yet"))
	}
	return ui.With(ui.Panel("content-items", "🗂️ My Content"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<table class="content-table"><thead><tr><th>Title</th><th>Type</th><th>Views</th><th>Rating</th><th>Tags</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, it := range items {
			typ := view.Str(it["type"])
			_, err := fmt.Fprintf(w, `<tr><td><a href="%s" target="_blank" rel="noopener">%s</a></td><td>%s %s · %s</td><td>%s</td><td>⭐ %s</td><td>%s</td></tr>`,
				ui.Href(view.Str(it["file_url"])), templ.EscapeString(view.Str(it["title"])),
				typeIcons[typ], templ.EscapeString(typ), templ.EscapeString(view.Str(it["file_format"])),
				templ.EscapeString(view.Num(it["views_count"])), templ.EscapeString(view.Fixed(it["rating"])),
				templ.EscapeString(strings.Join(view.Strings(it["tags"]), ", ")))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	}))
}

func insightsPanel(items []map[string]any) templ.Component {
	if len(items) == 0 {
		return ui.With(ui.Panel("content-insights", "🤖 AI Insights"), ui.EmptyLine("No insights yet"))
	}
	return ui.With(ui.Panel("content-insights", "🤖 AI Insights"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="insights">`); err != nil {
			return err
		}
		for _, it := range items {
			badge := ""
			if it["action_required"] == true {
				badge = ` <span class="badge badge-warning">Action required</span>`
			}
			_, err := fmt.Fprintf(w, `<li class="%s"><strong>%s</strong>%s<p>%s</p><small>Confidence %s%%</small></li>`,
				ui.ClassAttr("insight", "insight-"+view.Str(it["insight_type"])),
				templ.EscapeString(view.Str(it["title"])), badge, templ.EscapeString(view.Str(it["description"])),
				templ.EscapeString(view.Fixed(it["confidence_score"])))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	}))
}
