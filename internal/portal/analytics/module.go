// Package analytics shows the educator's aggregated learning analytics and the
// students flagged as at risk.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/ui"
)

const (
	RegionContainer = "analytics-content"
	ActionRefresh   = "analytics-refresh"
)

type API interface {
	GetAdvancedAnalytics(ctx context.Context) (map[string]any, error)
	GetStudentAlerts(ctx context.Context) ([]map[string]any, error)
}

type Module struct {
	api    API
	doc    *view.Document
	notify ui.Notifier
	logger *logrus.Logger

	learning map[string]any
	alerts   []map[string]any
}

func New(api API, doc *view.Document, notify ui.Notifier, logger *logrus.Logger) *Module {
	return &Module{api: api, doc: doc, notify: notify, logger: logger}
}

// Learning returns the last loaded learning metrics, nil when unavailable.
func (m *Module) Learning() map[string]any { return m.learning }

// Initialize loads and renders both panels. A failed panel renders empty and
// the failure is reported in one error notification.
func (m *Module) Initialize(ctx context.Context) error {
	err := m.Load(ctx)
	if err != nil {
		m.notify.Notify(ui.KindError, "Failed to load analytics: "+err.Error())
		if m.logger != nil {
			m.logger.WithError(err).WithField("module", "analytics").Warn("analytics load failed")
		}
	}
	if rerr := m.Render(ctx); rerr != nil {
		return rerr
	}
	m.doc.On(ActionRefresh, func(ctx context.Context, _ view.Event) error {
		if err := m.Initialize(ctx); err != nil {
			return err
		}
		m.notify.Notify(ui.KindSuccess, "Analytics data updated")
		return nil
	})
	return err
}

func (m *Module) Load(ctx context.Context) error {
	var errs []error
	body, err := m.api.GetAdvancedAnalytics(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("learning analytics: %w", err))
	}
	learning, _ := body["learning"].(map[string]any)
	alerts, err := m.api.GetStudentAlerts(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("student alerts: %w", err))
	}
	m.learning, m.alerts = learning, alerts
	return errors.Join(errs...)
}

func (m *Module) Render(ctx context.Context) error {
	return m.doc.Render(ctx, RegionContainer, ui.With(ui.Wrap(`<div class="analytics-dashboard">`, `</div>`),
		ui.With(ui.Wrap(`<div class="analytics-header"><h2>📊 Learning Analytics</h2>`, `</div>`),
			ui.ActionButton(view.ActionPath(ActionRefresh), "btn btn-secondary", "🔄 Refresh")),
		metricsPanel(m.learning),
		masteryPanel(m.learning),
		alertsPanel(m.alerts),
	))
}

var metrics = []struct {
	key, label, unit string
	format           func(any) string
}{
	{"studentCount", "Students Tracked", "", view.Num},
	{"completionRate", "Completion Rate", "%", view.Fixed},
	{"retentionRate", "Retention Rate", "%", view.Fixed},
	{"averageSessionDuration", "Avg. Session", " min", view.Fixed},
	{"learningVelocity", "Learning Velocity", "x", view.Fixed},
	{"totalLearningTime", "Total Learning Time", " min", view.Num},
}

func metricsPanel(learning map[string]any) templ.Component {
	if learning == nil {
		return ui.With(ui.Panel("analytics-metrics", "📈 Learning Metrics"), ui.EmptyLine("Analytics data unavailable"))
	}
	return ui.With(ui.Panel("analytics-metrics", "📈 Learning Metrics"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="metric-grid">`); err != nil {
			return err
		}
		for _, mt := range metrics {
			_, err := fmt.Fprintf(w, `<div class="metric"><div class="metric-value">%s%s</div><div class="metric-label">%s</div></div>`,
				templ.EscapeString(mt.format(learning[mt.key])), templ.EscapeString(mt.unit), templ.EscapeString(mt.label))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	}))
}

func masteryPanel(learning map[string]any) templ.Component {
	mastery, _ := learning["conceptMastery"].(map[string]any)
	if len(mastery) == 0 {
		return ui.With(ui.Panel("analytics-mastery", "🎯 Concept Mastery"), ui.EmptyLine("No concept mastery data yet"))
	}
	concepts := make([]string, 0, len(mastery))
	for c := range mastery {
		concepts = append(concepts, c)
	}
	sort.Strings(concepts)
	return ui.With(ui.Panel("analytics-mastery", "🎯 Concept Mastery"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="mastery">`); err != nil {
			return err
		}
		for _, c := range concepts {
			_, err := fmt.Fprintf(w, `<li><span class="concept">%s</span> <span class="score">%s%%</span></li>`,
				templ.EscapeString(strings.ReplaceAll(c, "_", " ")), templ.EscapeString(view.Fixed(mastery[c])))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	}))
}

func alertsPanel(alerts []map[string]any) templ.Component {
	if len(alerts) == 0 {
		return ui.With(ui.Panel("analytics-alerts", "⚠️ Student Alerts"), ui.EmptyLine("No students at risk"))
	}
	return ui.With(ui.Panel("analytics-alerts", "⚠️ Student Alerts"), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="alerts">`); err != nil {
			return err
		}
		for _, a := range alerts {
			meta, _ := a["metadata"].(map[string]any)
			_, err := fmt.Fprintf(w, `<li class="%s"><strong>%s</strong><p>%s</p><small>Confidence %s%% · %s</small></li>`,
				ui.ClassAttr("alert", templ.KV("action-required", a["action_required"] == true)),
				templ.EscapeString(view.Str(a["title"])), templ.EscapeString(view.Str(a["description"])),
				templ.EscapeString(view.Fixed(a["confidence_score"])),
				templ.EscapeString(strings.Join(view.Strings(meta["risk_factors"]), ", ")))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	}))
}
