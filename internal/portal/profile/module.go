// Package profile is the educator profile feature module of the portal.
//
// The module owns the profile record shown on the page. It loads the last
// cached snapshot for a fast first render, then the authoritative record from
// the API, and keeps the rendered regions in step with every state change.
package profile

import (
	"context"
	"errors"
	"time"

	"github.com/a-h/templ"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/ui"
)

// Regions owned by the module.
const (
	RegionContainer = "profile-content"
	RegionForm      = "profile-form"
)

// Actions the module registers on the document.
const (
	ActionToggleEdit     = "profile-toggle-edit"
	ActionSave           = "profile-save"
	ActionCancel         = "profile-cancel"
	ActionShowSettings   = "profile-settings"
	ActionSaveSettings   = "profile-save-settings"
	ActionChangePassword = "profile-change-password"
	ActionShowPrivacy    = "profile-privacy"
	ActionHideModal      = "modal-close"
)

// actions are the handlers bound while the module holds a record.
var actions = []string{
	ActionToggleEdit, ActionSave, ActionCancel, ActionShowSettings,
	ActionSaveSettings, ActionChangePassword, ActionShowPrivacy, ActionHideModal,
}

const (
	PagePath       = "/portal/profile"
	ExportPath     = "/portal/profile/export"
	ExportFileName = "my-profile-data.json"
)

// API is the part of the API client the module uses.
type API interface {
	GetProfile(ctx context.Context) (map[string]any, error)
	UpdateUserProfile(ctx context.Context, fields map[string]any) (map[string]any, error)
}

// Cache stores the last fetched profile.
type Cache interface {
	Read(ctx context.Context, key string) (entity.Profile, bool)
	Write(ctx context.Context, key string, p entity.Profile) error
}

// Shell is the cross-module state the module publishes to.
type Shell interface {
	SetCurrentUser(p entity.Profile)
	RenderHeader(ctx context.Context) error
}

type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "viewing"
}

type Module struct {
	api      API
	cache    Cache
	cacheKey string
	doc      *view.Document
	notify   ui.Notifier
	shell    Shell
	logger   *logrus.Logger
	now      func() time.Time

	profile entity.Profile
	mode    Mode
	draft   *Draft
}

type Option func(*Module)

func WithLogger(l *logrus.Logger) Option    { return func(m *Module) { m.logger = l } }
func WithClock(now func() time.Time) Option { return func(m *Module) { m.now = now } }
func WithCacheKey(key string) Option        { return func(m *Module) { m.cacheKey = key } }
func WithShell(s Shell) Option              { return func(m *Module) { m.shell = s } }

// DefaultCacheKey is the cache entry used when no key is configured.
const DefaultCacheKey = "educator:profile"

func New(api API, cache Cache, doc *view.Document, notify ui.Notifier, opts ...Option) *Module {
	m := &Module{
		api:      api,
		cache:    cache,
		cacheKey: DefaultCacheKey,
		doc:      doc,
		notify:   notify,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Profile returns the current in-memory record.
func (m *Module) Profile() entity.Profile { return m.profile }

func (m *Module) Mode() Mode { return m.mode }

// Draft returns the edit draft, nil outside Editing.
func (m *Module) Draft() *Draft { return m.draft }

// Initialize renders the cached record if there is one, then loads the record
// from the API and renders it. When the API load fails the module holds no
// record, shows the absence state, unbinds its actions, raises one error
// notification and returns the error.
func (m *Module) Initialize(ctx context.Context) error {
	if m.LoadFromCache(ctx) {
		if err := m.RenderProfileInterface(ctx); err != nil {
			m.debug("optimistic render failed", err)
		}
	}

	if err := m.LoadProfile(ctx); err != nil {
		m.profile = nil
		m.mode = Viewing
		m.draft = nil
		m.UnbindEventHandlers()
		if rerr := m.RenderProfileInterface(ctx); rerr != nil {
			err = errors.Join(err, rerr)
		}
		if rerr := m.HideModal(ctx); rerr != nil {
			err = errors.Join(err, rerr)
		}
		m.notify.Notify(ui.KindError, "Profile initialization failed: "+err.Error())
		m.logError("profile initialization failed", err)
		return err
	}

	if err := m.RenderProfileInterface(ctx); err != nil {
		return err
	}
	m.BindEventHandlers()
	return nil
}

// LoadFromCache assigns the cached record and reports whether there was one.
// A missing or unreadable entry leaves the state as it was.
func (m *Module) LoadFromCache(ctx context.Context) bool {
	if m.cache == nil {
		return false
	}
	p, ok := m.cache.Read(ctx, m.cacheKey)
	if !ok || p == nil {
		return false
	}
	m.profile = p
	return true
}

// LoadProfile fetches the record, unwraps its envelope, assigns it and writes
// it to the cache.
func (m *Module) LoadProfile(ctx context.Context) error {
	body, err := m.api.GetProfile(ctx)
	if err != nil {
		return err
	}
	m.profile = entity.ProfileFromEnvelope(body)
	m.writeCache(ctx)
	return nil
}

// RenderProfileInterface renders the whole container, form subregion included.
func (m *Module) RenderProfileInterface(ctx context.Context) error {
	if err := m.doc.Render(ctx, RegionContainer, containerView(m.profile, m.now())); err != nil {
		return err
	}
	return m.RenderProfileForm(ctx)
}

// RenderProfileForm renders the form subregion only.
func (m *Module) RenderProfileForm(ctx context.Context) error {
	if m.mode == Editing && m.draft != nil {
		return m.doc.Render(ctx, RegionForm, editView(m.draft))
	}
	return m.doc.Render(ctx, RegionForm, readView(m.profile))
}

// ToggleEdit flips between Viewing and Editing and re-renders the form.
func (m *Module) ToggleEdit(ctx context.Context) error {
	if m.mode == Editing {
		m.mode = Viewing
		m.draft = nil
	} else {
		m.mode = Editing
		m.draft = NewDraft(m.profile)
	}
	m.debugf("profile mode %s", m.mode)
	return m.RenderProfileForm(ctx)
}

// CancelEdit drops the draft and returns to Viewing.
func (m *Module) CancelEdit(ctx context.Context) error {
	m.mode = Viewing
	m.draft = nil
	return m.RenderProfileForm(ctx)
}

// SaveProfile merges d into the record and renders it, sends the update, then
// replaces the record with a fresh fetch. On failure the record from before
// the save is restored and rendered.
func (m *Module) SaveProfile(ctx context.Context, d Draft) error {
	before := m.profile.Clone()
	fields := d.Fields()

	m.profile = m.profile.Merge(fields)
	m.draft = &d
	if err := m.RenderProfileInterface(ctx); err != nil {
		m.debug("optimistic render failed", err)
	}

	if _, err := m.api.UpdateUserProfile(ctx, map[string]any(fields)); err != nil {
		return m.saveFailed(ctx, before, err)
	}
	body, err := m.api.GetProfile(ctx)
	if err != nil {
		return m.saveFailed(ctx, before, err)
	}

	m.profile = entity.ProfileFromEnvelope(body)
	m.writeCache(ctx)
	if m.shell != nil {
		m.shell.SetCurrentUser(m.profile)
		if err := m.shell.RenderHeader(ctx); err != nil {
			m.debug("header render failed", err)
		}
	}
	m.notify.Notify(ui.KindSuccess, "Profile updated successfully!")

	m.mode = Viewing
	m.draft = nil
	return m.RenderProfileInterface(ctx)
}

func (m *Module) saveFailed(ctx context.Context, before entity.Profile, err error) error {
	m.profile = before
	if rerr := m.RenderProfileInterface(ctx); rerr != nil {
		m.debug("restore render failed", rerr)
	}
	m.notify.Notify(ui.KindError, "Failed to update profile: "+err.Error())
	m.logError("profile save failed", err)
	return err
}

// ExportData serializes the in-memory record, null when there is none.
func (m *Module) ExportData() ([]byte, error) {
	if m.profile == nil {
		return []byte("null"), nil
	}
	return m.profile.MarshalIndent()
}

// Export serializes the record for download and confirms it with a success
// notification.
func (m *Module) Export() ([]byte, error) {
	b, err := m.ExportData()
	if err != nil {
		m.notify.Notify(ui.KindError, "Failed to export profile data: "+err.Error())
		return nil, err
	}
	m.notify.Notify(ui.KindSuccess, "Profile data exported successfully!")
	return b, nil
}

func (m *Module) ShowSettings(ctx context.Context) error {
	return m.ShowModal(ctx, settingsModal(m.profile))
}

// SaveSettings only acknowledges: preferences are not persisted.
func (m *Module) SaveSettings(ctx context.Context) error {
	m.notify.Notify(ui.KindSuccess, "Settings saved successfully!")
	return m.HideModal(ctx)
}

func (m *Module) ChangePassword(context.Context) error {
	m.notify.Notify(ui.KindInfo, "Password change feature coming soon!")
	return nil
}

func (m *Module) ShowPrivacy(context.Context) error {
	m.notify.Notify(ui.KindInfo, "Privacy settings feature coming soon!")
	return nil
}

func (m *Module) ShowModal(ctx context.Context, content templ.Component) error {
	return m.doc.Render(ctx, view.RegionModal, modalBackdrop(content))
}

func (m *Module) HideModal(ctx context.Context) error {
	return m.doc.Render(ctx, view.RegionModal, templ.NopComponent)
}

// BindEventHandlers registers the module's actions on the document.
func (m *Module) BindEventHandlers() {
	m.doc.On(ActionToggleEdit, func(ctx context.Context, _ view.Event) error { return m.ToggleEdit(ctx) })
	m.doc.On(ActionCancel, func(ctx context.Context, _ view.Event) error { return m.CancelEdit(ctx) })
	m.doc.On(ActionSave, func(ctx context.Context, ev view.Event) error {
		return m.SaveProfile(ctx, DraftFromValues(ev.Values))
	})
	m.doc.On(ActionShowSettings, func(ctx context.Context, _ view.Event) error { return m.ShowSettings(ctx) })
	m.doc.On(ActionSaveSettings, func(ctx context.Context, _ view.Event) error { return m.SaveSettings(ctx) })
	m.doc.On(ActionChangePassword, func(ctx context.Context, _ view.Event) error { return m.ChangePassword(ctx) })
	m.doc.On(ActionShowPrivacy, func(ctx context.Context, _ view.Event) error { return m.ShowPrivacy(ctx) })
	m.doc.On(ActionHideModal, func(ctx context.Context, _ view.Event) error { return m.HideModal(ctx) })
}

// UnbindEventHandlers removes the module's actions from the document.
func (m *Module) UnbindEventHandlers() {
	m.doc.Off(actions...)
}

func (m *Module) writeCache(ctx context.Context) {
	if m.cache == nil || m.profile == nil {
		return
	}
	if err := m.cache.Write(ctx, m.cacheKey, m.profile); err != nil && m.logger != nil {
		m.logger.WithError(err).WithField("key", m.cacheKey).Warn("profile cache write failed")
	}
}

func (m *Module) debug(msg string, err error) {
	if m.logger != nil {
		m.logger.WithError(err).Debug(msg)
	}
}

func (m *Module) debugf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Debugf(format, args...)
	}
}

func (m *Module) logError(msg string, err error) {
	if m.logger != nil {
		m.logger.WithError(err).WithField("module", "profile").Error(msg)
	}
}
