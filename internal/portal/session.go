package portal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	"github.com/agenticlearn/educator-portal/internal/portal/analytics"
	"github.com/agenticlearn/educator-portal/internal/portal/communication"
	"github.com/agenticlearn/educator-portal/internal/portal/content"
	"github.com/agenticlearn/educator-portal/internal/portal/overview"
	"github.com/agenticlearn/educator-portal/internal/portal/profile"
	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/apiclient"
	"github.com/agenticlearn/educator-portal/pkg/cache"
	"github.com/agenticlearn/educator-portal/pkg/ui"
)

// Deps are the collaborators shared by every session.
type Deps struct {
	AppName  string
	API      *apiclient.Client
	Cache    profile.Cache
	CacheKey string
	Logger   *logrus.Logger
}

// Session is one browser's portal. Actions run one at a time.
type Session struct {
	ID       string
	Doc      *view.Document
	Notices  *ui.Center
	Shell    *Shell
	Profile  *profile.Module
	Overview *overview.Module

	Analytics     *analytics.Module
	Communication *communication.Module
	Content       *content.Module

	appName  string
	mu       sync.Mutex
	lastSeen time.Time
}

func NewSession(id string, deps Deps) *Session {
	doc := view.NewDocument()
	notices := ui.NewCenter()
	shell := NewShell(doc, deps.AppName)

	opts := []profile.Option{profile.WithShell(shell), profile.WithLogger(deps.Logger)}
	if deps.CacheKey != "" {
		opts = append(opts, profile.WithCacheKey(deps.CacheKey))
	}
	s := &Session{
		ID:       id,
		Doc:      doc,
		Notices:  notices,
		Shell:    shell,
		Profile:  profile.New(deps.API, deps.Cache, doc, notices, opts...),
		Overview: overview.New(deps.API, doc, notices, deps.Logger),

		Analytics:     analytics.New(deps.API, doc, notices, deps.Logger),
		Communication: communication.New(deps.API, doc, notices, deps.Logger),
		Content:       content.New(deps.API, doc, notices, deps.Logger),

		appName:  deps.AppName,
		lastSeen: time.Now(),
	}
	return s
}

// Act runs fn under the session lock and returns the regions it changed,
// notifications included.
func (s *Session) Act(ctx context.Context, fn func(ctx context.Context) error) ([]view.Patch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	err := fn(ctx)
	if rerr := s.renderNotices(ctx); rerr != nil && err == nil {
		err = rerr
	}
	return s.Doc.Flush(), err
}

// Do runs fn under the session lock without delivering anything. Changed
// regions and notifications wait for the next page render.
func (s *Session) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return fn(ctx)
}

// Page runs fn under the session lock and renders the full page around the
// main region.
func (s *Session) Page(ctx context.Context, title, active, mainRegion string, fn func(ctx context.Context) error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	fnErr := fn(ctx)
	if err := s.ensureHeader(ctx); err != nil {
		return "", err
	}
	if err := s.renderNotices(ctx); err != nil {
		return "", err
	}
	html, err := s.Doc.Page(ctx, view.Layout(s.appName, title, active, view.Slot(mainRegion, "")))
	if err != nil {
		return "", err
	}
	return html, fnErr
}

// Export serializes the profile module's in-memory record. The confirmation
// notification shows on the next page or action.
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.Profile.Export()
}

func (s *Session) ensureHeader(ctx context.Context) error {
	if _, ok := s.Doc.Content(view.RegionHeader); ok {
		return nil
	}
	if p := s.Profile.Profile(); p != nil && s.Shell.CurrentUser() == nil {
		s.Shell.SetCurrentUser(p)
	}
	return s.Shell.RenderHeader(ctx)
}

func (s *Session) renderNotices(ctx context.Context) error {
	return s.Doc.Render(ctx, view.RegionNotifications, ui.NotificationList(s.Notices.Drain()))
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Manager keeps sessions by id.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	deps     Deps
	newID    func() string
}

func NewManager(deps Deps) *Manager {
	return &Manager{sessions: map[string]*Session{}, deps: deps, newID: uuid.NewString}
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Ensure returns the session for id, creating a new one with a fresh id when
// id is unknown.
func (m *Manager) Ensure(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok && id != "" {
		return s, false
	}
	s := NewSession(m.newID(), m.deps)
	m.sessions[s.ID] = s
	if m.deps.Logger != nil {
		m.deps.Logger.WithField("session", s.ID).Debug("portal session created")
	}
	return s, true
}

// Drop forgets the session for id and reports whether there was one.
func (m *Manager) Drop(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	return ok
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many.
func (m *Manager) Sweep(now time.Time, maxIdle time.Duration) int {
	m.mu.Lock()
	candidates := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		candidates = append(candidates, s)
	}
	m.mu.Unlock()

	removed := 0
	for _, s := range candidates {
		if s.idleSince(now) <= maxIdle {
			continue
		}
		m.mu.Lock()
		delete(m.sessions, s.ID)
		m.mu.Unlock()
		removed++
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval, maxIdle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := m.Sweep(now, maxIdle); n > 0 && m.deps.Logger != nil {
				m.deps.Logger.WithField("removed", n).Debug("idle portal sessions swept")
			}
		}
	}
}

var (
	_ profile.Shell = (*Shell)(nil)
	_ profile.Cache = (*cache.Accessor[entity.Profile])(nil)
	_ profile.API   = (*apiclient.Client)(nil)

	_ overview.API      = (*apiclient.Client)(nil)
	_ analytics.API     = (*apiclient.Client)(nil)
	_ communication.API = (*apiclient.Client)(nil)
	_ content.API       = (*apiclient.Client)(nil)
)
