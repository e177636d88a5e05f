// Package portal holds the per-browser portal sessions and the state they share
// across feature modules.
package portal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/a-h/templ"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	"github.com/agenticlearn/educator-portal/internal/portal/view"
)

// LogoutPath ends the portal session.
const LogoutPath = "/portal/logout"

// Shell is the cross-module state of one session: the signed-in educator and
// the header that shows them.
type Shell struct {
	mu      sync.RWMutex
	doc     *view.Document
	appName string
	user    entity.Profile
}

func NewShell(doc *view.Document, appName string) *Shell {
	return &Shell{doc: doc, appName: appName}
}

func (s *Shell) SetCurrentUser(p entity.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = p.Clone()
}

func (s *Shell) CurrentUser() entity.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// RenderHeader renders the header region from the current user.
func (s *Shell) RenderHeader(ctx context.Context) error {
	u := s.CurrentUser()
	return s.doc.Render(ctx, view.RegionHeader, headerBar(s.appName,
		u.Text(entity.FieldName, "Educator"), u.Text(entity.FieldRole, "Educator")))
}

func headerBar(appName, name, role string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="header-bar"><span class="app-name">%s</span><span class="current-user">👤 %s<small> %s</small></span>`+
				`<form method="post" action="%s" class="inline-action"><button type="submit" class="btn btn-link">🚪 Sign out</button></form></div>`,
			templ.EscapeString(appName), templ.EscapeString(name), templ.EscapeString(role), templ.EscapeString(LogoutPath))
		return err
	})
}
