package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PortalSessionCookie names the cookie that binds a browser to its portal session.
const PortalSessionCookie = "portal_sid"

type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

// SetSession stores the portal session id for the given lifetime.
func (m *Manager) SetSession(c *gin.Context, sid string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(PortalSessionCookie, sid, int(ttl.Seconds()), "/", m.Domain, m.Secure, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(PortalSessionCookie, "", -1, "/", m.Domain, m.Secure, true)
}
