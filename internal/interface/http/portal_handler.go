package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/portal"
	"github.com/agenticlearn/educator-portal/internal/portal/analytics"
	"github.com/agenticlearn/educator-portal/internal/portal/communication"
	"github.com/agenticlearn/educator-portal/internal/portal/content"
	"github.com/agenticlearn/educator-portal/internal/portal/overview"
	"github.com/agenticlearn/educator-portal/internal/portal/profile"
	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/helpers"
)

const htmlContentType = "text/html; charset=utf-8"

// PortalHandler serves the server-rendered portal pages and their actions.
type PortalHandler struct {
	Sessions *portal.Manager
	Cookies  *helpers.Manager
	TTL      time.Duration
	Logger   *logrus.Logger
}

func NewPortalHandler(sessions *portal.Manager, cookieDomain string, cookieSecure bool, ttl time.Duration, logger *logrus.Logger) *PortalHandler {
	return &PortalHandler{Sessions: sessions, Cookies: helpers.NewCookie(cookieDomain, cookieSecure), TTL: ttl, Logger: logger}
}

func (h *PortalHandler) session(c *gin.Context) *portal.Session {
	sid, _ := c.Cookie(helpers.PortalSessionCookie)
	s, _ := h.Sessions.Ensure(sid)
	h.Cookies.SetSession(c, s.ID, h.TTL)
	return s
}

func (h *PortalHandler) Overview(c *gin.Context) {
	s := h.session(c)
	html, err := s.Page(c.Request.Context(), "Beranda", "beranda", overview.RegionContainer, s.Overview.Initialize)
	h.writePage(c, s, "overview", html, err)
}

func (h *PortalHandler) Profile(c *gin.Context) {
	s := h.session(c)
	html, err := s.Page(c.Request.Context(), "Profile", "profile", profile.RegionContainer, s.Profile.Initialize)
	h.writePage(c, s, "profile", html, err)
}

func (h *PortalHandler) Analytics(c *gin.Context) {
	s := h.session(c)
	html, err := s.Page(c.Request.Context(), "Analytics", "analytics", analytics.RegionContainer, s.Analytics.Initialize)
	h.writePage(c, s, "analytics", html, err)
}

func (h *PortalHandler) Communication(c *gin.Context) {
	s := h.session(c)
	html, err := s.Page(c.Request.Context(), "Communication", "communication", communication.RegionContainer, s.Communication.Initialize)
	h.writePage(c, s, "communication", html, err)
}

func (h *PortalHandler) Content(c *gin.Context) {
	s := h.session(c)
	html, err := s.Page(c.Request.Context(), "Content", "content", content.RegionContainer, s.Content.Initialize)
	h.writePage(c, s, "content", html, err)
}

// Logout drops the browser's session and its cookie.
func (h *PortalHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(helpers.PortalSessionCookie); err == nil {
		h.Sessions.Drop(sid)
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, "/portal")
}

// writePage sends html even when the module failed to load: the failure is
// already part of the page as a notification.
func (h *PortalHandler) writePage(c *gin.Context, s *portal.Session, page, html string, err error) {
	if err != nil {
		h.log(s, page, err)
	}
	if html == "" {
		c.String(http.StatusInternalServerError, "portal page could not be rendered")
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

// Action dispatches a posted user action. htmx requests get the changed
// regions as out-of-band swaps; plain form posts are redirected back.
func (h *PortalHandler) Action(c *gin.Context) {
	s := h.session(c)
	action := c.Param("action")
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	dispatch := func(ctx context.Context) error {
		return s.Doc.Dispatch(ctx, view.Event{Action: action, Values: c.Request.PostForm})
	}

	if !isHTMX(c) {
		if err := s.Do(c.Request.Context(), dispatch); err != nil {
			h.log(s, action, err)
		}
		c.Redirect(http.StatusSeeOther, backTo(c))
		return
	}

	patches, err := s.Act(c.Request.Context(), dispatch)
	if errors.Is(err, view.ErrUnknownAction) {
		c.Header("HX-Refresh", "true")
		c.String(http.StatusNotFound, "unknown action")
		return
	}
	if err != nil {
		h.log(s, action, err)
	}
	c.Data(http.StatusOK, htmlContentType, []byte(view.OOB(patches)))
}

// Export downloads the profile record held by the session.
func (h *PortalHandler) Export(c *gin.Context) {
	s := h.session(c)
	data, err := s.Export()
	if err != nil {
		h.log(s, "export", err)
		c.String(http.StatusInternalServerError, "export failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+profile.ExportFileName+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (h *PortalHandler) log(s *portal.Session, action string, err error) {
	helpers.LogWarn(h.Logger, "portal action failed", err, logrus.Fields{"session": s.ID, "action": action})
}

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("HX-Request"), "true")
}

// backTo returns the same-origin page the form was posted from.
func backTo(c *gin.Context) string {
	ref := c.GetHeader("Referer")
	if i := strings.Index(ref, "/portal"); i >= 0 {
		path := ref[i:]
		if !strings.HasPrefix(path, "/portal/actions/") {
			return path
		}
	}
	return "/portal"
}
