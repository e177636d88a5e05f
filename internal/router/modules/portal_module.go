package modules

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/agenticlearn/educator-portal/internal/interface/http"
	"github.com/agenticlearn/educator-portal/internal/interface/middleware"
	"github.com/agenticlearn/educator-portal/pkg/helpers"
)

// PortalModule serves the portal pages:
// GET /portal, GET /portal/analytics, GET /portal/communication,
// GET /portal/content, GET /portal/profile, GET /portal/profile/export,
// POST /portal/actions/:action, POST /portal/logout
type PortalModule struct {
	Handler *handlers.PortalHandler
	Redis   *redis.Client
}

func (m *PortalModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/portal") })

	p := rg.Group("/portal")
	p.GET("", m.Handler.Overview)
	p.GET("/analytics", m.Handler.Analytics)
	p.GET("/communication", m.Handler.Communication)
	p.GET("/content", m.Handler.Content)
	p.GET("/profile", m.Handler.Profile)
	p.GET("/profile/export", m.Handler.Export)
	p.POST("/actions/:action",
		middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByPortalSession(helpers.PortalSessionCookie), nil),
		m.Handler.Action)
	p.POST("/logout", m.Handler.Logout)
}
