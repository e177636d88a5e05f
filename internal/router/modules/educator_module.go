package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/agenticlearn/educator-portal/internal/interface/http"
	"github.com/agenticlearn/educator-portal/internal/interface/middleware"
	"github.com/agenticlearn/educator-portal/pkg/helpers"
)

// EducatorModule wires the educator API under /api/agenticlearn/educator.
// Every route requires a bearer token carrying the educator id.
type EducatorModule struct {
	Profile       *handlers.EducatorHandler
	Dashboard     *handlers.DashboardHandler
	Content       *handlers.ContentHandler
	Communication *handlers.CommunicationHandler
	JWT           *helpers.JWTManager
	Redis         *redis.Client
}

func (m *EducatorModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/agenticlearn/educator")
	g.Use(
		middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.Auth(m.JWT),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByEducatorID(), middleware.AllowPrivateIP()),
	)

	g.GET("/profile", m.Profile.GetProfile)
	g.PUT("/profile", m.Profile.UpdateProfile)

	analytics := g.Group("/analytics")
	{
		analytics.GET("/advanced", m.Dashboard.AdvancedAnalytics)
		analytics.GET("/student-alerts", m.Dashboard.StudentAlerts())
	}

	comm := g.Group("/communication")
	{
		comm.GET("/messages", m.Dashboard.Messages())
		comm.POST("/send-message",
			middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByEducatorID(), nil),
			m.Communication.SendMessage)
		comm.GET("/forums", m.Dashboard.Forums())
		comm.GET("/video-sessions", m.Dashboard.VideoSessions())
	}

	content := g.Group("/content")
	{
		content.GET("/library", m.Dashboard.ContentLibrary())
		content.POST("/upload",
			middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByEducatorID(), nil),
			m.Content.Upload)
		content.GET("/search", m.Content.Search)
	}

	g.GET("/ai/insights", m.Dashboard.AIInsights())
	g.GET("/system/health", m.Dashboard.SystemHealth)
	g.GET("/activity/timeline", m.Dashboard.ActivityTimeline())
}
