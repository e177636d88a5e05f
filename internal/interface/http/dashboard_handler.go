package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/application"
	"github.com/agenticlearn/educator-portal/internal/interface/middleware"
	"github.com/agenticlearn/educator-portal/pkg/response"
)

// DashboardHandler serves the read-only analytics, communication and system views.
type DashboardHandler struct {
	Svc    *application.DashboardService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

type listFunc func(ctx context.Context, educatorID string) ([]map[string]any, error)

func (h *DashboardHandler) list(name string, fn listFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		eid := c.GetString(middleware.CtxEducatorIDKey)
		rows, err := fn(c.Request.Context(), eid)
		if err != nil {
			if h.Logger != nil {
				h.Logger.WithError(err).WithFields(logrus.Fields{"educator_id": eid, "view": name}).Error("dashboard query failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "failed to fetch "+name, nil)
			return
		}
		response.List(c, rows, name, response.ListMeta{})
	}
}

func (h *DashboardHandler) StudentAlerts() gin.HandlerFunc {
	return h.list("student alerts", h.Svc.StudentAlerts)
}
func (h *DashboardHandler) Messages() gin.HandlerFunc { return h.list("messages", h.Svc.Messages) }
func (h *DashboardHandler) Forums() gin.HandlerFunc   { return h.list("forums", h.Svc.Forums) }
func (h *DashboardHandler) VideoSessions() gin.HandlerFunc {
	return h.list("video sessions", h.Svc.VideoSessions)
}
func (h *DashboardHandler) ContentLibrary() gin.HandlerFunc {
	return h.list("content library", h.Svc.ContentLibrary)
}
func (h *DashboardHandler) AIInsights() gin.HandlerFunc {
	return h.list("ai insights", h.Svc.AIInsights)
}
func (h *DashboardHandler) ActivityTimeline() gin.HandlerFunc {
	return h.list("activity timeline", h.Svc.ActivityTimeline)
}

func (h *DashboardHandler) AdvancedAnalytics(c *gin.Context) {
	eid := c.GetString(middleware.CtxEducatorIDKey)
	out, err := h.Svc.AdvancedAnalytics(c.Request.Context(), eid)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("educator_id", eid).Error("advanced analytics failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to fetch learning analytics", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "advanced analytics", nil)
}

func (h *DashboardHandler) SystemHealth(c *gin.Context) {
	out, err := h.Svc.SystemHealth(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("system health failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to fetch system health", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "system health", nil)
}
