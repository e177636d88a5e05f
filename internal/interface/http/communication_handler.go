package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/application"
	"github.com/agenticlearn/educator-portal/internal/interface/middleware"
	"github.com/agenticlearn/educator-portal/pkg/response"
	"github.com/agenticlearn/educator-portal/pkg/validation"
)

type CommunicationHandler struct {
	Svc    *application.MessageService
	Logger *logrus.Logger
}

func NewCommunicationHandler(svc *application.MessageService, logger *logrus.Logger) *CommunicationHandler {
	return &CommunicationHandler{Svc: svc, Logger: logger}
}

type sendMessageRequest struct {
	StudentID string `json:"student_id" binding:"required,educatorid"`
	Email     string `json:"email" binding:"omitempty,email"`
	Subject   string `json:"subject" binding:"required,max=200"`
	Message   string `json:"message" binding:"required,max=5000"`
	Priority  string `json:"priority" binding:"omitempty,priority"`
}

func (h *CommunicationHandler) SendMessage(c *gin.Context) {
	eid := c.GetString(middleware.CtxEducatorIDKey)
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	msg, err := h.Svc.Send(c.Request.Context(), eid, application.SendMessageInput{
		StudentID: req.StudentID,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Priority:  req.Priority,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("educator_id", eid).Error("send message failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to send message", nil)
		return
	}
	response.Success(c, http.StatusCreated, msg, "message sent", nil)
}
