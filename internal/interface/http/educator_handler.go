package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/application"
	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	"github.com/agenticlearn/educator-portal/internal/interface/middleware"
	"github.com/agenticlearn/educator-portal/pkg/response"
	"github.com/agenticlearn/educator-portal/pkg/validation"
)

type EducatorHandler struct {
	Profiles *application.ProfileService
	Logger   *logrus.Logger
}

func NewEducatorHandler(profiles *application.ProfileService, logger *logrus.Logger) *EducatorHandler {
	return &EducatorHandler{Profiles: profiles, Logger: logger}
}

type updateProfileRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=120"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Role       *string `json:"role" binding:"omitempty,max=120"`
	Department *string `json:"department" binding:"omitempty,max=120"`
	Phone      *string `json:"phone" binding:"omitempty,max=32"`
	Bio        *string `json:"bio" binding:"omitempty,max=2000"`
}

func (r updateProfileRequest) fields() entity.Profile {
	out := entity.Profile{}
	set := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	set(entity.FieldName, r.Name)
	set(entity.FieldEmail, r.Email)
	set(entity.FieldRole, r.Role)
	set(entity.FieldDepartment, r.Department)
	set(entity.FieldPhone, r.Phone)
	set(entity.FieldBio, r.Bio)
	return out
}

func (h *EducatorHandler) GetProfile(c *gin.Context) {
	eid := c.GetString(middleware.CtxEducatorIDKey)
	p, err := h.Profiles.Get(c.Request.Context(), eid)
	if errors.Is(err, application.ErrProfileNotFound) {
		response.Error[any](c, http.StatusNotFound, "profile not found", nil)
		return
	}
	if err != nil {
		h.logError(c, "get profile failed", err)
		response.Error[any](c, http.StatusInternalServerError, "failed to fetch profile", nil)
		return
	}
	response.Success(c, http.StatusOK, map[string]any(p), "profile", nil)
}

func (h *EducatorHandler) UpdateProfile(c *gin.Context) {
	eid := c.GetString(middleware.CtxEducatorIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	fields := req.fields()
	if len(fields) == 0 {
		response.Error[any](c, http.StatusBadRequest, "no editable fields in payload", nil)
		return
	}
	p, err := h.Profiles.Update(c.Request.Context(), eid, fields)
	if err != nil {
		h.logError(c, "update profile failed", err)
		response.Error[any](c, http.StatusInternalServerError, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, map[string]any(p), "profile updated", nil)
}

func (h *EducatorHandler) logError(c *gin.Context, msg string, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.WithError(err).WithFields(logrus.Fields{
		"educator_id": c.GetString(middleware.CtxEducatorIDKey),
		"request_id":  c.GetString(middleware.CtxRequestIDKey),
	}).Error(msg)
}
