package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/application"
	"github.com/agenticlearn/educator-portal/internal/interface/middleware"
	"github.com/agenticlearn/educator-portal/pkg/response"
	"github.com/agenticlearn/educator-portal/pkg/validation"
)

const maxUploadBytes = 200 << 20

type ContentHandler struct {
	Svc    *application.ContentService
	Logger *logrus.Logger
}

func NewContentHandler(svc *application.ContentService, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{Svc: svc, Logger: logger}
}

type uploadForm struct {
	Title    string `form:"title" validate:"required,max=200"`
	Type     string `form:"type" validate:"required,contenttype"`
	Tags     string `form:"tags"`
	Duration *int   `form:"duration_minutes" validate:"omitempty,min=0"`
}

// Upload accepts multipart form fields title, type, tags (comma separated),
// duration_minutes and a "file" part.
func (h *ContentHandler) Upload(c *gin.Context) {
	eid := c.GetString(middleware.CtxEducatorIDKey)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	var form uploadForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := validation.Validator().Struct(form); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	item, err := h.Svc.UploadContent(c.Request.Context(), eid, application.UploadInput{
		Title:           form.Title,
		Type:            form.Type,
		Tags:            splitTags(form.Tags),
		DurationMinutes: form.Duration,
		FileName:        fh.Filename,
		ContentType:     fh.Header.Get("Content-Type"),
		Body:            f,
	})
	if errors.Is(err, application.ErrUploadDisabled) {
		response.Error[any](c, http.StatusServiceUnavailable, "content upload is not available", nil)
		return
	}
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("educator_id", eid).Error("content upload failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to upload content", nil)
		return
	}
	response.Success(c, http.StatusCreated, item, "content uploaded", nil)
}

func (h *ContentHandler) Search(c *gin.Context) {
	eid := c.GetString(middleware.CtxEducatorIDKey)
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	hits, err := h.Svc.SearchContent(c.Request.Context(), eid, q)
	if errors.Is(err, application.ErrSearchDisabled) {
		response.Error[any](c, http.StatusServiceUnavailable, "content search is not available", nil)
		return
	}
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("educator_id", eid).Error("content search failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to search content", nil)
		return
	}
	response.List(c, hits, "content search", response.ListMeta{Query: q})
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
