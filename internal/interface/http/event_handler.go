package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/pkg/response"
	"github.com/oksasatya/campus-events/pkg/validation"
)

// maxPosterBytes caps poster uploads.
const maxPosterBytes = 5 << 20

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type createEventRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required,ymd"`
	Time        string `json:"time" binding:"omitempty,hhmm"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type updateEventRequest struct {
	Name        *string `json:"name"`
	Date        *string `json:"date" binding:"omitempty,ymd"`
	Time        *string `json:"time" binding:"omitempty,hhmm"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

// eventBindError picks the message for a failed event payload.
func eventBindError(c *gin.Context, err error, fallback string) {
	msg := fallback
	switch {
	case validation.HasTag(err, "date", "ymd"):
		msg = "Invalid date format. Use YYYY-MM-DD"
	case validation.HasTag(err, "time", "hhmm"):
		msg = "Invalid time format. Use HH:MM (24-hour format)"
	}
	response.Error[any](c, http.StatusBadRequest, msg, validation.ToDetails(err))
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		eventBindError(c, err, "All fields are required")
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), application.EventInput{
		Name:        req.Name,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, e, "Event created successfully", nil)
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "events", map[string]any{"count": len(events)})
}

func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, e, "event", nil)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		eventBindError(c, err, "invalid payload")
		return
	}
	e, err := h.Svc.Update(c.Request.Context(), c.Param("eventId"), application.EventPatch{
		Name:        req.Name,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, e, "Event updated successfully", nil)
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("eventId")); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Event deleted successfully", nil)
}

// Search handles GET /events/search?q=&size=
func (h *EventHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	events, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "search results", map[string]any{"count": len(events)})
}

// UploadPoster handles a multipart upload with the image in the "poster" field.
func (h *EventHandler) UploadPoster(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPosterBytes)
	fh, err := c.FormFile("poster")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Poster file is required", err.Error())
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error[any](c, http.StatusBadRequest, "Poster must be an image", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Poster file is unreadable", err.Error())
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadPoster(c.Request.Context(), c.Param("eventId"), f, fh.Filename, contentType)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posterUrl": url}, "Poster uploaded successfully", nil)
}
