package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/pkg/response"
	"github.com/oksasatya/campus-events/pkg/validation"
)

type RegistrationHandler struct {
	Ledger *application.Ledger
	Logger *logrus.Logger
}

func NewRegistrationHandler(ledger *application.Ledger, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{Ledger: ledger, Logger: logger}
}

type registrationRequest struct {
	UserID string `json:"userId"`
}

type registrationData struct {
	UserID  string `json:"userId"`
	EventID string `json:"eventId"`
}

// bindRegistration accepts an empty body so a missing userId is reported as such.
func bindRegistration(c *gin.Context) (registrationRequest, bool) {
	var req registrationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return req, false
	}
	return req, true
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	req, ok := bindRegistration(c)
	if !ok {
		return
	}
	eventID := c.Param("eventId")
	if err := h.Ledger.Register(c.Request.Context(), req.UserID, eventID); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, registrationData{UserID: req.UserID, EventID: eventID}, "User registered successfully for the event", nil)
}

func (h *RegistrationHandler) Deregister(c *gin.Context) {
	req, ok := bindRegistration(c)
	if !ok {
		return
	}
	eventID := c.Param("eventId")
	if err := h.Ledger.Deregister(c.Request.Context(), req.UserID, eventID); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, registrationData{UserID: req.UserID, EventID: eventID}, "User deregistered successfully from the event", nil)
}

func (h *RegistrationHandler) ListRegisteredEvents(c *gin.Context) {
	events, err := h.Ledger.ListRegisteredEvents(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "registered events", map[string]any{"count": len(events)})
}

func (h *RegistrationHandler) ListEventRegistrants(c *gin.Context) {
	ids, err := h.Ledger.ListEventRegistrants(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ids, "event registrants", map[string]any{"count": len(ids)})
}
