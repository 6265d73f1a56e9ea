package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/pkg/response"
)

var statusByErr = []struct {
	err     error
	status  int
	message string
}{
	{application.ErrUserIDRequired, http.StatusBadRequest, "User ID is required"},
	{application.ErrEventNotFound, http.StatusNotFound, "Event not found"},
	{application.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{application.ErrClubNotFound, http.StatusNotFound, "Club not found"},
	{application.ErrAlreadyRegistered, http.StatusBadRequest, "User already registered for this event"},
	{application.ErrNotRegistered, http.StatusBadRequest, "User not registered for this event"},
	{application.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{application.ErrEmailDomainNotAllowed, http.StatusForbidden, "Only KCAU emails are allowed"},
	{application.ErrEmailTaken, http.StatusConflict, "Email already in use"},
	{application.ErrPosterStorageDisabled, http.StatusServiceUnavailable, "Poster uploads are not configured"},
}

// writeServiceError maps application errors onto the response envelope.
// Unknown and store errors become 500 with the underlying message in the error field.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *application.ValidationError
	if errors.As(err, &ve) {
		response.Error[any](c, http.StatusBadRequest, ve.Message, nil)
		return
	}
	for _, m := range statusByErr {
		if errors.Is(err, m.err) {
			response.Error[any](c, m.status, m.message, nil)
			return
		}
	}

	detail := err.Error()
	var se *application.StoreError
	if errors.As(err, &se) {
		detail = se.Err.Error()
	}
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString(response.RequestIDKey),
		}).Error("request failed")
	}
	response.Error[any](c, http.StatusInternalServerError, "Internal server error", detail)
}
