package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/pkg/response"
)

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// GetProfile handles GET /users/:userId
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user profile", nil)
}

// Me handles GET /users/me for the authenticated caller.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user profile", nil)
}
