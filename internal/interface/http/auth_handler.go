package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/pkg/response"
	"github.com/oksasatya/campus-events/pkg/validation"
)

type AuthHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(users *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type addUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"omitempty,pwd"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type setAdminRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Email, password, and name are required", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Signup(c.Request.Context(), application.SignupInput{Email: req.Email, Password: req.Password, Name: req.Name})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"uid": u.ID}, "User registered successfully", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "login successful", map[string]any{"access_expires_at": res.ExpiresAt})
}

func (h *AuthHandler) AddUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Name and email are required", validation.ToDetails(err))
		return
	}
	u, err := h.Users.AddUser(c.Request.Context(), application.AddUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": u.ID}, "User added successfully", nil)
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	uid := c.Param("uid")
	if err := h.Users.Delete(c.Request.Context(), uid); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, fmt.Sprintf("User with UID: %s deleted successfully", uid), nil)
}

func (h *AuthHandler) SetAdmin(c *gin.Context) {
	var req setAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Email is required", validation.ToDetails(err))
		return
	}
	u, err := h.Users.SetAdmin(c.Request.Context(), req.Email)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, fmt.Sprintf("Admin role assigned to %s", u.Email), nil)
}
