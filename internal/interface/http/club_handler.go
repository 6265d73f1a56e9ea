package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/pkg/response"
	"github.com/oksasatya/campus-events/pkg/validation"
)

type ClubHandler struct {
	Svc    *application.ClubService
	Logger *logrus.Logger
}

func NewClubHandler(svc *application.ClubService, logger *logrus.Logger) *ClubHandler {
	return &ClubHandler{Svc: svc, Logger: logger}
}

type contactInfoRequest struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type createClubRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description" binding:"required"`
	ContactInfo contactInfoRequest `json:"contactInfo"`
}

type updateClubRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ContactInfo *struct {
		Email *string `json:"email" binding:"omitempty,email"`
		Phone *string `json:"phone"`
	} `json:"contactInfo"`
}

type clubUpdateRequest struct {
	UpdateMessage string `json:"updateMessage"`
}

func (h *ClubHandler) Create(c *gin.Context) {
	var req createClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "All fields are required (name, description, contact email, and phone)", validation.ToDetails(err))
		return
	}
	club, err := h.Svc.Create(c.Request.Context(), application.ClubInput{
		Name:        req.Name,
		Description: req.Description,
		ContactInfo: entity.ContactInfo{Email: req.ContactInfo.Email, Phone: req.ContactInfo.Phone},
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, club, "Club created successfully", nil)
}

func (h *ClubHandler) List(c *gin.Context) {
	clubs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, clubs, "clubs", map[string]any{"count": len(clubs)})
}

func (h *ClubHandler) Get(c *gin.Context) {
	club, err := h.Svc.Get(c.Request.Context(), c.Param("clubId"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, club, "club", nil)
}

func (h *ClubHandler) Update(c *gin.Context) {
	var req updateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	patch := application.ClubPatch{Name: req.Name, Description: req.Description}
	if req.ContactInfo != nil {
		patch.ContactEmail = req.ContactInfo.Email
		patch.ContactPhone = req.ContactInfo.Phone
	}
	club, err := h.Svc.Update(c.Request.Context(), c.Param("clubId"), patch)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, club, "Club updated successfully", nil)
}

func (h *ClubHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("clubId")); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Club deleted successfully", nil)
}

// AddUpdate handles POST /clubs/:clubId/update with {updateMessage}.
func (h *ClubHandler) AddUpdate(c *gin.Context) {
	var req clubUpdateRequest
	_ = c.ShouldBindJSON(&req) // an unreadable body is treated as an empty message
	u, err := h.Svc.AddUpdate(c.Request.Context(), c.Param("clubId"), req.UpdateMessage)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "Update added successfully", nil)
}
