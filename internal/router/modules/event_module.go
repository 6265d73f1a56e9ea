package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-events/internal/container"
	handlers "github.com/oksasatya/campus-events/internal/interface/http"
	"github.com/oksasatya/campus-events/internal/interface/middleware"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

// EventModule wires event CRUD, search, posters and the registration ledger.
type EventModule struct {
	Events        *handlers.EventHandler
	Registrations *handlers.RegistrationHandler
	JWT           *helpers.JWTManager
	Admins        middleware.AdminChecker
}

func NewEventModule(events *handlers.EventHandler, regs *handlers.RegistrationHandler, jwt *helpers.JWTManager, admins middleware.AdminChecker) *EventModule {
	return &EventModule{Events: events, Registrations: regs, JWT: jwt, Admins: admins}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	// Public reads
	rg.GET("/events", rl, m.Events.List)
	rg.GET("/events/search", rl, m.Events.Search)
	rg.GET("/events/:eventId", rl, m.Events.Get)
	rg.GET("/events/users/:userId/registered-events", rl, m.Registrations.ListRegisteredEvents)

	auth := rg.Group("/events")
	auth.Use(middleware.Authenticate(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/:eventId/register", m.Registrations.Register)
		auth.DELETE("/:eventId/deregister", m.Registrations.Deregister)
	}

	admin := rg.Group("/events")
	admin.Use(middleware.Authenticate(m.JWT), middleware.RequireAdmin(m.Admins))
	{
		admin.POST("", m.Events.Create)
		admin.PUT("/:eventId", m.Events.Update)
		admin.DELETE("/:eventId", m.Events.Delete)
		admin.POST("/:eventId/poster", m.Events.UploadPoster)
		admin.GET("/:eventId/registrants", m.Registrations.ListEventRegistrants)
	}
}
