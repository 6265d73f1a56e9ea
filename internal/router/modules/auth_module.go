package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-events/internal/container"
	handlers "github.com/oksasatya/campus-events/internal/interface/http"
	"github.com/oksasatya/campus-events/internal/interface/middleware"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

// AuthModule wires signup/login and the admin account-management routes.
// Public: POST /api/auth/signup, POST /api/auth/login
// Admin: POST /api/auth/add-user, DELETE /api/auth/delete-user/:uid, POST /api/auth/setAdmin
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Admins  middleware.AdminChecker
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, admins middleware.AdminChecker) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Admins: admins}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil) // 10 req/min per IP

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	admin := rg.Group("/auth")
	admin.Use(middleware.Authenticate(m.JWT), middleware.RequireAdmin(m.Admins))
	admin.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.POST("/add-user", m.Handler.AddUser)
		admin.DELETE("/delete-user/:uid", m.Handler.DeleteUser)
		admin.POST("/setAdmin", m.Handler.SetAdmin)
	}
}
