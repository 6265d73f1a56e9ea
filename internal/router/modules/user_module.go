package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/campus-events/internal/interface/http"
	"github.com/oksasatya/campus-events/internal/interface/middleware"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

// UserModule serves profiles and the user-side view of registrations.
type UserModule struct {
	Users         *handlers.UserHandler
	Registrations *handlers.RegistrationHandler
	JWT           *helpers.JWTManager
}

func NewUserModule(users *handlers.UserHandler, regs *handlers.RegistrationHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Users: users, Registrations: regs, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users/me", middleware.Authenticate(m.JWT), m.Users.Me)
	rg.GET("/users/:userId", m.Users.GetProfile)
	rg.GET("/users/:userId/registered-events", m.Registrations.ListRegisteredEvents)
}
