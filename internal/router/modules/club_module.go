package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/campus-events/internal/interface/http"
	"github.com/oksasatya/campus-events/internal/interface/middleware"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

type ClubModule struct {
	Handler *handlers.ClubHandler
	JWT     *helpers.JWTManager
	Admins  middleware.AdminChecker
}

func NewClubModule(h *handlers.ClubHandler, jwt *helpers.JWTManager, admins middleware.AdminChecker) *ClubModule {
	return &ClubModule{Handler: h, JWT: jwt, Admins: admins}
}

func (m *ClubModule) Register(rg *gin.RouterGroup) {
	rg.GET("/clubs", m.Handler.List)
	rg.GET("/clubs/:clubId", m.Handler.Get)

	admin := rg.Group("/clubs")
	admin.Use(middleware.Authenticate(m.JWT), middleware.RequireAdmin(m.Admins))
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:clubId", m.Handler.Update)
		admin.DELETE("/:clubId", m.Handler.Delete)
		admin.POST("/:clubId/update", m.Handler.AddUpdate)
	}
}
