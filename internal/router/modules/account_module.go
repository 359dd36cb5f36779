package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/membernet/member-info-service/internal/container"
	handlers "github.com/membernet/member-info-service/internal/interface/http"
	"github.com/membernet/member-info-service/internal/interface/middleware"
	"github.com/membernet/member-info-service/pkg/helpers"
)

// AccountModule wires the account handlers and JWT middleware into routes.
// Public: POST /api/account/register, /api/account/verify-email,
// /api/account/login. Everything else under /api/account requires a bearer
// token.
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with tight per-IP limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/account/register", registerLimiter, m.Handler.Register)
	rg.POST("/account/verify-email", verifyLimiter, m.Handler.VerifyEmail)
	rg.POST("/account/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByMemberID(), nil),
	)
	{
		auth.GET("/account/user", m.Handler.GetUser)
		auth.GET("/account/user-info/:memberId", m.Handler.GetUserInfo)
		auth.POST("/account/update-user", m.Handler.UpdateUser)
		auth.POST("/account/user-info/:memberId", m.Handler.UpdateUserInfo)

		auth.POST("/account/create-address", m.Handler.CreateAddress)
		auth.GET("/account/get-address", m.Handler.ListAddresses)
		auth.GET("/account/get-address/:id", m.Handler.GetAddress)
		auth.POST("/account/update-address", m.Handler.UpdateAddress)
		auth.DELETE("/account/user-address/:id", m.Handler.DeleteAddress)

		auth.POST("/account/create-connect", m.Handler.CreateContact)
		auth.GET("/account/get-connect", m.Handler.ListContacts)
		auth.GET("/account/get-connect/:id", m.Handler.GetContact)
		auth.POST("/account/update-connect", m.Handler.UpdateContact)
		auth.DELETE("/account/user-connect/:id", m.Handler.DeleteContact)

		auth.GET("/members/search", m.Handler.Search)
	}
}
