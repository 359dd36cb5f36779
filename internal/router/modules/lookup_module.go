package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/membernet/member-info-service/internal/container"
	handlers "github.com/membernet/member-info-service/internal/interface/http"
	"github.com/membernet/member-info-service/internal/interface/middleware"
)

// LookupModule serves the public reference-data search used by registration
// and profile forms.
type LookupModule struct {
	Handler *handlers.LookupHandler
}

func NewLookupModule(h *handlers.LookupHandler) *LookupModule {
	return &LookupModule{Handler: h}
}

func (m *LookupModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/lookups", rl, m.Handler.Search)
}
