package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
	"github.com/membernet/member-info-service/pkg/helpers"
	"github.com/membernet/member-info-service/pkg/response"
)

const lookupCacheTTL = 5 * time.Minute

// LookupHandler serves the reference-data search used by registration forms
// (countries, address types, contact types). Results change rarely, so they
// are cached in redis.
type LookupHandler struct {
	Lookups repository.LookupRepository
	Redis   *redis.Client
}

func NewLookupHandler(lookups repository.LookupRepository, rdb *redis.Client) *LookupHandler {
	return &LookupHandler{Lookups: lookups, Redis: rdb}
}

// Search GET /api/lookups?keyword=&type=
func (h *LookupHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	keyword := c.Query("keyword")
	lookupType := c.Query("type")
	cacheKey := "lookups:" + lookupType + ":" + keyword

	var items []*entity.Lookup
	if h.Redis != nil {
		if hit, err := helpers.RedisGetJSON(ctx, h.Redis, cacheKey, &items); err == nil && hit {
			respondLookups(c, items)
			return
		}
	}

	items, err := h.Lookups.Search(ctx, keyword, lookupType)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "lookup search failed", nil)
		return
	}
	if h.Redis != nil {
		_ = helpers.RedisSetJSON(ctx, h.Redis, cacheKey, items, lookupCacheTTL)
	}
	respondLookups(c, items)
}

func respondLookups(c *gin.Context, items []*entity.Lookup) {
	out := make([]gin.H, 0, len(items))
	for _, l := range items {
		out = append(out, gin.H{
			"lookup_id":    l.LookupID,
			"lookup_type":  l.LookupType,
			"lookup_value": l.LookupValue,
		})
	}
	response.Success(c, http.StatusOK, out, "lookups", map[string]any{"count": len(out)})
}
