package repository

import (
	"context"

	"github.com/membernet/member-info-service/internal/domain/entity"
)

// LookupRepository serves reference data filtered by keyword and type.
type LookupRepository interface {
	Search(ctx context.Context, keyword, lookupType string) ([]*entity.Lookup, error)
}
