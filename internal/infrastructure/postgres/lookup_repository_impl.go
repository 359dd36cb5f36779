package postgres

import (
	"context"

	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
)

type LookupRepository struct {
	exec *Executor
}

func NewLookupRepository(exec *Executor) *LookupRepository {
	return &LookupRepository{exec: exec}
}

// Search filters reference data by optional keyword and type. Both filters go
// through bind parameters; empty strings disable the corresponding filter.
func (r *LookupRepository) Search(ctx context.Context, keyword, lookupType string) ([]*entity.Lookup, error) {
	rows, err := r.exec.Query(ctx, nil, `
		SELECT lookup_id, lookup_type, lookup_value
		FROM lookups
		WHERE ($1 = '' OR lookup_value ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR lookup_type = $2)
		ORDER BY lookup_value
	`, keyword, lookupType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Lookup
	for rows.Next() {
		l := &entity.Lookup{}
		if err := rows.Scan(&l.LookupID, &l.LookupType, &l.LookupValue); err != nil {
			return nil, mapErr("scan lookup", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("search lookups", err)
	}
	return out, nil
}

var _ repository.LookupRepository = (*LookupRepository)(nil)
