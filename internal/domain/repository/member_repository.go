package repository

import (
	"context"

	"github.com/membernet/member-info-service/internal/domain/entity"
)

// MemberRepository defines persistence for members. Create and Update accept
// an optional unit of work (nil = autocommit) and forward it verbatim to the
// executor so registration can span member and contact writes atomically.
type MemberRepository interface {
	Create(ctx context.Context, m *entity.Member, uow UnitOfWork) error
	GetByID(ctx context.Context, memberID string) (*entity.Member, error)
	GetByUsername(ctx context.Context, username string) (*entity.Member, error)
	Update(ctx context.Context, m *entity.Member, uow UnitOfWork) error
}
