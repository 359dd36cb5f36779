package repository

import (
	"context"

	"github.com/membernet/member-info-service/internal/domain/entity"
)

// AddressRepository defines persistence for member addresses. Addresses are
// plain CRUD and never participate in a multi-entity unit of work.
type AddressRepository interface {
	Create(ctx context.Context, a *entity.Address) error
	GetByID(ctx context.Context, addressID int64) (*entity.Address, error)
	ListByMember(ctx context.Context, memberID string) ([]*entity.Address, error)
	Update(ctx context.Context, a *entity.Address) error
	Delete(ctx context.Context, addressID int64) error
}
