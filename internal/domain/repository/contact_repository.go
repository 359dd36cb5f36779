package repository

import (
	"context"

	"github.com/membernet/member-info-service/internal/domain/entity"
)

// ContactRepository defines persistence for member contacts.
type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact, uow UnitOfWork) error
	GetByID(ctx context.Context, contactID int64) (*entity.Contact, error)
	GetByCode(ctx context.Context, code string) (*entity.Contact, error)
	GetByDetail(ctx context.Context, contactType, detail string) (*entity.Contact, error)
	ListByMember(ctx context.Context, memberID string) ([]*entity.Contact, error)
	Update(ctx context.Context, c *entity.Contact, uow UnitOfWork) error
	Delete(ctx context.Context, contactID int64) error
}
