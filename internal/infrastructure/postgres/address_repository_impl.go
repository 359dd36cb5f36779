package postgres

import (
	"context"
	"time"

	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
)

type AddressRepository struct {
	exec *Executor
}

func NewAddressRepository(exec *Executor) *AddressRepository {
	return &AddressRepository{exec: exec}
}

const addressColumns = `address_id, member_id, address1, address2, address3, address_type,
		post_code, city, state, regional_council, country, public_private, post_date`

func (r *AddressRepository) Create(ctx context.Context, a *entity.Address) error {
	if a.PostDate.IsZero() {
		a.PostDate = time.Now()
	}
	row, err := r.exec.QueryRow(ctx, nil, `
		INSERT INTO addresses (member_id, address1, address2, address3, address_type,
			post_code, city, state, regional_council, country, public_private, post_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING address_id
	`, a.MemberID, a.Address1, a.Address2, a.Address3, a.AddressType,
		a.PostCode, a.City, a.State, a.RegionalCouncil, a.Country, a.PublicPrivate, a.PostDate)
	if err != nil {
		return err
	}
	if err := row.Scan(&a.AddressID); err != nil {
		return mapErr("insert address", err)
	}
	return nil
}

func (r *AddressRepository) GetByID(ctx context.Context, addressID int64) (*entity.Address, error) {
	row, err := r.exec.QueryRow(ctx, nil, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE address_id = $1
	`, addressID)
	if err != nil {
		return nil, err
	}
	return scanAddress(row)
}

func (r *AddressRepository) ListByMember(ctx context.Context, memberID string) ([]*entity.Address, error) {
	rows, err := r.exec.Query(ctx, nil, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE member_id = $1
		ORDER BY address_id
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("list addresses", err)
	}
	return out, nil
}

func (r *AddressRepository) Update(ctx context.Context, a *entity.Address) error {
	affected, err := r.exec.Exec(ctx, nil, `
		UPDATE addresses
		SET address1 = $1, address2 = $2, address3 = $3, address_type = $4, post_code = $5,
			city = $6, state = $7, regional_council = $8, country = $9, public_private = $10
		WHERE address_id = $11 AND member_id = $12
	`, a.Address1, a.Address2, a.Address3, a.AddressType, a.PostCode,
		a.City, a.State, a.RegionalCouncil, a.Country, a.PublicPrivate, a.AddressID, a.MemberID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, addressID int64) error {
	affected, err := r.exec.Exec(ctx, nil, `
		DELETE FROM addresses WHERE address_id = $1
	`, addressID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanAddress(row scanner) (*entity.Address, error) {
	a := &entity.Address{}
	if err := row.Scan(&a.AddressID, &a.MemberID, &a.Address1, &a.Address2, &a.Address3, &a.AddressType,
		&a.PostCode, &a.City, &a.State, &a.RegionalCouncil, &a.Country, &a.PublicPrivate, &a.PostDate); err != nil {
		return nil, mapErr("scan address", err)
	}
	return a, nil
}

var _ repository.AddressRepository = (*AddressRepository)(nil)
