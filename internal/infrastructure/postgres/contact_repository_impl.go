package postgres

import (
	"context"
	"time"

	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
)

type ContactRepository struct {
	exec *Executor
}

func NewContactRepository(exec *Executor) *ContactRepository {
	return &ContactRepository{exec: exec}
}

const contactColumns = `contact_id, member_id, contact_type, contact_detail, verified, code,
		public_private, notes, post_date`

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact, uow repository.UnitOfWork) error {
	if c.PostDate.IsZero() {
		c.PostDate = time.Now()
	}
	row, err := r.exec.QueryRow(ctx, uow, `
		INSERT INTO contacts (member_id, contact_type, contact_detail, verified, code,
			public_private, notes, post_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING contact_id
	`, c.MemberID, c.ContactType, c.ContactDetail, c.Verified, c.Code,
		c.PublicPrivate, c.Notes, c.PostDate)
	if err != nil {
		return err
	}
	if err := row.Scan(&c.ContactID); err != nil {
		return mapErr("insert contact", err)
	}
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, contactID int64) (*entity.Contact, error) {
	row, err := r.exec.QueryRow(ctx, nil, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE contact_id = $1
	`, contactID)
	if err != nil {
		return nil, err
	}
	return scanContact(row)
}

func (r *ContactRepository) GetByCode(ctx context.Context, code string) (*entity.Contact, error) {
	row, err := r.exec.QueryRow(ctx, nil, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE code = $1
	`, code)
	if err != nil {
		return nil, err
	}
	return scanContact(row)
}

func (r *ContactRepository) GetByDetail(ctx context.Context, contactType, detail string) (*entity.Contact, error) {
	row, err := r.exec.QueryRow(ctx, nil, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE contact_type = $1 AND contact_detail = $2
	`, contactType, detail)
	if err != nil {
		return nil, err
	}
	return scanContact(row)
}

func (r *ContactRepository) ListByMember(ctx context.Context, memberID string) ([]*entity.Contact, error) {
	rows, err := r.exec.Query(ctx, nil, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE member_id = $1
		ORDER BY contact_id
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("list contacts", err)
	}
	return out, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact, uow repository.UnitOfWork) error {
	affected, err := r.exec.Exec(ctx, uow, `
		UPDATE contacts
		SET contact_type = $1, contact_detail = $2, verified = $3, code = $4,
			public_private = $5, notes = $6
		WHERE contact_id = $7
	`, c.ContactType, c.ContactDetail, c.Verified, c.Code,
		c.PublicPrivate, c.Notes, c.ContactID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, contactID int64) error {
	affected, err := r.exec.Exec(ctx, nil, `
		DELETE FROM contacts WHERE contact_id = $1
	`, contactID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanContact(row scanner) (*entity.Contact, error) {
	c := &entity.Contact{}
	if err := row.Scan(&c.ContactID, &c.MemberID, &c.ContactType, &c.ContactDetail, &c.Verified, &c.Code,
		&c.PublicPrivate, &c.Notes, &c.PostDate); err != nil {
		return nil, mapErr("scan contact", err)
	}
	return c, nil
}

var _ repository.ContactRepository = (*ContactRepository)(nil)
