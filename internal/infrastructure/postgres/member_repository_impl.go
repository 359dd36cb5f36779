package postgres

import (
	"context"
	"time"

	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
)

type MemberRepository struct {
	exec *Executor
}

func NewMemberRepository(exec *Executor) *MemberRepository {
	return &MemberRepository{exec: exec}
}

const memberColumns = `member_id, username, name, name_visible, name_last, name_last_visible,
		status, user_points, member_type, profile_introduction, COALESCE(parent_member_id, ''), post_date`

func (r *MemberRepository) Create(ctx context.Context, m *entity.Member, uow repository.UnitOfWork) error {
	if m.PostDate.IsZero() {
		m.PostDate = time.Now()
	}
	_, err := r.exec.Exec(ctx, uow, `
		INSERT INTO members (member_id, username, name, name_visible, name_last, name_last_visible,
			status, user_points, member_type, profile_introduction, parent_member_id, post_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12)
	`, m.MemberID, m.Username, m.Name, m.NameVisible, m.NameLast, m.NameLastVisible,
		m.Status, m.UserPoints, m.MemberType, m.ProfileIntroduction, m.ParentMemberID, m.PostDate)
	return err
}

func (r *MemberRepository) GetByID(ctx context.Context, memberID string) (*entity.Member, error) {
	row, err := r.exec.QueryRow(ctx, nil, `
		SELECT `+memberColumns+`
		FROM members
		WHERE member_id = $1
	`, memberID)
	if err != nil {
		return nil, err
	}
	return scanMember(row)
}

func (r *MemberRepository) GetByUsername(ctx context.Context, username string) (*entity.Member, error) {
	row, err := r.exec.QueryRow(ctx, nil, `
		SELECT `+memberColumns+`
		FROM members
		WHERE username = $1
	`, username)
	if err != nil {
		return nil, err
	}
	return scanMember(row)
}

func (r *MemberRepository) Update(ctx context.Context, m *entity.Member, uow repository.UnitOfWork) error {
	affected, err := r.exec.Exec(ctx, uow, `
		UPDATE members
		SET username = $1, name = $2, name_visible = $3, name_last = $4, name_last_visible = $5,
			status = $6, user_points = $7, member_type = $8, profile_introduction = $9,
			parent_member_id = NULLIF($10, '')
		WHERE member_id = $11
	`, m.Username, m.Name, m.NameVisible, m.NameLast, m.NameLastVisible,
		m.Status, m.UserPoints, m.MemberType, m.ProfileIntroduction, m.ParentMemberID, m.MemberID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanMember(row scanner) (*entity.Member, error) {
	m := &entity.Member{}
	if err := row.Scan(&m.MemberID, &m.Username, &m.Name, &m.NameVisible, &m.NameLast, &m.NameLastVisible,
		&m.Status, &m.UserPoints, &m.MemberType, &m.ProfileIntroduction, &m.ParentMemberID, &m.PostDate); err != nil {
		return nil, mapErr("scan member", err)
	}
	return m, nil
}

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

var _ repository.MemberRepository = (*MemberRepository)(nil)
