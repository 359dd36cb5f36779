package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
	"github.com/membernet/member-info-service/pkg/helpers"
	"github.com/membernet/member-info-service/pkg/mailer"
)

const defaultTxTimeout = 10 * time.Second

// RegisterResult is the typed outcome of a registration attempt. Message is
// human-readable and safe to return to the caller.
type RegisterResult struct {
	OK      bool
	Message string
}

// RegistrationService creates a member and its primary email contact inside
// one unit of work. Either both rows commit or neither does; a half-created
// member is never observable.
type RegistrationService struct {
	Members   repository.MemberRepository
	Contacts  repository.ContactRepository
	UoW       repository.UnitOfWorkStarter
	Pub       *helpers.RabbitPublisher
	Indexer   *MemberIndexer
	Logger    *logrus.Logger
	TxTimeout time.Duration
	MailSend  bool
	VerifyURL string
}

func NewRegistrationService(members repository.MemberRepository, contacts repository.ContactRepository, uow repository.UnitOfWorkStarter, logger *logrus.Logger) *RegistrationService {
	return &RegistrationService{Members: members, Contacts: contacts, UoW: uow, Logger: logger}
}

// Register validates input, then runs the member insert, the unverified email
// contact insert and the optional parent linkage in a single unit of work.
// Validation and conflict failures come back as (RegisterResult, nil); a
// non-nil error means an unexpected storage fault (the result message stays
// generic so the handler leaks no internals).
func (s *RegistrationService) Register(ctx context.Context, m *entity.Member, email, parentUsername string) (RegisterResult, error) {
	if strings.TrimSpace(m.Username) == "" {
		return RegisterResult{Message: "username is required"}, nil
	}
	if strings.TrimSpace(email) == "" {
		return RegisterResult{Message: "email is required"}, nil
	}
	if m.Status == "" {
		m.Status = entity.StatusActive
	}

	memberID, err := helpers.NewMemberID()
	if err != nil {
		return RegisterResult{Message: "registration failed"}, err
	}
	code, err := helpers.NewVerificationCode()
	if err != nil {
		return RegisterResult{Message: "registration failed"}, err
	}
	m.MemberID = memberID
	contact := &entity.Contact{
		MemberID:      memberID,
		ContactType:   entity.ContactTypeEmail,
		ContactDetail: email,
		Verified:      false,
		Code:          code,
	}

	// A parent username that does not resolve is ignored; registration
	// proceeds without the linkage.
	if parentUsername != "" {
		parent, err := s.Members.GetByUsername(ctx, parentUsername)
		switch {
		case err == nil:
			m.ParentMemberID = parent.MemberID
		case errors.Is(err, repository.ErrNotFound):
			if s.Logger != nil {
				s.Logger.WithField("parent_username", parentUsername).Warn("parent username not found, ignoring linkage")
			}
		default:
			return RegisterResult{Message: "registration failed"}, err
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout())
	defer cancel()

	uow, err := s.UoW.Begin(txCtx)
	if err != nil {
		return RegisterResult{Message: "registration failed"}, err
	}
	if err := s.insertMemberAndContact(txCtx, uow, m, contact); err != nil {
		if rbErr := uow.Rollback(txCtx); rbErr != nil && s.Logger != nil {
			s.Logger.WithError(rbErr).Error("registration rollback failed")
		}
		if errors.Is(err, repository.ErrConflict) {
			return RegisterResult{Message: "username or email is already registered"}, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", m.Username).Error("registration failed")
		}
		return RegisterResult{Message: "registration failed"}, err
	}
	if err := uow.Commit(txCtx); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return RegisterResult{Message: "username or email is already registered"}, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", m.Username).Error("registration commit failed")
		}
		return RegisterResult{Message: "registration failed"}, err
	}

	s.afterRegister(ctx, m, contact)
	return RegisterResult{OK: true}, nil
}

func (s *RegistrationService) insertMemberAndContact(ctx context.Context, uow repository.UnitOfWork, m *entity.Member, c *entity.Contact) error {
	if err := s.Members.Create(ctx, m, uow); err != nil {
		return err
	}
	return s.Contacts.Create(ctx, c, uow)
}

// afterRegister runs the best-effort side channels once the unit of work has
// committed: the verification email job and the search index.
func (s *RegistrationService) afterRegister(ctx context.Context, m *entity.Member, c *entity.Contact) {
	if s.Pub != nil && s.MailSend {
		job := mailer.EmailJob{
			To:       c.ContactDetail,
			Template: mailer.TemplateVerifyEmail,
			Data: map[string]any{
				"Name":       m.Name,
				"Code":       c.Code,
				"VerifyLink": s.verifyLink(c.Code),
			},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("member_id", m.MemberID).Warn("enqueue verification email failed")
		}
	}
	if s.Indexer != nil {
		if err := s.Indexer.Index(ctx, m); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("member_id", m.MemberID).Warn("index member failed")
		}
	}
}

func (s *RegistrationService) verifyLink(code string) string {
	if s.VerifyURL == "" {
		return ""
	}
	return s.VerifyURL + "?code=" + code
}

func (s *RegistrationService) txTimeout() time.Duration {
	if s.TxTimeout > 0 {
		return s.TxTimeout
	}
	return defaultTxTimeout
}
