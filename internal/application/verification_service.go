package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
)

// VerificationService owns the Unverified -> Verified transition of a
// contact. The transition is triggered by presenting the one-time code that
// was stored against the contact at creation.
type VerificationService struct {
	Contacts repository.ContactRepository
	Logger   *logrus.Logger
}

func NewVerificationService(contacts repository.ContactRepository, logger *logrus.Logger) *VerificationService {
	return &VerificationService{Contacts: contacts, Logger: logger}
}

// VerifyEmailCode flips the matching contact to verified. Re-presenting the
// code of an already-verified contact succeeds without touching storage, so
// retried and double-clicked verification links behave the same as the first.
// An unknown code reports ErrCodeNotFound and mutates nothing.
func (s *VerificationService) VerifyEmailCode(ctx context.Context, code string) (*entity.Contact, error) {
	if code == "" {
		return nil, ErrCodeNotFound
	}
	c, err := s.Contacts.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.Verified {
		return c, nil
	}
	c.Verified = true
	if err := s.Contacts.Update(ctx, c, nil); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"member_id": c.MemberID, "contact_id": c.ContactID}).Info("contact verified")
	}
	return c, nil
}
