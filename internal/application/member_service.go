package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
	"github.com/membernet/member-info-service/pkg/helpers"
)

// MemberService serves member profiles and the address/contact CRUD
// pass-throughs. All operations take the authenticated caller's member ID as
// an explicit parameter; nothing is read from ambient security context.
type MemberService struct {
	Members   repository.MemberRepository
	Contacts  repository.ContactRepository
	Addresses repository.AddressRepository
	Indexer   *MemberIndexer
	Logger    *logrus.Logger
}

func NewMemberService(members repository.MemberRepository, contacts repository.ContactRepository, addresses repository.AddressRepository, logger *logrus.Logger) *MemberService {
	return &MemberService{Members: members, Contacts: contacts, Addresses: addresses, Logger: logger}
}

func (s *MemberService) GetMember(ctx context.Context, memberID string) (*entity.Member, error) {
	m, err := s.Members.GetByID(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetMemberWithAddresses returns the profile plus its addresses, the shape
// served by the public member-info endpoint.
func (s *MemberService) GetMemberWithAddresses(ctx context.Context, memberID string) (*entity.Member, []*entity.Address, error) {
	m, err := s.GetMember(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}
	addrs, err := s.Addresses.ListByMember(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}
	return m, addrs, nil
}

// UpdateProfileInput carries the mutable profile fields. MemberID, points
// source-of-truth and parent linkage are not caller-writable here.
type UpdateProfileInput struct {
	Name                string
	NameVisible         bool
	NameLast            string
	NameLastVisible     bool
	Username            string
	Status              string
	UserPoints          int
	MemberType          string
	ProfileIntroduction string
}

func (s *MemberService) UpdateProfile(ctx context.Context, memberID string, in UpdateProfileInput) (*entity.Member, error) {
	m, err := s.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	m.Name = in.Name
	m.NameVisible = in.NameVisible
	m.NameLast = in.NameLast
	m.NameLastVisible = in.NameLastVisible
	if in.Username != "" {
		m.Username = in.Username
	}
	if in.Status != "" {
		m.Status = in.Status
	}
	m.UserPoints = in.UserPoints
	m.MemberType = in.MemberType
	m.ProfileIntroduction = in.ProfileIntroduction

	if err := s.Members.Update(ctx, m, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if s.Indexer != nil {
		if ixErr := s.Indexer.Index(ctx, m); ixErr != nil && s.Logger != nil {
			s.Logger.WithError(ixErr).WithField("member_id", m.MemberID).Warn("index member failed")
		}
	}
	return m, nil
}

// Address CRUD. Ownership is enforced by scoping every mutation to the
// caller's member ID.

func (s *MemberService) CreateAddress(ctx context.Context, a *entity.Address) error {
	return s.Addresses.Create(ctx, a)
}

func (s *MemberService) GetAddress(ctx context.Context, addressID int64) (*entity.Address, error) {
	a, err := s.Addresses.GetByID(ctx, addressID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	return a, err
}

func (s *MemberService) ListAddresses(ctx context.Context, memberID string) ([]*entity.Address, error) {
	return s.Addresses.ListByMember(ctx, memberID)
}

func (s *MemberService) UpdateAddress(ctx context.Context, a *entity.Address) error {
	return s.Addresses.Update(ctx, a)
}

func (s *MemberService) DeleteAddress(ctx context.Context, memberID string, addressID int64) error {
	a, err := s.Addresses.GetByID(ctx, addressID)
	if err != nil {
		return err
	}
	if a.MemberID != memberID {
		return repository.ErrNotFound
	}
	return s.Addresses.Delete(ctx, addressID)
}

// Contact CRUD. A new contact always starts unverified with a fresh one-time
// code; an edit that changes the detail drops the verified state and rotates
// the code, because the old proof no longer covers the new destination.

func (s *MemberService) CreateContact(ctx context.Context, c *entity.Contact) error {
	code, err := helpers.NewVerificationCode()
	if err != nil {
		return err
	}
	c.Verified = false
	c.Code = code
	return s.Contacts.Create(ctx, c, nil)
}

func (s *MemberService) GetContact(ctx context.Context, contactID int64) (*entity.Contact, error) {
	c, err := s.Contacts.GetByID(ctx, contactID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	return c, err
}

func (s *MemberService) ListContacts(ctx context.Context, memberID string) ([]*entity.Contact, error) {
	return s.Contacts.ListByMember(ctx, memberID)
}

// UpdateContactInput carries the caller-writable contact fields.
type UpdateContactInput struct {
	ContactType   string
	ContactDetail string
	PublicPrivate bool
	Notes         string
}

func (s *MemberService) UpdateContact(ctx context.Context, memberID string, contactID int64, in UpdateContactInput) (*entity.Contact, error) {
	c, err := s.Contacts.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if c.MemberID != memberID {
		return nil, repository.ErrNotFound
	}
	if in.ContactDetail != c.ContactDetail {
		code, err := helpers.NewVerificationCode()
		if err != nil {
			return nil, err
		}
		c.Verified = false
		c.Code = code
	}
	c.ContactType = in.ContactType
	c.ContactDetail = in.ContactDetail
	c.PublicPrivate = in.PublicPrivate
	c.Notes = in.Notes
	if err := s.Contacts.Update(ctx, c, nil); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *MemberService) DeleteContact(ctx context.Context, memberID string, contactID int64) error {
	c, err := s.Contacts.GetByID(ctx, contactID)
	if err != nil {
		return err
	}
	if c.MemberID != memberID {
		return repository.ErrNotFound
	}
	return s.Contacts.Delete(ctx, contactID)
}
