package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
	"github.com/membernet/member-info-service/pkg/helpers"
)

const sessionTTL = 24 * time.Hour

func sessionKey(memberID string) string {
	return "member:session:" + memberID
}

// AuthService authenticates a member by email contact and issues the signed
// access token. Token issuance has no storage side effects; the redis session
// hash is a best-effort cache.
type AuthService struct {
	Members  repository.MemberRepository
	Contacts repository.ContactRepository
	JWT      *helpers.JWTManager
	Redis    *redis.Client
	Logger   *logrus.Logger
}

func NewAuthService(members repository.MemberRepository, contacts repository.ContactRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Members: members, Contacts: contacts, JWT: jwt, Redis: rdb, Logger: logger}
}

// LoginResult carries the issued token and the authenticated member.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Member    *entity.Member
	Contact   *entity.Contact
}

// Authenticate resolves an email to its member and contact. It does not check
// the verification state; Login layers that gate on top.
func (s *AuthService) Authenticate(ctx context.Context, email string) (*entity.Member, *entity.Contact, error) {
	c, err := s.Contacts.GetByDetail(ctx, entity.ContactTypeEmail, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	m, err := s.Members.GetByID(ctx, c.MemberID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return m, c, nil
}

// Login authenticates the email, requires a verified contact, and issues an
// access token whose subject claim is the member ID.
func (s *AuthService) Login(ctx context.Context, email string) (*LoginResult, error) {
	m, c, err := s.Authenticate(ctx, email)
	if err != nil {
		return nil, err
	}
	if !c.Verified {
		return nil, ErrNotVerified
	}
	token, exp, err := s.JWT.GenerateAccessToken(m.MemberID, email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("member_id", m.MemberID).Error("generate access token failed")
		}
		return nil, err
	}

	if s.Redis != nil {
		key := sessionKey(m.MemberID)
		fields := map[string]any{
			"member_id":  m.MemberID,
			"username":   m.Username,
			"email":      email,
			"logged_in":  true,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return &LoginResult{Token: token, ExpiresAt: exp, Member: m, Contact: c}, nil
}
