package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/membernet/member-info-service/internal/application"
	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
	"github.com/membernet/member-info-service/internal/interface/middleware"
	"github.com/membernet/member-info-service/pkg/helpers"
)

// Minimal in-memory stores; the service-level tests cover staging semantics,
// here a plain map is enough.

type memMembers struct {
	mu   sync.Mutex
	byID map[string]*entity.Member
}

func (r *memMembers) Create(_ context.Context, m *entity.Member, _ repository.UnitOfWork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.byID {
		if x.Username == m.Username {
			return repository.ErrConflict
		}
	}
	cp := *m
	r.byID[cp.MemberID] = &cp
	return nil
}

func (r *memMembers) GetByID(_ context.Context, id string) (*entity.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memMembers) GetByUsername(_ context.Context, username string) (*entity.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.byID {
		if m.Username == username {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memMembers) Update(_ context.Context, m *entity.Member, _ repository.UnitOfWork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.MemberID]; !ok {
		return repository.ErrNotFound
	}
	cp := *m
	r.byID[cp.MemberID] = &cp
	return nil
}

type memContacts struct {
	mu     sync.Mutex
	byID   map[int64]*entity.Contact
	nextID int64
}

func (r *memContacts) Create(_ context.Context, c *entity.Contact, _ repository.UnitOfWork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.byID {
		if x.ContactType == c.ContactType && x.ContactDetail == c.ContactDetail {
			return repository.ErrConflict
		}
	}
	r.nextID++
	c.ContactID = r.nextID
	cp := *c
	r.byID[cp.ContactID] = &cp
	return nil
}

func (r *memContacts) GetByID(_ context.Context, id int64) (*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memContacts) GetByCode(_ context.Context, code string) (*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memContacts) GetByDetail(_ context.Context, contactType, detail string) (*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.ContactType == contactType && c.ContactDetail == detail {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memContacts) ListByMember(_ context.Context, memberID string) ([]*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Contact
	for _, c := range r.byID {
		if c.MemberID == memberID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memContacts) Update(_ context.Context, c *entity.Contact, _ repository.UnitOfWork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ContactID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	r.byID[cp.ContactID] = &cp
	return nil
}

func (r *memContacts) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type memAddresses struct {
	mu     sync.Mutex
	byID   map[int64]*entity.Address
	nextID int64
}

func (r *memAddresses) Create(_ context.Context, a *entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.AddressID = r.nextID
	cp := *a
	r.byID[cp.AddressID] = &cp
	return nil
}

func (r *memAddresses) GetByID(_ context.Context, id int64) (*entity.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAddresses) ListByMember(_ context.Context, memberID string) ([]*entity.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Address
	for _, a := range r.byID {
		if a.MemberID == memberID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memAddresses) Update(_ context.Context, a *entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.AddressID]; !ok {
		return repository.ErrNotFound
	}
	cp := *a
	r.byID[cp.AddressID] = &cp
	return nil
}

func (r *memAddresses) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type memUoW struct{}

func (memUoW) Commit(context.Context) error   { return nil }
func (memUoW) Rollback(context.Context) error { return nil }

type memStarter struct{}

func (memStarter) Begin(context.Context) (repository.UnitOfWork, error) { return memUoW{}, nil }

type fixture struct {
	engine   *gin.Engine
	jwt      *helpers.JWTManager
	members  *memMembers
	contacts *memContacts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	members := &memMembers{byID: map[string]*entity.Member{}}
	contacts := &memContacts{byID: map[int64]*entity.Contact{}}
	addresses := &memAddresses{byID: map[int64]*entity.Address{}}

	jwt := helpers.NewJWTManager("handler-secret", "members-test", "members-test", time.Hour)

	regSvc := application.NewRegistrationService(members, contacts, memStarter{}, logger)
	verifySvc := application.NewVerificationService(contacts, logger)
	authSvc := application.NewAuthService(members, contacts, jwt, nil, logger)
	memberSvc := application.NewMemberService(members, contacts, addresses, logger)

	h := NewAccountHandler(regSvc, verifySvc, authSvc, memberSvc, logger)

	engine := gin.New()
	api := engine.Group("/api")
	api.POST("/account/register", h.Register)
	api.POST("/account/verify-email", h.VerifyEmail)
	api.POST("/account/login", h.Login)

	auth := api.Group("/")
	auth.Use(middleware.Auth(nil, jwt))
	auth.GET("/account/user", h.GetUser)
	auth.GET("/account/user-info/:memberId", h.GetUserInfo)
	auth.POST("/account/create-connect", h.CreateContact)

	return &fixture{engine: engine, jwt: jwt, members: members, contacts: contacts}
}

func (f *fixture) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/account/register", gin.H{
		"username": "huia", "email": "huia@example.com",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate username comes back as a client error, not a 500.
	w = f.do(t, http.MethodPost, "/api/account/register", gin.H{
		"username": "huia", "email": "other@example.com",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEndpointValidatesPayload(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/account/register", gin.H{"username": "solo"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/account/register", gin.H{
		"username": "solo", "email": "not-an-email",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEmailEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/account/register", gin.H{
		"username": "kea", "email": "kea@example.com",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	c, err := f.contacts.GetByDetail(context.Background(), entity.ContactTypeEmail, "kea@example.com")
	require.NoError(t, err)

	w = f.do(t, http.MethodPost, "/api/account/verify-email", gin.H{"code": c.Code}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Same code again: idempotent success.
	w = f.do(t, http.MethodPost, "/api/account/verify-email", gin.H{"code": c.Code}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/account/verify-email", gin.H{"code": "bogus"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/account/register", gin.H{
		"username": "takahe", "email": "takahe@example.com",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Unverified contact is refused.
	w = f.do(t, http.MethodPost, "/api/account/login", gin.H{"email": "takahe@example.com"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Unknown email is a distinct failure.
	w = f.do(t, http.MethodPost, "/api/account/login", gin.H{"email": "stranger@example.com"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, err := f.contacts.GetByDetail(context.Background(), entity.ContactTypeEmail, "takahe@example.com")
	require.NoError(t, err)
	w = f.do(t, http.MethodPost, "/api/account/verify-email", gin.H{"code": c.Code}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/account/login", gin.H{"email": "takahe@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token    string `json:"token"`
			MemberID string `json:"member_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)

	claims, err := f.jwt.ParseAccessToken(resp.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Data.MemberID, claims.Subject)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/account/user", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/api/account/user", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserWithToken(t *testing.T) {
	f := newFixture(t)
	m := &entity.Member{MemberID: "MEMBER42", Username: "kokako"}
	require.NoError(t, f.members.Create(context.Background(), m, nil))

	token, _, err := f.jwt.GenerateAccessToken("MEMBER42", "k@example.com")
	require.NoError(t, err)

	w := f.do(t, http.MethodGet, "/api/account/user", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "kokako", resp.Data.Username)
}

func TestUserInfoEndpoint(t *testing.T) {
	f := newFixture(t)
	m := &entity.Member{MemberID: "MEMBER77", Username: "weta"}
	require.NoError(t, f.members.Create(context.Background(), m, nil))

	token, _, err := f.jwt.GenerateAccessToken("MEMBER77", "")
	require.NoError(t, err)

	w := f.do(t, http.MethodGet, "/api/account/user-info/MEMBER77", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/account/user-info/NOBODY", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateContactEndpoint(t *testing.T) {
	f := newFixture(t)
	m := &entity.Member{MemberID: "MEMBER9", Username: "moa"}
	require.NoError(t, f.members.Create(context.Background(), m, nil))

	token, _, err := f.jwt.GenerateAccessToken("MEMBER9", "")
	require.NoError(t, err)

	w := f.do(t, http.MethodPost, "/api/account/create-connect", gin.H{
		"contact_type": "Phone", "contact_detail": "+6421000111",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			Verified bool `json:"verified"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Verified)
}
