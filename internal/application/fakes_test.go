package application

import (
	"context"
	"errors"
	"sync"

	"github.com/membernet/member-info-service/internal/domain/entity"
	"github.com/membernet/member-info-service/internal/domain/repository"
)

// In-memory stores with unit-of-work staging. Writes issued against a fake
// unit of work only land when Commit applies them, which lets the tests
// observe atomicity without a database.

type fakeUoW struct {
	mu         sync.Mutex
	staged     []func()
	committed  bool
	rolledBack bool
}

func (u *fakeUoW) stage(fn func()) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.staged = append(u.staged, fn)
}

func (u *fakeUoW) Commit(context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.committed || u.rolledBack {
		return errors.New("unit of work already finished")
	}
	for _, fn := range u.staged {
		fn()
	}
	u.committed = true
	return nil
}

func (u *fakeUoW) Rollback(context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.committed {
		return errors.New("unit of work already committed")
	}
	u.staged = nil
	u.rolledBack = true
	return nil
}

type fakeStarter struct {
	last     *fakeUoW
	beginErr error
}

func (s *fakeStarter) Begin(context.Context) (repository.UnitOfWork, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.last = &fakeUoW{}
	return s.last, nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.Member
	byUser  map[string]string // username -> member id
	updates int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{byID: map[string]*entity.Member{}, byUser: map[string]string{}}
}

func (r *fakeMemberRepo) put(m *entity.Member) {
	cp := *m
	r.byID[cp.MemberID] = &cp
	r.byUser[cp.Username] = cp.MemberID
}

func (r *fakeMemberRepo) Create(_ context.Context, m *entity.Member, uow repository.UnitOfWork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byUser[m.Username]; dup {
		return repository.ErrConflict
	}
	if u, ok := uow.(*fakeUoW); ok && u != nil {
		cp := *m
		u.stage(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.put(&cp)
		})
		return nil
	}
	r.put(m)
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, memberID string) (*entity.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[memberID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMemberRepo) GetByUsername(_ context.Context, username string) (*entity.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byUser[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, m *entity.Member, _ repository.UnitOfWork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.MemberID]; !ok {
		return repository.ErrNotFound
	}
	r.updates++
	r.put(m)
	return nil
}

type fakeContactRepo struct {
	mu        sync.Mutex
	byID      map[int64]*entity.Contact
	nextID    int64
	createErr error
	updates   int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{byID: map[int64]*entity.Contact{}, nextID: 1}
}

func (r *fakeContactRepo) put(c *entity.Contact) {
	cp := *c
	r.byID[cp.ContactID] = &cp
}

func (r *fakeContactRepo) Create(_ context.Context, c *entity.Contact, uow repository.UnitOfWork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.ContactType == c.ContactType && existing.ContactDetail == c.ContactDetail {
			return repository.ErrConflict
		}
	}
	c.ContactID = r.nextID
	r.nextID++
	if u, ok := uow.(*fakeUoW); ok && u != nil {
		cp := *c
		u.stage(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.put(&cp)
		})
		return nil
	}
	r.put(c)
	return nil
}

func (r *fakeContactRepo) GetByID(_ context.Context, contactID int64) (*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[contactID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContactRepo) GetByCode(_ context.Context, code string) (*entity.Contact, error) {
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

func (r *fakeContactRepo) GetByDetail(_ context.Context, contactType, detail string) (*entity.Contact, error) {
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

func (r *fakeContactRepo) ListByMember(_ context.Context, memberID string) ([]*entity.Contact, error) {
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

func (r *fakeContactRepo) Update(_ context.Context, c *entity.Contact, _ repository.UnitOfWork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ContactID]; !ok {
		return repository.ErrNotFound
	}
	r.updates++
	r.put(c)
	return nil
}

func (r *fakeContactRepo) Delete(_ context.Context, contactID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[contactID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, contactID)
	return nil
}

type fakeAddressRepo struct {
	mu     sync.Mutex
	byID   map[int64]*entity.Address
	nextID int64
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{byID: map[int64]*entity.Address{}, nextID: 1}
}

func (r *fakeAddressRepo) Create(_ context.Context, a *entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.AddressID = r.nextID
	r.nextID++
	cp := *a
	r.byID[cp.AddressID] = &cp
	return nil
}

func (r *fakeAddressRepo) GetByID(_ context.Context, addressID int64) (*entity.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[addressID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAddressRepo) ListByMember(_ context.Context, memberID string) ([]*entity.Address, error) {
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

func (r *fakeAddressRepo) Update(_ context.Context, a *entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.AddressID]; !ok {
		return repository.ErrNotFound
	}
	cp := *a
	r.byID[cp.AddressID] = &cp
	return nil
}

func (r *fakeAddressRepo) Delete(_ context.Context, addressID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[addressID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, addressID)
	return nil
}
