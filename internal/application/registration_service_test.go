package application

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/membernet/member-info-service/internal/domain/entity"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newRegistrationFixture() (*RegistrationService, *fakeMemberRepo, *fakeContactRepo, *fakeStarter) {
	members := newFakeMemberRepo()
	contacts := newFakeContactRepo()
	starter := &fakeStarter{}
	svc := NewRegistrationService(members, contacts, starter, testLogger())
	return svc, members, contacts, starter
}

func TestRegisterCreatesMemberAndUnverifiedContact(t *testing.T) {
	svc, members, contacts, starter := newRegistrationFixture()

	res, err := svc.Register(context.Background(), &entity.Member{Username: "kereru", Name: "Kate"}, "kate@example.com", "")
	require.NoError(t, err)
	require.True(t, res.OK)

	m, err := members.GetByUsername(context.Background(), "kereru")
	require.NoError(t, err)
	assert.Len(t, m.MemberID, 64)
	assert.Equal(t, entity.StatusActive, m.Status)

	c, err := contacts.GetByDetail(context.Background(), entity.ContactTypeEmail, "kate@example.com")
	require.NoError(t, err)
	assert.Equal(t, m.MemberID, c.MemberID)
	assert.False(t, c.Verified)
	assert.NotEmpty(t, c.Code)
	require.NotNil(t, starter.last)
	assert.True(t, starter.last.committed)
}

func TestRegisterRollsBackWhenContactInsertFails(t *testing.T) {
	svc, members, contacts, starter := newRegistrationFixture()
	contacts.createErr = errors.New("insert blew up")

	res, err := svc.Register(context.Background(), &entity.Member{Username: "tui"}, "tui@example.com", "")
	require.Error(t, err)
	assert.False(t, res.OK)

	// Neither row is observable after the rollback.
	_, err = members.GetByUsername(context.Background(), "tui")
	assert.Error(t, err)
	_, err = contacts.GetByDetail(context.Background(), entity.ContactTypeEmail, "tui@example.com")
	assert.Error(t, err)
	require.NotNil(t, starter.last)
	assert.True(t, starter.last.rolledBack)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, members, _, _ := newRegistrationFixture()
	members.put(&entity.Member{MemberID: "EXISTING", Username: "weka"})

	res, err := svc.Register(context.Background(), &entity.Member{Username: "weka"}, "weka@example.com", "")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "username or email is already registered", res.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, contacts, _ := newRegistrationFixture()
	require.NoError(t, contacts.Create(context.Background(), &entity.Contact{
		MemberID: "EXISTING", ContactType: entity.ContactTypeEmail, ContactDetail: "taken@example.com",
	}, nil))

	res, err := svc.Register(context.Background(), &entity.Member{Username: "hoiho"}, "taken@example.com", "")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "username or email is already registered", res.Message)
}

func TestRegisterLinksResolvableParent(t *testing.T) {
	svc, members, _, _ := newRegistrationFixture()
	members.put(&entity.Member{MemberID: "PARENT01", Username: "mother"})

	res, err := svc.Register(context.Background(), &entity.Member{Username: "chick"}, "chick@example.com", "mother")
	require.NoError(t, err)
	require.True(t, res.OK)

	m, err := members.GetByUsername(context.Background(), "chick")
	require.NoError(t, err)
	assert.Equal(t, "PARENT01", m.ParentMemberID)
}

func TestRegisterIgnoresUnknownParent(t *testing.T) {
	svc, members, _, _ := newRegistrationFixture()

	res, err := svc.Register(context.Background(), &entity.Member{Username: "orphan"}, "orphan@example.com", "nobody")
	require.NoError(t, err)
	require.True(t, res.OK)

	m, err := members.GetByUsername(context.Background(), "orphan")
	require.NoError(t, err)
	assert.Empty(t, m.ParentMemberID)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture()

	res, err := svc.Register(context.Background(), &entity.Member{}, "x@example.com", "")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "username is required", res.Message)

	res, err = svc.Register(context.Background(), &entity.Member{Username: "someone"}, "", "")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "email is required", res.Message)
}

func TestRegisterBeginFailure(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture()
	svc.UoW = &fakeStarter{beginErr: errors.New("pool exhausted")}

	res, err := svc.Register(context.Background(), &entity.Member{Username: "kaka"}, "kaka@example.com", "")
	require.Error(t, err)
	assert.False(t, res.OK)
}
