package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/app/domain"
	"catalog-service/app/utils/logger"
)

func newTestUserUseCase(t *testing.T, repo *fakeUserRepo) *UserUseCase {
	t.Helper()

	testLogger, err := logger.New("debug")
	require.NoError(t, err)
	return NewUserUseCase(repo, testLogger)
}

func TestUserUseCase_GetByID(t *testing.T) {
	alice := registeredUser(t, "alice", "pw")
	bob := registeredUser(t, "bob", "pw")
	repo := newFakeUserRepo(alice, bob)
	uc := newTestUserUseCase(t, repo)

	aliceCtx := &domain.AuthContext{UserID: alice.ID, Username: "alice", Role: domain.RoleUser}
	adminCtx := &domain.AuthContext{UserID: uuid.New(), Username: "root", Role: domain.RoleAdmin}

	t.Run("user reads own profile", func(t *testing.T) {
		user, err := uc.GetByID(context.Background(), aliceCtx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("user cannot read another profile", func(t *testing.T) {
		_, err := uc.GetByID(context.Background(), aliceCtx, bob.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin reads any profile", func(t *testing.T) {
		user, err := uc.GetByID(context.Background(), adminCtx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := uc.GetByID(context.Background(), adminCtx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserUseCase_Update(t *testing.T) {
	t.Run("changes role", func(t *testing.T) {
		alice := registeredUser(t, "alice", "pw")
		uc := newTestUserUseCase(t, newFakeUserRepo(alice))

		user, err := uc.Update(context.Background(), alice.ID, "", "ADMIN")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("changes username", func(t *testing.T) {
		alice := registeredUser(t, "alice", "pw")
		uc := newTestUserUseCase(t, newFakeUserRepo(alice))

		user, err := uc.Update(context.Background(), alice.ID, "alice_2", "")
		require.NoError(t, err)
		assert.Equal(t, "alice_2", user.Username)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		alice := registeredUser(t, "alice", "pw")
		bob := registeredUser(t, "bob", "pw")
		uc := newTestUserUseCase(t, newFakeUserRepo(alice, bob))

		_, err := uc.Update(context.Background(), alice.ID, "bob", "")
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		alice := registeredUser(t, "alice", "pw")
		uc := newTestUserUseCase(t, newFakeUserRepo(alice))

		_, err := uc.Update(context.Background(), alice.ID, "", "SUPERUSER")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := newTestUserUseCase(t, newFakeUserRepo())

		_, err := uc.Update(context.Background(), uuid.New(), "", "ADMIN")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserUseCase_Delete(t *testing.T) {
	alice := registeredUser(t, "alice", "pw")
	repo := newFakeUserRepo(alice)
	uc := newTestUserUseCase(t, repo)

	require.NoError(t, uc.Delete(context.Background(), alice.ID))
	assert.ErrorIs(t, uc.Delete(context.Background(), alice.ID), domain.ErrUserNotFound)
}

func TestUserUseCase_Search(t *testing.T) {
	repo := newFakeUserRepo(registeredUser(t, "alice", "pw"), registeredUser(t, "bob", "pw"))
	uc := newTestUserUseCase(t, repo)

	result, err := uc.Search(context.Background(), domain.UserFilter{}, domain.NewPage(0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	assert.Len(t, result.Items, 2)
}
