package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/martijn/usersvc/internal/core/domain"
	"github.com/martijn/usersvc/internal/core/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*userRepository, *DB) {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserRepository(db).(*userRepository), db
}

// stepClock returns a clock that advances one second per call
func stepClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func mustCreate(t *testing.T, repo repository.UserRepository, username, email string) *domain.User {
	t.Helper()
	user := domain.NewUser(domain.UserFields{Username: username, Email: email, Password: "pw", Age: 20})
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_CreateAndFindByID(t *testing.T) {
	repo, _ := newTestRepo(t)
	repo.now = stepClock(time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	user := mustCreate(t, repo, "ana", "ana@x.com")
	assert.Equal(t, time.Date(2025, 11, 1, 10, 0, 1, 0, time.UTC), user.CreatedAt)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Fields(), got.Fields())
	assert.True(t, user.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.FindByID(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepository_FindOne(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	a := mustCreate(t, repo, "ana", "ana@x.com")
	mustCreate(t, repo, "bo", "bo@x.com")

	got, err := repo.FindOne(ctx, repository.UserFilter{Email: "ana@x.com"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.FindOne(ctx, repository.UserFilter{Email: "ana@x.com", ExcludeID: a.ID})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = repo.FindOne(ctx, repository.UserFilter{Email: "nobody@x.com"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepository_List(t *testing.T) {
	repo, _ := newTestRepo(t)
	repo.now = stepClock(time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	a := mustCreate(t, repo, "ana", "ana@x.com")
	b := mustCreate(t, repo, "bo", "bo@x.com")

	users, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, a.ID, users[0].ID)
	assert.Equal(t, b.ID, users[1].ID)
}

func TestUserRepository_UpdateByID(t *testing.T) {
	repo, _ := newTestRepo(t)
	repo.now = stepClock(time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	user := mustCreate(t, repo, "ana", "ana@x.com")

	fields := domain.UserFields{Username: "ana2", Email: "ana2@x.com", Password: "pw2", Age: 21}
	updated, err := repo.UpdateByID(ctx, user.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, fields, updated.Fields())
	assert.True(t, user.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(user.UpdatedAt))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, fields, got.Fields())

	_, err = repo.UpdateByID(ctx, "missing", fields)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepository_Delete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	a := mustCreate(t, repo, "ana", "ana@x.com")
	mustCreate(t, repo, "bo", "bo@x.com")
	mustCreate(t, repo, "cy", "cy@x.com")

	require.NoError(t, repo.DeleteByID(ctx, a.ID))
	require.NoError(t, repo.DeleteByID(ctx, a.ID))

	_, err := repo.FindByID(ctx, a.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestUserRepository_RejectsNegativeAge(t *testing.T) {
	repo, _ := newTestRepo(t)

	user := domain.NewUser(domain.UserFields{Username: "a", Email: "a@b.co", Password: "p", Age: -1})
	assert.Error(t, repo.Create(context.Background(), user))
}

func TestNew_FileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.sqlite3")
	ctx := context.Background()

	db, err := New(path)
	require.NoError(t, err)
	user := mustCreate(t, NewUserRepository(db), "ana", "ana@x.com")
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewUserRepository(db).FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", got.Email)
}

func TestBuildUserFilter(t *testing.T) {
	tests := []struct {
		name      string
		filter    repository.UserFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{"empty", repository.UserFilter{}, "", nil},
		{"email", repository.UserFilter{Email: "a@b.co"}, "WHERE email = ?", []interface{}{"a@b.co"}},
		{"email excluding id", repository.UserFilter{Email: "a@b.co", ExcludeID: "1"}, "WHERE email = ? AND id != ?", []interface{}{"a@b.co", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildUserFilter(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
