package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/storefront/internal/domain/entity"
	"github.com/jortega/storefront/internal/domain/repository"
	"github.com/jortega/storefront/pkg/helpers"
)

type mockUserRepo struct {
	createFn     func(ctx context.Context, u *entity.User) error
	getByEmailFn func(ctx context.Context, email string) (*entity.User, error)
	getByIDFn    func(ctx context.Context, id string) (*entity.User, error)
	updateFn     func(ctx context.Context, u *entity.User) error

	createCalls int
	lookupCalls int
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	u.ID = "user-1"
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.lookupCalls++
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]entity.User, error) { return nil, nil }

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, _ string) error { return nil }

var _ repository.UserRepository = (*mockUserRepo)(nil)

func TestRegisterWeakPasswordSkipsStore(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewAuthService(repo, nil, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "short1",
	})

	require.ErrorIs(t, err, ErrWeakPassword)
	assert.Zero(t, repo.lookupCalls, "weak password must be rejected before any store access")
	assert.Zero(t, repo.createCalls)
}

func TestRegisterFullNameBounds(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewAuthService(repo, nil, nil)

	for _, name := range []string{"Jo", "  a  ", ""} {
		_, err := svc.Register(context.Background(), RegisterInput{
			FullName: name,
			Email:    "jane@example.com",
			Password: "longenough1",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "name %q", name)
		assert.Equal(t, "fullname", verr.Field)
	}
	assert.Zero(t, repo.createCalls)
}

func TestRegisterMalformedEmail(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewAuthService(repo, nil, nil)

	for _, email := range []string{"", "janeexample.com", "jane@", "@example.com", "jane@nodomain"} {
		_, err := svc.Register(context.Background(), RegisterInput{
			FullName: "Jane Doe",
			Email:    email,
			Password: "longenough1",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "email %q", email)
		assert.Equal(t, "email", verr.Field)
	}
	assert.Zero(t, repo.createCalls)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	existing := &entity.User{ID: "user-1", Email: "jane@example.com"}
	repo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*entity.User, error) {
			return existing, nil
		},
	}
	svc := NewAuthService(repo, nil, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "longenough1",
	})

	require.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Zero(t, repo.createCalls, "duplicate email must perform zero writes")
}

func TestRegisterDuplicateRaceLosesOnInsert(t *testing.T) {
	// The advisory lookup misses but the unique index rejects the
	// insert: the loser still gets the duplicate-email answer.
	repo := &mockUserRepo{
		createFn: func(_ context.Context, _ *entity.User) error {
			return repository.ErrDuplicate
		},
	}
	svc := NewAuthService(repo, nil, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "longenough1",
	})

	require.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, repo.createCalls)
}

func TestRegisterStoreFailureSurfacesOpaque(t *testing.T) {
	infraErr := errors.New("connection refused")
	repo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, _ string) (*entity.User, error) {
			return nil, infraErr
		},
	}
	svc := NewAuthService(repo, nil, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "longenough1",
	})

	require.ErrorIs(t, err, infraErr)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.Zero(t, repo.createCalls)
}

func TestRegisterSuccess(t *testing.T) {
	var stored *entity.User
	repo := &mockUserRepo{
		createFn: func(_ context.Context, u *entity.User) error {
			u.ID = "user-1"
			stored = u
			return nil
		},
	}
	svc := NewAuthService(repo, nil, nil)

	u, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "longenough1",
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Jane Doe", u.FullName)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.NotEqual(t, "longenough1", stored.PasswordHash, "digest must not be the plaintext")
	assert.True(t, helpers.CheckPassword(stored.PasswordHash, "longenough1"))
}

func TestRegisterTrimsFullName(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewAuthService(repo, nil, nil)

	u, err := svc.Register(context.Background(), RegisterInput{
		FullName: "  Jane Doe  ",
		Email:    "jane@example.com",
		Password: "longenough1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", u.FullName)
}

func TestAuthenticate(t *testing.T) {
	hash, err := helpers.HashPassword("longenough1")
	require.NoError(t, err)
	known := &entity.User{ID: "user-1", Email: "jane@example.com", PasswordHash: hash}

	repo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*entity.User, error) {
			if email == known.Email {
				return known, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := NewAuthService(repo, nil, nil)

	u, err := svc.Authenticate(context.Background(), "jane@example.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)

	_, err = svc.Authenticate(context.Background(), "jane@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "longenough1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	known := &entity.User{ID: "user-1", Email: "jane@example.com", FullName: "Jane Doe"}
	repo := &mockUserRepo{
		getByIDFn: func(_ context.Context, id string) (*entity.User, error) {
			if id == known.ID {
				return known, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := NewAuthService(repo, nil, nil)

	u, err := svc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{FullName: "Jane Q. Doe"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Doe", u.FullName)

	_, err = svc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{FullName: "ab"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdateProfile(context.Background(), "missing", UpdateProfileInput{FullName: "Jane"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
