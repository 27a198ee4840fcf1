package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/auth"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active user and token", func(t *testing.T) {
		f := newFixture()
		a, token, err := NewAccountUsecase(f.deps).Register(ctx, RegisterInput{
			Name:     " Dana ",
			Email:    " Dana@Example.com",
			Password: "password",
			Province: "Shymkent",
		})
		require.NoError(t, err)
		assert.Equal(t, "Dana", a.Name)
		assert.Equal(t, "dana@example.com", a.Email)
		assert.Equal(t, domain.RoleUser, a.Role)
		assert.Equal(t, domain.AccountActive, a.Status)
		assert.Equal(t, "hashed:password", a.PasswordHash)
		assert.Equal(t, "token:"+a.ID+":USER", token)
	})

	cases := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"duplicate email", RegisterInput{Name: "A", Email: "ALICE@example.com", Password: "password"}, domain.ErrDuplicateEmail},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "password"}, domain.ErrInvalidInput},
		{"short password", RegisterInput{Name: "A", Email: "a@example.com", Password: "123"}, domain.ErrInvalidInput},
		{"missing name", RegisterInput{Email: "a@example.com", Password: "password"}, domain.ErrInvalidInput},
		{"password over 72 bytes", RegisterInput{Name: "A", Email: "a@example.com", Password: strings.Repeat("p", 73)}, domain.ErrInvalidInput},
		{"multibyte password over 72 bytes", RegisterInput{Name: "A", Email: "a@example.com", Password: strings.Repeat("ж", 37)}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, _, err := NewAccountUsecase(f.deps).Register(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAccountUsecase_Register_BcryptLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.deps.Hasher = auth.NewBcryptHasher(4)
	uc := NewAccountUsecase(f.deps)

	_, _, err := uc.Register(ctx, RegisterInput{Name: "Long", Email: "long@example.com", Password: strings.Repeat("x", 73)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	a, _, err := uc.Register(ctx, RegisterInput{Name: "Edge", Email: "edge@example.com", Password: strings.Repeat("x", 72)})
	require.NoError(t, err)
	assert.True(t, f.deps.Hasher.Verify(a.PasswordHash, strings.Repeat("x", 72)))
}

func TestAccountUsecase_Login(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := NewAccountUsecase(f.deps)

	a, token, err := uc.Login(ctx, "Alice@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, a.ID)
	assert.Equal(t, "token:alice:USER", token)

	_, _, err = uc.Login(ctx, alice.Email, "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = uc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = uc.Login(ctx, carol.Email, "secret3")
	assert.ErrorIs(t, err, domain.ErrAccountNotActive)

	_, token, err = uc.AdminLogin(ctx, root.Email, "rootpw")
	require.NoError(t, err)
	assert.Equal(t, "token:root:ADMIN", token)

	_, _, err = uc.AdminLogin(ctx, alice.Email, "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAccountUsecase_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("update own profile", func(t *testing.T) {
		f := newFixture()
		uc := NewAccountUsecase(f.deps)
		a, err := uc.UpdateProfile(ctx, viewerOf(bob), domain.ProfilePatch{Phone: strPtr("+7 777"), Ward: strPtr("Center")})
		require.NoError(t, err)
		assert.Equal(t, "+7 777", a.Phone)
		assert.Equal(t, "Center", a.Ward)
		assert.Equal(t, "Bob", a.Name)
		assert.Equal(t, testNow, a.UpdatedAt)

		_, err = uc.UpdateProfile(ctx, viewerOf(bob), domain.ProfilePatch{Name: strPtr("  ")})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("guest has no profile", func(t *testing.T) {
		f := newFixture()
		_, err := NewAccountUsecase(f.deps).Profile(ctx, domain.Guest())
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("change password", func(t *testing.T) {
		f := newFixture()
		uc := NewAccountUsecase(f.deps)

		assert.ErrorIs(t, uc.ChangePassword(ctx, viewerOf(bob), "bad", "newpassword"), domain.ErrInvalidCredentials)
		assert.ErrorIs(t, uc.ChangePassword(ctx, viewerOf(bob), "secret2", "123"), domain.ErrInvalidInput)
		assert.ErrorIs(t, uc.ChangePassword(ctx, viewerOf(bob), "secret2", strings.Repeat("p", 73)), domain.ErrInvalidInput)
		require.NoError(t, uc.ChangePassword(ctx, viewerOf(bob), "secret2", "newpassword"))

		_, _, err := uc.Login(ctx, bob.Email, "newpassword")
		assert.NoError(t, err)
	})
}

func TestAccountUsecase_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new admin", func(t *testing.T) {
		f := newFixture()
		a, err := NewAccountUsecase(f.deps).EnsureAdmin(ctx, "", "ops@example.com", "opspassword")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, a.Role)
		assert.Equal(t, "Administrator", a.Name)
	})

	t.Run("promotes and reactivates existing account", func(t *testing.T) {
		f := newFixture()
		a, err := NewAccountUsecase(f.deps).EnsureAdmin(ctx, "", carol.Email, "carolpass")
		require.NoError(t, err)
		assert.Equal(t, carol.ID, a.ID)
		assert.Equal(t, domain.RoleAdmin, a.Role)
		assert.Equal(t, domain.AccountActive, a.Status)
		assert.Equal(t, "Carol", a.Name)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		f := newFixture()
		_, err := NewAccountUsecase(f.deps).EnsureAdmin(ctx, "x", "ops@example.com", "1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects password bcrypt cannot hash", func(t *testing.T) {
		f := newFixture()
		_, err := NewAccountUsecase(f.deps).EnsureAdmin(ctx, "x", "ops@example.com", strings.Repeat("p", 73))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
