package services

import (
	"context"
	"errors"
	"testing"

	"bookstore-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, &RegisterInput{Username: "u1", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.Username)
	assert.Equal(t, "u1", user.Email)
	assert.Equal(t, []string{domain.RoleCustomer}, user.Roles)

	res, err := f.auth.Login(ctx, &LoginInput{Username: "u1", Password: "pw1"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	p, err := f.tokens.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, "u1", p.Subject)
	assert.True(t, p.HasRole(domain.RoleCustomer))
	assert.False(t, p.HasRole(domain.RoleAdministrator))

	me, err := f.auth.Me(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &RegisterInput{Username: "u1", Email: "u1@example.com", Password: "pw1"})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, &LoginInput{Username: "u1", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, &LoginInput{Username: "nobody", Password: "pw1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_RegisterCollectsIdentityErrors(t *testing.T) {
	f := newFixture(t)
	f.auth.cfg.PasswordMinLength = 6
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, &RegisterInput{Username: "alice", Email: "a@example.com", Password: "short"})
	var idErrs domain.IdentityErrors
	require.True(t, errors.As(err, &idErrs))

	codes := make([]string, 0, len(idErrs))
	for _, e := range idErrs {
		codes = append(codes, e.Code)
	}
	assert.ElementsMatch(t, []string{CodePasswordTooShort, CodeDuplicateUserName, CodeDuplicateEmail}, codes)

	_, err = f.auth.Register(ctx, &RegisterInput{Username: "bad name!", Password: "secret1"})
	require.True(t, errors.As(err, &idErrs))
	assert.Equal(t, CodeInvalidUserName, idErrs[0].Code)
}

func TestAuthService_MeWithoutPrincipal(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Me(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestValidUserName(t *testing.T) {
	assert.True(t, validUserName("user.name+tag@example.com"))
	assert.True(t, validUserName("Customer1"))
	assert.False(t, validUserName(""))
	assert.False(t, validUserName("with space"))
	assert.False(t, validUserName("semi;colon"))
}
