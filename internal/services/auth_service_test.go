package services

import (
	"context"
	"testing"

	"github.com/diagnoai/diagno-backend/internal/dto"
	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignupCreatesPrimary(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	age := 34

	user, err := env.auth.Signup(context.Background(), &dto.SignupRequest{
		Username:    "alice",
		FullName:    "Alice A",
		Email:       "alice@x.com",
		Password:    "secret1",
		PhoneNumber: " 555-0100 ",
		Age:         &age,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RolePrimary, user.Role)
	assert.True(t, user.IsActive)
	assert.Equal(t, "555-0100", user.PhoneNumber)
	assert.Equal(t, 34, *user.Age)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
}

func TestSignupRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	env.signup(t, "alice")

	_, err := env.auth.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice", FullName: "Other", Email: "other@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = env.auth.Signup(context.Background(), &dto.SignupRequest{
		Username: "other", FullName: "Other", Email: "alice@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSigninPrimary(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	alice := env.signup(t, "alice")

	resp, err := env.auth.Signin(context.Background(), &dto.SigninRequest{
		Username: "alice", Password: "secret1", Role: "PRIMARY",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.Type)
	assert.Equal(t, alice.ID, resp.ID)
	assert.Equal(t, "PRIMARY", resp.Role)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (any, error) {
		return []byte(env.cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, alice.ID.String(), claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "PRIMARY", claims["role"])
}

func TestSigninAcceptsLegacyUserRole(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	env.signup(t, "alice")

	_, err := env.auth.Signin(context.Background(), &dto.SigninRequest{
		Username: "alice", Password: "secret1", Role: "USER",
	})
	assert.NoError(t, err)
}

func TestSigninFailures(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	env.signup(t, "alice")

	cases := []struct {
		name string
		req  dto.SigninRequest
		want error
	}{
		{"invalid role", dto.SigninRequest{Username: "alice", Password: "secret1", Role: "ADMIN"}, ErrInvalidRole},
		{"unknown user", dto.SigninRequest{Username: "bob", Password: "secret1", Role: "PRIMARY"}, ErrInvalidCredentials},
		{"wrong password", dto.SigninRequest{Username: "alice", Password: "nope", Role: "PRIMARY"}, ErrInvalidCredentials},
		{"role mismatch", dto.SigninRequest{Username: "alice", Password: "secret1", Role: "RELATIVE"}, ErrRoleMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.auth.Signin(context.Background(), &tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSigninInactiveAccount(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.store.Users.Create(context.Background(), &models.User{
		ID: uuid.New(), Username: "carol", Email: "carol@x.com", FullName: "Carol",
		Password: string(hash), Role: models.RolePrimary, IsActive: false,
	}))

	_, err = env.auth.Signin(context.Background(), &dto.SigninRequest{
		Username: "carol", Password: "secret1", Role: "PRIMARY",
	})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRelativeSigninRequiresOwner(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	alice := env.signup(t, "alice")
	rita := env.addRelative(t, alice, "rita")

	resp, err := env.auth.Signin(context.Background(), &dto.SigninRequest{
		Username: "rita", Password: "secret1", Role: "RELATIVE",
	})
	require.NoError(t, err)
	assert.Equal(t, "RELATIVE", resp.Role)

	require.NoError(t, env.relatives.RemoveEdge(context.Background(), alice.ID, rita.ID))

	_, err = env.auth.Signin(context.Background(), &dto.SigninRequest{
		Username: "rita", Password: "secret1", Role: "RELATIVE",
	})
	assert.ErrorIs(t, err, ErrNoLinkedOwners)
}

func TestAddRelative(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	alice := env.signup(t, "alice")

	rita := env.addRelative(t, alice, "rita")
	assert.Equal(t, models.RoleRelative, rita.Role)

	relatives, err := env.relatives.Relatives(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, relatives, 1)
	assert.Equal(t, rita.ID, relatives[0].ID)
}

func TestAddRelativeRequiresPrimary(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	alice := env.signup(t, "alice")
	rita := env.addRelative(t, alice, "rita")

	_, err := env.auth.AddRelative(context.Background(), identityOf(rita), &dto.AddRelativeRequest{
		Username: "ron", FullName: "Ron", Email: "ron@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrPrimaryRequired)
}

func TestAddRelativeRejectsDuplicatesWithoutSideEffects(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	alice := env.signup(t, "alice")
	env.signup(t, "bob")

	_, err := env.auth.AddRelative(context.Background(), identityOf(alice), &dto.AddRelativeRequest{
		Username: "rita", FullName: "Rita", Email: "bob@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	relatives, err := env.relatives.Relatives(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, relatives)
}

func TestAddRelativeUnknownOwnerCreatesNothing(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	ghost := &models.User{ID: uuid.New(), Role: models.RolePrimary}

	_, err := env.auth.AddRelative(context.Background(), identityOf(ghost), &dto.AddRelativeRequest{
		Username: "rita", FullName: "Rita", Email: "rita@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)

	exists, err := env.store.Users.ExistsByUsername(context.Background(), "rita")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestConcurrentDuplicateReportsTheTakenField(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	alice := env.signup(t, "alice")
	auth := NewAuthService(&lateUsers{UserStore: env.store.Users, emailChecks: 1}, env.access, env.cfg)

	_, err := auth.Signup(context.Background(), &dto.SignupRequest{
		Username: "alicia", FullName: "Alicia", Email: "alice@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	auth = NewAuthService(&lateUsers{UserStore: env.store.Users, emailChecks: 1}, env.access, env.cfg)
	_, err = auth.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice", FullName: "Other", Email: "other@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	auth = NewAuthService(&lateUsers{UserStore: env.store.Users, emailChecks: 1}, env.access, env.cfg)
	_, err = auth.AddRelative(context.Background(), identityOf(alice), &dto.AddRelativeRequest{
		Username: "rita", FullName: "Rita", Email: "alice@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
