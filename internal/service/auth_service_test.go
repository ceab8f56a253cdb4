package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/edustack/school-api/internal/models"
	"github.com/edustack/school-api/pkg/config"
	appErrors "github.com/edustack/school-api/pkg/errors"
)

type mockUserRepo struct {
	users       map[string]models.User
	lastTouched string
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) TouchLastLogin(_ context.Context, id string) error {
	m.lastTouched = id
	return nil
}

func newAuthService(users *mockUserRepo) *AuthService {
	cfg := config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "school-api"}
	return NewAuthService(users, cfg, validator.New(), zap.NewNop())
}

func seedUser(t *testing.T, repo *mockUserRepo, email, password string, active bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	school := "school-1"
	user := models.User{
		ID:           "user-" + email,
		SchoolID:     &school,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test User",
		Role:         models.RoleSchoolAdmin,
		Active:       active,
	}
	if repo.users == nil {
		repo.users = make(map[string]models.User)
	}
	repo.users[user.ID] = user
	return user
}

func TestLoginIssuesValidToken(t *testing.T) {
	repo := &mockUserRepo{}
	user := seedUser(t, repo, "admin@school.test", "s3cret", true)
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "school-1", resp.User.SchoolID)
	assert.Equal(t, user.ID, repo.lastTouched)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "school-1", claims.SchoolID)
	assert.Equal(t, models.RoleSchoolAdmin, claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := &mockUserRepo{}
	user := seedUser(t, repo, "admin@school.test", "s3cret", true)
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	repo := &mockUserRepo{}
	user := seedUser(t, repo, "admin@school.test", "s3cret", false)
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
