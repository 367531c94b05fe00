package service

import (
	"testing"
	"time"

	"hirehub_backend/internal/config"
	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewRecruiterRepository(db), cfg)
}

func TestRegisterHashesPassword(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	recruiter := &model.Recruiter{
		FullName: "Anna Petrova",
		Email:    "anna@hirehub.io",
		Password: "secret123",
	}
	require.NoError(t, svc.Register(recruiter))

	var saved model.Recruiter
	require.NoError(t, db.Where("email = ?", "anna@hirehub.io").First(&saved).Error)
	assert.NotEqual(t, "secret123", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("secret123")))

	// 邮箱全局唯一
	err := svc.Register(&model.Recruiter{FullName: "Clone", Email: "anna@hirehub.io", Password: "other"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginIssuesValidToken(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	recruiter := &model.Recruiter{
		FullName: "Boris Ivanov",
		Email:    "boris@hirehub.io",
		Password: "secret123",
		Role:     model.RoleAdmin,
	}
	require.NoError(t, svc.Register(recruiter))

	token, err := svc.Login("boris@hirehub.io", "secret123")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, "unit-test-secret")
	require.NoError(t, err)
	assert.Equal(t, recruiter.ID, claims.RecruiterID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "boris@hirehub.io", claims.Email)

	_, err = svc.Login("boris@hirehub.io", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	_, err = svc.Login("nobody@hirehub.io", "secret123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	recruiter := &model.Recruiter{
		FullName: "Vera Smirnova",
		Email:    "vera@hirehub.io",
		Password: "secret123",
	}
	require.NoError(t, svc.Register(recruiter))
	require.NoError(t, db.Model(&model.Recruiter{}).
		Where("email = ?", "vera@hirehub.io").
		Update("disabled", true).Error)

	_, err := svc.Login("vera@hirehub.io", "secret123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}
