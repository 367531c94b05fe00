package service

import (
	"testing"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDisableRecruiter(t *testing.T) {
	db := openTestDB(t)
	svc := NewRecruiterService(repository.NewRecruiterRepository(db))
	recruiter := createRecruiter(t, db, "disable-me@hirehub.io")

	require.NoError(t, svc.DisableRecruiter(recruiter.ID, true))
	reloaded, err := svc.GetRecruiterByID(recruiter.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Disabled)

	require.NoError(t, svc.DisableRecruiter(recruiter.ID, false))
	reloaded, err = svc.GetRecruiterByID(recruiter.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Disabled)

	assert.ErrorIs(t, svc.DisableRecruiter(999, true), util.ErrRecruiterNotFound)
}

func TestResetPasswordReturnsWorkingTempPassword(t *testing.T) {
	db := openTestDB(t)
	svc := NewRecruiterService(repository.NewRecruiterRepository(db))
	recruiter := createRecruiter(t, db, "reset-me@hirehub.io")

	tempPassword, err := svc.ResetPassword(recruiter.ID)
	require.NoError(t, err)
	require.NotEmpty(t, tempPassword)

	reloaded, err := svc.GetRecruiterByID(recruiter.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte(tempPassword)))

	_, err = svc.ResetPassword(999)
	assert.ErrorIs(t, err, util.ErrRecruiterNotFound)
}

func TestUpdateRecruiterRoleAndTelegram(t *testing.T) {
	db := openTestDB(t)
	svc := NewRecruiterService(repository.NewRecruiterRepository(db))
	recruiter := createRecruiter(t, db, "promote-me@hirehub.io")

	require.NoError(t, svc.UpdateRecruiter(&model.Recruiter{
		BaseModel:  model.BaseModel{ID: recruiter.ID},
		FullName:   "Promoted Admin",
		Email:      "promote-me@hirehub.io",
		Role:       model.RoleAdmin,
		TelegramID: 555123,
	}))

	reloaded, err := svc.GetRecruiterByID(recruiter.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, reloaded.Role)
	assert.Equal(t, "Promoted Admin", reloaded.FullName)
	assert.Equal(t, int64(555123), reloaded.TelegramID)
}
