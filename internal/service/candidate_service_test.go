package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hirehub_backend/internal/config"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCandidateService(t *testing.T, db *gorm.DB) (*CandidateService, string) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	svc := NewCandidateService(repository.NewCandidateRepository(db), NewStorageService(cfg), db)
	return svc, cfg.Storage.LocalPath
}

func TestCreateCandidateUniqueTelegramID(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newCandidateService(t, db)

	created, err := svc.CreateCandidate(CandidateCreateRequest{
		TelegramID: 42,
		Username:   "ivan_dev",
		Surname:    "Иванов",
		Name:       "Иван",
		City:       "Москва",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = svc.CreateCandidate(CandidateCreateRequest{
		TelegramID: 42,
		Surname:    "Петров",
		Name:       "Пётр",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	found, err := svc.GetCandidateByTelegramID(42)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetCandidateByTelegramID(999)
	assert.ErrorIs(t, err, util.ErrCandidateNotFound)
}

func TestUpdateCandidateKeepsEmptyFields(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newCandidateService(t, db)

	created, err := svc.CreateCandidate(CandidateCreateRequest{
		TelegramID: 43,
		Surname:    "Иванов",
		Name:       "Иван",
		Phone:      "+79001112233",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateCandidate(created.ID, CandidateUpdateRequest{
		City:      "Санкт-Петербург",
		TechStack: "Go, PostgreSQL",
	})
	require.NoError(t, err)
	assert.Equal(t, "Санкт-Петербург", updated.City)
	assert.Equal(t, "Go, PostgreSQL", updated.TechStack)
	// 未传的字段保持原值
	assert.Equal(t, "Иванов", updated.Surname)
	assert.Equal(t, "+79001112233", updated.Phone)

	_, err = svc.UpdateCandidate("missing-id", CandidateUpdateRequest{City: "X"})
	assert.ErrorIs(t, err, util.ErrCandidateNotFound)
}

func TestListCandidatesPagination(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newCandidateService(t, db)

	for i := int64(1); i <= 3; i++ {
		_, err := svc.CreateCandidate(CandidateCreateRequest{
			TelegramID: 100 + i,
			Surname:    "Фамилия",
			Name:       "Имя",
		})
		require.NoError(t, err)
	}

	page, total, err := svc.ListCandidates(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	page, total, err = svc.ListCandidates(2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)

	// 非法分页参数回退到默认值
	page, _, err = svc.ListCandidates(0, -5)
	require.NoError(t, err)
	assert.Len(t, page, 3)
}

func TestAttachResumeStoresFile(t *testing.T) {
	db := openTestDB(t)
	svc, uploadDir := newCandidateService(t, db)

	created, err := svc.CreateCandidate(CandidateCreateRequest{
		TelegramID: 44,
		Surname:    "Иванов",
		Name:       "Иван",
	})
	require.NoError(t, err)

	content := "%PDF-1.4 fake resume"
	updated, err := svc.AttachResume(context.Background(), created.ID, "My Resume.pdf", strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/resumes/"+created.ID+".pdf", updated.ResumeLink)

	data, err := os.ReadFile(filepath.Join(uploadDir, "resumes", created.ID+".pdf"))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	_, err = svc.AttachResume(context.Background(), created.ID, "virus.exe", strings.NewReader("MZ"), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported resume format")

	_, err = svc.AttachResume(context.Background(), "missing-id", "cv.pdf", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, util.ErrCandidateNotFound)
}

func TestDeleteCandidate(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newCandidateService(t, db)

	created, err := svc.CreateCandidate(CandidateCreateRequest{
		TelegramID: 45,
		Surname:    "Иванов",
		Name:       "Иван",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCandidate(created.ID))
	_, err = svc.GetCandidate(created.ID)
	assert.ErrorIs(t, err, util.ErrCandidateNotFound)

	assert.ErrorIs(t, svc.DeleteCandidate(created.ID), util.ErrCandidateNotFound)
}
