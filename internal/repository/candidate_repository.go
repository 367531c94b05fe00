package repository

import (
	"hirehub_backend/internal/model"

	"gorm.io/gorm"
)

type CandidateRepository struct {
	DB *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{DB: db}
}

func (r *CandidateRepository) Create(candidate *model.Candidate) error {
	return r.DB.Create(candidate).Error
}

func (r *CandidateRepository) FindByID(id string) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.DB.Where("id = ?", id).First(&candidate).Error
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepository) FindByTelegramID(telegramID int64) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.DB.Where("telegram_id = ?", telegramID).First(&candidate).Error
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepository) List(offset, limit int) ([]model.Candidate, int64, error) {
	var candidates []model.Candidate
	var total int64

	if err := r.DB.Model(&model.Candidate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&candidates).Error
	return candidates, total, err
}

func (r *CandidateRepository) Update(candidate *model.Candidate) error {
	return r.DB.Save(candidate).Error
}

func (r *CandidateRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Candidate{}).Error
}
