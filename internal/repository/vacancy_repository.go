package repository

import (
	"hirehub_backend/internal/model"

	"gorm.io/gorm"
)

type VacancyRepository struct {
	DB *gorm.DB
}

func NewVacancyRepository(db *gorm.DB) *VacancyRepository {
	return &VacancyRepository{DB: db}
}

func (r *VacancyRepository) Create(vacancy *model.Vacancy) error {
	return r.DB.Create(vacancy).Error
}

func (r *VacancyRepository) FindByID(id uint) (*model.Vacancy, error) {
	var vacancy model.Vacancy
	if err := r.DB.First(&vacancy, id).Error; err != nil {
		return nil, err
	}
	return &vacancy, nil
}

// List 按可选条件过滤职位
func (r *VacancyRepository) List(status *model.VacancyStatus, trackID, hiringManagerID *uint) ([]model.Vacancy, error) {
	var vacancies []model.Vacancy
	query := r.DB.Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if trackID != nil {
		query = query.Where("track_id = ?", *trackID)
	}
	if hiringManagerID != nil {
		query = query.Where("hiring_manager_id = ?", *hiringManagerID)
	}
	err := query.Find(&vacancies).Error
	return vacancies, err
}

func (r *VacancyRepository) Update(vacancy *model.Vacancy) error {
	return r.DB.Save(vacancy).Error
}

func (r *VacancyRepository) UpdateStatus(id uint, status model.VacancyStatus) error {
	return r.DB.Model(&model.Vacancy{}).
		Where("id = ?", id).
		Update("status", status).Error
}
