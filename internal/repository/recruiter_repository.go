package repository

import (
	"hirehub_backend/internal/model"

	"gorm.io/gorm"
)

type RecruiterRepository struct {
	DB *gorm.DB
}

func NewRecruiterRepository(db *gorm.DB) *RecruiterRepository {
	return &RecruiterRepository{DB: db}
}

func (r *RecruiterRepository) Create(recruiter *model.Recruiter) error {
	return r.DB.Create(recruiter).Error
}

func (r *RecruiterRepository) FindByID(id uint) (*model.Recruiter, error) {
	var recruiter model.Recruiter
	err := r.DB.First(&recruiter, id).Error
	return &recruiter, err
}

func (r *RecruiterRepository) FindByEmail(email string) (*model.Recruiter, error) {
	var recruiter model.Recruiter
	err := r.DB.Where("email = ?", email).First(&recruiter).Error
	return &recruiter, err
}

func (r *RecruiterRepository) List() ([]model.Recruiter, error) {
	var recruiters []model.Recruiter
	err := r.DB.Order("full_name ASC").Find(&recruiters).Error
	return recruiters, err
}

func (r *RecruiterRepository) Update(recruiter *model.Recruiter) error {
	return r.DB.Save(recruiter).Error
}
