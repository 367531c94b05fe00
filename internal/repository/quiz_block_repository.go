package repository

import (
	"hirehub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizBlockRepository struct {
	DB *gorm.DB
}

func NewQuizBlockRepository(db *gorm.DB) *QuizBlockRepository {
	return &QuizBlockRepository{DB: db}
}

func (r *QuizBlockRepository) Create(block *model.QuizBlock) error {
	return r.DB.Create(block).Error
}

func (r *QuizBlockRepository) FindByID(id uint) (*model.QuizBlock, error) {
	var block model.QuizBlock
	if err := r.DB.First(&block, id).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *QuizBlockRepository) FindByName(name string) (*model.QuizBlock, error) {
	var block model.QuizBlock
	err := r.DB.Where("name = ?", name).First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *QuizBlockRepository) List(isActive *bool) ([]model.QuizBlock, error) {
	var blocks []model.QuizBlock
	query := r.DB.Order("name ASC")
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	err := query.Find(&blocks).Error
	return blocks, err
}

func (r *QuizBlockRepository) Update(block *model.QuizBlock) error {
	return r.DB.Save(block).Error
}
