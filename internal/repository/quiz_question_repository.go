package repository

import (
	"hirehub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizQuestionRepository struct {
	DB *gorm.DB
}

func NewQuizQuestionRepository(db *gorm.DB) *QuizQuestionRepository {
	return &QuizQuestionRepository{DB: db}
}

func (r *QuizQuestionRepository) Create(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}

func (r *QuizQuestionRepository) FindByID(id string) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	err := r.DB.Where("id = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ListEligible 返回某块下激活且未被排除的题目
func (r *QuizQuestionRepository) ListEligible(blockID uint, excludeIDs []string) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	query := r.DB.Where("block_id = ? AND is_active = ?", blockID, true)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuizQuestionRepository) ListByBlock(blockID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("block_id = ?", blockID).Order("created_at ASC").Find(&questions).Error
	return questions, err
}

func (r *QuizQuestionRepository) CountActiveByBlock(blockID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizQuestion{}).
		Where("block_id = ? AND is_active = ?", blockID, true).
		Count(&count).Error
	return count, err
}

func (r *QuizQuestionRepository) Update(question *model.QuizQuestion) error {
	return r.DB.Save(question).Error
}
