package repository

import (
	"hirehub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizAnswerRepository struct {
	DB *gorm.DB
}

func NewQuizAnswerRepository(db *gorm.DB) *QuizAnswerRepository {
	return &QuizAnswerRepository{DB: db}
}

func (r *QuizAnswerRepository) Create(answer *model.QuizAnswer) error {
	return r.DB.Create(answer).Error
}

func (r *QuizAnswerRepository) ListBySession(sessionID string) ([]model.QuizAnswer, error) {
	var answers []model.QuizAnswer
	err := r.DB.Where("session_id = ?", sessionID).
		Order("answered_at ASC").
		Find(&answers).Error
	return answers, err
}

// AnsweredQuestionIDs 返回会话中已作答的题目ID集合
func (r *QuizAnswerRepository) AnsweredQuestionIDs(sessionID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.QuizAnswer{}).
		Where("session_id = ?", sessionID).
		Pluck("question_id", &ids).Error
	return ids, err
}

func (r *QuizAnswerRepository) CountBySession(sessionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAnswer{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

// CountByBlock 统计会话在某个块中已作答的题目数量
func (r *QuizAnswerRepository) CountByBlock(sessionID string, blockID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAnswer{}).
		Joins("JOIN quiz_questions ON quiz_questions.id = quiz_answers.question_id").
		Where("quiz_answers.session_id = ? AND quiz_questions.block_id = ?", sessionID, blockID).
		Count(&count).Error
	return count, err
}

type BlockPerformanceRow struct {
	BlockName      string
	TotalQuestions int
	CorrectAnswers int
}

// BlockPerformance 按块聚合会话作答情况
func (r *QuizAnswerRepository) BlockPerformance(sessionID string) ([]BlockPerformanceRow, error) {
	var rows []BlockPerformanceRow
	err := r.DB.Model(&model.QuizAnswer{}).
		Select("quiz_blocks.name AS block_name, COUNT(quiz_answers.id) AS total_questions, SUM(CASE WHEN quiz_answers.is_correct THEN 1 ELSE 0 END) AS correct_answers").
		Joins("JOIN quiz_questions ON quiz_questions.id = quiz_answers.question_id").
		Joins("JOIN quiz_blocks ON quiz_blocks.id = quiz_questions.block_id").
		Where("quiz_answers.session_id = ?", sessionID).
		Group("quiz_blocks.name").
		Order("quiz_blocks.name ASC").
		Scan(&rows).Error
	return rows, err
}
