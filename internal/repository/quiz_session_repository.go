package repository

import (
	"hirehub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type QuizSessionRepository struct {
	DB *gorm.DB
}

func NewQuizSessionRepository(db *gorm.DB) *QuizSessionRepository {
	return &QuizSessionRepository{DB: db}
}

func (r *QuizSessionRepository) Create(session *model.QuizSession) error {
	return r.DB.Create(session).Error
}

func (r *QuizSessionRepository) FindByID(id string) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.DB.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindActive 返回候选人在某赛道上进行中的会话
func (r *QuizSessionRepository) FindActive(candidateID string, trackID uint) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.DB.Where("candidate_id = ? AND track_id = ? AND status = ?",
		candidateID, trackID, model.SessionInProgress).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *QuizSessionRepository) ListByCandidate(candidateID string, trackID *uint) ([]model.QuizSession, error) {
	var sessions []model.QuizSession
	query := r.DB.Where("candidate_id = ?", candidateID)
	if trackID != nil {
		query = query.Where("track_id = ?", *trackID)
	}
	err := query.Order("started_at DESC").Find(&sessions).Error
	return sessions, err
}

// ListExpired 返回截止时间已过但仍在进行中的会话，供后台清扫
func (r *QuizSessionRepository) ListExpired(now time.Time, limit int) ([]model.QuizSession, error) {
	var sessions []model.QuizSession
	err := r.DB.Where("status = ? AND expires_at <= ?", model.SessionInProgress, now).
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

func (r *QuizSessionRepository) Update(session *model.QuizSession) error {
	return r.DB.Save(session).Error
}
