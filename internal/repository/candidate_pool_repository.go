package repository

import (
	"hirehub_backend/internal/model"

	"gorm.io/gorm"
)

type CandidatePoolRepository struct {
	DB *gorm.DB
}

func NewCandidatePoolRepository(db *gorm.DB) *CandidatePoolRepository {
	return &CandidatePoolRepository{DB: db}
}

func (r *CandidatePoolRepository) Create(entry *model.CandidatePool) error {
	return r.DB.Create(entry).Error
}

func (r *CandidatePoolRepository) Find(vacancyID uint, candidateID string) (*model.CandidatePool, error) {
	var entry model.CandidatePool
	err := r.DB.Where("vacancy_id = ? AND candidate_id = ?", vacancyID, candidateID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *CandidatePoolRepository) FindByID(id uint) (*model.CandidatePool, error) {
	var entry model.CandidatePool
	err := r.DB.Preload("Candidate").Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *CandidatePoolRepository) ListByVacancy(vacancyID uint, status *model.CandidatePoolStatus) ([]model.CandidatePool, error) {
	var entries []model.CandidatePool
	query := r.DB.Preload("Candidate").Where("vacancy_id = ?", vacancyID).Order("updated_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Find(&entries).Error
	return entries, err
}

// NextUnreviewedCandidate 返回尚未进入该职位漏斗的第一位候选人
func (r *CandidatePoolRepository) NextUnreviewedCandidate(vacancyID uint) (*model.Candidate, error) {
	var candidate model.Candidate
	sub := r.DB.Model(&model.CandidatePool{}).
		Select("candidate_id").
		Where("vacancy_id = ?", vacancyID)
	err := r.DB.Where("id NOT IN (?)", sub).
		Order("created_at ASC").
		First(&candidate).Error
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidatePoolRepository) Update(entry *model.CandidatePool) error {
	return r.DB.Save(entry).Error
}

// CountByStatus 统计职位漏斗中各状态的候选人数
func (r *CandidatePoolRepository) CountByStatus(vacancyID uint) (map[model.CandidatePoolStatus]int64, error) {
	type row struct {
		Status model.CandidatePoolStatus
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&model.CandidatePool{}).
		Select("status, COUNT(id) AS count").
		Where("vacancy_id = ?", vacancyID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.CandidatePoolStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *CandidatePoolRepository) CreateFeedback(feedback *model.InterviewFeedback) error {
	return r.DB.Create(feedback).Error
}

func (r *CandidatePoolRepository) FindFeedbackByPool(poolID uint) (*model.InterviewFeedback, error) {
	var feedback model.InterviewFeedback
	err := r.DB.Where("pool_id = ?", poolID).First(&feedback).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}
