package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// VacancyService 职位与候选人漏斗服务
// 职位创建后处于 DRAFT 状态，由审批任务流转为 ACTIVE 或 ABORTED
type VacancyService struct {
	VacancyRepo   *repository.VacancyRepository
	TrackRepo     *repository.TrackRepository
	PoolRepo      *repository.CandidatePoolRepository
	CandidateRepo *repository.CandidateRepository
	RecruiterRepo *repository.RecruiterRepository
	TaskService   *TaskService
	Redis         *redis.Client
	DB            *gorm.DB
}

func NewVacancyService(
	vacancyRepo *repository.VacancyRepository,
	trackRepo *repository.TrackRepository,
	poolRepo *repository.CandidatePoolRepository,
	candidateRepo *repository.CandidateRepository,
	recruiterRepo *repository.RecruiterRepository,
	taskService *TaskService,
	rdb *redis.Client,
	db *gorm.DB,
) *VacancyService {
	return &VacancyService{
		VacancyRepo:   vacancyRepo,
		TrackRepo:     trackRepo,
		PoolRepo:      poolRepo,
		CandidateRepo: candidateRepo,
		RecruiterRepo: recruiterRepo,
		TaskService:   taskService,
		Redis:         rdb,
		DB:            db,
	}
}

const (
	activeTracksCacheKey = "tracks:active"
	activeTracksCacheTTL = 5 * time.Minute
)

type TrackCreateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// TrackUpdateRequest 空字段保持原值
type TrackUpdateRequest struct {
	Name        string `json:"name" binding:"omitempty,max=100"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

type VacancyCreateRequest struct {
	Title           string `json:"title" binding:"required,max=255"`
	Description     string `json:"description"`
	TrackID         uint   `json:"trackId" binding:"required"`
	HiringManagerID uint   `json:"hiringManagerId" binding:"required"`
}

type PoolStatusUpdateRequest struct {
	Status  string `json:"status" binding:"required,oneof=VIEWED SELECTED INTERVIEW_SCHEDULED INTERVIEWED FINALIST OFFER_SENT REJECTED"`
	Comment string `json:"comment"`
}

type InterviewFeedbackRequest struct {
	Decision string `json:"decision" binding:"required,oneof=reject_globally reject_team freeze to_finalist"`
	Feedback string `json:"feedback"`
}

// VacancyStatsResponse 漏斗统计，所有状态都返回，未出现的计为 0
type VacancyStatsResponse struct {
	VacancyID uint             `json:"vacancyId"`
	Total     int64            `json:"total"`
	ByStatus  map[string]int64 `json:"byStatus"`
}

// CreateTrack 创建招聘赛道，名称全局唯一
func (s *VacancyService) CreateTrack(req TrackCreateRequest) (*model.Track, error) {
	if _, err := s.TrackRepo.FindByName(req.Name); err == nil {
		return nil, errors.New("track name already exists")
	}

	track := &model.Track{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		track.IsActive = *req.IsActive
	}

	if err := s.TrackRepo.Create(track); err != nil {
		return nil, err
	}
	s.invalidateTrackCache()
	return track, nil
}

func (s *VacancyService) GetTrack(id uint) (*model.Track, error) {
	track, err := s.TrackRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrackNotFound
		}
		return nil, err
	}
	return track, nil
}

// ListTracks 候选人入口高频调用激活列表，走 Redis 缓存
func (s *VacancyService) ListTracks(activeOnly bool) ([]model.Track, error) {
	if !activeOnly {
		return s.TrackRepo.List(false)
	}

	ctx := context.Background()
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, activeTracksCacheKey).Result(); err == nil {
			var cached []model.Track
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				return cached, nil
			}
		}
	}

	tracks, err := s.TrackRepo.List(true)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(tracks); err == nil {
			s.Redis.Set(ctx, activeTracksCacheKey, data, activeTracksCacheTTL)
		}
	}
	return tracks, nil
}

func (s *VacancyService) UpdateTrack(id uint, req TrackUpdateRequest) (*model.Track, error) {
	track, err := s.GetTrack(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" && req.Name != track.Name {
		if _, err := s.TrackRepo.FindByName(req.Name); err == nil {
			return nil, errors.New("track name already exists")
		}
		track.Name = req.Name
	}
	if req.Description != "" {
		track.Description = req.Description
	}
	if req.IsActive != nil {
		track.IsActive = *req.IsActive
	}

	if err := s.TrackRepo.Update(track); err != nil {
		return nil, err
	}
	s.invalidateTrackCache()
	return track, nil
}

func (s *VacancyService) invalidateTrackCache() {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), activeTracksCacheKey)
}

// CreateVacancy 创建职位草稿，并为招聘专员生成审批任务
func (s *VacancyService) CreateVacancy(req VacancyCreateRequest) (*model.Vacancy, error) {
	track, err := s.TrackRepo.FindByID(req.TrackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrackNotFound
		}
		return nil, err
	}

	vacancy := &model.Vacancy{
		Title:           req.Title,
		Description:     req.Description,
		TrackID:         req.TrackID,
		HiringManagerID: req.HiringManagerID,
		Status:          model.VacancyDraft,
	}
	if err := s.VacancyRepo.Create(vacancy); err != nil {
		return nil, err
	}

	hiringManagerName := "Unknown"
	if hm, err := s.RecruiterRepo.FindByID(req.HiringManagerID); err == nil {
		hiringManagerName = hm.FullName
	}

	if _, err := s.TaskService.CreateVacancyApprovalTask(vacancy.ID, vacancy.Description, track.Name, hiringManagerName); err != nil {
		return nil, err
	}
	return vacancy, nil
}

func (s *VacancyService) ListVacancies(status *model.VacancyStatus, trackID, hiringManagerID *uint) ([]model.Vacancy, error) {
	return s.VacancyRepo.List(status, trackID, hiringManagerID)
}

func (s *VacancyService) GetVacancy(id uint) (*model.Vacancy, error) {
	vacancy, err := s.VacancyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrVacancyNotFound
		}
		return nil, err
	}
	return vacancy, nil
}

func (s *VacancyService) ActivateVacancy(id uint) (*model.Vacancy, error) {
	return s.setVacancyStatus(id, model.VacancyActive)
}

func (s *VacancyService) AbortVacancy(id uint) (*model.Vacancy, error) {
	return s.setVacancyStatus(id, model.VacancyAborted)
}

func (s *VacancyService) setVacancyStatus(id uint, status model.VacancyStatus) (*model.Vacancy, error) {
	vacancy, err := s.GetVacancy(id)
	if err != nil {
		return nil, err
	}
	if err := s.VacancyRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	vacancy.Status = status
	return vacancy, nil
}

// GetVacancyStats 按漏斗状态统计候选人数量
func (s *VacancyService) GetVacancyStats(id uint) (*VacancyStatsResponse, error) {
	if _, err := s.GetVacancy(id); err != nil {
		return nil, err
	}

	counts, err := s.PoolRepo.CountByStatus(id)
	if err != nil {
		return nil, err
	}

	statuses := []model.CandidatePoolStatus{
		model.PoolViewed,
		model.PoolSelected,
		model.PoolInterviewScheduled,
		model.PoolInterviewed,
		model.PoolFinalist,
		model.PoolOfferSent,
		model.PoolRejected,
	}
	stats := &VacancyStatsResponse{
		VacancyID: id,
		ByStatus:  make(map[string]int64, len(statuses)),
	}
	for _, st := range statuses {
		stats.ByStatus[string(st)] = counts[st]
		stats.Total += counts[st]
	}
	return stats, nil
}

func (s *VacancyService) GetVacancyCandidates(vacancyID uint, status *model.CandidatePoolStatus) ([]model.CandidatePool, error) {
	if _, err := s.GetVacancy(vacancyID); err != nil {
		return nil, err
	}
	return s.PoolRepo.ListByVacancy(vacancyID, status)
}

// NextCandidate 返回该职位下一位未筛选的候选人，按注册时间先后
func (s *VacancyService) NextCandidate(vacancyID uint) (*model.Candidate, error) {
	if _, err := s.GetVacancy(vacancyID); err != nil {
		return nil, err
	}

	candidate, err := s.PoolRepo.NextUnreviewedCandidate(vacancyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNoMoreCandidates
		}
		return nil, err
	}
	return candidate, nil
}

func (s *VacancyService) SelectCandidate(vacancyID uint, candidateID string) (*model.CandidatePool, error) {
	return s.reviewCandidate(vacancyID, candidateID, model.PoolSelected, "")
}

func (s *VacancyService) SkipCandidate(vacancyID uint, candidateID string) (*model.CandidatePool, error) {
	return s.reviewCandidate(vacancyID, candidateID, model.PoolViewed, "")
}

func (s *VacancyService) RejectCandidate(vacancyID uint, candidateID, comment string) (*model.CandidatePool, error) {
	return s.reviewCandidate(vacancyID, candidateID, model.PoolRejected, comment)
}

// reviewCandidate 记录一次筛选决定，同一候选人在同一职位下只能有一条漏斗记录
func (s *VacancyService) reviewCandidate(vacancyID uint, candidateID string, status model.CandidatePoolStatus, comment string) (*model.CandidatePool, error) {
	if _, err := s.GetVacancy(vacancyID); err != nil {
		return nil, err
	}
	if _, err := s.CandidateRepo.FindByID(candidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCandidateNotFound
		}
		return nil, err
	}

	if _, err := s.PoolRepo.Find(vacancyID, candidateID); err == nil {
		return nil, errors.New("candidate is already in the pool for this vacancy")
	}

	entry := &model.CandidatePool{
		VacancyID:   vacancyID,
		CandidateID: candidateID,
		Status:      status,
		Comment:     comment,
	}
	if err := s.PoolRepo.Create(entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("candidate is already in the pool for this vacancy")
		}
		return nil, err
	}
	return entry, nil
}

func (s *VacancyService) UpdatePoolStatus(poolID uint, req PoolStatusUpdateRequest) (*model.CandidatePool, error) {
	entry, err := s.PoolRepo.FindByID(poolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPoolEntryNotFound
		}
		return nil, err
	}

	entry.Status = model.CandidatePoolStatus(req.Status)
	if req.Comment != "" {
		entry.Comment = req.Comment
	}
	if err := s.PoolRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// SubmitInterviewFeedback 登记面试反馈并根据决定流转漏斗状态
// 每条漏斗记录只接受一次反馈
func (s *VacancyService) SubmitInterviewFeedback(vacancyID, poolID uint, req InterviewFeedbackRequest) (*model.InterviewFeedback, error) {
	entry, err := s.PoolRepo.FindByID(poolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPoolEntryNotFound
		}
		return nil, err
	}
	if entry.VacancyID != vacancyID {
		return nil, errors.New("pool entry does not belong to this vacancy")
	}
	if _, err := s.PoolRepo.FindFeedbackByPool(poolID); err == nil {
		return nil, errors.New("feedback already submitted for this candidate")
	}

	statusByDecision := map[string]model.CandidatePoolStatus{
		model.FeedbackRejectGlobally: model.PoolRejected,
		model.FeedbackRejectTeam:     model.PoolRejected,
		model.FeedbackFreeze:         model.PoolInterviewed,
		model.FeedbackToFinalist:     model.PoolFinalist,
	}
	newStatus, ok := statusByDecision[req.Decision]
	if !ok {
		return nil, errors.New("unknown feedback decision")
	}

	feedback := &model.InterviewFeedback{
		PoolID:   poolID,
		Decision: req.Decision,
		Feedback: req.Feedback,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(feedback).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New("feedback already submitted for this candidate")
			}
			return err
		}
		return tx.Model(&model.CandidatePool{}).
			Where("id = ?", poolID).
			Update("status", newStatus).Error
	})
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *VacancyService) GetInterviewFeedback(poolID uint) (*model.InterviewFeedback, error) {
	return s.PoolRepo.FindFeedbackByPool(poolID)
}
