package service

import (
	"context"
	"errors"
	"io"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"gorm.io/gorm"
)

// CandidateService 候选人档案管理，数据来自 Telegram 机器人和简历解析器
type CandidateService struct {
	CandidateRepo *repository.CandidateRepository
	Storage       *StorageService
	DB            *gorm.DB
}

func NewCandidateService(candidateRepo *repository.CandidateRepository, storage *StorageService, db *gorm.DB) *CandidateService {
	return &CandidateService{
		CandidateRepo: candidateRepo,
		Storage:       storage,
		DB:            db,
	}
}

type CandidateCreateRequest struct {
	TelegramID      int64  `json:"telegramId" binding:"required"`
	Username        string `json:"username"`
	Surname         string `json:"surname" binding:"required,max=255"`
	Name            string `json:"name" binding:"required,max=255"`
	Phone           string `json:"phone" binding:"omitempty,max=20"`
	Email           string `json:"email" binding:"omitempty,max=255"`
	ResumeLink      string `json:"resumeLink"`
	Priority1       string `json:"priority1"`
	Priority2       string `json:"priority2"`
	Course          string `json:"course"`
	University      string `json:"university"`
	Specialty       string `json:"specialty"`
	EmploymentHours string `json:"employmentHours"`
	City            string `json:"city"`
	Source          string `json:"source"`
	BirthYear       string `json:"birthYear"`
	Citizenship     string `json:"citizenship"`
	TechStack       string `json:"techStack"`
}

// CandidateUpdateRequest 不允许修改 telegramId，空字段保持原值
type CandidateUpdateRequest struct {
	Username        string `json:"username"`
	Surname         string `json:"surname"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	ResumeLink      string `json:"resumeLink"`
	Priority1       string `json:"priority1"`
	Priority2       string `json:"priority2"`
	Course          string `json:"course"`
	University      string `json:"university"`
	Specialty       string `json:"specialty"`
	EmploymentHours string `json:"employmentHours"`
	City            string `json:"city"`
	Source          string `json:"source"`
	BirthYear       string `json:"birthYear"`
	Citizenship     string `json:"citizenship"`
	TechStack       string `json:"techStack"`
}

func (s *CandidateService) CreateCandidate(req CandidateCreateRequest) (*model.Candidate, error) {
	candidate := &model.Candidate{
		TelegramID:      req.TelegramID,
		Username:        req.Username,
		Surname:         req.Surname,
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		ResumeLink:      req.ResumeLink,
		Priority1:       req.Priority1,
		Priority2:       req.Priority2,
		Course:          req.Course,
		University:      req.University,
		Specialty:       req.Specialty,
		EmploymentHours: req.EmploymentHours,
		City:            req.City,
		Source:          req.Source,
		BirthYear:       req.BirthYear,
		Citizenship:     req.Citizenship,
		TechStack:       req.TechStack,
	}
	if err := s.CandidateRepo.Create(candidate); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("candidate with this telegram id already exists")
		}
		return nil, err
	}
	return candidate, nil
}

func (s *CandidateService) GetCandidate(id string) (*model.Candidate, error) {
	candidate, err := s.CandidateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCandidateNotFound
		}
		return nil, err
	}
	return candidate, nil
}

// GetCandidateByTelegramID 机器人侧用 Telegram ID 定位候选人
func (s *CandidateService) GetCandidateByTelegramID(telegramID int64) (*model.Candidate, error) {
	candidate, err := s.CandidateRepo.FindByTelegramID(telegramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCandidateNotFound
		}
		return nil, err
	}
	return candidate, nil
}

func (s *CandidateService) ListCandidates(page, limit int) ([]model.Candidate, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit
	return s.CandidateRepo.List(offset, limit)
}

func (s *CandidateService) UpdateCandidate(id string, req CandidateUpdateRequest) (*model.Candidate, error) {
	candidate, err := s.GetCandidate(id)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		candidate.Username = req.Username
	}
	if req.Surname != "" {
		candidate.Surname = req.Surname
	}
	if req.Name != "" {
		candidate.Name = req.Name
	}
	if req.Phone != "" {
		candidate.Phone = req.Phone
	}
	if req.Email != "" {
		candidate.Email = req.Email
	}
	if req.ResumeLink != "" {
		candidate.ResumeLink = req.ResumeLink
	}
	if req.Priority1 != "" {
		candidate.Priority1 = req.Priority1
	}
	if req.Priority2 != "" {
		candidate.Priority2 = req.Priority2
	}
	if req.Course != "" {
		candidate.Course = req.Course
	}
	if req.University != "" {
		candidate.University = req.University
	}
	if req.Specialty != "" {
		candidate.Specialty = req.Specialty
	}
	if req.EmploymentHours != "" {
		candidate.EmploymentHours = req.EmploymentHours
	}
	if req.City != "" {
		candidate.City = req.City
	}
	if req.Source != "" {
		candidate.Source = req.Source
	}
	if req.BirthYear != "" {
		candidate.BirthYear = req.BirthYear
	}
	if req.Citizenship != "" {
		candidate.Citizenship = req.Citizenship
	}
	if req.TechStack != "" {
		candidate.TechStack = req.TechStack
	}

	if err := s.CandidateRepo.Update(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (s *CandidateService) DeleteCandidate(id string) error {
	if _, err := s.GetCandidate(id); err != nil {
		return err
	}
	return s.CandidateRepo.Delete(id)
}

// AttachResume 上传简历文件并将链接写回候选人档案
func (s *CandidateService) AttachResume(ctx context.Context, id, originalName string, reader io.Reader, size int64) (*model.Candidate, error) {
	candidate, err := s.GetCandidate(id)
	if err != nil {
		return nil, err
	}

	link, err := s.Storage.UploadResume(ctx, candidate.ID, originalName, reader, size)
	if err != nil {
		return nil, err
	}

	candidate.ResumeLink = link
	if err := s.CandidateRepo.Update(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}
