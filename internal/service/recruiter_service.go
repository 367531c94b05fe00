package service

import (
	"errors"
	"fmt"
	"time"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RecruiterService 处理招聘专员账号的管理逻辑
type RecruiterService struct {
	RecruiterRepo *repository.RecruiterRepository
}

func NewRecruiterService(recruiterRepo *repository.RecruiterRepository) *RecruiterService {
	return &RecruiterService{
		RecruiterRepo: recruiterRepo,
	}
}

// GetRecruiters 获取全部招聘专员，按姓名排序
func (s *RecruiterService) GetRecruiters() ([]model.Recruiter, error) {
	return s.RecruiterRepo.List()
}

func (s *RecruiterService) GetRecruiterByID(id uint) (*model.Recruiter, error) {
	recruiter, err := s.RecruiterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRecruiterNotFound
		}
		return nil, err
	}
	return recruiter, nil
}

// UpdateRecruiter 更新招聘专员信息
func (s *RecruiterService) UpdateRecruiter(recruiter *model.Recruiter) error {
	existing, err := s.GetRecruiterByID(recruiter.ID)
	if err != nil {
		return err
	}

	existing.FullName = recruiter.FullName
	existing.Email = recruiter.Email
	existing.Role = recruiter.Role
	existing.TelegramID = recruiter.TelegramID
	existing.Disabled = recruiter.Disabled
	existing.UpdatedAt = time.Now()

	return s.RecruiterRepo.Update(existing)
}

// UpdateRecruiterWithPassword 更新招聘专员信息并修改密码
func (s *RecruiterService) UpdateRecruiterWithPassword(recruiter *model.Recruiter, newPassword string) error {
	existing, err := s.GetRecruiterByID(recruiter.ID)
	if err != nil {
		return err
	}

	existing.FullName = recruiter.FullName
	existing.Email = recruiter.Email
	existing.Role = recruiter.Role
	existing.TelegramID = recruiter.TelegramID
	existing.Disabled = recruiter.Disabled
	existing.UpdatedAt = time.Now()

	if newPassword != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		existing.Password = string(hashedPassword)
	}

	return s.RecruiterRepo.Update(existing)
}

// DisableRecruiter 禁用/启用招聘专员账号
func (s *RecruiterService) DisableRecruiter(id uint, disable bool) error {
	recruiter, err := s.GetRecruiterByID(id)
	if err != nil {
		return err
	}

	recruiter.Disabled = disable
	recruiter.UpdatedAt = time.Now()

	return s.RecruiterRepo.Update(recruiter)
}

// ResetPassword 重置密码并返回临时密码
func (s *RecruiterService) ResetPassword(id uint) (string, error) {
	recruiter, err := s.GetRecruiterByID(id)
	if err != nil {
		return "", err
	}

	tempPassword := generateTempPassword()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	recruiter.Password = string(hashedPassword)
	recruiter.UpdatedAt = time.Now()

	if err := s.RecruiterRepo.Update(recruiter); err != nil {
		return "", err
	}

	return tempPassword, nil
}

// generateTempPassword 生成临时密码
func generateTempPassword() string {
	return fmt.Sprintf("temp%d", time.Now().UnixNano()%100000000)
}
