package service

import (
	"errors"
	"time"

	"hirehub_backend/internal/config"
	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	RecruiterRepo *repository.RecruiterRepository
	Cfg           *config.Config
}

func NewAuthService(recruiterRepo *repository.RecruiterRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		RecruiterRepo: recruiterRepo,
		Cfg:           cfg,
	}
}

func (s *AuthService) Register(recruiter *model.Recruiter) error {
	_, err := s.RecruiterRepo.FindByEmail(recruiter.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(recruiter.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	recruiter.Password = string(hashedPassword)
	return s.RecruiterRepo.Create(recruiter)
}

func (s *AuthService) Login(email, password string) (string, error) {
	recruiter, err := s.RecruiterRepo.FindByEmail(email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(recruiter.Password), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	if recruiter.Disabled {
		return "", errors.New("account is disabled")
	}

	recruiter.LastLogin = time.Now()
	if err := s.RecruiterRepo.Update(recruiter); err != nil {
		return "", err
	}

	return util.GenerateJWT(recruiter, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentRecruiter(c *gin.Context) *model.Recruiter {
	claims := util.GetRecruiterFromContext(c)
	if claims == nil {
		return nil
	}

	recruiter, err := s.RecruiterRepo.FindByID(claims.RecruiterID)
	if err != nil {
		return nil
	}
	return recruiter
}
