package model

import (
	"time"
)

type RecruiterRole string

const (
	RoleRecruiter RecruiterRole = "recruiter"
	RoleAdmin     RecruiterRole = "admin"
)

// swagger:model Recruiter
type Recruiter struct {
	BaseModel
	FullName   string        `gorm:"size:200;not null" json:"fullName"`
	Email      string        `gorm:"size:100;unique;not null" json:"email"`
	Password   string        `gorm:"size:100;not null" json:"-"`
	Role       RecruiterRole `gorm:"size:20;default:'recruiter'" json:"role"`
	TelegramID int64         `gorm:"index" json:"telegramId"`
	Disabled   bool          `gorm:"default:false" json:"disabled"`
	LastLogin  time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"lastLogin"`
}

func (Recruiter) TableName() string {
	return "recruiters"
}
