package model

import "time"

type QuizSessionStatus string

const (
	SessionInProgress QuizSessionStatus = "in_progress"
	SessionCompleted  QuizSessionStatus = "completed"
)

// QuizSession 候选人一次测评会话
// swagger:model QuizSession
type QuizSession struct {
	UUIDBase
	CandidateID    string            `gorm:"index;type:varchar(36);not null" json:"candidateId"`
	TrackID        uint              `gorm:"index;type:bigint unsigned;not null" json:"trackId"`
	Status         QuizSessionStatus `gorm:"index;size:20;default:'in_progress'" json:"status"`
	StartedAt      time.Time         `json:"startedAt"`
	ExpiresAt      time.Time         `json:"expiresAt"`
	EndedAt        *time.Time        `json:"endedAt,omitempty"`
	TotalQuestions int               `gorm:"default:0" json:"totalQuestions"`
	CorrectAnswers int               `gorm:"default:0" json:"correctAnswers"`
	WrongAnswers   int               `gorm:"default:0" json:"wrongAnswers"`
	Score          *float64          `gorm:"type:decimal(5,2)" json:"score"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}
