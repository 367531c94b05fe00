package model

import "time"

// QuizAnswer 候选人对单个题目的作答，(session_id, question_id) 唯一
// swagger:model QuizAnswer
type QuizAnswer struct {
	UUIDBase
	SessionID        string    `gorm:"uniqueIndex:uq_session_question;type:varchar(36);not null" json:"sessionId"`
	QuestionID       string    `gorm:"uniqueIndex:uq_session_question;index;type:varchar(36);not null" json:"questionId"`
	CandidateAnswer  string    `gorm:"size:1;not null" json:"candidateAnswer"` // A, B, C 或 D
	IsCorrect        bool      `gorm:"not null" json:"isCorrect"`
	AnsweredAt       time.Time `json:"answeredAt"`
	TimeTakenSeconds *int      `json:"timeTakenSeconds,omitempty"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
