package model

import "time"

// TrackQuizBlock 赛道与题目块的关联，规定该块在测评中的题目数量
// swagger:model TrackQuizBlock
type TrackQuizBlock struct {
	TrackID        uint      `gorm:"primaryKey;autoIncrement:false;type:bigint unsigned" json:"trackId"`
	BlockID        uint      `gorm:"primaryKey;autoIncrement:false;type:bigint unsigned" json:"blockId"`
	QuestionsCount int       `gorm:"not null;default:5" json:"questionsCount"`
	CreatedAt      time.Time `json:"createdAt"`

	Block QuizBlock `gorm:"foreignKey:BlockID" json:"block,omitempty"`
}

func (TrackQuizBlock) TableName() string {
	return "track_quiz_blocks"
}
