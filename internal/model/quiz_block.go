package model

// QuizBlock 测评题目块（例如 Algorithms、Python Basics）
// swagger:model QuizBlock
type QuizBlock struct {
	BaseModel
	Name        string `gorm:"size:255;unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	Questions []QuizQuestion `gorm:"foreignKey:BlockID" json:"questions,omitempty"`
}

func (QuizBlock) TableName() string {
	return "quiz_blocks"
}
