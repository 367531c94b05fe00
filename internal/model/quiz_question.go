package model

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

// QuizQuestion 单选测评题，四个固定选项 A-D
// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	BlockID       uint               `gorm:"index:idx_block_active;type:bigint unsigned;not null" json:"blockId"`
	QuestionText  string             `gorm:"type:text;not null" json:"questionText"`
	OptionA       string             `gorm:"type:text;not null" json:"optionA"`
	OptionB       string             `gorm:"type:text;not null" json:"optionB"`
	OptionC       string             `gorm:"type:text;not null" json:"optionC"`
	OptionD       string             `gorm:"type:text;not null" json:"optionD"`
	CorrectAnswer string             `gorm:"size:1;not null" json:"correctAnswer"` // A, B, C 或 D
	Difficulty    QuestionDifficulty `gorm:"size:20;default:'medium'" json:"difficulty"`
	IsActive      bool               `gorm:"index:idx_block_active;default:true" json:"isActive"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
