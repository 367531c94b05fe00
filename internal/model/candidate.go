package model

// Candidate 候选人档案，由 Telegram 机器人和简历解析器填充
// swagger:model Candidate
type Candidate struct {
	UUIDBase
	TelegramID      int64  `gorm:"uniqueIndex;not null" json:"telegramId"`
	Username        string `gorm:"size:255" json:"username"`
	Surname         string `gorm:"size:255;not null" json:"surname"`
	Name            string `gorm:"size:255;not null" json:"name"`
	Phone           string `gorm:"size:20" json:"phone"`
	Email           string `gorm:"size:255" json:"email"`
	ResumeLink      string `gorm:"size:500" json:"resumeLink"`
	Priority1       string `gorm:"size:100" json:"priority1"` // 首选赛道名称
	Priority2       string `gorm:"size:100" json:"priority2"` // 次选赛道名称
	Course          string `gorm:"size:50" json:"course"`
	University      string `gorm:"size:255" json:"university"`
	Specialty       string `gorm:"size:255" json:"specialty"`
	EmploymentHours string `gorm:"size:50" json:"employmentHours"`
	City            string `gorm:"size:255" json:"city"`
	Source          string `gorm:"size:100" json:"source"`
	BirthYear       string `gorm:"size:10" json:"birthYear"`
	Citizenship     string `gorm:"size:100" json:"citizenship"`
	TechStack       string `gorm:"size:500" json:"techStack"`
}

func (Candidate) TableName() string {
	return "candidates"
}
