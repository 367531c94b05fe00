package model

type VacancyStatus string

const (
	VacancyDraft   VacancyStatus = "DRAFT"
	VacancyActive  VacancyStatus = "ACTIVE"
	VacancyAborted VacancyStatus = "ABORTED"
)

// swagger:model Vacancy
type Vacancy struct {
	BaseModel
	Title           string        `gorm:"size:255;not null" json:"title"`
	Description     string        `gorm:"type:text" json:"description"`
	TrackID         uint          `gorm:"index;type:bigint unsigned;not null" json:"trackId"`
	HiringManagerID uint          `gorm:"index;type:bigint unsigned" json:"hiringManagerId"`
	Status          VacancyStatus `gorm:"index;size:20;default:'DRAFT'" json:"status"`
}

func (Vacancy) TableName() string {
	return "vacancies"
}

// CandidatePoolStatus 候选人在漏斗中的状态
type CandidatePoolStatus string

const (
	PoolViewed             CandidatePoolStatus = "VIEWED"
	PoolSelected           CandidatePoolStatus = "SELECTED"
	PoolInterviewScheduled CandidatePoolStatus = "INTERVIEW_SCHEDULED"
	PoolInterviewed        CandidatePoolStatus = "INTERVIEWED"
	PoolFinalist           CandidatePoolStatus = "FINALIST"
	PoolOfferSent          CandidatePoolStatus = "OFFER_SENT"
	PoolRejected           CandidatePoolStatus = "REJECTED"
)

// CandidatePool 某一职位下候选人的筛选漏斗记录
type CandidatePool struct {
	BaseModel
	VacancyID   uint                `gorm:"uniqueIndex:uq_vacancy_candidate;type:bigint unsigned;not null" json:"vacancyId"`
	CandidateID string              `gorm:"uniqueIndex:uq_vacancy_candidate;type:varchar(36);not null" json:"candidateId"`
	Status      CandidatePoolStatus `gorm:"index;size:30;default:'VIEWED'" json:"status"`
	Comment     string              `gorm:"type:text" json:"comment"`
	Candidate   Candidate           `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}

func (CandidatePool) TableName() string {
	return "candidate_pools"
}

// 面试反馈的决定，决定候选人在漏斗中的去向
const (
	FeedbackRejectGlobally = "reject_globally" // 全公司范围拒绝
	FeedbackRejectTeam     = "reject_team"     // 仅本团队拒绝
	FeedbackFreeze         = "freeze"          // 冻结，稍后再看
	FeedbackToFinalist     = "to_finalist"     // 进入终选名单
)

// InterviewFeedback 面试后的反馈，每条漏斗记录最多一条
type InterviewFeedback struct {
	BaseModel
	PoolID   uint   `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"poolId"`
	Decision string `gorm:"size:50;not null" json:"decision"`
	Feedback string `gorm:"type:text" json:"feedback"`
}

func (InterviewFeedback) TableName() string {
	return "interview_feedbacks"
}
