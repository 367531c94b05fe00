package model

import (
	"encoding/json"
	"time"
)

type TaskStatus string

const (
	TaskBacklog    TaskStatus = "BACKLOG"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskRejected   TaskStatus = "REJECTED"
)

// 任务类型代码
const (
	TaskTypeVacancyApproval = "vacancy_approval"
	TaskTypeSendOffer       = "send_offer"
	TaskTypeScheduleCall    = "schedule_call"
)

// TaskType 招聘任务类型字典
type TaskType struct {
	BaseModel
	Code        string `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (TaskType) TableName() string {
	return "task_types"
}

// RecruiterTask 招聘看板中的任务
// swagger:model RecruiterTask
type RecruiterTask struct {
	UUIDBase
	TaskTypeID  uint            `gorm:"index;type:bigint unsigned;not null" json:"taskTypeId"`
	Status      TaskStatus      `gorm:"index;size:20;default:'BACKLOG'" json:"status"`
	AssignedTo  *uint           `gorm:"index" json:"assignedTo"` // NULL 表示任务在公共 backlog
	Context     json.RawMessage `gorm:"type:json" json:"context"`
	Title       string          `gorm:"size:500;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`

	TaskType TaskType `gorm:"foreignKey:TaskTypeID" json:"taskType,omitempty"`
}

func (RecruiterTask) TableName() string {
	return "recruiter_tasks"
}
