package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"gorm.io/gorm"
)

// TaskService 招聘看板任务流转
// 新任务总是进入公共 backlog，认领后才归属具体招聘专员
type TaskService struct {
	TaskRepo      *repository.TaskRepository
	RecruiterRepo *repository.RecruiterRepository
	DB            *gorm.DB
}

func NewTaskService(taskRepo *repository.TaskRepository, recruiterRepo *repository.RecruiterRepository, db *gorm.DB) *TaskService {
	return &TaskService{
		TaskRepo:      taskRepo,
		RecruiterRepo: recruiterRepo,
		DB:            db,
	}
}

type TaskCreateRequest struct {
	TaskTypeID  uint            `json:"taskTypeId" binding:"required"`
	Title       string          `json:"title" binding:"required,max=500"`
	Description string          `json:"description"`
	Context     json.RawMessage `json:"context"`
}

// TaskView 看板卡片视图
type TaskView struct {
	ID           string           `json:"id"`
	TaskTypeName string           `json:"taskTypeName"`
	Status       model.TaskStatus `json:"status"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Context      json.RawMessage  `json:"context,omitempty"`
	AssignedTo   *uint            `json:"assignedTo,omitempty"`
	CompletedAt  *time.Time       `json:"completedAt,omitempty"`
}

func (s *TaskService) CreateTask(req TaskCreateRequest) (*TaskView, error) {
	if _, err := s.TaskRepo.FindTypeByID(req.TaskTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskTypeNotFound
		}
		return nil, err
	}

	task := &model.RecruiterTask{
		TaskTypeID:  req.TaskTypeID,
		Title:       req.Title,
		Description: req.Description,
		Context:     req.Context,
		Status:      model.TaskBacklog,
		AssignedTo:  nil,
	}
	if err := s.TaskRepo.Create(task); err != nil {
		return nil, err
	}

	created, err := s.GetTask(task.ID)
	if err != nil {
		return nil, err
	}
	view := buildTaskView(created)
	return &view, nil
}

func (s *TaskService) GetTask(id string) (*model.RecruiterTask, error) {
	task, err := s.TaskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// GetBoard 返回招聘专员视角下的全部任务：公共 backlog 加上自己名下各状态的任务
func (s *TaskService) GetBoard(recruiterID uint) ([]TaskView, error) {
	backlog, err := s.TaskRepo.ListByStatus(model.TaskBacklog, nil)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(backlog))
	for i := range backlog {
		views = append(views, buildTaskView(&backlog[i]))
	}

	for _, status := range []model.TaskStatus{model.TaskInProgress, model.TaskCompleted, model.TaskRejected} {
		tasks, err := s.TaskRepo.ListByStatus(status, &recruiterID)
		if err != nil {
			return nil, err
		}
		for i := range tasks {
			views = append(views, buildTaskView(&tasks[i]))
		}
	}
	return views, nil
}

// AssignTask 从公共 backlog 认领任务，BACKLOG -> IN_PROGRESS
func (s *TaskService) AssignTask(taskID string, recruiterID uint) (*TaskView, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != model.TaskBacklog {
		return nil, fmt.Errorf("task must be in BACKLOG status, currently %s", task.Status)
	}

	if _, err := s.RecruiterRepo.FindByID(recruiterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRecruiterNotFound
		}
		return nil, err
	}

	err = s.DB.Model(&model.RecruiterTask{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"status":      model.TaskInProgress,
			"assigned_to": recruiterID,
		}).Error
	if err != nil {
		return nil, err
	}
	return s.reloadView(task.ID)
}

// CompleteTask 完成任务，IN_PROGRESS -> COMPLETED
// vacancy_approval 任务完成后联动职位置为 ACTIVE
func (s *TaskService) CompleteTask(taskID string) (*TaskView, error) {
	return s.closeTask(taskID, model.TaskCompleted)
}

// RejectTask 驳回任务，IN_PROGRESS -> REJECTED
// vacancy_approval 任务被驳回后联动职位置为 ABORTED
func (s *TaskService) RejectTask(taskID string) (*TaskView, error) {
	return s.closeTask(taskID, model.TaskRejected)
}

func (s *TaskService) closeTask(taskID string, newStatus model.TaskStatus) (*TaskView, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != model.TaskInProgress {
		return nil, fmt.Errorf("task must be in IN_PROGRESS status, currently %s", task.Status)
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.RecruiterTask{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"status":       newStatus,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}
		return s.applyVacancyAutomation(tx, task, newStatus)
	})
	if err != nil {
		return nil, err
	}
	return s.reloadView(task.ID)
}

// UpdateTaskStatus 看板拖拽式状态变更
// 拖回 BACKLOG 释放任务并清空完成时间，其余状态归属当前招聘专员
func (s *TaskService) UpdateTaskStatus(taskID string, newStatus model.TaskStatus, recruiterID uint) (*TaskView, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status": newStatus,
	}
	if newStatus == model.TaskBacklog {
		updates["assigned_to"] = nil
		updates["completed_at"] = nil
	} else {
		updates["assigned_to"] = recruiterID
	}
	if newStatus == model.TaskCompleted || newStatus == model.TaskRejected {
		updates["completed_at"] = now
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.RecruiterTask{}).
			Where("id = ?", task.ID).
			Updates(updates).Error; err != nil {
			return err
		}
		return s.applyVacancyAutomation(tx, task, newStatus)
	})
	if err != nil {
		return nil, err
	}
	return s.reloadView(task.ID)
}

// CreateVacancyApprovalTask 职位创建时自动生成审批任务
func (s *TaskService) CreateVacancyApprovalTask(vacancyID uint, vacancyDescription, trackName, hiringManagerName string) (*model.RecruiterTask, error) {
	taskType, err := s.TaskRepo.FindTypeByCode(model.TaskTypeVacancyApproval)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("task type 'vacancy_approval' not found, seed task_types table first")
		}
		return nil, err
	}

	context, err := json.Marshal(map[string]interface{}{
		"vacancy_id":          vacancyID,
		"track_name":          trackName,
		"hiring_manager_name": hiringManagerName,
		"vacancy_description": vacancyDescription,
	})
	if err != nil {
		return nil, err
	}

	task := &model.RecruiterTask{
		TaskTypeID:  taskType.ID,
		Title:       fmt.Sprintf("Утверждение вакансии #%d (%s)", vacancyID, trackName),
		Description: fmt.Sprintf("Требуется утвердить вакансию для трека '%s', созданную нанимающим менеджером %s.", trackName, hiringManagerName),
		Context:     context,
		Status:      model.TaskBacklog,
		AssignedTo:  nil,
	}
	if err := s.TaskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

type TaskTypeCreateRequest struct {
	Code        string `json:"code" binding:"required,max=100"`
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// CreateTaskType 创建任务类型，code 全局唯一
func (s *TaskService) CreateTaskType(req TaskTypeCreateRequest) (*model.TaskType, error) {
	if _, err := s.TaskRepo.FindTypeByCode(req.Code); err == nil {
		return nil, errors.New("task type code already exists")
	}

	taskType := &model.TaskType{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		taskType.IsActive = *req.IsActive
	}

	if err := s.TaskRepo.CreateType(taskType); err != nil {
		return nil, err
	}
	return taskType, nil
}

func (s *TaskService) ListTaskTypes(isActive *bool) ([]model.TaskType, error) {
	return s.TaskRepo.ListTypes(isActive)
}

// applyVacancyAutomation 审批任务进入终态时联动职位状态
// 上下文缺少 vacancy_id 的任务直接跳过
func (s *TaskService) applyVacancyAutomation(tx *gorm.DB, task *model.RecruiterTask, newStatus model.TaskStatus) error {
	if task.TaskType.Code != model.TaskTypeVacancyApproval || len(task.Context) == 0 {
		return nil
	}

	var context struct {
		VacancyID uint `json:"vacancy_id"`
	}
	if err := json.Unmarshal(task.Context, &context); err != nil || context.VacancyID == 0 {
		return nil
	}

	var vacancyStatus model.VacancyStatus
	switch newStatus {
	case model.TaskCompleted:
		vacancyStatus = model.VacancyActive
	case model.TaskRejected:
		vacancyStatus = model.VacancyAborted
	default:
		return nil
	}

	return tx.Model(&model.Vacancy{}).
		Where("id = ?", context.VacancyID).
		Update("status", vacancyStatus).Error
}

func (s *TaskService) reloadView(taskID string) (*TaskView, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	view := buildTaskView(task)
	return &view, nil
}

func buildTaskView(task *model.RecruiterTask) TaskView {
	return TaskView{
		ID:           task.ID,
		TaskTypeName: task.TaskType.Name,
		Status:       task.Status,
		Title:        task.Title,
		Description:  task.Description,
		Context:      task.Context,
		AssignedTo:   task.AssignedTo,
		CompletedAt:  task.CompletedAt,
	}
}
