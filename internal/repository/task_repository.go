package repository

import (
	"hirehub_backend/internal/model"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(task *model.RecruiterTask) error {
	return r.DB.Create(task).Error
}

func (r *TaskRepository) FindByID(id string) (*model.RecruiterTask, error) {
	var task model.RecruiterTask
	err := r.DB.Preload("TaskType").Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByStatus 看板列查询，backlog 列不按执行人过滤
func (r *TaskRepository) ListByStatus(status model.TaskStatus, recruiterID *uint) ([]model.RecruiterTask, error) {
	var tasks []model.RecruiterTask
	query := r.DB.Preload("TaskType").Where("status = ?", status)
	if status != model.TaskBacklog && recruiterID != nil {
		query = query.Where("assigned_to = ?", *recruiterID)
	}
	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(task *model.RecruiterTask) error {
	return r.DB.Save(task).Error
}

func (r *TaskRepository) CreateType(taskType *model.TaskType) error {
	return r.DB.Create(taskType).Error
}

func (r *TaskRepository) FindTypeByID(id uint) (*model.TaskType, error) {
	var taskType model.TaskType
	err := r.DB.First(&taskType, id).Error
	if err != nil {
		return nil, err
	}
	return &taskType, nil
}

func (r *TaskRepository) FindTypeByCode(code string) (*model.TaskType, error) {
	var taskType model.TaskType
	err := r.DB.Where("code = ?", code).First(&taskType).Error
	if err != nil {
		return nil, err
	}
	return &taskType, nil
}

func (r *TaskRepository) ListTypes(isActive *bool) ([]model.TaskType, error) {
	var types []model.TaskType
	query := r.DB.Order("name ASC")
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	err := query.Find(&types).Error
	return types, err
}
