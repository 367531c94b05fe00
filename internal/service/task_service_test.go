package service

import (
	"encoding/json"
	"fmt"
	"testing"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(db *gorm.DB) *TaskService {
	return NewTaskService(repository.NewTaskRepository(db), repository.NewRecruiterRepository(db), db)
}

func createRecruiter(t *testing.T, db *gorm.DB, email string) model.Recruiter {
	t.Helper()
	recruiter := model.Recruiter{
		FullName: "Test Recruiter",
		Email:    email,
		Password: "hashed",
		Role:     model.RoleRecruiter,
	}
	require.NoError(t, db.Create(&recruiter).Error)
	return recruiter
}

func createTaskType(t *testing.T, db *gorm.DB, code, name string) model.TaskType {
	t.Helper()
	taskType := model.TaskType{Code: code, Name: name, IsActive: true}
	require.NoError(t, db.Create(&taskType).Error)
	return taskType
}

func createVacancy(t *testing.T, db *gorm.DB, title string, hiringManagerID uint) model.Vacancy {
	t.Helper()
	track := model.Track{Name: "Track for " + title, IsActive: true}
	require.NoError(t, db.Create(&track).Error)
	vacancy := model.Vacancy{
		Title:           title,
		TrackID:         track.ID,
		HiringManagerID: hiringManagerID,
		Status:          model.VacancyDraft,
	}
	require.NoError(t, db.Create(&vacancy).Error)
	return vacancy
}

func TestCreateTaskEntersBacklog(t *testing.T) {
	db := openTestDB(t)
	svc := newTaskService(db)
	taskType := createTaskType(t, db, model.TaskTypeScheduleCall, "Назначить звонок")

	view, err := svc.CreateTask(TaskCreateRequest{
		TaskTypeID:  taskType.ID,
		Title:       "Позвонить кандидату",
		Description: "Обсудить детали оффера",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TaskBacklog, view.Status)
	assert.Nil(t, view.AssignedTo)
	assert.Equal(t, "Назначить звонок", view.TaskTypeName)

	_, err = svc.CreateTask(TaskCreateRequest{TaskTypeID: 999, Title: "broken"})
	assert.ErrorIs(t, err, util.ErrTaskTypeNotFound)
}

func TestGetBoardScopesToRecruiter(t *testing.T) {
	db := openTestDB(t)
	svc := newTaskService(db)
	taskType := createTaskType(t, db, model.TaskTypeScheduleCall, "Звонок")
	first := createRecruiter(t, db, "first@hirehub.io")
	second := createRecruiter(t, db, "second@hirehub.io")

	backlog, err := svc.CreateTask(TaskCreateRequest{TaskTypeID: taskType.ID, Title: "common backlog"})
	require.NoError(t, err)

	mine, err := svc.CreateTask(TaskCreateRequest{TaskTypeID: taskType.ID, Title: "first takes this"})
	require.NoError(t, err)
	_, err = svc.AssignTask(mine.ID, first.ID)
	require.NoError(t, err)

	theirs, err := svc.CreateTask(TaskCreateRequest{TaskTypeID: taskType.ID, Title: "second takes this"})
	require.NoError(t, err)
	_, err = svc.AssignTask(theirs.ID, second.ID)
	require.NoError(t, err)

	// 每人看到公共 backlog 加自己名下的任务
	board, err := svc.GetBoard(first.ID)
	require.NoError(t, err)
	require.Len(t, board, 2)
	ids := []string{board[0].ID, board[1].ID}
	assert.Contains(t, ids, backlog.ID)
	assert.Contains(t, ids, mine.ID)
	assert.NotContains(t, ids, theirs.ID)

	board, err = svc.GetBoard(second.ID)
	require.NoError(t, err)
	require.Len(t, board, 2)
}

func TestAssignTaskGuards(t *testing.T) {
	db := openTestDB(t)
	svc := newTaskService(db)
	taskType := createTaskType(t, db, model.TaskTypeScheduleCall, "Звонок")
	recruiter := createRecruiter(t, db, "claim@hirehub.io")

	task, err := svc.CreateTask(TaskCreateRequest{TaskTypeID: taskType.ID, Title: "claim me"})
	require.NoError(t, err)

	view, err := svc.AssignTask(task.ID, recruiter.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskInProgress, view.Status)
	require.NotNil(t, view.AssignedTo)
	assert.Equal(t, recruiter.ID, *view.AssignedTo)

	// 已被认领的任务不能重复认领
	_, err = svc.AssignTask(task.ID, recruiter.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKLOG")

	other, err := svc.CreateTask(TaskCreateRequest{TaskTypeID: taskType.ID, Title: "orphan"})
	require.NoError(t, err)
	_, err = svc.AssignTask(other.ID, 999)
	assert.ErrorIs(t, err, util.ErrRecruiterNotFound)

	_, err = svc.AssignTask(model.GenerateUUID(), recruiter.ID)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}

func TestCompleteAndRejectRequireInProgress(t *testing.T) {
	db := openTestDB(t)
	svc := newTaskService(db)
	taskType := createTaskType(t, db, model.TaskTypeScheduleCall, "Звонок")
	recruiter := createRecruiter(t, db, "close@hirehub.io")

	task, err := svc.CreateTask(TaskCreateRequest{TaskTypeID: taskType.ID, Title: "close me"})
	require.NoError(t, err)

	// backlog 任务不能直接完成
	_, err = svc.CompleteTask(task.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IN_PROGRESS")

	_, err = svc.AssignTask(task.ID, recruiter.ID)
	require.NoError(t, err)

	view, err := svc.CompleteTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, view.Status)
	assert.NotNil(t, view.CompletedAt)

	// 已完成的任务不能再驳回
	_, err = svc.RejectTask(task.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IN_PROGRESS")
}

func TestVacancyApprovalAutomation(t *testing.T) {
	db := openTestDB(t)
	svc := newTaskService(db)
	createTaskType(t, db, model.TaskTypeVacancyApproval, "Утверждение вакансии")
	recruiter := createRecruiter(t, db, "approve@hirehub.io")
	manager := createRecruiter(t, db, "manager@hirehub.io")

	approved := createVacancy(t, db, "Go Developer", manager.ID)
	task, err := svc.CreateVacancyApprovalTask(approved.ID, "backend role", "Backend", "Manager")
	require.NoError(t, err)
	assert.Contains(t, task.Title, fmt.Sprintf("#%d", approved.ID))

	_, err = svc.AssignTask(task.ID, recruiter.ID)
	require.NoError(t, err)
	_, err = svc.CompleteTask(task.ID)
	require.NoError(t, err)

	// 审批完成联动职位激活
	var vacancy model.Vacancy
	require.NoError(t, db.First(&vacancy, approved.ID).Error)
	assert.Equal(t, model.VacancyActive, vacancy.Status)

	rejected := createVacancy(t, db, "Frontend Developer", manager.ID)
	task, err = svc.CreateVacancyApprovalTask(rejected.ID, "frontend role", "Frontend", "Manager")
	require.NoError(t, err)
	_, err = svc.AssignTask(task.ID, recruiter.ID)
	require.NoError(t, err)
	_, err = svc.RejectTask(task.ID)
	require.NoError(t, err)

	// 审批驳回联动职位中止
	require.NoError(t, db.First(&vacancy, rejected.ID).Error)
	assert.Equal(t, model.VacancyAborted, vacancy.Status)
}

func TestCreateVacancyApprovalTaskNeedsSeededType(t *testing.T) {
	db := openTestDB(t)
	svc := newTaskService(db)

	_, err := svc.CreateVacancyApprovalTask(1, "desc", "Backend", "Manager")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vacancy_approval")
}

func TestUpdateTaskStatusDragAndDrop(t *testing.T) {
	db := openTestDB(t)
	svc := newTaskService(db)
	createTaskType(t, db, model.TaskTypeVacancyApproval, "Утверждение вакансии")
	recruiter := createRecruiter(t, db, "drag@hirehub.io")
	manager := createRecruiter(t, db, "drag-manager@hirehub.io")
	vacancy := createVacancy(t, db, "Analyst", manager.ID)

	task, err := svc.CreateVacancyApprovalTask(vacancy.ID, "analyst role", "Analytics", "Manager")
	require.NoError(t, err)
	_, err = svc.AssignTask(task.ID, recruiter.ID)
	require.NoError(t, err)

	// 拖回 backlog 释放任务
	view, err := svc.UpdateTaskStatus(task.ID, model.TaskBacklog, recruiter.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskBacklog, view.Status)
	assert.Nil(t, view.AssignedTo)
	assert.Nil(t, view.CompletedAt)

	// 直接拖到完成列,归属当前操作人并触发联动
	view, err = svc.UpdateTaskStatus(task.ID, model.TaskCompleted, recruiter.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, view.Status)
	require.NotNil(t, view.AssignedTo)
	assert.Equal(t, recruiter.ID, *view.AssignedTo)
	assert.NotNil(t, view.CompletedAt)

	var reloaded model.Vacancy
	require.NoError(t, db.First(&reloaded, vacancy.ID).Error)
	assert.Equal(t, model.VacancyActive, reloaded.Status)
}

func TestTaskContextRoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := newTaskService(db)
	taskType := createTaskType(t, db, model.TaskTypeSendOffer, "Оффер")

	payload, err := json.Marshal(map[string]interface{}{"candidate_id": "abc", "salary": 90000})
	require.NoError(t, err)

	view, err := svc.CreateTask(TaskCreateRequest{
		TaskTypeID: taskType.ID,
		Title:      "Отправить оффер",
		Context:    payload,
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(view.Context, &decoded))
	assert.Equal(t, "abc", decoded["candidate_id"])
}

func TestCreateTaskTypeUniqueCode(t *testing.T) {
	db := openTestDB(t)
	svc := newTaskService(db)

	created, err := svc.CreateTaskType(TaskTypeCreateRequest{Code: "reference_check", Name: "Проверка рекомендаций"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = svc.CreateTaskType(TaskTypeCreateRequest{Code: "reference_check", Name: "Дубль"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	inactive := false
	_, err = svc.CreateTaskType(TaskTypeCreateRequest{Code: "archived_type", Name: "Архив", IsActive: &inactive})
	require.NoError(t, err)

	active := true
	types, err := svc.ListTaskTypes(&active)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "reference_check", types[0].Code)
}
