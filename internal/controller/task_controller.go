package controller

import (
	"errors"
	"strconv"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/service"
	"hirehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TaskController 招聘看板任务接口
type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// GetBoard godoc
// @Summary 获取任务看板
// @Description 公共 backlog 的全部任务，加上当前招聘专员名下各状态的任务
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/tasks [get]
func (c *TaskController) GetBoard(ctx *gin.Context) {
	claims := util.GetRecruiterFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.TaskService.GetBoard(claims.RecruiterID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"tasks": tasks})
}

// CreateTask godoc
// @Summary 创建任务
// @Description 手工创建一条 backlog 任务，审批类任务通常由系统自动生成
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TaskCreateRequest true "任务内容"
// @Success 201 {object} util.Response{data=service.TaskView} "创建成功"
// @Failure 404 {object} util.Response "任务类型不存在"
// @Router /api/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	var req service.TaskCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.CreateTask(req)
	if err != nil {
		if errors.Is(err, util.ErrTaskTypeNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, task)
}

type AssignTaskRequest struct {
	RecruiterID uint `json:"recruiterId" binding:"required"`
}

// AssignTask godoc
// @Summary 认领任务
// @Description 从公共 backlog 认领任务，BACKLOG -> IN_PROGRESS
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "任务ID"
// @Param   body body AssignTaskRequest true "执行人"
// @Success 200 {object} util.Response{data=service.TaskView} "成功"
// @Failure 400 {object} util.Response "任务不在 BACKLOG 状态"
// @Failure 404 {object} util.Response "任务或招聘专员不存在"
// @Router /api/tasks/{id}/assign [post]
func (c *TaskController) AssignTask(ctx *gin.Context) {
	var req AssignTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.AssignTask(ctx.Param("id"), req.RecruiterID)
	if err != nil {
		c.taskError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

// CompleteTask godoc
// @Summary 完成任务
// @Description IN_PROGRESS -> COMPLETED，审批任务完成后职位自动启用
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "任务ID"
// @Success 200 {object} util.Response{data=service.TaskView} "成功"
// @Failure 400 {object} util.Response "任务不在 IN_PROGRESS 状态"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/tasks/{id}/complete [post]
func (c *TaskController) CompleteTask(ctx *gin.Context) {
	task, err := c.TaskService.CompleteTask(ctx.Param("id"))
	if err != nil {
		c.taskError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

// RejectTask godoc
// @Summary 驳回任务
// @Description IN_PROGRESS -> REJECTED，审批任务被驳回后职位自动终止
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "任务ID"
// @Success 200 {object} util.Response{data=service.TaskView} "成功"
// @Failure 400 {object} util.Response "任务不在 IN_PROGRESS 状态"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/tasks/{id}/reject [post]
func (c *TaskController) RejectTask(ctx *gin.Context) {
	task, err := c.TaskService.RejectTask(ctx.Param("id"))
	if err != nil {
		c.taskError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=BACKLOG IN_PROGRESS COMPLETED REJECTED"`
}

// UpdateTaskStatus godoc
// @Summary 更新任务状态
// @Description 看板拖拽式变更：拖回 BACKLOG 释放任务，其余状态归属当前招聘专员
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "任务ID"
// @Param   body body UpdateTaskStatusRequest true "新状态"
// @Success 200 {object} util.Response{data=service.TaskView} "成功"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/tasks/{id} [patch]
func (c *TaskController) UpdateTaskStatus(ctx *gin.Context) {
	claims := util.GetRecruiterFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateTaskStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.UpdateTaskStatus(ctx.Param("id"), model.TaskStatus(req.Status), claims.RecruiterID)
	if err != nil {
		c.taskError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

func (c *TaskController) taskError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTaskNotFound), errors.Is(err, util.ErrRecruiterNotFound):
		util.Error(ctx, 404, err.Error())
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// CreateTaskType godoc
// @Summary 创建任务类型
// @Tags 任务管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TaskTypeCreateRequest true "任务类型"
// @Success 201 {object} util.Response{data=model.TaskType} "创建成功"
// @Failure 400 {object} util.Response "code 重复"
// @Router /api/admin/task-types [post]
func (c *TaskController) CreateTaskType(ctx *gin.Context) {
	var req service.TaskTypeCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	taskType, err := c.TaskService.CreateTaskType(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, taskType)
}

// ListTaskTypes godoc
// @Summary 获取任务类型列表
// @Tags 任务管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   isActive query bool false "按激活状态过滤"
// @Success 200 {object} util.Response{data=[]model.TaskType} "成功"
// @Router /api/task-types [get]
func (c *TaskController) ListTaskTypes(ctx *gin.Context) {
	var isActive *bool
	if v := ctx.Query("isActive"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			util.BadRequest(ctx, "invalid isActive")
			return
		}
		isActive = &active
	}

	types, err := c.TaskService.ListTaskTypes(isActive)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, types)
}
