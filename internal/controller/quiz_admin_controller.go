package controller

import (
	"errors"
	"strconv"

	"hirehub_backend/internal/service"
	"hirehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuizAdminController 题库管理接口，仅限管理员调用
type QuizAdminController struct {
	QuizAdminService *service.QuizAdminService
}

func NewQuizAdminController(quizAdminService *service.QuizAdminService) *QuizAdminController {
	return &QuizAdminController{
		QuizAdminService: quizAdminService,
	}
}

// CreateBlock godoc
// @Summary 创建题块
// @Description 创建一个新的题块（主题分组）
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuizBlockCreateRequest true "题块信息"
// @Success 201 {object} util.Response{data=model.QuizBlock} "创建成功"
// @Failure 400 {object} util.Response "名称重复或参数错误"
// @Router /api/admin/quiz/blocks [post]
func (c *QuizAdminController) CreateBlock(ctx *gin.Context) {
	var req service.QuizBlockCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	block, err := c.QuizAdminService.CreateBlock(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, block)
}

// ListBlocks godoc
// @Summary 获取题块列表
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   isActive query bool false "按激活状态过滤"
// @Success 200 {object} util.Response{data=[]model.QuizBlock} "成功"
// @Router /api/admin/quiz/blocks [get]
func (c *QuizAdminController) ListBlocks(ctx *gin.Context) {
	var isActive *bool
	if v := ctx.Query("isActive"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			util.BadRequest(ctx, "invalid isActive")
			return
		}
		isActive = &active
	}

	blocks, err := c.QuizAdminService.ListBlocks(isActive)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, blocks)
}

type BlockActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetBlockActive godoc
// @Summary 启用/停用题块
// @Description 停用的题块不再参与新会话的抽题
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题块ID"
// @Param   body body BlockActiveRequest true "激活状态"
// @Success 200 {object} util.Response{data=model.QuizBlock} "成功"
// @Failure 404 {object} util.Response "题块不存在"
// @Router /api/admin/quiz/blocks/{id}/active [patch]
func (c *QuizAdminController) SetBlockActive(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid block id")
		return
	}

	var req BlockActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	block, err := c.QuizAdminService.SetBlockActive(uint(id), *req.IsActive)
	if err != nil {
		if errors.Is(err, util.ErrBlockNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, block)
}

// CreateQuestion godoc
// @Summary 创建题目
// @Description 在指定题块下创建单选题，题目创建后内容不可修改
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuizQuestionCreateRequest true "题目信息"
// @Success 201 {object} util.Response{data=service.QuizQuestionView} "创建成功"
// @Failure 404 {object} util.Response "题块不存在"
// @Router /api/admin/quiz/questions [post]
func (c *QuizAdminController) CreateQuestion(ctx *gin.Context) {
	var req service.QuizQuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizAdminService.CreateQuestion(req)
	if err != nil {
		if errors.Is(err, util.ErrBlockNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// ListQuestions godoc
// @Summary 获取题块下的题目
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   blockId query int true "题块ID"
// @Success 200 {object} util.Response{data=[]service.QuizQuestionView} "成功"
// @Router /api/admin/quiz/questions [get]
func (c *QuizAdminController) ListQuestions(ctx *gin.Context) {
	blockID, err := strconv.Atoi(ctx.Query("blockId"))
	if err != nil {
		util.BadRequest(ctx, "invalid blockId")
		return
	}

	questions, err := c.QuizAdminService.ListQuestions(uint(blockID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

type QuestionActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetQuestionActive godoc
// @Summary 启用/停用题目
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "题目ID"
// @Param   body body QuestionActiveRequest true "激活状态"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/quiz/questions/{id}/active [patch]
func (c *QuizAdminController) SetQuestionActive(ctx *gin.Context) {
	var req QuestionActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizAdminService.SetQuestionActive(ctx.Param("id"), *req.IsActive)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"id": question.ID, "isActive": question.IsActive})
}

// LinkTrackBlock godoc
// @Summary 为赛道配置题块
// @Description 将题块挂到赛道并指定抽题数量
// @Tags 题库管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TrackQuizBlockCreateRequest true "赛道与题块"
// @Success 201 {object} util.Response{data=service.TrackQuizBlockView} "创建成功"
// @Failure 400 {object} util.Response "已配置过该题块"
// @Failure 404 {object} util.Response "赛道或题块不存在"
// @Router /api/admin/quiz/track-blocks [post]
func (c *QuizAdminController) LinkTrackBlock(ctx *gin.Context) {
	var req service.TrackQuizBlockCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	link, err := c.QuizAdminService.LinkTrackBlock(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTrackNotFound), errors.Is(err, util.ErrBlockNotFound):
			util.Error(ctx, 404, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, link)
}

// GetTrackBlocks godoc
// @Summary 获取赛道的题块配置
// @Description 按配置顺序返回赛道挂载的全部题块
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   trackId path int true "赛道ID"
// @Success 200 {object} util.Response{data=[]service.TrackQuizBlockView} "成功"
// @Failure 404 {object} util.Response "赛道不存在"
// @Router /api/admin/quiz/tracks/{trackId}/blocks [get]
func (c *QuizAdminController) GetTrackBlocks(ctx *gin.Context) {
	trackID, err := strconv.Atoi(ctx.Param("trackId"))
	if err != nil {
		util.BadRequest(ctx, "invalid track id")
		return
	}

	links, err := c.QuizAdminService.GetTrackBlocks(uint(trackID))
	if err != nil {
		if errors.Is(err, util.ErrTrackNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, links)
}

// UnlinkTrackBlock godoc
// @Summary 移除赛道的题块配置
// @Tags 题库管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   trackId path int true "赛道ID"
// @Param   blockId path int true "题块ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/admin/quiz/tracks/{trackId}/blocks/{blockId} [delete]
func (c *QuizAdminController) UnlinkTrackBlock(ctx *gin.Context) {
	trackID, err := strconv.Atoi(ctx.Param("trackId"))
	if err != nil {
		util.BadRequest(ctx, "invalid track id")
		return
	}
	blockID, err := strconv.Atoi(ctx.Param("blockId"))
	if err != nil {
		util.BadRequest(ctx, "invalid block id")
		return
	}

	if err := c.QuizAdminService.UnlinkTrackBlock(uint(trackID), uint(blockID)); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
