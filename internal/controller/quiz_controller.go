package controller

import (
	"errors"
	"strconv"

	"hirehub_backend/internal/service"
	"hirehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizFlowService *service.QuizFlowService
}

func NewQuizController(quizFlowService *service.QuizFlowService) *QuizController {
	return &QuizController{
		QuizFlowService: quizFlowService,
	}
}

// StartQuiz godoc
// @Summary 开始测评
// @Description 为候选人在指定赛道上开启一次测评会话并返回第一道题
// @Tags 测评
// @Accept  json
// @Produce  json
// @Param   body body service.QuizStartRequest true "候选人与赛道"
// @Success 201 {object} util.Response{data=service.QuizStartResponse} "创建成功"
// @Failure 400 {object} util.Response "已有进行中的会话或赛道未配置题块"
// @Failure 404 {object} util.Response "赛道不存在"
// @Failure 500 {object} util.Response "题库为空"
// @Router /api/quiz/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	var req service.QuizStartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.QuizFlowService.StartQuiz(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrActiveSessionExists), errors.Is(err, util.ErrTrackNotConfigured):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrTrackNotFound):
			util.Error(ctx, 404, err.Error())
		case errors.Is(err, util.ErrNoQuestionsAvailable):
			util.Error(ctx, 500, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, resp)
}

// SubmitAnswer godoc
// @Summary 提交答案
// @Description 提交当前题目的答案，返回下一道题或最终成绩
// @Tags 测评
// @Accept  json
// @Produce  json
// @Param   body body service.QuizAnswerRequest true "答案"
// @Success 200 {object} util.Response{data=service.QuizAnswerResult} "成功"
// @Failure 400 {object} util.Response "会话已结束或题目已作答"
// @Failure 404 {object} util.Response "会话或题目不存在"
// @Router /api/quiz/answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	var req service.QuizAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizFlowService.SubmitAnswer(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.Error(ctx, 404, err.Error())
		case errors.Is(err, util.ErrSessionNotActive), errors.Is(err, util.ErrDuplicateAnswer):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GetResults godoc
// @Summary 获取测评结果
// @Description 获取某次测评会话的成绩与分块表现
// @Tags 测评
// @Produce  json
// @Param   id path string true "会话ID"
// @Success 200 {object} util.Response{data=service.QuizResults} "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/quiz/sessions/{id}/results [get]
func (c *QuizController) GetResults(ctx *gin.Context) {
	sessionID := ctx.Param("id")

	results, err := c.QuizFlowService.GetResults(sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, results)
}

// GetAttempts godoc
// @Summary 获取候选人的测评记录
// @Description 列出候选人的全部测评会话，可按赛道过滤
// @Tags 测评
// @Produce  json
// @Param   candidateId query string true "候选人ID"
// @Param   trackId query int false "赛道ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "缺少候选人ID"
// @Router /api/quiz/attempts [get]
func (c *QuizController) GetAttempts(ctx *gin.Context) {
	candidateID := ctx.Query("candidateId")
	if candidateID == "" {
		util.BadRequest(ctx, "candidateId is required")
		return
	}

	var trackID *uint
	if v := ctx.Query("trackId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			util.BadRequest(ctx, "invalid trackId")
			return
		}
		tid := uint(id)
		trackID = &tid
	}

	attempts, err := c.QuizFlowService.GetAttempts(candidateID, trackID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"attempts": attempts})
}
