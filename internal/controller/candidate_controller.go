package controller

import (
	"errors"
	"strconv"

	"hirehub_backend/internal/service"
	"hirehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CandidateController struct {
	CandidateService *service.CandidateService
}

func NewCandidateController(candidateService *service.CandidateService) *CandidateController {
	return &CandidateController{
		CandidateService: candidateService,
	}
}

// CreateCandidate godoc
// @Summary 创建候选人
// @Description 登记一名新候选人，telegramId 全局唯一
// @Tags 候选人
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CandidateCreateRequest true "候选人信息"
// @Success 201 {object} util.Response{data=model.Candidate} "创建成功"
// @Failure 400 {object} util.Response "telegramId 已存在或参数错误"
// @Router /api/candidates [post]
func (c *CandidateController) CreateCandidate(ctx *gin.Context) {
	var req service.CandidateCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidate, err := c.CandidateService.CreateCandidate(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, candidate)
}

// ListCandidates godoc
// @Summary 获取候选人列表
// @Tags 候选人
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(100)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/candidates [get]
func (c *CandidateController) ListCandidates(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	candidates, total, err := c.CandidateService.ListCandidates(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  candidates,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetCandidate godoc
// @Summary 获取候选人详情
// @Tags 候选人
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "候选人ID"
// @Success 200 {object} util.Response{data=model.Candidate} "成功"
// @Failure 404 {object} util.Response "候选人不存在"
// @Router /api/candidates/{id} [get]
func (c *CandidateController) GetCandidate(ctx *gin.Context) {
	candidate, err := c.CandidateService.GetCandidate(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, candidate)
}

// GetCandidateByTelegram godoc
// @Summary 根据 Telegram ID 获取候选人
// @Description 机器人端通过 Telegram ID 定位候选人
// @Tags 候选人
// @Produce  json
// @Param   telegramId path int true "Telegram ID"
// @Success 200 {object} util.Response{data=model.Candidate} "成功"
// @Failure 404 {object} util.Response "候选人不存在"
// @Router /api/candidates/by-telegram/{telegramId} [get]
func (c *CandidateController) GetCandidateByTelegram(ctx *gin.Context) {
	telegramID, err := strconv.ParseInt(ctx.Param("telegramId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid telegram id")
		return
	}

	candidate, err := c.CandidateService.GetCandidateByTelegramID(telegramID)
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, candidate)
}

// UpdateCandidate godoc
// @Summary 更新候选人信息
// @Description 空字段保持原值，telegramId 不可修改
// @Tags 候选人
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "候选人ID"
// @Param   body body service.CandidateUpdateRequest true "更新内容"
// @Success 200 {object} util.Response{data=model.Candidate} "成功"
// @Failure 404 {object} util.Response "候选人不存在"
// @Router /api/candidates/{id} [put]
func (c *CandidateController) UpdateCandidate(ctx *gin.Context) {
	var req service.CandidateUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidate, err := c.CandidateService.UpdateCandidate(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, candidate)
}

// DeleteCandidate godoc
// @Summary 删除候选人
// @Tags 候选人
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "候选人ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "候选人不存在"
// @Router /api/candidates/{id} [delete]
func (c *CandidateController) DeleteCandidate(ctx *gin.Context) {
	if err := c.CandidateService.DeleteCandidate(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// UploadResume godoc
// @Summary 上传候选人简历
// @Description 接收 PDF/DOC/DOCX 简历，重复上传覆盖旧文件
// @Tags 候选人
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "候选人ID"
// @Param   file formData file true "简历文件"
// @Success 200 {object} util.Response{data=model.Candidate} "成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Failure 404 {object} util.Response "候选人不存在"
// @Router /api/candidates/{id}/resume [post]
func (c *CandidateController) UploadResume(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "resume file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	// 魔数校验后回到文件开头再上传
	if _, err := util.ValidateMimeType(file, util.AllowedResumeMimeTypes); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	candidate, err := c.CandidateService.AttachResume(ctx.Request.Context(), ctx.Param("id"), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, candidate)
}
