package controller

import (
	"errors"
	"strconv"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/service"
	"hirehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// RecruiterController 招聘专员账号管理接口，仅限管理员
type RecruiterController struct {
	RecruiterService *service.RecruiterService
}

func NewRecruiterController(recruiterService *service.RecruiterService) *RecruiterController {
	return &RecruiterController{
		RecruiterService: recruiterService,
	}
}

// UpdateRecruiterRequest 更新招聘专员请求
// swagger:model UpdateRecruiterRequest
type UpdateRecruiterRequest struct {
	FullName   string `json:"fullName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Role       string `json:"role" binding:"required,oneof=recruiter admin"`
	TelegramID int64  `json:"telegramId"`
	Password   string `json:"password"`
	Disabled   bool   `json:"disabled"`
}

// ListRecruiters godoc
// @Summary 获取招聘专员列表
// @Description 按姓名排序返回全部招聘专员
// @Tags 招聘专员
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Recruiter} "成功"
// @Router /api/recruiters [get]
func (c *RecruiterController) ListRecruiters(ctx *gin.Context) {
	recruiters, err := c.RecruiterService.GetRecruiters()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, recruiters)
}

// GetRecruiter godoc
// @Summary 获取招聘专员详情
// @Tags 招聘专员
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "招聘专员ID"
// @Success 200 {object} util.Response{data=model.Recruiter} "成功"
// @Failure 404 {object} util.Response "招聘专员不存在"
// @Router /api/recruiters/{id} [get]
func (c *RecruiterController) GetRecruiter(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid recruiter id")
		return
	}

	recruiter, err := c.RecruiterService.GetRecruiterByID(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrRecruiterNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, recruiter)
}

// UpdateRecruiter godoc
// @Summary 更新招聘专员
// @Description 更新基本信息，提供 password 字段时同时修改密码
// @Tags 招聘专员
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "招聘专员ID"
// @Param   body body UpdateRecruiterRequest true "更新内容"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "招聘专员不存在"
// @Router /api/recruiters/{id} [put]
func (c *RecruiterController) UpdateRecruiter(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid recruiter id")
		return
	}

	var req UpdateRecruiterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	recruiter := &model.Recruiter{
		FullName:   req.FullName,
		Email:      req.Email,
		Role:       model.RecruiterRole(req.Role),
		TelegramID: req.TelegramID,
		Disabled:   req.Disabled,
	}
	recruiter.ID = uint(id)

	if err := c.RecruiterService.UpdateRecruiterWithPassword(recruiter, req.Password); err != nil {
		if errors.Is(err, util.ErrRecruiterNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"id": recruiter.ID})
}

type DisableRecruiterRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// DisableRecruiter godoc
// @Summary 禁用/启用招聘专员
// @Tags 招聘专员
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "招聘专员ID"
// @Param   body body DisableRecruiterRequest true "禁用状态"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "招聘专员不存在"
// @Router /api/recruiters/{id}/disable [patch]
func (c *RecruiterController) DisableRecruiter(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid recruiter id")
		return
	}

	var req DisableRecruiterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.RecruiterService.DisableRecruiter(uint(id), *req.Disabled); err != nil {
		if errors.Is(err, util.ErrRecruiterNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"id": id, "disabled": *req.Disabled})
}

// ResetPassword godoc
// @Summary 重置密码
// @Description 生成临时密码并返回，要求用户尽快修改
// @Tags 招聘专员
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "招聘专员ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "招聘专员不存在"
// @Router /api/recruiters/{id}/reset-password [post]
func (c *RecruiterController) ResetPassword(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid recruiter id")
		return
	}

	tempPassword, err := c.RecruiterService.ResetPassword(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrRecruiterNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"tempPassword": tempPassword})
}
