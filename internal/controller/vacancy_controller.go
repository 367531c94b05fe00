package controller

import (
	"errors"
	"strconv"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/service"
	"hirehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// VacancyController 赛道、职位与候选人漏斗接口
type VacancyController struct {
	VacancyService *service.VacancyService
}

func NewVacancyController(vacancyService *service.VacancyService) *VacancyController {
	return &VacancyController{
		VacancyService: vacancyService,
	}
}

// CreateTrack godoc
// @Summary 创建招聘赛道
// @Tags 赛道
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TrackCreateRequest true "赛道信息"
// @Success 201 {object} util.Response{data=model.Track} "创建成功"
// @Failure 400 {object} util.Response "名称重复或参数错误"
// @Router /api/tracks [post]
func (c *VacancyController) CreateTrack(ctx *gin.Context) {
	var req service.TrackCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	track, err := c.VacancyService.CreateTrack(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, track)
}

// ListTracks godoc
// @Summary 获取赛道列表
// @Description activeOnly=true 时只返回激活的赛道，候选人入口使用
// @Tags 赛道
// @Produce  json
// @Param   activeOnly query bool false "只看激活赛道"
// @Success 200 {object} util.Response{data=[]model.Track} "成功"
// @Router /api/tracks [get]
func (c *VacancyController) ListTracks(ctx *gin.Context) {
	activeOnly, _ := strconv.ParseBool(ctx.DefaultQuery("activeOnly", "false"))

	tracks, err := c.VacancyService.ListTracks(activeOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tracks)
}

// GetTrack godoc
// @Summary 获取赛道详情
// @Tags 赛道
// @Produce  json
// @Param   id path int true "赛道ID"
// @Success 200 {object} util.Response{data=model.Track} "成功"
// @Failure 404 {object} util.Response "赛道不存在"
// @Router /api/tracks/{id} [get]
func (c *VacancyController) GetTrack(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid track id")
		return
	}

	track, err := c.VacancyService.GetTrack(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrTrackNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, track)
}

// UpdateTrack godoc
// @Summary 更新赛道
// @Tags 赛道
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "赛道ID"
// @Param   body body service.TrackUpdateRequest true "更新内容"
// @Success 200 {object} util.Response{data=model.Track} "成功"
// @Failure 404 {object} util.Response "赛道不存在"
// @Router /api/tracks/{id} [put]
func (c *VacancyController) UpdateTrack(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid track id")
		return
	}

	var req service.TrackUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	track, err := c.VacancyService.UpdateTrack(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrTrackNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, track)
}

// CreateVacancy godoc
// @Summary 创建职位
// @Description 创建 DRAFT 状态的职位，并生成一条待审批任务
// @Tags 职位
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.VacancyCreateRequest true "职位信息"
// @Success 201 {object} util.Response{data=model.Vacancy} "创建成功"
// @Failure 404 {object} util.Response "赛道不存在"
// @Router /api/vacancies [post]
func (c *VacancyController) CreateVacancy(ctx *gin.Context) {
	var req service.VacancyCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	vacancy, err := c.VacancyService.CreateVacancy(req)
	if err != nil {
		if errors.Is(err, util.ErrTrackNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, vacancy)
}

// ListVacancies godoc
// @Summary 获取职位列表
// @Tags 职位
// @Produce  json
// @Security ApiKeyAuth
// @Param   status query string false "状态过滤" Enums(DRAFT, ACTIVE, ABORTED)
// @Param   trackId query int false "赛道ID"
// @Param   hiringManagerId query int false "招聘经理ID"
// @Success 200 {object} util.Response{data=[]model.Vacancy} "成功"
// @Router /api/vacancies [get]
func (c *VacancyController) ListVacancies(ctx *gin.Context) {
	var status *model.VacancyStatus
	if v := ctx.Query("status"); v != "" {
		st := model.VacancyStatus(v)
		status = &st
	}

	var trackID, hiringManagerID *uint
	if v := ctx.Query("trackId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			util.BadRequest(ctx, "invalid trackId")
			return
		}
		tid := uint(id)
		trackID = &tid
	}
	if v := ctx.Query("hiringManagerId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			util.BadRequest(ctx, "invalid hiringManagerId")
			return
		}
		hid := uint(id)
		hiringManagerID = &hid
	}

	vacancies, err := c.VacancyService.ListVacancies(status, trackID, hiringManagerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, vacancies)
}

// GetVacancy godoc
// @Summary 获取职位详情
// @Tags 职位
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Success 200 {object} util.Response{data=model.Vacancy} "成功"
// @Failure 404 {object} util.Response "职位不存在"
// @Router /api/vacancies/{id} [get]
func (c *VacancyController) GetVacancy(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid vacancy id")
		return
	}

	vacancy, err := c.VacancyService.GetVacancy(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrVacancyNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, vacancy)
}

// ActivateVacancy godoc
// @Summary 启用职位
// @Tags 职位
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Success 200 {object} util.Response{data=model.Vacancy} "成功"
// @Failure 404 {object} util.Response "职位不存在"
// @Router /api/vacancies/{id}/activate [post]
func (c *VacancyController) ActivateVacancy(ctx *gin.Context) {
	c.setStatus(ctx, c.VacancyService.ActivateVacancy)
}

// AbortVacancy godoc
// @Summary 终止职位
// @Tags 职位
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Success 200 {object} util.Response{data=model.Vacancy} "成功"
// @Failure 404 {object} util.Response "职位不存在"
// @Router /api/vacancies/{id}/abort [post]
func (c *VacancyController) AbortVacancy(ctx *gin.Context) {
	c.setStatus(ctx, c.VacancyService.AbortVacancy)
}

func (c *VacancyController) setStatus(ctx *gin.Context, apply func(uint) (*model.Vacancy, error)) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid vacancy id")
		return
	}

	vacancy, err := apply(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrVacancyNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, vacancy)
}

// GetVacancyStats godoc
// @Summary 获取职位漏斗统计
// @Description 候选人按漏斗状态的数量分布
// @Tags 职位
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Success 200 {object} util.Response{data=service.VacancyStatsResponse} "成功"
// @Failure 404 {object} util.Response "职位不存在"
// @Router /api/vacancies/{id}/stats [get]
func (c *VacancyController) GetVacancyStats(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid vacancy id")
		return
	}

	stats, err := c.VacancyService.GetVacancyStats(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrVacancyNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, stats)
}

// GetVacancyWithCandidates godoc
// @Summary 获取职位及其漏斗候选人
// @Tags 职位
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Param   status query string false "漏斗状态过滤" Enums(VIEWED, SELECTED, INTERVIEW_SCHEDULED, INTERVIEWED, FINALIST, OFFER_SENT, REJECTED)
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "职位不存在"
// @Router /api/vacancies/{id}/with-candidates [get]
func (c *VacancyController) GetVacancyWithCandidates(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid vacancy id")
		return
	}

	vacancy, err := c.VacancyService.GetVacancy(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrVacancyNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var status *model.CandidatePoolStatus
	if v := ctx.Query("status"); v != "" {
		st := model.CandidatePoolStatus(v)
		status = &st
	}

	entries, err := c.VacancyService.GetVacancyCandidates(uint(id), status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"vacancy":    vacancy,
		"candidates": entries,
	})
}

// NextCandidate godoc
// @Summary 获取下一位待筛选候选人
// @Description 按注册时间顺序返回还未进入该职位漏斗的候选人
// @Tags 职位
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Success 200 {object} util.Response{data=model.Candidate} "成功"
// @Failure 404 {object} util.Response "没有更多候选人"
// @Router /api/vacancies/{id}/next-candidate [get]
func (c *VacancyController) NextCandidate(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid vacancy id")
		return
	}

	candidate, err := c.VacancyService.NextCandidate(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrVacancyNotFound), errors.Is(err, util.ErrNoMoreCandidates):
			util.Error(ctx, 404, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, candidate)
}

// SelectCandidate godoc
// @Summary 选中候选人
// @Description 将候选人加入漏斗并标记为 SELECTED
// @Tags 职位
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Param   candidateId path string true "候选人ID"
// @Success 201 {object} util.Response{data=model.CandidatePool} "成功"
// @Failure 400 {object} util.Response "候选人已在漏斗中"
// @Router /api/vacancies/{id}/candidates/{candidateId}/select [post]
func (c *VacancyController) SelectCandidate(ctx *gin.Context) {
	c.reviewCandidate(ctx, c.VacancyService.SelectCandidate)
}

// SkipCandidate godoc
// @Summary 跳过候选人
// @Description 将候选人加入漏斗并标记为 VIEWED，之后可再筛
// @Tags 职位
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Param   candidateId path string true "候选人ID"
// @Success 201 {object} util.Response{data=model.CandidatePool} "成功"
// @Failure 400 {object} util.Response "候选人已在漏斗中"
// @Router /api/vacancies/{id}/candidates/{candidateId}/skip [post]
func (c *VacancyController) SkipCandidate(ctx *gin.Context) {
	c.reviewCandidate(ctx, c.VacancyService.SkipCandidate)
}

type RejectCandidateRequest struct {
	Comment string `json:"comment"`
}

// RejectCandidate godoc
// @Summary 拒绝候选人
// @Description 将候选人加入漏斗并标记为 REJECTED，可附拒绝原因
// @Tags 职位
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Param   candidateId path string true "候选人ID"
// @Param   body body RejectCandidateRequest false "拒绝原因"
// @Success 201 {object} util.Response{data=model.CandidatePool} "成功"
// @Failure 400 {object} util.Response "候选人已在漏斗中"
// @Router /api/vacancies/{id}/candidates/{candidateId}/reject [post]
func (c *VacancyController) RejectCandidate(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid vacancy id")
		return
	}

	var req RejectCandidateRequest
	_ = ctx.ShouldBindJSON(&req)

	entry, err := c.VacancyService.RejectCandidate(uint(id), ctx.Param("candidateId"), req.Comment)
	if err != nil {
		c.poolError(ctx, err)
		return
	}

	util.Created(ctx, entry)
}

func (c *VacancyController) reviewCandidate(ctx *gin.Context, apply func(uint, string) (*model.CandidatePool, error)) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid vacancy id")
		return
	}

	entry, err := apply(uint(id), ctx.Param("candidateId"))
	if err != nil {
		c.poolError(ctx, err)
		return
	}

	util.Created(ctx, entry)
}

func (c *VacancyController) poolError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrVacancyNotFound), errors.Is(err, util.ErrCandidateNotFound):
		util.Error(ctx, 404, err.Error())
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// UpdatePoolStatus godoc
// @Summary 更新漏斗状态
// @Description 推进候选人在漏斗中的状态，例如安排面试或发出 Offer
// @Tags 职位
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Param   poolId path int true "漏斗记录ID"
// @Param   body body service.PoolStatusUpdateRequest true "新状态"
// @Success 200 {object} util.Response{data=model.CandidatePool} "成功"
// @Failure 404 {object} util.Response "漏斗记录不存在"
// @Router /api/vacancies/{id}/pool/{poolId}/status [patch]
func (c *VacancyController) UpdatePoolStatus(ctx *gin.Context) {
	poolID, err := strconv.Atoi(ctx.Param("poolId"))
	if err != nil {
		util.BadRequest(ctx, "invalid pool id")
		return
	}

	var req service.PoolStatusUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.VacancyService.UpdatePoolStatus(uint(poolID), req)
	if err != nil {
		if errors.Is(err, util.ErrPoolEntryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, entry)
}

// SubmitInterviewFeedback godoc
// @Summary 提交面试反馈
// @Description 登记面试结论并流转漏斗状态：reject_globally/reject_team → REJECTED，freeze → INTERVIEWED，to_finalist → FINALIST
// @Tags 职位
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Param   poolId path int true "漏斗记录ID"
// @Param   body body service.InterviewFeedbackRequest true "反馈内容"
// @Success 201 {object} util.Response{data=model.InterviewFeedback} "创建成功"
// @Failure 400 {object} util.Response "已有反馈或记录不属于该职位"
// @Failure 404 {object} util.Response "漏斗记录不存在"
// @Router /api/vacancies/{id}/pool/{poolId}/feedback [post]
func (c *VacancyController) SubmitInterviewFeedback(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid vacancy id")
		return
	}
	poolID, err := strconv.Atoi(ctx.Param("poolId"))
	if err != nil {
		util.BadRequest(ctx, "invalid pool id")
		return
	}

	var req service.InterviewFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.VacancyService.SubmitInterviewFeedback(uint(id), uint(poolID), req)
	if err != nil {
		if errors.Is(err, util.ErrPoolEntryNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, feedback)
}

// GetInterviewFeedback godoc
// @Summary 获取面试反馈
// @Tags 职位
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "职位ID"
// @Param   poolId path int true "漏斗记录ID"
// @Success 200 {object} util.Response{data=model.InterviewFeedback} "成功"
// @Failure 404 {object} util.Response "反馈不存在"
// @Router /api/vacancies/{id}/pool/{poolId}/feedback [get]
func (c *VacancyController) GetInterviewFeedback(ctx *gin.Context) {
	poolID, err := strconv.Atoi(ctx.Param("poolId"))
	if err != nil {
		util.BadRequest(ctx, "invalid pool id")
		return
	}

	feedback, err := c.VacancyService.GetInterviewFeedback(uint(poolID))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, feedback)
}
