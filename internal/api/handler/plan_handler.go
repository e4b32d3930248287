package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ROYBRUNO81/Course-Planner/internal/dto"
	"github.com/ROYBRUNO81/Course-Planner/internal/planner"
	"github.com/ROYBRUNO81/Course-Planner/internal/service"
	"github.com/ROYBRUNO81/Course-Planner/pkg/response"
)

// PlanHandler 规划模块 HTTP 处理器
type PlanHandler struct {
	planSvc service.PlanService
}

// NewPlanHandler 创建 PlanHandler
func NewPlanHandler(planSvc service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// Generate 生成/续排规划
// POST /api/v1/plan/generate
func (h *PlanHandler) Generate(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.planSvc.GeneratePlan(c.Request.Context(), studentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNoMajor):
			response.BadRequest(c, 15001, "请先指定专业")
		case errors.Is(err, service.ErrPlanCorrupted):
			response.Conflict(c, 15002, "先修依赖存在环，请联系管理员修正目录")
		case errors.Is(err, planner.ErrInvalidStartIndex):
			response.BadRequest(c, 15003, "起始学期下标越界")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Get 读取当前规划
// GET /api/v1/plan
func (h *PlanHandler) Get(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.planSvc.GetPlan(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Clear 清除指定学期起的规划
// DELETE /api/v1/plan?from=2
func (h *PlanHandler) Clear(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	fromIndex, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		response.BadRequest(c, 10001, "from 参数无效")
		return
	}

	if err := h.planSvc.ClearPlanFrom(c.Request.Context(), studentID, fromIndex); err != nil {
		if errors.Is(err, planner.ErrInvalidStartIndex) {
			response.BadRequest(c, 15003, "起始学期下标越界")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
