package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ROYBRUNO81/Course-Planner/internal/dto"
	"github.com/ROYBRUNO81/Course-Planner/internal/service"
	"github.com/ROYBRUNO81/Course-Planner/pkg/response"
)

// MajorHandler 专业模块 HTTP 处理器
type MajorHandler struct {
	majorSvc service.MajorService
}

// NewMajorHandler 创建 MajorHandler
func NewMajorHandler(majorSvc service.MajorService) *MajorHandler {
	return &MajorHandler{majorSvc: majorSvc}
}

// Create 创建专业
// POST /api/v1/majors
func (h *MajorHandler) Create(c *gin.Context) {
	var req dto.CreateMajorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.majorSvc.CreateMajor(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMajorExists):
			response.Conflict(c, 13001, "专业名称已存在")
		case errors.Is(err, service.ErrCourseNotInCatalog):
			response.BadRequest(c, 13002, "要求课程不在目录中")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// AddCourse 向专业追加要求课程
// POST /api/v1/majors/:id/courses
func (h *MajorHandler) AddCourse(c *gin.Context) {
	var req dto.AddMajorCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.majorSvc.AddMajorCourse(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMajorNotFound):
			response.NotFound(c, 13003, "专业不存在")
		case errors.Is(err, service.ErrCourseNotInCatalog):
			response.BadRequest(c, 13002, "课程不在目录中")
		case errors.Is(err, service.ErrCourseAlreadyInMajor):
			response.Conflict(c, 13004, "课程已是该专业要求")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Get 查询单个专业
// GET /api/v1/majors/:id
func (h *MajorHandler) Get(c *gin.Context) {
	result, err := h.majorSvc.GetMajor(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMajorNotFound) {
			response.NotFound(c, 13003, "专业不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List 专业列表
// GET /api/v1/majors
func (h *MajorHandler) List(c *gin.Context) {
	result, err := h.majorSvc.ListMajors(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
