package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ROYBRUNO81/Course-Planner/internal/dto"
	"github.com/ROYBRUNO81/Course-Planner/internal/service"
	"github.com/ROYBRUNO81/Course-Planner/pkg/response"
)

// CourseHandler 课程目录模块 HTTP 处理器
type CourseHandler struct {
	catalogSvc service.CatalogService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(catalogSvc service.CatalogService) *CourseHandler {
	return &CourseHandler{catalogSvc: catalogSvc}
}

// Create 新增课程
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.AddCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.AddCourse(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseCodeRequired):
			response.BadRequest(c, 12001, "课程代码不能为空")
		case errors.Is(err, service.ErrCourseExists):
			response.Conflict(c, 12002, "课程代码已存在")
		case errors.Is(err, service.ErrInvalidMeeting), errors.Is(err, service.ErrInvalidTerm):
			response.BadRequest(c, 12003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Update 编辑课程
// PATCH /api/v1/courses/:code
func (h *CourseHandler) Update(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.EditCourse(c.Request.Context(), c.Param("code"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 12004, "课程不存在")
		case errors.Is(err, service.ErrInvalidMeeting), errors.Is(err, service.ErrInvalidTerm):
			response.BadRequest(c, 12003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Get 查询单门课程
// GET /api/v1/courses/:code
func (h *CourseHandler) Get(c *gin.Context) {
	result, err := h.catalogSvc.GetCourse(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 12004, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List 课程目录列表
// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	result, err := h.catalogSvc.ListCourses(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Import 批量导入课程
// POST /api/v1/courses/import
func (h *CourseHandler) Import(c *gin.Context) {
	var req dto.ImportCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.ImportCourses(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
