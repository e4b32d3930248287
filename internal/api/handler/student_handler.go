package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ROYBRUNO81/Course-Planner/internal/dto"
	"github.com/ROYBRUNO81/Course-Planner/internal/service"
	"github.com/ROYBRUNO81/Course-Planner/pkg/response"
)

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// GetMe 查询当前学生详情
// GET /api/v1/students/me
func (h *StudentHandler) GetMe(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.studentSvc.GetStudent(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 14001, "学生不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateMe 编辑当前学生信息
// PATCH /api/v1/students/me
func (h *StudentHandler) UpdateMe(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.studentSvc.EditStudentInfo(c.Request.Context(), studentID, &req)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 14001, "学生不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// AssignMajor 为当前学生指定专业
// PUT /api/v1/students/me/major
func (h *StudentHandler) AssignMajor(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.AssignMajorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.studentSvc.AssignMajor(c.Request.Context(), studentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 14001, "学生不存在")
		case errors.Is(err, service.ErrMajorNotFound):
			response.NotFound(c, 13003, "专业不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// SetCourseStatus 标记课程为已修/在修
// PUT /api/v1/students/me/courses
func (h *StudentHandler) SetCourseStatus(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.SetCourseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.studentSvc.SetCourseStatus(c.Request.Context(), studentID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, 14002, "课程状态无效")
		case errors.Is(err, service.ErrCourseNotInCatalog):
			response.BadRequest(c, 13002, "课程不在目录中")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// RemoveCourse 撤销已修/在修标记
// DELETE /api/v1/students/me/courses/:code
func (h *StudentHandler) RemoveCourse(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.studentSvc.RemoveCourse(c.Request.Context(), studentID, c.Param("code")); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetProgress 查询修读进度
// GET /api/v1/students/me/progress
func (h *StudentHandler) GetProgress(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.studentSvc.GetProgress(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ImportTimetable 导入 ICS 课表
// POST /api/v1/students/me/timetable
// 请求体为 multipart 文件字段 "file"，或直接的 text/calendar 内容
func (h *StudentHandler) ImportTimetable(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	reader := c.Request.Body
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			response.BadRequest(c, 14003, "课表文件读取失败")
			return
		}
		defer f.Close()
		reader = f
	}

	result, err := h.studentSvc.ImportTimetable(c.Request.Context(), studentID, reader)
	if err != nil {
		if errors.Is(err, service.ErrTimetableInvalid) {
			response.BadRequest(c, 14004, "课表文件解析失败")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
