package dto

// ── 专业模块 DTO ──

// CreateMajorRequest 创建专业请求
type CreateMajorRequest struct {
	Name    string   `json:"name" binding:"required,min=2,max=100"`
	Courses []string `json:"courses"` // 初始要求课程代码，可为空
}

// AddMajorCourseRequest 向专业追加要求课程
type AddMajorCourseRequest struct {
	Code string `json:"code" binding:"required"`
}

// MajorResponse 专业详情响应
type MajorResponse struct {
	MajorID        string   `json:"major_id"`
	Name           string   `json:"name"`
	CreditRequired float64  `json:"credit_required"`
	Courses        []string `json:"courses"`
}
