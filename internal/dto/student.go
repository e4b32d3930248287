package dto

// ── 学生模块 DTO ──

// StudentResponse 学生详情响应
type StudentResponse struct {
	StudentID   string   `json:"student_id"`
	SID         string   `json:"sid"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	SchoolYear  string   `json:"school_year"`
	GPA         *float64 `json:"gpa,omitempty"`
	CurrentTerm *string  `json:"current_term,omitempty"`
	MajorID     *string  `json:"major_id,omitempty"`
	MajorName   string   `json:"major_name,omitempty"`
}

// UpdateStudentRequest 编辑学生信息请求
// 仅更新显式给出的字段，缺省字段保持原值；该操作不会失败
type UpdateStudentRequest struct {
	SID         *string  `json:"sid"`
	Name        *string  `json:"name"`
	SchoolYear  *string  `json:"school_year"`
	GPA         *float64 `json:"gpa"`
	CurrentTerm *string  `json:"current_term"`
}

// AssignMajorRequest 为学生指定专业
type AssignMajorRequest struct {
	MajorID string `json:"major_id" binding:"required,uuid"`
}

// SetCourseStatusRequest 标记课程为已修/在修
type SetCourseStatusRequest struct {
	Code   string `json:"code"   binding:"required"`
	Status string `json:"status" binding:"required,oneof=taken current"`
}

// ProgressResponse 学生修读进度响应
type ProgressResponse struct {
	Taken      []string `json:"taken"`
	InProgress []string `json:"in_progress"`
}

// ImportTimetableResponse ICS 课表导入结果
type ImportTimetableResponse struct {
	MatchedCourses []string `json:"matched_courses"` // 识别并标记为在修的课程
	MeetingsAdded  int      `json:"meetings_added"`  // 补录的每周时段数
	SkippedEvents  []string `json:"skipped_events,omitempty"`
}
