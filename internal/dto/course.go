package dto

// ── 课程目录模块 DTO ──

// MeetingBlock 每周上课时段（分钟计的半开区间）
type MeetingBlock struct {
	DayOfWeek int `json:"day_of_week" binding:"min=1,max=7"`
	StartMin  int `json:"start_min"   binding:"min=0,max=1439"`
	EndMin    int `json:"end_min"     binding:"min=1,max=1440"`
}

// AddCourseRequest 新增课程请求
// 除 code/title 外均为可选，缺省按"未知"处理（学分 nil、难度 0、时段空）
type AddCourseRequest struct {
	Code         string         `json:"code"  binding:"required"`
	Title        string         `json:"title" binding:"required"`
	Description  string         `json:"description"`
	Credit       *float64       `json:"credit"`
	Difficulty   float64        `json:"difficulty"    binding:"omitempty,min=0,max=4"`
	Requirements []string       `json:"requirements"`  // 先修课程代码
	TermsOffered []string       `json:"terms_offered"` // Fall / Spring / Summer
	Meetings     []MeetingBlock `json:"meetings"`
}

// UpdateCourseRequest 编辑课程请求
// 封闭字段集合：仅显式给出的字段被更新，"未知字段"在编译期即不可能出现
type UpdateCourseRequest struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	Credit       *float64        `json:"credit"`
	Difficulty   *float64        `json:"difficulty" binding:"omitempty,min=0,max=4"`
	Requirements *[]string       `json:"requirements"`
	TermsOffered *[]string       `json:"terms_offered"`
	Meetings     *[]MeetingBlock `json:"meetings"`
}

// CourseResponse 课程详情响应
type CourseResponse struct {
	Code         string         `json:"code"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Credit       *float64       `json:"credit,omitempty"`
	Difficulty   float64        `json:"difficulty"`
	Requirements []string       `json:"requirements"`
	TermsOffered []string       `json:"terms_offered"`
	Meetings     []MeetingBlock `json:"meetings"`
}

// ImportCoursesRequest 批量导入请求（采集器输出的原始记录列表）
type ImportCoursesRequest struct {
	Courses []AddCourseRequest `json:"courses" binding:"required,dive"`
}

// ImportCoursesResponse 批量导入结果
type ImportCoursesResponse struct {
	ImportedCount int              `json:"imported_count"`
	Failures      []ImportFailure  `json:"failures,omitempty"`
}

// ImportFailure 单条导入失败明细
type ImportFailure struct {
	Index  int    `json:"index"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}
