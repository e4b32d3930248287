package dto

// ── 规划模块 DTO ──

// GeneratePlanRequest 生成规划请求
type GeneratePlanRequest struct {
	// StartIndex 从该学期槽位（含）开始放置，之前的槽位不动
	StartIndex int `json:"start_index" binding:"min=0"`
	// EnforcePrereqOrder 覆盖全局配置；nil 时取配置默认值
	EnforcePrereqOrder *bool `json:"enforce_prereq_order"`
}

// PlanSemester 单个学期槽位
type PlanSemester struct {
	Index             int      `json:"index"`
	Term              string   `json:"term"` // Fall / Spring 交替
	Courses           []string `json:"courses"`
	AverageDifficulty float64  `json:"average_difficulty"`
}

// PlanResponse 规划网格响应
type PlanResponse struct {
	Semesters         []PlanSemester `json:"semesters"`
	AverageDifficulty float64        `json:"average_difficulty"` // 各学期平均难度的均值
	Skipped           []string       `json:"skipped,omitempty"`  // 本轮未能放置的课程
}
