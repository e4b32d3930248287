package service

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ROYBRUNO81/Course-Planner/internal/dto"
	"github.com/ROYBRUNO81/Course-Planner/internal/model"
	"github.com/ROYBRUNO81/Course-Planner/internal/repository"
)

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound  = errors.New("学生不存在")
	ErrInvalidStatus    = errors.New("课程状态无效")
	ErrTimetableInvalid = errors.New("课表文件解析失败")
)

// StudentService 学生业务接口
type StudentService interface {
	// GetStudent 查询学生详情
	GetStudent(ctx context.Context, studentID string) (*dto.StudentResponse, error)
	// EditStudentInfo 部分更新学生信息；仅更新给出的字段，本操作不产生业务失败
	EditStudentInfo(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	// AssignMajor 为学生指定专业
	AssignMajor(ctx context.Context, studentID string, req *dto.AssignMajorRequest) (*dto.StudentResponse, error)
	// SetCourseStatus 标记课程已修/在修（同课程重复标记取最后一次）
	SetCourseStatus(ctx context.Context, studentID string, req *dto.SetCourseStatusRequest) error
	// RemoveCourse 撤销已修/在修标记
	RemoveCourse(ctx context.Context, studentID, code string) error
	// GetProgress 查询修读进度（已修 / 在修两个集合）
	GetProgress(ctx context.Context, studentID string) (*dto.ProgressResponse, error)
	// ImportTimetable 解析 ICS 课表：识别出的课程标记为在修，
	// 目录中缺失时段的课程补录每周时段
	ImportTimetable(ctx context.Context, studentID string, r io.Reader) (*dto.ImportTimetableResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// 查询与编辑
// ════════════════════════════════════════════════════════════

func (s *studentService) GetStudent(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

func (s *studentService) EditStudentInfo(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.SID != nil {
		student.SID = *req.SID
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.SchoolYear != nil {
		student.SchoolYear = *req.SchoolYear
	}
	if req.GPA != nil {
		student.GPA = req.GPA
	}
	if req.CurrentTerm != nil {
		student.CurrentTerm = req.CurrentTerm
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新学生信息失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

func (s *studentService) AssignMajor(ctx context.Context, studentID string, req *dto.AssignMajorRequest) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	major, err := s.repo.Major.GetByID(ctx, req.MajorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMajorNotFound
		}
		s.logger.Error("查询专业失败", zap.Error(err))
		return nil, err
	}

	student.MajorID = &major.MajorID
	student.Major = major
	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("指定专业失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// 修读进度
// ════════════════════════════════════════════════════════════

func (s *studentService) SetCourseStatus(ctx context.Context, studentID string, req *dto.SetCourseStatusRequest) error {
	if req.Status != model.CourseStatusTaken && req.Status != model.CourseStatusCurrent {
		return ErrInvalidStatus
	}

	code := NormalizeCourseCode(req.Code)
	if _, err := s.repo.Course.GetByCode(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotInCatalog
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return err
	}

	sc := &model.StudentCourse{
		StudentID:  studentID,
		CourseCode: code,
		Status:     req.Status,
	}
	if err := s.repo.Student.SetCourseStatus(ctx, sc); err != nil {
		s.logger.Error("标记课程状态失败",
			zap.String("student_id", studentID), zap.String("code", code), zap.Error(err))
		return err
	}
	return nil
}

func (s *studentService) RemoveCourse(ctx context.Context, studentID, code string) error {
	if err := s.repo.Student.RemoveCourse(ctx, studentID, NormalizeCourseCode(code)); err != nil {
		s.logger.Error("撤销课程标记失败", zap.String("student_id", studentID), zap.Error(err))
		return err
	}
	return nil
}

func (s *studentService) GetProgress(ctx context.Context, studentID string) (*dto.ProgressResponse, error) {
	courses, err := s.repo.Student.ListCourses(ctx, studentID)
	if err != nil {
		s.logger.Error("查询修读进度失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	resp := &dto.ProgressResponse{
		Taken:      []string{},
		InProgress: []string{},
	}
	for _, sc := range courses {
		switch sc.Status {
		case model.CourseStatusTaken:
			resp.Taken = append(resp.Taken, sc.CourseCode)
		case model.CourseStatusCurrent:
			resp.InProgress = append(resp.InProgress, sc.CourseCode)
		}
	}
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// ImportTimetable — ICS 课表导入
// ════════════════════════════════════════════════════════════

func (s *studentService) ImportTimetable(ctx context.Context, studentID string, r io.Reader) (*dto.ImportTimetableResponse, error) {
	events, err := ParseTimetableICS(r)
	if err != nil {
		return nil, ErrTimetableInvalid
	}

	// 按课程聚合事件，同一门课的多个每周时段一次性处理
	byCourse := make(map[string][]TimetableEvent)
	order := make([]string, 0, len(events))
	resp := &dto.ImportTimetableResponse{MatchedCourses: []string{}}
	for _, ev := range events {
		if ev.CourseCode == "" {
			resp.SkippedEvents = append(resp.SkippedEvents, ev.Summary)
			continue
		}
		if _, ok := byCourse[ev.CourseCode]; !ok {
			order = append(order, ev.CourseCode)
		}
		byCourse[ev.CourseCode] = append(byCourse[ev.CourseCode], ev)
	}

	for _, code := range order {
		evs := byCourse[code]
		course, err := s.repo.Course.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				resp.SkippedEvents = append(resp.SkippedEvents, evs[0].Summary)
				continue
			}
			s.logger.Error("查询课程失败", zap.Error(err))
			return nil, err
		}

		sc := &model.StudentCourse{
			StudentID:  studentID,
			CourseCode: code,
			Status:     model.CourseStatusCurrent,
		}
		if err := s.repo.Student.SetCourseStatus(ctx, sc); err != nil {
			s.logger.Error("标记在修课程失败", zap.String("code", code), zap.Error(err))
			return nil, err
		}
		resp.MatchedCourses = append(resp.MatchedCourses, code)

		// 目录里该课程尚无时段记录时，用课表事件补录
		if len(course.Meetings) > 0 {
			continue
		}
		meetings := make([]model.CourseMeeting, 0, len(evs))
		for _, ev := range evs {
			meetings = append(meetings, model.CourseMeeting{
				CourseCode: code,
				DayOfWeek:  ev.DayOfWeek,
				StartMin:   ev.StartMin,
				EndMin:     ev.EndMin,
			})
		}
		if err := s.repo.Course.AddMeetings(ctx, meetings); err != nil {
			s.logger.Error("补录上课时段失败", zap.String("code", code), zap.Error(err))
			return nil, err
		}
		resp.MeetingsAdded += len(meetings)
	}
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// 内部辅助
// ════════════════════════════════════════════════════════════

func (s *studentService) getStudent(ctx context.Context, studentID string) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return student, nil
}

func toStudentResponse(student *model.Student) dto.StudentResponse {
	resp := dto.StudentResponse{
		StudentID:   student.StudentID,
		SID:         student.SID,
		Name:        student.Name,
		Email:       student.Email,
		Role:        student.Role,
		SchoolYear:  student.SchoolYear,
		GPA:         student.GPA,
		CurrentTerm: student.CurrentTerm,
		MajorID:     student.MajorID,
	}
	if student.Major != nil {
		resp.MajorName = student.Major.Name
	}
	return resp
}
