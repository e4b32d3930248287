package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/ROYBRUNO81/Course-Planner/internal/model"
	"github.com/ROYBRUNO81/Course-Planner/internal/repository"
)

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	majors  *mockMajorRepo // ApplyEdit 的学分联动写入
}

func newMockCourseRepo(majors *mockMajorRepo) *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course), majors: majors}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	m.courses[course.CourseCode] = course
	return nil
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	if c, ok := m.courses[code]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Exists(_ context.Context, code string) (bool, error) {
	_, ok := m.courses[code]
	return ok, nil
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	codes := make([]string, 0, len(m.courses))
	for code := range m.courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	result := make([]model.Course, 0, len(codes))
	for _, code := range codes {
		result = append(result, *m.courses[code])
	}
	return result, nil
}

func (m *mockCourseRepo) ApplyEdit(_ context.Context, course *model.Course, prereqs *[]model.CoursePrerequisite, meetings *[]model.CourseMeeting, majorCredits map[string]float64) error {
	stored, ok := m.courses[course.CourseCode]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	next := *course
	next.Prerequisites = stored.Prerequisites
	next.Meetings = stored.Meetings
	if prereqs != nil {
		next.Prerequisites = *prereqs
	}
	if meetings != nil {
		next.Meetings = *meetings
	}
	m.courses[course.CourseCode] = &next
	for majorID, credit := range majorCredits {
		mj, ok := m.majors.majors[majorID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		mj.CreditRequired = credit
	}
	return nil
}

func (m *mockCourseRepo) AddMeetings(_ context.Context, meetings []model.CourseMeeting) error {
	for _, mt := range meetings {
		c, ok := m.courses[mt.CourseCode]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		c.Meetings = append(c.Meetings, mt)
	}
	return nil
}

// ── Mock MajorRepository ──

type mockMajorRepo struct {
	majors map[string]*model.Major
}

func newMockMajorRepo() *mockMajorRepo {
	return &mockMajorRepo{majors: make(map[string]*model.Major)}
}

func (m *mockMajorRepo) Create(_ context.Context, major *model.Major) error {
	if major.MajorID == "" {
		major.MajorID = "major-" + major.Name
	}
	m.majors[major.MajorID] = major
	return nil
}

func (m *mockMajorRepo) GetByID(_ context.Context, id string) (*model.Major, error) {
	if mj, ok := m.majors[id]; ok {
		return mj, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMajorRepo) GetByName(_ context.Context, name string) (*model.Major, error) {
	for _, mj := range m.majors {
		if mj.Name == name {
			return mj, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMajorRepo) List(_ context.Context) ([]model.Major, error) {
	var result []model.Major
	for _, mj := range m.majors {
		result = append(result, *mj)
	}
	return result, nil
}

func (m *mockMajorRepo) AddCourse(_ context.Context, majorID, courseCode string, newCreditRequired float64) error {
	mj, ok := m.majors[majorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mj.Courses = append(mj.Courses, model.MajorCourse{MajorID: majorID, CourseCode: courseCode})
	mj.CreditRequired = newCreditRequired
	return nil
}

func (m *mockMajorRepo) HasCourse(_ context.Context, majorID, courseCode string) (bool, error) {
	mj, ok := m.majors[majorID]
	if !ok {
		return false, nil
	}
	for _, mc := range mj.Courses {
		if mc.CourseCode == courseCode {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMajorRepo) UpdateCreditRequired(_ context.Context, majorID string, creditRequired float64) error {
	mj, ok := m.majors[majorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mj.CreditRequired = creditRequired
	return nil
}

func (m *mockMajorRepo) ListContainingCourse(_ context.Context, courseCode string) ([]model.Major, error) {
	var result []model.Major
	for _, mj := range m.majors {
		for _, mc := range mj.Courses {
			if mc.CourseCode == courseCode {
				result = append(result, *mj)
				break
			}
		}
	}
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	courses  map[string]map[string]string // studentID → courseCode → status
	nextID   int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{
		students: make(map[string]*model.Student),
		courses:  make(map[string]map[string]string),
	}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		m.nextID++
		student.StudentID = fmt.Sprintf("stu-%d", m.nextID)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetBySID(_ context.Context, sid string) (*model.Student, error) {
	for _, s := range m.students {
		if s.SID == sid {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	if _, ok := m.students[student.StudentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) SetCourseStatus(_ context.Context, sc *model.StudentCourse) error {
	if m.courses[sc.StudentID] == nil {
		m.courses[sc.StudentID] = make(map[string]string)
	}
	m.courses[sc.StudentID][sc.CourseCode] = sc.Status
	return nil
}

func (m *mockStudentRepo) RemoveCourse(_ context.Context, studentID, courseCode string) error {
	delete(m.courses[studentID], courseCode)
	return nil
}

func (m *mockStudentRepo) ListCourses(_ context.Context, studentID string) ([]model.StudentCourse, error) {
	codes := make([]string, 0, len(m.courses[studentID]))
	for code := range m.courses[studentID] {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	result := make([]model.StudentCourse, 0, len(codes))
	for _, code := range codes {
		result = append(result, model.StudentCourse{
			StudentID:  studentID,
			CourseCode: code,
			Status:     m.courses[studentID][code],
		})
	}
	return result, nil
}

// ── Mock PlannedCourseRepository ──

type mockPlannedCourseRepo struct {
	rows []model.PlannedCourse
}

func newMockPlannedCourseRepo() *mockPlannedCourseRepo {
	return &mockPlannedCourseRepo{}
}

func (m *mockPlannedCourseRepo) ListByStudent(_ context.Context, studentID string) ([]model.PlannedCourse, error) {
	var result []model.PlannedCourse
	for _, row := range m.rows {
		if row.StudentID == studentID {
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SemesterIndex != result[j].SemesterIndex {
			return result[i].SemesterIndex < result[j].SemesterIndex
		}
		return result[i].Position < result[j].Position
	})
	return result, nil
}

func (m *mockPlannedCourseRepo) BatchCreate(_ context.Context, placements []model.PlannedCourse) error {
	m.rows = append(m.rows, placements...)
	return nil
}

func (m *mockPlannedCourseRepo) DeleteFrom(_ context.Context, studentID string, fromIndex int) error {
	kept := m.rows[:0]
	for _, row := range m.rows {
		if row.StudentID == studentID && row.SemesterIndex >= fromIndex {
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return nil
}

// ── 测试辅助 ──

func newTestRepository() *repository.Repository {
	majors := newMockMajorRepo()
	return &repository.Repository{
		Course:        newMockCourseRepo(majors),
		Major:         majors,
		Student:       newMockStudentRepo(),
		PlannedCourse: newMockPlannedCourseRepo(),
	}
}
