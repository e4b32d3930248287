package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ROYBRUNO81/Course-Planner/internal/model"
)

// MajorRepository 专业数据访问接口
type MajorRepository interface {
	Create(ctx context.Context, major *model.Major) error
	GetByID(ctx context.Context, id string) (*model.Major, error)
	GetByName(ctx context.Context, name string) (*model.Major, error)
	List(ctx context.Context) ([]model.Major, error)
	// AddCourse 追加要求课程并同步 credit_required（同一事务）
	AddCourse(ctx context.Context, majorID, courseCode string, newCreditRequired float64) error
	HasCourse(ctx context.Context, majorID, courseCode string) (bool, error)
	UpdateCreditRequired(ctx context.Context, majorID string, creditRequired float64) error
	// ListContainingCourse 返回要求集合中包含指定课程的所有专业
	ListContainingCourse(ctx context.Context, courseCode string) ([]model.Major, error)
}

type majorRepo struct {
	db *gorm.DB
}

// NewMajorRepo 创建 MajorRepository 实例
func NewMajorRepo(db *gorm.DB) MajorRepository {
	return &majorRepo{db: db}
}

func (r *majorRepo) Create(ctx context.Context, major *model.Major) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		courses := major.Courses
		major.Courses = nil
		if err := tx.Create(major).Error; err != nil {
			return err
		}
		if len(courses) > 0 {
			for i := range courses {
				courses[i].MajorID = major.MajorID
			}
			if err := tx.Create(&courses).Error; err != nil {
				return err
			}
		}
		major.Courses = courses
		return nil
	})
}

func (r *majorRepo) GetByID(ctx context.Context, id string) (*model.Major, error) {
	var major model.Major
	err := r.db.WithContext(ctx).
		Preload("Courses").
		Where("major_id = ?", id).
		First(&major).Error
	if err != nil {
		return nil, err
	}
	return &major, nil
}

func (r *majorRepo) GetByName(ctx context.Context, name string) (*model.Major, error) {
	var major model.Major
	err := r.db.WithContext(ctx).
		Preload("Courses").
		Where("name = ?", name).
		First(&major).Error
	if err != nil {
		return nil, err
	}
	return &major, nil
}

func (r *majorRepo) List(ctx context.Context) ([]model.Major, error) {
	var majors []model.Major
	err := r.db.WithContext(ctx).
		Preload("Courses").
		Order("name").
		Find(&majors).Error
	return majors, err
}

func (r *majorRepo) AddCourse(ctx context.Context, majorID, courseCode string, newCreditRequired float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mc := model.MajorCourse{MajorID: majorID, CourseCode: courseCode}
		if err := tx.Create(&mc).Error; err != nil {
			return err
		}
		return tx.Model(&model.Major{}).
			Where("major_id = ?", majorID).
			Update("credit_required", newCreditRequired).Error
	})
}

func (r *majorRepo) HasCourse(ctx context.Context, majorID, courseCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MajorCourse{}).
		Where("major_id = ? AND course_code = ?", majorID, courseCode).
		Count(&count).Error
	return count > 0, err
}

func (r *majorRepo) UpdateCreditRequired(ctx context.Context, majorID string, creditRequired float64) error {
	return r.db.WithContext(ctx).
		Model(&model.Major{}).
		Where("major_id = ?", majorID).
		Update("credit_required", creditRequired).Error
}

func (r *majorRepo) ListContainingCourse(ctx context.Context, courseCode string) ([]model.Major, error) {
	var majors []model.Major
	err := r.db.WithContext(ctx).
		Preload("Courses").
		Joins("JOIN major_courses mc ON mc.major_id = majors.major_id").
		Where("mc.course_code = ?", courseCode).
		Find(&majors).Error
	return majors, err
}
