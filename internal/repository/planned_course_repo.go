package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ROYBRUNO81/Course-Planner/internal/model"
)

// PlannedCourseRepository 规划网格数据访问接口
type PlannedCourseRepository interface {
	// ListByStudent 按 (semester_index, position) 升序返回学生的完整网格
	ListByStudent(ctx context.Context, studentID string) ([]model.PlannedCourse, error)
	// BatchCreate 追加一批放置结果（规划只追加，不改写已有单元）
	BatchCreate(ctx context.Context, placements []model.PlannedCourse) error
	// DeleteFrom 清空某学期（含）之后的网格单元，供手动重排使用
	DeleteFrom(ctx context.Context, studentID string, fromIndex int) error
}

type plannedCourseRepo struct {
	db *gorm.DB
}

// NewPlannedCourseRepo 创建 PlannedCourseRepository 实例
func NewPlannedCourseRepo(db *gorm.DB) PlannedCourseRepository {
	return &plannedCourseRepo{db: db}
}

func (r *plannedCourseRepo) ListByStudent(ctx context.Context, studentID string) ([]model.PlannedCourse, error) {
	var placements []model.PlannedCourse
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("semester_index, position").
		Find(&placements).Error
	return placements, err
}

func (r *plannedCourseRepo) BatchCreate(ctx context.Context, placements []model.PlannedCourse) error {
	if len(placements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&placements).Error
}

func (r *plannedCourseRepo) DeleteFrom(ctx context.Context, studentID string, fromIndex int) error {
	return r.db.WithContext(ctx).
		Where("student_id = ? AND semester_index >= ?", studentID, fromIndex).
		Delete(&model.PlannedCourse{}).Error
}
