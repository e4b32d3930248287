package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ROYBRUNO81/Course-Planner/config"
	"github.com/ROYBRUNO81/Course-Planner/internal/dto"
	"github.com/ROYBRUNO81/Course-Planner/internal/model"
	"github.com/ROYBRUNO81/Course-Planner/internal/planner"
	"github.com/ROYBRUNO81/Course-Planner/internal/repository"
)

// ── 规划模块业务错误 ──

var (
	ErrStudentNoMajor = errors.New("学生尚未指定专业")
	ErrPlanCorrupted  = errors.New("先修依赖存在环，目录数据损坏")
)

// PlanService 规划业务接口
//
// 引擎本身是纯内存计算（internal/planner），本服务负责装配输入
// （目录、专业要求、修读进度、既有网格）并持久化新增的放置。
type PlanService interface {
	// GeneratePlan 为学生生成/续排规划，StartIndex 之前的槽位不动
	GeneratePlan(ctx context.Context, studentID string, req *dto.GeneratePlanRequest) (*dto.PlanResponse, error)
	// GetPlan 读取当前规划网格
	GetPlan(ctx context.Context, studentID string) (*dto.PlanResponse, error)
	// ClearPlanFrom 清除 fromIndex（含）之后的所有放置，便于重排
	ClearPlanFrom(ctx context.Context, studentID string, fromIndex int) error
}

type planService struct {
	repo   *repository.Repository
	cfg    *config.PlanConfig
	logger *zap.Logger
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(repo *repository.Repository, cfg *config.PlanConfig, logger *zap.Logger) PlanService {
	return &planService{repo: repo, cfg: cfg, logger: logger}
}

// ════════════════════════════════════════════════════════════
// GeneratePlan
// ════════════════════════════════════════════════════════════

func (s *planService) GeneratePlan(ctx context.Context, studentID string, req *dto.GeneratePlanRequest) (*dto.PlanResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}
	if student.Major == nil {
		return nil, ErrStudentNoMajor
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	majorCourses := make(map[string]struct{}, len(student.Major.Courses))
	for _, mc := range student.Major.Courses {
		majorCourses[mc.CourseCode] = struct{}{}
	}

	taken, inProgress, err := s.loadProgress(ctx, studentID)
	if err != nil {
		return nil, err
	}

	grid, err := s.loadGrid(ctx, studentID)
	if err != nil {
		return nil, err
	}

	enforce := s.cfg.EnforcePrereqOrder
	if req.EnforcePrereqOrder != nil {
		enforce = *req.EnforcePrereqOrder
	}

	result, err := planner.GeneratePlan(planner.Request{
		Catalog:            catalog,
		MajorCourses:       majorCourses,
		Taken:              taken,
		InProgress:         inProgress,
		Grid:               grid,
		StartIndex:         req.StartIndex,
		EnforcePrereqOrder: enforce,
	})
	if err != nil {
		if errors.Is(err, planner.ErrCyclicPrerequisites) {
			s.logger.Error("先修依赖存在环", zap.String("student_id", studentID), zap.Error(err))
			return nil, ErrPlanCorrupted
		}
		return nil, err
	}

	// 持久化本次新增的放置（追加式，不改写已有单元）
	if len(result.Placements) > 0 {
		placements := make([]model.PlannedCourse, 0, len(result.Placements))
		for _, p := range result.Placements {
			placements = append(placements, model.PlannedCourse{
				StudentID:     studentID,
				SemesterIndex: p.SemesterIndex,
				Position:      p.Position,
				CourseCode:    p.CourseCode,
			})
		}
		if err := s.repo.PlannedCourse.BatchCreate(ctx, placements); err != nil {
			s.logger.Error("保存规划放置失败", zap.String("student_id", studentID), zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("规划完成",
		zap.String("student_id", studentID),
		zap.Int("placed", len(result.Placements)),
		zap.Int("skipped", len(result.Skipped)))

	return buildPlanResponse(result.Grid, catalog, result.Skipped), nil
}

// ════════════════════════════════════════════════════════════
// GetPlan / ClearPlanFrom
// ════════════════════════════════════════════════════════════

func (s *planService) GetPlan(ctx context.Context, studentID string) (*dto.PlanResponse, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	grid, err := s.loadGrid(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return buildPlanResponse(grid, catalog, nil), nil
}

func (s *planService) ClearPlanFrom(ctx context.Context, studentID string, fromIndex int) error {
	if fromIndex < 0 {
		return planner.ErrInvalidStartIndex
	}
	if err := s.repo.PlannedCourse.DeleteFrom(ctx, studentID, fromIndex); err != nil {
		s.logger.Error("清除规划失败", zap.String("student_id", studentID), zap.Error(err))
		return err
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// 输入装配
// ════════════════════════════════════════════════════════════

// loadCatalog 将课程目录整张表装配为引擎视角的 Catalog
func (s *planService) loadCatalog(ctx context.Context) (planner.Catalog, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("加载课程目录失败", zap.Error(err))
		return nil, err
	}
	catalog := make(planner.Catalog, len(courses))
	for i := range courses {
		catalog[courses[i].CourseCode] = toPlannerCourse(&courses[i])
	}
	return catalog, nil
}

func (s *planService) loadProgress(ctx context.Context, studentID string) (taken, inProgress map[string]struct{}, err error) {
	courses, err := s.repo.Student.ListCourses(ctx, studentID)
	if err != nil {
		s.logger.Error("加载修读进度失败", zap.Error(err))
		return nil, nil, err
	}
	taken = make(map[string]struct{})
	inProgress = make(map[string]struct{})
	for _, sc := range courses {
		switch sc.Status {
		case model.CourseStatusTaken:
			taken[sc.CourseCode] = struct{}{}
		case model.CourseStatusCurrent:
			inProgress[sc.CourseCode] = struct{}{}
		}
	}
	return taken, inProgress, nil
}

// loadGrid 从 planned_courses 还原固定长度的规划网格，
// 学期内按 Position 保序（仓储层已按主键排序返回）
func (s *planService) loadGrid(ctx context.Context, studentID string) ([][]string, error) {
	rows, err := s.repo.PlannedCourse.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("加载规划网格失败", zap.Error(err))
		return nil, err
	}
	grid := make([][]string, s.cfg.Semesters)
	for i := range grid {
		grid[i] = []string{}
	}
	for _, row := range rows {
		if row.SemesterIndex < 0 || row.SemesterIndex >= len(grid) {
			continue
		}
		grid[row.SemesterIndex] = append(grid[row.SemesterIndex], row.CourseCode)
	}
	return grid, nil
}

// toPlannerCourse 持久化模型 → 引擎课程
func toPlannerCourse(course *model.Course) *planner.Course {
	reqs := make([]string, 0, len(course.Prerequisites))
	for _, p := range course.Prerequisites {
		reqs = append(reqs, p.PrereqCode)
	}
	terms := make([]planner.Term, 0, len(course.TermsOffered))
	for _, t := range course.TermsOffered {
		terms = append(terms, planner.Term(t))
	}
	meetings := make(planner.Meetings)
	for _, m := range course.Meetings {
		meetings[m.DayOfWeek] = append(meetings[m.DayOfWeek], planner.Interval{
			Start: m.StartMin,
			End:   m.EndMin,
		})
	}
	return &planner.Course{
		Code:         course.CourseCode,
		Title:        course.Title,
		Requirements: reqs,
		TermsOffered: terms,
		Meetings:     meetings,
		Difficulty:   course.Difficulty,
		Credit:       course.CreditOrZero(),
	}
}

// buildPlanResponse 网格 → 响应体，附带逐学期与总体平均难度
func buildPlanResponse(grid [][]string, catalog planner.Catalog, skipped []string) *dto.PlanResponse {
	resp := &dto.PlanResponse{
		Semesters: make([]dto.PlanSemester, 0, len(grid)),
		Skipped:   skipped,
	}
	var sumOfAverages float64
	usedSlots := 0
	for i, slot := range grid {
		sem := dto.PlanSemester{
			Index:   i,
			Term:    string(planner.TermLabel(i)),
			Courses: slot,
		}
		if len(slot) > 0 {
			var sum float64
			for _, code := range slot {
				if course, ok := catalog[code]; ok {
					sum += course.Difficulty
				}
			}
			sem.AverageDifficulty = sum / float64(len(slot))
			sumOfAverages += sem.AverageDifficulty
			usedSlots++
		}
		resp.Semesters = append(resp.Semesters, sem)
	}
	if usedSlots > 0 {
		resp.AverageDifficulty = sumOfAverages / float64(usedSlots)
	}
	return resp
}
