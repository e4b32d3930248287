package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ROYBRUNO81/Course-Planner/internal/dto"
	"github.com/ROYBRUNO81/Course-Planner/internal/model"
	"github.com/ROYBRUNO81/Course-Planner/internal/repository"
)

// ── 课程目录模块业务错误 ──

var (
	ErrCourseCodeRequired = errors.New("课程代码不能为空")
	ErrCourseExists       = errors.New("课程代码已存在")
	ErrCourseNotFound     = errors.New("课程不存在")
	ErrInvalidMeeting     = errors.New("上课时段区间无效")
	ErrInvalidTerm        = errors.New("开课学期名无效")
)

// CatalogService 课程目录业务接口
//
// 设计说明：
//   - 目录条目只增改不删；失败的变更不留下部分写入
//   - 编辑采用封闭字段集合（UpdateCourseRequest），未给出的字段不动
//   - 学分或先修变更会触发下游重算：学分 → 所有含该课程专业的
//     credit_required；先修 → 依赖图在下次规划时按行重放重建
type CatalogService interface {
	// AddCourse 新增课程；代码缺失或重复时软失败
	AddCourse(ctx context.Context, req *dto.AddCourseRequest) (*dto.CourseResponse, error)
	// EditCourse 按封闭字段集合编辑课程
	EditCourse(ctx context.Context, code string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	// GetCourse 查询单门课程
	GetCourse(ctx context.Context, code string) (*dto.CourseResponse, error)
	// ListCourses 全目录列表
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	// ImportCourses 批量导入采集器输出的原始记录，逐行报告失败
	ImportCourses(ctx context.Context, req *dto.ImportCoursesRequest) (*dto.ImportCoursesResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// NormalizeCourseCode 课程代码归一化：去首尾空白并转大写
func NormalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ════════════════════════════════════════════════════════════
// AddCourse — 新增课程
// ════════════════════════════════════════════════════════════

func (s *catalogService) AddCourse(ctx context.Context, req *dto.AddCourseRequest) (*dto.CourseResponse, error) {
	code := NormalizeCourseCode(req.Code)
	if code == "" {
		return nil, ErrCourseCodeRequired
	}

	exists, err := s.repo.Course.Exists(ctx, code)
	if err != nil {
		s.logger.Error("查询课程是否存在失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrCourseExists
	}

	course, err := buildCourseModel(code, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// EditCourse — 封闭字段集合编辑
// ════════════════════════════════════════════════════════════

func (s *catalogService) EditCourse(ctx context.Context, code string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	code = NormalizeCourseCode(code)

	course, err := s.repo.Course.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	// 全部输入先校验并暂存到副本，任何校验失败前不触库；
	// 写入阶段整体走单事务，失败不留下部分写入
	updated := *course
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	creditChanged := false
	if req.Credit != nil {
		updated.Credit = req.Credit
		creditChanged = true
	}
	if req.Difficulty != nil {
		updated.Difficulty = *req.Difficulty
	}
	if req.TermsOffered != nil {
		terms, err := normalizeTerms(*req.TermsOffered)
		if err != nil {
			return nil, err
		}
		updated.TermsOffered = terms
	}

	// 先修字段变化 → 全量替换先修行；内存图在下次规划时重建
	var prereqs *[]model.CoursePrerequisite
	if req.Requirements != nil {
		rows := make([]model.CoursePrerequisite, 0, len(*req.Requirements))
		for _, p := range *req.Requirements {
			rows = append(rows, model.CoursePrerequisite{
				CourseCode: code,
				PrereqCode: NormalizeCourseCode(p),
			})
		}
		prereqs = &rows
	}

	var meetings *[]model.CourseMeeting
	if req.Meetings != nil {
		rows, err := buildMeetings(code, *req.Meetings)
		if err != nil {
			return nil, err
		}
		meetings = &rows
	}

	// 学分变化 → 预先算出所有包含该课程专业的 credit_required 新值，
	// 与课程行更新一并落库
	var majorCredits map[string]float64
	if creditChanged {
		majorCredits, err = s.majorCreditsAfterEdit(ctx, code, updated.CreditOrZero())
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Course.ApplyEdit(ctx, &updated, prereqs, meetings, majorCredits); err != nil {
		s.logger.Error("更新课程失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	if prereqs != nil {
		updated.Prerequisites = *prereqs
	}
	if meetings != nil {
		updated.Meetings = *meetings
	}

	resp := toCourseResponse(&updated)
	return &resp, nil
}

// majorCreditsAfterEdit 按编辑后的学分值重算包含 code 的每个专业的
// credit_required（成员已知学分之和），返回 major_id → 新值
func (s *catalogService) majorCreditsAfterEdit(ctx context.Context, code string, newCredit float64) (map[string]float64, error) {
	majors, err := s.repo.Major.ListContainingCourse(ctx, code)
	if err != nil {
		s.logger.Error("查询包含课程的专业失败", zap.Error(err))
		return nil, err
	}
	credits := make(map[string]float64, len(majors))
	for i := range majors {
		total := 0.0
		for _, mc := range majors[i].Courses {
			if mc.CourseCode == code {
				total += newCredit
				continue
			}
			member, err := s.repo.Course.GetByCode(ctx, mc.CourseCode)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return nil, err
			}
			total += member.CreditOrZero()
		}
		credits[majors[i].MajorID] = total
	}
	return credits, nil
}

// ════════════════════════════════════════════════════════════
// 查询
// ════════════════════════════════════════════════════════════

func (s *catalogService) GetCourse(ctx context.Context, code string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByCode(ctx, NormalizeCourseCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *catalogService) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// ImportCourses — 批量导入
// ════════════════════════════════════════════════════════════

func (s *catalogService) ImportCourses(ctx context.Context, req *dto.ImportCoursesRequest) (*dto.ImportCoursesResponse, error) {
	resp := &dto.ImportCoursesResponse{}
	for i := range req.Courses {
		raw := &req.Courses[i]
		if _, err := s.AddCourse(ctx, raw); err != nil {
			// 单行失败不中断整批导入
			resp.Failures = append(resp.Failures, dto.ImportFailure{
				Index:  i,
				Code:   raw.Code,
				Reason: err.Error(),
			})
			continue
		}
		resp.ImportedCount++
	}
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// 内部辅助
// ════════════════════════════════════════════════════════════

func normalizeTerms(terms []string) (model.StringArray, error) {
	result := make(model.StringArray, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		switch t {
		case "Fall", "Spring", "Summer":
			result = append(result, t)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidTerm, t)
		}
	}
	return result, nil
}

func buildMeetings(code string, blocks []dto.MeetingBlock) ([]model.CourseMeeting, error) {
	meetings := make([]model.CourseMeeting, 0, len(blocks))
	for _, b := range blocks {
		if b.DayOfWeek < 1 || b.DayOfWeek > 7 || b.StartMin < 0 || b.EndMin > 1440 || b.StartMin >= b.EndMin {
			return nil, fmt.Errorf("%w: 周%d %d-%d", ErrInvalidMeeting, b.DayOfWeek, b.StartMin, b.EndMin)
		}
		meetings = append(meetings, model.CourseMeeting{
			CourseCode: code,
			DayOfWeek:  b.DayOfWeek,
			StartMin:   b.StartMin,
			EndMin:     b.EndMin,
		})
	}
	return meetings, nil
}

func buildCourseModel(code string, req *dto.AddCourseRequest) (*model.Course, error) {
	terms, err := normalizeTerms(req.TermsOffered)
	if err != nil {
		return nil, err
	}
	meetings, err := buildMeetings(code, req.Meetings)
	if err != nil {
		return nil, err
	}

	prereqs := make([]model.CoursePrerequisite, 0, len(req.Requirements))
	for _, p := range req.Requirements {
		prereqs = append(prereqs, model.CoursePrerequisite{
			CourseCode: code,
			PrereqCode: NormalizeCourseCode(p),
		})
	}

	return &model.Course{
		CourseCode:    code,
		Title:         req.Title,
		Description:   req.Description,
		Credit:        req.Credit,
		Difficulty:    req.Difficulty,
		TermsOffered:  terms,
		Prerequisites: prereqs,
		Meetings:      meetings,
	}, nil
}

func toCourseResponse(course *model.Course) dto.CourseResponse {
	reqs := make([]string, 0, len(course.Prerequisites))
	for _, p := range course.Prerequisites {
		reqs = append(reqs, p.PrereqCode)
	}
	meetings := make([]dto.MeetingBlock, 0, len(course.Meetings))
	for _, m := range course.Meetings {
		meetings = append(meetings, dto.MeetingBlock{
			DayOfWeek: m.DayOfWeek,
			StartMin:  m.StartMin,
			EndMin:    m.EndMin,
		})
	}
	return dto.CourseResponse{
		Code:         course.CourseCode,
		Title:        course.Title,
		Description:  course.Description,
		Credit:       course.Credit,
		Difficulty:   course.Difficulty,
		Requirements: reqs,
		TermsOffered: []string(course.TermsOffered),
		Meetings:     meetings,
	}
}
