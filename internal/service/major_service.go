package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ROYBRUNO81/Course-Planner/internal/dto"
	"github.com/ROYBRUNO81/Course-Planner/internal/model"
	"github.com/ROYBRUNO81/Course-Planner/internal/repository"
)

// ── 专业模块业务错误 ──

var (
	ErrMajorNameRequired    = errors.New("专业名称不能为空")
	ErrMajorExists          = errors.New("专业名称已存在")
	ErrMajorNotFound        = errors.New("专业不存在")
	ErrCourseNotInCatalog   = errors.New("课程不在目录中")
	ErrCourseAlreadyInMajor = errors.New("课程已是该专业要求")
)

// MajorService 专业业务接口
type MajorService interface {
	// CreateMajor 创建专业，初始课程逐个追加，学分要求随之累加
	CreateMajor(ctx context.Context, req *dto.CreateMajorRequest) (*dto.MajorResponse, error)
	// AddMajorCourse 向专业追加一门要求课程；代码先归一化再校验
	AddMajorCourse(ctx context.Context, majorID string, req *dto.AddMajorCourseRequest) (*dto.MajorResponse, error)
	// GetMajor 查询单个专业
	GetMajor(ctx context.Context, majorID string) (*dto.MajorResponse, error)
	// ListMajors 专业列表
	ListMajors(ctx context.Context) ([]dto.MajorResponse, error)
}

type majorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMajorService 创建 MajorService 实例
func NewMajorService(repo *repository.Repository, logger *zap.Logger) MajorService {
	return &majorService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// CreateMajor
// ════════════════════════════════════════════════════════════

func (s *majorService) CreateMajor(ctx context.Context, req *dto.CreateMajorRequest) (*dto.MajorResponse, error) {
	if req.Name == "" {
		return nil, ErrMajorNameRequired
	}

	if _, err := s.repo.Major.GetByName(ctx, req.Name); err == nil {
		return nil, ErrMajorExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询专业失败", zap.Error(err))
		return nil, err
	}

	major := &model.Major{Name: req.Name}
	if err := s.repo.Major.Create(ctx, major); err != nil {
		s.logger.Error("创建专业失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	// 初始课程复用 AddMajorCourse 的归一化与学分累加逻辑
	for _, code := range req.Courses {
		if _, err := s.AddMajorCourse(ctx, major.MajorID, &dto.AddMajorCourseRequest{Code: code}); err != nil {
			return nil, err
		}
	}

	return s.GetMajor(ctx, major.MajorID)
}

// ════════════════════════════════════════════════════════════
// AddMajorCourse
// ════════════════════════════════════════════════════════════

func (s *majorService) AddMajorCourse(ctx context.Context, majorID string, req *dto.AddMajorCourseRequest) (*dto.MajorResponse, error) {
	code := NormalizeCourseCode(req.Code)
	if code == "" {
		return nil, ErrCourseCodeRequired
	}

	major, err := s.repo.Major.GetByID(ctx, majorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMajorNotFound
		}
		s.logger.Error("查询专业失败", zap.Error(err))
		return nil, err
	}

	course, err := s.repo.Course.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotInCatalog
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	has, err := s.repo.Major.HasCourse(ctx, majorID, code)
	if err != nil {
		s.logger.Error("查询专业课程成员失败", zap.Error(err))
		return nil, err
	}
	if has {
		return nil, ErrCourseAlreadyInMajor
	}

	// 追加成员并累加学分要求（未知学分按 0 计）
	newCredit := major.CreditRequired + course.CreditOrZero()
	if err := s.repo.Major.AddCourse(ctx, majorID, code, newCredit); err != nil {
		s.logger.Error("追加专业课程失败",
			zap.String("major_id", majorID), zap.String("code", code), zap.Error(err))
		return nil, err
	}

	return s.GetMajor(ctx, majorID)
}

// ════════════════════════════════════════════════════════════
// 查询
// ════════════════════════════════════════════════════════════

func (s *majorService) GetMajor(ctx context.Context, majorID string) (*dto.MajorResponse, error) {
	major, err := s.repo.Major.GetByID(ctx, majorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMajorNotFound
		}
		s.logger.Error("查询专业失败", zap.Error(err))
		return nil, err
	}
	resp := toMajorResponse(major)
	return &resp, nil
}

func (s *majorService) ListMajors(ctx context.Context) ([]dto.MajorResponse, error) {
	majors, err := s.repo.Major.List(ctx)
	if err != nil {
		s.logger.Error("查询专业列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.MajorResponse, 0, len(majors))
	for i := range majors {
		result = append(result, toMajorResponse(&majors[i]))
	}
	return result, nil
}

func toMajorResponse(major *model.Major) dto.MajorResponse {
	codes := make([]string, 0, len(major.Courses))
	for _, mc := range major.Courses {
		codes = append(codes, mc.CourseCode)
	}
	return dto.MajorResponse{
		MajorID:        major.MajorID,
		Name:           major.Name,
		CreditRequired: major.CreditRequired,
		Courses:        codes,
	}
}
