package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ROYBRUNO81/Course-Planner/internal/dto"
	"github.com/ROYBRUNO81/Course-Planner/internal/repository"
)

// ── 测试辅助 ──

func setupTestMajorService(t *testing.T) (MajorService, *repository.Repository) {
	t.Helper()
	repo := newTestRepository()
	catalog := NewCatalogService(repo, zap.NewNop())

	// 预置目录
	for _, c := range []dto.AddCourseRequest{
		{Code: "CIS 1100", Title: "Intro", Credit: floatPtr(1.0)},
		{Code: "CIS 1200", Title: "PL&T I", Credit: floatPtr(1.0)},
		{Code: "CIS 1600", Title: "Discrete Math", Credit: floatPtr(1.5)},
		{Code: "CIS 2400", Title: "Systems"}, // 学分未知
	} {
		if _, err := catalog.AddCourse(context.Background(), &c); err != nil {
			t.Fatalf("预置课程失败: %v", err)
		}
	}

	svc := NewMajorService(repo, zap.NewNop())
	return svc, repo
}

// ── CreateMajor 测试 ──

func TestMajorService_CreateMajor_SumsCredits(t *testing.T) {
	svc, _ := setupTestMajorService(t)

	result, err := svc.CreateMajor(context.Background(), &dto.CreateMajorRequest{
		Name:    "Computer Science",
		Courses: []string{"CIS 1100", "CIS 1600", "CIS 2400"},
	})
	if err != nil {
		t.Fatalf("CreateMajor 应成功: %v", err)
	}
	// 1.0 + 1.5 + 未知(0) = 2.5
	if result.CreditRequired != 2.5 {
		t.Errorf("期望 CreditRequired=2.5，实际=%v", result.CreditRequired)
	}
	if len(result.Courses) != 3 {
		t.Errorf("期望 3 门要求课程，实际=%v", result.Courses)
	}
}

func TestMajorService_CreateMajor_DuplicateName(t *testing.T) {
	svc, _ := setupTestMajorService(t)

	if _, err := svc.CreateMajor(context.Background(), &dto.CreateMajorRequest{Name: "CS"}); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}
	_, err := svc.CreateMajor(context.Background(), &dto.CreateMajorRequest{Name: "CS"})
	if !errors.Is(err, ErrMajorExists) {
		t.Errorf("期望 ErrMajorExists，实际: %v", err)
	}
}

func TestMajorService_CreateMajor_UnknownCourse(t *testing.T) {
	svc, _ := setupTestMajorService(t)

	_, err := svc.CreateMajor(context.Background(), &dto.CreateMajorRequest{
		Name:    "CS",
		Courses: []string{"CIS 9999"},
	})
	if !errors.Is(err, ErrCourseNotInCatalog) {
		t.Errorf("期望 ErrCourseNotInCatalog，实际: %v", err)
	}
}

// ── AddMajorCourse 测试 ──

func TestMajorService_AddMajorCourse_NormalizesAndAccumulates(t *testing.T) {
	svc, _ := setupTestMajorService(t)
	ctx := context.Background()

	major, err := svc.CreateMajor(ctx, &dto.CreateMajorRequest{Name: "CS", Courses: []string{"CIS 1100"}})
	if err != nil {
		t.Fatalf("CreateMajor 应成功: %v", err)
	}

	result, err := svc.AddMajorCourse(ctx, major.MajorID, &dto.AddMajorCourseRequest{Code: "  cis 1600 "})
	if err != nil {
		t.Fatalf("AddMajorCourse 应成功: %v", err)
	}
	if result.CreditRequired != 2.5 {
		t.Errorf("期望 CreditRequired=2.5，实际=%v", result.CreditRequired)
	}
	if result.Courses[1] != "CIS 1600" {
		t.Errorf("代码应归一化，实际=%v", result.Courses)
	}
}

func TestMajorService_AddMajorCourse_AlreadyRequired(t *testing.T) {
	svc, _ := setupTestMajorService(t)
	ctx := context.Background()

	major, err := svc.CreateMajor(ctx, &dto.CreateMajorRequest{Name: "CS", Courses: []string{"CIS 1100"}})
	if err != nil {
		t.Fatalf("CreateMajor 应成功: %v", err)
	}

	_, err = svc.AddMajorCourse(ctx, major.MajorID, &dto.AddMajorCourseRequest{Code: "cis 1100"})
	if !errors.Is(err, ErrCourseAlreadyInMajor) {
		t.Errorf("期望 ErrCourseAlreadyInMajor，实际: %v", err)
	}
}

func TestMajorService_AddMajorCourse_MajorNotFound(t *testing.T) {
	svc, _ := setupTestMajorService(t)

	_, err := svc.AddMajorCourse(context.Background(), "major-missing", &dto.AddMajorCourseRequest{Code: "CIS 1100"})
	if !errors.Is(err, ErrMajorNotFound) {
		t.Errorf("期望 ErrMajorNotFound，实际: %v", err)
	}
}
