package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ROYBRUNO81/Course-Planner/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoPlan       = errors.New("该学生暂无规划")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 将学生的规划网格导出为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Excel 格式：学期为列，网格内位置为行，单元格为 "代码 — 标题 (难度)"
type ExportService interface {
	// ExportPlan 导出规划网格为 Excel
	ExportPlan(ctx context.Context, studentID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	plans  PlanService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, plans PlanService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, plans: plans, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportPlan — 导出规划网格为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "Plan"
//   - 列头：Semester 1 (Fall) … Semester N，行尾附每学期平均难度
//   - 单元格：课程代码 — 标题 (难度)
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportPlan(ctx context.Context, studentID string) (*bytes.Buffer, string, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, "", err
	}

	plan, err := s.plans.GetPlan(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	placed := 0
	for _, sem := range plan.Semesters {
		placed += len(sem.Courses)
	}
	if placed == 0 {
		return nil, "", ErrExportNoPlan
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Plan"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s (%s) — Course Plan", student.Name, student.SID))
	f.MergeCell(sheetName, "A1", cell(colName(len(plan.Semesters)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 列头：每学期一列
	maxRows := 0
	for i, sem := range plan.Semesters {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, 28)
		f.SetCellValue(sheetName, cell(col, 2),
			fmt.Sprintf("Semester %d (%s)", sem.Index+1, sem.Term))
		f.SetCellStyle(sheetName, cell(col, 2), cell(col, 2), headerStyle)
		if len(sem.Courses) > maxRows {
			maxRows = len(sem.Courses)
		}
	}

	// 数据区：按位置逐行填充
	for i, sem := range plan.Semesters {
		col := colName(i)
		for pos, code := range sem.Courses {
			text := code
			if course, err := s.repo.Course.GetByCode(ctx, code); err == nil {
				text = fmt.Sprintf("%s — %s (%.1f)", code, course.Title, course.Difficulty)
			}
			f.SetCellValue(sheetName, cell(col, 3+pos), text)
		}
	}

	// 行尾：每学期平均难度
	summaryRow := 3 + maxRows
	for i, sem := range plan.Semesters {
		if len(sem.Courses) == 0 {
			continue
		}
		f.SetCellValue(sheetName, cell(colName(i), summaryRow),
			fmt.Sprintf("avg %.2f", sem.AverageDifficulty))
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("course_plan_%s.xlsx", student.SID)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
