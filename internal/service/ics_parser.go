package service

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ── ICS 课表解析器 ──────────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容解析为每周上课时段列表。
//
// 设计决策：
//   - SUMMARY 中提取课程代码（"院系字母 + 编号"，如 CIS 1200 / CIS1200）
//   - DTSTART/DTEND 确定星期几与分钟区间；重复规则不展开，
//     规划引擎只关心每周固定时段
//   - 合并同 code+day+start+end 的重复事件
//   - 提取不到代码的事件保留 Summary 供上层报告跳过
// ─────────────────────────────────────────────────────────────

const icsMaxFileSize = 5 * 1024 * 1024 // 5MB

// courseCodePattern 课程代码形如 "CIS 1200"，SUMMARY 中可能省略空格
var courseCodePattern = regexp.MustCompile(`\b([A-Z]{2,6})\s?-?\s?(\d{3,4})\b`)

// TimetableEvent ICS 解析出的单个每周时段
type TimetableEvent struct {
	Summary    string
	CourseCode string // 提取失败时为空
	DayOfWeek  int    // 1=Monday … 7=Sunday
	StartMin   int    // 当天零点起的分钟数
	EndMin     int
}

// ExtractCourseCode 从事件标题中提取归一化课程代码；失败返回空串
func ExtractCourseCode(summary string) string {
	m := courseCodePattern.FindStringSubmatch(strings.ToUpper(summary))
	if m == nil {
		return ""
	}
	return m[1] + " " + m[2]
}

// ParseTimetableICS 解析 ICS 数据流为每周时段列表
func ParseTimetableICS(r io.Reader) ([]TimetableEvent, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(r, icsMaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	var events []TimetableEvent
	seen := make(map[TimetableEvent]bool)
	for _, evt := range cal.Events() {
		ev, ok := parseVEvent(evt)
		if !ok {
			continue
		}
		key := ev
		key.Summary = ""
		if ev.CourseCode != "" && seen[key] {
			continue
		}
		seen[key] = true
		events = append(events, ev)
	}
	return events, nil
}

// parseVEvent 解析单个 VEVENT 组件
func parseVEvent(evt *ics.VEvent) (TimetableEvent, bool) {
	summary := evt.GetProperty(ics.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return TimetableEvent{}, false
	}

	dtStart, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart)
	if err != nil {
		return TimetableEvent{}, false
	}
	dtEnd, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd)
	if err != nil {
		return TimetableEvent{}, false
	}

	startMin := dtStart.Hour()*60 + dtStart.Minute()
	endMin := dtEnd.Hour()*60 + dtEnd.Minute()
	if endMin <= startMin {
		return TimetableEvent{}, false
	}

	return TimetableEvent{
		Summary:    strings.TrimSpace(summary.Value),
		CourseCode: ExtractCourseCode(summary.Value),
		DayOfWeek:  goWeekdayToISO(dtStart.Weekday()),
		StartMin:   startMin,
		EndMin:     endMin,
	}, true
}

// goWeekdayToISO 将 Go 的 time.Weekday (0=Sunday) 转为 ISO 8601 (1=Monday … 7=Sunday)
func goWeekdayToISO(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// parseICSDateTime 从 VEVENT 中解析日期时间属性
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", propName)
	}
	val := prop.Value

	// 时段只取墙钟时间，时区参数不改变分钟区间
	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}
	for _, layout := range formats {
		if t, err := time.Parse(layout, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析日期: %s", val)
}
