package service

import (
	"strings"
	"testing"
)

// ── ExtractCourseCode 测试 ──

func TestExtractCourseCode(t *testing.T) {
	cases := []struct {
		summary string
		want    string
	}{
		{"CIS 1200 Lecture", "CIS 1200"},
		{"cis1200 recitation", "CIS 1200"},
		{"MATH-1400", "MATH 1400"},
		{"Office Hours", ""},
	}
	for _, c := range cases {
		if got := ExtractCourseCode(c.summary); got != c.want {
			t.Errorf("ExtractCourseCode(%q)=%q，期望 %q", c.summary, got, c.want)
		}
	}
}

// ── ParseTimetableICS 测试 ──

func TestParseTimetableICS(t *testing.T) {
	const ical = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test//EN
BEGIN:VEVENT
UID:1
SUMMARY:CIS 1200 Lecture
DTSTART:20260831T101500
DTEND:20260831T111500
END:VEVENT
BEGIN:VEVENT
UID:2
SUMMARY:CIS 1200 Lecture
DTSTART:20260907T101500
DTEND:20260907T111500
END:VEVENT
END:VCALENDAR
`
	events, err := ParseTimetableICS(strings.NewReader(ical))
	if err != nil {
		t.Fatalf("解析应成功: %v", err)
	}

	// 相隔一周的同一时段应合并为一个每周时段
	if len(events) != 1 {
		t.Fatalf("期望 1 个时段，实际=%d", len(events))
	}
	ev := events[0]
	if ev.CourseCode != "CIS 1200" {
		t.Errorf("期望代码 CIS 1200，实际=%s", ev.CourseCode)
	}
	if ev.DayOfWeek != 1 {
		t.Errorf("2026-08-31 是周一，实际=%d", ev.DayOfWeek)
	}
	if ev.StartMin != 615 || ev.EndMin != 675 {
		t.Errorf("期望 615-675，实际=%d-%d", ev.StartMin, ev.EndMin)
	}
}

func TestParseTimetableICS_SkipsInvalidEvents(t *testing.T) {
	const ical = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test//EN
BEGIN:VEVENT
UID:1
SUMMARY:CIS 1200 Lecture
DTSTART:20260831T101500
END:VEVENT
BEGIN:VEVENT
UID:2
DTSTART:20260901T101500
DTEND:20260901T111500
END:VEVENT
END:VCALENDAR
`
	// 缺 DTEND、缺 SUMMARY 的事件都应被丢弃
	events, err := ParseTimetableICS(strings.NewReader(ical))
	if err != nil {
		t.Fatalf("解析应成功: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("期望 0 个时段，实际=%v", events)
	}
}

func TestParseTimetableICS_BadContent(t *testing.T) {
	if _, err := ParseTimetableICS(strings.NewReader("plain text")); err == nil {
		t.Error("非 ICS 内容应返回错误")
	}
}
