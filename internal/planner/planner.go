// Package planner 实现选课规划核心引擎：
// 先修依赖图构建、Kahn 拓扑排序、以及多学期贪心放置算法。
// 本包为纯内存计算，不做任何 I/O，由 service 层喂入数据并持久化结果。
package planner

// Term 开课学期
type Term string

const (
	TermFall   Term = "Fall"
	TermSpring Term = "Spring"
	TermSummer Term = "Summer"
)

// Interval 一天内的半开时间区间 [Start, End)，单位为当日分钟数
type Interval struct {
	Start int
	End   int
}

// Overlaps 两个同日半开区间是否重叠
func (iv Interval) Overlaps(other Interval) bool {
	return !(iv.End <= other.Start || iv.Start >= other.End)
}

// Meetings 每周上课时段：星期（1=周一 … 7=周日）→ 区间列表
// 同一天允许零个或多个时段
type Meetings map[int][]Interval

// Course 引擎视角的课程
type Course struct {
	Code         string
	Title        string
	Requirements []string // 先修课程代码，顺序无关
	TermsOffered []Term
	Meetings     Meetings
	Difficulty   float64 // 1.0 - 4.0
	Credit       float64 // 0 表示未知
}

// OfferedIn 课程是否在指定学期开设
func (c *Course) OfferedIn(term Term) bool {
	for _, t := range c.TermsOffered {
		if t == term {
			return true
		}
	}
	return false
}

// Catalog 课程目录：代码 → 课程
type Catalog map[string]*Course

// TermLabel 学期槽位下标 → 学期标签
// 从槽位 0 开始按 Fall、Spring 交替，与学生实际起始学期无关；
// 因此仅在 Summer 开设的课程不会被放入任何槽位。
func TermLabel(semesterIndex int) Term {
	if semesterIndex%2 == 0 {
		return TermFall
	}
	return TermSpring
}
