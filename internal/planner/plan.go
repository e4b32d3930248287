package planner

import (
	"errors"
	"sort"
)

// ErrInvalidStartIndex 起始学期下标越界
var ErrInvalidStartIndex = errors.New("起始学期下标越界")

// Request 一次规划请求
type Request struct {
	Catalog      Catalog
	MajorCourses map[string]struct{} // 专业要求集合
	Taken        map[string]struct{} // 已修完成
	InProgress   map[string]struct{} // 本学期在修
	Grid         [][]string          // 现有规划网格，长度即学期槽位数
	StartIndex   int                 // 从该槽位（含）开始放置

	// EnforcePrereqOrder 为 true 时，课程只能放入严格晚于其
	// 已放置先修课的槽位；默认 false，保持按难度降序贪心的参考行为
	// （此时拓扑序不在放置阶段二次校验）。
	EnforcePrereqOrder bool
}

// Placement 单次放置结果
type Placement struct {
	SemesterIndex int
	Position      int
	CourseCode    string
}

// Result 规划结果
type Result struct {
	Grid              [][]string  // 更新后的网格（追加式）
	Placements        []Placement // 本次新增的放置
	Skipped           []string    // 本轮无可行槽位、被跳过的课程
	AverageDifficulty float64     // 各收到课程学期平均难度的均值
}

// GeneratePlan 贪心多学期放置算法。
//
// 流程：
//  1. 剩余集合 = 专业要求 −（已修 ∪ 在修）
//  2. 在剩余集合上取依赖图的诱导子图，做拓扑排序
//  3. 按难度降序稳定重排得到放置顺序
//  4. 逐课程选取 [StartIndex, len(Grid)) 内开课学期匹配、
//     且每周时段与槽位已有课程不重叠的候选槽位；
//     取当前平均难度最低者（并列取下标最小），追加放入
//  5. 无可行槽位的课程跳过，不报错、本轮不重试
//
// 副作用：就地向 req.Grid 的槽位追加课程；StartIndex 之前的槽位不动。
func GeneratePlan(req Request) (*Result, error) {
	if req.StartIndex < 0 || req.StartIndex > len(req.Grid) {
		return nil, ErrInvalidStartIndex
	}

	// 网格中已存在的课程视为已放置，重复调用不再二次放置
	alreadyPlanned := make(map[string]struct{})
	for _, slot := range req.Grid {
		for _, code := range slot {
			alreadyPlanned[code] = struct{}{}
		}
	}

	// 1. 剩余集合（只考虑目录中存在、尚未进入网格的课程）
	remaining := make(map[string]struct{}, len(req.MajorCourses))
	for code := range req.MajorCourses {
		if _, taken := req.Taken[code]; taken {
			continue
		}
		if _, current := req.InProgress[code]; current {
			continue
		}
		if _, planned := alreadyPlanned[code]; planned {
			continue
		}
		if _, known := req.Catalog[code]; !known {
			continue
		}
		remaining[code] = struct{}{}
	}

	// 2. 诱导子图 + 拓扑排序（环 → 数据完整性错误）
	graph := BuildGraph(req.MajorCourses, req.Catalog)
	order, err := TopoSort(graph.Induced(remaining))
	if err != nil {
		return nil, err
	}

	// 3. 放置顺序：难度降序，稳定排序保持拓扑相对顺序
	sort.SliceStable(order, func(i, j int) bool {
		return req.Catalog[order[i]].Difficulty > req.Catalog[order[j]].Difficulty
	})

	// 槽位占用表与难度统计，以 StartIndex 起已有的网格内容播种
	numSlots := len(req.Grid)
	occupancy := make([]Meetings, numSlots)
	diffSum := make([]float64, numSlots)
	diffCount := make([]int, numSlots)
	placedSlot := make(map[string]int) // 已放置课程 → 槽位下标

	for sem := 0; sem < numSlots; sem++ {
		for _, code := range req.Grid[sem] {
			placedSlot[code] = sem
		}
	}
	for sem := req.StartIndex; sem < numSlots; sem++ {
		occupancy[sem] = make(Meetings)
		for _, code := range req.Grid[sem] {
			course, ok := req.Catalog[code]
			if !ok {
				continue
			}
			registerMeetings(occupancy[sem], course.Meetings)
			diffSum[sem] += course.Difficulty
			diffCount[sem]++
		}
	}

	result := &Result{Grid: req.Grid}

	// 4. 逐课程放置
	for _, code := range order {
		course := req.Catalog[code]

		minSlot := req.StartIndex
		if req.EnforcePrereqOrder {
			minSlot = earliestAllowedSlot(course, placedSlot, req.StartIndex)
		}

		// 候选槽位：开课学期匹配且无时间冲突，按下标升序生成
		bestSlot := -1
		var bestAvg float64
		for sem := minSlot; sem < numSlots; sem++ {
			if !course.OfferedIn(TermLabel(sem)) {
				continue
			}
			if conflictsWith(occupancy[sem], course.Meetings) {
				continue
			}
			avg := 0.0
			if diffCount[sem] > 0 {
				avg = diffSum[sem] / float64(diffCount[sem])
			}
			// 并列时保留先找到的（下标更小的）候选
			if bestSlot == -1 || avg < bestAvg {
				bestSlot = sem
				bestAvg = avg
			}
		}

		if bestSlot == -1 {
			result.Skipped = append(result.Skipped, code)
			continue
		}

		position := len(req.Grid[bestSlot])
		req.Grid[bestSlot] = append(req.Grid[bestSlot], code)
		registerMeetings(occupancy[bestSlot], course.Meetings)
		diffSum[bestSlot] += course.Difficulty
		diffCount[bestSlot]++
		placedSlot[code] = bestSlot

		result.Placements = append(result.Placements, Placement{
			SemesterIndex: bestSlot,
			Position:      position,
			CourseCode:    code,
		})
	}

	// 5. 收到课程学期的平均难度，再取均值
	var sumOfAverages float64
	usedSlots := 0
	for sem := req.StartIndex; sem < numSlots; sem++ {
		if diffCount[sem] == 0 {
			continue
		}
		sumOfAverages += diffSum[sem] / float64(diffCount[sem])
		usedSlots++
	}
	if usedSlots > 0 {
		result.AverageDifficulty = sumOfAverages / float64(usedSlots)
	}

	return result, nil
}

// conflictsWith 课程的每周时段与槽位占用表是否存在重叠
func conflictsWith(occ Meetings, meetings Meetings) bool {
	for day, intervals := range meetings {
		for _, iv := range intervals {
			for _, placed := range occ[day] {
				if iv.Overlaps(placed) {
					return true
				}
			}
		}
	}
	return false
}

// registerMeetings 将课程时段登记进槽位占用表
func registerMeetings(occ Meetings, meetings Meetings) {
	for day, intervals := range meetings {
		occ[day] = append(occ[day], intervals...)
	}
}

// earliestAllowedSlot 严格先修顺序模式下的最早可用槽位：
// 已放置先修课最大槽位 +1；未放置、已修、在修或不在要求集合内的先修视为已满足
func earliestAllowedSlot(course *Course, placedSlot map[string]int, startIndex int) int {
	minSlot := startIndex
	for _, prereq := range course.Requirements {
		if sem, ok := placedSlot[prereq]; ok && sem+1 > minSlot {
			minSlot = sem + 1
		}
	}
	return minSlot
}
