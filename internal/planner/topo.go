package planner

import (
	"errors"
	"sort"
)

// ErrCyclicPrerequisites 先修关系存在环，属于数据完整性错误
var ErrCyclicPrerequisites = errors.New("先修关系存在循环依赖")

// TopoSort Kahn 算法拓扑排序。
// 入度表以图的所有键播种为 0，再为每条边的目标 +1（未见过的目标现场加入）。
// 零入度节点按代码字典序入队，邻接边也按字典序处理，保证结果确定。
// 排序结果短于入度表大小说明存在环，返回 ErrCyclicPrerequisites。
func TopoSort(g Graph) ([]string, error) {
	indegree := make(map[string]int, len(g))
	for code := range g {
		indegree[code] = 0
	}
	for _, deps := range g {
		for _, d := range deps {
			indegree[d]++
		}
	}

	// 队列初始化：所有零入度节点，字典序
	var queue []string
	for code, deg := range indegree {
		if deg == 0 {
			queue = append(queue, code)
		}
	}
	sort.Strings(queue)

	result := make([]string, 0, len(indegree))
	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]
		result = append(result, code)

		deps := append([]string(nil), g[code]...)
		sort.Strings(deps)
		for _, d := range deps {
			indegree[d]--
			if indegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(result) < len(indegree) {
		return result, ErrCyclicPrerequisites
	}
	return result, nil
}
