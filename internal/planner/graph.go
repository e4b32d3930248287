package planner

// Graph 先修依赖图：课程代码 → 直接依赖它的课程代码列表
// 边方向为 先修课 → 后继课。
// 仅作为先修课出现的代码也会成为图的键；查询无出边的代码返回空列表而非错误。
type Graph map[string][]string

// BuildGraph 从专业要求集合与课程目录构建先修依赖图。
// 对 majorCourses 中的每个代码 code，为 catalog[code] 的每个先修 prereq
// 添加有向边 prereq → code。整图一次性构建，不做增量合并；
// 要求集合或任一课程先修字段变化后应整体重建。
func BuildGraph(majorCourses map[string]struct{}, catalog Catalog) Graph {
	g := make(Graph, len(majorCourses))
	for code := range majorCourses {
		course, ok := catalog[code]
		if !ok {
			continue
		}
		for _, prereq := range course.Requirements {
			g[prereq] = append(g[prereq], code)
		}
	}
	return g
}

// Dependents 返回直接依赖 code 的课程列表；无出边时返回 nil
func (g Graph) Dependents(code string) []string {
	return g[code]
}

// Induced 返回只保留 nodes 中节点的诱导子图：
// 每个 nodes 成员都成为键（可能为空列表），边仅保留两端都在 nodes 中的。
func (g Graph) Induced(nodes map[string]struct{}) Graph {
	sub := make(Graph, len(nodes))
	for code := range nodes {
		sub[code] = nil
	}
	for code, deps := range g {
		if _, ok := nodes[code]; !ok {
			continue
		}
		for _, d := range deps {
			if _, ok := nodes[d]; ok {
				sub[code] = append(sub[code], d)
			}
		}
	}
	return sub
}
