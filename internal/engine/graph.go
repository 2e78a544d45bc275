package engine

// Edge — направленное ребро графа зависимостей:
// Prerequisite должен выполниться раньше Dependent.
type Edge struct {
	Prerequisite string
	Dependent    string
}

// node — узел графа зависимостей.
type node struct {
	// id — идентификатор шага.
	id string

	// inDegree — количество входящих рёбер (предпосылок).
	inDegree int

	// dependents — узлы, зависящие от этого узла,
	// в порядке добавления рёбер.
	dependents []*node
}

// Graph — граф зависимостей шагов одного workflow.
//
// Узлы хранятся и в map (для поиска по id), и в slice (порядок вставки).
// Порядок вставки определяет детерминированный tie-break сортировки.
type Graph struct {
	nodes map[string]*node
	order []*node // узлы в порядке добавления
}

// BuildGraph строит граф из набора шагов и рёбер.
//
// Предусловия (нарушение — ошибка, а не молчаливый пропуск):
//   - идентификаторы шагов непусты и уникальны;
//   - оба конца каждого ребра принадлежат набору шагов;
//   - петель (step == prerequisite) нет.
//
// Дубликаты рёбер схлопываются, чтобы не завышать inDegree.
func BuildGraph(steps []string, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make(map[string]*node, len(steps)),
		order: make([]*node, 0, len(steps)),
	}

	for _, id := range steps {
		if id == "" {
			return nil, &GraphError{Message: "empty step id", Err: ErrEmptyStepID}
		}
		if _, exists := g.nodes[id]; exists {
			return nil, &GraphError{StepID: id, Message: "duplicate step id", Err: ErrDuplicateStep}
		}
		n := &node{id: id}
		g.nodes[id] = n
		g.order = append(g.order, n)
	}

	for _, e := range edges {
		if err := g.addEdge(e); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// addEdge добавляет ребро prerequisite → dependent.
func (g *Graph) addEdge(e Edge) error {
	if e.Prerequisite == e.Dependent {
		return &GraphError{StepID: e.Dependent, Message: "step depends on itself", Err: ErrSelfDependency}
	}

	from, ok := g.nodes[e.Prerequisite]
	if !ok {
		return &GraphError{StepID: e.Prerequisite, Message: "prerequisite is not in the step set", Err: ErrUnknownStep}
	}
	to, ok := g.nodes[e.Dependent]
	if !ok {
		return &GraphError{StepID: e.Dependent, Message: "dependent is not in the step set", Err: ErrUnknownStep}
	}

	// Дубликат ребра не должен учитываться дважды.
	for _, dep := range from.dependents {
		if dep.id == to.id {
			return nil
		}
	}

	from.dependents = append(from.dependents, to)
	to.inDegree++
	return nil
}

// Size возвращает количество узлов.
func (g *Graph) Size() int {
	return len(g.nodes)
}

// Roots возвращает идентификаторы узлов без предпосылок
// в порядке их появления во входном наборе.
func (g *Graph) Roots() []string {
	roots := make([]string, 0)
	for _, n := range g.order {
		if n.inDegree == 0 {
			roots = append(roots, n.id)
		}
	}
	return roots
}

// ComputeOrder выполняет топологическую сортировку (алгоритм Кана).
//
// Результат — перестановка шагов, в которой каждая предпосылка стоит
// строго раньше зависимого от неё шага. Если в графе есть цикл,
// возвращается CycleError (частичный порядок не возвращается никогда).
//
// Tie-break детерминирован: фронтир — FIFO-очередь, заполняемая в порядке
// появления шагов во входном наборе; зависимые узлы попадают в очередь
// в порядке добавления рёбер. Повторный вызов на тех же входах даёт
// тот же результат.
func (g *Graph) ComputeOrder() ([]string, error) {
	// Копия inDegree: сортировка не мутирует граф.
	inDegree := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		inDegree[id] = n.inDegree
	}

	queue := make([]*node, 0, len(g.order))
	for _, n := range g.order {
		if n.inDegree == 0 {
			queue = append(queue, n)
		}
	}

	order := make([]string, 0, len(g.nodes))

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n.id)

		for _, dep := range n.dependents {
			inDegree[dep.id]--
			if inDegree[dep.id] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	// Не все узлы выгребли из очереди — остаток образует цикл(ы).
	if len(order) != len(g.nodes) {
		drained := make(map[string]bool, len(order))
		for _, id := range order {
			drained[id] = true
		}

		remaining := make([]string, 0, len(g.nodes)-len(order))
		for _, n := range g.order {
			if !drained[n.id] {
				remaining = append(remaining, n.id)
			}
		}
		return nil, &CycleError{Remaining: remaining}
	}

	return order, nil
}

// ComputeOrder строит граф и возвращает порядок выполнения одним вызовом.
// Это основная точка входа для сервисного слоя.
func ComputeOrder(steps []string, edges []Edge) ([]string, error) {
	g, err := BuildGraph(steps, edges)
	if err != nil {
		return nil, err
	}
	return g.ComputeOrder()
}
