package engine

import (
	"errors"
	"reflect"
	"testing"
)

// assertPrecedence проверяет, что порядок содержит каждый шаг ровно
// один раз и каждая предпосылка стоит раньше зависимого шага.
func assertPrecedence(t *testing.T, steps []string, edges []Edge, order []string) {
	t.Helper()

	if len(order) != len(steps) {
		t.Fatalf("expected %d steps in order, got %d", len(steps), len(order))
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		if _, dup := pos[id]; dup {
			t.Fatalf("step %s appears twice in order", id)
		}
		pos[id] = i
	}

	for _, id := range steps {
		if _, ok := pos[id]; !ok {
			t.Fatalf("step %s missing from order", id)
		}
	}

	for _, e := range edges {
		if pos[e.Prerequisite] > pos[e.Dependent] {
			t.Errorf("%s should come before %s, got %v", e.Prerequisite, e.Dependent, order)
		}
	}
}

func TestComputeOrder_SimpleChain(t *testing.T) {
	steps := []string{"fetch", "build", "deploy"}
	edges := []Edge{
		{Prerequisite: "fetch", Dependent: "build"},
		{Prerequisite: "build", Dependent: "deploy"},
	}

	order, err := ComputeOrder(steps, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"fetch", "build", "deploy"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestComputeOrder_Diamond(t *testing.T) {
	// A → B → D
	// A → C → D
	steps := []string{"A", "B", "C", "D"}
	edges := []Edge{
		{Prerequisite: "A", Dependent: "B"},
		{Prerequisite: "A", Dependent: "C"},
		{Prerequisite: "B", Dependent: "D"},
		{Prerequisite: "C", Dependent: "D"},
	}

	order, err := ComputeOrder(steps, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertPrecedence(t, steps, edges, order)

	if order[0] != "A" {
		t.Errorf("A should be first, got %v", order)
	}
	if order[3] != "D" {
		t.Errorf("D should be last, got %v", order)
	}
}

func TestComputeOrder_Empty(t *testing.T) {
	order, err := ComputeOrder(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected empty order, got %v", order)
	}
}

func TestComputeOrder_SingleStep(t *testing.T) {
	order, err := ComputeOrder([]string{"only"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"only"}) {
		t.Errorf("expected [only], got %v", order)
	}
}

func TestComputeOrder_NoEdges(t *testing.T) {
	// Без рёбер порядок совпадает с порядком входного набора.
	steps := []string{"c", "a", "b"}

	order, err := ComputeOrder(steps, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(order, steps) {
		t.Errorf("expected input order %v, got %v", steps, order)
	}
}

func TestComputeOrder_DirectCycle(t *testing.T) {
	steps := []string{"X", "Y"}
	edges := []Edge{
		{Prerequisite: "X", Dependent: "Y"},
		{Prerequisite: "Y", Dependent: "X"},
	}

	_, err := ComputeOrder(steps, edges)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected CycleError, got %T", err)
	}
	if !reflect.DeepEqual(cycleErr.Remaining, []string{"X", "Y"}) {
		t.Errorf("expected remaining [X Y], got %v", cycleErr.Remaining)
	}
}

func TestComputeOrder_LongerCycle(t *testing.T) {
	steps := []string{"A", "B", "C"}
	edges := []Edge{
		{Prerequisite: "C", Dependent: "A"},
		{Prerequisite: "A", Dependent: "B"},
		{Prerequisite: "B", Dependent: "C"},
	}

	_, err := ComputeOrder(steps, edges)
	if !errors.Is(err, ErrCycleDetected) {
		t.Errorf("expected ErrCycleDetected, got %v", err)
	}
}

func TestComputeOrder_PartialCycle(t *testing.T) {
	// Ацикличный префикс не должен маскировать цикл в хвосте:
	// порядок не возвращается вовсе.
	steps := []string{"start", "X", "Y"}
	edges := []Edge{
		{Prerequisite: "start", Dependent: "X"},
		{Prerequisite: "X", Dependent: "Y"},
		{Prerequisite: "Y", Dependent: "X"},
	}

	order, err := ComputeOrder(steps, edges)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
	if order != nil {
		t.Errorf("expected no partial order, got %v", order)
	}

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected CycleError, got %T", err)
	}
	if !reflect.DeepEqual(cycleErr.Remaining, []string{"X", "Y"}) {
		t.Errorf("expected remaining [X Y], got %v", cycleErr.Remaining)
	}
}

func TestComputeOrder_SelfLoop(t *testing.T) {
	steps := []string{"A"}
	edges := []Edge{{Prerequisite: "A", Dependent: "A"}}

	_, err := ComputeOrder(steps, edges)
	if !errors.Is(err, ErrSelfDependency) {
		t.Errorf("expected ErrSelfDependency, got %v", err)
	}
}

func TestComputeOrder_UnknownEdgeEndpoint(t *testing.T) {
	steps := []string{"A", "B"}

	tests := []struct {
		name string
		edge Edge
	}{
		{"unknown prerequisite", Edge{Prerequisite: "ghost", Dependent: "A"}},
		{"unknown dependent", Edge{Prerequisite: "A", Dependent: "ghost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeOrder(steps, []Edge{tt.edge})
			if !errors.Is(err, ErrUnknownStep) {
				t.Errorf("expected ErrUnknownStep, got %v", err)
			}
		})
	}
}

func TestComputeOrder_DuplicateStep(t *testing.T) {
	_, err := ComputeOrder([]string{"A", "A"}, nil)
	if !errors.Is(err, ErrDuplicateStep) {
		t.Errorf("expected ErrDuplicateStep, got %v", err)
	}
}

func TestComputeOrder_EmptyStepID(t *testing.T) {
	_, err := ComputeOrder([]string{"A", ""}, nil)
	if !errors.Is(err, ErrEmptyStepID) {
		t.Errorf("expected ErrEmptyStepID, got %v", err)
	}
}

func TestComputeOrder_DuplicateEdgeIgnored(t *testing.T) {
	steps := []string{"A", "B"}
	edges := []Edge{
		{Prerequisite: "A", Dependent: "B"},
		{Prerequisite: "A", Dependent: "B"},
	}

	order, err := ComputeOrder(steps, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"A", "B"}) {
		t.Errorf("expected [A B], got %v", order)
	}
}

func TestComputeOrder_Deterministic(t *testing.T) {
	// Одинаковый вход — одинаковый выход, сколько бы раз ни вызывали.
	steps := []string{"e", "d", "c", "b", "a"}
	edges := []Edge{
		{Prerequisite: "e", Dependent: "a"},
		{Prerequisite: "d", Dependent: "a"},
	}

	first, err := ComputeOrder(steps, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		next, err := ComputeOrder(steps, edges)
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("call %d differs: %v vs %v", i, first, next)
		}
	}
}

func TestComputeOrder_TieBreakFollowsInputOrder(t *testing.T) {
	// b и c освобождаются одновременно после a;
	// FIFO-фронтир сохраняет их входной порядок.
	steps := []string{"a", "b", "c", "d"}
	edges := []Edge{
		{Prerequisite: "a", Dependent: "b"},
		{Prerequisite: "a", Dependent: "c"},
		{Prerequisite: "b", Dependent: "d"},
		{Prerequisite: "c", Dependent: "d"},
	}

	order, err := ComputeOrder(steps, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestBuildGraph_Roots(t *testing.T) {
	steps := []string{"b", "a", "c"}
	edges := []Edge{{Prerequisite: "b", Dependent: "c"}}

	g, err := BuildGraph(steps, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Size() != 3 {
		t.Errorf("expected 3 nodes, got %d", g.Size())
	}

	roots := g.Roots()
	if !reflect.DeepEqual(roots, []string{"b", "a"}) {
		t.Errorf("expected roots [b a], got %v", roots)
	}
}

func TestComputeOrder_GraphNotMutated(t *testing.T) {
	// Повторная сортировка того же графа даёт тот же результат:
	// inDegree копируется, граф не мутирует.
	steps := []string{"A", "B", "C"}
	edges := []Edge{
		{Prerequisite: "A", Dependent: "B"},
		{Prerequisite: "B", Dependent: "C"},
	}

	g, err := BuildGraph(steps, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := g.ComputeOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := g.ComputeOrder()
	if err != nil {
		t.Fatalf("unexpected error on second sort: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated sort differs: %v vs %v", first, second)
	}
}

func TestComputeOrder_Wide(t *testing.T) {
	// Звезда: один корень, много листьев. Листья идут во входном порядке.
	steps := []string{"root"}
	edges := make([]Edge, 0, 50)
	for i := 0; i < 50; i++ {
		leaf := "leaf" + string(rune('0'+i%10)) + string(rune('a'+i/10))
		steps = append(steps, leaf)
		edges = append(edges, Edge{Prerequisite: "root", Dependent: leaf})
	}

	order, err := ComputeOrder(steps, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertPrecedence(t, steps, edges, order)
	if order[0] != "root" {
		t.Errorf("root should be first, got %s", order[0])
	}
	if !reflect.DeepEqual(order[1:], steps[1:]) {
		t.Errorf("leaves should keep input order")
	}
}
