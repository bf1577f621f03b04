package astar

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const costEpsilon = 1e-9

// lWallGrid is the 20x20 grid with a vertical wall at column 10 (rows 5-14)
// and a horizontal wall at row 5 (columns 5-14).
func lWallGrid(t *testing.T) *Grid {
	t.Helper()
	var walls []Position
	for row := 5; row < 15; row++ {
		walls = append(walls, Position{row, 10})
	}
	for col := 5; col < 15; col++ {
		walls = append(walls, Position{5, col})
	}
	g, err := NewGrid(20, 20, walls...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// dijkstraCost is a brute-force reference: O(n^2) Dijkstra over every cell.
func dijkstraCost(g *Grid, start, goal Position) (float64, bool) {
	n := g.Rows() * g.Cols()
	dist := make([]float64, n)
	done := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[g.index(start)] = 0
	for {
		best := -1
		for i := 0; i < n; i++ {
			if !done[i] && !math.IsInf(dist[i], 1) && (best == -1 || dist[i] < dist[best]) {
				best = i
			}
		}
		if best == -1 {
			return 0, false
		}
		p := Position{best / g.Cols(), best % g.Cols()}
		if p == goal {
			return dist[best], true
		}
		done[best] = true
		for _, nb := range Neighbors(g, p) {
			if d := dist[best] + Heuristic(p, nb); d < dist[g.index(nb)] {
				dist[g.index(nb)] = d
			}
		}
	}
}

func TestFindPathLWall(t *testing.T) {
	g := lWallGrid(t)
	start, goal := Position{2, 2}, Position{18, 18}

	result, err := Search(context.Background(), g, start, goal)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !result.Found || len(result.Path) == 0 {
		t.Fatalf("expected a path, got %+v", result)
	}
	if err := ValidatePath(g, start, goal, result.Path); err != nil {
		t.Fatalf("invalid path %v: %v", FormatPath(result.Path), err)
	}
	want, ok := dijkstraCost(g, start, goal)
	if !ok {
		t.Fatal("reference search found no path")
	}
	if math.Abs(result.Cost-want) > costEpsilon {
		t.Errorf("cost = %v, want %v", result.Cost, want)
	}
	if math.Abs(PathCost(result.Path)-result.Cost) > costEpsilon {
		t.Errorf("PathCost = %v, result cost = %v", PathCost(result.Path), result.Cost)
	}
	for _, p := range result.Path {
		if (p.Col == 10 && p.Row >= 5 && p.Row < 15) || (p.Row == 5 && p.Col >= 5 && p.Col < 15) {
			t.Errorf("path crosses wall at %v", p)
		}
	}
}

func TestFindPathEnclosedGoal(t *testing.T) {
	goal := Position{10, 10}
	var ring []Position
	for _, m := range moves {
		ring = append(ring, Position{goal.Row + m.Row, goal.Col + m.Col})
	}
	g, err := NewGrid(20, 20, ring...)
	if err != nil {
		t.Fatal(err)
	}

	result, err := Search(context.Background(), g, Position{0, 0}, goal)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Found || len(result.Path) != 0 {
		t.Fatalf("expected no path, got %v", FormatPath(result.Path))
	}
	// every reachable free cell is expanded exactly once
	if want := 20*20 - len(ring) - 1; result.Expanded != want {
		t.Errorf("expanded = %d, want %d", result.Expanded, want)
	}

	path, err := FindPath(g, Position{0, 0}, goal)
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 0 {
		t.Errorf("FindPath = %v, want empty", path)
	}
}

func TestFindPathSimpleShapes(t *testing.T) {
	cases := []struct {
		name    string
		rows    int
		cols    int
		blocked []Position
		start   Position
		goal    Position
		want    []Position
	}{
		{
			name:  "straight row",
			rows:  1,
			cols:  5,
			start: Position{0, 0},
			goal:  Position{0, 4},
			want:  []Position{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
		},
		{
			name:  "diagonal",
			rows:  3,
			cols:  3,
			start: Position{0, 0},
			goal:  Position{2, 2},
			want:  []Position{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			name:    "corner cut between blocked cells",
			rows:    2,
			cols:    2,
			blocked: []Position{{0, 1}, {1, 0}},
			start:   Position{0, 0},
			goal:    Position{1, 1},
			want:    []Position{{0, 0}, {1, 1}},
		},
		{
			name:  "start equals goal",
			rows:  4,
			cols:  4,
			start: Position{2, 1},
			goal:  Position{2, 1},
			want:  []Position{{2, 1}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := NewGrid(c.rows, c.cols, c.blocked...)
			if err != nil {
				t.Fatal(err)
			}
			path, err := FindPath(g, c.start, c.goal)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(path, c.want) {
				t.Errorf("path = %v, want %v", FormatPath(path), FormatPath(c.want))
			}
		})
	}
}

func TestFindPathOptimalOnRandomGrids(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 60; i++ {
		rows, cols := 2+r.Intn(10), 2+r.Intn(10)
		var blocked []Position
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				if r.Float64() < 0.3 {
					blocked = append(blocked, Position{row, col})
				}
			}
		}
		g, err := NewGrid(rows, cols, blocked...)
		if err != nil {
			t.Fatal(err)
		}
		start := Position{r.Intn(rows), r.Intn(cols)}
		goal := Position{r.Intn(rows), r.Intn(cols)}
		if !g.IsFree(start) || !g.IsFree(goal) {
			continue
		}

		result, err := Search(context.Background(), g, start, goal)
		if err != nil {
			t.Fatalf("grid %d: %v", i, err)
		}
		want, reachable := dijkstraCost(g, start, goal)
		if result.Found != reachable {
			t.Fatalf("grid %d: found = %v, reference reachable = %v", i, result.Found, reachable)
		}
		if !reachable {
			continue
		}
		if err := ValidatePath(g, start, goal, result.Path); err != nil {
			t.Fatalf("grid %d: %v", i, err)
		}
		if math.Abs(result.Cost-want) > costEpsilon {
			t.Errorf("grid %d: cost = %v, want %v", i, result.Cost, want)
		}
	}
}

func TestFindPathDeterministicAndGridUntouched(t *testing.T) {
	g := lWallGrid(t)
	before := g.Matrix()
	first, err := FindPath(g, Position{2, 2}, Position{18, 18})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := FindPath(g, Position{2, 2}, Position{18, 18})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: %v != %v", i, FormatPath(again), FormatPath(first))
		}
	}
	if !reflect.DeepEqual(before, g.Matrix()) {
		t.Error("grid was mutated by the search")
	}
}

func TestFindPathInvalidInput(t *testing.T) {
	g, err := NewGrid(5, 5, Position{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name  string
		start Position
		goal  Position
		role  string
	}{
		{"start out of range", Position{-1, 0}, Position{4, 4}, "start"},
		{"goal out of range", Position{0, 0}, Position{5, 0}, "goal"},
		{"start blocked", Position{1, 1}, Position{4, 4}, "start"},
		{"goal blocked", Position{0, 0}, Position{1, 1}, "goal"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path, err := FindPath(g, c.start, c.goal)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			var pe *PositionError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %T, want *PositionError", err)
			}
			if pe.Role != c.role {
				t.Errorf("role = %q, want %q", pe.Role, c.role)
			}
			if path != nil {
				t.Errorf("path = %v, want nil", path)
			}
		})
	}

	if _, err := FindPath(nil, Position{}, Position{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil grid: err = %v, want ErrInvalidInput", err)
	}
}

func TestSearchAborted(t *testing.T) {
	g := lWallGrid(t)
	start, goal := Position{2, 2}, Position{18, 18}

	result, err := Search(context.Background(), g, start, goal, WithMaxExpansions(10))
	if !errors.Is(err, ErrSearchAborted) {
		t.Fatalf("max expansions: err = %v, want ErrSearchAborted", err)
	}
	if result.Expanded != 10 || result.Found {
		t.Errorf("max expansions: result = %+v", result)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Search(ctx, g, start, goal)
	if !errors.Is(err, ErrSearchAborted) || !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context: err = %v", err)
	}

	_, err = Search(context.Background(), g, start, goal, WithTimeout(time.Nanosecond))
	if err != nil && !errors.Is(err, ErrSearchAborted) {
		t.Errorf("timeout: err = %v", err)
	}

	// a budget that is large enough does not change the result
	result, err = Search(context.Background(), g, start, goal, WithMaxExpansions(400))
	if err != nil || !result.Found {
		t.Errorf("generous budget: result = %+v, err = %v", result, err)
	}
}

type fakeRecorder struct {
	outcomes []string
	expanded []int
}

func (f *fakeRecorder) ObserveSearch(outcome string, expanded int, elapsed time.Duration) {
	f.outcomes = append(f.outcomes, outcome)
	f.expanded = append(f.expanded, expanded)
}

func TestSearchReportsOutcomes(t *testing.T) {
	g, err := NewGrid(3, 3, Position{0, 1}, Position{1, 1}, Position{2, 1})
	if err != nil {
		t.Fatal(err)
	}
	rec := &fakeRecorder{}
	_, _ = Search(context.Background(), g, Position{0, 0}, Position{0, 0}, WithRecorder(rec))
	_, _ = Search(context.Background(), g, Position{0, 0}, Position{0, 2}, WithRecorder(rec))
	_, _ = Search(context.Background(), g, Position{0, 1}, Position{0, 2}, WithRecorder(rec))
	_, _ = Search(context.Background(), lWallGrid(t), Position{2, 2}, Position{18, 18},
		WithRecorder(rec), WithMaxExpansions(1))

	want := []string{OutcomeFound, OutcomeNoPath, OutcomeInvalid, OutcomeAborted}
	if !reflect.DeepEqual(rec.outcomes, want) {
		t.Errorf("outcomes = %v, want %v", rec.outcomes, want)
	}
	if rec.expanded[0] != 1 || rec.expanded[1] != 3 || rec.expanded[2] != 0 {
		t.Errorf("expanded = %v", rec.expanded)
	}
}

func TestSearchLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := Search(context.Background(), lWallGrid(t), Position{2, 2}, Position{18, 18},
		WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}
	finished := logs.FilterMessage("astar search finished").All()
	if len(finished) != 1 {
		t.Fatalf("got %d finish entries, want 1", len(finished))
	}
	if outcome := finished[0].ContextMap()["outcome"]; outcome != OutcomeFound {
		t.Errorf("outcome field = %v", outcome)
	}
}

func TestSearchRecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	_, err := Search(context.Background(), lWallGrid(t), Position{2, 2}, Position{18, 18},
		WithTracerProvider(tp))
	if err != nil {
		t.Fatal(err)
	}
	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name() != "astar.Search" {
		t.Errorf("span name = %q", spans[0].Name())
	}
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs["astar.outcome"] != OutcomeFound || attrs["astar.start"] != "(2, 2)" {
		t.Errorf("attributes = %v", attrs)
	}
}

func TestFindPathByMap(t *testing.T) {
	m := Map{
		{START, ROAD, BARRIER, ROAD},
		{ROAD, ROAD, BARRIER, ROAD},
		{ROAD, ROAD, ROAD, GOAL},
	}
	path, err := FindPathByMap(m)
	if err != nil {
		t.Fatal(err)
	}
	g, err := GridFromMatrix(m)
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidatePath(g, Position{0, 0}, Position{2, 3}, path); err != nil {
		t.Errorf("%v: %v", FormatPath(path), err)
	}

	if _, err := FindPathByMap(Map{{START, ROAD}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing goal: err = %v", err)
	}
}
