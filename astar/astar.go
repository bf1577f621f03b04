package astar

import (
	"context"
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "gridnav/astar"

// Result is the outcome of a search. Path is empty unless Found.
type Result struct {
	Path     []Position
	Cost     float64
	Expanded int
	Found    bool
}

// FindPath returns the cheapest 8-connected path from start to goal, both
// inclusive. An empty path with a nil error means the goal is unreachable.
func FindPath(grid *Grid, start Position, goal Position, options ...Option) ([]Position, error) {
	result, err := Search(context.Background(), grid, start, goal, options...)
	if err != nil {
		return nil, err
	}
	return result.Path, nil
}

// FindPathByMap searches between the START and GOAL markers of m.
func FindPathByMap(m Map, options ...Option) ([]Position, error) {
	grid, err := GridFromMatrix(m)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	start, err := findPoint(m, START)
	if err != nil {
		return nil, fmt.Errorf("start: %v: %w", err, ErrInvalidInput)
	}
	goal, err := findPoint(m, GOAL)
	if err != nil {
		return nil, fmt.Errorf("goal: %v: %w", err, ErrInvalidInput)
	}
	return FindPath(grid, start, goal, options...)
}

// Search runs A* over grid. The search is synchronous; ctx is only consulted
// between node expansions, alongside the expansion and time budgets.
func Search(ctx context.Context, grid *Grid, start Position, goal Position, options ...Option) (Result, error) {
	opts := newOptions(options)
	began := time.Now()

	ctx, span := opts.TracerProvider.Tracer(tracerName).Start(ctx, "astar.Search",
		trace.WithAttributes(
			attribute.String("astar.start", start.String()),
			attribute.String("astar.goal", goal.String()),
		))
	defer span.End()
	if grid != nil {
		span.SetAttributes(attribute.Int("astar.rows", grid.Rows()), attribute.Int("astar.cols", grid.Cols()))
	}

	opts.Logger.Debug("astar search started", zap.Stringer("start", start), zap.Stringer("goal", goal))

	result, outcome, err := search(ctx, grid, start, goal, &opts, began)
	elapsed := time.Since(began)

	if opts.Recorder != nil {
		opts.Recorder.ObserveSearch(outcome, result.Expanded, elapsed)
	}
	span.SetAttributes(
		attribute.String("astar.outcome", outcome),
		attribute.Int("astar.expanded", result.Expanded),
		attribute.Int("astar.path_length", len(result.Path)),
		attribute.Float64("astar.cost", result.Cost),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		opts.Logger.Debug("astar search failed",
			zap.String("outcome", outcome),
			zap.Int("expanded", result.Expanded),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return result, err
	}
	span.SetStatus(codes.Ok, outcome)
	opts.Logger.Debug("astar search finished",
		zap.String("outcome", outcome),
		zap.Int("expanded", result.Expanded),
		zap.Int("pathLength", len(result.Path)),
		zap.Float64("cost", result.Cost),
		zap.Duration("elapsed", elapsed))
	return result, nil
}

func search(ctx context.Context, grid *Grid, start Position, goal Position, opts *Options, began time.Time) (Result, string, error) {
	if err := validateEndpoints(grid, start, goal); err != nil {
		return Result{}, OutcomeInvalid, err
	}
	var deadline time.Time
	if opts.Timeout > 0 {
		deadline = began.Add(opts.Timeout)
	}

	nodes := []searchNode{{pos: start, g: 0, h: Heuristic(start, goal), parent: -1}}
	discovered := map[Position]int{start: 0}
	openSet := newFrontier()
	openSet.push(0, nodes[0].f())
	closeSet := mapset.NewThreadUnsafeSet()

	expanded := 0
	for openSet.Len() > 0 {
		if err := checkBudget(ctx, opts, expanded, deadline); err != nil {
			return Result{Expanded: expanded}, OutcomeAborted, err
		}

		current := openSet.popMin()
		expanded++
		currentPos := nodes[current].pos
		if currentPos == goal {
			return Result{
				Path:     reconstructPath(nodes, current),
				Cost:     nodes[current].g,
				Expanded: expanded,
				Found:    true,
			}, OutcomeFound, nil
		}
		closeSet.Add(currentPos)

		for _, nabor := range Neighbors(grid, currentPos) {
			if closeSet.Contains(nabor) {
				continue
			}
			tentativeGScore := nodes[current].g + Heuristic(currentPos, nabor)
			id, seen := discovered[nabor]
			if !seen {
				nodes = append(nodes, searchNode{
					pos:    nabor,
					g:      tentativeGScore,
					h:      Heuristic(nabor, goal),
					parent: current,
				})
				id = len(nodes) - 1
				discovered[nabor] = id
				openSet.push(id, nodes[id].f())
			} else if tentativeGScore < nodes[id].g {
				nodes[id].g = tentativeGScore
				nodes[id].parent = current
				openSet.update(id, nodes[id].f())
			}
		}
	}
	return Result{Expanded: expanded}, OutcomeNoPath, nil
}

func checkBudget(ctx context.Context, opts *Options, expanded int, deadline time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSearchAborted, err)
	}
	if opts.MaxExpansions > 0 && expanded >= opts.MaxExpansions {
		return errors.Wrapf(ErrSearchAborted, "expansion budget of %d reached", opts.MaxExpansions)
	}
	if !deadline.IsZero() && time.Now().After(deadline) {
		return errors.Wrapf(ErrSearchAborted, "timeout of %v reached after %d expansions", opts.Timeout, expanded)
	}
	return nil
}

func reconstructPath(nodes []searchNode, current int) []Position {
	path := []Position{}
	for ; current != -1; current = nodes[current].parent {
		path = append(path, nodes[current].pos)
	}
	//reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
