package astar

import (
	"fmt"
	"strings"
)

// PathCost is the Euclidean length of path.
func PathCost(path []Position) float64 {
	cost := 0.0
	for i := 1; i < len(path); i++ {
		cost += Heuristic(path[i-1], path[i])
	}
	return cost
}

// ValidatePath checks that path runs from start to goal over free cells,
// each step to an 8-adjacent cell, without revisiting start or goal.
func ValidatePath(grid *Grid, start Position, goal Position, path []Position) error {
	if len(path) == 0 {
		return fmt.Errorf("path is empty")
	}
	if path[0] != start {
		return fmt.Errorf("path starts at %v, want %v", path[0], start)
	}
	if path[len(path)-1] != goal {
		return fmt.Errorf("path ends at %v, want %v", path[len(path)-1], goal)
	}
	for i, p := range path {
		if !grid.IsFree(p) {
			return fmt.Errorf("step %d at %v is not a free cell", i, p)
		}
		if i > 0 && !isAdjacent(path[i-1], p) {
			return fmt.Errorf("step %d from %v to %v is not 8-adjacent", i, path[i-1], p)
		}
		if i > 0 && p == start {
			return fmt.Errorf("step %d revisits start %v", i, p)
		}
		if i < len(path)-1 && p == goal {
			return fmt.Errorf("step %d reaches goal %v early", i, p)
		}
	}
	return nil
}

// FormatPath renders path as [(r, c), (r, c), ...].
func FormatPath(path []Position) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range path {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
