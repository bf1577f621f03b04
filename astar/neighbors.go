package astar

import (
	"math"
)

// moves is the fixed expansion order: vertical, horizontal, then diagonals.
var moves = [...]Position{
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
	{1, 1},
	{-1, -1},
	{1, -1},
	{-1, 1},
}

// Heuristic is the straight-line distance between a and b. It is also the
// step cost between adjacent cells, so it never overestimates.
func Heuristic(a Position, b Position) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// Neighbors returns the free in-bounds cells around p in moves order.
func Neighbors(grid *Grid, p Position) []Position {
	result := make([]Position, 0, len(moves))
	for _, m := range moves {
		nabor := Position{Row: p.Row + m.Row, Col: p.Col + m.Col}
		if grid.IsFree(nabor) {
			result = append(result, nabor)
		}
	}
	return result
}

func isAdjacent(a Position, b Position) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	return a != b && dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1
}
