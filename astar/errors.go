package astar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every input validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSearchAborted is returned when a search budget or the context stops
	// the search before it could finish.
	ErrSearchAborted = errors.New("search aborted")
)

type PositionError struct {
	Role   string // start or goal
	Pos    Position
	Reason string
}

func newOutOfRangeError(role string, p Position, g *Grid) error {
	return &PositionError{
		Role:   role,
		Pos:    p,
		Reason: fmt.Sprintf("out of range of %dx%d grid", g.Rows(), g.Cols()),
	}
}

func newBlockedError(role string, p Position) error {
	return &PositionError{Role: role, Pos: p, Reason: "on a blocked cell"}
}

func (pe *PositionError) Error() string {
	return fmt.Sprintf("%s position %v is %s", pe.Role, pe.Pos, pe.Reason)
}

func (pe *PositionError) Unwrap() error {
	return ErrInvalidInput
}

func validateEndpoints(grid *Grid, start Position, goal Position) error {
	if grid == nil {
		return fmt.Errorf("grid is nil: %w", ErrInvalidInput)
	}
	for _, ep := range []struct {
		role string
		pos  Position
	}{{"start", start}, {"goal", goal}} {
		if !grid.InBounds(ep.pos) {
			return newOutOfRangeError(ep.role, ep.pos, grid)
		}
		if !grid.IsFree(ep.pos) {
			return newBlockedError(ep.role, ep.pos)
		}
	}
	return nil
}
