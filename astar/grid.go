package astar

import (
	"fmt"
)

type Map = [][]int //Itself is the pointer

const (
	ROAD    = 0
	BARRIER = 1
	START   = 2
	GOAL    = 3
	PATH    = 9
)

type Cell uint8

const (
	Free Cell = iota
	Blocked
)

type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Grid is an immutable rows x cols occupancy matrix.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

func NewGrid(rows int, cols int, blocked ...Position) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", rows, cols)
	}
	g := &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
	for _, p := range blocked {
		if !g.InBounds(p) {
			return nil, fmt.Errorf("blocked cell %v is out of range of %dx%d grid", p, rows, cols)
		}
		g.cells[g.index(p)] = Blocked
	}
	return g, nil
}

// GridFromMatrix accepts ROAD, BARRIER, START and GOAL markers. START and GOAL
// cells are free.
func GridFromMatrix(m Map) (*Grid, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, fmt.Errorf("map is empty")
	}
	g := &Grid{rows: len(m), cols: len(m[0]), cells: make([]Cell, len(m)*len(m[0]))}
	for row := range m {
		if len(m[row]) != g.cols {
			return nil, fmt.Errorf("map row %d has %d columns, want %d", row, len(m[row]), g.cols)
		}
		for col, v := range m[row] {
			switch v {
			case ROAD, START, GOAL:
			case BARRIER:
				g.cells[row*g.cols+col] = Blocked
			default:
				return nil, fmt.Errorf("unknown marker %d at (%d, %d)", v, row, col)
			}
		}
	}
	return g, nil
}

func GridFromArray(array []int, width int, height int) (*Grid, error) {
	m, err := ArrayToMap(array, width, height)
	if err != nil {
		return nil, err
	}
	return GridFromMatrix(m)
}

// ArrayToMap reshapes a row-major array into a height x width Map.
func ArrayToMap(array []int, width int, height int) (Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("map dimensions must be positive, got %dx%d", width, height)
	}
	if len(array) != width*height {
		return nil, fmt.Errorf("array has %d cells, want %d", len(array), width*height)
	}
	theMap := make(Map, height)
	for i := 0; i < height; i++ {
		theMap[i] = make([]int, width)
		copy(theMap[i], array[i*width:(i+1)*width])
	}
	return theMap, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At reports Blocked for positions outside the grid.
func (g *Grid) At(p Position) Cell {
	if !g.InBounds(p) {
		return Blocked
	}
	return g.cells[g.index(p)]
}

func (g *Grid) IsFree(p Position) bool {
	return g.At(p) == Free
}

// WithBlocked returns a copy of g with the given cells blocked.
func (g *Grid) WithBlocked(blocked ...Position) (*Grid, error) {
	c := &Grid{rows: g.rows, cols: g.cols, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	for _, p := range blocked {
		if !c.InBounds(p) {
			return nil, fmt.Errorf("blocked cell %v is out of range of %dx%d grid", p, g.rows, g.cols)
		}
		c.cells[c.index(p)] = Blocked
	}
	return c, nil
}

// Matrix returns a fresh ROAD/BARRIER Map of the grid.
func (g *Grid) Matrix() Map {
	m := make(Map, g.rows)
	for row := 0; row < g.rows; row++ {
		m[row] = make([]int, g.cols)
		for col := 0; col < g.cols; col++ {
			if g.cells[row*g.cols+col] == Blocked {
				m[row][col] = BARRIER
			}
		}
	}
	return m
}

func (g *Grid) index(p Position) int {
	return p.Row*g.cols + p.Col
}

func findPoint(m Map, value int) (Position, error) {
	for row := range m {
		for col := range m[row] {
			if m[row][col] == value {
				return Position{Row: row, Col: col}, nil
			}
		}
	}
	return Position{Row: -1, Col: -1}, fmt.Errorf("can't find marker %d", value)
}
