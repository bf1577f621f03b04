package config

import (
	"io/ioutil"

	"github.com/pkg/errors"

	"gridnav/astar"
	"gridnav/models"
)

// Point is a [row, col] pair.
type Point [2]int

func (p Point) Position() astar.Position {
	return astar.Position{Row: p[0], Col: p[1]}
}

// Segment is an inclusive horizontal, vertical or 45 degree run of cells.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

func (s Segment) Cells() ([]astar.Position, error) {
	dr, dc := s.To[0]-s.From[0], s.To[1]-s.From[1]
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return nil, errors.Errorf("wall %v-%v is neither straight nor diagonal", s.From, s.To)
	}
	steps := abs(dr)
	if abs(dc) > steps {
		steps = abs(dc)
	}
	cells := make([]astar.Position, 0, steps+1)
	for i := 0; i <= steps; i++ {
		cells = append(cells, astar.Position{Row: s.From[0] + i*sign(dr), Col: s.From[1] + i*sign(dc)})
	}
	return cells, nil
}

// Scenario describes a grid and the endpoints to search between. The base
// grid comes from Map, from TileMap and Barriers, or is Rows x Cols free
// cells; Walls and Blocked are added on top.
type Scenario struct {
	Rows      int                 `json:"rows,omitempty"`
	Cols      int                 `json:"cols,omitempty"`
	Start     Point               `json:"start"`
	Goal      Point               `json:"goal"`
	Walls     []Segment           `json:"walls,omitempty"`
	Blocked   []Point             `json:"blocked,omitempty"`
	Map       astar.Map           `json:"map,omitempty"`
	TileMap   *models.TmxMap      `json:"tile_map,omitempty"`
	Barriers  []*models.Polygon2D `json:"barriers,omitempty"`
	Clearance float64             `json:"clearance,omitempty"`
}

// DefaultScenario is a 20x20 grid with an L of walls between (2, 2) and
// (18, 18).
func DefaultScenario() *Scenario {
	return &Scenario{
		Rows:  20,
		Cols:  20,
		Start: Point{2, 2},
		Goal:  Point{18, 18},
		Walls: []Segment{
			{From: Point{5, 10}, To: Point{14, 10}},
			{From: Point{5, 5}, To: Point{5, 14}},
		},
	}
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	scenario := &Scenario{}
	if err := json.Unmarshal(data, scenario); err != nil {
		return nil, errors.Wrapf(err, "decode scenario %s", path)
	}
	return scenario, nil
}

// Build constructs the grid. Start and goal are returned unchecked; the
// search validates them.
func (s *Scenario) Build() (*astar.Grid, astar.Position, astar.Position, error) {
	base, err := s.baseGrid()
	if err != nil {
		return nil, astar.Position{}, astar.Position{}, err
	}
	if s.Rows != 0 && s.Rows != base.Rows() || s.Cols != 0 && s.Cols != base.Cols() {
		return nil, astar.Position{}, astar.Position{}, errors.Errorf(
			"scenario declares %dx%d but its grid is %dx%d", s.Rows, s.Cols, base.Rows(), base.Cols())
	}

	var blocked []astar.Position
	for _, wall := range s.Walls {
		cells, err := wall.Cells()
		if err != nil {
			return nil, astar.Position{}, astar.Position{}, err
		}
		blocked = append(blocked, cells...)
	}
	for _, p := range s.Blocked {
		blocked = append(blocked, p.Position())
	}
	grid, err := base.WithBlocked(blocked...)
	if err != nil {
		return nil, astar.Position{}, astar.Position{}, errors.Wrap(err, "place walls")
	}
	return grid, s.Start.Position(), s.Goal.Position(), nil
}

func (s *Scenario) baseGrid() (*astar.Grid, error) {
	switch {
	case s.Map != nil:
		grid, err := astar.GridFromMatrix(s.Map)
		return grid, errors.Wrap(err, "scenario map")
	case s.TileMap != nil:
		grid, err := s.TileMap.CollideGrid(s.Barriers, s.Clearance)
		return grid, errors.Wrap(err, "scenario tile map")
	default:
		grid, err := astar.NewGrid(s.Rows, s.Cols)
		return grid, errors.Wrap(err, "scenario grid")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
