package models

import (
	"fmt"
	"math"

	"gridnav/astar"
)

type Vec2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TmxMap is an orthogonal tile map. Width and Height count tiles, TileWidth
// and TileHeight are in world units.
type TmxMap struct {
	Width      int `json:"width"`
	Height     int `json:"height"`
	TileWidth  int `json:"tile_width"`
	TileHeight int `json:"tile_height"`
}

func (m *TmxMap) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("tile map must have positive size, got %dx%d tiles", m.Width, m.Height)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return fmt.Errorf("tiles must have positive size, got %dx%d", m.TileWidth, m.TileHeight)
	}
	return nil
}

// GetCoordByGid returns the centre of the tile at row-major index.
func (m *TmxMap) GetCoordByGid(index int) (x float64, y float64) {
	h := index / m.Width
	w := index % m.Width
	x = float64(w*m.TileWidth) + 0.5*float64(m.TileWidth)
	y = float64(h*m.TileHeight) + 0.5*float64(m.TileHeight)
	return x, y
}

func (m *TmxMap) CellCenter(p astar.Position) Vec2D {
	x, y := m.GetCoordByGid(p.Row*m.Width + p.Col)
	return Vec2D{X: x, Y: y}
}

// CoordToPoint maps a world coordinate to the tile containing it.
func (m *TmxMap) CoordToPoint(coord Vec2D) (astar.Position, bool) {
	p := astar.Position{
		Row: int(math.Floor(coord.Y / float64(m.TileHeight))),
		Col: int(math.Floor(coord.X / float64(m.TileWidth))),
	}
	if p.Row < 0 || p.Row >= m.Height || p.Col < 0 || p.Col >= m.Width {
		return astar.Position{Row: -1, Col: -1}, false
	}
	return p, true
}

// ComputeCollideMap marks every tile whose centre, inflated to a circle of
// radius clearance, touches a barrier. The result is row-major, BARRIER for
// blocked tiles and ROAD otherwise.
func (m *TmxMap) ComputeCollideMap(polygons []*Polygon2D, clearance float64) []int {
	barrierList := make([]*Barrier, len(polygons))
	for i, polygon := range polygons {
		barrierList[i] = NewBarrier(polygon)
	}

	collideMap := make([]int, m.Width*m.Height)
	for k := range collideMap {
		x, y := m.GetCoordByGid(k)
		for _, barrier := range barrierList {
			if barrier.Collides(Vec2D{X: x, Y: y}, clearance) {
				collideMap[k] = astar.BARRIER
				break
			}
		}
	}
	return collideMap
}

func (m *TmxMap) CollideGrid(polygons []*Polygon2D, clearance float64) (*astar.Grid, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return astar.GridFromArray(m.ComputeCollideMap(polygons, clearance), m.Width, m.Height)
}
