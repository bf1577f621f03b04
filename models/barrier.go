package models

import (
	"github.com/Tarliton/collision2d"
)

// Polygon2D is a barrier outline. Points are relative to Anchor, in world
// coordinates, and wound counter-clockwise.
type Polygon2D struct {
	Anchor Vec2D   `json:"anchor"`
	Points []Vec2D `json:"points"`
}

type Barrier struct {
	Boundary *Polygon2D
	polygon  collision2d.Polygon
}

func NewBarrier(boundary *Polygon2D) *Barrier {
	pointList := make([]float64, len(boundary.Points)*2)
	for index, val := range boundary.Points {
		pointList[2*index] = val.X
		pointList[2*index+1] = val.Y
	}
	pos := collision2d.NewVector(boundary.Anchor.X, boundary.Anchor.Y)
	offset := collision2d.NewVector(0.0, 0.0)
	angle := 0.0
	return &Barrier{
		Boundary: boundary,
		polygon:  collision2d.NewPolygon(pos, offset, angle, pointList),
	}
}

// Collides reports whether a circle of the given radius centred at pos
// touches the barrier. A non-positive radius tests the point alone.
func (b *Barrier) Collides(pos Vec2D, radius float64) bool {
	center := collision2d.NewVector(pos.X, pos.Y)
	if radius <= 0 {
		return collision2d.PointInPolygon(center, b.polygon)
	}
	result, _ := collision2d.TestPolygonCircle(b.polygon, collision2d.Circle{Pos: center, R: radius})
	return result
}
