package models

import (
	"math"

	"gridnav/astar"
)

type WalkInfo struct {
	Path            []Vec2D
	CurrentPos      Vec2D
	CurrentTarIndex int
}

func Distance(pt1 Vec2D, pt2 Vec2D) float64 {
	dx := pt1.X - pt2.X
	dy := pt1.Y - pt2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// GotToGoal moves the walker step units toward its current target and
// reports whether the last waypoint has been reached.
func GotToGoal(step float64, walkInfo *WalkInfo) bool {
	if walkInfo.CurrentTarIndex >= len(walkInfo.Path) {
		return true
	}
	if step <= 0 {
		return false
	}

	tarPos := walkInfo.Path[walkInfo.CurrentTarIndex]
	curPos := walkInfo.CurrentPos
	d := Distance(curPos, tarPos)
	if d <= step {
		walkInfo.CurrentPos = tarPos
		walkInfo.CurrentTarIndex++
		return walkInfo.CurrentTarIndex >= len(walkInfo.Path)
	}
	walkInfo.CurrentPos = Vec2D{
		X: curPos.X + (tarPos.X-curPos.X)*step/d,
		Y: curPos.Y + (tarPos.Y-curPos.Y)*step/d,
	}
	return false
}

// AstarPathToWalkInfo places the walker on the first tile centre of the path,
// targeting the second.
func AstarPathToWalkInfo(tmx *TmxMap, originPath []astar.Position) WalkInfo {
	if len(originPath) == 0 {
		return WalkInfo{}
	}
	path := make([]Vec2D, 0, len(originPath))
	for _, pt := range originPath {
		path = append(path, tmx.CellCenter(pt))
	}
	return WalkInfo{
		Path:            path,
		CurrentPos:      path[0],
		CurrentTarIndex: 1,
	}
}

// WalkLength is the world-space length of the walk's path.
func (w *WalkInfo) WalkLength() float64 {
	length := 0.0
	for i := 1; i < len(w.Path); i++ {
		length += Distance(w.Path[i-1], w.Path[i])
	}
	return length
}
