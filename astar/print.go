package astar

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
)

// PrintMap writes grid as a digit matrix with path cells marked PATH and its
// endpoints marked START and GOAL. Colors are ANSI escapes from aurora.
func PrintMap(w io.Writer, grid *Grid, path []Position, colored bool) error {
	m := grid.Matrix()
	mark := func(pt Position, marker int) {
		if grid.InBounds(pt) {
			m[pt.Row][pt.Col] = marker
		}
	}
	for _, pt := range path {
		mark(pt, PATH)
	}
	if len(path) > 0 {
		mark(path[0], START)
		mark(path[len(path)-1], GOAL)
	}

	au := aurora.NewAurora(colored)
	for row := range m {
		for col := range m[row] {
			var err error
			switch num := m[row][col]; num {
			case BARRIER:
				_, err = fmt.Fprintf(w, "%d ", au.Red(num))
			case PATH:
				_, err = fmt.Fprintf(w, "%d ", au.Green(num))
			case START, GOAL:
				_, err = fmt.Fprintf(w, "%d ", au.Cyan(num))
			default:
				_, err = fmt.Fprintf(w, "%d ", num)
			}
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
