package game

import "fmt"

// Location is a sector coordinate on the galaxy grid.
type Location struct {
	X int
	Y int
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.X, l.Y)
}

// Distance is the sector distance between two locations (Chebyshev metric:
// one step moves to any of the 8 neighbours).
func Distance(a, b Location) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// StepToward returns the location one sector closer to dst, or src itself
// when already there.
func StepToward(src, dst Location) Location {
	step := func(a, b int) int {
		switch {
		case b > a:
			return a + 1
		case b < a:
			return a - 1
		default:
			return a
		}
	}
	return Location{X: step(src.X, dst.X), Y: step(src.Y, dst.Y)}
}
