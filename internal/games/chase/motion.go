package chase

import "math"

// DefaultTurnTolerance is the centered window as a fraction of per-tick speed.
// Anything above 0.5 guarantees a moving entity lands inside the window of
// every cell it crosses.
const DefaultTurnTolerance = 0.55

// Vec is a continuous position in grid units. Integer values are cell centers.
type Vec struct {
	X, Y float64
}

// Cell returns the nearest cell center.
func (v Vec) Cell() (x, y int) {
	return int(math.Round(v.X)), int(math.Round(v.Y))
}

// Dist is the Euclidean distance between two positions.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

func cellVec(x, y int) Vec {
	return Vec{X: float64(x), Y: float64(y)}
}

// Mover is the kinematic state shared by the player and the ghosts.
type Mover struct {
	Pos   Vec
	Dir   Direction
	Next  Direction // queued intent, applied at the next centered check
	Speed float64   // base speed in cells per tick
}

// Motion advances movers along the grid.
type Motion struct {
	Tolerance float64
}

// Centered reports whether pos is close enough to its nearest cell center,
// on both axes, to turn or stop. The window scales with speed.
func (mm Motion) Centered(pos Vec, speed float64) bool {
	cx, cy := pos.Cell()
	limit := mm.Tolerance * speed
	return math.Abs(pos.X-float64(cx)) < limit && math.Abs(pos.Y-float64(cy)) < limit
}

// Advance moves m one tick at the given speed and returns the new state.
//
// At a cell center a queued direction is adopted if its target cell is open
// (and, unless allowReverse, it is not a U-turn); adopting snaps the mover to
// the center. A mover whose heading runs into a wall stops on the center.
// Away from centers the mover keeps its heading.
func (mm Motion) Advance(m Mover, g *Grid, speed float64, allowReverse bool) Mover {
	if mm.Centered(m.Pos, speed) {
		cx, cy := m.Pos.Cell()

		if m.Next != DirNone && m.Next != m.Dir && (allowReverse || m.Next != m.Dir.Opposite()) {
			dx, dy := m.Next.Delta()
			if !g.IsWall(cx+dx, cy+dy) {
				m.Dir = m.Next
				m.Pos = cellVec(cx, cy)
			}
		}

		if m.Dir != DirNone {
			dx, dy := m.Dir.Delta()
			if g.IsWall(cx+dx, cy+dy) {
				m.Dir = DirNone
				m.Pos = cellVec(cx, cy)
				return m
			}
		}
	}

	dx, dy := m.Dir.Delta()
	m.Pos.X += float64(dx) * speed
	m.Pos.Y += float64(dy) * speed
	return m
}
