package chase

// Source is the randomness the engine consumes. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Ghost is an autonomous pursuer.
type Ghost struct {
	Mover
	ID     string
	Color  string
	Sprite string
	Scared bool // vulnerable while the power timer runs
	Eaten  bool // captured this power period; harmless until it ends

	Spawn    Vec
	SpawnDir Direction
}

// respawn puts the ghost back on its spawn cell with its spawn heading.
func (gh *Ghost) respawn() {
	gh.Pos = gh.Spawn
	gh.Dir = gh.SpawnDir
	gh.Next = DirNone
}

// Policy picks ghost headings at cell centers.
type Policy struct {
	RandomChance float64 // chance to wander instead of pursue
	BaseSpeed    float64
	ScaredSpeed  float64
}

// Speed returns the per-tick speed for the ghost's current mode.
func (p Policy) Speed(gh *Ghost) float64 {
	if gh.Scared {
		return p.ScaredSpeed
	}
	return p.BaseSpeed
}

// Decide returns the heading the ghost should take from its current cell.
//
// Walls and the reverse of the current heading are excluded (eaten ghosts may
// reverse). With no option left the ghost reverses if it can, otherwise keeps
// its heading. Otherwise exactly one Float64 is drawn: below RandomChance, or
// when scared, or when only one option exists, the pick is uniform; else the
// option whose target cell is nearest to prey wins, ties going to the earlier
// of Up, Down, Left, Right.
func (p Policy) Decide(gh *Ghost, g *Grid, prey Vec, rng Source) Direction {
	cx, cy := gh.Pos.Cell()
	reverse := gh.Dir.Opposite()

	var buf [4]Direction
	options := buf[:0]
	for _, d := range Cardinals {
		if d == reverse && !gh.Eaten {
			continue
		}
		dx, dy := d.Delta()
		if !g.IsWall(cx+dx, cy+dy) {
			options = append(options, d)
		}
	}

	if len(options) == 0 {
		if reverse != DirNone {
			dx, dy := reverse.Delta()
			if !g.IsWall(cx+dx, cy+dy) {
				return reverse
			}
		}
		return gh.Dir
	}

	roll := rng.Float64()
	if roll < p.RandomChance || gh.Scared || len(options) == 1 {
		return options[rng.Intn(len(options))]
	}

	best := options[0]
	bestDist := targetDist(cx, cy, best, prey)
	for _, d := range options[1:] {
		if dist := targetDist(cx, cy, d, prey); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

func targetDist(cx, cy int, d Direction, prey Vec) float64 {
	dx, dy := d.Delta()
	return cellVec(cx+dx, cy+dy).Dist(prey)
}
