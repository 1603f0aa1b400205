package chase

import "fmt"

// Tile is the kind of a single maze cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWall
	TilePellet
	TilePowerPellet
	TileGhostHouse
	TileBonus
)

func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TilePellet:
		return "pellet"
	case TilePowerPellet:
		return "power"
	case TileGhostHouse:
		return "house"
	case TileBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// Consumable reports whether the player picks the tile up on entry.
func (t Tile) Consumable() bool {
	switch t {
	case TilePellet, TilePowerPellet, TileBonus:
		return true
	default:
		return false
	}
}

// tileFromRune maps layout characters to tiles.
func tileFromRune(r rune) (Tile, bool) {
	switch r {
	case ' ':
		return TileEmpty, true
	case '#':
		return TileWall, true
	case '.':
		return TilePellet, true
	case 'o':
		return TilePowerPellet, true
	case 'H':
		return TileGhostHouse, true
	case '$':
		return TileBonus, true
	default:
		return TileEmpty, false
	}
}

// Grid is the maze: a fixed-size tile matrix stored row-major.
// Out-of-bounds cells behave as walls. Consumable tiles turn Empty once eaten.
type Grid struct {
	w, h    int
	tiles   []Tile
	pellets int // Pellet + PowerPellet tiles left
}

// ParseGrid builds a grid from text rows.
// '#' wall, '.' pellet, 'o' power pellet, '$' bonus, 'H' ghost house, ' ' empty.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("chase: empty layout")
	}
	g := &Grid{w: len(rows[0]), h: len(rows)}
	g.tiles = make([]Tile, 0, g.w*g.h)
	for y, row := range rows {
		if len(row) != g.w {
			return nil, fmt.Errorf("chase: layout row %d has width %d, expected %d", y, len(row), g.w)
		}
		for x, r := range row {
			t, ok := tileFromRune(r)
			if !ok {
				return nil, fmt.Errorf("chase: unknown tile %q at (%d, %d)", r, x, y)
			}
			g.tiles = append(g.tiles, t)
			if t == TilePellet || t == TilePowerPellet {
				g.pellets++
			}
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// IsWall is true for wall tiles and for any out-of-bounds coordinate.
func (g *Grid) IsWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.tiles[y*g.w+x] == TileWall
}

// TileAt returns the tile at an in-bounds coordinate.
// Out-of-bounds access is a caller bug and panics.
func (g *Grid) TileAt(x, y int) Tile {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("chase: TileAt(%d, %d) outside %dx%d grid", x, y, g.w, g.h))
	}
	return g.tiles[y*g.w+x]
}

// Consume empties a Pellet, PowerPellet or Bonus tile and returns what was there.
// Any other tile is left alone and TileEmpty is returned.
func (g *Grid) Consume(x, y int) Tile {
	t := g.TileAt(x, y)
	if !t.Consumable() {
		return TileEmpty
	}
	g.tiles[y*g.w+x] = TileEmpty
	if t == TilePellet || t == TilePowerPellet {
		g.pellets--
	}
	return t
}

// Remaining counts Pellet and PowerPellet tiles. Bonus tiles are not counted.
func (g *Grid) Remaining() int {
	return g.pellets
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := *g
	c.tiles = make([]Tile, len(g.tiles))
	copy(c.tiles, g.tiles)
	return &c
}

// Rows returns a copy of the tiles as a matrix indexed [y][x].
func (g *Grid) Rows() [][]Tile {
	rows := make([][]Tile, g.h)
	for y := range rows {
		rows[y] = make([]Tile, g.w)
		copy(rows[y], g.tiles[y*g.w:(y+1)*g.w])
	}
	return rows
}

// Perturbation holds per-pellet chances applied once when a session starts.
type Perturbation struct {
	Bonus float64
	Empty float64
	Power float64
}

// Perturb rolls every Pellet tile in row-major order. Each roll draws fresh
// numbers in a fixed order: Bonus first, then Empty, then PowerPellet; the
// first hit wins. The draw order is part of the determinism contract.
func (g *Grid) Perturb(rng Source, p Perturbation) {
	for i, t := range g.tiles {
		if t != TilePellet {
			continue
		}
		switch {
		case rng.Float64() < p.Bonus:
			g.tiles[i] = TileBonus
			g.pellets--
		case rng.Float64() < p.Empty:
			g.tiles[i] = TileEmpty
			g.pellets--
		case rng.Float64() < p.Power:
			g.tiles[i] = TilePowerPellet
		}
	}
}
