package chase

// Snapshot is a read-only copy of everything a renderer or test needs.
type Snapshot struct {
	Tick  uint64
	Phase Phase
	Tiles [][]Tile // [y][x]

	Player     MoverView
	PlayerName string
	Ghosts     []GhostView

	Score    int
	Lives    int
	Paused   bool
	GameOver bool
	Won      bool

	PowerTicks  int
	FreezeTicks int
	PelletsLeft int
}

// MoverView is an entity's position and heading.
type MoverView struct {
	X, Y float64
	Dir  Direction
}

// GhostView is a ghost as seen from outside the engine.
type GhostView struct {
	MoverView
	ID     string
	Color  string
	Sprite string
	Scared bool
	Eaten  bool
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	ghosts := make([]GhostView, len(g.ghosts))
	for i, gh := range g.ghosts {
		ghosts[i] = GhostView{
			MoverView: MoverView{X: gh.Pos.X, Y: gh.Pos.Y, Dir: gh.Dir},
			ID:        gh.ID,
			Color:     gh.Color,
			Sprite:    gh.Sprite,
			Scared:    gh.Scared,
			Eaten:     gh.Eaten,
		}
	}

	return Snapshot{
		Tick:        g.tick,
		Phase:       g.s.phase,
		Tiles:       g.grid.Rows(),
		Player:      MoverView{X: g.player.Pos.X, Y: g.player.Pos.Y, Dir: g.player.Dir},
		PlayerName:  g.playerName,
		Ghosts:      ghosts,
		Score:       g.s.score,
		Lives:       g.s.lives,
		Paused:      g.s.phase == PhasePaused,
		GameOver:    g.s.phase == PhaseGameOver,
		Won:         g.s.phase == PhaseWon,
		PowerTicks:  g.s.power,
		FreezeTicks: g.s.freeze,
		PelletsLeft: g.grid.Remaining(),
	}
}
