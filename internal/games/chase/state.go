package chase

// Phase is the session's position in the game lifecycle.
type Phase uint8

const (
	PhasePaused Phase = iota
	PhaseRunning
	PhaseWon
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePaused:
		return "paused"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseGameOver
}

// session holds the scalar game state. Score never decreases and lives never
// go below zero.
type session struct {
	score  int
	lives  int
	phase  Phase
	power  int // ticks of power mode left
	freeze int // ticks ghosts stay frozen
}

// EventKind identifies something that happened during a tick.
type EventKind uint8

const (
	EventPellet EventKind = iota + 1
	EventPowerUp
	EventBonus
	EventGhostCaptured
	EventPowerEnded
	EventLifeLost
	EventGameOver
	EventWon
)

func (k EventKind) String() string {
	switch k {
	case EventPellet:
		return "pellet"
	case EventPowerUp:
		return "power_up"
	case EventBonus:
		return "bonus"
	case EventGhostCaptured:
		return "ghost_captured"
	case EventPowerEnded:
		return "power_ended"
	case EventLifeLost:
		return "life_lost"
	case EventGameOver:
		return "game_over"
	case EventWon:
		return "won"
	default:
		return "unknown"
	}
}

// Event is emitted by Tick. Points is the score delta, if any.
type Event struct {
	Kind    EventKind
	Tick    uint64
	Points  int
	GhostID string
}

// emit records an event for the current tick.
func (g *Game) emit(kind EventKind, points int, ghostID string) {
	g.events = append(g.events, Event{Kind: kind, Tick: g.tick, Points: points, GhostID: ghostID})
}

// start moves a paused session into play.
func (g *Game) start() {
	if g.s.phase == PhasePaused {
		g.s.phase = PhaseRunning
	}
}

// advanceTimers counts the power and freeze timers down by one tick.
// Power reaching zero ends scared and eaten states in the same tick.
func (g *Game) advanceTimers() {
	if g.s.freeze > 0 {
		g.s.freeze--
	}
	if g.s.power > 0 {
		g.s.power--
		if g.s.power == 0 {
			for i := range g.ghosts {
				g.ghosts[i].Scared = false
				g.ghosts[i].Eaten = false
			}
			g.emit(EventPowerEnded, 0, "")
		}
	}
}

// settle resolves the end of a tick. Clearing the board wins even if a
// ghost touched the player on the same tick.
func (g *Game) settle(hit bool) {
	switch {
	case g.grid.Remaining() == 0:
		g.s.phase = PhaseWon
		g.emit(EventWon, 0, "")
	case hit:
		g.loseLife()
	}
}

// loseLife takes one life. With lives to spare every entity goes back to its
// spawn and the session pauses until the next direction input.
func (g *Game) loseLife() {
	if g.s.lives <= 1 {
		g.s.lives = 0
		g.s.phase = PhaseGameOver
		g.emit(EventGameOver, 0, "")
		return
	}
	g.s.lives--
	g.s.phase = PhasePaused
	g.s.power = 0
	g.s.freeze = 0
	g.placeEntities()
	g.emit(EventLifeLost, 0, "")
}
