package chase

// collectTile applies the pickup under the player's nearest cell.
func (g *Game) collectTile() {
	x, y := g.player.Pos.Cell()
	if !g.grid.InBounds(x, y) {
		return
	}

	switch g.grid.Consume(x, y) {
	case TilePellet:
		g.s.score += g.cfg.Scoring.Pellet
		g.emit(EventPellet, g.cfg.Scoring.Pellet, "")
	case TilePowerPellet:
		g.s.score += g.cfg.Scoring.PowerPellet
		g.powerUp()
		g.emit(EventPowerUp, g.cfg.Scoring.PowerPellet, "")
	case TileBonus:
		g.s.score += g.cfg.Scoring.Bonus
		g.emit(EventBonus, g.cfg.Scoring.Bonus, "")
	}
}

// powerUp starts or restarts power mode. Ghosts eaten in an earlier power
// period become vulnerable again.
func (g *Game) powerUp() {
	g.s.power = g.cfg.Timers.Power
	g.s.freeze = g.cfg.Timers.Freeze
	if g.s.power == 0 {
		return
	}
	for i := range g.ghosts {
		g.ghosts[i].Scared = true
		g.ghosts[i].Eaten = false
	}
}

// checkContacts tests every ghost against the player. Vulnerable ghosts are
// captured; any other live ghost in reach counts as a hit. Several hits in
// one tick are one hit.
func (g *Game) checkContacts() (hit bool) {
	reach := g.cfg.Gameplay.Proximity
	for i := range g.ghosts {
		gh := &g.ghosts[i]
		if gh.Pos.Dist(g.player.Pos) >= reach {
			continue
		}
		switch {
		case gh.Eaten:
		case gh.Scared:
			g.s.score += g.cfg.Scoring.Ghost
			gh.Scared = false
			gh.Eaten = true
			gh.respawn()
			g.emit(EventGhostCaptured, g.cfg.Scoring.Ghost, gh.ID)
		default:
			hit = true
		}
	}
	return hit
}
