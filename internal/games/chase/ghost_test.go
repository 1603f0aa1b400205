package chase

import "testing"

// junction is a plus-shaped crossing with its center at (3, 2).
func junction(t *testing.T) *Grid {
	t.Helper()
	return mustGrid(t,
		"#######",
		"###.###",
		"#.....#",
		"###.###",
		"#######",
	)
}

func TestDecidePursuesCurrentPreyPosition(t *testing.T) {
	g := junction(t)
	p := Policy{RandomChance: 0.3}
	gh := &Ghost{Mover: Mover{Pos: Vec{3, 2}, Dir: DirRight}}

	tests := []struct {
		name string
		prey Vec
		want Direction
	}{
		{"prey below", Vec{3, 4}, DirDown},
		{"prey above", Vec{3, 0}, DirUp},
		{"prey right", Vec{6, 2}, DirRight},
		{"prey behind picks nearest legal", Vec{0, 2.2}, DirDown},
		{"tie broken up first", Vec{3, 2}, DirUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{floats: []float64{0.9}}
			if got := p.Decide(gh, g, tt.prey, src); got != tt.want {
				t.Errorf("Decide = %v, want %v", got, tt.want)
			}
			if len(src.floats) != 0 {
				t.Error("pursuit did not draw its roll")
			}
		})
	}
}

func TestDecideRandomBranches(t *testing.T) {
	g := junction(t)
	p := Policy{RandomChance: 0.3}
	prey := Vec{3, 4}

	// Legal options from (3, 2) heading right: up, down, right.
	tests := []struct {
		name   string
		scared bool
		roll   float64
		pick   int
		want   Direction
	}{
		{"low roll wanders", false, 0.1, 2, DirRight},
		{"scared ignores high roll", true, 0.9, 0, DirUp},
		{"scared picks second", true, 0.5, 1, DirDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := &Ghost{Mover: Mover{Pos: Vec{3, 2}, Dir: DirRight}, Scared: tt.scared}
			src := &scriptedSource{floats: []float64{tt.roll}, ints: []int{tt.pick}}
			if got := p.Decide(gh, g, prey, src); got != tt.want {
				t.Errorf("Decide = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecideNeverReversesUnlessEaten(t *testing.T) {
	g := mustGrid(t, "#####", "#...#", "#####")
	p := Policy{RandomChance: 0}
	prey := Vec{1, 1}

	gh := &Ghost{Mover: Mover{Pos: Vec{2, 1}, Dir: DirRight}}
	src := &scriptedSource{floats: []float64{0.9}, ints: []int{0}}
	if got := p.Decide(gh, g, prey, src); got != DirRight {
		t.Errorf("live ghost Decide = %v, want right (reverse excluded)", got)
	}

	gh.Eaten = true
	src = &scriptedSource{floats: []float64{0.9}}
	if got := p.Decide(gh, g, prey, src); got != DirLeft {
		t.Errorf("eaten ghost Decide = %v, want left toward prey", got)
	}
}

func TestDecideDeadEnd(t *testing.T) {
	g := mustGrid(t, "#####", "#...#", "#####")
	p := Policy{RandomChance: 0.3}

	gh := &Ghost{Mover: Mover{Pos: Vec{3, 1}, Dir: DirRight}}
	// No draws are scripted: a dead end must not consume randomness.
	if got := p.Decide(gh, g, Vec{1, 1}, &scriptedSource{}); got != DirLeft {
		t.Errorf("dead end Decide = %v, want left", got)
	}

	boxed := mustGrid(t, "###", "# #", "###")
	gh = &Ghost{Mover: Mover{Pos: Vec{1, 1}, Dir: DirUp}}
	if got := p.Decide(gh, boxed, Vec{0, 0}, &scriptedSource{}); got != DirUp {
		t.Errorf("boxed Decide = %v, want current heading", got)
	}
}

func TestPolicySpeed(t *testing.T) {
	p := Policy{BaseSpeed: 0.064, ScaredSpeed: 0.048}
	gh := &Ghost{}
	if p.Speed(gh) != 0.064 {
		t.Errorf("Speed = %v, want base", p.Speed(gh))
	}
	gh.Scared = true
	if p.Speed(gh) != 0.048 {
		t.Errorf("scared Speed = %v, want scared speed", p.Speed(gh))
	}
}
