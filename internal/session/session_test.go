package session

import (
	"errors"
	"testing"

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

func boxLevel(name string, enemies ...game.Cell) game.LevelDescriptor {
	return game.LevelDescriptor{
		Name:     name,
		Question: name + "?",
		Grid: game.MustParseLayout(
			"#####",
			"#?.?#",
			"#...#",
			"#####",
		),
		Start: game.Cell{X: 2, Y: 2},
		Options: []game.AnswerOption{
			{Text: "left", IsCorrect: true, Cell: game.Cell{X: 1, Y: 1}},
			{Text: "right", Cell: game.Cell{X: 3, Y: 1}},
		},
		Enemies: enemies,
	}
}

// place centres the player on c.
func place(p *game.Player, c game.Cell) {
	px, py := p.Center()
	cx, cy := game.CellCenter(c.X, c.Y)
	p.X += cx - px
	p.Y += cy - py
}

func mustUpdate(t *testing.T, s *Session, n int, dt float64) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := s.Update(dt, game.Input{}); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

type recordingObserver struct {
	levels []string
	scores [][2]int
}

func (r *recordingObserver) SetLevel(name, _ string) { r.levels = append(r.levels, name) }
func (r *recordingObserver) Score(score, lives int)  { r.scores = append(r.scores, [2]int{score, lives}) }

func TestNew_NoLevels(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoLevels) {
		t.Fatalf("expected ErrNoLevels, got %v", err)
	}
}

func TestSession_BriefingIgnoresInput(t *testing.T) {
	s, err := New([]game.LevelDescriptor{boxLevel("one")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Phase() != PhaseBriefing || s.Lives() != StartingLives || s.Score() != 0 {
		t.Fatalf("unexpected start: phase=%s lives=%d score=%d", s.Phase(), s.Lives(), s.Score())
	}
	before := s.Engine().State().Player.X
	for i := 0; i < 30; i++ {
		if _, err := s.Update(game.SimDT, game.Input{Move: game.Vec2{X: 1}}); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Engine().State().Player.X; got != before {
		t.Fatalf("player moved during briefing: %.1f -> %.1f", before, got)
	}

	s.Engage()
	for i := 0; i < 10; i++ {
		if _, err := s.Update(game.SimDT, game.Input{Move: game.Vec2{X: 1}}); err != nil {
			t.Fatal(err)
		}
	}
	if s.Engine().State().Player.X <= before {
		t.Fatal("player should move once engaged")
	}
}

func TestSession_CorrectAdvancesAfterBanner(t *testing.T) {
	obs := &recordingObserver{}
	s, err := New([]game.LevelDescriptor{boxLevel("one"), boxLevel("two")}, WithObserver(obs))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Engage()
	place(&s.Engine().State().Player, game.Cell{X: 1, Y: 1})
	mustUpdate(t, s, 1, game.SimDT)

	if s.Score() != PointsPerAnswer {
		t.Fatalf("score: got %d, want %d", s.Score(), PointsPerAnswer)
	}
	fb := s.Feedback()
	if fb == nil || fb.Kind != FeedbackSuccess || fb.Message != MsgCorrect {
		t.Fatalf("expected success banner, got %+v", fb)
	}

	mustUpdate(t, s, 20, 0.1)
	if s.Phase() != PhasePlaying || s.LevelNumber() != 1 {
		t.Fatalf("advanced too early: phase=%s level=%d", s.Phase(), s.LevelNumber())
	}
	mustUpdate(t, s, 10, 0.1)
	if s.Phase() != PhaseBriefing || s.LevelNumber() != 2 {
		t.Fatalf("expected briefing of level 2, got phase=%s level=%d", s.Phase(), s.LevelNumber())
	}
	if s.Engine().Level().Name != "two" {
		t.Fatalf("engine level: %q", s.Engine().Level().Name)
	}
	if len(obs.levels) != 2 || obs.levels[1] != "two" {
		t.Fatalf("observer levels: %v", obs.levels)
	}

	s.Engage()
	place(&s.Engine().State().Player, game.Cell{X: 1, Y: 1})
	mustUpdate(t, s, 30, 0.1)
	if s.Phase() != PhaseResult || s.Score() != 2*PointsPerAnswer {
		t.Fatalf("expected result with %d, got phase=%s score=%d", 2*PointsPerAnswer, s.Phase(), s.Score())
	}
}

func TestSession_IncorrectShowsBannerOnly(t *testing.T) {
	s, err := New([]game.LevelDescriptor{boxLevel("one")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Engage()
	place(&s.Engine().State().Player, game.Cell{X: 3, Y: 1})
	mustUpdate(t, s, 1, game.SimDT)

	fb := s.Feedback()
	if fb == nil || fb.Kind != FeedbackFail || fb.Message != MsgIncorrect {
		t.Fatalf("expected fail banner, got %+v", fb)
	}
	if s.Score() != 0 || s.Lives() != StartingLives {
		t.Fatalf("wrong answer must not cost points or lives: score=%d lives=%d", s.Score(), s.Lives())
	}
	mustUpdate(t, s, 21, 0.1)
	if s.Feedback() != nil {
		t.Fatal("fail banner should expire after 2s")
	}
	if s.Phase() != PhasePlaying {
		t.Fatalf("phase: %s", s.Phase())
	}
}

func TestSession_LivesAndRestart(t *testing.T) {
	s, err := New([]game.LevelDescriptor{boxLevel("one", game.Cell{X: 1, Y: 2})})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Engage()

	catch := func() {
		st := s.Engine().State()
		st.Player.RespawnGrace = 0
		px, py := st.Player.Center()
		st.Enemies[0].X, st.Enemies[0].Y = px, py
		mustUpdate(t, s, 1, game.SimDT)
	}

	for want := StartingLives - 1; want > 0; want-- {
		catch()
		if s.Lives() != want {
			t.Fatalf("lives: got %d, want %d", s.Lives(), want)
		}
		if fb := s.Feedback(); fb == nil || fb.Message != MsgCaught {
			t.Fatalf("expected caught banner, got %+v", fb)
		}
		mustUpdate(t, s, 15, 0.1) // level resets after the death freeze
		if s.Engine().State().Player.Dead {
			t.Fatal("player should be back after the death freeze")
		}
	}
	catch()
	if s.Phase() != PhaseGameOver || s.Lives() != 0 {
		t.Fatalf("expected game over, got phase=%s lives=%d", s.Phase(), s.Lives())
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Phase() != PhaseBriefing || s.Lives() != StartingLives || s.Score() != 0 || s.LevelNumber() != 1 {
		t.Fatalf("restart state: phase=%s lives=%d score=%d level=%d", s.Phase(), s.Lives(), s.Score(), s.LevelNumber())
	}
	if s.Engine().State().Player.Dead {
		t.Fatal("restart should revive the player")
	}
}

func TestSession_PauseHoldsEverything(t *testing.T) {
	s, err := New([]game.LevelDescriptor{boxLevel("one")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Engage()
	place(&s.Engine().State().Player, game.Cell{X: 3, Y: 1})
	mustUpdate(t, s, 1, game.SimDT)

	s.SetPaused(true)
	left := s.Feedback().Remaining
	x := s.Engine().State().Player.X
	for i := 0; i < 30; i++ {
		if _, err := s.Update(0.1, game.Input{Move: game.Vec2{X: -1}}); err != nil {
			t.Fatal(err)
		}
	}
	if s.Feedback() == nil || s.Feedback().Remaining != left {
		t.Fatal("banner should not count down while paused")
	}
	if s.Engine().State().Player.X != x {
		t.Fatal("player moved while paused")
	}
}

func TestPhase_String(t *testing.T) {
	if PhaseGameOver.String() != "game_over" || PhasePlaying.String() != "playing" {
		t.Fatal("unexpected phase names")
	}
}
