// Package session is the game-state collaborator around the engine: it
// owns score, lives, the level index and the feedback banners, and reacts
// to engine notifications.
package session

import (
	"errors"
	"fmt"
	"log"

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

// Session rules.
const (
	PointsPerAnswer = 500
	StartingLives   = 3

	SuccessFeedbackTime = 2.5 // s before advancing to the next level
	FailFeedbackTime    = 2.0 // s
)

// Banner texts.
const (
	MsgCorrect   = "ACCESS GRANTED"
	MsgIncorrect = "WARNING: WRONG SECTOR"
	MsgCaught    = "DETECTION ERROR"
)

// ErrNoLevels is returned when a session is created without levels.
var ErrNoLevels = errors.New("session has no levels")

// Phase is the screen the session is on.
type Phase int

const (
	PhaseBriefing Phase = iota
	PhasePlaying
	PhaseResult
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseBriefing:
		return "briefing"
	case PhasePlaying:
		return "playing"
	case PhaseResult:
		return "result"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// FeedbackKind colours a banner.
type FeedbackKind int

const (
	FeedbackSuccess FeedbackKind = iota
	FeedbackFail
)

// Feedback is a timed banner shown over the maze.
type Feedback struct {
	Kind      FeedbackKind
	Message   string
	Remaining float64
}

// Observer is told about level and score changes, e.g. a HUD feed.
type Observer interface {
	SetLevel(name, question string)
	Score(score, lives int)
}

// Option configures a Session.
type Option func(*Session)

// WithEngineOptions passes options through to the engine.
func WithEngineOptions(opts ...game.EngineOption) Option {
	return func(s *Session) { s.engineOpts = append(s.engineOpts, opts...) }
}

// WithListener receives every engine notification after the session.
func WithListener(l game.Listener) Option {
	return func(s *Session) {
		if l != nil {
			s.extra = append(s.extra, l)
		}
	}
}

// WithObserver reports level and score changes to o.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// Session runs an ordered list of levels. It is single-threaded, like the
// engine it drives.
type Session struct {
	levels     []game.LevelDescriptor
	eng        *game.Engine
	engineOpts []game.EngineOption
	extra      game.Listeners
	observer   Observer

	phase    Phase
	index    int
	score    int
	lives    int
	ammo     int
	paused   bool
	feedback *Feedback
	advance  bool // move on when the success banner expires
	frame    game.RenderFrame
}

// New builds the engine on the first level and starts at its briefing.
func New(levels []game.LevelDescriptor, opts ...Option) (*Session, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	s := &Session{levels: levels}
	for _, o := range opts {
		o(s)
	}
	listeners := append(game.Listeners{s}, s.extra...)
	eng, err := game.NewEngine(levels[0], append(s.engineOpts, game.WithListener(listeners))...)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	s.eng = eng
	s.resetProgress()
	s.enterBriefing()
	return s, nil
}

func (s *Session) resetProgress() {
	s.index = 0
	s.score = 0
	s.lives = StartingLives
	s.ammo = 0
	s.feedback = nil
	s.advance = false
}

func (s *Session) enterBriefing() {
	s.phase = PhaseBriefing
	d := s.levels[s.index]
	if s.observer != nil {
		s.observer.SetLevel(d.Name, d.Question)
		s.observer.Score(s.score, s.lives)
	}
}

// Engage leaves the briefing and starts play.
func (s *Session) Engage() {
	if s.phase == PhaseBriefing {
		s.phase = PhasePlaying
	}
}

// Restart goes back to the first level with full lives and no score.
func (s *Session) Restart() error {
	if err := s.eng.Load(s.levels[0]); err != nil {
		return err
	}
	s.resetProgress()
	s.enterBriefing()
	log.Printf("[Session] restarted")
	return nil
}

// SetPaused pauses play without leaving the current phase.
func (s *Session) SetPaused(p bool) { s.paused = p }

// Update advances banners and, while playing, the engine. The engine is
// ticked paused in every other phase so frames stay current.
func (s *Session) Update(dt float64, in game.Input) (game.RenderFrame, error) {
	playing := s.phase == PhasePlaying
	s.eng.Pause(!playing || s.paused)
	if !playing || s.paused {
		in = game.Input{}
	}
	s.frame = s.eng.Tick(dt, in)

	if s.feedback != nil && !s.paused {
		s.feedback.Remaining -= dt
		if s.feedback.Remaining <= 0 {
			s.feedback = nil
			if s.advance {
				s.advance = false
				if err := s.nextLevel(); err != nil {
					return s.frame, err
				}
			}
		}
	}
	return s.frame, nil
}

func (s *Session) nextLevel() error {
	if s.index >= len(s.levels)-1 {
		s.phase = PhaseResult
		log.Printf("[Session] all %d levels cleared, score %d", len(s.levels), s.score)
		return nil
	}
	s.index++
	if err := s.eng.Load(s.levels[s.index]); err != nil {
		return err
	}
	s.enterBriefing()
	return nil
}

func (s *Session) show(kind FeedbackKind, msg string, d float64) {
	s.feedback = &Feedback{Kind: kind, Message: msg, Remaining: d}
}

// OnCorrectAnswer implements game.Listener.
func (s *Session) OnCorrectAnswer() {
	s.score += PointsPerAnswer
	s.show(FeedbackSuccess, MsgCorrect, SuccessFeedbackTime)
	s.advance = true
	if s.observer != nil {
		s.observer.Score(s.score, s.lives)
	}
}

// OnIncorrectAnswer implements game.Listener.
func (s *Session) OnIncorrectAnswer() {
	s.show(FeedbackFail, MsgIncorrect, FailFeedbackTime)
}

// OnEnemyCollision implements game.Listener.
func (s *Session) OnEnemyCollision() {
	s.lives--
	if s.lives <= 0 {
		s.lives = 0
		s.phase = PhaseGameOver
		log.Printf("[Session] game over on level %d, score %d", s.index+1, s.score)
	}
	s.show(FeedbackFail, MsgCaught, FailFeedbackTime)
	if s.observer != nil {
		s.observer.Score(s.score, s.lives)
	}
}

// OnAmmoChanged implements game.Listener.
func (s *Session) OnAmmoChanged(ammo int) { s.ammo = ammo }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the points earned so far.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Ammo returns the last ammo count reported by the engine.
func (s *Session) Ammo() int { return s.ammo }

// LevelNumber is the 1-based index of the current level.
func (s *Session) LevelNumber() int { return s.index + 1 }

// LevelCount returns the number of levels.
func (s *Session) LevelCount() int { return len(s.levels) }

// Level returns the current level descriptor.
func (s *Session) Level() game.LevelDescriptor { return s.levels[s.index] }

// Feedback returns the active banner, or nil.
func (s *Session) Feedback() *Feedback { return s.feedback }

// Paused reports the session pause flag.
func (s *Session) Paused() bool { return s.paused }

// Engine returns the engine driven by the session.
func (s *Session) Engine() *game.Engine { return s.eng }

// Frame returns the frame produced by the last Update.
func (s *Session) Frame() game.RenderFrame { return s.frame }
