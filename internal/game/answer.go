package game

// AnswerState is the resolver's arming state.
type AnswerState uint8

const (
	AnswerArmed AnswerState = iota
	AnswerLocked
)

func (s AnswerState) String() string {
	if s == AnswerLocked {
		return "locked"
	}
	return "armed"
}

// AnswerVerdict is what one resolver step decided.
type AnswerVerdict uint8

const (
	VerdictNone AnswerVerdict = iota
	VerdictCorrect
	VerdictIncorrect
	VerdictRearmed
)

// AnswerResolver turns "player is standing on an answer tile" into at most
// one verdict per arming. A correct answer holds the lock until Reset; an
// incorrect one re-arms after the cooldown elapses in tick time.
type AnswerResolver struct {
	State    AnswerState
	Cooldown float64
	Option   AnswerOption // last resolved option
	held     bool         // locked until Reset
}

// Reset re-arms the resolver for a fresh level.
func (r *AnswerResolver) Reset() {
	*r = AnswerResolver{}
}

// Step advances the cooldown and resolves the option under the player, if
// any. options maps answer cells to their bound option.
func (r *AnswerResolver) Step(dt float64, cell Cell, options map[Cell]AnswerOption, cooldown float64) AnswerVerdict {
	if r.State == AnswerLocked {
		if r.held {
			return VerdictNone
		}
		r.Cooldown -= dt
		if r.Cooldown > 0 {
			return VerdictNone
		}
		r.Cooldown = 0
		r.State = AnswerArmed
		return VerdictRearmed
	}

	opt, ok := options[cell]
	if !ok {
		return VerdictNone
	}
	r.State = AnswerLocked
	r.Option = opt
	if opt.IsCorrect {
		r.held = true
		return VerdictCorrect
	}
	r.Cooldown = cooldown
	return VerdictIncorrect
}

// Held reports whether the resolver is locked on a correct answer.
func (r *AnswerResolver) Held() bool { return r.held }
