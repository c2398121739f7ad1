package game

// RunOutcome classifies how a level attempt ended.
type RunOutcome int

const (
	OutcomeTimeout RunOutcome = iota
	OutcomeCleared
	OutcomeDied
)

func (o RunOutcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomeDied:
		return "died"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// RunSummary is the per-attempt tally extracted from a SimLog.
type RunSummary struct {
	Outcome    RunOutcome
	Ticks      int
	Deaths     int
	Incorrect  int
	Shots      int
	Hits       int
	Pickups    int
	ClearedAt  int // tick of the correct answer, -1 if never
	PathCalcs  int
	NoPathRuns int
}

// SummarizeRun tallies log events. maxDeaths > 0 turns the run into a
// death outcome once that many deaths were logged without clearing.
func SummarizeRun(log *SimLog, ticks, maxDeaths int) RunSummary {
	s := RunSummary{
		Ticks:      ticks,
		Deaths:     log.CountCategory("player", "death"),
		Incorrect:  log.CountCategory("answer", "incorrect"),
		Shots:      log.CountCategory("combat", "fire"),
		Hits:       log.CountCategory("combat", "hit"),
		Pickups:    log.CountCategory("powerup", "pickup"),
		PathCalcs:  log.CountCategory("enemy", "path"),
		NoPathRuns: log.CountCategory("enemy", "no_path"),
		ClearedAt:  -1,
	}
	switch e, ok := log.LastOf("answer", "correct"); {
	case ok:
		s.Outcome = OutcomeCleared
		s.ClearedAt = e.Tick
	case maxDeaths > 0 && s.Deaths >= maxDeaths:
		s.Outcome = OutcomeDied
	default:
		s.Outcome = OutcomeTimeout
	}
	return s
}
