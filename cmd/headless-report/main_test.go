package main

import (
	"testing"

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

func TestAggregate_GroupsByLevelInOrder(t *testing.T) {
	all := []runStats{
		{levelIndex: 0, levelName: "Level 1", summary: game.RunSummary{Outcome: game.OutcomeCleared, ClearedAt: 100, Shots: 2, Hits: 1}},
		{levelIndex: 0, levelName: "Level 1", summary: game.RunSummary{Outcome: game.OutcomeDied, Deaths: 3}},
		{levelIndex: 1, levelName: "Level 2", summary: game.RunSummary{Outcome: game.OutcomeTimeout, Incorrect: 2}},
		{levelIndex: 0, levelName: "Level 1", summary: game.RunSummary{Outcome: game.OutcomeCleared, ClearedAt: 200, Pickups: 1}},
	}

	got := aggregate(all)
	if len(got) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(got))
	}
	l1 := got[0]
	if l1.levelName != "Level 1" || l1.runs != 3 || l1.cleared != 2 || l1.died != 1 || l1.timeouts != 0 {
		t.Fatalf("unexpected level 1 aggregate: %+v", l1)
	}
	if l1.deaths != 3 || l1.shots != 2 || l1.hits != 1 || l1.pickups != 1 {
		t.Fatalf("unexpected level 1 totals: %+v", l1)
	}
	if s := avgTickString(l1.clearTicks); s != "150.0" {
		t.Fatalf("expected avg clear tick 150.0, got %s", s)
	}
	l2 := got[1]
	if l2.runs != 1 || l2.timeouts != 1 || l2.incorrect != 2 {
		t.Fatalf("unexpected level 2 aggregate: %+v", l2)
	}
}

func TestHelpers(t *testing.T) {
	if avg(3, 0) != 0 {
		t.Errorf("avg with n=0 should be 0")
	}
	if avg(3, 2) != 1.5 {
		t.Errorf("avg(3,2) = %v", avg(3, 2))
	}
	if avgTickString(nil) != "n/a" {
		t.Errorf("empty avgTickString should be n/a")
	}
	if hitRate(1, 0) != "n/a" {
		t.Errorf("hitRate without shots should be n/a")
	}
	if got := hitRate(1, 4); got != "25%" {
		t.Errorf("hitRate(1,4) = %s", got)
	}
}

func TestRunLevel_ClearsOpenCorridor(t *testing.T) {
	desc := game.LevelDescriptor{
		Name:     "corridor",
		Question: "Pick left",
		Grid: game.MustParseLayout(
			"#######",
			"#?...?#",
			"#######",
		),
		Start: game.Cell{X: 3, Y: 1},
		Options: []game.AnswerOption{
			{Text: "left", IsCorrect: true, Cell: game.Cell{X: 1, Y: 1}},
			{Text: "right", Cell: game.Cell{X: 5, Y: 1}},
		},
	}

	rs, err := runLevel(0, desc, 1, 7, 600, 3)
	if err != nil {
		t.Fatalf("runLevel: %v", err)
	}
	if rs.summary.Outcome != game.OutcomeCleared {
		t.Fatalf("expected cleared, got %s after %d ticks", rs.summary.Outcome, rs.summary.Ticks)
	}
	if rs.summary.Incorrect != 0 {
		t.Fatalf("autopilot should avoid the wrong tile, got %d incorrect", rs.summary.Incorrect)
	}
}
