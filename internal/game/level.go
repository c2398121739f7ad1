package game

import (
	"errors"
	"fmt"
	"log"
)

// Descriptor validation errors.
var (
	ErrNoAnswerOption    = errors.New("answer option is not on an answer tile")
	ErrUnboundAnswerTile = errors.New("answer tile has no bound option")
	ErrDuplicateOption   = errors.New("answer tile has more than one option")
	ErrStartBlocked      = errors.New("start cell is not walkable")
	ErrNoCorrectAnswer   = errors.New("level has no correct answer")
)

// AnswerOption is one trivia answer pinned to an answer tile.
type AnswerOption struct {
	Text      string `yaml:"text" json:"text"`
	IsCorrect bool   `yaml:"correct" json:"correct"`
	Cell      Cell   `yaml:"at" json:"at"`
}

// PowerUpKind selects the effect of a pickup.
type PowerUpKind string

const (
	PowerUpShield PowerUpKind = "shield"
	PowerUpWeapon PowerUpKind = "weapon"
)

// PowerUpSpec places one power-up in a level.
type PowerUpSpec struct {
	Kind PowerUpKind `yaml:"type" json:"type"`
	Cell Cell        `yaml:"at" json:"at"`
}

// LevelDescriptor is the finished level a content provider hands the
// engine. Grid rows are indexed [y][x].
type LevelDescriptor struct {
	Name     string
	Question string
	Grid     [][]TileCode
	Start    Cell
	Options  []AnswerOption
	Enemies  []Cell
	PowerUps []PowerUpSpec
}

// level is a validated descriptor with its grid built and placements
// sanitized. The engine only ever works from a level.
type level struct {
	desc     LevelDescriptor
	grid     *Grid
	options  map[Cell]AnswerOption
	enemies  []Cell
	powerUps []PowerUpSpec
}

// Validate checks the descriptor without building engine state.
func (d LevelDescriptor) Validate() error {
	_, err := compileLevel(d)
	return err
}

// compileLevel validates d and drops enemy and power-up placements that sit
// on walls. Structural problems are errors.
func compileLevel(d LevelDescriptor) (*level, error) {
	g, err := NewGrid(d.Grid)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", d.Name, err)
	}
	if g.TileAt(d.Start.X, d.Start.Y) == TileWall {
		return nil, fmt.Errorf("level %q start (%d,%d): %w", d.Name, d.Start.X, d.Start.Y, ErrStartBlocked)
	}

	lv := &level{
		desc:    d,
		grid:    g,
		options: make(map[Cell]AnswerOption, len(d.Options)),
	}
	hasCorrect := false
	for _, o := range d.Options {
		if g.TileAt(o.Cell.X, o.Cell.Y) != TileAnswer {
			return nil, fmt.Errorf("level %q option %q at (%d,%d): %w", d.Name, o.Text, o.Cell.X, o.Cell.Y, ErrNoAnswerOption)
		}
		if _, dup := lv.options[o.Cell]; dup {
			return nil, fmt.Errorf("level %q cell (%d,%d): %w", d.Name, o.Cell.X, o.Cell.Y, ErrDuplicateOption)
		}
		lv.options[o.Cell] = o
		hasCorrect = hasCorrect || o.IsCorrect
	}
	for _, c := range g.Cells(TileAnswer) {
		if _, ok := lv.options[c]; !ok {
			return nil, fmt.Errorf("level %q cell (%d,%d): %w", d.Name, c.X, c.Y, ErrUnboundAnswerTile)
		}
	}
	if !hasCorrect {
		return nil, fmt.Errorf("level %q: %w", d.Name, ErrNoCorrectAnswer)
	}

	for _, c := range d.Enemies {
		if g.TileAt(c.X, c.Y) == TileWall {
			log.Printf("[Engine] level %q: dropping enemy on wall cell (%d,%d)", d.Name, c.X, c.Y)
			continue
		}
		lv.enemies = append(lv.enemies, c)
	}
	for _, p := range d.PowerUps {
		if p.Kind != PowerUpShield && p.Kind != PowerUpWeapon {
			log.Printf("[Engine] level %q: dropping power-up of unknown type %q", d.Name, p.Kind)
			continue
		}
		if g.TileAt(p.Cell.X, p.Cell.Y) == TileWall {
			log.Printf("[Engine] level %q: dropping %s power-up on wall cell (%d,%d)", d.Name, p.Kind, p.Cell.X, p.Cell.Y)
			continue
		}
		lv.powerUps = append(lv.powerUps, p)
	}
	return lv, nil
}

// CorrectCell returns the cell of the first correct option.
func (d LevelDescriptor) CorrectCell() (Cell, bool) {
	for _, o := range d.Options {
		if o.IsCorrect {
			return o.Cell, true
		}
	}
	return Cell{}, false
}
