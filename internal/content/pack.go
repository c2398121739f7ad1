// Package content loads trivia level packs and turns them into
// game.LevelDescriptor values.
package content

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

// Pack validation errors.
var (
	ErrNoLevels     = errors.New("pack has no levels")
	ErrUnknownMaze  = errors.New("level references an unknown maze")
	ErrNoQuestion   = errors.New("level has no question")
	ErrInvalidLevel = errors.New("level is invalid")
)

// Pack is a set of levels sharing named maze layouts. Layout rows use
// '#' for walls, '.' for floor and '?' for answer tiles.
type Pack struct {
	Name     string              `yaml:"name"`
	Mazes    map[string][]string `yaml:"mazes"`
	PowerUps []game.PowerUpSpec  `yaml:"powerUps"` // used by levels that list none
	Levels   []LevelConfig       `yaml:"levels"`
}

// LevelConfig is one trivia level as written in a pack.
type LevelConfig struct {
	ID       int                 `yaml:"id"`
	Name     string              `yaml:"name"`
	Question string              `yaml:"question"`
	Maze     string              `yaml:"maze"`   // key into Pack.Mazes
	Layout   []string            `yaml:"layout"` // inline rows, overrides Maze
	Start    game.Cell           `yaml:"start"`
	Options  []game.AnswerOption `yaml:"options"`
	Enemies  []game.Cell         `yaml:"enemies"`
	PowerUps []game.PowerUpSpec  `yaml:"powerUps"`
}

// LoadPack reads and validates a pack file.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack file %s: %w", path, err)
	}
	p, err := ParsePack(data)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", path, err)
	}
	return p, nil
}

// ParsePack decodes a YAML pack, fills defaults and validates every level.
func ParsePack(data []byte) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse pack YAML: %w", err)
	}
	applyDefaults(&p)
	if _, err := p.Descriptors(); err != nil {
		return nil, err
	}
	return &p, nil
}

func applyDefaults(p *Pack) {
	for i := range p.Levels {
		lc := &p.Levels[i]
		if lc.ID == 0 {
			lc.ID = i + 1
		}
		if lc.Name == "" {
			lc.Name = fmt.Sprintf("Level %d", lc.ID)
		}
	}
}

// Descriptors builds one descriptor per level, in pack order.
func (p *Pack) Descriptors() ([]game.LevelDescriptor, error) {
	if len(p.Levels) == 0 {
		return nil, ErrNoLevels
	}
	out := make([]game.LevelDescriptor, 0, len(p.Levels))
	for i := range p.Levels {
		d, err := p.descriptor(&p.Levels[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (p *Pack) descriptor(lc *LevelConfig) (game.LevelDescriptor, error) {
	if strings.TrimSpace(lc.Question) == "" {
		return game.LevelDescriptor{}, fmt.Errorf("level %d: %w", lc.ID, ErrNoQuestion)
	}
	rows := lc.Layout
	if len(rows) == 0 {
		var ok bool
		rows, ok = p.Mazes[lc.Maze]
		if !ok {
			return game.LevelDescriptor{}, fmt.Errorf("level %d maze %q: %w", lc.ID, lc.Maze, ErrUnknownMaze)
		}
	}
	tiles, err := game.ParseLayout(rows...)
	if err != nil {
		return game.LevelDescriptor{}, fmt.Errorf("level %d: %w", lc.ID, err)
	}
	powerUps := lc.PowerUps
	if powerUps == nil {
		powerUps = p.PowerUps
	}
	d := game.LevelDescriptor{
		Name:     lc.Name,
		Question: lc.Question,
		Grid:     tiles,
		Start:    lc.Start,
		Options:  append([]game.AnswerOption(nil), lc.Options...),
		Enemies:  append([]game.Cell(nil), lc.Enemies...),
		PowerUps: append([]game.PowerUpSpec(nil), powerUps...),
	}
	if err := d.Validate(); err != nil {
		return game.LevelDescriptor{}, fmt.Errorf("level %d: %w: %w", lc.ID, ErrInvalidLevel, err)
	}
	return d, nil
}

// FormatLayout renders a grid back into '#', '.', '?' rows.
func FormatLayout(tiles [][]game.TileCode) []string {
	rows := make([]string, len(tiles))
	for y, r := range tiles {
		var b strings.Builder
		for _, t := range r {
			switch t {
			case game.TileWall:
				b.WriteByte('#')
			case game.TileAnswer:
				b.WriteByte('?')
			default:
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	return rows
}
