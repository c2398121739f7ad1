package content

import (
	"context"
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

//go:embed packs/*.yaml
var embeddedPacks embed.FS

// DefaultPackFile is the embedded pack shipped with the game.
const DefaultPackFile = "packs/default.yaml"

// Source supplies the ordered level list for a session.
type Source interface {
	Levels(ctx context.Context) ([]game.LevelDescriptor, error)
}

// DefaultPack parses the embedded pack.
func DefaultPack() (*Pack, error) {
	data, err := embeddedPacks.ReadFile(DefaultPackFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded pack: %w", err)
	}
	return ParsePack(data)
}

// EmbeddedSource serves the pack compiled into the binary.
type EmbeddedSource struct{}

// Levels implements Source.
func (EmbeddedSource) Levels(context.Context) ([]game.LevelDescriptor, error) {
	p, err := DefaultPack()
	if err != nil {
		return nil, err
	}
	return p.Descriptors()
}

// DirSource loads every *.yaml / *.yml pack in Dir, in file name order,
// and concatenates their levels.
type DirSource struct {
	Dir string
}

// Levels implements Source.
func (s DirSource) Levels(ctx context.Context) ([]game.LevelDescriptor, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory %s: %w", s.Dir, err)
	}
	var names []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []game.LevelDescriptor
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := LoadPack(filepath.Join(s.Dir, name))
		if err != nil {
			return nil, err
		}
		ds, err := p.Descriptors()
		if err != nil {
			return nil, err
		}
		log.Printf("[Content] loaded %d levels from %s", len(ds), name)
		out = append(out, ds...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("level directory %s: %w", s.Dir, ErrNoLevels)
	}
	return out, nil
}
