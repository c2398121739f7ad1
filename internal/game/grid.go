package game

import (
	"errors"
	"fmt"
	"math"
)

// TileCode identifies the content of one maze cell.
type TileCode uint8

const (
	TileEmpty  TileCode = iota // open floor
	TileWall                   // impassable
	TileAnswer                 // open floor bound to an answer option
	tileCodeCount
)

func (t TileCode) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TileAnswer:
		return "answer"
	default:
		return fmt.Sprintf("tile(%d)", uint8(t))
	}
}

// ErrEmptyGrid is returned for grids without rows or columns.
var ErrEmptyGrid = errors.New("grid has no cells")

// Cell is an integer grid coordinate.
type Cell struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Grid is the static maze for one level. It is never mutated after NewGrid.
type Grid struct {
	cols  int
	rows  int
	tiles []TileCode
}

// NewGrid copies rows into a Grid. All rows must have the same length and
// contain only known tile codes.
func NewGrid(rows [][]TileCode) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	cols := len(rows[0])
	g := &Grid{cols: cols, rows: len(rows), tiles: make([]TileCode, cols*len(rows))}
	for y, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("grid row %d has %d cells, want %d", y, len(row), cols)
		}
		for x, t := range row {
			if t >= tileCodeCount {
				return nil, fmt.Errorf("grid cell (%d,%d) has unknown tile code %d", x, y, t)
			}
			g.tiles[y*cols+x] = t
		}
	}
	return g, nil
}

// Cols returns the grid width in cells.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in cells.
func (g *Grid) Rows() int { return g.rows }

// WorldSize returns the maze extent in world units.
func (g *Grid) WorldSize() (float64, float64) {
	return float64(g.cols * TileSize), float64(g.rows * TileSize)
}

// InBounds reports whether (cx, cy) addresses a real cell.
func (g *Grid) InBounds(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < g.cols && cy < g.rows
}

// TileAt returns the tile at (cx, cy). Anything outside the grid is a wall.
func (g *Grid) TileAt(cx, cy int) TileCode {
	if !g.InBounds(cx, cy) {
		return TileWall
	}
	return g.tiles[cy*g.cols+cx]
}

// Cells returns every cell holding tile t, in row-major order.
func (g *Grid) Cells(t TileCode) []Cell {
	var out []Cell
	for i, v := range g.tiles {
		if v == t {
			out = append(out, Cell{X: i % g.cols, Y: i / g.cols})
		}
	}
	return out
}

// WorldToCell converts world coordinates to a cell by floor division, so
// negative coordinates land outside the grid rather than in cell 0.
func WorldToCell(wx, wy float64) (int, int) {
	return int(math.Floor(wx / TileSize)), int(math.Floor(wy / TileSize))
}

// CellCenter returns the world-space centre of cell (cx, cy).
func CellCenter(cx, cy int) (float64, float64) {
	return float64(cx*TileSize) + TileSize/2, float64(cy*TileSize) + TileSize/2
}

// ParseLayout turns text rows into tile rows. '#' or '1' is a wall, '.',
// ' ' or '0' is floor and '?' or '2' is an answer tile.
func ParseLayout(rows ...string) ([][]TileCode, error) {
	out := make([][]TileCode, len(rows))
	for y, r := range rows {
		row := make([]TileCode, 0, len(r))
		for x, ch := range r {
			switch ch {
			case '#', '1':
				row = append(row, TileWall)
			case '.', ' ', '0':
				row = append(row, TileEmpty)
			case '?', '2':
				row = append(row, TileAnswer)
			default:
				return nil, fmt.Errorf("layout row %d col %d: unknown tile %q", y, x, ch)
			}
		}
		out[y] = row
	}
	return out, nil
}

// MustParseLayout is ParseLayout for static layouts; it panics on error.
func MustParseLayout(rows ...string) [][]TileCode {
	t, err := ParseLayout(rows...)
	if err != nil {
		panic(err)
	}
	return t
}
