package game

import (
	"errors"
	"testing"
)

func TestGrid_OutOfBoundsIsWall(t *testing.T) {
	g := crossGrid(t)
	cases := []Cell{{-1, 0}, {0, -1}, {15, 0}, {0, 11}, {-100, -100}, {1000, 3}}
	for _, c := range cases {
		if got := g.TileAt(c.X, c.Y); got != TileWall {
			t.Errorf("TileAt(%d,%d) = %s, want wall", c.X, c.Y, got)
		}
	}
	if got := g.TileAt(7, 5); got != TileEmpty {
		t.Errorf("TileAt(7,5) = %s, want empty", got)
	}
	if got := g.TileAt(1, 1); got != TileAnswer {
		t.Errorf("TileAt(1,1) = %s, want answer", got)
	}
}

func TestWorldToCell_FloorsNegative(t *testing.T) {
	cx, cy := WorldToCell(-0.5, 10)
	if cx != -1 || cy != 0 {
		t.Fatalf("WorldToCell(-0.5,10) = (%d,%d), want (-1,0)", cx, cy)
	}
	cx, cy = WorldToCell(127.9, 128)
	if cx != 1 || cy != 2 {
		t.Fatalf("WorldToCell(127.9,128) = (%d,%d), want (1,2)", cx, cy)
	}
}

func TestCellCenter(t *testing.T) {
	x, y := CellCenter(1, 2)
	if x != 96 || y != 160 {
		t.Fatalf("CellCenter(1,2) = (%v,%v), want (96,160)", x, y)
	}
}

func TestGrid_WorldSize(t *testing.T) {
	g := crossGrid(t)
	w, h := g.WorldSize()
	if w != 960 || h != 704 {
		t.Fatalf("WorldSize = (%v,%v), want (960,704)", w, h)
	}
}

func TestNewGrid_Rejects(t *testing.T) {
	if _, err := NewGrid(nil); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("nil rows: expected ErrEmptyGrid, got %v", err)
	}
	if _, err := NewGrid([][]TileCode{{}}); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("empty row: expected ErrEmptyGrid, got %v", err)
	}
	if _, err := NewGrid([][]TileCode{{0, 1}, {0}}); err == nil {
		t.Error("ragged rows should be rejected")
	}
	if _, err := NewGrid([][]TileCode{{0, 7}}); err == nil {
		t.Error("unknown tile code should be rejected")
	}
}

func TestParseLayout(t *testing.T) {
	rows, err := ParseLayout("#.?", "1 2", "000")
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	want := [][]TileCode{
		{TileWall, TileEmpty, TileAnswer},
		{TileWall, TileEmpty, TileAnswer},
		{TileEmpty, TileEmpty, TileEmpty},
	}
	for y := range want {
		for x := range want[y] {
			if rows[y][x] != want[y][x] {
				t.Fatalf("cell (%d,%d) = %s, want %s", x, y, rows[y][x], want[y][x])
			}
		}
	}
	if _, err := ParseLayout("#x#"); err == nil {
		t.Fatal("expected an error for an unknown character")
	}
}

func TestGrid_CellsRowMajor(t *testing.T) {
	g := crossGrid(t)
	got := g.Cells(TileAnswer)
	want := []Cell{{1, 1}, {13, 1}, {7, 9}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCollision_IsBlocked(t *testing.T) {
	g := mustGrid(t, StandardLayout)
	x, y := alignedTopLeft(7, 5)
	if g.IsBlocked(x, y, playerSize, playerPadding) {
		t.Fatal("aligned player at (7,5) should be clear")
	}
	// Step far enough up that the inset top edge enters row 4, which is a
	// wall above (7,5).
	if !g.IsBlocked(x, y-30, playerSize, playerPadding) {
		t.Fatal("box pushed into the wall above should be blocked")
	}
	// Row 5 is open sideways.
	if g.IsBlocked(x-30, y, playerSize, playerPadding) {
		t.Fatal("box moved left along row 5 should be clear")
	}
}

func TestCollision_PointSample(t *testing.T) {
	g := mustGrid(t, StandardLayout)
	if !g.IsWallAt(-1, -1) {
		t.Fatal("points outside the maze are walls")
	}
	if g.IsWallAt(CellCenter(7, 5)) {
		t.Fatal("centre of (7,5) is floor")
	}
}

// mustGrid builds a Grid from layout rows or fails the test.
func mustGrid(t *testing.T, rows []string) *Grid {
	t.Helper()
	g, err := NewGrid(MustParseLayout(rows...))
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}
