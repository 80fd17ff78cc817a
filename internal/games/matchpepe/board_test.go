package matchpepe

import (
	"math/rand"
	"testing"
)

func TestNewBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		size     int
		wantSize int
	}{
		{2, 2},
		{3, 3},
		{5, 5},
		{6, 5}, // 36 tiles would exceed the set
		{0, 1},
	}

	for _, tt := range tests {
		b := NewBoard(rng, tt.size)
		if b.Size() != tt.wantSize {
			t.Errorf("NewBoard(%d).Size() = %d, want %d", tt.size, b.Size(), tt.wantSize)
		}
		if b.Len() != tt.wantSize*tt.wantSize {
			t.Errorf("NewBoard(%d).Len() = %d", tt.size, b.Len())
		}

		// Tiles start distinct
		seen := make(map[Tile]bool)
		for i := 0; i < b.Len(); i++ {
			if seen[b.Tile(i)] {
				t.Errorf("NewBoard(%d): tile %c repeated", tt.size, b.Tile(i).Glyph)
			}
			seen[b.Tile(i)] = true
		}
	}
}

func TestBoardSelectCycles(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(2)), 2)

	if b.Select(0) {
		t.Error("anchor should not be selectable")
	}
	if b.Select(4) || b.Select(-1) {
		t.Error("out of range cells should not be selectable")
	}

	start := b.Tile(1)
	for i := 0; i < b.Len(); i++ {
		if !b.Select(1) {
			t.Fatal("Select(1) failed")
		}
	}
	if b.Tile(1) != start {
		t.Error("selecting a cell Len() times should come back to its first tile")
	}
}

func TestBoardSolve(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(3)), 3)
	if b.Solved() {
		t.Fatal("fresh board should not be solved")
	}

	// Cell i starts at set position i and needs Len()-i selections
	want := 0
	for i := 1; i < b.Len(); i++ {
		want += b.Len() - i
	}
	if got := b.MovesLeft(); got != want {
		t.Errorf("MovesLeft() = %d, want %d", got, want)
	}

	for i := 1; i < b.Len(); i++ {
		for n := 0; n < b.Len()-i; n++ {
			if b.Solved() {
				t.Fatalf("solved early at cell %d", i)
			}
			b.Select(i)
		}
		if b.Tile(i) != b.Tile(0) {
			t.Fatalf("cell %d does not match the anchor", i)
		}
	}
	if !b.Solved() {
		t.Error("board should be solved")
	}
	if b.MovesLeft() != 0 {
		t.Errorf("MovesLeft() = %d on a solved board", b.MovesLeft())
	}
}
