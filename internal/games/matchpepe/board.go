package matchpepe

import "math/rand"

// Board is one round: a size x size grid where every cell shows a tile from
// the round's set. Cell 0 is the anchor; the round is solved when every
// other cell shows the same tile as the anchor.
type Board struct {
	size  int
	set   []int // Indices into Tiles drawn for this round
	cells []int // Position in set shown by each cell
}

// NewBoard draws size*size distinct tiles and lays them out in draw order.
// size is capped so the round never needs more tiles than exist.
func NewBoard(rng *rand.Rand, size int) *Board {
	size = capSize(size)
	n := size * size
	b := &Board{
		size:  size,
		set:   rng.Perm(len(Tiles))[:n],
		cells: make([]int, n),
	}
	for i := range b.cells {
		b.cells[i] = i
	}
	return b
}

// capSize bounds a grid size by the tile set.
func capSize(size int) int {
	if size < 1 {
		size = 1
	}
	for size*size > len(Tiles) {
		size--
	}
	return size
}

// Size returns the grid width and height in cells.
func (b *Board) Size() int {
	return b.size
}

// Len returns the number of cells.
func (b *Board) Len() int {
	return len(b.cells)
}

// Tile returns the tile shown by cell i.
func (b *Board) Tile(i int) Tile {
	return Tiles[b.set[b.cells[i]]]
}

// Select advances cell i to the next tile of the round's set, wrapping
// around. The anchor and out of range cells cannot be selected.
func (b *Board) Select(i int) bool {
	if i <= 0 || i >= len(b.cells) {
		return false
	}
	b.cells[i] = (b.cells[i] + 1) % len(b.set)
	return true
}

// Solved reports whether every cell matches the anchor.
func (b *Board) Solved() bool {
	for _, c := range b.cells {
		if c != b.cells[0] {
			return false
		}
	}
	return true
}

// MovesLeft returns the fewest selections that solve the board.
func (b *Board) MovesLeft() int {
	n := 0
	for _, c := range b.cells[1:] {
		n += (b.cells[0] - c + len(b.set)) % len(b.set)
	}
	return n
}
