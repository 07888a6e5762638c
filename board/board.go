package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyBoard  = errors.New("board must have at least one row and one column")
	ErrRaggedBoard = errors.New("board rows must all have the same length")
)

// A Tile is a coordinate on the board. Interior tiles run from (1, 1) to
// (rows, cols); row and column 0 and rows+1 / cols+1 are the border.
type Tile struct {
	Row int
	Col int
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.Row, t.Col)
}

// A TileGenerator produces the contents of one tile per call.
type TileGenerator func() string

// neighborOffsets lists the eight compass neighbors in reading order:
// up-left, up, up-right, left, right, down-left, down, down-right.
var neighborOffsets = [8]Tile{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// A Board is an immutable grid of tile contents, wrapped in a one-tile
// border of empty strings. The border means any neighbor of an interior
// tile can be looked up without a bounds check; it just reads as "".
type Board struct {
	rows    int
	cols    int
	squares [][]string
}

// MakeBoard fills a rows x cols board by calling gen once per tile, in
// reading order.
func MakeBoard(rows, cols int, gen TileGenerator) (*Board, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrEmptyBoard
	}
	interior := make([][]string, rows)
	for r := range interior {
		interior[r] = make([]string, cols)
		for c := range interior[r] {
			interior[r][c] = gen()
		}
	}
	return wrap(interior), nil
}

// BoardFromRows builds a board from explicit tile contents. The rows are
// copied; the caller may reuse the slice.
func BoardFromRows(rows [][]string) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyBoard
	}
	for _, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, ErrRaggedBoard
		}
	}
	return wrap(rows), nil
}

func wrap(interior [][]string) *Board {
	rows, cols := len(interior), len(interior[0])
	squares := make([][]string, rows+2)
	squares[0] = make([]string, cols+2)
	for r, row := range interior {
		squares[r+1] = make([]string, cols+2)
		copy(squares[r+1][1:], row)
	}
	squares[rows+1] = make([]string, cols+2)
	return &Board{rows: rows, cols: cols, squares: squares}
}

// Dim returns the number of rows and columns, not counting the border.
func (b *Board) Dim() (int, int) {
	return b.rows, b.cols
}

func (b *Board) posExists(t Tile) bool {
	return t.Row >= 0 && t.Row < b.rows+2 && t.Col >= 0 && t.Col < b.cols+2
}

// Letter returns the contents of the tile, or "" for the border.
func (b *Board) Letter(t Tile) string {
	if !b.posExists(t) {
		return ""
	}
	return b.squares[t.Row][t.Col]
}

// Neighbors returns the eight tiles around t in a fixed order. Neighbors of
// an edge tile include border tiles.
func (b *Board) Neighbors(t Tile) [8]Tile {
	var n [8]Tile
	for i, off := range neighborOffsets {
		n[i] = Tile{t.Row + off.Row, t.Col + off.Col}
	}
	return n
}

// Tiles returns every interior tile in reading order.
func (b *Board) Tiles() []Tile {
	tiles := make([]Tile, 0, b.rows*b.cols)
	for r := 1; r <= b.rows; r++ {
		for c := 1; c <= b.cols; c++ {
			tiles = append(tiles, Tile{r, c})
		}
	}
	return tiles
}

// Rows returns a copy of the interior tile contents.
func (b *Board) Rows() [][]string {
	rows := make([][]string, b.rows)
	for r := range rows {
		rows[r] = append([]string(nil), b.squares[r+1][1:b.cols+1]...)
	}
	return rows
}

// ToDisplayText renders the board with columns padded to the widest tile.
func (b *Board) ToDisplayText() string {
	width := 1
	for _, t := range b.Tiles() {
		width = max(width, utf8.RuneCountInString(b.Letter(t)))
	}
	var sb strings.Builder
	for r := 1; r <= b.rows; r++ {
		for c := 1; c <= b.cols; c++ {
			l := b.Letter(Tile{r, c})
			sb.WriteString(l)
			if c < b.cols {
				sb.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(l)+1))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.ToDisplayText()
}
