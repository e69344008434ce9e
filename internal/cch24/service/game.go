package service

import (
	"strings"
	"sync"

	pkgerrors "codehunt/pkg/errors"
)

const (
	BoardSize  = 4
	RandomSeed = 2024

	wall   = "⬜"
	empty  = "⬛"
	cookie = "🍪"
	milk   = "🥛"
)

// Tile is the content of one board cell.
type Tile int

const (
	TileEmpty Tile = iota
	TileCookie
	TileMilk
)

func (t Tile) String() string {
	switch t {
	case TileCookie:
		return cookie
	case TileMilk:
		return milk
	default:
		return empty
	}
}

// ParseTeam maps a team name from the URL to its tile.
func ParseTeam(team string) (Tile, error) {
	switch team {
	case "cookie":
		return TileCookie, nil
	case "milk":
		return TileMilk, nil
	default:
		return TileEmpty, pkgerrors.Newf(pkgerrors.InvalidParams, "unknown team %q", team)
	}
}

// Board is a 4x4 cookies and milk grid. Row 0 is the top row.
type Board struct {
	cells [BoardSize][BoardSize]Tile
}

// Winner returns the tile owning a full row, column or diagonal. The second
// result is true when the game is over, either by a win or a full board.
func (b *Board) Winner() (Tile, bool) {
	line := func(get func(i int) Tile) Tile {
		first := get(0)
		for i := 1; i < BoardSize; i++ {
			if get(i) != first {
				return TileEmpty
			}
		}
		return first
	}
	lines := make([]func(int) Tile, 0, 2*BoardSize+2)
	for k := 0; k < BoardSize; k++ {
		row, col := k, k
		lines = append(lines,
			func(i int) Tile { return b.cells[row][i] },
			func(i int) Tile { return b.cells[i][col] },
		)
	}
	lines = append(lines,
		func(i int) Tile { return b.cells[i][i] },
		func(i int) Tile { return b.cells[i][BoardSize-1-i] },
	)
	for _, get := range lines {
		if t := line(get); t != TileEmpty {
			return t, true
		}
	}
	for _, row := range b.cells {
		for _, t := range row {
			if t == TileEmpty {
				return TileEmpty, false
			}
		}
	}
	return TileEmpty, true
}

// String draws the board with its walls and, once the game is over, the result.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.cells {
		sb.WriteString(wall)
		for _, t := range row {
			sb.WriteString(t.String())
		}
		sb.WriteString(wall + "\n")
	}
	sb.WriteString(strings.Repeat(wall, BoardSize+2) + "\n")
	if winner, over := b.Winner(); over {
		if winner == TileEmpty {
			sb.WriteString("No winner.\n")
		} else {
			sb.WriteString(winner.String() + " wins!\n")
		}
	}
	return sb.String()
}

// Game is the shared board plus the generator behind random boards.
type Game struct {
	mu    sync.Mutex
	board Board
	rng   *chachaRNG
}

func NewGame() *Game {
	return &Game{rng: newChaChaRNG(RandomSeed)}
}

// Reset empties the board and reseeds the generator.
func (g *Game) Reset() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.board = Board{}
	g.rng = newChaChaRNG(RandomSeed)
	return g.board.String()
}

// Board renders the current board.
func (g *Game) Board() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.String()
}

// Place drops tile into column (1 based). When the game is over or the
// column is full the board is returned together with the error.
func (g *Game) Place(tile Tile, column int) (string, error) {
	if column < 1 || column > BoardSize {
		return "", pkgerrors.Newf(pkgerrors.InvalidParams, "column must be between 1 and %d", BoardSize)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, over := g.board.Winner(); over {
		return g.board.String(), pkgerrors.New(pkgerrors.GameOver)
	}
	col := column - 1
	for row := BoardSize - 1; row >= 0; row-- {
		if g.board.cells[row][col] == TileEmpty {
			g.board.cells[row][col] = tile
			return g.board.String(), nil
		}
	}
	return g.board.String(), pkgerrors.New(pkgerrors.ColumnFull)
}

// RandomBoard replaces the board with the next random one, filled row by row.
func (g *Game) RandomBoard() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for row := range g.board.cells {
		for col := range g.board.cells[row] {
			if g.rng.Bool() {
				g.board.cells[row][col] = TileCookie
			} else {
				g.board.cells[row][col] = TileMilk
			}
		}
	}
	return g.board.String()
}
