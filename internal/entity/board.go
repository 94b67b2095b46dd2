package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Square - content of one board cell.
type Square uint8

const (
	Empty Square = iota
	Black
	White
)

const (
	BoardSize = 9
	RowSize   = 3
)

var ErrInvalidBoard = errors.New("invalid board pattern")

// whiteCaptures and blackCaptures list, per square, the squares one row ahead
// in an adjacent column. Index 0 is unused.
var (
	whiteCaptures = [BoardSize + 1][]int{
		4: {2},
		5: {1, 3},
		6: {2},
		7: {5},
		8: {4, 6},
		9: {5},
	}
	blackCaptures = [BoardSize + 1][]int{
		1: {5},
		2: {4, 6},
		3: {5},
		4: {8},
		5: {7, 9},
		6: {8},
	}
)

func (that Square) String() string {
	switch that {
	case Black:
		return "X"
	case White:
		return "O"
	default:
		return "."
	}
}

// Board - the 3x3 grid, squares numbered 1-9 in row-major order.
// Being an array it compares by content and can be used as a map key.
type Board [BoardSize]Square

// StartBoard - computer pawns on the first row, player pawns on the last.
func StartBoard() Board {
	return Board{
		Black, Black, Black,
		Empty, Empty, Empty,
		White, White, White,
	}
}

// ParseBoard - reads nine symbols ("X", "O" or ".") in row-major order.
func ParseBoard(pattern string) (Board, error) {
	var board Board

	if len(pattern) != BoardSize {
		return board, fmt.Errorf("%w: %q has %d squares", ErrInvalidBoard, pattern, len(pattern))
	}

	for i, symbol := range pattern {
		switch symbol {
		case 'X':
			board[i] = Black
		case 'O':
			board[i] = White
		case '.':
			board[i] = Empty
		default:
			return board, fmt.Errorf("%w: unknown symbol %q", ErrInvalidBoard, symbol)
		}
	}

	return board, nil
}

func MustParseBoard(pattern string) Board {
	board, err := ParseBoard(pattern)
	if err != nil {
		panic(err)
	}

	return board
}

func OnBoard(pos int) bool {
	return pos >= 1 && pos <= BoardSize
}

// Get - returns the piece at the given position (1 through 9).
func (that Board) Get(pos int) Square {
	mustBeOnBoard(pos)
	return that[pos-1]
}

// Set - puts the piece at the given position (1 through 9).
func (that *Board) Set(pos int, value Square) {
	mustBeOnBoard(pos)
	that[pos-1] = value
}

func (that Board) Copy() Board {
	return that
}

// ApplyMove - moves whatever stands on move.From to move.To, capturing anything there.
func (that *Board) ApplyMove(move Move) {
	piece := that.Get(move.From)
	that.Set(move.From, Empty)
	that.Set(move.To, piece)
}

// PlayerWins - a white pawn reached the first row, or no black pawn is left.
func (that Board) PlayerWins() bool {
	return that.Get(1) == White || that.Get(2) == White || that.Get(3) == White ||
		!that.has(Black)
}

// ComputerWins - a black pawn reached the last row, no white pawn is left,
// or the player has nothing to move.
func (that Board) ComputerWins() bool {
	return that.ComputerWinReason() != ReasonNone
}

// ComputerWinReason - tells why ComputerWins holds, or ReasonNone.
func (that Board) ComputerWinReason() WinReason {
	switch {
	case that.Get(7) == Black || that.Get(8) == Black || that.Get(9) == Black:
		return ReasonAdvance
	case !that.has(White):
		return ReasonCapture
	case !that.PlayerHasMove():
		return ReasonBlocked
	default:
		return ReasonNone
	}
}

// PlayerWinReason - tells why PlayerWins holds, or ReasonNone.
func (that Board) PlayerWinReason() WinReason {
	switch {
	case that.Get(1) == White || that.Get(2) == White || that.Get(3) == White:
		return ReasonAdvance
	case !that.has(Black):
		return ReasonCapture
	default:
		return ReasonNone
	}
}

// IsLegalPlayerMove - white moves toward square 1: straight ahead (-3) into
// an empty square, or diagonally (-2 or -4) onto a black pawn in an adjacent column.
func (that Board) IsLegalPlayerMove(from, to int) bool {
	if !OnBoard(from) || !OnBoard(to) {
		return false
	}

	if that.Get(from) != White || that.Get(to) == White {
		return false
	}

	switch to - from {
	case -3:
		return that.Get(to) == Empty
	case -2, -4:
		return that.Get(to) == Black && contains(whiteCaptures[from], to)
	default:
		return false
	}
}

// IsLegalComputerMove - mirror image of IsLegalPlayerMove for black, which moves toward square 9.
func (that Board) IsLegalComputerMove(from, to int) bool {
	if !OnBoard(from) || !OnBoard(to) {
		return false
	}

	if that.Get(from) != Black || that.Get(to) == Black {
		return false
	}

	switch to - from {
	case 3:
		return that.Get(to) == Empty
	case 2, 4:
		return that.Get(to) == White && contains(blackCaptures[from], to)
	default:
		return false
	}
}

func (that Board) PlayerHasMove() bool {
	for pos := 4; pos <= BoardSize; pos++ {
		if that.Get(pos) != White {
			continue
		}

		if that.Get(pos-3) == Empty {
			return true
		}

		for _, target := range whiteCaptures[pos] {
			if that.Get(target) == Black {
				return true
			}
		}
	}

	return false
}

func (that Board) ComputerHasMove() bool {
	for pos := 1; pos <= BoardSize-RowSize; pos++ {
		if that.Get(pos) != Black {
			continue
		}

		if that.Get(pos+3) == Empty {
			return true
		}

		for _, target := range blackCaptures[pos] {
			if that.Get(target) == White {
				return true
			}
		}
	}

	return false
}

// Transposed - returns the board flipped left to right.
func (that Board) Transposed() Board {
	return Board{
		that[2], that[1], that[0],
		that[5], that[4], that[3],
		that[8], that[7], that[6],
	}
}

// Rows - the three rows as symbol strings, top row first.
func (that Board) Rows() [RowSize]string {
	var rows [RowSize]string
	for rank := 0; rank < RowSize; rank++ {
		var sb strings.Builder
		for file := 0; file < RowSize; file++ {
			sb.WriteString(that[rank*RowSize+file].String())
		}
		rows[rank] = sb.String()
	}

	return rows
}

func (that Board) String() string {
	var sb strings.Builder
	for _, square := range that {
		sb.WriteString(square.String())
	}

	return sb.String()
}

func (that Board) has(piece Square) bool {
	for _, square := range that {
		if square == piece {
			return true
		}
	}

	return false
}

func mustBeOnBoard(pos int) {
	if !OnBoard(pos) {
		panic(fmt.Sprintf("board position %d out of range [1,%d]", pos, BoardSize))
	}
}

func contains(squares []int, pos int) bool {
	for _, square := range squares {
		if square == pos {
			return true
		}
	}

	return false
}
