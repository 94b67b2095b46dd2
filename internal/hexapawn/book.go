package hexapawn

import (
	"fmt"

	"github.com/rocketscienceinc/hexapawn/internal/apperror"
	"github.com/rocketscienceinc/hexapawn/internal/entity"
)

type bookEntry struct {
	position string
	moves    MoveOptionSet
}

// seedEntries - every position black can face after a player move, up to
// mirroring, with the moves black starts out considering there.
var seedEntries = []bookEntry{
	{"XXX" + "O.." + ".OO", NewMoveOptionSet(24, 25, 36, 0)},
	{"XXX" + ".O." + "O.O", NewMoveOptionSet(14, 15, 36, 0)},
	{"X.X" + "XO." + "..O", NewMoveOptionSet(15, 35, 36, 47)},
	{".XX" + "OX." + "..O", NewMoveOptionSet(36, 58, 59, 0)},
	{"X.X" + "OO." + ".O.", NewMoveOptionSet(15, 35, 36, 0)},
	{"XX." + "O.O" + "..O", NewMoveOptionSet(24, 25, 26, 0)},
	{".XX" + ".XO" + "O..", NewMoveOptionSet(26, 57, 58, 0)},
	{".XX" + "XOO" + "O..", NewMoveOptionSet(26, 35, 0, 0)},
	{"X.X" + "X.O" + ".O.", NewMoveOptionSet(47, 48, 0, 0)},
	{".XX" + ".O." + "..O", NewMoveOptionSet(35, 36, 0, 0)},
	{".XX" + ".O." + "O..", NewMoveOptionSet(35, 36, 0, 0)},
	{"X.X" + "O.." + "..O", NewMoveOptionSet(36, 0, 0, 0)},
	{"..X" + "XXO" + "...", NewMoveOptionSet(47, 58, 0, 0)},
	{"X.." + "OOO" + "...", NewMoveOptionSet(15, 0, 0, 0)},
	{".X." + "XOO" + "...", NewMoveOptionSet(26, 47, 0, 0)},
	{"X.." + "XXO" + "...", NewMoveOptionSet(47, 58, 0, 0)},
	{"..X" + "XO." + "...", NewMoveOptionSet(35, 36, 47, 0)},
	{".X." + "OX." + "...", NewMoveOptionSet(28, 58, 0, 0)},
	{"X.." + "XO." + "...", NewMoveOptionSet(15, 47, 0, 0)},
}

// PositionBook - maps positions to their move options. Each option set lives
// once in sets; the canonical and the mirrored key both hold its index, so
// learning through one key is seen through the other.
type PositionBook struct {
	sets      []MoveOptionSet
	canonical []entity.Board
	primary   map[entity.Board]int
	mirror    map[entity.Board]int
}

// NewPositionBook - builds the book with its initial bead counts.
func NewPositionBook() *PositionBook {
	return newPositionBook(seedEntries)
}

func newPositionBook(entries []bookEntry) *PositionBook {
	book := &PositionBook{
		sets:      make([]MoveOptionSet, 0, len(entries)),
		canonical: make([]entity.Board, 0, len(entries)),
		primary:   make(map[entity.Board]int, len(entries)),
		mirror:    make(map[entity.Board]int, len(entries)),
	}

	for _, entry := range entries {
		position := entity.MustParseBoard(entry.position)
		if _, ok := book.primary[position]; ok {
			panic(fmt.Sprintf("duplicate book position %s", position))
		}

		book.sets = append(book.sets, entry.moves)
		book.canonical = append(book.canonical, position)
		book.primary[position] = len(book.sets) - 1
	}

	for position, index := range book.primary {
		book.mirror[position.Transposed()] = index
	}

	return book
}

// Lookup - finds the option set for a position where black is to move.
// mirrored tells that only the transposed position is in the book.
func (that *PositionBook) Lookup(board entity.Board) (*MoveOptionSet, bool, error) {
	if index, ok := that.primary[board]; ok {
		return &that.sets[index], false, nil
	}

	if index, ok := that.mirror[board]; ok {
		return &that.sets[index], true, nil
	}

	return nil, false, fmt.Errorf("%w: %s", apperror.ErrIllegalPosition, board)
}

// positions - the canonical positions in seeding order.
func (that *PositionBook) positions() []entity.Board {
	positions := make([]entity.Board, len(that.canonical))
	copy(positions, that.canonical)

	return positions
}

func (that *PositionBook) Len() int {
	return len(that.sets)
}

// Exhausted - number of positions in which black has no move left to try.
func (that *PositionBook) Exhausted() int {
	count := 0
	for i := range that.sets {
		if !that.sets[i].HasAnyNonZero() {
			count++
		}
	}

	return count
}
