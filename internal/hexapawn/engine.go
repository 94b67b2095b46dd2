package hexapawn

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/hexapawn/internal/apperror"
	"github.com/rocketscienceinc/hexapawn/internal/entity"
)

// Random - source of slot draws.
type Random interface {
	Intn(n int) int
}

// NewRandom - seeded generator for the engine; seed 0 picks one from the clock.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewSource(seed))
}

// Selection - outcome of one computer turn: a move, or resignation.
type Selection struct {
	Move   entity.Move
	Resign bool
}

type lastChoice struct {
	set      *MoveOptionSet
	slot     int
	mirrored bool
}

// Engine - picks black's moves from the book and learns from lost games.
type Engine struct {
	book   *PositionBook
	random Random

	last *lastChoice
}

func NewEngine(book *PositionBook, random Random) *Engine {
	return &Engine{
		book:   book,
		random: random,
	}
}

func (that *Engine) Book() *PositionBook {
	return that.book
}

// Exhausted - positions in which the engine would resign.
func (that *Engine) Exhausted() int {
	return that.book.Exhausted()
}

// StartGame - forgets the move of the previous game, so it cannot be punished
// for a loss in the new one.
func (that *Engine) StartGame() {
	that.last = nil
}

// SelectMove - draws one of the moves still alive for the position.
// An unknown position yields ErrIllegalPosition; a position with nothing
// left to try makes the computer resign. Resigning keeps the previous
// selection pending, so the move that led into the lost position is the
// one punished.
func (that *Engine) SelectMove(board entity.Board) (Selection, error) {
	set, mirrored, err := that.book.Lookup(board)
	if err != nil {
		return Selection{}, fmt.Errorf("failed to look up position: %w", err)
	}

	// the draw loop below only ends when some slot is non-zero
	if !set.HasAnyNonZero() {
		return Selection{Resign: true}, nil
	}

	var slot, value int
	for value == 0 {
		slot = that.random.Intn(SlotCount) + 1
		value = set.Get(slot)
	}

	that.last = &lastChoice{
		set:      set,
		slot:     slot,
		mirrored: mirrored,
	}

	return Selection{Move: Decode(value, mirrored)}, nil
}

// PunishLastMove - rules out the move chosen by the latest selection, in
// the position it was chosen for, and returns it. Each selection can be
// punished once.
func (that *Engine) PunishLastMove() (entity.Move, error) {
	if that.last == nil {
		return entity.Move{}, apperror.ErrNoMoveToPunish
	}

	move := Decode(that.last.set.Get(that.last.slot), that.last.mirrored)
	that.last.set.Clear(that.last.slot)
	that.last = nil

	return move, nil
}
