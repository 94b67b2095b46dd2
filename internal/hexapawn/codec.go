package hexapawn

import "github.com/rocketscienceinc/hexapawn/internal/entity"

// reflection maps every square onto its counterpart in the mirrored column.
var reflection = [entity.BoardSize + 1]int{0, 3, 2, 1, 6, 5, 4, 9, 8, 7}

// Reflect - column 1 <-> column 3, the middle column stays.
func Reflect(square int) int {
	if !entity.OnBoard(square) {
		return square
	}

	return reflection[square]
}

// Encode - packs a move into the two-digit form stored in the book.
func Encode(from, to int) int {
	return from*10 + to
}

// Decode - unpacks a slot value. When the position matched through its
// mirror image, both squares are reflected back onto the real board.
func Decode(value int, mirrored bool) entity.Move {
	from, to := value/10, value%10
	if mirrored {
		from, to = Reflect(from), Reflect(to)
	}

	return entity.Move{From: from, To: to}
}
