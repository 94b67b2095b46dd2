package hexapawn

import "fmt"

// SlotCount - black never has more than four moves in a book position.
const SlotCount = 4

// MoveOptionSet - the four matchboxes of one board position. A slot holds an
// encoded move (see Encode) or 0 once the move has been ruled out.
type MoveOptionSet struct {
	slots [SlotCount]int
}

func NewMoveOptionSet(s1, s2, s3, s4 int) MoveOptionSet {
	return MoveOptionSet{slots: [SlotCount]int{s1, s2, s3, s4}}
}

// Get - returns the slot value for index 1 through 4.
func (that *MoveOptionSet) Get(index int) int {
	mustBeSlot(index)
	return that.slots[index-1]
}

// Clear - empties the slot for good.
func (that *MoveOptionSet) Clear(index int) {
	mustBeSlot(index)
	that.slots[index-1] = 0
}

func (that *MoveOptionSet) HasAnyNonZero() bool {
	for _, slot := range that.slots {
		if slot != 0 {
			return true
		}
	}

	return false
}

func (that *MoveOptionSet) String() string {
	return fmt.Sprintf("MoveOptionSet%v", that.slots)
}

func mustBeSlot(index int) {
	if index < 1 || index > SlotCount {
		panic(fmt.Sprintf("option slot %d out of range [1,%d]", index, SlotCount))
	}
}
