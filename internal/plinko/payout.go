package plinko

// JackpotPayout is paid for every landed column not in slotPayouts: the
// center slot.
const JackpotPayout = 10000

// slotPayouts is symmetric around column 9. Columns 7 and 11 pay nothing on
// purpose.
var slotPayouts = map[int]int{
	1: 100, 17: 100,
	3: 500, 15: 500,
	5: 1000, 13: 1000,
	7: 0, 11: 0,
}

// PayoutFor returns the prize for a landed grid column.
func PayoutFor(column int) int {
	if p, ok := slotPayouts[column]; ok {
		return p
	}
	return JackpotPayout
}

// Slot is one landing slot at the bottom of the board.
type Slot struct {
	Column int // odd grid column
	Payout int
}

// Slots returns the nine landing slots from left to right.
func Slots() []Slot {
	slots := make([]Slot, 0, StartColumns)
	for c := MinColumn; c <= MaxColumn; c += 2 {
		slots = append(slots, Slot{Column: c, Payout: PayoutFor(c)})
	}
	return slots
}
