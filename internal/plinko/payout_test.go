package plinko

import "testing"

func TestPayoutFor(t *testing.T) {
	tests := []struct {
		column int
		want   int
	}{
		{1, 100},
		{17, 100},
		{3, 500},
		{15, 500},
		{5, 1000},
		{13, 1000},
		{7, 0},
		{11, 0},
		{9, 10000},
	}

	for _, tc := range tests {
		if got := PayoutFor(tc.column); got != tc.want {
			t.Errorf("PayoutFor(%d) = %d, want %d", tc.column, got, tc.want)
		}
	}
}

func TestSlotsSymmetric(t *testing.T) {
	slots := Slots()
	if len(slots) != StartColumns {
		t.Fatalf("got %d slots, want %d", len(slots), StartColumns)
	}

	for i, s := range slots {
		mirror := slots[len(slots)-1-i]
		if s.Payout != mirror.Payout {
			t.Errorf("slot %d pays %d but its mirror pays %d", s.Column, s.Payout, mirror.Payout)
		}
		if s.Column != GridColumn(i+1) {
			t.Errorf("slot %d sits on column %d, want %d", i, s.Column, GridColumn(i+1))
		}
	}
	if slots[4].Payout != JackpotPayout {
		t.Errorf("center slot pays %d, want %d", slots[4].Payout, JackpotPayout)
	}
}
