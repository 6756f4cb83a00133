package grid

import "testing"

func TestSetIsCopyOnWrite(t *testing.T) {
	var g Grid
	g2 := g.Set(3, 3, 'a')

	if g.Get(3, 3) != Empty {
		t.Error("Set must not mutate the receiver")
	}
	if g2.Get(3, 3) != 'a' {
		t.Error("Set must write into the returned copy")
	}
}

func TestIsEmptyAndFilledCount(t *testing.T) {
	var g Grid
	if !g.IsEmpty() {
		t.Fatal("zero-value Grid should be empty")
	}
	g = g.Set(0, 0, 'x').Set(7, 7, 'y')
	if g.IsEmpty() {
		t.Error("grid with filled cells reported empty")
	}
	if got := g.FilledCount(); got != 2 {
		t.Errorf("FilledCount() = %d, want 2", got)
	}
}

func TestConnected4(t *testing.T) {
	var g Grid
	if !g.Connected4() {
		t.Error("empty grid should be vacuously connected")
	}

	// A single horizontal run is connected.
	g = Grid{}
	g[3][2], g[3][3], g[3][4] = 'c', 'a', 't'
	if !g.Connected4() {
		t.Error("single contiguous run should be connected")
	}

	// Two disjoint runs are not connected.
	g2 := Grid{}
	g2[0][0], g2[0][1], g2[0][2] = 'c', 'a', 't'
	g2[7][5], g2[7][6], g2[7][7] = 'd', 'o', 'g'
	if g2.Connected4() {
		t.Error("two disjoint runs should not be connected")
	}
}

func TestGetOutOfBounds(t *testing.T) {
	var g Grid
	if got := g.Get(-1, 0); got != Empty {
		t.Errorf("Get out of bounds = %q, want Empty", got)
	}
	if got := g.Get(0, 8); got != Empty {
		t.Errorf("Get out of bounds = %q, want Empty", got)
	}
}
