package sufex

import (
	"testing"

	"github.com/jogojapan/sufex/sufexwork"
)

func TestZeroRangeFreqTableCumulative(t *testing.T) {
	tab := NewZeroRangeFreqTable(4)
	tab.Set(0, 2)
	tab.Set(1, 3)
	tab.Set(3, 1)
	total := MakeCumulative(tab)
	if total != 6 {
		t.Fatalf("got total %d, want 6", total)
	}
	if tab.Get(0) != 0 {
		t.Errorf("got %d, want 0", tab.Get(0))
	}
	if tab.Get(1) != 2 {
		t.Errorf("got %d, want 2", tab.Get(1))
	}
	if tab.Get(3) != 5 {
		t.Errorf("got %d, want 5", tab.Get(3))
	}
}

func TestSparseFreqTableOrderedIteration(t *testing.T) {
	tab := NewSparseFreqTable()
	tab.Add(9, 1)
	tab.Add(2, 1)
	tab.Add(5, 1)
	var order []uint32
	tab.ForEachOrdered(func(c uint32, _ int) { order = append(order, c) })
	want := []uint32{2, 5, 9}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("got %v, want %v", order, want)
			break
		}
	}
}

func TestMakeFreqTableTallies(t *testing.T) {
	items := []uint32{1, 1, 2, 3, 3, 3}
	tab := MakeFreqTable(items, func(c uint32) uint32 { return c }, NewZeroRangeFreqTable(3))
	if tab.Get(1) != 2 || tab.Get(2) != 1 || tab.Get(3) != 3 {
		t.Errorf("unexpected tallies: 1->%d 2->%d 3->%d", tab.Get(1), tab.Get(2), tab.Get(3))
	}
}

func TestAddCharFreqTableSerial(t *testing.T) {
	dst := NewZeroRangeFreqTable(3)
	dst.Set(1, 2)
	src := NewZeroRangeFreqTable(3)
	src.Set(1, 3)
	src.Set(2, 5)
	if err := AddCharFreqTable(dst, src, nil); err != nil {
		t.Fatal(err)
	}
	if dst.Get(1) != 5 || dst.Get(2) != 5 {
		t.Errorf("got 1->%d 2->%d, want 1->5 2->5", dst.Get(1), dst.Get(2))
	}
}

func TestAddCharFreqTableParallel(t *testing.T) {
	pool := sufexwork.New(4)
	defer pool.Close()
	highest := parallelAddThreshold + 10
	dst := NewZeroRangeFreqTable(highest)
	src := NewZeroRangeFreqTable(highest)
	dst.Set(5, 2)
	src.Set(5, 3)
	src.Set(uint32(highest), 7)
	if err := AddCharFreqTable(dst, src, pool); err != nil {
		t.Fatal(err)
	}
	if dst.Get(5) != 5 {
		t.Errorf("got %d, want 5", dst.Get(5))
	}
	if dst.Get(uint32(highest)) != 7 {
		t.Errorf("got %d, want 7", dst.Get(uint32(highest)))
	}
}
