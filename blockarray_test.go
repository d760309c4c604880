package sufex

import (
	"testing"

	"github.com/jogojapan/sufex/sufexpool"
)

func TestBlockArrayGrowSetGet(t *testing.T) {
	pool := sufexpool.New(4)
	a, err := NewBlockArray[uint32](pool, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Resize(10); err != nil {
		t.Fatal(err)
	}
	if a.Len() != 10 {
		t.Fatalf("got len %d, want 10", a.Len())
	}
	for i := 0; i < 10; i++ {
		if err := a.Set(i, uint32(i*i)); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 10; i++ {
		v, err := a.Get(i)
		if err != nil {
			t.Fatal(err)
		}
		if v != uint32(i*i) {
			t.Errorf("index %d: got %d, want %d", i, v, i*i)
		}
	}
}

func TestBlockArrayShrinkFreesBlocks(t *testing.T) {
	pool := sufexpool.New(4)
	a, err := NewBlockArray[uint32](pool, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Resize(10); err != nil {
		t.Fatal(err)
	}
	if err := a.Resize(3); err != nil {
		t.Fatal(err)
	}
	if a.Len() != 3 {
		t.Fatalf("got len %d, want 3", a.Len())
	}
	if _, err := a.Get(3); err == nil {
		t.Errorf("expected out-of-range error after shrink")
	}
}

func TestBlockArrayMismatchedElemSize(t *testing.T) {
	pool := sufexpool.New(8)
	if _, err := NewBlockArray[uint32](pool, 4); err == nil {
		t.Errorf("expected construction to fail for mismatched element size")
	}
}

func TestBlockArrayIteratorCrossesBlocks(t *testing.T) {
	pool := sufexpool.New(4)
	a, err := NewBlockArray[uint32](pool, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Resize(7); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 7; i++ {
		_ = a.Set(i, uint32(i))
	}
	it := a.Iterator()
	var got []uint32
	for !it.EOI() {
		got = append(got, *it.Deref())
		it.Next()
	}
	if len(got) != 7 {
		t.Fatalf("got %d elements, want 7", len(got))
	}
	for i, v := range got {
		if v != uint32(i) {
			t.Errorf("index %d: got %d, want %d", i, v, i)
		}
	}
}

func TestInc(t *testing.T) {
	pool := sufexpool.New(4)
	a, err := NewBlockArray[uint32](pool, 4)
	if err != nil {
		t.Fatal(err)
	}
	_ = a.Resize(1)
	_ = a.Set(0, 5)
	if err := Inc(a, 0, 3); err != nil {
		t.Fatal(err)
	}
	v, _ := a.Get(0)
	if v != 8 {
		t.Errorf("got %d, want 8", v)
	}
}
