package sufex

import (
	"sync"
	"testing"

	"github.com/jogojapan/sufex/sufexwork"
)

func TestMakePortionsCoversRange(t *testing.T) {
	ps, err := MakePortions(0, 100, 7, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ps.CheckCovers(); err != nil {
		t.Fatal(err)
	}
}

func TestMakePortionsRespectsMinSize(t *testing.T) {
	ps, err := MakePortions(0, 10, 8, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range ps.Parts[:len(ps.Parts)-1] {
		if part.Len() < 4 {
			t.Errorf("part %v shorter than minSize", part)
		}
	}
	if err := ps.CheckCovers(); err != nil {
		t.Fatal(err)
	}
}

func TestMakePortionsBoundaryAdjuster(t *testing.T) {
	// Never allow a cut strictly between indices 4 and 6.
	adj := func(beg, cut, end int) bool {
		return cut <= 4 || cut >= 6
	}
	ps, err := MakePortions(0, 20, 4, 1, adj)
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range ps.Parts {
		if part.From > 4 && part.From < 6 {
			t.Errorf("boundary adjuster violated at part %v", part)
		}
	}
}

func TestPortionsApplyRunsEveryPart(t *testing.T) {
	pool := sufexwork.New(3)
	defer pool.Close()
	ps, err := MakePortions(0, 30, 3, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	seen := make([]bool, len(ps.Parts))
	var mu sync.Mutex
	err = ps.Apply(pool, func(k int, part Portion) error {
		mu.Lock()
		seen[k] = true
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for k, ok := range seen {
		if !ok {
			t.Errorf("part %d never ran", k)
		}
	}
}
