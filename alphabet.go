package sufex

import (
	"sort"

	"github.com/jogojapan/sufex/sufexwork"
)

// FreqTable is the alphabet/frequency-table abstraction of spec.md §4.3: a
// mapping from character value to occurrence count, with two physical
// representations -- a sparse map for wide/skewed alphabets (e.g. the raw
// input bytes) and a dense zero_range array for small, known-bounded
// alphabets (e.g. a renamed level's trigram names).
type FreqTable interface {
	Get(c uint32) int
	Set(c uint32, v int)
	Add(c uint32, delta int)
	// ForEachOrdered visits every character with a nonzero count in
	// ascending character order.
	ForEachOrdered(fn func(c uint32, freq int))
	// Len reports how many distinct characters carry a nonzero count.
	Len() int
}

// SparseFreqTable backs characters of unknown or wide range behind a map,
// lazily maintaining a sorted key order for ForEachOrdered.
type SparseFreqTable struct {
	counts map[uint32]int
	order  []uint32
	dirty  bool
}

// NewSparseFreqTable returns an empty SparseFreqTable.
func NewSparseFreqTable() *SparseFreqTable {
	return &SparseFreqTable{counts: make(map[uint32]int)}
}

func (t *SparseFreqTable) Get(c uint32) int { return t.counts[c] }

func (t *SparseFreqTable) Set(c uint32, v int) {
	_, existed := t.counts[c]
	if v == 0 {
		if existed {
			delete(t.counts, c)
			t.dirty = true
		}
		return
	}
	t.counts[c] = v
	if !existed {
		t.dirty = true
	}
}

func (t *SparseFreqTable) Add(c uint32, delta int) {
	t.Set(c, t.counts[c]+delta)
}

func (t *SparseFreqTable) ensureSorted() {
	if !t.dirty {
		return
	}
	t.order = t.order[:0]
	for c := range t.counts {
		t.order = append(t.order, c)
	}
	sort.Slice(t.order, func(i, j int) bool { return t.order[i] < t.order[j] })
	t.dirty = false
}

func (t *SparseFreqTable) ForEachOrdered(fn func(c uint32, freq int)) {
	t.ensureSorted()
	for _, c := range t.order {
		fn(c, t.counts[c])
	}
}

func (t *SparseFreqTable) Len() int { return len(t.counts) }

// ZeroRangeFreqTable backs a small, dense alphabet [0, highest] behind a
// plain slice.
type ZeroRangeFreqTable struct {
	freq []int
}

// NewZeroRangeFreqTable returns a table covering characters [0, highest].
func NewZeroRangeFreqTable(highest int) *ZeroRangeFreqTable {
	if highest < 0 {
		highest = 0
	}
	return &ZeroRangeFreqTable{freq: make([]int, highest+1)}
}

func (t *ZeroRangeFreqTable) Get(c uint32) int {
	if int(c) >= len(t.freq) {
		return 0
	}
	return t.freq[c]
}

func (t *ZeroRangeFreqTable) Set(c uint32, v int) {
	if int(c) >= len(t.freq) {
		grown := make([]int, int(c)+1)
		copy(grown, t.freq)
		t.freq = grown
	}
	t.freq[c] = v
}

func (t *ZeroRangeFreqTable) Add(c uint32, delta int) {
	t.Set(c, t.Get(c)+delta)
}

func (t *ZeroRangeFreqTable) ForEachOrdered(fn func(c uint32, freq int)) {
	for c, v := range t.freq {
		if v != 0 {
			fn(uint32(c), v)
		}
	}
}

func (t *ZeroRangeFreqTable) Len() int {
	n := 0
	for _, v := range t.freq {
		if v != 0 {
			n++
		}
	}
	return n
}

// MakeFreqTable tallies extractor(item) across items into table and returns
// it, for chaining at the call site.
func MakeFreqTable[Item any](items []Item, extractor func(Item) uint32, table FreqTable) FreqTable {
	for _, it := range items {
		table.Add(extractor(it), 1)
	}
	return table
}

// MakeCumulative overwrites t in place with its own exclusive prefix sum
// (so that afterward t.Get(c) is the count of all characters strictly less
// than c), and returns the total count summed across every character --
// i.e. the length of the sequence the table was tallied from.
func MakeCumulative(t FreqTable) int {
	switch table := t.(type) {
	case *ZeroRangeFreqTable:
		running := 0
		for c := range table.freq {
			cur := table.freq[c]
			table.freq[c] = running
			running += cur
		}
		return running
	case *SparseFreqTable:
		table.ensureSorted()
		running := 0
		for _, c := range table.order {
			cur := table.counts[c]
			table.counts[c] = running
			running += cur
		}
		return running
	default:
		running := 0
		t.ForEachOrdered(func(c uint32, freq int) {
			t.Set(c, running)
			running += freq
		})
		return running
	}
}

// parallelAddThreshold is the dense-table size at or above which AddCharFreqTable
// splits the merge across the worker pool rather than running it inline.
const parallelAddThreshold = 1 << 16

// AddCharFreqTable merges src into dst in place (dst.Add(c, src.Get(c)) for
// every character src carries). For two large ZeroRangeFreqTables it splits
// the merge range-wise across pool; any other combination runs serially.
func AddCharFreqTable(dst, src FreqTable, pool *sufexwork.Pool) error {
	dstZR, dstIsZR := dst.(*ZeroRangeFreqTable)
	srcZR, srcIsZR := src.(*ZeroRangeFreqTable)
	if dstIsZR && srcIsZR && len(srcZR.freq) >= parallelAddThreshold && pool != nil {
		return addZeroRangeParallel(dstZR, srcZR, pool)
	}
	src.ForEachOrdered(func(c uint32, freq int) {
		dst.Add(c, freq)
	})
	return nil
}

func addZeroRangeParallel(dst, src *ZeroRangeFreqTable, pool *sufexwork.Pool) error {
	if len(dst.freq) < len(src.freq) {
		grown := make([]int, len(src.freq))
		copy(grown, dst.freq)
		dst.freq = grown
	}
	ps, err := MakePortions(0, len(src.freq), pool.Threads(), 1024, nil)
	if err != nil {
		return err
	}
	return ps.Apply(pool, func(_ int, part Portion) error {
		for c := part.From; c < part.To; c++ {
			if src.freq[c] != 0 {
				dst.freq[c] += src.freq[c]
			}
		}
		return nil
	})
}
