package sufex

import (
	"github.com/jogojapan/sufex/sufexwork"
)

// newFreqTable returns an empty FreqTable of the representation the caller
// asks for: sparse for wide/unbounded alphabets, zero_range (dense) for
// small bounded ones.
func newFreqTable(sparse bool, highest uint32) FreqTable {
	if sparse {
		return NewSparseFreqTable()
	}
	return NewZeroRangeFreqTable(int(highest))
}

// computeLocalOffsets turns per-worker tallies (locals) plus the already-
// cumulative global table into per-worker starting offsets: offsets[k] is
// the position at which worker k's first occurrence of each character
// should land. This is the §9 "swap-then-add" step: first swap the global
// cumulative value in as a base, THEN add the running total of that
// character across workers 0..k-1 -- reversing the order silently
// corrupts every worker after the first for any character more than one
// worker touches.
func computeLocalOffsets(global FreqTable, locals []FreqTable, sparse bool, highest uint32) []FreqTable {
	offsets := make([]FreqTable, len(locals))
	for k := range locals {
		offsets[k] = newFreqTable(sparse, highest)
	}
	running := newFreqTable(sparse, highest)
	// Each local table still holds plain counts, so its ForEachOrdered
	// visits exactly the characters that worker will scatter. The global
	// table is cumulative and is only read by Get, because its smallest
	// present character has base 0 and a dense table's ForEachOrdered
	// skips zero values.
	for k, loc := range locals {
		loc.ForEachOrdered(func(c uint32, cnt int) {
			runningBefore := running.Get(c)
			offsets[k].Set(c, global.Get(c)+runningBefore)
			running.Set(c, runningBefore+cnt)
		})
	}
	return offsets
}

// radixPass performs one stable counting-sort pass over items, keyed by
// keyFn, and returns a newly allocated, sorted slice. The pass is split
// across pool: each worker tallies its own Portion, a global cumulative
// table is derived, then computeLocalOffsets hands each worker its own
// starting point so that every worker can scatter directly into the shared
// destination without further synchronization.
func radixPass[T any](items []T, keyFn func(T) uint32, sparse bool, highest uint32, pool *sufexwork.Pool) ([]T, error) {
	n := len(items)
	if n == 0 {
		return items, nil
	}
	threads := 1
	if pool != nil {
		threads = pool.Threads()
	}
	ps, err := MakePortions(0, n, threads, 4096, nil)
	if err != nil {
		return nil, err
	}
	locals := make([]FreqTable, len(ps.Parts))
	if pool == nil || len(ps.Parts) == 1 {
		for k, part := range ps.Parts {
			locals[k] = newFreqTable(sparse, highest)
			MakeFreqTable(items[part.From:part.To], keyFn, locals[k])
		}
	} else {
		if err := ps.Apply(pool, func(k int, part Portion) error {
			locals[k] = newFreqTable(sparse, highest)
			MakeFreqTable(items[part.From:part.To], keyFn, locals[k])
			return nil
		}); err != nil {
			return nil, err
		}
	}

	global := newFreqTable(sparse, highest)
	for _, loc := range locals {
		if err := AddCharFreqTable(global, loc, pool); err != nil {
			return nil, err
		}
	}
	MakeCumulative(global)
	offsets := computeLocalOffsets(global, locals, sparse, highest)

	dest := make([]T, n)
	scatter := func(k int, part Portion) error {
		cursor := offsets[k]
		for i := part.From; i < part.To; i++ {
			c := keyFn(items[i])
			pos := cursor.Get(c)
			dest[pos] = items[i]
			cursor.Set(c, pos+1)
		}
		return nil
	}
	if pool == nil || len(ps.Parts) == 1 {
		for k, part := range ps.Parts {
			if err := scatter(k, part); err != nil {
				return nil, err
			}
		}
	} else if err := ps.Apply(pool, scatter); err != nil {
		return nil, err
	}
	return dest, nil
}

// RadixSortTrigrams sorts items lexicographically by (Char1, Char2, Char3)
// using three stable least-significant-character-first passes (spec.md
// §4.5's S23 sort). highest bounds the alphabet for a zero_range pass;
// sparse selects the sparse representation instead.
func RadixSortTrigrams(items []Trigram, sparse bool, highest uint32, pool *sufexwork.Pool) ([]Trigram, error) {
	pass3, err := radixPass(items, func(t Trigram) uint32 { return t.Chars[2] }, sparse, highest, pool)
	if err != nil {
		return nil, err
	}
	pass2, err := radixPass(pass3, func(t Trigram) uint32 { return t.Chars[1] }, sparse, highest, pool)
	if err != nil {
		return nil, err
	}
	pass1, err := radixPass(pass2, func(t Trigram) uint32 { return t.Chars[0] }, sparse, highest, pool)
	if err != nil {
		return nil, err
	}
	return pass1, nil
}

// SortS1 sorts S1 structure-trigrams by (C, S23Name) using two stable
// passes: S23Name first (least significant), then the leading character
// (most significant), matching the comparator order of spec.md §4.6/§4.7's
// merge step.
func SortS1(items []StructureTrigram, sparseChar bool, charHighest, nameHighest uint32, pool *sufexwork.Pool) ([]StructureTrigram, error) {
	byName, err := radixPass(items, func(t StructureTrigram) uint32 { return t.S23Name }, false, nameHighest, pool)
	if err != nil {
		return nil, err
	}
	byChar, err := radixPass(byName, func(t StructureTrigram) uint32 { return t.C }, sparseChar, charHighest, pool)
	if err != nil {
		return nil, err
	}
	return byChar, nil
}
