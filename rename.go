package sufex

import (
	"fmt"

	"github.com/jogojapan/sufex/sufexwork"
)

// CenterSplitPosMap derives the posmap spec.md §4.6 requires for laying a
// renamed level's output in memory: dest[k] = pos/3 for a mod-1 trigram, or
// center+pos/3 for a mod-2 one, where pos is that trigram's own original
// text position -- not the trigram's rank within sorted. This is what
// recovers "every third position" as adjacent slots in the recursive
// level's text, which is what lets the recursion compare suffixes spaced
// three apart by comparing adjacent names. sorted is the lexicographically
// sorted S23 trigram list; the returned function maps a rank k (0-based
// position within sorted) to its destination index.
func CenterSplitPosMap(sorted []Trigram) func(k int) int {
	n := len(sorted)
	center := (n + 1) / 2
	dest := make([]int, n)
	for k, t := range sorted {
		div := t.Pos / 3
		if t.Pos%3 == 1 {
			dest[k] = div
		} else {
			dest[k] = center + div
		}
	}
	return func(k int) int { return dest[k] }
}

// Rename assigns each distinct trigram content in sorted (already sorted
// lexicographically) the next unused integer name, writing dest[posmap(k)]
// for every rank k, and reports whether every trigram received a distinct
// name (recursionNeeded is false in that case -- the level's own suffix
// array already falls out of the sort, per spec.md §4.6). The portioned
// pass never cuts inside a run of content-equal trigrams, so that per-worker
// local counts of "how many new names this worker introduces" can simply be
// added to the running total from workers before it.
func Rename(sorted []Trigram, posmap func(k int) int, dest []uint32, pool *sufexwork.Pool) (recursionNeeded bool, err error) {
	n := len(sorted)
	if len(dest) != n {
		return false, fmt.Errorf("%w: destination length %d, want %d", ErrOutOfRange, len(dest), n)
	}
	if n == 0 {
		return false, nil
	}
	threads := 1
	if pool != nil {
		threads = pool.Threads()
	}
	adj := func(beg, cut, end int) bool {
		if cut <= beg || cut >= end {
			return true
		}
		return !sorted[cut].ContentEqualTo(sorted[cut-1])
	}
	ps, err := MakePortions(0, n, threads, 1, adj)
	if err != nil {
		return false, err
	}

	localNew := make([]int, len(ps.Parts))
	localStart := make([]int, len(ps.Parts))
	runLocal := func(k int, part Portion) error {
		if part.Len() == 0 {
			return nil
		}
		distinct := 1
		for i := part.From + 1; i < part.To; i++ {
			if !sorted[i].ContentEqualTo(sorted[i-1]) {
				distinct++
			}
		}
		localNew[k] = distinct
		return nil
	}
	if pool == nil || len(ps.Parts) == 1 {
		for k, part := range ps.Parts {
			if err := runLocal(k, part); err != nil {
				return false, err
			}
		}
	} else if err := ps.Apply(pool, runLocal); err != nil {
		return false, err
	}

	// Worker k's names start right after every earlier worker's names,
	// EXCEPT when worker k's first trigram repeats worker (k-1)'s last
	// trigram's content -- then it reuses that final name instead of
	// minting a fresh one.
	running := 0
	for k, part := range ps.Parts {
		localStart[k] = running
		if part.Len() == 0 {
			continue
		}
		if k > 0 && ps.Parts[k-1].Len() > 0 {
			prevLast := ps.Parts[k-1].To - 1
			if sorted[part.From].ContentEqualTo(sorted[prevLast]) {
				localStart[k] = running - 1
			}
		}
		running = localStart[k] + localNew[k]
	}
	total := running

	runAssign := func(k int, part Portion) error {
		if part.Len() == 0 {
			return nil
		}
		name := uint32(localStart[k])
		dest[posmap(part.From)] = name
		for i := part.From + 1; i < part.To; i++ {
			if !sorted[i].ContentEqualTo(sorted[i-1]) {
				name++
			}
			dest[posmap(i)] = name
		}
		return nil
	}
	if pool == nil || len(ps.Parts) == 1 {
		for k, part := range ps.Parts {
			if err := runAssign(k, part); err != nil {
				return false, err
			}
		}
	} else if err := ps.Apply(pool, runAssign); err != nil {
		return false, err
	}

	return total != n, nil
}
