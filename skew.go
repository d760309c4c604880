package sufex

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/jogojapan/sufex/sufexlog"
	"github.com/jogojapan/sufex/sufexwork"
)

// config holds the resolved settings behind a MakeSuffixArray call.
type config struct {
	threads   int
	blockSize int
	logger    sufexlog.Logger
	pool      *sufexwork.Pool
}

func defaultConfig() *config {
	return &config{threads: 4, blockSize: DefaultBlockSize, logger: sufexlog.NoOp()}
}

// Option configures a MakeSuffixArray call. The functional-options shape
// replaces the teacher's chained *Builder methods: a generic method cannot
// introduce a type parameter beyond its receiver's, so a builder with a
// Build[Pos,Char]() method is not expressible, and a free function plus
// options is the idiomatic substitute.
type Option func(*config)

// WithThreads overrides the worker-pool size (default 4).
func WithThreads(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.threads = n
		}
	}
}

// WithBlockSize records a BlockArray directory block size. MakeSuffixArray
// keeps its intermediate strings in plain slices, not in a BlockArray, and
// does not read this value.
func WithBlockSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.blockSize = n
		}
	}
}

// WithLogger attaches a logging collaborator; the default discards everything.
func WithLogger(l sufexlog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorkerPool supplies a caller-owned worker pool instead of letting
// MakeSuffixArray create and close its own.
func WithWorkerPool(p *sufexwork.Pool) Option {
	return func(c *config) { c.pool = p }
}

// MakeSuffixArray builds the suffix array of text using the parallel
// skew/DC3 construction (spec.md §4.7), returning one entry per position of
// text plus the implicit terminal sentinel accounted for internally. Pos
// and Char are the caller's chosen output/input integer widths; internally
// the algorithm always operates on []uint32 characters and int positions
// regardless of these widths, widening or narrowing only at the public
// boundary -- the recursion's character alphabet can itself exceed any
// fixed input Char width once trigrams are renamed into it.
func MakeSuffixArray[Pos constraints.Unsigned, Char constraints.Unsigned](text []Char, opts ...Option) ([]Pos, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	// Pos must be able to represent every index in [0, len(text)].
	if uint64(len(text)) > uint64(^Pos(0)) {
		return nil, fmt.Errorf("%w: text length %d exceeds the range of Pos", ErrOutOfRange, len(text))
	}

	pool := cfg.pool
	if pool == nil {
		pool = sufexwork.New(cfg.threads)
		defer pool.Close()
	}

	chars := make([]uint32, len(text))
	var highest uint32
	for i, c := range text {
		chars[i] = uint32(c)
		if chars[i] > highest {
			highest = chars[i]
		}
	}

	cfg.logger.Log(sufexlog.Info, "building suffix array", sufexlog.Field{Key: "n", Val: len(text)})

	// The outer pass sorts trigrams drawn from the caller's own character
	// set, which may be sparse (e.g. arbitrary Unicode code points); every
	// recursive pass below sorts trigrams of dense integer names instead,
	// so only this outermost call uses the sparse frequency table.
	sa, err := runSkew(chars, highest, true, pool, cfg.logger)
	if err != nil {
		return nil, err
	}

	out := make([]Pos, len(sa))
	for i, v := range sa {
		out[i] = Pos(v)
	}
	return out, nil
}

// runSkew is the recursion driver. Each level extracts S23 trigrams from
// the current text, sorts them, and renames them; if the renaming is
// injective the names already give the S23 ranks directly. Otherwise
// runSkew calls itself on the renamed sequence, so the recursion uses Go's
// call stack and keeps no explicit work-pile. Either way the level then
// builds the S1 half and merges it with the S23 half.
func runSkew(text []uint32, highest uint32, sparse bool, pool *sufexwork.Pool, log sufexlog.Logger) ([]int, error) {
	n := len(text)
	if n == 0 {
		return []int{}, nil
	}
	if n == 1 {
		return []int{0}, nil
	}

	s23 := ExtractS23(text)
	sorted, err := RadixSortTrigrams(s23, sparse, highest, pool)
	if err != nil {
		return nil, err
	}

	posmap := CenterSplitPosMap(sorted)
	names := make([]uint32, len(sorted))
	recursionNeeded, err := Rename(sorted, posmap, names, pool)
	if err != nil {
		return nil, err
	}

	log.Log(sufexlog.Debug, "level processed", sufexlog.Field{Key: "n", Val: n}, sufexlog.Field{Key: "trigrams", Val: len(sorted)})

	var subSA []int
	var invSA []uint32
	if recursionNeeded {
		maxName := uint32(0)
		for _, v := range names {
			if v > maxName {
				maxName = v
			}
		}
		subSA, err = runSkew(names, maxName, false, pool, log)
		if err != nil {
			return nil, err
		}
	} else {
		subSA = make([]int, len(names))
		for rank, name := range names {
			subSA[name] = rank
		}
	}
	invSA, err = InvertSuffixArray(subSA, pool)
	if err != nil {
		return nil, err
	}

	posOf, center := s23PositionIndex(n)
	s23Positions := s23PositionsByRank(invSA, posOf)

	s1 := BuildS1Trigrams(text, invSA, center)
	sortedS1, err := SortS1(s1, sparse, highest, uint32(len(s23Positions)), pool)
	if err != nil {
		return nil, err
	}

	merged := mergeS1S23(text, sortedS1, s23Positions, invSA, center)
	return spliceUncoveredPositions(text, merged, uncoveredTailPositions(n)), nil
}

// uncoveredTailPositions returns the positions ExtractS23's "only if p+2 <
// n" rule (spec.md §4.4) leaves out of both S23 and S1 (BuildS1Trigrams only
// ever covers mod-0 positions): the mod-1/mod-2 positions in the final
// block of text too short to start a full trigram. There are at most two of
// these for any n, and each starts a suffix of length 1 or 2, so their rank
// among everything else is decided directly rather than through the
// recursively computed S23 ranks.
func uncoveredTailPositions(n int) []int {
	var out []int
	for p := 0; p < n; p++ {
		if p%3 != 0 && p+2 >= n {
			out = append(out, p)
		}
	}
	return out
}

// directSuffixLess reports whether the suffix of text starting at i sorts
// before the one starting at j, comparing characters one at a time and
// treating running past the end of text as smaller than any character --
// the usual "a prefix sorts first" suffix-array tie-break. It is only ever
// used to place the handful of uncoveredTailPositions, whose suffixes are
// at most two characters long, so each call does a bounded amount of work.
func directSuffixLess(text []uint32, i, j int) bool {
	for {
		iDone, jDone := i >= len(text), j >= len(text)
		if iDone || jDone {
			return iDone && !jDone
		}
		if text[i] != text[j] {
			return text[i] < text[j]
		}
		i++
		j++
	}
}

// spliceUncoveredPositions inserts each of tail's positions into base (an
// already fully sorted suffix array missing exactly those positions) at its
// correct rank via binary search, restoring the full permutation of
// [0,len(text)) that mergeS1S23 alone cannot produce.
func spliceUncoveredPositions(text []uint32, base []int, tail []int) []int {
	if len(tail) == 0 {
		return base
	}
	out := make([]int, len(base), len(base)+len(tail))
	copy(out, base)
	for _, p := range tail {
		idx := sort.Search(len(out), func(i int) bool {
			return !directSuffixLess(text, out[i], p)
		})
		out = append(out, 0)
		copy(out[idx+1:], out[idx:])
		out[idx] = p
	}
	return out
}

// s23PositionIndex derives, purely from the text length n, the original
// text position that each S23 rank (0-based, mod-1 block followed by
// mod-2 block, exactly the order ExtractS23/CenterSplitPosMap produce
// before sorting) corresponds to, plus the center index separating the two
// blocks. It exists so that runSkew's rank-indexed structures (invSA)
// can be translated back to text positions without re-deriving the sort.
func s23PositionIndex(n int) (posOf []int, center int) {
	var mod1, mod2 []int
	for p := 1; p+2 < n; p += 3 {
		mod1 = append(mod1, p)
	}
	for p := 2; p+2 < n; p += 3 {
		mod2 = append(mod2, p)
	}
	posOf = make([]int, 0, len(mod1)+len(mod2))
	posOf = append(posOf, mod1...)
	posOf = append(posOf, mod2...)
	return posOf, len(mod1)
}

// s23PositionsByRank scatters posOf into rank order using invSA (a
// bijection rank -> index), in O(len(posOf)) rather than sorting: out[r] is
// the text position whose S23 suffix has rank r in the recursively solved
// sub-problem.
func s23PositionsByRank(invSA []uint32, posOf []int) []int {
	out := make([]int, len(posOf))
	for idx, rank := range invSA {
		if idx < len(posOf) {
			out[rank] = posOf[idx]
		}
	}
	return out
}

// cval returns text[i]+1, or 0 if i is out of range -- the sentinel-shift
// technique that lets 0 stand for "past end of text, smaller than any real
// character" throughout the merge comparator.
func cval(text []uint32, i int) uint32 {
	if i < 0 || i >= len(text) {
		return 0
	}
	return text[i] + 1
}

// s1Name returns invSA[idx]+1 (the S23 rank of the trigram starting at the
// position idx indexes, shifted so 0 can mean out-of-range), or 0 if idx is
// out of range.
func s1Name(invSA []uint32, idx int) uint32 {
	if idx < 0 || idx >= len(invSA) {
		return 0
	}
	return invSA[idx] + 1
}

// BuildS1Trigrams constructs the S1 (mod-0) structure-trigrams of spec.md
// §4.6: for every position p congruent to 0 mod 3, its own character plus
// the rank of the S23 trigram starting at p+1 (always a mod-1 trigram).
// center separates the recursively solved ranks' mod-1 block (indices
// [0,center)) from its mod-2 block so the name lookup lands in the right
// half.
func BuildS1Trigrams(text []uint32, invSA []uint32, center int) []StructureTrigram {
	n := len(text)
	var out []StructureTrigram
	for p := 0; p < n; p += 3 {
		nameIdx := (p + 1) / 3
		out = append(out, StructureTrigram{Pos: p, C: cval(text, p), S23Name: s1Name(invSA, nameIdx)})
	}
	return out
}

// compareS23S1 compares the S23 suffix starting at p against the S1 suffix
// s1 represents, returning <0, 0, or >0 the way bytes.Compare does. It
// implements the boundary-reference technique the distilled source left
// undefined (spec.md §9): a mod-1 S23 suffix is compared to a mod-0 S1
// suffix by its first character and then the rank of its mod-2 tail at p+1
// against the S1 trigram's stored S23Name (the rank of its mod-1 tail); a
// mod-2 S23 suffix is compared by its first two characters and then the
// rank of its mod-1 tail at p+2 against the rank of the S1 suffix's mod-2
// tail.
func compareS23S1(text []uint32, p int, s1 StructureTrigram, invSA []uint32, center int) int {
	if p%3 == 1 {
		// p is mod-1: its first character, then rank of suffix at p+1
		// (mod-2, found via invSA's back half) against s1's first
		// character then its stored S23Name.
		c1, c2 := cval(text, p), s1.C
		if c1 != c2 {
			return cmpU32(c1, c2)
		}
		r1 := rankOf(invSA, p+1, center)
		r2 := s1.S23Name
		return cmpU32(r1, r2)
	}
	// p is mod-2: compare two characters then the rank of the mod-1
	// suffix at p+2.
	c1a, c1b := cval(text, p), s1.C
	if c1a != c1b {
		return cmpU32(c1a, c1b)
	}
	c2a, c2b := cval(text, p+1), cval(text, s1.Pos+1)
	if c2a != c2b {
		return cmpU32(c2a, c2b)
	}
	r1 := rankOf(invSA, p+2, center)
	r2 := rankOf(invSA, s1.Pos+2, center)
	return cmpU32(r1, r2)
}

// rankOf returns the shifted rank (per s1Name's convention) of the S23
// trigram starting at position i, looking it up through invSA via
// s23PositionIndex's implicit ordering (mod-1 block then mod-2 block).
func rankOf(invSA []uint32, i int, center int) uint32 {
	if i%3 == 1 {
		idx := (i - 1) / 3
		return s1Name(invSA, idx)
	}
	idx := center + (i-2)/3
	return s1Name(invSA, idx)
}

func cmpU32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// mergeS1S23 performs the final two-pointer stable merge of the sorted S1
// and S23 suffix lists into one overall suffix array (spec.md §4.7).
func mergeS1S23(text []uint32, sortedS1 []StructureTrigram, s23Positions []int, invSA []uint32, center int) []int {
	out := make([]int, 0, len(sortedS1)+len(s23Positions))
	i, j := 0, 0
	for i < len(sortedS1) && j < len(s23Positions) {
		if compareS23S1(text, s23Positions[j], sortedS1[i], invSA, center) < 0 {
			out = append(out, s23Positions[j])
			j++
		} else {
			out = append(out, sortedS1[i].Pos)
			i++
		}
	}
	for ; i < len(sortedS1); i++ {
		out = append(out, sortedS1[i].Pos)
	}
	for ; j < len(s23Positions); j++ {
		out = append(out, s23Positions[j])
	}
	return out
}

// InvertSuffixArray computes the inverse permutation of sa (rank[sa[i]] =
// i), splitting the scatter across pool.
func InvertSuffixArray(sa []int, pool *sufexwork.Pool) ([]uint32, error) {
	inv := make([]uint32, len(sa))
	if len(sa) == 0 {
		return inv, nil
	}
	threads := 1
	if pool != nil {
		threads = pool.Threads()
	}
	ps, err := MakePortions(0, len(sa), threads, 4096, nil)
	if err != nil {
		return nil, err
	}
	fill := func(_ int, part Portion) error {
		for i := part.From; i < part.To; i++ {
			inv[sa[i]] = uint32(i)
		}
		return nil
	}
	if pool == nil || len(ps.Parts) == 1 {
		for k, part := range ps.Parts {
			if err := fill(k, part); err != nil {
				return nil, err
			}
		}
		return inv, nil
	}
	if err := ps.Apply(pool, fill); err != nil {
		return nil, err
	}
	return inv, nil
}
