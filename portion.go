package sufex

import (
	"fmt"

	"github.com/jogojapan/sufex/sufexwork"
)

// BoundaryAdjuster decides whether a proposed cut point inside [beg,end)
// may stand. It returns true when cutting at cut is acceptable. Used to keep
// a radix/rename pass from splitting a run of equal-content items across two
// workers (spec.md §9's ordering load-bearing note).
type BoundaryAdjuster func(beg, cut, end int) bool

// Portion is a half-open index range [From, To).
type Portion struct {
	From, To int
}

// Len reports the number of indices covered by p.
func (p Portion) Len() int { return p.To - p.From }

// Portions is an even split of [Range.From, Range.To) into contiguous,
// non-overlapping, boundary-adjusted parts (spec.md §4.2).
type Portions struct {
	Range Portion
	Parts []Portion
}

// MakePortions splits [from,to) into up to p roughly equal parts, each at
// least minSize long (fewer, larger parts are produced instead when p parts
// would violate minSize), then nudges every internal boundary via adj so
// that it never lands inside a run adj considers indivisible. adj may be
// nil, in which case no nudging occurs.
func MakePortions(from, to, p, minSize int, adj BoundaryAdjuster) (*Portions, error) {
	if from > to {
		return nil, fmt.Errorf("%w: from %d > to %d", ErrOutOfRange, from, to)
	}
	if p < 1 {
		p = 1
	}
	if minSize < 1 {
		minSize = 1
	}
	total := to - from
	if total == 0 {
		return &Portions{Range: Portion{from, to}}, nil
	}
	if maxParts := total / minSize; maxParts < p {
		if maxParts < 1 {
			maxParts = 1
		}
		p = maxParts
	}
	bounds := make([]int, p+1)
	bounds[0] = from
	bounds[p] = to
	for k := 1; k < p; k++ {
		bounds[k] = from + (total*k)/p
	}
	if adj != nil {
		adjustBoundaries(bounds, from, to, adj)
	}
	parts := make([]Portion, 0, p)
	for k := 0; k < p; k++ {
		if bounds[k] < bounds[k+1] {
			parts = append(parts, Portion{bounds[k], bounds[k+1]})
		}
	}
	if len(parts) == 0 {
		parts = append(parts, Portion{from, to})
	}
	return &Portions{Range: Portion{from, to}, Parts: parts}, nil
}

// adjustBoundaries walks every internal boundary and, while adj rejects it,
// slides it forward one index at a time until either adj accepts or the
// boundary collides with the next fixed bound (in which case the two
// neighboring parts fold together).
func adjustBoundaries(bounds []int, from, to int, adj BoundaryAdjuster) {
	for k := 1; k < len(bounds)-1; k++ {
		cut := bounds[k]
		for cut < bounds[k+1] && !adj(from, cut, to) {
			cut++
		}
		if cut >= bounds[k+1] {
			cut = bounds[k+1]
		}
		bounds[k] = cut
	}
}

// Apply runs fn once per part, in parallel across pool, passing the part's
// own index k so that callers can index per-worker scratch state (e.g. a
// radix pass's local frequency tables). It blocks until every part has
// finished and returns the first error encountered, if any.
func (ps *Portions) Apply(pool *sufexwork.Pool, fn func(k int, part Portion) error) error {
	handles := make([]*sufexwork.Handle, len(ps.Parts))
	for k, part := range ps.Parts {
		k, part := k, part
		handles[k] = pool.Submit(func() error { return fn(k, part) })
	}
	return sufexwork.WaitAll(handles)
}

// ApplyDynArgs is Apply's variant for callbacks needing extra, per-call
// arguments shared across every part (e.g. a destination slice).
func (ps *Portions) ApplyDynArgs(pool *sufexwork.Pool, fn func(k int, part Portion, extra ...any) error, extra ...any) error {
	handles := make([]*sufexwork.Handle, len(ps.Parts))
	for k, part := range ps.Parts {
		k, part := k, part
		handles[k] = pool.Submit(func() error { return fn(k, part, extra...) })
	}
	return sufexwork.WaitAll(handles)
}

// Covers reports whether the parts exactly tile Range with no gaps or
// overlaps, in order. A Portions built by MakePortions always satisfies
// this; it exists for callers that hand-assemble a Portions value.
func (ps *Portions) Covers() bool {
	cursor := ps.Range.From
	for _, part := range ps.Parts {
		if part.From != cursor {
			return false
		}
		cursor = part.To
	}
	return cursor == ps.Range.To
}

// CheckCovers returns ErrPortionMismatch unless Covers holds.
func (ps *Portions) CheckCovers() error {
	if !ps.Covers() {
		return ErrPortionMismatch
	}
	return nil
}
