// Package sufexpool implements the memory-pool collaborator of spec.md §6:
// alloc/realloc/free/clear_all over fixed-size units. A BlockArray (see the
// root sufex package) is the only consumer; the pool owns raw byte pages,
// and BlockArray reinterprets each page as a typed slice the same way the
// teacher's own BuildSuffixArray reinterprets a []int32 as a []int via
// unsafe.Pointer.
package sufexpool

import "fmt"

// BlockPtr is an opaque handle to a pool-owned block of raw bytes. Callers
// never construct one directly; they come from Alloc/Realloc.
type BlockPtr struct {
	id    uint64
	Bytes []byte
}

// Pool is the collaborator interface consumed by BlockArray. Construction of
// a pool fixes its element size; a BlockArray built over a pool whose
// ElemSize disagrees with its own Char width fails with ErrMisconfiguration
// at construction (spec.md §6).
type Pool interface {
	Alloc(nUnits int) (BlockPtr, error)
	Realloc(b BlockPtr, nUnits int) (BlockPtr, error)
	Free(b BlockPtr)
	ClearAll()
	ElemSize() int
}

// heapPool is the default Pool: every block is a plain Go byte slice: no
// manual memory management, since Go already has a garbage collector, but
// the directory bookkeeping (allocate/free/clear as named handles) is kept
// so that BlockArray's growth/shrink logic matches the blocked-storage
// invariants of spec.md §3 regardless of what backs the bytes.
type heapPool struct {
	elemSize int
	next     uint64
	live     map[uint64][]byte
}

// New returns a Pool whose fixed element size is elemSize bytes.
func New(elemSize int) Pool {
	if elemSize <= 0 {
		panic("sufexpool: elemSize must be positive")
	}
	return &heapPool{elemSize: elemSize, live: make(map[uint64][]byte)}
}

func (p *heapPool) ElemSize() int { return p.elemSize }

func (p *heapPool) Alloc(nUnits int) (BlockPtr, error) {
	if nUnits < 0 {
		return BlockPtr{}, fmt.Errorf("sufexpool: negative allocation size %d", nUnits)
	}
	buf := make([]byte, nUnits*p.elemSize)
	id := p.next
	p.next++
	p.live[id] = buf
	return BlockPtr{id: id, Bytes: buf}, nil
}

func (p *heapPool) Realloc(b BlockPtr, nUnits int) (BlockPtr, error) {
	if _, ok := p.live[b.id]; !ok {
		return BlockPtr{}, fmt.Errorf("sufexpool: realloc of unknown block")
	}
	if nUnits < 0 {
		return BlockPtr{}, fmt.Errorf("sufexpool: negative allocation size %d", nUnits)
	}
	nb := make([]byte, nUnits*p.elemSize)
	copy(nb, b.Bytes)
	delete(p.live, b.id)
	id := p.next
	p.next++
	p.live[id] = nb
	return BlockPtr{id: id, Bytes: nb}, nil
}

func (p *heapPool) Free(b BlockPtr) {
	delete(p.live, b.id)
}

// ClearAll drops every live block reference without examining them -- this
// is the collaborator-side half of BlockArray.Leak(): once a BlockArray
// leaks its directory, the pool is expected to be purged wholesale.
func (p *heapPool) ClearAll() {
	p.live = make(map[uint64][]byte)
}
