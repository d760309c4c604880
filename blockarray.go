package sufex

import (
	"fmt"
	"unsafe"

	"github.com/jogojapan/sufex/sufexpool"
)

// DefaultBlockSize is the default directory block size (spec.md §3: "default
// ~10^7").
const DefaultBlockSize = 10_000_000

// BlockArray is the blocked large array of spec.md §4.1: a logical sequence
// of N scalars backed by a directory of fixed-size blocks, so that a single
// renamed string can outlive one contiguous allocation. T is expected to be
// a plain scalar (an unsigned integer width); BlockArray never runs a
// destructor per element, matching the "no element destructor" invariant of
// spec.md §3.
type BlockArray[T any] struct {
	pool      sufexpool.Pool
	blockSize int
	dir       []blockDirEntry[T]
	n         int
}

type blockDirEntry[T any] struct {
	ptr      sufexpool.BlockPtr
	data     []T
	occupied int
}

// NewBlockArray constructs an empty BlockArray backed by pool, whose element
// size must equal sizeof(T) (spec.md §6: "Construction fails if the pool's
// element size does not match the large array's Char"). blockSize <= 0 uses
// DefaultBlockSize.
func NewBlockArray[T any](pool sufexpool.Pool, blockSize int) (*BlockArray[T], error) {
	var zero T
	want := int(unsafe.Sizeof(zero))
	if pool.ElemSize() != want {
		return nil, fmt.Errorf("%w: pool element size %d does not match element size %d", ErrMisconfiguration, pool.ElemSize(), want)
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &BlockArray[T]{pool: pool, blockSize: blockSize}, nil
}

// Len returns the array's current logical size N.
func (a *BlockArray[T]) Len() int { return a.n }

func (a *BlockArray[T]) viewBlock(b sufexpool.BlockPtr, units int) []T {
	if units == 0 || len(b.Bytes) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b.Bytes[0])), units)
}

// Resize reaches the target logical size N', freeing surplus blocks and
// reallocating/appending as needed (spec.md §4.1).
func (a *BlockArray[T]) Resize(newN int) error {
	if newN < 0 {
		return fmt.Errorf("%w: negative size %d", ErrOutOfRange, newN)
	}
	switch {
	case newN == a.n:
		return nil
	case newN < a.n:
		return a.shrink(newN)
	default:
		return a.grow(newN)
	}
}

func (a *BlockArray[T]) grow(newN int) error {
	if len(a.dir) > 0 {
		last := &a.dir[len(a.dir)-1]
		if last.occupied < a.blockSize {
			room := a.blockSize - last.occupied
			want := newN - a.n
			take := want
			if take > room {
				take = room
			}
			if take > 0 {
				nb, err := a.pool.Realloc(last.ptr, last.occupied+take)
				if err != nil {
					return fmt.Errorf("%w: %v", ErrCapacity, err)
				}
				last.ptr = nb
				last.data = a.viewBlock(nb, last.occupied+take)
				last.occupied += take
				a.n += take
			}
		}
	}
	for a.n < newN {
		units := newN - a.n
		if units > a.blockSize {
			units = a.blockSize
		}
		ptr, err := a.pool.Alloc(units)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCapacity, err)
		}
		a.dir = append(a.dir, blockDirEntry[T]{ptr: ptr, data: a.viewBlock(ptr, units), occupied: units})
		a.n += units
	}
	return nil
}

func (a *BlockArray[T]) shrink(newN int) error {
	want := a.n - newN
	for want > 0 && len(a.dir) > 0 {
		last := &a.dir[len(a.dir)-1]
		if want >= last.occupied {
			a.pool.Free(last.ptr)
			want -= last.occupied
			a.n -= last.occupied
			a.dir = a.dir[:len(a.dir)-1]
			continue
		}
		keep := last.occupied - want
		nb, err := a.pool.Realloc(last.ptr, keep)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCapacity, err)
		}
		last.ptr = nb
		last.data = a.viewBlock(nb, keep)
		last.occupied = keep
		a.n -= want
		want = 0
	}
	return nil
}

func (a *BlockArray[T]) locate(i int) (blk, off int, err error) {
	if i < 0 || i >= a.n {
		return 0, 0, fmt.Errorf("%w: index %d out of [0,%d)", ErrOutOfRange, i, a.n)
	}
	return i / a.blockSize, i % a.blockSize, nil
}

// Get returns the element at logical index i.
func (a *BlockArray[T]) Get(i int) (T, error) {
	var zero T
	blk, off, err := a.locate(i)
	if err != nil {
		return zero, err
	}
	return a.dir[blk].data[off], nil
}

// Set writes v at logical index i.
func (a *BlockArray[T]) Set(i int, v T) error {
	blk, off, err := a.locate(i)
	if err != nil {
		return err
	}
	a.dir[blk].data[off] = v
	return nil
}

// ZeroAll bulk-zeroes every element. Scalars make this semantically
// equivalent to per-element assignment of zero (spec.md §4.1).
func (a *BlockArray[T]) ZeroAll() {
	var zero T
	for i := range a.dir {
		d := a.dir[i].data
		for j := range d {
			d[j] = zero
		}
	}
}

// Leak clears the directory without releasing its blocks. It is only valid
// when the backing pool will be purged wholesale afterward (see
// sufexpool.Pool.ClearAll).
func (a *BlockArray[T]) Leak() {
	a.dir = nil
	a.n = 0
}

// Iterator returns a fresh forward-only iterator positioned at index 0.
func (a *BlockArray[T]) Iterator() *BlockArrayIter[T] {
	return &BlockArrayIter[T]{arr: a}
}

// BlockArrayIter is a forward-only iterator over a BlockArray. At every
// dereference, (blk, off) satisfies blk < len(directory) and
// off < directory[blk].occupied (spec.md §4.1 iterator invariant).
type BlockArrayIter[T any] struct {
	arr      *BlockArray[T]
	blk, off int
}

// EOI reports whether the iterator has advanced past the last element.
func (it *BlockArrayIter[T]) EOI() bool {
	return it.blk >= len(it.arr.dir)
}

// Deref returns a reference to the current element. Calling Deref at EOI is
// a programming error and panics with an index out of range; no error value
// is returned.
func (it *BlockArrayIter[T]) Deref() *T {
	return &it.arr.dir[it.blk].data[it.off]
}

// Next advances the iterator by one element, transparently skipping across
// block boundaries.
func (it *BlockArrayIter[T]) Next() { it.Advance(1) }

// Advance moves the iterator forward by k elements, transparently skipping
// across block boundaries.
func (it *BlockArrayIter[T]) Advance(k int) {
	for k > 0 && !it.EOI() {
		remain := it.arr.dir[it.blk].occupied - it.off
		step := k
		if step > remain {
			step = remain
		}
		it.off += step
		k -= step
		if it.off >= it.arr.dir[it.blk].occupied {
			it.blk++
			it.off = 0
		}
	}
}

// Inc adds delta to the element at index i. It is a free function rather
// than a method because Go forbids a generic method from introducing an
// arithmetic constraint beyond the one already fixed by the receiver's type
// parameter.
func Inc[T Integer](a *BlockArray[T], i int, delta T) error {
	v, err := a.Get(i)
	if err != nil {
		return err
	}
	return a.Set(i, v+delta)
}

// Integer constrains BlockArray element types that support Inc.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}
