package sufex

// TrigramLike is the capability set spec.md §4.4 requires of any physical
// trigram representation: a source position and its three following
// characters (the third standing in for "end of text" via 0 when absent).
type TrigramLike interface {
	Position() int
	Char1() uint32
	Char2() uint32
	Char3() uint32
}

// Trigram is the arraytuple representation: a position plus the three
// characters packed into a fixed array, so that two trigrams' content can be
// compared with a single array equality. This is the hot-path representation
// used throughout the S23 sort and rename passes.
type Trigram struct {
	Pos   int
	Chars [3]uint32
}

func (t Trigram) Position() int { return t.Pos }
func (t Trigram) Char1() uint32 { return t.Chars[0] }
func (t Trigram) Char2() uint32 { return t.Chars[1] }
func (t Trigram) Char3() uint32 { return t.Chars[2] }

// ContentEqualTo reports whether t and o carry the same three characters,
// ignoring position. Renaming relies on this to detect equal-content runs.
func (t Trigram) ContentEqualTo(o Trigram) bool { return t.Chars == o.Chars }

// TupleTrigram is the plain-tuple representation: the same content as
// Trigram but as three independent fields rather than an array, included as
// an alternative physical layout per spec.md §4.4's C4 variants.
type TupleTrigram struct {
	Pos        int
	C1, C2, C3 uint32
}

func (t TupleTrigram) Position() int { return t.Pos }
func (t TupleTrigram) Char1() uint32 { return t.C1 }
func (t TupleTrigram) Char2() uint32 { return t.C2 }
func (t TupleTrigram) Char3() uint32 { return t.C3 }

// StructureTrigram is the S1 variant of spec.md §4.5: a mod-0 position
// paired with its single leading character and the already-known name of
// the S23 trigram starting one position later, rather than three raw
// characters. BuildS1Trigrams stores both values shifted up by one (see
// cval and s1Name).
type StructureTrigram struct {
	Pos     int
	C       uint32
	S23Name uint32
}

func (t StructureTrigram) Position() int { return t.Pos }
func (t StructureTrigram) Char1() uint32 { return t.C }
func (t StructureTrigram) Char2() uint32 { return t.S23Name }
func (t StructureTrigram) Char3() uint32 { return 0 }

// PointerTrigram is a zero-copy view into a shared text buffer, reading its
// three characters out of text at call time instead of storing them. It
// trades extra indirection for zero per-trigram allocation beyond the
// position, per spec.md §4.4's fourth "view" variant.
type PointerTrigram struct {
	text *[]uint32
	idx  int
}

// NewPointerTrigram returns a view onto (*text)[idx:idx+3], treating
// out-of-range characters as 0 (end of text).
func NewPointerTrigram(text *[]uint32, idx int) PointerTrigram {
	return PointerTrigram{text: text, idx: idx}
}

func (t PointerTrigram) Position() int { return t.idx }

func (t PointerTrigram) charAt(off int) uint32 {
	i := t.idx + off
	if i < 0 || i >= len(*t.text) {
		return 0
	}
	return (*t.text)[i]
}

func (t PointerTrigram) Char1() uint32 { return t.charAt(0) }
func (t PointerTrigram) Char2() uint32 { return t.charAt(1) }
func (t PointerTrigram) Char3() uint32 { return t.charAt(2) }

// ToTrigram materializes a PointerTrigram into the hot-path Trigram layout.
func (t PointerTrigram) ToTrigram() Trigram {
	return Trigram{Pos: t.idx, Chars: [3]uint32{t.Char1(), t.Char2(), t.Char3()}}
}

// ExtractS23 collects the trigrams starting at every position congruent to
// 1 or 2 modulo 3, mod-1 positions first in increasing order followed by
// mod-2 positions in increasing order -- the S23 construction of spec.md
// §4.5. A trigram starting at p requires p+2 < len(text) to exist; the
// final one or two characters of text never start a trigram, matching
// spec.md's scenario 2 worked example (t="abcdefgh" yields exactly the four
// trigrams at positions 1, 2, 4, 5).
func ExtractS23(text []uint32) []Trigram {
	n := len(text)
	var mod1, mod2 []Trigram
	for p := 1; p+2 < n; p += 3 {
		mod1 = append(mod1, Trigram{Pos: p, Chars: [3]uint32{text[p], text[p+1], text[p+2]}})
	}
	for p := 2; p+2 < n; p += 3 {
		mod2 = append(mod2, Trigram{Pos: p, Chars: [3]uint32{text[p], text[p+1], text[p+2]}})
	}
	out := make([]Trigram, 0, len(mod1)+len(mod2))
	out = append(out, mod1...)
	out = append(out, mod2...)
	return out
}
