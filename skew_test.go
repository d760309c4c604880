package sufex

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"
)

func naiveSuffixArray(text []byte) []int {
	n := len(text)
	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool {
		return bytes.Compare(text[sa[i]:], text[sa[j]:]) < 0
	})
	return sa
}

func TestMakeSuffixArraySimple(t *testing.T) {
	sa, err := MakeSuffixArray[uint32, byte]([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{0, 1, 2}
	if len(sa) != len(want) {
		t.Fatalf("got %v, want %v", sa, want)
	}
	for i := range want {
		if sa[i] != want[i] {
			t.Errorf("got %v, want %v", sa, want)
			break
		}
	}
}

func TestMakeSuffixArrayAgainstNaive(t *testing.T) {
	texts := []string{
		"banana",
		"mississippi",
		"aaaaaaaaaa",
		"abcabcabcabc",
		"aecabfgc",
	}
	for _, s := range texts {
		text := []byte(s)
		got, err := MakeSuffixArray[uint32, byte](text)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		want := naiveSuffixArray(text)
		if len(got) != len(want) {
			t.Fatalf("%q: got %d entries, want %d", s, len(got), len(want))
		}
		for i := range want {
			if int(got[i]) != want[i] {
				t.Errorf("%q: suffix array mismatch at rank %d: got %d, want %d", s, i, got[i], want[i])
				break
			}
		}
	}
}

func TestMakeSuffixArrayRandom(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		n := r.Intn(200) + 1
		text := make([]byte, n)
		for i := range text {
			text[i] = byte('a' + r.Intn(4))
		}
		got, err := MakeSuffixArray[uint32, byte](text)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		want := naiveSuffixArray(text)
		for i := range want {
			if int(got[i]) != want[i] {
				t.Fatalf("trial %d (text=%q): mismatch at rank %d: got %d, want %d", trial, text, i, got[i], want[i])
			}
		}
	}
}

func TestMakeSuffixArrayEmptyAndSingleton(t *testing.T) {
	sa, err := MakeSuffixArray[uint32, byte]([]byte{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sa) != 0 {
		t.Errorf("got %v, want empty", sa)
	}
	sa, err = MakeSuffixArray[uint32, byte]([]byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if len(sa) != 1 || sa[0] != 0 {
		t.Errorf("got %v, want [0]", sa)
	}
}

func TestInvertSuffixArrayRoundTrip(t *testing.T) {
	sa := []int{3, 1, 0, 2}
	inv, err := InvertSuffixArray(sa, nil)
	if err != nil {
		t.Fatal(err)
	}
	for rank, pos := range sa {
		if int(inv[pos]) != rank {
			t.Errorf("inv[%d]=%d, want %d", pos, inv[pos], rank)
		}
	}
}
