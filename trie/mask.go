package trie

import "math/bits"

// Mask256 is a 256-bit mask of present child bytes at a trie node,
// represented as four machine words so tests and intersections are O(1)
// (spec §4.3: "child_mask must answer in constant time").
type Mask256 [4]uint64

// Test reports whether byte b is set.
func (m Mask256) Test(b byte) bool {
	return m[b>>6]&(uint64(1)<<(b&63)) != 0
}

// Set marks byte b as present.
func (m *Mask256) Set(b byte) {
	m[b>>6] |= uint64(1) << (b & 63)
}

// Clear marks byte b as absent.
func (m *Mask256) Clear(b byte) {
	m[b>>6] &^= uint64(1) << (b & 63)
}

// Count returns the number of set bits.
func (m Mask256) Count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) + bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}

// RankBefore returns the number of set bits strictly before byte b, i.e.
// the index b would occupy in a dense array of the set bytes.
func (m Mask256) RankBefore(b byte) int {
	word := int(b >> 6)
	bit := uint(b & 63)
	n := 0
	for i := 0; i < word; i++ {
		n += bits.OnesCount64(m[i])
	}
	if bit > 0 {
		n += bits.OnesCount64(m[word] & (uint64(1)<<bit - 1))
	}
	return n
}

// And returns the bitwise intersection of m and other, used to intersect a
// node's child_mask with a precomputed SIZES/ARITIES/VARS class mask
// (spec §4.4, §9).
func (m Mask256) And(other Mask256) Mask256 {
	return Mask256{m[0] & other[0], m[1] & other[1], m[2] & other[2], m[3] & other[3]}
}

// Empty reports whether no bits are set.
func (m Mask256) Empty() bool {
	return m[0] == 0 && m[1] == 0 && m[2] == 0 && m[3] == 0
}

// FirstSet returns the smallest set byte, if any.
func (m Mask256) FirstSet() (byte, bool) {
	for w := 0; w < 4; w++ {
		if m[w] == 0 {
			continue
		}
		return byte(w*64 + bits.TrailingZeros64(m[w])), true
	}
	return 0, false
}

// NextSet returns the smallest set byte strictly greater than after, if any.
func (m Mask256) NextSet(after byte) (byte, bool) {
	next := int(after) + 1
	if next >= 256 {
		return 0, false
	}
	w := next / 64
	bit := uint(next % 64)
	for ; w < 4; w++ {
		word := m[w]
		if bit != 0 {
			word &^= uint64(1)<<bit - 1
		}
		if word != 0 {
			return byte(w*64 + bits.TrailingZeros64(word)), true
		}
		bit = 0
	}
	return 0, false
}

// Each calls f for every set byte in ascending order, stopping early if f
// returns false.
func (m Mask256) Each(f func(b byte) bool) {
	b, ok := m.FirstSet()
	for ok {
		if !f(b) {
			return
		}
		b, ok = m.NextSet(b)
	}
}
