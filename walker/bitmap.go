package walker

// bitsPerUint64 is the number of bits in a uint64.
const bitsPerUint64 = 64

// Bitmap tracks a set of arena slot indices with one bit per slot.
// It grows on Set, so it can be sized from a heap snapshot that later expands.
type Bitmap struct {
	bits []uint64
}

// NewBitmap creates a bitmap with room for n slot indices.
func NewBitmap(n int) *Bitmap {
	if n < 0 {
		n = 0
	}
	return &Bitmap{
		bits: make([]uint64, (n+bitsPerUint64-1)/bitsPerUint64),
	}
}

// Set adds idx to the set. Negative indices are ignored.
func (b *Bitmap) Set(idx int) {
	if idx < 0 {
		return
	}
	word := idx / bitsPerUint64
	if word >= len(b.bits) {
		grown := make([]uint64, word+1, 2*(word+1))
		copy(grown, b.bits)
		b.bits = grown
	}
	b.bits[word] |= 1 << (uint(idx) % bitsPerUint64)
}

// Clear removes idx from the set.
func (b *Bitmap) Clear(idx int) {
	word := idx / bitsPerUint64
	if idx < 0 || word >= len(b.bits) {
		return
	}
	b.bits[word] &^= 1 << (uint(idx) % bitsPerUint64)
}

// IsSet reports whether idx is in the set. Out-of-range indices report false.
func (b *Bitmap) IsSet(idx int) bool {
	word := idx / bitsPerUint64
	if idx < 0 || word >= len(b.bits) {
		return false
	}
	return b.bits[word]&(1<<(uint(idx)%bitsPerUint64)) != 0
}

// Reset clears every bit, keeping the storage.
func (b *Bitmap) Reset() {
	clear(b.bits)
}
