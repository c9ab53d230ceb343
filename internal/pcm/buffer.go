package pcm

import "errors"

// ErrExhausted is returned by Reserve when the requested total would pass
// the buffer's limit. Samples already appended stay valid.
var ErrExhausted = errors.New("pcm: sample buffer limit reached")

// Buffer is an append-only mono 16-bit sample store with a hard ceiling on
// its backing storage.
type Buffer struct {
	data  []int16
	limit int
	grows int
}

// New allocates initialCap samples up front. limit <= 0 means no ceiling.
func New(initialCap, limit int) *Buffer {
	if initialCap < 0 {
		initialCap = 0
	}
	if limit > 0 && initialCap > limit {
		initialCap = limit
	}
	return &Buffer{data: make([]int16, 0, initialCap), limit: limit}
}

// Reserve makes room for n more samples, reallocating to twice the new
// total (capped at the limit) when the current capacity is short.
func (b *Buffer) Reserve(n int) error {
	if n <= 0 {
		return nil
	}
	need := len(b.data) + n
	if need <= cap(b.data) {
		return nil
	}
	if b.limit > 0 && need > b.limit {
		return ErrExhausted
	}
	newCap := need * 2
	if b.limit > 0 && newCap > b.limit {
		newCap = b.limit
	}
	grown := make([]int16, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
	b.grows++
	return nil
}

// Extend lengthens the buffer by n zeroed samples and returns that segment
// for in-place writes. Callers Reserve first.
func (b *Buffer) Extend(n int) []int16 {
	start := len(b.data)
	if n <= 0 {
		return b.data[start:start]
	}
	if start+n > cap(b.data) {
		b.data = append(b.data, make([]int16, n)...)
	} else {
		b.data = b.data[:start+n]
		clear(b.data[start:])
	}
	return b.data[start:]
}

// Samples returns the samples written so far. The slice aliases the buffer.
func (b *Buffer) Samples() []int16 { return b.data }

func (b *Buffer) Len() int   { return len(b.data) }
func (b *Buffer) Cap() int   { return cap(b.data) }
func (b *Buffer) Limit() int { return b.limit }

// Grows counts reallocations.
func (b *Buffer) Grows() int { return b.grows }
