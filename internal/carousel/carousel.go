// Package carousel implements a cyclic navigation cursor over an ordered
// post sequence. Each rendered gallery owns its own carousel; the cursor is
// reset whenever the underlying sequence is replaced.
package carousel

import "fmt"

// Carousel tracks the current position within a sequence of length n.
// The zero value is a parked carousel over an empty sequence.
type Carousel struct {
	index int
	n     int
}

// New returns a carousel over a sequence of length n with the cursor at 0.
func New(n int) Carousel {
	if n < 0 {
		n = 0
	}
	return Carousel{n: n}
}

// Len returns the length of the underlying sequence.
func (c Carousel) Len() int {
	return c.n
}

// Index returns the current cursor position. Only meaningful while Len > 0.
func (c Carousel) Index() int {
	return c.index
}

// Next advances the cursor, wrapping to the start. No-op on an empty sequence.
func (c *Carousel) Next() {
	if c.n == 0 {
		return
	}
	c.index = (c.index + 1) % c.n
}

// Previous moves the cursor back, wrapping to the end. No-op on an empty sequence.
func (c *Carousel) Previous() {
	if c.n == 0 {
		return
	}
	c.index = (c.index - 1 + c.n) % c.n
}

// GoTo jumps directly to position i. Positions are only ever offered for
// existing items, so an out-of-range i is a caller bug.
func (c *Carousel) GoTo(i int) error {
	if i < 0 || i >= c.n {
		return fmt.Errorf("carousel index %d out of range [0,%d)", i, c.n)
	}
	c.index = i
	return nil
}

// Reset replaces the underlying sequence length and parks the cursor at 0.
func (c *Carousel) Reset(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	c.index = 0
}
