// Package display provides the pixel grid capability consumed by the CPU
// and a monochrome in-memory implementation of it.
package display

import "strings"

// Default CHIP-8 resolution.
const (
	Width  = 64
	Height = 32
)

// Display is a monochrome pixel grid.
type Display interface {
	// Width returns the number of pixel columns.
	Width() int
	// Height returns the number of pixel rows.
	Height() int
	// IsPixelOn returns whether the pixel at the given coordinates is set.
	IsPixelOn(x, y int) bool
	// SetPixel turns the pixel at the given coordinates on or off.
	SetPixel(x, y int, on bool)
	// Clear turns all pixels off.
	Clear()
}

// Compile-time check to ensure Buffer implements Display.
var _ Display = (*Buffer)(nil)

// Buffer is a Display backed by a bool slice in row major order.
type Buffer struct {
	width  int
	height int
	pixels []bool
}

// New returns a cleared buffer of the given size.
func New(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		pixels: make([]bool, width*height),
	}
}

// NewDefault returns a cleared buffer of the default 64x32 resolution.
func NewDefault() *Buffer {
	return New(Width, Height)
}

// Width returns the number of pixel columns.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the number of pixel rows.
func (b *Buffer) Height() int {
	return b.height
}

// IsPixelOn returns whether the pixel is set. Coordinates outside of
// the buffer report an unset pixel.
func (b *Buffer) IsPixelOn(x, y int) bool {
	if !b.inside(x, y) {
		return false
	}
	return b.pixels[y*b.width+x]
}

// SetPixel sets the pixel state. Coordinates outside of the buffer are ignored.
func (b *Buffer) SetPixel(x, y int, on bool) {
	if !b.inside(x, y) {
		return
	}
	b.pixels[y*b.width+x] = on
}

// Clear turns all pixels off.
func (b *Buffer) Clear() {
	clear(b.pixels)
}

// PixelsOn returns the number of set pixels.
func (b *Buffer) PixelsOn() int {
	var count int
	for _, on := range b.pixels {
		if on {
			count++
		}
	}
	return count
}

// String renders the buffer as text, one line per row,
// '#' for a set pixel and '.' for an unset one.
func (b *Buffer) String() string {
	var buf strings.Builder
	buf.Grow((b.width + 1) * b.height)

	for y := range b.height {
		for x := range b.width {
			if b.pixels[y*b.width+x] {
				buf.WriteByte('#')
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

func (b *Buffer) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}
