package cpu

// draw renders an 8 pixel wide sprite of N rows read from memory at I
// to the coordinates VX, VY. Every set sprite bit flips the display pixel,
// VF is set if any flipped pixel was on before.
//
// Coordinates wrap around the display edges. With the clipping quirk
// enabled, pixels of a sprite starting on screen that would cross the
// right or bottom edge are dropped instead of wrapped.
func (c *CPU) draw(op operands) {
	startX := int(c.v[op.x])
	startY := int(c.v[op.y])
	width := c.display.Width()
	height := c.display.Height()

	c.v[flagRegister] = 0

	for row := range int(op.n) {
		sprite := c.mem.Read(c.i + uint16(row))

		for col := range spriteWidth {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			if c.quirks.Clipping && isClipped(startX+col, startX, width) {
				continue
			}
			if c.quirks.Clipping && isClipped(startY+row, startY, height) {
				continue
			}

			x := (startX + col) % width
			y := (startY + row) % height
			on := c.display.IsPixelOn(x, y)
			if on {
				c.v[flagRegister] = 1
			}
			c.display.SetPixel(x, y, !on)
		}
	}

	c.drawFlag = true
}

// isClipped returns whether a pixel position of a sprite that started
// on screen lands past the display edge.
func isClipped(position, start, size int) bool {
	return start < size && position >= size
}
