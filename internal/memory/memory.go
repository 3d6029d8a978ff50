// Package memory provides the 4KB byte addressable memory of the CHIP-8 virtual machine.
package memory

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: Interpreter area, holds the font glyphs
//	0x200-0xFFF: Program space
const (
	// Size is the number of addressable bytes.
	Size = 0x1000

	// AddressMask limits every address to the 12 bit address space.
	AddressMask = Size - 1
)

// Memory is a flat 4KB memory. All addresses are masked to 12 bits,
// an access past 0xFFF wraps around to 0x000.
type Memory struct {
	data [Size]byte
}

// New returns a new zeroed memory.
func New() *Memory {
	return &Memory{}
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) byte {
	return m.data[address&AddressMask]
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) {
	m.data[address&AddressMask] = value
}

// CopyIn copies the buffer into memory starting at the given address.
// Bytes that would land past the end of memory wrap to the start.
func (m *Memory) CopyIn(address uint16, buf []byte) {
	for i, b := range buf {
		m.data[(int(address)+i)&AddressMask] = b
	}
}

// Clear zeroes the whole memory.
func (m *Memory) Clear() {
	clear(m.data[:])
}
