package wire

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrLengthMismatch reports an image whose bit length does not match the
// schema it is interpreted with.
var ErrLengthMismatch = errors.New("image length does not match schema width")

// RegisterImage is a fixed-length bit sequence holding one packed
// register. Bit 0 is the most significant bit of the first byte; unused
// trailing bits of the last byte are zero.
type RegisterImage struct {
	bits   []byte
	bitLen int
}

// NewRegisterImage returns a zeroed image of the given bit length.
func NewRegisterImage(bitLen int) RegisterImage {
	return RegisterImage{
		bits:   make([]byte, (bitLen+7)/8),
		bitLen: bitLen,
	}
}

// ImageFromBytes wraps raw bytes as an image of bitLen bits. The byte
// count must match exactly and spare trailing bits must be zero.
func ImageFromBytes(data []byte, bitLen int) (RegisterImage, error) {
	if len(data) != (bitLen+7)/8 {
		return RegisterImage{}, fmt.Errorf("%w: %d bytes cannot hold exactly %d bits",
			ErrLengthMismatch, len(data), bitLen)
	}
	if spare := len(data)*8 - bitLen; spare > 0 {
		if data[len(data)-1]&(1<<spare-1) != 0 {
			return RegisterImage{}, fmt.Errorf("%w: trailing bits beyond %d set", ErrLengthMismatch, bitLen)
		}
	}

	img := RegisterImage{bits: make([]byte, len(data)), bitLen: bitLen}
	copy(img.bits, data)
	return img, nil
}

// BitLen returns the image's bit length.
func (img RegisterImage) BitLen() int {
	return img.bitLen
}

// Bytes returns a copy of the raw bytes, most significant first.
func (img RegisterImage) Bytes() []byte {
	out := make([]byte, len(img.bits))
	copy(out, img.bits)
	return out
}

// Equal reports bit-for-bit equality.
func (img RegisterImage) Equal(other RegisterImage) bool {
	return img.bitLen == other.bitLen && bytes.Equal(img.bits, other.bits)
}

// String renders the image as "<bitlen>b:<hex>".
func (img RegisterImage) String() string {
	return fmt.Sprintf("%db:%s", img.bitLen, hex.EncodeToString(img.bits))
}

// setSpan writes the low width bits of v at bit offset off.
func (img *RegisterImage) setSpan(off, width int, v uint64) {
	for i := 0; i < width; i++ {
		pos := off + i
		bit := v >> (width - 1 - i) & 1
		if bit == 1 {
			img.bits[pos/8] |= 1 << (7 - pos%8)
		} else {
			img.bits[pos/8] &^= 1 << (7 - pos%8)
		}
	}
}

// span reads width bits starting at bit offset off.
func (img RegisterImage) span(off, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		pos := off + i
		v <<= 1
		v |= uint64(img.bits[pos/8]) >> (7 - pos%8) & 1
	}
	return v
}
