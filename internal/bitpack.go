package internal

// Sub-byte sample packing. Glyph payloads store one grayscale sample
// per pixel at 1, 2, 4 or 8 bits per sample, packed most significant
// group first within each byte, row-major. The supported depths all
// divide 8, so a sample never straddles a byte boundary.
//
// Polarity: 0 is background (no ink), (1 << bpp) - 1 is full ink.

// PayloadLen returns the exact payload size in bytes for a glyph of
// the given dimensions. The last byte is zero-padded on its low bits
// when width*height*bpp is not a multiple of 8.
func PayloadLen(width, height int, bpp uint8) int {
	if width < 0 || height < 0 { panic("negative glyph dimensions") }
	if !ValidBitsPerPixel(bpp) { panic("invalid bits per pixel") }
	return (width*height*int(bpp) + 7) >> 3
}

// AppendSamples packs the given samples at the given depth and appends
// the resulting bytes to the buffer. Samples exceeding the depth's max
// value are clamped instead of corrupting neighbouring samples.
func AppendSamples(buffer []byte, samples []uint8, bpp uint8) []byte {
	if !ValidBitsPerPixel(bpp) { panic("invalid bits per pixel") }

	maxValue := uint8((1 << bpp) - 1)
	var accumulator uint8
	var filledBits uint8
	for _, sample := range samples {
		if sample > maxValue { sample = maxValue }
		accumulator = (accumulator << bpp) | sample
		filledBits += bpp
		if filledBits == 8 {
			buffer = append(buffer, accumulator)
			accumulator, filledBits = 0, 0
		}
	}
	if filledBits > 0 { // zero-pad the trailing byte
		buffer = append(buffer, accumulator << (8 - filledBits))
	}
	return buffer
}

// A Sampler reads individual packed samples back from a payload.
// The zero value is not usable; both fields must be set.
type Sampler struct {
	Data []byte
	BitsPerPixel uint8
}

// Len returns how many whole samples the payload holds, including
// any padding samples in the trailing byte.
func (self Sampler) Len() int {
	return (len(self.Data) << 3)/int(self.BitsPerPixel)
}

// Get returns the raw sample at the given linear index. The caller
// is responsible for staying within Len(); out of range indices panic.
func (self Sampler) Get(index int) uint8 {
	if index < 0 { panic("out of bounds") }
	bitIndex := index*int(self.BitsPerPixel)
	shift := 8 - self.BitsPerPixel - uint8(bitIndex & 0b111)
	return (self.Data[bitIndex >> 3] >> shift) & uint8((1 << self.BitsPerPixel) - 1)
}
