package pakfont

import "pakfont/internal"

// A [Glyph] is a view into one packed glyph record: a three byte header
// (pixel width, pixel height, advance width) followed by the bit-packed
// grayscale payload. Decoding is a pure function of the record bytes
// and the font's sample depth; no state is retained between calls, so
// glyphs can be decoded concurrently without coordination.
//
// The zero Glyph is empty; it's what [FontTable.Lookup] returns along
// a false value for absent codes, and it must not be sampled.
type Glyph struct {
	data []byte // header + payload
	bpp uint8
}

// Glyph width in pixels. Zero-width glyphs are legal (e.g. spacing-only
// records) and decode to an empty grid.
func (self Glyph) Width() uint8 {
	if len(self.data) < 1 { return 0 }
	return self.data[0]
}

// Glyph height in pixels.
func (self Glyph) Height() uint8 {
	if len(self.data) < 2 { return 0 }
	return self.data[1]
}

// Horizontal distance in pixels that the text cursor moves after
// rendering this glyph. Independent of the glyph width.
func (self Glyph) Advance() uint8 {
	if len(self.data) < internal.RecordHeaderSize { return 0 }
	return self.data[2]
}

// Raw sample depth ceiling: (1 << bpp) - 1, the full ink value.
func (self Glyph) MaxSample() uint8 {
	return uint8((1 << self.bpp) - 1)
}

// Checks that the record's payload matches what its header declares.
// A failure means the font data is corrupted or was built with a
// different packing convention; renderers must substitute the
// nonprintable glyph rather than draw from such a record.
func (self Glyph) Validate() error {
	if len(self.data) < internal.RecordHeaderSize { return ErrMalformedRecord }
	expected := internal.RecordHeaderSize + internal.PayloadLen(int(self.data[0]), int(self.data[1]), self.bpp)
	if len(self.data) != expected { return ErrMalformedRecord }
	return nil
}

// Returns the raw grayscale sample at the given column and row.
// 0 is background (no ink), [Glyph.MaxSample]() is full ink.
// Coordinates outside the glyph rectangle fail with [ErrOutOfBounds],
// and truncated payloads fail with [ErrMalformedRecord]; the decoder
// never reads past the record.
func (self Glyph) At(col, row int) (uint8, error) {
	width, height := int(self.Width()), int(self.Height())
	if col < 0 || col >= width || row < 0 || row >= height {
		return 0, ErrOutOfBounds
	}
	index := row*width + col
	payload := self.data[internal.RecordHeaderSize : ]
	sampler := internal.Sampler{ Data: payload, BitsPerPixel: self.bpp }
	if index >= sampler.Len() { return 0, ErrMalformedRecord }
	return sampler.Get(index), nil
}

// Decodes the whole glyph into dst as raw samples, row-major, one
// sample per pixel. The destination must have capacity for at least
// width*height samples; the filled slice is returned. A zero-area
// glyph returns an empty slice without touching the payload.
func (self Glyph) Decode(dst []uint8) ([]uint8, error) {
	if err := self.Validate(); err != nil { return nil, err }

	numSamples := int(self.Width())*int(self.Height())
	dst = internal.SetSliceSize(dst, numSamples)
	if numSamples == 0 { return dst, nil }

	sampler := internal.Sampler{
		Data: self.data[internal.RecordHeaderSize : ],
		BitsPerPixel: self.bpp,
	}
	for i := 0; i < numSamples; i++ {
		dst[i] = sampler.Get(i)
	}
	return dst, nil
}
