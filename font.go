package pakfont

import "io"

import "pakfont/internal"

// A [Font] is a read-only object giving access to a packed bitmap font:
// a dense glyph table covering one contiguous character code range,
// plus the font-wide constants needed to decode and place its glyphs.
// To create a [Font], use [Parse](), [ParseBytes]() or a builder.
//
// Fonts expose their sections through gateway methods:
//   - Use [Font.Header]() for identity data (name, size, weight).
//   - Use [Font.Metrics]() for the font-wide constants.
//   - Use [Font.Table]() for character code lookups.
//   - Use [Font.Nonprintable]() for the fallback glyph.
//
// All the data lives in a single contiguous byte slice and is never
// mutated after parsing, so a [Font] can be shared freely between
// concurrent readers without any locking.
type Font struct {
	data []byte // raw data block, signature excluded

	// offsets to the points at which each section starts
	// (the header always starts at zero)
	offsetToMetrics uint32
	offsetToTable uint32
	offsetToRecords uint32
}

// --- general methods ---

type FmtValidation bool
const (
	FmtDefault FmtValidation = false // structural checks only
	FmtStrict  FmtValidation = true  // additionally check every glyph record
)

// Validates the font data. [Parse]() already applies [FmtDefault]
// validation to everything it loads, which is enough to guarantee that
// lookups and record slicing stay within the font data. [FmtStrict]
// additionally walks every glyph record.
func (self *Font) Validate(mode FmtValidation) error {
	var err error

	err = self.Header().Validate(mode)
	if err != nil { return err }
	err = self.Metrics().Validate(mode)
	if err != nil { return err }
	err = self.Table().Validate(mode)
	if err != nil { return err }

	return nil
}

// Writes the font in its binary format (signature included).
// The output can be loaded back with [Parse]().
func (self *Font) Export(writer io.Writer) error {
	_, err := writer.Write(Signature[ : ])
	if err != nil { return err }
	_, err = writer.Write(self.data)
	return err
}

// Returns the size of the font's backing data in bytes, signature
// excluded. Useful to estimate the flash footprint of a font.
func (self *Font) DataSize() int { return len(self.data) }

// --- data section gateways ---

func (self *Font) Header() *FontHeader { return (*FontHeader)(self) }
func (self *Font) Metrics() *FontMetrics { return (*FontMetrics)(self) }
func (self *Font) Table() *FontTable { return (*FontTable)(self) }

// Returns the distinguished fallback glyph. It lives outside the
// code-indexed table and is always present: whenever [FontTable.Lookup]
// reports an absent code, renderers draw this record instead and
// advance the cursor by this record's own advance width.
func (self *Font) Nonprintable() Glyph {
	offset := internal.DecodeUint32LE(self.data[self.nonprintableOffsetIndex() : ])
	return self.recordAt(offset)
}

// --- internal access helpers ---

func (self *Font) numTableEntries() uint32 {
	first := internal.DecodeUint32LE(self.data[self.offsetToTable : ])
	last  := internal.DecodeUint32LE(self.data[self.offsetToTable + 4 : ])
	return last - first + 1
}

func (self *Font) nonprintableOffsetIndex() uint32 {
	return self.offsetToTable + 8 + self.numTableEntries()*4
}

// Returns a view of the record starting at the given offset within the
// records blob. The view is clamped to the blob, so truncated records
// produce a short [Glyph] that fails [Glyph.Validate]() instead of
// aliasing bytes beyond the font data.
func (self *Font) recordAt(offset uint32) Glyph {
	bpp := self.Metrics().BitsPerPixel()
	start := int(self.offsetToRecords) + int(offset)
	end := len(self.data)
	if start > end { start = end }
	if start + internal.RecordHeaderSize <= end {
		width, height := int(self.data[start]), int(self.data[start + 1])
		recordEnd := start + internal.RecordHeaderSize + internal.PayloadLen(width, height, bpp)
		if recordEnd < end { end = recordEnd }
	}
	return Glyph{ data: self.data[start : end], bpp: bpp }
}

// --- header section ---

// Obtained through [Font.Header]().
type FontHeader Font

// Binary format version of the font data.
func (self *FontHeader) FormatVersion() uint32 {
	return internal.DecodeUint32LE(self.data)
}

// Nominal point size the font was generated at.
func (self *FontHeader) Size() uint8 { return self.data[4] }

// Weight class, css style (400 is regular, 700 is bold).
func (self *FontHeader) Weight() uint16 {
	return internal.DecodeUint16LE(self.data[5 : ])
}

// Font name. Together with [FontHeader.Size]() and [FontHeader.Weight](),
// this identifies the font.
func (self *FontHeader) Name() string {
	nameLen := int(self.data[7])
	return string(self.data[8 : 8 + nameLen])
}

func (self *FontHeader) Validate(mode FmtValidation) error {
	if self.FormatVersion() != FormatVersion {
		return errInvalidFormatVersion
	}
	if self.Size() == 0 { return errZeroSize }
	if self.Weight() == 0 { return errZeroWeight }
	return internal.ValidateBasicSpacedName(self.Name())
}

// --- metrics section ---

// Obtained through [Font.Metrics]().
//
// Metrics are font-wide constants: every glyph in the font is decoded
// and placed against the same cell height, baseline and sample depth.
type FontMetrics Font

// Total glyph cell height in pixels.
func (self *FontMetrics) Height() uint8 { return self.data[self.offsetToMetrics] }

// Upper bound for glyph heights, used for buffer sizing. It can exceed
// [FontMetrics.Height]() on fonts with tall accents or deep descenders.
func (self *FontMetrics) MaxHeight() uint8 { return self.data[self.offsetToMetrics + 1] }

// Descent reserve in pixels between the glyph cell bottom and the text
// baseline. A glyph's top-left is placed at baselineY + Baseline - glyphHeight.
func (self *FontMetrics) Baseline() uint8 { return self.data[self.offsetToMetrics + 2] }

// Grayscale sample depth of the glyph payloads. Raw sample values go
// from 0 (background) to (1 << bpp) - 1 (full ink).
func (self *FontMetrics) BitsPerPixel() uint8 { return self.data[self.offsetToMetrics + 3] }

// Pixels available above the baseline ([FontMetrics.Height]() minus
// [FontMetrics.Baseline]()).
func (self *FontMetrics) Ascent() uint8 {
	return self.Height() - self.Baseline()
}

func (self *FontMetrics) Validate(mode FmtValidation) error {
	if !internal.ValidBitsPerPixel(self.BitsPerPixel()) {
		return ErrUnsupportedBitDepth
	}
	if self.Height() == 0 { return errZeroHeight }
	if self.Height() > self.MaxHeight() { return errHeightAboveMax }
	if self.Baseline() > self.MaxHeight() { return errBaselineAboveMax }
	return nil
}

// --- glyph table section ---

// Obtained through [Font.Table]().
//
// The table is a dense array with one slot per character code in
// [FirstCode, LastCode], in order, with no index gaps. Codes that the
// font defines no glyph for (reserved control slots and similar) hold
// an absence marker; that's a normal condition, not a defect.
type FontTable Font

// First character code covered by the table (inclusive).
func (self *FontTable) FirstCode() rune {
	return rune(internal.DecodeUint32LE(self.data[self.offsetToTable : ]))
}

// Last character code covered by the table (inclusive).
func (self *FontTable) LastCode() rune {
	return rune(internal.DecodeUint32LE(self.data[self.offsetToTable + 4 : ]))
}

// Number of slots in the table (present or absent).
func (self *FontTable) NumEntries() int {
	return int((*Font)(self).numTableEntries())
}

// Resolves a character code to its glyph record. The second return
// value is false when the code is outside [FirstCode, LastCode] or its
// slot is empty; in that case the caller must fall back to
// [Font.Nonprintable](). Any code value is a valid argument.
//
// Lookup is pure and O(1): direct indexed access, no search structure.
func (self *FontTable) Lookup(code rune) (Glyph, bool) {
	if code < self.FirstCode() || code > self.LastCode() {
		return Glyph{}, false
	}
	index := uint32(code - self.FirstCode())
	offset := internal.DecodeUint32LE(self.data[self.offsetToTable + 8 + index*4 : ])
	if offset == internal.AbsentOffset { return Glyph{}, false }
	return (*Font)(self).recordAt(offset), true
}

// Calls the given function for each present glyph in the table, in
// character code order. Absent slots are skipped.
func (self *FontTable) Each(fn func(code rune, glyph Glyph)) {
	for code := self.FirstCode(); code <= self.LastCode(); code++ {
		glyph, found := self.Lookup(code)
		if found { fn(code, glyph) }
	}
}

func (self *FontTable) Validate(mode FmtValidation) error {
	font := (*Font)(self)
	if self.FirstCode() < 0 { return errTableCodeOverflow }
	if self.LastCode() < self.FirstCode() { return errTableNegativeRange }
	if self.NumEntries() > MaxTableEntries { return errTableTooManyEntries }

	// every stored offset must reference a whole record within the
	// records blob, nonprintable included (lookups rely on this)
	recordsLen := uint32(len(self.data)) - self.offsetToRecords
	numEntries := font.numTableEntries()
	for i := uint32(0); i <= numEntries; i++ {
		var offset uint32
		if i == numEntries {
			offset = internal.DecodeUint32LE(self.data[font.nonprintableOffsetIndex() : ])
		} else {
			offset = internal.DecodeUint32LE(self.data[self.offsetToTable + 8 + i*4 : ])
			if offset == internal.AbsentOffset { continue }
		}
		if offset >= recordsLen || recordsLen - offset < internal.RecordHeaderSize {
			return errTableOffsetOutOfRange
		}
		if mode == FmtStrict {
			err := font.recordAt(offset).Validate()
			if err != nil { return err }
		}
	}

	return nil
}
