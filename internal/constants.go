package internal

const MaxFontDataSize = (4 << 20) // packed fonts target flash storage, typical sizes are a few KiB
const FormatVersion = 0x0000_0001

// Absent slots in the glyph offsets table store this sentinel
// instead of a record offset.
const AbsentOffset = 0xFFFF_FFFF

// Record headers are {width, height, advance}, one byte each.
const RecordHeaderSize = 3

const DefaultWeight = 400 // css-style weight, 100-900

// Sample depths the decoder implements. Anything else must be rejected
// while loading the font, never silently misdecoded.
func ValidBitsPerPixel(bpp uint8) bool {
	return bpp == 1 || bpp == 2 || bpp == 4 || bpp == 8
}
