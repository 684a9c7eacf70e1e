package pakfont

import "errors"

// Load-time failure: the font declares a sample depth the decoder
// doesn't implement. This means the wrong decoder build was paired
// with the font data, so there's no per-glyph recovery.
var ErrUnsupportedBitDepth = errors.New("font declares an unsupported bits per pixel value (decoder implements 1, 2, 4 and 8)")

// A glyph record whose header implies a payload bigger than the data
// actually backing it. This is a font build defect, not a runtime
// condition; renderers degrade to the nonprintable glyph instead of
// drawing garbage.
var ErrMalformedRecord = errors.New("glyph record header doesn't match its payload size")

// Requested sample lies outside the glyph's width x height rectangle.
var ErrOutOfBounds = errors.New("sample coordinates outside the glyph bounds")

var errInvalidFormatVersion = errors.New("invalid FormatVersion")
var errZeroSize = errors.New("font size can't be zero")
var errZeroWeight = errors.New("font weight can't be zero")
var errZeroHeight = errors.New("metrics Height can't be zero")
var errHeightAboveMax = errors.New("metrics Height can't exceed MaxHeight")
var errBaselineAboveMax = errors.New("metrics Baseline can't exceed MaxHeight")
var errTableNegativeRange = errors.New("glyph table declares a negative code range")
var errTableCodeOverflow = errors.New("glyph table code range isn't a valid character range")
var errTableTooManyEntries = errors.New("glyph table exceeds the max number of entries")
var errTableOffsetOutOfRange = errors.New("glyph table offset points outside the records blob")
