package pakfont

import "pakfont/internal"

const MaxFontDataSize = internal.MaxFontDataSize // size cap checked during parsing
const FormatVersion = internal.FormatVersion

// Maximum number of slots in a font's glyph table. Packed fonts cover
// one contiguous character code range; anything bigger than this is
// almost certainly corrupted data rather than a real font.
const MaxTableEntries = 65536

// Signature prefixing every exported font file.
var Signature = [6]byte{'p', 'a', 'k', 'f', 'n', 't'}
