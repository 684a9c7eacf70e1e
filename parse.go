package pakfont

import "fmt"
import "io"
import "io/fs"
import "bytes"
import "errors"

import "pakfont/internal"

const traceParsing = false

// Utility method for parsing from a fs.FS, like when using embed.
func ParseFS(filesys fs.FS, filename string) (*Font, error) {
	file, err := filesys.Open(filename)
	if err != nil { return nil, err }
	stat, err := file.Stat()
	if err != nil { return nil, err }
	if stat.Size() > MaxFontDataSize {
		return nil, errors.New("file size exceeds limit")
	}

	font, err := Parse(file)
	if err != nil { return font, err }
	return font, file.Close()
}

// Utility method for parsing font data already loaded in memory.
func ParseBytes(data []byte) (*Font, error) {
	return Parse(bytes.NewReader(data))
}

// Parses a packed font. The returned [Font] passes [FmtDefault]
// validation: metric invariants hold, the sample depth is one the
// decoder implements, and every table offset references a record
// within the font data. Use [Font.Validate] with [FmtStrict] to
// additionally verify every glyph record payload.
func Parse(reader io.Reader) (*Font, error) {
	var font Font
	var parser internal.ParsingBuffer
	var signature [6]byte

	if traceParsing { fmt.Printf("starting parsing...\n") }

	// read signature first
	_, err := io.ReadFull(reader, signature[ : ])
	if err != nil {
		return &font, errors.New("pakfnt parsing error: failed to read file signature")
	}
	if signature != Signature {
		return &font, errors.New("pakfnt parsing error: invalid signature")
	}

	parser.InitBuffers(reader)
	parser.FileType = "pakfnt"

	// --- header ---
	if traceParsing { fmt.Printf("parsing header...\n") }
	formatVersion, err := parser.ReadUint32()
	if err != nil { return &font, err }
	if formatVersion != FormatVersion {
		return &font, parser.NewError(errInvalidFormatVersion.Error())
	}
	err = parser.AdvanceBytes(3) // size and weight
	if err != nil { return &font, err }
	_, err = parser.ReadShortStr() // font name
	if err != nil { return &font, err }

	font.data = parser.Bytes // initial assignation (required before validation)
	err = font.Header().Validate(FmtDefault)
	if err != nil { return &font, err }

	// --- metrics ---
	if traceParsing { fmt.Printf("parsing metrics... (index = %d)\n", parser.Index) }
	font.offsetToMetrics = uint32(parser.Index)
	err = parser.AdvanceBytes(4)
	if err != nil { return &font, err }

	font.data = parser.Bytes // possible slice reallocs
	err = font.Metrics().Validate(FmtDefault)
	if err != nil { return &font, err }

	// --- glyph table ---
	if traceParsing { fmt.Printf("parsing glyph table... (index = %d)\n", parser.Index) }
	font.offsetToTable = uint32(parser.Index)
	firstCode, err := parser.ReadUint32()
	if err != nil { return &font, err }
	lastCode, err := parser.ReadUint32()
	if err != nil { return &font, err }
	if lastCode < firstCode {
		return &font, errTableNegativeRange
	}
	numEntries := lastCode - firstCode + 1
	if numEntries > MaxTableEntries {
		return &font, errTableTooManyEntries
	}

	// advance EntryOffsets and NonprintableOffset
	err = parser.AdvanceBytes(int(numEntries)*4 + 4)
	if err != nil { return &font, err }
	recordsLen, err := parser.ReadUint32()
	if err != nil { return &font, err }
	if recordsLen > MaxFontDataSize {
		return &font, parser.NewError("records blob size exceeds limit")
	}

	// --- glyph records blob ---
	if traceParsing { fmt.Printf("parsing glyph records... (index = %d)\n", parser.Index) }
	font.offsetToRecords = uint32(parser.Index)
	err = parser.AdvanceBytes(int(recordsLen))
	if err != nil { return &font, err }

	// ensure we reach EOF exactly at the right time
	err = parser.EnsureEOF()
	if err != nil { return &font, err }

	font.data = parser.Bytes // possible slice reallocs
	err = font.Table().Validate(FmtDefault)
	if err != nil { return &font, err }

	// everything went well
	if traceParsing { fmt.Printf("parsing correct! (%d bytes)\n", len(font.data)) }
	return &font, nil
}
