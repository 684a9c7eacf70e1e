package builder

import "io"
import "image"
import "errors"

import "pakfont"
import "pakfont/internal"

const fontBuilderDefaultFontName = "Unnamed"
const fontBuilderDefaultBitsPerPixel = 4

var ErrBuildNoMetrics = errors.New("can't build font without metrics (use SetMetrics)")
var ErrBuildBadRange = errors.New("invalid character code range")
var ErrGlyphOutOfRange = errors.New("character code outside the font's table range")
var ErrGlyphTooBig = errors.New("glyph mask exceeds the max glyph dimensions (255x255)")
var ErrGlyphTooTall = errors.New("glyph height exceeds the font metrics MaxHeight")
var ErrDepthLocked = errors.New("can't change bits per pixel after adding glyphs")
var errFontDataExceedsMax = errors.New("font data exceeds maximum size")

// A [pakfont.Font] builder: the encode side of the packed format. It
// assembles the dense glyph table and the bit-packed records with the
// exact convention the decoder expects, which is what the round-trip
// guarantee rests on. The production font compiler feeds this same
// code through cmd/fontgen.
//
// This object should never replace a [pakfont.Font] outside the
// edition context.
type Font struct {
	// header
	fontName string
	sizePoints uint8
	weight uint16

	// metrics
	hasMetrics bool
	height uint8
	maxHeight uint8
	baseline uint8
	bitsPerPixel uint8

	// glyphs data
	firstCode rune
	lastCode rune
	glyphs map[rune]*glyphData
	nonprintable *glyphData
}

type glyphData struct {
	width uint8
	height uint8
	advance uint8
	samples []uint8 // raw quantized samples, row-major
}

// Creates a builder for a font covering the given character code
// range, both ends inclusive (e.g. 32, 126 for printable ASCII).
func New(firstCode, lastCode rune) (*Font, error) {
	if firstCode < 0 || lastCode < firstCode {
		return nil, ErrBuildBadRange
	}
	if int(lastCode) - int(firstCode) + 1 > pakfont.MaxTableEntries {
		return nil, ErrBuildBadRange
	}

	return &Font{
		fontName: fontBuilderDefaultFontName,
		weight: internal.DefaultWeight,
		bitsPerPixel: fontBuilderDefaultBitsPerPixel,
		firstCode: firstCode,
		lastCode: lastCode,
		glyphs: make(map[rune]*glyphData),
	}, nil
}

// --- header configuration ---

func (self *Font) SetName(name string) error {
	err := internal.ValidateBasicSpacedName(name)
	if err != nil { return err }
	self.fontName = name
	return nil
}

// Nominal point size. If left unset, Build falls back to the
// metrics height.
func (self *Font) SetSize(sizePoints uint8) { self.sizePoints = sizePoints }

// Css style weight, 100-900 (400 regular, 700 bold).
func (self *Font) SetWeight(weight uint16) error {
	if weight == 0 || weight > 900 {
		return errors.New("weight must be in the 1-900 range")
	}
	self.weight = weight
	return nil
}

// --- metrics configuration ---

func (self *Font) SetMetrics(height, maxHeight, baseline uint8) error {
	if height == 0 { return errors.New("metrics height can't be zero") }
	if height > maxHeight { return errors.New("metrics height can't exceed maxHeight") }
	if baseline > maxHeight { return errors.New("metrics baseline can't exceed maxHeight") }
	self.hasMetrics = true
	self.height = height
	self.maxHeight = maxHeight
	self.baseline = baseline
	return nil
}

// Sample depth for the glyph payloads (1, 2, 4 or 8). Must be chosen
// before adding any glyph: samples are quantized on the way in.
func (self *Font) SetBitsPerPixel(bpp uint8) error {
	if !internal.ValidBitsPerPixel(bpp) {
		return pakfont.ErrUnsupportedBitDepth
	}
	if len(self.glyphs) > 0 || self.nonprintable != nil {
		return ErrDepthLocked
	}
	self.bitsPerPixel = bpp
	return nil
}

// --- glyph edition ---

// Sets the glyph for the given character code from an alpha mask,
// quantizing each alpha value to the font's sample depth. The mask
// bounds origin is irrelevant; only the dimensions and the sample
// values matter. A nil mask produces a 0x0 glyph that only consumes
// its advance (a space, typically).
func (self *Font) SetGlyph(code rune, advance uint8, mask *image.Alpha) error {
	if code < self.firstCode || code > self.lastCode {
		return ErrGlyphOutOfRange
	}
	glyph, err := self.maskGlyphData(advance, mask)
	if err != nil { return err }
	self.glyphs[code] = glyph
	return nil
}

// Like [Font.SetGlyph], but taking raw samples directly. Samples must
// be in range for the configured depth and have width*height elements.
func (self *Font) SetGlyphSamples(code rune, width, height, advance uint8, samples []uint8) error {
	if code < self.firstCode || code > self.lastCode {
		return ErrGlyphOutOfRange
	}
	glyph, err := self.rawGlyphData(width, height, advance, samples)
	if err != nil { return err }
	self.glyphs[code] = glyph
	return nil
}

// Clears the slot for the given character code. Missing slots are a
// normal condition; lookups on them trigger the nonprintable fallback.
func (self *Font) RemoveGlyph(code rune) {
	delete(self.glyphs, code)
}

// Sets the nonprintable fallback glyph. If never called, Build
// synthesizes a hollow box sized to the font metrics.
func (self *Font) SetNonprintable(advance uint8, mask *image.Alpha) error {
	glyph, err := self.maskGlyphData(advance, mask)
	if err != nil { return err }
	self.nonprintable = glyph
	return nil
}

func (self *Font) maskGlyphData(advance uint8, mask *image.Alpha) (*glyphData, error) {
	if mask == nil {
		return &glyphData{ advance: advance }, nil
	}

	bounds := mask.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > 255 || height > 255 { return nil, ErrGlyphTooBig }

	shift := 8 - self.bitsPerPixel
	samples := make([]uint8, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samples = append(samples, mask.AlphaAt(x, y).A >> shift)
		}
	}
	return &glyphData{
		width: uint8(width),
		height: uint8(height),
		advance: advance,
		samples: samples,
	}, nil
}

func (self *Font) rawGlyphData(width, height, advance uint8, samples []uint8) (*glyphData, error) {
	if len(samples) != int(width)*int(height) {
		return nil, errors.New("samples length doesn't match width*height")
	}
	maxSample := uint8((1 << self.bitsPerPixel) - 1)
	for _, sample := range samples {
		if sample > maxSample {
			return nil, errors.New("sample value exceeds the configured bits per pixel")
		}
	}
	glyph := &glyphData{ width: width, height: height, advance: advance }
	glyph.samples = append(glyph.samples, samples...)
	return glyph, nil
}

// --- build ---

// Serializes the font and parses it back, so the returned [pakfont.Font]
// is guaranteed to be readable by the same decoder everyone else uses.
func (self *Font) Build() (*pakfont.Font, error) {
	data, err := self.appendFontData(nil)
	if err != nil { return nil, err }
	return pakfont.ParseBytes(data)
}

// Writes the font in its binary format, same as building and calling
// [pakfont.Font.Export].
func (self *Font) Export(writer io.Writer) error {
	data, err := self.appendFontData(nil)
	if err != nil { return err }
	_, err = writer.Write(data)
	return err
}

func (self *Font) appendFontData(data []byte) ([]byte, error) {
	if !self.hasMetrics { return nil, ErrBuildNoMetrics }
	for _, glyph := range self.glyphs {
		if glyph.height > self.maxHeight { return nil, ErrGlyphTooTall }
	}

	sizePoints := self.sizePoints
	if sizePoints == 0 { sizePoints = self.height }
	nonprintable := self.nonprintable
	if nonprintable == nil { nonprintable = self.synthesizeNonprintable() }
	if nonprintable.height > self.maxHeight { return nil, ErrGlyphTooTall }

	// signature and header
	data = append(data, pakfont.Signature[ : ]...)
	data = internal.AppendUint32LE(data, pakfont.FormatVersion)
	data = internal.AppendUint8(data, sizePoints)
	data = internal.AppendUint16LE(data, self.weight)
	data = internal.AppendShortString(data, self.fontName)

	// metrics
	data = append(data, self.height, self.maxHeight, self.baseline, self.bitsPerPixel)

	// glyph table
	data = internal.AppendUint32LE(data, uint32(self.firstCode))
	data = internal.AppendUint32LE(data, uint32(self.lastCode))

	var records []byte
	for code := self.firstCode; code <= self.lastCode; code++ {
		glyph, found := self.glyphs[code]
		if !found {
			data = internal.AppendUint32LE(data, internal.AbsentOffset)
			continue
		}
		data = internal.AppendUint32LE(data, uint32(len(records)))
		records = glyph.appendRecord(records, self.bitsPerPixel)
	}
	data = internal.AppendUint32LE(data, uint32(len(records))) // nonprintable offset
	records = nonprintable.appendRecord(records, self.bitsPerPixel)

	data = internal.AppendUint32LE(data, uint32(len(records)))
	data = append(data, records...)

	if len(data) > pakfont.MaxFontDataSize { return nil, errFontDataExceedsMax }
	return data, nil
}

func (self *glyphData) appendRecord(records []byte, bpp uint8) []byte {
	records = append(records, self.width, self.height, self.advance)
	return internal.AppendSamples(records, self.samples, bpp)
}

// Default fallback glyph: a hollow box occupying the ascent area,
// full ink border, transparent interior.
func (self *Font) synthesizeNonprintable() *glyphData {
	boxHeight := self.height - self.baseline
	if boxHeight == 0 { boxHeight = self.height }
	boxWidth := boxHeight/2 + 2
	ink := uint8((1 << self.bitsPerPixel) - 1)

	samples := make([]uint8, int(boxWidth)*int(boxHeight))
	for y := uint8(0); y < boxHeight; y++ {
		for x := uint8(0); x < boxWidth; x++ {
			border := y == 0 || y == boxHeight - 1 || x == 0 || x == boxWidth - 1
			if border { samples[int(y)*int(boxWidth) + int(x)] = ink }
		}
	}
	return &glyphData{
		width: boxWidth,
		height: boxHeight,
		advance: boxWidth + 1,
		samples: samples,
	}
}
