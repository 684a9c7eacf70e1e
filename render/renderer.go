// Package render implements the glyph composition path on top of the
// pakfont decoder: text measuring, baseline placement and the fallback
// guarantees for codes the font doesn't cover.
package render

import "image"
import "image/color"

import "github.com/sirupsen/logrus"
import xdraw "golang.org/x/image/draw"

import "pakfont"

// A Renderer draws text from a single packed font onto any draw.Image.
// Every character code produces a bounded visual result and a defined
// cursor advance: codes outside the font's table (or sitting on empty
// slots) render the font's nonprintable glyph and consume that glyph's
// own advance width, so upstream layout code can never be driven into
// an undefined state by unsupported input.
//
// A Renderer reuses an internal mask buffer between glyphs, so a
// single Renderer must not be used from multiple goroutines at once.
// Creating one Renderer per goroutine over the same font is fine; the
// underlying font data is read-only.
type Renderer struct {
	font *pakfont.Font
	logger logrus.FieldLogger
	maskBuffer *image.Alpha
}

func New(font *pakfont.Font) *Renderer {
	return &Renderer{
		font: font,
		logger: logrus.StandardLogger(),
	}
}

func (self *Renderer) Font() *pakfont.Font { return self.font }

// Replaces the logger used for glyph degradation diagnostics.
func (self *Renderer) SetLogger(logger logrus.FieldLogger) {
	self.logger = logger
}

// Vertical distance between consecutive text baselines.
func (self *Renderer) LineAdvance() int {
	return int(self.font.Metrics().MaxHeight())
}

// Returns the horizontal space the given text takes, in pixels:
// the sum of all its glyphs' advance widths, fallback advances
// included for codes the font doesn't cover.
func (self *Renderer) Measure(text string) int {
	var width int
	for _, code := range text {
		width += int(self.glyphFor(code).Advance())
	}
	return width
}

// Draws the text with its baseline starting at origin, left to right,
// and returns the position the cursor ends at. Glyph samples compose
// over dst as alpha-scaled ink.
func (self *Renderer) DrawString(dst xdraw.Image, text string, origin image.Point, ink color.Color) image.Point {
	source := image.NewUniform(ink)
	baseline := int(self.font.Metrics().Baseline())

	x := origin.X
	for _, code := range text {
		glyph := self.glyphFor(code)
		width, height := int(glyph.Width()), int(glyph.Height())
		if width > 0 && height > 0 {
			mask, err := glyph.Rasterize(self.maskBuffer)
			if err != nil { panic("broken code") } // glyphFor only returns validated glyphs
			self.maskBuffer = mask

			// cell-bottom anchoring: the glyph bottom sits 'baseline'
			// pixels below the text baseline
			top := origin.Y + baseline - height
			rect := image.Rect(x, top, x + width, top + height)
			xdraw.DrawMask(dst, rect, source, image.Point{}, mask, image.Point{}, xdraw.Over)
		}
		x += int(glyph.Advance())
	}
	return image.Point{ x, origin.Y }
}

// Resolves a character code to a drawable glyph, applying the fallback
// policy: absent codes use the nonprintable glyph silently (that's the
// normal path for unsupported input), while corrupted records are
// logged and degraded to the nonprintable glyph as well.
func (self *Renderer) glyphFor(code rune) pakfont.Glyph {
	glyph, found := self.font.Table().Lookup(code)
	if found {
		err := glyph.Validate()
		if err == nil { return glyph }
		self.logger.WithFields(logrus.Fields{
			"font": self.font.Header().Name(),
			"code": code,
			"error": err,
		}).Warn("malformed glyph record, substituting nonprintable glyph")
	}

	nonprintable := self.font.Nonprintable()
	if err := nonprintable.Validate(); err != nil {
		// can't draw anything safely; an empty glyph still yields a
		// bounded (zero-advance) result
		self.logger.WithFields(logrus.Fields{
			"font": self.font.Header().Name(),
			"error": err,
		}).Error("malformed nonprintable glyph record")
		return pakfont.Glyph{}
	}
	return nonprintable
}
