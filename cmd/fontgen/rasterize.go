package main

import "image"
import "image/color"

import "github.com/makeworld-the-better-one/dither/v2"
import "golang.org/x/image/font"
import "golang.org/x/image/math/fixed"

import "pakfont/builder"

// Cell geometry derived from the source face. Glyph bitmaps are stored
// bottom-aligned to the cell (the packed format carries no per-glyph
// vertical bearing), so the cell bottom doubles as the placement
// anchor: baseline + descent.
type cellMetrics struct {
	height int // ascent + descent
	ascent int
	descent int
}

func cellMetricsFrom(face font.Face) cellMetrics {
	metrics := face.Metrics()
	return cellMetrics{
		height: metrics.Ascent.Ceil() + metrics.Descent.Ceil(),
		ascent: metrics.Ascent.Ceil(),
		descent: metrics.Descent.Ceil(),
	}
}

// Rasterizes every available glyph in [firstCode, lastCode] into the
// builder. Codes the face has no glyph for are left absent; the
// decoder's nonprintable fallback covers them at runtime. Returns the
// number of glyphs actually set.
func populateGlyphs(fontBuilder *builder.Font, face font.Face, cell cellMetrics, firstCode, lastCode rune, useDither bool) (int, error) {
	var numGlyphs int
	for code := firstCode; code <= lastCode; code++ {
		mask, advance, found := rasterizeGlyph(face, code, cell)
		if !found { continue }
		if useDither && mask != nil { mask = ditherMask(mask) }
		err := fontBuilder.SetGlyph(code, advance, mask)
		if err != nil { return numGlyphs, err }
		numGlyphs++
	}
	return numGlyphs, nil
}

// Rasterizes one glyph into a cell-sized alpha mask, trimmed of empty
// top rows and empty right columns. Bottom rows are never trimmed:
// they encode the glyph's vertical placement within the cell. The
// returned mask is nil for ink-less glyphs (spaces).
func rasterizeGlyph(face font.Face, code rune, cell cellMetrics) (*image.Alpha, uint8, bool) {
	fixedAdvance, found := face.GlyphAdvance(code)
	if !found { return nil, 0, false }
	advance := clamp255(fixedAdvance.Ceil())

	bounds, _, _ := face.GlyphBounds(code)
	if bounds.Empty() { return nil, advance, true }

	// negative left bearings get baked into the bitmap by shifting
	// the draw origin right
	shiftX := 0
	if minX := bounds.Min.X.Floor(); minX < 0 { shiftX = -minX }
	width := bounds.Max.X.Ceil() + shiftX
	if width <= 0 { return nil, advance, true }

	mask := image.NewAlpha(image.Rect(0, 0, width, cell.height))
	drawer := font.Drawer{
		Dst: mask,
		Src: image.NewUniform(color.Alpha{255}),
		Face: face,
		Dot: fixed.P(shiftX, cell.ascent),
	}
	drawer.DrawString(string(code))

	return trimMask(mask), advance, true
}

func trimMask(mask *image.Alpha) *image.Alpha {
	bounds := mask.Rect
	top, right := -1, bounds.Min.X
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.AlphaAt(x, y).A == 0 { continue }
			if top == -1 { top = y } // first inked row
			if x + 1 > right { right = x + 1 }
		}
	}
	if top == -1 { return nil } // no ink at all

	trimmed := mask.SubImage(image.Rect(bounds.Min.X, top, right, bounds.Max.Y))
	return trimmed.(*image.Alpha)
}

// Reduces a mask to pure on/off ink with Floyd-Steinberg error
// diffusion. Plain right-shift quantization at 1 bpp tends to eat
// antialiased edges; dithering keeps the perceived shape.
func ditherMask(mask *image.Alpha) *image.Alpha {
	bounds := mask.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.SetGray(x, y, color.Gray{ Y: mask.AlphaAt(x, y).A })
		}
	}

	ditherer := dither.NewDitherer([]color.Color{color.Black, color.White})
	ditherer.Matrix = dither.FloydSteinberg
	paletted := ditherer.DitherPaletted(gray)

	dithered := image.NewAlpha(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if paletted.ColorIndexAt(x, y) == 1 { // white = ink
				dithered.SetAlpha(x, y, color.Alpha{255})
			}
		}
	}
	return dithered
}

func clamp255(value int) uint8 {
	if value < 0 { return 0 }
	if value > 255 { return 255 }
	return uint8(value)
}
