// Command fontgen compiles a TrueType font into a packed bitmap font
// file, rasterizing one contiguous character code range at a fixed
// size and quantizing the result to a sub-byte grayscale depth.
package main

import "flag"
import "image"
import "image/color"
import "image/png"
import "os"

import "github.com/golang/freetype/truetype"
import "github.com/sirupsen/logrus"
import xdraw "golang.org/x/image/draw"
import "golang.org/x/image/font"

import "pakfont"
import "pakfont/builder"
import "pakfont/render"

func main() {
	ttfPath := flag.String("ttf", "", "source TrueType font file")
	size := flag.Int("size", 20, "nominal point size to rasterize at")
	firstCode := flag.Int("first", 32, "first character code, inclusive")
	lastCode := flag.Int("last", 126, "last character code, inclusive")
	bitsPerPixel := flag.Int("bpp", 4, "grayscale bits per pixel (1, 2, 4 or 8)")
	name := flag.String("name", "", "font name (defaults to the TrueType full name)")
	weight := flag.Int("weight", 400, "weight class, 100-900")
	useDither := flag.Bool("dither", false, "error-diffuse instead of thresholding (meant for -bpp 1)")
	outPath := flag.String("out", "font.paf", "output packed font file")
	previewPath := flag.String("preview", "", "optional preview png path")
	previewText := flag.String("text", "Sphinx of black quartz, judge my vow! 0123456789", "preview text")
	previewScale := flag.Int("scale", 2, "preview magnification factor")
	flag.Parse()

	log := logrus.StandardLogger()
	if *ttfPath == "" {
		flag.Usage()
		log.Fatal("missing -ttf argument")
	}

	ttfBytes, err := os.ReadFile(*ttfPath)
	if err != nil { log.WithError(err).Fatal("couldn't read source font") }
	ttf, err := truetype.Parse(ttfBytes)
	if err != nil { log.WithError(err).Fatal("couldn't parse source font") }

	face := truetype.NewFace(ttf, &truetype.Options{
		Size: float64(*size),
		DPI: 72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	cell := cellMetricsFrom(face)
	if cell.height > 255 {
		log.Fatalf("cell height %d exceeds the format limit (255)", cell.height)
	}

	fontName := *name
	if fontName == "" { fontName = ttf.Name(truetype.NameIDFontFullName) }

	fontBuilder, err := builder.New(rune(*firstCode), rune(*lastCode))
	if err != nil { log.WithError(err).Fatal("invalid character code range") }
	if err := fontBuilder.SetName(fontName); err != nil {
		log.WithError(err).WithField("name", fontName).Fatal("invalid font name")
	}
	fontBuilder.SetSize(clamp255(*size))
	if err := fontBuilder.SetWeight(uint16(*weight)); err != nil {
		log.WithError(err).Fatal("invalid weight")
	}
	if err := fontBuilder.SetBitsPerPixel(uint8(*bitsPerPixel)); err != nil {
		log.WithError(err).Fatal("invalid bits per pixel")
	}
	err = fontBuilder.SetMetrics(uint8(cell.height), uint8(cell.height), uint8(cell.descent))
	if err != nil { log.WithError(err).Fatal("invalid font metrics") }

	numGlyphs, err := populateGlyphs(fontBuilder, face, cell, rune(*firstCode), rune(*lastCode), *useDither)
	if err != nil { log.WithError(err).Fatal("glyph rasterization failed") }

	packed, err := fontBuilder.Build()
	if err != nil { log.WithError(err).Fatal("font build failed") }

	outFile, err := os.Create(*outPath)
	if err != nil { log.WithError(err).Fatal("couldn't create output file") }
	err = packed.Export(outFile)
	if err == nil { err = outFile.Close() }
	if err != nil { log.WithError(err).Fatal("couldn't write output file") }

	log.WithFields(logrus.Fields{
		"font": fontName,
		"glyphs": numGlyphs,
		"range": [2]int{ *firstCode, *lastCode },
		"bpp": *bitsPerPixel,
		"bytes": packed.DataSize(),
		"out": *outPath,
	}).Info("wrote packed font")

	if *previewPath != "" {
		err = writePreview(packed, *previewText, *previewScale, *previewPath)
		if err != nil { log.WithError(err).Fatal("couldn't write preview") }
		log.WithField("preview", *previewPath).Info("wrote preview")
	}
}

// Renders the preview text through the same decode + compose path the
// device firmware would use, so the preview shows real decoder output
// and not the intermediate rasterizer state.
func writePreview(packed *pakfont.Font, text string, scale int, path string) error {
	renderer := render.New(packed)
	metrics := packed.Metrics()

	const pad = 4
	width := renderer.Measure(text) + pad*2
	height := int(metrics.MaxHeight()) + pad*2
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	baselineY := pad + int(metrics.Height()) - int(metrics.Baseline())
	renderer.DrawString(canvas, text, image.Point{ pad, baselineY }, color.Black)

	output := image.Image(canvas)
	if scale > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)
		output = scaled
	}

	file, err := os.Create(path)
	if err != nil { return err }
	err = png.Encode(file, output)
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
