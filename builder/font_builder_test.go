package builder

import "fmt"
import "bytes"
import "image"
import "testing"
import "math/rand/v2"

import "pakfont"

func TestBuildRoundTrip(t *testing.T) {
	for _, bpp := range []uint8{ 1, 2, 4, 8 } {
		t.Run(fmt.Sprintf("%dbpp", bpp), func(t *testing.T) {
			fontBuilder, err := New('a', 'z')
			if err != nil { t.Fatalf("unexpected New() error: %s", err) }
			err = fontBuilder.SetMetrics(14, 16, 3)
			if err != nil { t.Fatalf("unexpected SetMetrics() error: %s", err) }
			err = fontBuilder.SetBitsPerPixel(bpp)
			if err != nil { t.Fatalf("unexpected SetBitsPerPixel() error: %s", err) }

			// random glyphs on random slots, then verify every sample
			// survives the serialization bit-exact
			maxSample := uint8((1 << bpp) - 1)
			expected := make(map[rune][]uint8)
			for _, code := range []rune{ 'a', 'c', 'k', 'z' } {
				width := uint8(1 + rand.IntN(20))
				height := uint8(1 + rand.IntN(16))
				samples := make([]uint8, int(width)*int(height))
				for i := range samples {
					samples[i] = uint8(rand.IntN(int(maxSample) + 1))
				}
				err = fontBuilder.SetGlyphSamples(code, width, height, width + 1, samples)
				if err != nil { t.Fatalf("unexpected SetGlyphSamples() error: %s", err) }
				expected[code] = samples
			}

			font, err := fontBuilder.Build()
			if err != nil { t.Fatalf("unexpected Build() error: %s", err) }
			if err := font.Validate(pakfont.FmtStrict); err != nil {
				t.Fatalf("unexpected Font.Validate(FmtStrict) error: %s", err)
			}

			for code, samples := range expected {
				glyph, found := font.Table().Lookup(code)
				if !found { t.Fatalf("expected lookup(%d) to find a glyph", code) }
				decoded, err := glyph.Decode(nil)
				if err != nil { t.Fatalf("unexpected Glyph.Decode() error: %s", err) }
				if len(decoded) != len(samples) {
					t.Fatalf("expected %d decoded samples, got %d", len(samples), len(decoded))
				}
				for i, sample := range samples {
					if decoded[i] != sample {
						t.Fatalf(
							"glyph %d sample #%d: expected %d, got %d",
							code, i, sample, decoded[i],
						)
					}
				}
			}

			// slots never set stay absent
			_, found := font.Table().Lookup('b')
			if found { t.Fatalf("expected lookup('b') to report absence") }
		})
	}
}

func TestBuildExportConsistency(t *testing.T) {
	fontBuilder, err := New(32, 126)
	if err != nil { t.Fatalf("unexpected New() error: %s", err) }
	err = fontBuilder.SetMetrics(20, 20, 4)
	if err != nil { t.Fatalf("unexpected SetMetrics() error: %s", err) }
	err = fontBuilder.SetGlyphSamples('x', 2, 2, 3, []uint8{ 1, 2, 3, 4 })
	if err != nil { t.Fatalf("unexpected SetGlyphSamples() error: %s", err) }

	var buffer bytes.Buffer
	err = fontBuilder.Export(&buffer)
	if err != nil { t.Fatalf("unexpected Export() error: %s", err) }

	exported := buffer.Bytes()
	font, err := pakfont.ParseBytes(exported)
	if err != nil { t.Fatalf("unexpected ParseBytes() error on exported data: %s", err) }

	buffer.Reset()
	err = font.Export(&buffer)
	if err != nil { t.Fatalf("unexpected Font.Export() error: %s", err) }
	if !bytes.Equal(buffer.Bytes(), exported) {
		t.Fatalf("builder export and font export produced different bytes")
	}
}

func TestBuildDefaults(t *testing.T) {
	fontBuilder, err := New(32, 126)
	if err != nil { t.Fatalf("unexpected New() error: %s", err) }
	err = fontBuilder.SetMetrics(18, 20, 4)
	if err != nil { t.Fatalf("unexpected SetMetrics() error: %s", err) }

	font, err := fontBuilder.Build()
	if err != nil { t.Fatalf("unexpected Build() error: %s", err) }

	// size falls back to the metrics height, weight to regular
	if font.Header().Name() != "Unnamed" {
		t.Fatalf("expected default name 'Unnamed', got '%s'", font.Header().Name())
	}
	if font.Header().Size() != 18 {
		t.Fatalf("expected default size 18, got %d", font.Header().Size())
	}
	if font.Header().Weight() != 400 {
		t.Fatalf("expected default weight 400, got %d", font.Header().Weight())
	}
	if font.Metrics().BitsPerPixel() != 4 {
		t.Fatalf("expected default 4 bpp, got %d", font.Metrics().BitsPerPixel())
	}

	// nonprintable synthesized as a hollow box over the ascent area
	nonprintable := font.Nonprintable()
	if err := nonprintable.Validate(); err != nil {
		t.Fatalf("unexpected fallback Validate() error: %s", err)
	}
	if nonprintable.Height() != 14 { // 18 - 4
		t.Fatalf("expected fallback height 14, got %d", nonprintable.Height())
	}
	if nonprintable.Width() != 9 { // 14/2 + 2
		t.Fatalf("expected fallback width 9, got %d", nonprintable.Width())
	}
	if nonprintable.Advance() != 10 {
		t.Fatalf("expected fallback advance 10, got %d", nonprintable.Advance())
	}
	if nonprintable.MaxSample() != 15 {
		t.Fatalf("expected fallback max sample 15, got %d", nonprintable.MaxSample())
	}
}

func TestBuildErrors(t *testing.T) {
	// bad ranges
	_, err := New(-1, 20)
	if err != ErrBuildBadRange { t.Fatalf("expected ErrBuildBadRange, got %v", err) }
	_, err = New(90, 30)
	if err != ErrBuildBadRange { t.Fatalf("expected ErrBuildBadRange, got %v", err) }
	_, err = New(0, pakfont.MaxTableEntries)
	if err != ErrBuildBadRange { t.Fatalf("expected ErrBuildBadRange, got %v", err) }

	// no metrics
	fontBuilder, err := New(32, 126)
	if err != nil { t.Fatalf("unexpected New() error: %s", err) }
	_, err = fontBuilder.Build()
	if err != ErrBuildNoMetrics { t.Fatalf("expected ErrBuildNoMetrics, got %v", err) }

	// glyph code outside the declared range
	err = fontBuilder.SetMetrics(20, 20, 4)
	if err != nil { t.Fatalf("unexpected SetMetrics() error: %s", err) }
	err = fontBuilder.SetGlyphSamples(130, 1, 1, 2, []uint8{ 1 })
	if err != ErrGlyphOutOfRange { t.Fatalf("expected ErrGlyphOutOfRange, got %v", err) }

	// glyph taller than the metrics allow
	err = fontBuilder.SetGlyphSamples('q', 1, 21, 2, make([]uint8, 21))
	if err != nil { t.Fatalf("unexpected SetGlyphSamples() error: %s", err) }
	_, err = fontBuilder.Build()
	if err != ErrGlyphTooTall { t.Fatalf("expected ErrGlyphTooTall, got %v", err) }
	fontBuilder.RemoveGlyph('q')

	// sample values over the configured depth
	err = fontBuilder.SetGlyphSamples('q', 1, 1, 2, []uint8{ 16 })
	if err == nil { t.Fatalf("expected an error on out of range sample values") }

	// depth locked once glyphs exist
	err = fontBuilder.SetGlyphSamples('q', 1, 1, 2, []uint8{ 15 })
	if err != nil { t.Fatalf("unexpected SetGlyphSamples() error: %s", err) }
	err = fontBuilder.SetBitsPerPixel(8)
	if err != ErrDepthLocked { t.Fatalf("expected ErrDepthLocked, got %v", err) }

	// invalid depths and weights and names
	err = fontBuilder.SetBitsPerPixel(3)
	if err != pakfont.ErrUnsupportedBitDepth {
		t.Fatalf("expected ErrUnsupportedBitDepth, got %v", err)
	}
	err = fontBuilder.SetWeight(0)
	if err == nil { t.Fatalf("expected an error on zero weight") }
	err = fontBuilder.SetWeight(901)
	if err == nil { t.Fatalf("expected an error on weight above 900") }
	err = fontBuilder.SetName("")
	if err == nil { t.Fatalf("expected an error on empty name") }
	err = fontBuilder.SetName("Illegal!Name")
	if err == nil { t.Fatalf("expected an error on invalid name characters") }
}

func TestBuildMaskQuantization(t *testing.T) {
	fontBuilder, err := New(32, 126)
	if err != nil { t.Fatalf("unexpected New() error: %s", err) }
	err = fontBuilder.SetMetrics(20, 20, 4)
	if err != nil { t.Fatalf("unexpected SetMetrics() error: %s", err) }
	err = fontBuilder.SetBitsPerPixel(1)
	if err != nil { t.Fatalf("unexpected SetBitsPerPixel() error: %s", err) }

	// non-origin mask bounds must not matter, and 1bpp keeps only the
	// top bit of each alpha value
	mask := image.NewAlpha(image.Rect(10, 10, 14, 11))
	for i, alpha := range []uint8{ 0, 127, 128, 255 } {
		mask.Pix[i] = alpha
	}
	err = fontBuilder.SetGlyph('A', 5, mask)
	if err != nil { t.Fatalf("unexpected SetGlyph() error: %s", err) }

	font, err := fontBuilder.Build()
	if err != nil { t.Fatalf("unexpected Build() error: %s", err) }
	glyph, found := font.Table().Lookup('A')
	if !found { t.Fatalf("expected lookup('A') to find a glyph") }
	if glyph.Width() != 4 || glyph.Height() != 1 {
		t.Fatalf("expected a 4x1 glyph, got %dx%d", glyph.Width(), glyph.Height())
	}
	samples, err := glyph.Decode(nil)
	if err != nil { t.Fatalf("unexpected Glyph.Decode() error: %s", err) }
	for i, expected := range []uint8{ 0, 0, 1, 1 } {
		if samples[i] != expected {
			t.Fatalf("expected sample #%d == %d, got %d", i, expected, samples[i])
		}
	}
}
