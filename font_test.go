package pakfont_test

import "image"
import "testing"

import "pakfont"
import "pakfont/builder"

func buildAsciiFont(t *testing.T) *pakfont.Font {
	t.Helper()

	fontBuilder, err := builder.New(32, 126)
	if err != nil { t.Fatalf("unexpected builder.New() error: %s", err) }
	err = fontBuilder.SetName("Roboto Regular")
	if err != nil { t.Fatalf("unexpected SetName() error: %s", err) }
	fontBuilder.SetSize(20)
	err = fontBuilder.SetMetrics(20, 20, 4)
	if err != nil { t.Fatalf("unexpected SetMetrics() error: %s", err) }
	err = fontBuilder.SetBitsPerPixel(4)
	if err != nil { t.Fatalf("unexpected SetBitsPerPixel() error: %s", err) }

	// 'A' as a 12x15 mask with a non-trivial value pattern
	mask := image.NewAlpha(image.Rect(0, 0, 12, 15))
	for i := range mask.Pix { mask.Pix[i] = uint8((i % 16) << 4) }
	err = fontBuilder.SetGlyph('A', 13, mask)
	if err != nil { t.Fatalf("unexpected SetGlyph() error: %s", err) }

	// space as a glyph with no ink, only an advance
	err = fontBuilder.SetGlyph(' ', 6, nil)
	if err != nil { t.Fatalf("unexpected SetGlyph() error: %s", err) }

	font, err := fontBuilder.Build()
	if err != nil { t.Fatalf("unexpected Build() error: %s", err) }
	return font
}

func TestFontIdentity(t *testing.T) {
	font := buildAsciiFont(t)
	if font.Header().Name() != "Roboto Regular" {
		t.Fatalf("expected font name 'Roboto Regular', got '%s'", font.Header().Name())
	}
	if font.Header().Size() != 20 {
		t.Fatalf("expected size 20, got %d", font.Header().Size())
	}
	if font.Header().Weight() != 400 {
		t.Fatalf("expected default weight 400, got %d", font.Header().Weight())
	}
	if err := font.Validate(pakfont.FmtStrict); err != nil {
		t.Fatalf("unexpected Font.Validate(FmtStrict) error: %s", err)
	}
}

func TestFontGlyphAccess(t *testing.T) {
	font := buildAsciiFont(t)

	glyph, found := font.Table().Lookup('A')
	if !found { t.Fatalf("expected lookup('A') to find a glyph") }
	if glyph.Width() != 12 || glyph.Height() != 15 {
		t.Fatalf("expected a 12x15 glyph, got %dx%d", glyph.Width(), glyph.Height())
	}
	if glyph.Advance() != 13 {
		t.Fatalf("expected advance 13, got %d", glyph.Advance())
	}

	// 8 bit masks quantized to 4 bits keep the high nibble
	samples, err := glyph.Decode(nil)
	if err != nil { t.Fatalf("unexpected Glyph.Decode() error: %s", err) }
	for i, sample := range samples {
		if sample != uint8(i % 16) {
			t.Fatalf("expected sample #%d == %d, got %d", i, i % 16, sample)
		}
	}

	// the space glyph carries only its advance
	space, found := font.Table().Lookup(' ')
	if !found { t.Fatalf("expected lookup(' ') to find a glyph") }
	if space.Width() != 0 || space.Height() != 0 || space.Advance() != 6 {
		t.Fatalf(
			"expected a 0x0 glyph with advance 6, got %dx%d with advance %d",
			space.Width(), space.Height(), space.Advance(),
		)
	}
}

func TestFontFallback(t *testing.T) {
	font := buildAsciiFont(t)

	// codes below, above and inside the range but without a glyph all
	// report absence; the caller switches to the fallback record
	for _, code := range []rune{ 31, 127, 200, 'B' } {
		_, found := font.Table().Lookup(code)
		if found { t.Fatalf("expected lookup(%d) to report absence", code) }
	}

	nonprintable := font.Nonprintable()
	if err := nonprintable.Validate(); err != nil {
		t.Fatalf("unexpected fallback Validate() error: %s", err)
	}
	if nonprintable.Width() == 0 || nonprintable.Height() == 0 || nonprintable.Advance() == 0 {
		t.Fatalf("expected a synthesized fallback box with non-zero dimensions and advance")
	}

	// synthesized box occupies the ascent area (height - baseline)
	if nonprintable.Height() != 16 {
		t.Fatalf("expected fallback height 16, got %d", nonprintable.Height())
	}
}

func TestFontConcurrentLookups(t *testing.T) {
	font := buildAsciiFont(t)
	done := make(chan bool)
	for i := 0; i < 4; i++ {
		go func() {
			for n := 0; n < 256; n++ {
				glyph, found := font.Table().Lookup('A')
				if !found || glyph.Advance() != 13 { done <- false ; return }
			}
			done <- true
		}()
	}
	for i := 0; i < 4; i++ {
		if !<-done { t.Fatalf("concurrent lookups returned inconsistent results") }
	}
}
