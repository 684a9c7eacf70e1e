package pakfont

import "image"

import "pakfont/internal"

// Rasterizes the glyph into an 8-bit alpha mask with bounds
// (0, 0, width, height), scaling raw samples linearly to 0..255
// (e.g. at 4 bits per pixel, raw 15 becomes alpha 255). The reuse
// image is recycled when its backing buffer is big enough; pass nil
// to always allocate.
//
// The mask composes directly with image/draw style DrawMask calls,
// with the glyph ink as the source image.
func (self Glyph) Rasterize(reuse *image.Alpha) (*image.Alpha, error) {
	if err := self.Validate(); err != nil { return nil, err }

	width, height := int(self.Width()), int(self.Height())
	bounds := image.Rect(0, 0, width, height)
	mask := reuse
	if mask == nil || cap(mask.Pix) < width*height {
		mask = image.NewAlpha(bounds)
	} else {
		mask.Pix = mask.Pix[ : width*height]
		mask.Stride = width
		mask.Rect = bounds
	}
	if width == 0 || height == 0 { return mask, nil }

	maxSample := self.MaxSample()
	sampler := internal.Sampler{
		Data: self.data[internal.RecordHeaderSize : ],
		BitsPerPixel: self.bpp,
	}
	for i := 0; i < width*height; i++ {
		raw := sampler.Get(i)
		mask.Pix[i] = uint8((uint16(raw)*255)/uint16(maxSample))
	}
	return mask, nil
}
