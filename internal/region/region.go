// Package region crops configured scoreboard regions out of images.
package region

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"scoreboard-tracker/pkg/geometry"
)

// Crop extracts the percentage-defined region from img. A degenerate result
// rectangle (zero or negative area) is a configuration error, never a skip.
func Crop(img image.Image, spec geometry.PercentRect) (image.Image, error) {
	b := img.Bounds()
	r := spec.PixelBounds(b.Dx(), b.Dy())
	if r.Empty() {
		return nil, fmt.Errorf("degenerate crop %+v from spec %+v on %dx%d image", r, spec, b.Dx(), b.Dy())
	}
	return imaging.Crop(img, r.ToImageRect()), nil
}

// CropPixels extracts an absolute-pixel region from img. The rectangle is
// clamped to the image bounds before the degeneracy check.
func CropPixels(img image.Image, r geometry.RectInt) (image.Image, error) {
	b := img.Bounds()
	clamped := r.Clamp(b.Dx(), b.Dy())
	if clamped.Empty() {
		return nil, fmt.Errorf("degenerate pixel crop %+v on %dx%d image", r, b.Dx(), b.Dy())
	}
	return imaging.Crop(img, clamped.ToImageRect()), nil
}
