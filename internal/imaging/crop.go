package imaging

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ClampRegion intersects region with the image bounds.
// Returns an error if nothing of the region lies inside the image.
func ClampRegion(img image.Image, region image.Rectangle) (image.Rectangle, error) {
	bounds := img.Bounds()
	if region.Min.X >= region.Max.X || region.Min.Y >= region.Max.Y {
		return image.Rectangle{}, fmt.Errorf("invalid region (%d,%d)-(%d,%d): x1 must be < x2, y1 must be < y2",
			region.Min.X, region.Min.Y, region.Max.X, region.Max.Y)
	}

	clamped := region.Intersect(bounds)
	if clamped.Empty() {
		return image.Rectangle{}, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			region.Min.X, region.Min.Y, region.Max.X, region.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	return clamped, nil
}

// CropPNG extracts region from img and encodes it as PNG.
//
// The region is clamped to the image bounds first; the returned rectangle is
// the area that was actually cropped, in source-image coordinates.
func CropPNG(img image.Image, region image.Rectangle) ([]byte, image.Rectangle, error) {
	clamped, err := ClampRegion(img, region)
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	cropped := imaging.Crop(img, clamped)

	data, err := EncodePNG(cropped)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	return data, clamped, nil
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
