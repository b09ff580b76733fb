// Package maskimg renders detection mask bitmaps into PNG previews for the
// web UI. It draws the bitmap the backend already produced; no similarity
// computation happens here.
package maskimg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
)

var ErrEmptyMask = errors.New("mask bitmap is empty")

// Render converts a binary mask bitmap (row-major, nonzero = object) into a
// white-on-black grayscale image.
func Render(mask [][]uint8) (*image.Gray, error) {
	if len(mask) == 0 || len(mask[0]) == 0 {
		return nil, ErrEmptyMask
	}

	height := len(mask)
	width := len(mask[0])
	img := image.NewGray(image.Rect(0, 0, width, height))

	for y, row := range mask {
		for x := 0; x < width && x < len(row); x++ {
			if row[x] != 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img, nil
}

// ThumbnailPNG renders a mask and scales its longest side down to maxDim,
// returning the encoded PNG. Masks already within bounds are not upscaled.
func ThumbnailPNG(mask [][]uint8, maxDim int) ([]byte, error) {
	img, err := Render(mask)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxDim > 0 && (width > maxDim || height > maxDim) {
		if width >= height {
			height = height * maxDim / width
			width = maxDim
		} else {
			width = width * maxDim / height
			height = maxDim
		}
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		scaled := image.NewGray(image.Rect(0, 0, width, height))
		// Nearest neighbor keeps the silhouette edges binary.
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
