// Package rimage defines the raw sensor containers consumed by the odometry
// core: a dense grayscale intensity image and the per-pixel stereo disparity
// channel that accompanies it.
package rimage

import (
	"image"
	"image/color"
)

// Image is a dense 8-bit grayscale intensity image. It implements
// image.Image for interoperability with the standard library.
type Image struct {
	width, height int
	data          []uint8
}

// NewImage returns a zeroed image of the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// NewImageFromGray copies a standard library gray image.
func NewImageFromGray(img *image.Gray) *Image {
	b := img.Bounds()
	out := NewImage(b.Dx(), b.Dy())
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			out.data[out.kxy(x, y)] = img.GrayAt(b.Min.X+x, b.Min.Y+y).Y
		}
	}
	return out
}

func (i *Image) kxy(x, y int) int {
	return (y * i.width) + x
}

// Width returns the horizontal size of the image.
func (i *Image) Width() int {
	return i.width
}

// Height returns the vertical size of the image.
func (i *Image) Height() int {
	return i.height
}

// Cols is Width under the matrix naming convention.
func (i *Image) Cols() int {
	return i.width
}

// Rows is Height under the matrix naming convention.
func (i *Image) Rows() int {
	return i.height
}

// Empty reports whether the image holds no pixels.
func (i *Image) Empty() bool {
	return i == nil || i.width <= 0 || i.height <= 0
}

// In returns whether (x, y) is within the image bounds.
func (i *Image) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < i.width && y < i.height
}

// GetGray returns the intensity at (x, y).
func (i *Image) GetGray(x, y int) uint8 {
	return i.data[i.kxy(x, y)]
}

// SetGray sets the intensity at (x, y).
func (i *Image) SetGray(x, y int, v uint8) {
	i.data[i.kxy(x, y)] = v
}

// ColorModel returns the gray color model.
func (i *Image) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds returns the image bounds.
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

// At returns the color at (x, y).
func (i *Image) At(x, y int) color.Color {
	return color.Gray{Y: i.data[i.kxy(x, y)]}
}
