package rimage

import "image"

// DisparityMap is a per-pixel stereo disparity channel aligned with an
// Image of the same dimensions.
type DisparityMap struct {
	width, height int
	data          []float32
}

// NewDisparityMap returns a zeroed disparity map of the given dimensions.
func NewDisparityMap(width, height int) *DisparityMap {
	return &DisparityMap{
		width:  width,
		height: height,
		data:   make([]float32, width*height),
	}
}

func (dm *DisparityMap) kxy(x, y int) int {
	return (y * dm.width) + x
}

// HasData reports whether the map holds any disparity values.
func (dm *DisparityMap) HasData() bool {
	return dm != nil && dm.width > 0 && dm.data != nil
}

// Width returns the horizontal size of the map.
func (dm *DisparityMap) Width() int {
	return dm.width
}

// Height returns the vertical size of the map.
func (dm *DisparityMap) Height() int {
	return dm.height
}

// Cols is Width under the matrix naming convention.
func (dm *DisparityMap) Cols() int {
	return dm.width
}

// Rows is Height under the matrix naming convention.
func (dm *DisparityMap) Rows() int {
	return dm.height
}

// Get returns the disparity at p.
func (dm *DisparityMap) Get(p image.Point) float32 {
	return dm.data[dm.kxy(p.X, p.Y)]
}

// GetDisparity returns the disparity at (x, y).
func (dm *DisparityMap) GetDisparity(x, y int) float32 {
	return dm.data[dm.kxy(x, y)]
}

// Set sets the disparity at (x, y).
func (dm *DisparityMap) Set(x, y int, val float32) {
	dm.data[dm.kxy(x, y)] = val
}

// In returns whether (x, y) is within the map bounds.
func (dm *DisparityMap) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < dm.width && y < dm.height
}
