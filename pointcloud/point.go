package pointcloud

import "image/color"

// Data describes the payload associated with a single point: its sampled
// color and the estimator-assigned weight.
type Data interface {
	// HasColor returns whether or not this point is colored.
	HasColor() bool

	// RGB255 returns, if colored, the RGB components of the color.
	RGB255() (uint8, uint8, uint8)

	// Color returns the native color of the point.
	Color() color.Color

	// Weight returns the estimator-assigned weight of the point.
	Weight() float64
}

type basicData struct {
	hasColor bool
	c        color.NRGBA
	weight   float64
}

// NewColoredData returns a payload with the given color and weight.
func NewColoredData(c color.NRGBA, weight float64) Data {
	return &basicData{hasColor: true, c: c, weight: weight}
}

// NewWeightData returns a payload carrying only a weight.
func NewWeightData(weight float64) Data {
	return &basicData{weight: weight}
}

func (bp *basicData) HasColor() bool {
	return bp.hasColor
}

func (bp *basicData) RGB255() (uint8, uint8, uint8) {
	return bp.c.R, bp.c.G, bp.c.B
}

func (bp *basicData) Color() color.Color {
	return &bp.c
}

func (bp *basicData) Weight() float64 {
	return bp.weight
}
