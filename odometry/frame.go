package odometry

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/dvo/rimage"
)

// Warp maps a 3D template point into 2D image coordinates.
type Warp interface {
	ImagePoint(p r3.Vector) r2.Point
}

// TemplateData exposes one pyramid level of a frame template.
type TemplateData interface {
	// NumPoints returns the number of template points at this level.
	NumPoints() int
	// Points returns the template points at this level.
	Points() []r3.Vector
	// Warp returns the pixel warp for this level.
	Warp() Warp
}

// TemplateBuilder constructs the per-level template of a frame from its raw
// image and disparity. Implementations own pyramid construction, point
// selection, and camera calibration.
type TemplateBuilder interface {
	// BuildTemplate returns the template levels, finest level first.
	BuildTemplate(img *rimage.Image, disp *rimage.DisparityMap) ([]TemplateData, error)
}

// Frame is one of the three interchangeable buffer slots managed by the
// controller. Raw sensor data is written in place with SetData; the
// per-level template is built lazily by SetTemplate.
type Frame struct {
	builder TemplateBuilder

	img  *rimage.Image
	disp *rimage.DisparityMap

	levels      []TemplateData
	hasTemplate bool
}

func newFrame(builder TemplateBuilder) *Frame {
	return &Frame{builder: builder}
}

// SetData overwrites the frame's raw sensor data and invalidates any
// previously built template.
func (f *Frame) SetData(img *rimage.Image, disp *rimage.DisparityMap) {
	f.img = img
	f.disp = disp
	f.levels = nil
	f.hasTemplate = false
}

// HasTemplate reports whether the frame currently carries a valid template.
func (f *Frame) HasTemplate() bool {
	return f.hasTemplate
}

// SetTemplate builds (or rebuilds) the per-level template from the frame's
// raw data.
func (f *Frame) SetTemplate() error {
	levels, err := f.builder.BuildTemplate(f.img, f.disp)
	if err != nil {
		return errors.Wrap(err, "building frame template")
	}
	if len(levels) == 0 {
		return errors.New("template builder returned no levels")
	}
	f.levels = levels
	f.hasTemplate = true
	return nil
}

// Empty reports whether the frame holds no sensor data.
func (f *Frame) Empty() bool {
	return f.img == nil
}

// Clear drops the frame's raw data and template.
func (f *Frame) Clear() {
	f.img = nil
	f.disp = nil
	f.levels = nil
	f.hasTemplate = false
}

// NumLevels returns the number of template levels built for this frame.
func (f *Frame) NumLevels() int {
	return len(f.levels)
}

// TemplateAtLevel returns the template data at the given pyramid level.
func (f *Frame) TemplateAtLevel(level int) (TemplateData, error) {
	if !f.hasTemplate {
		return nil, errors.New("frame has no template")
	}
	if level < 0 || level >= len(f.levels) {
		return nil, errors.Errorf("no template data at level %d", level)
	}
	return f.levels[level], nil
}

// Image returns the frame's raw intensity image.
func (f *Frame) Image() *rimage.Image {
	return f.img
}

// Disparity returns the frame's raw disparity map.
func (f *Frame) Disparity() *rimage.DisparityMap {
	return f.disp
}
