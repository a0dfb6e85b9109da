package odometry

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/dvo/rimage"
	"go.viam.com/dvo/transform"
)

// fakeWarp projects a template point by dropping its Z component.
type fakeWarp struct {
	scale float64
}

func (w *fakeWarp) ImagePoint(p r3.Vector) r2.Point {
	return r2.Point{X: p.X * w.scale, Y: p.Y * w.scale}
}

type fakeTemplateData struct {
	points []r3.Vector
	warp   Warp
}

func (td *fakeTemplateData) NumPoints() int {
	return len(td.points)
}

func (td *fakeTemplateData) Points() []r3.Vector {
	return td.points
}

func (td *fakeTemplateData) Warp() Warp {
	return td.warp
}

// fakeBuilder produces numLevels identical levels of numPoints points each
// and counts how many times a template was built.
type fakeBuilder struct {
	numLevels int
	numPoints int
	builds    int
	err       error
}

func (b *fakeBuilder) BuildTemplate(img *rimage.Image, disp *rimage.DisparityMap) ([]TemplateData, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.builds++
	levels := make([]TemplateData, b.numLevels)
	for i := range levels {
		pts := make([]r3.Vector, b.numPoints)
		for j := range pts {
			pts[j] = r3.Vector{X: float64(j % 5), Y: float64(j % 3), Z: 1}
		}
		levels[i] = &fakeTemplateData{points: pts, warp: &fakeWarp{scale: 1}}
	}
	return levels, nil
}

// fakeEstimator replays scripted estimates and records every guess it was
// seeded with.
type fakeEstimator struct {
	estimates []*mat.Dense
	stats     [][]OptimizerStatistics
	frac      float64
	weights   []float64

	calls   int
	guesses []*mat.Dense
}

func newFakeEstimator(estimates []*mat.Dense, stats [][]OptimizerStatistics) *fakeEstimator {
	return &fakeEstimator{estimates: estimates, stats: stats, frac: 1}
}

func (e *fakeEstimator) EstimatePose(ref, cur *Frame, guess *mat.Dense) (*mat.Dense, []OptimizerStatistics) {
	idx := e.calls
	e.calls++
	e.guesses = append(e.guesses, mat.DenseCopyOf(guess))
	if idx >= len(e.estimates) {
		idx = len(e.estimates) - 1
	}
	sidx := e.calls - 1
	if sidx >= len(e.stats) {
		sidx = len(e.stats) - 1
	}
	stats := append([]OptimizerStatistics(nil), e.stats[sidx]...)
	return mat.DenseCopyOf(e.estimates[idx]), stats
}

func (e *fakeEstimator) FractionOfGoodPoints(threshold float64) float64 {
	return e.frac
}

func (e *fakeEstimator) Weights() []float64 {
	return e.weights
}

func goodStats(numLevels int) []OptimizerStatistics {
	stats := make([]OptimizerStatistics, numLevels)
	for i := range stats {
		stats[i] = OptimizerStatistics{FinalError: 1, NumPixels: 100, Status: SolverStatusOK}
	}
	return stats
}

func badResidualStats(numLevels, testLevel int) []OptimizerStatistics {
	stats := goodStats(numLevels)
	stats[testLevel].FinalError = 1e6
	return stats
}

func translationPose(t *testing.T, x, y, z float64) *mat.Dense {
	t.Helper()
	pose, err := transform.NewRigidTransform(transform.RotationAboutZ(0), r3.Vector{X: x, Y: y, Z: z})
	test.That(t, err, test.ShouldBeNil)
	return pose
}

func rotationPose(t *testing.T, theta float64) *mat.Dense {
	t.Helper()
	pose, err := transform.NewRigidTransform(transform.RotationAboutZ(theta), r3.Vector{})
	test.That(t, err, test.ShouldBeNil)
	return pose
}

func testImage(width, height int) *rimage.Image {
	img := rimage.NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, uint8((x+10*y)%256))
		}
	}
	return img
}

func testDisparity(width, height int) *rimage.DisparityMap {
	dm := rimage.NewDisparityMap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dm.Set(x, y, float32(x%16))
		}
	}
	return dm
}

func testParameters() AlgorithmParameters {
	params := DefaultAlgorithmParameters()
	params.NumPyramidLevels = 2
	params.MaxTestLevel = 0
	params.MaxSolutionError = 0.5
	params.MinTranslationMagToKeyFrame = 0.1
	params.MinRotationMagToKeyFrame = 0.1
	params.GoodPointThreshold = 0.85
	params.MaxFractionOfGoodPointsToKeyFrame = 0.6
	return params
}

func testIntrinsics() *mat.Dense {
	params := transform.PinholeCameraIntrinsics{Width: 64, Height: 48, Fx: 50, Fy: 50, Ppx: 32, Ppy: 24}
	return params.CameraMatrix()
}

func newTestVO(t *testing.T, params AlgorithmParameters, est *fakeEstimator) (*VisualOdometry, *fakeBuilder) {
	t.Helper()
	builder := &fakeBuilder{numLevels: params.NumPyramidLevels, numPoints: 100}
	vo, err := New(testIntrinsics(), 0.1, ImageSize{Rows: 48, Cols: 64}, params,
		est, builder, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return vo, builder
}

func matricesAlmostEqual(t *testing.T, a, b *mat.Dense) {
	t.Helper()
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	test.That(t, ra, test.ShouldEqual, rb)
	test.That(t, ca, test.ShouldEqual, cb)
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			test.That(t, a.At(i, j), test.ShouldAlmostEqual, b.At(i, j), 1e-9)
		}
	}
}
