// Package odometry implements the frame-to-frame control loop of a dense
// visual odometry engine. The loop maintains a rolling reference template,
// invokes an external pose estimator against it, decides when the reference
// must be replaced (keyframing), and recovers from estimation failures by
// re-trying against an intermediate frame.
//
// The numerical pose optimizer and the pyramid/template construction are
// external collaborators; see PoseEstimator and TemplateBuilder.
package odometry

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/dvo/rimage"
	"go.viam.com/dvo/transform"
)

var (
	// ErrEmptyImage is returned by AddFrame when the intensity image holds
	// no pixels.
	ErrEmptyImage = errors.New("empty image")
	// ErrEmptyDisparity is returned by AddFrame when the disparity map
	// holds no data.
	ErrEmptyDisparity = errors.New("empty disparity")
	// ErrNoReferenceTemplate is returned when point data is queried before
	// any frame was processed.
	ErrNoReferenceTemplate = errors.New("no reference frame has been set")
)

// VisualOdometry is the frame-to-frame control loop. It owns three frame
// buffers whose roles rotate by ownership exchange, the pose accumulated
// since the last keyframe, and the absolute-pose trajectory.
//
// It is single-threaded and non-reentrant: AddFrame must not be called
// concurrently.
type VisualOdometry struct {
	params    AlgorithmParameters
	imageSize ImageSize
	k         *mat.Dense
	baseline  float64

	estimator PoseEstimator
	frames    *frameSet

	tKF        *mat.Dense
	trajectory *Trajectory

	logger golog.Logger
}

// New constructs a VisualOdometry loop for a camera with the given 3x3
// intrinsics matrix and stereo baseline. When params.NumPyramidLevels is
// non-positive the pyramid level count is derived from the image size.
func New(
	k *mat.Dense,
	baseline float64,
	size ImageSize,
	params AlgorithmParameters,
	estimator PoseEstimator,
	builder TemplateBuilder,
	logger golog.Logger,
) (*VisualOdometry, error) {
	if k == nil {
		return nil, errors.New("nil intrinsics matrix")
	}
	if r, c := k.Dims(); r != 3 || c != 3 {
		return nil, errors.Errorf("expected a 3x3 intrinsics matrix, got %dx%d", r, c)
	}
	if baseline <= 0 {
		return nil, errors.New("baseline must be positive")
	}
	if size.Rows <= 0 || size.Cols <= 0 {
		return nil, errors.Errorf("invalid image size %dx%d", size.Rows, size.Cols)
	}
	if estimator == nil {
		return nil, errors.New("nil pose estimator")
	}
	if builder == nil {
		return nil, errors.New("nil template builder")
	}
	if err := params.CheckValid(); err != nil {
		return nil, err
	}

	if params.NumPyramidLevels <= 0 {
		minDim := math.Min(float64(size.Rows), float64(size.Cols))
		params.NumPyramidLevels = 1 + int(math.Round(math.Log2(minDim/float64(params.MinImageDimensionForPyramid))))
		logger.Infof("auto pyramid level count set to %d", params.NumPyramidLevels)
	}
	if params.MaxTestLevel >= params.NumPyramidLevels {
		return nil, errors.Errorf("max test level %d outside pyramid of %d levels",
			params.MaxTestLevel, params.NumPyramidLevels)
	}

	return &VisualOdometry{
		params:     params,
		imageSize:  size,
		k:          mat.DenseCopyOf(k),
		baseline:   baseline,
		estimator:  estimator,
		frames:     newFrameSet(builder),
		tKF:        transform.Identity(),
		trajectory: &Trajectory{},
		logger:     logger,
	}, nil
}

// Parameters returns the parameters in effect, including any derived
// pyramid level count.
func (vo *VisualOdometry) Parameters() AlgorithmParameters {
	return vo.params
}

// Intrinsics returns a copy of the 3x3 intrinsics matrix.
func (vo *VisualOdometry) Intrinsics() *mat.Dense {
	return mat.DenseCopyOf(vo.k)
}

// Baseline returns the stereo baseline.
func (vo *VisualOdometry) Baseline() float64 {
	return vo.baseline
}

// Trajectory returns the absolute-pose history, one pose per processed
// frame. The returned value is owned by the controller; do not mutate it.
func (vo *VisualOdometry) Trajectory() *Trajectory {
	return vo.trajectory
}

// AddFrame advances the loop by one image/disparity pair. An empty image or
// disparity is a precondition violation and returns an error; estimation
// degradation never does, it is encoded in the Result. A nil guess means
// identity.
func (vo *VisualOdometry) AddFrame(img *rimage.Image, disp *rimage.DisparityMap, guess *mat.Dense) (*Result, error) {
	if img.Empty() {
		return nil, ErrEmptyImage
	}
	if !disp.HasData() {
		return nil, ErrEmptyDisparity
	}
	if img.Width() != disp.Width() || img.Height() != disp.Height() {
		return nil, errors.Errorf("image %dx%d and disparity %dx%d dimensions differ",
			img.Width(), img.Height(), disp.Width(), disp.Height())
	}
	if guess == nil {
		guess = transform.Identity()
	} else if err := transform.CheckRigidDims(guess); err != nil {
		return nil, errors.Wrap(err, "guess")
	}

	vo.frames.loadCurrent(img, disp)

	if !vo.frames.ref.HasTemplate() {
		return vo.bootstrap()
	}
	return vo.track(guess)
}

// bootstrap promotes the very first frame to be the reference and seeds the
// trajectory with the identity pose.
func (vo *VisualOdometry) bootstrap() (*Result, error) {
	if err := vo.frames.promoteCurrentToReference(); err != nil {
		return nil, err
	}
	vo.trajectory.Append(transform.Identity())
	return newFirstFrameResult(vo.frames.ref.NumLevels()), nil
}

func (vo *VisualOdometry) track(guess *mat.Dense) (*Result, error) {
	tGuess := transform.Compose(vo.tKF, guess)
	tEst, stats := vo.estimator.EstimatePose(vo.frames.ref, vo.frames.cur, tGuess)

	r := &Result{
		Displacement: transform.Identity(),
		Covariance:   identityCovariance(),
		Stats:        stats,
	}
	r.Success = vo.checkResult(stats)
	if !r.Success {
		vo.logger.Debug("initial pose estimation failed")
		r.Reason = KeyFramingReasonEstimationFailed
	} else {
		r.Reason = vo.shouldKeyFrame(tEst)
	}
	r.IsKeyFrame = r.Reason != KeyFramingReasonNoKeyFraming

	if !r.IsKeyFrame {
		// retain the current frame as a recovery candidate for the future
		vo.frames.stashCurrentAsPrevious()
		r.Displacement = transform.Compose(tEst, transform.RigidInverse(vo.tKF))
		vo.tKF = tEst
		vo.appendPose(r.Displacement)
		return r, nil
	}

	vo.logger.Infof("keyframing: %s", r.Reason)
	vo.tKF = transform.Identity()

	// capture the retiring reference before it is replaced
	r.PointCloud = vo.pointCloudFromReference()

	if vo.frames.prev.Empty() {
		// keyframed twice in a row: no intermediate frame to fall back on,
		// so the just-arrived frame becomes the reference and no usable
		// displacement can be reported
		if err := vo.frames.promoteCurrentToReference(); err != nil {
			return nil, err
		}
		vo.logger.Info("could not obtain intermediate frame")
		r.Success = false
		vo.appendPose(r.Displacement)
		return r, nil
	}

	if err := vo.frames.promotePreviousToReference(); err != nil {
		return nil, err
	}
	tEst, stats = vo.estimator.EstimatePose(vo.frames.ref, vo.frames.cur, guess)
	r.Stats = stats
	r.Displacement = tEst
	vo.tKF = tEst

	r.Success = vo.checkResult(stats)
	if !r.Success {
		vo.logger.Debug("keyframe pose re-estimation failed")
		r.Reason = KeyFramingReasonEstimationFailed
	} else {
		r.Reason = vo.shouldKeyFrame(tEst)
	}
	if r.Reason != KeyFramingReasonNoKeyFraming {
		// a keyframe that immediately requires another keyframe signals a
		// degenerate tracking state
		vo.logger.Info("backup keyframe failed keyframe requirements")
		r.Success = false
	}
	vo.appendPose(r.Displacement)
	return r, nil
}

// appendPose extends the trajectory with the absolute pose reached with
// this frame's displacement.
func (vo *VisualOdometry) appendPose(displacement *mat.Dense) {
	vo.trajectory.Append(transform.Compose(vo.trajectory.Last(), displacement))
}

// NumPointsAtLevel returns the number of reference template points at the
// given pyramid level; a negative level resolves to MaxTestLevel. Returns 0
// when no reference template is set.
func (vo *VisualOdometry) NumPointsAtLevel(level int) int {
	if level < 0 {
		level = vo.params.MaxTestLevel
	}
	if !vo.frames.ref.HasTemplate() {
		return 0
	}
	td, err := vo.frames.ref.TemplateAtLevel(level)
	if err != nil {
		return 0
	}
	return td.NumPoints()
}

// PointsAtLevel returns the reference template points at the given pyramid
// level; a negative level resolves to MaxTestLevel. It is an error to call
// this before any reference template has been set.
func (vo *VisualOdometry) PointsAtLevel(level int) ([]r3.Vector, error) {
	if !vo.frames.ref.HasTemplate() {
		return nil, ErrNoReferenceTemplate
	}
	if level < 0 {
		level = vo.params.MaxTestLevel
	}
	td, err := vo.frames.ref.TemplateAtLevel(level)
	if err != nil {
		return nil, err
	}
	return td.Points(), nil
}
