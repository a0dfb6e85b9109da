package odometry

import (
	"gonum.org/v1/gonum/mat"

	"go.viam.com/dvo/pointcloud"
	"go.viam.com/dvo/transform"
)

// KeyFramingReason explains why a frame was, or was not, promoted to be the
// new tracking reference.
type KeyFramingReason int

const (
	// KeyFramingReasonNoKeyFraming means the reference was kept.
	KeyFramingReasonNoKeyFraming KeyFramingReason = iota
	// KeyFramingReasonFirstFrame means the frame bootstrapped the loop.
	KeyFramingReasonFirstFrame
	// KeyFramingReasonLargeTranslation means the translation since the last
	// keyframe grew too large.
	KeyFramingReasonLargeTranslation
	// KeyFramingReasonLargeRotation means the rotation since the last
	// keyframe grew too large.
	KeyFramingReasonLargeRotation
	// KeyFramingReasonSmallFracOfGoodPoints means too few template points
	// remained well-tracked.
	KeyFramingReasonSmallFracOfGoodPoints
	// KeyFramingReasonEstimationFailed means pose estimation did not
	// produce a usable solution.
	KeyFramingReasonEstimationFailed
)

// String implements fmt.Stringer.
func (r KeyFramingReason) String() string {
	switch r {
	case KeyFramingReasonNoKeyFraming:
		return "NoKeyFraming"
	case KeyFramingReasonFirstFrame:
		return "FirstFrame"
	case KeyFramingReasonLargeTranslation:
		return "LargeTranslation"
	case KeyFramingReasonLargeRotation:
		return "LargeRotation"
	case KeyFramingReasonSmallFracOfGoodPoints:
		return "SmallFracOfGoodPoints"
	case KeyFramingReasonEstimationFailed:
		return "EstimationFailed"
	default:
		return "Unknown"
	}
}

// Result is the outcome of one AddFrame call. Runtime estimation
// degradation is reported here, never as an error.
type Result struct {
	// Success is false when pose estimation failed or a keyframe produced
	// no usable displacement.
	Success bool

	// Displacement is the rigid motion since the previous frame.
	Displacement *mat.Dense

	// Covariance of the displacement. The estimator contract does not
	// currently produce one; it is left as identity.
	Covariance *mat.Dense

	// Stats holds the estimator's per-level diagnostics, finest level
	// first.
	Stats []OptimizerStatistics

	// IsKeyFrame reports whether the reference template was replaced.
	IsKeyFrame bool

	// Reason records which keyframing rule triggered, if any.
	Reason KeyFramingReason

	// PointCloud is captured from the retiring reference on keyframe
	// events. It is nil otherwise, and nil when the estimator's weights do
	// not align with the template points.
	PointCloud *pointcloud.PointCloud
}

func identityCovariance() *mat.Dense {
	cov := mat.NewDense(6, 6, nil)
	for i := 0; i < 6; i++ {
		cov.Set(i, i, 1)
	}
	return cov
}

func newFirstFrameResult(numLevels int) *Result {
	return &Result{
		Success:      false,
		Displacement: transform.Identity(),
		Covariance:   identityCovariance(),
		Stats:        make([]OptimizerStatistics, numLevels),
		IsKeyFrame:   true,
		Reason:       KeyFramingReasonFirstFrame,
	}
}
