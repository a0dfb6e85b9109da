package odometry

import (
	"gonum.org/v1/gonum/mat"

	"go.viam.com/dvo/transform"
	"go.viam.com/dvo/utils"
)

// checkResult decides whether an estimate is usable: the per-pixel residual
// at the test level must not exceed MaxSolutionError, and no level at or
// above the test level may report a solver error. Pure predicate over the
// statistics.
func (vo *VisualOdometry) checkResult(stats []OptimizerStatistics) bool {
	testLevel := vo.params.MaxTestLevel
	if testLevel >= len(stats) {
		return false
	}

	finStats := stats[testLevel]
	if finStats.NumPixels <= 0 {
		// a level with no pixels cannot vouch for the estimate
		return false
	}
	if finStats.FinalError/float64(finStats.NumPixels) > vo.params.MaxSolutionError {
		vo.logger.Debugf("error exceeded at test level %d: %f over %d pixels",
			testLevel, finStats.FinalError, finStats.NumPixels)
		return false
	}

	for i := len(stats) - 1; i >= testLevel; i-- {
		if stats[i].Status == SolverStatusError {
			vo.logger.Debugf("solver error at level %d", i)
			return false
		}
	}
	return true
}

// shouldKeyFrame applies the keyframing rules in priority order: large
// translation, then large rotation, then too few good points. The first
// triggered rule wins. Magnitudes are compared squared to skip the square
// root.
func (vo *VisualOdometry) shouldKeyFrame(pose *mat.Dense) KeyFramingReason {
	tNorm := transform.TranslationVector(pose).Norm2()
	if tNorm > utils.Square(vo.params.MinTranslationMagToKeyFrame) {
		return KeyFramingReasonLargeTranslation
	}

	rNorm := transform.RotationMatrixToEulerAngles(pose).Norm2()
	if rNorm > utils.Square(vo.params.MinRotationMagToKeyFrame) {
		return KeyFramingReasonLargeRotation
	}

	fracGood := vo.estimator.FractionOfGoodPoints(vo.params.GoodPointThreshold)
	if fracGood < vo.params.MaxFractionOfGoodPointsToKeyFrame {
		return KeyFramingReasonSmallFracOfGoodPoints
	}

	return KeyFramingReasonNoKeyFraming
}
