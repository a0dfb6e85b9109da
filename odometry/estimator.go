package odometry

import "gonum.org/v1/gonum/mat"

// SolverStatus reports the terminal state of one pyramid level of the pose
// optimizer.
type SolverStatus int

const (
	// SolverStatusOK means the level produced a usable solution.
	SolverStatusOK SolverStatus = iota
	// SolverStatusError means the level failed to produce a usable solution.
	SolverStatusError
)

// String implements fmt.Stringer.
func (s SolverStatus) String() string {
	switch s {
	case SolverStatusOK:
		return "OK"
	case SolverStatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// OptimizerStatistics holds the diagnostics reported by the pose estimator
// for one pyramid level.
type OptimizerStatistics struct {
	// FinalError is the residual at the end of optimization on this level.
	FinalError float64
	// NumPixels is the number of pixels that contributed to the residual.
	NumPixels int
	// Status is the solver's terminal state on this level.
	Status SolverStatus
}

// PoseEstimator is the external numerical optimizer that aligns two frame
// templates. Estimation failure is reported through the returned
// statistics, never through a Go error; see Result.
type PoseEstimator interface {
	// EstimatePose aligns current against reference starting from guess and
	// returns the estimated 4x4 transform with per-level diagnostics,
	// indexed by pyramid level, finest level first.
	EstimatePose(reference, current *Frame, guess *mat.Dense) (*mat.Dense, []OptimizerStatistics)

	// FractionOfGoodPoints reports the fraction of template points whose
	// weight clears the given threshold, for the most recent estimate.
	FractionOfGoodPoints(threshold float64) float64

	// Weights returns the per-point weights of the most recent estimate,
	// aligned index-for-index with the reference template points at the
	// test level.
	Weights() []float64
}
