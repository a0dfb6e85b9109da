package odometry

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// ImageSize holds the dimensions of the input images.
type ImageSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// AlgorithmParameters configures the control loop.
type AlgorithmParameters struct {
	// NumPyramidLevels is the number of pyramid levels in frame templates.
	// Non-positive means the count is derived from the image size at
	// construction.
	NumPyramidLevels int `json:"num_pyramid_levels"`

	// MinImageDimensionForPyramid bounds the coarsest derived pyramid level.
	MinImageDimensionForPyramid int `json:"min_image_dimension_for_pyramid"`

	// MaxTestLevel is the coarsest pyramid level whose residual and solver
	// status gate estimation success.
	MaxTestLevel int `json:"max_test_level"`

	// MaxSolutionError is the largest acceptable per-pixel residual at the
	// test level.
	MaxSolutionError float64 `json:"max_solution_error"`

	// MinTranslationMagToKeyFrame is the translation magnitude above which
	// a frame becomes a keyframe.
	MinTranslationMagToKeyFrame float64 `json:"min_translation_mag_to_key_frame"`

	// MinRotationMagToKeyFrame is the rotation magnitude, in radians of
	// Euler angle norm, above which a frame becomes a keyframe.
	MinRotationMagToKeyFrame float64 `json:"min_rotation_mag_to_key_frame"`

	// GoodPointThreshold is the weight above which a template point counts
	// as good.
	GoodPointThreshold float64 `json:"good_point_threshold"`

	// MaxFractionOfGoodPointsToKeyFrame is the good-point fraction below
	// which a frame becomes a keyframe.
	MaxFractionOfGoodPointsToKeyFrame float64 `json:"max_fraction_of_good_points_to_key_frame"`
}

// DefaultAlgorithmParameters returns the parameter set used when nothing
// more specific is known about the camera or scene.
func DefaultAlgorithmParameters() AlgorithmParameters {
	return AlgorithmParameters{
		NumPyramidLevels:                  -1,
		MinImageDimensionForPyramid:       40,
		MaxTestLevel:                      0,
		MaxSolutionError:                  0.5,
		MinTranslationMagToKeyFrame:       0.15,
		MinRotationMagToKeyFrame:          0.08,
		GoodPointThreshold:                0.85,
		MaxFractionOfGoodPointsToKeyFrame: 0.6,
	}
}

// CheckValid checks if the fields for AlgorithmParameters have valid inputs.
func (p *AlgorithmParameters) CheckValid() error {
	if p == nil {
		return errors.New("pointer to AlgorithmParameters is nil")
	}
	if p.MinImageDimensionForPyramid <= 0 {
		return errors.New("min_image_dimension_for_pyramid must be positive")
	}
	if p.MaxTestLevel < 0 {
		return errors.New("max_test_level cannot be negative")
	}
	if p.NumPyramidLevels > 0 && p.MaxTestLevel >= p.NumPyramidLevels {
		return errors.Errorf("max_test_level %d outside pyramid of %d levels",
			p.MaxTestLevel, p.NumPyramidLevels)
	}
	if p.MaxSolutionError <= 0 {
		return errors.New("max_solution_error must be positive")
	}
	return nil
}

// LoadAlgorithmParameters loads algorithm parameters from a json file.
func LoadAlgorithmParameters(path string) (*AlgorithmParameters, error) {
	var params AlgorithmParameters
	paramsFile, err := os.Open(path) //nolint:gosec
	defer utils.UncheckedErrorFunc(paramsFile.Close)
	if err != nil {
		return nil, err
	}
	jsonParser := json.NewDecoder(paramsFile)
	if err := jsonParser.Decode(&params); err != nil {
		return nil, err
	}
	if err := params.CheckValid(); err != nil {
		return nil, err
	}
	return &params, nil
}
