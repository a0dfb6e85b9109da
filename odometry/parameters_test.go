package odometry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestDefaultAlgorithmParameters(t *testing.T) {
	params := DefaultAlgorithmParameters()
	test.That(t, params.CheckValid(), test.ShouldBeNil)
	test.That(t, params.NumPyramidLevels, test.ShouldBeLessThanOrEqualTo, 0)
	test.That(t, params.MaxTestLevel, test.ShouldEqual, 0)
}

func TestCheckValid(t *testing.T) {
	var nilParams *AlgorithmParameters
	test.That(t, nilParams.CheckValid(), test.ShouldNotBeNil)

	params := DefaultAlgorithmParameters()
	params.MinImageDimensionForPyramid = 0
	test.That(t, params.CheckValid(), test.ShouldNotBeNil)

	params = DefaultAlgorithmParameters()
	params.MaxTestLevel = -1
	test.That(t, params.CheckValid(), test.ShouldNotBeNil)

	params = DefaultAlgorithmParameters()
	params.NumPyramidLevels = 2
	params.MaxTestLevel = 2
	test.That(t, params.CheckValid(), test.ShouldNotBeNil)
	params.MaxTestLevel = 1
	test.That(t, params.CheckValid(), test.ShouldBeNil)

	params = DefaultAlgorithmParameters()
	params.MaxSolutionError = 0
	test.That(t, params.CheckValid(), test.ShouldNotBeNil)
}

func TestLoadAlgorithmParameters(t *testing.T) {
	params := DefaultAlgorithmParameters()
	params.NumPyramidLevels = 4
	params.MinTranslationMagToKeyFrame = 0.33
	b, err := json.Marshal(params)
	test.That(t, err, test.ShouldBeNil)
	path := filepath.Join(t.TempDir(), "params.json")
	test.That(t, os.WriteFile(path, b, 0o600), test.ShouldBeNil)

	loaded, err := LoadAlgorithmParameters(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, *loaded, test.ShouldResemble, params)

	_, err = LoadAlgorithmParameters(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)

	// invalid contents are rejected
	bad := params
	bad.MaxSolutionError = -1
	b, err = json.Marshal(bad)
	test.That(t, err, test.ShouldBeNil)
	badPath := filepath.Join(t.TempDir(), "bad.json")
	test.That(t, os.WriteFile(badPath, b, 0o600), test.ShouldBeNil)
	_, err = LoadAlgorithmParameters(badPath)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestKeyFramingReasonString(t *testing.T) {
	test.That(t, KeyFramingReasonNoKeyFraming.String(), test.ShouldEqual, "NoKeyFraming")
	test.That(t, KeyFramingReasonFirstFrame.String(), test.ShouldEqual, "FirstFrame")
	test.That(t, KeyFramingReasonLargeTranslation.String(), test.ShouldEqual, "LargeTranslation")
	test.That(t, KeyFramingReasonLargeRotation.String(), test.ShouldEqual, "LargeRotation")
	test.That(t, KeyFramingReasonSmallFracOfGoodPoints.String(), test.ShouldEqual, "SmallFracOfGoodPoints")
	test.That(t, KeyFramingReasonEstimationFailed.String(), test.ShouldEqual, "EstimationFailed")
	test.That(t, KeyFramingReason(99).String(), test.ShouldEqual, "Unknown")
	test.That(t, SolverStatusOK.String(), test.ShouldEqual, "OK")
	test.That(t, SolverStatusError.String(), test.ShouldEqual, "Error")
	test.That(t, SolverStatus(99).String(), test.ShouldEqual, "Unknown")
}

func TestTrajectory(t *testing.T) {
	tr := &Trajectory{}
	test.That(t, tr.Size(), test.ShouldEqual, 0)
	test.That(t, tr.Last(), test.ShouldBeNil)
	test.That(t, tr.Poses(), test.ShouldHaveLength, 0)
}
