package transform

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"go.viam.com/utils"
	"gonum.org/v1/gonum/mat"
)

// PinholeCameraIntrinsics holds the intrinsic parameters of a pinhole
// camera. Immutable after construction.
type PinholeCameraIntrinsics struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Fx     float64 `json:"fx"`
	Fy     float64 `json:"fy"`
	Ppx    float64 `json:"ppx"`
	Ppy    float64 `json:"ppy"`
}

// CheckValid checks if the fields for PinholeCameraIntrinsics have valid inputs.
func (params *PinholeCameraIntrinsics) CheckValid() error {
	if params == nil {
		return errors.New("pointer to PinholeCameraIntrinsics is nil")
	}
	if params.Width <= 0 || params.Height <= 0 {
		return errors.Errorf("invalid image dimensions %dx%d", params.Width, params.Height)
	}
	if params.Fx <= 0 || params.Fy <= 0 {
		return errors.Errorf("focal lengths must be positive, got fx=%f fy=%f", params.Fx, params.Fy)
	}
	return nil
}

// CameraMatrix returns the intrinsics as a 3x3 camera matrix.
func (params *PinholeCameraIntrinsics) CameraMatrix() *mat.Dense {
	k := mat.NewDense(3, 3, nil)
	k.Set(0, 0, params.Fx)
	k.Set(1, 1, params.Fy)
	k.Set(0, 2, params.Ppx)
	k.Set(1, 2, params.Ppy)
	k.Set(2, 2, 1)
	return k
}

// NewPinholeCameraIntrinsicsFromJSONFile loads intrinsics from a json file.
func NewPinholeCameraIntrinsicsFromJSONFile(path string) (*PinholeCameraIntrinsics, error) {
	var params PinholeCameraIntrinsics
	intrinsicsFile, err := os.Open(path) //nolint:gosec
	defer utils.UncheckedErrorFunc(intrinsicsFile.Close)
	if err != nil {
		return nil, err
	}
	jsonParser := json.NewDecoder(intrinsicsFile)
	if err := jsonParser.Decode(&params); err != nil {
		return nil, err
	}
	if err := params.CheckValid(); err != nil {
		return nil, err
	}
	return &params, nil
}
