// Package transform provides the rigid-body math used by the odometry core:
// 4x4 homogeneous transforms over gonum matrices, and pinhole camera
// intrinsics.
package transform

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Identity returns the 4x4 identity transform.
func Identity() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// CheckRigidDims returns an error if t is not a 4x4 matrix.
func CheckRigidDims(t *mat.Dense) error {
	if t == nil {
		return errors.New("nil transform")
	}
	if r, c := t.Dims(); r != 4 || c != 4 {
		return errors.Errorf("expected a 4x4 transform, got %dx%d", r, c)
	}
	return nil
}

// Compose returns the composition a * b.
func Compose(a, b *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Mul(a, b)
	return &out
}

// RigidInverse returns the inverse of a rigid transform using the closed
// form [R t]^-1 = [R^T -R^T*t], avoiding a general matrix inversion.
func RigidInverse(t *mat.Dense) *mat.Dense {
	out := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, t.At(j, i))
		}
	}
	tr := TranslationVector(t)
	for i := 0; i < 3; i++ {
		out.Set(i, 3, -(out.At(i, 0)*tr.X + out.At(i, 1)*tr.Y + out.At(i, 2)*tr.Z))
	}
	return out
}

// TranslationVector returns the translation component of a 4x4 transform.
func TranslationVector(t *mat.Dense) r3.Vector {
	return r3.Vector{X: t.At(0, 3), Y: t.At(1, 3), Z: t.At(2, 3)}
}

// RotationMatrixToEulerAngles returns the XYZ Euler angles, in radians, of
// the rotation block of a 4x4 transform.
func RotationMatrixToEulerAngles(t *mat.Dense) r3.Vector {
	sy := math.Hypot(t.At(0, 0), t.At(1, 0))
	if sy < 1e-6 {
		// gimbal lock
		return r3.Vector{
			X: math.Atan2(-t.At(1, 2), t.At(1, 1)),
			Y: math.Atan2(-t.At(2, 0), sy),
			Z: 0,
		}
	}
	return r3.Vector{
		X: math.Atan2(t.At(2, 1), t.At(2, 2)),
		Y: math.Atan2(-t.At(2, 0), sy),
		Z: math.Atan2(t.At(1, 0), t.At(0, 0)),
	}
}

// NewRigidTransform assembles a 4x4 transform from a 3x3 rotation matrix
// and a translation vector.
func NewRigidTransform(rotation *mat.Dense, translation r3.Vector) (*mat.Dense, error) {
	if rotation == nil {
		return nil, errors.New("nil rotation matrix")
	}
	if r, c := rotation.Dims(); r != 3 || c != 3 {
		return nil, errors.Errorf("expected a 3x3 rotation matrix, got %dx%d", r, c)
	}
	out := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, rotation.At(i, j))
		}
	}
	out.Set(0, 3, translation.X)
	out.Set(1, 3, translation.Y)
	out.Set(2, 3, translation.Z)
	return out, nil
}

// RotationAboutZ returns the 3x3 rotation matrix for a rotation of theta
// radians about the Z axis.
func RotationAboutZ(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// RotationAboutX returns the 3x3 rotation matrix for a rotation of theta
// radians about the X axis.
func RotationAboutX(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}
