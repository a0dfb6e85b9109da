// Package pointcloud defines a fixed-size collection of colored, weighted
// 3D points, captured from a visual odometry reference template when it is
// retired by a keyframe event.
package pointcloud

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// NewVector convenience method for creating a vector.
func NewVector(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

// PointAndData pairs a 3D position with its payload.
type PointAndData struct {
	P r3.Vector
	D Data
}

// PointCloud is a fixed-size, index-assignable collection of points. The
// size is set at construction and never changes.
type PointCloud struct {
	points []PointAndData
	pose   *mat.Dense
}

// New returns a cloud of the given size with zeroed entries.
func New(size int) *PointCloud {
	return &PointCloud{points: make([]PointAndData, size)}
}

// Size returns the number of points in the cloud.
func (cloud *PointCloud) Size() int {
	return len(cloud.points)
}

// SetAt places the given point and payload at index i.
func (cloud *PointCloud) SetAt(i int, p r3.Vector, d Data) error {
	if i < 0 || i >= len(cloud.points) {
		return errors.Errorf("index %d out of range [0, %d)", i, len(cloud.points))
	}
	cloud.points[i] = PointAndData{P: p, D: d}
	return nil
}

// At returns the point and payload at index i.
func (cloud *PointCloud) At(i int) (r3.Vector, Data, error) {
	if i < 0 || i >= len(cloud.points) {
		return r3.Vector{}, nil, errors.Errorf("index %d out of range [0, %d)", i, len(cloud.points))
	}
	pd := cloud.points[i]
	return pd.P, pd.D, nil
}

// Iterate calls fn for every point in index order. If fn returns false,
// iteration stops.
func (cloud *PointCloud) Iterate(fn func(i int, p r3.Vector, d Data) bool) {
	for i, pd := range cloud.points {
		if !fn(i, pd.P, pd.D) {
			return
		}
	}
}

// SetPose stamps the cloud with the absolute pose it was captured at.
func (cloud *PointCloud) SetPose(pose *mat.Dense) {
	cloud.pose = pose
}

// Pose returns the pose stamp, nil if the cloud was never stamped.
func (cloud *PointCloud) Pose() *mat.Dense {
	return cloud.pose
}
