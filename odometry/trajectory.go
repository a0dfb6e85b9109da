package odometry

import "gonum.org/v1/gonum/mat"

// Trajectory is an append-only history of absolute poses, one per processed
// frame, oldest first.
type Trajectory struct {
	poses []*mat.Dense
}

// Append adds a pose to the history.
func (tr *Trajectory) Append(pose *mat.Dense) {
	tr.poses = append(tr.poses, pose)
}

// Size returns the number of recorded poses.
func (tr *Trajectory) Size() int {
	return len(tr.poses)
}

// Poses returns the recorded poses, oldest first.
func (tr *Trajectory) Poses() []*mat.Dense {
	out := make([]*mat.Dense, len(tr.poses))
	copy(out, tr.poses)
	return out
}

// Last returns the most recent pose, nil when the trajectory is empty.
func (tr *Trajectory) Last() *mat.Dense {
	if len(tr.poses) == 0 {
		return nil
	}
	return tr.poses[len(tr.poses)-1]
}
