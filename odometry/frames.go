package odometry

import "go.viam.com/dvo/rimage"

// frameSet owns the three frame buffers and tracks the role each currently
// plays. Roles rotate by pointer exchange; pixel and template data are
// never copied.
type frameSet struct {
	ref  *Frame
	cur  *Frame
	prev *Frame
}

func newFrameSet(builder TemplateBuilder) *frameSet {
	return &frameSet{
		ref:  newFrame(builder),
		cur:  newFrame(builder),
		prev: newFrame(builder),
	}
}

// loadCurrent writes new sensor data into the Current slot, discarding its
// previous content.
func (fs *frameSet) loadCurrent(img *rimage.Image, disp *rimage.DisparityMap) {
	fs.cur.SetData(img, disp)
}

// promoteCurrentToReference exchanges Current and Reference, then builds
// the new Reference's template.
func (fs *frameSet) promoteCurrentToReference() error {
	fs.ref, fs.cur = fs.cur, fs.ref
	return fs.ref.SetTemplate()
}

// stashCurrentAsPrevious exchanges Current and Previous, retaining the
// frame as a future recovery candidate.
func (fs *frameSet) stashCurrentAsPrevious() {
	fs.prev, fs.cur = fs.cur, fs.prev
}

// promotePreviousToReference exchanges Previous and Reference, clears the
// vacated Previous slot, and builds the new Reference's template.
func (fs *frameSet) promotePreviousToReference() error {
	fs.ref, fs.prev = fs.prev, fs.ref
	fs.prev.Clear()
	return fs.ref.SetTemplate()
}
