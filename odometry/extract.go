package odometry

import (
	"image/color"

	"go.viam.com/dvo/pointcloud"
)

// pointCloudFromReference captures the retiring reference template as a
// colored, weighted point cloud. Each template point at the test level is
// warped into the reference image and its intensity sampled; points landing
// outside the image get a black color. Returns nil when the estimator's
// weights do not align one-for-one with the template points.
func (vo *VisualOdometry) pointCloudFromReference() *pointcloud.PointCloud {
	td, err := vo.frames.ref.TemplateAtLevel(vo.params.MaxTestLevel)
	if err != nil {
		vo.logger.Debugw("no template data for point cloud", "error", err)
		return nil
	}

	points := td.Points()
	weights := vo.estimator.Weights()
	if len(points) != len(weights) {
		vo.logger.Debugf("point/weight size mismatch [%d != %d], skipping point cloud",
			len(points), len(weights))
		return nil
	}

	img := vo.frames.ref.Image()
	warp := td.Warp()
	cloud := pointcloud.New(len(points))
	for i, p := range points {
		uv := warp.ImagePoint(p)
		var c uint8
		if uv.X >= 0 && uv.Y >= 0 && uv.X < float64(img.Cols()) && uv.Y < float64(img.Rows()) {
			c = img.GetGray(int(uv.X), int(uv.Y))
		}
		data := pointcloud.NewColoredData(color.NRGBA{R: c, G: c, B: c, A: 255}, weights[i])
		if err := cloud.SetAt(i, p, data); err != nil {
			// cloud size equals len(points), cannot happen
			vo.logger.Errorw("failed to set point", "error", err)
		}
	}

	if last := vo.trajectory.Last(); last != nil {
		cloud.SetPose(last)
	}
	return cloud
}
