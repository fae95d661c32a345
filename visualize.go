package main

import (
	"image/color"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kristianmk/gaussian-splatting/scene"
)

// Ray length in rig units (mm for Qualisys exports).
const opticalAxisLength = 500.0

// plotRig renders a top-down view of the camera rig: one marker per camera
// position and a ray along each optical axis, projected onto the XY plane.
func plotRig(images map[int]scene.Image, out string) error {
	p := plot.New()
	p.Title.Text = "Camera Extrinsics (top-down)"
	p.X.Label.Text = "X axis (mm)"
	p.Y.Label.Text = "Y axis (mm)"

	ids := make([]int, 0, len(images))
	for id := range images {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	positions := make(plotter.XYs, 0, len(ids))
	for _, id := range ids {
		image := images[id]
		positions = append(positions, plotter.XY{X: image.Tvec[0], Y: image.Tvec[1]})

		// Extrinsics are world-to-camera, so the optical axis in world
		// coordinates is R^T * [0 0 -1].
		var axis mat.VecDense
		axis.MulVec(image.RotationMatrix().T(), mat.NewVecDense(3, []float64{0, 0, -1}))

		ray := plotter.XYs{
			{X: image.Tvec[0], Y: image.Tvec[1]},
			{
				X: image.Tvec[0] + opticalAxisLength*axis.AtVec(0),
				Y: image.Tvec[1] + opticalAxisLength*axis.AtVec(1),
			},
		}
		line, err := plotter.NewLine(ray)
		if err != nil {
			return err
		}
		line.Color = color.RGBA{B: 255, A: 255}
		p.Add(line)
	}

	points, err := plotter.NewScatter(positions)
	if err != nil {
		return err
	}
	points.Color = color.RGBA{R: 255, A: 255}
	p.Add(points)

	return p.Save(8*vg.Inch, 8*vg.Inch, out)
}
