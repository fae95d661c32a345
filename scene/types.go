package scene

import (
	"errors"
	"fmt"
)

// CameraModel describes one of the supported intrinsic camera models. The
// parameter count is a schema constant of the model, never inferred from data.
type CameraModel struct {
	ModelID   int
	ModelName string
	NumParams int
}

// Camera holds the intrinsic calibration of a single device. Params is ordered
// the way the model defines it (COLMAP convention).
type Camera struct {
	ID     int
	Model  int
	Width  float64
	Height float64
	Params []float64
}

// Image is a camera pose record. Qvec is a unit quaternion in (w, x, y, z)
// order with w >= 0; Tvec is the translation. XYs and Point3DIDs exist for
// compatibility with reconstruction consumers and stay empty for sources that
// carry no 2D observations.
type Image struct {
	ID         int
	Qvec       []float64
	Tvec       []float64
	CameraID   int
	Name       string
	XYs        [][2]float64
	Point3DIDs []int64
}

// Point3D is part of the domain model for downstream interoperability. The
// Qualisys export carries no 3D point observations, so nothing here ever
// populates it.
type Point3D struct {
	ID          int64
	XYZ         []float64
	RGB         []uint8
	Error       float64
	ImageIDs    []int
	Point2DIdxs []int
}

// ErrUnsupportedCameraModel is returned for model names outside CameraModels.
var ErrUnsupportedCameraModel = errors.New("unsupported camera model")

// CameraModels is the fixed table of supported intrinsic models.
var CameraModels = []CameraModel{
	{ModelID: 0, ModelName: "SIMPLE_PINHOLE", NumParams: 3},
	{ModelID: 1, ModelName: "PINHOLE", NumParams: 4},
	{ModelID: 2, ModelName: "SIMPLE_RADIAL", NumParams: 4},
	{ModelID: 3, ModelName: "RADIAL", NumParams: 5},
	{ModelID: 4, ModelName: "OPENCV", NumParams: 8},
	{ModelID: 5, ModelName: "OPENCV_FISHEYE", NumParams: 8},
	{ModelID: 6, ModelName: "FULL_OPENCV", NumParams: 12},
	{ModelID: 7, ModelName: "FOV", NumParams: 5},
	{ModelID: 8, ModelName: "SIMPLE_RADIAL_FISHEYE", NumParams: 4},
	{ModelID: 9, ModelName: "RADIAL_FISHEYE", NumParams: 5},
	{ModelID: 10, ModelName: "THIN_PRISM_FISHEYE", NumParams: 12},
}

var (
	cameraModelIDs   = make(map[int]CameraModel, len(CameraModels))
	cameraModelNames = make(map[string]CameraModel, len(CameraModels))
)

func init() {
	for _, model := range CameraModels {
		cameraModelIDs[model.ModelID] = model
		cameraModelNames[model.ModelName] = model
	}
}

// ModelByName looks up a camera model by its COLMAP name.
func ModelByName(name string) (CameraModel, error) {
	model, ok := cameraModelNames[name]
	if !ok {
		return CameraModel{}, fmt.Errorf("%w: %s", ErrUnsupportedCameraModel, name)
	}
	return model, nil
}

// ModelByID looks up a camera model by its numeric id.
func ModelByID(id int) (CameraModel, error) {
	model, ok := cameraModelIDs[id]
	if !ok {
		return CameraModel{}, fmt.Errorf("%w: id %d", ErrUnsupportedCameraModel, id)
	}
	return model, nil
}
