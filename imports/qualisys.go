package imports

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kristianmk/gaussian-splatting/scene"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrFieldMissing marks a required key absent from a camera element. The
	// whole parse fails at the first occurrence; no partial mapping is returned.
	ErrFieldMissing = errors.New("required field missing")

	// ErrMalformedDocument marks input that is not valid JSON or has no
	// top-level Cameras array.
	ErrMalformedDocument = errors.New("malformed calibration document")
)

// MissingFieldError reports the first required key found absent, with the
// 1-based position of the camera element and the dotted key path.
type MissingFieldError struct {
	Camera int
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("camera %d: required field missing: %s", e.Camera, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrFieldMissing }

// Qualisys MoCap calibration export schema. Required keys are pointers so an
// absent key can be told apart from a zero value.
type qualisysDocument struct {
	Cameras []qualisysCamera `json:"Cameras"`
}

type qualisysCamera struct {
	FovVideo  *qualisysFov       `json:"FovVideo"`
	Intrinsic *qualisysIntrinsic `json:"Intrinsic"`
	Transform *qualisysTransform `json:"Transform"`
}

type qualisysFov struct {
	Right  *float64 `json:"Right"`
	Bottom *float64 `json:"Bottom"`
}

type qualisysIntrinsic struct {
	FocalLengthU         *float64 `json:"FocalLengthU"`
	FocalLengthV         *float64 `json:"FocalLengthV"`
	CenterPointU         *float64 `json:"CenterPointU"`
	CenterPointV         *float64 `json:"CenterPointV"`
	RadialDistortion1    *float64 `json:"RadialDistortion1"`
	RadialDistortion2    *float64 `json:"RadialDistortion2"`
	TangentalDistortion1 *float64 `json:"TangentalDistortion1"`
	TangentalDistortion2 *float64 `json:"TangentalDistortion2"`
}

type qualisysTransform struct {
	X   *float64 `json:"x"`
	Y   *float64 `json:"y"`
	Z   *float64 `json:"z"`
	R11 *float64 `json:"r11"`
	R12 *float64 `json:"r12"`
	R13 *float64 `json:"r13"`
	R21 *float64 `json:"r21"`
	R22 *float64 `json:"r22"`
	R23 *float64 `json:"r23"`
	R31 *float64 `json:"r31"`
	R32 *float64 `json:"r32"`
	R33 *float64 `json:"r33"`
}

type requiredField struct {
	path string
	val  *float64
}

func parseDocument(data []byte) (*qualisysDocument, error) {
	var doc qualisysDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Cameras == nil {
		return nil, fmt.Errorf("%w: no Cameras array", ErrMalformedDocument)
	}
	return &doc, nil
}

func resolve(camera int, fields []requiredField) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, field := range fields {
		if field.val == nil {
			return nil, &MissingFieldError{Camera: camera, Field: field.path}
		}
		values[i] = *field.val
	}
	return values, nil
}

// ParseIntrinsics builds one scene.Camera per element of the Cameras array,
// keyed by the 1-based array position: the export carries no identifier of its
// own. Parameter extraction is implemented for OPENCV and PINHOLE; any other
// registered model yields an empty parameter vector, an explicit placeholder
// that downstream projection code must not rely on.
func ParseIntrinsics(data []byte, modelType string) (map[int]scene.Camera, error) {
	model, err := scene.ModelByName(modelType)
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	cameras := make(map[int]scene.Camera, len(doc.Cameras))
	for i, cam := range doc.Cameras {
		idx := i + 1
		if cam.FovVideo == nil {
			return nil, &MissingFieldError{Camera: idx, Field: "FovVideo"}
		}
		extents, err := resolve(idx, []requiredField{
			{"FovVideo.Right", cam.FovVideo.Right},
			{"FovVideo.Bottom", cam.FovVideo.Bottom},
		})
		if err != nil {
			return nil, err
		}

		params := []float64{}
		if modelType == "OPENCV" || modelType == "PINHOLE" {
			if cam.Intrinsic == nil {
				return nil, &MissingFieldError{Camera: idx, Field: "Intrinsic"}
			}
			in := cam.Intrinsic
			fields := []requiredField{
				{"Intrinsic.FocalLengthU", in.FocalLengthU},
				{"Intrinsic.FocalLengthV", in.FocalLengthV},
				{"Intrinsic.CenterPointU", in.CenterPointU},
				{"Intrinsic.CenterPointV", in.CenterPointV},
			}
			if modelType == "OPENCV" {
				fields = append(fields,
					requiredField{"Intrinsic.RadialDistortion1", in.RadialDistortion1},
					requiredField{"Intrinsic.RadialDistortion2", in.RadialDistortion2},
					requiredField{"Intrinsic.TangentalDistortion1", in.TangentalDistortion1},
					requiredField{"Intrinsic.TangentalDistortion2", in.TangentalDistortion2},
				)
			}
			params, err = resolve(idx, fields)
			if err != nil {
				return nil, err
			}
		}

		cameras[idx] = scene.Camera{
			ID:     idx,
			Model:  model.ModelID,
			Width:  extents[0],
			Height: extents[1],
			Params: params,
		}
	}
	return cameras, nil
}

// ParseExtrinsics builds one scene.Image per element of the Cameras array.
// The export has no image identity and no image/camera correspondence, so the
// 1-based array position stands in for both ids and the name is synthesized
// from it. This mirrors the format, it is not a modelling choice.
func ParseExtrinsics(data []byte) (map[int]scene.Image, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	images := make(map[int]scene.Image, len(doc.Cameras))
	for i, cam := range doc.Cameras {
		idx := i + 1
		if cam.Transform == nil {
			return nil, &MissingFieldError{Camera: idx, Field: "Transform"}
		}
		tr := cam.Transform
		values, err := resolve(idx, []requiredField{
			{"Transform.x", tr.X},
			{"Transform.y", tr.Y},
			{"Transform.z", tr.Z},
			{"Transform.r11", tr.R11},
			{"Transform.r12", tr.R12},
			{"Transform.r13", tr.R13},
			{"Transform.r21", tr.R21},
			{"Transform.r22", tr.R22},
			{"Transform.r23", tr.R23},
			{"Transform.r31", tr.R31},
			{"Transform.r32", tr.R32},
			{"Transform.r33", tr.R33},
		})
		if err != nil {
			return nil, err
		}

		rotMat := mat.NewDense(3, 3, values[3:12])
		images[idx] = scene.Image{
			ID:         idx,
			Qvec:       scene.RotMatToQvec(rotMat),
			Tvec:       values[0:3],
			CameraID:   idx,
			Name:       fmt.Sprintf("Camera_%d", idx),
			XYs:        [][2]float64{},
			Point3DIDs: []int64{},
		}
	}
	return images, nil
}

// ReadIntrinsicsJSON reads a Qualisys calibration export from disk and parses
// the intrinsic blocks. See ParseIntrinsics.
func ReadIntrinsicsJSON(path string, modelType string) (map[int]scene.Camera, error) {
	jsonFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, err
	}
	return ParseIntrinsics(byteValue, modelType)
}

// ReadExtrinsicsJSON reads a Qualisys calibration export from disk and parses
// the transform blocks. See ParseExtrinsics.
func ReadExtrinsicsJSON(path string) (map[int]scene.Image, error) {
	jsonFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, err
	}
	return ParseExtrinsics(byteValue)
}
