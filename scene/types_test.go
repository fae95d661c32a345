package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraModelRegistry(t *testing.T) {
	expected := map[string]struct {
		id        int
		numParams int
	}{
		"SIMPLE_PINHOLE":        {0, 3},
		"PINHOLE":               {1, 4},
		"SIMPLE_RADIAL":         {2, 4},
		"RADIAL":                {3, 5},
		"OPENCV":                {4, 8},
		"OPENCV_FISHEYE":        {5, 8},
		"FULL_OPENCV":           {6, 12},
		"FOV":                   {7, 5},
		"SIMPLE_RADIAL_FISHEYE": {8, 4},
		"RADIAL_FISHEYE":        {9, 5},
		"THIN_PRISM_FISHEYE":    {10, 12},
	}
	require.Len(t, CameraModels, len(expected))

	for name, want := range expected {
		model, err := ModelByName(name)
		require.NoError(t, err)
		assert.Equal(t, want.id, model.ModelID)
		assert.Equal(t, want.numParams, model.NumParams)

		byID, err := ModelByID(want.id)
		require.NoError(t, err)
		assert.Equal(t, name, byID.ModelName)
	}
}

func TestModelLookupFailures(t *testing.T) {
	_, err := ModelByName("UNKNOWN_MODEL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCameraModel))

	_, err = ModelByID(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCameraModel))
}
