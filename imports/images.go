package imports

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/h2non/bimg"
	"github.com/kristianmk/gaussian-splatting/scene"
)

// Miqus video exports embed the device index in the frame file name.
var miqusImagePattern = regexp.MustCompile(`.*Miqus_(\d+)_.*\.png$`)

// MatchImages scans dir for Miqus frame captures and maps each camera number
// to its file name. Files that do not match the capture pattern are ignored.
func MatchImages(dir string) (map[int]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	matched := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := miqusImagePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		matched[number] = entry.Name()
	}
	return matched, nil
}

// SortedImageFiles returns the matched capture file names ordered by camera
// number.
func SortedImageFiles(dir string) ([]string, error) {
	matched, err := MatchImages(dir)
	if err != nil {
		return nil, err
	}

	numbers := make([]int, 0, len(matched))
	for number := range matched {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	files := make([]string, 0, len(numbers))
	for _, number := range numbers {
		files = append(files, matched[number])
	}
	return files, nil
}

// SizeMismatch records a capture whose pixel dimensions disagree with the
// calibration extents of its camera.
type SizeMismatch struct {
	Camera int
	File   string
	Width  int
	Height int
}

// CheckImageSizes compares each matched capture against the pixel extents of
// its camera record. Camera numbers without a capture on disk, and captures
// without a camera record, are skipped. Mismatches are reported in camera
// order.
func CheckImageSizes(dir string, files map[int]string, cameras map[int]scene.Camera) ([]SizeMismatch, error) {
	numbers := make([]int, 0, len(files))
	for number := range files {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	var mismatches []SizeMismatch
	for _, number := range numbers {
		camera, ok := cameras[number]
		if !ok {
			continue
		}
		file := files[number]
		buffer, err := bimg.Read(filepath.Join(dir, file))
		if err != nil {
			return nil, err
		}
		size, err := bimg.NewImage(buffer).Size()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if size.Width != int(camera.Width) || size.Height != int(camera.Height) {
			mismatches = append(mismatches, SizeMismatch{
				Camera: number,
				File:   file,
				Width:  size.Width,
				Height: size.Height,
			})
		}
	}
	return mismatches, nil
}
