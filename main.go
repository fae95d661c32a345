package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/kristianmk/gaussian-splatting/imports"
)

func main() {
	calibration := flag.String("calibration", "", "Qualisys calibration JSON export (required)")
	model := flag.String("model", "OPENCV", "intrinsic camera model name")
	imageDir := flag.String("images", "", "directory with Miqus captures to associate (optional)")
	plotFile := flag.String("plot", "", "write a top-down rig plot to this PNG (optional)")
	flag.Parse()

	if *calibration == "" {
		flag.Usage()
		log.Fatal("missing -calibration")
	}

	cameras, err := imports.ReadIntrinsicsJSON(*calibration, *model)
	if err != nil {
		log.Fatal(err)
	}
	images, err := imports.ReadExtrinsicsJSON(*calibration)
	if err != nil {
		log.Fatal(err)
	}

	ids := make([]int, 0, len(cameras))
	for id := range cameras {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fmt.Printf("Number of cameras = %d\n", len(ids))
	for _, id := range ids {
		camera := cameras[id]
		image := images[id]
		fmt.Printf("Camera %d: model=%d size=%.0fx%.0f params=%v\n",
			id, camera.Model, camera.Width, camera.Height, camera.Params)
		fmt.Printf("  qvec=%v tvec=%v\n", image.Qvec, image.Tvec)
	}

	if *imageDir != "" {
		files, err := imports.MatchImages(*imageDir)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Number of captures = %d\n", len(files))

		mismatches, err := imports.CheckImageSizes(*imageDir, files, cameras)
		if err != nil {
			log.Fatal(err)
		}
		for _, mismatch := range mismatches {
			camera := cameras[mismatch.Camera]
			fmt.Printf("Camera %d: capture %s is %dx%d, calibration says %.0fx%.0f\n",
				mismatch.Camera, mismatch.File, mismatch.Width, mismatch.Height,
				camera.Width, camera.Height)
		}
	}

	if *plotFile != "" {
		if err := plotRig(images, *plotFile); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Rig plot written to %s\n", *plotFile)
	}
}
