package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"stereowall/internal/capture"
	"stereowall/internal/config"
	"stereowall/internal/mathutil"
	"stereowall/internal/postprocess"
	"stereowall/internal/rig"
	"stereowall/internal/session"
)

// tickInterval is the synthetic frame clock for offline runs: timestamps
// advance as if the wall ran at 30 fps.
const tickInterval = 33 * time.Millisecond

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	platform := flag.String("platform", "", "Deployment platform: simulator, innovator, destiny (default: auto)")
	cardDir := flag.String("cards", "", "Directory of calibration card images (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: captures)")
	workers := flag.Int("workers", 0, "Number of encode workers (default: NumCPU)")
	frames := flag.Int("frames", 120, "Number of frames to render")
	width := flag.Int("width", 0, "Output width (default: config)")
	height := flag.Int("height", 0, "Output height (default: config)")
	stereo := flag.Bool("stereo", false, "Force stereo on from the first frame")
	panoptic := flag.Bool("panoptic", false, "Force panoptic seam overlap on from the first frame")
	cycle := flag.Bool("cycle", false, "Cycle the display mode at one-third intervals")
	sweep := flag.Bool("sweep", false, "Sweep interaxial 0..100 mm across the run")
	super := flag.Int("supersample", 1, "Render at N× the output size and downsample (1 = off)")
	flag.Int("client", 0, "Node index on clustered deployments")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Platform:   *platform,
		CardDir:    *cardDir,
		CaptureDir: *outputDir,
		Workers:    *workers,
	})
	if *width > 0 {
		cfg.OutputWidth = *width
	}
	if *height > 0 {
		cfg.OutputHeight = *height
	}
	if *stereo {
		cfg.Stereo = true
	}
	if *panoptic {
		cfg.Panoptic = true
	}

	// Supersampling renders the whole session at a multiple of the output
	// size; frames come back down right before encoding.
	if *super < 1 {
		*super = 1
	}
	outW, outH := cfg.OutputWidth, cfg.OutputHeight
	cfg.OutputWidth *= *super
	cfg.OutputHeight *= *super

	sess, err := session.New(cfg, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *frames < 1 {
		fmt.Println("No frames to render.")
		os.Exit(0)
	}

	rec, err := capture.NewRecorder(capture.Config{
		OutputDir: cfg.CaptureDir,
		Workers:   cfg.Workers,
		Progress:  true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Print summary
	fmt.Printf("Stereo Wall Sequence Renderer → WebP\n")
	fmt.Printf("Platform: %s, Mode: %s, Node: %d\n", sess.Platform(), sess.Mode(), sess.Identity().Index)
	fmt.Printf("Frames: %d @ %dx%d, Workers: %d\n", *frames, outW, outH, cfg.Workers)
	if *super > 1 {
		fmt.Printf("Supersampling: %dx (rendering at %dx%d)\n", *super, cfg.OutputWidth, cfg.OutputHeight)
	}
	fmt.Printf("Output: %s\n", cfg.CaptureDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	clock := start

	for i := 0; i < *frames; i++ {
		t := 0.0
		if *frames > 1 {
			t = float64(i) / float64(*frames-1)
		}

		sess.SetHeadPose(headAt(t))
		if *sweep {
			sess.Synchronizer().SetInteraxialMm(int(100 * t))
		}

		in := session.InputState{Enabled: true}
		if *cycle && (i == *frames/3 || i == 2*(*frames)/3) {
			in.CycleMode = true
		}

		frame, err := sess.Advance(in, clock)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: frame %d: %v\n", i, err)
			os.Exit(1)
		}
		if *super > 1 {
			frame = postprocess.Downsample(frame, outW, outH)
		}

		live := sess.Settings()
		rec.Capture(frame, capture.FrameMeta{
			Index:        i,
			Mode:         sess.Mode().String(),
			Stereo:       live.Stereo,
			Panoptic:     live.Panoptic,
			InteraxialMm: live.InteraxialMm,
			SurfaceIndex: live.SurfaceIndex,
		})
		clock = clock.Add(tickInterval)
	}

	results, err := rec.Finish()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []capture.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Encoded: %d/%d\n", success, *frames)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Index, e.Error)
		}
	}

	fmt.Printf("Manifest: %s\n", filepath.Join(cfg.CaptureDir, "manifest.json"))

	if failed > 0 {
		os.Exit(1)
	}
}

// headAt animates the tracked head: a dolly toward the front wall for the
// first part of the run, then a slow orbit around the enclosure center,
// with a gentle yaw sway throughout.
func headAt(t float64) rig.Pose {
	const orbitRadius = 0.35

	var pos mathutil.Vec3
	if t < 0.4 {
		from := mathutil.Vec3{Y: rig.EyeHeight, Z: 0.35}
		to := mathutil.Vec3{Y: rig.EyeHeight, Z: -0.25}
		pos = from.Lerp(to, t/0.4)
	} else {
		a := (t - 0.4) / 0.6 * 2 * math.Pi
		pos = mathutil.Vec3{
			X: orbitRadius * math.Sin(a),
			Y: rig.EyeHeight,
			Z: -0.25 + orbitRadius*(math.Cos(a)-1)/2,
		}
	}

	return rig.Pose{
		Position: pos,
		Yaw:      15 * math.Sin(2*math.Pi*t),
	}
}
