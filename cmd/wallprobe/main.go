package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"stereowall/internal/config"
	"stereowall/internal/mathutil"
	"stereowall/internal/rig"
	"stereowall/internal/session"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	platform := flag.String("platform", "", "Deployment platform: simulator, innovator, destiny (default: auto)")
	stereo := flag.Bool("stereo", false, "Probe with stereo on")
	panoptic := flag.Bool("panoptic", false, "Probe with panoptic seam overlap on")
	surface := flag.Int("surface", -1, "Probe with this surface viewpoint (default: config)")
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

	cfg.Resolve(config.Flags{Platform: *platform})
	if *stereo {
		cfg.Stereo = true
	}
	if *panoptic {
		cfg.Panoptic = true
	}
	if *surface >= 0 {
		cfg.SurfaceIndex = *surface
	}

	sess, err := session.New(cfg, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// One idle tick settles the startup parameters and computes projections.
	if _, err := sess.Advance(session.InputState{}, time.Unix(0, 0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	live := sess.Settings()
	fmt.Printf("Platform: %s, Mode: %s, Node: %d, ActiveIndex: %d\n",
		sess.Platform(), sess.Mode(), sess.Identity().Index, sess.ActiveIndex())
	fmt.Printf("Settings: interaxial=%dmm stereo=%v panoptic=%v surface=%d aspect=%.4f\n",
		live.InteraxialMm, live.Stereo, live.Panoptic, live.SurfaceIndex, live.Aspect)
	fmt.Printf("Output: %dx%d, clip [%.2f, %.1f]\n",
		cfg.OutputWidth, cfg.OutputHeight, cfg.NearClip, cfg.FarClip)

	layout := sess.Layout()
	fmt.Printf("\nSurfaces: %d walls + panel\n", len(layout.Walls))
	for i, w := range layout.Walls {
		printSurface(fmt.Sprintf("wall[%d]", i), w)
	}
	printSurface("panel", layout.Panel)

	fmt.Printf("\nViewpoints:\n")
	for i := 0; i < layout.ViewpointCount(); i++ {
		v := layout.Viewpoint(i)
		fmt.Printf("  [%d] %-8s center=(%.2f, %.2f, %.2f) halfW=%.3f\n",
			i, v.Name, v.Center.X, v.Center.Y, v.Center.Z, v.HalfW)
	}

	head := sess.HeadPose()
	fmt.Printf("\nHead: pos=(%.2f, %.2f, %.2f) yaw=%.1f pitch=%.1f roll=%.1f\n",
		head.Position.X, head.Position.Y, head.Position.Z, head.Yaw, head.Pitch, head.Roll)

	g := sess.ActiveGroup()
	fmt.Printf("\nActive group: %s (%d pairs)\n", g.Name, len(g.Pairs))
	for i, p := range g.Pairs {
		fmt.Printf("  Pair[%d]: binding=%s surface=%d center=%v\n",
			i, p.Binding, p.Surface, p.CenterEnabled())
		for _, s := range p.Slots() {
			fmt.Printf("    %-6s eyeOffset=%.4fm aspect=%.4f viewport=%v\n",
				s.Role, s.EyeOffset, s.Aspect, s.Viewport)
			printMat4("      ", s.Projection)
		}
	}
}

func printSurface(name string, s rig.Surface) {
	fmt.Printf("  %-8s center=(%.2f, %.2f, %.2f) right=(%.0f, %.0f, %.0f) half=%.2fx%.2f overlap=%.2f\n",
		name, s.Center.X, s.Center.Y, s.Center.Z,
		s.Right.X, s.Right.Y, s.Right.Z, s.HalfW, s.HalfH, s.SeamOverlap)
}

func printMat4(indent string, m mathutil.Mat4) {
	for r := 0; r < 4; r++ {
		fmt.Printf("%s[%9.4f %9.4f %9.4f %9.4f]\n",
			indent, m[r*4], m[r*4+1], m[r*4+2], m[r*4+3])
	}
}
