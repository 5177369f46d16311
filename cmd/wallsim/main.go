package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"stereowall/internal/config"
	"stereowall/internal/rig"
	"stereowall/internal/session"
)

const (
	headStep = 0.01 // meters per tick while a move key is held
	yawStep  = 1.0  // degrees per tick
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	platform := flag.String("platform", "", "Deployment platform: simulator, innovator, destiny (default: auto)")
	cardDir := flag.String("cards", "", "Directory of calibration card images (default: auto-detect)")
	width := flag.Int("width", 0, "Window width (default: config)")
	height := flag.Int("height", 0, "Window height (default: config)")
	stereo := flag.Bool("stereo", false, "Start with stereo on")
	panoptic := flag.Bool("panoptic", false, "Start with panoptic seam overlap on")
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
		Platform: *platform,
		CardDir:  *cardDir,
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

	sess, err := session.New(cfg, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Stereo Wall Simulator\n")
	fmt.Printf("Platform: %s, Mode: %s, Node: %d\n", sess.Platform(), sess.Mode(), sess.Identity().Index)
	fmt.Println("------------------------------------------------------------")
	fmt.Println("  Tab       cycle display mode")
	fmt.Println("  S         toggle stereo")
	fmt.Println("  P         toggle panoptic seam overlap")
	fmt.Println("  [ / ]     interaxial -/+ 1 mm")
	fmt.Println("  , / .     surface viewpoint -/+")
	fmt.Println("  arrows    slide head, PgUp/PgDn raise/lower")
	fmt.Println("  Q / E     turn head, R recenter")
	fmt.Println("  K         toggle the tuning-key gate")
	fmt.Println("  Esc       quit")
	fmt.Println("------------------------------------------------------------")

	g := &game{sess: sess, enabled: true}
	ebiten.SetWindowTitle(fmt.Sprintf("stereowall (%s)", sess.Platform()))
	ebiten.SetWindowSize(cfg.OutputWidth, cfg.OutputHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type game struct {
	sess    *session.Session
	enabled bool
	frame   *image.NRGBA
	tex     *ebiten.Image
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.enabled = !g.enabled
	}

	in := session.InputState{
		Enabled:        g.enabled,
		CycleMode:      inpututil.IsKeyJustPressed(ebiten.KeyTab),
		ToggleStereo:   inpututil.IsKeyJustPressed(ebiten.KeyS),
		TogglePanoptic: inpututil.IsKeyJustPressed(ebiten.KeyP),
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		in.InteraxialDelta--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		in.InteraxialDelta++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		in.SurfaceDelta--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		in.SurfaceDelta++
	}

	g.moveHead()

	frame, err := g.sess.Advance(in, time.Now())
	if err != nil {
		return err
	}
	g.frame = frame
	return nil
}

// moveHead emulates the tracker. Head motion bypasses the tuning-key gate:
// a tracker never stops reporting.
func (g *game) moveHead() {
	p := g.sess.HeadPose()
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		p.Position.Z -= headStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		p.Position.Z += headStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		p.Position.X -= headStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		p.Position.X += headStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyPageUp) {
		p.Position.Y += headStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyPageDown) {
		p.Position.Y -= headStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		p.Yaw += yawStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		p.Yaw -= yawStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p = rig.DefaultHead()
	}
	g.sess.SetHeadPose(p)
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		return
	}
	w, h := g.frame.Rect.Dx(), g.frame.Rect.Dy()
	if g.tex == nil || g.tex.Bounds().Dx() != w || g.tex.Bounds().Dy() != h {
		if g.tex != nil {
			g.tex.Deallocate()
		}
		g.tex = ebiten.NewImage(w, h)
	}
	g.tex.WritePixels(g.frame.Pix)
	screen.DrawImage(g.tex, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sess.SetOutputSize(outsideWidth, outsideHeight)
	f := g.sess.Frame()
	return f.Rect.Dx(), f.Rect.Dy()
}
