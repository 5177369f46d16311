package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds deployment identity and display settings.
type Config struct {
	// Deployment platform: "auto", "simulator", "innovator", "destiny".
	// "auto" defers to runtime detection at startup.
	Platform string `json:"platform"`

	// Stereo defaults applied at startup
	InteraxialMm int  `json:"interaxial_mm"` // eye separation in millimeters
	Stereo       bool `json:"stereo"`
	Panoptic     bool `json:"panoptic"`
	SurfaceIndex int  `json:"surface_index"`

	// Output framebuffer
	OutputWidth  int     `json:"output_width"`
	OutputHeight int     `json:"output_height"`
	NearClip     float64 `json:"near_clip"`
	FarClip      float64 `json:"far_clip"`

	// Optional directory of calibration card images (TGA/JPEG/PNG).
	// Empty means synthetic cards.
	CardDir string `json:"card_dir"`

	// Offline capture
	CaptureDir string `json:"capture_dir"`
	Workers    int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Platform != "" {
		c.Platform = flags.Platform
	}
	if flags.CardDir != "" {
		c.CardDir = flags.CardDir
	}
	if flags.CaptureDir != "" {
		c.CaptureDir = flags.CaptureDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.Platform == "" {
		c.Platform = "auto"
	}

	// Auto-detect card dir if still empty
	if c.CardDir == "" {
		c.CardDir = detectCardDir()
	}

	// Defaults for display settings
	if c.InteraxialMm == 0 {
		c.InteraxialMm = 65
	}
	if c.OutputWidth <= 0 {
		c.OutputWidth = 1280
	}
	if c.OutputHeight <= 0 {
		c.OutputHeight = 720
	}
	if c.NearClip <= 0 {
		c.NearClip = 0.1
	}
	if c.FarClip <= c.NearClip {
		c.FarClip = 1000
	}
	if c.SurfaceIndex < 0 {
		c.SurfaceIndex = 0
	}
	if c.CaptureDir == "" {
		c.CaptureDir = "captures"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Platform   string
	CardDir    string
	CaptureDir string
	Workers    int
}

func detectCardDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			cards := filepath.Join(base, "cards")
			if info, err := os.Stat(cards); err == nil && info.IsDir() {
				return cards
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	cards := filepath.Join(cwd, "cards")
	if info, err := os.Stat(cards); err == nil && info.IsDir() {
		return cards
	}

	return ""
}
