package display

import (
	"os"
	"strings"
)

// Platform identifies the physical deployment this process drives.
type Platform int

const (
	// PlatformSimulator is a plain desktop machine with no attached rig.
	PlatformSimulator Platform = iota
	// PlatformInnovator is a single stereo flat panel.
	PlatformInnovator
	// PlatformDestiny is the four-surface wraparound enclosure.
	PlatformDestiny
)

// PlatformEnv overrides platform detection when set.
const PlatformEnv = "STEREOWALL_PLATFORM"

func (p Platform) String() string {
	switch p {
	case PlatformInnovator:
		return "innovator"
	case PlatformDestiny:
		return "destiny"
	}
	return "simulator"
}

// ParsePlatform maps a config value to a Platform. Empty or "auto" consults
// the environment; anything unrecognized falls back to the simulator.
func ParsePlatform(name string) Platform {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "innovator":
		return PlatformInnovator
	case "destiny":
		return PlatformDestiny
	case "", "auto":
		return detectPlatform()
	}
	return PlatformSimulator
}

// detectPlatform checks the override variable first, then the hostname
// prefix used on rig machines.
func detectPlatform() Platform {
	if v := os.Getenv(PlatformEnv); v != "" && !strings.EqualFold(v, "auto") {
		return ParsePlatform(v)
	}
	host, err := os.Hostname()
	if err != nil {
		return PlatformSimulator
	}
	host = strings.ToLower(host)
	switch {
	case strings.HasPrefix(host, "destiny"):
		return PlatformDestiny
	case strings.HasPrefix(host, "innovator"):
		return PlatformInnovator
	}
	return PlatformSimulator
}

// Mode returns the display mode the platform forces at startup.
func (p Platform) Mode() Mode {
	switch p {
	case PlatformInnovator:
		return SingleSurface
	case PlatformDestiny:
		return MultiSurface
	}
	return Simulator
}

// Clustered reports whether viewpoint selection comes from node identity
// instead of live input.
func (p Platform) Clustered() bool {
	return p == PlatformDestiny
}
