package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stereowall/internal/overlay"
	"stereowall/internal/rig"
)

func newTestGroups(t *testing.T) map[Mode]*rig.Group {
	t.Helper()
	screen := &rig.Screen{W: 640, H: 360}
	sim, err := rig.NewGroup("simulator", rig.SimulatorDescs(), screen, 0.1, 100)
	require.NoError(t, err)
	panel, err := rig.NewGroup("panel", rig.PanelDescs(), screen, 0.1, 100)
	require.NoError(t, err)
	walls, err := rig.NewGroup("walls", rig.WallDescs(4), screen, 0.1, 100)
	require.NoError(t, err)
	return map[Mode]*rig.Group{
		Simulator:     sim,
		SingleSurface: panel,
		MultiSurface:  walls,
	}
}

// TestModeCycleOrder checks the fixed simulator → single → multi cycle.
func TestModeCycleOrder(t *testing.T) {
	assert.Equal(t, SingleSurface, Simulator.Next())
	assert.Equal(t, MultiSurface, SingleSurface.Next())
	assert.Equal(t, Simulator, MultiSurface.Next())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "simulator", Simulator.String())
	assert.Equal(t, "single-surface", SingleSurface.String())
	assert.Equal(t, "multi-surface", MultiSurface.String())
}

// TestParsePlatform covers explicit names and the fallback.
func TestParsePlatform(t *testing.T) {
	t.Setenv(PlatformEnv, "")
	assert.Equal(t, PlatformInnovator, ParsePlatform("innovator"))
	assert.Equal(t, PlatformInnovator, ParsePlatform("  Innovator "))
	assert.Equal(t, PlatformDestiny, ParsePlatform("destiny"))
	assert.Equal(t, PlatformSimulator, ParsePlatform("garage"))
}

// TestParsePlatformAutoEnv: "auto" defers to the environment override.
func TestParsePlatformAutoEnv(t *testing.T) {
	t.Setenv(PlatformEnv, "destiny")
	assert.Equal(t, PlatformDestiny, ParsePlatform("auto"))
	assert.Equal(t, PlatformDestiny, ParsePlatform(""))

	t.Setenv(PlatformEnv, "innovator")
	assert.Equal(t, PlatformInnovator, ParsePlatform("auto"))
}

// TestPlatformMode maps deployments to their startup display mode.
func TestPlatformMode(t *testing.T) {
	assert.Equal(t, Simulator, PlatformSimulator.Mode())
	assert.Equal(t, SingleSurface, PlatformInnovator.Mode())
	assert.Equal(t, MultiSurface, PlatformDestiny.Mode())
}

func TestPlatformClustered(t *testing.T) {
	assert.False(t, PlatformSimulator.Clustered())
	assert.False(t, PlatformInnovator.Clustered())
	assert.True(t, PlatformDestiny.Clustered())
}

// TestNewControllerRequiresAllGroups: a partial rig is a configuration
// error, not a silent fallback.
func TestNewControllerRequiresAllGroups(t *testing.T) {
	groups := newTestGroups(t)
	delete(groups, SingleSurface)

	_, err := NewController(groups, &overlay.Board{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "single-surface")
}

// TestControllerMutualExclusion checks that exactly one group is active
// through any sequence of selections.
func TestControllerMutualExclusion(t *testing.T) {
	groups := newTestGroups(t)
	c, err := NewController(groups, &overlay.Board{})
	require.NoError(t, err)

	activeCount := func() int {
		n := 0
		for _, g := range groups {
			if g.Active() {
				n++
			}
		}
		return n
	}

	assert.Equal(t, Simulator, c.Current())
	assert.True(t, groups[Simulator].Active())
	assert.Equal(t, 1, activeCount())

	now := time.Now()
	for _, m := range []Mode{MultiSurface, SingleSurface, Simulator, MultiSurface} {
		c.Select(m, now)
		assert.Equal(t, m, c.Current())
		assert.True(t, groups[m].Active())
		assert.Equal(t, 1, activeCount())
		assert.Same(t, groups[m], c.Active())
	}
}

// TestControllerSelectSameModeIsNoop: re-selecting the current mode posts no
// notice and flips nothing.
func TestControllerSelectSameModeIsNoop(t *testing.T) {
	groups := newTestGroups(t)
	board := &overlay.Board{}
	c, err := NewController(groups, board)
	require.NoError(t, err)

	c.Select(Simulator, time.Now())
	_, posted := board.Latest()
	assert.False(t, posted)
	assert.True(t, groups[Simulator].Active())
}

// TestControllerPostsModeNotice checks the notice reaching the overlay on a
// real change.
func TestControllerPostsModeNotice(t *testing.T) {
	groups := newTestGroups(t)
	board := &overlay.Board{}
	c, err := NewController(groups, board)
	require.NoError(t, err)

	now := time.Now()
	c.Select(MultiSurface, now)

	n, posted := board.Latest()
	require.True(t, posted)
	assert.Equal(t, overlay.KindMode, n.Kind)
	assert.Equal(t, "multi-surface mode", n.Text)
	assert.Equal(t, now, n.At)
}

// TestControllerCycle walks the full cycle back to the start.
func TestControllerCycle(t *testing.T) {
	groups := newTestGroups(t)
	c, err := NewController(groups, &overlay.Board{})
	require.NoError(t, err)

	now := time.Now()
	c.Cycle(now)
	assert.Equal(t, SingleSurface, c.Current())
	c.Cycle(now)
	assert.Equal(t, MultiSurface, c.Current())
	c.Cycle(now)
	assert.Equal(t, Simulator, c.Current())
}
