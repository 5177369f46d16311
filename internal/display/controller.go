package display

import (
	"fmt"
	"time"

	"stereowall/internal/overlay"
	"stereowall/internal/rig"
)

// Controller owns one viewpoint group per mode and keeps exactly one of them
// active. Inactive groups are only reachable by switching to them, so a
// renderer holding the controller cannot read textures from a group that is
// not driving the output.
type Controller struct {
	groups map[Mode]*rig.Group
	active Mode
	board  *overlay.Board
}

// NewController wires a group for every mode. A missing group is a
// configuration error: there is no safe way to run with a partial rig.
func NewController(groups map[Mode]*rig.Group, board *overlay.Board) (*Controller, error) {
	for m := Mode(0); m < modeCount; m++ {
		if groups[m] == nil {
			return nil, fmt.Errorf("display: no viewpoint group for %s mode", m)
		}
	}
	c := &Controller{groups: groups, active: Simulator, board: board}
	for m, g := range groups {
		g.SetActive(m == c.active)
	}
	return c, nil
}

// Select activates the group for m and deactivates the other two. Selecting
// the current mode again changes nothing and posts no notice.
func (c *Controller) Select(m Mode, now time.Time) {
	if m == c.active {
		return
	}
	c.groups[c.active].SetActive(false)
	c.active = m
	c.groups[m].SetActive(true)
	if c.board != nil {
		c.board.Post(overlay.KindMode, m.String()+" mode", now)
	}
}

// Cycle advances to the next mode in order.
func (c *Controller) Cycle(now time.Time) {
	c.Select(c.active.Next(), now)
}

// Current returns the active mode.
func (c *Controller) Current() Mode {
	return c.active
}

// Active returns the group driving the output.
func (c *Controller) Active() *rig.Group {
	return c.groups[c.active]
}
