// Package rig models the physical display surfaces and the camera slots that
// look through them. All lengths are meters, Y is up, the enclosure center is
// the origin.
package rig

import "stereowall/internal/mathutil"

// EyeHeight is the default tracked-head height above the floor.
const EyeHeight = 1.5

// Pose is a tracked position and orientation. Angles are degrees.
type Pose struct {
	Position mathutil.Vec3
	Yaw      float64
	Pitch    float64
	Roll     float64
}

// DefaultHead places the viewer at the enclosure center, facing the front
// surface.
func DefaultHead() Pose {
	return Pose{Position: mathutil.Vec3{X: 0, Y: EyeHeight, Z: 0}}
}

// Basis returns the pose's orientation as a rotation matrix, composed
// roll-yaw-pitch the same way the tracker reports it.
func (p Pose) Basis() mathutil.Mat3 {
	rz := mathutil.RotZ(mathutil.Deg2Rad(p.Roll))
	ry := mathutil.RotY(mathutil.Deg2Rad(p.Yaw))
	rx := mathutil.RotX(mathutil.Deg2Rad(p.Pitch))
	return mathutil.Mat3Mul(mathutil.Mat3Mul(rz, ry), rx)
}

// Right returns the pose's right axis in world space. The stereo eye
// baseline runs along it.
func (p Pose) Right() mathutil.Vec3 {
	return p.Basis().Col(0)
}
