// Package camera provides a headless observer camera. It carries no input
// or rendering state; its job is to turn a viewpoint into pick rays for the
// physics engine.
package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Camera struct {
	Position rl.Vector3
	Yaw      float32 // degrees, 0 looks down +X
	Pitch    float32 // degrees, positive looks up
}

func New(pos rl.Vector3) *Camera {
	return &Camera{
		Position: pos,
		Yaw:      -135.0,
		Pitch:    -30.0,
	}
}

// Forward returns the unit view direction for the current yaw and pitch.
func (c *Camera) Forward() rl.Vector3 {
	yaw := c.Yaw * rl.Deg2rad
	pitch := c.Pitch * rl.Deg2rad
	return rl.Vector3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}
}

// LookAt points the camera at a world position.
func (c *Camera) LookAt(target rl.Vector3) {
	d := rl.Vector3Subtract(target, c.Position)
	flat := math32.Sqrt(d.X*d.X + d.Z*d.Z)
	c.Yaw = math32.Atan2(d.Z, d.X) * rl.Rad2deg
	c.Pitch = math32.Atan2(d.Y, flat) * rl.Rad2deg
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// PickRay returns the segment from the camera along its view direction out
// to maxDistance, in the form the physics pick query expects.
func (c *Camera) PickRay(maxDistance float32) (near, far rl.Vector3) {
	dir := c.Forward()
	return c.Position, rl.Vector3Add(c.Position, rl.Vector3Scale(dir, maxDistance))
}
