// Package camera provides the free-flying camera used by the viewer.
//
// The camera keeps a world-space position and a right/up/forward basis
// derived from yaw and pitch. The basis is the only source of truth for
// movement directions and for the view transform.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Pitch limits in degrees. Keeping pitch inside the open interval (-90, 90)
// keeps the forward vector away from WorldUp.
const (
	MaxPitch = 89.0
	MinPitch = -89.0
)

// Default projection parameters, in metres.
const (
	DefaultFocalLength = 0.05
	DefaultSensorWidth = 0.036
)

// WorldUp is the reference up direction used to build the basis.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Camera is a position plus an orthonormal basis built from yaw and pitch.
type Camera struct {
	FocalLength float64
	SensorWidth float64

	position mgl64.Vec3
	yaw      float64 // degrees, wrapped into (-180, 180]
	pitch    float64 // degrees, clamped to [MinPitch, MaxPitch]

	x mgl64.Vec3 // right
	y mgl64.Vec3 // up
	z mgl64.Vec3 // forward
}

// Uniforms is the packed camera state uploaded to the display shader.
type Uniforms struct {
	Position    mgl32.Vec3
	XVector     mgl32.Vec3
	YVector     mgl32.Vec3
	ZVector     mgl32.Vec3
	FocalLength float32
	SensorWidth float32
	View        mgl32.Mat4
}

// New returns the identity camera: origin, zero rotation, default optics.
func New() *Camera {
	c := &Camera{
		FocalLength: DefaultFocalLength,
		SensorWidth: DefaultSensorWidth,
	}
	c.updateVectors()
	return c
}

// Position returns the camera position in world space.
func (c *Camera) Position() mgl64.Vec3 {
	return c.position
}

// SetPosition moves the camera to pos without changing its orientation.
func (c *Camera) SetPosition(pos mgl64.Vec3) {
	c.position = pos
}

// Rotation returns yaw and pitch in degrees.
func (c *Camera) Rotation() (yaw, pitch float64) {
	return c.yaw, c.pitch
}

// SetRotation replaces yaw and pitch and rebuilds the basis.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.yaw = wrapYaw(yaw)
	c.pitch = clampPitch(pitch)
	c.updateVectors()
}

// Basis returns the right, up and forward unit vectors.
func (c *Camera) Basis() (x, y, z mgl64.Vec3) {
	return c.x, c.y, c.z
}

// Move displaces the camera along its own basis: dx along right, dy along
// up and dz along forward, each scaled by speed. The direction triple is not
// normalized, so diagonal input covers more distance than a single axis.
func (c *Camera) Move(dx, dy, dz, speed float64) {
	c.position = c.position.
		Add(c.x.Mul(dx * speed)).
		Add(c.y.Mul(dy * speed)).
		Add(c.z.Mul(dz * speed))
}

// Rotate adds the deltas (degrees) to yaw and pitch and rebuilds the basis.
func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.yaw = wrapYaw(c.yaw + dYaw)
	c.pitch = clampPitch(c.pitch + dPitch)
	c.updateVectors()
}

// Compile rebuilds the basis from the current rotation and packs everything
// the display shader needs. It does not depend on anything but the camera
// state, so repeated calls return identical values.
func (c *Camera) Compile() Uniforms {
	c.updateVectors()

	view := c.ViewMatrix()
	var view32 mgl32.Mat4
	for i := range view {
		view32[i] = float32(view[i])
	}

	return Uniforms{
		Position:    vec32(c.position),
		XVector:     vec32(c.x),
		YVector:     vec32(c.y),
		ZVector:     vec32(c.z),
		FocalLength: float32(c.FocalLength),
		SensorWidth: float32(c.SensorWidth),
		View:        view32,
	}
}

// ViewMatrix returns the world-to-camera transform. Its rows are the basis
// vectors and its translation is -dot(basis, position).
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return mgl64.Mat4FromRows(
		c.x.Vec4(-c.x.Dot(c.position)),
		c.y.Vec4(-c.y.Dot(c.position)),
		c.z.Vec4(-c.z.Dot(c.position)),
		mgl64.Vec4{0, 0, 0, 1},
	)
}

// HorizontalFOV returns the horizontal field of view in degrees implied by
// the focal length and sensor width.
func (c *Camera) HorizontalFOV() float64 {
	return mgl64.RadToDeg(2 * math.Atan(c.SensorWidth/(2*c.FocalLength)))
}

// updateVectors recalculates the basis from yaw and pitch.
func (c *Camera) updateVectors() {
	yaw := mgl64.DegToRad(c.yaw)
	pitch := mgl64.DegToRad(c.pitch)

	c.z = mgl64.Vec3{
		-math.Sin(yaw) * math.Cos(pitch),
		math.Sin(pitch),
		math.Cos(yaw) * math.Cos(pitch),
	}.Normalize()
	c.x = WorldUp.Cross(c.z).Normalize()
	c.y = c.z.Cross(c.x).Normalize()
}

func wrapYaw(yaw float64) float64 {
	yaw = math.Mod(yaw, 360)
	if yaw > 180 {
		yaw -= 360
	} else if yaw <= -180 {
		yaw += 360
	}
	return yaw
}

func clampPitch(pitch float64) float64 {
	return mgl64.Clamp(pitch, MinPitch, MaxPitch)
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
