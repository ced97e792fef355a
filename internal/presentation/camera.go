package presentation

import (
	"time"

	"github.com/petstore/bossfight/internal/geom"
)

type CameraConfig struct {
	Offset         geom.Vec3
	ZoomSpeed      float64
	MinZoom        float64
	MaxZoom        float64
	ZoomSmoothTime float64
	EdgePan        bool
	EdgePanSpeed   float64
	EdgeThickness  float64 // pixels
	MaxPanDistance float64
	PanSmoothTime  float64
}

func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Offset:         geom.V(0, 10, -5),
		ZoomSpeed:      2,
		MinZoom:        0.5,
		MaxZoom:        2,
		ZoomSmoothTime: 0.3,
		EdgePan:        true,
		EdgePanSpeed:   5,
		EdgeThickness:  30,
		MaxPanDistance: 10,
		PanSmoothTime:  0.3,
	}
}

// Pointer is one frame of mouse state in screen pixels.
type Pointer struct {
	X, Y          float64
	Width, Height float64
	Scroll        float64
	Recenter      bool   // middle click
	Click         string // scene object left-clicked this frame, see Click* names
}

// Camera follows a target at a zoomable offset with screen-edge panning.
type Camera struct {
	cfg CameraConfig

	zoom, targetZoom, zoomVel float64
	pan, targetPan, panVel    geom.Vec3
	pos                       geom.Vec3
}

func NewCamera(cfg CameraConfig) *Camera {
	return &Camera{cfg: cfg, zoom: 1, targetZoom: 1}
}

// Update runs once per frame after the simulation has moved the target.
func (c *Camera) Update(target geom.Vec3, in Pointer, dt time.Duration) {
	sec := dt.Seconds()

	if in.Scroll != 0 {
		c.targetZoom = geom.Clamp(c.targetZoom-in.Scroll*c.cfg.ZoomSpeed, c.cfg.MinZoom, c.cfg.MaxZoom)
	}
	c.zoom = geom.SmoothDamp(c.zoom, c.targetZoom, &c.zoomVel, c.cfg.ZoomSmoothTime, sec)

	if c.cfg.EdgePan {
		dir := c.edgeDirection(in)
		if !dir.IsZero() {
			c.targetPan = c.targetPan.Add(dir.Scale(c.cfg.EdgePanSpeed * sec)).ClampLen(c.cfg.MaxPanDistance)
		}
		c.pan = geom.SmoothDampVec(c.pan, c.targetPan, &c.panVel, c.cfg.PanSmoothTime, sec)
	}

	if in.Recenter {
		c.targetPan = geom.Vec3{}
	}

	c.pos = target.Add(c.cfg.Offset.Scale(c.zoom)).Add(c.pan)
}

func (c *Camera) edgeDirection(in Pointer) geom.Vec3 {
	if in.Width <= 0 || in.Height <= 0 {
		return geom.Vec3{}
	}
	var d geom.Vec3
	switch {
	case in.X <= c.cfg.EdgeThickness:
		d.X = -1
	case in.X >= in.Width-c.cfg.EdgeThickness:
		d.X = 1
	}
	switch {
	case in.Y <= c.cfg.EdgeThickness:
		d.Z = -1
	case in.Y >= in.Height-c.cfg.EdgeThickness:
		d.Z = 1
	}
	return d
}

func (c *Camera) Position() geom.Vec3  { return c.pos }
func (c *Camera) Zoom() float64        { return c.zoom }
func (c *Camera) TargetZoom() float64  { return c.targetZoom }
func (c *Camera) Pan() geom.Vec3       { return c.pan }
func (c *Camera) TargetPan() geom.Vec3 { return c.targetPan }
