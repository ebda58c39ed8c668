package render

import (
	"fmt"
	"image"
)

const (
	DefaultWidth      = 640
	DefaultHeight     = 480
	DefaultPixelRatio = 1.0
)

// Surface is an offscreen render target. Width and Height are logical pixels;
// the backing image is scaled by PixelRatio.
type Surface struct {
	Width, Height int
	PixelRatio    float64
}

// NewOffscreenSurface validates the dimensions of a render target.
func NewOffscreenSurface(width, height int, pixelRatio float64) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, &RenderError{Stage: "creating surface", Err: fmt.Errorf("invalid size %dx%d", width, height)}
	}
	if pixelRatio <= 0 {
		return nil, &RenderError{Stage: "creating surface", Err: fmt.Errorf("invalid pixel ratio %v", pixelRatio)}
	}
	return &Surface{Width: width, Height: height, PixelRatio: pixelRatio}, nil
}

// Bounds is the physical pixel rectangle of the surface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.physical(s.Width), s.physical(s.Height))
}

func (s *Surface) physical(v int) int {
	return int(float64(v)*s.PixelRatio + 0.5)
}
