package scene

// OrthographicCamera looks down the viewing axis at a Width×Height window of
// the world centred on Center. The window is widened along one axis to match
// the aspect ratio of the target surface, so nothing inside it is cropped.
type OrthographicCamera struct {
	Width, Height float64
	Center        Vec2
}

// NewOrthographicCamera returns a camera centred on the world origin.
func NewOrthographicCamera(width, height float64) *OrthographicCamera {
	return &OrthographicCamera{Width: width, Height: height}
}

// Projection maps world coordinates to pixel coordinates of a w×h surface.
// Pixel Y grows downwards.
func (c *OrthographicCamera) Projection(w, h int) Affine {
	scale := min(float64(w)/c.Width, float64(h)/c.Height)
	return Affine{
		A: scale,
		D: -scale,
		E: float64(w)/2 - c.Center.X*scale,
		F: float64(h)/2 + c.Center.Y*scale,
	}
}
