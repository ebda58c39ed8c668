// Package render rasterizes a scene graph onto an offscreen RGBA image.
// Lines and planes are filled as polygons with golang.org/x/image/vector and
// text is drawn with freetype.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/roman-kulish/scada-player/internal/scene"
)

// At 72 DPI one point is one pixel, so font sizes map directly.
const dpi = 72.0

// Backend renders a scene as seen by a camera.
type Backend interface {
	Render(root *scene.Node, cam *scene.OrthographicCamera) (*image.RGBA, error)
}

// Config holds the rasterizer options.
type Config struct {
	Background color.Color // Clear colour, black by default
	Font       []byte      // TrueType font, Go Regular by default
	Hinting    font.Hinting
}

// Rasterizer is a CPU Backend. It is not safe for concurrent use.
type Rasterizer struct {
	surface *Surface
	config  Config

	font    *truetype.Font
	context *freetype.Context
	faces   map[fixed.Int26_6]font.Face
	raster  *vector.Rasterizer
}

// NewRasterizer creates a rasterizer drawing onto surface.
func NewRasterizer(surface *Surface, config Config) (*Rasterizer, error) {
	if surface == nil {
		return nil, &RenderError{Stage: "creating rasterizer", Err: fmt.Errorf("surface required")}
	}
	if config.Background == nil {
		config.Background = color.Black
	}
	if config.Font == nil {
		config.Font = goregular.TTF
	}

	parsedFont, err := freetype.ParseFont(config.Font)
	if err != nil {
		return nil, &RenderError{Stage: "parsing font", Err: err}
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetHinting(config.Hinting)

	bounds := surface.Bounds()
	return &Rasterizer{
		surface: surface,
		config:  config,
		font:    parsedFont,
		context: ctx,
		faces:   make(map[fixed.Int26_6]font.Face),
		raster:  vector.NewRasterizer(bounds.Dx(), bounds.Dy()),
	}, nil
}

// Render draws the tree rooted at root and returns a new image.
func (r *Rasterizer) Render(root *scene.Node, cam *scene.OrthographicCamera) (*image.RGBA, error) {
	if root == nil || cam == nil {
		return nil, &RenderError{Stage: "rendering frame", Err: fmt.Errorf("scene and camera required")}
	}

	bounds := r.surface.Bounds()
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(r.config.Background), image.Point{}, draw.Src)

	r.context.SetClip(bounds)
	r.context.SetDst(img)

	proj := cam.Projection(bounds.Dx(), bounds.Dy())
	err := root.Walk(func(n *scene.Node, world scene.Affine) error {
		m := proj.Mul(world)

		var err error
		switch d := n.Drawable.(type) {
		case nil:
		case *scene.Segments:
			r.drawSegments(img, m, d)
		case *scene.Plane:
			r.drawPlane(img, m, d)
		case *scene.Text:
			err = r.drawText(m, d)
		default:
			err = fmt.Errorf("unsupported drawable %T", d)
		}
		if err != nil {
			return fmt.Errorf("drawing node '%s': %w", n.Name, err)
		}
		return nil
	})
	if err != nil {
		return nil, &RenderError{Stage: "rendering frame", Err: err}
	}

	return img, nil
}

// Close releases the cached font faces.
func (r *Rasterizer) Close() error {
	var err error
	for size, face := range r.faces {
		if cErr := face.Close(); cErr != nil && err == nil {
			err = cErr
		}
		delete(r.faces, size)
	}
	return err
}

func (r *Rasterizer) drawSegments(img *image.RGBA, m scene.Affine, s *scene.Segments) {
	half := s.Thickness * r.surface.PixelRatio / 2
	if half <= 0 {
		half = 0.5
	}

	for _, pair := range s.Pairs {
		a, b := m.Apply(pair[0]), m.Apply(pair[1])
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}

		// Offset both ends along the segment normal to get a quad
		nx, ny := -dy/length*half, dx/length*half
		r.fill(img, s.Color,
			scene.Vec2{X: a.X + nx, Y: a.Y + ny},
			scene.Vec2{X: b.X + nx, Y: b.Y + ny},
			scene.Vec2{X: b.X - nx, Y: b.Y - ny},
			scene.Vec2{X: a.X - nx, Y: a.Y - ny},
		)
	}
}

func (r *Rasterizer) drawPlane(img *image.RGBA, m scene.Affine, p *scene.Plane) {
	w, h := p.Width/2, p.Height/2
	r.fill(img, p.Color,
		m.Apply(scene.Vec2{X: -w, Y: -h}),
		m.Apply(scene.Vec2{X: w, Y: -h}),
		m.Apply(scene.Vec2{X: w, Y: h}),
		m.Apply(scene.Vec2{X: -w, Y: h}),
	)
}

func (r *Rasterizer) fill(img *image.RGBA, c color.Color, points ...scene.Vec2) {
	bounds := img.Bounds()
	r.raster.Reset(bounds.Dx(), bounds.Dy())
	r.raster.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		r.raster.LineTo(float32(p.X), float32(p.Y))
	}
	r.raster.ClosePath()
	r.raster.Draw(img, bounds, image.NewUniform(c), image.Point{})
}

// drawText places the text anchor at the node origin. Glyphs are always drawn
// upright; node rotation only moves the anchor.
func (r *Rasterizer) drawText(m scene.Affine, t *scene.Text) error {
	if t.Content == "" {
		return nil
	}

	size := t.FontSize * m.ScaleFactor()
	face := r.face(size)

	r.context.SetFontSize(size)
	r.context.SetSrc(image.NewUniform(t.Color))

	origin := m.Apply(scene.Vec2{})
	metrics := face.Metrics()
	ascent := fromFixed(metrics.Ascent)
	descent := fromFixed(metrics.Descent)

	var x, y float64
	switch t.Anchor {
	case scene.AnchorTopLeft:
		x, y = origin.X, origin.Y+ascent
	default:
		width := fromFixed(font.MeasureString(face, t.Content))
		x, y = origin.X-width/2, origin.Y+(ascent-descent)/2
	}

	if _, err := r.context.DrawString(t.Content, fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}); err != nil {
		return fmt.Errorf("drawing text: %w", err)
	}
	return nil
}

func (r *Rasterizer) face(size float64) font.Face {
	key := toFixed(size)
	if face, ok := r.faces[key]; ok {
		return face
	}

	face := truetype.NewFace(r.font, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: r.config.Hinting,
	})
	r.faces[key] = face
	return face
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
