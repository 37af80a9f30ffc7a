package render

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"marbles/internal/physics"
)

// baseShade is drawn under every marble before its colour gradient.
var baseShade = color.RGBA{200, 200, 200, 255}

// Span is one horizontal run of opaque pixels in a marble texture.
type Span struct {
	Y, X0, X1 int
	Color     color.RGBA
}

// Shade returns the rows of a (2r+1)x(2r+1) disk: a light grey base overlaid with
// the marble colour whose opacity grows from about 30% at the top to full at the
// bottom.
func Shade(radius int, c physics.Color) []Span {
	n := 2*radius + 1
	spans := make([]Span, 0, n)
	for i := 0; i < n; i++ {
		alpha := 256 - ((n-i)*180)/(n+1)
		if alpha > 255 {
			alpha = 255
		}
		dy := float32(i - radius)
		half := int(math32.Sqrt(float32(radius*radius) - dy*dy))
		spans = append(spans, Span{
			Y:     i,
			X0:    radius - half,
			X1:    radius + half,
			Color: blend(baseShade, c, uint8(alpha)),
		})
	}
	return spans
}

// blend draws c with the given alpha over an opaque base.
func blend(base color.RGBA, c physics.Color, alpha uint8) color.RGBA {
	a := float32(alpha) / 255
	mix := func(b, f uint8) uint8 {
		return uint8(math32.Round(float32(b)*(1-a) + float32(f)*a))
	}
	return color.RGBA{mix(base.R, c[0]), mix(base.G, c[1]), mix(base.B, c[2]), 255}
}

type key struct {
	radius int
	color  physics.Color
}

// Cache holds one texture per (radius, colour). Textures are created on first use,
// so the cache must only be used once the window/OpenGL context exists.
type Cache struct {
	textures map[key]rl.Texture2D
}

// NewCache returns an empty texture cache.
func NewCache() *Cache {
	return &Cache{textures: make(map[key]rl.Texture2D)}
}

// Get returns the texture for a marble of the given radius and colour.
func (c *Cache) Get(radius int, col physics.Color) (rl.Texture2D, error) {
	k := key{radius, col}
	if tex, ok := c.textures[k]; ok {
		return tex, nil
	}
	if radius < 0 {
		return rl.Texture2D{}, fmt.Errorf("render: negative radius %d", radius)
	}
	size := 2*radius + 1
	img := rl.GenImageColor(size, size, rl.Blank)
	for _, s := range Shade(radius, col) {
		rl.ImageDrawRectangle(img, int32(s.X0), int32(s.Y), int32(s.X1-s.X0+1), 1, s.Color)
	}
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if !rl.IsTextureValid(tex) {
		return rl.Texture2D{}, fmt.Errorf("render: cannot create texture for radius %d colour %v", radius, col)
	}
	c.textures[k] = tex
	return tex, nil
}

// Draw blits the marble centered on (x, y). It has the physics.DrawFunc signature
// so it can be passed to World.Draw.
func (c *Cache) Draw(x, y, radius int, col physics.Color) error {
	tex, err := c.Get(radius, col)
	if err != nil {
		return err
	}
	rl.DrawTexture(tex, int32(x-radius), int32(y-radius), rl.White)
	return nil
}

// Len returns the number of cached textures.
func (c *Cache) Len() int {
	return len(c.textures)
}

// Unload frees every cached texture.
func (c *Cache) Unload() {
	for k, tex := range c.textures {
		rl.UnloadTexture(tex)
		delete(c.textures, k)
	}
}

var _ physics.DrawFunc = (*Cache)(nil).Draw
