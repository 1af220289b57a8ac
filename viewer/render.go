package viewer

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/swarm"
)

const (
	// spriteSize is the edge of the soft particle texture in pixels.
	spriteSize = 32
	// pointScale converts world size over view depth into pixels.
	pointScale = 300.0
	// particleOpacity is the alpha every particle is drawn with.
	particleOpacity = 0.8
	// minPointPx keeps distant particles visible.
	minPointPx = 1.0
)

var particleTexture *ebiten.Image

// ensureParticleTexture lazily builds a radial falloff sprite.
func ensureParticleTexture() *ebiten.Image {
	if particleTexture != nil {
		return particleTexture
	}
	particleTexture = ebiten.NewImage(spriteSize, spriteSize)
	particleTexture.WritePixels(radialFalloff(spriteSize))
	return particleTexture
}

// radialFalloff returns premultiplied RGBA pixels for a white disc whose
// alpha fades quadratically from the center to the edge.
func radialFalloff(size int) []byte {
	pix := make([]byte, 4*size*size)
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - c) / c
			dy := (float64(y) + 0.5 - c) / c
			a := 1 - math.Min(1, math.Hypot(dx, dy))
			a *= a
			v := uint8(a*255 + 0.5)
			i := 4 * (y*size + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, v
		}
	}
	return pix
}

// particleBatch turns a frame into textured quads drawn with one
// DrawTriangles32 call.
type particleBatch struct {
	verts []ebiten.Vertex
	inds  []uint32
}

// build projects every particle and appends one camera-facing quad per
// visible particle. Blending is additive, so quads are left unsorted.
func (b *particleBatch) build(f *swarm.Frame, cam *Camera) {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	mvp := cam.ViewProjection(f.Rotation)

	const s = float32(spriteSize)
	for i, p := range f.Positions {
		x, y, depth, ok := cam.Project(mvp, p)
		if !ok {
			continue
		}
		half := math.Max(minPointPx, f.Sizes[i]*pointScale/depth) / 2

		c := f.Colors[i]
		ca := float32(particleOpacity)
		cr := float32(c.R) * ca
		cg := float32(c.G) * ca
		cb := float32(c.B) * ca

		x0, y0 := float32(x-half), float32(y-half)
		x1, y1 := float32(x+half), float32(y+half)
		base := uint32(len(b.verts))
		b.verts = append(b.verts,
			ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			ebiten.Vertex{DstX: x1, DstY: y0, SrcX: s, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			ebiten.Vertex{DstX: x0, DstY: y1, SrcX: 0, SrcY: s, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			ebiten.Vertex{DstX: x1, DstY: y1, SrcX: s, SrcY: s, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		)
		b.inds = append(b.inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
}

// draw submits the built quads to dst with additive blending.
func (b *particleBatch) draw(dst *ebiten.Image) {
	if len(b.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = ebiten.BlendLighter
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.Filter = ebiten.FilterLinear
	dst.DrawTriangles32(b.verts, b.inds, ensureParticleTexture(), &op)
}
