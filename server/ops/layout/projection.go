package layout

import (
	"math"

	"github.com/luno/topodash/api/render"
)

type LngLat struct {
	Lng float64
	Lat float64
}

// Mercator is a rotated spherical mercator projection onto the renderer's
// view box. It matches d3.geo.mercator with center, scale, rotate and
// translate applied.
type Mercator struct {
	scale  float64
	rotate float64
	dx, dy float64
}

func NewMercator(center LngLat, scale, rotate float64, translate render.Point) Mercator {
	m := Mercator{
		scale:  scale,
		rotate: rotate * math.Pi / 180,
	}
	cx, cy := mercator(radians(center.Lng), radians(center.Lat))
	m.dx = translate.X - cx*scale
	m.dy = translate.Y + cy*scale
	return m
}

func (m Mercator) Project(p LngLat) render.Point {
	x, y := mercator(wrap(radians(p.Lng)+m.rotate), radians(p.Lat))
	return render.Point{
		X: x*m.scale + m.dx,
		Y: m.dy - y*m.scale,
	}
}

func (m Mercator) Invert(p render.Point) LngLat {
	λ, φ := mercatorInvert((p.X-m.dx)/m.scale, (m.dy-p.Y)/m.scale)
	return LngLat{
		Lng: degrees(wrap(λ - m.rotate)),
		Lat: degrees(φ),
	}
}

func mercator(λ, φ float64) (float64, float64) {
	return λ, math.Log(math.Tan(math.Pi/4 + φ/2))
}

func mercatorInvert(x, y float64) (float64, float64) {
	return x, 2*math.Atan(math.Exp(y)) - math.Pi/2
}

func wrap(λ float64) float64 {
	if λ > math.Pi {
		return λ - 2*math.Pi
	}
	if λ < -math.Pi {
		return λ + 2*math.Pi
	}
	return λ
}

func radians(d float64) float64 {
	return d * math.Pi / 180
}

func degrees(r float64) float64 {
	return r * 180 / math.Pi
}
