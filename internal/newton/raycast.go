package newton

import (
	"sort"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RayFilter receives every body a world ray hits, in increasing ray
// parameter order. The returned value clips the ray: hits beyond it are
// discarded, and returning 0 stops the cast.
type RayFilter func(b *Body, normal rl.Vector3, t float32) float32

type rayHit struct {
	body   *Body
	normal rl.Vector3
	t      float32
}

// RayCast shoots a segment from p0 to p1 through the world and reports every
// intersected body through filter.
func (w *World) RayCast(p0, p1 rl.Vector3, filter RayFilter) {
	if filter == nil {
		return
	}
	dir := rl.Vector3Subtract(p1, p0)

	var hits []rayHit
	for _, b := range w.bodies {
		if t, n, ok := rayBody(b, p0, dir); ok {
			hits = append(hits, rayHit{body: b, normal: n, t: t})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].t < hits[j].t })

	maxT := float32(1)
	for _, h := range hits {
		if h.t > maxT {
			break
		}
		clip := filter(h.body, h.normal, h.t)
		if clip <= 0 {
			return
		}
		if clip < maxT {
			maxT = clip
		}
	}
}

// rayBody intersects a world ray with one body. Spheres get the analytic
// test; everything else uses the slab test against the shape's local bounds.
func rayBody(b *Body, origin, dir rl.Vector3) (float32, rl.Vector3, bool) {
	if b.shape.kind == ShapeSphere {
		return raySphere(origin, dir, sphereCenter(b.shape, b.matrix), b.shape.radius)
	}

	// move the ray into body-local space
	inv := rl.MatrixInvert(b.matrix)
	localOrigin := rl.Vector3Transform(origin, inv)
	localDir := rotateOnly(inv, dir)

	box := b.shape.LocalAABB()
	t, localNormal, ok := raySlabs(localOrigin, localDir, box)
	if !ok {
		return 0, rl.Vector3{}, false
	}
	return t, rotateOnly(b.matrix, localNormal), true
}

func raySphere(origin, dir, center rl.Vector3, radius float32) (float32, rl.Vector3, bool) {
	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(dir, dir)
	if a == 0 {
		return 0, rl.Vector3{}, false
	}
	bq := 2 * rl.Vector3DotProduct(oc, dir)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := bq*bq - 4*a*c
	if discriminant < 0 {
		return 0, rl.Vector3{}, false
	}

	sq := math32.Sqrt(discriminant)
	t := (-bq - sq) / (2 * a)
	if t < 0 {
		t = (-bq + sq) / (2 * a)
	}
	if t < 0 || t > 1 {
		return 0, rl.Vector3{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))
	return t, normal, true
}

// raySlabs clips a parametric ray (t in [0,1]) against an AABB and returns
// the entry parameter and face normal.
func raySlabs(origin, dir rl.Vector3, box AABB) (float32, rl.Vector3, bool) {
	tmin := float32(0)
	tmax := float32(1)
	normal := rl.Vector3{}

	for axis := 0; axis < 3; axis++ {
		o := axisValue(origin, axis)
		d := axisValue(dir, axis)
		lo := axisValue(box.Min, axis)
		hi := axisValue(box.Max, axis)

		if math32.Abs(d) < 1e-8 {
			if o < lo || o > hi {
				return 0, rl.Vector3{}, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			normal = rl.Vector3{}
			switch axis {
			case 0:
				normal.X = sign
			case 1:
				normal.Y = sign
			default:
				normal.Z = sign
			}
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, rl.Vector3{}, false
		}
	}

	if normal == (rl.Vector3{}) {
		// ray started inside the box
		normal = rl.Vector3Normalize(rl.Vector3Negate(dir))
	}
	return tmin, normal, true
}
