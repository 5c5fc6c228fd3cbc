package sim

import (
	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/pack"
)

type aabb struct {
	minX, minY, maxX, maxY float64
}

func worldAABB(s pack.Shape, pos Vec2) aabb {
	cx := pos.X + format.FromQ12_4(s.S0)
	cy := pos.Y + format.FromQ12_4(s.S1)
	hw := float64(s.S2) / 2
	hh := float64(s.S3) / 2

	return aabb{minX: cx - hw, minY: cy - hh, maxX: cx + hw, maxY: cy + hh}
}

func worldCircle(s pack.Shape, pos Vec2) (cx, cy, r float64) {
	return pos.X + format.FromQ12_4(s.S0), pos.Y + format.FromQ12_4(s.S1), float64(s.S2)
}

func worldCapsule(s pack.Shape, pos Vec2) (p1, p2 Vec2, r float64) {
	p1 = Vec2{X: pos.X + format.FromQ12_4(s.S0), Y: pos.Y + format.FromQ12_4(s.S1)}
	p2 = Vec2{X: pos.X + format.FromQ12_4(s.S2), Y: pos.Y + format.FromQ12_4(s.S3)}
	return p1, p2, float64(s.S4)
}

// overlapAABB is a strict AABB-AABB overlap test: edge-touching boxes do
// not overlap.
func overlapAABB(a, b aabb) bool {
	return a.minX < b.maxX && a.maxX > b.minX && a.minY < b.maxY && a.maxY > b.minY
}

func overlapCircleCircle(ax, ay, ar, bx, by, br float64) bool {
	dx, dy := ax-bx, ay-by
	rsum := ar + br
	return dx*dx+dy*dy < rsum*rsum
}

func clampF(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

func overlapAABBCircle(box aabb, cx, cy, cr float64) bool {
	px := clampF(cx, box.minX, box.maxX)
	py := clampF(cy, box.minY, box.maxY)
	dx, dy := cx-px, cy-py
	return dx*dx+dy*dy < cr*cr
}

// closestDistSqSegments returns the squared distance between the closest
// points of segments p1-q1 and p2-q2 (Ericson, Real-Time Collision
// Detection, 5.1.9).
func closestDistSqSegments(p1, q1, p2, q2 Vec2) float64 {
	const epsilon = 1e-9

	d1 := Vec2{q1.X - p1.X, q1.Y - p1.Y}
	d2 := Vec2{q2.X - p2.X, q2.Y - p2.Y}
	r := Vec2{p1.X - p2.X, p1.Y - p2.Y}

	a := dot(d1, d1)
	e := dot(d2, d2)
	f := dot(d2, r)

	var s, t float64

	switch {
	case a <= epsilon && e <= epsilon:
		s, t = 0, 0
	case a <= epsilon:
		s = 0
		t = clampF(f/e, 0, 1)
	default:
		c := dot(d1, r)
		if e <= epsilon {
			t = 0
			s = clampF(-c/a, 0, 1)
		} else {
			b := dot(d1, d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clampF((b*f-c*e)/denom, 0, 1)
			} else {
				s = 0
			}
			t = (b*s + f) / e
			switch {
			case t < 0:
				t = 0
				s = clampF(-c/a, 0, 1)
			case t > 1:
				t = 1
				s = clampF((b-c)/a, 0, 1)
			}
		}
	}

	c1 := Vec2{p1.X + d1.X*s, p1.Y + d1.Y*s}
	c2 := Vec2{p2.X + d2.X*t, p2.Y + d2.Y*t}
	dx, dy := c1.X-c2.X, c1.Y-c2.Y

	return dx*dx + dy*dy
}

func dot(a, b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// shapesOverlap tests overlap between two world-positioned shapes,
// following spec's per-pair rules: AABB-AABB is strict (edge-touching is
// not overlap); circle-circle and AABB-circle use squared-distance tests;
// capsule-capsule uses nearest-point segment distance. Rotated rectangles
// are unsupported and always return false, as are any other shape-kind
// combination the format doesn't define a test for (e.g. capsule-AABB) —
// callers that need mixed hit/hurt shape kinds beyond the defined pairs
// must author matching kinds instead.
func shapesOverlap(a pack.Shape, posA Vec2, b pack.Shape, posB Vec2) bool {
	if a.Kind == format.ShapeRotatedRect || b.Kind == format.ShapeRotatedRect {
		return false
	}

	switch {
	case a.Kind == format.ShapeAABB && b.Kind == format.ShapeAABB:
		return overlapAABB(worldAABB(a, posA), worldAABB(b, posB))

	case a.Kind == format.ShapeCircle && b.Kind == format.ShapeCircle:
		ax, ay, ar := worldCircle(a, posA)
		bx, by, br := worldCircle(b, posB)
		return overlapCircleCircle(ax, ay, ar, bx, by, br)

	case a.Kind == format.ShapeAABB && b.Kind == format.ShapeCircle:
		cx, cy, cr := worldCircle(b, posB)
		return overlapAABBCircle(worldAABB(a, posA), cx, cy, cr)

	case a.Kind == format.ShapeCircle && b.Kind == format.ShapeAABB:
		cx, cy, cr := worldCircle(a, posA)
		return overlapAABBCircle(worldAABB(b, posB), cx, cy, cr)

	case a.Kind == format.ShapeCapsule && b.Kind == format.ShapeCapsule:
		a1, a2, ar := worldCapsule(a, posA)
		b1, b2, br := worldCapsule(b, posB)
		rsum := ar + br
		return closestDistSqSegments(a1, a2, b1, b2) < rsum*rsum

	default:
		return false
	}
}
