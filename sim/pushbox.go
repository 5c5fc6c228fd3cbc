package sim

import "github.com/fspk/fspk/format"

// CheckPushbox tests whether a and b have overlapping active pushboxes.
// A pushbox is the AABB union of the shapes in an actor's active push
// window at its current frame; only ShapeAABB shapes contribute (a
// pushbox authored with other shape kinds is silently excluded from the
// union, as spec's pushbox resolution is AABB-only).
//
// On overlap, the returned Vec2 is the separation delta to add to a's
// position (and subtract from b's position) to resolve it along the
// horizontal axis only: the smaller of the two horizontal overlap
// directions, split evenly between the actors. Returns (Vec2{}, false)
// when either side has no active pushbox or the pushboxes don't overlap.
func CheckPushbox(a, b Actor) (Vec2, bool) {
	boxA, ok := activePushbox(a)
	if !ok {
		return Vec2{}, false
	}
	boxB, ok := activePushbox(b)
	if !ok {
		return Vec2{}, false
	}

	if !overlapAABB(boxA, boxB) {
		return Vec2{}, false
	}

	// leftOverlap is how far a must move left (relative to b) to clear b,
	// rightOverlap how far right; leftOverlap <= rightOverlap exactly when
	// a's center is left of (or tied with) b's.
	leftOverlap := boxA.maxX - boxB.minX
	rightOverlap := boxB.maxX - boxA.minX
	if leftOverlap <= rightOverlap {
		return Vec2{X: -leftOverlap / 2}, true
	}

	return Vec2{X: rightOverlap / 2}, true
}

// activePushbox finds actor's first active push window and returns the
// AABB union of its ShapeAABB shapes.
func activePushbox(actor Actor) (aabb, bool) {
	rec, ok := actor.Pack.States().At(int(actor.State.CurrentState))
	if !ok {
		return aabb{}, false
	}

	windows := actor.Pack.PushWindows()
	shapes := actor.Pack.Shapes()

	for i := 0; i < int(rec.PushWindowsLen); i++ {
		w, ok := windows.At(int(rec.PushWindowsOff) + i)
		if !ok || !w.Active(actor.State.Frame) {
			continue
		}

		var box aabb
		found := false
		for j := 0; j < int(w.ShapesLen); j++ {
			s, ok := shapes.At(int(w.ShapesOff) + j)
			if !ok || s.Kind != format.ShapeAABB {
				continue
			}

			sb := worldAABB(s, actor.Position)
			if !found {
				box, found = sb, true
				continue
			}
			box.minX, box.minY = minF(box.minX, sb.minX), minF(box.minY, sb.minY)
			box.maxX, box.maxY = maxF(box.maxX, sb.maxX), maxF(box.maxY, sb.maxY)
		}

		if found {
			return box, true
		}
	}

	return aabb{}, false
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
