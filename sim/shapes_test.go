package sim

import (
	"testing"

	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/pack"
	"github.com/stretchr/testify/require"
)

func aabbShape(x, y, w, h float64) pack.Shape {
	return pack.Shape{Kind: format.ShapeAABB, S0: format.ToQ12_4(x), S1: format.ToQ12_4(y), S2: int16(w), S3: int16(h)}
}

func circleShape(x, y, r float64) pack.Shape {
	return pack.Shape{Kind: format.ShapeCircle, S0: format.ToQ12_4(x), S1: format.ToQ12_4(y), S2: int16(r)}
}

func capsuleShape(x1, y1, x2, y2, r float64) pack.Shape {
	return pack.Shape{
		Kind: format.ShapeCapsule,
		S0:   format.ToQ12_4(x1), S1: format.ToQ12_4(y1),
		S2: format.ToQ12_4(x2), S3: format.ToQ12_4(y2),
		S4: int16(r),
	}
}

func TestShapesOverlap_AABBEdgeTouchIsNotOverlap(t *testing.T) {
	a := aabbShape(0, 0, 10, 10) // [-5,5]x[-5,5]
	b := aabbShape(10, 0, 10, 10) // [5,15]x[-5,5]; touches a at x=5

	require.False(t, shapesOverlap(a, Vec2{}, b, Vec2{}))
}

func TestShapesOverlap_AABBOverlapping(t *testing.T) {
	a := aabbShape(0, 0, 10, 10)
	b := aabbShape(9, 0, 10, 10)

	require.True(t, shapesOverlap(a, Vec2{}, b, Vec2{}))
}

func TestShapesOverlap_CircleCircle(t *testing.T) {
	a := circleShape(0, 0, 5)
	b := circleShape(9, 0, 5) // distance 9 < sum radius 10

	require.True(t, shapesOverlap(a, Vec2{}, b, Vec2{}))

	c := circleShape(11, 0, 5) // distance 11 > 10

	require.False(t, shapesOverlap(a, Vec2{}, c, Vec2{}))
}

func TestShapesOverlap_AABBCircle(t *testing.T) {
	box := aabbShape(0, 0, 10, 10) // [-5,5]^2
	near := circleShape(8, 0, 4)   // closest point (5,0), distance 3 < 4
	far := circleShape(20, 0, 4)

	require.True(t, shapesOverlap(box, Vec2{}, near, Vec2{}))
	require.False(t, shapesOverlap(box, Vec2{}, far, Vec2{}))
}

func TestShapesOverlap_CapsuleCapsule(t *testing.T) {
	a := capsuleShape(0, 0, 0, 10, 2)
	bNear := capsuleShape(3, 5, 3, 15, 2) // perpendicular distance 3 < radius sum 4
	bFar := capsuleShape(10, 5, 10, 15, 2)

	require.True(t, shapesOverlap(a, Vec2{}, bNear, Vec2{}))
	require.False(t, shapesOverlap(a, Vec2{}, bFar, Vec2{}))
}

func TestShapesOverlap_RotatedRectAlwaysFalse(t *testing.T) {
	rect := pack.Shape{Kind: format.ShapeRotatedRect, S2: 10, S3: 10}
	other := aabbShape(0, 0, 10, 10)

	require.False(t, shapesOverlap(rect, Vec2{}, other, Vec2{}))
	require.False(t, shapesOverlap(other, Vec2{}, rect, Vec2{}))
}

func TestShapesOverlap_WorldPositionOffsetApplies(t *testing.T) {
	a := aabbShape(0, 0, 10, 10)
	b := aabbShape(0, 0, 10, 10)

	require.True(t, shapesOverlap(a, Vec2{}, b, Vec2{X: 9}))
	require.False(t, shapesOverlap(a, Vec2{}, b, Vec2{X: 20}))
}
