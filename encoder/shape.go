package encoder

import (
	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/pack"
)

// toShape converts an authoring-unit ShapeDescription to its wire Shape,
// rounding every field to its fixed-point form.
func (s ShapeDescription) toShape() pack.Shape {
	switch s.Kind {
	case format.ShapeRotatedRect:
		return pack.Shape{
			Kind: s.Kind,
			S0:   format.ToQ12_4(s.X),
			S1:   format.ToQ12_4(s.Y),
			S2:   format.RoundToInt16(s.W),
			S3:   format.RoundToInt16(s.H),
			S4:   format.ToQ8_8(s.Angle),
		}
	case format.ShapeCircle:
		return pack.Shape{
			Kind: s.Kind,
			S0:   format.ToQ12_4(s.X),
			S1:   format.ToQ12_4(s.Y),
			S2:   format.RoundToInt16(s.R),
		}
	case format.ShapeCapsule:
		return pack.Shape{
			Kind: s.Kind,
			S0:   format.ToQ12_4(s.X),
			S1:   format.ToQ12_4(s.Y),
			S2:   format.ToQ12_4(s.X2),
			S3:   format.ToQ12_4(s.Y2),
			S4:   format.RoundToInt16(s.R),
		}
	default: // format.ShapeAABB
		return pack.Shape{
			Kind: format.ShapeAABB,
			S0:   format.ToQ12_4(s.X),
			S1:   format.ToQ12_4(s.Y),
			S2:   format.RoundToInt16(s.W),
			S3:   format.RoundToInt16(s.H),
		}
	}
}

func toShapes(descs []ShapeDescription) []pack.Shape {
	out := make([]pack.Shape, len(descs))
	for i, d := range descs {
		out[i] = d.toShape()
	}

	return out
}
