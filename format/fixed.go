package format

import "math"

// Q12_4Scale, Q24_8Scale and Q8_8Scale are the fractional-bit scales of the
// three fixed-point formats used on the wire: Q12.4 for positions/sizes
// (unit = 1/16 px), Q24.8 for character property numbers, and Q8.8 for
// angles in rotated rectangles.
const (
	Q12_4Scale = 1 << 4
	Q24_8Scale = 1 << 8
	Q8_8Scale  = 1 << 8
)

// ToQ12_4 converts a float64 to a saturating, round-half-to-even Q12.4
// value stored in an int16.
func ToQ12_4(v float64) int16 {
	return roundToInt16(v * Q12_4Scale)
}

// FromQ12_4 converts a Q12.4 value back to float64.
func FromQ12_4(v int16) float64 {
	return float64(v) / Q12_4Scale
}

// ToQ24_8 converts a float64 to a saturating, round-half-to-even Q24.8
// value stored in an int32.
func ToQ24_8(v float64) int32 {
	return roundToInt32(v * Q24_8Scale)
}

// FromQ24_8 converts a Q24.8 value back to float64.
func FromQ24_8(v int32) float64 {
	return float64(v) / Q24_8Scale
}

// ToQ8_8 converts a float64 (degrees) to a saturating, round-half-to-even
// Q8.8 value stored in an int16.
func ToQ8_8(v float64) int16 {
	return roundToInt16(v * Q8_8Scale)
}

// FromQ8_8 converts a Q8.8 value back to float64 degrees.
func FromQ8_8(v int16) float64 {
	return float64(v) / Q8_8Scale
}

// roundToInt16 rounds half-to-even and saturates to the int16 range.
func roundToInt16(v float64) int16 {
	r := math.RoundToEven(v)
	switch {
	case r > math.MaxInt16:
		return math.MaxInt16
	case r < math.MinInt16:
		return math.MinInt16
	default:
		return int16(r)
	}
}

// RoundToInt16 rounds v half-to-even and saturates it to the int16 range,
// for wire fields stored as plain (unscaled) int16 rather than a Q12.4/
// Q8.8 fixed-point quantity, e.g. a shape's width/height/radius.
func RoundToInt16(v float64) int16 {
	return roundToInt16(v)
}

// roundToInt32 rounds half-to-even and saturates to the int32 range.
func roundToInt32(v float64) int32 {
	r := math.RoundToEven(v)
	switch {
	case r > math.MaxInt32:
		return math.MaxInt32
	case r < math.MinInt32:
		return math.MinInt32
	default:
		return int32(r)
	}
}

// AddFrame adds delta to frame, saturating at 255 (cross-state frame math
// saturates per the frame format's u8 range).
func AddFrame(frame uint8, delta int) uint8 {
	sum := int(frame) + delta
	switch {
	case sum > 255:
		return 255
	case sum < 0:
		return 0
	default:
		return uint8(sum)
	}
}
