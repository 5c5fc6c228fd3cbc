// Package encoder builds FSPK pack bytes from an in-memory, already
// resolved character description. It owns the string-interning table, the
// shared shape pool, and the parallel range tables that the decoder reads
// back via pack.PackView.
package encoder

import "github.com/fspk/fspk/format"

// ShapeDescription is an authoring-unit shape: positions and extents in
// pixels, angle in degrees. Encode converts positions (X, Y, X2, Y2) to
// Q12.4 via format.ToQ12_4 and the angle to Q8.8 via format.ToQ8_8; widths,
// heights and radii (W, H, R) are stored as whole pixels, rounded
// half-to-even via format.RoundToInt16, so their fractional part is lost.
type ShapeDescription struct {
	Kind format.ShapeKind

	X, Y   float64 // AABB/rect/circle center or corner; capsule first endpoint
	W, H   float64 // AABB/rect width/height (px)
	R      float64 // circle/capsule radius (px)
	Angle  float64 // rect angle (degrees)
	X2, Y2 float64 // capsule second endpoint
}

// WindowDescription is a timed hurt or push window: a frame range plus the
// shapes active during it.
type WindowDescription struct {
	StartFrame, EndFrame uint8
	Shapes               []ShapeDescription
}

// HitWindowDescription is a timed attack window.
type HitWindowDescription struct {
	StartFrame, EndFrame uint8
	Guard                uint8
	Damage, ChipDamage   uint16
	Hitstun, Blockstun   uint16
	Hitstop              uint8
	HitPushback          float64 // px
	BlockPushback        float64 // px
	Shapes               []ShapeDescription
}

// ResourceAmount names a resource pool and an amount, used for a per-state
// cost.
type ResourceAmount struct {
	Name   string
	Amount uint16
}

// ResourceRange names a resource pool and an inclusive [Min, Max] range,
// used for per-state preconditions.
type ResourceRange struct {
	Name     string
	Min, Max uint16
}

// StateDescription is one authored state (formerly "move"). StateID is
// assigned by Encode according to canonical ordering, not by the caller.
type StateDescription struct {
	Name string // authoring key; also the canonical sort key

	MeshKey, KeyframesKey string // asset keys; empty means "none"

	MoveType, Trigger, Guard uint8
	CancelFlags              uint8
	Startup, Active, Recovery uint8
	Total                     uint16
	Damage                    uint16
	Hitstun, Blockstun, Hitstop uint8

	Tags []string

	HitWindows  []HitWindowDescription
	HurtWindows []WindowDescription
	PushWindows []WindowDescription

	ResourceCosts          []ResourceAmount
	ResourcePreconditions  []ResourceRange
}

// CancelTagRuleDescription is a global cancel-eligibility rule. FromTag and
// ToTag are tag names; use the sentinel value "*" for "any".
type CancelTagRuleDescription struct {
	FromTag, ToTag           string
	OnHit, OnBlock, OnWhiff  bool
	AfterFrame, BeforeFrame  uint8
	Flags                    uint8
}

// CancelDenyDescription is an explicit from-state/to-state deny, overriding
// any tag rule that would otherwise allow the transition.
type CancelDenyDescription struct {
	FromState, ToState string
}

// ResourceDefDescription is a named resource pool with its starting and
// maximum values.
type ResourceDefDescription struct {
	Name         string
	Start, Max   uint16
}

// AnyTag is the sentinel tag name meaning "matches any tag", mirrored to
// the wire's AnyTagOffset sentinel by Encode.
const AnyTag = "*"

// CharacterDescription is the full resolved input to Encode: a character's
// states, global cancel table, resource pools, and properties. The caller
// is responsible for producing a description that is already validated and
// canonicalized in every sense except state ordering, which Encode fixes
// itself from Name.
type CharacterDescription struct {
	States []StateDescription

	CancelTagRules []CancelTagRuleDescription
	CancelDenies   []CancelDenyDescription

	ResourceDefs []ResourceDefDescription

	// Properties maps a property key to its Q24.8-encoded value, in
	// authored (not yet fixed-point) units.
	Properties map[string]float64
}
