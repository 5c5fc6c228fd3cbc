// Package sim is the deterministic per-frame simulation runtime: pure
// functions over a small CharacterState plus a pack.PackView. It holds no
// state of its own. It is not allocation-free: CheckHits returns a newly
// allocated []HitResult, CanCancelTo builds temporary tag lists and tag
// sets on every call, and string-table lookups (tags, resource names)
// copy their bytes into new strings.
package sim

import (
	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/pack"
)

// CharacterState is the fixed-size, Copy-semantics runtime state of one
// actor. The zero value is a valid "just spawned into state 0" state.
type CharacterState struct {
	CurrentState     uint16
	Frame            uint8
	InstanceDuration uint8 // 0 means "use the state record's Total"
	HitConfirmed     bool
	BlockConfirmed   bool
	Resources        [format.MaxResources]uint16
}

// Vec2 is a world-space position or displacement in pixels.
type Vec2 struct {
	X, Y float64
}

// Actor bundles one side of a two-actor query: its state, the pack its
// state indexes into, and its world position.
type Actor struct {
	State    CharacterState
	Pack     *pack.PackView
	Position Vec2
}

// FrameInput is the per-frame input to NextFrame. RequestedState is nil
// when the game isn't asking for a cancel this frame.
type FrameInput struct {
	RequestedState *uint16
}

// FrameResult is the outcome of advancing one frame.
type FrameResult struct {
	State     CharacterState
	MoveEnded bool
}

// NextFrame advances state by exactly one frame. It is a pure function:
// the same (state, pack, input) always yields the same result.
//
// If input.RequestedState is set and CanCancelTo allows the transition,
// the result is a fresh instance of the target state (frame 0, hit/block
// confirmation cleared, resource costs applied) and MoveEnded is false.
// Otherwise frame advances by 1 (saturating at 255) and MoveEnded reports
// whether frame has reached the state's effective duration. NextFrame
// never auto-transitions on MoveEnded; that decision belongs to the
// caller.
func NextFrame(state CharacterState, pv *pack.PackView, input FrameInput) FrameResult {
	if input.RequestedState != nil {
		target := *input.RequestedState
		if CanCancelTo(state, pv, target) {
			next := state
			next.CurrentState = target
			next.Frame = 0
			next.HitConfirmed = false
			next.BlockConfirmed = false
			next.InstanceDuration = 0
			ApplyResourceCosts(&next, pv, target)

			return FrameResult{State: next, MoveEnded: false}
		}
	}

	next := state
	next.Frame = format.AddFrame(next.Frame, 1)

	effective := next.InstanceDuration
	if effective == 0 {
		if rec, ok := pv.States().At(int(next.CurrentState)); ok {
			effective = saturateToUint8(rec.Total)
		}
	}

	return FrameResult{State: next, MoveEnded: next.Frame >= effective}
}

// ReportHit marks state as having landed a hit this instance, the
// game-invoked trigger CanCancelTo's hit-confirm gated rules check for.
// It is idempotent and has no effect once BlockConfirmed is already set
// for this instance; a single attack instance resolves to hit xor block.
func ReportHit(state *CharacterState) {
	if state.BlockConfirmed {
		return
	}
	state.HitConfirmed = true
}

// ReportBlock marks state as having been blocked this instance, the
// game-invoked trigger CanCancelTo's block-confirm gated rules check for.
// It is idempotent and has no effect once HitConfirmed is already set for
// this instance.
func ReportBlock(state *CharacterState) {
	if state.HitConfirmed {
		return
	}
	state.BlockConfirmed = true
}

func saturateToUint8(v uint16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
