package sim

import (
	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/pack"
)

// maxHits is the fixed capacity of a CheckHits result; simultaneous hits
// beyond this count are dropped silently.
const maxHits = 8

// HitResult describes one resolved hit: attacker-side window data plus
// the attacker and window it came from.
type HitResult struct {
	AttackerState   uint16
	WindowIndex     int
	Damage          uint16
	ChipDamage      uint16
	Hitstun         uint16
	Blockstun       uint16
	Hitstop         uint8
	Guard           uint8
	HitPushbackPx   float64
	BlockPushbackPx float64
}

// CheckHits resolves collisions between attacker's active hit windows and
// defender's active hurt windows at their current frames. For each active
// hit window, it tests every active hurt window's shapes against the hit
// window's shapes in order, stops at the first overlap, and emits one
// HitResult; a hit window with no overlapping hurtbox produces nothing.
// Results are emitted in hit-window order, capped at 8; additional hits
// beyond that are dropped silently.
func CheckHits(attacker, defender Actor) []HitResult {
	attackerRec, ok := attacker.Pack.States().At(int(attacker.State.CurrentState))
	if !ok {
		return nil
	}
	defenderRec, ok := defender.Pack.States().At(int(defender.State.CurrentState))
	if !ok {
		return nil
	}

	hitWindows := attacker.Pack.HitWindows()
	hurtWindows := defender.Pack.HurtWindows()
	attackerShapes := attacker.Pack.Shapes()
	defenderShapes := defender.Pack.Shapes()

	var results []HitResult

	for i := 0; i < int(attackerRec.HitWindowsLen) && len(results) < maxHits; i++ {
		hw, ok := hitWindows.At(int(attackerRec.HitWindowsOff) + i)
		if !ok || !hw.Active(attacker.State.Frame) {
			continue
		}

		if !anyHurtboxOverlaps(hw, attacker, attackerShapes, defenderRec, defender, hurtWindows, defenderShapes) {
			continue
		}

		results = append(results, HitResult{
			AttackerState:   attacker.State.CurrentState,
			WindowIndex:     i,
			Damage:          hw.Damage,
			ChipDamage:      hw.ChipDamage,
			Hitstun:         hw.Hitstun,
			Blockstun:       hw.Blockstun,
			Hitstop:         hw.Hitstop,
			Guard:           hw.Guard,
			HitPushbackPx:   format.FromQ12_4(hw.HitPushback),
			BlockPushbackPx: format.FromQ12_4(hw.BlockPushback),
		})
	}

	return results
}

// anyHurtboxOverlaps tests hw's shapes against every active hurt window
// on the defender side, stopping at the first shape-pair overlap.
func anyHurtboxOverlaps(
	hw pack.HitWindow, attacker Actor, attackerShapes pack.ShapesView,
	defenderRec pack.StateRecord, defender Actor, hurtWindows pack.HurtWindowsView, defenderShapes pack.ShapesView,
) bool {
	for j := 0; j < int(defenderRec.HurtWindowsLen); j++ {
		hurt, ok := hurtWindows.At(int(defenderRec.HurtWindowsOff) + j)
		if !ok || !hurt.Active(defender.State.Frame) {
			continue
		}

		for a := 0; a < int(hw.ShapesLen); a++ {
			shapeA, ok := attackerShapes.At(int(hw.ShapesOff) + a)
			if !ok {
				continue
			}

			for b := 0; b < int(hurt.ShapesLen); b++ {
				shapeB, ok := defenderShapes.At(int(hurt.ShapesOff) + b)
				if !ok {
					continue
				}
				if shapesOverlap(shapeA, attacker.Position, shapeB, defender.Position) {
					return true
				}
			}
		}
	}

	return false
}
