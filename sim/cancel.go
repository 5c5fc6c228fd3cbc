package sim

import (
	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/pack"
)

// CanCancelTo reports whether state may transition to target this frame.
//
// Priority order: an explicit CANCEL_DENIES entry unconditionally wins;
// otherwise CANCEL_TAG_RULES are evaluated in pack order (the encoder's
// authoring order) and the first matching rule allows the cancel; absent
// a match, the cancel is denied.
//
// A target at or beyond the pack's state count is an action cancel
// (jump/dash and similar non-state-table targets): it bypasses rules and
// denies entirely and is gated solely by whether the source state's
// cancel-flags byte carries any cancel bit.
func CanCancelTo(state CharacterState, pv *pack.PackView, target uint16) bool {
	states := pv.States()

	if int(target) >= states.Len() {
		rec, ok := states.At(int(state.CurrentState))
		if !ok {
			return false
		}
		return rec.Flags != 0
	}

	denies := pv.CancelDenies()
	for i := 0; i < denies.Len(); i++ {
		d, ok := denies.At(i)
		if ok && d.FromIdx == state.CurrentState && d.ToIdx == target {
			return false
		}
	}

	whiff := !state.HitConfirmed && !state.BlockConfirmed
	fromTags := tagSet(pv.Tags(int(state.CurrentState)))
	toTags := tagSet(pv.Tags(int(target)))

	rules := pv.CancelTagRules()
	for i := 0; i < rules.Len(); i++ {
		rule, ok := rules.At(i)
		if !ok {
			continue
		}
		if !tagMatches(pv, rule.FromTag, fromTags) {
			continue
		}
		if !tagMatches(pv, rule.ToTag, toTags) {
			continue
		}
		if !conditionMatches(rule.Condition, state.HitConfirmed, state.BlockConfirmed, whiff) {
			continue
		}
		if state.Frame < rule.AfterFrame || state.Frame > rule.BeforeFrame {
			continue
		}
		if !CheckResourcePreconditions(state, pv, target) {
			continue
		}

		return true
	}

	return false
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func tagMatches(pv *pack.PackView, ref pack.StrRef, set map[string]struct{}) bool {
	if ref.Off == format.AnyTagOffset {
		return true
	}
	s, ok := pv.String(ref)
	if !ok {
		return false
	}
	_, found := set[s]
	return found
}

func conditionMatches(cond uint8, hit, block, whiff bool) bool {
	if hit && cond&format.ConditionHit != 0 {
		return true
	}
	if block && cond&format.ConditionBlock != 0 {
		return true
	}
	if whiff && cond&format.ConditionWhiff != 0 {
		return true
	}
	return false
}
