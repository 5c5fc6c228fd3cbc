package sim

import "github.com/fspk/fspk/pack"

// Resource returns the resource value at index i, or 0 if i is out of
// range.
func Resource(state CharacterState, i int) uint16 {
	if i < 0 || i >= len(state.Resources) {
		return 0
	}
	return state.Resources[i]
}

// SetResource sets the resource value at index i. Out-of-range indices
// are a no-op.
func SetResource(state *CharacterState, i int, v uint16) {
	if i < 0 || i >= len(state.Resources) {
		return
	}
	state.Resources[i] = v
}

// InitResources zeroes every resource slot, then copies each RESOURCE_DEFS
// entry's Start value into the matching slot by position.
func InitResources(state *CharacterState, pv *pack.PackView) {
	for i := range state.Resources {
		state.Resources[i] = 0
	}

	defs := pv.ResourceDefs()
	n := defs.Len()
	if n > len(state.Resources) {
		n = len(state.Resources)
	}
	for i := 0; i < n; i++ {
		if d, ok := defs.At(i); ok {
			state.Resources[i] = d.Start
		}
	}
}

// resourceIndex finds the RESOURCE_DEFS position of the resource named by
// the given StrRef, by string comparison against every def's name.
func resourceIndex(pv *pack.PackView, defs pack.ResourceDefsView, name pack.StrRef) (int, bool) {
	wantStr, ok := pv.String(name)
	if !ok {
		return 0, false
	}

	for i := 0; i < defs.Len(); i++ {
		d, ok := defs.At(i)
		if !ok {
			continue
		}
		if s, ok := pv.String(d.Name); ok && s == wantStr {
			return i, true
		}
	}

	return 0, false
}

// CheckResourcePreconditions reports whether every resource precondition
// linked by target's STATE_EXTRAS is satisfied by state's current resource
// values. A precondition naming a resource absent from RESOURCE_DEFS
// fails. A target with no linked preconditions (or no STATE_EXTRAS section
// at all) passes vacuously.
func CheckResourcePreconditions(state CharacterState, pv *pack.PackView, target uint16) bool {
	extra, ok := pv.StateExtras().At(int(target))
	if !ok {
		return true
	}

	defs := pv.ResourceDefs()
	precond := pv.ResourcePreconditions()

	for i := 0; i < int(extra.ResourcePreconditionsLen); i++ {
		p, ok := precond.At(int(extra.ResourcePreconditionsOff) + i)
		if !ok {
			return false
		}

		idx, found := resourceIndex(pv, defs, p.Name)
		if !found {
			return false
		}

		val := Resource(state, idx)
		if val < p.Lo || val > p.Hi {
			return false
		}
	}

	return true
}

// ApplyResourceCosts debits every resource cost linked by target's
// STATE_EXTRAS from state in place, saturating at 0. It returns whether
// every cost was fully paid; the caller's cancel gate has already checked
// preconditions, so this return value is informational.
func ApplyResourceCosts(state *CharacterState, pv *pack.PackView, target uint16) bool {
	extra, ok := pv.StateExtras().At(int(target))
	if !ok {
		return true
	}

	defs := pv.ResourceDefs()
	costs := pv.ResourceCosts()
	fullyPaid := true

	for i := 0; i < int(extra.ResourceCostsLen); i++ {
		c, ok := costs.At(int(extra.ResourceCostsOff) + i)
		if !ok {
			continue
		}

		idx, found := resourceIndex(pv, defs, c.Name)
		if !found {
			fullyPaid = false
			continue
		}

		cur := Resource(*state, idx)
		if c.Lo > cur {
			fullyPaid = false
			SetResource(state, idx, 0)
			continue
		}
		SetResource(state, idx, cur-c.Lo)
	}

	return fullyPaid
}
