package encoder

import (
	"sort"

	"github.com/fspk/fspk/errs"
	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/pack"
)

// buildCancelTagRules resolves each rule's tag names to StrRefs (or the
// AnyTagOffset sentinel), in authored order — rule order is a fixed
// encoder policy because it determines first-match evaluation at runtime.
func (b *Builder) buildCancelTagRules(rules []CancelTagRuleDescription, knownTags map[string]struct{}, strs *stringTable) ([]pack.CancelTagRule, error) {
	out := make([]pack.CancelTagRule, 0, len(rules))

	resolve := func(tag string) (pack.StrRef, error) {
		if tag == AnyTag {
			return pack.StrRef{Off: format.AnyTagOffset}, nil
		}
		if b.cfg.strictTagRefs {
			if _, ok := knownTags[tag]; !ok {
				return pack.StrRef{}, errs.ErrUnknownTagReference
			}
		}

		return strs.intern(tag), nil
	}

	for _, r := range rules {
		fromRef, err := resolve(r.FromTag)
		if err != nil {
			return nil, err
		}
		toRef, err := resolve(r.ToTag)
		if err != nil {
			return nil, err
		}

		var cond uint8
		if r.OnHit {
			cond |= format.ConditionHit
		}
		if r.OnBlock {
			cond |= format.ConditionBlock
		}
		if r.OnWhiff {
			cond |= format.ConditionWhiff
		}

		out = append(out, pack.CancelTagRule{
			FromTag:     fromRef,
			ToTag:       toRef,
			Condition:   cond,
			AfterFrame:  r.AfterFrame,
			BeforeFrame: r.BeforeFrame,
			Flags:       r.Flags,
		})
	}

	return out, nil
}

// buildCancelDenies resolves each deny's state names to their canonical
// indices, in authored order.
func buildCancelDenies(denies []CancelDenyDescription, nameToIdx map[string]int) ([]pack.CancelDeny, error) {
	out := make([]pack.CancelDeny, 0, len(denies))

	for _, d := range denies {
		from, ok := nameToIdx[d.FromState]
		if !ok {
			return nil, errs.ErrUnknownStateReference
		}
		to, ok := nameToIdx[d.ToState]
		if !ok {
			return nil, errs.ErrUnknownStateReference
		}

		out = append(out, pack.CancelDeny{FromIdx: uint16(from), ToIdx: uint16(to)})
	}

	return out, nil
}

// buildCharacterProps resolves the properties map to CHARACTER_PROPS
// records in lexicographic key order, since a Go map carries no
// authoring-intended order to preserve.
func buildCharacterProps(props map[string]float64, strs *stringTable) ([]pack.CharacterProp, error) {
	if len(props) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]pack.CharacterProp, 0, len(keys))
	for _, k := range keys {
		out = append(out, pack.CharacterProp{Key: strs.intern(k), Value: format.ToQ24_8(props[k])})
	}

	return out, nil
}
