package pack

import "github.com/fspk/fspk/format"

// fixedCount returns how many recordSize-byte records fit in a section body
// of the given length. A body whose length isn't an exact multiple of
// recordSize (a corrupt or truncated pack) yields the number of whole
// records available; the remainder is ignored rather than erroring, since
// PackView accessors never fail past Parse.
func fixedCount(bodyLen, recordSize int) int {
	if recordSize <= 0 {
		return 0
	}
	return bodyLen / recordSize
}

// StatesView is a zero-copy view over the STATES section.
type StatesView struct{ data []byte }

// States returns a view over the pack's state records.
func (pv *PackView) States() StatesView {
	data, _ := pv.Section(format.SectionStates)
	return StatesView{data: data}
}

// Len returns the number of state records.
func (v StatesView) Len() int { return fixedCount(len(v.data), format.StateRecordSize) }

// At returns the state record at idx, or a zero value and false if idx is
// out of range.
func (v StatesView) At(idx int) (StateRecord, bool) {
	if idx < 0 || idx >= v.Len() {
		return StateRecord{}, false
	}
	return parseStateRecord(v.data, idx*format.StateRecordSize), true
}

// HurtWindowsView is a zero-copy view over the HURT_WINDOWS or
// PUSH_WINDOWS section (both share the HurtWindow record layout).
type HurtWindowsView struct{ data []byte }

// HurtWindows returns a view over the pack's hurtbox windows.
func (pv *PackView) HurtWindows() HurtWindowsView {
	data, _ := pv.Section(format.SectionHurtWindows)
	return HurtWindowsView{data: data}
}

// PushWindows returns a view over the pack's pushbox windows.
func (pv *PackView) PushWindows() HurtWindowsView {
	data, _ := pv.Section(format.SectionPushWindows)
	return HurtWindowsView{data: data}
}

// Len returns the number of window records.
func (v HurtWindowsView) Len() int { return fixedCount(len(v.data), format.HurtWindowSize) }

// At returns the window record at idx, or a zero value and false if idx is
// out of range.
func (v HurtWindowsView) At(idx int) (HurtWindow, bool) {
	if idx < 0 || idx >= v.Len() {
		return HurtWindow{}, false
	}
	return parseHurtWindow(v.data, idx*format.HurtWindowSize), true
}

// ShapesView is a zero-copy view over the shared SHAPES pool.
type ShapesView struct{ data []byte }

// Shapes returns a view over the pack's shared shape pool.
func (pv *PackView) Shapes() ShapesView {
	data, _ := pv.Section(format.SectionShapes)
	return ShapesView{data: data}
}

// Len returns the number of shapes in the pool.
func (v ShapesView) Len() int { return fixedCount(len(v.data), format.ShapeSize) }

// At returns the shape at idx, or a zero value and false if idx is out of
// range.
func (v ShapesView) At(idx int) (Shape, bool) {
	if idx < 0 || idx >= v.Len() {
		return Shape{}, false
	}
	return parseShape(v.data, idx*format.ShapeSize), true
}

// HitWindowsView is a zero-copy view over the HIT_WINDOWS section. Unlike
// the other record sections, HIT_WINDOWS carries a 4-byte record-stride
// prefix ahead of its records: the per-record byte width the encoder that
// wrote this pack used, which may differ from HitWindowCurrentSize when an
// older or newer encoder produced the pack.
type HitWindowsView struct {
	data   []byte
	stride int
}

// HitWindows returns a view over the pack's hit windows.
func (pv *PackView) HitWindows() HitWindowsView {
	data, ok := pv.Section(format.SectionHitWindows)
	if !ok || len(data) < 4 {
		return HitWindowsView{}
	}

	stride := int(readUint32(data, 0))
	if stride <= 0 {
		return HitWindowsView{}
	}

	return HitWindowsView{data: data[4:], stride: stride}
}

// Len returns the number of hit window records.
func (v HitWindowsView) Len() int { return fixedCount(len(v.data), v.stride) }

// At returns the hit window record at idx, or a zero value and false if idx
// is out of range. A record whose stride is shorter than
// HitWindowCurrentSize decodes its missing tail fields as zero; a record
// whose stride is longer carries trailing bytes this decoder doesn't know
// how to interpret, and simply ignores them.
func (v HitWindowsView) At(idx int) (HitWindow, bool) {
	if idx < 0 || idx >= v.Len() {
		return HitWindow{}, false
	}

	off := idx * v.stride
	end := off + v.stride
	if end > len(v.data) {
		return HitWindow{}, false
	}

	rec := v.data[off:end]
	if len(rec) > format.HitWindowCurrentSize {
		rec = rec[:format.HitWindowCurrentSize]
	}

	return parseHitWindow(rec, 0), true
}

// CancelTagRulesView is a zero-copy view over the CANCEL_TAG_RULES section.
type CancelTagRulesView struct{ data []byte }

// CancelTagRules returns a view over the pack's cancel tag rules.
func (pv *PackView) CancelTagRules() CancelTagRulesView {
	data, _ := pv.Section(format.SectionCancelTagRules)
	return CancelTagRulesView{data: data}
}

// Len returns the number of cancel tag rules.
func (v CancelTagRulesView) Len() int { return fixedCount(len(v.data), format.CancelTagRuleSize) }

// At returns the cancel tag rule at idx, or a zero value and false if idx
// is out of range.
func (v CancelTagRulesView) At(idx int) (CancelTagRule, bool) {
	if idx < 0 || idx >= v.Len() {
		return CancelTagRule{}, false
	}
	return parseCancelTagRule(v.data, idx*format.CancelTagRuleSize), true
}

// CancelDeniesView is a zero-copy view over the CANCEL_DENIES section.
type CancelDeniesView struct{ data []byte }

// CancelDenies returns a view over the pack's explicit cancel denials.
func (pv *PackView) CancelDenies() CancelDeniesView {
	data, _ := pv.Section(format.SectionCancelDenies)
	return CancelDeniesView{data: data}
}

// Len returns the number of deny pairs.
func (v CancelDeniesView) Len() int { return fixedCount(len(v.data), format.CancelDenySize) }

// At returns the deny pair at idx, or a zero value and false if idx is out
// of range.
func (v CancelDeniesView) At(idx int) (CancelDeny, bool) {
	if idx < 0 || idx >= v.Len() {
		return CancelDeny{}, false
	}
	return parseCancelDeny(v.data, idx*format.CancelDenySize), true
}

// ResourceDefsView is a zero-copy view over the RESOURCE_DEFS section.
type ResourceDefsView struct{ data []byte }

// ResourceDefs returns a view over the pack's resource pool definitions.
func (pv *PackView) ResourceDefs() ResourceDefsView {
	data, _ := pv.Section(format.SectionResourceDefs)
	return ResourceDefsView{data: data}
}

// Len returns the number of resource definitions.
func (v ResourceDefsView) Len() int { return fixedCount(len(v.data), format.ResourceDefSize) }

// At returns the resource definition at idx, or a zero value and false if
// idx is out of range.
func (v ResourceDefsView) At(idx int) (ResourceDef, bool) {
	if idx < 0 || idx >= v.Len() {
		return ResourceDef{}, false
	}
	return parseResourceDef(v.data, idx*format.ResourceDefSize), true
}

// ResourceEntriesView is a zero-copy view over a RESOURCE_COSTS or
// RESOURCE_PRECONDITIONS section (both share the ResourceEntry layout).
type ResourceEntriesView struct{ data []byte }

// ResourceCosts returns a view over the pack's per-state resource costs.
func (pv *PackView) ResourceCosts() ResourceEntriesView {
	data, _ := pv.Section(format.SectionResourceCosts)
	return ResourceEntriesView{data: data}
}

// ResourcePreconditions returns a view over the pack's per-state resource
// preconditions.
func (pv *PackView) ResourcePreconditions() ResourceEntriesView {
	data, _ := pv.Section(format.SectionResourcePreconditions)
	return ResourceEntriesView{data: data}
}

// Len returns the number of resource entries.
func (v ResourceEntriesView) Len() int { return fixedCount(len(v.data), format.ResourceEntrySize) }

// At returns the resource entry at idx, or a zero value and false if idx
// is out of range.
func (v ResourceEntriesView) At(idx int) (ResourceEntry, bool) {
	if idx < 0 || idx >= v.Len() {
		return ResourceEntry{}, false
	}
	return parseResourceEntry(v.data, idx*format.ResourceEntrySize), true
}

// CharacterPropsView is a zero-copy view over the CHARACTER_PROPS section.
type CharacterPropsView struct{ data []byte }

// CharacterProps returns a view over the pack's character properties.
func (pv *PackView) CharacterProps() CharacterPropsView {
	data, _ := pv.Section(format.SectionCharacterProps)
	return CharacterPropsView{data: data}
}

// Len returns the number of character properties.
func (v CharacterPropsView) Len() int { return fixedCount(len(v.data), format.CharacterPropSize) }

// At returns the character property at idx, or a zero value and false if
// idx is out of range.
func (v CharacterPropsView) At(idx int) (CharacterProp, bool) {
	if idx < 0 || idx >= v.Len() {
		return CharacterProp{}, false
	}
	return parseCharacterProp(v.data, idx*format.CharacterPropSize), true
}

// CharacterProp looks up a character property by key, doing a linear scan and
// resolving each key StrRef against the string table. Character property
// counts are small (a few dozen per character at most), so a linear scan
// avoids building an index that would outlive a single lookup's benefit.
func (pv *PackView) CharacterProp(key string) (int32, bool) {
	props := pv.CharacterProps()
	for i := 0; i < props.Len(); i++ {
		p, _ := props.At(i)
		s, ok := pv.String(p.Key)
		if ok && s == key {
			return p.Value, true
		}
	}
	return 0, false
}

// StateTagRangesView is a zero-copy view over the STATE_TAG_RANGES
// section, parallel to STATES.
type StateTagRangesView struct{ data []byte }

// StateTagRanges returns a view over the pack's per-state tag ranges.
func (pv *PackView) StateTagRanges() StateTagRangesView {
	data, _ := pv.Section(format.SectionStateTagRanges)
	return StateTagRangesView{data: data}
}

// Len returns the number of tag ranges.
func (v StateTagRangesView) Len() int { return fixedCount(len(v.data), format.StateTagRangeSize) }

// At returns the tag range at idx, or a zero value and false if idx is out
// of range.
func (v StateTagRangesView) At(idx int) (StateTagRange, bool) {
	if idx < 0 || idx >= v.Len() {
		return StateTagRange{}, false
	}
	return parseStateTagRange(v.data, idx*format.StateTagRangeSize), true
}

// StateTagsView is a zero-copy view over the STATE_TAGS section: a flat
// array of StrRef, sliced per state via StateTagRanges.
type StateTagsView struct{ data []byte }

// StateTags returns a view over the pack's flat tag StrRef array.
func (pv *PackView) StateTags() StateTagsView {
	data, _ := pv.Section(format.SectionStateTags)
	return StateTagsView{data: data}
}

// Len returns the number of tag references.
func (v StateTagsView) Len() int { return fixedCount(len(v.data), format.StrRefSize) }

// At returns the tag StrRef at idx, or a zero value and false if idx is
// out of range.
func (v StateTagsView) At(idx int) (StrRef, bool) {
	if idx < 0 || idx >= v.Len() {
		return StrRef{}, false
	}
	return parseStrRef(v.data, idx*format.StrRefSize), true
}

// Tags resolves the tag strings for the state at stateIdx, via its
// StateTagRange, the flat STATE_TAGS array, and the string table. Returns
// nil if the pack carries no STATE_TAG_RANGES section (forward-compat
// miss) or stateIdx is out of range.
func (pv *PackView) Tags(stateIdx int) []string {
	ranges := pv.StateTagRanges()
	r, ok := ranges.At(stateIdx)
	if !ok {
		return nil
	}

	tags := pv.StateTags()
	out := make([]string, 0, r.Count)
	for i := uint32(0); i < r.Count; i++ {
		ref, ok := tags.At(int(r.Off) + int(i))
		if !ok {
			continue
		}
		s, ok := pv.String(ref)
		if !ok {
			continue
		}
		out = append(out, s)
	}

	return out
}

// StateExtrasView is a zero-copy view over the STATE_EXTRAS section,
// parallel to STATES.
type StateExtrasView struct{ data []byte }

// StateExtras returns a view over the pack's per-state resource ranges.
func (pv *PackView) StateExtras() StateExtrasView {
	data, _ := pv.Section(format.SectionStateExtras)
	return StateExtrasView{data: data}
}

// Len returns the number of state-extra records.
func (v StateExtrasView) Len() int { return fixedCount(len(v.data), format.StateExtraSize) }

// At returns the state-extra record at idx, or a zero value and false if
// idx is out of range.
func (v StateExtrasView) At(idx int) (StateExtra, bool) {
	if idx < 0 || idx >= v.Len() {
		return StateExtra{}, false
	}
	return parseStateExtra(v.data, idx*format.StateExtraSize), true
}

// AssetKeysView is a zero-copy view over MESH_KEYS or KEYFRAMES_KEYS: a
// flat array of StrRef indexed by the asset key index stored in a
// StateRecord's MeshKey/KeyframesKey field.
type AssetKeysView struct{ data []byte }

// MeshKeys returns a view over the pack's mesh key table.
func (pv *PackView) MeshKeys() AssetKeysView {
	data, _ := pv.Section(format.SectionMeshKeys)
	return AssetKeysView{data: data}
}

// KeyframesKeys returns a view over the pack's keyframes key table.
func (pv *PackView) KeyframesKeys() AssetKeysView {
	data, _ := pv.Section(format.SectionKeyframesKeys)
	return AssetKeysView{data: data}
}

// Len returns the number of asset keys.
func (v AssetKeysView) Len() int { return fixedCount(len(v.data), format.StrRefSize) }

// At returns the asset key StrRef at idx, or a zero value and false if idx
// is out of range or idx is the NoAssetKey sentinel.
func (v AssetKeysView) At(idx uint16) (StrRef, bool) {
	if idx == format.NoAssetKey {
		return StrRef{}, false
	}
	i := int(idx)
	if i < 0 || i >= v.Len() {
		return StrRef{}, false
	}
	return parseStrRef(v.data, i*format.StrRefSize), true
}
