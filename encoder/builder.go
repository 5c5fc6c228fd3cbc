package encoder

import (
	"math"
	"sort"

	"github.com/fspk/fspk/errs"
	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/internal/options"
	"github.com/fspk/fspk/pack"
)

// Builder assembles FSPK pack bytes from a CharacterDescription. A Builder
// is configured once via options and may Encode any number of independent
// descriptions; it holds no per-encode state between calls.
type Builder struct {
	cfg *Config
}

// New creates a Builder with the given policy options applied over the
// default configuration.
func New(opts ...Option) (*Builder, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Builder{cfg: cfg}, nil
}

// Encode produces the FSPK bytes for desc. desc.States is sorted into
// canonical order (ascending by Name) internally; the input slice is not
// mutated.
func (b *Builder) Encode(desc CharacterDescription) ([]byte, error) {
	states, err := canonicalStates(desc.States)
	if err != nil {
		return nil, err
	}
	if len(states) > math.MaxUint16 {
		return nil, errs.ErrTooManyStates
	}

	nameToIdx := make(map[string]int, len(states))
	allTags := make(map[string]struct{})
	for i, s := range states {
		nameToIdx[s.Name] = i
		for _, tag := range s.Tags {
			allTags[tag] = struct{}{}
		}
	}

	strs := newStringTable()
	meshKeys := newAssetKeyTable(strs)
	keyframesKeys := newAssetKeyTable(strs)
	shapes := newShapePool()

	var (
		hitWindows     []pack.HitWindow
		hurtWindows    []pack.HurtWindow
		pushWindows    []pack.HurtWindow
		stateTags      []pack.StrRef
		stateTagRanges []pack.StateTagRange
		resCosts       []pack.ResourceEntry
		resPrecond     []pack.ResourceEntry
		stateExtras    []pack.StateExtra
	)

	records := make([]pack.StateRecord, len(states))

	for i, s := range states {
		meshIdx, err := meshKeys.intern(s.MeshKey)
		if err != nil {
			return nil, err
		}
		kfIdx, err := keyframesKeys.intern(s.KeyframesKey)
		if err != nil {
			return nil, err
		}

		rec := pack.StateRecord{
			StateID:      uint16(i),
			MeshKey:      meshIdx,
			KeyframesKey: kfIdx,
			MoveType:     s.MoveType,
			Trigger:      s.Trigger,
			Guard:        s.Guard,
			Flags:        s.CancelFlags,
			Startup:      s.Startup,
			Active:       s.Active,
			Recovery:     s.Recovery,
			Total:        s.Total,
			Damage:       s.Damage,
			Hitstun:      s.Hitstun,
			Blockstun:    s.Blockstun,
			Hitstop:      s.Hitstop,
		}

		if len(s.HitWindows) > math.MaxUint16 || len(s.HurtWindows) > math.MaxUint16 || len(s.PushWindows) > math.MaxUint16 {
			return nil, errs.ErrTooManyWindows
		}

		rec.HitWindowsOff = uint32(len(hitWindows))
		rec.HitWindowsLen = uint16(len(s.HitWindows))
		for _, hw := range s.HitWindows {
			shapesOff, shapesLen := shapes.internBlock(toShapes(hw.Shapes))
			hitWindows = append(hitWindows, pack.HitWindow{
				StartFrame:    hw.StartFrame,
				EndFrame:      hw.EndFrame,
				Guard:         hw.Guard,
				Hitstop:       hw.Hitstop,
				Damage:        hw.Damage,
				ChipDamage:    hw.ChipDamage,
				Hitstun:       hw.Hitstun,
				Blockstun:     hw.Blockstun,
				ShapesOff:     shapesOff,
				ShapesLen:     shapesLen,
				HitPushback:   format.ToQ12_4(hw.HitPushback),
				BlockPushback: format.ToQ12_4(hw.BlockPushback),
			})
		}

		rec.HurtWindowsOff = uint32(len(hurtWindows))
		rec.HurtWindowsLen = uint16(len(s.HurtWindows))
		for _, w := range s.HurtWindows {
			shapesOff, shapesLen := shapes.internBlock(toShapes(w.Shapes))
			hurtWindows = append(hurtWindows, pack.HurtWindow{
				StartFrame: w.StartFrame,
				EndFrame:   w.EndFrame,
				ShapesOff:  shapesOff,
				ShapesLen:  shapesLen,
			})
		}

		if len(pushWindows)+len(s.PushWindows) > math.MaxUint16 {
			return nil, errs.ErrTooManyWindows
		}
		rec.PushWindowsOff = uint16(len(pushWindows))
		rec.PushWindowsLen = uint16(len(s.PushWindows))
		for _, w := range s.PushWindows {
			shapesOff, shapesLen := shapes.internBlock(toShapes(w.Shapes))
			pushWindows = append(pushWindows, pack.HurtWindow{
				StartFrame: w.StartFrame,
				EndFrame:   w.EndFrame,
				ShapesOff:  shapesOff,
				ShapesLen:  shapesLen,
			})
		}

		if len(s.Tags) > math.MaxUint16 {
			return nil, errs.ErrTooManyTags
		}
		stateTagRanges = append(stateTagRanges, pack.StateTagRange{Off: uint32(len(stateTags)), Count: uint32(len(s.Tags))})
		for _, tag := range s.Tags {
			stateTags = append(stateTags, strs.intern(tag))
		}

		if len(s.ResourceCosts) > math.MaxUint16 || len(s.ResourcePreconditions) > math.MaxUint16 {
			return nil, errs.ErrTooManyResources
		}
		extra := pack.StateExtra{
			ResourceCostsOff:         uint32(len(resCosts)),
			ResourceCostsLen:         uint16(len(s.ResourceCosts)),
			ResourcePreconditionsOff: uint32(len(resPrecond)),
			ResourcePreconditionsLen: uint16(len(s.ResourcePreconditions)),
		}
		for _, c := range s.ResourceCosts {
			resCosts = append(resCosts, pack.ResourceEntry{Name: strs.intern(c.Name), Lo: c.Amount})
		}
		for _, p := range s.ResourcePreconditions {
			resPrecond = append(resPrecond, pack.ResourceEntry{Name: strs.intern(p.Name), Lo: p.Min, Hi: p.Max})
		}

		records[i] = rec
		stateExtras = append(stateExtras, extra)
	}

	tagRules, err := b.buildCancelTagRules(desc.CancelTagRules, allTags, strs)
	if err != nil {
		return nil, err
	}

	denies, err := buildCancelDenies(desc.CancelDenies, nameToIdx)
	if err != nil {
		return nil, err
	}

	resourceDefs := make([]pack.ResourceDef, len(desc.ResourceDefs))
	for i, d := range desc.ResourceDefs {
		resourceDefs[i] = pack.ResourceDef{Name: strs.intern(d.Name), Start: d.Start, Max: d.Max}
	}

	charProps, err := buildCharacterProps(desc.Properties, strs)
	if err != nil {
		return nil, err
	}

	asm := assembly{
		stringTable:     strs.bytes(),
		meshKeys:        meshKeys.bytes(),
		keyframesKeys:   keyframesKeys.bytes(),
		states:          records,
		stateExtras:     stateExtras,
		hitWindows:      hitWindows,
		hitWindowStride: b.cfg.hitWindowStride,
		hurtWindows:     hurtWindows,
		pushWindows:     pushWindows,
		shapes:          shapes.bytes(),
		resourceDefs:    resourceDefs,
		resourceCosts:   resCosts,
		resourcePrecond: resPrecond,
		stateTagRanges:  stateTagRanges,
		stateTags:       stateTags,
		cancelTagRules:  tagRules,
		cancelDenies:    denies,
		characterProps:  charProps,
		alignment:       b.cfg.alignment,
	}

	return asm.encode()
}

// canonicalStates returns a copy of states sorted ascending by Name,
// validating name uniqueness and non-emptiness.
func canonicalStates(states []StateDescription) ([]StateDescription, error) {
	out := make([]StateDescription, len(states))
	copy(out, states)

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	seen := make(map[string]struct{}, len(out))
	for _, s := range out {
		if s.Name == "" {
			return nil, errs.ErrEmptyStateName
		}
		if _, dup := seen[s.Name]; dup {
			return nil, errs.ErrDuplicateStateName
		}
		seen[s.Name] = struct{}{}
	}

	return out, nil
}
