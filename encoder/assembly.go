package encoder

import (
	"github.com/fspk/fspk/endian"
	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/internal/pool"
	"github.com/fspk/fspk/pack"
)

// hitWindowWireSize is the per-record byte stride this encoder writes for
// HIT_WINDOWS: the current wire form, including both pushback fields.
// Encode writes the stride held in the Builder's Config; NewConfig sets it
// to this value and no exported option changes it.
const hitWindowWireSize = format.HitWindowCurrentSize

// assembly holds every section body's logical content, fully resolved,
// ready to be serialized into section bytes plus header and directory.
type assembly struct {
	stringTable     []byte
	meshKeys        []byte
	keyframesKeys   []byte
	states          []pack.StateRecord
	stateExtras     []pack.StateExtra
	hitWindows      []pack.HitWindow
	hitWindowStride int
	hurtWindows     []pack.HurtWindow
	pushWindows     []pack.HurtWindow
	shapes          []byte
	resourceDefs    []pack.ResourceDef
	resourceCosts   []pack.ResourceEntry
	resourcePrecond []pack.ResourceEntry
	stateTagRanges  []pack.StateTagRange
	stateTags       []pack.StrRef
	cancelTagRules  []pack.CancelTagRule
	cancelDenies    []pack.CancelDeny
	characterProps  []pack.CharacterProp
	alignment       uint32
}

// sectionBody is one section's raw bytes awaiting placement in the pack.
// A nil/empty body means the section is entirely absent: per spec.md's
// encoder output rule, an empty logical collection produces an absent
// section, not a zero-length one.
type sectionBody struct {
	kind format.SectionKind
	body []byte
}

func (a *assembly) sections() []sectionBody {
	var bodies []sectionBody

	add := func(kind format.SectionKind, body []byte) {
		if len(body) == 0 {
			return
		}
		bodies = append(bodies, sectionBody{kind: kind, body: body})
	}

	add(format.SectionStringTable, a.stringTable)
	add(format.SectionMeshKeys, a.meshKeys)
	add(format.SectionKeyframesKeys, a.keyframesKeys)

	states := make([]byte, len(a.states)*format.StateRecordSize)
	for i, s := range a.states {
		s.WriteTo(states, i*format.StateRecordSize)
	}
	add(format.SectionStates, states)

	extras := make([]byte, len(a.stateExtras)*format.StateExtraSize)
	for i, e := range a.stateExtras {
		e.WriteTo(extras, i*format.StateExtraSize)
	}
	add(format.SectionStateExtras, extras)

	if len(a.hitWindows) > 0 {
		stride := a.hitWindowStride
		if stride <= 0 {
			stride = hitWindowWireSize
		}

		hw := make([]byte, 4+len(a.hitWindows)*stride)
		engine := endian.GetLittleEndianEngine()
		engine.PutUint32(hw[0:4], uint32(stride))

		rec := make([]byte, hitWindowWireSize)
		for i, w := range a.hitWindows {
			for j := range rec {
				rec[j] = 0
			}
			w.WriteTo(rec, 0)
			copy(hw[4+i*stride:4+(i+1)*stride], rec[:min(stride, hitWindowWireSize)])
		}
		add(format.SectionHitWindows, hw)
	}

	hurt := make([]byte, len(a.hurtWindows)*format.HurtWindowSize)
	for i, w := range a.hurtWindows {
		w.WriteTo(hurt, i*format.HurtWindowSize)
	}
	add(format.SectionHurtWindows, hurt)

	push := make([]byte, len(a.pushWindows)*format.PushWindowSize)
	for i, w := range a.pushWindows {
		w.WriteTo(push, i*format.PushWindowSize)
	}
	add(format.SectionPushWindows, push)

	add(format.SectionShapes, a.shapes)

	defs := make([]byte, len(a.resourceDefs)*format.ResourceDefSize)
	for i, d := range a.resourceDefs {
		d.WriteTo(defs, i*format.ResourceDefSize)
	}
	add(format.SectionResourceDefs, defs)

	costs := make([]byte, len(a.resourceCosts)*format.ResourceEntrySize)
	for i, c := range a.resourceCosts {
		c.WriteTo(costs, i*format.ResourceEntrySize)
	}
	add(format.SectionResourceCosts, costs)

	precond := make([]byte, len(a.resourcePrecond)*format.ResourceEntrySize)
	for i, p := range a.resourcePrecond {
		p.WriteTo(precond, i*format.ResourceEntrySize)
	}
	add(format.SectionResourcePreconditions, precond)

	ranges := make([]byte, len(a.stateTagRanges)*format.StateTagRangeSize)
	for i, r := range a.stateTagRanges {
		r.WriteTo(ranges, i*format.StateTagRangeSize)
	}
	add(format.SectionStateTagRanges, ranges)

	tags := make([]byte, len(a.stateTags)*format.StrRefSize)
	for i, t := range a.stateTags {
		t.WriteTo(tags, i*format.StrRefSize)
	}
	add(format.SectionStateTags, tags)

	rules := make([]byte, len(a.cancelTagRules)*format.CancelTagRuleSize)
	for i, r := range a.cancelTagRules {
		r.WriteTo(rules, i*format.CancelTagRuleSize)
	}
	add(format.SectionCancelTagRules, rules)

	denies := make([]byte, len(a.cancelDenies)*format.CancelDenySize)
	for i, d := range a.cancelDenies {
		d.WriteTo(denies, i*format.CancelDenySize)
	}
	add(format.SectionCancelDenies, denies)

	props := make([]byte, len(a.characterProps)*format.CharacterPropSize)
	for i, p := range a.characterProps {
		p.WriteTo(props, i*format.CharacterPropSize)
	}
	add(format.SectionCharacterProps, props)

	return bodies
}

// encode serializes the assembly into a complete FSPK byte buffer: header,
// section directory, then every non-empty section body, each padded to
// the configured alignment.
func (a *assembly) encode() ([]byte, error) {
	bodies := a.sections()

	align := a.alignment
	if align == 0 {
		align = 1
	}

	dirLen := len(bodies) * format.SectionHeaderSize
	cursor := uint32(format.HeaderSize + dirLen)

	type placed struct {
		sectionBody
		offset uint32
	}

	placedBodies := make([]placed, len(bodies))
	for i, sb := range bodies {
		if pad := cursor % align; pad != 0 {
			cursor += align - pad
		}
		placedBodies[i] = placed{sectionBody: sb, offset: cursor}
		cursor += uint32(len(sb.body))
	}

	total := cursor

	buf := pool.GetPackBuffer()
	defer pool.PutPackBuffer(buf)
	buf.Reset()
	buf.Grow(int(total))
	buf.B = buf.B[:total]
	out := buf.B
	clear(out)

	engine := endian.GetLittleEndianEngine()
	copy(out[0:4], format.Magic)
	engine.PutUint16(out[4:6], format.Version)
	engine.PutUint16(out[6:8], 0)
	engine.PutUint32(out[8:12], total)
	engine.PutUint32(out[12:16], uint32(len(bodies)))

	for i, pb := range placedBodies {
		dirOff := format.HeaderSize + i*format.SectionHeaderSize
		engine.PutUint32(out[dirOff:dirOff+4], uint32(pb.kind))
		engine.PutUint32(out[dirOff+4:dirOff+8], pb.offset)
		engine.PutUint32(out[dirOff+8:dirOff+12], uint32(len(pb.body)))
		engine.PutUint32(out[dirOff+12:dirOff+16], align)

		copy(out[pb.offset:pb.offset+uint32(len(pb.body))], pb.body)
	}

	// Copy out of the pooled scratch buffer: unlike the teacher's
	// single-use NumericEncoder, a Builder is reused across independent
	// Encode calls, so the returned bytes must outlive the next Encode
	// reusing this same backing array.
	result := make([]byte, total)
	copy(result, out)

	return result, nil
}
