package pack

import "github.com/fspk/fspk/format"

// StateRecord is one decoded STATES entry (36 bytes on the wire).
type StateRecord struct {
	StateID        uint16
	MeshKey        uint16
	KeyframesKey   uint16
	MoveType       uint8
	Trigger        uint8
	Guard          uint8
	Flags          uint8
	Startup        uint8
	Active         uint8
	Recovery       uint8
	Total          uint16
	Damage         uint16
	Hitstun        uint8
	Blockstun      uint8
	Hitstop        uint8
	HitWindowsOff  uint32
	HitWindowsLen  uint16
	HurtWindowsOff uint32
	HurtWindowsLen uint16
	PushWindowsOff uint16
	PushWindowsLen uint16
}

// CancelFlags returns the cancel-eligibility nibble of Flags (chain,
// special, super, jump bits; see format.CancelFlag*).
func (s StateRecord) CancelFlags() uint8 { return s.Flags }

// WriteTo writes the 36-byte wire form of s into data at off.
func (s StateRecord) WriteTo(data []byte, off int) {
	putUint16(data, off+0, s.StateID)
	putUint16(data, off+2, s.MeshKey)
	putUint16(data, off+4, s.KeyframesKey)
	data[off+6] = s.MoveType
	data[off+7] = s.Trigger
	data[off+8] = s.Guard
	data[off+9] = s.Flags
	data[off+10] = s.Startup
	data[off+11] = s.Active
	data[off+12] = s.Recovery
	putUint16(data, off+13, s.Total)
	putUint16(data, off+15, s.Damage)
	data[off+17] = s.Hitstun
	data[off+18] = s.Blockstun
	data[off+19] = s.Hitstop
	putUint32(data, off+20, s.HitWindowsOff)
	putUint16(data, off+24, s.HitWindowsLen)
	putUint32(data, off+26, s.HurtWindowsOff)
	putUint16(data, off+30, s.HurtWindowsLen)
	putUint16(data, off+32, s.PushWindowsOff)
	putUint16(data, off+34, s.PushWindowsLen)
}

func parseStateRecord(data []byte, off int) StateRecord {
	return StateRecord{
		StateID:        readUint16(data, off+0),
		MeshKey:        readUint16(data, off+2),
		KeyframesKey:   readUint16(data, off+4),
		MoveType:       readUint8(data, off+6),
		Trigger:        readUint8(data, off+7),
		Guard:          readUint8(data, off+8),
		Flags:          readUint8(data, off+9),
		Startup:        readUint8(data, off+10),
		Active:         readUint8(data, off+11),
		Recovery:       readUint8(data, off+12),
		Total:          readUint16(data, off+13),
		Damage:         readUint16(data, off+15),
		Hitstun:        readUint8(data, off+17),
		Blockstun:      readUint8(data, off+18),
		Hitstop:        readUint8(data, off+19),
		HitWindowsOff:  readUint32(data, off+20),
		HitWindowsLen:  readUint16(data, off+24),
		HurtWindowsOff: readUint32(data, off+26),
		HurtWindowsLen: readUint16(data, off+30),
		PushWindowsOff: readUint16(data, off+32),
		PushWindowsLen: readUint16(data, off+34),
	}
}

// HurtWindow is a decoded HURT_WINDOWS or PUSH_WINDOWS entry (12 bytes).
type HurtWindow struct {
	StartFrame uint8
	EndFrame   uint8
	ShapesOff  uint32
	ShapesLen  uint16
}

// Active reports whether the window covers the given frame.
func (w HurtWindow) Active(frame uint8) bool {
	return frame >= w.StartFrame && frame <= w.EndFrame
}

func parseHurtWindow(data []byte, off int) HurtWindow {
	return HurtWindow{
		StartFrame: readUint8(data, off+0),
		EndFrame:   readUint8(data, off+1),
		ShapesLen:  readUint16(data, off+2),
		ShapesOff:  readUint32(data, off+4),
	}
}

// WriteTo writes the 12-byte wire form of w into data at off.
func (w HurtWindow) WriteTo(data []byte, off int) {
	data[off+0] = w.StartFrame
	data[off+1] = w.EndFrame
	putUint16(data, off+2, w.ShapesLen)
	putUint32(data, off+4, w.ShapesOff)
	putUint32(data, off+8, 0) // reserved
}

// Shape is a decoded SHAPES entry (12 bytes): a 1-byte kind tag, 1-byte
// flags, and five signed 16-bit slots whose meaning depends on Kind.
type Shape struct {
	Kind  format.ShapeKind
	Flags uint8
	S0    int16
	S1    int16
	S2    int16
	S3    int16
	S4    int16
}

func parseShape(data []byte, off int) Shape {
	return Shape{
		Kind:  format.ShapeKind(readUint8(data, off+0)),
		Flags: readUint8(data, off+1),
		S0:    readInt16(data, off+2),
		S1:    readInt16(data, off+4),
		S2:    readInt16(data, off+6),
		S3:    readInt16(data, off+8),
		S4:    readInt16(data, off+10),
	}
}

// Bytes encodes the shape back to its 12-byte wire form. Used by the
// encoder's shape pool for byte-equality dedup identity.
func (s Shape) Bytes() [format.ShapeSize]byte {
	var b [format.ShapeSize]byte
	b[0] = byte(s.Kind)
	b[1] = s.Flags
	putInt16(b[2:4], s.S0)
	putInt16(b[4:6], s.S1)
	putInt16(b[6:8], s.S2)
	putInt16(b[8:10], s.S3)
	putInt16(b[10:12], s.S4)

	return b
}

func putInt16(b []byte, v int16) {
	u := uint16(v)
	b[0] = byte(u)
	b[1] = byte(u >> 8)
}

// WriteTo writes the 12-byte wire form of s into data at off.
func (s Shape) WriteTo(data []byte, off int) {
	b := s.Bytes()
	copy(data[off:off+format.ShapeSize], b[:])
}

// HitWindow is a decoded HIT_WINDOWS entry. The current format is 28
// bytes (base 24 + two Q12.4 pushback fields); a pack written by an older
// encoder may carry a shorter record, in which case hitPushback and
// blockPushback decode as zero, per the forward-compatibility contract.
type HitWindow struct {
	StartFrame    uint8
	EndFrame      uint8
	Guard         uint8
	Hitstop       uint8
	Damage        uint16
	ChipDamage    uint16
	Hitstun       uint16
	Blockstun     uint16
	ShapesOff     uint32
	ShapesLen     uint16
	CancelsOff    uint16
	CancelsLen    uint16
	HitPushback   int16 // Q12.4
	BlockPushback int16 // Q12.4
}

// Active reports whether the window covers the given frame.
func (w HitWindow) Active(frame uint8) bool {
	return frame >= w.StartFrame && frame <= w.EndFrame
}

// parseHitWindow decodes one HIT_WINDOWS record starting at off; the
// caller cuts data to the record's recorded stride. Fields beyond the
// available bytes read as zero; fields the
// struct doesn't know about (a stride larger than HitWindowCurrentSize,
// from a hypothetical future encoder) are simply not read.
func parseHitWindow(data []byte, off int) HitWindow {
	return HitWindow{
		StartFrame:    readUint8(data, off+0),
		EndFrame:      readUint8(data, off+1),
		Guard:         readUint8(data, off+2),
		Hitstop:       readUint8(data, off+3),
		Damage:        readUint16(data, off+4),
		ChipDamage:    readUint16(data, off+6),
		Hitstun:       readUint16(data, off+8),
		Blockstun:     readUint16(data, off+10),
		ShapesOff:     readUint32(data, off+12),
		ShapesLen:     readUint16(data, off+16),
		CancelsOff:    readUint16(data, off+18),
		CancelsLen:    readUint16(data, off+20),
		HitPushback:   readInt16(data, off+24),
		BlockPushback: readInt16(data, off+26),
	}
}

// WriteTo writes the current (28-byte) wire form of w into data at off.
func (w HitWindow) WriteTo(data []byte, off int) {
	data[off+0] = w.StartFrame
	data[off+1] = w.EndFrame
	data[off+2] = w.Guard
	data[off+3] = w.Hitstop
	putUint16(data, off+4, w.Damage)
	putUint16(data, off+6, w.ChipDamage)
	putUint16(data, off+8, w.Hitstun)
	putUint16(data, off+10, w.Blockstun)
	putUint32(data, off+12, w.ShapesOff)
	putUint16(data, off+16, w.ShapesLen)
	putUint16(data, off+18, w.CancelsOff)
	putUint16(data, off+20, w.CancelsLen)
	putUint16(data, off+22, 0) // padding
	putUint16(data, off+24, uint16(w.HitPushback))
	putUint16(data, off+26, uint16(w.BlockPushback))
}

// CancelTagRule is a decoded CANCEL_TAG_RULES entry (24 bytes).
type CancelTagRule struct {
	FromTag     StrRef
	ToTag       StrRef
	Condition   uint8
	AfterFrame  uint8
	BeforeFrame uint8
	Flags       uint8
}

// FromIsAny reports whether FromTag uses the "any" sentinel.
func (r CancelTagRule) FromIsAny() bool { return r.FromTag.Off == format.AnyTagOffset }

// ToIsAny reports whether ToTag uses the "any" sentinel.
func (r CancelTagRule) ToIsAny() bool { return r.ToTag.Off == format.AnyTagOffset }

func parseCancelTagRule(data []byte, off int) CancelTagRule {
	return CancelTagRule{
		FromTag:     parseStrRef(data, off+0),
		ToTag:       parseStrRef(data, off+8),
		Condition:   readUint8(data, off+16),
		AfterFrame:  readUint8(data, off+17),
		BeforeFrame: readUint8(data, off+18),
		Flags:       readUint8(data, off+19),
	}
}

// WriteTo writes the 24-byte wire form of r into data at off.
func (r CancelTagRule) WriteTo(data []byte, off int) {
	r.FromTag.WriteTo(data, off+0)
	r.ToTag.WriteTo(data, off+8)
	data[off+16] = r.Condition
	data[off+17] = r.AfterFrame
	data[off+18] = r.BeforeFrame
	data[off+19] = r.Flags
	putUint32(data, off+20, 0) // reserved
}

// CancelDeny is one explicit (from state index, to state index) deny pair.
type CancelDeny struct {
	FromIdx uint16
	ToIdx   uint16
}

func parseCancelDeny(data []byte, off int) CancelDeny {
	return CancelDeny{
		FromIdx: readUint16(data, off+0),
		ToIdx:   readUint16(data, off+2),
	}
}

// WriteTo writes the 4-byte wire form of d into data at off.
func (d CancelDeny) WriteTo(data []byte, off int) {
	putUint16(data, off+0, d.FromIdx)
	putUint16(data, off+2, d.ToIdx)
}

// ResourceDef is a decoded RESOURCE_DEFS entry: a named resource pool with
// its starting and maximum values.
type ResourceDef struct {
	Name  StrRef
	Start uint16
	Max   uint16
}

func parseResourceDef(data []byte, off int) ResourceDef {
	return ResourceDef{
		Name:  parseStrRef(data, off+0),
		Start: readUint16(data, off+8),
		Max:   readUint16(data, off+10),
	}
}

// WriteTo writes the 12-byte wire form of d into data at off.
func (d ResourceDef) WriteTo(data []byte, off int) {
	d.Name.WriteTo(data, off+0)
	putUint16(data, off+8, d.Start)
	putUint16(data, off+10, d.Max)
}

// ResourceEntry is a decoded RESOURCE_COSTS or RESOURCE_PRECONDITIONS
// entry. For costs, Lo holds the amount and Hi is unused; for
// preconditions, Lo/Hi hold the inclusive min/max.
type ResourceEntry struct {
	Name StrRef
	Lo   uint16
	Hi   uint16
}

func parseResourceEntry(data []byte, off int) ResourceEntry {
	return ResourceEntry{
		Name: parseStrRef(data, off+0),
		Lo:   readUint16(data, off+8),
		Hi:   readUint16(data, off+10),
	}
}

// WriteTo writes the 12-byte wire form of e into data at off.
func (e ResourceEntry) WriteTo(data []byte, off int) {
	e.Name.WriteTo(data, off+0)
	putUint16(data, off+8, e.Lo)
	putUint16(data, off+10, e.Hi)
}

// CharacterProp is a decoded CHARACTER_PROPS entry: a key StrRef plus a
// Q24.8 fixed-point value.
type CharacterProp struct {
	Key   StrRef
	Value int32 // Q24.8
}

func parseCharacterProp(data []byte, off int) CharacterProp {
	return CharacterProp{
		Key:   parseStrRef(data, off+0),
		Value: readInt32(data, off+8),
	}
}

// WriteTo writes the 12-byte wire form of p into data at off.
func (p CharacterProp) WriteTo(data []byte, off int) {
	p.Key.WriteTo(data, off+0)
	putUint32(data, off+8, uint32(p.Value))
}

// StateExtra is a decoded STATE_EXTRAS entry (16 bytes): the per-state
// range pointers into RESOURCE_COSTS and RESOURCE_PRECONDITIONS that don't
// fit in the fixed StateRecord.
type StateExtra struct {
	ResourceCostsOff          uint32
	ResourceCostsLen          uint16
	ResourcePreconditionsOff  uint32
	ResourcePreconditionsLen  uint16
}

func parseStateExtra(data []byte, off int) StateExtra {
	return StateExtra{
		ResourceCostsOff:         readUint32(data, off+0),
		ResourceCostsLen:         readUint16(data, off+4),
		ResourcePreconditionsOff: readUint32(data, off+8),
		ResourcePreconditionsLen: readUint16(data, off+12),
	}
}

// WriteTo writes the 16-byte wire form of e into data at off.
func (e StateExtra) WriteTo(data []byte, off int) {
	putUint32(data, off+0, e.ResourceCostsOff)
	putUint16(data, off+4, e.ResourceCostsLen)
	putUint16(data, off+6, 0) // pad
	putUint32(data, off+8, e.ResourcePreconditionsOff)
	putUint16(data, off+12, e.ResourcePreconditionsLen)
	putUint16(data, off+14, 0) // pad
}

// StateTagRange is a decoded STATE_TAG_RANGES entry: the (offset, count)
// slice of this state's tags within STATE_TAGS.
type StateTagRange struct {
	Off   uint32
	Count uint32
}

func parseStateTagRange(data []byte, off int) StateTagRange {
	return StateTagRange{
		Off:   readUint32(data, off+0),
		Count: readUint32(data, off+4),
	}
}

// WriteTo writes the 8-byte wire form of r into data at off.
func (r StateTagRange) WriteTo(data []byte, off int) {
	putUint32(data, off+0, r.Off)
	putUint32(data, off+4, r.Count)
}
