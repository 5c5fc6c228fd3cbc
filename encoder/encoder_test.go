package encoder

import (
	"testing"

	"github.com/fspk/fspk/errs"
	"github.com/fspk/fspk/format"
	"github.com/fspk/fspk/pack"
	"github.com/stretchr/testify/require"
)

func TestEncode_MinimalState(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	desc := CharacterDescription{
		States: []StateDescription{
			{Name: "idle", Total: 60},
		},
	}

	data, err := b.Encode(desc)
	require.NoError(t, err)

	pv, err := pack.Parse(data)
	require.NoError(t, err)

	states := pv.States()
	require.Equal(t, 1, states.Len())

	rec, ok := states.At(0)
	require.True(t, ok)
	require.Equal(t, uint16(60), rec.Total)
	require.Equal(t, format.NoAssetKey, rec.MeshKey)

	require.Empty(t, pv.Tags(0))
}

func TestEncode_CanonicalOrderingIsDeterministic(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	descA := CharacterDescription{
		States: []StateDescription{
			{Name: "walk", Total: 10},
			{Name: "idle", Total: 60},
			{Name: "5L", Total: 20},
		},
	}
	descB := CharacterDescription{
		States: []StateDescription{
			descA.States[2], descA.States[0], descA.States[1],
		},
	}

	bytesA, err := b.Encode(descA)
	require.NoError(t, err)
	bytesB, err := b.Encode(descB)
	require.NoError(t, err)

	require.Equal(t, bytesA, bytesB)

	pv, err := pack.Parse(bytesA)
	require.NoError(t, err)
	states := pv.States()
	require.Equal(t, 3, states.Len())

	// Ascending by Name: "5L" < "idle" < "walk"
	first, _ := states.At(0)
	require.Equal(t, uint16(20), first.Total)
}

func TestEncode_HitAndHurtWindowsWithShapes(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	desc := CharacterDescription{
		States: []StateDescription{
			{
				Name:  "5L",
				Total: 20,
				Tags:  []string{"normal", "light"},
				HitWindows: []HitWindowDescription{
					{
						StartFrame: 3, EndFrame: 5, Damage: 30,
						Shapes: []ShapeDescription{{Kind: format.ShapeAABB, X: 0, Y: -40, W: 30, H: 16}},
					},
				},
				HurtWindows: []WindowDescription{
					{
						StartFrame: 0, EndFrame: 10,
						Shapes: []ShapeDescription{{Kind: format.ShapeAABB, X: -10, Y: -60, W: 30, H: 60}},
					},
				},
			},
		},
	}

	data, err := b.Encode(desc)
	require.NoError(t, err)

	pv, err := pack.Parse(data)
	require.NoError(t, err)

	rec, ok := pv.States().At(0)
	require.True(t, ok)
	require.Equal(t, uint16(1), rec.HitWindowsLen)
	require.Equal(t, uint16(1), rec.HurtWindowsLen)

	hw, ok := pv.HitWindows().At(int(rec.HitWindowsOff))
	require.True(t, ok)
	require.Equal(t, uint16(30), hw.Damage)
	require.Equal(t, uint8(3), hw.StartFrame)

	shape, ok := pv.Shapes().At(int(hw.ShapesOff))
	require.True(t, ok)
	require.Equal(t, format.ShapeAABB, shape.Kind)
	require.Equal(t, format.ToQ12_4(-40), shape.S1)

	tags := pv.Tags(0)
	require.ElementsMatch(t, []string{"normal", "light"}, tags)
}

func TestEncode_CancelTagRulesAndDenies(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	desc := CharacterDescription{
		States: []StateDescription{
			{Name: "5L", Total: 20, Tags: []string{"normal"}},
			{Name: "236P", Total: 30, Tags: []string{"special"}},
		},
		CancelTagRules: []CancelTagRuleDescription{
			{FromTag: "normal", ToTag: "special", OnHit: true, OnBlock: true, BeforeFrame: 255},
		},
		CancelDenies: []CancelDenyDescription{
			{FromState: "5L", ToState: "236P"},
		},
	}

	data, err := b.Encode(desc)
	require.NoError(t, err)

	pv, err := pack.Parse(data)
	require.NoError(t, err)

	rules := pv.CancelTagRules()
	require.Equal(t, 1, rules.Len())
	rule, ok := rules.At(0)
	require.True(t, ok)
	require.False(t, rule.FromIsAny())
	require.Equal(t, format.ConditionHit|format.ConditionBlock, rule.Condition)

	denies := pv.CancelDenies()
	require.Equal(t, 1, denies.Len())
	deny, ok := denies.At(0)
	require.True(t, ok)
	// Canonical order sorts ascending by name: "236P" < "5L", so "5L" is
	// index 1 and "236P" is index 0.
	require.Equal(t, uint16(1), deny.FromIdx)
	require.Equal(t, uint16(0), deny.ToIdx)
}

func TestEncode_ResourceDefsCostsAndPreconditions(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	desc := CharacterDescription{
		States: []StateDescription{
			{
				Name: "super", Total: 40,
				ResourceCosts:         []ResourceAmount{{Name: "meter", Amount: 50}},
				ResourcePreconditions: []ResourceRange{{Name: "meter", Min: 50, Max: 100}},
			},
		},
		ResourceDefs: []ResourceDefDescription{{Name: "meter", Start: 0, Max: 100}},
	}

	data, err := b.Encode(desc)
	require.NoError(t, err)

	pv, err := pack.Parse(data)
	require.NoError(t, err)

	defs := pv.ResourceDefs()
	require.Equal(t, 1, defs.Len())
	def, ok := defs.At(0)
	require.True(t, ok)
	name, ok := pv.String(def.Name)
	require.True(t, ok)
	require.Equal(t, "meter", name)

	costs := pv.ResourceCosts()
	require.Equal(t, 1, costs.Len())
	cost, ok := costs.At(0)
	require.True(t, ok)
	require.Equal(t, uint16(50), cost.Lo)

	extras := pv.StateExtras()
	require.Equal(t, 1, extras.Len())
	extra, ok := extras.At(0)
	require.True(t, ok)
	require.Equal(t, uint16(1), extra.ResourceCostsLen)
	require.Equal(t, uint16(1), extra.ResourcePreconditionsLen)
}

func TestEncode_CharacterProps(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	desc := CharacterDescription{
		States: []StateDescription{{Name: "idle", Total: 60}},
		Properties: map[string]float64{
			"walk_speed": 3.5,
			"jump_height": 120,
		},
	}

	data, err := b.Encode(desc)
	require.NoError(t, err)

	pv, err := pack.Parse(data)
	require.NoError(t, err)

	val, ok := pv.CharacterProp("walk_speed")
	require.True(t, ok)
	require.Equal(t, format.ToQ24_8(3.5), val)

	_, ok = pv.CharacterProp("missing")
	require.False(t, ok)
}

func TestEncode_EmptyStateNameRejected(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	_, err = b.Encode(CharacterDescription{States: []StateDescription{{Name: ""}}})
	require.ErrorIs(t, err, errs.ErrEmptyStateName)
}

func TestEncode_DuplicateStateNameRejected(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	_, err = b.Encode(CharacterDescription{States: []StateDescription{{Name: "idle"}, {Name: "idle"}}})
	require.ErrorIs(t, err, errs.ErrDuplicateStateName)
}

func TestEncode_UnknownDenyStateRejected(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	desc := CharacterDescription{
		States:       []StateDescription{{Name: "idle", Total: 60}},
		CancelDenies: []CancelDenyDescription{{FromState: "idle", ToState: "missing"}},
	}

	_, err = b.Encode(desc)
	require.ErrorIs(t, err, errs.ErrUnknownStateReference)
}

func TestEncode_StrictTagReferencesRejectsUnknownTag(t *testing.T) {
	b, err := New(WithStrictTagReferences(true))
	require.NoError(t, err)

	desc := CharacterDescription{
		States: []StateDescription{{Name: "idle", Total: 60}},
		CancelTagRules: []CancelTagRuleDescription{
			{FromTag: "nonexistent", ToTag: AnyTag, OnHit: true},
		},
	}

	_, err = b.Encode(desc)
	require.ErrorIs(t, err, errs.ErrUnknownTagReference)
}

func TestEncode_AnyTagSentinel(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	desc := CharacterDescription{
		States: []StateDescription{{Name: "idle", Total: 60, Tags: []string{"normal"}}},
		CancelTagRules: []CancelTagRuleDescription{
			{FromTag: AnyTag, ToTag: AnyTag, OnHit: true},
		},
	}

	data, err := b.Encode(desc)
	require.NoError(t, err)

	pv, err := pack.Parse(data)
	require.NoError(t, err)

	rule, ok := pv.CancelTagRules().At(0)
	require.True(t, ok)
	require.True(t, rule.FromIsAny())
	require.True(t, rule.ToIsAny())
}

func TestEncode_SharedShapeBlockDeduped(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	hurtbox := []ShapeDescription{{Kind: format.ShapeAABB, X: -10, Y: -60, W: 30, H: 60}}

	desc := CharacterDescription{
		States: []StateDescription{
			{Name: "a", Total: 10, HurtWindows: []WindowDescription{{StartFrame: 0, EndFrame: 5, Shapes: hurtbox}}},
			{Name: "b", Total: 10, HurtWindows: []WindowDescription{{StartFrame: 0, EndFrame: 5, Shapes: hurtbox}}},
		},
	}

	data, err := b.Encode(desc)
	require.NoError(t, err)

	pv, err := pack.Parse(data)
	require.NoError(t, err)

	require.Equal(t, 1, pv.Shapes().Len(), "identical hurt window shape blocks should share one pool entry")
}

// TestEncode_ReusedBuilderIsDeterministicAcrossUnevenEncodes guards against
// a reused Builder's pooled scratch buffer leaking a previous, larger
// encode's bytes into a later, smaller encode's alignment padding gaps.
func TestEncode_ReusedBuilderIsDeterministicAcrossUnevenEncodes(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	small := CharacterDescription{
		States: []StateDescription{{Name: "ab", Total: 5, Tags: []string{"ab"}}}, // tag "ab" is a 2-byte string table: 2 padding bytes to 4-align
	}

	first, err := b.Encode(small)
	require.NoError(t, err)

	big := CharacterDescription{
		States: []StateDescription{
			{Name: "a-very-long-state-name-to-fill-the-scratch-buffer", Total: 99, Tags: []string{"tag-one", "tag-two"}},
			{Name: "another-long-state-name-here", Total: 42},
		},
	}
	_, err = b.Encode(big)
	require.NoError(t, err)

	second, err := b.Encode(small)
	require.NoError(t, err)

	require.Equal(t, first, second, "encoding the same description must yield identical bytes regardless of encode history")
}
