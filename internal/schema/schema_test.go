package schema

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nucleron/yaplc/internal/model"
	"github.com/nucleron/yaplc/internal/parser"
	"github.com/nucleron/yaplc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const counterTemplate = `
	UGRP DI 1
	    ULOC IX 0..7
	ENDGRP
	GRP Counter 3
	    GRP Cnt [n:0..1]
	        LOC ID "Value" [n:0..1]
	        LOC QX "Mode" [m:fast,slow] [k:4]
	    ENDGRP
	ENDGRP
`

func parse(t *testing.T, src string) *model.Template {
	t.Helper()
	tpl, err := parser.Parse(context.Background(), strings.NewReader(testutil.Unindent(src)), "test.cfg")
	require.NoError(t, err)
	return tpl
}

func TestBuild(t *testing.T) {
	tpl := parse(t, counterTemplate)

	descs := Build(tpl)

	expected := []*Descriptor{
		{
			Path:   "Counter/Cnt",
			Node:   GroupNode,
			Fields: []Field{{Name: "n", Kind: Range, Min: 0, Max: 1}},
		},
		{
			Path:   "Counter/Cnt/Value",
			Node:   LocationNode,
			Fields: []Field{{Name: "n", Kind: Range, Min: 0, Max: 1}},
		},
		{
			Path: "Counter/Cnt/Mode",
			Node: LocationNode,
			Fields: []Field{
				{Name: "m", Kind: Choice, Choices: []string{"fast", "slow"}},
				{Name: "k", Kind: Integer, Default: "4"},
			},
		},
	}
	if diff := cmp.Diff(expected, descs); diff != "" {
		t.Errorf("descriptors mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, ForGroup(tpl, tpl.Group("DI")))
	assert.Nil(t, ForLocation(tpl, tpl.Group("DI").Location("IX")))
}

func TestDescriptor_Validate(t *testing.T) {
	d := &Descriptor{
		Path: "Counter/Cnt/Mode",
		Fields: []Field{
			{Name: "n", Kind: Range, Min: 1, Max: 3},
			{Name: "m", Kind: Choice, Choices: []string{"fast", "slow"}},
			{Name: "k", Kind: Integer, Default: "4"},
		},
	}

	testCases := []struct {
		name    string
		values  map[string]string
		errPart string
	}{
		{name: "all valid", values: map[string]string{"n": "2", "m": "slow", "k": "17"}},
		{name: "nothing supplied", values: nil},
		{name: "below range", values: map[string]string{"n": "0"}, errPart: "out of range 1..3"},
		{name: "above range", values: map[string]string{"n": "4"}, errPart: "out of range"},
		{name: "not a number", values: map[string]string{"n": "x"}, errPart: "non-negative integer"},
		{name: "negative integer", values: map[string]string{"k": "-1"}, errPart: "non-negative integer"},
		{name: "bad choice", values: map[string]string{"m": "medium"}, errPart: "not one of fast, slow"},
		{name: "unknown field", values: map[string]string{"z": "1"}, errPart: `unknown parameter "z"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := d.Validate(tc.values)
			if tc.errPart == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
			assert.Contains(t, err.Error(), d.Path)
		})
	}
}

func TestDescriptor_Normalize(t *testing.T) {
	d := &Descriptor{
		Path: "G/C",
		Fields: []Field{
			{Name: "n", Kind: Range, Min: 0, Max: 3},
			{Name: "m", Kind: Choice, Choices: []string{"a", "01"}},
			{Name: "k", Kind: Integer, Default: "4"},
		},
	}
	in := map[string]string{"n": "03", "m": "01", "k": "0007"}

	got, err := d.Normalize(in)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"n": "3", "m": "01", "k": "7"}, got)
	assert.Equal(t, "03", in["n"], "input must not be modified")

	_, err = d.Normalize(map[string]string{"n": "004"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range 0..3")

	decoded, err := d.Decode(cty.ObjectVal(map[string]cty.Value{"n": cty.StringVal("02")}))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"n": "2"}, decoded)
}

func TestDescriptor_Cty(t *testing.T) {
	d := &Descriptor{
		Path: "G",
		Fields: []Field{
			{Name: "n", Kind: Range, Min: 0, Max: 7},
			{Name: "m", Kind: Choice, Choices: []string{"a", "b"}},
		},
	}

	assert.True(t, d.ImpliedType().Equals(cty.Object(map[string]cty.Type{
		"n": cty.Number,
		"m": cty.String,
	})))

	t.Run("object", func(t *testing.T) {
		got, err := d.Decode(cty.ObjectVal(map[string]cty.Value{
			"n": cty.NumberIntVal(5),
			"m": cty.StringVal("b"),
		}))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"n": "5", "m": "b"}, got)
	})

	t.Run("number given as string", func(t *testing.T) {
		got, err := d.Decode(cty.MapVal(map[string]cty.Value{"n": cty.StringVal("3")}))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"n": "3"}, got)
	})

	t.Run("null", func(t *testing.T) {
		got, err := d.Decode(cty.NullVal(cty.DynamicPseudoType))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	testCases := []struct {
		name    string
		val     cty.Value
		errPart string
	}{
		{name: "fraction", val: cty.ObjectVal(map[string]cty.Value{"n": cty.NumberFloatVal(1.5)}), errPart: "whole number"},
		{name: "out of range", val: cty.ObjectVal(map[string]cty.Value{"n": cty.NumberIntVal(9)}), errPart: "out of range"},
		{name: "not an object", val: cty.StringVal("n"), errPart: "must be an object"},
		{name: "list value", val: cty.ObjectVal(map[string]cty.Value{"m": cty.ListVal([]cty.Value{cty.StringVal("a")})}), errPart: "cannot convert"},
		{name: "null attribute", val: cty.ObjectVal(map[string]cty.Value{"m": cty.NullVal(cty.String)}), errPart: "null"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := d.Decode(tc.val)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "n: 0..7", (&Field{Name: "n", Kind: Range, Max: 7}).String())
	assert.Equal(t, "m: {a,b}", (&Field{Name: "m", Kind: Choice, Choices: []string{"a", "b"}}).String())
	assert.Equal(t, "k: integer (default 4)", (&Field{Name: "k", Kind: Integer, Default: "4"}).String())
}
