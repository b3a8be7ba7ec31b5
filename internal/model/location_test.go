package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	typ, dt, err := ParseCode("QW")
	require.NoError(t, err)
	assert.Equal(t, Output, typ)
	assert.Equal(t, Word, dt)
	assert.Equal(t, "WORD", dt.IECType())
	assert.Equal(t, 16, dt.Size())

	for _, bad := range []string{"", "I", "IXX", "AX", "IZ", "ix"} {
		t.Run(bad, func(t *testing.T) {
			_, _, err := ParseCode(bad)
			require.Error(t, err)
			assert.Contains(t, err.Error(), bad)
		})
	}
}

func TestDataTypeTables(t *testing.T) {
	testCases := []struct {
		dt   DataType
		iec  string
		size int
	}{
		{Bit, "BOOL", 1},
		{Byte, "BYTE", 8},
		{Word, "WORD", 16},
		{DoubleWord, "DWORD", 32},
		{LongWord, "LWORD", 64},
		{String, "STRING", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.iec, func(t *testing.T) {
			assert.Equal(t, tc.iec, tc.dt.IECType())
			assert.Equal(t, tc.size, tc.dt.Size())
		})
	}
}

func TestNewLocation(t *testing.T) {
	t.Run("plain location", func(t *testing.T) {
		loc, err := NewLocation("IX", false, 0, "3")
		require.NoError(t, err)
		assert.Equal(t, Input, loc.Type)
		assert.Equal(t, Bit, loc.DataType)
		assert.Equal(t, []Parameter{{Kind: Number, Value: "3"}}, loc.Params)
		assert.False(t, loc.Parametrized())
		assert.Equal(t, "IX", loc.Name())
		assert.Equal(t, GroupID(0), loc.Group())
	})

	t.Run("descriptive name and named parameter", func(t *testing.T) {
		loc, err := NewLocation("MW", true, 2, `"Chan"`, "[n:0..2]")
		require.NoError(t, err)
		assert.True(t, loc.Unique)
		assert.True(t, loc.Parametrized())
		assert.Equal(t, "Chan", loc.Description)
		assert.Equal(t, "Chan", loc.Name())
		assert.True(t, loc.Matches("Chan"))
		assert.True(t, loc.Matches("MW"))
		assert.Equal(t, `ULOC MW "Chan" [n:0..2]`, loc.String())
	})

	t.Run("name may follow the parameter", func(t *testing.T) {
		loc, err := NewLocation("IX", false, 0, "[n:0,5,9]", `"Chan"`)
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "5", "9"}, loc.Params[0].Values())
	})

	t.Run("positional range is not parametrized", func(t *testing.T) {
		loc, err := NewLocation("QX", false, 0, "0..3")
		require.NoError(t, err)
		assert.False(t, loc.Parametrized())
		assert.Equal(t, Range, loc.Params[0].Kind)
	})
}

func TestNewLocation_Errors(t *testing.T) {
	testCases := []struct {
		name string
		code string
		args []string
		msg  string
	}{
		{name: "parametrized without name", code: "IX", args: []string{"[n:0..2]"}, msg: "parametrized locations requires descriptive name"},
		{name: "bad code", code: "XI", msg: "XI"},
		{name: "reserved char in name", code: "IX", args: []string{`"a.b"`}, msg: "reserved"},
		{name: "two names", code: "IX", args: []string{`"a"`, `"b"`}, msg: "more than one"},
		{name: "bad range", code: "IX", args: []string{"3..1"}, msg: "bounds"},
		{name: "bad named parameter", code: "IX", args: []string{`"a"`, "[n]"}, msg: "name:value"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := NewLocation(tc.code, false, 0, tc.args...)
			require.Error(t, err)
			assert.Nil(t, loc)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}
