// internal/iecaddr/address_test.go
package iecaddr

import (
	"slices"
	"testing"

	"github.com/nucleron/yaplc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_Forms(t *testing.T) {
	testCases := []struct {
		name     string
		addr     *Address
		str      string
		varName  string
		location string
	}{
		{
			name:     "input bit",
			addr:     New(model.Input, model.Bit, "1", "3"),
			str:      "%IX1.3",
			varName:  "_IX1_3",
			location: "X1.3",
		},
		{
			name:     "nested output word",
			addr:     New(model.Output, model.Word, "4", "0", "9"),
			str:      "%QW4.0.9",
			varName:  "_QW4_0_9",
			location: "W4.0.9",
		},
		{
			name:     "nil address",
			addr:     nil,
			str:      "",
			varName:  "",
			location: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.str, tc.addr.String())
			assert.Equal(t, tc.varName, tc.addr.VarName())
			assert.Equal(t, tc.location, tc.addr.Location())
		})
	}
}

func TestAddress_RoundTrip(t *testing.T) {
	for _, raw := range []string{"%IX1.3", "%MD0", "%QW4.0.9", "%IB2.fast"} {
		t.Run(raw, func(t *testing.T) {
			addr, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, addr.String())

			again, err := Parse(addr.String())
			require.NoError(t, err)
			assert.True(t, addr.Equal(again))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, raw := range []string{"", "IX1", "%IX", "%ZX1", "%IZ1", "%IX1..2", "%IX1.", "%IX1.a b"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			require.Error(t, err)
		})
	}
}

func TestAddress_Equal(t *testing.T) {
	a := New(model.Input, model.Bit, "1")
	assert.True(t, a.Equal(New(model.Input, model.Bit, "1")))
	assert.False(t, a.Equal(New(model.Memory, model.Bit, "1")))
	assert.False(t, a.Equal(New(model.Input, model.Bit, "2")))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Address)(nil).Equal(nil))
}

func TestCompare(t *testing.T) {
	addrs := []*Address{
		New(model.Input, model.Bit, "1", "10"),
		New(model.Output, model.Bit, "0"),
		New(model.Input, model.Bit, "1", "2"),
		New(model.Input, model.Bit, "1"),
		New(model.Input, model.Bit, "1", "b"),
	}

	slices.SortFunc(addrs, Compare)

	var got []string
	for _, a := range addrs {
		got = append(got, a.String())
	}
	assert.Equal(t, []string{"%IX1", "%IX1.2", "%IX1.10", "%IX1.b", "%QX0"}, got)
}
