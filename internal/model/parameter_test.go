package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParameter(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected Parameter
		values   []string
	}{
		{
			name:     "number",
			body:     "5",
			expected: Parameter{Kind: Number, Value: "5"},
			values:   []string{"5"},
		},
		{
			name:     "number is kept verbatim",
			body:     " 07 ",
			expected: Parameter{Kind: Number, Value: "07"},
			values:   []string{"07"},
		},
		{
			name:     "range",
			body:     "2..5",
			expected: Parameter{Kind: Range, Min: 2, Max: 5},
			values:   []string{"2", "3", "4", "5"},
		},
		{
			name:     "single value range",
			body:     "3..3",
			expected: Parameter{Kind: Range, Min: 3, Max: 3},
			values:   []string{"3"},
		},
		{
			name:     "items keep order and duplicates",
			body:     "9, 0,5,0",
			expected: Parameter{Kind: Items, Items: []string{"9", "0", "5", "0"}},
			values:   []string{"9", "0", "5", "0"},
		},
		{
			name:     "items need not be numeric",
			body:     "fast,slow",
			expected: Parameter{Kind: Items, Items: []string{"fast", "slow"}},
			values:   []string{"fast", "slow"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ParseParameter("", tc.body)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
			assert.Equal(t, tc.values, p.Values())
			assert.Equal(t, len(tc.values), p.Len())
			assert.False(t, p.Named())
		})
	}
}

func TestParseParameter_Errors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "empty", body: "  "},
		{name: "three range parts", body: "1..2..3"},
		{name: "negative bound", body: "-1..3"},
		{name: "non numeric bound", body: "a..3"},
		{name: "missing upper bound", body: "1.."},
		{name: "reversed bounds", body: "5..2"},
		{name: "empty item", body: "1,,2"},
		{name: "trailing comma", body: "1,2,"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseParameter("", tc.body)
			require.Error(t, err)
		})
	}
}

func TestParseParameter_RangeTooLarge(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		errPart string
	}{
		{name: "largest int", body: "0..9223372036854775807", errPart: "range too large"},
		{name: "one past the limit", body: "0..65536", errPart: "range too large"},
		{name: "bound overflows int", body: "0..99999999999999999999", errPart: "incorrect bounds"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseNamedParameter("n:" + tc.body)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}

	p, err := ParseParameter("n", "1..65536")
	require.NoError(t, err)
	assert.Equal(t, MaxRangeLen, p.Len())
	assert.Len(t, p.Values(), MaxRangeLen)
}

func TestParameter_UnusableRange(t *testing.T) {
	for _, p := range []Parameter{
		{Kind: Range, Min: 0, Max: int(^uint(0) >> 1)},
		{Kind: Range, Min: 5, Max: 2},
	} {
		assert.Zero(t, p.Len())
		assert.Nil(t, p.Values())
	}
}

func TestParseNamedParameter(t *testing.T) {
	p, err := ParseNamedParameter("n: 0..7")
	require.NoError(t, err)
	assert.Equal(t, Parameter{Name: "n", Kind: Range, Min: 0, Max: 7}, p)
	assert.True(t, p.Named())
	assert.Equal(t, "[n:0..7]", p.String())

	for _, bad := range []string{"0..7", "n:1:2", ":1", "a.b:1", "n:"} {
		t.Run(bad, func(t *testing.T) {
			_, err := ParseNamedParameter(bad)
			require.Error(t, err)
		})
	}
}

func TestParameter_Contains(t *testing.T) {
	rng := Parameter{Kind: Range, Min: 1, Max: 4}
	assert.True(t, rng.Contains("1"))
	assert.True(t, rng.Contains("04"))
	assert.False(t, rng.Contains("5"))
	assert.False(t, rng.Contains("x"))

	items := Parameter{Kind: Items, Items: []string{"a", "b"}}
	assert.True(t, items.Contains("b"))
	assert.False(t, items.Contains("c"))

	num := Parameter{Kind: Number, Value: "3"}
	assert.True(t, num.Contains("3"))
	assert.False(t, num.Contains("4"))
}

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("Analog_In-1"))
	require.Error(t, ValidateName(""))
	for _, c := range ReservedChars {
		name := "a" + string(c) + "b"
		t.Run(name, func(t *testing.T) {
			require.Error(t, ValidateName(name))
		})
	}
}
