package expand

import (
	"strings"
	"testing"

	"github.com/nucleron/yaplc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParam(t *testing.T, name, body string) model.Parameter {
	t.Helper()
	p, err := model.ParseParameter(name, body)
	require.NoError(t, err)
	return p
}

func mustJoin(t *testing.T, params []model.Parameter, fixed map[string]string) [][]string {
	t.Helper()
	tuples, err := Join(params, fixed)
	require.NoError(t, err)
	return tuples
}

func mustCount(t *testing.T, params []model.Parameter, fixed map[string]string) int {
	t.Helper()
	n, err := Count(params, fixed)
	require.NoError(t, err)
	return n
}

func TestJoin_RangeEnumeration(t *testing.T) {
	for _, tc := range []struct{ lo, hi int }{{0, 0}, {0, 2}, {3, 9}, {10, 12}} {
		p := model.Parameter{Name: "n", Kind: model.Range, Min: tc.lo, Max: tc.hi}

		tuples := mustJoin(t, []model.Parameter{p}, nil)

		require.Len(t, tuples, tc.hi-tc.lo+1)
		for i, tuple := range tuples {
			require.Len(t, tuple, 1)
			assert.Equal(t, p.Values()[i], tuple[0])
		}
		assert.Equal(t, []string{itoa(tc.lo)}, tuples[0])
		assert.Equal(t, []string{itoa(tc.hi)}, tuples[len(tuples)-1])
	}
}

func TestJoin_ItemsKeepSourceOrder(t *testing.T) {
	p := mustParam(t, "n", "0,5,9")

	assert.Equal(t, [][]string{{"0"}, {"5"}, {"9"}}, mustJoin(t, []model.Parameter{p}, nil))
}

func TestJoin_CartesianOrder(t *testing.T) {
	params := []model.Parameter{
		mustParam(t, "a", "0..1"),
		mustParam(t, "", "x,y,z"),
		mustParam(t, "", "7"),
	}

	tuples := mustJoin(t, params, nil)

	expected := [][]string{
		{"0", "x", "7"}, {"0", "y", "7"}, {"0", "z", "7"},
		{"1", "x", "7"}, {"1", "y", "7"}, {"1", "z", "7"},
	}
	assert.Equal(t, expected, tuples)
	assert.Equal(t, 6, mustCount(t, params, nil))
}

func TestJoin_Completeness(t *testing.T) {
	params := []model.Parameter{
		mustParam(t, "a", "1..3"),
		mustParam(t, "b", "p,q"),
		mustParam(t, "c", "0..3"),
	}

	tuples := mustJoin(t, params, nil)

	require.Len(t, tuples, 3*2*4)
	seen := make(map[string]bool)
	for _, tuple := range tuples {
		key := strings.Join(tuple, "|")
		assert.False(t, seen[key], "duplicate tuple %s", key)
		seen[key] = true
		for i, v := range tuple {
			assert.True(t, params[i].Contains(v))
		}
	}
}

func TestJoin_FixedValues(t *testing.T) {
	params := []model.Parameter{
		mustParam(t, "a", "0..3"),
		mustParam(t, "b", "x,y"),
		mustParam(t, "", "0..1"),
	}

	t.Run("named parameter collapses", func(t *testing.T) {
		fixed := map[string]string{"a": "2"}

		tuples := mustJoin(t, params, fixed)

		assert.Len(t, tuples, mustCount(t, params, nil)/4)
		for _, tuple := range tuples {
			assert.Equal(t, "2", tuple[0])
		}
	})

	t.Run("value outside the domain is used as given", func(t *testing.T) {
		tuples := mustJoin(t, params[:1], map[string]string{"a": "42"})
		assert.Equal(t, [][]string{{"42"}}, tuples)
	})

	t.Run("positional parameters ignore the empty name", func(t *testing.T) {
		tuples := mustJoin(t, params[2:], map[string]string{"": "9"})
		assert.Equal(t, [][]string{{"0"}, {"1"}}, tuples)
	})

	t.Run("unrelated names are ignored", func(t *testing.T) {
		assert.Equal(t, mustCount(t, params, nil), mustCount(t, params, map[string]string{"zz": "1"}))
	})
}

func TestJoin_Empty(t *testing.T) {
	assert.Equal(t, [][]string{{}}, mustJoin(t, nil, nil))
	assert.Equal(t, 1, mustCount(t, nil, nil))
}

func TestJoin_Limits(t *testing.T) {
	wide := mustParam(t, "a", "0..1023")

	testCases := []struct {
		name    string
		params  []model.Parameter
		errPart string
	}{
		{
			name:    "range longer than allowed",
			params:  []model.Parameter{{Name: "n", Kind: model.Range, Min: 0, Max: int(^uint(0) >> 1)}},
			errPart: "cannot be expanded",
		},
		{
			name:    "inverted range",
			params:  []model.Parameter{{Name: "n", Kind: model.Range, Min: 3, Max: 1}},
			errPart: "cannot be expanded",
		},
		{
			name:    "product too large",
			params:  []model.Parameter{wide, wide, wide},
			errPart: "expansion too large",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tuples, err := Join(tc.params, nil)
			require.Error(t, err)
			assert.Nil(t, tuples)
			assert.Contains(t, err.Error(), tc.errPart)

			_, err = Count(tc.params, nil)
			require.Error(t, err)
		})
	}

	t.Run("fixing a value brings the product back under the limit", func(t *testing.T) {
		params := []model.Parameter{wide, mustParam(t, "b", "0..1023"), mustParam(t, "c", "0..1023")}
		assert.Equal(t, 1024*1024, mustCount(t, params, map[string]string{"a": "5"}))
	})
}

func itoa(n int) string {
	return model.Parameter{Kind: model.Range, Min: n, Max: n}.Values()[0]
}
