package parameters

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFromConfigString(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   Params
	}{
		{name: "empty", config: "", want: Params{}},
		{name: "flag", config: "stability", want: Params{"stability": ""}},
		{name: "key value", config: "depth=3", want: Params{"depth": "3"}},
		{
			name:   "mixed",
			config: "depth=3, stability ,seed=42",
			want:   Params{"depth": "3", "stability": "", "seed": "42"},
		},
		{name: "value with equals", config: "a=b=c", want: Params{"a": "b=c"}},
		{name: "empty entries", config: ",,depth=1,", want: Params{"depth": "1"}},
		{name: "last wins", config: "depth=1,depth=2", want: Params{"depth": "2"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, NewFromConfigString(test.config))
		})
	}
}

func TestParams_String(t *testing.T) {
	params := Params{"seed": "42", "depth": "3", "stability": ""}
	require.Equal(t, "depth=3,seed=42,stability", params.String())

	require.Equal(t, params, NewFromConfigString(params.String()))
	require.Equal(t, "", Params{}.String())
}

func TestGetParamOr(t *testing.T) {
	params := NewFromConfigString("depth=3,stability,off=false,name=edax,seed=-7,ratio=0.5,bad=x")

	depth, err := GetParamOr(params, "depth", 4)
	require.NoError(t, err)
	require.Equal(t, 3, depth)

	missing, err := GetParamOr(params, "missing", 4)
	require.NoError(t, err)
	require.Equal(t, 4, missing)

	stability, err := GetParamOr(params, "stability", false)
	require.NoError(t, err)
	require.True(t, stability)

	off, err := GetParamOr(params, "off", true)
	require.NoError(t, err)
	require.False(t, off)

	name, err := GetParamOr(params, "name", "")
	require.NoError(t, err)
	require.Equal(t, "edax", name)

	seed, err := GetParamOr(params, "seed", int64(0))
	require.NoError(t, err)
	require.Equal(t, int64(-7), seed)

	ratio, err := GetParamOr(params, "ratio", 1.0)
	require.NoError(t, err)
	require.InDelta(t, 0.5, ratio, 1e-9)

	_, err = GetParamOr(params, "bad", 0)
	require.ErrorContains(t, err, `bad="x"`)

	_, err = GetParamOr(params, "bad", false)
	require.Error(t, err)

	// Get does not consume
	require.Len(t, params, 7)
}

func TestPopParamOr(t *testing.T) {
	params := NewFromConfigString("depth=3,bad=x")

	depth, err := PopParamOr(params, "depth", 4)
	require.NoError(t, err)
	require.Equal(t, 3, depth)
	require.NotContains(t, params, "depth")

	_, err = PopParamOr(params, "bad", 0)
	require.Error(t, err)
	require.Contains(t, params, "bad")
}

func TestCheckEmpty(t *testing.T) {
	require.NoError(t, CheckEmpty(Params{}))
	require.NoError(t, CheckEmpty(nil))

	err := CheckEmpty(Params{"zeta": "", "alpha": "1"})
	require.EqualError(t, err, "unknown parameters: alpha, zeta")
}
