package fieldcodec

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecodeInt(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		token   string
		want    int
		wantErr bool
	}{
		{name: "plain", token: "16", want: 16},
		{name: "negative", token: "-3", want: -3},
		{name: "surrounding space", token: " 8 ", want: 8},
		{name: "empty", token: "", wantErr: true},
		{name: "letters", token: "abc", wantErr: true},
		{name: "trailing garbage", token: "12x", wantErr: true},
		{name: "float text", token: "1.5", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeInt(tc.token)
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrNotNumeric))
				var ve *ValueError
				require.True(t, errors.As(err, &ve))
				require.Equal(t, tc.token, ve.Token)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeFloat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		token   string
		want    float64
		wantErr bool
	}{
		{name: "decimal", token: "0.05", want: 0.05},
		{name: "scientific", token: "1e-4", want: 0.0001},
		{name: "integer text", token: "2", want: 2},
		{name: "empty", token: "", wantErr: true},
		{name: "garbage", token: "0.1q", wantErr: true},
		{name: "nan", token: "NaN", wantErr: true},
		{name: "inf", token: "+Inf", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeFloat(tc.token)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrNotNumeric)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"1", "2", "3"}, SplitList("1,2,3", ','))
	require.Equal(t, []string{"1", "", "3"}, SplitList("1,,3", ','))
	require.Equal(t, []string{"", ""}, SplitList(":", ':'))
	require.Equal(t, []string{""}, SplitList("", ','))
	require.Equal(t, []string{"4:8"}, SplitList("4:8", ','))
}

func TestDecodeIntTriple(t *testing.T) {
	t.Parallel()

	got, err := DecodeIntTriple("4,5,6", ',')
	require.NoError(t, err)
	require.Equal(t, [3]int{4, 5, 6}, got)

	_, err = DecodeIntTriple("4,5", ',')
	require.ErrorIs(t, err, ErrWrongArity)

	_, err = DecodeIntTriple("4,5,6,7", ',')
	require.ErrorIs(t, err, ErrWrongArity)

	_, err = DecodeIntTriple("4,,6", ',')
	require.ErrorIs(t, err, ErrNotNumeric)
	require.Contains(t, err.Error(), "field 2")
}

func TestDecodeFloatTriple(t *testing.T) {
	t.Parallel()

	got, err := DecodeFloatTriple("0.1,0.0001,0.1", ',')
	require.NoError(t, err)
	require.Equal(t, [3]float64{0.1, 0.0001, 0.1}, got)

	_, err = DecodeFloatTriple("0.1;0.2;0.3", ',')
	require.ErrorIs(t, err, ErrWrongArity)
}

func TestDecodeQuadrature(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		token   string
		want    Quadrature
		wantErr error
	}{
		{name: "simple", token: "32", want: Quadrature{Directions: 32}},
		{name: "product", token: "4:8", want: Quadrature{Directions: 32, Polar: 4, Azimuthal: 8}},
		{name: "three fields", token: "1:2:3", wantErr: ErrWrongArity},
		{name: "bad polar", token: "x:8", wantErr: ErrNotNumeric},
		{name: "missing azimuthal", token: "4:", wantErr: ErrNotNumeric},
		{name: "bad simple", token: "many", wantErr: ErrNotNumeric},
		{name: "product overflows", token: "3:6148914691236517216", wantErr: ErrNotNumeric},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeQuadrature(tc.token)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Quadrature mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuadrature_Simple(t *testing.T) {
	t.Parallel()

	require.True(t, Quadrature{Directions: 96}.Simple())
	require.False(t, Quadrature{Directions: 32, Polar: 4, Azimuthal: 8}.Simple())
}

func TestDecodeChoice(t *testing.T) {
	t.Parallel()

	choices := []string{"sweep", "bj"}

	idx, err := DecodeChoice("BJ", choices)
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	idx, err = DecodeChoice("Sweep", choices)
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	idx, err = DecodeChoice("foo", choices)
	require.ErrorIs(t, err, ErrUnknownChoice)
	require.Equal(t, -1, idx)
	require.Contains(t, err.Error(), "sweep, bj")
}

func TestProduct(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		factors []int
		want    int
		wantOK  bool
	}{
		{name: "empty", factors: nil, want: 1, wantOK: true},
		{name: "triple", factors: []int{16, 16, 16}, want: 4096, wantOK: true},
		{name: "zero short-circuits", factors: []int{0, math.MaxInt, math.MaxInt}, want: 0, wantOK: true},
		{name: "negative", factors: []int{-4, 8}, want: -32, wantOK: true},
		{name: "wraps to small value", factors: []int{3, 6148914691236517216}, wantOK: false},
		{name: "wraps to zero", factors: []int{4294967296, 4294967296, 1}, wantOK: false},
		{name: "min int times minus one", factors: []int{math.MinInt, -1}, wantOK: false},
		{name: "max int", factors: []int{math.MaxInt, 1}, want: math.MaxInt, wantOK: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Product(tc.factors...)

			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				require.Equal(t, tc.want, got)
			}
		})
	}
}
