package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

type closes []float64

func TestSlice_NamedAndFloat32(t *testing.T) {
	want, err := CalculateEMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)

	got, err := CalculateEMASeries(Slice[float32]([]float32{1, 2, 3, 4, 5}), 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = CalculateEMASeries(Slice[float64](closes{1, 2, 3, 4, 5}), 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVector(t *testing.T) {
	prices := wave(40)
	v := mat.NewVecDense(len(prices), append([]float64(nil), prices...))

	s := Vector(v)
	require.Equal(t, len(prices), s.Len())

	want, err := CalculateRSI(prices, 14)
	require.NoError(t, err)
	got, err := CalculateRSISeries(s, 14)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
