package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	s, err := Sum(a)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Rank())
	v, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, 21.0, v)
}

func TestSumAxis(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	s0, err := SumAxis(a, 0, false)
	require.NoError(t, err)
	assert.Equal(t, Shape{3}, s0.Shape())
	assert.Equal(t, []float64{5, 7, 9}, values(t, s0))

	s1, err := SumAxis(a, 1, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 15}, values(t, s1))

	sk, err := SumAxis(a, -1, true)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 1}, sk.Shape())
	assert.Equal(t, []float64{6, 15}, values(t, sk))

	_, err = SumAxis(a, 2, false)
	assert.ErrorIs(t, err, ErrAxis)
}

func TestSumWidensIntegers(t *testing.T) {
	a, err := FromSlice([]int8{100, 100, 100}, Shape{3})
	require.NoError(t, err)
	s, err := Sum(a)
	require.NoError(t, err)
	assert.Equal(t, Int64, s.DType())
	v, err := s.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(300), v)
}

func TestSumBoolCountsTrue(t *testing.T) {
	a, err := FromSlice([]bool{true, false, true, true}, Shape{4})
	require.NoError(t, err)
	s, err := Sum(a)
	require.NoError(t, err)
	assert.Equal(t, Int64, s.DType())
	v, err := s.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

func TestSumEmptyIsZero(t *testing.T) {
	a, err := Zeros(Shape{0}, Float64)
	require.NoError(t, err)
	s, err := Sum(a)
	require.NoError(t, err)
	v, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestProd(t *testing.T) {
	a := mki(t, []int64{2, 3, 4}, Shape{3})
	p, err := Prod(a)
	require.NoError(t, err)
	v, err := p.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(24), v)

	empty, err := Zeros(Shape{0}, Int64)
	require.NoError(t, err)
	p, err = Prod(empty)
	require.NoError(t, err)
	v, err = p.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v) // empty product is the identity
}

func TestMaxMin(t *testing.T) {
	a := mkf(t, []float64{3, 1, 4, 1, 5, 9}, Shape{2, 3})
	mx, err := Max(a)
	require.NoError(t, err)
	v, err := mx.Get()
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	mn, err := Min(a)
	require.NoError(t, err)
	v, err = mn.Get()
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	mx0, err := MaxAxis(a, 0, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 5, 9}, values(t, mx0))

	mn1, err := MinAxis(a, 1, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, values(t, mn1))
}

func TestMaxEmptyFails(t *testing.T) {
	a, err := Zeros(Shape{0}, Float64)
	require.NoError(t, err)
	_, err = Max(a)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = Min(a)
	assert.ErrorIs(t, err, ErrDomain)

	b, err := Zeros(Shape{2, 0}, Float64)
	require.NoError(t, err)
	_, err = MaxAxis(b, 1, false)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestMaxKeepsDType(t *testing.T) {
	a, err := FromSlice([]int8{-3, 7}, Shape{2})
	require.NoError(t, err)
	mx, err := Max(a)
	require.NoError(t, err)
	assert.Equal(t, Int8, mx.DType())
}

func TestAllAny(t *testing.T) {
	a := mkf(t, []float64{1, 0, 2}, Shape{3})

	all, err := All(a)
	require.NoError(t, err)
	assert.Equal(t, Bool, all.DType())
	v, err := all.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	any, err := Any(a)
	require.NoError(t, err)
	v, err = any.Get()
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	// Empty: all is vacuously true, any is false.
	empty, err := Zeros(Shape{0}, Float64)
	require.NoError(t, err)
	all, err = All(empty)
	require.NoError(t, err)
	v, err = all.Get()
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	any, err = Any(empty)
	require.NoError(t, err)
	v, err = any.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestMeanMatchesSumOverSize(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	m, err := Mean(a)
	require.NoError(t, err)
	s, err := Sum(a)
	require.NoError(t, err)
	mv, err := m.Get()
	require.NoError(t, err)
	sv, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, sv/6, mv)
}

func TestMeanIsFloatForIntInput(t *testing.T) {
	a := mki(t, []int64{1, 2}, Shape{2})
	m, err := Mean(a)
	require.NoError(t, err)
	assert.Equal(t, Float64, m.DType())
	v, err := m.Get()
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func TestMeanAxis(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	m, err := MeanAxis(a, 1, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, values(t, m))
}

func TestVarStd(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3, 4}, Shape{4})

	v, err := Var(a, 0)
	require.NoError(t, err)
	vv, err := v.Get()
	require.NoError(t, err)
	assert.InDelta(t, 1.25, vv, 1e-15)

	v1, err := Var(a, 1)
	require.NoError(t, err)
	vv, err = v1.Get()
	require.NoError(t, err)
	assert.InDelta(t, 5.0/3.0, vv, 1e-15)

	s, err := Std(a, 0)
	require.NoError(t, err)
	sv, err := s.Get()
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(1.25), sv, 1e-15)
}

func TestVarAxis(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3, 5}, Shape{2, 2})
	v, err := VarAxis(a, 1, 0, false)
	require.NoError(t, err)
	got := values(t, v)
	assert.InDelta(t, 0.25, got[0], 1e-15)
	assert.InDelta(t, 1.0, got[1], 1e-15)
}

func TestArgMaxArgMin(t *testing.T) {
	a := mkf(t, []float64{3, 9, 1, 9}, Shape{4})

	am, err := ArgMax(a)
	require.NoError(t, err)
	assert.Equal(t, Int64, am.DType())
	v, err := am.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v) // first occurrence wins

	an, err := ArgMin(a)
	require.NoError(t, err)
	v, err = an.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestArgMaxNaNWins(t *testing.T) {
	a := mkf(t, []float64{1, math.NaN(), 9}, Shape{3})
	am, err := ArgMax(a)
	require.NoError(t, err)
	v, err := am.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestArgReduceExactInt64(t *testing.T) {
	// Values one apart above 2^53 are indistinguishable as float64, so
	// the comparison must run on the integer values themselves.
	a, err := FromSlice([]int64{1 << 62, 1<<62 + 1}, Shape{2})
	require.NoError(t, err)
	am, err := ArgMax(a)
	require.NoError(t, err)
	v, err := am.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	an, err := ArgMin(a)
	require.NoError(t, err)
	v, err = an.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestArgReduceExactUint64(t *testing.T) {
	a, err := FromSlice([]uint64{math.MaxUint64, math.MaxUint64 - 1, math.MaxUint64, 0}, Shape{2, 2})
	require.NoError(t, err)
	am, err := ArgMax(a)
	require.NoError(t, err)
	v, err := am.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	ax, err := ArgMaxAxis(a, 1, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, values(t, ax))
	an, err := ArgMinAxis(a, 1, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, values(t, an))
}

func TestArgMaxAxis(t *testing.T) {
	a := mkf(t, []float64{1, 5, 2, 8, 3, 4}, Shape{2, 3})
	am, err := ArgMaxAxis(a, 1, false)
	require.NoError(t, err)
	assert.Equal(t, Shape{2}, am.Shape())
	assert.Equal(t, []float64{1, 0}, values(t, am))

	an, err := ArgMinAxis(a, 0, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, values(t, an))
}

func TestArgMaxEmptyFails(t *testing.T) {
	a, err := Zeros(Shape{0}, Float64)
	require.NoError(t, err)
	_, err = ArgMax(a)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestReductionOnView(t *testing.T) {
	a := mkf(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	tr, err := Transpose(a) // shape (3, 2)
	require.NoError(t, err)
	s, err := SumAxis(tr, 0, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 15}, values(t, s))
}
