package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriplets(t *testing.T) {
	{ // Out of order appends canonicalize to a sorted CSR, duplicates add
		tp := NewTriplets(3, 3)
		tp.Append(2, 1, 1.5)
		tp.Append(0, 0, 1.0)
		tp.Append(1, 2, 0.5)
		tp.Append(2, 1, 0.25)
		tp.Append(1, 0, 2.0)
		assert.Equal(t, 5, tp.Len())
		R := tp.ToCSR()
		assert.Equal(t, 4, R.NNZ())
		assert.Equal(t, 1.0, R.At(0, 0))
		assert.Equal(t, 2.0, R.At(1, 0))
		assert.Equal(t, 0.5, R.At(1, 2))
		assert.Equal(t, 1.75, R.At(2, 1))
		assert.Equal(t, 0.0, R.At(0, 1))
		nr, nc := R.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 3, nc)
	}
	{ // Storage walks rows in order with ascending columns
		tp := NewTriplets(2, 4)
		tp.Append(1, 3, 1)
		tp.Append(0, 2, 1)
		tp.Append(1, 0, 1)
		tp.Append(0, 1, 1)
		var seq [][2]int
		tp.ToCSR().DoNonZero(func(i, j int, v float64) {
			seq = append(seq, [2]int{i, j})
		})
		assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 0}, {1, 3}}, seq)
	}
	{ // Merge concatenates buffers with matching dims
		tpA := NewTriplets(2, 2)
		tpA.Append(0, 0, 1)
		tpB := NewTriplets(2, 2)
		tpB.Append(1, 1, 2)
		tpB.Append(0, 0, 3)
		tpA.Merge(tpB)
		assert.Equal(t, 3, tpA.Len())
		R := tpA.ToCSR()
		assert.Equal(t, 4.0, R.At(0, 0))
		assert.Equal(t, 2.0, R.At(1, 1))
		assert.Panics(t, func() { tpA.Merge(NewTriplets(3, 2)) })
	}
	{ // Empty rows get zero-length spans, not entries
		tp := NewTriplets(4, 4)
		tp.Append(0, 3, 1)
		tp.Append(3, 0, 1)
		R := tp.ToCSR()
		assert.Equal(t, 2, R.NNZ())
		assert.Equal(t, 0.0, R.At(1, 1))
		assert.Equal(t, 0.0, R.At(2, 2))
		rowNNZ := 0
		R.DoRowNonZero(1, func(i, j int, v float64) { rowNNZ++ })
		assert.Equal(t, 0, rowNNZ)
	}
	{ // Appends outside the declared dims panic
		tp := NewTriplets(2, 2)
		assert.Panics(t, func() { tp.Append(2, 0, 1) })
		assert.Panics(t, func() { tp.Append(0, -1, 1) })
		assert.Panics(t, func() { NewTriplets(-1, 2) })
	}
}

func TestCSRProducts(t *testing.T) {
	// 2x3 matrix [1 0 2; 0 3 0]
	tp := NewTriplets(2, 3)
	tp.Append(0, 0, 1)
	tp.Append(0, 2, 2)
	tp.Append(1, 1, 3)
	R := tp.ToCSR()
	{ // MulVec against a dense right hand side
		b := R.MulVec([]float64{1, 1, 1})
		assert.True(t, nearVec([]float64{3, 3}, b, 1.e-08))
		b = R.MulVec([]float64{0.5, 2, -1})
		assert.True(t, nearVec([]float64{-1.5, 6}, b, 1.e-08))
		assert.Panics(t, func() { R.MulVec([]float64{1, 1}) })
	}
	{ // RowSums equals a product with ones
		sums := R.RowSums()
		assert.True(t, nearVec([]float64{3, 3}, sums, 1.e-08))
	}
	{ // Float sums accumulate left to right
		tp := NewTriplets(1, 3)
		tp.Append(0, 0, 1.1)
		tp.Append(0, 1, 0.1)
		tp.Append(0, 2, 0.3)
		sums := tp.ToCSR().RowSums()
		assert.True(t, near(1.5, sums[0]))
	}
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			return false
		}
	}
	return true
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
