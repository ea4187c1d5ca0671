package utils

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// Triplets accumulates sparse matrix entries in coordinate form. Entries may
// arrive in any order and duplicate (i, j) locations are legal: duplicates
// are summed when the triplets are converted to CSR storage.
type Triplets struct {
	nr, nc int
	rows   []int
	cols   []int
	vals   []float64
}

func NewTriplets(nr, nc int) (tp *Triplets) {
	if nr < 0 || nc < 0 {
		panic(fmt.Errorf("invalid triplet dimensions %d x %d", nr, nc))
	}
	tp = &Triplets{
		nr: nr,
		nc: nc,
	}
	return
}

func (tp *Triplets) Dims() (nr, nc int) { return tp.nr, tp.nc }

func (tp *Triplets) Len() int { return len(tp.vals) }

// Reserve grows the underlying storage to hold n additional entries.
func (tp *Triplets) Reserve(n int) {
	if n <= 0 {
		return
	}
	need := len(tp.vals) + n
	if need <= cap(tp.vals) {
		return
	}
	rows := make([]int, len(tp.rows), need)
	cols := make([]int, len(tp.cols), need)
	vals := make([]float64, len(tp.vals), need)
	copy(rows, tp.rows)
	copy(cols, tp.cols)
	copy(vals, tp.vals)
	tp.rows, tp.cols, tp.vals = rows, cols, vals
}

func (tp *Triplets) Append(i, j int, val float64) {
	if i < 0 || i >= tp.nr || j < 0 || j >= tp.nc {
		panic(fmt.Errorf("triplet index (%d,%d) out of bounds for %d x %d matrix",
			i, j, tp.nr, tp.nc))
	}
	tp.rows = append(tp.rows, i)
	tp.cols = append(tp.cols, j)
	tp.vals = append(tp.vals, val)
}

// Merge appends all entries of other. Both accumulators must share dimensions.
func (tp *Triplets) Merge(other *Triplets) {
	if other.nr != tp.nr || other.nc != tp.nc {
		panic(fmt.Errorf("unable to merge triplets of %d x %d into %d x %d",
			other.nr, other.nc, tp.nr, tp.nc))
	}
	tp.rows = append(tp.rows, other.rows...)
	tp.cols = append(tp.cols, other.cols...)
	tp.vals = append(tp.vals, other.vals...)
}

// ToCSR converts the accumulated triplets into compressed sparse row storage.
// Entries are sorted by (row, col) and duplicate locations are summed, so the
// result is independent of the order entries were appended in.
func (tp *Triplets) ToCSR() (R CSR) {
	var (
		nnz  = len(tp.vals)
		perm = make([]int, nnz)
	)
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(a, b int) bool {
		pa, pb := perm[a], perm[b]
		if tp.rows[pa] != tp.rows[pb] {
			return tp.rows[pa] < tp.rows[pb]
		}
		return tp.cols[pa] < tp.cols[pb]
	})
	var (
		ia      = make([]int, tp.nr+1)
		ja      = make([]int, 0, nnz)
		data    = make([]float64, 0, nnz)
		lastRow = -1
		lastCol = -1
	)
	for _, p := range perm {
		i, j, v := tp.rows[p], tp.cols[p], tp.vals[p]
		if i == lastRow && j == lastCol {
			data[len(data)-1] += v
			continue
		}
		ja = append(ja, j)
		data = append(data, v)
		ia[i+1]++
		lastRow, lastCol = i, j
	}
	for i := 0; i < tp.nr; i++ {
		ia[i+1] += ia[i]
	}
	R = CSR{
		M: sparse.NewCSR(tp.nr, tp.nc, ia, ja, data),
	}
	return
}

// CSR wraps a compressed sparse row matrix with the small surface the rest of
// the code needs: mat.Matrix access, non-zero traversal and matrix-vector
// products.
type CSR struct {
	M *sparse.CSR
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }

func (m CSR) NNZ() int { return m.M.NNZ() }

func (m CSR) DoNonZero(fn func(i, j int, v float64)) { m.M.DoNonZero(fn) }

func (m CSR) DoRowNonZero(i int, fn func(i, j int, v float64)) { m.M.DoRowNonZero(i, fn) }

// MulVec computes b = M * x.
func (m CSR) MulVec(x []float64) (b []float64) {
	var (
		nr, nc = m.M.Dims()
	)
	if len(x) != nc {
		panic(fmt.Errorf("vector length %d does not match matrix columns %d", len(x), nc))
	}
	b = make([]float64, nr)
	sparse.MulMatRawVec(m.M, x, b)
	return
}

// RowSums returns M * ones, the per-row sum of stored values.
func (m CSR) RowSums() (sums []float64) {
	var (
		_, nc = m.M.Dims()
	)
	sums = m.MulVec(ConstArray(nc, 1))
	return
}
