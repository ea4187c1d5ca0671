// Package regularization assembles the sparse spatial-weighting matrix used
// to regularize density fields in topology optimization. Each row i of H
// holds the truncated linear weights w = rmin - dist over the cells within
// radius rmin of cell i, with w = rmin on the diagonal, and Hs = H*1 holds
// the row sums used to normalize filtered fields.
//
// Structured quadrangle and hexahedron grids are assembled from index
// arithmetic alone; everything else goes through a KD-tree over the cell
// centroids. All assembly runs on the host in batches of cells, and the
// result carries the mesh's compute-context tag for the caller to act on.
package regularization

import (
	"fmt"
	"sync"

	"github.com/weihuayi/soptx/device"
	"github.com/weihuayi/soptx/mesh"
	"github.com/weihuayi/soptx/utils"
)

// DefaultBatchSize caps how many cell rows a single assembly batch covers.
const DefaultBatchSize = 10000

type FilterMatrixBuilder struct {
	Mesh           *mesh.Mesh
	Rmin           float64
	BatchSize      int // cell rows per batch, DefaultBatchSize when 0
	ParallelDegree int // worker goroutines over batches, serial when < 2
	EnableTiming   bool
}

func NewFilterMatrixBuilder(msh *mesh.Mesh, rmin float64) (fb *FilterMatrixBuilder, err error) {
	if rmin <= 0 {
		err = fmt.Errorf("%w: rmin = %g, must be positive", ErrInvalidParameter, rmin)
		return
	}
	fb = &FilterMatrixBuilder{
		Mesh: msh,
		Rmin: rmin,
	}
	return
}

// Build assembles the filter matrix for the builder's mesh, picking the
// structured path when the mesh kind and grid metadata allow it.
func (fb *FilterMatrixBuilder) Build() (fm *FilterMatrix, err error) {
	var (
		msh = fb.Mesh
		tm  *utils.PhaseTimer
		tp  *utils.Triplets
	)
	if fb.EnableTiming {
		tm = utils.NewPhaseTimer("filter")
	}
	switch {
	case msh.Kind == mesh.Hexahedron && msh.Grid != nil && msh.Grid.Nz > 0:
		tp, err = fb.assembleHex3D()
	case msh.Kind == mesh.Quadrangle && msh.Grid != nil && msh.Grid.Ny > 0:
		tp, err = fb.assembleQuad2D()
	default:
		tp, err = fb.assembleGeneral()
	}
	if err != nil {
		return
	}
	tm.Mark("neighbor weights")
	fm = fb.finalize(tp, tm)
	if fb.EnableTiming {
		tm.Report()
	}
	return
}

func (fb *FilterMatrixBuilder) finalize(tp *utils.Triplets, tm *utils.PhaseTimer) (fm *FilterMatrix) {
	H := tp.ToCSR()
	tm.Mark("matrix construction")
	Hs := H.RowSums()
	utils.IsNanPanic(Hs)
	tm.Mark("row sums")
	fm = &FilterMatrix{
		H:  H,
		Hs: Hs,
	}
	fm.PlaceOn(fb.Mesh.Device)
	return
}

func (fb *FilterMatrixBuilder) batchSize(NC int) (B int) {
	B = fb.BatchSize
	if B <= 0 {
		B = DefaultBatchSize
	}
	if B > NC {
		B = NC
	}
	return
}

// runBatches partitions the cell rows into batches no larger than the
// configured batch size and runs visit over each. With ParallelDegree > 1
// the batches fill private buffers concurrently and merge in batch order,
// so the triplet stream is identical to the serial one.
func (fb *FilterMatrixBuilder) runBatches(NC int, visit func(lo, hi int, tp *utils.Triplets)) (tp *utils.Triplets) {
	var (
		B  = fb.batchSize(NC)
		nb = (NC + B - 1) / B
		pm = utils.NewPartitionMap(nb, NC)
		np = fb.ParallelDegree
	)
	tp = utils.NewTriplets(NC, NC)
	if np < 2 || nb == 1 {
		for bn := 0; bn < nb; bn++ {
			lo, hi := pm.GetBucketRange(bn)
			visit(lo, hi, tp)
		}
		return
	}
	if np > nb {
		np = nb
	}
	var (
		parts = make([]*utils.Triplets, nb)
		next  = make(chan int, nb)
		wg    sync.WaitGroup
	)
	for bn := 0; bn < nb; bn++ {
		next <- bn
	}
	close(next)
	wg.Add(np)
	for w := 0; w < np; w++ {
		go func() {
			defer wg.Done()
			for bn := range next {
				part := utils.NewTriplets(NC, NC)
				lo, hi := pm.GetBucketRange(bn)
				visit(lo, hi, part)
				parts[bn] = part
			}
		}()
	}
	wg.Wait()
	for _, part := range parts {
		tp.Merge(part)
	}
	return
}

// FilterMatrix is the assembled weighting matrix H with its row sums Hs.
// Device records where the caller wants the arrays to live; the arrays
// themselves stay in host memory until the caller moves them.
type FilterMatrix struct {
	H      utils.CSR
	Hs     []float64
	Device device.Context
}

func (fm *FilterMatrix) NumCells() (NC int) {
	NC, _ = fm.H.Dims()
	return
}

func (fm *FilterMatrix) NNZ() int {
	return fm.H.NNZ()
}

// PlaceOn retags the matrix with a compute context.
func (fm *FilterMatrix) PlaceOn(ctx device.Context) *FilterMatrix {
	fm.Device = ctx
	return fm
}
