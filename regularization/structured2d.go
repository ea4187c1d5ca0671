package regularization

import (
	"fmt"
	"math"

	"github.com/weihuayi/soptx/utils"
)

// assembleQuad2D walks the rectangular stencil around each cell of a
// regular nx by ny grid. Cell (i,j) lives at row i*ny+j and distances come
// from index deltas times the grid spacings, so no centroid coordinates are
// touched. The diagonal falls out of the stencil at zero distance with
// weight exactly rmin.
func (fb *FilterMatrixBuilder) assembleQuad2D() (tp *utils.Triplets, err error) {
	var (
		g      = fb.Mesh.Grid
		nx, ny = g.Nx, g.Ny
		hx, hy = g.Hx, g.Hy
		rmin   = fb.Rmin
		NC     = fb.Mesh.NumCells()
	)
	if NC != nx*ny {
		err = fmt.Errorf("%w: %d x %d grid vs %d cells", ErrMeshShapeMismatch, nx, ny, NC)
		return
	}
	var (
		di = int(math.Ceil(rmin/hx)) - 1
		dj = int(math.Ceil(rmin/hy)) - 1
	)
	tp = fb.runBatches(NC, func(lo, hi int, tp *utils.Triplets) {
		tp.Reserve((hi - lo) * (2*di + 1) * (2*dj + 1))
		for cc := lo; cc < hi; cc++ {
			var (
				i, j = cc / ny, cc % ny
			)
			for ii := max(0, i-di); ii <= min(nx-1, i+di); ii++ {
				dx := float64(i-ii) * hx
				for jj := max(0, j-dj); jj <= min(ny-1, j+dj); jj++ {
					dy := float64(j-jj) * hy
					fac := rmin - math.Sqrt(dx*dx+dy*dy)
					if fac > 0 {
						tp.Append(cc, ii*ny+jj, fac)
					}
				}
			}
		}
	})
	return
}
