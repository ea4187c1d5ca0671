package regularization

import (
	"fmt"
	"math"

	"github.com/weihuayi/soptx/utils"
)

// assembleHex3D is the 3D counterpart of assembleQuad2D. Cell (i,j,k) of a
// regular nx by ny by nz grid lives at row k+j*nz+i*ny*nz, the z index
// running fastest.
func (fb *FilterMatrixBuilder) assembleHex3D() (tp *utils.Triplets, err error) {
	var (
		g          = fb.Mesh.Grid
		nx, ny, nz = g.Nx, g.Ny, g.Nz
		hx, hy, hz = g.Hx, g.Hy, g.Hz
		rmin       = fb.Rmin
		NC         = fb.Mesh.NumCells()
	)
	if NC != nx*ny*nz {
		err = fmt.Errorf("%w: %d x %d x %d grid vs %d cells",
			ErrMeshShapeMismatch, nx, ny, nz, NC)
		return
	}
	var (
		di = int(math.Ceil(rmin/hx)) - 1
		dj = int(math.Ceil(rmin/hy)) - 1
		dk = int(math.Ceil(rmin/hz)) - 1
	)
	tp = fb.runBatches(NC, func(lo, hi int, tp *utils.Triplets) {
		tp.Reserve((hi - lo) * (2*di + 1) * (2*dj + 1) * (2*dk + 1))
		for cc := lo; cc < hi; cc++ {
			var (
				i   = cc / (ny * nz)
				rem = cc % (ny * nz)
				j   = rem / nz
				k   = rem % nz
			)
			for ii := max(0, i-di); ii <= min(nx-1, i+di); ii++ {
				dx := float64(i-ii) * hx
				for jj := max(0, j-dj); jj <= min(ny-1, j+dj); jj++ {
					dy := float64(j-jj) * hy
					for kk := max(0, k-dk); kk <= min(nz-1, k+dk); kk++ {
						dz := float64(k-kk) * hz
						fac := rmin - math.Sqrt(dx*dx+dy*dy+dz*dz)
						if fac > 0 {
							tp.Append(cc, kk+jj*nz+ii*ny*nz, fac)
						}
					}
				}
			}
		}
	})
	return
}
