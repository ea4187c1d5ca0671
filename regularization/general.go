package regularization

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/weihuayi/soptx/mesh"
	"github.com/weihuayi/soptx/utils"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// cellPoint is a cell centroid in the KD-tree, padded to three coordinates
// so 2D and 3D clouds share one tree type. ID survives the in-place
// reordering done by tree construction.
type cellPoint struct {
	ID int
	X  [3]float64
}

func (p cellPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(cellPoint)
	return p.X[d] - q.X[d]
}

func (p cellPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance, as the tree expects.
func (p cellPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(cellPoint)
	var sum float64
	for d := 0; d < 3; d++ {
		dx := p.X[d] - q.X[d]
		sum += dx * dx
	}
	return sum
}

type cellCloud []cellPoint

func (p cellCloud) Index(i int) kdtree.Comparable { return p[i] }

func (p cellCloud) Len() int { return len(p) }

func (p cellCloud) Pivot(d kdtree.Dim) int {
	return cellPlane{cellCloud: p, Dim: d}.Pivot()
}

func (p cellCloud) Slice(start, end int) kdtree.Interface { return p[start:end] }

// cellPlane sorts a cellCloud along one coordinate for pivot selection.
type cellPlane struct {
	cellCloud
	kdtree.Dim
}

func (p cellPlane) Less(i, j int) bool {
	return p.cellCloud[i].X[p.Dim] < p.cellCloud[j].X[p.Dim]
}

func (p cellPlane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfRandoms(p, 100))
}

func (p cellPlane) Slice(start, end int) kdtree.SortSlicer {
	p.cellCloud = p.cellCloud[start:end]
	return p
}

func (p cellPlane) Swap(i, j int) {
	p.cellCloud[i], p.cellCloud[j] = p.cellCloud[j], p.cellCloud[i]
}

// assembleGeneral covers meshes without exploitable grid structure. A
// KD-tree over the centroids answers the radius queries; along periodic
// axes each query is repeated at the wrapped image positions of cells
// close to a boundary, and weights come from the minimum-image distance.
// Cells with no neighbor in range keep their diagonal entry only.
func (fb *FilterMatrixBuilder) assembleGeneral() (tp *utils.Triplets, err error) {
	var (
		msh  = fb.Mesh
		dom  = msh.Dom
		NC   = msh.NumCells()
		rmin = fb.Rmin
	)
	for d := 0; d < dom.GD; d++ {
		// The minimum-image fold is only unambiguous while neighborhoods
		// span less than half the periodic extent.
		if dom.Periodic[d] && 2*rmin > dom.Length(d) {
			err = fmt.Errorf("%w: rmin = %g exceeds half the periodic extent %g along axis %d",
				ErrInvalidParameter, rmin, dom.Length(d), d)
			return
		}
	}
	cloud := make(cellCloud, NC)
	for i := 0; i < NC; i++ {
		cloud[i] = cellPoint{ID: i, X: msh.Center(i)}
	}
	tree := kdtree.New(cloud, true)
	tp = fb.runBatches(NC, func(lo, hi int, tp *utils.Triplets) {
		tp.Reserve(hi - lo)
		for i := lo; i < hi; i++ {
			tp.Append(i, i, rmin)
			var (
				xi   = msh.Center(i)
				offs = imageOffsets(dom, xi, rmin)
				seen map[int]bool
			)
			if len(offs) > 1 {
				seen = make(map[int]bool)
			}
			for _, off := range offs {
				q := cellPoint{X: [3]float64{xi[0] + off[0], xi[1] + off[1], xi[2] + off[2]}}
				keeper := kdtree.NewDistKeeper(rmin * rmin)
				tree.NearestSet(keeper, q)
				tp.Reserve(keeper.Len())
				for keeper.Len() > 0 {
					item := heap.Pop(keeper).(kdtree.ComparableDist)
					if item.Comparable == nil {
						continue
					}
					j := item.Comparable.(cellPoint).ID
					if j == i || seen[j] {
						continue
					}
					if seen != nil {
						seen[j] = true
					}
					fac := rmin - minImageDist(dom, xi, msh.Center(j))
					if fac > 0 {
						tp.Append(i, j, fac)
					}
				}
			}
		}
	})
	return
}

// imageOffsets lists the query translations for a point, the zero offset
// first. A periodic axis contributes a +/-L shift when the point sits
// within rmin of the matching boundary, and shifts combine across axes.
func imageOffsets(dom mesh.Domain, x [3]float64, rmin float64) (offs [][3]float64) {
	offs = [][3]float64{{}}
	for d := 0; d < dom.GD; d++ {
		if !dom.Periodic[d] {
			continue
		}
		var (
			L     = dom.Length(d)
			extra []float64
		)
		if x[d]-dom.Lo[d] < rmin {
			extra = append(extra, L)
		}
		if dom.Hi[d]-x[d] < rmin {
			extra = append(extra, -L)
		}
		base := len(offs)
		for _, e := range extra {
			for bn := 0; bn < base; bn++ {
				off := offs[bn]
				off[d] = e
				offs = append(offs, off)
			}
		}
	}
	return
}

func minImageDist(dom mesh.Domain, xi, xj [3]float64) float64 {
	var sum float64
	for d := 0; d < dom.GD; d++ {
		dx := dom.MinImage(xi[d]-xj[d], d)
		sum += dx * dx
	}
	return math.Sqrt(sum)
}
