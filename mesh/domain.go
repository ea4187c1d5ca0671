package mesh

import (
	"fmt"

	"github.com/weihuayi/soptx/utils"
	"gonum.org/v1/gonum/mat"
)

// Domain is the axis-aligned bounding box of a mesh, with optional periodic
// wrap per axis. Periodic axes identify the faces x=Lo[d] and x=Hi[d], so
// distances along them are measured through the nearest image.
type Domain struct {
	Lo, Hi   [3]float64
	Periodic [3]bool
	GD       int
}

// NewDomain builds a domain from a flat box [xmin,xmax,ymin,ymax,...] of
// length 2, 4 or 6.
func NewDomain(box []float64) (dom Domain, err error) {
	switch len(box) {
	case 2, 4, 6:
		dom.GD = len(box) / 2
	default:
		err = fmt.Errorf("box must have 2, 4 or 6 entries, got %d", len(box))
		return
	}
	for d := 0; d < dom.GD; d++ {
		dom.Lo[d], dom.Hi[d] = box[2*d], box[2*d+1]
		if dom.Hi[d]-dom.Lo[d] < utils.NODETOL {
			err = fmt.Errorf("degenerate box extent [%g,%g] along axis %d",
				dom.Lo[d], dom.Hi[d], d)
			return
		}
	}
	return
}

// DomainFromPoints bounds a point cloud, one point per row of X.
func DomainFromPoints(X *mat.Dense) (dom Domain) {
	var (
		np, gd = X.Dims()
	)
	dom.GD = gd
	for d := 0; d < gd; d++ {
		dom.Lo[d], dom.Hi[d] = X.At(0, d), X.At(0, d)
		for p := 1; p < np; p++ {
			x := X.At(p, d)
			if x < dom.Lo[d] {
				dom.Lo[d] = x
			}
			if x > dom.Hi[d] {
				dom.Hi[d] = x
			}
		}
	}
	return
}

// WithPeriodic marks leading axes periodic, one flag per axis.
func (dom Domain) WithPeriodic(flags ...bool) Domain {
	if len(flags) > dom.GD {
		err := fmt.Errorf("%d periodic flags for a %dD domain", len(flags), dom.GD)
		panic(err)
	}
	for d, flag := range flags {
		dom.Periodic[d] = flag
	}
	return dom
}

func (dom Domain) Length(d int) float64 {
	return dom.Hi[d] - dom.Lo[d]
}

func (dom Domain) IsPeriodic() bool {
	for d := 0; d < dom.GD; d++ {
		if dom.Periodic[d] {
			return true
		}
	}
	return false
}

// MinImage folds a separation along axis d to the nearest periodic image.
// Non-periodic axes pass through unchanged.
func (dom Domain) MinImage(dx float64, d int) float64 {
	if !dom.Periodic[d] {
		return dx
	}
	L := dom.Length(d)
	if dx > 0.5*L {
		dx -= L
	} else if dx < -0.5*L {
		dx += L
	}
	return dx
}

// Box flattens the domain back to [xmin,xmax,ymin,ymax,...].
func (dom Domain) Box() (box []float64) {
	box = make([]float64, 2*dom.GD)
	for d := 0; d < dom.GD; d++ {
		box[2*d], box[2*d+1] = dom.Lo[d], dom.Hi[d]
	}
	return
}
