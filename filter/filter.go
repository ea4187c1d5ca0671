// Package filter applies an assembled weighting matrix to design fields.
// The density filter replaces the raw field by its weighted neighborhood
// average; the sensitivity filter smooths compliance gradients the classic
// way. Both normalize by the row sums Hs, so a uniform field passes
// through unchanged.
package filter

import (
	"fmt"

	"github.com/weihuayi/soptx/regularization"
)

// DefaultXMin floors the density in the sensitivity normalization.
const DefaultXMin = 1.e-3

type DensityFilter struct {
	FM *regularization.FilterMatrix
}

func NewDensityFilter(fm *regularization.FilterMatrix) *DensityFilter {
	return &DensityFilter{FM: fm}
}

// Apply maps a design field to the physical field, xPhys = (H*x)./Hs.
func (df *DensityFilter) Apply(x []float64) (xPhys []float64) {
	checkLen(df.FM, len(x))
	xPhys = df.FM.H.MulVec(x)
	for i, hs := range df.FM.Hs {
		xPhys[i] /= hs
	}
	return
}

// Chain pulls a gradient with respect to the physical field back to the
// design field, grad <- H*(grad./Hs). H is symmetric, so the transpose
// product reduces to a forward one.
func (df *DensityFilter) Chain(grad []float64) (out []float64) {
	checkLen(df.FM, len(grad))
	scaled := make([]float64, len(grad))
	for i, g := range grad {
		scaled[i] = g / df.FM.Hs[i]
	}
	out = df.FM.H.MulVec(scaled)
	return
}

type SensitivityFilter struct {
	FM   *regularization.FilterMatrix
	XMin float64 // density floor in the normalization, DefaultXMin when 0
}

func NewSensitivityFilter(fm *regularization.FilterMatrix) *SensitivityFilter {
	return &SensitivityFilter{
		FM:   fm,
		XMin: DefaultXMin,
	}
}

// Apply smooths a compliance sensitivity, dc <- H*(x.*dc)./(Hs.*max(x,XMin)).
func (sf *SensitivityFilter) Apply(x, dc []float64) (out []float64) {
	checkLen(sf.FM, len(x))
	checkLen(sf.FM, len(dc))
	xmin := sf.XMin
	if xmin <= 0 {
		xmin = DefaultXMin
	}
	scaled := make([]float64, len(x))
	for i := range x {
		scaled[i] = x[i] * dc[i]
	}
	out = sf.FM.H.MulVec(scaled)
	for i := range out {
		out[i] /= sf.FM.Hs[i] * max(x[i], xmin)
	}
	return
}

func checkLen(fm *regularization.FilterMatrix, n int) {
	if n != fm.NumCells() {
		err := fmt.Errorf("field length %d does not match %d cells", n, fm.NumCells())
		panic(err)
	}
}
