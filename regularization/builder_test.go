package regularization

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weihuayi/soptx/device"
	"github.com/weihuayi/soptx/mesh"
	"github.com/weihuayi/soptx/utils"
)

func TestBuilderParameters(t *testing.T) {
	msh, err := mesh.QuadFromBox([]float64{0, 3, 0, 3}, 3, 3, device.Host)
	assert.NoError(t, err)
	{ // Radius must be strictly positive
		_, err = NewFilterMatrixBuilder(msh, 0)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
		_, err = NewFilterMatrixBuilder(msh, -1.5)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
	}
	{ // Grid metadata must agree with the stored cell count
		bad, _ := mesh.QuadFromBox([]float64{0, 3, 0, 3}, 3, 3, device.Host)
		bad.Grid.Nx = 5
		fb, err := NewFilterMatrixBuilder(bad, 1.1)
		assert.NoError(t, err)
		_, err = fb.Build()
		assert.True(t, errors.Is(err, ErrMeshShapeMismatch))

		bad3, _ := mesh.HexFromBox([]float64{0, 2, 0, 2, 0, 2}, 2, 2, 2, device.Host)
		bad3.Grid.Nz = 3
		fb, err = NewFilterMatrixBuilder(bad3, 1.1)
		assert.NoError(t, err)
		_, err = fb.Build()
		assert.True(t, errors.Is(err, ErrMeshShapeMismatch))
	}
}

func TestSmallGridWeights(t *testing.T) {
	// 3x3 unit grid with rmin=1.1: orthogonal neighbors weigh 0.1, diagonal
	// neighbors at sqrt(2) fall outside the radius
	var (
		rmin     = 1.1
		msh, err = mesh.QuadFromBox([]float64{0, 3, 0, 3}, 3, 3, device.Host)
	)
	assert.NoError(t, err)
	fb, err := NewFilterMatrixBuilder(msh, rmin)
	assert.NoError(t, err)
	fm, err := fb.Build()
	assert.NoError(t, err)
	assert.Equal(t, 9, fm.NumCells())
	assert.Equal(t, 33, fm.NNZ())
	{ // The diagonal carries exactly rmin
		for i := 0; i < 9; i++ {
			assert.Equal(t, rmin, fm.H.At(i, i))
		}
	}
	{ // Interior cell picks up its four orthogonal neighbors
		center := 1*3 + 1
		assert.True(t, near(0.1, fm.H.At(center, 0*3+1)))
		assert.True(t, near(0.1, fm.H.At(center, 2*3+1)))
		assert.True(t, near(0.1, fm.H.At(center, 1*3+0)))
		assert.True(t, near(0.1, fm.H.At(center, 1*3+2)))
		assert.Equal(t, 0.0, fm.H.At(center, 0))
		assert.True(t, near(1.5, fm.Hs[center]))
	}
	{ // Corner cell keeps the diagonal plus two neighbors
		rowNNZ := 0
		fm.H.DoRowNonZero(0, func(i, j int, v float64) { rowNNZ++ })
		assert.Equal(t, 3, rowNNZ)
		assert.True(t, near(1.3, fm.Hs[0]))
	}
	{ // Row sums never drop below the radius
		for i := 0; i < 9; i++ {
			assert.True(t, fm.Hs[i] >= rmin)
		}
	}
	assertSymmetric(t, fm.H)
}

func TestRadiusBelowSpacing(t *testing.T) {
	// A radius under the cell spacing keeps only the diagonal
	msh, _ := mesh.QuadFromBox([]float64{0, 4, 0, 4}, 4, 4, device.Host)
	fb, _ := NewFilterMatrixBuilder(msh, 0.9)
	fm, err := fb.Build()
	assert.NoError(t, err)
	assert.Equal(t, 16, fm.NNZ())
	for i := 0; i < 16; i++ {
		assert.Equal(t, 0.9, fm.H.At(i, i))
		assert.Equal(t, 0.9, fm.Hs[i])
	}
	{ // Distance exactly rmin weighs zero and is excluded, not stored
		fb, _ := NewFilterMatrixBuilder(msh, 1.0)
		fm, err := fb.Build()
		assert.NoError(t, err)
		assert.Equal(t, 16, fm.NNZ())
		for i := 0; i < 16; i++ {
			assert.Equal(t, 1.0, fm.Hs[i])
		}
	}
}

func TestDispatchFallback(t *testing.T) {
	// A quadrangle mesh stripped of its grid metadata still assembles,
	// through the centroid path
	var (
		rmin   = 1.1
		msh, _ = mesh.QuadFromBox([]float64{0, 3, 0, 3}, 3, 3, device.Host)
	)
	bare := &mesh.Mesh{
		Kind:    mesh.Quadrangle,
		Dom:     msh.Dom,
		Centers: msh.Centers,
		Device:  msh.Device,
	}
	fb, _ := NewFilterMatrixBuilder(bare, rmin)
	fm, err := fb.Build()
	assert.NoError(t, err)
	assert.Equal(t, 33, fm.NNZ())
	for i := 0; i < 9; i++ {
		assert.Equal(t, rmin, fm.H.At(i, i))
	}
}

func TestDevicePlacement(t *testing.T) {
	msh, _ := mesh.QuadFromBox([]float64{0, 2, 0, 2}, 2, 2, device.New("cuda:0"))
	fb, _ := NewFilterMatrixBuilder(msh, 1.1)
	fb.EnableTiming = true
	fm, err := fb.Build()
	assert.NoError(t, err)
	// assembly stays on the host, the result carries the mesh tag
	assert.Equal(t, device.Context("cuda:0"), fm.Device)
	assert.False(t, fm.Device.IsHost())
	fm.PlaceOn(device.Host)
	assert.True(t, fm.Device.IsHost())
}

func assertSymmetric(t *testing.T, R utils.CSR) {
	nr, nc := R.Dims()
	assert.Equal(t, nr, nc)
	R.DoNonZero(func(i, j int, v float64) {
		assert.Equal(t, v, R.At(j, i))
	})
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
