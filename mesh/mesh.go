// Package mesh holds the cell-centroid geometry the filter assembly works
// from: structured quadrangle/hexahedron grids described by their index
// metadata, and general meshes described by an explicit centroid cloud.
package mesh

import (
	"fmt"

	"github.com/pradeep-pyro/triangle"
	"github.com/weihuayi/soptx/device"
	"github.com/weihuayi/soptx/utils"
	"gonum.org/v1/gonum/mat"
)

// GridMeta describes a regular grid: cell counts and spacings per axis.
// Nz and Hz are zero for 2D grids.
type GridMeta struct {
	Nx, Ny, Nz int
	Hx, Hy, Hz float64
}

func (g *GridMeta) NumCells() int {
	if g.Nz > 0 {
		return g.Nx * g.Ny * g.Nz
	}
	return g.Nx * g.Ny
}

// Mesh pairs cell centroids with whatever structure is known about them.
// Grid is nil unless the cells sit on a regular grid.
type Mesh struct {
	Kind    Kind
	Grid    *GridMeta
	Dom     Domain
	Centers *mat.Dense // NC x GD cell centroids
	Device  device.Context
}

func (msh *Mesh) NumCells() (NC int) {
	NC, _ = msh.Centers.Dims()
	return
}

func (msh *Mesh) GeoDim() int {
	return msh.Dom.GD
}

// Center returns centroid i padded to three coordinates.
func (msh *Mesh) Center(i int) (x [3]float64) {
	for d := 0; d < msh.GeoDim(); d++ {
		x[d] = msh.Centers.At(i, d)
	}
	return
}

// QuadFromBox meshes box [xmin,xmax,ymin,ymax] with nx by ny quadrangles.
// Cell (i,j) occupies row i*ny+j, the y index running fastest.
func QuadFromBox(box []float64, nx, ny int, dev device.Context) (msh *Mesh, err error) {
	var dom Domain
	if dom, err = NewDomain(box); err != nil {
		return
	}
	if dom.GD != 2 {
		err = fmt.Errorf("quadrangle mesh needs a 2D box, got %dD", dom.GD)
		return
	}
	if nx < 1 || ny < 1 {
		err = fmt.Errorf("cell counts must be positive, got [%d,%d]", nx, ny)
		return
	}
	var (
		hx = dom.Length(0) / float64(nx)
		hy = dom.Length(1) / float64(ny)
		NC = nx * ny
	)
	X := mat.NewDense(NC, 2, nil)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			row := i*ny + j
			X.Set(row, 0, dom.Lo[0]+(float64(i)+0.5)*hx)
			X.Set(row, 1, dom.Lo[1]+(float64(j)+0.5)*hy)
		}
	}
	msh = &Mesh{
		Kind:    Quadrangle,
		Grid:    &GridMeta{Nx: nx, Ny: ny, Hx: hx, Hy: hy},
		Dom:     dom,
		Centers: X,
		Device:  dev,
	}
	return
}

// HexFromBox meshes box [xmin,xmax,ymin,ymax,zmin,zmax] with nx by ny by nz
// hexahedra. Cell (i,j,k) occupies row k+j*nz+i*ny*nz, the z index running
// fastest.
func HexFromBox(box []float64, nx, ny, nz int, dev device.Context) (msh *Mesh, err error) {
	var dom Domain
	if dom, err = NewDomain(box); err != nil {
		return
	}
	if dom.GD != 3 {
		err = fmt.Errorf("hexahedron mesh needs a 3D box, got %dD", dom.GD)
		return
	}
	if nx < 1 || ny < 1 || nz < 1 {
		err = fmt.Errorf("cell counts must be positive, got [%d,%d,%d]", nx, ny, nz)
		return
	}
	var (
		hx = dom.Length(0) / float64(nx)
		hy = dom.Length(1) / float64(ny)
		hz = dom.Length(2) / float64(nz)
		NC = nx * ny * nz
	)
	X := mat.NewDense(NC, 3, nil)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				row := k + j*nz + i*ny*nz
				X.Set(row, 0, dom.Lo[0]+(float64(i)+0.5)*hx)
				X.Set(row, 1, dom.Lo[1]+(float64(j)+0.5)*hy)
				X.Set(row, 2, dom.Lo[2]+(float64(k)+0.5)*hz)
			}
		}
	}
	msh = &Mesh{
		Kind:    Hexahedron,
		Grid:    &GridMeta{Nx: nx, Ny: ny, Nz: nz, Hx: hx, Hy: hy, Hz: hz},
		Dom:     dom,
		Centers: X,
		Device:  dev,
	}
	return
}

// FromCentroids wraps an explicit centroid cloud, one cell per row of X.
func FromCentroids(X *mat.Dense, dom Domain, dev device.Context) (msh *Mesh, err error) {
	var (
		NC, gd = X.Dims()
	)
	if NC < 1 {
		err = fmt.Errorf("centroid cloud is empty")
		return
	}
	if gd != dom.GD {
		err = fmt.Errorf("centroids are %dD but domain is %dD", gd, dom.GD)
		return
	}
	if utils.IsNan(X.RawMatrix().Data) {
		err = fmt.Errorf("centroids contain NaN")
		return
	}
	msh = &Mesh{
		Kind:    General,
		Dom:     dom,
		Centers: X,
		Device:  dev,
	}
	return
}

// FromDelaunay triangulates a 2D point cloud and takes the triangle
// centroids as cells.
func FromDelaunay(pts [][2]float64, dev device.Context) (msh *Mesh, err error) {
	if len(pts) < 3 {
		err = fmt.Errorf("need at least 3 points to triangulate, got %d", len(pts))
		return
	}
	tris := triangle.Delaunay(pts)
	if len(tris) == 0 {
		err = fmt.Errorf("triangulation produced no cells")
		return
	}
	X := mat.NewDense(len(tris), 2, nil)
	for t, tri := range tris {
		var cx, cy float64
		for _, v := range tri {
			cx += pts[v][0]
			cy += pts[v][1]
		}
		X.Set(t, 0, cx/3)
		X.Set(t, 1, cy/3)
	}
	msh = &Mesh{
		Kind:    Triangle,
		Dom:     DomainFromPoints(X),
		Centers: X,
		Device:  dev,
	}
	return
}
