/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"github.com/weihuayi/soptx/InputParameters"
	"github.com/weihuayi/soptx/device"
	"github.com/weihuayi/soptx/mesh"
)

type RunModel struct {
	ParamFile string
	Seed      int64
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Assemble a filter matrix from a YAML parameters file",
	Long:  `Assemble a filter matrix from a YAML parameters file`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("run called")
		rm := &RunModel{}
		if rm.ParamFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		rm.Seed, _ = cmd.Flags().GetInt64("seed")
		fp := processInput(rm)
		msh := buildMesh(rm, fp)
		runFilter(cmd, msh, fp)
	},
}

func processInput(rm *RunModel) (fp *InputParameters.FilterParameters) {
	var (
		err error
	)
	if len(rm.ParamFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputParametersFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "MBB Beam Filter"
MeshType: quad # Can be quad, hex, tri or general
Rmin: 2.4
Nx: 60
Ny: 20
Box: [0, 60, 0, 20]
BatchSize: 10000
ParallelDegree: 1
Device: cpu
Timing: true
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(rm.ParamFile); err != nil {
		panic(err)
	}
	fp = &InputParameters.FilterParameters{}
	if err = fp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func buildMesh(rm *RunModel, fp *InputParameters.FilterParameters) (msh *mesh.Mesh) {
	var (
		err error
		dev = device.New(fp.Device)
	)
	switch mesh.NewKind(fp.MeshType) {
	case mesh.Quadrangle:
		msh, err = mesh.QuadFromBox(fp.Box, fp.Nx, fp.Ny, dev)
	case mesh.Hexahedron:
		msh, err = mesh.HexFromBox(fp.Box, fp.Nx, fp.Ny, fp.Nz, dev)
	case mesh.Triangle:
		msh, err = mesh.FromDelaunay(jitteredCloud(fp, rm.Seed), dev)
	case mesh.General:
		msh, err = generalFromGrid(fp, dev)
	}
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

// generalFromGrid meshes the box as a regular grid but hands over only the
// centroid cloud, so assembly takes the KD-tree path, with optional
// periodic wrap from the parameters.
func generalFromGrid(fp *InputParameters.FilterParameters, dev device.Context) (msh *mesh.Mesh, err error) {
	if fp.Nz > 0 {
		msh, err = mesh.HexFromBox(fp.Box, fp.Nx, fp.Ny, fp.Nz, dev)
	} else {
		msh, err = mesh.QuadFromBox(fp.Box, fp.Nx, fp.Ny, dev)
	}
	if err != nil {
		return
	}
	dom := msh.Dom.WithPeriodic(fp.Periodic...)
	return mesh.FromCentroids(msh.Centers, dom, dev)
}

// jitteredCloud perturbs the interior points of a regular grid over the box
// to seed an irregular triangulation. Boundary points stay put so the hull
// keeps the box shape.
func jitteredCloud(fp *InputParameters.FilterParameters, seed int64) (pts [][2]float64) {
	var (
		dom, err = mesh.NewDomain(fp.Box)
		rnd      = rand.New(rand.NewSource(seed))
	)
	if err == nil && dom.GD != 2 {
		err = fmt.Errorf("triangulation needs a 2D box, got %dD", dom.GD)
	}
	if err == nil && (fp.Nx < 1 || fp.Ny < 1) {
		err = fmt.Errorf("point counts must be positive, got [%d,%d]", fp.Nx, fp.Ny)
	}
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	var (
		hx = dom.Length(0) / float64(fp.Nx)
		hy = dom.Length(1) / float64(fp.Ny)
	)
	pts = make([][2]float64, 0, (fp.Nx+1)*(fp.Ny+1))
	for i := 0; i <= fp.Nx; i++ {
		for j := 0; j <= fp.Ny; j++ {
			var jx, jy float64
			if i != 0 && i != fp.Nx {
				jx = 0.25 * hx * (2*rnd.Float64() - 1)
			}
			if j != 0 && j != fp.Ny {
				jy = 0.25 * hy * (2*rnd.Float64() - 1)
			}
			pts = append(pts, [2]float64{
				dom.Lo[0] + float64(i)*hx + jx,
				dom.Lo[1] + float64(j)*hy + jy,
			})
		}
	}
	return
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- Rmin\n\t- MeshType")
	RunCmd.Flags().Int64("seed", 1, "random seed for the tri mesh point jitter")
}
