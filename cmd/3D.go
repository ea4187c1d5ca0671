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
	"os"

	"github.com/spf13/cobra"
	"github.com/weihuayi/soptx/InputParameters"
	"github.com/weihuayi/soptx/device"
	"github.com/weihuayi/soptx/mesh"
)

// ThreeDCmd represents the 3D command
var ThreeDCmd = &cobra.Command{
	Use:   "3D",
	Short: "Assemble the filter matrix on a structured hexahedron grid",
	Long:  `Assemble the filter matrix on a structured hexahedron grid`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("3D called")
		fp := &InputParameters.FilterParameters{
			Title:    "3D structured filter",
			MeshType: "hex",
		}
		fp.Nx, _ = cmd.Flags().GetInt("nx")
		fp.Ny, _ = cmd.Flags().GetInt("ny")
		fp.Nz, _ = cmd.Flags().GetInt("nz")
		fp.Rmin, _ = cmd.Flags().GetFloat64("rmin")
		xMax, _ := cmd.Flags().GetFloat64("xMax")
		yMax, _ := cmd.Flags().GetFloat64("yMax")
		zMax, _ := cmd.Flags().GetFloat64("zMax")
		fp.Box = []float64{0, xMax, 0, yMax, 0, zMax}
		fp.BatchSize, _ = cmd.Flags().GetInt("batchSize")
		fp.ParallelDegree, _ = cmd.Flags().GetInt("parallel")
		fp.Device, _ = cmd.Flags().GetString("device")
		fp.Timing, _ = cmd.Flags().GetBool("timing")
		msh, err := mesh.HexFromBox(fp.Box, fp.Nx, fp.Ny, fp.Nz, device.New(fp.Device))
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		runFilter(cmd, msh, fp)
	},
}

func init() {
	rootCmd.AddCommand(ThreeDCmd)
	// cantilever beam proportions as defaults
	ThreeDCmd.Flags().IntP("nx", "x", 60, "number of cells along x")
	ThreeDCmd.Flags().IntP("ny", "y", 20, "number of cells along y")
	ThreeDCmd.Flags().IntP("nz", "z", 4, "number of cells along z")
	ThreeDCmd.Flags().Float64P("rmin", "r", 1.5, "filter radius")
	ThreeDCmd.Flags().Float64("xMax", 60, "domain extent along x")
	ThreeDCmd.Flags().Float64("yMax", 20, "domain extent along y")
	ThreeDCmd.Flags().Float64("zMax", 4, "domain extent along z")
	ThreeDCmd.Flags().IntP("batchSize", "b", 0, "cells per assembly batch, 0 for the default")
	ThreeDCmd.Flags().IntP("parallel", "p", 1, "worker goroutines over batches")
	ThreeDCmd.Flags().String("device", "cpu", "compute context tag for the result")
	ThreeDCmd.Flags().Bool("timing", false, "report per-phase assembly timings")
}
