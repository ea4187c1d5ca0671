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

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Assemble the filter matrix on a structured quadrangle grid",
	Long:  `Assemble the filter matrix on a structured quadrangle grid`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("2D called")
		fp := &InputParameters.FilterParameters{
			Title:    "2D structured filter",
			MeshType: "quad",
		}
		fp.Nx, _ = cmd.Flags().GetInt("nx")
		fp.Ny, _ = cmd.Flags().GetInt("ny")
		fp.Rmin, _ = cmd.Flags().GetFloat64("rmin")
		xMax, _ := cmd.Flags().GetFloat64("xMax")
		yMax, _ := cmd.Flags().GetFloat64("yMax")
		fp.Box = []float64{0, xMax, 0, yMax}
		fp.BatchSize, _ = cmd.Flags().GetInt("batchSize")
		fp.ParallelDegree, _ = cmd.Flags().GetInt("parallel")
		fp.Device, _ = cmd.Flags().GetString("device")
		fp.Timing, _ = cmd.Flags().GetBool("timing")
		msh, err := mesh.QuadFromBox(fp.Box, fp.Nx, fp.Ny, device.New(fp.Device))
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		runFilter(cmd, msh, fp)
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	// MBB beam proportions as defaults
	TwoDCmd.Flags().IntP("nx", "x", 60, "number of cells along x")
	TwoDCmd.Flags().IntP("ny", "y", 20, "number of cells along y")
	TwoDCmd.Flags().Float64P("rmin", "r", 2.4, "filter radius")
	TwoDCmd.Flags().Float64("xMax", 60, "domain extent along x")
	TwoDCmd.Flags().Float64("yMax", 20, "domain extent along y")
	TwoDCmd.Flags().IntP("batchSize", "b", 0, "cells per assembly batch, 0 for the default")
	TwoDCmd.Flags().IntP("parallel", "p", 1, "worker goroutines over batches")
	TwoDCmd.Flags().String("device", "cpu", "compute context tag for the result")
	TwoDCmd.Flags().Bool("timing", false, "report per-phase assembly timings")
}
