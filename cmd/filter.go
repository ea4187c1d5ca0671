package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/weihuayi/soptx/InputParameters"
	"github.com/weihuayi/soptx/mesh"
	"github.com/weihuayi/soptx/regularization"
	"github.com/weihuayi/soptx/utils"
)

// runFilter assembles the filter matrix for a prepared mesh and prints a
// short report. The profile and hwcounters persistent flags wrap the build
// when set.
func runFilter(cmd *cobra.Command, msh *mesh.Mesh, fp *InputParameters.FilterParameters) {
	var (
		err error
		fm  *regularization.FilterMatrix
	)
	fp.Print()
	if doProfile, _ := cmd.Flags().GetBool("profile"); doProfile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}
	fb, err := regularization.NewFilterMatrixBuilder(msh, fp.Rmin)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fb.BatchSize = fp.BatchSize
	fb.ParallelDegree = fp.ParallelDegree
	fb.EnableTiming = fp.Timing
	build := func() (err error) {
		fm, err = fb.Build()
		return
	}
	if hw, _ := cmd.Flags().GetBool("hwcounters"); hw {
		err = reportInstructions(build)
	} else {
		err = build()
	}
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	var (
		NC    = fm.NumCells()
		hsMin = fm.Hs[0]
		hsMax = fm.Hs[0]
	)
	for _, hs := range fm.Hs {
		hsMin = min(hsMin, hs)
		hsMax = max(hsMax, hs)
	}
	fmt.Printf("NC = %d, NNZ = %d, fill = %8.5f%%\n",
		NC, fm.NNZ(), 100*float64(fm.NNZ())/(float64(NC)*float64(NC)))
	fmt.Printf("Hs range = [%8.5f, %8.5f] on [%s]\n", hsMin, hsMax, fm.Device)
	fmt.Println(utils.GetMemUsage())
}
