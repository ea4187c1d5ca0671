//go:build linux
// +build linux

package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// reportInstructions runs f under a hardware instruction counter. When the
// kernel refuses perf events the build still runs, just uncounted.
func reportInstructions(f func() error) (err error) {
	var ran bool
	pv, perr := perf.CPUInstructions(func() error {
		ran = true
		err = f()
		return err
	})
	if !ran {
		fmt.Printf("hardware counters unavailable: %s\n", perr.Error())
		err = f()
		return
	}
	if perr == nil && pv != nil {
		fmt.Printf("%d CPU instructions retired\n", pv.Value)
	}
	return
}
