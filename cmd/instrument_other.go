//go:build !linux
// +build !linux

package cmd

import "fmt"

func reportInstructions(f func() error) error {
	fmt.Println("hardware counters are only available on linux")
	return f()
}
