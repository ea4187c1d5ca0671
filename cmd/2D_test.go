package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/weihuayi/soptx/InputParameters"
)

func TestRunInput(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
MeshType: quad # Can be quad, hex, tri or general
Rmin: 2.4
Nx: 60
Ny: 20
Box: [0, 60, 0, 20]
BatchSize: 5000
ParallelDegree: 2
Device: cpu
Timing: true
`)
	var input InputParameters.FilterParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, input.MeshType, "quad")
	assert.Equal(t, input.Rmin, 2.4)
	assert.Equal(t, input.Nx, 60)
	assert.Equal(t, input.Box, []float64{0, 60, 0, 20})
	input.Print()
	assert.Equal(t, input.BatchSize, 5000)
}

func TestJitteredCloud(t *testing.T) {
	fp := &InputParameters.FilterParameters{
		Nx:  4,
		Ny:  3,
		Box: []float64{0, 4, 0, 3},
	}
	pts := jitteredCloud(fp, 1)
	assert.Equal(t, len(pts), 20)
	// corners stay on the hull
	assert.Equal(t, pts[0], [2]float64{0, 0})
	assert.Equal(t, pts[len(pts)-1], [2]float64{4, 3})
	// same seed, same cloud
	again := jitteredCloud(fp, 1)
	for i := range pts {
		assert.Equal(t, again[i], pts[i])
	}
}
