package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type FilterParameters struct {
	Title          string    `yaml:"Title"`
	MeshType       string    `yaml:"MeshType"` // quad, hex, tri or general
	Rmin           float64   `yaml:"Rmin"`
	Nx             int       `yaml:"Nx"`
	Ny             int       `yaml:"Ny"`
	Nz             int       `yaml:"Nz"`
	Box            []float64 `yaml:"Box"` // [xmin,xmax,ymin,ymax,...]
	Periodic       []bool    `yaml:"Periodic"`
	BatchSize      int       `yaml:"BatchSize"`
	ParallelDegree int       `yaml:"ParallelDegree"`
	Device         string    `yaml:"Device"`
	Timing         bool      `yaml:"Timing"`
}

func (fp *FilterParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, fp)
}

func (fp *FilterParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", fp.Title)
	fmt.Printf("[%s]\t\t\t= Mesh Type\n", fp.MeshType)
	fmt.Printf("%8.5f\t\t= Rmin\n", fp.Rmin)
	fmt.Printf("[%d %d %d]\t\t= Cells\n", fp.Nx, fp.Ny, fp.Nz)
	fmt.Printf("%v\t\t= Box\n", fp.Box)
	if len(fp.Periodic) != 0 {
		fmt.Printf("%v\t\t= Periodic\n", fp.Periodic)
	}
	fmt.Printf("[%d]\t\t\t= Batch Size\n", fp.BatchSize)
	fmt.Printf("[%d]\t\t\t= Parallel Degree\n", fp.ParallelDegree)
	fmt.Printf("[%s]\t\t\t= Device\n", fp.Device)
}
