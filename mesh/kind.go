package mesh

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	General Kind = iota
	Quadrangle
	Hexahedron
	Triangle
)

var (
	KindNames = map[string]Kind{
		"general":    General,
		"quad":       Quadrangle,
		"quadrangle": Quadrangle,
		"hex":        Hexahedron,
		"hexahedron": Hexahedron,
		"tri":        Triangle,
		"triangle":   Triangle,
	}
	KindPrintNames = []string{"General", "Quadrangle", "Hexahedron", "Triangle"}
)

func (k Kind) Print() (txt string) {
	txt = KindPrintNames[k]
	return
}

func (k Kind) String() string {
	return k.Print()
}

// Structured reports whether cells of this kind sit on a regular grid with
// an index linearization the assembly can exploit.
func (k Kind) Structured() bool {
	return k == Quadrangle || k == Hexahedron
}

func NewKind(label string) (k Kind) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if k, ok = KindNames[label]; !ok {
		err = fmt.Errorf("unable to use mesh type named [%s]", label)
		panic(err)
	}
	return
}
