package runconfig

import "github.com/vk/sweepdeck/internal/fieldcodec"

// Method selects the parallel solve method handed to the solver.
type Method int

const (
	MethodSweep Method = iota
	MethodBlockJacobi
)

var methodNames = []string{"sweep", "bj"}

// ParseMethod decodes "sweep" or "bj", ignoring case.
func ParseMethod(s string) (Method, error) {
	i, err := fieldcodec.DecodeChoice(s, methodNames)
	if err != nil {
		return MethodSweep, err
	}
	return Method(i), nil
}

// Flag returns the command-line spelling of m.
func (m Method) Flag() string {
	if m == MethodBlockJacobi {
		return "bj"
	}
	return "sweep"
}

func (m Method) String() string {
	if m == MethodBlockJacobi {
		return "Block Jacobi"
	}
	return "Sweep"
}

// Arch is the on-node execution architecture.
type Arch int

const (
	ArchSequential Arch = iota
	ArchOpenMP
	ArchCUDA
)

// ArchNames lists every architecture in declaration order.
var ArchNames = []string{"Sequential", "OpenMP", "CUDA"}

// ParseArch decodes an architecture name, ignoring case.
func ParseArch(s string) (Arch, error) {
	i, err := fieldcodec.DecodeChoice(s, ArchNames)
	if err != nil {
		return ArchSequential, err
	}
	return Arch(i), nil
}

func (a Arch) String() string {
	if a < 0 || int(a) >= len(ArchNames) {
		return "Unknown"
	}
	return ArchNames[a]
}

// Layout is the data layout and loop nesting order over
// directions (D), groups (G) and zones (Z).
type Layout int

const (
	LayoutDGZ Layout = iota
	LayoutDZG
	LayoutGDZ
	LayoutGZD
	LayoutZDG
	LayoutZGD
)

// LayoutNames lists every layout in declaration order.
var LayoutNames = []string{"DGZ", "DZG", "GDZ", "GZD", "ZDG", "ZGD"}

// ParseLayout decodes a layout name, ignoring case.
func ParseLayout(s string) (Layout, error) {
	i, err := fieldcodec.DecodeChoice(s, LayoutNames)
	if err != nil {
		return LayoutDGZ, err
	}
	return Layout(i), nil
}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(LayoutNames) {
		return "Unknown"
	}
	return LayoutNames[l]
}
