// Package runconfig defines the problem description handed to the sweep
// solver, its built-in defaults, and the validator that enforces every
// cross-field invariant before a configuration may be used.
//
// A Config is freely mutable while options are being applied. Validate turns
// it into a Frozen value, which is the only form the rest of the program
// accepts.
package runconfig

// DirSetMultiple is the architectural factor every direction-set count must
// be a multiple of.
const DirSetMultiple = 8

// Config holds every run parameter.
type Config struct {
	RunName string

	// Problem size
	Groups        int
	LegendreOrder int
	Directions    int
	QuadPolar     int
	QuadAzimuthal int
	Zones         [3]int

	// Physics, one entry per material
	SigmaTotal   [3]float64
	SigmaScatter [3]float64

	// Decomposition
	Procs     [3]int
	DirSets   int
	GroupSets int
	ZoneSets  [3]int

	// Solver
	Iterations int
	Method     Method
	Arch       Arch
	Layout     Layout
}

// Default returns the configuration used when no options are given.
func Default() Config {
	return Config{
		Groups:        32,
		LegendreOrder: 4,
		Directions:    96,
		Zones:         [3]int{16, 16, 16},
		SigmaTotal:    [3]float64{0.1, 0.0001, 0.1},
		SigmaScatter:  [3]float64{0.05, 0.00005, 0.05},
		Procs:         [3]int{1, 1, 1},
		DirSets:       8,
		GroupSets:     2,
		ZoneSets:      [3]int{1, 1, 1},
		Iterations:    10,
		Method:        MethodSweep,
		Arch:          ArchSequential,
		Layout:        LayoutDGZ,
	}
}

// SimpleQuadrature reports whether the direction count was given directly
// rather than as a polar by azimuthal product.
func (c *Config) SimpleQuadrature() bool {
	return c.QuadPolar == 0 && c.QuadAzimuthal == 0
}

// TotalZones is the global zone count.
func (c *Config) TotalZones() int {
	return c.Zones[0] * c.Zones[1] * c.Zones[2]
}

// TotalProcs is the number of participants the decomposition requires.
func (c *Config) TotalProcs() int {
	return c.Procs[0] * c.Procs[1] * c.Procs[2]
}

// DirectionsPerSet is the number of directions in each direction-set.
func (c *Config) DirectionsPerSet() int {
	if c.DirSets == 0 {
		return 0
	}
	return c.Directions / c.DirSets
}

// GroupsPerSet is the number of energy groups in each group-set.
func (c *Config) GroupsPerSet() int {
	if c.GroupSets == 0 {
		return 0
	}
	return c.Groups / c.GroupSets
}

// Frozen is a configuration that passed validation. It exposes read-only
// access; Config returns a copy.
type Frozen struct {
	cfg Config
}

// Config returns a copy of the validated configuration.
func (f Frozen) Config() Config {
	return f.cfg
}

func (f Frozen) RunName() string        { return f.cfg.RunName }
func (f Frozen) Groups() int            { return f.cfg.Groups }
func (f Frozen) Directions() int        { return f.cfg.Directions }
func (f Frozen) Zones() [3]int          { return f.cfg.Zones }
func (f Frozen) Iterations() int        { return f.cfg.Iterations }
func (f Frozen) Method() Method         { return f.cfg.Method }
func (f Frozen) TotalZones() int        { return f.cfg.TotalZones() }
func (f Frozen) DirectionsPerSet() int  { return f.cfg.DirectionsPerSet() }
func (f Frozen) GroupsPerSet() int      { return f.cfg.GroupsPerSet() }
func (f Frozen) SimpleQuadrature() bool { return f.cfg.SimpleQuadrature() }
