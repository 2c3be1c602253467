package runconfig

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vk/sweepdeck/internal/fieldcodec"
)

// ErrInvalidConfiguration is wrapped by every validation failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ValidationError lists every invariant a configuration violates.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v:\n- %s", ErrInvalidConfiguration, strings.Join(e.Violations, "\n- "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

var axes = [3]string{"x", "y", "z"}

// Validate checks every invariant against c and the number of participants
// actually running. On success it returns the frozen configuration; on failure
// it returns a *ValidationError naming each violated constraint and the
// configuration must not be used.
func (c Config) Validate(procCount int) (Frozen, error) {
	var v []string
	add := func(format string, args ...any) {
		v = append(v, fmt.Sprintf(format, args...))
	}

	if c.Groups <= 0 {
		add("number of groups (%d) must be positive", c.Groups)
	}
	if c.LegendreOrder < 0 {
		add("legendre order (%d) must not be negative", c.LegendreOrder)
	}
	if c.Directions <= 0 {
		add("number of directions (%d) must be positive", c.Directions)
	}
	if c.Iterations <= 0 {
		add("number of iterations (%d) must be positive", c.Iterations)
	}
	for i, ax := range axes {
		if c.Zones[i] <= 0 {
			add("zones in %s (%d) must be positive", ax, c.Zones[i])
		}
		if c.Procs[i] <= 0 {
			add("processes in %s (%d) must be positive", ax, c.Procs[i])
		}
		if c.ZoneSets[i] <= 0 {
			add("zone-sets in %s (%d) must be positive", ax, c.ZoneSets[i])
		}
	}

	// Quadrature
	if c.QuadPolar < 0 || c.QuadAzimuthal < 0 {
		add("quadrature polar (%d) and azimuthal (%d) counts must not be negative", c.QuadPolar, c.QuadAzimuthal)
	} else if !c.SimpleQuadrature() {
		if c.QuadPolar == 0 || c.QuadAzimuthal == 0 {
			add("quadrature %d:%d must have both polar and azimuthal counts positive", c.QuadPolar, c.QuadAzimuthal)
		} else if dirs, ok := fieldcodec.Product(c.QuadPolar, c.QuadAzimuthal); !ok {
			add("quadrature %d:%d overflows the number of directions", c.QuadPolar, c.QuadAzimuthal)
		} else if dirs != c.Directions {
			add("quadrature %d:%d implies %d directions, but directions is %d",
				c.QuadPolar, c.QuadAzimuthal, dirs, c.Directions)
		}
	}

	// Direction-sets
	if c.DirSets <= 0 {
		add("number of direction-sets (%d) must be positive", c.DirSets)
	} else {
		if c.DirSets%DirSetMultiple != 0 {
			add("number of direction-sets (%d) must be a multiple of %d", c.DirSets, DirSetMultiple)
		}
		if c.Directions > 0 {
			if c.DirSets > c.Directions {
				add("number of direction-sets (%d) must not exceed the number of directions (%d)", c.DirSets, c.Directions)
			}
			if c.Directions%c.DirSets != 0 {
				add("number of direction-sets (%d) must evenly divide the number of directions (%d)", c.DirSets, c.Directions)
			}
		}
	}

	// Group-sets
	if c.GroupSets <= 0 {
		add("number of group-sets (%d) must be positive", c.GroupSets)
	} else if c.Groups > 0 && c.Groups%c.GroupSets != 0 {
		add("number of group-sets (%d) must evenly divide the number of groups (%d)", c.GroupSets, c.Groups)
	}

	// Zone-sets
	for i, ax := range axes {
		if c.ZoneSets[i] > 0 && c.Zones[i] > 0 && c.Zones[i]%c.ZoneSets[i] != 0 {
			add("zone-sets in %s (%d) must evenly divide the zones in %s (%d)", ax, c.ZoneSets[i], ax, c.Zones[i])
		}
	}

	// Global sizes
	if c.Zones[0] > 0 && c.Zones[1] > 0 && c.Zones[2] > 0 {
		if zones, ok := fieldcodec.Product(c.Zones[:]...); !ok {
			add("zone count %dx%dx%d overflows", c.Zones[0], c.Zones[1], c.Zones[2])
		} else if c.Groups > 0 && c.Directions > 0 {
			if _, ok := fieldcodec.Product(c.Groups, c.Directions, zones); !ok {
				add("unknown count %d groups x %d directions x %d zones overflows", c.Groups, c.Directions, zones)
			}
		}
	}

	// Cross-sections
	for mat := 0; mat < 3; mat++ {
		if st := c.SigmaTotal[mat]; st < 0 || math.IsNaN(st) || math.IsInf(st, 0) {
			add("total cross-section of material %d (%g) must be a non-negative finite number", mat, st)
		}
		if ss := c.SigmaScatter[mat]; ss < 0 || math.IsNaN(ss) || math.IsInf(ss, 0) {
			add("scattering cross-section of material %d (%g) must be a non-negative finite number", mat, ss)
		}
	}

	// Decomposition against the running participants
	if c.Procs[0] > 0 && c.Procs[1] > 0 && c.Procs[2] > 0 {
		if procs, ok := fieldcodec.Product(c.Procs[:]...); !ok {
			add("process decomposition %dx%dx%d overflows", c.Procs[0], c.Procs[1], c.Procs[2])
		} else if procs != procCount {
			add("process decomposition %dx%dx%d needs %d processes, but %d are running",
				c.Procs[0], c.Procs[1], c.Procs[2], procs, procCount)
		}
	}

	if len(v) > 0 {
		return Frozen{}, &ValidationError{Violations: v}
	}
	return Frozen{cfg: c}, nil
}
