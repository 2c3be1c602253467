package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/sweepdeck/internal/app"
	"github.com/vk/sweepdeck/internal/argstream"
	"github.com/vk/sweepdeck/internal/fieldcodec"
	"github.com/vk/sweepdeck/internal/hcl_adapter"
	"github.com/vk/sweepdeck/internal/runconfig"
)

// Usage sections, in print order.
const (
	sectionProblem = "Problem Size Options"
	sectionPhysics = "Physics Parameters"
	sectionOnNode  = "On-Node Options"
	sectionDecomp  = "Parallel Decomposition Options"
	sectionSolver  = "Solver Options"
	sectionOutput  = "Input/Output Options"
)

var sections = []string{sectionProblem, sectionPhysics, sectionOnNode, sectionDecomp, sectionSolver, sectionOutput}

// Option names that may not appear inside a deck file.
var deckForbidden = map[string]struct{}{
	"help": {},
	"h":    {},
	"deck": {},
}

func (d *Dispatcher) registerBuiltins() {
	loader := hcl_adapter.NewLoader()

	d.Register(&Option{
		Names:   []string{"-h", "--help"},
		Usage:   []string{"Print this message and exit"},
		Section: sectionOutput,
		Handle: func(context.Context, *argstream.Stream, *app.Config) error {
			return ErrHelp
		},
	})
	d.Register(&Option{
		Names:   []string{"--name"},
		Args:    "<name>",
		Usage:   []string{"Name of this run, recorded in reports"},
		Section: sectionOutput,
		Handle:  stringHandler(func(c *app.Config) *string { return &c.Run.RunName }),
	})

	// Problem size
	d.Register(&Option{
		Names:   []string{"--groups"},
		Args:    "<ngroups>",
		Usage:   []string{"Number of energy groups"},
		Default: func(c *app.Config) string { return strconv.Itoa(c.Run.Groups) },
		Section: sectionProblem,
		Handle:  intHandler(func(c *app.Config) *int { return &c.Run.Groups }),
	})
	d.Register(&Option{
		Names:   []string{"--legendre"},
		Args:    "<lorder>",
		Usage:   []string{"Scattering Legendre Expansion Order (0, 1, ...)"},
		Default: func(c *app.Config) string { return strconv.Itoa(c.Run.LegendreOrder) },
		Section: sectionProblem,
		Handle:  intHandler(func(c *app.Config) *int { return &c.Run.LegendreOrder }),
	})
	d.Register(&Option{
		Names: []string{"--quad"},
		Args:  "[<ndirs>|<polar>:<azim>]",
		Usage: []string{
			"Define the quadrature set to use",
			"Either a fake S2 with <ndirs> points,",
			"OR Gauss-Legendre with <polar> by <azim> points",
		},
		Default: func(c *app.Config) string { return strconv.Itoa(c.Run.Directions) },
		Section: sectionProblem,
		Handle: func(_ context.Context, s *argstream.Stream, cfg *app.Config) error {
			tok, err := s.Pop()
			if err != nil {
				return err
			}
			q, err := fieldcodec.DecodeQuadrature(tok)
			if err != nil {
				return err
			}
			cfg.Run.Directions = q.Directions
			cfg.Run.QuadPolar = q.Polar
			cfg.Run.QuadAzimuthal = q.Azimuthal
			return nil
		},
	})
	d.Register(&Option{
		Names:   []string{"--zones"},
		Args:    "<x,y,z>",
		Usage:   []string{"Number of zones in x,y,z"},
		Default: func(c *app.Config) string { return joinInts(c.Run.Zones) },
		Section: sectionProblem,
		Handle:  intTripleHandler(func(c *app.Config) *[3]int { return &c.Run.Zones }),
	})

	// Physics
	d.Register(&Option{
		Names:   []string{"--sigt"},
		Args:    "<st0,st1,st2>",
		Usage:   []string{"Total material cross-sections"},
		Default: func(c *app.Config) string { return joinFloats(c.Run.SigmaTotal) },
		Section: sectionPhysics,
		Handle:  floatTripleHandler(func(c *app.Config) *[3]float64 { return &c.Run.SigmaTotal }),
	})
	d.Register(&Option{
		Names:   []string{"--sigs"},
		Args:    "<ss0,ss1,ss2>",
		Usage:   []string{"Scattering material cross-sections"},
		Default: func(c *app.Config) string { return joinFloats(c.Run.SigmaScatter) },
		Section: sectionPhysics,
		Handle:  floatTripleHandler(func(c *app.Config) *[3]float64 { return &c.Run.SigmaScatter }),
	})

	// On-node
	d.Register(&Option{
		Names:   []string{"--arch"},
		Args:    "<ARCH>",
		Usage:   []string{"Architecture selection", "Available: " + strings.Join(runconfig.ArchNames, ", ")},
		Default: func(c *app.Config) string { return c.Run.Arch.String() },
		Section: sectionOnNode,
		Handle: func(_ context.Context, s *argstream.Stream, cfg *app.Config) error {
			tok, err := s.Pop()
			if err != nil {
				return err
			}
			a, err := runconfig.ParseArch(tok)
			if err != nil {
				return err
			}
			cfg.Run.Arch = a
			return nil
		},
	})
	d.Register(&Option{
		Names:   []string{"--layout"},
		Args:    "<LAYOUT>",
		Usage:   []string{"Data layout and loop nesting order", "Available: " + strings.Join(runconfig.LayoutNames, ",")},
		Default: func(c *app.Config) string { return c.Run.Layout.String() },
		Section: sectionOnNode,
		Handle: func(_ context.Context, s *argstream.Stream, cfg *app.Config) error {
			tok, err := s.Pop()
			if err != nil {
				return err
			}
			l, err := runconfig.ParseLayout(tok)
			if err != nil {
				return err
			}
			cfg.Run.Layout = l
			return nil
		},
	})

	// Decomposition
	d.Register(&Option{
		Names:   []string{"--procs"},
		Args:    "<npx,npy,npz>",
		Usage:   []string{"Number of processes in each spatial dimension"},
		Default: func(c *app.Config) string { return joinInts(c.Run.Procs) },
		Section: sectionDecomp,
		Handle:  intTripleHandler(func(c *app.Config) *[3]int { return &c.Run.Procs }),
	})
	d.Register(&Option{
		Names: []string{"--dset"},
		Args:  "<ds>",
		Usage: []string{
			"Number of direction-sets",
			fmt.Sprintf("Must be a multiple of %d, and divide evenly the number", runconfig.DirSetMultiple),
			"of quadrature points",
		},
		Default: func(c *app.Config) string { return strconv.Itoa(c.Run.DirSets) },
		Section: sectionDecomp,
		Handle:  intHandler(func(c *app.Config) *int { return &c.Run.DirSets }),
	})
	d.Register(&Option{
		Names:   []string{"--gset"},
		Args:    "<gs>",
		Usage:   []string{"Number of energy group-sets", "Must divide evenly the number energy groups"},
		Default: func(c *app.Config) string { return strconv.Itoa(c.Run.GroupSets) },
		Section: sectionDecomp,
		Handle:  intHandler(func(c *app.Config) *int { return &c.Run.GroupSets }),
	})
	d.Register(&Option{
		Names:   []string{"--zset"},
		Args:    "<zx>,<zy>,<zz>",
		Usage:   []string{"Number of zone-sets in x,y, and z"},
		Default: func(c *app.Config) string { return joinInts(c.Run.ZoneSets) },
		Section: sectionDecomp,
		Handle:  intTripleHandler(func(c *app.Config) *[3]int { return &c.Run.ZoneSets }),
	})

	// Solver
	d.Register(&Option{
		Names:   []string{"--niter"},
		Args:    "<NITER>",
		Usage:   []string{"Number of solver iterations to run"},
		Default: func(c *app.Config) string { return strconv.Itoa(c.Run.Iterations) },
		Section: sectionSolver,
		Handle:  intHandler(func(c *app.Config) *int { return &c.Run.Iterations }),
	})
	d.Register(&Option{
		Names: []string{"--pmethod"},
		Args:  "<method>",
		Usage: []string{
			"Parallel solver method",
			"sweep: Full up-wind sweep (wavefront algorithm)",
			"bj: Block Jacobi",
		},
		Default: func(c *app.Config) string { return c.Run.Method.Flag() },
		Section: sectionSolver,
		Handle: func(_ context.Context, s *argstream.Stream, cfg *app.Config) error {
			tok, err := s.Pop()
			if err != nil {
				return err
			}
			m, err := runconfig.ParseMethod(tok)
			if err != nil {
				return err
			}
			cfg.Run.Method = m
			return nil
		},
	})

	// Input/output
	d.Register(&Option{
		Names: []string{"--deck"},
		Args:  "<path>",
		Usage: []string{
			"Apply the settings of an HCL deck file (or directory)",
			"at this point; later options override them",
		},
		Section: sectionOutput,
		Handle: func(ctx context.Context, s *argstream.Stream, cfg *app.Config) error {
			path, err := s.Pop()
			if err != nil {
				return err
			}
			settings, err := loader.LoadDeck(ctx, path)
			if err != nil {
				return err
			}
			tokens := make([]string, 0, 2*len(settings))
			for _, st := range settings {
				flag := "--" + st.Name
				if _, forbidden := deckForbidden[st.Name]; forbidden {
					return fmt.Errorf("%w: %s is not allowed in a deck (%s)", ErrUnknownOption, st.Name, st.Origin)
				}
				if _, ok := d.byName[flag]; !ok {
					return fmt.Errorf("%w: %s (%s)", ErrUnknownOption, st.Name, st.Origin)
				}
				tokens = append(tokens, flag, st.Value)
			}
			cfg.Decks = append(cfg.Decks, path)
			return d.Dispatch(ctx, argstream.New(tokens), cfg)
		},
	})
	d.Register(&Option{
		Names:   []string{"--timings"},
		Args:    "<path>",
		Usage:   []string{"HCL file of recorded timing counters to report from"},
		Section: sectionOutput,
		Handle:  stringHandler(func(c *app.Config) *string { return &c.TimingsPath }),
	})
	d.Register(&Option{
		Names:   []string{"--report-csv"},
		Args:    "<path>",
		Usage:   []string{"Append the figures of merit to a CSV file"},
		Section: sectionOutput,
		Handle:  stringHandler(func(c *app.Config) *string { return &c.CSVPath }),
	})
	d.Register(&Option{
		Names:   []string{"--metrics-out"},
		Args:    "<path>",
		Usage:   []string{"Write the figures of merit as a Prometheus textfile"},
		Section: sectionOutput,
		Handle:  stringHandler(func(c *app.Config) *string { return &c.MetricsPath }),
	})
	d.Register(&Option{
		Names:   []string{"--publish"},
		Args:    "<url>",
		Usage:   []string{"Emit the run report to a socket.io endpoint"},
		Section: sectionOutput,
		Handle:  stringHandler(func(c *app.Config) *string { return &c.PublishURL }),
	})
	d.Register(&Option{
		Names:   []string{"--log-level"},
		Args:    "<level>",
		Usage:   []string{"Logging level: " + strings.Join(app.LogLevels, ", ")},
		Default: func(c *app.Config) string { return c.LogLevel },
		Section: sectionOutput,
		Handle:  choiceHandler(app.LogLevels, func(c *app.Config) *string { return &c.LogLevel }),
	})
	d.Register(&Option{
		Names:   []string{"--log-format"},
		Args:    "<format>",
		Usage:   []string{"Log output format: " + strings.Join(app.LogFormats, ", ")},
		Default: func(c *app.Config) string { return c.LogFormat },
		Section: sectionOutput,
		Handle:  choiceHandler(app.LogFormats, func(c *app.Config) *string { return &c.LogFormat }),
	})
}

func stringHandler(field func(*app.Config) *string) Handler {
	return func(_ context.Context, s *argstream.Stream, cfg *app.Config) error {
		tok, err := s.Pop()
		if err != nil {
			return err
		}
		*field(cfg) = tok
		return nil
	}
}

func choiceHandler(choices []string, field func(*app.Config) *string) Handler {
	return func(_ context.Context, s *argstream.Stream, cfg *app.Config) error {
		tok, err := s.Pop()
		if err != nil {
			return err
		}
		i, err := fieldcodec.DecodeChoice(tok, choices)
		if err != nil {
			return err
		}
		*field(cfg) = choices[i]
		return nil
	}
}

func intHandler(field func(*app.Config) *int) Handler {
	return func(_ context.Context, s *argstream.Stream, cfg *app.Config) error {
		tok, err := s.Pop()
		if err != nil {
			return err
		}
		v, err := fieldcodec.DecodeInt(tok)
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	}
}

func intTripleHandler(field func(*app.Config) *[3]int) Handler {
	return func(_ context.Context, s *argstream.Stream, cfg *app.Config) error {
		tok, err := s.Pop()
		if err != nil {
			return err
		}
		v, err := fieldcodec.DecodeIntTriple(tok, ',')
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	}
}

func floatTripleHandler(field func(*app.Config) *[3]float64) Handler {
	return func(_ context.Context, s *argstream.Stream, cfg *app.Config) error {
		tok, err := s.Pop()
		if err != nil {
			return err
		}
		v, err := fieldcodec.DecodeFloatTriple(tok, ',')
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	}
}

func joinInts(v [3]int) string {
	return fmt.Sprintf("%d,%d,%d", v[0], v[1], v[2])
}

func joinFloats(v [3]float64) string {
	return fmt.Sprintf("%g,%g,%g", v[0], v[1], v[2])
}
