package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vk/sweepdeck/internal/metrics"
	"github.com/vk/sweepdeck/internal/participant"
	"github.com/vk/sweepdeck/internal/runconfig"
	"github.com/vk/sweepdeck/internal/timing"
)

// PrintInputParameters echoes a validated configuration.
func PrintInputParameters(w io.Writer, cfg runconfig.Frozen, p participant.Participant) {
	c := cfg.Config()

	fmt.Fprint(w, "\nInput Parameters\n================\n\n")
	if c.RunName != "" {
		fmt.Fprintf(w, "  Run Name:                %s\n\n", c.RunName)
	}

	fmt.Fprint(w, "  Problem Size:\n")
	fmt.Fprintf(w, "    Zones:                 %d x %d x %d  (%d total)\n", c.Zones[0], c.Zones[1], c.Zones[2], c.TotalZones())
	fmt.Fprintf(w, "    Groups:                %d\n", c.Groups)
	fmt.Fprintf(w, "    Legendre Order:        %d\n", c.LegendreOrder)
	if c.SimpleQuadrature() {
		fmt.Fprintf(w, "    Quadrature Set:        Dummy S2 with %d points\n", c.Directions)
	} else {
		fmt.Fprintf(w, "    Quadrature Set:        Gauss-Legendre, %d polar, %d azimuthal (%d points)\n",
			c.QuadPolar, c.QuadAzimuthal, c.Directions)
	}

	fmt.Fprint(w, "\n  Physical Properties:\n")
	fmt.Fprintf(w, "    Total X-Sec:           sigt=[%f, %f, %f]\n", c.SigmaTotal[0], c.SigmaTotal[1], c.SigmaTotal[2])
	fmt.Fprintf(w, "    Scattering X-Sec:      sigs=[%f, %f, %f]\n", c.SigmaScatter[0], c.SigmaScatter[1], c.SigmaScatter[2])

	fmt.Fprint(w, "\n  Solver Options:\n")
	fmt.Fprintf(w, "    Number iterations:     %d\n", c.Iterations)

	fmt.Fprint(w, "\n  Decomposition Options:\n")
	fmt.Fprintf(w, "    Total processes:       %d\n", p.Size)
	fmt.Fprintf(w, "    Spatial decomp:        %d x %d x %d processes\n", c.Procs[0], c.Procs[1], c.Procs[2])
	fmt.Fprintf(w, "    Block solve method:    %s\n", c.Method)

	fmt.Fprint(w, "\n  Per-Task Options:\n")
	fmt.Fprintf(w, "    DirSets/Directions:    %d sets, %d directions/set\n", c.DirSets, c.DirectionsPerSet())
	fmt.Fprintf(w, "    GroupSet/Groups:       %d sets, %d groups/set\n", c.GroupSets, c.GroupsPerSet())
	fmt.Fprintf(w, "    Zone Sets:             %d x %d x %d\n", c.ZoneSets[0], c.ZoneSets[1], c.ZoneSets[2])
	fmt.Fprintf(w, "    Architecture:          %s\n", c.Arch)
	fmt.Fprintf(w, "    Data Layout:           %s\n", c.Layout)
}

// PrintTiming writes one line per timing counter.
func PrintTiming(w io.Writer, t *timing.Timing) {
	fmt.Fprint(w, "\nTimers\n======\n\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "  Timer\tCount\tSeconds\t")
	for _, c := range t.Counters() {
		fmt.Fprintf(tw, "  %s\t%d\t%.5f\t\n", c.Name, c.Count, c.Total)
	}
	tw.Flush()
}

// PrintFiguresOfMerit writes the derived performance figures.
func PrintFiguresOfMerit(w io.Writer, s metrics.Snapshot) {
	fmt.Fprint(w, "\nFigures of Merit\n================\n\n")
	fmt.Fprintf(w, "  Throughput:         %e [unknowns/(second/iteration)]\n", s.Throughput)
	fmt.Fprintf(w, "  Grind time :        %e [(seconds/iteration)/unknowns]\n", s.GrindTime)
	fmt.Fprintf(w, "  Sweep efficiency :  %4.5f [100.0 * SweepSubdomain time / Solve time]\n", s.SweepEfficiency)
	fmt.Fprintf(w, "  Number of unknowns: %d\n", s.UnknownCount)
}
