package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/sweepdeck/internal/app"
)

const usageIndent = 25

// PrintUsage writes the option reference, grouped by section, with the
// default of every option that has one.
func (d *Dispatcher) PrintUsage(w io.Writer) {
	def := app.DefaultConfig()

	fmt.Fprint(w, "Usage:  [srun ...] sweepdeck [options...]\n\n")
	for _, section := range sections {
		fmt.Fprintf(w, "%s:\n%s\n", section, strings.Repeat("-", len(section)+1))
		for _, opt := range d.options {
			if opt.Section != section {
				continue
			}
			head := "  " + strings.Join(opt.Names, ", ")
			if opt.Args != "" {
				head += " " + opt.Args
			}
			lines := opt.Usage
			if len(head) >= usageIndent-1 {
				fmt.Fprintln(w, head)
			} else if len(lines) > 0 {
				fmt.Fprintf(w, "%-*s%s\n", usageIndent, head, lines[0])
				lines = lines[1:]
			} else {
				fmt.Fprintln(w, head)
			}
			for _, l := range lines {
				fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", usageIndent), l)
			}
			if opt.Default != nil {
				fmt.Fprintf(w, "%sDefault:  %s %s\n", strings.Repeat(" ", usageIndent), opt.Names[len(opt.Names)-1], opt.Default(def))
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}
}
