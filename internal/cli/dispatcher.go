package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/sweepdeck/internal/app"
	"github.com/vk/sweepdeck/internal/argstream"
	"github.com/vk/sweepdeck/internal/ctxlog"
)

var (
	// ErrUnknownOption is returned for a flag name with no registered handler.
	ErrUnknownOption = errors.New("unknown option")
	// ErrHelp is returned when usage was requested.
	ErrHelp = errors.New("help requested")
)

// Handler consumes the arguments of one option from s and applies them to cfg.
type Handler func(ctx context.Context, s *argstream.Stream, cfg *app.Config) error

// Option is one entry of the dispatch table.
type Option struct {
	// Names are the flag spellings, e.g. "-h" and "--help".
	Names []string
	// Args describes the arguments for usage text, e.g. "<x,y,z>".
	Args string
	// Usage is the help text, one entry per line.
	Usage []string
	// Default renders the default value for usage text. Nil means no default
	// line is printed.
	Default func(def *app.Config) string
	// Section is the usage heading the option is listed under.
	Section string
	// Handle applies the option.
	Handle Handler
}

// Dispatcher maps flag names to options.
type Dispatcher struct {
	options []*Option
	byName  map[string]*Option
}

// NewDispatcher returns a dispatcher with every built-in option registered.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{byName: make(map[string]*Option)}
	d.registerBuiltins()
	return d
}

// Register adds an option to the table. Registering a flag name twice is a
// programming error and panics.
func (d *Dispatcher) Register(opt *Option) {
	for _, name := range opt.Names {
		if _, exists := d.byName[name]; exists {
			panic(fmt.Sprintf("option with name '%s' already registered", name))
		}
	}
	for _, name := range opt.Names {
		d.byName[name] = opt
	}
	d.options = append(d.options, opt)
	slog.Debug("Registering option.", "names", opt.Names)
}

// Lookup returns the option registered under name.
func (d *Dispatcher) Lookup(name string) (*Option, bool) {
	opt, ok := d.byName[name]
	return opt, ok
}

// Names returns every recognized flag spelling, sorted.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.byName))
	for name := range d.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch pops a flag name, runs its handler, and repeats until the stream
// is exhausted. It stops at the first failure; no later option is applied.
func (d *Dispatcher) Dispatch(ctx context.Context, s *argstream.Stream, cfg *app.Config) error {
	logger := ctxlog.FromContext(ctx)
	for !s.AtEnd() {
		name, err := s.Pop()
		if err != nil {
			return err
		}
		opt, ok := d.byName[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownOption, name)
		}
		if err := opt.Handle(ctx, s, cfg); err != nil {
			if errors.Is(err, ErrHelp) {
				return err
			}
			return fmt.Errorf("option %s: %w", name, err)
		}
		logger.Debug("Option applied.", "option", name)
	}
	return nil
}
