package hcl_adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/sweepdeck/internal/ctxlog"
	"github.com/vk/sweepdeck/internal/timing"
)

// ErrInvalidDeck wraps every failure to read a deck or timing file.
var ErrInvalidDeck = errors.New("invalid deck file")

// Setting is one attribute of a deck: the option name it sets and its value
// rendered as a command-line token.
type Setting struct {
	Name  string
	Value string
	// Origin is the file:line the attribute was read from.
	Origin string
}

// Loader reads HCL deck and timing files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadDeck reads every attribute of the deck at path, in source order. If path
// is a directory, every .hcl file beneath it is read in lexical order.
func (l *Loader) LoadDeck(ctx context.Context, path string) ([]Setting, error) {
	logger := ctxlog.FromContext(ctx).With("deck", path)
	logger.Debug("HCL deck loader started.")

	files, err := findHCLFiles(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	var settings []Setting
	for _, file := range files {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: failed to parse HCL file %s: %v", ErrInvalidDeck, file, diags)
		}

		attrs, diags := hclFile.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: failed to decode HCL file %s: %v", ErrInvalidDeck, file, diags)
		}

		ordered := make([]*hcl.Attribute, 0, len(attrs))
		for _, attr := range attrs {
			ordered = append(ordered, attr)
		}
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
		})

		for _, attr := range ordered {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDeck, attr.Range, diags)
			}
			token, err := valueToToken(val)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: attribute %q: %v", ErrInvalidDeck, attr.Range, attr.Name, err)
			}
			settings = append(settings, Setting{
				Name:   attr.Name,
				Value:  token,
				Origin: fmt.Sprintf("%s:%d", attr.Range.Filename, attr.Range.Start.Line),
			})
			logger.Debug("Deck attribute read.", "name", attr.Name, "value", token)
		}
	}

	logger.Debug("HCL deck loading complete.", "settings", len(settings))
	return settings, nil
}

// timingFile is the schema of a recorded timing file:
//
//	counter "Solve" {
//	  count = 1
//	  total = 5.0
//	}
type timingFile struct {
	Counters []*counterBlock `hcl:"counter,block"`
}

type counterBlock struct {
	Name  string  `hcl:"name,label"`
	Count int64   `hcl:"count"`
	Total float64 `hcl:"total"`
}

// LoadTimings reads recorded timing counters from the HCL file at path.
func (l *Loader) LoadTimings(ctx context.Context, path string) (*timing.Timing, error) {
	logger := ctxlog.FromContext(ctx).With("timings", path)
	logger.Debug("HCL timing loader started.")

	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file %s: %v", ErrInvalidDeck, path, diags)
	}

	var root timingFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL file %s: %v", ErrInvalidDeck, path, diags)
	}

	t := timing.New()
	seen := make(map[string]struct{})
	for _, c := range root.Counters {
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("%w: %s: counter %q declared more than once", ErrInvalidDeck, path, c.Name)
		}
		seen[c.Name] = struct{}{}
		if c.Count < 0 || c.Total < 0 {
			return nil, fmt.Errorf("%w: %s: counter %q has negative count or total", ErrInvalidDeck, path, c.Name)
		}
		t.Set(c.Name, uint64(c.Count), c.Total)
	}

	logger.Debug("HCL timing loading complete.", "counters", len(root.Counters))
	return t, nil
}

// findHCLFiles returns path itself, or every .hcl file beneath it when path
// is a directory.
func findHCLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == ".hcl" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %s", path)
	}
	sort.Strings(files)
	return files, nil
}
