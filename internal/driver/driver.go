// Package driver wires source loading and parsing into the resolver: the
// single entry point a CLI or editor integration calls to go from raw file
// text to either a resolved program or a sorted list of diagnostics.
package driver

import (
	"context"
	"fmt"
	"path"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"tim/internal/ast"
	"tim/internal/diag"
	"tim/internal/modgraph"
	"tim/internal/parser"
	"tim/internal/resolver"
	"tim/internal/source"
	"tim/internal/symtable"
)

// Source is one input file: its path (used both for duplicate-source
// identity and to derive its dotted module path) and its text.
type Source struct {
	Path string
	Text string
}

// Options configures Compile. The zero value is a sane default.
type Options struct {
	// Jobs caps how many files are parsed concurrently. 0 means
	// runtime.GOMAXPROCS(0).
	Jobs int
}

type parseResult struct {
	path   string
	fileID source.FileID
	file   *ast.File
	ok     bool
	bag    *diag.Bag
}

// Compile registers every file in a fresh source registry (reporting
// duplicate_source for path collisions with differing content), parses them
// concurrently via an errgroup worker pool, then runs the resolver's
// Resolve and Finish passes across the resulting module graph in
// registration order. The concurrency ends before resolution begins: by the
// time Resolve is called the module graph is fully built and has exactly
// one owner. The returned registry is the one every diagnostic's spans and
// every FileID in the program refer to; callers rendering diagnostics must
// use it rather than building their own.
func Compile(files []Source, opts Options) (*resolver.Program, *source.Registry, []diag.Diagnostic) {
	registry := source.NewRegistry()
	interner := source.NewInterner()
	mainBag := diag.NewBag(len(files) * 2)
	mainReporter := diag.BagReporter{Bag: mainBag}

	fileIDs := make([]source.FileID, len(files))
	for i, f := range files {
		id, err := registry.Register(f.Path, f.Text)
		if err != nil {
			diag.ReportError(mainReporter, diag.DuplicateSource, source.Span{}, err.Error()).Emit()
			continue
		}
		fileIDs[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	results := make([]parseResult, len(files))
	g, ctx := errgroup.WithContext(context.Background())
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i := range files {
		i := i
		if !fileIDs[i].IsValid() {
			continue
		}
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			bag := diag.NewBag(4)
			reporter := diag.BagReporter{Bag: bag}
			f, ok := parser.Parse(fileIDs[i], files[i].Text, reporter)
			results[i] = parseResult{
				path:   modulePath(files[i].Path),
				fileID: fileIDs[i],
				file:   f,
				ok:     ok,
				bag:    bag,
			}
			return nil
		})
	}
	// Parse errors are collected per-file, never surfaced through ctx.Err, so
	// Wait's error is always nil; this return is kept for clarity and for any
	// future cancellation-aware parsing stage.
	_ = g.Wait()

	graph := modgraph.NewGraph()
	for i := range files {
		res := results[i]
		if res.bag != nil {
			mainBag.Merge(res.bag)
		}
		if !fileIDs[i].IsValid() || res.file == nil || !res.ok {
			continue
		}
		if _, added := graph.AddNode(res.fileID, res.path, res.file); !added {
			diag.ReportError(mainReporter, diag.DuplicateSource, res.file.Span,
				fmt.Sprintf("module path %q is already declared by another file", res.path)).Emit()
		}
	}

	totalBytes := 0
	for _, f := range files {
		totalBytes += len(f.Text)
	}
	hints := symtable.EstimateFromFileCount(len(files), totalBytes)
	r := resolver.NewWithHints(graph, interner, mainReporter, hints)
	r.Resolve()
	r.Finish()
	mainBag.Sort()

	prog := r.Program()
	if mainBag.HasErrors() {
		return nil, registry, mainBag.Items()
	}
	return prog, registry, mainBag.Items()
}

// modulePath derives a dotted module path from a file path: directory
// separators become dots and the .tim extension is dropped, e.g.
// "a/b/c.tim" -> "a.b.c".
func modulePath(p string) string {
	p = path.Clean(strings.ReplaceAll(p, `\`, "/"))
	p = strings.TrimSuffix(p, ".tim")
	p = strings.Trim(p, "/")
	return strings.ReplaceAll(p, "/", ".")
}
