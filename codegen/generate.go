package codegen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/jGleitz/dgs-codegen/schema"
)

// Generator builds client code for a schema document: one request builder
// per root operation field and a projection class per object type reachable
// from an operation's return type. Each class is generated at most once no
// matter how many paths reach its type, which is also what terminates the
// walk on cyclic schemas.
type Generator struct {
	doc         *schema.Document
	cfg         *Config
	resolver    *Resolver
	nullability NullabilityStrategy
	registry    *Registry
	workers     int

	files          []fileTask
	operationNames map[string]struct{}

	// edges records child->parent type pairs seen during the walk. It is
	// advisory: Registry alone decides whether a class is emitted.
	edges map[[2]string]struct{}
}

// fileTask is one generated file, held in memory until Generate writes it.
type fileTask struct {
	pkg  string
	name string
	file *jen.File
}

// NewGenerator creates a Generator for the document. The configuration is
// validated up front so an unknown nullability strategy fails here rather
// than mid-generation.
func NewGenerator(doc *schema.Document, cfg *Config) (*Generator, error) {
	if doc == nil {
		return nil, NewConfigError("document", nil, "schema document is required")
	}
	if cfg == nil {
		cfg = &Config{}
		cfg.setDefaults()
	}
	nullability, err := NullabilityByName(cfg.Nullability)
	if err != nil {
		return nil, err
	}
	return &Generator{
		doc:            doc,
		cfg:            cfg,
		resolver:       NewResolver(doc, cfg.TypeMapping, nullability),
		nullability:    nullability,
		registry:       NewRegistry(),
		workers:        runtime.GOMAXPROCS(0),
		operationNames: make(map[string]struct{}),
		edges:          make(map[[2]string]struct{}),
	}, nil
}

// WithWorkers sets the number of parallel file writers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// newFile creates a jen file for the given package with the configured
// header comment.
func (g *Generator) newFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(g.cfg.Header)
	return f
}

// addFile queues a generated file for writing.
func (g *Generator) addFile(pkg, name string, f *jen.File) {
	g.files = append(g.files, fileTask{pkg: pkg, name: name, file: f})
}

// markEdge records that childType was reached from parentType.
func (g *Generator) markEdge(childType, parentType string) {
	g.edges[[2]string{childType, parentType}] = struct{}{}
}

// Build constructs the in-memory model: all operation builders, the
// projection graph behind them and, when enabled, the federation _entities
// projection. It is idempotent per Generator; a second call finds every
// class already registered and adds nothing.
func (g *Generator) Build() error {
	if err := g.buildOperations(); err != nil {
		return err
	}
	if g.cfg.GenerateEntities {
		if err := g.buildEntities(); err != nil {
			return err
		}
	}
	return nil
}

// Files returns the generated files in deterministic order, keyed by path
// relative to the target directory. Callers that want the rendered source
// without touching the filesystem render the returned jen files themselves.
func (g *Generator) Files() map[string]*jen.File {
	out := make(map[string]*jen.File, len(g.files))
	for _, ft := range g.files {
		out[filepath.Join(ft.pkg, ft.name)] = ft.file
	}
	return out
}

// GeneratedClasses returns the class names emitted so far, sorted.
func (g *Generator) GeneratedClasses() []string {
	return g.registry.Names()
}

// Generate builds the model and writes all files under the target directory,
// one subdirectory per package, formatting each file with goimports. Files
// are written in parallel.
func (g *Generator) Generate(ctx context.Context) error {
	if g.cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if err := g.Build(); err != nil {
		return err
	}

	tasks := make([]fileTask, len(g.files))
	copy(tasks, g.files)
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].pkg != tasks[j].pkg {
			return tasks[i].pkg < tasks[j].pkg
		}
		return tasks[i].name < tasks[j].name
	})

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for _, ft := range tasks {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.writeFile(ft)
			}
		})
	}
	return eg.Wait()
}

// writeFile renders, formats and writes a single generated file.
func (g *Generator) writeFile(ft fileTask) error {
	var buf bytes.Buffer
	if err := ft.file.Render(&buf); err != nil {
		return NewGenerationError("", ft.name, "render", err)
	}

	dir := filepath.Join(g.cfg.Target, ft.pkg)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewGenerationError("", ft.name, "create output directory", err)
	}

	fullPath := filepath.Join(dir, ft.name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output around for debugging; write errors are
		// ignored as we're already in an error state.
		debugPath := fullPath + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return NewGenerationError("", ft.name, "format generated source (unformatted written to "+debugPath+")", err)
	}

	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return NewGenerationError("", ft.name, "write", err)
	}
	return nil
}

// Generate is the convenience entry point: it loads the schemas named by the
// config, builds a generator and writes the client code.
func Generate(ctx context.Context, cfg *Config) error {
	if cfg == nil || len(cfg.Schemas) == 0 {
		return NewConfigError("Schemas", nil, "missing schema paths in config")
	}
	doc, err := schema.LoadPaths(cfg.Schemas...)
	if err != nil {
		return err
	}
	g, err := NewGenerator(doc, cfg)
	if err != nil {
		return err
	}
	return g.Generate(ctx)
}
