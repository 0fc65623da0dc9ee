package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/jGleitz/dgs-codegen/codegen"
)

const usage = `usage: dgs-codegen [-c <config>] [-s <schema>]... -o <target> [options...]

Generate Go GraphQL client code for the specified schema.

Options:

  -c <config>       YAML configuration file. Flags override its values.
  -s <schema>       GraphQL schema file, can be specified multiple times.
  -o <target>       Output directory for generated packages.
  -p <package>      Package name for generated operation builders.
  -t <package>      Package name for generated projection types.
  -null-safe        Generate Build methods that validate required arguments.
  -nullability <s>  Nullability strategy: none or strict.
  -entities         Generate the federation _entities projection.
  -w                Watch schema files and regenerate on change.
`

type stringSliceFlag []string

func (v *stringSliceFlag) String() string {
	return fmt.Sprint([]string(*v))
}

func (v *stringSliceFlag) Set(s string) error {
	*v = append(*v, s)
	return nil
}

func main() {
	var (
		schemaFiles stringSliceFlag
		configFile  string
		target      string
		pkgName     string
		typesPkg    string
		nullSafe    bool
		nullability string
		entities    bool
		watch       bool
	)
	flag.Var(&schemaFiles, "s", "schema filename")
	flag.StringVar(&configFile, "c", "", "configuration file")
	flag.StringVar(&target, "o", "", "output directory")
	flag.StringVar(&pkgName, "p", "", "package name")
	flag.StringVar(&typesPkg, "t", "", "types package name")
	flag.BoolVar(&nullSafe, "null-safe", false, "validate required arguments in Build")
	flag.StringVar(&nullability, "nullability", "", "nullability strategy")
	flag.BoolVar(&entities, "entities", false, "generate the federation _entities projection")
	flag.BoolVar(&watch, "w", false, "watch schema files and regenerate on change")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
	}
	flag.Parse()

	cfg, err := loadConfig(configFile)
	if err != nil {
		log.Fatalf("dgs-codegen: %v", err)
	}
	cfg.Schemas = append(cfg.Schemas, schemaFiles...)
	var opts []codegen.Option
	if target != "" {
		opts = append(opts, codegen.WithTarget(target))
	}
	if pkgName != "" {
		opts = append(opts, codegen.WithPackage(pkgName))
	}
	if typesPkg != "" {
		opts = append(opts, codegen.WithTypesPackage(typesPkg))
	}
	if nullSafe {
		opts = append(opts, codegen.WithNullSafeBuilders(true))
	}
	if nullability != "" {
		opts = append(opts, codegen.WithNullability(nullability))
	}
	if entities {
		opts = append(opts, codegen.WithEntityQueries(true))
	}
	if err := cfg.Apply(opts...); err != nil {
		log.Fatalf("dgs-codegen: %v", err)
	}
	if len(cfg.Schemas) == 0 || cfg.Target == "" || len(flag.Args()) > 0 {
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := codegen.Generate(ctx, cfg); err != nil {
		log.Fatalf("dgs-codegen: %v", err)
	}
	if !watch {
		return
	}
	if err := watchSchemas(ctx, cfg); err != nil {
		log.Fatalf("dgs-codegen: %v", err)
	}
}

func loadConfig(path string) (*codegen.Config, error) {
	if path == "" {
		return codegen.NewConfig()
	}
	return codegen.LoadConfig(path)
}

// watchSchemas regenerates on every write to a schema file until the context
// is canceled. A failing regeneration is reported and watching continues, so
// an intermediate save of a half-edited schema does not kill the watcher.
func watchSchemas(ctx context.Context, cfg *codegen.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range cfg.Schemas {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %q: %w", path, err)
		}
	}
	log.Printf("dgs-codegen: watching %d schema file(s)", len(cfg.Schemas))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			log.Printf("dgs-codegen: %s changed, regenerating", event.Name)
			if err := codegen.Generate(ctx, cfg); err != nil {
				log.Printf("dgs-codegen: regeneration failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("dgs-codegen: watch error: %v", err)
		}
	}
}
