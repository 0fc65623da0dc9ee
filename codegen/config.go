package codegen

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default package names for generated code.
const (
	DefaultPackage      = "client"
	DefaultTypesPackage = "client"
)

// DefaultHeader is written at the top of every generated file.
const DefaultHeader = "Code generated by dgs-codegen. DO NOT EDIT."

// Config holds the code generation configuration. The zero value is usable
// for building the in-memory model; writing files additionally requires
// Target.
type Config struct {
	// Schemas are the SDL file paths, used by the CLI and LoadConfig.
	Schemas []string `yaml:"schemas"`

	// Target is the directory generated packages are written under.
	Target string `yaml:"target"`

	// Package is the package name for generated operation builders.
	Package string `yaml:"package"`

	// TypesPackage is the package name for generated projection types.
	// Defaults to Package's default, so builders and projections share one
	// package unless configured apart.
	TypesPackage string `yaml:"typesPackage"`

	// Header overrides the generated-file header comment.
	Header string `yaml:"header"`

	// TypeMapping maps custom scalar names to Go types, either builtins
	// ("string") or fully qualified ("time.Time",
	// "github.com/google/uuid.UUID"). Time and UUID are mapped by default.
	TypeMapping map[string]string `yaml:"typeMapping"`

	// IncludeQueries, IncludeMutations and IncludeSubscriptions restrict
	// generation to the named root operation fields. An empty list includes
	// all fields of that kind.
	IncludeQueries       []string `yaml:"includeQueries"`
	IncludeMutations     []string `yaml:"includeMutations"`
	IncludeSubscriptions []string `yaml:"includeSubscriptions"`

	// SkipFields excludes fields from generation, keyed as "Type.field".
	SkipFields []string `yaml:"skipFields"`

	// NullSafeBuilders makes generated Build methods fail fast when a
	// non-nullable argument was never set.
	NullSafeBuilders bool `yaml:"nullSafeBuilders"`

	// Nullability selects the nullability strategy: "none" (default) or
	// "strict". Unknown names fail generator construction.
	Nullability string `yaml:"nullability"`

	// GenerateEntities enables the federation _entities projection for types
	// carrying a @key directive.
	GenerateEntities bool `yaml:"generateEntities"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dgs: read config %q: %w", path, err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, NewConfigError("config", path, err.Error())
	}
	c.setDefaults()
	return c, nil
}

// setDefaults fills in package names, header and the built-in scalar mapping.
func (c *Config) setDefaults() {
	if c.Package == "" {
		c.Package = DefaultPackage
	}
	if c.TypesPackage == "" {
		c.TypesPackage = DefaultTypesPackage
	}
	if c.Header == "" {
		c.Header = DefaultHeader
	}
	if c.TypeMapping == nil {
		c.TypeMapping = make(map[string]string)
	}
	for scalar, goType := range defaultTypeMapping {
		if _, ok := c.TypeMapping[scalar]; !ok {
			c.TypeMapping[scalar] = goType
		}
	}
}

var defaultTypeMapping = map[string]string{
	"Time": "time.Time",
	"UUID": "github.com/google/uuid.UUID",
}

// skipField reports whether the field is excluded by the SkipFields filter.
func (c *Config) skipField(typeName, fieldName string) bool {
	key := typeName + "." + fieldName
	for _, skip := range c.SkipFields {
		if skip == key {
			return true
		}
	}
	return false
}

// includeOperation reports whether a root operation field passes the include
// filter for its operation kind.
func (c *Config) includeOperation(include []string, name string) bool {
	if len(include) == 0 {
		return true
	}
	for _, n := range include {
		if n == name {
			return true
		}
	}
	return false
}

// splitQualified splits a qualified Go type name into import path and type
// name. "time.Time" yields ("time", "Time"); "string" yields ("", "string").
func splitQualified(goType string) (pkg, name string) {
	idx := strings.LastIndex(goType, ".")
	if idx < 0 {
		return "", goType
	}
	return goType[:idx], goType[idx+1:]
}
