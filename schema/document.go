// Package schema wraps a parsed GraphQL schema with the lookups the code
// generator needs: type resolution, extension-aware field enumeration,
// directive access and interface/union member enumeration.
//
// Parsing SDL text is delegated to github.com/vektah/gqlparser/v2; this
// package never interprets raw schema syntax itself.
package schema

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Document is a read-only view over a parsed schema.
type Document struct {
	schema *ast.Schema
	// extensions holds type extensions that were supplied separately from
	// the schema and are merged into field enumeration at traversal time.
	extensions map[string][]*ast.FieldDefinition
}

// Wrap creates a Document over an already-parsed schema. Extension
// definitions passed separately contribute additional fields to the type of
// the same name when fields are enumerated.
func Wrap(s *ast.Schema, extensions ...*ast.Definition) *Document {
	d := &Document{schema: s, extensions: make(map[string][]*ast.FieldDefinition)}
	for _, ext := range extensions {
		d.extensions[ext.Name] = append(d.extensions[ext.Name], ext.Fields...)
	}
	return d
}

// Load parses and validates SDL sources into a Document. Type extensions
// inside the sources are merged by the parser.
func Load(sources ...*ast.Source) (*Document, error) {
	s, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("dgs: load schema: %w", err)
	}
	return Wrap(s), nil
}

// LoadPaths reads and parses the given SDL files into a Document.
func LoadPaths(paths ...string) (*Document, error) {
	sources := make([]*ast.Source, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("dgs: read schema %q: %w", p, err)
		}
		sources = append(sources, &ast.Source{Name: p, Input: string(b)})
	}
	return Load(sources...)
}

// TypeByName looks up a type definition.
func (d *Document) TypeByName(name string) (*ast.Definition, bool) {
	def, ok := d.schema.Types[name]
	return def, ok
}

// FieldsOf returns the selectable fields of a type in source order: the
// type's own fields followed by any extension fields, with introspection
// fields filtered out.
func (d *Document) FieldsOf(def *ast.Definition) []*ast.FieldDefinition {
	if def == nil {
		return nil
	}
	fields := make([]*ast.FieldDefinition, 0, len(def.Fields))
	for _, f := range def.Fields {
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		fields = append(fields, f)
	}
	for _, f := range d.extensions[def.Name] {
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// QueryFields returns the Query root operation fields in source order, or nil
// if the schema has no Query type.
func (d *Document) QueryFields() []*ast.FieldDefinition {
	return d.FieldsOf(d.schema.Query)
}

// MutationFields returns the Mutation root operation fields in source order.
func (d *Document) MutationFields() []*ast.FieldDefinition {
	return d.FieldsOf(d.schema.Mutation)
}

// SubscriptionFields returns the Subscription root operation fields in source
// order.
func (d *Document) SubscriptionFields() []*ast.FieldDefinition {
	return d.FieldsOf(d.schema.Subscription)
}

// ImplementersOf returns the object types implementing the given interface.
func (d *Document) ImplementersOf(iface *ast.Definition) []*ast.Definition {
	if possible := d.schema.PossibleTypes[iface.Name]; len(possible) > 0 {
		impls := make([]*ast.Definition, 0, len(possible))
		for _, def := range possible {
			if def.Kind == ast.Object {
				impls = append(impls, def)
			}
		}
		return impls
	}
	// Hand-built schemas may not populate PossibleTypes; scan instead.
	var impls []*ast.Definition
	for _, def := range d.schema.Types {
		if def.Kind != ast.Object {
			continue
		}
		for _, name := range def.Interfaces {
			if name == iface.Name {
				impls = append(impls, def)
				break
			}
		}
	}
	sort.Slice(impls, func(i, j int) bool { return impls[i].Name < impls[j].Name })
	return impls
}

// MembersOf returns the member types of a union.
func (d *Document) MembersOf(union *ast.Definition) ([]*ast.Definition, error) {
	members := make([]*ast.Definition, 0, len(union.Types))
	for _, name := range union.Types {
		def, ok := d.schema.Types[name]
		if !ok {
			return nil, fmt.Errorf("dgs: union %s references unknown type %s", union.Name, name)
		}
		members = append(members, def)
	}
	return members, nil
}

// ObjectTypes returns all object type definitions sorted by name, excluding
// the root operation types and built-ins.
func (d *Document) ObjectTypes() []*ast.Definition {
	var defs []*ast.Definition
	for _, def := range d.schema.Types {
		if def.Kind != ast.Object || def.BuiltIn {
			continue
		}
		if def == d.schema.Query || def == d.schema.Mutation || def == d.schema.Subscription {
			continue
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// HasKeyDirective reports whether the type carries a federation @key
// directive.
func (d *Document) HasKeyDirective(def *ast.Definition) bool {
	return def.Directives.ForName("key") != nil
}

// KeyFields returns the top-level field names of the type's @key directive's
// fields argument, e.g. @key(fields: "id name") yields ["id", "name"].
// Nested key selections are not expanded.
func (d *Document) KeyFields(def *ast.Definition) []string {
	key := def.Directives.ForName("key")
	if key == nil {
		return nil
	}
	arg := key.Arguments.ForName("fields")
	if arg == nil || arg.Value == nil {
		return nil
	}
	var names []string
	depth := 0
	for _, tok := range strings.Fields(arg.Value.Raw) {
		switch tok {
		case "{":
			depth++
		case "}":
			depth--
		default:
			if depth == 0 {
				names = append(names, tok)
			}
		}
	}
	return names
}

// Deprecation returns the @deprecated reason of a field, if present.
func Deprecation(f *ast.FieldDefinition) (string, bool) {
	dep := f.Directives.ForName("deprecated")
	if dep == nil {
		return "", false
	}
	if arg := dep.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw, true
	}
	return "No longer supported", true
}
