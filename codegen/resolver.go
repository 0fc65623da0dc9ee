package codegen

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/jGleitz/dgs-codegen/schema"
)

// TypeKind classifies a resolved return type.
type TypeKind int

const (
	KindScalar TypeKind = iota
	KindEnum
	KindObject
	KindInterface
	KindUnion
	KindInput
)

type nullMark int8

const (
	markUnset nullMark = iota
	markNullable
	markNonNull
)

// TypeRef is the semantic return type a TypeReference resolves to: a Go type
// for leaves, or the projection class name for object, interface and union
// types.
type TypeRef struct {
	// GraphQL is the named schema type this reference resolved from.
	GraphQL string
	// Kind classifies the referenced type.
	Kind TypeKind
	// Name is the Go type or projection class name.
	Name string
	// Pkg qualifies Name with an import path; empty for builtins and for
	// generated classes in the output package.
	Pkg string
	// ListDepth is the number of list wrappings on the reference.
	ListDepth int
	// NonNull records the outermost non-null wrapping of the schema type
	// reference. This is what the resolver reports; the nullability
	// strategy's decoration is tracked separately.
	NonNull bool

	nullable nullMark
}

// IsLeaf reports whether the reference terminates traversal: scalars, enums
// and input objects have no projection.
func (t *TypeRef) IsLeaf() bool {
	switch t.Kind {
	case KindScalar, KindEnum, KindInput:
		return true
	default:
		return false
	}
}

// IsProjection reports whether the reference resolves to a projection class.
func (t *TypeRef) IsProjection() bool {
	return !t.IsLeaf()
}

func (t *TypeRef) clone() *TypeRef {
	c := *t
	return &c
}

// describe renders the reference for error messages.
func (t *TypeRef) describe() string {
	name := t.Name
	if t.Pkg != "" {
		name = t.Pkg + "." + name
	}
	return fmt.Sprintf("%s (GraphQL type %s)", strings.Repeat("[]", t.ListDepth)+name, t.GraphQL)
}

// Code renders the bare Go type without nullability decoration.
func (t *TypeRef) Code() jen.Code {
	var st *jen.Statement
	switch {
	case t.Kind == KindInput:
		st = jen.Map(jen.String()).Any()
	case t.Pkg != "":
		st = jen.Qual(t.Pkg, t.Name)
	default:
		st = jen.Id(t.Name)
	}
	for i := 0; i < t.ListDepth; i++ {
		st = jen.Index().Add(st)
	}
	return st
}

// ParamCode renders the Go type of a setter parameter. Nullable scalar-like
// references become pointers so that "unset", "explicit null" and a value
// stay distinguishable; lists are already nilable.
func (t *TypeRef) ParamCode(nullable bool) jen.Code {
	if nullable && t.ListDepth == 0 {
		return jen.Op("*").Add(t.Code())
	}
	return t.Code()
}

// Resolver maps GraphQL type references to semantic return types using the
// schema document and the configured scalar mapping.
type Resolver struct {
	doc         *schema.Document
	mapping     map[string]string
	nullability NullabilityStrategy
}

// NewResolver creates a Resolver. The mapping is the configured custom scalar
// mapping; the strategy decorates every resolved reference.
func NewResolver(doc *schema.Document, mapping map[string]string, nullability NullabilityStrategy) *Resolver {
	return &Resolver{doc: doc, mapping: mapping, nullability: nullability}
}

// Resolve maps a type reference to its semantic return type. A reference
// naming a type absent from the schema document is a fatal schema
// consistency error.
func (r *Resolver) Resolve(t *ast.Type) (*TypeRef, error) {
	depth := 0
	cur := t
	for cur.Elem != nil {
		depth++
		cur = cur.Elem
	}
	def, ok := r.doc.TypeByName(cur.NamedType)
	if !ok {
		return nil, NewSchemaError(cur.NamedType, "", "type is not defined in the schema document", nil)
	}

	ref := &TypeRef{GraphQL: def.Name, ListDepth: depth, NonNull: t.NonNull}
	switch def.Kind {
	case ast.Scalar:
		ref.Kind = KindScalar
		ref.Pkg, ref.Name = r.scalarType(def.Name)
	case ast.Enum:
		ref.Kind = KindEnum
		ref.Name = "string"
	case ast.Object:
		ref.Kind = KindObject
		ref.Name = projectionClassName(def.Name)
	case ast.Interface:
		ref.Kind = KindInterface
		ref.Name = projectionClassName(def.Name)
	case ast.Union:
		ref.Kind = KindUnion
		ref.Name = projectionClassName(def.Name)
	case ast.InputObject:
		ref.Kind = KindInput
		ref.Name = "map[string]any"
	default:
		return nil, NewSchemaError(def.Name, "", fmt.Sprintf("unsupported type kind %s", def.Kind), nil)
	}

	if t.NonNull {
		return r.nullability.MarkNonNull(ref), nil
	}
	return r.nullability.MarkNullable(ref), nil
}

// scalarType maps a scalar name to a Go type. Built-in scalars have fixed
// mappings; custom scalars use the configured mapping and fall back to
// string.
func (r *Resolver) scalarType(name string) (pkg, goType string) {
	switch name {
	case "Int":
		return "", "int"
	case "Float":
		return "", "float64"
	case "String", "ID":
		return "", "string"
	case "Boolean":
		return "", "bool"
	}
	if mapped, ok := r.mapping[name]; ok {
		return splitQualified(mapped)
	}
	return "", "string"
}
