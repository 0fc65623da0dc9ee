package codegen

import (
	"strings"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jGleitz/dgs-codegen/graphql"
)

var titleCaser = cases.Title(language.English)

// capitalize derives an exported Go identifier from a GraphQL name.
// snake_case names are camelized; otherwise only the first rune is raised so
// that camelCase names keep their interior casing.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune(s, '_') {
		return inflect.Camelize(s)
	}
	r, size := utf8.DecodeRuneInString(s)
	return titleCaser.String(string(r)) + s[size:]
}

// operationClassName derives the generated class name for a root operation
// field and records it in the taken set shared across all operation kinds.
// The first claimant of a name keeps the bare "<Name>GraphQLQuery" form;
// a colliding Mutation or Subscription field gets a kind discriminator
// instead. Callers must process Query fields before Mutation fields and
// Mutation fields before Subscription fields.
func operationClassName(fieldName string, kind graphql.OperationKind, taken map[string]struct{}) string {
	name := capitalize(fieldName) + "GraphQLQuery"
	if _, collides := taken[name]; collides {
		switch kind {
		case graphql.OperationMutation:
			name = capitalize(fieldName) + "GraphQLMutation"
		case graphql.OperationSubscription:
			name = capitalize(fieldName) + "GraphQLSubscription"
		}
	}
	taken[name] = struct{}{}
	return name
}

// projectionClassName names the projection class for a GraphQL type. The
// name depends only on the type name, which is what bounds recursion: every
// distinct type is expanded at most once per run regardless of path.
func projectionClassName(typeName string) string {
	return capitalize(typeName) + "Projection"
}

// rootProjectionName names the root projection triggered by an operation
// field.
func rootProjectionName(fieldName string) string {
	return capitalize(fieldName) + "ProjectionRoot"
}

// containerPrefix strips the projection suffix from a class name, yielding
// the prefix fragments of that container are named under.
func containerPrefix(className string) string {
	if p := strings.TrimSuffix(className, "ProjectionRoot"); p != className {
		return p
	}
	return strings.TrimSuffix(className, "Projection")
}

// fragmentClassName names the fragment projection for a concrete member type
// inside a container. Fragments are keyed by container context because the
// same concrete type can appear under multiple containers with different
// selection sets.
func fragmentClassName(containerClass, memberName string) string {
	return containerPrefix(containerClass) + capitalize(memberName) + "FragmentProjection"
}

// entityKeyFragmentName names the key fragment of a federation entity type.
func entityKeyFragmentName(typeName string) string {
	return "Entities" + capitalize(typeName) + "KeyProjection"
}

// fileName maps a generated class to its output file name.
func fileName(className string) string {
	return strings.ToLower(className) + ".go"
}
