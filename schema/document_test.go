package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/jGleitz/dgs-codegen/schema"
)

const testSchema = `
directive @key(fields: String!) repeatable on OBJECT

type Query {
	people: [Person]
	search: [Shape]
	things: [SearchResult]
}

type Person @key(fields: "email") {
	name: String!
	email: String
	friends(limit: Int): [Person]
	secret: String @deprecated(reason: "use email")
	old: String @deprecated
}

extend type Person {
	nickname: String
}

interface Shape {
	area: Float
}

type Circle implements Shape {
	area: Float
	radius: Float
}

type Square implements Shape {
	area: Float
	side: Float
}

union SearchResult = Person | Circle
`

func load(t *testing.T) *schema.Document {
	t.Helper()
	doc, err := schema.Load(&ast.Source{Name: "test.graphqls", Input: testSchema})
	require.NoError(t, err)
	return doc
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("invalid SDL fails", func(t *testing.T) {
		_, err := schema.Load(&ast.Source{Name: "bad.graphqls", Input: "type {"})
		assert.Error(t, err)
	})

	t.Run("types are resolvable", func(t *testing.T) {
		doc := load(t)
		def, ok := doc.TypeByName("Person")
		require.True(t, ok)
		assert.Equal(t, ast.Object, def.Kind)

		_, ok = doc.TypeByName("Nope")
		assert.False(t, ok)
	})
}

func TestFieldsOf(t *testing.T) {
	t.Parallel()

	doc := load(t)
	person, _ := doc.TypeByName("Person")
	var names []string
	for _, f := range doc.FieldsOf(person) {
		names = append(names, f.Name)
	}
	// Extension fields come after the type's own fields, in source order.
	assert.Equal(t, []string{"name", "email", "friends", "secret", "old", "nickname"}, names)
}

func TestWrapMergesExtensionsAtTraversalTime(t *testing.T) {
	t.Parallel()

	base := &ast.Schema{Types: map[string]*ast.Definition{
		"Person": {
			Kind:   ast.Object,
			Name:   "Person",
			Fields: ast.FieldList{{Name: "name"}},
		},
	}}
	ext := &ast.Definition{
		Kind:   ast.Object,
		Name:   "Person",
		Fields: ast.FieldList{{Name: "nickname"}},
	}
	doc := schema.Wrap(base, ext)
	person, _ := doc.TypeByName("Person")
	fields := doc.FieldsOf(person)
	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].Name)
	assert.Equal(t, "nickname", fields[1].Name)
}

func TestRootOperationFields(t *testing.T) {
	t.Parallel()

	doc := load(t)
	queries := doc.QueryFields()
	require.Len(t, queries, 3)
	assert.Equal(t, "people", queries[0].Name)
	assert.Equal(t, "search", queries[1].Name)
	assert.Equal(t, "things", queries[2].Name)

	assert.Empty(t, doc.MutationFields())
	assert.Empty(t, doc.SubscriptionFields())
}

func TestPolymorphicMembers(t *testing.T) {
	t.Parallel()

	doc := load(t)

	t.Run("interface implementers", func(t *testing.T) {
		shape, _ := doc.TypeByName("Shape")
		impls := doc.ImplementersOf(shape)
		require.Len(t, impls, 2)
		assert.Equal(t, "Circle", impls[0].Name)
		assert.Equal(t, "Square", impls[1].Name)
	})

	t.Run("union members", func(t *testing.T) {
		union, _ := doc.TypeByName("SearchResult")
		members, err := doc.MembersOf(union)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "Person", members[0].Name)
		assert.Equal(t, "Circle", members[1].Name)
	})

	t.Run("union with unknown member fails", func(t *testing.T) {
		doc := schema.Wrap(&ast.Schema{Types: map[string]*ast.Definition{
			"U": {Kind: ast.Union, Name: "U", Types: []string{"Missing"}},
		}})
		u, _ := doc.TypeByName("U")
		_, err := doc.MembersOf(u)
		assert.ErrorContains(t, err, "Missing")
	})
}

func TestDirectives(t *testing.T) {
	t.Parallel()

	doc := load(t)
	person, _ := doc.TypeByName("Person")
	circle, _ := doc.TypeByName("Circle")

	t.Run("key directive", func(t *testing.T) {
		assert.True(t, doc.HasKeyDirective(person))
		assert.False(t, doc.HasKeyDirective(circle))
		assert.Equal(t, []string{"email"}, doc.KeyFields(person))
		assert.Nil(t, doc.KeyFields(circle))
	})

	t.Run("nested key fields keep top level only", func(t *testing.T) {
		def := &ast.Definition{
			Kind: ast.Object,
			Name: "Review",
			Directives: ast.DirectiveList{{
				Name: "key",
				Arguments: ast.ArgumentList{{
					Name:  "fields",
					Value: &ast.Value{Raw: "id author { id }", Kind: ast.StringValue},
				}},
			}},
		}
		assert.Equal(t, []string{"id", "author"}, schema.Wrap(&ast.Schema{}).KeyFields(def))
	})

	t.Run("deprecation", func(t *testing.T) {
		fields := doc.FieldsOf(person)
		reason, ok := schema.Deprecation(fields[3]) // secret
		require.True(t, ok)
		assert.Equal(t, "use email", reason)

		reason, ok = schema.Deprecation(fields[4]) // old
		require.True(t, ok)
		assert.Equal(t, "No longer supported", reason)

		_, ok = schema.Deprecation(fields[0])
		assert.False(t, ok)
	})
}

func TestObjectTypes(t *testing.T) {
	t.Parallel()

	doc := load(t)
	var names []string
	for _, def := range doc.ObjectTypes() {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"Circle", "Person", "Square"}, names)
}
