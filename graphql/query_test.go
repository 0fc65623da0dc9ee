package graphql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jGleitz/dgs-codegen/graphql"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("variables are copied on construction and access", func(t *testing.T) {
		vars := map[string]any{"titleFilter": "tree"}
		q := graphql.NewQuery("shows", graphql.OperationQuery, vars)
		vars["titleFilter"] = "mutated"
		assert.Equal(t, "tree", q.Variables()["titleFilter"])

		got := q.Variables()
		got["titleFilter"] = "mutated again"
		assert.Equal(t, "tree", q.Variables()["titleFilter"])
	})

	t.Run("explicit null is kept distinct from omitted", func(t *testing.T) {
		q := graphql.NewQuery("shows", graphql.OperationQuery, map[string]any{"titleFilter": nil})
		vars := q.Variables()
		v, ok := vars["titleFilter"]
		assert.True(t, ok)
		assert.Nil(t, v)

		q = graphql.NewQuery("shows", graphql.OperationQuery, nil)
		_, ok = q.Variables()["titleFilter"]
		assert.False(t, ok)
	})

	t.Run("operation metadata", func(t *testing.T) {
		q := graphql.NewQuery("addShow", graphql.OperationMutation, nil)
		assert.Equal(t, "addShow", q.OperationName())
		assert.Equal(t, graphql.OperationMutation, q.Kind())
	})
}

func TestRequestSerialize(t *testing.T) {
	t.Parallel()

	t.Run("query without arguments", func(t *testing.T) {
		root := newPeopleProjectionRoot()
		root.Name()
		req := graphql.Request{
			Query:      graphql.NewQuery("people", graphql.OperationQuery, nil),
			Projection: root,
		}
		assert.Equal(t, "query { people { name } }", req.Serialize())
	})

	t.Run("arguments render inline in sorted order", func(t *testing.T) {
		root := newPeopleProjectionRoot()
		root.Name()
		req := graphql.Request{
			Query: graphql.NewQuery("people", graphql.OperationQuery, map[string]any{
				"limit":  10,
				"filter": "smith",
			}),
			Projection: root,
		}
		assert.Equal(t, `query { people(filter: "smith", limit: 10) { name } }`, req.Serialize())
	})

	t.Run("mutation kind and explicit null", func(t *testing.T) {
		req := graphql.Request{
			Query: graphql.NewQuery("addShow", graphql.OperationMutation, map[string]any{
				"title": nil,
			}),
		}
		assert.Equal(t, "mutation { addShow(title: null) }", req.Serialize())
	})
}

func TestMissingArgumentError(t *testing.T) {
	t.Parallel()

	err := &graphql.MissingArgumentError{Operation: "shows", Argument: "titleFilter"}
	assert.Contains(t, err.Error(), `"shows"`)
	assert.Contains(t, err.Error(), `"titleFilter"`)
}
