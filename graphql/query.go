package graphql

import (
	"fmt"
	"sort"
	"strings"
)

// OperationKind is the GraphQL operation kind of a generated query builder.
type OperationKind string

const (
	OperationQuery        OperationKind = "query"
	OperationMutation     OperationKind = "mutation"
	OperationSubscription OperationKind = "subscription"
)

// Query is the immutable operation-name/argument pair produced by a generated
// builder's Build method. Generated operation types embed it.
type Query struct {
	name      string
	kind      OperationKind
	variables map[string]any
	order     []string
}

// NewQuery creates a Query for the given root operation field. The variables
// map is copied; keys are rendered in sorted order for deterministic output.
func NewQuery(name string, kind OperationKind, variables map[string]any) Query {
	vars := make(map[string]any, len(variables))
	order := make([]string, 0, len(variables))
	for k, v := range variables {
		vars[k] = v
		order = append(order, k)
	}
	sort.Strings(order)
	return Query{name: name, kind: kind, variables: vars, order: order}
}

// OperationName returns the root operation field name, e.g. "shows".
func (q Query) OperationName() string { return q.name }

// Kind returns the operation kind.
func (q Query) Kind() OperationKind { return q.kind }

// Variables returns a copy of the argument map. A key present with a nil
// value means the argument is sent as an explicit null; an absent key means
// the argument is omitted from the request.
func (q Query) Variables() map[string]any {
	vars := make(map[string]any, len(q.variables))
	for k, v := range q.variables {
		vars[k] = v
	}
	return vars
}

// Request pairs a built operation with the projection describing its
// selection set.
type Request struct {
	Query      Query
	Projection Projection
}

// Serialize renders the request as GraphQL query text with inline argument
// values, e.g. `query { shows(titleFilter: "tree") { title } }`.
func (r Request) Serialize() string {
	var sb strings.Builder
	sb.WriteString(string(r.Query.kind))
	sb.WriteString(" { ")
	sb.WriteString(r.Query.name)
	if len(r.Query.order) > 0 {
		sb.WriteByte('(')
		for i, k := range r.Query.order {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(serializeValue(r.Query.variables[k]))
		}
		sb.WriteByte(')')
	}
	if r.Projection != nil {
		sb.WriteByte(' ')
		sb.WriteString(r.Projection.Render())
	}
	sb.WriteString(" }")
	return sb.String()
}

// Argument is a named inline argument recorded on a projection field.
type Argument struct {
	Name  string
	Value any
}

// NewArgument creates an Argument.
func NewArgument(name string, value any) Argument {
	return Argument{Name: name, Value: value}
}

// MissingArgumentError is returned by generated Build methods when null-safe
// builders are enabled and a non-nullable argument was never set.
type MissingArgumentError struct {
	Operation string
	Argument  string
}

// Error implements the error interface.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("dgs: operation %q requires argument %q to be set", e.Operation, e.Argument)
}
