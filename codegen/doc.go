// Package codegen turns a GraphQL schema document into Go client code: one
// request builder per root operation field and a navigable projection class
// per object type reachable from an operation's return type.
//
// The walk over the schema's type graph is depth-first and registry-gated:
// every class name is emitted exactly once, which keeps output size linear
// in the schema and terminates the walk on cyclic or mutually recursive
// types. Interface and union fields additionally produce inline-fragment
// classes per concrete member, and types carrying a @key directive can
// contribute to a federation _entities projection.
//
// Generate writes formatted files under Config.Target; Build plus Files
// exposes the in-memory model for callers that render elsewhere.
package codegen
