// Package graphql is the runtime support library for code emitted by the
// dgs-codegen generator.
//
// Generated operation builders embed Query, and generated projection types
// embed BaseProjection or BaseFragment. The package owns the selection-set
// bookkeeping and the rendering of projections, inline fragments and inline
// argument values into GraphQL query text, so that the generated code stays
// thin method wiring.
package graphql
