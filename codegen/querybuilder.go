package codegen

import (
	"github.com/dave/jennifer/jen"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/jGleitz/dgs-codegen/graphql"
)

// buildOperations emits one request builder per included root operation
// field. Query fields are processed before Mutation fields and Mutation
// fields before Subscription fields, in source order, so that the collision
// rule in operationClassName sees names in a stable order.
func (g *Generator) buildOperations() error {
	groups := []struct {
		fields  []*ast.FieldDefinition
		kind    graphql.OperationKind
		include []string
		root    string
	}{
		{g.doc.QueryFields(), graphql.OperationQuery, g.cfg.IncludeQueries, "Query"},
		{g.doc.MutationFields(), graphql.OperationMutation, g.cfg.IncludeMutations, "Mutation"},
		{g.doc.SubscriptionFields(), graphql.OperationSubscription, g.cfg.IncludeSubscriptions, "Subscription"},
	}
	for _, grp := range groups {
		for _, fd := range grp.fields {
			if !g.cfg.includeOperation(grp.include, fd.Name) {
				continue
			}
			if g.cfg.skipField(grp.root, fd.Name) {
				continue
			}
			if err := g.buildOperation(fd, grp.kind); err != nil {
				return err
			}
		}
	}
	return nil
}

// operationArg is one resolved builder argument.
type operationArg struct {
	def      *ast.ArgumentDefinition
	ref      *TypeRef
	nullable bool
	field    string // builder struct field name
}

// buildOperation emits the operation type, its builder with per-argument
// setters and explicitly-set tracking, and the Build method producing the
// immutable operation-name/argument pair. A projection-typed return
// additionally triggers the operation's root projection.
func (g *Generator) buildOperation(fd *ast.FieldDefinition, kind graphql.OperationKind) error {
	className := operationClassName(fd.Name, kind, g.operationNames)
	builderName := className + "Builder"

	args := make([]operationArg, 0, len(fd.Arguments))
	for _, arg := range fd.Arguments {
		ref, err := g.resolver.Resolve(arg.Type)
		if err != nil {
			return NewSchemaError("", fd.Name, "cannot resolve argument "+arg.Name, err)
		}
		nullable, err := g.nullability.IsNullable(ref)
		if err != nil {
			return NewGenerationError(className, "", "inspect argument "+arg.Name, err)
		}
		args = append(args, operationArg{def: arg, ref: ref, nullable: nullable, field: paramIdent(arg.Name)})
	}

	f := g.newFile(g.cfg.Package)

	emitFieldDoc(f, fd)
	f.Type().Id(className).Struct(jen.Qual(runtimePkg, "Query"))

	// Builder struct: one field per argument plus explicitly-set tracking,
	// which keeps "argument omitted" and "argument set to null" apart.
	builderFields := make([]jen.Code, 0, len(args)+1)
	for _, a := range args {
		builderFields = append(builderFields, jen.Id(a.field).Add(a.ref.ParamCode(a.nullable)))
	}
	builderFields = append(builderFields, jen.Id("fieldsSet").Map(jen.String()).Bool())
	f.Commentf("%s collects the arguments of the %s operation.", builderName, fd.Name)
	f.Type().Id(builderName).Struct(builderFields...)

	f.Commentf("New%s creates an empty builder for the %s operation.", className, fd.Name)
	f.Func().Id("New" + className).Params().Op("*").Id(builderName).Block(
		jen.Return(jen.Op("&").Id(builderName).Values(jen.Dict{
			jen.Id("fieldsSet"): jen.Map(jen.String()).Bool().Values(),
		})),
	)

	for _, a := range args {
		g.emitSetter(f, builderName, a)
	}
	g.emitBuild(f, className, builderName, fd, kind, args)
	g.addFile(g.cfg.Package, fileName(className), f)

	ret, err := g.resolver.Resolve(fd.Type)
	if err != nil {
		return NewSchemaError("", fd.Name, "cannot resolve return type", err)
	}
	if ret.IsProjection() {
		def, ok := g.doc.TypeByName(ret.GraphQL)
		if !ok {
			return NewSchemaError(ret.GraphQL, fd.Name, "type is not defined in the schema document", nil)
		}
		return g.buildRootProjection(rootProjectionName(fd.Name), def)
	}
	return nil
}

// emitSetter emits one fluent argument setter that also records the argument
// as explicitly set.
func (g *Generator) emitSetter(f *jen.File, builderName string, a operationArg) {
	if a.def.Description != "" {
		f.Comment(a.def.Description)
	}
	f.Func().Params(jen.Id("b").Op("*").Id(builderName)).Id(capitalize(a.def.Name)).
		Params(jen.Id("v").Add(a.ref.ParamCode(a.nullable))).
		Op("*").Id(builderName).
		Block(
			jen.Id("b").Dot(a.field).Op("=").Id("v"),
			jen.Id("b").Dot("fieldsSet").Index(jen.Lit(a.def.Name)).Op("=").True(),
			jen.Return(jen.Id("b")),
		)
}

// emitBuild emits the Build method. With null-safe builders enabled it
// returns (*T, error) and fails fast on unset non-nullable arguments;
// otherwise it returns *T. Value-typed arguments are always included in the
// argument map; reference-typed arguments only when non-nil or explicitly
// set.
func (g *Generator) emitBuild(f *jen.File, className, builderName string, fd *ast.FieldDefinition, kind graphql.OperationKind, args []operationArg) {
	var stmts []jen.Code

	if g.cfg.NullSafeBuilders {
		for _, a := range args {
			if !a.ref.NonNull {
				continue
			}
			stmts = append(stmts, jen.If(jen.Op("!").Id("b").Dot("fieldsSet").Index(jen.Lit(a.def.Name))).Block(
				jen.Return(jen.Nil(), jen.Op("&").Qual(runtimePkg, "MissingArgumentError").Values(jen.Dict{
					jen.Id("Operation"): jen.Lit(fd.Name),
					jen.Id("Argument"):  jen.Lit(a.def.Name),
				})),
			))
		}
	}

	stmts = append(stmts, jen.Id("vars").Op(":=").Map(jen.String()).Any().Values())
	for _, a := range args {
		assign := jen.Id("vars").Index(jen.Lit(a.def.Name)).Op("=").Id("b").Dot(a.field)
		if !a.nullable && a.ref.ListDepth == 0 {
			stmts = append(stmts, assign)
			continue
		}
		stmts = append(stmts,
			jen.If(jen.Id("b").Dot(a.field).Op("!=").Nil()).Block(
				assign,
			).Else().If(jen.Id("b").Dot("fieldsSet").Index(jen.Lit(a.def.Name))).Block(
				jen.Id("vars").Index(jen.Lit(a.def.Name)).Op("=").Nil(),
			),
		)
	}

	kindConst := map[graphql.OperationKind]string{
		graphql.OperationQuery:        "OperationQuery",
		graphql.OperationMutation:     "OperationMutation",
		graphql.OperationSubscription: "OperationSubscription",
	}[kind]
	construct := jen.Op("&").Id(className).Values(jen.Dict{
		jen.Id("Query"): jen.Qual(runtimePkg, "NewQuery").Call(
			jen.Lit(fd.Name), jen.Qual(runtimePkg, kindConst), jen.Id("vars"),
		),
	})

	recv := jen.Id("b").Op("*").Id(builderName)
	if g.cfg.NullSafeBuilders {
		stmts = append(stmts, jen.Return(construct, jen.Nil()))
		f.Comment("Build validates required arguments and assembles the operation.")
		f.Func().Params(recv).Id("Build").Params().
			Params(jen.Op("*").Id(className), jen.Error()).
			Block(stmts...)
		return
	}
	stmts = append(stmts, jen.Return(construct))
	f.Comment("Build assembles the operation from the collected arguments.")
	f.Func().Params(recv).Id("Build").Params().Op("*").Id(className).Block(stmts...)
}
