package codegen

import (
	"go/token"

	"github.com/dave/jennifer/jen"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/jGleitz/dgs-codegen/schema"
)

// runtimePkg is the support package generated code imports.
const runtimePkg = "github.com/jGleitz/dgs-codegen/graphql"

// classCtx describes the projection class currently being emitted: its name
// and whether it is parameterized over [P, R]. Root projections are plain
// named types that bind both parameters to themselves, so their methods
// reference the class directly.
//
// Every method returns a fresh code tree; jen statements are mutable and
// must not be shared between emission sites.
type classCtx struct {
	className string
	generic   bool
}

// recvDecl renders the method receiver, e.g. "p *PersonProjection[P, R]".
func (c classCtx) recvDecl() *jen.Statement {
	r := jen.Id("p").Op("*").Id(c.className)
	if c.generic {
		r.Index(jen.List(jen.Id("P"), jen.Id("R")))
	}
	return r
}

// selfPtr renders the pointer type of the class itself, used as the return
// type of chaining selectors.
func (c classCtx) selfPtr() *jen.Statement {
	s := jen.Op("*").Id(c.className)
	if c.generic {
		s.Index(jen.List(jen.Id("P"), jen.Id("R")))
	}
	return s
}

// parentTypeArg renders the PARENT type argument threaded to children. Roots
// pass themselves; generic classes pass the Projection interface, because
// instantiating a projection type inside its own method with a grown type
// argument is an instantiation cycle the compiler rejects on self-referential
// schemas. The interface keeps the child's instantiated type fixed at any
// depth while Root stays fully typed.
func (c classCtx) parentTypeArg() *jen.Statement {
	if c.generic {
		return jen.Qual(runtimePkg, "Projection")
	}
	return jen.Op("*").Id(c.className)
}

// rootTypeArg renders the ROOT type argument threaded to children: the
// caller's R for generic classes, the class itself at the root.
func (c classCtx) rootTypeArg() *jen.Statement {
	if c.generic {
		return jen.Id("R")
	}
	return jen.Op("*").Id(c.className)
}

// typeParamDecls renders the [P, R] type parameter list with the projection
// bound.
func typeParamDecls() []jen.Code {
	return []jen.Code{
		jen.Id("P").Qual(runtimePkg, "Projection"),
		jen.Id("R").Qual(runtimePkg, "Projection"),
	}
}

// buildProjection emits the projection class for a GraphQL type reached
// through parentType, then recurses into every non-leaf field. The class
// name depends only on the type name, so the registry check terminates
// traversal on cyclic schemas: a type already emitted is never expanded
// again, no matter how many paths reach it.
func (g *Generator) buildProjection(def *ast.Definition, parentType string, depth int) error {
	name := projectionClassName(def.Name)
	g.markEdge(def.Name, parentType)
	if !g.registry.Visit(name) {
		return nil
	}

	f := g.newFile(g.cfg.TypesPackage)
	f.Commentf("%s selects fields of the GraphQL type %s.", name, def.Name)
	f.Type().Id(name).Types(typeParamDecls()...).Struct(
		jen.Qual(runtimePkg, "BaseProjection").Index(jen.List(jen.Id("P"), jen.Id("R"))),
	)

	f.Commentf("New%s creates the projection with its parent and root wired in.", name)
	f.Func().Id("New" + name).Types(typeParamDecls()...).
		Params(jen.Id("parent").Id("P"), jen.Id("root").Id("R")).
		Op("*").Id(name).Index(jen.List(jen.Id("P"), jen.Id("R"))).
		Block(
			jen.Id("p").Op(":=").Op("&").Id(name).Index(jen.List(jen.Id("P"), jen.Id("R"))).Values(),
			jen.Id("p").Dot("Init").Call(jen.Id("parent"), jen.Id("root"), jen.Lit(def.Name)),
			jen.Return(jen.Id("p")),
		)

	ctx := classCtx{className: name, generic: true}
	if err := g.emitBody(f, ctx, def, depth, nil); err != nil {
		return err
	}
	g.addFile(g.cfg.TypesPackage, fileName(name), f)
	return nil
}

// buildRootProjection emits the root projection for an operation's return
// type. PARENT and ROOT both bind to the class itself: there is no real
// parent above the root.
func (g *Generator) buildRootProjection(name string, def *ast.Definition) error {
	if !g.registry.Visit(name) {
		return nil
	}

	f := g.newFile(g.cfg.TypesPackage)
	f.Commentf("%s is the top-level selection builder for the %s operation result.", name, def.Name)
	f.Type().Id(name).Struct(
		jen.Qual(runtimePkg, "BaseProjection").Index(jen.List(jen.Op("*").Id(name), jen.Op("*").Id(name))),
	)

	f.Commentf("New%s creates the root projection.", name)
	f.Func().Id("New" + name).Params().Op("*").Id(name).Block(
		jen.Id("p").Op(":=").Op("&").Id(name).Values(),
		jen.Id("p").Dot("Init").Call(jen.Id("p"), jen.Id("p"), jen.Lit(def.Name)),
		jen.Return(jen.Id("p")),
	)

	ctx := classCtx{className: name, generic: false}
	if err := g.emitBody(f, ctx, def, 0, nil); err != nil {
		return err
	}
	g.addFile(g.cfg.TypesPackage, fileName(name), f)
	return nil
}

// emitBody emits the selector methods of a projection or fragment class: the
// __typename self-selection, one selector per selectable field (plus an
// argument-carrying variant when the field declares arguments), and fragment
// selectors when the type is polymorphic. Non-leaf fields recurse into the
// projection generator with the current class as parent. A non-nil only set
// restricts selectors to the named fields; entity key fragments use it to
// expose the @key fields and nothing else.
func (g *Generator) emitBody(f *jen.File, ctx classCtx, def *ast.Definition, depth int, only map[string]struct{}) error {
	f.Func().Params(ctx.recvDecl()).Id("Typename").Params().Add(ctx.selfPtr()).Block(
		jen.Id("p").Dot("Select").Call(jen.Lit("__typename"), jen.Nil()),
		jen.Return(jen.Id("p")),
	)

	for _, fd := range g.doc.FieldsOf(def) {
		if g.cfg.skipField(def.Name, fd.Name) {
			continue
		}
		if only != nil {
			if _, ok := only[fd.Name]; !ok {
				continue
			}
		}
		ref, err := g.resolver.Resolve(fd.Type)
		if err != nil {
			return NewSchemaError(def.Name, fd.Name, "cannot resolve field type", err)
		}
		if ref.IsLeaf() {
			if err := g.emitLeafSelector(f, ctx, fd); err != nil {
				return err
			}
			continue
		}
		if err := g.emitChildSelector(f, ctx, fd, ref); err != nil {
			return err
		}
		childDef, ok := g.doc.TypeByName(ref.GraphQL)
		if !ok {
			return NewSchemaError(ref.GraphQL, "", "type is not defined in the schema document", nil)
		}
		if err := g.buildProjection(childDef, def.Name, depth+1); err != nil {
			return err
		}
	}

	if def.Kind == ast.Interface || def.Kind == ast.Union {
		return g.buildFragments(f, ctx, def, depth)
	}
	return nil
}

// emitLeafSelector emits the selector of a scalar or enum field: it records
// a null selection and returns the receiver so calls chain.
func (g *Generator) emitLeafSelector(f *jen.File, ctx classCtx, fd *ast.FieldDefinition) error {
	emitFieldDoc(f, fd)
	f.Func().Params(ctx.recvDecl()).Id(capitalize(fd.Name)).Params().Add(ctx.selfPtr()).Block(
		jen.Id("p").Dot("Select").Call(jen.Lit(fd.Name), jen.Nil()),
		jen.Return(jen.Id("p")),
	)

	if len(fd.Arguments) == 0 {
		return nil
	}
	params, argStmt, err := g.argumentCarriers(fd)
	if err != nil {
		return err
	}
	f.Func().Params(ctx.recvDecl()).Id(capitalize(fd.Name)+"WithArgs").Params(params...).Add(ctx.selfPtr()).Block(
		jen.Id("p").Dot("Select").Call(jen.Lit(fd.Name), jen.Nil()),
		argStmt,
		jen.Return(jen.Id("p")),
	)
	return nil
}

// emitChildSelector emits the selector of an object, interface or union
// field: it instantiates the child projection with the current projection as
// parent and the caller's ROOT, records the selection and returns the child
// so the caller can keep descending.
func (g *Generator) emitChildSelector(f *jen.File, ctx classCtx, fd *ast.FieldDefinition, ref *TypeRef) error {
	child := projectionClassName(ref.GraphQL)
	childType := func() *jen.Statement {
		return jen.Op("*").Id(child).Index(jen.List(ctx.parentTypeArg(), ctx.rootTypeArg()))
	}
	ctor := func() *jen.Statement {
		return jen.Id("child").Op(":=").Id("New" + child).
			Index(jen.List(ctx.parentTypeArg(), ctx.rootTypeArg())).
			Call(jen.Id("p"), jen.Id("p").Dot("Root").Call())
	}

	emitFieldDoc(f, fd)
	f.Func().Params(ctx.recvDecl()).Id(capitalize(fd.Name)).Params().
		Add(childType()).
		Block(
			ctor(),
			jen.Id("p").Dot("Select").Call(jen.Lit(fd.Name), jen.Id("child")),
			jen.Return(jen.Id("child")),
		)

	if len(fd.Arguments) == 0 {
		return nil
	}
	params, argStmt, err := g.argumentCarriers(fd)
	if err != nil {
		return err
	}
	f.Func().Params(ctx.recvDecl()).Id(capitalize(fd.Name)+"WithArgs").Params(params...).
		Add(childType()).
		Block(
			ctor(),
			jen.Id("p").Dot("Select").Call(jen.Lit(fd.Name), jen.Id("child")),
			argStmt,
			jen.Return(jen.Id("child")),
		)
	return nil
}

// argumentCarriers resolves a field's arguments into setter parameters and
// the Arg statement recording them on the projection.
func (g *Generator) argumentCarriers(fd *ast.FieldDefinition) (params []jen.Code, argStmt jen.Code, err error) {
	callArgs := []jen.Code{jen.Lit(fd.Name)}
	for _, arg := range fd.Arguments {
		ref, err := g.resolver.Resolve(arg.Type)
		if err != nil {
			return nil, nil, NewSchemaError("", fd.Name, "cannot resolve argument "+arg.Name, err)
		}
		nullable, err := g.nullability.IsNullable(ref)
		if err != nil {
			return nil, nil, err
		}
		ident := paramIdent(arg.Name)
		params = append(params, jen.Id(ident).Add(ref.ParamCode(nullable)))
		callArgs = append(callArgs, jen.Qual(runtimePkg, "NewArgument").Call(jen.Lit(arg.Name), jen.Id(ident)))
	}
	return params, jen.Id("p").Dot("Arg").Call(callArgs...), nil
}

// emitFieldDoc writes the description and deprecation of a field as doc
// comments on the selector that follows.
func emitFieldDoc(f *jen.File, fd *ast.FieldDefinition) {
	if fd.Description != "" {
		f.Comment(fd.Description)
	}
	if reason, ok := schema.Deprecation(fd); ok {
		if fd.Description != "" {
			f.Comment("")
		}
		f.Comment("Deprecated: " + reason)
	}
}

// paramIdent keeps generated parameter names from colliding with Go
// keywords, the method receivers and the builder's tracking field.
func paramIdent(name string) string {
	if token.IsKeyword(name) || name == "p" || name == "b" || name == "fieldsSet" {
		return name + "Arg"
	}
	return name
}
