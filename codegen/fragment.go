package codegen

import (
	"github.com/dave/jennifer/jen"
	"github.com/vektah/gqlparser/v2/ast"
)

// buildFragments extends a polymorphic container projection with one
// fragment selector per concrete member: implementing objects for an
// interface, member types for a union. Fragment classes are keyed by
// container context, so the same concrete type gets distinct fragment
// classes under unrelated containers.
func (g *Generator) buildFragments(f *jen.File, ctx classCtx, def *ast.Definition, depth int) error {
	var members []*ast.Definition
	switch def.Kind {
	case ast.Interface:
		members = g.doc.ImplementersOf(def)
	case ast.Union:
		var err error
		members, err = g.doc.MembersOf(def)
		if err != nil {
			return NewSchemaError(def.Name, "", "cannot enumerate union members", err)
		}
	}

	for _, m := range members {
		fragName := fragmentClassName(ctx.className, m.Name)
		g.emitFragmentSelector(f, ctx, m.Name, fragName)
		if err := g.buildFragmentClass(fragName, m, depth, false, nil); err != nil {
			return err
		}
	}
	return nil
}

// emitFragmentSelector emits On<Member>() on the container. Fragments are
// recorded by kind, not by field name: a container can hold one fragment per
// concrete type at the same time.
func (g *Generator) emitFragmentSelector(f *jen.File, ctx classCtx, memberName, fragName string) {
	f.Commentf("On%s starts an inline fragment on the concrete type %s.", capitalize(memberName), memberName)
	f.Func().Params(ctx.recvDecl()).Id("On"+capitalize(memberName)).Params().
		Op("*").Id(fragName).Index(jen.List(ctx.parentTypeArg(), ctx.rootTypeArg())).
		Block(
			jen.Id("f").Op(":=").Id("New"+fragName).
				Index(jen.List(ctx.parentTypeArg(), ctx.rootTypeArg())).
				Call(jen.Id("p"), jen.Id("p").Dot("Root").Call()),
			jen.Id("p").Dot("AddFragment").Call(jen.Id("f")),
			jen.Return(jen.Id("f")),
		)
}

// buildFragmentClass emits the fragment projection for one concrete type and
// populates its selection surface with the same field-selector emission as a
// regular projection. Entity key fragments omit the __typename discriminator
// and restrict selectors to the type's @key fields: their rendered selection
// must mirror the entity's key representation.
func (g *Generator) buildFragmentClass(fragName string, def *ast.Definition, depth int, omitTypename bool, only map[string]struct{}) error {
	if !g.registry.Visit(fragName) {
		return nil
	}

	f := g.newFile(g.cfg.TypesPackage)

	f.Commentf("%s selects fields inside an inline fragment on %s.", fragName, def.Name)
	f.Type().Id(fragName).Types(typeParamDecls()...).Struct(
		jen.Qual(runtimePkg, "BaseFragment").Index(jen.List(jen.Id("P"), jen.Id("R"))),
	)

	initArgs := []jen.Code{jen.Id("parent"), jen.Id("root"), jen.Lit(def.Name)}
	if omitTypename {
		initArgs = append(initArgs, jen.Qual(runtimePkg, "OmitTypename").Call())
	}
	f.Commentf("New%s creates the fragment projection.", fragName)
	f.Func().Id("New" + fragName).Types(typeParamDecls()...).
		Params(jen.Id("parent").Id("P"), jen.Id("root").Id("R")).
		Op("*").Id(fragName).Index(jen.List(jen.Id("P"), jen.Id("R"))).
		Block(
			jen.Id("p").Op(":=").Op("&").Id(fragName).Index(jen.List(jen.Id("P"), jen.Id("R"))).Values(),
			jen.Id("p").Dot("InitFragment").Call(initArgs...),
			jen.Return(jen.Id("p")),
		)

	ctx := classCtx{className: fragName, generic: true}
	if err := g.emitBody(f, ctx, def, depth, only); err != nil {
		return err
	}
	g.addFile(g.cfg.TypesPackage, fileName(fragName), f)
	return nil
}
