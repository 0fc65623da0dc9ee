package codegen

import (
	"github.com/dave/jennifer/jen"
	"github.com/vektah/gqlparser/v2/ast"
)

// entitiesRootName is the class name of the federation entities projection.
const entitiesRootName = "EntitiesProjectionRoot"

// buildEntities emits the projection root for the reserved _entities field,
// with one key-fragment selector per object type carrying a federation @key
// directive. Nothing is emitted when no type is keyed or entity generation
// is disabled.
func (g *Generator) buildEntities() error {
	var keyed []*ast.Definition
	for _, def := range g.doc.ObjectTypes() {
		if g.doc.HasKeyDirective(def) {
			keyed = append(keyed, def)
		}
	}
	if len(keyed) == 0 {
		return nil
	}
	if !g.registry.Visit(entitiesRootName) {
		return nil
	}

	f := g.newFile(g.cfg.TypesPackage)
	f.Comment("EntitiesProjectionRoot is the selection builder for the federation _entities field.")
	f.Type().Id(entitiesRootName).Struct(
		jen.Qual(runtimePkg, "BaseProjection").Index(jen.List(jen.Op("*").Id(entitiesRootName), jen.Op("*").Id(entitiesRootName))),
	)

	f.Comment("NewEntitiesProjectionRoot creates the root projection for entity queries.")
	f.Func().Id("New" + entitiesRootName).Params().Op("*").Id(entitiesRootName).Block(
		jen.Id("p").Op(":=").Op("&").Id(entitiesRootName).Values(),
		jen.Id("p").Dot("Init").Call(jen.Id("p"), jen.Id("p"), jen.Lit("_entities")),
		jen.Return(jen.Id("p")),
	)

	ctx := classCtx{className: entitiesRootName, generic: false}
	for _, def := range keyed {
		fragName := entityKeyFragmentName(def.Name)
		g.emitFragmentSelector(f, ctx, def.Name, fragName)
		// The key fragment exposes only the fields of the @key directive;
		// its selection is the entity's key representation.
		var only map[string]struct{}
		if keyFields := g.doc.KeyFields(def); len(keyFields) > 0 {
			only = make(map[string]struct{}, len(keyFields))
			for _, name := range keyFields {
				only[name] = struct{}{}
			}
		}
		if err := g.buildFragmentClass(fragName, def, 0, true, only); err != nil {
			return err
		}
	}
	g.addFile(g.cfg.TypesPackage, fileName(entitiesRootName), f)
	return nil
}
