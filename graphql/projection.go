package graphql

import (
	"strings"
)

// Projection is implemented by every generated projection type: regular
// projections, root projections and inline-fragment projections.
type Projection interface {
	// SchemaTypeName returns the GraphQL type name this projection selects on.
	SchemaTypeName() string
	// Render returns the selection set as GraphQL query text.
	Render() string
}

// selection is one selected field. A nil child marks a leaf (or __typename)
// selection.
type selection struct {
	field string
	child Projection
}

// BaseProjection carries the selection state shared by all generated
// projection types. P is the projection one level up in the traversal and R
// is the root projection of the operation. Root projections bind both type
// parameters to themselves; below the first descent, generated selectors bind
// P to the Projection interface so the instantiated type stays fixed no
// matter how deep the selection chain grows.
//
// Selections and arguments only grow. The zero value is not usable; generated
// constructors call Init.
type BaseProjection[P Projection, R Projection] struct {
	typeName   string
	parent     P
	root       R
	selections []*selection
	byField    map[string]*selection
	arguments  map[string][]Argument
	fragments  []Projection
}

// Init sets up the projection for the given schema type. It is called by
// generated constructors.
func (b *BaseProjection[P, R]) Init(parent P, root R, typeName string) {
	b.typeName = typeName
	b.parent = parent
	b.root = root
	b.byField = make(map[string]*selection)
	b.arguments = make(map[string][]Argument)
}

// Parent returns the projection this projection was descended from.
func (b *BaseProjection[P, R]) Parent() P { return b.parent }

// Root returns the operation's root projection.
func (b *BaseProjection[P, R]) Root() R { return b.root }

// SchemaTypeName returns the GraphQL type name this projection selects on.
func (b *BaseProjection[P, R]) SchemaTypeName() string { return b.typeName }

// Select records a field selection. child is nil for leaf fields and for the
// __typename discriminator. Selecting the same field again replaces its
// nested projection but keeps the original position.
func (b *BaseProjection[P, R]) Select(field string, child Projection) {
	if s, ok := b.byField[field]; ok {
		s.child = child
		return
	}
	s := &selection{field: field, child: child}
	b.selections = append(b.selections, s)
	b.byField[field] = s
}

// Arg records inline arguments for a selected field. Repeated calls append.
func (b *BaseProjection[P, R]) Arg(field string, args ...Argument) {
	b.arguments[field] = append(b.arguments[field], args...)
}

// AddFragment attaches an inline-fragment projection. Fragments accumulate;
// a projection can hold one fragment per concrete type at the same time.
func (b *BaseProjection[P, R]) AddFragment(f Projection) {
	b.fragments = append(b.fragments, f)
}

// Render returns the selection set, e.g. "{ name friends { name } }".
func (b *BaseProjection[P, R]) Render() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	b.renderInner(&sb)
	sb.WriteString(" }")
	return sb.String()
}

func (b *BaseProjection[P, R]) renderInner(sb *strings.Builder) {
	first := true
	for _, s := range b.selections {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(s.field)
		if args := b.arguments[s.field]; len(args) > 0 {
			sb.WriteByte('(')
			for i, a := range args {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(a.Name)
				sb.WriteString(": ")
				sb.WriteString(serializeValue(a.Value))
			}
			sb.WriteByte(')')
		}
		if s.child != nil {
			sb.WriteByte(' ')
			sb.WriteString(s.child.Render())
		}
	}
	for _, f := range b.fragments {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(f.Render())
	}
}

// FragmentOption configures an inline-fragment projection at construction.
type FragmentOption func(*fragmentSettings)

type fragmentSettings struct {
	omitTypename bool
}

// OmitTypename suppresses the automatic __typename selection. Federation
// entity key fragments use it: their selection must mirror the entity's key
// representation exactly.
func OmitTypename() FragmentOption {
	return func(s *fragmentSettings) { s.omitTypename = true }
}

// BaseFragment carries the state of an inline-fragment projection
// ("... on ConcreteType { ... }"). Its selection set is independent of the
// containing projection's.
type BaseFragment[P Projection, R Projection] struct {
	BaseProjection[P, R]
	onType string
}

// InitFragment sets up the fragment for the given concrete type. Unless
// OmitTypename is passed, __typename is selected first so that responses can
// be dispatched to the matching concrete type.
func (f *BaseFragment[P, R]) InitFragment(parent P, root R, onType string, opts ...FragmentOption) {
	f.Init(parent, root, onType)
	f.onType = onType
	var settings fragmentSettings
	for _, opt := range opts {
		opt(&settings)
	}
	if !settings.omitTypename {
		f.Select("__typename", nil)
	}
}

// OnType returns the concrete type this fragment selects on.
func (f *BaseFragment[P, R]) OnType() string { return f.onType }

// Render returns the inline-fragment syntax, e.g.
// "... on Circle { __typename radius }".
func (f *BaseFragment[P, R]) Render() string {
	var sb strings.Builder
	sb.WriteString("... on ")
	sb.WriteString(f.onType)
	sb.WriteString(" { ")
	f.renderInner(&sb)
	sb.WriteString(" }")
	return sb.String()
}
