package codegen

// NullabilityStrategy decorates resolved type references with nullability
// information and answers nullability queries about them. The strategy is
// selected once per generation run; unknown names fail fast.
type NullabilityStrategy interface {
	// MarkNonNull marks the reference as non-nullable.
	MarkNonNull(ref *TypeRef) *TypeRef
	// MarkNullable marks the reference as nullable.
	MarkNullable(ref *TypeRef) *TypeRef
	// IsNullable reports whether the reference is nullable.
	IsNullable(ref *TypeRef) (bool, error)
}

// Strategy names accepted by NullabilityByName.
const (
	NullabilityNone   = "none"
	NullabilityStrict = "strict"
)

// NullabilityByName resolves a strategy by its configuration name. The empty
// name selects the conservative no-op strategy.
func NullabilityByName(name string) (NullabilityStrategy, error) {
	switch name {
	case "", NullabilityNone:
		return noopNullability{}, nil
	case NullabilityStrict:
		return strictNullability{}, nil
	default:
		return nil, NewConfigError("Nullability", name, "unknown nullability strategy; use none or strict")
	}
}

// noopNullability leaves references undecorated and conservatively reports
// everything as nullable, so nothing is ever enforced.
type noopNullability struct{}

func (noopNullability) MarkNonNull(ref *TypeRef) *TypeRef  { return ref }
func (noopNullability) MarkNullable(ref *TypeRef) *TypeRef { return ref }

func (noopNullability) IsNullable(*TypeRef) (bool, error) { return true, nil }

// strictNullability attaches an exclusive nullable-or-non-null marker and
// refuses to answer for references that were never decorated. An undecorated
// reference reaching IsNullable is a generator bug, not user error.
type strictNullability struct{}

func (strictNullability) MarkNonNull(ref *TypeRef) *TypeRef {
	marked := ref.clone()
	marked.nullable = markNonNull
	return marked
}

func (strictNullability) MarkNullable(ref *TypeRef) *TypeRef {
	marked := ref.clone()
	marked.nullable = markNullable
	return marked
}

func (strictNullability) IsNullable(ref *TypeRef) (bool, error) {
	switch ref.nullable {
	case markNullable:
		return true, nil
	case markNonNull:
		return false, nil
	default:
		return false, NewGenerationError("", "",
			"signature "+ref.describe()+" was never marked nullable or non-null", nil)
	}
}
