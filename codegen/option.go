package codegen

import (
	"errors"
	"maps"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the package name for generated operation builders.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTypesPackage sets the package name for generated projection types.
func WithTypesPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("TypesPackage", nil, "package cannot be empty")
		}
		c.TypesPackage = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTypeMapping adds custom scalar mappings. Later calls override earlier
// entries for the same scalar.
func WithTypeMapping(mapping map[string]string) Option {
	return func(c *Config) error {
		if c.TypeMapping == nil {
			c.TypeMapping = make(map[string]string)
		}
		maps.Copy(c.TypeMapping, mapping)
		return nil
	}
}

// WithIncludeQueries restricts Query generation to the named fields.
func WithIncludeQueries(names ...string) Option {
	return func(c *Config) error {
		c.IncludeQueries = append(c.IncludeQueries, names...)
		return nil
	}
}

// WithIncludeMutations restricts Mutation generation to the named fields.
func WithIncludeMutations(names ...string) Option {
	return func(c *Config) error {
		c.IncludeMutations = append(c.IncludeMutations, names...)
		return nil
	}
}

// WithIncludeSubscriptions restricts Subscription generation to the named
// fields.
func WithIncludeSubscriptions(names ...string) Option {
	return func(c *Config) error {
		c.IncludeSubscriptions = append(c.IncludeSubscriptions, names...)
		return nil
	}
}

// WithSkipFields excludes fields from generation; keys are "Type.field".
func WithSkipFields(keys ...string) Option {
	return func(c *Config) error {
		c.SkipFields = append(c.SkipFields, keys...)
		return nil
	}
}

// WithNullSafeBuilders toggles fail-fast validation of required arguments in
// generated Build methods.
func WithNullSafeBuilders(enabled bool) Option {
	return func(c *Config) error {
		c.NullSafeBuilders = enabled
		return nil
	}
}

// WithNullability selects the nullability strategy by name ("none" or
// "strict"). Unknown names fail fast.
func WithNullability(name string) Option {
	return func(c *Config) error {
		if _, err := NullabilityByName(name); err != nil {
			return err
		}
		c.Nullability = name
		return nil
	}
}

// WithEntityQueries toggles generation of the federation _entities
// projection.
func WithEntityQueries(enabled bool) Option {
	return func(c *Config) error {
		c.GenerateEntities = enabled
		return nil
	}
}

// Apply applies options to the config. It returns the first error
// encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a Config with defaults applied, then applies the given
// options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	c.setDefaults()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}
