package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("reads yaml and applies defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dgs.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
schemas:
  - schema/shows.graphqls
target: internal/generated
typeMapping:
  DateTime: time.Time
includeQueries:
  - shows
nullSafeBuilders: true
nullability: strict
generateEntities: true
`), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"schema/shows.graphqls"}, cfg.Schemas)
		assert.Equal(t, "internal/generated", cfg.Target)
		assert.Equal(t, DefaultPackage, cfg.Package)
		assert.Equal(t, DefaultTypesPackage, cfg.TypesPackage)
		assert.Equal(t, DefaultHeader, cfg.Header)
		assert.Equal(t, "time.Time", cfg.TypeMapping["DateTime"])
		assert.Equal(t, []string{"shows"}, cfg.IncludeQueries)
		assert.True(t, cfg.NullSafeBuilders)
		assert.Equal(t, NullabilityStrict, cfg.Nullability)
		assert.True(t, cfg.GenerateEntities)
	})

	t.Run("built-in scalar mapping survives custom entries", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dgs.yaml")
		require.NoError(t, os.WriteFile(path, []byte("typeMapping:\n  Time: int64\n"), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "int64", cfg.TypeMapping["Time"], "explicit entry overrides the default")
		assert.Equal(t, "github.com/google/uuid.UUID", cfg.TypeMapping["UUID"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml is a config error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dgs.yaml")
		require.NoError(t, os.WriteFile(path, []byte("schemas: [unterminated"), 0o644))

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestConfigFilters(t *testing.T) {
	cfg := &Config{
		SkipFields:     []string{"Person.secret"},
		IncludeQueries: []string{"shows"},
	}

	assert.True(t, cfg.skipField("Person", "secret"))
	assert.False(t, cfg.skipField("Person", "name"))
	assert.False(t, cfg.skipField("Show", "secret"))

	assert.True(t, cfg.includeOperation(cfg.IncludeQueries, "shows"))
	assert.False(t, cfg.includeOperation(cfg.IncludeQueries, "movies"))
	assert.True(t, cfg.includeOperation(nil, "anything"), "empty filter includes everything")
}

func TestSplitQualified(t *testing.T) {
	cases := []struct {
		in   string
		pkg  string
		name string
	}{
		{"string", "", "string"},
		{"time.Time", "time", "Time"},
		{"github.com/google/uuid.UUID", "github.com/google/uuid", "UUID"},
	}
	for _, tc := range cases {
		pkg, name := splitQualified(tc.in)
		assert.Equal(t, tc.pkg, pkg)
		assert.Equal(t, tc.name, name)
	}
}

func TestOptions(t *testing.T) {
	t.Run("NewConfig applies defaults then options", func(t *testing.T) {
		cfg, err := NewConfig(
			WithTarget("out"),
			WithPackage("gql"),
			WithTypesPackage("gqltypes"),
			WithTypeMapping(map[string]string{"DateTime": "time.Time"}),
			WithIncludeQueries("shows"),
			WithSkipFields("Person.secret"),
			WithNullSafeBuilders(true),
			WithNullability(NullabilityStrict),
			WithEntityQueries(true),
		)
		require.NoError(t, err)
		assert.Equal(t, "out", cfg.Target)
		assert.Equal(t, "gql", cfg.Package)
		assert.Equal(t, "gqltypes", cfg.TypesPackage)
		assert.Equal(t, "time.Time", cfg.TypeMapping["DateTime"])
		assert.Equal(t, "time.Time", cfg.TypeMapping["Time"], "defaults precede options")
		assert.True(t, cfg.NullSafeBuilders)
		assert.True(t, cfg.GenerateEntities)
	})

	t.Run("invalid option fails construction", func(t *testing.T) {
		_, err := NewConfig(WithTarget(""))
		require.Error(t, err)
		assert.True(t, IsConfigError(err))

		_, err = NewConfig(WithNullability("lenient"))
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("ApplyAll collects every error", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.ApplyAll(WithTarget(""), WithPackage(""), WithHeader("// custom"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Target")
		assert.Contains(t, err.Error(), "Package")
		assert.Equal(t, "// custom", cfg.Header, "valid options still apply")
	})
}
