package codegen

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGeneratedOutputCompiles generates a client for a schema that exercises
// self-referential types, interfaces, unions and federated keys, then builds
// the emitted code with the Go toolchain inside a throwaway module. This is
// the end-to-end guard that everything we render is code the compiler
// accepts.
func TestGeneratedOutputCompiles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping toolchain test in short mode")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not available")
	}

	const sdl = `
directive @key(fields: String!) repeatable on OBJECT

interface Character {
	name: String!
}

type Human implements Character @key(fields: "name") {
	name: String!
	height: Float
	friends(limit: Int): [Character]
}

type Droid implements Character {
	name: String!
	primaryFunction: String
}

union SearchResult = Human | Droid

input CharacterFilter {
	name: String
	limit: Int
}

type Query {
	search(text: String!): [SearchResult]
	characters(filter: CharacterFilter): [Character]
	human(name: String!): Human
}

type Mutation {
	renameHuman(name: String!, newName: String!): Human
}
`

	repoRoot, err := filepath.Abs("..")
	require.NoError(t, err)

	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.graphqls")
	require.NoError(t, os.WriteFile(schemaPath, []byte(sdl), 0o644))

	gomod := "module generatedcheck\n\ngo 1.24\n\n" +
		"require github.com/jGleitz/dgs-codegen v0.0.0\n\n" +
		"replace github.com/jGleitz/dgs-codegen => " + repoRoot + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644))

	cfg := &Config{
		Schemas:          []string{schemaPath},
		Target:           dir,
		GenerateEntities: true,
	}
	require.NoError(t, Generate(context.Background(), cfg))

	run := func(args ...string) {
		cmd := exec.Command(goBin, args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "GOFLAGS=-mod=mod")
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "go %v:\n%s", args, out)
	}
	run("mod", "tidy")
	run("build", "./...")
	run("vet", "./...")
}
