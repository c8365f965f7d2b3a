package resolver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tivins/php-solid/internal/crawler"
	"github.com/tivins/php-solid/internal/extractor"
	"github.com/tivins/php-solid/internal/resolver"
)

func buildIndex(t *testing.T, files map[string]string) *crawler.Index {
	t.Helper()
	dir := t.TempDir()
	parser := extractor.NewParser()
	idx := crawler.NewIndex()
	for name, src := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(src), 0644))
		model, err := parser.ParseFile(path)
		require.NoError(t, err)
		idx.AddModel(model)
	}
	return idx
}

func TestResolver_Resolve(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"local.php": `<?php
namespace App;
class Local {}
`,
	})
	r := resolver.New(idx)
	env := resolver.Environment{
		Namespace: "App",
		Imports:   map[string]string{"alias": "Vendor\\Lib\\Target"},
	}

	t.Run("Rooted name is canonical as-is", func(t *testing.T) {
		assert.Equal(t, "Vendor\\Thing", r.Resolve("\\Vendor\\Thing", env))
	})
	t.Run("Qualified name is canonical as-is", func(t *testing.T) {
		assert.Equal(t, "Sub\\Thing", r.Resolve("Sub\\Thing", env))
	})
	t.Run("Import alias wins", func(t *testing.T) {
		assert.Equal(t, "Vendor\\Lib\\Target", r.Resolve("Alias", env))
	})
	t.Run("Current namespace when declared there", func(t *testing.T) {
		assert.Equal(t, "App\\Local", r.Resolve("Local", env))
	})
	t.Run("Global fallback", func(t *testing.T) {
		assert.Equal(t, "RuntimeException", r.Resolve("RuntimeException", env))
	})
}

func TestResolver_IsSubtypeOf(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"exceptions.php": `<?php
namespace App;
class AppException extends \RuntimeException {}
class DeepException extends AppException {}
class Unrelated {}
`,
	})
	r := resolver.New(idx)

	t.Run("Identity", func(t *testing.T) {
		assert.True(t, r.IsSubtypeOf("App\\AppException", []string{"App\\AppException"}))
	})
	t.Run("Source hierarchy into builtin hierarchy", func(t *testing.T) {
		assert.True(t, r.IsSubtypeOf("App\\DeepException", []string{"RuntimeException"}))
		assert.True(t, r.IsSubtypeOf("App\\DeepException", []string{"Exception"}))
		assert.True(t, r.IsSubtypeOf("App\\DeepException", []string{"Throwable"}))
	})
	t.Run("Builtin SPL chain", func(t *testing.T) {
		assert.True(t, r.IsSubtypeOf("UnexpectedValueException", []string{"RuntimeException"}))
		assert.True(t, r.IsSubtypeOf("BadMethodCallException", []string{"LogicException"}))
		assert.False(t, r.IsSubtypeOf("RuntimeException", []string{"LogicException"}))
	})
	t.Run("Not a descendant", func(t *testing.T) {
		assert.False(t, r.IsSubtypeOf("App\\Unrelated", []string{"RuntimeException"}))
	})
	t.Run("Unresolvable fails closed", func(t *testing.T) {
		assert.False(t, r.IsSubtypeOf("App\\Ghost", []string{"RuntimeException"}))
	})
	t.Run("Empty allowed set admits nothing", func(t *testing.T) {
		assert.False(t, r.IsSubtypeOf("RuntimeException", nil))
	})
}

func TestResolver_Assignable(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"types.php": `<?php
namespace App;
class Animal {}
class Dog extends Animal {}
class Cat extends Animal {}
`,
	})
	r := resolver.New(idx)
	env := resolver.Environment{Namespace: "App"}

	parse := func(raw string) resolver.TypeExpr {
		expr, ok := resolver.ParseType(raw)
		require.True(t, ok)
		return expr
	}

	t.Run("Named covariance", func(t *testing.T) {
		assert.True(t, r.Assignable(parse("Dog"), parse("Animal"), env, env))
		assert.False(t, r.Assignable(parse("Animal"), parse("Dog"), env, env))
	})
	t.Run("Union subtype iff every member is", func(t *testing.T) {
		assert.True(t, r.Assignable(parse("Dog|Cat"), parse("Animal"), env, env))
		assert.False(t, r.Assignable(parse("Dog|string"), parse("Animal"), env, env))
		assert.True(t, r.Assignable(parse("Dog"), parse("Dog|Cat"), env, env))
	})
	t.Run("Nullable", func(t *testing.T) {
		assert.True(t, r.Assignable(parse("?Dog"), parse("?Animal"), env, env))
		assert.False(t, r.Assignable(parse("?Dog"), parse("Animal"), env, env))
	})
	t.Run("Mixed is top", func(t *testing.T) {
		assert.True(t, r.Assignable(parse("Dog"), parse("mixed"), env, env))
		assert.False(t, r.Assignable(parse("mixed"), parse("Dog"), env, env))
	})
	t.Run("Void identity", func(t *testing.T) {
		assert.True(t, r.Assignable(parse("void"), parse("void"), env, env))
		assert.False(t, r.Assignable(parse("void"), parse("Dog"), env, env))
	})
	t.Run("Primitives by identity plus object and iterable widening", func(t *testing.T) {
		assert.True(t, r.Assignable(parse("int"), parse("int"), env, env))
		assert.False(t, r.Assignable(parse("int"), parse("string"), env, env))
		assert.True(t, r.Assignable(parse("Dog"), parse("object"), env, env))
		assert.True(t, r.Assignable(parse("array"), parse("iterable"), env, env))
	})
	t.Run("Self and parent normalize against the declaring class", func(t *testing.T) {
		dogEnv := resolver.Environment{Namespace: "App", Class: "App\\Dog", Parent: "App\\Animal"}
		assert.True(t, r.Assignable(parse("self"), parse("Animal"), dogEnv, env))
		assert.True(t, r.Assignable(parse("static"), parse("Dog"), dogEnv, env))
		assert.True(t, r.Assignable(parse("parent"), parse("Animal"), dogEnv, env))
		assert.False(t, r.Assignable(parse("parent"), parse("Dog"), dogEnv, env))
	})
	t.Run("Unresolvable fails closed", func(t *testing.T) {
		assert.False(t, r.Assignable(parse("Ghost"), parse("Animal"), env, env))
	})
}
