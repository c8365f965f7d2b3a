package analyzer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tivins/php-solid/internal/analyzer"
	"github.com/tivins/php-solid/internal/crawler"
	"github.com/tivins/php-solid/internal/extractor"
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

func newAnalyzer(t *testing.T, files map[string]string) (*analyzer.Analyzer, *crawler.Index) {
	idx := buildIndex(t, files)
	return analyzer.New(idx, analyzer.Options{FatInterfaceThreshold: 5}), idx
}

func TestCheckLsp_ThrowAgainstSilentContract(t *testing.T) {
	a, _ := newAnalyzer(t, map[string]string{
		"i.php": `<?php
interface I {
    public function f(): void;
}
`,
		"c.php": `<?php
class C implements I {
    public function f(): void {
        throw new \RuntimeException('surprise');
    }
}
`,
	})

	got, err := a.CheckLsp("C")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].Class)
	assert.Equal(t, "f", got[0].Method)
	assert.Equal(t, "I", got[0].Contract)
	assert.Contains(t, got[0].Reason, "RuntimeException")
}

func TestCheckLsp_SubclassOfDeclaredThrowIsClean(t *testing.T) {
	a, _ := newAnalyzer(t, map[string]string{
		"all.php": `<?php
interface I {
    /** @throws RuntimeException */
    public function f(): void;
}
class C implements I {
    public function f(): void {
        throw new \UnexpectedValueException('subclass');
    }
}
`,
	})

	got, err := a.CheckLsp("C")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckLsp_ParentClassContract(t *testing.T) {
	a, _ := newAnalyzer(t, map[string]string{
		"all.php": `<?php
namespace App;
class Base {
    public function make(): Base {
        return $this;
    }
}
class Child extends Base {
    public function make(): \stdClass {
        return new \stdClass();
    }
}
`,
	})

	got, err := a.CheckLsp("App\\Child")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "App\\Base", got[0].Contract)
	assert.Contains(t, got[0].Reason, "not covariant")
}

func TestCheckLsp_InterfaceAncestorContractsIncluded(t *testing.T) {
	a, _ := newAnalyzer(t, map[string]string{
		"all.php": `<?php
interface Reader {
    public function read(): string;
}
interface BufferedReader extends Reader {
    public function buffer(): int;
}
class File implements BufferedReader {
    public function read(): int {
        return 0;
    }
    public function buffer(): int {
        return 1;
    }
}
`,
	})

	got, err := a.CheckLsp("File")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Reader", got[0].Contract, "contract found through the interface extends chain")
}

func TestCheckLsp_UnknownClass(t *testing.T) {
	a, _ := newAnalyzer(t, map[string]string{"empty.php": `<?php class Known {}`})

	_, err := a.CheckLsp("App\\Ghost")
	assert.ErrorIs(t, err, analyzer.ErrClassNotFound)
}

func TestCheckIsp_StubsForThreeMethodInterface(t *testing.T) {
	a, _ := newAnalyzer(t, map[string]string{
		"all.php": `<?php
interface I {
    public function f(): void;
    public function g(): void;
    public function h(): void;
}
class C implements I {
    public function f(): void {}
    public function g(): void {
        $this->doWork();
    }
    public function h(): void {
        $this->doWork();
    }
    private function doWork(): void {}
}
`,
	})

	got, err := a.CheckIsp("C")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Reason, "f")
	assert.Equal(t, "I", got[0].Interface)
}

func TestCheckIsp_UnresolvableInterfaceSkipped(t *testing.T) {
	a, _ := newAnalyzer(t, map[string]string{
		"c.php": `<?php
class C implements \Vendor\Unknown {
    public function f(): void {}
}
`,
	})

	got, err := a.CheckIsp("C")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckProject_IsolatesAndCounts(t *testing.T) {
	a, idx := newAnalyzer(t, map[string]string{
		"all.php": `<?php
interface I {
    public function f(): void;
}
class Bad implements I {
    public function f(): void {
        throw new \RuntimeException('boom');
    }
}
class Good implements I {
    public function f(): void {
        $this->work();
    }
    private function work(): void {}
}
`,
	})

	result := a.CheckProject(idx.Classes())
	assert.Equal(t, 2, result.ClassesChecked, "interfaces are contracts, not implementers")
	assert.Len(t, result.Lsp, 1)
	assert.Empty(t, result.Errors)
}
