package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

// Parser parses PHP source files into SourceModels. Each file is parsed at
// most once per Parser lifetime; the cache is keyed by absolute path.
type Parser struct {
	mu    sync.RWMutex
	cache map[string]*SourceModel
}

// NewParser creates a parser with an empty file cache.
func NewParser() *Parser {
	return &Parser{cache: make(map[string]*SourceModel)}
}

// ParseFile returns the model for the given file, reusing the cached parse
// when one exists. A read or parse failure is returned as an error and
// contributes no model; callers degrade to "no information" for that file.
func (p *Parser) ParseFile(path string) (*SourceModel, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	p.mu.RLock()
	cached, ok := p.cache[abs]
	p.mu.RUnlock()
	if ok {
		return cached, nil
	}

	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(php.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}

	model := &SourceModel{
		Path:   abs,
		Source: source,
		Tree:   tree,
	}
	model.Classes = collectClasses(tree.RootNode(), source, abs)

	p.mu.Lock()
	p.cache[abs] = model
	p.mu.Unlock()

	return model, nil
}
