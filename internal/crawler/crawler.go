package crawler

import (
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/tivins/php-solid/internal/extractor"
)

// Crawler scans a directory tree for PHP source files and feeds them through
// the shared parser. A file that fails to parse is logged and skipped; it
// must never abort the scan.
type Crawler struct {
	parser  *extractor.Parser
	ignored []string
}

// NewCrawler creates a crawler over the given parser. Extra ignored directory
// names can be appended to the defaults.
func NewCrawler(parser *extractor.Parser, ignored ...string) *Crawler {
	return &Crawler{
		parser:  parser,
		ignored: append([]string{".git", "vendor", "node_modules"}, ignored...),
	}
}

// LoadError records a file whose source was unreadable or unparsable.
type LoadError struct {
	Path string
	Err  error
}

// ScanProject walks the root directory, parses every .php file and streams
// the resulting models. It returns the load errors collected along the way.
func (c *Crawler) ScanProject(root string, onModel func(*extractor.SourceModel)) ([]LoadError, error) {
	var loadErrs []LoadError
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".php") {
			return nil
		}

		model, err := c.parser.ParseFile(path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			loadErrs = append(loadErrs, LoadError{Path: path, Err: err})
			return nil
		}
		onModel(model)
		return nil
	})
	return loadErrs, err
}
