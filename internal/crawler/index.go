package crawler

import (
	"strings"

	"github.com/tivins/php-solid/internal/extractor"
)

// Index maps canonical class names to their descriptors for a whole project.
// PHP class names are case-insensitive, so keys are folded; declared spelling
// is preserved on the descriptors.
type Index struct {
	classes map[string]*extractor.ClassDescriptor
	order   []*extractor.ClassDescriptor
}

func NewIndex() *Index {
	return &Index{classes: map[string]*extractor.ClassDescriptor{}}
}

// AddModel registers every class a parsed file declares. The first
// declaration of a name wins; duplicates are ignored.
func (i *Index) AddModel(model *extractor.SourceModel) {
	for _, cd := range model.Classes {
		key := strings.ToLower(cd.Name)
		if _, exists := i.classes[key]; exists {
			continue
		}
		i.classes[key] = cd
		i.order = append(i.order, cd)
	}
}

// Lookup implements resolver.Index.
func (i *Index) Lookup(name string) (*extractor.ClassDescriptor, bool) {
	cd, ok := i.classes[strings.ToLower(extractor.Canonical(name))]
	return cd, ok
}

// Classes returns all indexed descriptors in discovery order.
func (i *Index) Classes() []*extractor.ClassDescriptor {
	return i.order
}

// BuildIndex scans a project root and returns the populated index together
// with the per-file load errors.
func BuildIndex(root string, parser *extractor.Parser, ignored ...string) (*Index, []LoadError, error) {
	idx := NewIndex()
	c := NewCrawler(parser, ignored...)
	loadErrs, err := c.ScanProject(root, idx.AddModel)
	if err != nil {
		return nil, nil, err
	}
	return idx, loadErrs, nil
}
