package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ClassKind distinguishes the class-like declarations PHP knows.
type ClassKind string

const (
	KindClass     ClassKind = "class"
	KindInterface ClassKind = "interface"
	KindTrait     ClassKind = "trait"
	KindEnum      ClassKind = "enum"
)

// ClassDescriptor is the static model of one class-like declaration. Parent
// and Interfaces hold the names as written in source; canonicalization happens
// in the resolver against Namespace and Imports.
type ClassDescriptor struct {
	Name      string // canonical: namespace-qualified, no leading backslash
	ShortName string
	Kind      ClassKind
	Namespace string
	// Imports maps the lowercased alias to the canonical imported name, per
	// the use statements in scope at the declaration.
	Imports    map[string]string
	Parent     string
	Interfaces []string
	Methods    []*MethodDescriptor
	File       string
	StartLine  int
	EndLine    int
}

// Method returns the method the class itself declares under the given name.
// PHP method names are case-insensitive.
func (c *ClassDescriptor) Method(name string) *MethodDescriptor {
	for _, m := range c.Methods {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

// MethodDescriptor is the static model of one method declaration. Node and
// Body point into the retained parse tree so rule checkers can re-walk the
// statements without reparsing.
type MethodDescriptor struct {
	Class      *ClassDescriptor
	Name       string
	Params     []Param
	ReturnType string // raw type expression as written, "" when absent
	Doc        string // preceding /** */ block, "" when absent
	Node       *sitter.Node
	Body       *sitter.Node // compound_statement, nil for abstract/interface methods
	Source     []byte
	StartLine  int
	EndLine    int
	Visibility string
	IsAbstract bool
	IsStatic   bool
}

// Param is one formal parameter, promoted or variadic included.
type Param struct {
	Name string // includes the $ sigil
	Type string // raw type expression as written, "" when absent
}

// SourceModel is the parse result of one file. Source and Tree are kept
// alive for the lifetime of the model: every descriptor node points into them.
type SourceModel struct {
	Path    string
	Source  []byte
	Tree    *sitter.Tree
	Classes []*ClassDescriptor
}

// Canonical strips the namespace-root marker from a fully qualified name.
func Canonical(name string) string {
	return strings.TrimPrefix(name, "\\")
}

// Join prepends the namespace to a short name.
func Join(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "\\" + name
}
