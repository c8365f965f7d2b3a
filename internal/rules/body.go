package rules

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tivins/php-solid/internal/extractor"
)

// statements returns the named statements of a method body, ignoring
// comment-only content.
func statements(m *extractor.MethodDescriptor) []*sitter.Node {
	if m.Body == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(m.Body.NamedChildCount()); i++ {
		child := m.Body.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// notSupportedNames are the exception kinds whose throw marks a stub that
// refuses an interface member rather than implementing it.
func isNotSupportedException(name string) bool {
	short := name
	if idx := strings.LastIndex(short, "\\"); idx >= 0 {
		short = short[idx+1:]
	}
	switch strings.ToLower(short) {
	case "badmethodcallexception", "badfunctioncallexception":
		return true
	}
	lowered := strings.ToLower(short)
	return strings.Contains(lowered, "notsupported") || strings.Contains(lowered, "notimplemented")
}

// throwOnlyException returns the class named by a statement of the shape
// `throw new T(...);`, or "" when the statement is anything else.
func throwOnlyException(stmt *sitter.Node, source []byte) string {
	node := stmt
	if node.Type() == "expression_statement" {
		node = node.NamedChild(0)
	}
	if node == nil || (node.Type() != "throw_expression" && node.Type() != "throw_statement") {
		return ""
	}
	inner := node.NamedChild(0)
	if inner == nil || inner.Type() != "object_creation_expression" {
		return ""
	}
	for i := 0; i < int(inner.NamedChildCount()); i++ {
		child := inner.NamedChild(i)
		if child.Type() == "name" || child.Type() == "qualified_name" {
			return child.Content(source)
		}
	}
	return ""
}

// returnedLiteral returns the normalized literal of a bare return statement:
// "" for non-returns, "void" for `return;`, otherwise the lowercased literal
// text ("null", "false", "[]", ...).
func returnedLiteral(stmt *sitter.Node, source []byte) string {
	if stmt.Type() != "return_statement" {
		return ""
	}
	value := stmt.NamedChild(0)
	if value == nil {
		return "void"
	}
	text := strings.ToLower(strings.TrimSpace(value.Content(source)))
	return strings.ReplaceAll(text, " ", "")
}

// trivialConstants are the return values an incomplete stub typically fakes.
var trivialConstants = map[string]bool{
	"true": true, "false": true, "null": true,
	"0": true, "1": true, "[]": true, "array()": true,
}
