package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// collectClasses walks the program node and produces a descriptor for every
// class-like declaration, tracking the enclosing namespace and use imports.
func collectClasses(root *sitter.Node, source []byte, path string) []*ClassDescriptor {
	c := &collector{source: source, path: path}
	c.walkScope(root, "", map[string]string{})
	return c.classes
}

type collector struct {
	source  []byte
	path    string
	classes []*ClassDescriptor
}

// walkScope visits the direct children of a namespace-level scope. PHP allows
// both `namespace Foo;` (applies to the rest of the file) and `namespace Foo {}`
// (applies to the braced block only).
func (c *collector) walkScope(scope *sitter.Node, namespace string, imports map[string]string) {
	for i := 0; i < int(scope.NamedChildCount()); i++ {
		node := scope.NamedChild(i)
		switch node.Type() {
		case "namespace_definition":
			name := ""
			if n := firstChildOfType(node, "namespace_name"); n != nil {
				name = n.Content(c.source)
			}
			if body := firstChildOfType(node, "declaration_list"); body != nil {
				c.walkScope(body, name, map[string]string{})
			} else {
				// Unbraced form: the declaration rebinds the namespace for
				// everything that follows in this scope.
				namespace = name
				imports = map[string]string{}
			}
		case "namespace_use_declaration":
			c.collectImports(node, imports)
		case "class_declaration":
			c.addClass(node, KindClass, namespace, imports)
		case "interface_declaration":
			c.addClass(node, KindInterface, namespace, imports)
		case "trait_declaration":
			c.addClass(node, KindTrait, namespace, imports)
		case "enum_declaration":
			c.addClass(node, KindEnum, namespace, imports)
		}
	}
}

// collectImports handles plain, aliased and grouped use statements.
func (c *collector) collectImports(node *sitter.Node, imports map[string]string) {
	var prefix string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "namespace_use_clause":
			c.addImport(child, "", imports)
		case "namespace_name":
			// Prefix of a group use: use Foo\Bar\{Baz, Qux as Q};
			prefix = Canonical(child.Content(c.source))
		case "namespace_use_group":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				clause := child.NamedChild(j)
				c.addImport(clause, prefix, imports)
			}
		}
	}
}

func (c *collector) addImport(clause *sitter.Node, prefix string, imports map[string]string) {
	var target, alias string
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Type() {
		case "qualified_name", "name", "namespace_name":
			if target == "" {
				target = Canonical(child.Content(c.source))
			}
		case "namespace_aliasing_clause":
			if n := firstChildOfType(child, "name"); n != nil {
				alias = n.Content(c.source)
			}
		}
	}
	if target == "" {
		return
	}
	if prefix != "" {
		target = prefix + "\\" + target
	}
	if alias == "" {
		if idx := strings.LastIndex(target, "\\"); idx >= 0 {
			alias = target[idx+1:]
		} else {
			alias = target
		}
	}
	imports[strings.ToLower(alias)] = target
}

func (c *collector) addClass(node *sitter.Node, kind ClassKind, namespace string, imports map[string]string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	short := nameNode.Content(c.source)

	cd := &ClassDescriptor{
		Name:      Join(namespace, short),
		ShortName: short,
		Kind:      kind,
		Namespace: namespace,
		Imports:   imports,
		File:      c.path,
		StartLine: int(node.StartPoint().Row + 1),
		EndLine:   int(node.EndPoint().Row + 1),
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "base_clause":
			// For classes this is the single extends target; interfaces may
			// extend several. Both feed contract discovery the same way.
			for j := 0; j < int(child.NamedChildCount()); j++ {
				t := child.NamedChild(j)
				if t.Type() != "name" && t.Type() != "qualified_name" {
					continue
				}
				raw := t.Content(c.source)
				if kind == KindClass && cd.Parent == "" {
					cd.Parent = raw
				} else {
					cd.Interfaces = append(cd.Interfaces, raw)
				}
			}
		case "class_interface_clause":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				t := child.NamedChild(j)
				if t.Type() == "name" || t.Type() == "qualified_name" {
					cd.Interfaces = append(cd.Interfaces, t.Content(c.source))
				}
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		c.collectMethods(cd, body)
	}
	c.classes = append(c.classes, cd)
}

func (c *collector) collectMethods(cd *ClassDescriptor, body *sitter.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		node := body.NamedChild(i)
		if node.Type() != "method_declaration" {
			continue
		}
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}

		md := &MethodDescriptor{
			Class:     cd,
			Name:      nameNode.Content(c.source),
			Doc:       c.docComment(node),
			Node:      node,
			Source:    c.source,
			StartLine: int(node.StartPoint().Row + 1),
			EndLine:   int(node.EndPoint().Row + 1),
		}

		for j := 0; j < int(node.ChildCount()); j++ {
			child := node.Child(j)
			switch child.Type() {
			case "visibility_modifier":
				md.Visibility = child.Content(c.source)
			case "abstract_modifier":
				md.IsAbstract = true
			case "static_modifier":
				md.IsStatic = true
			}
		}
		if md.Visibility == "" {
			md.Visibility = "public"
		}

		if params := node.ChildByFieldName("parameters"); params != nil {
			md.Params = c.collectParams(params)
		}
		if ret := node.ChildByFieldName("return_type"); ret != nil {
			md.ReturnType = ret.Content(c.source)
		}
		if b := node.ChildByFieldName("body"); b != nil && b.Type() == "compound_statement" {
			md.Body = b
		}
		// Interface signatures carry no body and behave like abstract methods.
		if cd.Kind == KindInterface {
			md.IsAbstract = true
		}

		cd.Methods = append(cd.Methods, md)
	}
}

func (c *collector) collectParams(params *sitter.Node) []Param {
	var out []Param
	for i := 0; i < int(params.NamedChildCount()); i++ {
		node := params.NamedChild(i)
		switch node.Type() {
		case "simple_parameter", "property_promotion_parameter", "variadic_parameter":
			p := Param{}
			if t := node.ChildByFieldName("type"); t != nil {
				p.Type = t.Content(c.source)
			}
			if n := node.ChildByFieldName("name"); n != nil {
				p.Name = n.Content(c.source)
			}
			out = append(out, p)
		}
	}
	return out
}

// docComment returns the doc block immediately preceding a declaration, if
// any. Only /** */ comments count; a blank line breaks the association.
func (c *collector) docComment(node *sitter.Node) string {
	prev := node.PrevSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	if node.StartPoint().Row-prev.EndPoint().Row > 1 {
		return ""
	}
	text := prev.Content(c.source)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	return text
}

func firstChildOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == typ {
			return child
		}
	}
	return nil
}
