package throws

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tivins/php-solid/internal/extractor"
	"github.com/tivins/php-solid/internal/resolver"
)

// Analyzer statically approximates the exception types a method body can
// propagate, following the call graph through receivers whose static type is
// known. Dynamically computed receivers are never followed.
type Analyzer struct {
	index resolver.Index
	res   *resolver.Resolver
}

func NewAnalyzer(index resolver.Index, res *resolver.Resolver) *Analyzer {
	return &Analyzer{index: index, res: res}
}

// Throws returns the deduplicated union of direct and transitive exception
// types reachable from the method, canonicalized. A fresh visited set per
// top-level query bounds cycles: each class::method pair contributes once.
func (a *Analyzer) Throws(m *extractor.MethodDescriptor) *Set {
	out := NewSet()
	a.collect(m, map[string]bool{}, nil, out)
	return out
}

func (a *Analyzer) collect(m *extractor.MethodDescriptor, visited map[string]bool, chain []string, out *Set) {
	key := strings.ToLower(m.Class.Name + "::" + m.Name)
	if visited[key] {
		return
	}
	visited[key] = true
	if m.Body == nil {
		return
	}

	w := &walker{
		a:       a,
		m:       m,
		env:     a.res.EnvOf(m.Class),
		visited: visited,
		chain:   append(chain, m.Class.Name+"::"+m.Name),
		out:     out,
	}
	w.walk(m.Body)
}

type walker struct {
	a       *Analyzer
	m       *extractor.MethodDescriptor
	env     resolver.Environment
	visited map[string]bool
	chain   []string
	out     *Set
}

func (w *walker) walk(node *sitter.Node) {
	switch node.Type() {
	case "anonymous_function_creation_expression", "anonymous_function", "arrow_function":
		// A throw inside a closure does not propagate at the definition site.
		return
	case "throw_expression", "throw_statement":
		w.handleThrow(node)
	case "member_call_expression":
		w.handleMemberCall(node)
	case "scoped_call_expression":
		w.handleScopedCall(node)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		w.walk(node.NamedChild(i))
	}
}

func (w *walker) handleThrow(node *sitter.Node) {
	inner := node.NamedChild(0)
	if inner == nil {
		return
	}
	switch inner.Type() {
	case "object_creation_expression":
		if name := w.classNameOfNew(inner); name != "" {
			w.record(w.a.res.Resolve(name, w.env))
		}
	case "variable_name":
		// Re-throw: resolve via the nearest enclosing catch clause binding
		// this variable.
		for _, name := range w.catchTypes(node, w.content(inner)) {
			w.record(w.a.res.Resolve(name, w.env))
		}
	default:
		// throw $this->make(), throw $e ?? new E(): intentionally unresolved.
	}
}

func (w *walker) handleMemberCall(node *sitter.Node) {
	method := w.callName(node)
	if method == "" {
		return
	}
	obj := node.ChildByFieldName("object")
	for obj != nil && obj.Type() == "parenthesized_expression" {
		obj = obj.NamedChild(0)
	}
	if obj == nil {
		return
	}

	switch obj.Type() {
	case "variable_name":
		if w.content(obj) == "$this" {
			w.follow(w.m.Class.Name, method)
			return
		}
		for _, class := range w.varTypes(w.content(obj)) {
			w.follow(class, method)
		}
	case "object_creation_expression":
		if name := w.classNameOfNew(obj); name != "" {
			w.follow(w.a.res.Resolve(name, w.env), method)
		}
	}
}

func (w *walker) handleScopedCall(node *sitter.Node) {
	method := w.callName(node)
	if method == "" {
		return
	}
	scope := node.ChildByFieldName("scope")
	if scope == nil {
		return
	}
	switch scope.Type() {
	case "relative_scope":
		switch strings.ToLower(w.content(scope)) {
		case "self", "static":
			w.follow(w.m.Class.Name, method)
		case "parent":
			w.follow(w.env.Parent, method)
		}
	case "name", "qualified_name":
		w.follow(w.a.res.Resolve(w.content(scope), w.env), method)
	}
}

// callName returns the statically known method name of a call node, or ""
// when the name is a dynamic expression.
func (w *walker) callName(node *sitter.Node) string {
	name := node.ChildByFieldName("name")
	if name == nil || name.Type() != "name" {
		return ""
	}
	return w.content(name)
}

// classNameOfNew returns the class named in a new-expression, or "" for
// dynamic instantiation (new $class, new static()...).
func (w *walker) classNameOfNew(node *sitter.Node) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "name" || child.Type() == "qualified_name" {
			return w.content(child)
		}
	}
	return ""
}

// catchTypes walks outward from a throw to the nearest enclosing catch clause
// that binds the given variable and returns its declared type list.
func (w *walker) catchTypes(from *sitter.Node, variable string) []string {
	for node := from.Parent(); node != nil; node = node.Parent() {
		if node.Type() == "method_declaration" {
			break
		}
		if node.Type() != "catch_clause" {
			continue
		}
		bound := node.ChildByFieldName("name")
		if bound == nil || w.content(bound) != variable {
			continue
		}
		typeList := node.ChildByFieldName("type")
		if typeList == nil {
			return nil
		}
		var out []string
		for i := 0; i < int(typeList.NamedChildCount()); i++ {
			child := typeList.NamedChild(i)
			// The grammar wraps each member of a catch type list in a
			// named_type node.
			if child.Type() == "named_type" {
				child = child.NamedChild(0)
			}
			if child != nil && (child.Type() == "name" || child.Type() == "qualified_name") {
				out = append(out, w.content(child))
			}
		}
		return out
	}
	return nil
}

// varTypes returns the canonical classes a local variable may hold, from the
// method's parameter type hints (union members included) and from local
// `$x = new C()` assignments. Anything else is not statically typed here.
func (w *walker) varTypes(variable string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(raw string) {
		resolved := w.a.res.Resolve(raw, w.env)
		if resolved == "" || seen[strings.ToLower(resolved)] {
			return
		}
		seen[strings.ToLower(resolved)] = true
		out = append(out, resolved)
	}

	for _, p := range w.m.Params {
		if p.Name != variable || p.Type == "" {
			continue
		}
		if t, ok := resolver.ParseType(p.Type); ok {
			for _, name := range namedTypeNames(t) {
				add(name)
			}
		}
	}

	w.findLocalNew(w.m.Body, variable, add)
	return out
}

func (w *walker) findLocalNew(node *sitter.Node, variable string, add func(string)) {
	if node.Type() == "assignment_expression" {
		left := node.ChildByFieldName("left")
		right := node.ChildByFieldName("right")
		if left != nil && right != nil &&
			left.Type() == "variable_name" && w.content(left) == variable &&
			right.Type() == "object_creation_expression" {
			if name := w.classNameOfNew(right); name != "" {
				add(name)
			}
		}
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "anonymous_function_creation_expression", "anonymous_function", "arrow_function":
			continue
		}
		w.findLocalNew(child, variable, add)
	}
}

// follow resolves a callee and recurses into it, ascending the parent chain
// when the method is inherited. Unresolvable classes stop the traversal.
func (w *walker) follow(class, method string) {
	if class == "" || method == "" {
		return
	}
	seen := map[string]bool{}
	for class != "" && !seen[strings.ToLower(class)] {
		seen[strings.ToLower(class)] = true
		cd, ok := w.a.index.Lookup(class)
		if !ok {
			return
		}
		if md := cd.Method(method); md != nil {
			w.a.collect(md, w.visited, w.chain, w.out)
			return
		}
		env := resolver.Environment{Namespace: cd.Namespace, Imports: cd.Imports}
		class = w.a.res.Resolve(cd.Parent, env)
	}
}

func (w *walker) record(canonical string) {
	w.out.Add(canonical, w.chain)
}

func (w *walker) content(node *sitter.Node) string {
	return node.Content(w.m.Source)
}

// namedTypeNames flattens a type expression to its named members, dropping
// scalar primitives that cannot receive a method call.
func namedTypeNames(t resolver.TypeExpr) []string {
	switch t.Kind {
	case resolver.Named:
		if strings.Contains(t.Name, "\\") || !isScalarName(t.Name) {
			return []string{t.Name}
		}
		return nil
	case resolver.Nullable:
		return namedTypeNames(t.Elems[0])
	case resolver.Union, resolver.Intersection:
		var out []string
		for _, elem := range t.Elems {
			out = append(out, namedTypeNames(elem)...)
		}
		return out
	}
	return nil
}

func isScalarName(name string) bool {
	switch strings.ToLower(name) {
	case "int", "float", "string", "bool", "array", "iterable", "callable", "null", "false", "true", "mixed", "void", "never", "object":
		return true
	}
	return false
}
