package resolver

import (
	"strings"

	"github.com/tivins/php-solid/internal/extractor"
)

// Index resolves canonical class names to their descriptors. It is satisfied
// by the crawler's project index.
type Index interface {
	Lookup(name string) (*extractor.ClassDescriptor, bool)
}

// Environment is the naming context a type name is resolved in: the enclosing
// namespace, the file's import table, and the declaring class for
// self/static/parent normalization.
type Environment struct {
	Namespace string
	Imports   map[string]string
	Class     string // canonical declaring class, "" outside a class
	Parent    string // canonical immediate ancestor, "" if none
}

// Resolver canonicalizes PHP type names and answers nominal subtype queries
// against the static class index plus the builtin exception hierarchy.
type Resolver struct {
	index Index
}

func New(index Index) *Resolver {
	return &Resolver{index: index}
}

// EnvOf builds the resolution environment of a class declaration.
func (r *Resolver) EnvOf(c *extractor.ClassDescriptor) Environment {
	env := Environment{
		Namespace: c.Namespace,
		Imports:   c.Imports,
		Class:     c.Name,
	}
	if c.Parent != "" {
		env.Parent = r.Resolve(c.Parent, env)
	}
	return env
}

// Resolve maps a name as written in source to its canonical identity:
// rooted or qualified names are canonical as-is, then import aliases, then
// the current namespace when the index knows a type there, then the global
// namespace as fallback.
func (r *Resolver) Resolve(name string, env Environment) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "\\") {
		return extractor.Canonical(name)
	}
	if strings.Contains(name, "\\") {
		return name
	}
	if target, ok := env.Imports[lower(name)]; ok {
		return target
	}
	if env.Namespace != "" {
		candidate := extractor.Join(env.Namespace, name)
		if _, ok := r.index.Lookup(candidate); ok {
			return candidate
		}
	}
	return name
}

// IsSubtypeOf reports whether the canonical candidate equals, or nominally
// descends from, at least one member of the allowed set. An empty allowed set
// admits nothing; an unresolvable candidate stays where it is in the walk, so
// unknown hierarchies fail closed.
func (r *Resolver) IsSubtypeOf(candidate string, allowed []string) bool {
	if candidate == "" || len(allowed) == 0 {
		return false
	}

	visited := map[string]bool{}
	queue := []string{candidate}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		key := lower(current)
		if visited[key] {
			continue
		}
		visited[key] = true

		for _, a := range allowed {
			if strings.EqualFold(current, a) {
				return true
			}
		}

		if cd, ok := r.index.Lookup(current); ok {
			env := Environment{Namespace: cd.Namespace, Imports: cd.Imports}
			if cd.Parent != "" {
				queue = append(queue, r.Resolve(cd.Parent, env))
			}
			for _, iface := range cd.Interfaces {
				queue = append(queue, r.Resolve(iface, env))
			}
		} else if parent, ok := builtinParent(current); ok {
			queue = append(queue, parent)
		}
	}
	return false
}

// ResolveAll canonicalizes a list of raw names, preserving order and
// deduplicating case-insensitively.
func (r *Resolver) ResolveAll(names []string, env Environment) []string {
	var out []string
	seen := map[string]bool{}
	for _, name := range names {
		resolved := r.Resolve(name, env)
		if resolved == "" || seen[lower(resolved)] {
			continue
		}
		seen[lower(resolved)] = true
		out = append(out, resolved)
	}
	return out
}

func lower(s string) string {
	return strings.ToLower(s)
}
