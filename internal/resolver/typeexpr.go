package resolver

import "strings"

// TypeKind tags the variants of a parsed type expression.
type TypeKind int

const (
	Named TypeKind = iota
	Nullable
	Union
	Intersection
	SelfType
	StaticType
	ParentType
	VoidType
	MixedType
)

// TypeExpr is a parsed PHP type expression. Name is set for Named, Elems for
// Nullable (one element), Union and Intersection.
type TypeExpr struct {
	Kind  TypeKind
	Name  string
	Elems []TypeExpr
}

// ParseType parses a raw type expression as written in source. ok is false
// for an absent type. Nested DNF shapes (unions inside intersections) are out
// of scope and parse best-effort as flat lists.
func ParseType(raw string) (TypeExpr, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TypeExpr{}, false
	}
	if strings.HasPrefix(raw, "?") {
		inner, ok := ParseType(raw[1:])
		if !ok {
			return TypeExpr{}, false
		}
		return TypeExpr{Kind: Nullable, Elems: []TypeExpr{inner}}, true
	}
	if strings.Contains(raw, "|") {
		return parseList(raw, "|", Union)
	}
	if strings.Contains(raw, "&") {
		return parseList(raw, "&", Intersection)
	}
	switch lower(raw) {
	case "self":
		return TypeExpr{Kind: SelfType}, true
	case "static":
		return TypeExpr{Kind: StaticType}, true
	case "parent":
		return TypeExpr{Kind: ParentType}, true
	case "void":
		return TypeExpr{Kind: VoidType}, true
	case "mixed":
		return TypeExpr{Kind: MixedType}, true
	}
	return TypeExpr{Kind: Named, Name: raw}, true
}

func parseList(raw, sep string, kind TypeKind) (TypeExpr, bool) {
	var elems []TypeExpr
	for _, part := range strings.Split(raw, sep) {
		part = strings.Trim(strings.TrimSpace(part), "()")
		if part == "" {
			continue
		}
		if elem, ok := ParseType(part); ok {
			elems = append(elems, elem)
		}
	}
	if len(elems) == 0 {
		return TypeExpr{}, false
	}
	if len(elems) == 1 {
		return elems[0], true
	}
	return TypeExpr{Kind: kind, Elems: elems}, true
}

// phpPrimitives are compared by identity, never nominally.
var phpPrimitives = map[string]bool{
	"int": true, "float": true, "string": true, "bool": true,
	"array": true, "iterable": true, "callable": true, "object": true,
	"null": true, "true": true, "false": true, "never": true,
}

// Assignable reports whether a value of the impl type is acceptable wherever
// the contract type is expected (impl <: contract). Each side is interpreted
// in its own environment; self/static normalize to the declaring class and
// parent to its immediate ancestor. Unresolvable names fail closed.
func (r *Resolver) Assignable(impl, contract TypeExpr, implEnv, contractEnv Environment) bool {
	impl = r.normalize(impl, implEnv)
	contract = r.normalize(contract, contractEnv)

	// mixed is the top type.
	if contract.Kind == MixedType {
		return true
	}
	if impl.Kind == MixedType {
		return false
	}
	if impl.Kind == VoidType || contract.Kind == VoidType {
		return impl.Kind == VoidType && contract.Kind == VoidType
	}

	// A union is a subtype of the target iff every member is.
	if impl.Kind == Union {
		for _, elem := range impl.Elems {
			if !r.Assignable(elem, contract, implEnv, contractEnv) {
				return false
			}
		}
		return true
	}
	// An intersection satisfies the target if any member does.
	if impl.Kind == Intersection {
		for _, elem := range impl.Elems {
			if r.Assignable(elem, contract, implEnv, contractEnv) {
				return true
			}
		}
		return false
	}
	if contract.Kind == Union {
		for _, elem := range contract.Elems {
			if r.Assignable(impl, elem, implEnv, contractEnv) {
				return true
			}
		}
		return false
	}
	if contract.Kind == Intersection {
		for _, elem := range contract.Elems {
			if !r.Assignable(impl, elem, implEnv, contractEnv) {
				return false
			}
		}
		return true
	}

	if impl.Kind != Named || contract.Kind != Named {
		return false
	}
	return r.namedAssignable(impl.Name, contract.Name, implEnv, contractEnv)
}

func (r *Resolver) namedAssignable(impl, contract string, implEnv, contractEnv Environment) bool {
	implPrim := phpPrimitives[lower(impl)]
	contractPrim := phpPrimitives[lower(contract)]

	if contractPrim {
		if strings.EqualFold(impl, contract) {
			return true
		}
		// Any class instance satisfies object; arrays satisfy iterable.
		if lower(contract) == "object" && !implPrim {
			return true
		}
		if lower(contract) == "iterable" && lower(impl) == "array" {
			return true
		}
		return false
	}
	if implPrim {
		return false
	}

	implC := r.Resolve(impl, implEnv)
	contractC := r.Resolve(contract, contractEnv)
	if strings.EqualFold(implC, contractC) {
		return true
	}
	return r.IsSubtypeOf(implC, []string{contractC})
}

// normalize rewrites nullable to a union with null and the relative class
// types to the declaring class identity.
func (r *Resolver) normalize(t TypeExpr, env Environment) TypeExpr {
	switch t.Kind {
	case Nullable:
		return TypeExpr{Kind: Union, Elems: []TypeExpr{
			r.normalize(t.Elems[0], env),
			{Kind: Named, Name: "null"},
		}}
	case SelfType, StaticType:
		return TypeExpr{Kind: Named, Name: env.Class}
	case ParentType:
		return TypeExpr{Kind: Named, Name: env.Parent}
	case Union, Intersection:
		elems := make([]TypeExpr, len(t.Elems))
		for i, elem := range t.Elems {
			elems[i] = r.normalize(elem, env)
		}
		return TypeExpr{Kind: t.Kind, Elems: elems}
	}
	return t
}
