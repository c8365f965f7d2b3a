package rules

import (
	"fmt"
	"strings"

	"github.com/tivins/php-solid/internal/extractor"
	"github.com/tivins/php-solid/internal/resolver"
)

// DefaultFatInterfaceThreshold is the method count above which an interface
// is considered fat.
const DefaultFatInterfaceThreshold = 5

// FatInterfaceRule flags interfaces exposing more methods than the threshold.
// The count is the full surface an implementer must absorb: the interface's
// own declarations plus everything inherited through extends chains,
// deduplicated by name. The violation belongs to the interface, so it is
// emitted at most once per run no matter how many implementers are checked.
type FatInterfaceRule struct {
	index     resolver.Index
	res       *resolver.Resolver
	threshold int
	reported  map[string]bool
}

func NewFatInterfaceRule(index resolver.Index, res *resolver.Resolver, threshold int) *FatInterfaceRule {
	if threshold < 1 {
		threshold = DefaultFatInterfaceThreshold
	}
	return &FatInterfaceRule{index: index, res: res, threshold: threshold, reported: map[string]bool{}}
}

func (r *FatInterfaceRule) Name() string { return "fat-interface" }

func (r *FatInterfaceRule) Check(class, iface *extractor.ClassDescriptor) []IspViolation {
	count := r.methodCount(iface)
	if count <= r.threshold {
		return nil
	}
	key := strings.ToLower(iface.Name)
	if r.reported[key] {
		return nil
	}
	r.reported[key] = true
	return []IspViolation{{
		Class:     class.Name,
		Interface: iface.Name,
		Reason: fmt.Sprintf("interface exposes %d methods, exceeding the threshold of %d",
			count, r.threshold),
	}}
}

// methodCount counts the distinct method names declared by the interface and
// its resolvable ancestors. A seen guard bounds malformed extends cycles.
func (r *FatInterfaceRule) methodCount(iface *extractor.ClassDescriptor) int {
	names := map[string]bool{}
	visited := map[string]bool{}

	var visit func(c *extractor.ClassDescriptor)
	visit = func(c *extractor.ClassDescriptor) {
		key := strings.ToLower(c.Name)
		if visited[key] {
			return
		}
		visited[key] = true
		for _, m := range c.Methods {
			names[strings.ToLower(m.Name)] = true
		}
		env := r.res.EnvOf(c)
		for _, raw := range c.Interfaces {
			if parent, ok := r.index.Lookup(r.res.Resolve(raw, env)); ok && parent.Kind == extractor.KindInterface {
				visit(parent)
			}
		}
	}
	visit(iface)
	return len(names)
}
