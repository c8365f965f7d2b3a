package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tivins/php-solid/internal/extractor"
	"github.com/tivins/php-solid/internal/resolver"
	"github.com/tivins/php-solid/internal/rules"
	"github.com/tivins/php-solid/internal/throws"
)

// ErrClassNotFound marks a class that could not be loaded from the index.
// The runner reports it as an error entry, never as a violation.
var ErrClassNotFound = errors.New("class not found")

// Options tunes one analysis run.
type Options struct {
	FatInterfaceThreshold int
}

// Analyzer is one analysis session: it owns the resolver, the throws
// analyzer and the rule sets, including their per-run state such as the
// fat-interface dedup set.
type Analyzer struct {
	index    resolver.Index
	res      *resolver.Resolver
	lspRules []rules.LspRule
	ispRules []rules.IspRule
}

// New wires the default rule sets over the given class index.
func New(index resolver.Index, opts Options) *Analyzer {
	res := resolver.New(index)
	actual := throws.NewAnalyzer(index, res)
	return &Analyzer{
		index: index,
		res:   res,
		lspRules: []rules.LspRule{
			rules.NewThrowsContractRule(res, actual),
			rules.NewReturnTypeCovarianceRule(res),
			rules.NewParameterTypeContravarianceRule(res),
		},
		ispRules: []rules.IspRule{
			rules.NewEmptyMethodRule(),
			rules.NewFatInterfaceRule(index, res, opts.FatInterfaceThreshold),
			rules.NewIncompleteImplementationRule(),
		},
	}
}

// CheckLsp runs every LSP rule over each method the class itself defines
// that also exists on an implemented interface or an ancestor class. Methods
// merely inherited unchanged never appear in the class's own declaration
// list, so they are skipped by construction.
func (a *Analyzer) CheckLsp(className string) ([]rules.LspViolation, error) {
	cd, err := a.load(className)
	if err != nil {
		return nil, err
	}

	contracts := a.contractsOf(cd)
	var out []rules.LspViolation
	for _, method := range cd.Methods {
		for _, contract := range contracts {
			cm := contract.Method(method.Name)
			if cm == nil {
				continue
			}
			for _, rule := range a.lspRules {
				out = append(out, rule.Check(method, cm)...)
			}
		}
	}
	return out, nil
}

// CheckIsp runs every ISP rule once per (class, implemented interface) pair.
// Interfaces missing from the index are skipped conservatively.
func (a *Analyzer) CheckIsp(className string) ([]rules.IspViolation, error) {
	cd, err := a.load(className)
	if err != nil {
		return nil, err
	}

	env := a.res.EnvOf(cd)
	var out []rules.IspViolation
	for _, raw := range cd.Interfaces {
		iface, ok := a.index.Lookup(a.res.Resolve(raw, env))
		if !ok || iface.Kind != extractor.KindInterface {
			continue
		}
		for _, rule := range a.ispRules {
			out = append(out, rule.Check(cd, iface)...)
		}
	}
	return out, nil
}

func (a *Analyzer) load(className string) (*extractor.ClassDescriptor, error) {
	cd, ok := a.index.Lookup(extractor.Canonical(className))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, className)
	}
	return cd, nil
}

// contractsOf collects every declaration the class must honor: all
// implemented interfaces (following interface extends chains) and all
// ancestor classes. Cycles in malformed hierarchies are guarded by a seen
// set.
func (a *Analyzer) contractsOf(cd *extractor.ClassDescriptor) []*extractor.ClassDescriptor {
	var out []*extractor.ClassDescriptor
	seen := map[string]bool{strings.ToLower(cd.Name): true}

	var visit func(c *extractor.ClassDescriptor, includeSelf bool)
	visit = func(c *extractor.ClassDescriptor, includeSelf bool) {
		key := strings.ToLower(c.Name)
		if includeSelf {
			if seen[key] {
				return
			}
			seen[key] = true
			out = append(out, c)
		}
		env := a.res.EnvOf(c)
		for _, raw := range c.Interfaces {
			if iface, ok := a.index.Lookup(a.res.Resolve(raw, env)); ok {
				visit(iface, true)
			}
		}
		if c.Parent != "" {
			if parent, ok := a.index.Lookup(env.Parent); ok {
				visit(parent, true)
			}
		}
	}
	visit(cd, false)
	return out
}
