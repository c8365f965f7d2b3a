package rules

import (
	"fmt"
	"strings"

	"github.com/tivins/php-solid/internal/extractor"
	"github.com/tivins/php-solid/internal/resolver"
	"github.com/tivins/php-solid/internal/throws"
)

// ThrowsContractRule verifies that an implementation neither documents nor
// actually propagates exception types outside the contract's declared set.
// An empty contract set is the strictest contract: any throw violates it.
// A thrown strict subclass of an allowed type is compatible.
type ThrowsContractRule struct {
	res    *resolver.Resolver
	actual *throws.Analyzer
}

func NewThrowsContractRule(res *resolver.Resolver, actual *throws.Analyzer) *ThrowsContractRule {
	return &ThrowsContractRule{res: res, actual: actual}
}

func (r *ThrowsContractRule) Name() string { return "throws-contract" }

func (r *ThrowsContractRule) Check(impl, contract *extractor.MethodDescriptor) []LspViolation {
	contractEnv := r.res.EnvOf(contract.Class)
	implEnv := r.res.EnvOf(impl.Class)
	allowed := r.res.ResolveAll(throws.Declared(contract.Doc), contractEnv)

	var out []LspViolation
	emit := func(exc, origin, details string) {
		reason := fmt.Sprintf("throws %s which contract %s does not declare (%s)", exc, contract.Class.Name, origin)
		if len(allowed) == 0 {
			reason = fmt.Sprintf("throws %s but contract %s declares no exception (%s)", exc, contract.Class.Name, origin)
		}
		out = append(out, LspViolation{
			Class:    impl.Class.Name,
			Method:   impl.Name,
			Contract: contract.Class.Name,
			Reason:   reason,
			Details:  details,
		})
	}

	for _, exc := range r.res.ResolveAll(throws.Declared(impl.Doc), implEnv) {
		if !r.res.IsSubtypeOf(exc, allowed) {
			emit(exc, "docblock", "")
		}
	}

	actual := r.actual.Throws(impl)
	for _, exc := range actual.Values() {
		if r.res.IsSubtypeOf(exc, allowed) {
			continue
		}
		details := ""
		if chain := actual.Chain(exc); len(chain) > 1 {
			details = "via " + strings.Join(chain, " -> ")
		}
		emit(exc, "code (AST)", details)
	}
	return out
}
