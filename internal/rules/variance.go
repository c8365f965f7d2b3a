package rules

import (
	"fmt"

	"github.com/tivins/php-solid/internal/extractor"
	"github.com/tivins/php-solid/internal/resolver"
)

// ReturnTypeCovarianceRule requires the implementation's return type to be a
// subtype of (or equal to) the contract's. An absent type on either side is
// treated as universally compatible.
type ReturnTypeCovarianceRule struct {
	res *resolver.Resolver
}

func NewReturnTypeCovarianceRule(res *resolver.Resolver) *ReturnTypeCovarianceRule {
	return &ReturnTypeCovarianceRule{res: res}
}

func (r *ReturnTypeCovarianceRule) Name() string { return "return-covariance" }

func (r *ReturnTypeCovarianceRule) Check(impl, contract *extractor.MethodDescriptor) []LspViolation {
	implType, ok := resolver.ParseType(impl.ReturnType)
	if !ok {
		return nil
	}
	contractType, ok := resolver.ParseType(contract.ReturnType)
	if !ok {
		return nil
	}

	implEnv := r.res.EnvOf(impl.Class)
	contractEnv := r.res.EnvOf(contract.Class)
	if r.res.Assignable(implType, contractType, implEnv, contractEnv) {
		return nil
	}
	return []LspViolation{{
		Class:    impl.Class.Name,
		Method:   impl.Name,
		Contract: contract.Class.Name,
		Reason: fmt.Sprintf("return type %s is not covariant with contract return type %s",
			impl.ReturnType, contract.ReturnType),
	}}
}

// ParameterTypeContravarianceRule requires that, for each shared positional
// parameter, the contract's type is a subtype of the implementation's: an
// implementation may widen what it accepts, never narrow it. A parameter left
// untyped on either side is skipped, mirroring the return-type relaxation.
type ParameterTypeContravarianceRule struct {
	res *resolver.Resolver
}

func NewParameterTypeContravarianceRule(res *resolver.Resolver) *ParameterTypeContravarianceRule {
	return &ParameterTypeContravarianceRule{res: res}
}

func (r *ParameterTypeContravarianceRule) Name() string { return "parameter-contravariance" }

func (r *ParameterTypeContravarianceRule) Check(impl, contract *extractor.MethodDescriptor) []LspViolation {
	implEnv := r.res.EnvOf(impl.Class)
	contractEnv := r.res.EnvOf(contract.Class)

	shared := len(impl.Params)
	if len(contract.Params) < shared {
		shared = len(contract.Params)
	}

	var out []LspViolation
	for i := 0; i < shared; i++ {
		implType, ok := resolver.ParseType(impl.Params[i].Type)
		if !ok {
			continue
		}
		contractType, ok := resolver.ParseType(contract.Params[i].Type)
		if !ok {
			continue
		}
		// Direction is reversed relative to returns: contract <: impl.
		if r.res.Assignable(contractType, implType, contractEnv, implEnv) {
			continue
		}
		out = append(out, LspViolation{
			Class:    impl.Class.Name,
			Method:   impl.Name,
			Contract: contract.Class.Name,
			Reason: fmt.Sprintf("parameter %s type %s is narrower than contract type %s",
				impl.Params[i].Name, impl.Params[i].Type, contract.Params[i].Type),
			Details: fmt.Sprintf("position %d", i+1),
		})
	}
	return out
}
