package rules

import "github.com/tivins/php-solid/internal/extractor"

// LspViolation reports a method implementation deviating from its contract.
type LspViolation struct {
	Class    string `json:"class"`
	Method   string `json:"method"`
	Contract string `json:"contract"`
	Reason   string `json:"reason"`
	Details  string `json:"details,omitempty"`
}

// IspViolation reports a class/interface pairing that hints at a segregation
// problem.
type IspViolation struct {
	Class     string `json:"class"`
	Interface string `json:"interface"`
	Reason    string `json:"reason"`
	Details   string `json:"details,omitempty"`
}

// LspRule checks one implementing method against one contract method.
type LspRule interface {
	Name() string
	Check(impl, contract *extractor.MethodDescriptor) []LspViolation
}

// IspRule checks one class against one of its implemented interfaces. The
// orchestrator runs each rule once per (class, interface) pair.
type IspRule interface {
	Name() string
	Check(class, iface *extractor.ClassDescriptor) []IspViolation
}
