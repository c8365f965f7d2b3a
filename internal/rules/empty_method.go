package rules

import (
	"fmt"

	"github.com/tivins/php-solid/internal/extractor"
)

// EmptyMethodRule flags interface methods the class implements as hollow
// stubs: an empty body, a lone not-supported throw, or a lone bare/null
// return. Such implementations signal the class was forced to absorb
// interface members it has no use for.
type EmptyMethodRule struct{}

func NewEmptyMethodRule() *EmptyMethodRule { return &EmptyMethodRule{} }

func (r *EmptyMethodRule) Name() string { return "empty-method" }

func (r *EmptyMethodRule) Check(class, iface *extractor.ClassDescriptor) []IspViolation {
	var out []IspViolation
	for _, im := range iface.Methods {
		md := class.Method(im.Name)
		if md == nil || md.IsAbstract || md.Body == nil {
			continue
		}
		if reason := stubReason(md); reason != "" {
			out = append(out, IspViolation{
				Class:     class.Name,
				Interface: iface.Name,
				Reason:    fmt.Sprintf("method %s is a stub implementation: %s", md.Name, reason),
				Details:   fmt.Sprintf("%s:%d", md.Class.File, md.StartLine),
			})
		}
	}
	return out
}

func stubReason(md *extractor.MethodDescriptor) string {
	stmts := statements(md)
	if len(stmts) == 0 {
		return "empty body"
	}
	if len(stmts) != 1 {
		return ""
	}
	if exc := throwOnlyException(stmts[0], md.Source); exc != "" && isNotSupportedException(exc) {
		return fmt.Sprintf("only throws %s", exc)
	}
	switch returnedLiteral(stmts[0], md.Source) {
	case "void":
		return "only contains return;"
	case "null":
		return "only returns null"
	}
	return ""
}
