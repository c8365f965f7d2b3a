package rules

import (
	"fmt"
	"regexp"

	"github.com/tivins/php-solid/internal/extractor"
)

var incompleteMarker = regexp.MustCompile(`(?i)\b(TODO|FIXME|XXX|HACK)\b|Implement\s+\w+\(\)\s*method`)

// IncompleteImplementationRule flags a method that carries an incompleteness
// marker AND whose body is nothing but a trivial constant return. Either
// signal alone is too noisy; together they identify a faked-out interface
// member.
type IncompleteImplementationRule struct{}

func NewIncompleteImplementationRule() *IncompleteImplementationRule {
	return &IncompleteImplementationRule{}
}

func (r *IncompleteImplementationRule) Name() string { return "incomplete-implementation" }

func (r *IncompleteImplementationRule) Check(class, iface *extractor.ClassDescriptor) []IspViolation {
	var out []IspViolation
	for _, im := range iface.Methods {
		md := class.Method(im.Name)
		if md == nil || md.Body == nil {
			continue
		}
		if !incompleteMarker.MatchString(methodSource(md)) {
			continue
		}
		stmts := statements(md)
		if len(stmts) != 1 || !trivialConstants[returnedLiteral(stmts[0], md.Source)] {
			continue
		}
		out = append(out, IspViolation{
			Class:     class.Name,
			Interface: iface.Name,
			Reason:    fmt.Sprintf("method %s is marked incomplete and only returns a constant", md.Name),
			Details:   fmt.Sprintf("%s:%d", md.Class.File, md.StartLine),
		})
	}
	return out
}

// methodSource is the method text including its doc comment, where stub
// markers usually live.
func methodSource(md *extractor.MethodDescriptor) string {
	return md.Doc + "\n" + md.Node.Content(md.Source)
}
