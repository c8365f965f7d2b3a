package analyzer

import (
	"github.com/tivins/php-solid/internal/extractor"
	"github.com/tivins/php-solid/internal/rules"
)

// ClassError records a class that failed to load during a project run. It is
// excluded from the violation list but counted as failed.
type ClassError struct {
	Class string
	Err   error
}

// Result aggregates one sequential project run.
type Result struct {
	Lsp            []rules.LspViolation
	Isp            []rules.IspViolation
	Errors         []ClassError
	ClassesChecked int
}

// CheckProject runs both principles over every class in order. One bad class
// never aborts the rest of the run.
func (a *Analyzer) CheckProject(classes []*extractor.ClassDescriptor) *Result {
	result := &Result{}
	for _, cd := range classes {
		// Interfaces and traits are contracts, not implementers.
		if cd.Kind != extractor.KindClass && cd.Kind != extractor.KindEnum {
			continue
		}
		result.ClassesChecked++

		lsp, err := a.CheckLsp(cd.Name)
		if err != nil {
			result.Errors = append(result.Errors, ClassError{Class: cd.Name, Err: err})
			continue
		}
		isp, err := a.CheckIsp(cd.Name)
		if err != nil {
			result.Errors = append(result.Errors, ClassError{Class: cd.Name, Err: err})
			continue
		}
		result.Lsp = append(result.Lsp, lsp...)
		result.Isp = append(result.Isp, isp...)
	}
	return result
}
