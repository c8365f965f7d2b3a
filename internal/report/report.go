package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tivins/php-solid/internal/analyzer"
	"github.com/tivins/php-solid/internal/crawler"
	"github.com/tivins/php-solid/internal/rules"
)

// Report is the serializable outcome of one run.
type Report struct {
	Lsp            []rules.LspViolation `json:"lsp_violations"`
	Isp            []rules.IspViolation `json:"isp_violations"`
	Errors         []ClassError         `json:"errors,omitempty"`
	ClassesChecked int                  `json:"classes_checked"`
	FailedClasses  int                  `json:"failed_classes"`
}

// ClassError is a load or lookup failure, kept out of the violation counts.
type ClassError struct {
	Class   string `json:"class,omitempty"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

// FromResult converts a run result and the crawler's load errors into a
// report.
func FromResult(res *analyzer.Result, loadErrs []crawler.LoadError) *Report {
	r := &Report{
		Lsp:            res.Lsp,
		Isp:            res.Isp,
		ClassesChecked: res.ClassesChecked,
	}
	for _, le := range loadErrs {
		r.Errors = append(r.Errors, ClassError{File: le.Path, Message: le.Err.Error()})
	}
	for _, ce := range res.Errors {
		r.Errors = append(r.Errors, ClassError{Class: ce.Class, Message: ce.Err.Error()})
		r.FailedClasses++
	}
	return r
}

// Total is the number of violations, errors excluded.
func (r *Report) Total() int {
	return len(r.Lsp) + len(r.Isp)
}

// WriteJSON writes the report as one indented JSON document.
func WriteJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// WriteText writes a human-readable report.
func WriteText(w io.Writer, r *Report) error {
	if len(r.Lsp) > 0 {
		fmt.Fprintf(w, "LSP violations (%d):\n", len(r.Lsp))
		for _, v := range r.Lsp {
			fmt.Fprintf(w, "  %s::%s [contract %s]\n      %s\n", v.Class, v.Method, v.Contract, v.Reason)
			if v.Details != "" {
				fmt.Fprintf(w, "      %s\n", v.Details)
			}
		}
	}
	if len(r.Isp) > 0 {
		fmt.Fprintf(w, "ISP violations (%d):\n", len(r.Isp))
		for _, v := range r.Isp {
			fmt.Fprintf(w, "  %s [interface %s]\n      %s\n", v.Class, v.Interface, v.Reason)
			if v.Details != "" {
				fmt.Fprintf(w, "      %s\n", v.Details)
			}
		}
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "Errors (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			name := e.Class
			if name == "" {
				name = e.File
			}
			fmt.Fprintf(w, "  %s: %s\n", name, e.Message)
		}
	}
	fmt.Fprintf(w, "Checked %d classes: %d violations, %d failed.\n",
		r.ClassesChecked, r.Total(), r.FailedClasses)
	return nil
}
