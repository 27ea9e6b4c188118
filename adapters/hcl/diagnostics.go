package hcl

import (
	stderrors "errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"sparkyestimate/internal/errors"
)

// diagnosticsError turns error diagnostics into one parsing error.
// Each problem keeps its file and line.
func diagnosticsError(filename string, diags hcl.Diagnostics) error {
	var problems []error
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		problems = append(problems, fmt.Errorf("%s:%d: %s", filename, line, msg))
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.Parsing(fmt.Sprintf("failed to parse %s", filename), stderrors.Join(problems...)).
		WithContext("file", filename).
		WithContext("problems", len(problems))
}

// errorDiag builds a diagnostic for a semantic problem in a block
func errorDiag(summary, detail string, subject hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject.Ptr(),
	}
}
