// Package checker implements the type checker (§4.1): name resolution
// against a declaration environment, unification-based overload
// resolution, comprehension typing, and issue collection. Checking never
// stops at the first problem — it annotates the offending node with dyn
// and keeps going, so a single Check call surfaces every problem in one
// pass (§4.1 "Failure semantics").
package checker

import "fmt"

// Severity classifies an Issue (§4.1).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityDeprecated
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityDeprecated:
		return "deprecated"
	default:
		return "unknown"
	}
}

// Issue is one diagnostic produced while checking an expression. Path is
// a best-effort dotted select-chain (e.g. "request.auth.claims") leading
// to the offending node, when the node sits inside one; parsing and
// source positions are out of scope, but this gives a host enough to
// render a legible diagnostic without a source map. It is empty when the
// node isn't part of a chain (a call's argument type mismatch, say).
type Issue struct {
	Severity Severity
	Message  string
	ExprID   int64
	Path     string
}

func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %s (id=%d)", i.Severity, i.Message, i.ExprID)
	}
	return fmt.Sprintf("%s: %s (id=%d, path=%s)", i.Severity, i.Message, i.ExprID, i.Path)
}

func newIssue(id int64, sev Severity, format string, args ...interface{}) Issue {
	return Issue{Severity: sev, Message: fmt.Sprintf(format, args...), ExprID: id}
}

func newIssueAt(id int64, path string, sev Severity, format string, args ...interface{}) Issue {
	return Issue{Severity: sev, Message: fmt.Sprintf(format, args...), ExprID: id, Path: path}
}
