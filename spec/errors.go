package spec

import "fmt"

// MalformedError reports a structurally malformed input: not valid YAML,
// or not a mapping where one is required. It is fatal; no partial
// interpretation of the document is meaningful, so validation never runs.
type MalformedError struct {
	// Where locates the problem ("document", "services", "services.user", ...).
	Where string

	// Line is the 1-based source line, 0 if unknown.
	Line int

	Message string
}

func (e *MalformedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed spec at %s (line %d): %s", e.Where, e.Line, e.Message)
	}
	return fmt.Sprintf("malformed spec at %s: %s", e.Where, e.Message)
}

// Error is a single validation violation. Validation collects every
// violation found (not just the first) into one report.
type Error struct {
	// Code is a stable machine-readable identifier, e.g. "unknown_runtime".
	Code string

	// Where locates the violation: "project", "service order",
	// "service user entity Profile field age", ...
	Where string

	Message string
}

func (e *Error) Error() string {
	return e.Where + ": " + e.Message
}
