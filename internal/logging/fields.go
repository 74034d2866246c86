// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

// Structured log field keys.
const (
	FieldURL        = "url"
	FieldKind       = "kind"
	FieldSection    = "section"
	FieldStatusCode = "status_code"
	FieldAttempt    = "attempt"
	FieldWait       = "wait"
	FieldTeams      = "teams"
	FieldFacts      = "facts"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)
