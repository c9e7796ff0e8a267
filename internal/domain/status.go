package domain

import "strings"

// AnalysisStatus is the lifecycle state of a bookshelf analysis session.
// It is a closed enumeration; the display label is derived, never stored
// as a free string.
type AnalysisStatus string

// Analysis session lifecycle states.
const (
	StatusPending    AnalysisStatus = "Pending"
	StatusProcessing AnalysisStatus = "Processing"
	StatusCompleted  AnalysisStatus = "Completed"
	StatusFailed     AnalysisStatus = "Failed"
)

// ParseAnalysisStatus converts a stored status value to an AnalysisStatus.
// Unknown values default to Pending so a session with corrupt status data
// still renders rather than erroring.
func ParseAnalysisStatus(s string) AnalysisStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "processing":
		return StatusProcessing
	case "completed":
		return StatusCompleted
	case "failed":
		return StatusFailed
	default:
		return StatusPending
	}
}

// Valid reports whether the status is one of the closed enumeration values.
func (s AnalysisStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the session has finished, successfully or not.
func (s AnalysisStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Display returns the human-readable label for the status.
func (s AnalysisStatus) Display() string {
	switch s {
	case StatusPending:
		return "Pending Analysis"
	case StatusProcessing:
		return "Processing"
	case StatusCompleted:
		return "Analysis Complete"
	case StatusFailed:
		return "Analysis Failed"
	default:
		return string(s)
	}
}
