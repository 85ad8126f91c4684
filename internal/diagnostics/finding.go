// Package diagnostics provides consistency checking and repair for shipment
// documents: it cross-references the record store, the blob store, and the
// client directory, reports findings, and applies the safe fixes.
package diagnostics

// Severity classifies how serious a finding is.
type Severity string

// Severity constants.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding kinds, in scan report order.
const (
	KindDanglingFile       = "dangling-file"
	KindOrphanedBlob       = "orphaned-blob"
	KindMissingField       = "missing-field"
	KindDanglingClient     = "dangling-client"
	KindDuplicateBol       = "duplicate-bol"
	KindOrphanedDerivative = "orphaned-derivative"
)

// Finding is a single consistency problem discovered by a scan.
type Finding struct {
	Severity Severity       `json:"severity"`
	Kind     string         `json:"kind"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`

	// Fixable reports whether Cleanup or Repair can resolve the finding
	// automatically.
	Fixable bool `json:"fixable"`
}

// CleanupReport aggregates what a cleanup pass removed. Per-item failures
// are logged and counted, never fatal.
type CleanupReport struct {
	OrphanedBlobsRemoved       int `json:"orphaned_blobs_removed"`
	DuplicateBolsRemoved       int `json:"duplicate_bols_removed"`
	OrphanedDerivativesRemoved int `json:"orphaned_derivatives_removed"`
	Failures                   int `json:"failures"`
}

// RepairResult reports the outcome of a dangling-file repair attempt.
type RepairResult struct {
	Repaired bool   `json:"repaired"`
	FileID   string `json:"file_id,omitempty"`

	// Source names where the replacement blob was found: "candidate",
	// "bucket", or "legacy".
	Source string `json:"source,omitempty"`
}
