package logging

// Field names for structured log lines.
const (
	FieldError = "error"
	FieldPath  = "path"
	FieldDir   = "dir"
	FieldFiles = "files"
	FieldJobs  = "jobs"
	FieldMode  = "mode"

	FieldLiterals    = "literals"
	FieldDiagnostics = "diagnostics"
	FieldBytes       = "bytes"
	FieldHash        = "hash"
	FieldCache       = "cache"
	FieldElapsed     = "elapsed"
	FieldConfig      = "config"
)
