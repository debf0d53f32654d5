package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Editor fields.
	FieldFileType = "filetype"
	FieldLines    = "lines"
	FieldBytes    = "bytes"
	FieldRow      = "row"
	FieldColumn   = "column"
	FieldQuery    = "query"
	FieldKey      = "key"
	FieldDirty    = "dirty"
	FieldBackup   = "backup"
	FieldRows     = "rows"
	FieldCols     = "cols"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
