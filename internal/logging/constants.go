package logging

// Field names shared by every component so that audit runs can be filtered
// consistently regardless of the output format.
const (
	FieldFile        = "file_path"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldDocument    = "document"
	FieldFormat      = "format"
	FieldStrategy    = "strategy"
	FieldModel       = "model"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldLineNumber  = "line_number"
	FieldAmount      = "amount"
	FieldRule        = "rule"
	FieldReason      = "reason"
	FieldClause      = "clause_reference"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldPages       = "pages"
	FieldChars       = "chars"
)
