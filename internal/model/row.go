package model

// SourceRow is a schema-agnostic decoded spreadsheet row, keyed by the
// cleaned header names of the source sheet.
type SourceRow map[string]interface{}

// TargetRow maps target field keys to their final values.
type TargetRow map[string]interface{}

// Clone returns a shallow copy of the row.
func (r TargetRow) Clone() TargetRow {
	out := make(TargetRow, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Sheet is the decoder's output for one worksheet: the cleaned column
// headers in source order plus one SourceRow per data row.
type Sheet struct {
	Name    string      `json:"name"`
	Columns []string    `json:"columns"`
	Rows    []SourceRow `json:"rows"`
}

// ImportMode selects what happens to previously stored rows on commit.
type ImportMode string

const (
	ModeAppend    ImportMode = "append"
	ModeOverwrite ImportMode = "overwrite"
)

// ImportBatch is the working set of one import run. It is owned by the
// coordinator from pipeline start until commit or cancellation.
type ImportBatch struct {
	ID        string      `json:"id"`
	EntityKey string      `json:"entityKey"`
	Mode      ImportMode  `json:"mode"`
	Signature string      `json:"signature"`
	Rows      []TargetRow `json:"rows"`
}

// Event is the observable side effect of a committed import.
type Event struct {
	Type  string `json:"type"`
	Count int    `json:"count,omitempty"`
}

const (
	// EventInsert carries the number of rows written on a successful commit.
	EventInsert = "insert"
	// EventChange is the payload-free "data changed" signal dependent views
	// refresh on.
	EventChange = "change"
)
