package models

// DiffOperation defines the type of change.
type DiffOperation int

const (
	// DiffEqual indicates an unchanged segment.
	DiffEqual DiffOperation = 0
	// DiffInsert indicates an inserted segment.
	DiffInsert DiffOperation = 1
	// DiffDelete indicates a deleted segment.
	DiffDelete DiffOperation = -1
)

// String returns a human-readable tag for the operation.
func (op DiffOperation) String() string {
	switch op {
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "equal"
	}
}

// TextDiff represents a single operation of an edit script: a contiguous
// span of text tagged as equal, inserted or deleted.
type TextDiff struct {
	Operation DiffOperation `json:"operation"`
	Text      string        `json:"text"`
}

// DiffStats holds aggregate information about an edit script.
type DiffStats struct {
	CharsInserted int  `json:"chars_inserted"`
	CharsDeleted  int  `json:"chars_deleted"`
	IsIdentical   bool `json:"is_identical"`
}
