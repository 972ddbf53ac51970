package domain

// ActionType classifies what the planner decided for one source file.
type ActionType string

const (
	// ActionCopy copies the file to its destination path.
	ActionCopy ActionType = "copy"

	// ActionMove moves the file to its destination path.
	ActionMove ActionType = "move"

	// ActionSkipIdentical leaves the file alone because a same-named file
	// of identical size already sits at the destination. Size equality is
	// a necessary-but-not-sufficient identity check; no content comparison
	// is performed.
	ActionSkipIdentical ActionType = "skip-identical"

	// ActionErrorDuplicate marks a filename that appears under more than
	// one top-level source subtree. Nothing is transferred for it.
	ActionErrorDuplicate ActionType = "error-duplicate-name"

	// ActionErrorAmbiguous marks a file whose archive date is owned by
	// more than one existing destination folder. Nothing is transferred.
	ActionErrorAmbiguous ActionType = "error-ambiguous-date-folder"
)

// IsError reports whether the action represents a planning error rather
// than a transfer or skip.
func (a ActionType) IsError() bool {
	return a == ActionErrorDuplicate || a == ActionErrorAmbiguous
}

// ArchiveDateFolder is a top-level destination folder owning one calendar
// date, named either YYYY-MM-DD or YYYY-MM-DD plus a separator and a
// human-added suffix. At most one may exist per date in a destination root.
type ArchiveDateFolder struct {
	Date   Date
	Suffix string

	// Name is the verbatim folder name, preserved when the folder already
	// exists so human renames survive re-ingestion.
	Name string

	// Exists reports whether the folder was found in the destination root
	// or is proposed for creation.
	Exists bool
}

// PlanEntry is one decided action for one source file, produced without
// performing any filesystem mutation.
type PlanEntry struct {
	File ManagedFile

	// Destination is the path of the file relative to the destination
	// root, using forward slashes. Empty for error actions.
	Destination string

	Action ActionType

	// Reason explains why this action was chosen.
	Reason string
}

// PlanStats summarizes a plan.
type PlanStats struct {
	Total      int
	ToTransfer int
	Skipped    int
	Errored    int

	// Bytes is the total size of files to be copied or moved.
	Bytes int64
}

// Plan is the terminal output of the decision engine: one entry per
// classified source file, in enumeration order.
type Plan struct {
	Entries []PlanEntry
	Stats   PlanStats
}
