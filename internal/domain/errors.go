package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Filesystem adapter errors
var (
	// ErrNotFound indicates the requested path does not exist
	ErrNotFound = errors.New("path not found")

	// ErrNotDirectory indicates expected a directory but got a file
	ErrNotDirectory = errors.New("not a directory")

	// ErrNotFile indicates expected a file but got a directory
	ErrNotFile = errors.New("not a file")

	// ErrPermissionDenied indicates insufficient permissions
	ErrPermissionDenied = errors.New("permission denied")
)

// Configuration errors
var (
	// ErrConfigInvalid indicates the config file is malformed
	ErrConfigInvalid = errors.New("invalid config")
)

// DuplicateNameError reports a filename that appears under more than one
// top-level source subtree. Copying either occurrence would risk silently
// overwriting the other, so both are excluded from the plan.
type DuplicateNameError struct {
	// Name is the conflicting base filename.
	Name string

	// Subtrees are the top-level source folders containing it, sorted.
	Subtrees []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate filename %q in source subtrees: %s",
		e.Name, strings.Join(e.Subtrees, ", "))
}

// AmbiguousDateFolderError reports a calendar date owned by more than one
// existing destination folder. The resolver never guesses between them.
type AmbiguousDateFolderError struct {
	Date Date

	// Folders are the conflicting folder names, sorted.
	Folders []string
}

func (e *AmbiguousDateFolderError) Error() string {
	return fmt.Sprintf("date %s is owned by multiple destination folders: %s",
		e.Date, strings.Join(e.Folders, ", "))
}
