// Package executor performs the filesystem mutations for an approved
// plan, one entry at a time in plan order. It is the only component that
// writes to the archive, and it only ever runs after explicit approval.
package executor

import (
	"github.com/pverhoeven/insorter/internal/archive"
	"github.com/pverhoeven/insorter/internal/domain"
	"github.com/pverhoeven/insorter/internal/logger"
	"github.com/pverhoeven/insorter/internal/progress"
)

// EntryError records a per-file execution failure.
type EntryError struct {
	Name string
	Err  error
}

// Result summarizes an execution run.
type Result struct {
	Copied  int
	Moved   int
	Skipped int
	Failed  int

	// Bytes actually transferred.
	Bytes int64

	Errors []EntryError
}

// Executor applies plan entries against a destination archive.
type Executor struct {
	archive  *archive.Local
	reporter progress.Reporter
	log      logger.Logger

	// onEntry, when set, is invoked after each processed entry with the
	// execution error (nil on success). The CLI uses it for per-file
	// report lines.
	onEntry func(entry domain.PlanEntry, err error)
}

// New creates an Executor. reporter and log may be progress.Null{} and
// logger.Null{}; onEntry may be nil.
func New(a *archive.Local, reporter progress.Reporter, log logger.Logger, onEntry func(domain.PlanEntry, error)) *Executor {
	return &Executor{archive: a, reporter: reporter, log: log, onEntry: onEntry}
}

// Execute processes every entry. A failing file is reported and skipped;
// one bad file never blocks the rest of the card. Error entries from the
// planning phase are passed through untouched.
func (e *Executor) Execute(plan *domain.Plan) *Result {
	res := &Result{}

	for _, entry := range plan.Entries {
		switch entry.Action {
		case domain.ActionSkipIdentical:
			res.Skipped++
			e.log.Debug("skipped", "name", entry.File.Name, "reason", entry.Reason)
			e.notify(entry, nil)

		case domain.ActionCopy:
			if err := e.transfer(entry, false); err != nil {
				e.fail(res, entry, err)
				continue
			}
			res.Copied++
			res.Bytes += entry.File.Size
			e.log.Info("copied", "name", entry.File.Name, "dest", entry.Destination)
			e.notify(entry, nil)

		case domain.ActionMove:
			if err := e.transfer(entry, true); err != nil {
				e.fail(res, entry, err)
				continue
			}
			res.Moved++
			res.Bytes += entry.File.Size
			e.log.Info("moved", "name", entry.File.Name, "dest", entry.Destination)
			e.notify(entry, nil)

		default:
			// Planning errors were already reported with the plan.
		}
	}

	return res
}

func (e *Executor) transfer(entry domain.PlanEntry, move bool) error {
	e.reporter.Start(entry.File.Name, entry.File.Size)
	defer e.reporter.Complete()

	if move {
		return e.archive.MoveFrom(entry.File.SourcePath, entry.Destination, e.reporter.Add)
	}
	return e.archive.CopyFrom(entry.File.SourcePath, entry.Destination, e.reporter.Add)
}

func (e *Executor) fail(res *Result, entry domain.PlanEntry, err error) {
	res.Failed++
	res.Errors = append(res.Errors, EntryError{Name: entry.File.Name, Err: err})
	e.log.Error("transfer failed", "name", entry.File.Name, "error", err)
	e.notify(entry, err)
}

func (e *Executor) notify(entry domain.PlanEntry, err error) {
	if e.onEntry != nil {
		e.onEntry(entry, err)
	}
}
