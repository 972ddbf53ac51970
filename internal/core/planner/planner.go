// Package planner combines classification, duplicate guarding, and
// destination resolution into one decided action per source file. It
// performs no I/O itself: the destination is inspected through the
// ArchiveView interface, so the decision logic is testable without a
// filesystem.
package planner

import (
	"fmt"
	"path"

	"github.com/pverhoeven/insorter/internal/core/destination"
	"github.com/pverhoeven/insorter/internal/core/dupes"
	"github.com/pverhoeven/insorter/internal/domain"
)

// ArchiveView is the read-only window onto the destination tree that the
// planner needs. internal/archive implements it against the local
// filesystem; tests fake it.
type ArchiveView interface {
	// DateFolders lists the names of the immediate directory children of
	// the destination root.
	DateFolders() ([]string, error)

	// StatFile reports whether a file exists at the given path relative
	// to the destination root, and its size when it does.
	StatFile(rel string) (size int64, exists bool, err error)
}

// Planner builds transfer plans.
type Planner struct {
	view      ArchiveView
	subfolder string
	move      bool
}

// New creates a Planner. subfolder is the fixed managed-subfolder name
// nested inside every date folder. When move is set, transfer entries are
// planned as moves instead of copies.
func New(view ArchiveView, subfolder string, move bool) *Planner {
	return &Planner{view: view, subfolder: subfolder, move: move}
}

// Plan produces one entry per file, in the given enumeration order. The
// duplicate index must have been built over the complete source listing
// beforehand; files with cross-subtree name conflicts become error
// entries and are never planned for transfer.
func (p *Planner) Plan(files []domain.ManagedFile, index *dupes.Index) (*domain.Plan, error) {
	children, err := p.view.DateFolders()
	if err != nil {
		return nil, fmt.Errorf("listing destination date folders: %w", err)
	}

	// Each date is resolved once; every file sharing it gets the same
	// folder or the same ambiguity verdict.
	folders := make(map[domain.Date]domain.ArchiveDateFolder)
	ambiguous := make(map[domain.Date]*domain.AmbiguousDateFolderError)

	plan := &domain.Plan{Entries: make([]domain.PlanEntry, 0, len(files))}
	for _, f := range files {
		entry, err := p.planFile(f, index, children, folders, ambiguous)
		if err != nil {
			return nil, err
		}
		plan.Entries = append(plan.Entries, entry)
	}

	calculateStats(plan)
	return plan, nil
}

func (p *Planner) planFile(
	f domain.ManagedFile,
	index *dupes.Index,
	children []string,
	folders map[domain.Date]domain.ArchiveDateFolder,
	ambiguous map[domain.Date]*domain.AmbiguousDateFolderError,
) (domain.PlanEntry, error) {
	if index.IsDuplicate(f.Name) {
		dupErr := &domain.DuplicateNameError{Name: f.Name, Subtrees: index.Subtrees(f.Name)}
		return domain.PlanEntry{
			File:   f,
			Action: domain.ActionErrorDuplicate,
			Reason: dupErr.Error(),
		}, nil
	}

	folder, ok := folders[f.Date]
	if !ok {
		if ambErr := ambiguous[f.Date]; ambErr != nil {
			return p.ambiguousEntry(f, ambErr), nil
		}
		resolved, err := destination.Resolve(f.Date, children)
		if err != nil {
			ambErr, isAmb := err.(*domain.AmbiguousDateFolderError)
			if !isAmb {
				return domain.PlanEntry{}, err
			}
			ambiguous[f.Date] = ambErr
			return p.ambiguousEntry(f, ambErr), nil
		}
		folders[f.Date] = resolved
		folder = resolved
	}

	dest := path.Join(folder.Name, p.subfolder, f.Name)

	size, exists, err := p.view.StatFile(dest)
	if err != nil {
		return domain.PlanEntry{}, fmt.Errorf("inspecting destination %s: %w", dest, err)
	}

	switch {
	case exists && size == f.Size:
		return domain.PlanEntry{
			File:        f,
			Destination: dest,
			Action:      domain.ActionSkipIdentical,
			Reason:      "already present with identical size",
		}, nil

	case exists:
		// Same name, different size: treated as a distinct version that
		// must still land at its deterministic destination. The report
		// surfaces the overwrite.
		return domain.PlanEntry{
			File:        f,
			Destination: dest,
			Action:      p.transferAction(),
			Reason:      "exists with different size, will overwrite",
		}, nil

	default:
		return domain.PlanEntry{
			File:        f,
			Destination: dest,
			Action:      p.transferAction(),
			Reason:      "file does not exist",
		}, nil
	}
}

func (p *Planner) ambiguousEntry(f domain.ManagedFile, ambErr *domain.AmbiguousDateFolderError) domain.PlanEntry {
	return domain.PlanEntry{
		File:   f,
		Action: domain.ActionErrorAmbiguous,
		Reason: ambErr.Error(),
	}
}

func (p *Planner) transferAction() domain.ActionType {
	if p.move {
		return domain.ActionMove
	}
	return domain.ActionCopy
}

func calculateStats(plan *domain.Plan) {
	for _, e := range plan.Entries {
		plan.Stats.Total++
		switch e.Action {
		case domain.ActionCopy, domain.ActionMove:
			plan.Stats.ToTransfer++
			plan.Stats.Bytes += e.File.Size
		case domain.ActionSkipIdentical:
			plan.Stats.Skipped++
		case domain.ActionErrorDuplicate, domain.ActionErrorAmbiguous:
			plan.Stats.Errored++
		}
	}
}
