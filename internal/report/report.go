// Package report renders the user-facing plan and summary on stdout.
package report

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pverhoeven/insorter/internal/domain"
	"github.com/pverhoeven/insorter/internal/executor"
)

// Printer writes one-line statements per plan entry plus headline and
// summary blocks, in preview or approved phrasing.
type Printer struct {
	Out      io.Writer
	Approved bool
	Move     bool
}

// Headline prints the counts block shown before the per-file lines.
func (p *Printer) Headline(stats domain.PlanStats) {
	size := humanize.IBytes(uint64(stats.Bytes))
	if p.Approved {
		fmt.Fprintf(p.Out, "%s %d files (%s)\n", p.gerund(), stats.ToTransfer, size)
	} else {
		fmt.Fprintf(p.Out, "[DRY RUN] Would %s %d files (%s)\n", p.verb(), stats.ToTransfer, size)
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(p.Out, "Skipping %d files (already exist with same size)\n", stats.Skipped)
	}
	if stats.Errored > 0 {
		fmt.Fprintf(p.Out, "%d files cannot be planned\n", stats.Errored)
	}
	fmt.Fprintln(p.Out)
}

// Entry prints the one-line statement for a single plan entry. execErr is
// the execution failure for the entry, nil during preview and for
// successful transfers.
func (p *Printer) Entry(e domain.PlanEntry, execErr error) {
	switch {
	case execErr != nil:
		fmt.Fprintf(p.Out, "FAILED: %s: %v\n", e.File.Name, execErr)

	case e.Action.IsError():
		fmt.Fprintf(p.Out, "ERROR: %s\n", e.Reason)

	case e.Action == domain.ActionSkipIdentical:
		fmt.Fprintf(p.Out, "Skipped (identical size): %s\n", e.File.Name)

	default:
		verb := "Would " + p.verb()
		if p.Approved {
			if p.Move {
				verb = "Moved"
			} else {
				verb = "Copied"
			}
		}
		note := ""
		if strings.Contains(e.Reason, "overwrite") {
			note = " [overwrite]"
		}
		fmt.Fprintf(p.Out, "%s: %s -> %s/%s\n", verb, e.File.Name, path.Dir(e.Destination), note)
	}
}

// Summary prints the final totals. res is nil for preview runs.
func (p *Printer) Summary(stats domain.PlanStats, res *executor.Result) {
	fmt.Fprintln(p.Out)
	if res != nil {
		fmt.Fprintf(p.Out, "Done: %d copied, %d moved, %d skipped, %d failed, %d planning errors (%s transferred)\n",
			res.Copied, res.Moved, res.Skipped, res.Failed, stats.Errored,
			humanize.IBytes(uint64(res.Bytes)))
		return
	}

	fmt.Fprintf(p.Out, "Planned: %d to %s, %d skipped, %d errors (%s to transfer)\n",
		stats.ToTransfer, p.verb(), stats.Skipped, stats.Errored,
		humanize.IBytes(uint64(stats.Bytes)))
	if stats.ToTransfer > 0 {
		fmt.Fprintf(p.Out, "Run with --approve to %s files.\n", p.verb())
	}
}

func (p *Printer) verb() string {
	if p.Move {
		return "move"
	}
	return "copy"
}

func (p *Printer) gerund() string {
	if p.Move {
		return "Moving"
	}
	return "Copying"
}
