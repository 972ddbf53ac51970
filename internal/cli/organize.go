package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pverhoeven/insorter/internal/archive"
	"github.com/pverhoeven/insorter/internal/core/classify"
	"github.com/pverhoeven/insorter/internal/core/dates"
	"github.com/pverhoeven/insorter/internal/core/dupes"
	"github.com/pverhoeven/insorter/internal/core/planner"
	"github.com/pverhoeven/insorter/internal/domain"
	"github.com/pverhoeven/insorter/internal/executor"
	"github.com/pverhoeven/insorter/internal/lock"
	"github.com/pverhoeven/insorter/internal/progress"
	"github.com/pverhoeven/insorter/internal/report"
	"github.com/pverhoeven/insorter/internal/scan"
)

type organizeFlags struct {
	Approve bool
	Move    bool
}

// NewOrganizeCommand creates the organize command.
func NewOrganizeCommand() *cobra.Command {
	var flags organizeFlags

	cmd := &cobra.Command{
		Use:   "organize <source> <destination>",
		Short: "Plan and transfer Insta360 files into the archive",
		Long: `Organize Insta360 files from source into date-based folders in
destination. Only managed files (.insv, .insp, .lrv by default) are
processed; everything else is ignored.

By default the command runs in preview mode and mutates nothing. Use
--approve to transfer files, and --move to relocate instead of copy.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Approve, "approve", false, "actually transfer files; without it only a preview is shown")
	cmd.Flags().BoolVar(&flags.Move, "move", false, "move files instead of copying (still previews without --approve)")

	return cmd
}

func runOrganize(cmd *cobra.Command, source, dest string, flags organizeFlags) error {
	if err := ensureDir(source, "source"); err != nil {
		return err
	}
	if err := ensureDir(dest, "destination"); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Shutdown()

	runID := uuid.NewString()[:8]
	log = log.With("run_id", runID)
	log.Debug("starting run", "source", source, "destination", dest,
		"approve", flags.Approve, "move", flags.Move)

	// Phase 1: enumerate and classify the complete source set.
	entries, err := scan.Walk(source)
	if err != nil {
		return fmt.Errorf("scanning source: %w", err)
	}

	classifier := classify.New(cfg.Extensions, cfg.ManagedNames, cfg.ExcludeDirs)
	var managed []domain.ManagedFile
	for _, f := range entries {
		if !classifier.Managed(f.Rel) {
			continue
		}
		managed = append(managed, domain.ManagedFile{
			SourcePath: f.Path,
			Subtree:    f.Subtree(),
			Name:       f.Name,
			Size:       f.Size,
			Date:       dates.Resolve(f.Name, f.Times),
		})
	}

	out := cmd.OutOrStdout()
	if len(managed) == 0 {
		fmt.Fprintln(out, "No Insta360 files found in source directory.")
		return nil
	}

	// Phase 2: validate the whole set before planning anything.
	index := dupes.Build(managed)
	duplicates := index.Duplicates()
	if len(duplicates) > 0 && cfg.HaltOnDuplicate {
		for _, d := range duplicates {
			fmt.Fprintf(cmd.ErrOrStderr(), "ERROR: %v\n", d)
		}
		return fmt.Errorf("%d duplicate filenames in source, nothing planned", len(duplicates))
	}

	// Phase 3: plan.
	arch, err := archive.Open(dest)
	if err != nil {
		return err
	}
	plan, err := planner.New(arch, cfg.Subfolder, flags.Move).Plan(managed, index)
	if err != nil {
		return err
	}
	log.Debug("plan built", "total", plan.Stats.Total, "transfer", plan.Stats.ToTransfer,
		"skipped", plan.Stats.Skipped, "errored", plan.Stats.Errored)

	printer := &report.Printer{Out: out, Approved: flags.Approve, Move: flags.Move}
	printer.Headline(plan.Stats)

	// Phase 4: report, and execute when approved.
	var execRes *executor.Result
	if flags.Approve {
		runLock := lock.New(arch.Root())
		if err := runLock.Acquire(runID); err != nil {
			return err
		}
		defer runLock.Release()

		for _, e := range plan.Entries {
			if e.Action.IsError() {
				printer.Entry(e, nil)
			}
		}

		reporter := progress.Reporter(progress.Null{})
		if term.IsTerminal(int(os.Stderr.Fd())) {
			reporter = progress.NewBar(os.Stderr)
		}

		exec := executor.New(arch, reporter, log, func(e domain.PlanEntry, execErr error) {
			printer.Entry(e, execErr)
		})
		execRes = exec.Execute(plan)
	} else {
		for _, e := range plan.Entries {
			printer.Entry(e, nil)
		}
	}

	printer.Summary(plan.Stats, execRes)

	// Duplicate names drive a non-zero exit even when unaffected files
	// proceeded.
	if len(duplicates) > 0 {
		return fmt.Errorf("%d duplicate filenames in source", len(duplicates))
	}
	return nil
}
