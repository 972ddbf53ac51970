package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pverhoeven/insorter/internal/core/classify"
	"github.com/pverhoeven/insorter/internal/core/repair"
)

// NewRepairCommand creates the repair command.
func NewRepairCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repair <archive>",
		Short: "Print a shell script that retrofits an archive to the managed layout",
		Long: `Repair scans an existing archive for Insta360 files that sit outside
the managed subfolder of their date folder and prints a shell script to
stdout that moves them into place. Nothing is modified; review the
script and run it yourself:

    insorter repair /mnt/archive > fix.sh
    sh fix.sh

Diagnostics go to stderr as comment lines so redirecting stdout yields a
clean script.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd, args[0])
		},
	}
}

func runRepair(cmd *cobra.Command, root string) error {
	if err := ensureDir(root, "archive"); err != nil {
		return err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving archive path: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	classifier := classify.New(cfg.Extensions, cfg.ManagedNames, cfg.ExcludeDirs)
	res, err := repair.Scan(absRoot, classifier, cfg.Subfolder)
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	for _, w := range res.Warnings {
		fmt.Fprintf(errOut, "# %s\n", w)
	}

	if res.Moves == 0 {
		fmt.Fprintln(errOut, "# All Insta360 files are already compliant.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(res.Script, "\n"))
	fmt.Fprintf(errOut, "# %d files to move\n", res.Moves)
	return nil
}
