// Package repair retrofits legacy archives that predate the managed
// subfolder convention. It scans an organized archive tree, finds managed
// files sitting outside their date folder's managed subfolder, and emits
// a corrective shell script. The script is inert text; nothing here
// mutates the filesystem.
package repair

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pverhoeven/insorter/internal/core/classify"
	"github.com/pverhoeven/insorter/internal/core/datefolder"
)

// Interpreter is the marker line the emitted script starts with. The -x
// flag makes execution verbose, so every mkdir/mv is echoed when the user
// opts to run it.
const Interpreter = "#!/bin/sh -x"

// Result of scanning an archive root.
type Result struct {
	// Script is the executable fix-up script, line by line. Empty when
	// every managed file is already compliant.
	Script []string

	// Warnings are non-fatal notes about skipped top-level folders,
	// destined for the error stream.
	Warnings []string

	// Moves is the number of files the script relocates.
	Moves int
}

type move struct {
	src, dst string
}

// Scan inspects every top-level child of root. Children that are not
// date-shaped folders, files included, produce a warning and are skipped.
// Within each date folder, managed files not already under the managed
// subfolder produce an idempotent mkdir plus a mv command.
func Scan(root string, c *classify.Classifier, subfolder string) (*Result, error) {
	children, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading archive root: %w", err)
	}

	res := &Result{}
	dirs := make(map[string]bool)
	var moves []move

	for _, child := range children {
		if !child.IsDir() {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("skipping stray top-level file: %s", child.Name()))
			continue
		}
		if !datefolder.Matches(child.Name()) {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("skipping non-date folder: %s", child.Name()))
			continue
		}

		folder := filepath.Join(root, child.Name())
		target := filepath.Join(folder, subfolder)

		err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !c.MatchesName(d.Name()) {
				return nil
			}
			if filepath.Dir(path) == target {
				return nil // already compliant
			}
			dirs[target] = true
			moves = append(moves, move{src: path, dst: filepath.Join(target, d.Name())})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", folder, err)
		}
	}

	res.Moves = len(moves)
	if len(moves) == 0 {
		return res, nil
	}

	res.Script = append(res.Script, Interpreter)

	mkdirs := make([]string, 0, len(dirs))
	for dir := range dirs {
		mkdirs = append(mkdirs, dir)
	}
	sort.Strings(mkdirs)
	for _, dir := range mkdirs {
		res.Script = append(res.Script, fmt.Sprintf("mkdir -p %s", quote(dir)))
	}

	res.Script = append(res.Script, "")

	sort.Slice(moves, func(i, j int) bool { return moves[i].src < moves[j].src })
	for _, m := range moves {
		res.Script = append(res.Script, fmt.Sprintf("mv %s %s", quote(m.src), quote(m.dst)))
	}

	return res, nil
}

func quote(path string) string {
	return `"` + path + `"`
}
