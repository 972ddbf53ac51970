package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pverhoeven/insorter/internal/testutil"
)

// runCommand executes the root command with the given args and returns
// captured stdout, stderr and the command error.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCommand("test")
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestOrganizePreviewLeavesDestinationUntouched(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.CreateFile(t, src, "Camera01/VID_20241011_123456_00_001.insv", []byte("payload"))

	out, _, err := runCommand(t, "organize", src, dst)
	if err != nil {
		t.Fatalf("preview run failed: %v", err)
	}

	if !strings.Contains(out, "[DRY RUN] Would copy 1 files") {
		t.Errorf("missing dry-run headline, got:\n%s", out)
	}
	if !strings.Contains(out, "Would copy: VID_20241011_123456_00_001.insv -> 2024-10-11/insta360/") {
		t.Errorf("missing per-file line, got:\n%s", out)
	}
	if !strings.Contains(out, "Run with --approve to copy files.") {
		t.Errorf("missing approve hint, got:\n%s", out)
	}

	if names := testutil.ReadDirNames(t, dst); len(names) != 0 {
		t.Errorf("preview must not touch destination, found: %v", names)
	}
}

func TestOrganizeApproveCopiesAndIsIdempotent(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.CreateFile(t, src, "Camera01/VID_20241011_123456_00_001.insv", []byte("payload"))

	out, _, err := runCommand(t, "organize", src, dst, "--approve")
	if err != nil {
		t.Fatalf("approved run failed: %v", err)
	}
	if !strings.Contains(out, "Copied: VID_20241011_123456_00_001.insv") {
		t.Errorf("missing copied line, got:\n%s", out)
	}

	want := filepath.Join(dst, "2024-10-11", "insta360", "VID_20241011_123456_00_001.insv")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("copied file missing: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("copied content mismatch: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dst, ".insorter.lock")); !os.IsNotExist(err) {
		t.Error("lock file must be released after the run")
	}

	// Second run finds everything in place and skips it.
	out, _, err = runCommand(t, "organize", src, dst, "--approve")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !strings.Contains(out, "Skipped (identical size): VID_20241011_123456_00_001.insv") {
		t.Errorf("second run must skip identical file, got:\n%s", out)
	}
}

func TestOrganizeReusesSuffixedDateFolder(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.CreateFile(t, src, "Camera01/VID_20241011_123456_00_001.insv", []byte("payload"))
	if err := os.Mkdir(filepath.Join(dst, "2024-10-11 Paris Trip"), 0755); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCommand(t, "organize", src, dst, "--approve")
	if err != nil {
		t.Fatalf("approved run failed: %v", err)
	}

	want := filepath.Join(dst, "2024-10-11 Paris Trip", "insta360", "VID_20241011_123456_00_001.insv")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("file must land in the existing renamed folder: %v", err)
	}
}

func TestOrganizeCarriesSidecarFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.CreateFile(t, src, "Camera01/VID_20241011_123456_00_001.insv", []byte("payload"))
	testutil.CreateFile(t, src, "Camera01/fileinfo_list.list", []byte("meta"))
	testutil.CreateFile(t, src, "Camera01/other.list", []byte("noise"))

	out, _, err := runCommand(t, "organize", src, dst)
	if err != nil {
		t.Fatalf("preview run failed: %v", err)
	}

	if !strings.Contains(out, "[DRY RUN] Would copy 2 files") {
		t.Errorf("sidecar file must be planned alongside the recording, got:\n%s", out)
	}
	if !strings.Contains(out, "Would copy: fileinfo_list.list") {
		t.Errorf("missing sidecar line, got:\n%s", out)
	}
	if strings.Contains(out, "other.list") {
		t.Errorf("unmanaged .list file must be ignored, got:\n%s", out)
	}
}

func TestOrganizeNoManagedFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.CreateFile(t, src, "notes.txt", []byte("irrelevant"))

	out, _, err := runCommand(t, "organize", src, dst)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "No Insta360 files found in source directory.") {
		t.Errorf("missing empty-source message, got:\n%s", out)
	}
}

func TestOrganizeDuplicateNamesExitNonZero(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.CreateFile(t, src, "Camera01/VID_20241011_123456_00_001.insv", []byte("aa"))
	testutil.CreateFile(t, src, "Camera02/VID_20241011_123456_00_001.insv", []byte("bbb"))
	testutil.CreateFile(t, src, "Camera01/VID_20241012_090000_00_002.insv", []byte("cc"))

	out, _, err := runCommand(t, "organize", src, dst, "--approve")
	if err == nil {
		t.Fatal("duplicate names must produce an error exit")
	}
	if !strings.Contains(out, "ERROR: duplicate filename") {
		t.Errorf("missing duplicate error line, got:\n%s", out)
	}

	// The unaffected file still transfers.
	want := filepath.Join(dst, "2024-10-12", "insta360", "VID_20241012_090000_00_002.insv")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("non-duplicate file must still transfer: %v", err)
	}
	// Neither copy of the duplicate does.
	if _, err := os.Stat(filepath.Join(dst, "2024-10-11")); !os.IsNotExist(err) {
		t.Error("duplicate-name files must not be transferred")
	}
}

func TestOrganizeMissingSourceFails(t *testing.T) {
	dst := t.TempDir()
	_, _, err := runCommand(t, "organize", filepath.Join(dst, "nope"), dst)
	if err == nil || !strings.Contains(err.Error(), "source directory does not exist") {
		t.Errorf("expected missing-source error, got %v", err)
	}
}

func TestRepairEmitsScript(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "2024-10-11 Paris/VID_20241011_123456_00_001.insv", []byte("x"))
	testutil.CreateFile(t, root, "2024-10-12/insta360/VID_20241012_090000_00_002.insv", []byte("y"))
	testutil.CreateFile(t, root, "Thumbnails/whatever.insv", []byte("z"))

	out, errOut, err := runCommand(t, "repair", root)
	if err != nil {
		t.Fatalf("repair failed: %v", err)
	}

	if !strings.HasPrefix(out, "#!/bin/sh -x\n") {
		t.Errorf("script must start with the interpreter line, got:\n%s", out)
	}
	if !strings.Contains(out, `mkdir -p "`+filepath.Join(root, "2024-10-11 Paris", "insta360")+`"`) {
		t.Errorf("missing mkdir line, got:\n%s", out)
	}
	if !strings.Contains(out, "mv ") {
		t.Errorf("missing mv line, got:\n%s", out)
	}
	if strings.Contains(out, "VID_20241012_090000_00_002.insv") {
		t.Errorf("compliant file must not appear in the script, got:\n%s", out)
	}
	if !strings.Contains(errOut, "# skipping non-date folder: Thumbnails") {
		t.Errorf("missing warning on stderr, got:\n%s", errOut)
	}
	if !strings.Contains(errOut, "# 1 files to move") {
		t.Errorf("missing move count on stderr, got:\n%s", errOut)
	}
}

func TestRepairCompliantArchive(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "2024-10-12/insta360/VID_20241012_090000_00_002.insv", []byte("y"))

	out, errOut, err := runCommand(t, "repair", root)
	if err != nil {
		t.Fatalf("repair failed: %v", err)
	}
	if out != "" {
		t.Errorf("compliant archive must yield an empty script, got:\n%s", out)
	}
	if !strings.Contains(errOut, "# All Insta360 files are already compliant.") {
		t.Errorf("missing compliance note, got:\n%s", errOut)
	}
}
