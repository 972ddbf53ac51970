package repair

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pverhoeven/insorter/internal/core/classify"
	"github.com/pverhoeven/insorter/internal/testutil"
)

func testClassifier() *classify.Classifier {
	return classify.New([]string{".insv", ".insp", ".lrv"}, []string{"fileinfo_list.list"}, nil)
}

func TestScanEmitsScript(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "2024-10-11/clip.insv", []byte("x"))
	testutil.CreateFile(t, root, "2024-10-11/insta360/good.insv", []byte("x"))
	testutil.CreateFile(t, root, "2024-10-11/readme.txt", []byte("x"))
	testutil.CreateFile(t, root, "2024-10-12 Paris/nested/deep.insv", []byte("x"))
	testutil.CreateFile(t, root, "notes/stray.insv", []byte("x"))

	res, err := Scan(root, testClassifier(), "insta360")
	if err != nil {
		t.Fatal(err)
	}

	if res.Moves != 2 {
		t.Fatalf("expected 2 moves, got %d: %v", res.Moves, res.Script)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "notes") {
		t.Errorf("expected one warning about the notes folder, got %v", res.Warnings)
	}

	if res.Script[0] != Interpreter {
		t.Errorf("script must start with the interpreter marker, got %q", res.Script[0])
	}

	script := strings.Join(res.Script, "\n")
	wantMkdir := fmt.Sprintf("mkdir -p %q", filepath.Join(root, "2024-10-11", "insta360"))
	if !strings.Contains(script, wantMkdir) {
		t.Errorf("missing %q in script:\n%s", wantMkdir, script)
	}
	wantMv := fmt.Sprintf("mv %q %q",
		filepath.Join(root, "2024-10-12 Paris", "nested", "deep.insv"),
		filepath.Join(root, "2024-10-12 Paris", "insta360", "deep.insv"))
	if !strings.Contains(script, wantMv) {
		t.Errorf("missing %q in script:\n%s", wantMv, script)
	}

	// Compliant and unmanaged files never move.
	if strings.Contains(script, "good.insv") || strings.Contains(script, "readme.txt") {
		t.Errorf("script touches files it must not:\n%s", script)
	}
}

func TestScanMovesManagedNames(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "2024-10-11/fileinfo_list.list", []byte("x"))
	testutil.CreateFile(t, root, "2024-10-11/other.list", []byte("x"))

	res, err := Scan(root, testClassifier(), "insta360")
	if err != nil {
		t.Fatal(err)
	}

	if res.Moves != 1 {
		t.Fatalf("expected 1 move, got %d: %v", res.Moves, res.Script)
	}
	script := strings.Join(res.Script, "\n")
	if !strings.Contains(script, "fileinfo_list.list") {
		t.Errorf("sidecar file must move into the subfolder:\n%s", script)
	}
	if strings.Contains(script, "other.list") {
		t.Errorf("unmanaged .list file must stay put:\n%s", script)
	}
}

func TestScanWarnsOnStrayTopLevelFiles(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "fix.sh", []byte("x"))
	testutil.CreateFile(t, root, "2024-10-11/insta360/clip.insv", []byte("x"))

	res, err := Scan(root, testClassifier(), "insta360")
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "fix.sh") {
		t.Errorf("expected a warning for the stray file, got %v", res.Warnings)
	}
	if res.Moves != 0 {
		t.Errorf("stray top-level files must never be moved, got %v", res.Script)
	}
}

func TestScanMkdirBeforeMv(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "2024-10-11/clip.insv", []byte("x"))

	res, err := Scan(root, testClassifier(), "insta360")
	if err != nil {
		t.Fatal(err)
	}

	var mkdirAt, mvAt int
	for i, line := range res.Script {
		if strings.HasPrefix(line, "mkdir") {
			mkdirAt = i
		}
		if strings.HasPrefix(line, "mv") {
			mvAt = i
		}
	}
	if mkdirAt >= mvAt {
		t.Errorf("mkdir must precede mv:\n%s", strings.Join(res.Script, "\n"))
	}
}

func TestScanAllCompliant(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "2024-10-11/insta360/clip.insv", []byte("x"))

	res, err := Scan(root, testClassifier(), "insta360")
	if err != nil {
		t.Fatal(err)
	}
	if res.Moves != 0 || len(res.Script) != 0 {
		t.Errorf("compliant archive must produce an empty script, got %v", res.Script)
	}
}

func TestScanEmptyRoot(t *testing.T) {
	res, err := Scan(t.TempDir(), testClassifier(), "insta360")
	if err != nil {
		t.Fatal(err)
	}
	if res.Moves != 0 || len(res.Warnings) != 0 {
		t.Errorf("empty archive must be quiet, got %+v", res)
	}
}
