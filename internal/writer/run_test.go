package writer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/domtools/dommerge/internal/model"
)

func memMod(name, content string) model.ModFile {
	return model.ModFile{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestRunSimpleMonsterCollision(t *testing.T) {
	modA := memMod("a.dm", `
#modname "Mod A"
#newmonster 5000
#descr "A"
#end
#newmonster 5001
#descr "A2"
#end
`)
	modB := memMod("b.dm", `
#modname "Mod B"
#newmonster 5000
#descr "B"
#end
#newmonster 5001
#descr "B2"
#end
`)

	dir := t.TempDir()
	cfg := &model.MergeConfig{
		OutputName: "merged",
		OutputPath: dir,
		ModName:    "Merged Mod",
	}

	report, err := Run(context.Background(), cfg, []model.ModFile{modA, modB}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Collisions) != 2 {
		t.Fatalf("expected 2 collisions, got %d: %+v", len(report.Collisions), report.Collisions)
	}

	data, err := os.ReadFile(filepath.Join(dir, "merged.dm"))
	if err != nil {
		t.Fatalf("reading merged output: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "#newmonster 5000") {
		t.Fatalf("expected mod A's untouched #newmonster 5000, got:\n%s", out)
	}
	if strings.Contains(out, "#newmonster 5001\n#descr \"B2\"") {
		t.Fatalf("expected mod B's colliding monsters to be remapped, got:\n%s", out)
	}
	if !strings.Contains(out, `#modname "Merged Mod"`) {
		t.Fatalf("expected fresh header with configured mod name, got:\n%s", out)
	}
}

func TestRunSummoningSpellDamageRemapAcrossMods(t *testing.T) {
	modA := memMod("a.dm", `
#modname "Mod A"
#newmonster 5001
#end
`)
	modB := memMod("b.dm", `
#modname "Mod B"
#newmonster 5001
#end
#newspell
#name "Test Summon"
#effect 1
#damage 5001
#end
`)

	dir := t.TempDir()
	cfg := &model.MergeConfig{OutputName: "merged", OutputPath: dir, ModName: "Merged"}

	report, err := Run(context.Background(), cfg, []model.ModFile{modA, modB}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Collisions) != 1 {
		t.Fatalf("expected 1 collision, got %+v", report.Collisions)
	}
	newID := report.Collisions[0].NewID

	data, err := os.ReadFile(filepath.Join(dir, "merged.dm"))
	if err != nil {
		t.Fatalf("reading merged output: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "#damage "+strconv.Itoa(newID)) {
		t.Fatalf("expected spell's #damage to follow the monster's remap to %d, got:\n%s", newID, out)
	}
}

func TestRunDryRunWritesNoFile(t *testing.T) {
	modA := memMod("a.dm", `
#modname "Mod A"
#newmonster 5000
#end
`)
	dir := t.TempDir()
	cfg := &model.MergeConfig{OutputName: "merged", OutputPath: dir, ModName: "Merged", DryRun: true}

	report, err := Run(context.Background(), cfg, []model.ModFile{modA}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.OutputPath != "" {
		t.Fatalf("expected no output path recorded for a dry run, got %q", report.OutputPath)
	}
	if _, err := os.Stat(filepath.Join(dir, "merged.dm")); !os.IsNotExist(err) {
		t.Fatalf("expected no output file written for a dry run")
	}
}
