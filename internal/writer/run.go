// Package writer implements the merge pipeline's orchestrator (spec
// §4.8): resolve mod groups, fan out parsing, run the sequential
// allocator, then stream a single deterministic output file and copy
// referenced resources. Logging follows the donor's split between a
// structured run logger and a human-readable banner, adapted from
// nanostore/cmd/logging.go into one merge-run logger.
package writer

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/domtools/dommerge/internal/alloc"
	"github.com/domtools/dommerge/internal/conflict"
	"github.com/domtools/dommerge/internal/model"
	"github.com/domtools/dommerge/internal/rewrite"
)

// Run executes one full merge: scan, allocate, and — unless
// cfg.DryRun — write the merged output and copy resources. The
// returned MergeReport is populated whether or not output was
// actually written.
func Run(ctx context.Context, cfg *model.MergeConfig, mods []model.ModFile, groups []model.ModGroup, lookup rewrite.SpellEffectLookup, logger *slog.Logger) (*model.MergeReport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	resolved := resolveGroups(mods, groups)
	order := make([]string, 0, len(resolved))
	byName := make(map[string]resolvedMod, len(resolved))
	for _, rm := range resolved {
		order = append(order, rm.Name)
		byName[rm.Name] = rm
	}

	logger.Info("scan stage starting", "mods", len(order))
	defs, err := scanAll(ctx, resolved)
	if err != nil {
		return nil, err
	}
	logger.Info("scan stage complete", "mods", len(order))

	_, vanillaOverlaps := conflict.Detect(order, defs)
	orphans := conflict.DetectOrphans(order, defs)

	logger.Info("allocation stage starting")
	allocResult, err := alloc.Allocate(ctx, order, defs)
	if err != nil {
		return nil, err
	}
	logger.Info("allocation stage complete", "collisions", len(allocResult.Collisions))

	report := &model.MergeReport{Mods: order}
	report.Collisions = allocResult.Collisions
	for _, ov := range vanillaOverlaps {
		report.AddWarning(model.Warning{
			Kind:       model.VanillaOverlapWarning,
			Mod:        ov.ModA,
			OtherMod:   ov.ModB,
			EntityKind: ov.Kind,
			ID:         ov.ID,
			Message:    fmt.Sprintf("%s and %s both edit vanilla %s %d", ov.ModA, ov.ModB, ov.Kind, ov.ID),
		})
	}
	for _, o := range orphans {
		report.AddWarning(model.Warning{
			Kind:       model.OrphanReferenceWarning,
			Mod:        o.Mod,
			EntityKind: o.Kind,
			ID:         o.ID,
			Message:    fmt.Sprintf("%s references %s %d, which no input mod defines", o.Mod, o.Kind, o.ID),
		})
	}
	for _, name := range order {
		report.PerModMappings = append(report.PerModMappings, model.PerModMapping{
			Mod:    name,
			Remaps: allocResult.Mappings[name].Entries(),
		})
	}

	if cfg.DryRun {
		logger.Info("dry run: skipping write stage")
		return report, nil
	}

	outputPath, err := prepareOutputDir(cfg)
	if err != nil {
		return nil, err
	}

	lock := newOutputLock(outputPath)
	ok, err := lock.acquire(ctx)
	if err != nil {
		return nil, &model.IOError{Op: "lock output directory", Path: outputPath, Under: err}
	}
	if !ok {
		return nil, &model.IOError{Op: "lock output directory", Path: outputPath, Under: fmt.Errorf("another merge run holds the lock")}
	}
	defer lock.release()

	outFilePath := filepath.Join(outputPath, normalizeOutputName(cfg.OutputName))
	stagingPath := outFilePath + ".staging-" + uuid.New().String()
	logger.Info("write stage starting", "output", outFilePath)
	if err := writeOutput(ctx, stagingPath, cfg, order, byName, allocResult, lookup); err != nil {
		os.Remove(stagingPath)
		return nil, err
	}

	var originals []model.ModFile
	for _, name := range order {
		originals = append(originals, byName[name].Originals...)
	}
	if err := copyResources(outputPath, originals, report); err != nil {
		os.Remove(stagingPath)
		return nil, err
	}

	if err := os.Rename(stagingPath, outFilePath); err != nil {
		os.Remove(stagingPath)
		return nil, &model.IOError{Op: "publish output", Path: outFilePath, Under: err}
	}

	report.OutputPath = outFilePath
	logger.Info("write stage complete", "output", outFilePath, "warnings", len(report.Warnings))
	return report, nil
}

func prepareOutputDir(cfg *model.MergeConfig) (string, error) {
	outputPath := cfg.OutputPath
	if outputPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", &model.IOError{Op: "resolve cwd", Path: ".", Under: err}
		}
		outputPath = wd
	}
	if cfg.Clean {
		entries, err := os.ReadDir(outputPath)
		if err == nil {
			for _, e := range entries {
				os.RemoveAll(filepath.Join(outputPath, e.Name()))
			}
		}
	}
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return "", &model.IOError{Op: "mkdir output path", Path: outputPath, Under: err}
	}
	return outputPath, nil
}

func normalizeOutputName(name string) string {
	if name == "" {
		name = "merged_mod"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".dm") {
		name += ".dm"
	}
	return name
}

func writeOutput(ctx context.Context, outFilePath string, cfg *model.MergeConfig, order []string, byName map[string]resolvedMod, allocResult *alloc.Result, lookup rewrite.SpellEffectLookup) error {
	f, err := os.Create(outFilePath)
	if err != nil {
		return &model.IOError{Op: "create output", Path: outFilePath, Under: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeFreshHeader(w, cfg); err != nil {
		return &model.IOError{Op: "write header", Path: outFilePath, Under: err}
	}

	for _, name := range order {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rm := byName[name]
		rc, err := rm.Open()
		if err != nil {
			return &model.InvalidModFile{Path: name, Cause: "cannot reopen mod for writing", Under: err}
		}
		mapped := model.NewMappedModDefinition(model.ModFile{Name: name}, allocResult.Mappings[name], allocResult.Implicit[name])
		err = streamMod(w, name, rc, mapped, lookup)
		rc.Close()
		if err != nil {
			return &model.IOError{Op: "stream mod", Path: name, Under: err}
		}
	}

	if err := w.Flush(); err != nil {
		return &model.IOError{Op: "flush output", Path: outFilePath, Under: err}
	}
	return nil
}
