package writer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/domtools/dommerge/internal/model"
	"github.com/domtools/dommerge/internal/scanner"
)

// outputLock wraps gofrs/flock behind the same narrow interface the
// donor's store package uses for its own advisory file locking — one
// exclusive lock per merge run guards the output directory against a
// second concurrent merge targeting the same path.
type outputLock struct {
	fl *flock.Flock
}

func newOutputLock(outputPath string) *outputLock {
	return &outputLock{fl: flock.New(filepath.Join(outputPath, ".dommerge.lock"))}
}

func (l *outputLock) acquire(ctx context.Context) (bool, error) {
	return l.fl.TryLockContext(ctx, 50*time.Millisecond)
}

func (l *outputLock) release() error {
	return l.fl.Unlock()
}

// copyResources copies each original mod's icon resource (if any) into
// outputPath, preserving its relative path under the mod's own
// directory. Identical-byte duplicates are silently skipped; a
// same-name file with different bytes, or a referenced file that
// cannot be found, is recorded as a ResourceCopyWarning rather than
// aborting the run (spec §4.8 step 6, §7).
func copyResources(outputPath string, originals []model.ModFile, report *model.MergeReport) error {
	seenHashes := map[string]string{} // dest path -> sha256 hex of what's there

	for _, f := range originals {
		if f.Path == "" {
			continue
		}
		meta, err := readHeaderMeta(f)
		if err != nil || meta.IconPath == "" {
			continue
		}

		srcDir := filepath.Dir(f.Path)
		srcPath := filepath.Join(srcDir, meta.IconPath)
		destPath := filepath.Join(outputPath, meta.IconPath)

		data, err := os.ReadFile(srcPath)
		if err != nil {
			report.AddWarning(model.Warning{
				Kind:    model.ResourceCopyWarning,
				Mod:     f.Name,
				Message: fmt.Sprintf("resource %q referenced but not found: %v", meta.IconPath, err),
			})
			continue
		}
		sum := sha256sum(data)

		if existing, ok := seenHashes[destPath]; ok {
			if existing != sum {
				report.AddWarning(model.Warning{
					Kind:    model.ResourceCopyWarning,
					Mod:     f.Name,
					Message: fmt.Sprintf("resource %q already copied from another mod with different content; kept the first copy", meta.IconPath),
				})
			}
			continue
		}
		if existingData, err := os.ReadFile(destPath); err == nil {
			if sha256sum(existingData) == sum {
				seenHashes[destPath] = sum
				continue
			}
			report.AddWarning(model.Warning{
				Kind:    model.ResourceCopyWarning,
				Mod:     f.Name,
				Message: fmt.Sprintf("resource %q already exists at destination with different content; kept the existing file", meta.IconPath),
			})
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return &model.IOError{Op: "mkdir", Path: filepath.Dir(destPath), Under: err}
		}
		if err := os.WriteFile(destPath, data, 0o644); err != nil {
			return &model.IOError{Op: "write resource", Path: destPath, Under: err}
		}
		seenHashes[destPath] = sum
	}
	return nil
}

func readHeaderMeta(f model.ModFile) (model.HeaderMeta, error) {
	rc, err := f.Open()
	if err != nil {
		return model.HeaderMeta{}, err
	}
	defer rc.Close()
	return scanner.ParseHeaderMeta(rc)
}

func sha256sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
