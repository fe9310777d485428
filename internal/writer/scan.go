package writer

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/domtools/dommerge/internal/model"
	"github.com/domtools/dommerge/internal/scanner"
)

// scanAll parses every resolved mod concurrently — each parse is a
// pure function over its own input, so no cross-mod synchronization is
// needed beyond collecting results (spec §5). Allocation and writing
// stay single-threaded downstream. Concurrency is bounded by
// GOMAXPROCS, mirroring the donor's own environment-aware default
// (nanostore/cmd/logging.go), so a merge of many mods doesn't spawn an
// unbounded number of goroutines each holding a file handle open.
func scanAll(ctx context.Context, mods []resolvedMod) (map[string]*model.ModDefinition, error) {
	defs := make(map[string]*model.ModDefinition, len(mods))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, rm := range mods {
		rm := rm
		eg.Go(func() error {
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			default:
			}

			rc, err := rm.Open()
			if err != nil {
				return &model.InvalidModFile{Path: rm.Name, Cause: "cannot open mod", Under: err}
			}
			defer rc.Close()

			def, err := scanner.Scan(rm.Name, rc)
			if err != nil {
				return err
			}
			if def.ModName == "" {
				def.ModName = rm.Name
			}

			mu.Lock()
			defs[rm.Name] = def
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("scan stage: %w", err)
	}
	return defs, nil
}
