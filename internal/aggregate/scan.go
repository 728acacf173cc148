// Package aggregate implements the Usage Aggregator (C9), Analysis
// Aggregator (C10) and Daily-Averages Reducer (C11): the passes that
// turn many per-file CodeAnalysis values into date/model-keyed views.
package aggregate

import (
	"os"
	"sync"

	"github.com/samber/lo"

	"github.com/vibecoding/vct/internal/cache"
	"github.com/vibecoding/vct/internal/core"
)

// FileResult pairs one session file's analysis with its mtime-derived date.
type FileResult struct {
	Path     string
	Date     string
	Analysis *core.CodeAnalysis
}

// ScanAll walks every session root and parses every file through the
// Parse Cache, in parallel across files. Per-file parse errors are
// dropped rather than aborting the scan, matching the spec's
// "logged and skipped" cancellation/error policy.
func ScanAll(pc *cache.ParseCache) ([]FileResult, error) {
	roots, err := core.ResolveSessionRoots()
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, root := range roots {
		files, err := core.WalkSessionFiles(root)
		if err != nil {
			continue
		}
		paths = append(paths, files...)
	}

	results := make([]FileResult, len(paths))
	var wg sync.WaitGroup
	sem := make(chan struct{}, 16)

	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			info, err := os.Stat(path)
			if err != nil {
				return
			}
			analysis, err := pc.GetOrParse(path)
			if err != nil {
				return
			}
			results[i] = FileResult{
				Path:     path,
				Date:     core.FormatDate(info.ModTime()),
				Analysis: analysis,
			}
		}(i, path)
	}
	wg.Wait()

	return lo.Filter(results, func(r FileResult, _ int) bool {
		return r.Analysis != nil
	}), nil
}
