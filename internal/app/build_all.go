package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"devkit-builder/internal/core"
	"devkit-builder/internal/types"
)

const defaultBuildWorkers = 4

// BuildAll builds several families concurrently. Each build stages and
// commits on its own; the first failure cancels builds that have not
// finished, and the results of builds that already committed are returned
// alongside the error.
func (s Service) BuildAll(ctx context.Context, req BuildAllRequest) (BuildAllResult, error) {
	kits, err := normalizeKits(req.Kits)
	if err != nil {
		return BuildAllResult{}, err
	}
	families, err := s.loadFamilies(ctx, req.FamilyFile)
	if err != nil {
		return BuildAllResult{}, err
	}
	selected := make([]types.Family, 0, len(kits))
	for _, kit := range kits {
		family, err := core.FindFamily(families, kit)
		if err != nil {
			return BuildAllResult{}, err
		}
		selected = append(selected, family)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	workerCount := req.Workers
	if workerCount <= 0 {
		workerCount = defaultBuildWorkers
	}
	if len(selected) < workerCount {
		workerCount = len(selected)
	}
	results := make([]*BuildResult, len(selected))
	var errMu sync.Mutex
	var firstErr error
	sem := make(chan struct{}, workerCount)
	var wg sync.WaitGroup
	for i, family := range selected {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			result, err := s.buildFamily(ctx, family, BuildRequest{
				Kit:        family.Name,
				IncludeDir: req.IncludeDir,
				OutputDir:  req.OutputDir,
				SearchDirs: req.SearchDirs,
			})
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				errMu.Unlock()
				return
			}
			results[i] = &result
		}()
	}
	wg.Wait()

	var out BuildAllResult
	for _, result := range results {
		if result != nil {
			out.Results = append(out.Results, *result)
		}
	}
	if firstErr != nil {
		return out, firstErr
	}
	return out, nil
}

func normalizeKits(kits []string) ([]string, error) {
	seen := map[string]struct{}{}
	var normalized []string
	for _, kit := range kits {
		kit = strings.TrimSpace(kit)
		if kit == "" {
			continue
		}
		if _, ok := seen[kit]; ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("devkit %s requested twice", kit))
		}
		seen[kit] = struct{}{}
		normalized = append(normalized, kit)
	}
	if len(normalized) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one devkit is required")
	}
	return normalized, nil
}
