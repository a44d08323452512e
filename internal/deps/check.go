package deps

import (
	"fmt"
	"sync"
	"tubescribe/config"
	"tubescribe/log"
	apperrors "tubescribe/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ResolveDependencyInventory resolves the full inventory concurrently.
// LookPath hits the filesystem per PATH entry, so fan out.
func ResolveDependencyInventory() []DependencyState {
	specs := BuildDependencyInventory(
		config.Conf.Transcribe.Provider,
		config.Conf.App.FfmpegPath,
		config.Conf.App.YtdlpPath,
		config.Conf.Transcribe.Fasterwhisper.BinaryPath,
	)
	resolver := NewPathResolver()

	states := make([]DependencyState, len(specs))
	var group errgroup.Group
	var mu sync.Mutex
	for i, spec := range specs {
		i, spec := i, spec
		group.Go(func() error {
			state := resolver.Resolve(spec)
			mu.Lock()
			states[i] = state
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()
	return states
}

// CheckDependency resolves external binaries and records their paths.
// Missing must-tier binaries fail the run before any work starts.
func CheckDependency() error {
	states := ResolveDependencyInventory()
	applyResolvedPaths(states)

	for _, state := range states {
		if state.Status == DependencyStatusOK {
			log.GetLogger().Debug("dependency resolved",
				zap.String("name", state.Name),
				zap.String("path", state.ResolvedPath))
			continue
		}
		if state.Tier != DependencyTierMust {
			log.GetLogger().Debug("optional dependency unavailable",
				zap.String("name", state.Name),
				zap.String("status", string(state.Status)))
			continue
		}
		var cause error
		if state.Error != "" {
			cause = fmt.Errorf("%s", state.Error)
		}
		return apperrors.WrapWithDetail(apperrors.CodeDependencyMissing,
			fmt.Sprintf("缺少依赖 missing dependency: %s", state.Name),
			state.Hint, cause)
	}
	return nil
}
