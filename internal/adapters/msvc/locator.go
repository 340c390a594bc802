package msvc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
)

// comnToolsVar derives the version-specific environment variable a Visual
// Studio installer publishes, e.g. VS140COMNTOOLS for the 2015 release.
func comnToolsVar(v domain.ToolchainVersion) string {
	return fmt.Sprintf("VS%dCOMNTOOLS", int(v))
}

// Discover probes base for installed Visual Studio releases among candidates.
//
// A release is present when its VS*COMNTOOLS variable is set and the compiler
// binary exists beneath the derived install root; anything less is absence,
// never a partial result. The registry is rebuilt on every call since
// installs can change between runs.
func (b *Backend) Discover(_ context.Context, base *domain.EnvSnapshot, candidates []domain.ToolchainVersion) domain.Registry {
	registry := make(domain.Registry)
	for _, v := range candidates {
		comnTools, ok := base.Get(comnToolsVar(v))
		if !ok || comnTools == "" {
			continue
		}
		// VS*COMNTOOLS points at <root>\Common7\Tools; the install root is
		// two levels up.
		root := filepath.Dir(filepath.Dir(filepath.Clean(comnTools)))
		compiler := filepath.Join(root, "VC", "bin", compilerName)
		if info, err := os.Stat(compiler); err != nil || info.IsDir() {
			continue
		}
		registry[v] = root
	}
	return registry
}
