package core

import (
	"context"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/types"
)

// SymbolRenamer namespaces every third-party global defined in an archive
// so the devkit cannot collide with another copy of the same code.
type SymbolRenamer struct {
	Symbols   ports.SymbolTablePort
	Editor    ports.SymbolEditorPort
	Policy    ports.SymbolPolicyPort
	Namespace string
}

func NewSymbolRenamer(symbols ports.SymbolTablePort, editor ports.SymbolEditorPort, policy ports.SymbolPolicyPort, namespace string) SymbolRenamer {
	return SymbolRenamer{
		Symbols:   symbols,
		Editor:    editor,
		Policy:    policy,
		Namespace: namespace,
	}
}

// Plan computes the mapping for archive without modifying it.
func (r SymbolRenamer) Plan(ctx context.Context, archive string) (types.RenameResult, error) {
	if r.Namespace == "" {
		return types.RenameResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("symbol namespace is empty")
	}
	entries, err := r.Symbols.ReadSymbols(ctx, archive)
	if err != nil {
		return types.RenameResult{}, err
	}
	result := PlanRenames(entries, r.Policy, r.Namespace)
	log.Ctx(ctx).Debug().
		Str("archive", archive).
		Int("symbols", len(entries)).
		Int("renamed", result.Mapping.Len()).
		Int("public", result.Public.Len()).
		Msg("rename plan computed")
	return result, nil
}

// Rename plans the mapping and applies it to archive in place.
func (r SymbolRenamer) Rename(ctx context.Context, archive string) (types.RenameResult, error) {
	result, err := r.Plan(ctx, archive)
	if err != nil {
		return types.RenameResult{}, err
	}
	if result.Mapping.IsEmpty() {
		return result, nil
	}
	if err := r.Editor.RedefineSymbols(ctx, archive, result.Mapping); err != nil {
		return types.RenameResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("archive", archive).
		Int("renamed", result.Mapping.Len()).
		Msg("third-party symbols namespaced")
	return result, nil
}

// PlanRenames keeps defined globals, dedupes and sorts them, drops own
// names and maps the rest to namespace+name. Public is the subset whose
// originals carry a public prefix.
func PlanRenames(entries []types.SymbolEntry, policy ports.SymbolPolicyPort, namespace string) types.RenameResult {
	names := definedGlobalNames(entries)
	var result types.RenameResult
	for _, name := range names {
		class := policy.Classify(name)
		if class == types.SymbolClassOwn {
			continue
		}
		rename := types.SymbolRename{Original: name, Renamed: namespace + name}
		result.Mapping.Entries = append(result.Mapping.Entries, rename)
		if class == types.SymbolClassPublicThirdParty {
			result.Public.Entries = append(result.Public.Entries, rename)
		}
	}
	return result
}

func definedGlobalNames(entries []types.SymbolEntry) []string {
	unique := map[string]struct{}{}
	for _, entry := range entries {
		if !entry.Kind.IsDefinedGlobal() || entry.Name == "" {
			continue
		}
		unique[entry.Name] = struct{}{}
	}
	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
