package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"devkit-builder/internal/core"
	"devkit-builder/internal/policies"
)

// Plan computes the symbol renames a build would apply to an existing
// archive without editing it.
func (s Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	archive := strings.TrimSpace(req.ArchivePath)
	if archive == "" {
		return PlanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("archive path is required")
	}
	family, err := s.loadFamily(ctx, req.FamilyFile, req.Kit)
	if err != nil {
		return PlanResult{}, err
	}
	if !family.RenamesSymbols() {
		return PlanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("devkit family %s does not rename symbols", family.Name))
	}
	renamer := core.NewSymbolRenamer(s.Symbols, s.Editor, policies.NewFamilySymbolPolicy(family), family.Namespace)
	result, err := renamer.Plan(ctx, archive)
	if err != nil {
		return PlanResult{}, err
	}
	return PlanResult{Family: family.Name, Mapping: result.Mapping, Public: result.Public}, nil
}
