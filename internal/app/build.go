package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"devkit-builder/internal/core"
	"devkit-builder/internal/policies"
	"devkit-builder/internal/types"
)

// Build produces the devkit header and archive of one family. Both files
// appear at their final paths together, or neither changes.
func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	family, err := s.loadFamily(ctx, req.FamilyFile, req.Kit)
	if err != nil {
		return BuildResult{}, err
	}
	return s.buildFamily(ctx, family, req)
}

func (s Service) buildFamily(ctx context.Context, family types.Family, req BuildRequest) (BuildResult, error) {
	includeDir := strings.TrimSpace(req.IncludeDir)
	if includeDir == "" {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("include directory is required")
	}
	headerPath, archivePath, err := outputPaths(family, req)
	if err != nil {
		return BuildResult{}, err
	}

	pkg := family.PackageName()
	buildID := s.buildID()
	logger := log.Ctx(ctx).With().
		Str("family", family.Name).
		Str("package", pkg).
		Str("build_id", buildID).
		Logger()
	ctx = logger.WithContext(ctx)

	if err := core.NewVersionGate(s.Packages).Check(ctx, pkg, family.MinVersion); err != nil {
		return BuildResult{}, err
	}

	stage, err := s.Output.NewStage(buildID, headerPath, archivePath)
	if err != nil {
		return BuildResult{}, err
	}
	defer stage.Discard()

	linkFlags, err := s.Packages.StaticLinkFlags(ctx, pkg)
	if err != nil {
		return BuildResult{}, err
	}
	resolved, err := s.archiveAssembler().Assemble(ctx, linkFlags, req.SearchDirs, stage.ArchivePath())
	if err != nil {
		return BuildResult{}, err
	}

	var renames types.RenameResult
	if family.RenamesSymbols() {
		renamer := core.NewSymbolRenamer(s.Symbols, s.Editor, policies.NewFamilySymbolPolicy(family), family.Namespace)
		renames, err = renamer.Rename(ctx, stage.ArchivePath())
		if err != nil {
			return BuildResult{}, err
		}
	}

	umbrella := filepath.Join(includeDir, filepath.FromSlash(family.UmbrellaHeader))
	cflags, err := s.Packages.CompilerFlags(ctx, pkg)
	if err != nil {
		return BuildResult{}, err
	}
	scanned, err := s.Scanner.ScanHeaders(ctx, cflags, umbrella)
	if err != nil {
		return BuildResult{}, err
	}
	header, err := core.NewHeaderResolver(s.Headers).Resolve(ctx, types.NewHeaderSet(umbrella, scanned), core.HeaderOptions{
		Preamble:     family.Preamble(),
		Public:       renames.Public,
		Mapping:      renames.Mapping,
		MappingGuard: family.MappingGuard,
	})
	if err != nil {
		return BuildResult{}, err
	}
	if err := stage.WriteHeader(header); err != nil {
		return BuildResult{}, err
	}
	if err := stage.Commit(); err != nil {
		return BuildResult{}, err
	}

	artifacts := types.DevkitArtifacts{
		Family:        family.Name,
		Package:       pkg,
		HeaderPath:    headerPath,
		ArchivePath:   archivePath,
		Embedded:      resolved.Archives,
		ResidualFlags: resolved.Residual,
		Renamed:       renames.Mapping.Len(),
		PublicRenamed: renames.Public.Len(),
	}
	logger.Info().
		Str("header", headerPath).
		Str("archive", archivePath).
		Int("embedded", len(artifacts.Embedded)).
		Int("renamed", artifacts.Renamed).
		Msg("devkit built")
	return BuildResult{BuildID: buildID, Artifacts: artifacts}, nil
}

func outputPaths(family types.Family, req BuildRequest) (string, string, error) {
	headerPath := strings.TrimSpace(req.HeaderPath)
	archivePath := strings.TrimSpace(req.ArchivePath)
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" && (headerPath == "" || archivePath == "") {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	if headerPath == "" {
		headerPath = filepath.Join(outputDir, "include", family.HeaderFileName())
	}
	if archivePath == "" {
		archivePath = filepath.Join(outputDir, "lib", family.ArchiveFileName())
	}
	return headerPath, archivePath, nil
}

func (s Service) loadFamilies(ctx context.Context, path string) ([]types.Family, error) {
	families, err := s.Families.LoadFamilies(strings.TrimSpace(path))
	if err != nil {
		return nil, err
	}
	if err := core.NewFamilyValidator().ValidateFamilies(ctx, families); err != nil {
		return nil, err
	}
	return families, nil
}

func (s Service) loadFamily(ctx context.Context, path string, kit string) (types.Family, error) {
	kit = strings.TrimSpace(kit)
	if kit == "" {
		return types.Family{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("devkit name is required")
	}
	families, err := s.loadFamilies(ctx, path)
	if err != nil {
		return types.Family{}, err
	}
	return core.FindFamily(families, kit)
}
