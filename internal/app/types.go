package app

import "devkit-builder/internal/types"

type ValidateRequest struct {
	FamilyFile string
}

type ValidateResult struct {
	Families []string
}

type BuildRequest struct {
	FamilyFile  string
	Kit         string
	IncludeDir  string
	OutputDir   string
	HeaderPath  string
	ArchivePath string
	SearchDirs  []string
}

type BuildResult struct {
	BuildID   string
	Artifacts types.DevkitArtifacts
}

type BuildAllRequest struct {
	FamilyFile string
	Kits       []string
	IncludeDir string
	OutputDir  string
	SearchDirs []string
	Workers    int
}

type BuildAllResult struct {
	Results []BuildResult
}

type PlanRequest struct {
	FamilyFile  string
	Kit         string
	ArchivePath string
}

type PlanResult struct {
	Family  string
	Mapping types.RenameMapping
	Public  types.RenameMapping
}
