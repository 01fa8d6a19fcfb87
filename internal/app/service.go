package app

import (
	"github.com/google/uuid"

	"devkit-builder/internal/adapters"
	"devkit-builder/internal/core"
	"devkit-builder/internal/ports"
	"devkit-builder/internal/types"
)

type Service struct {
	Families      ports.FamilySourcePort
	Packages      ports.PackageQueryPort
	Scanner       ports.DependencyScanPort
	Headers       ports.HeaderSourcePort
	Symbols       ports.SymbolTablePort
	Editor        ports.SymbolEditorPort
	Archiver      ports.ArchiverPort
	Output        ports.OutputStagePort
	ArchiveExists func(path string) bool
	NewBuildID    func() string
}

// NewService wires the host toolchain.
func NewService(toolchain types.Toolchain) (Service, error) {
	return NewServiceWithRunner(toolchain, adapters.NewExecToolRunner())
}

// NewServiceWithRunner wires every tool adapter to runner, which lets the
// same service drive binaries somewhere other than the host.
func NewServiceWithRunner(toolchain types.Toolchain, runner ports.ToolRunnerPort) (Service, error) {
	toolchain = toolchain.WithDefaults()
	packages, err := adapters.NewPkgConfigAdapter(runner, toolchain.PkgConfig)
	if err != nil {
		return Service{}, err
	}
	return Service{
		Families:   adapters.NewFamilyFileAdapter(),
		Packages:   packages,
		Scanner:    adapters.NewDependencyScanAdapter(runner, toolchain.CC),
		Headers:    adapters.NewHeaderFileAdapter(),
		Symbols:    adapters.NewNmSymbolTableAdapter(runner, toolchain.NM),
		Editor:     adapters.NewObjcopyEditorAdapter(runner, toolchain.Objcopy),
		Archiver:   adapters.NewArArchiverAdapter(runner, toolchain.AR),
		Output:     adapters.NewStagedOutputAdapter(),
		NewBuildID: uuid.NewString,
	}, nil
}

func (s Service) buildID() string {
	if s.NewBuildID == nil {
		return uuid.NewString()
	}
	return s.NewBuildID()
}

func (s Service) archiveAssembler() core.ArchiveAssembler {
	assembler := core.NewArchiveAssembler(s.Archiver)
	if s.ArchiveExists != nil {
		assembler.Exists = s.ArchiveExists
	}
	return assembler
}
