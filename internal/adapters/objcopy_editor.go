package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/types"
)

// ObjcopyEditorAdapter renames symbols across every member of an archive
// with objcopy --redefine-syms, which rewrites definitions and references.
type ObjcopyEditorAdapter struct {
	Runner ports.ToolRunnerPort
	Binary string
}

func NewObjcopyEditorAdapter(runner ports.ToolRunnerPort, binary string) ObjcopyEditorAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = types.DefaultToolchain().Objcopy
	}
	return ObjcopyEditorAdapter{Runner: runner, Binary: binary}
}

func (a ObjcopyEditorAdapter) RedefineSymbols(ctx context.Context, archive string, mapping types.RenameMapping) error {
	if mapping.IsEmpty() {
		return nil
	}
	file, err := os.CreateTemp(filepath.Dir(archive), ".redefine-*.syms")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create symbol map file").
			WithCause(err)
	}
	defer os.Remove(file.Name())

	if _, err := file.WriteString(RedefineSymsFile(mapping)); err != nil {
		file.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write symbol map file").
			WithCause(err)
	}
	if err := file.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write symbol map file").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().
		Str("archive", archive).
		Int("symbols", mapping.Len()).
		Msg("redefining symbols")
	_, err = a.Runner.Run(ctx, types.ToolInvocation{
		Tool: a.Binary,
		Args: []string{"--redefine-syms=" + file.Name(), archive},
	})
	return err
}

// RedefineSymsFile renders mapping in objcopy's "old new" line format.
func RedefineSymsFile(mapping types.RenameMapping) string {
	var builder strings.Builder
	for _, entry := range mapping.Entries {
		builder.WriteString(entry.Original)
		builder.WriteByte(' ')
		builder.WriteString(entry.Renamed)
		builder.WriteByte('\n')
	}
	return builder.String()
}

var _ ports.SymbolEditorPort = ObjcopyEditorAdapter{}
