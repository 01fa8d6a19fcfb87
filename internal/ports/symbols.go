package ports

import (
	"context"

	"devkit-builder/internal/types"
)

// SymbolTablePort reads the symbol table of every member of an archive.
type SymbolTablePort interface {
	ReadSymbols(ctx context.Context, archive string) ([]types.SymbolEntry, error)
}

// SymbolEditorPort rewrites definitions and references of the mapped
// symbols across all members of an archive, in place.
type SymbolEditorPort interface {
	RedefineSymbols(ctx context.Context, archive string, mapping types.RenameMapping) error
}
