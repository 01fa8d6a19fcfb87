package ports

import "devkit-builder/internal/types"

// SymbolPolicyPort decides which ownership class a symbol name belongs to.
type SymbolPolicyPort interface {
	Classify(name string) types.SymbolClass
}
