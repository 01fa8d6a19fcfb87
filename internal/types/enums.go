package types

// SymbolKind is the storage category of a symbol table entry.
type SymbolKind string

const (
	SymbolKindText      SymbolKind = "text"
	SymbolKindData      SymbolKind = "data"
	SymbolKindBSS       SymbolKind = "bss"
	SymbolKindReadOnly  SymbolKind = "readonly"
	SymbolKindCommon    SymbolKind = "common"
	SymbolKindUndefined SymbolKind = "undefined"
	SymbolKindWeak      SymbolKind = "weak"
	SymbolKindLocal     SymbolKind = "local"
	SymbolKindOther     SymbolKind = "other"
)

// IsDefinedGlobal reports whether the kind names a global definition that
// another copy of the same code could collide with.
func (k SymbolKind) IsDefinedGlobal() bool {
	switch k {
	case SymbolKindText, SymbolKindData, SymbolKindBSS, SymbolKindReadOnly, SymbolKindCommon:
		return true
	default:
		return false
	}
}

// SymbolClass is the ownership class a symbol name falls into for a family.
type SymbolClass string

const (
	SymbolClassOwn               SymbolClass = "own"
	SymbolClassPublicThirdParty  SymbolClass = "public-third-party"
	SymbolClassPrivateThirdParty SymbolClass = "private-third-party"
)
