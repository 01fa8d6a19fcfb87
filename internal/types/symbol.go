package types

// SymbolEntry is one record of an archive's symbol table.
type SymbolEntry struct {
	Name string
	Kind SymbolKind
}

// SymbolRename pairs a third-party symbol with its namespaced replacement.
type SymbolRename struct {
	Original string
	Renamed  string
}

// RenameMapping is an ordered, injective original -> renamed mapping.
// Entries are kept in lexicographic order of the original name.
type RenameMapping struct {
	Entries []SymbolRename
}

func (m RenameMapping) Len() int {
	return len(m.Entries)
}

func (m RenameMapping) IsEmpty() bool {
	return len(m.Entries) == 0
}

// Index returns the mapping as a map for repeated lookups.
func (m RenameMapping) Index() map[string]string {
	index := make(map[string]string, len(m.Entries))
	for _, entry := range m.Entries {
		index[entry.Original] = entry.Renamed
	}
	return index
}

// RenameResult is what the renamer hands to the header generator.
type RenameResult struct {
	Mapping RenameMapping
	Public  RenameMapping
}
