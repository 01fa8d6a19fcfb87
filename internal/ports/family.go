package ports

import "devkit-builder/internal/types"

// FamilySourcePort loads devkit family definitions. An empty path selects
// the built-in families.
type FamilySourcePort interface {
	LoadFamilies(path string) ([]types.Family, error)
}
