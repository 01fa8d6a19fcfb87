package types

import "fmt"

// Family describes how to build the devkit of one package. Prefix lists
// are curated per family and are never inferred.
type Family struct {
	Name           string   `yaml:"name" toml:"name" validate:"required"`
	Package        string   `yaml:"package,omitempty" toml:"package,omitempty"`
	UmbrellaHeader string   `yaml:"umbrella_header" toml:"umbrella_header" validate:"required"`
	StaticDefine   string   `yaml:"static_define,omitempty" toml:"static_define,omitempty"`
	Namespace      string   `yaml:"namespace,omitempty" toml:"namespace,omitempty" validate:"required_with=OwnPrefixes"`
	OwnPrefixes    []string `yaml:"own_prefixes,omitempty" toml:"own_prefixes,omitempty" validate:"dive,required"`
	PublicPrefixes []string `yaml:"public_prefixes,omitempty" toml:"public_prefixes,omitempty" validate:"dive,required"`
	MappingGuard   string   `yaml:"mapping_guard,omitempty" toml:"mapping_guard,omitempty" validate:"required_with=Namespace"`
	MinVersion     string   `yaml:"min_version,omitempty" toml:"min_version,omitempty"`
}

// FamilyFile is the on-disk layout of a family definition file.
type FamilyFile struct {
	Families []Family `yaml:"families" toml:"families" validate:"dive"`
}

// PackageName returns the pkg-config identifier of the family.
func (f Family) PackageName() string {
	if f.Package != "" {
		return f.Package
	}
	return f.Name + "-1.0"
}

// RenamesSymbols reports whether third-party symbols get namespaced.
func (f Family) RenamesSymbols() bool {
	return f.Namespace != ""
}

// Preamble returns the self-guarding static-linkage block emitted before
// the header content, or "" when the family does not need one.
func (f Family) Preamble() string {
	if f.StaticDefine == "" {
		return ""
	}
	return fmt.Sprintf("#ifndef %[1]s\n# define %[1]s\n#endif\n\n", f.StaticDefine)
}

// HeaderFileName is the devkit header name, e.g. frida-core.h.
func (f Family) HeaderFileName() string {
	return f.Name + ".h"
}

// ArchiveFileName is the devkit archive name, e.g. libfrida-core.a.
func (f Family) ArchiveFileName() string {
	return "lib" + f.Name + ".a"
}
