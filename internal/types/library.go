package types

// LinkFlags is a parsed static-link flag list.
type LinkFlags struct {
	Names       []string
	SearchDirs  []string
	Passthrough []string
}

// ResolvedLibrarySet lists the static archives chosen for embedding and the
// flags the consumer still has to pass to its own link step.
type ResolvedLibrarySet struct {
	Archives []string
	Residual []string
}

// ToolInvocation describes one call of an external binary.
type ToolInvocation struct {
	Tool  string
	Args  []string
	Stdin []byte
	Dir   string
}

// Toolchain names the binaries used to build a devkit.
type Toolchain struct {
	AR        string `yaml:"ar" toml:"ar"`
	CC        string `yaml:"cc" toml:"cc"`
	NM        string `yaml:"nm" toml:"nm"`
	Objcopy   string `yaml:"objcopy" toml:"objcopy"`
	PkgConfig string `yaml:"pkg_config" toml:"pkg_config"`
}

// DefaultToolchain returns the conventional binary names.
func DefaultToolchain() Toolchain {
	return Toolchain{
		AR:        "ar",
		CC:        "gcc",
		NM:        "nm",
		Objcopy:   "objcopy",
		PkgConfig: "pkg-config",
	}
}

// WithDefaults fills empty entries from DefaultToolchain.
func (t Toolchain) WithDefaults() Toolchain {
	defaults := DefaultToolchain()
	if t.AR == "" {
		t.AR = defaults.AR
	}
	if t.CC == "" {
		t.CC = defaults.CC
	}
	if t.NM == "" {
		t.NM = defaults.NM
	}
	if t.Objcopy == "" {
		t.Objcopy = defaults.Objcopy
	}
	if t.PkgConfig == "" {
		t.PkgConfig = defaults.PkgConfig
	}
	return t
}
