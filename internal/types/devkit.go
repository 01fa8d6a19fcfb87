package types

// DevkitArtifacts records the outcome of one package's devkit build.
type DevkitArtifacts struct {
	Family        string
	Package       string
	HeaderPath    string
	ArchivePath   string
	Embedded      []string
	ResidualFlags []string
	Renamed       int
	PublicRenamed int
}
