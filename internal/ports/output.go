package ports

// OutputStagePort opens build-scoped staging for one header/archive pair.
// buildID names the staged files; an empty id gets a fresh one.
type OutputStagePort interface {
	NewStage(buildID string, headerPath string, archivePath string) (StagePort, error)
}

// StagePort holds the staged artifacts of a single build. Nothing is
// visible at the final paths until Commit succeeds; Discard removes every
// staged file and is safe to call after Commit.
type StagePort interface {
	ID() string
	ArchivePath() string
	WriteHeader(content string) error
	Commit() error
	Discard()
}
