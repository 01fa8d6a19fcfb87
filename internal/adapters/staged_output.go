package adapters

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"

	"devkit-builder/internal/ports"
)

// StagedOutputAdapter stages devkit artifacts as hidden files next to their
// final paths, so that publishing them is a rename on the same filesystem.
type StagedOutputAdapter struct{}

func NewStagedOutputAdapter() StagedOutputAdapter {
	return StagedOutputAdapter{}
}

func (a StagedOutputAdapter) NewStage(buildID string, headerPath string, archivePath string) (ports.StagePort, error) {
	if strings.TrimSpace(headerPath) == "" || strings.TrimSpace(archivePath) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("devkit output paths are required")
	}
	if filepath.Clean(headerPath) == filepath.Clean(archivePath) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("devkit header and archive must not share a path")
	}
	if strings.TrimSpace(buildID) == "" {
		buildID = uuid.NewString()
	}
	for _, path := range []string{headerPath, archivePath} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create output directory").
				WithCause(err)
		}
	}
	return &stagedOutput{
		id:      buildID,
		header:  stagedFile{final: headerPath, staged: stagedPath(headerPath, buildID)},
		archive: stagedFile{final: archivePath, staged: stagedPath(archivePath, buildID)},
	}, nil
}

func stagedPath(final string, id string) string {
	return filepath.Join(filepath.Dir(final), fmt.Sprintf(".%s.%s.tmp", filepath.Base(final), id))
}

type stagedFile struct {
	final  string
	staged string
}

func (f stagedFile) backup(id string) string {
	return filepath.Join(filepath.Dir(f.final), fmt.Sprintf(".%s.%s.bak", filepath.Base(f.final), id))
}

type stagedOutput struct {
	mu            sync.Mutex
	id            string
	header        stagedFile
	archive       stagedFile
	headerWritten bool
	committed     bool
}

func (s *stagedOutput) ID() string {
	return s.id
}

func (s *stagedOutput) ArchivePath() string {
	return s.archive.staged
}

func (s *stagedOutput) WriteHeader(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committed {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("stage already committed")
	}
	if err := os.WriteFile(s.header.staged, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write staged header").
			WithCause(err)
	}
	s.headerWritten = true
	return nil
}

// Commit renames both staged files over their final paths. A previous
// output is linked (or copied) to a backup first and only used to roll
// back, so a final path is never missing while the pair is replaced.
func (s *stagedOutput) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committed {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("stage already committed")
	}
	if !s.headerWritten {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("staged header was never written")
	}
	if _, err := os.Stat(s.archive.staged); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("staged archive is missing").
			WithCause(err)
	}

	var published []publishedFile
	for _, file := range []stagedFile{s.header, s.archive} {
		hadPrevious, err := backupFile(file.final, file.backup(s.id))
		if err != nil {
			s.rollback(published)
			return commitError(err)
		}
		if err := os.Rename(file.staged, file.final); err != nil {
			if hadPrevious {
				_ = os.Remove(file.backup(s.id))
			}
			s.rollback(published)
			return commitError(err)
		}
		published = append(published, publishedFile{file: file, hadPrevious: hadPrevious})
	}
	for _, done := range published {
		if done.hadPrevious {
			_ = os.Remove(done.file.backup(s.id))
		}
	}
	s.committed = true
	return nil
}

type publishedFile struct {
	file        stagedFile
	hadPrevious bool
}

// rollback puts back the previous outputs of files already published.
func (s *stagedOutput) rollback(published []publishedFile) {
	for _, done := range published {
		if done.hadPrevious {
			_ = os.Rename(done.file.backup(s.id), done.file.final)
			continue
		}
		_ = os.Remove(done.file.final)
	}
}

// backupFile keeps a copy of final at backup, preferring a hard link. It
// reports false when there is no previous output.
func backupFile(final string, backup string) (bool, error) {
	err := os.Link(final, backup)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := copyFile(final, backup); err != nil {
		_ = os.Remove(backup)
		return false, err
	}
	return true, nil
}

func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func commitError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to publish devkit outputs").
		WithCause(err)
}

func (s *stagedOutput) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, file := range []stagedFile{s.header, s.archive} {
		_ = os.Remove(file.staged)
	}
}

var _ ports.OutputStagePort = StagedOutputAdapter{}
