package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/shared"
	"devkit-builder/internal/types"
)

// ArchiveAssembler turns a static link line into one merged archive.
type ArchiveAssembler struct {
	Archiver ports.ArchiverPort
	Exists   func(path string) bool
}

func NewArchiveAssembler(archiver ports.ArchiverPort) ArchiveAssembler {
	return ArchiveAssembler{
		Archiver: archiver,
		Exists:   regularFileExists,
	}
}

// Assemble resolves libraryFlags against the -L directories they carry
// followed by searchDirs, merges every resolved archive into output and
// returns the flags the consumer must still link with.
func (a ArchiveAssembler) Assemble(ctx context.Context, libraryFlags []string, searchDirs []string, output string) (types.ResolvedLibrarySet, error) {
	if strings.TrimSpace(output) == "" {
		return types.ResolvedLibrarySet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("archive output path is empty")
	}
	flags := ParseLinkFlags(libraryFlags)
	dirs := shared.DedupeOrdered(append(append([]string(nil), flags.SearchDirs...), searchDirs...))
	resolved := ResolveLibraries(flags.Names, dirs, a.Exists)
	resolved.Residual = append(resolved.Residual, flags.Passthrough...)
	if len(resolved.Archives) == 0 {
		return types.ResolvedLibrarySet{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no static archives resolved from %d library names", len(flags.Names)))
	}
	if err := a.Archiver.Merge(ctx, output, resolved.Archives); err != nil {
		return types.ResolvedLibrarySet{}, err
	}
	log.Ctx(ctx).Info().
		Str("output", output).
		Int("embedded", len(resolved.Archives)).
		Strs("residual", resolved.Residual).
		Msg("static archives merged")
	return resolved, nil
}

// ParseLinkFlags splits a link line into library names, search directories
// and pass-through flags. Anything else is dropped.
func ParseLinkFlags(flags []string) types.LinkFlags {
	var parsed types.LinkFlags
	for i := 0; i < len(flags); i++ {
		flag := flags[i]
		switch {
		case strings.HasPrefix(flag, "-L") && len(flag) > 2:
			parsed.SearchDirs = append(parsed.SearchDirs, flag[2:])
		case strings.HasPrefix(flag, "-l") && len(flag) > 2:
			parsed.Names = append(parsed.Names, flag[2:])
		case strings.HasPrefix(flag, "-Wl"), flag == "-pthread":
			parsed.Passthrough = append(parsed.Passthrough, flag)
		case flag == "-framework" && i+1 < len(flags):
			parsed.Passthrough = append(parsed.Passthrough, flag, flags[i+1])
			i++
		}
	}
	return parsed
}

// ResolveLibraries finds lib<name>.a for each name in the first directory
// that has one. Archives are deduplicated in first-seen order; names with
// no archive come back as residual -l flags.
func ResolveLibraries(names []string, dirs []string, exists func(string) bool) types.ResolvedLibrarySet {
	var resolved types.ResolvedLibrarySet
	for _, name := range names {
		found := ""
		for _, dir := range dirs {
			candidate := filepath.Join(dir, "lib"+name+".a")
			if exists(candidate) {
				found = candidate
				break
			}
		}
		if found == "" {
			resolved.Residual = append(resolved.Residual, "-l"+name)
			continue
		}
		resolved.Archives = append(resolved.Archives, found)
	}
	resolved.Archives = shared.DedupeOrdered(resolved.Archives)
	return resolved
}

func regularFileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
