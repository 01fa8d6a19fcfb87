package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
	"github.com/rs/zerolog/log"

	"devkit-builder/internal/ports"
)

// VersionGate refuses to build against a package older than a family's
// minimum version. Versions compare with Debian ordering, which handles
// dotted numeric releases as well as ~rc style suffixes.
type VersionGate struct {
	Query ports.PackageQueryPort
}

func NewVersionGate(query ports.PackageQueryPort) VersionGate {
	return VersionGate{Query: query}
}

func (g VersionGate) Check(ctx context.Context, pkg string, minVersion string) error {
	minVersion = strings.TrimSpace(minVersion)
	if minVersion == "" {
		return nil
	}
	installed, err := g.Query.ModVersion(ctx, pkg)
	if err != nil {
		return err
	}
	ok, err := versionAtLeast(installed, minVersion)
	if err != nil {
		return err
	}
	if !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("package version too old: %s %s < %s", pkg, installed, minVersion))
	}
	log.Ctx(ctx).Debug().Str("package", pkg).Str("version", installed).Msg("package version accepted")
	return nil
}

func versionAtLeast(installed string, minimum string) (bool, error) {
	have, err := debversion.NewVersion(strings.TrimSpace(installed))
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package version %q", installed)).
			WithCause(err)
	}
	want, err := debversion.NewVersion(minimum)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid minimum version %q", minimum)).
			WithCause(err)
	}
	return have.Compare(want) >= 0, nil
}
