package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devkit-builder/internal/types"
)

type failingPackages struct {
	fakePackages
	fail string
}

func (f failingPackages) StaticLinkFlags(ctx context.Context, pkg string) ([]string, error) {
	if pkg == f.fail {
		return nil, errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("pkg-config failed")
	}
	return f.fakePackages.StaticLinkFlags(ctx, pkg)
}

func twinFamilies() []types.Family {
	gum := gumFamily()
	twin := gumFamily()
	twin.Name = "frida-gum-twin"
	twin.Package = "frida-gum-1.0"
	return []types.Family{gum, twin}
}

func TestBuildAllBuildsEveryKit(t *testing.T) {
	fx := newFixture(t, twinFamilies()...)
	fx.service.NewBuildID = nil

	result, err := fx.service.BuildAll(t.Context(), BuildAllRequest{
		Kits:       []string{"frida-gum", "frida-gum-twin"},
		IncludeDir: fx.include,
		OutputDir:  fx.output,
		Workers:    2,
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "frida-gum", result.Results[0].Artifacts.Family)
	assert.Equal(t, "frida-gum-twin", result.Results[1].Artifacts.Family)
	assert.NotEqual(t, result.Results[0].BuildID, result.Results[1].BuildID)
	assert.FileExists(t, filepath.Join(fx.output, "include", "frida-gum.h"))
	assert.FileExists(t, filepath.Join(fx.output, "include", "frida-gum-twin.h"))
	assert.FileExists(t, filepath.Join(fx.output, "lib", "libfrida-gum-twin.a"))
	assert.Equal(t, 2, fx.archiver.merged)
}

func TestBuildAllReportsFailure(t *testing.T) {
	families := twinFamilies()
	families[1].Package = "frida-broken-1.0"
	fx := newFixture(t, families...)
	fx.service.NewBuildID = nil
	fx.service.Packages = failingPackages{fakePackages: fx.service.Packages.(fakePackages), fail: "frida-broken-1.0"}

	result, err := fx.service.BuildAll(t.Context(), BuildAllRequest{
		Kits:       []string{"frida-gum", "frida-gum-twin"},
		IncludeDir: fx.include,
		OutputDir:  fx.output,
		Workers:    1,
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
	assert.LessOrEqual(t, len(result.Results), 1)
	assert.NoFileExists(t, filepath.Join(fx.output, "include", "frida-gum-twin.h"))
	assert.NoFileExists(t, filepath.Join(fx.output, "lib", "libfrida-gum-twin.a"))
}

func TestBuildAllRequestValidation(t *testing.T) {
	fx := newFixture(t, twinFamilies()...)

	_, err := fx.service.BuildAll(t.Context(), BuildAllRequest{Kits: []string{" "}, IncludeDir: "/i", OutputDir: "/o"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = fx.service.BuildAll(t.Context(), BuildAllRequest{Kits: []string{"frida-gum", "frida-gum"}, IncludeDir: "/i", OutputDir: "/o"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = fx.service.BuildAll(t.Context(), BuildAllRequest{Kits: []string{"frida-gum", "nope"}, IncludeDir: "/i", OutputDir: "/o"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Zero(t, fx.archiver.merged)
}
